package share

import (
	"context"
	"sync"
	"time"
)

// Clip is the clipboard content with the time it was written.
type Clip struct {
	Text     string
	CopiedAt time.Time
}

// MemoryClipboard keeps the last copied text for the clipboard endpoint.
type MemoryClipboard struct {
	mu   sync.RWMutex
	clip Clip
	now  func() time.Time
}

// NewMemoryClipboard creates an empty clipboard.
func NewMemoryClipboard() *MemoryClipboard {
	return &MemoryClipboard{now: time.Now}
}

// WriteText replaces the clipboard content.
func (c *MemoryClipboard) WriteText(_ context.Context, text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.clip = Clip{Text: text, CopiedAt: c.now()}

	return nil
}

// Read returns the current content. ok is false until something is copied.
func (c *MemoryClipboard) Read() (Clip, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.clip, !c.clip.CopiedAt.IsZero()
}
