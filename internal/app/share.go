package app

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/jsamuelsen/wisdom-quotes/internal/domain"
	"github.com/jsamuelsen/wisdom-quotes/internal/ports"
)

// Notice is a transient user-visible message.
type Notice struct {
	Message   string
	ExpiresAt time.Time
}

// Notifier keeps transient notices until their TTL passes. Expiry only
// hides a notice; nothing depends on it for correctness.
type Notifier struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	notices []Notice
}

// NewNotifier creates a notifier. A nil clock uses time.Now.
func NewNotifier(ttl time.Duration, now func() time.Time) *Notifier {
	if now == nil {
		now = time.Now
	}

	return &Notifier{ttl: ttl, now: now}
}

// Push adds a notice that expires after the TTL.
func (n *Notifier) Push(message string) Notice {
	n.mu.Lock()
	defer n.mu.Unlock()

	notice := Notice{Message: message, ExpiresAt: n.now().Add(n.ttl)}
	n.notices = append(n.notices, notice)

	return notice
}

// Active returns the unexpired notices, oldest first, and forgets the rest.
func (n *Notifier) Active() []Notice {
	n.mu.Lock()
	defer n.mu.Unlock()

	now := n.now()
	n.notices = slices.DeleteFunc(n.notices, func(x Notice) bool {
		return !now.Before(x.ExpiresAt)
	})

	return slices.Clone(n.notices)
}

// ShareMethod tells how a quote was shared.
type ShareMethod string

// Share methods.
const (
	ShareNative    ShareMethod = "native"
	ShareClipboard ShareMethod = "clipboard"
	ShareNone      ShareMethod = "none"
)

// ShareResult describes one share action.
type ShareResult struct {
	Method ShareMethod
	Text   string
	Notice *Notice
}

// ShareService hands a quote to the platform sharer, or copies it to the
// clipboard and posts a notice when no sharer is available. Failures are
// logged and never returned.
type ShareService struct {
	sharer    ports.Sharer
	clipboard ports.Clipboard
	notifier  *Notifier
	logger    *slog.Logger
}

// ShareServiceConfig contains the dependencies of ShareService. Sharer and
// Clipboard are optional.
type ShareServiceConfig struct {
	Sharer    ports.Sharer
	Clipboard ports.Clipboard
	Notifier  *Notifier
	Logger    *slog.Logger
}

// NewShareService creates a share service.
func NewShareService(cfg ShareServiceConfig) *ShareService {
	s := &ShareService{
		sharer:    cfg.Sharer,
		clipboard: cfg.Clipboard,
		notifier:  cfg.Notifier,
		logger:    cfg.Logger,
	}

	if s.notifier == nil {
		s.notifier = NewNotifier(0, nil)
	}

	if s.logger == nil {
		s.logger = slog.Default()
	}

	return s
}

// Share formats q in lang and shares it. Sharer availability is checked on
// every call.
func (s *ShareService) Share(ctx context.Context, q *domain.Quote, lang domain.Language) ShareResult {
	text := q.ShareText(lang)
	result := ShareResult{Method: ShareNone, Text: text}

	if s.sharer != nil && s.sharer.Available(ctx) {
		result.Method = ShareNative

		if err := s.sharer.Share(ctx, Localize(lang, TextShareTitle), text); err != nil {
			s.logger.WarnContext(ctx, "sharing quote failed",
				slog.Int("quote_id", q.ID),
				slog.Any("error", err),
			)
		}

		return result
	}

	if s.clipboard == nil {
		s.logger.DebugContext(ctx, "no share target available", slog.Int("quote_id", q.ID))
		return result
	}

	if err := s.clipboard.WriteText(ctx, text); err != nil {
		s.logger.WarnContext(ctx, "copying quote to clipboard failed",
			slog.Int("quote_id", q.ID),
			slog.Any("error", err),
		)

		return result
	}

	notice := s.notifier.Push(Localize(lang, TextCopiedToClipboard))
	result.Method = ShareClipboard
	result.Notice = &notice

	return result
}

// Notices returns the unexpired notices.
func (s *ShareService) Notices() []Notice {
	return s.notifier.Active()
}
