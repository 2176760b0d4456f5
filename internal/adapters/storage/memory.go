package storage

import (
	"context"
	"maps"
	"sync"
)

// Memory is a process-local store. Preferences are lost on restart.
type Memory struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemory creates an empty store.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

// Get returns the value stored under key.
func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.values[key]

	return v, ok, nil
}

// Set stores value under key.
func (m *Memory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.values[key] = value

	return nil
}

// Snapshot returns a copy of every stored pair.
func (m *Memory) Snapshot() map[string]string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return maps.Clone(m.values)
}

// Name implements ports.HealthChecker.
func (m *Memory) Name() string {
	return "preferences"
}

// Check always succeeds. Implements ports.HealthChecker.
func (m *Memory) Check(context.Context) error {
	return nil
}

// Close is a no-op so both stores share a shutdown path.
func (m *Memory) Close() error {
	return nil
}
