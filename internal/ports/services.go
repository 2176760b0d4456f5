// Package ports defines interfaces for external dependencies.
// The quote store, the preference state and the share action depend on
// these contracts; adapters under internal/adapters implement them.
//
// Port Design Principles:
//   - Context as first parameter for cancellation and deadlines
//   - Return domain types, never external DTOs
//   - Errors use domain error types (ErrLoad, ErrNotFound, ErrUnavailable)
package ports

import (
	"context"

	"github.com/jsamuelsen/wisdom-quotes/internal/domain"
)

// QuoteSource reads the static quote resource.
type QuoteSource interface {
	// Name identifies the resource in logs, e.g. a file path or URL.
	Name() string

	// Load returns the quotes in resource order.
	// Returns a *domain.LoadError when the resource is unreachable or malformed.
	Load(ctx context.Context) ([]domain.Quote, error)
}

// KeyValueStore is the persistent store for preferences. Values are
// strings; callers own the encoding.
type KeyValueStore interface {
	// Get returns the value for key. found is false when the key is absent.
	Get(ctx context.Context, key string) (value string, found bool, err error)

	// Set stores value under key, replacing any previous value.
	// The write is complete when Set returns.
	Set(ctx context.Context, key, value string) error
}

// Sharer hands text to a platform sharing mechanism.
// Presence is checked with Available at call time, never cached.
type Sharer interface {
	Available(ctx context.Context) bool
	Share(ctx context.Context, title, text string) error
}

// Clipboard is the fallback destination when no Sharer is available.
type Clipboard interface {
	WriteText(ctx context.Context, text string) error
}
