// Package app contains the application services of the quote widget: the
// quote store, the preference state, the view renderer, the overlay and
// the action dispatcher. It coordinates the domain and the ports and knows
// nothing about HTTP.
package app

import (
	"context"
	"iter"
	"log/slog"
	"slices"

	"github.com/jsamuelsen/wisdom-quotes/internal/domain"
	"github.com/jsamuelsen/wisdom-quotes/internal/ports"
)

// QuoteStore is the immutable, ordered collection of quotes loaded at
// startup. It is safe for concurrent reads.
type QuoteStore struct {
	quotes []domain.Quote
	byID   map[int]int
	source string
}

// NewQuoteStore builds a store from already loaded quotes. Later entries
// with a duplicate ID are dropped; the first occurrence wins.
func NewQuoteStore(quotes []domain.Quote) *QuoteStore {
	s := &QuoteStore{
		quotes: make([]domain.Quote, 0, len(quotes)),
		byID:   make(map[int]int, len(quotes)),
	}

	for _, q := range quotes {
		if _, dup := s.byID[q.ID]; dup {
			continue
		}

		q.Themes = slices.Clone(q.Themes)
		s.byID[q.ID] = len(s.quotes)
		s.quotes = append(s.quotes, q)
	}

	return s
}

// LoadQuoteStore loads quotes from source. A load failure is logged and
// yields an empty store; callers treat "no quotes" as a valid state.
func LoadQuoteStore(ctx context.Context, source ports.QuoteSource, logger *slog.Logger) *QuoteStore {
	if logger == nil {
		logger = slog.Default()
	}

	quotes, err := source.Load(ctx)
	if err != nil {
		logger.WarnContext(ctx, "quote source unavailable, continuing with no quotes",
			slog.String("source", source.Name()),
			slog.Any("error", err),
		)

		s := NewQuoteStore(nil)
		s.source = source.Name()

		return s
	}

	s := NewQuoteStore(quotes)
	s.source = source.Name()

	logger.InfoContext(ctx, "quotes loaded",
		slog.String("source", s.source),
		slog.Int("count", s.Len()),
	)

	return s
}

// FindByID returns the quote with the given identifier.
func (s *QuoteStore) FindByID(id int) (domain.Quote, error) {
	i, ok := s.byID[id]
	if !ok {
		return domain.Quote{}, domain.NewQuoteNotFoundError(id)
	}

	return s.quotes[i], nil
}

// FilterByTheme lazily yields the quotes carrying tag, in load order.
// domain.FilterAll yields every quote.
func (s *QuoteStore) FilterByTheme(tag string) iter.Seq[domain.Quote] {
	return func(yield func(domain.Quote) bool) {
		for i := range s.quotes {
			if !s.quotes[i].HasTheme(tag) {
				continue
			}

			if !yield(s.quotes[i]) {
				return
			}
		}
	}
}

// All returns every quote in load order.
func (s *QuoteStore) All() []domain.Quote {
	return slices.Clone(s.quotes)
}

// Len returns the number of loaded quotes.
func (s *QuoteStore) Len() int {
	return len(s.quotes)
}

// IDs returns the identifiers of every quote in load order.
func (s *QuoteStore) IDs() []int {
	ids := make([]int, len(s.quotes))
	for i := range s.quotes {
		ids[i] = s.quotes[i].ID
	}

	return ids
}

// Themes returns the distinct theme tags, sorted.
func (s *QuoteStore) Themes() []string {
	var themes []string

	for i := range s.quotes {
		for _, t := range s.quotes[i].Themes {
			if !slices.Contains(themes, t) {
				themes = append(themes, t)
			}
		}
	}

	slices.Sort(themes)

	return themes
}

// Source names the resource the quotes were loaded from.
func (s *QuoteStore) Source() string {
	return s.source
}
