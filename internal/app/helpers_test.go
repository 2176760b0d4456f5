package app

import (
	"context"
	"io"
	"log/slog"
	"maps"
	"sync"
	"time"

	"github.com/jsamuelsen/wisdom-quotes/internal/domain"
)

// discardLogger returns a logger that discards all output.
func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testQuotes() []domain.Quote {
	return []domain.Quote{
		{
			ID:            1,
			TextPrimary:   "Liebe ist ein besserer Lehrer als Pflichtgefühl.",
			TextSecondary: "Love is a better teacher than duty.",
			Author:        "Albert Einstein",
			Themes:        []string{"love"},
		},
		{
			ID:            2,
			TextPrimary:   "Das Leben ist wie Fahrradfahren.",
			TextSecondary: "Life is like riding a bicycle.",
			Author:        "Albert Einstein",
			Themes:        []string{"life"},
		},
		{
			ID:            3,
			TextPrimary:   "Fantasie ist wichtiger als Wissen.",
			TextSecondary: "Imagination is more important than knowledge.",
			Author:        "Albert Einstein",
			Themes:        []string{"imagination", "life"},
		},
	}
}

// mapStore is an in-memory KeyValueStore with injectable failures.
type mapStore struct {
	mu     sync.Mutex
	values map[string]string
	getErr error
	setErr error
	sets   int
}

func newMapStore(values map[string]string) *mapStore {
	s := &mapStore{values: map[string]string{}}
	maps.Copy(s.values, values)

	return s
}

func (s *mapStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.getErr != nil {
		return "", false, s.getErr
	}

	v, ok := s.values[key]

	return v, ok, nil
}

func (s *mapStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.setErr != nil {
		return s.setErr
	}

	s.sets++
	s.values[key] = value

	return nil
}

func (s *mapStore) value(key string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.values[key]
}

// fixedPicker always draws index i, wrapped to n.
type fixedPicker int

func (p fixedPicker) IntN(n int) int { return int(p) % n }

// reverseShuffler reverses the slice, making shuffled output predictable.
type reverseShuffler struct{}

func (reverseShuffler) Shuffle(n int, swap func(i, j int)) {
	for i := range n / 2 {
		swap(i, n-1-i)
	}
}

// keepOrder leaves the slice untouched.
type keepOrder struct{}

func (keepOrder) Shuffle(int, func(i, j int)) {}

// staticSource is a QuoteSource returning fixed quotes or an error.
type staticSource struct {
	quotes []domain.Quote
	err    error
}

func (s staticSource) Name() string { return "static" }

func (s staticSource) Load(context.Context) ([]domain.Quote, error) {
	return s.quotes, s.err
}

func day(s string) time.Time {
	t, err := time.ParseInLocation(domain.DateLayout, s, time.Local)
	if err != nil {
		panic(err)
	}

	return t.Add(9 * time.Hour)
}

func ids(cards []QuoteCard) []int {
	out := make([]int, len(cards))
	for i, c := range cards {
		out[i] = c.ID
	}

	return out
}
