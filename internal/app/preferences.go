package app

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"slices"
	"strconv"
	"time"

	"github.com/jsamuelsen/wisdom-quotes/internal/domain"
	"github.com/jsamuelsen/wisdom-quotes/internal/ports"
)

// Keys under which preferences are persisted.
const (
	KeyFavorites = "favorites"
	KeyQODDate   = "qodDate"
	KeyQODID     = "qodId"
)

// Picker draws a uniform index in [0, n). *rand.Rand from math/rand/v2
// satisfies it, so tests can inject a seeded source.
type Picker interface {
	IntN(n int) int
}

type globalPicker struct{}

func (globalPicker) IntN(n int) int { return rand.IntN(n) }

// PreferenceService restores, mutates and persists the preference state.
// It does not lock; Session serialises access.
type PreferenceService struct {
	store  ports.KeyValueStore
	picker Picker
	logger *slog.Logger
}

// PreferenceServiceConfig contains the dependencies of PreferenceService.
type PreferenceServiceConfig struct {
	Store  ports.KeyValueStore
	Picker Picker
	Logger *slog.Logger
}

// NewPreferenceService creates a preference service. A nil Picker uses the
// global random source.
func NewPreferenceService(cfg PreferenceServiceConfig) *PreferenceService {
	s := &PreferenceService{
		store:  cfg.Store,
		picker: cfg.Picker,
		logger: cfg.Logger,
	}

	if s.picker == nil {
		s.picker = globalPicker{}
	}

	if s.logger == nil {
		s.logger = slog.Default()
	}

	return s
}

// Restore reads the persisted favorites and daily pick. Anything missing,
// unreadable or malformed falls back to the default.
func (s *PreferenceService) Restore(ctx context.Context) *domain.Preferences {
	prefs := domain.DefaultPreferences()

	if raw, ok := s.read(ctx, KeyFavorites); ok {
		ids, err := decodeFavorites(raw)
		if err != nil {
			s.logger.WarnContext(ctx, "ignoring malformed favorites", slog.Any("error", err))
		} else {
			prefs.FavoriteIDs = ids
		}
	}

	date, hasDate := s.read(ctx, KeyQODDate)
	rawID, hasID := s.read(ctx, KeyQODID)

	if hasDate && hasID {
		pick, err := decodeDailyPick(date, rawID)
		if err != nil {
			s.logger.WarnContext(ctx, "ignoring malformed quote of the day", slog.Any("error", err))
		} else {
			prefs.QuoteOfTheDay = pick
		}
	}

	s.logger.DebugContext(ctx, "preferences restored",
		slog.Int("favorites", len(prefs.FavoriteIDs)),
		slog.Bool("has_daily_pick", prefs.QuoteOfTheDay != nil),
	)

	return prefs
}

// SelectQuoteOfTheDay returns the cached pick when it was drawn for today
// and still names a loaded quote. Otherwise it draws uniformly from quotes
// and persists the new pick. With no quotes it returns (0, false).
func (s *PreferenceService) SelectQuoteOfTheDay(
	ctx context.Context,
	prefs *domain.Preferences,
	today time.Time,
	quotes []domain.Quote,
) (int, bool) {
	if len(quotes) == 0 {
		return 0, false
	}

	if id, ok := prefs.DailyID(today); ok && containsQuote(quotes, id) {
		return id, true
	}

	id := quotes[s.picker.IntN(len(quotes))].ID
	date := today.Format(domain.DateLayout)
	prefs.QuoteOfTheDay = &domain.DailyPick{ID: id, Date: date}

	// The pick stays valid in memory even if it cannot be stored.
	if err := s.write(ctx, KeyQODDate, date); err != nil {
		s.logger.WarnContext(ctx, "persisting quote of the day date", slog.Any("error", err))
	} else if err := s.write(ctx, KeyQODID, strconv.Itoa(id)); err != nil {
		s.logger.WarnContext(ctx, "persisting quote of the day id", slog.Any("error", err))
	}

	s.logger.InfoContext(ctx, "quote of the day selected",
		slog.Int("quote_id", id),
		slog.String("date", date),
	)

	return id, true
}

// ToggleFavorite flips id in the favorites and persists the list. When the
// write fails the toggle is undone so memory and storage agree.
func (s *PreferenceService) ToggleFavorite(ctx context.Context, prefs *domain.Preferences, id int) (bool, error) {
	before := slices.Clone(prefs.FavoriteIDs)
	added := prefs.ToggleFavorite(id)

	if err := s.persistFavorites(ctx, prefs.FavoriteIDs); err != nil {
		prefs.FavoriteIDs = before
		return !added, err
	}

	s.logger.DebugContext(ctx, "favorite toggled",
		slog.Int("quote_id", id),
		slog.Bool("favorite", added),
	)

	return added, nil
}

// SetFilter replaces the active filter. Any string is accepted; unknown
// tags match no quotes.
func (s *PreferenceService) SetFilter(prefs *domain.Preferences, tag string) {
	prefs.ActiveFilter = tag
}

// SetLanguage replaces the display language.
func (s *PreferenceService) SetLanguage(prefs *domain.Preferences, lang domain.Language) {
	prefs.Language = lang
}

func (s *PreferenceService) persistFavorites(ctx context.Context, ids []int) error {
	raw, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("encoding favorites: %w", err)
	}

	return s.write(ctx, KeyFavorites, string(raw))
}

func (s *PreferenceService) read(ctx context.Context, key string) (string, bool) {
	if s.store == nil {
		return "", false
	}

	value, found, err := s.store.Get(ctx, key)
	if err != nil {
		s.logger.WarnContext(ctx, "reading preference",
			slog.String("key", key),
			slog.Any("error", err),
		)

		return "", false
	}

	return value, found
}

func (s *PreferenceService) write(ctx context.Context, key, value string) error {
	if s.store == nil {
		return nil
	}

	if err := s.store.Set(ctx, key, value); err != nil {
		return fmt.Errorf("persisting %s: %w", key, err)
	}

	return nil
}

// decodeFavorites parses a JSON integer array, dropping duplicates while
// keeping first-seen order.
func decodeFavorites(raw string) ([]int, error) {
	var ids []int
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return nil, fmt.Errorf("decoding favorites: %w", err)
	}

	out := make([]int, 0, len(ids))
	seen := make(map[int]struct{}, len(ids))

	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}

		seen[id] = struct{}{}
		out = append(out, id)
	}

	return out, nil
}

func decodeDailyPick(date, rawID string) (*domain.DailyPick, error) {
	if _, err := time.Parse(domain.DateLayout, date); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", KeyQODDate, err)
	}

	id, err := strconv.Atoi(rawID)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", KeyQODID, err)
	}

	return &domain.DailyPick{ID: id, Date: date}, nil
}

func containsQuote(quotes []domain.Quote, id int) bool {
	for i := range quotes {
		if quotes[i].ID == id {
			return true
		}
	}

	return false
}
