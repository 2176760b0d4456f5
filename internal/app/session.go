package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jsamuelsen/wisdom-quotes/internal/domain"
	"github.com/jsamuelsen/wisdom-quotes/internal/ports"
)

// ErrNotStarted is returned by the readiness check until Start completes.
var ErrNotStarted = errors.New("session not started")

// Session is the single process-wide widget state: the quote store, the
// preference state and the overlay. Every mutation runs under one mutex and
// is persisted before it returns.
type Session struct {
	mu      sync.Mutex
	store   *QuoteStore
	prefs   *domain.Preferences
	overlay *Overlay

	source   ports.QuoteSource
	prefSvc  *PreferenceService
	share    *ShareService
	renderer *Renderer
	shuffler Shuffler
	picker   Picker
	now      func() time.Time
	logger   *slog.Logger
	started  atomic.Bool
}

// SessionConfig contains the dependencies of a Session. Source is required;
// everything else has a usable default.
type SessionConfig struct {
	Source          ports.QuoteSource
	Store           ports.KeyValueStore
	Sharer          ports.Sharer
	Clipboard       ports.Clipboard
	NotificationTTL time.Duration
	Picker          Picker
	Shuffler        Shuffler
	Now             func() time.Time
	Logger          *slog.Logger
}

// NewSession creates an unstarted session with an empty quote store and
// default preferences.
func NewSession(cfg SessionConfig) *Session {
	s := &Session{
		store:    NewQuoteStore(nil),
		prefs:    domain.DefaultPreferences(),
		overlay:  NewOverlay(),
		source:   cfg.Source,
		shuffler: cfg.Shuffler,
		picker:   cfg.Picker,
		now:      cfg.Now,
		logger:   cfg.Logger,
	}

	if s.logger == nil {
		s.logger = slog.Default()
	}

	if s.now == nil {
		s.now = time.Now
	}

	if s.picker == nil {
		s.picker = globalPicker{}
	}

	s.prefSvc = NewPreferenceService(PreferenceServiceConfig{
		Store:  cfg.Store,
		Picker: s.picker,
		Logger: s.logger,
	})
	s.share = NewShareService(ShareServiceConfig{
		Sharer:    cfg.Sharer,
		Clipboard: cfg.Clipboard,
		Notifier:  NewNotifier(cfg.NotificationTTL, s.now),
		Logger:    s.logger,
	})
	s.renderer = NewRenderer(s.store, s.shuffler)

	return s
}

// Start loads the quotes and restores the preferences concurrently, then
// selects the quote of the day. A failing quote source leaves the store
// empty; Start only fails when ctx is canceled.
func (s *Session) Start(ctx context.Context) error {
	if s.source == nil {
		return fmt.Errorf("starting session: %w", domain.NewValidationError("source", "quote source is required"))
	}

	store, prefs, err := Parallel2(ctx,
		func(ctx context.Context) (*QuoteStore, error) {
			return LoadQuoteStore(ctx, s.source, s.logger), nil
		},
		func(ctx context.Context) (*domain.Preferences, error) {
			return s.prefSvc.Restore(ctx), nil
		},
	)
	if err != nil {
		return fmt.Errorf("starting session: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("starting session: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.store = store
	s.prefs = prefs
	s.renderer = NewRenderer(store, s.shuffler)
	s.ensureDailyLocked(ctx)
	s.started.Store(true)

	s.logger.InfoContext(ctx, "session started",
		slog.Int("quotes", store.Len()),
		slog.Int("favorites", len(prefs.FavoriteIDs)),
	)

	return nil
}

// Name implements ports.HealthChecker.
func (s *Session) Name() string {
	return "session"
}

// Check implements ports.HealthChecker. It fails until Start completes.
func (s *Session) Check(_ context.Context) error {
	if !s.started.Load() {
		return ErrNotStarted
	}

	return nil
}

// Store returns the loaded quote store.
func (s *Session) Store() *QuoteStore {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.store
}

// Page renders the full document for the current state. The daily pick is
// refreshed first so a page served after midnight shows the new day's quote.
func (s *Session) Page(ctx context.Context) Page {
	s.mu.Lock()
	s.ensureDailyLocked(ctx)
	prefs := s.prefs.Clone()
	overlay := s.overlay.Snapshot()
	renderer := s.renderer
	s.mu.Unlock()

	return renderer.Page(prefs, overlay, s.share.Notices())
}

// Preferences returns a copy of the preference state.
func (s *Session) Preferences(ctx context.Context) *domain.Preferences {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ensureDailyLocked(ctx)

	return s.prefs.Clone()
}

// Quotes returns the quotes passing tag, in load order.
func (s *Session) Quotes(tag string) []domain.Quote {
	quotes := []domain.Quote{}
	for q := range s.Store().FilterByTheme(tag) {
		quotes = append(quotes, q)
	}

	return quotes
}

// Quote returns the quote with the given id.
func (s *Session) Quote(id int) (domain.Quote, error) {
	return s.Store().FindByID(id)
}

// Card renders one quote for the current language and favorites.
func (s *Session) Card(q *domain.Quote) QuoteCard {
	s.mu.Lock()
	prefs := s.prefs.Clone()
	renderer := s.renderer
	s.mu.Unlock()

	return renderer.Card(q, prefs)
}

// RandomQuote draws a quote uniformly, independent of the quote of the day.
func (s *Session) RandomQuote() (domain.Quote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.randomLocked()
}

// QuoteOfTheDay returns today's pick, drawing it if needed. It reports
// false when no quotes are loaded.
func (s *Session) QuoteOfTheDay(ctx context.Context) (domain.Quote, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.ensureDailyLocked(ctx)
	if !ok {
		return domain.Quote{}, false
	}

	q, err := s.store.FindByID(id)
	if err != nil {
		return domain.Quote{}, false
	}

	return q, true
}

// SetLanguage replaces the display language.
func (s *Session) SetLanguage(lang domain.Language) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.prefSvc.SetLanguage(s.prefs, lang)
}

// ToggleLanguage switches between the two languages and returns the new one.
func (s *Session) ToggleLanguage() domain.Language {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.prefs.Language.Toggle()
	s.prefSvc.SetLanguage(s.prefs, next)

	return next
}

// SetFilter replaces the gallery filter.
func (s *Session) SetFilter(tag string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.prefSvc.SetFilter(s.prefs, tag)
}

// ToggleFavorite flips id in the favorites and persists the list. Adding
// requires a loaded quote; removing a stale id is always allowed.
func (s *Session) ToggleFavorite(ctx context.Context, id int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.prefs.IsFavorite(id) {
		if _, err := s.store.FindByID(id); err != nil {
			return false, err
		}
	}

	return s.prefSvc.ToggleFavorite(ctx, s.prefs, id)
}

// Share shares the quote in the current language. An unknown id is a no-op.
// The sharer runs outside the session lock since it may call the network.
func (s *Session) Share(ctx context.Context, id int) ShareResult {
	s.mu.Lock()
	q, err := s.store.FindByID(id)
	lang := s.prefs.Language
	s.mu.Unlock()

	if err != nil {
		s.logger.DebugContext(ctx, "share skipped", slog.Int("quote_id", id), slog.Any("error", err))
		return ShareResult{Method: ShareNone}
	}

	return s.share.Share(ctx, &q, lang)
}

// OpenRandomOverlay draws a random quote and opens the overlay on it. With
// no quotes the overlay stays closed and false is returned.
func (s *Session) OpenRandomOverlay(ctx context.Context) (OverlaySnapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	q, err := s.randomLocked()
	if err != nil {
		s.logger.DebugContext(ctx, "no quote to show in overlay")
		return s.overlay.Snapshot(), false
	}

	s.overlay.Open(q.ID)

	return s.overlay.Snapshot(), true
}

// CloseOverlay dismisses the overlay with trigger. It reports false when the
// overlay was already closed.
func (s *Session) CloseOverlay(trigger DismissTrigger) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.overlay.Dismiss(trigger)
}

// Overlay returns the overlay state.
func (s *Session) Overlay() OverlaySnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.overlay.Snapshot()
}

// Notices returns the unexpired notices.
func (s *Session) Notices() []Notice {
	return s.share.Notices()
}

func (s *Session) randomLocked() (domain.Quote, error) {
	if s.store.Len() == 0 {
		return domain.Quote{}, domain.NewNotFoundError("quote", "random")
	}

	ids := s.store.IDs()

	return s.store.FindByID(ids[s.picker.IntN(len(ids))])
}

func (s *Session) ensureDailyLocked(ctx context.Context) (int, bool) {
	return s.prefSvc.SelectQuoteOfTheDay(ctx, s.prefs, s.now(), s.store.quotes)
}
