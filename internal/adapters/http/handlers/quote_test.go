package handlers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/wisdom-quotes/internal/adapters/http/dto"
	"github.com/jsamuelsen/wisdom-quotes/internal/adapters/share"
	"github.com/jsamuelsen/wisdom-quotes/internal/adapters/storage"
	"github.com/jsamuelsen/wisdom-quotes/internal/app"
	"github.com/jsamuelsen/wisdom-quotes/internal/domain"
)

var fixedNow = time.Date(2026, 10, 19, 9, 0, 0, 0, time.Local)

func fixtureQuotes() []domain.Quote {
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

type fixtureSource []domain.Quote

func (fixtureSource) Name() string { return "fixture" }

func (s fixtureSource) Load(context.Context) ([]domain.Quote, error) { return s, nil }

type firstPicker struct{}

func (firstPicker) IntN(int) int { return 0 }

type noShuffle struct{}

func (noShuffle) Shuffle(int, func(i, j int)) {}

type fixture struct {
	session    *app.Session
	dispatcher *app.Dispatcher
	store      *storage.Memory
	clipboard  *share.MemoryClipboard
	router     *gin.Engine
}

// newFixture starts a session over quotes with deterministic picks and
// mounts the API under /api/v1 and the page at /.
func newFixture(t *testing.T, quotes []domain.Quote) *fixture {
	t.Helper()

	f := &fixture{
		store:     storage.NewMemory(),
		clipboard: share.NewMemoryClipboard(),
	}

	f.session = app.NewSession(app.SessionConfig{
		Source:          fixtureSource(quotes),
		Store:           f.store,
		Clipboard:       f.clipboard,
		NotificationTTL: 3 * time.Second,
		Picker:          firstPicker{},
		Shuffler:        noShuffle{},
		Now:             func() time.Time { return fixedNow },
		Logger:          slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.NoError(t, f.session.Start(context.Background()))

	var err error
	f.dispatcher, err = app.NewDispatcher(f.session, prometheus.NewRegistry())
	require.NoError(t, err)

	page, err := NewPageHandler(f.session, f.dispatcher)
	require.NoError(t, err)

	f.router = gin.New()
	page.RegisterRoutes(f.router)
	NewQuoteHandler(f.session, f.dispatcher, f.clipboard).RegisterRoutes(f.router.Group("/api/v1"))

	return f
}

func (f *fixture) do(t *testing.T, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())

	return v
}

func TestQuoteHandler_ListQuotes(t *testing.T) {
	f := newFixture(t, fixtureQuotes())

	tests := []struct {
		name      string
		target    string
		wantTheme string
		wantIDs   []int
	}{
		{name: "no theme", target: "/api/v1/quotes", wantTheme: "all", wantIDs: []int{1, 2, 3}},
		{name: "all", target: "/api/v1/quotes?theme=all", wantTheme: "all", wantIDs: []int{1, 2, 3}},
		{name: "life", target: "/api/v1/quotes?theme=life", wantTheme: "life", wantIDs: []int{2, 3}},
		{name: "unknown theme", target: "/api/v1/quotes?theme=music", wantTheme: "music", wantIDs: []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := f.do(t, http.MethodGet, tt.target, "")
			require.Equal(t, http.StatusOK, w.Code)

			resp := decode[dto.QuoteListResponse](t, w)
			assert.Equal(t, tt.wantTheme, resp.Theme)
			assert.Equal(t, len(tt.wantIDs), resp.Count)

			got := make([]int, 0, len(resp.Quotes))
			for _, q := range resp.Quotes {
				got = append(got, q.ID)
			}
			assert.Equal(t, tt.wantIDs, got)
		})
	}
}

func TestQuoteHandler_ListQuotes_ThemeTooLong(t *testing.T) {
	f := newFixture(t, fixtureQuotes())

	w := f.do(t, http.MethodGet, "/api/v1/quotes?theme="+strings.Repeat("x", 65), "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), dto.ErrorCodeValidation)
}

func TestQuoteHandler_GetQuoteByID(t *testing.T) {
	f := newFixture(t, fixtureQuotes())

	tests := []struct {
		name       string
		target     string
		wantStatus int
		wantCode   string
	}{
		{name: "found", target: "/api/v1/quotes/3", wantStatus: http.StatusOK},
		{name: "missing", target: "/api/v1/quotes/42", wantStatus: http.StatusNotFound, wantCode: dto.ErrorCodeNotFound},
		{name: "not a number", target: "/api/v1/quotes/abc", wantStatus: http.StatusBadRequest, wantCode: dto.ErrorCodeBadRequest},
		{name: "zero", target: "/api/v1/quotes/0", wantStatus: http.StatusBadRequest, wantCode: dto.ErrorCodeBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := f.do(t, http.MethodGet, tt.target, "")
			assert.Equal(t, tt.wantStatus, w.Code)

			if tt.wantCode != "" {
				resp := decode[dto.ErrorResponse](t, w)
				assert.Equal(t, tt.wantCode, resp.Error.Code)
				return
			}

			resp := decode[dto.QuoteResponse](t, w)
			assert.Equal(t, 3, resp.ID)
			assert.Equal(t, "Fantasie ist wichtiger als Wissen.", resp.Text)
			assert.Equal(t, "Imagination is more important than knowledge.", resp.TextEN)
		})
	}
}

func TestQuoteHandler_RandomAndDaily(t *testing.T) {
	f := newFixture(t, fixtureQuotes())

	w := f.do(t, http.MethodGet, "/api/v1/quotes/random", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, decode[dto.QuoteResponse](t, w).ID)

	w = f.do(t, http.MethodGet, "/api/v1/quote-of-the-day", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, decode[dto.QuoteResponse](t, w).ID)

	prefs := decode[dto.PreferencesResponse](t, f.do(t, http.MethodGet, "/api/v1/preferences", ""))
	assert.Equal(t, &dto.DailyPickResponse{ID: 1, Date: "2026-10-19"}, prefs.QuoteOfTheDay)
}

func TestQuoteHandler_EmptyStore(t *testing.T) {
	f := newFixture(t, nil)

	for _, target := range []string{"/api/v1/quotes/random", "/api/v1/quote-of-the-day"} {
		w := f.do(t, http.MethodGet, target, "")
		assert.Equal(t, http.StatusNotFound, w.Code, target)
	}

	w := f.do(t, http.MethodPost, "/api/v1/overlay/open", "")
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[dto.OverlayResponse](t, w)
	assert.Equal(t, "closed", resp.State)
	assert.Nil(t, resp.Quote)
}

func TestQuoteHandler_Language(t *testing.T) {
	f := newFixture(t, fixtureQuotes())

	w := f.do(t, http.MethodPut, "/api/v1/preferences/language", `{"language":"en"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "en", decode[dto.PreferencesResponse](t, w).Language)

	w = f.do(t, http.MethodGet, "/api/v1/quotes/3", "")
	assert.Equal(t, "Imagination is more important than knowledge.", decode[dto.QuoteResponse](t, w).Text)

	w = f.do(t, http.MethodPut, "/api/v1/preferences/language", `{"language":"fr"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	resp := decode[dto.ErrorResponse](t, w)
	assert.Equal(t, dto.ErrorCodeValidation, resp.Error.Code)
	assert.Contains(t, resp.Error.Details, "language")

	w = f.do(t, http.MethodPut, "/api/v1/preferences/language", `{"language":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestQuoteHandler_Filter(t *testing.T) {
	f := newFixture(t, fixtureQuotes())

	w := f.do(t, http.MethodPut, "/api/v1/preferences/filter", `{"theme":"life"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "life", decode[dto.PreferencesResponse](t, w).ActiveFilter)

	w = f.do(t, http.MethodPut, "/api/v1/preferences/filter", `{"theme":""}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domain.FilterAll, decode[dto.PreferencesResponse](t, w).ActiveFilter)
}

func TestQuoteHandler_ToggleFavorite(t *testing.T) {
	f := newFixture(t, fixtureQuotes())

	w := f.do(t, http.MethodPost, "/api/v1/favorites/3/toggle", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, dto.FavoriteResponse{ID: 3, Favorite: true, FavoriteIDs: []int{3}}, decode[dto.FavoriteResponse](t, w))

	w = f.do(t, http.MethodPost, "/api/v1/favorites/1/toggle", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []int{3, 1}, decode[dto.FavoriteResponse](t, w).FavoriteIDs)

	stored, ok := f.store.Snapshot()[app.KeyFavorites]
	require.True(t, ok)
	assert.JSONEq(t, `[3,1]`, stored)

	w = f.do(t, http.MethodPost, "/api/v1/favorites/3/toggle", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, dto.FavoriteResponse{ID: 3, Favorite: false, FavoriteIDs: []int{1}}, decode[dto.FavoriteResponse](t, w))

	w = f.do(t, http.MethodGet, "/api/v1/quotes/1", "")
	assert.True(t, decode[dto.QuoteResponse](t, w).Favorite)

	w = f.do(t, http.MethodPost, "/api/v1/favorites/42/toggle", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestQuoteHandler_Share(t *testing.T) {
	f := newFixture(t, fixtureQuotes())

	w := f.do(t, http.MethodGet, "/api/v1/clipboard", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = f.do(t, http.MethodPost, "/api/v1/quotes/2/share", "")
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[dto.ShareResponse](t, w)
	assert.Equal(t, "clipboard", resp.Method)
	assert.Equal(t, `"Das Leben ist wie Fahrradfahren." — Albert Einstein`, resp.Text)
	require.NotNil(t, resp.Notice)
	assert.Equal(t, "Zitat in Zwischenablage kopiert!", resp.Notice.Message)
	assert.WithinDuration(t, fixedNow.Add(3*time.Second), resp.Notice.ExpiresAt, 0)

	w = f.do(t, http.MethodGet, "/api/v1/clipboard", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, resp.Text, decode[dto.ClipboardResponse](t, w).Text)

	w = f.do(t, http.MethodPost, "/api/v1/quotes/42/share", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestQuoteHandler_Overlay(t *testing.T) {
	f := newFixture(t, fixtureQuotes())

	w := f.do(t, http.MethodGet, "/api/v1/overlay", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, dto.OverlayResponse{State: "closed"}, decode[dto.OverlayResponse](t, w))

	w = f.do(t, http.MethodPost, "/api/v1/overlay/open", "")
	require.Equal(t, http.StatusOK, w.Code)

	opened := decode[dto.OverlayResponse](t, w)
	assert.Equal(t, "open", opened.State)
	assert.Equal(t, 3, opened.Listeners)
	require.NotNil(t, opened.Quote)
	assert.Equal(t, 1, opened.Quote.ID)

	w = f.do(t, http.MethodPost, "/api/v1/overlay/close", `{"trigger":"sideways"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(t, http.MethodPost, "/api/v1/overlay/close", `{"trigger":"cancel-key"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, dto.OverlayResponse{State: "closed"}, decode[dto.OverlayResponse](t, w))

	w = f.do(t, http.MethodPost, "/api/v1/overlay/close", `{"trigger":"close-button"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "closed", decode[dto.OverlayResponse](t, w).State)
}

func TestQuoteHandler_ClipboardNotConfigured(t *testing.T) {
	f := newFixture(t, fixtureQuotes())

	router := gin.New()
	NewQuoteHandler(f.session, f.dispatcher, nil).RegisterRoutes(router.Group("/api/v1"))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/clipboard", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}
