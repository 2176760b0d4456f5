package dto

import (
	"time"

	"github.com/jsamuelsen/wisdom-quotes/internal/app"
	"github.com/jsamuelsen/wisdom-quotes/internal/domain"
)

// QuoteResponse is one quote in the current language, with both texts
// included for clients that switch locally.
type QuoteResponse struct {
	ID       int      `json:"id"`
	Text     string   `json:"text"`
	TextDE   string   `json:"textDE"`
	TextEN   string   `json:"textEN"`
	Author   string   `json:"author"`
	Themes   []string `json:"themes"`
	Favorite bool     `json:"favorite"`
}

// NewQuoteResponse converts a quote for lang.
func NewQuoteResponse(q *domain.Quote, lang domain.Language, favorite bool) QuoteResponse {
	themes := q.Themes
	if themes == nil {
		themes = []string{}
	}

	return QuoteResponse{
		ID:       q.ID,
		Text:     q.Text(lang),
		TextDE:   q.TextPrimary,
		TextEN:   q.TextSecondary,
		Author:   q.Author,
		Themes:   themes,
		Favorite: favorite,
	}
}

// QuoteListResponse wraps a filtered quote list.
type QuoteListResponse struct {
	Theme  string          `json:"theme"`
	Count  int             `json:"count"`
	Quotes []QuoteResponse `json:"quotes"`
}

// QuoteListQuery is the query of GET /api/v1/quotes.
type QuoteListQuery struct {
	Theme string `form:"theme" json:"theme" validate:"omitempty,max=64"`
}

// DailyPickResponse is the cached quote of the day.
type DailyPickResponse struct {
	ID   int    `json:"id"`
	Date string `json:"date"`
}

// PreferencesResponse is the preference state.
type PreferencesResponse struct {
	Language      string             `json:"language"`
	ActiveFilter  string             `json:"activeFilter"`
	FavoriteIDs   []int              `json:"favoriteIds"`
	QuoteOfTheDay *DailyPickResponse `json:"quoteOfTheDay,omitempty"`
}

// NewPreferencesResponse converts the preference state.
func NewPreferencesResponse(p *domain.Preferences) PreferencesResponse {
	resp := PreferencesResponse{
		Language:     string(p.Language),
		ActiveFilter: p.ActiveFilter,
		FavoriteIDs:  p.FavoriteIDs,
	}

	if resp.FavoriteIDs == nil {
		resp.FavoriteIDs = []int{}
	}

	if p.QuoteOfTheDay != nil {
		resp.QuoteOfTheDay = &DailyPickResponse{ID: p.QuoteOfTheDay.ID, Date: p.QuoteOfTheDay.Date}
	}

	return resp
}

// LanguageRequest is the body of PUT /api/v1/preferences/language.
type LanguageRequest struct {
	Language string `json:"language" validate:"required,language"`
}

// FilterRequest is the body of PUT /api/v1/preferences/filter. An empty
// theme selects every quote.
type FilterRequest struct {
	Theme string `json:"theme" validate:"max=64"`
}

// FavoriteResponse reports the favorite flag after a toggle.
type FavoriteResponse struct {
	ID          int   `json:"id"`
	Favorite    bool  `json:"favorite"`
	FavoriteIDs []int `json:"favoriteIds"`
}

// OverlayCloseRequest is the body of POST /api/v1/overlay/close.
type OverlayCloseRequest struct {
	Trigger string `json:"trigger" validate:"required,oneof=close-button outside-click cancel-key"`
}

// OverlayResponse is the overlay state. Quote is set while open.
type OverlayResponse struct {
	State     string         `json:"state"`
	Listeners int            `json:"listeners"`
	Quote     *QuoteResponse `json:"quote,omitempty"`
}

// NoticeResponse is a transient notification.
type NoticeResponse struct {
	Message   string    `json:"message"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// ShareResponse reports how a quote was shared.
type ShareResponse struct {
	Method string          `json:"method"`
	Text   string          `json:"text,omitempty"`
	Notice *NoticeResponse `json:"notice,omitempty"`
}

// NewShareResponse converts a share result.
func NewShareResponse(r *app.ShareResult) ShareResponse {
	resp := ShareResponse{Method: string(r.Method), Text: r.Text}
	if r.Notice != nil {
		resp.Notice = &NoticeResponse{Message: r.Notice.Message, ExpiresAt: r.Notice.ExpiresAt}
	}

	return resp
}

// ClipboardResponse is the last text copied by the clipboard fallback.
type ClipboardResponse struct {
	Text     string    `json:"text"`
	CopiedAt time.Time `json:"copiedAt"`
}

// ActionForm is the form posted by the page's buttons. Which fields are
// read depends on the action.
type ActionForm struct {
	ID      int    `form:"id" validate:"gte=0"`
	Value   string `form:"value" validate:"max=64"`
	Trigger string `form:"trigger" validate:"omitempty,oneof=close-button outside-click cancel-key"`
}

// ActionRequest converts the form for the dispatcher.
func (f *ActionForm) ActionRequest(action string) app.ActionRequest {
	return app.ActionRequest{
		Action:  app.Action(action),
		QuoteID: f.ID,
		Value:   f.Value,
		Trigger: f.Trigger,
	}
}
