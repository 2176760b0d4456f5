package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/wisdom-quotes/internal/adapters/http/dto"
	"github.com/jsamuelsen/wisdom-quotes/internal/adapters/share"
	"github.com/jsamuelsen/wisdom-quotes/internal/app"
	"github.com/jsamuelsen/wisdom-quotes/internal/domain"
)

// ClipboardReader exposes the last text copied by the clipboard fallback.
type ClipboardReader interface {
	Read() (share.Clip, bool)
}

// QuoteHandler serves the JSON API. Reads go straight to the session;
// mutations go through the dispatcher so they are counted and traced like
// the page's buttons.
type QuoteHandler struct {
	session    *app.Session
	dispatcher *app.Dispatcher
	clipboard  ClipboardReader
}

// NewQuoteHandler creates a new quote handler. clipboard may be nil.
func NewQuoteHandler(session *app.Session, dispatcher *app.Dispatcher, clipboard ClipboardReader) *QuoteHandler {
	return &QuoteHandler{
		session:    session,
		dispatcher: dispatcher,
		clipboard:  clipboard,
	}
}

// RegisterRoutes registers the API routes on rg.
func (h *QuoteHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/quotes", h.ListQuotes)
	rg.GET("/quotes/random", h.GetRandomQuote)
	rg.GET("/quotes/:id", h.GetQuoteByID)
	rg.POST("/quotes/:id/share", h.ShareQuote)
	rg.GET("/quote-of-the-day", h.GetQuoteOfTheDay)

	rg.GET("/preferences", h.GetPreferences)
	rg.PUT("/preferences/language", h.SetLanguage)
	rg.PUT("/preferences/filter", h.SetFilter)
	rg.POST("/favorites/:id/toggle", h.ToggleFavorite)

	rg.GET("/overlay", h.GetOverlay)
	rg.POST("/overlay/open", h.OpenOverlay)
	rg.POST("/overlay/close", h.CloseOverlay)

	rg.GET("/clipboard", h.GetClipboard)
}

// ListQuotes handles GET /api/v1/quotes?theme=
// Returns the quotes passing the theme filter in load order. No theme
// selects every quote.
//
// @Summary List quotes
// @Tags quotes
// @Produce json
// @Param theme query string false "Theme tag or all"
// @Success 200 {object} dto.QuoteListResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/v1/quotes [get]
func (h *QuoteHandler) ListQuotes(c *gin.Context) {
	var query dto.QuoteListQuery
	if err := dto.BindQueryAndValidate(c, &query); err != nil {
		dto.RespondWithBindError(c, err)
		return
	}

	theme := query.Theme
	if theme == "" {
		theme = domain.FilterAll
	}

	prefs := h.session.Preferences(c.Request.Context())
	quotes := h.session.Quotes(theme)

	resp := dto.QuoteListResponse{
		Theme:  theme,
		Count:  len(quotes),
		Quotes: make([]dto.QuoteResponse, 0, len(quotes)),
	}

	for i := range quotes {
		resp.Quotes = append(resp.Quotes, dto.NewQuoteResponse(&quotes[i], prefs.Language, prefs.IsFavorite(quotes[i].ID)))
	}

	c.JSON(http.StatusOK, resp)
}

// GetQuoteByID handles GET /api/v1/quotes/:id
//
// @Summary Get a quote by ID
// @Tags quotes
// @Produce json
// @Param id path int true "Quote ID"
// @Success 200 {object} dto.QuoteResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/quotes/{id} [get]
func (h *QuoteHandler) GetQuoteByID(c *gin.Context) {
	id, ok := quoteIDParam(c)
	if !ok {
		return
	}

	q, err := h.session.Quote(id)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	h.respondQuote(c, &q)
}

// GetRandomQuote handles GET /api/v1/quotes/random
// Draws uniformly from all quotes, independent of the quote of the day.
//
// @Summary Get a random quote
// @Tags quotes
// @Produce json
// @Success 200 {object} dto.QuoteResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/quotes/random [get]
func (h *QuoteHandler) GetRandomQuote(c *gin.Context) {
	q, err := h.session.RandomQuote()
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	h.respondQuote(c, &q)
}

// GetQuoteOfTheDay handles GET /api/v1/quote-of-the-day
//
// @Summary Get today's quote
// @Tags quotes
// @Produce json
// @Success 200 {object} dto.QuoteResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/quote-of-the-day [get]
func (h *QuoteHandler) GetQuoteOfTheDay(c *gin.Context) {
	q, ok := h.session.QuoteOfTheDay(c.Request.Context())
	if !ok {
		dto.HandleError(c, domain.NewNotFoundError("quote of the day", ""))
		return
	}

	h.respondQuote(c, &q)
}

// ShareQuote handles POST /api/v1/quotes/:id/share
// Shares through the webhook when available, otherwise copies to the
// clipboard and posts a notice.
//
// @Summary Share a quote
// @Tags quotes
// @Produce json
// @Param id path int true "Quote ID"
// @Success 200 {object} dto.ShareResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/quotes/{id}/share [post]
func (h *QuoteHandler) ShareQuote(c *gin.Context) {
	id, ok := quoteIDParam(c)
	if !ok {
		return
	}

	if _, err := h.session.Quote(id); err != nil {
		dto.HandleError(c, err)
		return
	}

	result, ok := h.dispatch(c, app.ActionRequest{Action: app.ActionShare, QuoteID: id})
	if !ok {
		return
	}

	c.JSON(http.StatusOK, dto.NewShareResponse(result.Share))
}

// GetPreferences handles GET /api/v1/preferences
//
// @Summary Get the preference state
// @Tags preferences
// @Produce json
// @Success 200 {object} dto.PreferencesResponse
// @Router /api/v1/preferences [get]
func (h *QuoteHandler) GetPreferences(c *gin.Context) {
	c.JSON(http.StatusOK, dto.NewPreferencesResponse(h.session.Preferences(c.Request.Context())))
}

// SetLanguage handles PUT /api/v1/preferences/language
//
// @Summary Set the display language
// @Tags preferences
// @Accept json
// @Produce json
// @Param body body dto.LanguageRequest true "Language"
// @Success 200 {object} dto.PreferencesResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/v1/preferences/language [put]
func (h *QuoteHandler) SetLanguage(c *gin.Context) {
	var req dto.LanguageRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.RespondWithBindError(c, err)
		return
	}

	if _, ok := h.dispatch(c, app.ActionRequest{Action: app.ActionSetLanguage, Value: req.Language}); !ok {
		return
	}

	h.GetPreferences(c)
}

// SetFilter handles PUT /api/v1/preferences/filter
//
// @Summary Set the gallery filter
// @Tags preferences
// @Accept json
// @Produce json
// @Param body body dto.FilterRequest true "Theme"
// @Success 200 {object} dto.PreferencesResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/v1/preferences/filter [put]
func (h *QuoteHandler) SetFilter(c *gin.Context) {
	var req dto.FilterRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.RespondWithBindError(c, err)
		return
	}

	if _, ok := h.dispatch(c, app.ActionRequest{Action: app.ActionSetFilter, Value: req.Theme}); !ok {
		return
	}

	h.GetPreferences(c)
}

// ToggleFavorite handles POST /api/v1/favorites/:id/toggle
//
// @Summary Toggle a favorite
// @Tags preferences
// @Produce json
// @Param id path int true "Quote ID"
// @Success 200 {object} dto.FavoriteResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/v1/favorites/{id}/toggle [post]
func (h *QuoteHandler) ToggleFavorite(c *gin.Context) {
	id, ok := quoteIDParam(c)
	if !ok {
		return
	}

	result, ok := h.dispatch(c, app.ActionRequest{Action: app.ActionToggleFavorite, QuoteID: id})
	if !ok {
		return
	}

	if result.Noop {
		dto.HandleError(c, domain.NewQuoteNotFoundError(id))
		return
	}

	c.JSON(http.StatusOK, dto.FavoriteResponse{
		ID:          id,
		Favorite:    result.Favorite,
		FavoriteIDs: dto.NewPreferencesResponse(h.session.Preferences(c.Request.Context())).FavoriteIDs,
	})
}

// GetOverlay handles GET /api/v1/overlay
//
// @Summary Get the overlay state
// @Tags overlay
// @Produce json
// @Success 200 {object} dto.OverlayResponse
// @Router /api/v1/overlay [get]
func (h *QuoteHandler) GetOverlay(c *gin.Context) {
	h.respondOverlay(c, h.session.Overlay())
}

// OpenOverlay handles POST /api/v1/overlay/open
// Opens the overlay on a random quote. With no quotes it stays closed.
//
// @Summary Open the random-quote overlay
// @Tags overlay
// @Produce json
// @Success 200 {object} dto.OverlayResponse
// @Router /api/v1/overlay/open [post]
func (h *QuoteHandler) OpenOverlay(c *gin.Context) {
	result, ok := h.dispatch(c, app.ActionRequest{Action: app.ActionRandomQuote})
	if !ok {
		return
	}

	h.respondOverlay(c, *result.Overlay)
}

// CloseOverlay handles POST /api/v1/overlay/close
// Any of the three triggers closes the overlay and removes all listeners.
//
// @Summary Close the overlay
// @Tags overlay
// @Accept json
// @Produce json
// @Param body body dto.OverlayCloseRequest true "Trigger"
// @Success 200 {object} dto.OverlayResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/v1/overlay/close [post]
func (h *QuoteHandler) CloseOverlay(c *gin.Context) {
	var req dto.OverlayCloseRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.RespondWithBindError(c, err)
		return
	}

	result, ok := h.dispatch(c, app.ActionRequest{Action: app.ActionCloseOverlay, Trigger: req.Trigger})
	if !ok {
		return
	}

	h.respondOverlay(c, *result.Overlay)
}

// GetClipboard handles GET /api/v1/clipboard
// Returns the text last copied by the clipboard fallback.
//
// @Summary Read the clipboard
// @Tags share
// @Produce json
// @Success 200 {object} dto.ClipboardResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/clipboard [get]
func (h *QuoteHandler) GetClipboard(c *gin.Context) {
	if h.clipboard == nil {
		dto.HandleError(c, domain.NewNotFoundError("clipboard", ""))
		return
	}

	clip, ok := h.clipboard.Read()
	if !ok {
		dto.HandleError(c, domain.NewNotFoundError("clipboard entry", ""))
		return
	}

	c.JSON(http.StatusOK, dto.ClipboardResponse{Text: clip.Text, CopiedAt: clip.CopiedAt})
}

func (h *QuoteHandler) dispatch(c *gin.Context, req app.ActionRequest) (app.ActionResult, bool) {
	result, err := h.dispatcher.Dispatch(c.Request.Context(), req)
	if err != nil {
		dto.HandleError(c, err)
		return result, false
	}

	return result, true
}

func (h *QuoteHandler) respondQuote(c *gin.Context, q *domain.Quote) {
	prefs := h.session.Preferences(c.Request.Context())
	c.JSON(http.StatusOK, dto.NewQuoteResponse(q, prefs.Language, prefs.IsFavorite(q.ID)))
}

func (h *QuoteHandler) respondOverlay(c *gin.Context, snapshot app.OverlaySnapshot) {
	resp := dto.OverlayResponse{
		State:     string(snapshot.State),
		Listeners: snapshot.Listeners,
	}

	if snapshot.State == app.OverlayOpen {
		if q, err := h.session.Quote(snapshot.QuoteID); err == nil {
			prefs := h.session.Preferences(c.Request.Context())
			qr := dto.NewQuoteResponse(&q, prefs.Language, prefs.IsFavorite(q.ID))
			resp.Quote = &qr
		}
	}

	c.JSON(http.StatusOK, resp)
}

// quoteIDParam parses the :id path parameter. It writes a 400 and reports
// false when the id is not a positive integer.
func quoteIDParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		dto.RespondWithErrorCode(c, dto.ErrorCodeBadRequest, "quote id must be a positive integer")
		return 0, false
	}

	return id, true
}
