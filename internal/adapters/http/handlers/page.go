package handlers

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"

	"github.com/jsamuelsen/wisdom-quotes/internal/adapters/http/dto"
	"github.com/jsamuelsen/wisdom-quotes/internal/app"
)

//go:embed templates/*.html
var templateFS embed.FS

const pageTemplate = "page.html"

// cardView is the data passed to the shared "card" template.
type cardView struct {
	Card   app.QuoteCard
	Labels app.Labels
}

func withLabels(card app.QuoteCard, labels app.Labels) cardView {
	return cardView{Card: card, Labels: labels}
}

// PageHandler renders the widget as a server-side HTML document. Buttons
// post forms to /actions/:action and are redirected back to the page.
type PageHandler struct {
	session    *app.Session
	dispatcher *app.Dispatcher
	tmpl       *template.Template
}

// NewPageHandler parses the embedded page template.
func NewPageHandler(session *app.Session, dispatcher *app.Dispatcher) (*PageHandler, error) {
	tmpl, err := template.New(pageTemplate).Funcs(template.FuncMap{
		"join":       strings.Join,
		"withLabels": withLabels,
	}).ParseFS(templateFS, "templates/"+pageTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing page template: %w", err)
	}

	return &PageHandler{
		session:    session,
		dispatcher: dispatcher,
		tmpl:       tmpl,
	}, nil
}

// RegisterRoutes registers the page and the form action endpoint.
func (h *PageHandler) RegisterRoutes(engine *gin.Engine) {
	engine.GET("/", h.Render)
	engine.POST("/actions/:action", h.Action)
}

// Render handles GET /
func (h *PageHandler) Render(c *gin.Context) {
	page := h.session.Page(c.Request.Context())

	c.Render(http.StatusOK, render.HTML{
		Template: h.tmpl,
		Name:     pageTemplate,
		Data:     page,
	})
}

// Action handles POST /actions/:action
// The form fields id, value and trigger are passed to the dispatcher. On
// success the browser is sent back to the page with 303 See Other.
func (h *PageHandler) Action(c *gin.Context) {
	var form dto.ActionForm
	if err := dto.BindFormAndValidate(c, &form); err != nil {
		dto.RespondWithBindError(c, err)
		return
	}

	if _, err := h.dispatcher.Dispatch(c.Request.Context(), form.ActionRequest(c.Param("action"))); err != nil {
		dto.HandleError(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, "/")
}
