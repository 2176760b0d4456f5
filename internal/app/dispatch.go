package app

import (
	"context"
	"errors"
	"log/slog"
	"slices"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/wisdom-quotes/internal/domain"
	"github.com/jsamuelsen/wisdom-quotes/internal/platform/logging"
	"github.com/jsamuelsen/wisdom-quotes/internal/platform/telemetry"
)

// Action names a user interaction.
type Action string

// Actions understood by the dispatcher.
const (
	ActionToggleFavorite Action = "toggle-favorite"
	ActionShare          Action = "share"
	ActionRandomQuote    Action = "random-quote"
	ActionToggleLanguage Action = "toggle-language"
	ActionSetLanguage    Action = "set-language"
	ActionSetFilter      Action = "set-filter"
	ActionCloseOverlay   Action = "close-overlay"
)

// Dispatch outcomes used as metric labels.
const (
	OutcomeOK    = "ok"
	OutcomeNoop  = "noop"
	OutcomeError = "error"
)

// ActionRequest is one dispatched interaction. QuoteID, Value and Trigger
// are read only by the actions that need them.
type ActionRequest struct {
	Action  Action
	QuoteID int
	Value   string
	Trigger string
}

// ActionResult reports what an action changed. Only the fields relevant to
// the action are set.
type ActionResult struct {
	Noop     bool
	Favorite bool
	Language domain.Language
	Share    *ShareResult
	Overlay  *OverlaySnapshot
}

// ActionHandler performs one action against the session.
type ActionHandler func(ctx context.Context, s *Session, req ActionRequest) (ActionResult, error)

// Dispatcher maps actions to handlers. Every dispatch is counted and traced.
type Dispatcher struct {
	session  *Session
	handlers map[Action]ActionHandler
	actions  *prometheus.CounterVec
	tracer   trace.Tracer
}

// NewDispatcher creates a dispatcher with the default action table and
// registers its counter with reg. A counter already registered by another
// dispatcher is reused. Logs go to the logger carried by the dispatch
// context.
func NewDispatcher(session *Session, reg prometheus.Registerer) (*Dispatcher, error) {
	counter := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "wisdom_quote_actions_total",
		Help: "User actions dispatched, by action and outcome.",
	}, []string{"action", "outcome"})

	if reg != nil {
		if err := reg.Register(counter); err != nil {
			var are prometheus.AlreadyRegisteredError
			if !errors.As(err, &are) {
				return nil, err
			}

			existing, ok := are.ExistingCollector.(*prometheus.CounterVec)
			if !ok {
				return nil, err
			}

			counter = existing
		}
	}

	return &Dispatcher{
		session: session,
		handlers: map[Action]ActionHandler{
			ActionToggleFavorite: toggleFavorite,
			ActionShare:          shareQuote,
			ActionRandomQuote:    openRandomQuote,
			ActionToggleLanguage: toggleLanguage,
			ActionSetLanguage:    setLanguage,
			ActionSetFilter:      setFilter,
			ActionCloseOverlay:   closeOverlay,
		},
		actions: counter,
		tracer:  telemetry.Tracer("app"),
	}, nil
}

// Actions returns the registered action names, sorted.
func (d *Dispatcher) Actions() []Action {
	names := make([]Action, 0, len(d.handlers))
	for a := range d.handlers {
		names = append(names, a)
	}

	slices.Sort(names)

	return names
}

// Dispatch runs the handler for req.Action. An unknown action is a
// validation error.
func (d *Dispatcher) Dispatch(ctx context.Context, req ActionRequest) (ActionResult, error) {
	handler, ok := d.handlers[req.Action]
	label := string(req.Action)

	if !ok {
		label = "unknown"
	}

	ctx, span := d.tracer.Start(ctx, "dispatch "+label, trace.WithAttributes(
		attribute.String("quote.action", label),
		attribute.Int("quote.id", req.QuoteID),
	))
	defer span.End()

	ctx = logging.WithAction(ctx, label)
	logger := logging.FromContext(ctx)

	if !ok {
		err := domain.NewValidationErrorWithValue("action", "unknown action", string(req.Action))
		d.finish(span, label, OutcomeError, err)

		return ActionResult{}, err
	}

	result, err := handler(ctx, d.session, req)

	switch {
	case err != nil:
		d.finish(span, label, OutcomeError, err)
		logger.WarnContext(ctx, "action failed", slog.Int("quote_id", req.QuoteID), slog.Any("error", err))
	case result.Noop:
		d.finish(span, label, OutcomeNoop, nil)
		logger.Log(ctx, logging.LevelTrace, "action had no effect", slog.Int("quote_id", req.QuoteID))
	default:
		d.finish(span, label, OutcomeOK, nil)
		logger.DebugContext(ctx, "action dispatched", slog.Int("quote_id", req.QuoteID))
	}

	return result, err
}

func (d *Dispatcher) finish(span trace.Span, action, outcome string, err error) {
	d.actions.WithLabelValues(action, outcome).Inc()
	span.SetAttributes(attribute.String("quote.outcome", outcome))

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}

func requireQuoteID(req ActionRequest) error {
	if req.QuoteID <= 0 {
		return domain.NewValidationErrorWithValue("id", "must be a positive quote id", req.QuoteID)
	}

	return nil
}

func toggleFavorite(ctx context.Context, s *Session, req ActionRequest) (ActionResult, error) {
	if err := requireQuoteID(req); err != nil {
		return ActionResult{}, err
	}

	favorite, err := s.ToggleFavorite(ctx, req.QuoteID)
	if domain.IsNotFound(err) {
		return ActionResult{Noop: true}, nil
	}

	if err != nil {
		return ActionResult{}, err
	}

	return ActionResult{Favorite: favorite}, nil
}

func shareQuote(ctx context.Context, s *Session, req ActionRequest) (ActionResult, error) {
	if err := requireQuoteID(req); err != nil {
		return ActionResult{}, err
	}

	result := s.Share(ctx, req.QuoteID)

	return ActionResult{Share: &result, Noop: result.Method == ShareNone}, nil
}

func openRandomQuote(ctx context.Context, s *Session, _ ActionRequest) (ActionResult, error) {
	snapshot, opened := s.OpenRandomOverlay(ctx)

	return ActionResult{Overlay: &snapshot, Noop: !opened}, nil
}

func toggleLanguage(_ context.Context, s *Session, _ ActionRequest) (ActionResult, error) {
	return ActionResult{Language: s.ToggleLanguage()}, nil
}

func setLanguage(_ context.Context, s *Session, req ActionRequest) (ActionResult, error) {
	lang, err := domain.ParseLanguage(req.Value)
	if err != nil {
		return ActionResult{}, err
	}

	s.SetLanguage(lang)

	return ActionResult{Language: lang}, nil
}

// setFilter accepts any tag. An empty value from a cleared form field
// means every quote.
func setFilter(_ context.Context, s *Session, req ActionRequest) (ActionResult, error) {
	tag := req.Value
	if tag == "" {
		tag = domain.FilterAll
	}

	s.SetFilter(tag)

	return ActionResult{}, nil
}

func closeOverlay(_ context.Context, s *Session, req ActionRequest) (ActionResult, error) {
	trigger, err := ParseDismissTrigger(req.Trigger)
	if err != nil {
		return ActionResult{}, err
	}

	closed := s.CloseOverlay(trigger)
	snapshot := s.Overlay()

	return ActionResult{Overlay: &snapshot, Noop: !closed}, nil
}
