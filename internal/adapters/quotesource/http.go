package quotesource

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/jsamuelsen/wisdom-quotes/internal/adapters/clients"
	"github.com/jsamuelsen/wisdom-quotes/internal/domain"
	"github.com/jsamuelsen/wisdom-quotes/internal/platform/logging"
)

// maxDocumentSize caps how much of a remote response is read.
const maxDocumentSize = 4 << 20

// HTTP fetches the quote resource from a URL through the instrumented
// client, so retries, the circuit breaker and tracing all apply.
type HTTP struct {
	client *clients.Client
	logger *slog.Logger
}

// NewHTTP creates a remote quote source. The client's BaseURL is the
// document URL. Panics if client is nil.
func NewHTTP(client *clients.Client, logger *slog.Logger) *HTTP {
	if client == nil {
		panic("quotesource.HTTP: client is required")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &HTTP{client: client, logger: logger}
}

// Name returns the document URL.
func (h *HTTP) Name() string {
	return h.client.BaseURL()
}

// Load fetches and decodes the document. Transport failures, open circuits
// and non-200 responses all become a *domain.LoadError.
func (h *HTTP) Load(ctx context.Context) ([]domain.Quote, error) {
	h.logger.Log(ctx, logging.LevelTrace, "fetching quote document", slog.String("url", h.Name()))

	resp, err := h.client.Get(ctx, "")
	if err != nil {
		reason := "request failed"
		if errors.Is(err, clients.ErrCircuitOpen) {
			reason = "circuit open"
		}

		return nil, domain.NewLoadError(h.Name(), reason, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		h.logger.WarnContext(ctx, "quote document request rejected",
			slog.String("url", h.Name()),
			slog.Int("status_code", resp.StatusCode),
		)

		return nil, domain.NewLoadError(h.Name(), fmt.Sprintf("HTTP %d", resp.StatusCode), nil)
	}

	return Decode(ctx, h.Name(), io.LimitReader(resp.Body, maxDocumentSize))
}

// Check reports whether the remote source is reachable. Implements
// ports.HealthChecker.
func (h *HTTP) Check(ctx context.Context) error {
	if !h.client.Available() {
		return domain.NewUnavailableError(h.client.ServiceName(), "circuit open")
	}

	return nil
}
