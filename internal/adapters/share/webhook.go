// Package share implements the native share target and the clipboard
// fallback used by the share action.
package share

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jsamuelsen/wisdom-quotes/internal/adapters/clients"
	"github.com/jsamuelsen/wisdom-quotes/internal/domain"
	"github.com/jsamuelsen/wisdom-quotes/internal/platform/config"
)

// webhookServiceName names the client, its spans and its health check.
const webhookServiceName = "share-webhook"

// payload is the body posted to the webhook.
type payload struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

// Webhook posts shared quotes to a configured URL. A nil client means no
// URL was configured and the webhook is never available.
type Webhook struct {
	client *clients.Client
	logger *slog.Logger
}

// NewWebhookClient builds the client for a webhook at url. A share is
// posted at most once: retries are disabled whatever cfg.Retry says, while
// the timeout and circuit breaker settings apply as configured.
func NewWebhookClient(url string, cfg config.ClientConfig, logger *slog.Logger) (*clients.Client, error) {
	retry := cfg.Retry
	retry.MaxAttempts = 1

	client, err := clients.New(&clients.Config{
		BaseURL:     url,
		ServiceName: webhookServiceName,
		Timeout:     cfg.Timeout,
		Retry:       retry,
		Circuit:     cfg.CircuitBreaker,
		Logger:      logger,
	})
	if err != nil {
		return nil, fmt.Errorf("creating share webhook client: %w", err)
	}

	return client, nil
}

// NewWebhook creates a webhook sharer. client may be nil.
func NewWebhook(client *clients.Client, logger *slog.Logger) *Webhook {
	if logger == nil {
		logger = slog.Default()
	}

	return &Webhook{client: client, logger: logger}
}

// Available reports whether a URL is configured and its circuit accepts
// requests. It is evaluated on every share.
func (w *Webhook) Available(context.Context) bool {
	return w.client != nil && w.client.Available()
}

// Share posts title and text. Any non-2xx response is an error.
func (w *Webhook) Share(ctx context.Context, title, text string) error {
	if w.client == nil {
		return domain.NewUnavailableError(webhookServiceName, "no webhook configured")
	}

	resp, err := w.client.PostJSON(ctx, "", payload{Title: title, Text: text})
	if err != nil {
		return fmt.Errorf("posting share: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("share webhook returned HTTP %d", resp.StatusCode)
	}

	w.logger.DebugContext(ctx, "quote shared", slog.Int("status_code", resp.StatusCode))

	return nil
}

// Name implements ports.HealthChecker.
func (w *Webhook) Name() string {
	return webhookServiceName
}

// Check fails while the webhook circuit is open. A missing webhook is
// healthy because sharing falls back to the clipboard.
func (w *Webhook) Check(context.Context) error {
	if w.client != nil && !w.client.Available() {
		return domain.NewUnavailableError(webhookServiceName, "circuit open")
	}

	return nil
}
