package dto

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/wisdom-quotes/internal/domain"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestContext(method, target string, body string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	if body == "" {
		c.Request = httptest.NewRequest(method, target, nil)
	} else {
		c.Request = httptest.NewRequest(method, target, strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
	}

	return c, w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	return resp
}

// TestNewErrorResponseWithDetails tests creating an error response with details.
func TestNewErrorResponseWithDetails(t *testing.T) {
	got := NewErrorResponseWithDetails(ErrorCodeValidation, "request validation failed", map[string]string{
		"language": "must be one of: de en",
	})

	assert.Equal(t, &ErrorResponse{
		Error: ErrorDetail{
			Code:    ErrorCodeValidation,
			Message: "request validation failed",
			Details: map[string]string{"language": "must be one of: de en"},
		},
	}, got)

	same := got.WithTraceID("trace-123")
	assert.Same(t, got, same)
	assert.Equal(t, "trace-123", got.TraceID)
}

// TestHTTPStatusFromCode tests mapping error codes to HTTP status codes.
func TestHTTPStatusFromCode(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{ErrorCodeNotFound, http.StatusNotFound},
		{ErrorCodeValidation, http.StatusBadRequest},
		{ErrorCodeBadRequest, http.StatusBadRequest},
		{ErrorCodeTooLarge, http.StatusRequestEntityTooLarge},
		{ErrorCodeUnavailable, http.StatusServiceUnavailable},
		{ErrorCodeTimeout, http.StatusServiceUnavailable},
		{ErrorCodeInternal, http.StatusInternalServerError},
		{"UNKNOWN_CODE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatusFromCode(tt.code))
		})
	}
}

// TestGetTraceID tests extracting trace ID from gin context.
func TestGetTraceID(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*gin.Context)
		want  string
	}{
		{
			name:  "trace ID in context",
			setup: func(c *gin.Context) { c.Set(ContextKeyTraceID, "context-trace-123") },
			want:  "context-trace-123",
		},
		{
			name:  "request ID header as fallback",
			setup: func(c *gin.Context) { c.Request.Header.Set("X-Request-ID", "header-trace-456") },
			want:  "header-trace-456",
		},
		{
			name: "context takes precedence",
			setup: func(c *gin.Context) {
				c.Set(ContextKeyTraceID, "context-trace-123")
				c.Request.Header.Set("X-Request-ID", "header-trace-456")
			},
			want: "context-trace-123",
		},
		{
			name:  "no trace ID",
			setup: func(*gin.Context) {},
			want:  "",
		},
		{
			name:  "wrong type in context",
			setup: func(c *gin.Context) { c.Set(ContextKeyTraceID, 12345) },
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestContext(http.MethodGet, "/", "")
			tt.setup(c)

			assert.Equal(t, tt.want, GetTraceID(c))
		})
	}
}

// TestHandleError tests mapping domain errors to the envelope.
func TestHandleError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantCode    string
		wantMessage string
		wantDetails map[string]string
	}{
		{
			name:        "quote not found",
			err:         domain.NewQuoteNotFoundError(42),
			wantStatus:  http.StatusNotFound,
			wantCode:    ErrorCodeNotFound,
			wantMessage: "42",
		},
		{
			name:        "wrapped not found",
			err:         fmt.Errorf("toggling favorite: %w", domain.NewQuoteNotFoundError(7)),
			wantStatus:  http.StatusNotFound,
			wantCode:    ErrorCodeNotFound,
			wantMessage: "7",
		},
		{
			name:        "validation error carries field",
			err:         domain.NewValidationErrorWithValue("language", "must be one of: de en", "fr"),
			wantStatus:  http.StatusBadRequest,
			wantCode:    ErrorCodeValidation,
			wantMessage: "language",
			wantDetails: map[string]string{"language": "must be one of: de en"},
		},
		{
			name:        "unavailable share target",
			err:         domain.NewUnavailableError("share-webhook", "circuit open"),
			wantStatus:  http.StatusServiceUnavailable,
			wantCode:    ErrorCodeUnavailable,
			wantMessage: "temporarily unavailable",
		},
		{
			name:        "load error hides detail",
			err:         domain.NewLoadError("quotes.json", "unexpected end of JSON input", errors.New("eof")),
			wantStatus:  http.StatusServiceUnavailable,
			wantCode:    ErrorCodeUnavailable,
			wantMessage: "temporarily unavailable",
		},
		{
			name:        "unknown error is internal",
			err:         errors.New("database is locked"),
			wantStatus:  http.StatusInternalServerError,
			wantCode:    ErrorCodeInternal,
			wantMessage: "internal error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestContext(http.MethodGet, "/", "")
			c.Set(ContextKeyTraceID, "trace-abc")

			HandleError(c, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)

			resp := decodeError(t, w)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
			assert.Contains(t, resp.Error.Message, tt.wantMessage)
			assert.Equal(t, tt.wantDetails, resp.Error.Details)
			assert.Equal(t, "trace-abc", resp.TraceID)
			assert.NotContains(t, resp.Error.Message, "database is locked")
		})
	}

	t.Run("nil error writes nothing", func(t *testing.T) {
		c, w := newTestContext(http.MethodGet, "/", "")

		HandleError(c, nil)

		assert.False(t, c.Writer.Written())
		assert.Empty(t, w.Body.String())
	})
}

// TestAbortWithError tests that the chain stops.
func TestAbortWithError(t *testing.T) {
	c, w := newTestContext(http.MethodGet, "/", "")

	AbortWithError(c, domain.NewQuoteNotFoundError(3))

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusNotFound, w.Code)
}

// TestRespondWithBindError tests the envelope chosen for bind failures.
func TestRespondWithBindError(t *testing.T) {
	t.Run("validation failure lists fields", func(t *testing.T) {
		c, w := newTestContext(http.MethodPut, "/", `{"language":"fr"}`)

		var req LanguageRequest
		err := BindAndValidate(c, &req)
		require.Error(t, err)

		RespondWithBindError(c, err)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeError(t, w)
		assert.Equal(t, ErrorCodeValidation, resp.Error.Code)
		assert.Equal(t, "must be one of: de en", resp.Error.Details["language"])
	})

	t.Run("malformed body is a bad request", func(t *testing.T) {
		c, w := newTestContext(http.MethodPut, "/", `{language`)

		var req LanguageRequest
		err := BindAndValidate(c, &req)
		require.ErrorIs(t, err, ErrBinding)

		RespondWithBindError(c, err)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, ErrorCodeBadRequest, decodeError(t, w).Error.Code)
	})

	t.Run("body over the limit is 413", func(t *testing.T) {
		c, w := newTestContext(http.MethodPut, "/", `{"language":"`+strings.Repeat("d", 64)+`"}`)
		c.Request.Body = http.MaxBytesReader(w, c.Request.Body, 8)

		var req LanguageRequest
		err := BindAndValidate(c, &req)
		require.Error(t, err)

		RespondWithBindError(c, err)

		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
		assert.Equal(t, ErrorCodeTooLarge, decodeError(t, w).Error.Code)
	})
}
