package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/wisdom-quotes/internal/adapters/http/dto"
	"github.com/jsamuelsen/wisdom-quotes/internal/platform/logging"
)

// Timeout returns middleware that puts a deadline on the request context.
// Handlers run on the request goroutine and must respect ctx.Done(). When
// the deadline passed and the handler wrote nothing, a 503 with the
// TIMEOUT error envelope is returned.
func Timeout(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if timeout <= 0 {
			c.Next()
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)

		c.Next()

		if !errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return
		}

		logging.FromContext(ctx).Warn("request timeout",
			slog.String("path", c.Request.URL.Path),
			slog.String("method", c.Request.Method),
			slog.Duration("timeout", timeout),
		)

		if !c.Writer.Written() {
			dto.AbortWithErrorCode(c, dto.ErrorCodeTimeout, "request timeout exceeded")
		}
	}
}

// BodyLimit caps the request body at maxBytes. Reading past the limit
// fails, and binding reports it as a 413 via the error envelope.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if maxBytes > 0 && c.Request.Body != nil {
			if c.Request.ContentLength > maxBytes {
				dto.AbortWithErrorCode(c, dto.ErrorCodeTooLarge, "request body too large")
				return
			}

			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}

		c.Next()
	}
}
