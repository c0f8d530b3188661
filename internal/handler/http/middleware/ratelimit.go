package middleware

import (
	"log/slog"
	"net/http"

	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/auth"
	"github.com/dayflow-hr/dayflow-backend-go/internal/handler/http/response"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/middleware/stdlib"
)

// RateLimit throttles by client IP. X-RateLimit-* headers are set on every response.
func RateLimit(l *limiter.Limiter) func(http.Handler) http.Handler {
	mw := stdlib.NewMiddleware(l,
		stdlib.WithLimitReachedHandler(func(w http.ResponseWriter, r *http.Request) {
			slog.Warn("Rate limit reached", "path", r.URL.Path, "remote_addr", r.RemoteAddr)
			response.HandleError(w, auth.ErrTooManyRequests)
		}),
		stdlib.WithErrorHandler(func(w http.ResponseWriter, r *http.Request, err error) {
			slog.Error("Rate limiter store error", "error", err)
			response.InternalServerError(w, "An unexpected error occurred")
		}),
	)
	return mw.Handler
}
