package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"arbor/internal/httputil"
)

// Recovery recovers from handler panics and returns a 500 problem response.
// Runs inside Auth so the panicking user, if authenticated, is logged.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Error("panic in request handler",
						"panic", rec,
						"method", r.Method,
						"path", r.URL.Path,
						"user_id", httputil.GetUserID(r),
						"stack", string(debug.Stack()),
					)

					httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
