package urllog

import (
	"log/slog"
	"net/http"
)

// CustomLoggerMiddleware logs every incoming request before routing
func CustomLoggerMiddleware(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log.Info("request received",
				slog.String("method", r.Method),
				slog.String("url", r.URL.String()),
				slog.String("remote", r.RemoteAddr),
			)
			next.ServeHTTP(w, r)
		})
	}
}
