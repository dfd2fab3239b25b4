// logging.go — журнал HTTP-запросов Record Store через slog.
package middleware

import (
	"log/slog"
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// RequestLogger возвращает middleware, пишущий одну запись на запрос.
// route — шаблон маршрута chi (unmatched, если маршрут не найден),
// user — имя из заголовка Basic, как его прислал клиент (до проверки пароля).
func RequestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := recordStatus(w)

			next.ServeHTTP(rec, r)

			attrs := []slog.Attr{
				slog.String("method", r.Method),
				slog.String("route", routePattern(r)),
				slog.String("path", r.URL.Path),
				slog.Int("status", rec.status),
				slog.Duration("duration", time.Since(start)),
				slog.Int64("bytes", rec.written),
				slog.String("remote_addr", r.RemoteAddr),
				slog.String("request_id", chimw.GetReqID(r.Context())),
			}
			if user, _, ok := r.BasicAuth(); ok {
				attrs = append(attrs, slog.String("user", user))
			}

			logger.LogAttrs(r.Context(), levelForStatus(rec.status), "HTTP запрос", attrs...)
		})
	}
}

// levelForStatus: 5xx — ERROR, 4xx — WARN, иначе INFO.
func levelForStatus(status int) slog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	case status >= http.StatusBadRequest:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}
