// cors.go — разрешающие CORS-заголовки и короткое замыкание preflight.
package middleware

import "net/http"

// Значения CORS-заголовков, одинаковые для всех ответов.
const (
	corsAllowOrigin  = "*"
	corsAllowHeaders = "Origin, X-Requested-With, Content-Type, Accept"
	corsAllowMethods = "GET, POST, PUT, PATCH, DELETE, OPTIONS"
)

// CORS возвращает middleware, добавляющий CORS-заголовки к каждому ответу.
// Запрос OPTIONS на любой путь завершается статусом 200 без маршрутизации,
// аутентификации и доменной логики. Должен стоять до роутинга и auth.
func CORS() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("Access-Control-Allow-Origin", corsAllowOrigin)
			h.Set("Access-Control-Allow-Headers", corsAllowHeaders)
			h.Set("Access-Control-Allow-Methods", corsAllowMethods)

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
