// auth.go — middleware HTTP Basic аутентификации.
// Единственная пара учётных данных проверяется на каждом запросе,
// без сессий и токенов. При неудаче запрос прерывается с 401 и
// заголовком WWW-Authenticate до выполнения логики маршрута.
package middleware

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"net/http"

	apierrors "github.com/bigkaa/goartstore/record-store/internal/api/errors"
)

// contextKey — тип для ключей контекста (избегаем коллизий).
type contextKey string

const (
	// ContextKeySubject — ключ для имени аутентифицированного пользователя.
	ContextKeySubject contextKey = "basic_subject"
)

// challenge — значение заголовка WWW-Authenticate.
const challenge = `Basic realm="401"`

// BasicAuth — middleware Basic-аутентификации с одной парой учётных данных.
type BasicAuth struct {
	username string
	password string
	logger   *slog.Logger
}

// NewBasicAuth создаёт middleware для указанной пары учётных данных.
func NewBasicAuth(username, password string, logger *slog.Logger) *BasicAuth {
	return &BasicAuth{
		username: username,
		password: password,
		logger:   logger.With(slog.String("component", "basic_auth")),
	}
}

// Middleware возвращает HTTP middleware для Basic-аутентификации.
// Отсутствующий заголовок, неверное имя или пароль — 401.
func (a *BasicAuth) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, pass, ok := r.BasicAuth()
			if !ok || !a.valid(user, pass) {
				a.logger.Debug("Basic-аутентификация не пройдена",
					slog.Bool("credentials_present", ok),
					slog.String("remote_addr", r.RemoteAddr),
				)
				w.Header().Set("WWW-Authenticate", challenge)
				apierrors.Unauthorized(w, "Autenticação necessária")
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeySubject, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// valid сравнивает учётные данные за постоянное время.
func (a *BasicAuth) valid(user, pass string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(user), []byte(a.username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(pass), []byte(a.password)) == 1
	return userOK && passOK
}

// SubjectFromContext извлекает имя пользователя из контекста запроса.
// Возвращает пустую строку, если запрос не проходил аутентификацию.
func SubjectFromContext(ctx context.Context) string {
	subject, _ := ctx.Value(ContextKeySubject).(string)
	return subject
}
