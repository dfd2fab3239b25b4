package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
)

// testLogger возвращает логгер для тестов.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// TestBasicAuth_Valid проверяет успешную аутентификацию.
func TestBasicAuth_Valid(t *testing.T) {
	auth := NewBasicAuth("admin", "jogador123", testLogger())
	called := false
	handler := auth.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		if sub := SubjectFromContext(r.Context()); sub != "admin" {
			t.Errorf("ожидался subject=admin, получен %q", sub)
		}
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/jogadores/listar", nil)
	req.SetBasicAuth("admin", "jogador123")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if !called {
		t.Fatal("handler должен быть вызван")
	}
	if rec.Code != http.StatusOK {
		t.Errorf("ожидался статус 200, получен %d", rec.Code)
	}
}

// TestBasicAuth_Rejected проверяет отказ при неверных или отсутствующих учётных данных.
func TestBasicAuth_Rejected(t *testing.T) {
	auth := NewBasicAuth("admin", "jogador123", testLogger())
	handler := auth.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler не должен быть вызван")
	}))

	tests := []struct {
		name  string
		setup func(r *http.Request)
	}{
		{"без заголовка", func(r *http.Request) {}},
		{"неверное имя", func(r *http.Request) { r.SetBasicAuth("root", "jogador123") }},
		{"неверный пароль", func(r *http.Request) { r.SetBasicAuth("admin", "senha123") }},
		{"пустые данные", func(r *http.Request) { r.SetBasicAuth("", "") }},
		{"bearer", func(r *http.Request) { r.Header.Set("Authorization", "Bearer token") }},
		{"битый base64", func(r *http.Request) { r.Header.Set("Authorization", "Basic ???") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/jogadores/listar", nil)
			tt.setup(req)
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Errorf("ожидался статус 401, получен %d", rec.Code)
			}
			if got := rec.Header().Get("WWW-Authenticate"); got != `Basic realm="401"` {
				t.Errorf("неожиданный WWW-Authenticate: %q", got)
			}
		})
	}
}

func TestSubjectFromContext_Empty(t *testing.T) {
	if sub := SubjectFromContext(context.Background()); sub != "" {
		t.Errorf("ожидалась пустая строка, получено %q", sub)
	}
}
