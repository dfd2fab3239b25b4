package service

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

// TestServe проверяет отдачу существующего файла.
func TestServe(t *testing.T) {
	store := newTestStore(t)
	content := []byte("bytes para download")
	if err := os.WriteFile(filepath.Join(store.Dir(), "123-dados.txt"), content, 0o600); err != nil {
		t.Fatal(err)
	}

	svc := NewDownloadService(store, testLogger())
	req := httptest.NewRequest(http.MethodGet, "/download/123-dados.txt", nil)
	rec := httptest.NewRecorder()

	if dlErr := svc.Serve(rec, req, "123-dados.txt"); dlErr != nil {
		t.Fatalf("неожиданная ошибка: %v", dlErr)
	}

	if rec.Code != http.StatusOK {
		t.Errorf("ожидался статус 200, получен %d", rec.Code)
	}
	if !bytes.Equal(rec.Body.Bytes(), content) {
		t.Error("содержимое ответа не совпадает")
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/plain; charset=utf-8" {
		t.Errorf("неожиданный Content-Type: %s", ct)
	}
}

// TestServe_NotFound проверяет 404 для отсутствующих и недопустимых имён.
func TestServe_NotFound(t *testing.T) {
	svc := NewDownloadService(newTestStore(t), testLogger())

	for _, name := range []string{"nao-existe.txt", "..", "../etc/passwd"} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/download/x", nil)
			rec := httptest.NewRecorder()

			dlErr := svc.Serve(rec, req, name)
			if dlErr == nil {
				t.Fatal("ожидалась ошибка")
			}
			if dlErr.StatusCode != http.StatusNotFound {
				t.Errorf("ожидался статус 404, получен %d", dlErr.StatusCode)
			}
			if rec.Body.Len() != 0 {
				t.Error("сервис не должен писать тело при ошибке")
			}
		})
	}
}
