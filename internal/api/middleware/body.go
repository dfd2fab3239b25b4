// body.go — разбор JSON-тела запроса до вызова handler'а.
// Разобранный объект передаётся через контекст запроса.
package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	apierrors "github.com/bigkaa/goartstore/record-store/internal/api/errors"
	"github.com/bigkaa/goartstore/record-store/internal/domain/model"
)

// ContextKeyBody — ключ для разобранного JSON-тела в контексте запроса.
const ContextKeyBody contextKey = "json_body"

// JSONBody возвращает middleware, разбирающий тело запроса как JSON-объект.
//
//   - Content-Type не JSON или отсутствует — тело игнорируется, объект пустой
//   - пустое тело — пустой объект
//   - тело больше maxBytes — 413
//   - некорректный JSON или не объект на верхнем уровне — 400
//
// Числа сохраняются как json.Number, чтобы не терять точность при
// повторной сериализации.
func JSONBody(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body := model.Record{}

			if isJSONContentType(r.Header.Get("Content-Type")) && r.Body != nil {
				data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBytes))
				if err != nil {
					var maxErr *http.MaxBytesError
					if errors.As(err, &maxErr) {
						apierrors.FileTooLarge(w, fmt.Sprintf("Тело запроса превышает лимит %d байт", maxBytes))
						return
					}
					apierrors.ValidationError(w, "Ошибка чтения тела запроса")
					return
				}

				if len(bytes.TrimSpace(data)) > 0 {
					body, err = decodeObject(data)
					if err != nil {
						apierrors.ValidationError(w, fmt.Sprintf("Некорректный JSON: %s", err.Error()))
						return
					}
				}
			}

			ctx := context.WithValue(r.Context(), ContextKeyBody, body)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// BodyFromContext возвращает разобранное тело запроса.
// Если JSONBody не применялся, возвращает пустой объект.
func BodyFromContext(ctx context.Context) model.Record {
	body, ok := ctx.Value(ContextKeyBody).(model.Record)
	if !ok || body == nil {
		return model.Record{}
	}
	return body
}

// decodeObject декодирует ровно один JSON-объект.
func decodeObject(data []byte) (model.Record, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("лишние данные после JSON-значения")
	}

	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, errors.New("ожидался JSON-объект")
	}
	return model.Record(obj), nil
}

// isJSONContentType проверяет, что Content-Type — application/json или *+json.
func isJSONContentType(contentType string) bool {
	if contentType == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}
