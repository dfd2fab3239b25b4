// responsewriter.go — общая обёртка ResponseWriter для логирования и метрик.
package middleware

import "net/http"

// statusRecorder запоминает статус-код и размер ответа.
// Вложенные middleware переиспользуют один экземпляр через recordStatus.
type statusRecorder struct {
	http.ResponseWriter
	status  int
	written int64
}

// recordStatus возвращает обёртку над w. Если w уже обёрнут, возвращает его же.
func recordStatus(w http.ResponseWriter) *statusRecorder {
	if rec, ok := w.(*statusRecorder); ok {
		return rec
	}
	return &statusRecorder{ResponseWriter: w, status: http.StatusOK}
}

func (rw *statusRecorder) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *statusRecorder) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.written += int64(n)
	return n, err
}

// Unwrap позволяет http.ResponseController получить доступ к оригинальному ResponseWriter.
func (rw *statusRecorder) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}
