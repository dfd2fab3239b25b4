// records.go — HTTP handlers операций над записями коллекции.
// List, Get, Create, Update (PUT и PATCH), Delete.
package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bigkaa/goartstore/record-store/internal/api/errors"
	"github.com/bigkaa/goartstore/record-store/internal/api/middleware"
	"github.com/bigkaa/goartstore/record-store/internal/domain/model"
	"github.com/bigkaa/goartstore/record-store/internal/storage/records"
)

// RecordsHandler — обработчик endpoints записей.
type RecordsHandler struct {
	store  *records.Store
	logger *slog.Logger
}

// NewRecordsHandler создаёт обработчик endpoints записей.
func NewRecordsHandler(store *records.Store, logger *slog.Logger) *RecordsHandler {
	return &RecordsHandler{
		store:  store,
		logger: logger.With(slog.String("component", "records_handler")),
	}
}

// ListRecords обрабатывает GET {prefix}/listar.
// Возвращает всю коллекцию в порядке вставки, без фильтров и пагинации.
func (h *RecordsHandler) ListRecords(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.store.List())
}

// GetRecord обрабатывает GET {prefix}/{segment}/{id}.
func (h *RecordsHandler) GetRecord(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "id")
	h.logger.Debug("Запрос записи", slog.String("id", raw))

	id, ok := model.ParseID(raw)
	if !ok {
		errors.NotFound(w, notFoundMessage(raw))
		return
	}

	rec := h.store.Get(id)
	if rec == nil {
		errors.NotFound(w, notFoundMessage(raw))
		return
	}

	writeJSON(w, http.StatusOK, rec)
}

// CreateRecord обрабатывает POST {prefix}/inserir.
// id назначается сервером, присланный id игнорируется.
func (h *RecordsHandler) CreateRecord(w http.ResponseWriter, r *http.Request) {
	body := middleware.BodyFromContext(r.Context())

	rec := h.store.Create(body)
	h.updateMetrics("create", "success")

	id, _ := rec.ID()
	h.logger.Info("Запись создана", slog.Int("id", id))

	writeJSON(w, http.StatusCreated, rec)
}

// UpdateRecord обрабатывает PUT и PATCH {prefix}/atualizar/{id}.
// Оба метода сливают поля тела с существующей записью.
func (h *RecordsHandler) UpdateRecord(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "id")
	body := middleware.BodyFromContext(r.Context())

	id, ok := model.ParseID(raw)
	if !ok {
		h.updateMetrics("update", "not_found")
		errors.NotFound(w, notFoundMessage(raw))
		return
	}

	rec := h.store.Update(id, body)
	if rec == nil {
		h.updateMetrics("update", "not_found")
		errors.NotFound(w, notFoundMessage(raw))
		return
	}
	h.updateMetrics("update", "success")

	h.logger.Info("Запись обновлена",
		slog.Int("id", id),
		slog.String("method", r.Method),
		slog.Int("fields", len(body)),
	)

	writeJSON(w, http.StatusOK, rec)
}

// DeleteRecord обрабатывает DELETE {prefix}/deletar/{id}.
func (h *RecordsHandler) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "id")

	id, ok := model.ParseID(raw)
	if !ok || !h.store.Delete(id) {
		h.updateMetrics("delete", "not_found")
		errors.NotFound(w, notFoundMessage(raw))
		return
	}
	h.updateMetrics("delete", "success")

	h.logger.Info("Запись удалена", slog.Int("id", id))

	w.WriteHeader(http.StatusNoContent)
}

// updateMetrics обновляет счётчик операций и gauge количества записей.
func (h *RecordsHandler) updateMetrics(operation, result string) {
	middleware.OperationsTotal.WithLabelValues(operation, result).Inc()
	middleware.RecordsTotal.Set(float64(h.store.Count()))
}

// notFoundMessage формирует сообщение для отсутствующей записи.
func notFoundMessage(id string) string {
	return fmt.Sprintf("Registro %s não encontrado", id)
}
