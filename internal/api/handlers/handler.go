// handler.go — APIHandler собирает доменные handlers и монтирует
// таблицу маршрутов в chi router.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bigkaa/goartstore/record-store/internal/api/middleware"
	"github.com/bigkaa/goartstore/record-store/internal/domain/preset"
)

// APIHandler — единая точка монтирования всех endpoints.
type APIHandler struct {
	domain   *preset.Preset
	records  *RecordsHandler
	transfer *TransferHandler
	health   *HealthHandler
	auth     *middleware.BasicAuth
	// maxBodySize — лимит JSON-тела для маршрутов записей
	maxBodySize int64
}

// NewAPIHandler создаёт единый handler для всех endpoints.
func NewAPIHandler(
	domain *preset.Preset,
	records *RecordsHandler,
	transfer *TransferHandler,
	health *HealthHandler,
	auth *middleware.BasicAuth,
	maxBodySize int64,
) *APIHandler {
	return &APIHandler{
		domain:      domain,
		records:     records,
		transfer:    transfer,
		health:      health,
		auth:        auth,
		maxBodySize: maxBodySize,
	}
}

// Mount регистрирует маршруты.
// Health и metrics публичны. Аутентификация навешивается на каждый
// защищённый маршрут, поэтому неизвестные пути под префиксом отвечают
// 404 без проверки учётных данных. Аутентификация выполняется до
// разбора тела запроса.
func (h *APIHandler) Mount(r chi.Router) {
	r.Get("/health/live", h.health.HealthLive)
	r.Get("/health/ready", h.health.HealthReady)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	protected := r.With(h.auth.Middleware())
	protected.Post("/upload", h.transfer.UploadFile)
	protected.Get("/download/{filename}", h.transfer.DownloadFile)

	r.Route(h.domain.Prefix, func(r chi.Router) {
		withBody := r.With(h.auth.Middleware(), middleware.JSONBody(h.maxBodySize))

		withBody.Get("/listar", h.records.ListRecords)
		withBody.Get("/"+h.domain.GetSegment+"/{id}", h.records.GetRecord)
		withBody.Post("/inserir", h.records.CreateRecord)
		withBody.Put("/atualizar/{id}", h.records.UpdateRecord)
		withBody.Patch("/atualizar/{id}", h.records.UpdateRecord)
		withBody.Delete("/deletar/{id}", h.records.DeleteRecord)
	})
}

// writeJSON вспомогательная функция для записи JSON-ответа.
func writeJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}
