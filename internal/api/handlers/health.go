// health.go — обработчики health endpoints для Kubernetes probes.
package handlers

import (
	"net/http"
	"os"
	"time"

	"github.com/bigkaa/goartstore/record-store/internal/config"
)

// statusFail — строковая константа для статуса "fail" в health checks.
const statusFail = "fail"

// serviceName — имя сервиса в ответах health endpoints.
const serviceName = "record-store"

// healthProbePattern — шаблон имени пробы записи в директории загрузок.
const healthProbePattern = ".health_check-*"

// StoreReadinessChecker — интерфейс для проверки готовности хранилища записей.
type StoreReadinessChecker interface {
	IsReady() bool
}

// HealthHandler реализует health endpoints: /health/live, /health/ready.
type HealthHandler struct {
	version string
	// uploadDir — директория загрузок (для проверки FS)
	uploadDir string
	// store — хранилище записей для проверки готовности
	store StoreReadinessChecker
}

// NewHealthHandler создаёт обработчик health endpoints.
func NewHealthHandler(uploadDir string, store StoreReadinessChecker) *HealthHandler {
	return &HealthHandler{
		version:   config.Version,
		uploadDir: uploadDir,
		store:     store,
	}
}

// HealthLive обрабатывает GET /health/live.
// Возвращает 200, если процесс жив. Не проверяет зависимости.
func (h *HealthHandler) HealthLive(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"version":   h.version,
		"service":   serviceName,
	})
}

// HealthReady обрабатывает GET /health/ready.
// Проверяет: директория загрузок доступна на запись, записи загружены.
func (h *HealthHandler) HealthReady(w http.ResponseWriter, _ *http.Request) {
	overallStatus := "ok"
	httpStatus := http.StatusOK

	fsCheck := h.checkFilesystem()
	if fsCheck["status"] != "ok" {
		overallStatus = statusFail
		httpStatus = http.StatusServiceUnavailable
	}

	storeCheck := map[string]any{"status": "ok"}
	if h.store != nil && !h.store.IsReady() {
		storeCheck = map[string]any{
			"status":  statusFail,
			"message": "Записи не загружены",
		}
		overallStatus = statusFail
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, map[string]any{
		"status":    overallStatus,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"version":   h.version,
		"service":   serviceName,
		"checks": map[string]any{
			"filesystem": fsCheck,
			"records":    storeCheck,
		},
	})
}

// checkFilesystem проверяет доступность директории загрузок на запись.
func (h *HealthHandler) checkFilesystem() map[string]any {
	if h.uploadDir == "" {
		return map[string]any{
			"status":  "ok",
			"message": "Проверка не настроена",
		}
	}

	// Проба — временная директория: скачивание отдаёт только обычные файлы,
	// поэтому она не видна через /download.
	probe, err := os.MkdirTemp(h.uploadDir, healthProbePattern)
	if err != nil {
		return map[string]any{
			"status":  statusFail,
			"message": "Директория загрузок недоступна для записи: " + err.Error(),
		}
	}
	_ = os.Remove(probe)

	return map[string]any{
		"status": "ok",
	}
}
