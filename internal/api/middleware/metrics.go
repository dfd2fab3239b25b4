// metrics.go — Prometheus метрики Record Store.
// HTTP метрики: rs_http_requests_total, rs_http_request_duration_seconds.
// Бизнес-метрики (rs_records_total, rs_operations_total, rs_upload_bytes_total)
// обновляются из handlers и сервисного слоя.
package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// unmatchedRoute — метка пути для запросов, не попавших в маршрут.
const unmatchedRoute = "unmatched"

// HTTP метрики
var (
	// httpRequestsTotal — общее количество HTTP-запросов.
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rs_http_requests_total",
			Help: "Общее количество HTTP-запросов к Record Store",
		},
		[]string{"method", "path", "status"},
	)

	// httpRequestDuration — гистограмма длительности HTTP-запросов.
	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "rs_http_request_duration_seconds",
			Help:    "Длительность HTTP-запросов к Record Store в секундах",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
)

// Бизнес-метрики (экспортируются для обновления из handlers и сервисов)
var (
	// RecordsTotal — текущее количество записей в коллекции (gauge).
	RecordsTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "rs_records_total",
			Help: "Текущее количество записей в коллекции",
		},
	)

	// OperationsTotal — количество операций над записями и файлами.
	OperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rs_operations_total",
			Help: "Общее количество операций над записями и файлами",
		},
		[]string{"operation", "result"},
	)

	// UploadBytesTotal — суммарный объём загруженных файлов.
	UploadBytesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "rs_upload_bytes_total",
			Help: "Суммарный объём загруженных файлов в байтах",
		},
	)
)

// MetricsMiddleware возвращает HTTP middleware для сбора Prometheus метрик.
// Путь в метках — шаблон маршрута chi (/jogadores/deletar/{id}), чтобы
// id и имена файлов не раздували кардинальность.
func MetricsMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			rec := recordStatus(w)
			next.ServeHTTP(rec, r)

			path := routePattern(r)
			duration := time.Since(start).Seconds()
			status := strconv.Itoa(rec.status)

			httpRequestsTotal.WithLabelValues(r.Method, path, status).Inc()
			httpRequestDuration.WithLabelValues(r.Method, path).Observe(duration)
		})
	}
}

// routePattern возвращает шаблон маршрута chi после обработки запроса.
func routePattern(r *http.Request) string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return unmatchedRoute
	}
	if pattern := rctx.RoutePattern(); pattern != "" {
		return pattern
	}
	return unmatchedRoute
}
