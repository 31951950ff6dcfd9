// Package metrics expone métricas Prometheus del servicio de encartes.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	namespace = "encartes"
	subsystem = "api"
)

// Manager agrupa los colectores de la API sobre un registry propio.
type Manager struct {
	registry *prometheus.Registry

	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	uploadedFiles *prometheus.CounterVec
	uploadedBytes *prometheus.CounterVec
	emailsSent    *prometheus.CounterVec
	flyerExports  *prometheus.CounterVec
}

// NewManager crea el manager con un registry nuevo (incluye métricas de Go y del proceso).
func NewManager() *Manager {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	auto := promauto.With(reg)

	m := &Manager{registry: reg}

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "http_requests_total",
		Help:      "Total de peticiones HTTP por ruta, método y status",
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "http_request_duration_seconds",
		Help:      "Duración de las peticiones HTTP en segundos",
		Buckets:   prometheus.DefBuckets,
	}, []string{"endpoint", "method", "status_code"})

	m.uploadedFiles = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "uploaded_files_total",
		Help:      "Archivos guardados por carpeta",
	}, []string{"folder"})

	m.uploadedBytes = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "uploaded_bytes_total",
		Help:      "Bytes guardados por carpeta",
	}, []string{"folder"})

	m.emailsSent = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "emails_sent_total",
		Help:      "Emails transaccionales enviados por tipo y resultado",
	}, []string{"kind", "result"})

	m.flyerExports = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "flyer_exports_total",
		Help:      "Exportaciones de encartes por formato",
	}, []string{"format"})

	return m
}

// RecordHTTPRequest registra una petición ya respondida.
func (m *Manager) RecordHTTPRequest(endpoint, method string, status int, elapsed time.Duration) {
	code := strconv.Itoa(status)
	m.httpRequests.WithLabelValues(endpoint, method, code).Inc()
	m.httpRequestDuration.WithLabelValues(endpoint, method, code).Observe(elapsed.Seconds())
}

// RecordUpload registra un archivo guardado en storage.
func (m *Manager) RecordUpload(folder string, size int64) {
	m.uploadedFiles.WithLabelValues(folder).Inc()
	m.uploadedBytes.WithLabelValues(folder).Add(float64(size))
}

// RecordEmail registra un intento de envío de email.
func (m *Manager) RecordEmail(kind string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.emailsSent.WithLabelValues(kind, result).Inc()
}

// RecordExport registra una exportación de encarte.
func (m *Manager) RecordExport(format string) {
	m.flyerExports.WithLabelValues(format).Inc()
}

// Registry devuelve el registry para tests o para handlers externos.
func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}

// Handler expone el endpoint de scraping.
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
