// Package metrics expone las métricas Prometheus de la API (registro global vía promauto).
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dvdrental_http_requests_total",
			Help: "Total de peticiones HTTP por método, ruta y status",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dvdrental_http_request_duration_seconds",
			Help:    "Latencia de las peticiones HTTP en segundos",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	EmailsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dvdrental_emails_total",
			Help: "Correos transaccionales por tipo y resultado",
		},
		[]string{"kind", "result"}, // result: ok | error | rejected
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "dvdrental_circuit_breaker_state",
			Help: "Estado del circuit breaker (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	AnalyticsCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dvdrental_analytics_cache_total",
			Help: "Lecturas de la caché de reportes por resultado",
		},
		[]string{"report", "result"}, // result: hit | miss
	)

	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dvdrental_events_published_total",
			Help: "Eventos de dominio publicados en RabbitMQ",
		},
		[]string{"routing_key", "result"},
	)
)
