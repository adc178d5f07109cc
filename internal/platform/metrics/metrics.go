package metrics

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "cadastro"

// PoolStats lo cumple *pool.Gate.
type PoolStats interface {
	InUse() int
	Waiting() int
}

// Metrics usa un registry propio (no el global) para poder crear varios en tests.
type Metrics struct {
	registry      *prometheus.Registry
	registrations *prometheus.CounterVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	registrations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Cadastros procesados por resultado (success o kind de error).",
	}, []string{"result"})
	reg.MustRegister(registrations)

	return &Metrics{registry: reg, registrations: registrations}
}

// ObserveRegistration implementa registration.Recorder.
func (m *Metrics) ObserveRegistration(result string) {
	m.registrations.WithLabelValues(result).Inc()
}

// Registrations expone el contador (tests).
func (m *Metrics) Registrations() *prometheus.CounterVec { return m.registrations }

// TrackPool publica ocupación y cola del pool como gauges.
// Llamarlo de nuevo sobre el mismo registry no hace nada: quedan los gauges del primer pool.
func (m *Metrics) TrackPool(stats PoolStats) error {
	gauges := []prometheus.Collector{
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pool_in_use",
			Help:      "Conexiones del pool tomadas por requests.",
		}, func() float64 { return float64(stats.InUse()) }),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pool_waiting",
			Help:      "Requests esperando conexión.",
		}, func() float64 { return float64(stats.Waiting()) }),
	}
	for _, g := range gauges {
		if err := m.registry.Register(g); err != nil {
			var are prometheus.AlreadyRegisteredError
			if errors.As(err, &are) {
				continue
			}
			return fmt.Errorf("metrics: register pool gauge: %w", err)
		}
	}
	return nil
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
