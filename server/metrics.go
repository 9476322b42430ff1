package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	CounterCommands     *prometheus.CounterVec
	CounterLoadWarnings prometheus.Counter
}

func NewMetrics(namespace, subsystem string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		CounterCommands: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "commands_total",
			Help:      "The total number of executed view commands",
		}, []string{"action", "status"}),
		CounterLoadWarnings: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "load_warnings_total",
			Help:      "Day files that were missing or corrupted",
		}),
	}
}

func (m *Metrics) command(action string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.CounterCommands.WithLabelValues(action, status).Inc()
}
