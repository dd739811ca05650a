package infra

import (
	"context"

	"controlled-request/client/admission/domain"

	"github.com/prometheus/client_golang/prometheus"
)

// PromStatsStore publica as decisões do gate como counters Prometheus.
type PromStatsStore struct {
	decisions *prometheus.CounterVec
}

// NewPromStatsStore registra o counter no registerer dado (no caso comum,
// prometheus.DefaultRegisterer).
func NewPromStatsStore(reg prometheus.Registerer) *PromStatsStore {
	s := &PromStatsStore{
		decisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gate_requests_total",
			Help: "Gate decisions by result (admitted, rejected, failed).",
		}, []string{"result"}),
	}
	reg.MustRegister(s.decisions)
	return s
}

func (s *PromStatsStore) Record(_ context.Context, ev domain.StatsEvent) error {
	if ev.Result == "" {
		return nil
	}
	s.decisions.WithLabelValues(ev.Result).Inc()
	return nil
}
