package infra

import (
	"context"
	"sync"

	"controlled-request/client/admission/domain"
)

type Counters struct {
	Admitted int64
	Rejected int64
	Failed   int64
}

// MemoryStatsStore é uma implementação simples em memória.
// Útil para testes e desenvolvimento.
//
// Não faz expiração e não é indicada para produção.
type MemoryStatsStore struct {
	mu    sync.Mutex
	total Counters
	byURL map[string]Counters
}

func NewMemoryStatsStore() *MemoryStatsStore {
	return &MemoryStatsStore{byURL: make(map[string]Counters)}
}

func (s *MemoryStatsStore) Record(_ context.Context, ev domain.StatsEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	bump(&s.total, ev.Result)
	c := s.byURL[ev.URL]
	bump(&c, ev.Result)
	s.byURL[ev.URL] = c
	return nil
}

func bump(c *Counters, result string) {
	switch result {
	case domain.ResultAdmitted:
		c.Admitted++
	case domain.ResultRejected:
		c.Rejected++
	case domain.ResultFailed:
		c.Failed++
	}
}

func (s *MemoryStatsStore) Total() Counters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.total
}

func (s *MemoryStatsStore) ByURL() map[string]Counters {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]Counters, len(s.byURL))
	for k, v := range s.byURL {
		out[k] = v
	}
	return out
}
