package application

import (
	"context"
	"time"

	"controlled-request/client/admission/domain"

	"github.com/google/uuid"
)

// Service concentra a regra de admissão da requisição controlada.
//
// Ele não sabe nada sobre HTTP (status/headers), apenas decide e emite.
type Service struct {
	Latch domain.Latch
	Issue domain.Issuer
	Stats domain.StatsStore
}

// Do tenta emitir a operação embrulhada.
//
//   - Gate fechado: retorna Outcome{Admitted:false} sincronamente, sem invocar
//     Issue. Nada de fila, nada de retry.
//   - Sucesso: Outcome com Payload e o token de rearme daquela admissão.
//   - Falha: o erro da operação sobe inalterado; o gate continua fechado e o
//     Outcome ainda carrega o token, senão uma falha deixaria o gate travado
//     para sempre.
func (s Service) Do(ctx context.Context, url string, params map[string]string) (domain.Outcome, error) {
	rearm, ok := s.acquire()
	if !ok {
		s.record(ctx, domain.StatsEvent{URL: url, Result: domain.ResultRejected, At: time.Now()})
		return domain.Outcome{}, nil
	}

	id := uuid.New().String()

	payload, err := s.Issue(ctx, url, params)
	if err != nil {
		s.record(ctx, domain.StatsEvent{URL: url, RequestID: id, Result: domain.ResultFailed, At: time.Now()})
		return domain.Outcome{Admitted: true, RequestID: id, Rearm: rearm}, err
	}

	s.record(ctx, domain.StatsEvent{URL: url, RequestID: id, Result: domain.ResultAdmitted, At: time.Now()})
	return domain.Outcome{Admitted: true, RequestID: id, Payload: payload, Rearm: rearm}, nil
}

func (s Service) acquire() (domain.Rearmer, bool) {
	if s.Latch == nil {
		return noopRearm{}, true
	}
	return s.Latch.TryAcquire()
}

// record é best-effort: erro de stats nunca derruba a requisição.
func (s Service) record(ctx context.Context, ev domain.StatsEvent) {
	if s.Stats == nil {
		return
	}
	_ = s.Stats.Record(ctx, ev)
}

type noopRearm struct{}

func (noopRearm) Rearm() {}
