package admission

import (
	"context"
	"encoding/json"
	"sync"

	"controlled-request/client/admission/domain"
)

// Interruptable é o padrão irmão do gate: em vez de rejeitar a requisição
// nova, cancela a anterior. Não há flag de admissão nem token de rearme —
// a única regra é "a requisição mais recente vence".
//
// Útil quando só a resposta mais recente interessa (ex: autocomplete).
type Interruptable struct {
	issue domain.Issuer

	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
}

func NewInterruptable(issue domain.Issuer) *Interruptable {
	return &Interruptable{issue: issue}
}

// Request cancela a requisição anterior (se ainda estiver em voo) e emite a
// nova. A anterior termina com o erro de contexto cancelado.
func (i *Interruptable) Request(ctx context.Context, url string, params map[string]string) (json.RawMessage, error) {
	ctx, cancel := context.WithCancel(ctx)

	i.mu.Lock()
	if i.cancel != nil {
		i.cancel()
	}
	i.seq++
	mine := i.seq
	i.cancel = cancel
	i.mu.Unlock()

	payload, err := i.issue(ctx, url, params)

	i.mu.Lock()
	// só limpa se nenhuma requisição mais nova assumiu o slot.
	if i.seq == mine {
		i.cancel = nil
	}
	i.mu.Unlock()
	cancel()

	return payload, err
}
