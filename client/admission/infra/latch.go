package infra

import (
	"sync/atomic"

	"controlled-request/client/admission/domain"
)

// AtomicLatch implementa domain.Latch com um único flag atômico.
//
// O flag nasce aberto (admitindo). TryAcquire é um CompareAndSwap único, então
// a decisão de admissão continua atômica mesmo sob threads de verdade, não só
// sob concorrência cooperativa.
type AtomicLatch struct {
	admitting atomic.Bool
}

func NewAtomicLatch() *AtomicLatch {
	l := &AtomicLatch{}
	l.admitting.Store(true)
	return l
}

// TryAcquire fecha o gate se ele estiver aberto e devolve o token de rearme
// daquela admissão. Entre chamadores simultâneos exatamente um recebe ok=true.
func (l *AtomicLatch) TryAcquire() (domain.Rearmer, bool) {
	if !l.admitting.CompareAndSwap(true, false) {
		return nil, false
	}
	return &rearmToken{latch: l}, true
}

// Admitting informa o estado atual do flag (diagnóstico/testes).
func (l *AtomicLatch) Admitting() bool { return l.admitting.Load() }

// rearmToken é a capability de uso único que reabre o latch.
//
// Cada admissão ganha um token novo e independente; o flag used garante que o
// mesmo token só reabre uma vez. Chamadas extras são inofensivas.
type rearmToken struct {
	latch *AtomicLatch
	used  atomic.Bool
}

func (t *rearmToken) Rearm() {
	if !t.used.CompareAndSwap(false, true) {
		return
	}
	t.latch.admitting.Store(true)
}
