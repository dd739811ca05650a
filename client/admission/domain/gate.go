package domain

// Camada de domínio do gate de admissão.
//
// Regras e contratos (interfaces/tipos) sem dependência de net/http.

import (
	"context"
	"encoding/json"
)

// Issuer é a operação assíncrona embrulhada pelo gate (ex: uma chamada HTTP
// estilo fetch). O gate não tem opinião sobre transporte, headers ou encoding:
// só repassa url/params e aguarda o resultado.
type Issuer func(ctx context.Context, url string, params map[string]string) (json.RawMessage, error)

// Rearmer é a capability de reabrir o gate depois de uma admissão.
//
// Uso único por construção: a primeira chamada reabre; todas as seguintes são
// no-op. Um token já consumido nunca reabre de novo, então uma referência
// guardada por engano não reabre o gate num ciclo posterior.
type Rearmer interface {
	Rearm()
}

// Latch representa o recurso de admissão exclusiva.
//
// TryAcquire é o check-and-set atômico: entre chamadores simultâneos,
// exatamente um observa o gate aberto e o fecha; os demais recebem ok=false.
// Não bloqueia, não enfileira, não faz retry.
type Latch interface {
	TryAcquire() (Rearmer, bool)
}

// Outcome é o resultado de uma tentativa de requisição controlada.
//
// Admitted=false significa "gate fechado" — não é erro, é resultado normal e
// síncrono. Quando admitida, Payload carrega o corpo no sucesso e Rearm
// carrega a capability de reabertura. Na falha da operação embrulhada o
// Outcome ainda é Admitted=true e ainda carrega o token: o gate continua
// fechado e só o chamador decide se é seguro reabrir.
type Outcome struct {
	Admitted  bool
	RequestID string
	Payload   json.RawMessage
	Rearm     Rearmer
}
