package domain

import (
	"context"
	"time"
)

// Resultados possíveis de uma decisão do gate.
const (
	ResultAdmitted = "admitted"
	ResultRejected = "rejected"
	ResultFailed   = "failed"
)

// StatsEvent representa uma decisão do gate.
//
// Ele é propositalmente "agnóstico de transporte": URL é uma string genérica.
// RequestID só existe para requisições admitidas (rejeição nem chega a gerar
// uma requisição).
//
// Observação: cuidado com cardinalidade ao persistir por URL sem controle em
// uma base como Redis/Prometheus.
type StatsEvent struct {
	URL       string
	RequestID string
	Result    string

	At time.Time
}

// StatsStore é a estratégia de persistência para estatísticas do gate.
//
// Implementações podem armazenar em Redis, Prometheus, memória, etc.
// O gate trata erro como best-effort (não derruba a requisição).
type StatsStore interface {
	Record(ctx context.Context, ev StatsEvent) error
}
