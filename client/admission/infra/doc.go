// Package infra contém implementações concretas (infraestrutura) para os
// contratos definidos no pacote domain.
//
// Exemplos:
//   - AtomicLatch: flag de admissão com compare-and-swap + token de rearme
//   - MemoryStatsStore / RedisStatsStore / PromStatsStore: persistência das decisões
package infra
