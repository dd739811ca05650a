// Package admission fornece o gate de admissão para requisições assíncronas:
// no máximo uma requisição em voo por gate, com reabertura explícita via token
// de uso único.
//
// Visão geral (camadas):
//
//   - domain: contratos e tipos do domínio (sem dependência de net/http)
//   - application: caso de uso (admitir -> emitir -> outcome) sem net/http
//   - infra: implementações concretas (latch atômico, stores de estatística)
//   - admission (este pacote): API pública + adapters (issuer HTTP, encoding
//     de query string, padrão interrompível)
//
// Fluxo de uma requisição controlada:
//
//  1. Gate.Request tenta fechar o latch (check-and-set atômico)
//  2. Se o gate já estava fechado, devolve Outcome rejeitado na hora
//  3. Se admitida, emite a operação embrulhada e aguarda
//  4. O Outcome carrega o token de rearme; só o chamador reabre o gate
//
// Requisições rejeitadas não entram em fila e não sofrem retry: o chamador
// recebe uma resposta barata e síncrona e decide sozinho o que fazer.
package admission
