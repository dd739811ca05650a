// Package application contém o caso de uso da requisição controlada:
// tentar admitir, emitir a operação embrulhada e montar o Outcome.
//
// Ele depende apenas do pacote domain e não conhece net/http.
package application
