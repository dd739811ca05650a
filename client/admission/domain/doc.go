// Package domain define contratos e tipos de domínio da requisição controlada.
//
// Este pacote não depende de net/http nem de implementações concretas.
// A intenção é permitir testes de unidade puros e desacoplar a regra de
// admissão de detalhes de infraestrutura.
package domain
