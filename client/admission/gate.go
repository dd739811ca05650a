package admission

import (
	"context"

	"controlled-request/client/admission/application"
	"controlled-request/client/admission/domain"
	"controlled-request/client/admission/infra"

	"github.com/sirupsen/logrus"
)

// Options ajusta o comportamento do Gate. O zero value é utilizável.
type Options struct {
	// Stats recebe cada decisão do gate (best-effort). Pode ser nil.
	Stats domain.StatsStore
	// Logger registra falhas da operação embrulhada. Pode ser nil.
	Logger logrus.FieldLogger
}

// Gate embrulha um domain.Issuer e garante no máximo uma requisição em voo.
//
// Cada Gate encapsula seu próprio estado de admissão: instâncias separadas
// (ex: uma por endpoint) não interferem entre si. O estado nasce aberto e só
// reabre quando o chamador invoca o token de rearme do Outcome.
type Gate struct {
	svc    application.Service
	logger logrus.FieldLogger
}

func NewGate(issue domain.Issuer, opts Options) *Gate {
	return &Gate{
		svc: application.Service{
			Latch: infra.NewAtomicLatch(),
			Issue: issue,
			Stats: opts.Stats,
		},
		logger: opts.Logger,
	}
}

// Request tenta emitir a operação embrulhada.
//
// Com o gate fechado, devolve Outcome{Admitted:false} sincronamente, com erro
// nil — rejeição é resultado normal, não erro. Falha da operação embrulhada
// sobe inalterada; nesse caso o Outcome ainda carrega o token de rearme e o
// gate permanece fechado até o chamador decidir reabrir.
func (g *Gate) Request(ctx context.Context, url string, params map[string]string) (domain.Outcome, error) {
	out, err := g.svc.Do(ctx, url, params)
	if err != nil && g.logger != nil {
		g.logger.WithFields(logrus.Fields{
			"url":        url,
			"request_id": out.RequestID,
		}).Warnf("controlled request failed: %v", err)
	}
	return out, err
}
