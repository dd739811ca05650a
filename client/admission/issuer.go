package admission

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// HTTPIssuer é um domain.Issuer sobre net/http, no estilo fetch: GET + corpo
// JSON. Não é um client HTTP genérico — sem retry, sem cache, só o suficiente
// para emitir a requisição que o gate controla.
type HTTPIssuer struct {
	// Client é opcional; nil usa http.DefaultClient.
	Client *http.Client
	// BaseURL é prefixado à url passada em cada Issue (ex: "http://localhost:8081").
	BaseURL string
}

// Issue implementa domain.Issuer.
//
// Status fora de 2xx e corpo que não é JSON válido viram erro; o gate repassa
// esse erro inalterado ao chamador.
func (h HTTPIssuer) Issue(ctx context.Context, url string, params map[string]string) (json.RawMessage, error) {
	client := h.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.BaseURL+url+EncodeParams(params), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("upstream status %d: %s", resp.StatusCode, snippet(body))
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("upstream returned invalid json")
	}
	return json.RawMessage(body), nil
}

// snippet limita o corpo incluído em mensagens de erro.
func snippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > 120 {
		s = s[:120] + "..."
	}
	return s
}
