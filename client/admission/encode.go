package admission

import (
	"net/url"
	"sort"
	"strings"
)

// EncodeParams monta a query string no formato "?k=v&k2=v2".
//
// Map vazio (ou nil) vira string vazia. As chaves saem em ordem lexicográfica
// — map em Go não tem ordem de iteração estável, e uma query determinística
// facilita log/teste. Chaves e valores são percent-encoded.
func EncodeParams(params map[string]string) string {
	if len(params) == 0 {
		return ""
	}

	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteByte('?')
	for i, k := range keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(k))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(params[k]))
	}
	return b.String()
}
