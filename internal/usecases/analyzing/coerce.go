package analyzing

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Formatos de data aceitos em cargas brutas vindas do frontend
var acceptedTimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	time.DateOnly,
}

// items extrai a lista de registros de uma carga bruta. Aceita arrays puros
// e envelopes {data: [...]}, inclusive aninhados. Qualquer outro formato
// resulta em lista vazia, nunca em erro.
func items(raw any) []any {
	seen := 0
	for raw != nil && seen < 3 {
		switch v := raw.(type) {
		case []any:
			return v
		case map[string]any:
			raw = v["data"]
			seen++
		default:
			return nil
		}
	}

	return nil
}

// asString converte um valor bruto em string, com "" como padrão
func asString(v any) string {
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case int:
		return strconv.Itoa(s)
	case int64:
		return strconv.FormatInt(s, 10)
	case bool:
		return strconv.FormatBool(s)
	default:
		return ""
	}
}

// asFloat converte um valor bruto em float64, com 0 como padrão para
// valores ausentes ou não numéricos. NaN e infinito também viram 0:
// o ParseFloat aceita "NaN" e "Inf", mas nenhuma métrica pode recebê-los.
func asFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return finiteOrZero(n)
	case float32:
		return finiteOrZero(float64(n))
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0
		}
		return finiteOrZero(parsed)
	default:
		return 0
	}
}

func finiteOrZero(n float64) float64 {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0
	}
	return n
}

// asBool converte um valor bruto em booleano, com false como padrão
func asBool(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(b))
		if err != nil {
			return false
		}
		return parsed
	case float64:
		return b != 0
	default:
		return false
	}
}

// asTime converte um valor bruto em *time.Time, com nil como padrão.
// Datas inválidas são descartadas em vez de interromper a normalização.
func asTime(v any) *time.Time {
	switch t := v.(type) {
	case time.Time:
		if t.IsZero() {
			return nil
		}
		return &t
	case *time.Time:
		if t == nil || t.IsZero() {
			return nil
		}
		parsed := *t
		return &parsed
	case string:
		value := strings.TrimSpace(t)
		if value == "" {
			return nil
		}
		for _, layout := range acceptedTimeLayouts {
			if parsed, err := time.Parse(layout, value); err == nil {
				return &parsed
			}
		}
		return nil
	default:
		return nil
	}
}
