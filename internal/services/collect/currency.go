package collect

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/FabianIMV/grafana-chile-data/internal/domain"
	"github.com/FabianIMV/grafana-chile-data/internal/ports"
	"go.uber.org/zap"
)

// Codes eligible for emission. Matching is exact and case-sensitive
// against the upstream value; anything else is dropped silently.
var trackedCurrencies = map[string]struct{}{
	"UF": {}, "USD": {}, "EUR": {}, "UTM": {}, "GBP": {},
	"CAD": {}, "AUD": {}, "BRL": {}, "ARS": {}, "MXN": {},
}

// Currency consumes the monedas API: Codigo, Nombre, and a Valor
// string that uses a comma as the decimal separator.
type Currency struct {
	log *zap.Logger
}

var _ ports.Collector = (*Currency)(nil)

func NewCurrency(log *zap.Logger) *Currency {
	if log == nil {
		log = zap.NewNop()
	}
	return &Currency{log: log}
}

func (c *Currency) Name() string { return "currency" }

// Collect emits one CLP-value metric per tracked currency.
func (c *Currency) Collect(records []domain.RawRecord) []domain.Metric {
	out := make([]domain.Metric, 0, len(trackedCurrencies))
	for _, r := range records {
		code := fieldString(r, "Codigo", "")
		if _, ok := trackedCurrencies[code]; !ok {
			continue
		}
		name := fieldString(r, "Nombre", "Unknown")

		value, err := currencyValue(r)
		if err != nil {
			c.log.Warn("currency: skipping record", zap.String("code", code), zap.Error(err))
			continue
		}

		m, ok := domain.NewMetric(domain.MetricCurrency, value,
			domain.Label{Key: "code", Value: code},
			domain.Label{Key: "name", Value: name},
		)
		if !ok {
			c.log.Warn("currency: non-finite value", zap.String("code", code))
			continue
		}
		out = append(out, m)
	}
	return out
}

// currencyValue parses Valor, converting the decimal comma to a
// period. Thousands-separator dots are deliberately left alone: a
// value like "1.234,56" becomes "1.234.56" and fails to parse, which
// skips the record. The upstream does not emit grouped values today
// and silently guessing at separators would corrupt readings.
func currencyValue(r domain.RawRecord) (float64, error) {
	v, ok := r["Valor"]
	if !ok || v == nil {
		v = "0"
	}
	switch x := v.(type) {
	case string:
		f, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(x), ",", "."), 64)
		if err != nil {
			return 0, fmt.Errorf("field Valor: %w", err)
		}
		return f, nil
	case float64:
		return x, nil
	default:
		return 0, fmt.Errorf("field Valor: unexpected type %T", v)
	}
}
