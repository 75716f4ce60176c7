// Package collect turns raw upstream records into normalized metrics.
// One collector per API; each owns its field contract and skips
// malformed records without aborting the batch.
package collect

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/FabianIMV/grafana-chile-data/internal/domain"
)

// fieldString reads a string field, trimming whitespace. Missing,
// null, empty, or non-string values fall back to def.
func fieldString(r domain.RawRecord, key, def string) string {
	v, ok := r[key]
	if !ok || v == nil {
		return def
	}
	s, ok := v.(string)
	if !ok {
		return def
	}
	if s = strings.TrimSpace(s); s == "" {
		return def
	}
	return s
}

// fieldNumber reads a numeric field. A missing key means 0 (the
// upstream omits fields rather than zeroing them); a present but
// unparsable value is an error, which callers treat as "skip record".
func fieldNumber(r domain.RawRecord, key string) (float64, error) {
	v, ok := r[key]
	if !ok {
		return 0, nil
	}
	switch x := v.(type) {
	case float64:
		return x, nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0, fmt.Errorf("field %s: %w", key, err)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("field %s: unexpected type %T", key, v)
	}
}
