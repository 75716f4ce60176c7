// Package encoding serializes metric batches into the two push wire
// formats. Encoders never fail on well-formed metrics; label values
// that would break a format are sanitized, not rejected.
package encoding

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/FabianIMV/grafana-chile-data/internal/misc"
)

var bufPool = misc.NewPool(func() *bytes.Buffer { return new(bytes.Buffer) })

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// expositionValueCleaner strips the characters that would terminate a
// quoted label value in the tagged format.
var expositionValueCleaner = strings.NewReplacer(`"`, "", `\`, "", "\n", "")

// tagValueCleaner makes a value safe as a line-protocol tag: spaces
// become underscores, the format's delimiters are dropped.
var tagValueCleaner = strings.NewReplacer(" ", "_", ",", "", "=", "", "\n", "")

func finish(buf *bytes.Buffer) []byte {
	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())
	bufPool.Put(buf)
	return out
}
