package encoding

import (
	"time"

	"github.com/FabianIMV/grafana-chile-data/internal/domain"
	"github.com/FabianIMV/grafana-chile-data/internal/ports"
)

// Exposition renders the tagged line format:
//
//	name{label1="val1",label2="val2"} value
//
// Metrics without labels omit the braces. No timestamp is carried;
// the receiver assigns one on ingest.
type Exposition struct{}

var _ ports.Encoder = Exposition{}

func (Exposition) Encode(batch domain.Batch, _ time.Time) []byte {
	buf := bufPool.Get()
	for _, m := range batch {
		buf.WriteString(m.Name)
		if len(m.Labels) > 0 {
			buf.WriteByte('{')
			for i, l := range m.Labels {
				if i > 0 {
					buf.WriteByte(',')
				}
				buf.WriteString(l.Key)
				buf.WriteString(`="`)
				buf.WriteString(expositionValueCleaner.Replace(l.Value))
				buf.WriteByte('"')
			}
			buf.WriteByte('}')
		}
		buf.WriteByte(' ')
		buf.WriteString(formatValue(m.Value))
		buf.WriteByte('\n')
	}
	return finish(buf)
}
