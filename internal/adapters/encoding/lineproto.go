package encoding

import (
	"strconv"
	"time"

	"github.com/FabianIMV/grafana-chile-data/internal/domain"
	"github.com/FabianIMV/grafana-chile-data/internal/ports"
)

// LineProtocol renders the field line format:
//
//	name,label1=val1,label2=val2 value=<value> <timestamp>
//
// The nanosecond timestamp is shared by the whole batch so one run
// lands as one point in time.
type LineProtocol struct{}

var _ ports.Encoder = LineProtocol{}

func (LineProtocol) Encode(batch domain.Batch, at time.Time) []byte {
	ts := strconv.FormatInt(at.UnixNano(), 10)

	buf := bufPool.Get()
	for _, m := range batch {
		buf.WriteString(m.Name)
		for _, l := range m.Labels {
			buf.WriteByte(',')
			buf.WriteString(l.Key)
			buf.WriteByte('=')
			buf.WriteString(tagValueCleaner.Replace(l.Value))
		}
		buf.WriteString(" value=")
		buf.WriteString(formatValue(m.Value))
		buf.WriteByte(' ')
		buf.WriteString(ts)
		buf.WriteByte('\n')
	}
	return finish(buf)
}
