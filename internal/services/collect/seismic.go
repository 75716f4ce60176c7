package collect

import (
	"strconv"
	"strings"

	"github.com/FabianIMV/grafana-chile-data/internal/domain"
	"github.com/FabianIMV/grafana-chile-data/internal/ports"
	"go.uber.org/zap"
)

// Only the newest quakes are pushed; the upstream array is ordered
// most-recent-first. The cap bounds label cardinality and payload size.
const maxQuakes = 10

const maxLocationLen = 50

var locationCleaner = strings.NewReplacer(`"`, "", `'`, "", ",", "")

// Seismic consumes the sismos API: RefGeografica, Fecha, Magnitud,
// Profundidad per quake.
type Seismic struct {
	log *zap.Logger
}

var _ ports.Collector = (*Seismic)(nil)

func NewSeismic(log *zap.Logger) *Seismic {
	if log == nil {
		log = zap.NewNop()
	}
	return &Seismic{log: log}
}

func (s *Seismic) Name() string { return "seismic" }

// Collect emits a magnitude and a depth metric for each of the first
// ten quakes. Labels are the sanitized location plus the positional
// index; the upstream date string can repeat and is not guaranteed
// parseable, so it is only logged.
func (s *Seismic) Collect(records []domain.RawRecord) []domain.Metric {
	if len(records) > maxQuakes {
		records = records[:maxQuakes]
	}

	out := make([]domain.Metric, 0, len(records)*2)
	for i, r := range records {
		location := cleanLocation(fieldString(r, "RefGeografica", "Unknown"))

		mag, err := fieldNumber(r, "Magnitud")
		if err != nil {
			s.log.Warn("seismic: skipping quake", zap.Int("index", i), zap.Error(err))
			continue
		}
		depth, err := fieldNumber(r, "Profundidad")
		if err != nil {
			s.log.Warn("seismic: skipping quake", zap.Int("index", i), zap.Error(err))
			continue
		}

		labels := []domain.Label{
			{Key: "location", Value: location},
			{Key: "index", Value: strconv.Itoa(i)},
		}
		mm, ok1 := domain.NewMetric(domain.MetricQuakeMag, mag, labels...)
		dm, ok2 := domain.NewMetric(domain.MetricQuakeDepth, depth, labels...)
		if !ok1 || !ok2 {
			s.log.Warn("seismic: non-finite reading", zap.Int("index", i))
			continue
		}
		out = append(out, mm, dm)

		s.log.Debug("seismic: recorded",
			zap.String("location", location),
			zap.String("date", fieldString(r, "Fecha", "Unknown")),
			zap.Float64("magnitude", mag),
		)
	}
	return out
}

// cleanLocation truncates the reference to a label-sized prefix, then
// removes the quote and comma characters both wire formats treat as
// delimiters.
func cleanLocation(s string) string {
	runes := []rune(s)
	if len(runes) > maxLocationLen {
		runes = runes[:maxLocationLen]
	}
	return locationCleaner.Replace(string(runes))
}
