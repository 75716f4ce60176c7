package collect

import (
	"github.com/FabianIMV/grafana-chile-data/internal/domain"
	"github.com/FabianIMV/grafana-chile-data/internal/ports"
	"go.uber.org/zap"
)

// Weather consumes the clima API: one record per station with
// Estacion, Codigo, Temp, and Humedad fields.
type Weather struct {
	log *zap.Logger
}

var _ ports.Collector = (*Weather)(nil)

func NewWeather(log *zap.Logger) *Weather {
	if log == nil {
		log = zap.NewNop()
	}
	return &Weather{log: log}
}

func (w *Weather) Name() string { return "weather" }

// Collect emits a temperature and a humidity metric per station.
// A record with an unparsable reading is skipped whole; the remaining
// stations still go through.
func (w *Weather) Collect(records []domain.RawRecord) []domain.Metric {
	out := make([]domain.Metric, 0, len(records)*2)
	for _, r := range records {
		station := fieldString(r, "Estacion", "Unknown")
		code := fieldString(r, "Codigo", "Unknown")

		temp, err := fieldNumber(r, "Temp")
		if err != nil {
			w.log.Warn("weather: skipping station", zap.String("station", station), zap.Error(err))
			continue
		}
		hum, err := fieldNumber(r, "Humedad")
		if err != nil {
			w.log.Warn("weather: skipping station", zap.String("station", station), zap.Error(err))
			continue
		}

		labels := []domain.Label{
			{Key: "station", Value: station},
			{Key: "code", Value: code},
		}
		tm, ok1 := domain.NewMetric(domain.MetricTemperature, temp, labels...)
		hm, ok2 := domain.NewMetric(domain.MetricHumidity, hum, labels...)
		if !ok1 || !ok2 {
			w.log.Warn("weather: non-finite reading", zap.String("station", station))
			continue
		}
		out = append(out, tm, hm)
	}
	return out
}
