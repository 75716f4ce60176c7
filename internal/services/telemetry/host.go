// Package telemetry samples collector self-metrics (host CPU, memory,
// run duration) that ride along with the Chilean data when enabled.
package telemetry

import (
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
	"go.uber.org/zap"

	"github.com/FabianIMV/grafana-chile-data/internal/domain"
)

// Sampler produces chile_collector_* gauges labeled with the job name.
type Sampler struct {
	job string
	log *zap.Logger
}

func New(job string, log *zap.Logger) *Sampler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Sampler{job: job, log: log}
}

// Sample reports the run duration plus host CPU and memory. A failed
// probe drops that one gauge with a warning; self-telemetry must never
// take down the run.
func (s *Sampler) Sample(elapsed time.Duration) []domain.Metric {
	labels := []domain.Label{{Key: "job", Value: s.job}}

	out := make([]domain.Metric, 0, 3)
	if m, ok := domain.NewMetric(domain.MetricSelfRuntime, elapsed.Seconds(), labels...); ok {
		out = append(out, m)
	}

	if vm, err := mem.VirtualMemory(); err != nil {
		s.log.Warn("telemetry: memory probe failed", zap.Error(err))
	} else if m, ok := domain.NewMetric(domain.MetricSelfMemory, float64(vm.Used), labels...); ok {
		out = append(out, m)
	}

	if pct, err := cpu.Percent(0, false); err != nil || len(pct) == 0 {
		s.log.Warn("telemetry: cpu probe failed", zap.Error(err))
	} else if m, ok := domain.NewMetric(domain.MetricSelfCPU, pct[0], labels...); ok {
		out = append(out, m)
	}

	return out
}
