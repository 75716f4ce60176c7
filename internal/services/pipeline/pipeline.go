// Package pipeline runs one collection cycle: fetch the three
// upstreams, normalize, encode, and push with a one-step protocol
// fallback.
package pipeline

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/FabianIMV/grafana-chile-data/internal/domain"
	"github.com/FabianIMV/grafana-chile-data/internal/ports"
)

// ErrAllPushesFailed reports that every configured protocol was tried
// and rejected. The caller should exit non-zero on it.
var ErrAllPushesFailed = errors.New("all push protocols failed")

// Source pairs a collector with the URL it consumes. Sources are
// appended to the batch in declaration order regardless of which
// fetch finishes first.
type Source struct {
	Collector ports.Collector
	URL       string
}

// Binding pairs a wire encoder with the route it is pushed to.
// Bindings are tried in order; the first success ends the run.
type Binding struct {
	Route   ports.Route
	Encoder ports.Encoder
}

// SelfSampler supplies optional collector self-metrics at the end of
// the collect phase.
type SelfSampler interface {
	Sample(elapsed time.Duration) []domain.Metric
}

// Report summarizes one run for logging and tests.
type Report struct {
	Metrics  int
	Protocol string
	FellBack bool
}

// Push fallback states.
type pushState int

const (
	stateNotAttempted pushState = iota
	statePrimaryFailed
	stateDone
)

// Service owns one run's wiring. A fresh batch is built per Run call;
// nothing persists between invocations.
type Service struct {
	fetcher  ports.Fetcher
	pub      ports.Publisher
	sources  []Source
	bindings []Binding
	self     SelfSampler
	now      func() time.Time
	log      *zap.Logger
}

type Option func(*Service)

// WithClock overrides the timestamp source, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithSelfSampler enables collector self-telemetry.
func WithSelfSampler(sampler SelfSampler) Option {
	return func(s *Service) { s.self = sampler }
}

func New(f ports.Fetcher, pub ports.Publisher, sources []Source, bindings []Binding, log *zap.Logger, opts ...Option) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Service{
		fetcher:  f,
		pub:      pub,
		sources:  sources,
		bindings: bindings,
		now:      time.Now,
		log:      log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run executes one cycle. The sources are fetched and collected
// concurrently (they share no state), then appended in fixed order.
// An upstream yielding nothing is logged and skipped; only a failure
// of every push protocol makes the run itself fail.
func (s *Service) Run(ctx context.Context) (Report, error) {
	start := s.now()

	results := make([][]domain.Metric, len(s.sources))
	var wg sync.WaitGroup
	for i, src := range s.sources {
		wg.Add(1)
		go func(i int, src Source) {
			defer wg.Done()
			records := s.fetcher.Fetch(ctx, src.URL)
			if len(records) == 0 {
				s.log.Info("no data from source", zap.String("source", src.Collector.Name()))
			}
			results[i] = src.Collector.Collect(records)
		}(i, src)
	}
	wg.Wait()

	var batch domain.Batch
	for i, metrics := range results {
		s.log.Info("collected",
			zap.String("source", s.sources[i].Collector.Name()),
			zap.Int("metrics", len(metrics)),
		)
		batch = append(batch, metrics...)
	}
	if s.self != nil {
		batch = append(batch, s.self.Sample(s.now().Sub(start))...)
	}

	report := Report{Metrics: len(batch)}
	at := s.now()
	state := stateNotAttempted
	for _, b := range s.bindings {
		if err := s.pub.Push(ctx, b.Route, b.Encoder.Encode(batch, at)); err != nil {
			s.log.Warn("push attempt failed",
				zap.String("protocol", b.Route.Name),
				zap.Error(err),
			)
			if state == stateNotAttempted {
				state = statePrimaryFailed
				report.FellBack = true
			}
			continue
		}
		state = stateDone
		report.Protocol = b.Route.Name
		break
	}

	if state != stateDone {
		return report, ErrAllPushesFailed
	}

	s.log.Info("run complete",
		zap.Int("metrics", report.Metrics),
		zap.String("protocol", report.Protocol),
		zap.Bool("fellback", report.FellBack),
		zap.Duration("elapsed", s.now().Sub(start)),
	)
	return report, nil
}
