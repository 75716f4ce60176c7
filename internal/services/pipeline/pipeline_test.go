package pipeline

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/FabianIMV/grafana-chile-data/internal/adapters/encoding"
	"github.com/FabianIMV/grafana-chile-data/internal/adapters/publisher/httppush"
	"github.com/FabianIMV/grafana-chile-data/internal/domain"
	"github.com/FabianIMV/grafana-chile-data/internal/ports"
)

type stubFetcher struct {
	data map[string][]domain.RawRecord
}

func (f stubFetcher) Fetch(_ context.Context, url string) []domain.RawRecord {
	return f.data[url]
}

type stubCollector struct {
	name    string
	metrics []domain.Metric
}

func (c stubCollector) Name() string { return c.name }

func (c stubCollector) Collect(_ []domain.RawRecord) []domain.Metric { return c.metrics }

type stubPublisher struct {
	fail  map[string]bool
	calls []string
}

func (p *stubPublisher) Push(_ context.Context, route ports.Route, _ []byte) error {
	p.calls = append(p.calls, route.Name)
	if p.fail[route.Name] {
		return errors.New("rejected")
	}
	return nil
}

func gauge(name string) domain.Metric {
	return domain.Metric{Name: name, Value: 1}
}

func newTestService(pub ports.Publisher) *Service {
	sources := []Source{
		{Collector: stubCollector{name: "weather", metrics: []domain.Metric{gauge("w1"), gauge("w2")}}, URL: "w"},
		{Collector: stubCollector{name: "seismic", metrics: []domain.Metric{gauge("s1")}}, URL: "s"},
		{Collector: stubCollector{name: "currency", metrics: []domain.Metric{gauge("c1")}}, URL: "c"},
	}
	bindings := []Binding{
		{Route: httppush.LineProtocolRoute(), Encoder: encoding.LineProtocol{}},
		{Route: httppush.ExpositionRoute("chile_metrics"), Encoder: encoding.Exposition{}},
	}
	return New(stubFetcher{}, pub, sources, bindings, nil,
		WithClock(func() time.Time { return time.Unix(42, 0) }))
}

func TestRun_PrimarySucceeds(t *testing.T) {
	pub := &stubPublisher{}
	report, err := newTestService(pub).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if report.Protocol != "line-protocol" || report.FellBack {
		t.Fatalf("report = %+v, want line-protocol without fallback", report)
	}
	if report.Metrics != 4 {
		t.Fatalf("metrics = %d, want 4", report.Metrics)
	}
	if len(pub.calls) != 1 {
		t.Fatalf("push calls = %v, want one", pub.calls)
	}
}

func TestRun_FallbackToExposition(t *testing.T) {
	pub := &stubPublisher{fail: map[string]bool{"line-protocol": true}}
	report, err := newTestService(pub).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !report.FellBack || report.Protocol != "exposition" {
		t.Fatalf("report = %+v, want exposition after one fallback", report)
	}
	want := []string{"line-protocol", "exposition"}
	if len(pub.calls) != 2 || pub.calls[0] != want[0] || pub.calls[1] != want[1] {
		t.Fatalf("push calls = %v, want %v", pub.calls, want)
	}
}

func TestRun_BothProtocolsFail(t *testing.T) {
	pub := &stubPublisher{fail: map[string]bool{"line-protocol": true, "exposition": true}}
	report, err := newTestService(pub).Run(context.Background())
	if !errors.Is(err, ErrAllPushesFailed) {
		t.Fatalf("err = %v, want ErrAllPushesFailed", err)
	}
	if !report.FellBack {
		t.Fatalf("report = %+v, want fallback recorded", report)
	}
	if len(pub.calls) != 2 {
		t.Fatalf("push calls = %v, want exactly two attempts", pub.calls)
	}
}

func TestRun_BatchKeepsSourceOrder(t *testing.T) {
	var encoded domain.Batch
	enc := encoderFunc(func(batch domain.Batch, _ time.Time) []byte {
		encoded = batch
		return nil
	})
	sources := []Source{
		{Collector: stubCollector{name: "weather", metrics: []domain.Metric{gauge("w")}}, URL: "w"},
		{Collector: stubCollector{name: "seismic", metrics: []domain.Metric{gauge("s")}}, URL: "s"},
		{Collector: stubCollector{name: "currency", metrics: []domain.Metric{gauge("c")}}, URL: "c"},
	}
	svc := New(stubFetcher{}, &stubPublisher{}, sources,
		[]Binding{{Route: httppush.LineProtocolRoute(), Encoder: enc}}, nil)

	if _, err := svc.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := []string{"w", "s", "c"}
	if len(encoded) != len(want) {
		t.Fatalf("batch = %d metrics, want %d", len(encoded), len(want))
	}
	for i, name := range want {
		if encoded[i].Name != name {
			t.Fatalf("batch[%d] = %s, want %s", i, encoded[i].Name, name)
		}
	}
}

type encoderFunc func(domain.Batch, time.Time) []byte

func (f encoderFunc) Encode(batch domain.Batch, at time.Time) []byte { return f(batch, at) }

type selfStub struct{}

func (selfStub) Sample(_ time.Duration) []domain.Metric {
	return []domain.Metric{gauge("self")}
}

func TestRun_SelfTelemetryAppendsLast(t *testing.T) {
	var encoded domain.Batch
	enc := encoderFunc(func(batch domain.Batch, _ time.Time) []byte {
		encoded = batch
		return nil
	})
	sources := []Source{
		{Collector: stubCollector{name: "weather", metrics: []domain.Metric{gauge("w")}}, URL: "w"},
	}
	svc := New(stubFetcher{}, &stubPublisher{}, sources,
		[]Binding{{Route: httppush.LineProtocolRoute(), Encoder: enc}}, nil,
		WithSelfSampler(selfStub{}))

	report, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if report.Metrics != 2 {
		t.Fatalf("metrics = %d, want 2", report.Metrics)
	}
	if encoded[len(encoded)-1].Name != "self" {
		t.Fatalf("last metric = %s, want self", encoded[len(encoded)-1].Name)
	}
}
