// The collector is a single-shot batch job: it pulls the Chilean
// public APIs once, normalizes the readings, and pushes them to the
// configured ingestion endpoint. Run it from cron or a scheduler.
package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"go.uber.org/zap"

	"github.com/FabianIMV/grafana-chile-data/internal/adapters/encoding"
	"github.com/FabianIMV/grafana-chile-data/internal/adapters/fetcher/httpjson"
	"github.com/FabianIMV/grafana-chile-data/internal/adapters/publisher/httppush"
	"github.com/FabianIMV/grafana-chile-data/internal/config"
	"github.com/FabianIMV/grafana-chile-data/internal/services/collect"
	"github.com/FabianIMV/grafana-chile-data/internal/services/pipeline"
	"github.com/FabianIMV/grafana-chile-data/internal/services/telemetry"
)

func main() {
	cfg, err := config.Load(os.Args[1:], os.Stderr)
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	hc := &http.Client{Timeout: cfg.Timeout}
	pub, err := httppush.New(cfg.PushURL, hc, cfg.Username, cfg.Password, logger)
	if err != nil {
		logger.Fatal("init publisher", zap.Error(err))
	}

	sources := []pipeline.Source{
		{Collector: collect.NewWeather(logger), URL: cfg.WeatherURL},
		{Collector: collect.NewSeismic(logger), URL: cfg.SeismicURL},
		{Collector: collect.NewCurrency(logger), URL: cfg.CurrencyURL},
	}
	bindings := []pipeline.Binding{
		{Route: httppush.LineProtocolRoute(), Encoder: encoding.LineProtocol{}},
		{Route: httppush.ExpositionRoute(cfg.JobName), Encoder: encoding.Exposition{}},
	}

	var opts []pipeline.Option
	if cfg.SelfTelemetry {
		opts = append(opts, pipeline.WithSelfSampler(telemetry.New(cfg.JobName, logger)))
	}

	svc := pipeline.New(httpjson.New(hc, logger), pub, sources, bindings, logger, opts...)

	logger.Info("starting collection",
		zap.String("push_url", cfg.PushURL),
		zap.String("job", cfg.JobName),
	)

	if _, err := svc.Run(context.Background()); err != nil {
		logger.Fatal("run failed", zap.Error(err))
	}
}
