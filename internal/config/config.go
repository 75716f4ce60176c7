// Package config resolves the collector's settings from the environment
// with CLI-flag and built-in fallbacks (ENV > CLI > defaults).
package config

import (
	"flag"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/FabianIMV/grafana-chile-data/internal/misc"
)

const (
	defaultClimaURL   = "https://api.gael.cloud/general/public/clima"
	defaultSismosURL  = "https://api.gael.cloud/general/public/sismos"
	defaultMonedasURL = "https://api.gael.cloud/general/public/monedas"
	defaultTimeout    = 30 * time.Second
	defaultJobName    = "chile_metrics"
)

// Config carries everything one run needs. PushURL and the credentials
// are required and come from the environment only; the rest has
// defaults and exists for local runs against cmd/mockapi.
type Config struct {
	PushURL  string
	Username string
	Password string

	WeatherURL  string
	SeismicURL  string
	CurrencyURL string

	Timeout       time.Duration
	JobName       string
	SelfTelemetry bool
}

// Load parses args and the environment into a Config. It fails fast,
// before any network activity, when a required setting is missing or
// the push URL does not parse.
func Load(args []string, out io.Writer) (Config, error) {
	if out == nil {
		out = io.Discard
	}

	fs := flag.NewFlagSet("collector", flag.ContinueOnError)
	fs.SetOutput(out)

	var climaOpt, sismosOpt, monedasOpt, jobOpt string
	var timeoutOpt int
	var selfOpt bool

	fs.StringVar(&climaOpt, "clima", "", fmt.Sprintf("weather API URL, default: %s", defaultClimaURL))
	fs.StringVar(&sismosOpt, "sismos", "", fmt.Sprintf("earthquake API URL, default: %s", defaultSismosURL))
	fs.StringVar(&monedasOpt, "monedas", "", fmt.Sprintf("currency API URL, default: %s", defaultMonedasURL))
	fs.StringVar(&jobOpt, "j", "", fmt.Sprintf("push job name, default: %s", defaultJobName))
	fs.IntVar(&timeoutOpt, "t", 0, "HTTP timeout in seconds, default: 30")
	fs.BoolVar(&selfOpt, "self", false, "also push collector host telemetry")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	var missing []string
	pushURL := strings.TrimSpace(misc.Getenv("PROMETHEUS_URL", ""))
	if pushURL == "" {
		missing = append(missing, "PROMETHEUS_URL")
	}
	user := misc.Getenv("PROMETHEUS_USER", "")
	if user == "" {
		missing = append(missing, "PROMETHEUS_USER")
	}
	pass := misc.Getenv("PROMETHEUS_PASSWORD", "")
	if pass == "" {
		missing = append(missing, "PROMETHEUS_PASSWORD")
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	pushURL = normalizePushURL(pushURL)
	if _, err := url.ParseRequestURI(pushURL); err != nil {
		return Config{}, fmt.Errorf("invalid push URL: %q", pushURL)
	}

	timeout := misc.GetDuration("HTTP_TIMEOUT", 0)
	if timeout == 0 {
		if timeoutOpt > 0 {
			timeout = time.Duration(timeoutOpt) * time.Second
		} else {
			timeout = defaultTimeout
		}
	}
	if timeout <= 0 {
		return Config{}, fmt.Errorf("http timeout must be > 0, got %v", timeout)
	}

	self := selfOpt
	if strings.TrimSpace(misc.Getenv("SELF_TELEMETRY", "")) != "" {
		self = misc.GetBool("SELF_TELEMETRY", false)
	}

	return Config{
		PushURL:       pushURL,
		Username:      user,
		Password:      pass,
		WeatherURL:    misc.Getenv("CLIMA_URL", strOr(climaOpt, defaultClimaURL)),
		SeismicURL:    misc.Getenv("SISMOS_URL", strOr(sismosOpt, defaultSismosURL)),
		CurrencyURL:   misc.Getenv("MONEDAS_URL", strOr(monedasOpt, defaultMonedasURL)),
		Timeout:       timeout,
		JobName:       misc.Getenv("JOB_NAME", strOr(jobOpt, defaultJobName)),
		SelfTelemetry: self,
	}, nil
}

// normalizePushURL strips the /api/prom/push suffix hosted Grafana
// hands out, so the same value works for both protocol paths.
func normalizePushURL(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(strings.TrimRight(s, "/"), "/api/prom/push")
	return strings.TrimRight(s, "/")
}

func strOr(v, def string) string {
	if v = strings.TrimSpace(v); v != "" {
		return v
	}
	return def
}
