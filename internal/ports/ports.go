// Package ports declares the seams between the pipeline and its adapters.
package ports

import (
	"context"
	"time"

	"github.com/FabianIMV/grafana-chile-data/internal/domain"
)

// Fetcher retrieves a JSON array from an upstream endpoint. It never
// returns an error: transport, status, and decode failures are logged
// by the implementation and yield an empty slice, so one dead upstream
// cannot abort the run.
type Fetcher interface {
	Fetch(ctx context.Context, url string) []domain.RawRecord
}

// Collector turns one upstream's raw records into normalized metrics.
// Malformed records are skipped, never fatal.
type Collector interface {
	Name() string
	Collect(records []domain.RawRecord) []domain.Metric
}

// Encoder serializes a batch into one push protocol's wire body. The
// timestamp is shared by the whole batch; encoders that carry no
// timestamp ignore it.
type Encoder interface {
	Encode(batch domain.Batch, at time.Time) []byte
}

// Route identifies a push protocol endpoint: the path appended to the
// configured base URL and the content type of its body.
type Route struct {
	Name        string
	Path        string
	ContentType string
}

// Publisher posts an encoded body to one protocol route. A non-2xx
// response or transport failure comes back as an error; the publisher
// itself never retries.
type Publisher interface {
	Push(ctx context.Context, route Route, body []byte) error
}
