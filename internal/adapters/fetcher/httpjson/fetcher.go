// Package httpjson fetches JSON arrays from the upstream public APIs.
package httpjson

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/FabianIMV/grafana-chile-data/internal/domain"
	"github.com/FabianIMV/grafana-chile-data/internal/ports"
	"go.uber.org/zap"
)

// Fetcher GETs an endpoint and decodes the body into raw records.
// Every failure mode is downgraded to "no data": the run must continue
// with the remaining sources, so errors are logged here and an empty
// slice goes back to the caller.
type Fetcher struct {
	hc  *http.Client
	log *zap.Logger
}

var _ ports.Fetcher = (*Fetcher)(nil)

// New returns a Fetcher. A nil client gets a 30s-timeout default; a
// nil logger is replaced with a nop logger.
func New(hc *http.Client, log *zap.Logger) *Fetcher {
	if hc == nil {
		hc = &http.Client{Timeout: 30 * time.Second}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Fetcher{hc: hc, log: log}
}

// Fetch retrieves url and decodes a JSON array of objects. No retries;
// the client timeout is the only bound.
func (f *Fetcher) Fetch(ctx context.Context, url string) []domain.RawRecord {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		f.log.Warn("fetch: build request", zap.String("url", url), zap.Error(err))
		return nil
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.hc.Do(req)
	if err != nil {
		f.log.Warn("fetch: request failed", zap.String("url", url), zap.Error(err))
		return nil
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		f.log.Warn("fetch: unexpected status",
			zap.String("url", url),
			zap.String("status", resp.Status),
		)
		return nil
	}

	var records []domain.RawRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		f.log.Warn("fetch: decode body", zap.String("url", url), zap.Error(err))
		return nil
	}
	return records
}
