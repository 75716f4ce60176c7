// Package httppush posts encoded metric bodies to the remote ingestion
// endpoint with basic auth. One attempt per call; protocol fallback is
// the pipeline's job.
package httppush

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/FabianIMV/grafana-chile-data/internal/ports"
	"go.uber.org/zap"
)

// maxBodyLog bounds how much of an error response ends up in the log.
const maxBodyLog = 512

// LineProtocolRoute is the primary push protocol: the field line
// format written to the hosted endpoint's influx-compatible path.
func LineProtocolRoute() ports.Route {
	return ports.Route{
		Name: "line-protocol",
		Path: "/api/v1/push/influx/write",
	}
}

// ExpositionRoute is the fallback: the tagged line format posted
// pushgateway-style under the job name.
func ExpositionRoute(job string) ports.Route {
	return ports.Route{
		Name:        "exposition",
		Path:        "/metrics/job/" + url.PathEscape(job),
		ContentType: "text/plain",
	}
}

// Client sends bodies to one base URL with one set of credentials.
type Client struct {
	base *url.URL
	hc   *http.Client
	user string
	pass string
	log  *zap.Logger
}

var _ ports.Publisher = (*Client)(nil)

// New normalizes the base address and returns a Client. A nil HTTP
// client gets a 30s-timeout default.
func New(baseAddr string, hc *http.Client, user, pass string, log *zap.Logger) (*Client, error) {
	if hc == nil {
		hc = &http.Client{Timeout: 30 * time.Second}
	}
	if log == nil {
		log = zap.NewNop()
	}
	u, err := url.Parse(normalizeBase(baseAddr))
	if err != nil {
		return nil, err
	}
	return &Client{base: u, hc: hc, user: user, pass: pass, log: log}, nil
}

func normalizeBase(s string) string {
	if strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") {
		return strings.TrimRight(s, "/")
	}
	return "https://" + strings.TrimRight(s, "/")
}

func (c *Client) endpoint(path string) string {
	u := *c.base
	u.Path = strings.TrimRight(u.Path, "/") + path
	return u.String()
}

type httpStatusError struct {
	code int
	msg  string
}

func (e *httpStatusError) Error() string {
	return e.msg
}

// Push posts body to the route's path. Transport errors and non-2xx
// responses come back as errors after logging the status and a
// truncated response body; nothing panics past this boundary.
func (c *Client) Push(ctx context.Context, route ports.Route, body []byte) (retErr error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(route.Path), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("push %s: new request: %w", route.Name, err)
	}
	if route.ContentType != "" {
		req.Header.Set("Content-Type", route.ContentType)
	}
	req.SetBasicAuth(c.user, c.pass)

	resp, err := c.hc.Do(req)
	if err != nil {
		c.log.Warn("push: request failed", zap.String("protocol", route.Name), zap.Error(err))
		return fmt.Errorf("push %s: %w", route.Name, err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil && retErr == nil {
			retErr = fmt.Errorf("close response body: %w", cerr)
		}
	}()

	snippet, err := readSnippet(resp.Body)
	if err != nil {
		return fmt.Errorf("push %s: read response: %w", route.Name, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Warn("push: rejected",
			zap.String("protocol", route.Name),
			zap.String("status", resp.Status),
			zap.String("body", snippet),
		)
		return &httpStatusError{
			code: resp.StatusCode,
			msg:  fmt.Sprintf("push %s: server status: %s", route.Name, resp.Status),
		}
	}
	return nil
}

// readSnippet keeps the first maxBodyLog bytes for diagnostics and
// drains the rest so the connection can be reused.
func readSnippet(r io.Reader) (string, error) {
	head, err := io.ReadAll(io.LimitReader(r, maxBodyLog))
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(io.Discard, r); err != nil {
		return "", err
	}
	return string(head), nil
}
