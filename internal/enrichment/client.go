// Package enrichment holds HTTP clients for the third-party data shown next
// to a destination: current weather and country facts. Each client sits
// behind its own circuit breaker so a failing upstream is skipped quickly
// instead of stalling every destination read.
package enrichment

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"github.com/pkordes/trip-planner/internal/domain"
)

// maxResponseBytes bounds how much of an upstream body is read.
const maxResponseBytes = 1 << 20

// Options configures a client. Zero values fall back to sensible defaults.
type Options struct {
	BaseURL    string
	APIKey     string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *slog.Logger
}

func (o Options) httpClient() *http.Client {
	if o.HTTPClient != nil {
		return o.HTTPClient
	}
	timeout := o.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &http.Client{Timeout: timeout}
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

// newBreaker trips after five consecutive failures and probes again after 30s.
func newBreaker(name string, logger *slog.Logger) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		IsSuccessful: func(err error) bool {
			var nf notFound
			return err == nil || errors.As(err, &nf)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				"breaker", name, "from", from.String(), "to", to.String())
		},
	})
}

// errStatus marks a non-2xx upstream answer.
type errStatus struct {
	code int
	body string
}

func (e *errStatus) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.code, e.body)
}

// getJSON performs req through cb and decodes a 2xx JSON body into out.
// Every failure wraps domain.ErrDependency. A 404 additionally wraps
// domain.ErrNotFound and does not count against the breaker.
func getJSON(cb *gobreaker.CircuitBreaker, client *http.Client, req *http.Request, out any) error {
	_, err := cb.Execute(func() (any, error) {
		resp, err := client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
		if err != nil {
			return nil, err
		}
		if resp.StatusCode == http.StatusNotFound {
			return nil, notFound{&errStatus{code: resp.StatusCode, body: string(body)}}
		}
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return nil, &errStatus{code: resp.StatusCode, body: string(body)}
		}
		return nil, json.Unmarshal(body, out)
	})

	var nf notFound
	switch {
	case err == nil:
		return nil
	case errors.As(err, &nf):
		return fmt.Errorf("%w: %w: %w", domain.ErrDependency, domain.ErrNotFound, nf.err)
	default:
		return fmt.Errorf("%w: %w", domain.ErrDependency, err)
	}
}

// notFound is returned from inside the breaker for 404s, which
// IsSuccessful does not count as failures.
type notFound struct{ err error }

func (n notFound) Error() string { return n.err.Error() }
