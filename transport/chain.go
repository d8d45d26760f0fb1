package transport

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// RequestTransformer mutates an outgoing request immediately before
// dispatch. Transformers must be synchronous and touch nothing beyond the
// request they are handed.
type RequestTransformer interface {
	TransformRequest(r *http.Request)
}

// ResponseObserver inspects an incoming response immediately after receipt,
// before the caller sees it. Observers must not consume the body.
type ResponseObserver interface {
	ObserveResponse(resp *http.Response)
}

var _ http.RoundTripper = (*Chain)(nil)

// Chain is the decorator around the base round tripper. Transformers run in
// registration order before the request leaves; observers run in
// registration order once the response arrives.
type Chain struct {
	base         http.RoundTripper
	transformers []RequestTransformer
	observers    []ResponseObserver
	log          zerolog.Logger

	// Latency, when set, receives the duration of every completed exchange.
	Latency func(d time.Duration)
}

// NewChain builds a [Chain] over base. A nil base falls back to
// [http.DefaultTransport].
func NewChain(base http.RoundTripper, log zerolog.Logger) *Chain {
	if base == nil {
		base = http.DefaultTransport
	}
	return &Chain{base: base, log: log}
}

// Use appends a request transformer. Registration order is dispatch order.
func (c *Chain) Use(t RequestTransformer) *Chain {
	c.transformers = append(c.transformers, t)
	return c
}

// Observe appends a response observer. Registration order is receipt order.
func (c *Chain) Observe(o ResponseObserver) *Chain {
	c.observers = append(c.observers, o)
	return c
}

// RoundTrip implements [net/http.RoundTripper].
func (c *Chain) RoundTrip(req *http.Request) (*http.Response, error) {
	out := req.Clone(req.Context())
	for _, t := range c.transformers {
		t.TransformRequest(out)
	}

	start := time.Now()
	resp, err := c.base.RoundTrip(out)
	elapsed := time.Since(start)

	if c.Latency != nil {
		c.Latency(elapsed)
	}

	if err != nil {
		c.log.Debug().
			Str("method", out.Method).
			Str("path", out.URL.Path).
			Dur("elapsed", elapsed).
			Err(err).
			Msg("request failed")
		return nil, err
	}

	for _, o := range c.observers {
		o.ObserveResponse(resp)
	}

	c.log.Debug().
		Str("method", out.Method).
		Str("path", out.URL.Path).
		Int("status", resp.StatusCode).
		Dur("elapsed", elapsed).
		Msg("request completed")

	return resp, nil
}
