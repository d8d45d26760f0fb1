package controltower

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Client is the typed surface over the Control Tower REST backend. Every
// request rides the guard's middleware chain, so the bearer credential and
// request ID are attached and the unauthorized signal is observed without
// any per-call ceremony here.
//
// Requests made while a session is active are additionally bound to that
// session: the moment the guard invalidates, everything in flight is
// cancelled with [ErrSessionInvalidated].
type Client struct {
	backendURL       string
	assistantURL     string
	assistantTimeout time.Duration
	http             *http.Client
	log              zerolog.Logger
	metrics          *Metrics

	// sessionCtx yields the context tied to the active session, or nil
	// when no session exists.
	sessionCtx func() context.Context
}

func newClient(cfg Config, hc *http.Client, log zerolog.Logger, m *Metrics, sessionCtx func() context.Context) *Client {
	return &Client{
		backendURL:       strings.TrimRight(cfg.Backend.BaseURL, "/"),
		assistantURL:     strings.TrimRight(cfg.Assistant.BaseURL, "/"),
		assistantTimeout: cfg.Assistant.Timeout,
		http:             hc,
		log:              log,
		metrics:          m,
		sessionCtx:       sessionCtx,
	}
}

// login is the one unauthenticated exchange; the chain still rides along
// but finds no credential to attach.
func (c *Client) login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	var resp LoginResponse
	if err := c.do(ctx, http.MethodPost, c.backendURL, "/api/auth/login", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, c.backendURL, path, query, nil, out)
}

// do builds, dispatches, and decodes one exchange. Error mapping is
// uniform: transport failures wrap [ErrBackendUnavailable], non-2xx
// responses become [*APIError] carrying the backend's detail message, and
// a session invalidated mid-flight surfaces as [ErrSessionInvalidated].
func (c *Client) do(ctx context.Context, method, base, path string, query url.Values, body, out any) error {
	reqCtx, release := c.requestContext(ctx)
	defer release()

	if c.sessionCtx() != nil {
		c.metrics.Inc(MetricRequestAuthorized)
	} else {
		c.metrics.Inc(MetricRequestAnonymous)
	}

	u := base + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var rdr io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		rdr = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(reqCtx, method, u, rdr)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return c.mapTransportError(reqCtx, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return c.mapTransportError(reqCtx, err)
	}

	if resp.StatusCode >= 400 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var payload struct {
			Detail string `json:"detail"`
		}
		if json.Unmarshal(data, &payload) == nil {
			apiErr.Detail = payload.Detail
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decoding response from %s: %w", path, err)
	}
	return nil
}

// requestContext merges the caller's context with the session context, so
// either cancels the request. With no active session the caller's context
// is used as-is.
func (c *Client) requestContext(ctx context.Context) (context.Context, func()) {
	sc := c.sessionCtx()
	if sc == nil {
		return ctx, func() {}
	}

	merged, cancel := context.WithCancelCause(ctx)
	stop := context.AfterFunc(sc, func() {
		cancel(context.Cause(sc))
	})
	return merged, func() {
		stop()
		cancel(nil)
	}
}

func (c *Client) mapTransportError(reqCtx context.Context, err error) error {
	if cause := context.Cause(reqCtx); cause != nil && errors.Is(cause, ErrSessionInvalidated) {
		return ErrSessionInvalidated
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	c.log.Warn().Err(err).Msg("backend unreachable")
	return fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
}
