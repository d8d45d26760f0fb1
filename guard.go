package controltower

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/towerops/controltower/session"
	"github.com/towerops/controltower/token"
)

// Guard is the session guard: the single source of truth for "am I logged
// in, and as whom". It owns the durable session record, performs the login
// exchange, and reacts to the backend's unauthorized signal by clearing
// the session and cancelling whatever was still in flight.
//
// Guard instances are built through [Builder.Build] and safe for
// concurrent use afterwards.
type Guard struct {
	config  Config
	store   session.Store
	log     zerolog.Logger
	metrics *Metrics
	audit   *auditDispatcher
	client  *Client

	mu            sync.Mutex
	resolved      bool
	record        *session.Record
	sessionCtx    context.Context
	cancelSession context.CancelCauseFunc

	committedHooks []func()
	clearedHooks   []func()
}

// Initialize consults durable storage exactly once and resolves the
// guard's authentication state. The persisted credential is provisionally
// trusted — no network verification happens here; the backend's first 401
// is the only validity check. Corrupt persisted state is discarded in full
// and treated as "no session".
//
// Repeated calls are no-ops: resolution happens once per process lifetime,
// regardless of outcome. A storage failure still resolves (as
// unauthenticated) and is returned to the caller.
func (g *Guard) Initialize(ctx context.Context) error {
	g.mu.Lock()
	if g.resolved {
		g.mu.Unlock()
		return nil
	}
	g.resolved = true
	g.mu.Unlock()

	rec, err := g.store.Load(ctx)
	switch {
	case err == nil:
		g.mu.Lock()
		g.record = rec
		g.resetSessionContextLocked()
		g.mu.Unlock()

		g.metricInc(MetricSessionRestored)
		g.audit.emit(ctx, AuditEventRestore, rec.Identity.Username, rec.Identity.RoleCode, true, "")
		g.log.Debug().Str("username", rec.Identity.Username).Msg("session restored from durable storage")
		return nil

	case errors.Is(err, session.ErrNoSession):
		if errors.Is(err, session.ErrCorruptRecord) {
			g.metricInc(MetricSessionDiscarded)
			g.audit.emit(ctx, AuditEventDiscard, "", "", false, err.Error())
			g.log.Warn().Err(err).Msg("discarded corrupt persisted session")
		}
		return nil

	default:
		g.log.Error().Err(err).Msg("session storage unavailable during initialize")
		return err
	}
}

// Resolved reports whether [Guard.Initialize] has run.
func (g *Guard) Resolved() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.resolved
}

// IsAuthenticated reports whether a complete credential/identity pair is
// held. The pair is written and cleared together, so one being present
// implies the other.
func (g *Guard) IsAuthenticated() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.record.Valid()
}

// CurrentIdentity returns the identity of the active session.
func (g *Guard) CurrentIdentity() (Identity, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.record.Valid() {
		return Identity{}, false
	}
	return g.record.Identity, true
}

// Credential returns the stored bearer token. This is the token source the
// request authorizer reads on every dispatch.
func (g *Guard) Credential() (string, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.record.Valid() {
		return "", false
	}
	return g.record.Token, true
}

// TokenClaims inspects the active credential for display (who, which role,
// when it lapses). Never use the result for authorization.
func (g *Guard) TokenClaims() (*token.Claims, error) {
	cred, ok := g.Credential()
	if !ok {
		return nil, ErrNotAuthenticated
	}
	return token.Inspect(cred)
}

// Client returns the API client sharing this guard's middleware chain.
func (g *Guard) Client() *Client {
	return g.client
}

// Logout clears the session from memory and durable storage and cancels
// anything still in flight. It is idempotent: logging out twice leaves the
// same cleared state as once.
func (g *Guard) Logout(ctx context.Context) error {
	username, role := g.currentNames()

	if err := g.clear(ctx); err != nil {
		return err
	}

	g.metricInc(MetricLogout)
	if username != "" {
		g.audit.emit(ctx, AuditEventLogout, username, role, true, "")
		g.log.Info().Str("username", username).Msg("logged out")
	}
	return nil
}

// OnSessionCommitted registers fn to run after every successful commit
// (login). Hooks run outside the guard's lock.
func (g *Guard) OnSessionCommitted(fn func()) {
	if fn == nil {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.committedHooks = append(g.committedHooks, fn)
}

// OnSessionCleared registers fn to run after every clear, whether from
// logout or forced invalidation. Hooks run outside the guard's lock.
func (g *Guard) OnSessionCleared(fn func()) {
	if fn == nil {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.clearedHooks = append(g.clearedHooks, fn)
}

// AuditDropped reports how many session events the dispatcher had to drop.
func (g *Guard) AuditDropped() uint64 {
	if g == nil {
		return 0
	}
	return g.audit.Dropped()
}

// MetricsSnapshot returns a point-in-time copy of all guard metrics.
func (g *Guard) MetricsSnapshot() MetricsSnapshot {
	if g == nil || g.metrics == nil {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}
	return g.metrics.Snapshot()
}

// Close releases the guard's background resources (the audit dispatcher).
func (g *Guard) Close() {
	if g == nil {
		return
	}
	g.audit.Close()
}

// commit stores the credential/identity pair in memory and durable storage
// as one atomic record, then notifies commit hooks.
func (g *Guard) commit(ctx context.Context, id Identity, credential string) error {
	rec := &session.Record{
		Token:    credential,
		Identity: id,
		SavedAt:  time.Now().Unix(),
	}

	if err := g.store.Save(ctx, rec); err != nil {
		return err
	}

	g.mu.Lock()
	g.record = rec
	g.resetSessionContextLocked()
	hooks := append([]func(){}, g.committedHooks...)
	g.mu.Unlock()

	g.metricInc(MetricSessionCommitted)
	for _, fn := range hooks {
		fn()
	}
	return nil
}

// invalidate is the unauthorized-signal hook wired into the response
// observer. Every 401 lands here, unconditionally: the session is cleared,
// in-flight requests are cancelled, and the cleared hooks (route gate
// redirect included) fire. Expired, revoked, and never-valid credentials
// are treated identically.
func (g *Guard) invalidate() {
	g.metricInc(MetricUnauthorizedSignal)

	username, role := g.currentNames()
	_ = g.clear(context.Background())

	if username != "" {
		g.audit.emit(context.Background(), AuditEventInvalidated, username, role, false, ErrUnauthorized.Error())
		g.log.Warn().Str("username", username).Msg("credential rejected by backend, session cleared")
	}
}

// clear wipes memory and durable storage and cancels the session context.
// Clearing an already-empty session is a no-op beyond the hooks.
func (g *Guard) clear(ctx context.Context) error {
	g.mu.Lock()
	had := g.record.Valid()
	g.record = nil
	cancel := g.cancelSession
	g.sessionCtx = nil
	g.cancelSession = nil
	hooks := append([]func(){}, g.clearedHooks...)
	g.mu.Unlock()

	if cancel != nil {
		cancel(ErrSessionInvalidated)
	}

	err := g.store.Clear(ctx)
	if err != nil {
		g.log.Error().Err(err).Msg("clearing durable session storage failed")
	}

	if had {
		g.metricInc(MetricSessionCleared)
	}
	for _, fn := range hooks {
		fn()
	}
	return err
}

// sessionContext returns the context tied to the current session, or nil
// when no session exists. Requests derived from it are cancelled the
// moment the session is invalidated.
func (g *Guard) sessionContext() context.Context {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.sessionCtx
}

func (g *Guard) resetSessionContextLocked() {
	if g.cancelSession != nil {
		g.cancelSession(ErrSessionInvalidated)
	}
	g.sessionCtx, g.cancelSession = context.WithCancelCause(context.Background())
}

func (g *Guard) currentNames() (username, role string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.record.Valid() {
		return "", ""
	}
	return g.record.Identity.Username, g.record.Identity.RoleCode
}

func (g *Guard) metricInc(id MetricID) {
	if g == nil || g.metrics == nil {
		return
	}
	g.metrics.Inc(id)
}
