package controltower

import (
	"context"
	"sync"
)

// GateState is the route gate's decision about the protected surface.
type GateState int

const (
	// GateChecking is the initial state: durable storage has not been
	// consulted yet and nothing protected may render.
	GateChecking GateState = iota
	// GateDenied means no session exists; the viewer belongs on the login
	// surface.
	GateDenied
	// GateGranted means a session exists and the protected surface may
	// render.
	GateGranted
)

// String implements the Stringer interface.
func (s GateState) String() string {
	switch s {
	case GateChecking:
		return "checking"
	case GateDenied:
		return "denied"
	case GateGranted:
		return "granted"
	default:
		return "unknown"
	}
}

// RouteGate guards the protected surface with a three-way decision:
// checking until storage has been consulted, then granted or denied
// tracking the guard's session state. Once resolved it never returns to
// checking for the life of the process.
//
// The redirect hook fires on every entry to denied, whether from an
// explicit logout, a forced invalidation, or resolving with no stored
// session.
type RouteGate struct {
	guard *Guard

	mu       sync.Mutex
	state    GateState
	redirect func()
}

// NewRouteGate wires a gate to the guard's session lifecycle. The gate
// starts in [GateChecking]; call [RouteGate.Resolve] once at startup.
// redirect may be nil.
func NewRouteGate(g *Guard, redirect func()) *RouteGate {
	rg := &RouteGate{
		guard:    g,
		state:    GateChecking,
		redirect: redirect,
	}

	g.OnSessionCommitted(rg.grant)
	g.OnSessionCleared(rg.deny)
	return rg
}

// State returns the gate's current decision.
func (rg *RouteGate) State() GateState {
	rg.mu.Lock()
	defer rg.mu.Unlock()
	return rg.state
}

// Resolve consults durable storage (through the guard) and moves the gate
// out of checking. Resolving an already-resolved gate re-reads the guard's
// state but never regresses to checking. The storage error, if any, is
// returned after the gate has settled on denied.
func (rg *RouteGate) Resolve(ctx context.Context) (GateState, error) {
	err := rg.guard.Initialize(ctx)

	if rg.guard.IsAuthenticated() {
		rg.grant()
	} else {
		rg.deny()
	}
	return rg.State(), err
}

func (rg *RouteGate) grant() {
	rg.mu.Lock()
	if rg.state == GateGranted {
		rg.mu.Unlock()
		return
	}
	rg.state = GateGranted
	rg.mu.Unlock()

	rg.guard.metricInc(MetricGateGranted)
}

func (rg *RouteGate) deny() {
	rg.mu.Lock()
	if rg.state == GateDenied {
		rg.mu.Unlock()
		return
	}
	wasChecking := rg.state == GateChecking
	rg.state = GateDenied
	hook := rg.redirect
	rg.mu.Unlock()

	rg.guard.metricInc(MetricGateDenied)
	if wasChecking {
		rg.guard.log.Debug().Msg("route gate resolved with no session")
	}
	if hook != nil {
		hook()
	}
}
