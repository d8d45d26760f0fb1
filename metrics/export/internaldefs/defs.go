package internaldefs

import (
	controltower "github.com/towerops/controltower"
)

// CounterDef defines a public type used by controltower APIs.
//
// CounterDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type CounterDef struct {
	ID   controltower.MetricID
	Name string
	Help string
}

// HistogramDef defines a public type used by controltower APIs.
//
// HistogramDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type HistogramDef struct {
	ID   controltower.MetricID
	Name string
	Help string
}

// CounterDefs is an exported constant or variable used by the session guard.
var CounterDefs = []CounterDef{
	{ID: controltower.MetricLoginSuccess, Name: "controltower_login_success_total", Help: "Successful login exchanges."},
	{ID: controltower.MetricLoginFailure, Name: "controltower_login_failure_total", Help: "Rejected login exchanges."},
	{ID: controltower.MetricLoginUnreachable, Name: "controltower_login_unreachable_total", Help: "Login attempts that could not reach the backend."},
	{ID: controltower.MetricLogout, Name: "controltower_logout_total", Help: "Logout operations."},
	{ID: controltower.MetricSessionRestored, Name: "controltower_session_restored_total", Help: "Sessions restored from durable storage."},
	{ID: controltower.MetricSessionDiscarded, Name: "controltower_session_discarded_total", Help: "Corrupt persisted sessions discarded during restore."},
	{ID: controltower.MetricSessionCommitted, Name: "controltower_session_committed_total", Help: "Sessions committed after login."},
	{ID: controltower.MetricSessionCleared, Name: "controltower_session_cleared_total", Help: "Sessions cleared by logout or invalidation."},
	{ID: controltower.MetricUnauthorizedSignal, Name: "controltower_unauthorized_signal_total", Help: "Unauthorized responses observed on the middleware chain."},
	{ID: controltower.MetricRequestAuthorized, Name: "controltower_request_authorized_total", Help: "Backend requests issued with an active session."},
	{ID: controltower.MetricRequestAnonymous, Name: "controltower_request_anonymous_total", Help: "Backend requests issued without a session."},
	{ID: controltower.MetricGateGranted, Name: "controltower_gate_granted_total", Help: "Route gate transitions into granted."},
	{ID: controltower.MetricGateDenied, Name: "controltower_gate_denied_total", Help: "Route gate transitions into denied."},
	{ID: controltower.MetricAssistantAsk, Name: "controltower_assistant_ask_total", Help: "Questions sent to the chat assistant."},
}

// HistogramDefs is an exported constant or variable used by the session guard.
var HistogramDefs = []HistogramDef{
	{ID: controltower.MetricRequestLatency, Name: "controltower_request_latency_seconds", Help: "Backend request latency histogram."},
}

// HistogramBounds is an exported constant or variable used by the session guard.
var HistogramBounds = []string{
	"0.005",
	"0.01",
	"0.025",
	"0.05",
	"0.1",
	"0.25",
	"0.5",
	"+Inf",
}

// HistogramBoundSuffix is an exported constant or variable used by the session guard.
var HistogramBoundSuffix = []string{
	"0_005",
	"0_01",
	"0_025",
	"0_05",
	"0_1",
	"0_25",
	"0_5",
	"inf",
}

// NormalizeBuckets describes the normalizebuckets operation and its observable behavior.
//
// NormalizeBuckets may return an error when input validation, dependency calls, or security checks fail.
// NormalizeBuckets does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NormalizeBuckets(raw []uint64) [8]uint64 {
	var out [8]uint64
	for i := 0; i < len(out) && i < len(raw); i++ {
		out[i] = raw[i]
	}
	return out
}

// CumulativeBuckets describes the cumulativebuckets operation and its observable behavior.
//
// CumulativeBuckets may return an error when input validation, dependency calls, or security checks fail.
// CumulativeBuckets does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func CumulativeBuckets(raw [8]uint64) [8]uint64 {
	var out [8]uint64
	var running uint64
	for i := 0; i < len(raw); i++ {
		running += raw[i]
		out[i] = running
	}
	return out
}
