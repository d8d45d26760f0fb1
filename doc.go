// Package controltower is the Go client for the Logistics Control Tower
// backend: a session guard (durable credential store, login exchange,
// bearer authorization, 401-driven invalidation, route gating) plus typed
// accessors for the dashboard's data — shipments, vendors, hubs,
// proof-of-delivery documents, summaries, and the assistant chat proxy.
//
// # Architecture boundaries
//
// controltower is the public surface. It exposes [Guard], [Builder],
// [Config], [Client], [RouteGate], and value types. Persistence lives in
// the session sub-package, the HTTP middleware chain in transport, token
// display parsing in token; event delivery sits under internal/ and is
// never exported directly.
//
// # What this package must NOT do
//
//   - Retry, back off, or silently refresh credentials: a 401 clears the
//     session and the operator re-enters through login, full stop.
//   - Enforce authorization. Role codes only filter navigation; the
//     backend is the security boundary.
//   - Touch durable storage outside [Guard.Initialize], commit, and clear.
package controltower
