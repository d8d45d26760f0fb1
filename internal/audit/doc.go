// Package audit provides asynchronous dispatch of session lifecycle events
// (login, logout, restore, invalidation) to pluggable sinks.
//
// # Architecture boundaries
//
// This package owns event delivery only. Event construction lives with the
// guard in the root package; sinks are caller-provided.
//
// # What this package must NOT do
//
//   - Block a login or an API call on a slow sink (delivery is buffered).
//   - Interpret events or derive state from them.
package audit
