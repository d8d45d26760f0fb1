// Package transport implements the request/response middleware chain the
// Control Tower client wraps around its HTTP client.
//
// # Design
//
// Instead of ambient interception, the chain is an explicit
// [net/http.RoundTripper] decorator: an ordered list of
// [RequestTransformer] values applied immediately before dispatch, and an
// ordered list of [ResponseObserver] values applied immediately after
// receipt. The order is fixed per request (authorize before send, observe
// after receive); two concurrent requests carry their own transformed
// copies and cannot race each other's credential attachment.
//
// # What this package must NOT do
//
//   - Retry, back off, or refresh credentials.
//   - Mutate the caller's request (requests are cloned before transforming).
//   - Decide what a 401 means: it only reports one to the configured hook.
package transport
