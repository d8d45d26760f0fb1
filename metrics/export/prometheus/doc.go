// Package prometheus provides Prometheus collectors for controltower metrics.
//
// [NewPrometheusExporter] accepts a [controltower.Guard] and exposes an [http.Handler]
// that renders all guard counters and histograms in Prometheus text exposition format.
// Counter names are prefixed controltower_*_total; the single histogram is
// controltower_request_latency_seconds.
//
// # What this package must NOT do
//
//   - Register metrics in a global Prometheus registry — callers mount the Handler.
//   - Mutate guard state.
package prometheus
