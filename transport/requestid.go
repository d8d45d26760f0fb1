package transport

import (
	"net/http"

	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

var _ RequestTransformer = (*RequestID)(nil)

// RequestID stamps every outgoing request with a fresh UUID so backend logs
// can be correlated with the client's. A caller-provided ID is preserved.
type RequestID struct{}

// TransformRequest implements [RequestTransformer].
func (RequestID) TransformRequest(r *http.Request) {
	if r.Header.Get(requestIDHeader) != "" {
		return
	}
	r.Header.Set(requestIDHeader, uuid.NewString())
}
