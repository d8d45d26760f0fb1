package transport

import "net/http"

// TokenSource reports the currently stored credential. The second return is
// false when no session exists, in which case the request goes out
// untouched (the login call itself rides this path).
type TokenSource func() (string, bool)

var _ RequestTransformer = (*BearerAuthorizer)(nil)

// BearerAuthorizer attaches the stored credential as a bearer Authorization
// header. It is a pure per-request transformation: no credential, no
// header, no other change.
type BearerAuthorizer struct {
	source TokenSource
}

// NewBearerAuthorizer creates a [BearerAuthorizer] reading from source.
func NewBearerAuthorizer(source TokenSource) *BearerAuthorizer {
	return &BearerAuthorizer{source: source}
}

// TransformRequest implements [RequestTransformer].
func (a *BearerAuthorizer) TransformRequest(r *http.Request) {
	token, ok := a.source()
	if !ok || token == "" {
		return
	}
	r.Header.Set("Authorization", "Bearer "+token)
}
