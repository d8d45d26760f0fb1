package transport

import "net/http"

var _ ResponseObserver = (*UnauthorizedObserver)(nil)

// UnauthorizedObserver watches for the backend's unauthorized signal. Every
// 401 fires the hook, unconditionally: an expired credential, a revoked one,
// and one that was never valid all look the same from here. There is no
// retry and no refresh — the hook's owner clears the session and forces
// re-entry through login.
type UnauthorizedObserver struct {
	onUnauthorized func()
}

// NewUnauthorizedObserver creates an [UnauthorizedObserver] invoking hook
// on every 401 response.
func NewUnauthorizedObserver(hook func()) *UnauthorizedObserver {
	return &UnauthorizedObserver{onUnauthorized: hook}
}

// ObserveResponse implements [ResponseObserver].
func (o *UnauthorizedObserver) ObserveResponse(resp *http.Response) {
	if resp.StatusCode != http.StatusUnauthorized {
		return
	}
	if o.onUnauthorized != nil {
		o.onUnauthorized()
	}
}
