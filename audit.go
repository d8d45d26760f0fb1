package controltower

import (
	"context"
	"time"

	internalaudit "github.com/towerops/controltower/internal/audit"
)

// Session lifecycle event types emitted by the guard.
const (
	AuditEventLogin       = "login"
	AuditEventLoginFailed = "login_failed"
	AuditEventLogout      = "logout"
	AuditEventRestore     = "session_restore"
	AuditEventDiscard     = "session_discard"
	AuditEventInvalidated = "session_invalidated"
)

// auditDispatcher adapts the internal dispatcher to the guard's call sites.
// A nil dispatcher (auditing disabled) swallows everything.
type auditDispatcher struct {
	inner *internalaudit.Dispatcher
}

func newAuditDispatcher(cfg AuditConfig, sink AuditSink) *auditDispatcher {
	return &auditDispatcher{
		inner: internalaudit.NewDispatcher(internalaudit.Config{
			Enabled:    cfg.Enabled,
			BufferSize: cfg.BufferSize,
			DropIfFull: cfg.DropIfFull,
		}, sink),
	}
}

func (d *auditDispatcher) emit(ctx context.Context, eventType, username, role string, success bool, errMsg string) {
	if d == nil || d.inner == nil {
		return
	}
	d.inner.Emit(ctx, internalaudit.Event{
		Timestamp: time.Now().UTC(),
		EventType: eventType,
		Username:  username,
		Role:      role,
		Success:   success,
		Error:     errMsg,
	})
}

func (d *auditDispatcher) Close() {
	if d == nil {
		return
	}
	d.inner.Close()
}

func (d *auditDispatcher) Dropped() uint64 {
	if d == nil {
		return 0
	}
	return d.inner.Dropped()
}
