package session

import (
	"context"
	"errors"
)

// ErrNoSession is returned by [Store.Load] when durable storage holds no
// usable session. Corrupt state is discarded first, so after ErrNoSession
// the storage is guaranteed empty.
var ErrNoSession = errors.New("no stored session")

// ErrStoreUnavailable is an exported constant or variable used by the session stores.
var ErrStoreUnavailable = errors.New("session storage unavailable")

// Store is durable storage for the session record. Implementations must
// treat Save and Clear as whole-record operations: there is no API for
// touching the credential or the identity independently.
type Store interface {
	// Load returns the persisted record, or ErrNoSession when storage is
	// empty. A corrupt record is removed from storage and reported as
	// ErrNoSession joined with ErrCorruptRecord.
	Load(ctx context.Context) (*Record, error)
	// Save persists the record atomically, replacing any previous one.
	Save(ctx context.Context, r *Record) error
	// Clear removes the record. Clearing empty storage is a no-op.
	Clear(ctx context.Context) error
}
