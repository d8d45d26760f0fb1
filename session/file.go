package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	legacyTokenSuffix    = ".token"
	legacyIdentitySuffix = ".identity"
)

var _ Store = (*FileStore)(nil)

// FileStore persists the session record in a single file, the desktop
// analog of the browser's durable storage. Writes go through a temp file
// and rename so readers never observe a torn record.
//
// FileStore also understands the legacy two-slot layout (`<path>.token`
// plus `<path>.identity`). A well-formed legacy pair is migrated into the
// single-record file on first Load; a pair whose identity half cannot be
// parsed is discarded in full rather than risk a mismatched session.
type FileStore struct {
	path string
}

// NewFileStore creates a [FileStore] rooted at path. The parent directory
// is created lazily on the first Save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: filepath.Clean(path)}
}

// Path returns the record file location.
func (s *FileStore) Path() string {
	return s.path
}

// Load implements [Store.Load].
func (s *FileStore) Load(ctx context.Context) (*Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	switch {
	case err == nil:
		r, decErr := Decode(data)
		if decErr != nil {
			_ = s.Clear(ctx)
			return nil, errors.Join(ErrNoSession, decErr)
		}
		return r, nil
	case os.IsNotExist(err):
		return s.loadLegacy(ctx)
	default:
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
}

// loadLegacy reads the historical two-slot layout. Only a pair that parses
// in full survives the migration.
func (s *FileStore) loadLegacy(ctx context.Context) (*Record, error) {
	tokenData, err := os.ReadFile(s.path + legacyTokenSuffix)
	if os.IsNotExist(err) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	token := strings.TrimSpace(string(tokenData))

	identityData, err := os.ReadFile(s.path + legacyIdentitySuffix)
	if err != nil {
		_ = s.Clear(ctx)
		return nil, errors.Join(ErrNoSession, fmt.Errorf("%w: identity slot unreadable", ErrCorruptRecord))
	}

	var id Identity
	if jsonErr := json.Unmarshal(identityData, &id); jsonErr != nil {
		_ = s.Clear(ctx)
		return nil, errors.Join(ErrNoSession, fmt.Errorf("%w: %v", ErrCorruptRecord, jsonErr))
	}

	r := &Record{Token: token, Identity: id}
	if !r.Valid() {
		_ = s.Clear(ctx)
		return nil, errors.Join(ErrNoSession, fmt.Errorf("%w: incomplete legacy pair", ErrCorruptRecord))
	}

	if err := s.Save(ctx, r); err != nil {
		return nil, err
	}
	s.removeLegacySlots()

	return r, nil
}

// Save implements [Store.Save].
func (s *FileStore) Save(ctx context.Context, r *Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := Encode(r)
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	return nil
}

// Clear implements [Store.Clear]. It removes the record file and any legacy
// slots; repeated calls are no-ops.
func (s *FileStore) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	s.removeLegacySlots()

	return nil
}

func (s *FileStore) removeLegacySlots() {
	_ = os.Remove(s.path + legacyTokenSuffix)
	_ = os.Remove(s.path + legacyIdentitySuffix)
}
