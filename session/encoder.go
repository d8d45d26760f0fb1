package session

import (
	"encoding/json"
	"errors"
	"fmt"
)

const recordFormatVersionCurrent = 1

// ErrCorruptRecord is returned when a persisted session record cannot be
// decoded into a complete credential/identity pair.
var ErrCorruptRecord = errors.New("corrupt session record")

// Encode serializes a record into the versioned envelope: one format
// version byte followed by the JSON body.
func Encode(r *Record) ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("%w: incomplete record", ErrCorruptRecord)
	}

	body, err := json.Marshal(r)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, len(body)+1)
	out = append(out, recordFormatVersionCurrent)
	out = append(out, body...)

	return out, nil
}

// Decode parses a versioned envelope produced by [Encode]. Any deviation —
// truncation, unknown version, unparseable body, or a body missing either
// half of the pair — yields [ErrCorruptRecord].
func Decode(data []byte) (*Record, error) {
	if len(data) < 2 {
		return nil, fmt.Errorf("%w: truncated envelope", ErrCorruptRecord)
	}
	if data[0] != recordFormatVersionCurrent {
		return nil, fmt.Errorf("%w: unknown format version %d", ErrCorruptRecord, data[0])
	}

	r := &Record{}
	if err := json.Unmarshal(data[1:], r); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptRecord, err)
	}
	if !r.Valid() {
		return nil, fmt.Errorf("%w: incomplete record", ErrCorruptRecord)
	}

	return r, nil
}
