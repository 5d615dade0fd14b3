package storage

import (
	"encoding/json"
	"fmt"
)

// SchemaVersion is the current payload envelope version. Loads of a different
// version fail decoding; callers fall back to defaults rather than guessing at
// an unknown shape.
const SchemaVersion = 1

type envelope struct {
	Version int             `json:"version"`
	Data    json.RawMessage `json:"data"`
}

// Encode wraps v in the versioned envelope.
func Encode[T any](v T) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}
	return json.Marshal(envelope{Version: SchemaVersion, Data: data})
}

// Decode unwraps a versioned envelope produced by Encode. Malformed payloads
// and unknown versions are errors; the caller substitutes defaults.
func Decode[T any](raw []byte) (T, error) {
	var zero T
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return zero, fmt.Errorf("unmarshal envelope: %w", err)
	}
	if env.Version != SchemaVersion {
		return zero, fmt.Errorf("unsupported payload version %d", env.Version)
	}
	var v T
	if err := json.Unmarshal(env.Data, &v); err != nil {
		return zero, fmt.Errorf("unmarshal payload: %w", err)
	}
	return v, nil
}
