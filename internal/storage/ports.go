// Package storage defines the persistence boundary of the ledger engine:
// a key-value port plus the key scheme and versioned payload envelopes the
// engine writes through it.
package storage

import "context"

// KV is the outbound persistence port. Implementations store opaque payloads
// under string keys. A missing key is not an error: Get reports presence
// through its second return value.
type KV interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}
