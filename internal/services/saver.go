// Package services implements the ledger engine: the identity store, the
// per-user entity stores, and the goal-contribution coordinator. Stores mutate
// in-memory state first and hand persistence off asynchronously; a failed
// write never rolls back visible state.
package services

// Saver is the fire-and-forget persistence sink. Save and Remove must not
// block on I/O; implementations queue the write and log failures instead of
// surfacing them.
type Saver interface {
	Save(key string, value []byte)
	Remove(key string)
}
