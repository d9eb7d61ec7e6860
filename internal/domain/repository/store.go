package repository

import "context"

// Store is the per-device key/value persistence contract the core consumes.
// Values are opaque byte strings; there is no transactional guarantee across
// keys. Get reports presence explicitly so an absent key is not an error.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
}

// Key scheme: one shared key for the active profile, per-user keys for
// everything else, partitioned by the owning profile's identifier.
const ActiveProfileKey = "user"

// LedgerKey returns the storage key for a user's transaction ledger
func LedgerKey(userID string) string {
	return "transactions:" + userID
}

// SnapshotKey returns the storage key for a user's cached budget snapshot
func SnapshotKey(userID string) string {
	return "budget:" + userID
}
