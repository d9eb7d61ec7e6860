package repository

import (
	"context"

	"github.com/parmanandkushwah/MoneyMentor/internal/domain/entity"
)

// ProfileRepository persists the single active profile.
//
// Load reports absence (nil, false, nil) both for a missing key and for a
// stored value that cannot be decoded: persisted data is a convenience layer,
// never a source of unrecoverable truth.
type ProfileRepository interface {
	// Load retrieves the active profile if one is stored
	Load(ctx context.Context) (*entity.Profile, bool, error)

	// Save stores the active profile
	Save(ctx context.Context, profile *entity.Profile) error

	// Clear removes the active profile key, leaving per-user data intact
	Clear(ctx context.Context) error
}

// LedgerRepository persists one user's transaction ledger as a whole,
// newest-first.
type LedgerRepository interface {
	// Load retrieves the ledger for a user; absent or undecodable yields
	// (nil, false, nil)
	Load(ctx context.Context, userID string) ([]entity.Transaction, bool, error)

	// Save overwrites the full ledger for a user
	Save(ctx context.Context, userID string, ledger []entity.Transaction) error
}

// SnapshotRepository persists the derived budget snapshot per user. The
// stored snapshot is a display cache; recomputation from ledger and profile
// always wins over it.
type SnapshotRepository interface {
	// Load retrieves the cached snapshot for a user
	Load(ctx context.Context, userID string) (*entity.BudgetSnapshot, bool, error)

	// Save overwrites the cached snapshot for a user
	Save(ctx context.Context, userID string, snapshot *entity.BudgetSnapshot) error
}
