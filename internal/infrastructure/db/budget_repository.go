package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/parmanandkushwah/MoneyMentor/internal/domain/entity"
	"github.com/parmanandkushwah/MoneyMentor/internal/domain/repository"
	"github.com/parmanandkushwah/MoneyMentor/internal/infrastructure/cache"
	"github.com/parmanandkushwah/MoneyMentor/internal/infrastructure/logger"
)

// StoreProfileRepository persists the active profile through a Store
type StoreProfileRepository struct {
	store  repository.Store
	logger logger.Logger
}

// NewStoreProfileRepository creates a profile repository over a store
func NewStoreProfileRepository(store repository.Store, log logger.Logger) *StoreProfileRepository {
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &StoreProfileRepository{store: store, logger: log}
}

// Load retrieves the active profile. A stored value that cannot be decoded
// is treated as absent, not as a failure.
func (r *StoreProfileRepository) Load(ctx context.Context) (*entity.Profile, bool, error) {
	data, ok, err := r.store.Get(ctx, repository.ActiveProfileKey)
	if err != nil {
		return nil, false, fmt.Errorf("failed to load profile: %w", err)
	}

	if !ok {
		return nil, false, nil
	}

	var profile entity.Profile
	if err := json.Unmarshal(data, &profile); err != nil {
		r.logger.Warn("Discarding malformed stored profile", map[string]interface{}{
			"key":   repository.ActiveProfileKey,
			"error": err.Error(),
		})
		return nil, false, nil
	}

	return &profile, true, nil
}

// Save stores the active profile
func (r *StoreProfileRepository) Save(ctx context.Context, profile *entity.Profile) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}

	if err := r.store.Set(ctx, repository.ActiveProfileKey, data); err != nil {
		return fmt.Errorf("failed to store profile: %w", err)
	}

	return nil
}

// Clear removes the active profile key only; per-user keys stay intact
func (r *StoreProfileRepository) Clear(ctx context.Context) error {
	if err := r.store.Remove(ctx, repository.ActiveProfileKey); err != nil {
		return fmt.Errorf("failed to clear profile: %w", err)
	}

	return nil
}

// StoreLedgerRepository persists per-user ledgers through a Store
type StoreLedgerRepository struct {
	store  repository.Store
	logger logger.Logger
}

// NewStoreLedgerRepository creates a ledger repository over a store
func NewStoreLedgerRepository(store repository.Store, log logger.Logger) *StoreLedgerRepository {
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &StoreLedgerRepository{store: store, logger: log}
}

// Load retrieves a user's full ledger, newest-first. Undecodable data is
// treated as absent so a new session starts from an empty ledger.
func (r *StoreLedgerRepository) Load(ctx context.Context, userID string) ([]entity.Transaction, bool, error) {
	key := repository.LedgerKey(userID)

	data, ok, err := r.store.Get(ctx, key)
	if err != nil {
		return nil, false, fmt.Errorf("failed to load ledger: %w", err)
	}

	if !ok {
		return nil, false, nil
	}

	var ledger []entity.Transaction
	if err := json.Unmarshal(data, &ledger); err != nil {
		r.logger.Warn("Discarding malformed stored ledger", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
		return nil, false, nil
	}

	return ledger, true, nil
}

// Save overwrites a user's full ledger
func (r *StoreLedgerRepository) Save(ctx context.Context, userID string, ledger []entity.Transaction) error {
	data, err := json.Marshal(ledger)
	if err != nil {
		return fmt.Errorf("failed to marshal ledger: %w", err)
	}

	if err := r.store.Set(ctx, repository.LedgerKey(userID), data); err != nil {
		return fmt.Errorf("failed to store ledger: %w", err)
	}

	return nil
}

// StoreSnapshotRepository persists per-user budget snapshots through a Store,
// optionally fronted by an in-memory cache.
type StoreSnapshotRepository struct {
	store  repository.Store
	cache  *cache.SnapshotCache
	logger logger.Logger
}

// NewStoreSnapshotRepository creates a snapshot repository over a store. The
// cache may be nil.
func NewStoreSnapshotRepository(store repository.Store, snapCache *cache.SnapshotCache, log logger.Logger) *StoreSnapshotRepository {
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &StoreSnapshotRepository{store: store, cache: snapCache, logger: log}
}

// Load retrieves the cached snapshot for a user
func (r *StoreSnapshotRepository) Load(ctx context.Context, userID string) (*entity.BudgetSnapshot, bool, error) {
	if r.cache != nil {
		if snap := r.cache.Get(userID); snap != nil {
			return snap, true, nil
		}
	}

	key := repository.SnapshotKey(userID)

	data, ok, err := r.store.Get(ctx, key)
	if err != nil {
		return nil, false, fmt.Errorf("failed to load snapshot: %w", err)
	}

	if !ok {
		return nil, false, nil
	}

	var snapshot entity.BudgetSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		r.logger.Warn("Discarding malformed stored snapshot", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
		return nil, false, nil
	}

	if r.cache != nil {
		r.cache.Put(userID, &snapshot)
	}

	return &snapshot, true, nil
}

// Save overwrites the cached snapshot for a user
func (r *StoreSnapshotRepository) Save(ctx context.Context, userID string, snapshot *entity.BudgetSnapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	if err := r.store.Set(ctx, repository.SnapshotKey(userID), data); err != nil {
		return fmt.Errorf("failed to store snapshot: %w", err)
	}

	if r.cache != nil {
		r.cache.Put(userID, snapshot)
	}

	return nil
}
