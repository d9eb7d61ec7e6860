package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/parmanandkushwah/MoneyMentor/internal/domain/entity"
	"github.com/parmanandkushwah/MoneyMentor/internal/domain/repository"
	"github.com/parmanandkushwah/MoneyMentor/internal/infrastructure/logger"
	"github.com/shopspring/decimal"
)

// TransactionInput carries the user-supplied fields of a new or edited
// transaction. ID and owner are assigned by the service.
type TransactionInput struct {
	Date          time.Time
	Type          entity.TransactionType
	Category      string
	Amount        decimal.Decimal
	PaymentMethod entity.PaymentMethod
	Notes         string
}

// SessionService owns the active profile and its in-memory ledger and
// snapshot. Every mutation mirrors the affected entities to storage and
// recomputes the budget snapshot in full; the mutex makes each operation
// atomic with respect to any other on the same service.
type SessionService struct {
	profiles  repository.ProfileRepository
	ledgers   repository.LedgerRepository
	snapshots repository.SnapshotRepository
	logger    logger.Logger

	mu       sync.Mutex
	profile  *entity.Profile
	ledger   []entity.Transaction
	snapshot entity.BudgetSnapshot
}

// NewSessionService creates a session service in the logged-out state
func NewSessionService(profiles repository.ProfileRepository, ledgers repository.LedgerRepository, snapshots repository.SnapshotRepository, log logger.Logger) *SessionService {
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &SessionService{
		profiles:  profiles,
		ledgers:   ledgers,
		snapshots: snapshots,
		logger:    log,
		snapshot:  entity.DefaultSnapshot(),
	}
}

// Initialize restores the session persisted on this device, if any. An
// absent or undecodable stored profile leaves the session logged out and is
// not an error.
func (s *SessionService) Initialize(ctx context.Context) (*entity.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	profile, ok, err := s.profiles.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to restore session: %w", err)
	}

	if !ok {
		s.logger.Info("No stored profile, starting logged out", nil)
		return nil, nil
	}

	s.profile = profile
	s.loadUserData(ctx, profile.ID)

	if err := s.recompute(ctx); err != nil {
		return nil, err
	}

	s.logger.Info("Session restored", map[string]interface{}{
		"user_id": profile.ID,
		"name":    profile.Name,
	})

	out := *profile
	return &out, nil
}

// Login creates and activates a fresh profile. The identifier and creation
// timestamp are assigned here and are immutable afterwards.
func (s *SessionService) Login(ctx context.Context, name, email string, monthlyBudget, savingsGoal decimal.Decimal) (*entity.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	profile := entity.NewProfile(name, email, monthlyBudget, savingsGoal)
	if err := profile.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	if err := s.profiles.Save(ctx, profile); err != nil {
		return nil, err
	}

	s.profile = profile
	s.loadUserData(ctx, profile.ID)

	if err := s.recompute(ctx); err != nil {
		return nil, err
	}

	s.logger.Info("Profile created", map[string]interface{}{
		"user_id": profile.ID,
		"name":    profile.Name,
	})

	out := *profile
	return &out, nil
}

// Logout deactivates the current profile and resets the in-memory state to
// defaults. Only the active-profile key is removed from storage; the user's
// ledger and snapshot keys are retained.
func (s *SessionService) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.profile == nil {
		return ErrNoActiveSession
	}

	userID := s.profile.ID

	if err := s.profiles.Clear(ctx); err != nil {
		return err
	}

	s.profile = nil
	s.ledger = nil
	s.snapshot = entity.DefaultSnapshot()

	s.logger.Info("Session ended", map[string]interface{}{
		"user_id": userID,
	})

	return nil
}

// UpdateSettings replaces the monthly budget and savings goal of the active
// profile and recomputes the snapshot against the new targets.
func (s *SessionService) UpdateSettings(ctx context.Context, monthlyBudget, savingsGoal decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.profile == nil {
		return ErrNoActiveSession
	}

	if err := s.profile.UpdateBudgetTargets(monthlyBudget, savingsGoal); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	if err := s.profiles.Save(ctx, s.profile); err != nil {
		return err
	}

	s.logger.Info("Budget settings updated", map[string]interface{}{
		"user_id":        s.profile.ID,
		"monthly_budget": monthlyBudget.String(),
		"savings_goal":   savingsGoal.String(),
	})

	return s.recompute(ctx)
}

// AddTransaction validates and records a new transaction at the head of the
// ledger, then persists the ledger and the recomputed snapshot.
func (s *SessionService) AddTransaction(ctx context.Context, input TransactionInput) (*entity.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.profile == nil {
		return nil, ErrNoActiveSession
	}

	date := input.Date
	if date.IsZero() {
		date = time.Now().UTC()
	}

	tx := entity.Transaction{
		ID:            uuid.New().String(),
		Date:          date,
		Type:          input.Type,
		Category:      input.Category,
		Amount:        input.Amount,
		PaymentMethod: input.PaymentMethod,
		Notes:         input.Notes,
		UserID:        s.profile.ID,
	}

	if err := tx.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	// Newest first
	s.ledger = append([]entity.Transaction{tx}, s.ledger...)

	if err := s.ledgers.Save(ctx, s.profile.ID, s.ledger); err != nil {
		s.ledger = s.ledger[1:]
		return nil, err
	}

	s.logger.Info("Transaction recorded", map[string]interface{}{
		"user_id":  s.profile.ID,
		"id":       tx.ID,
		"type":     string(tx.Type),
		"category": tx.Category,
		"amount":   tx.Amount.String(),
	})

	if err := s.recompute(ctx); err != nil {
		return nil, err
	}

	out := tx
	return &out, nil
}

// UpdateTransaction edits the mutable fields of an existing record. The
// identifier, owner and entry date never change.
func (s *SessionService) UpdateTransaction(ctx context.Context, id string, input TransactionInput) (*entity.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.profile == nil {
		return nil, ErrNoActiveSession
	}

	idx := s.findTransaction(id)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrTransactionNotFound, id)
	}

	// Validate the candidate before touching ledger state
	candidate := s.ledger[idx]
	candidate.Type = input.Type
	candidate.Category = input.Category
	candidate.Amount = input.Amount
	candidate.PaymentMethod = input.PaymentMethod
	candidate.Notes = input.Notes

	if err := candidate.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	previous := s.ledger[idx]
	s.ledger[idx] = candidate

	if err := s.ledgers.Save(ctx, s.profile.ID, s.ledger); err != nil {
		s.ledger[idx] = previous
		return nil, err
	}

	s.logger.Info("Transaction updated", map[string]interface{}{
		"user_id": s.profile.ID,
		"id":      id,
	})

	if err := s.recompute(ctx); err != nil {
		return nil, err
	}

	out := candidate
	return &out, nil
}

// RemoveTransaction deletes a record from the ledger. An unknown identifier
// is a reportable error, never a silent no-op.
func (s *SessionService) RemoveTransaction(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.profile == nil {
		return ErrNoActiveSession
	}

	idx := s.findTransaction(id)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrTransactionNotFound, id)
	}

	previous := s.ledger
	s.ledger = append(append([]entity.Transaction{}, s.ledger[:idx]...), s.ledger[idx+1:]...)

	if err := s.ledgers.Save(ctx, s.profile.ID, s.ledger); err != nil {
		s.ledger = previous
		return err
	}

	s.logger.Info("Transaction removed", map[string]interface{}{
		"user_id": s.profile.ID,
		"id":      id,
	})

	return s.recompute(ctx)
}

// ActiveProfile returns a copy of the active profile, or nil when logged out
func (s *SessionService) ActiveProfile() *entity.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.profile == nil {
		return nil
	}

	out := *s.profile
	return &out
}

// Transactions returns a copy of the active user's ledger, newest first
func (s *SessionService) Transactions() []entity.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]entity.Transaction, len(s.ledger))
	copy(out, s.ledger)
	return out
}

// Snapshot returns the current budget snapshot
func (s *SessionService) Snapshot() entity.BudgetSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.snapshot
}

// loadUserData fills the in-memory ledger and snapshot from storage. Absent
// or undecodable data is not an error: a brand-new user simply starts from
// an empty ledger and the default snapshot.
func (s *SessionService) loadUserData(ctx context.Context, userID string) {
	ledger, ok, err := s.ledgers.Load(ctx, userID)
	if err != nil {
		s.logger.Warn("Failed to load ledger, starting empty", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
	}
	if !ok {
		ledger = nil
	}
	s.ledger = ledger

	snapshot, ok, err := s.snapshots.Load(ctx, userID)
	if err != nil {
		s.logger.Warn("Failed to load snapshot, using defaults", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
	}
	if ok {
		s.snapshot = *snapshot
	} else {
		s.snapshot = entity.DefaultSnapshot()
	}
}

// recompute derives a fresh snapshot from the current ledger and profile and
// mirrors it to storage. The stored snapshot is only a display cache; a
// failed write leaves it stale until the next recomputation.
func (s *SessionService) recompute(ctx context.Context) error {
	if s.profile == nil {
		return nil
	}

	s.snapshot = entity.ComputeSnapshot(s.ledger, s.profile)

	if err := s.snapshots.Save(ctx, s.profile.ID, &s.snapshot); err != nil {
		return fmt.Errorf("failed to persist snapshot: %w", err)
	}

	return nil
}

func (s *SessionService) findTransaction(id string) int {
	for i := range s.ledger {
		if s.ledger[i].ID == id {
			return i
		}
	}
	return -1
}
