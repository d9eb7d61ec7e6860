package entity

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Starting budget targets shown on first run.
var (
	DefaultMonthlyBudget = decimal.NewFromInt(10000)
	DefaultSavingsGoal   = decimal.NewFromInt(5000)
)

// Profile is the authoritative record of one user's identity and budget targets
type Profile struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Email         string          `json:"email"`
	MonthlyBudget decimal.Decimal `json:"monthlyBudget"`
	SavingsGoal   decimal.Decimal `json:"savingsGoal"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// NewProfile creates a profile with a fresh identifier and creation timestamp.
// Zero budget targets fall back to the defaults.
func NewProfile(name, email string, monthlyBudget, savingsGoal decimal.Decimal) *Profile {
	if monthlyBudget.IsZero() {
		monthlyBudget = DefaultMonthlyBudget
	}
	if savingsGoal.IsZero() {
		savingsGoal = DefaultSavingsGoal
	}

	return &Profile{
		ID:            uuid.New().String(),
		Name:          name,
		Email:         email,
		MonthlyBudget: monthlyBudget,
		SavingsGoal:   savingsGoal,
		CreatedAt:     time.Now().UTC(),
	}
}

// Validate ensures the profile meets all requirements
func (p *Profile) Validate() error {
	if p.Name == "" {
		return errors.New("name must not be empty")
	}

	if p.Email == "" {
		return errors.New("email must not be empty")
	}

	if p.MonthlyBudget.IsNegative() {
		return errors.New("monthly budget must not be negative")
	}

	if p.SavingsGoal.IsNegative() {
		return errors.New("savings goal must not be negative")
	}

	return nil
}

// UpdateBudgetTargets replaces the two editable fields. Identity, name, email
// and creation timestamp are immutable after creation.
func (p *Profile) UpdateBudgetTargets(monthlyBudget, savingsGoal decimal.Decimal) error {
	if monthlyBudget.IsNegative() {
		return errors.New("monthly budget must not be negative")
	}

	if savingsGoal.IsNegative() {
		return errors.New("savings goal must not be negative")
	}

	p.MonthlyBudget = monthlyBudget
	p.SavingsGoal = savingsGoal
	return nil
}
