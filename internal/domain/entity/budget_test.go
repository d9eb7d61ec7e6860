package entity

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func testProfile(monthlyBudget, savingsGoal int64) *Profile {
	return NewProfile("Asha", "asha@example.com",
		decimal.NewFromInt(monthlyBudget), decimal.NewFromInt(savingsGoal))
}

func income(amount int64) Transaction {
	return Transaction{
		Type:          TypeIncome,
		Category:      "Pocket Money",
		Amount:        decimal.NewFromInt(amount),
		PaymentMethod: PaymentUPI,
	}
}

func expense(amount int64) Transaction {
	return Transaction{
		Type:          TypeExpense,
		Category:      "Food & Dining",
		Amount:        decimal.NewFromInt(amount),
		PaymentMethod: PaymentCash,
	}
}

func TestComputeSnapshot(t *testing.T) {
	t.Run("Empty ledger", func(t *testing.T) {
		snap := ComputeSnapshot(nil, testProfile(10000, 5000))

		assert.True(t, snap.TotalIncome.IsZero())
		assert.True(t, snap.TotalExpenses.IsZero())
		assert.Equal(t, "10000", snap.RemainingBudget.String())
		assert.Equal(t, "333.33", snap.DailyBudget.String())
		assert.True(t, snap.CurrentSavings.IsZero())
		assert.Equal(t, "5000", snap.SavingsGoal.String())
		assert.Equal(t, "10000", snap.MonthlyBudget.String())
	})

	t.Run("Income only", func(t *testing.T) {
		snap := ComputeSnapshot([]Transaction{income(2000)}, testProfile(10000, 5000))

		assert.Equal(t, "2000", snap.TotalIncome.String())
		assert.True(t, snap.TotalExpenses.IsZero())
		assert.Equal(t, "2000", snap.CurrentSavings.String())
	})

	t.Run("Overspent budget goes negative but daily clamps", func(t *testing.T) {
		snap := ComputeSnapshot([]Transaction{expense(12000)}, testProfile(10000, 5000))

		assert.Equal(t, "-2000", snap.RemainingBudget.String())
		assert.True(t, snap.DailyBudget.IsZero())
	})

	t.Run("Savings never negative", func(t *testing.T) {
		ledger := []Transaction{income(500), expense(2000)}
		snap := ComputeSnapshot(ledger, testProfile(10000, 5000))

		assert.True(t, snap.CurrentSavings.IsZero())
		assert.Equal(t, "500", snap.TotalIncome.String())
		assert.Equal(t, "2000", snap.TotalExpenses.String())
	})

	t.Run("Savings equals income minus expenses when non-negative", func(t *testing.T) {
		ledger := []Transaction{income(3000), expense(1200)}
		snap := ComputeSnapshot(ledger, testProfile(10000, 5000))

		assert.True(t, snap.CurrentSavings.Equal(snap.TotalIncome.Sub(snap.TotalExpenses)))
	})

	t.Run("Targets copied live from profile", func(t *testing.T) {
		profile := testProfile(10000, 5000)
		ledger := []Transaction{income(2000), expense(500)}

		before := ComputeSnapshot(ledger, profile)

		err := profile.UpdateBudgetTargets(decimal.NewFromInt(15000), decimal.NewFromInt(6000))
		assert.NoError(t, err)

		after := ComputeSnapshot(ledger, profile)

		assert.Equal(t, "15000", after.MonthlyBudget.String())
		assert.Equal(t, "6000", after.SavingsGoal.String())

		// Totals are a function of the ledger alone
		assert.True(t, after.TotalIncome.Equal(before.TotalIncome))
		assert.True(t, after.TotalExpenses.Equal(before.TotalExpenses))
	})

	t.Run("Idempotent on unchanged inputs", func(t *testing.T) {
		profile := testProfile(10000, 5000)
		ledger := []Transaction{income(2000), expense(700), expense(450)}

		first := ComputeSnapshot(ledger, profile)
		second := ComputeSnapshot(ledger, profile)

		assert.True(t, first.TotalIncome.Equal(second.TotalIncome))
		assert.True(t, first.TotalExpenses.Equal(second.TotalExpenses))
		assert.True(t, first.RemainingBudget.Equal(second.RemainingBudget))
		assert.True(t, first.DailyBudget.Equal(second.DailyBudget))
		assert.True(t, first.CurrentSavings.Equal(second.CurrentSavings))
	})
}

func TestDefaultSnapshot(t *testing.T) {
	snap := DefaultSnapshot()

	assert.True(t, snap.TotalIncome.IsZero())
	assert.True(t, snap.TotalExpenses.IsZero())
	assert.True(t, snap.RemainingBudget.IsZero())
	assert.True(t, snap.DailyBudget.IsZero())
	assert.True(t, snap.CurrentSavings.IsZero())
	assert.Equal(t, "10000", snap.MonthlyBudget.String())
	assert.Equal(t, "5000", snap.SavingsGoal.String())
}
