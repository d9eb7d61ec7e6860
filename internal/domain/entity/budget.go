package entity

import (
	"github.com/shopspring/decimal"
)

// daysPerMonth is the fixed divisor for the daily allowance. The derivation
// is deliberately not calendar-aware.
var daysPerMonth = decimal.NewFromInt(30)

// BudgetSnapshot holds the figures derived from a ledger and a profile. It is
// never authoritative: it is recomputed in full on every relevant change and
// persisted only as a cache for next-load display.
type BudgetSnapshot struct {
	TotalIncome     decimal.Decimal `json:"totalIncome"`
	TotalExpenses   decimal.Decimal `json:"totalExpenses"`
	RemainingBudget decimal.Decimal `json:"remainingBudget"`
	DailyBudget     decimal.Decimal `json:"dailyBudget"`
	SavingsGoal     decimal.Decimal `json:"savingsGoal"`
	CurrentSavings  decimal.Decimal `json:"currentSavings"`
	MonthlyBudget   decimal.Decimal `json:"monthlyBudget"`
}

// DefaultSnapshot returns the zeroed snapshot shown before any profile is
// active, carrying the first-run budget targets.
func DefaultSnapshot() BudgetSnapshot {
	return BudgetSnapshot{
		TotalIncome:     decimal.Zero,
		TotalExpenses:   decimal.Zero,
		RemainingBudget: decimal.Zero,
		DailyBudget:     decimal.Zero,
		SavingsGoal:     DefaultSavingsGoal,
		CurrentSavings:  decimal.Zero,
		MonthlyBudget:   DefaultMonthlyBudget,
	}
}

// ComputeSnapshot derives budget figures from a ledger and a profile.
//
// Remaining budget may go negative and is not clamped. The daily allowance is
// the remaining budget spread over a fixed 30 days, zero once the budget is
// exhausted. Current savings are clamped at zero so a user never sees
// negative savings even when expenses exceed income. Budget targets are
// copied verbatim from the profile so the snapshot reflects live targets.
func ComputeSnapshot(ledger []Transaction, profile *Profile) BudgetSnapshot {
	totalIncome := decimal.Zero
	totalExpenses := decimal.Zero

	for _, tx := range ledger {
		switch tx.Type {
		case TypeIncome:
			totalIncome = totalIncome.Add(tx.Amount)
		case TypeExpense:
			totalExpenses = totalExpenses.Add(tx.Amount)
		}
	}

	remaining := profile.MonthlyBudget.Sub(totalExpenses)

	daily := decimal.Zero
	if remaining.IsPositive() {
		daily = remaining.Div(daysPerMonth).Round(2)
	}

	savings := totalIncome.Sub(totalExpenses)
	if savings.IsNegative() {
		savings = decimal.Zero
	}

	return BudgetSnapshot{
		TotalIncome:     totalIncome,
		TotalExpenses:   totalExpenses,
		RemainingBudget: remaining,
		DailyBudget:     daily,
		SavingsGoal:     profile.SavingsGoal,
		CurrentSavings:  savings,
		MonthlyBudget:   profile.MonthlyBudget,
	}
}
