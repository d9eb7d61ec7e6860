package entity

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType distinguishes money coming in from money going out. The
// sign of a record is carried here, never by the stored amount.
type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

// PaymentMethod records how a transaction was settled
type PaymentMethod string

const (
	PaymentCash PaymentMethod = "cash"
	PaymentUPI  PaymentMethod = "upi"
)

// Suggested category sets per transaction type. Categories are free-form
// strings; these lists are offered to the presentation layer but not enforced.
var (
	ExpenseCategories = []string{
		"Food & Dining",
		"Transportation",
		"Shopping",
		"Entertainment",
		"Education",
		"Health",
		"Others",
	}

	IncomeCategories = []string{
		"Pocket Money",
		"Part-time Job",
		"Freelancing",
		"Scholarship",
		"Gift Money",
		"Others",
	}
)

// Transaction represents one income or expense record in a user's ledger
type Transaction struct {
	ID            string          `json:"id"`
	Date          time.Time       `json:"date"`
	Type          TransactionType `json:"type"`
	Category      string          `json:"category"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod PaymentMethod   `json:"paymentMethod"`
	Notes         string          `json:"notes,omitempty"`
	UserID        string          `json:"userId"`
}

// Validate ensures the transaction meets all requirements
func (t *Transaction) Validate() error {
	if t.Type != TypeIncome && t.Type != TypeExpense {
		return errors.New("type must be income or expense")
	}

	if t.Category == "" {
		return errors.New("category must not be empty")
	}

	if !t.Amount.IsPositive() {
		return errors.New("amount must be a positive value")
	}

	if t.PaymentMethod != PaymentCash && t.PaymentMethod != PaymentUPI {
		return errors.New("payment method must be cash or upi")
	}

	return nil
}
