package handler

import (
	"github.com/shopspring/decimal"

	"github.com/parmanandkushwah/MoneyMentor/internal/domain/entity"
)

// LoginRequest represents the request body for creating a profile
type LoginRequest struct {
	Name          string          `json:"name"`
	Email         string          `json:"email"`
	MonthlyBudget decimal.Decimal `json:"monthlyBudget"`
	SavingsGoal   decimal.Decimal `json:"savingsGoal"`
}

// UpdateSettingsRequest represents the request body for the budget settings
// update
type UpdateSettingsRequest struct {
	MonthlyBudget decimal.Decimal `json:"monthlyBudget"`
	SavingsGoal   decimal.Decimal `json:"savingsGoal"`
}

// ProfileResponse represents the profile returned by session endpoints
type ProfileResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Email         string          `json:"email"`
	MonthlyBudget decimal.Decimal `json:"monthlyBudget"`
	SavingsGoal   decimal.Decimal `json:"savingsGoal"`
	CreatedAt     string          `json:"createdAt"`
}

// CreateTransactionRequest represents the request body for recording a
// transaction. Date is optional; absent means "now".
type CreateTransactionRequest struct {
	Date          string          `json:"date,omitempty"`
	Type          string          `json:"type"`
	Category      string          `json:"category"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"paymentMethod"`
	Notes         string          `json:"notes,omitempty"`
}

// TransactionResponse represents one ledger record in responses
type TransactionResponse struct {
	ID            string          `json:"id"`
	Date          string          `json:"date"`
	Type          string          `json:"type"`
	Category      string          `json:"category"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"paymentMethod"`
	Notes         string          `json:"notes,omitempty"`
	UserID        string          `json:"userId"`
}

// CategoriesResponse lists the suggested category sets per type
type CategoriesResponse struct {
	Expense []string `json:"expense"`
	Income  []string `json:"income"`
}

// ErrorResponse represents a standardized error payload
type ErrorResponse struct {
	Error       string `json:"error"`
	Status      int    `json:"status"`
	Description string `json:"description"`
	RequestID   string `json:"request_id"`
}

func newProfileResponse(p *entity.Profile) ProfileResponse {
	return ProfileResponse{
		ID:            p.ID,
		Name:          p.Name,
		Email:         p.Email,
		MonthlyBudget: p.MonthlyBudget,
		SavingsGoal:   p.SavingsGoal,
		CreatedAt:     p.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

func newTransactionResponse(tx *entity.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:            tx.ID,
		Date:          tx.Date.Format("2006-01-02T15:04:05Z07:00"),
		Type:          string(tx.Type),
		Category:      tx.Category,
		Amount:        tx.Amount,
		PaymentMethod: string(tx.PaymentMethod),
		Notes:         tx.Notes,
		UserID:        tx.UserID,
	}
}
