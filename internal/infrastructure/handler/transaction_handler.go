package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/parmanandkushwah/MoneyMentor/internal/application/service"
	"github.com/parmanandkushwah/MoneyMentor/internal/domain/entity"
	"github.com/parmanandkushwah/MoneyMentor/internal/infrastructure/logger"
	"github.com/parmanandkushwah/MoneyMentor/internal/infrastructure/middleware"
)

// TransactionHandler handles HTTP requests for the ledger and the budget
// snapshot
type TransactionHandler struct {
	session *service.SessionService
	logger  logger.Logger
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(session *service.SessionService, log logger.Logger) *TransactionHandler {
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &TransactionHandler{
		session: session,
		logger:  log,
	}
}

// CreateTransaction handles recording a new transaction
func (h *TransactionHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	input, ok := h.decodeTransactionInput(w, r, requestID)
	if !ok {
		return
	}

	tx, err := h.session.AddTransaction(r.Context(), input)
	if err != nil {
		h.handleServiceError(w, requestID, "create transaction", err)
		return
	}

	h.logger.Info("Transaction created", map[string]interface{}{
		"request_id": requestID,
		"id":         tx.ID,
	})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(newTransactionResponse(tx))
}

// ListTransactions returns the active user's full ledger, newest first
func (h *TransactionHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	ledger := h.session.Transactions()

	out := make([]TransactionResponse, 0, len(ledger))
	for i := range ledger {
		out = append(out, newTransactionResponse(&ledger[i]))
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}

// UpdateTransaction edits an existing ledger record
func (h *TransactionHandler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	id := mux.Vars(r)["id"]

	input, ok := h.decodeTransactionInput(w, r, requestID)
	if !ok {
		return
	}

	tx, err := h.session.UpdateTransaction(r.Context(), id, input)
	if err != nil {
		h.handleServiceError(w, requestID, "update transaction", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(newTransactionResponse(tx))
}

// DeleteTransaction removes a ledger record
func (h *TransactionHandler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	id := mux.Vars(r)["id"]

	if err := h.session.RemoveTransaction(r.Context(), id); err != nil {
		h.handleServiceError(w, requestID, "delete transaction", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetBudget returns the current budget snapshot
func (h *TransactionHandler) GetBudget(w http.ResponseWriter, r *http.Request) {
	snapshot := h.session.Snapshot()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(snapshot)
}

// GetCategories returns the suggested category sets per transaction type
func (h *TransactionHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(CategoriesResponse{
		Expense: entity.ExpenseCategories,
		Income:  entity.IncomeCategories,
	})
}

// RegisterRoutes registers the transaction handler routes
func (h *TransactionHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/transactions", h.CreateTransaction).Methods("POST")
	router.HandleFunc("/transactions", h.ListTransactions).Methods("GET")
	router.HandleFunc("/transactions/{id}", h.UpdateTransaction).Methods("PUT")
	router.HandleFunc("/transactions/{id}", h.DeleteTransaction).Methods("DELETE")
	router.HandleFunc("/budget", h.GetBudget).Methods("GET")
	router.HandleFunc("/categories", h.GetCategories).Methods("GET")

	h.logger.Info("Transaction routes registered", map[string]interface{}{
		"routes": []string{
			"POST /transactions",
			"GET /transactions",
			"PUT /transactions/{id}",
			"DELETE /transactions/{id}",
			"GET /budget",
			"GET /categories",
		},
	})
}

// decodeTransactionInput parses and validates the shared request shape for
// create and update. Reports false after writing an error response.
func (h *TransactionHandler) decodeTransactionInput(w http.ResponseWriter, r *http.Request, requestID string) (service.TransactionInput, bool) {
	var req CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Invalid request body", map[string]interface{}{
			"request_id": requestID,
			"error":      err.Error(),
		})
		sendErrorResponse(w, h.logger, "Invalid request body",
			"The request body could not be parsed as valid JSON", http.StatusBadRequest, requestID)
		return service.TransactionInput{}, false
	}

	var date time.Time
	if req.Date != "" {
		parsed, err := time.Parse(time.RFC3339, req.Date)
		if err != nil {
			parsed, err = time.Parse("2006-01-02", req.Date)
		}
		if err != nil {
			h.logger.Warn("Invalid date format", map[string]interface{}{
				"request_id": requestID,
				"date":       req.Date,
			})
			sendErrorResponse(w, h.logger, "Invalid date format",
				"Date must be RFC3339 or YYYY-MM-DD", http.StatusBadRequest, requestID)
			return service.TransactionInput{}, false
		}
		date = parsed
	}

	return service.TransactionInput{
		Date:          date,
		Type:          entity.TransactionType(req.Type),
		Category:      req.Category,
		Amount:        req.Amount,
		PaymentMethod: entity.PaymentMethod(req.PaymentMethod),
		Notes:         req.Notes,
	}, true
}

// handleServiceError maps core errors onto HTTP statuses
func (h *TransactionHandler) handleServiceError(w http.ResponseWriter, requestID, op string, err error) {
	switch {
	case errors.Is(err, service.ErrNoActiveSession):
		sendErrorResponse(w, h.logger, "No active session",
			"This operation requires a logged-in profile", http.StatusUnauthorized, requestID)
	case errors.Is(err, service.ErrInvalidInput):
		sendErrorResponse(w, h.logger, "Invalid input", err.Error(), http.StatusBadRequest, requestID)
	case errors.Is(err, service.ErrTransactionNotFound):
		sendErrorResponse(w, h.logger, "Transaction not found",
			"The requested transaction could not be found", http.StatusNotFound, requestID)
	default:
		h.logger.Error("Unexpected error", map[string]interface{}{
			"request_id": requestID,
			"operation":  op,
			"error":      err.Error(),
		})
		sendErrorResponse(w, h.logger, "Internal server error",
			"An unexpected error occurred", http.StatusInternalServerError, requestID)
	}
}

// sendErrorResponse sends a standardized error response
func sendErrorResponse(w http.ResponseWriter, log logger.Logger, message, description string, statusCode int, requestID string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	resp := ErrorResponse{
		Error:       message,
		Status:      statusCode,
		Description: description,
		RequestID:   requestID,
	}

	log.Debug("Sending error response", map[string]interface{}{
		"request_id":  requestID,
		"status_code": statusCode,
		"message":     message,
	})

	json.NewEncoder(w).Encode(resp)
}
