package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/parmanandkushwah/MoneyMentor/internal/application/service"
	"github.com/parmanandkushwah/MoneyMentor/internal/infrastructure/logger"
	"github.com/parmanandkushwah/MoneyMentor/internal/infrastructure/middleware"
)

// SessionHandler handles HTTP requests for the session lifecycle
type SessionHandler struct {
	session *service.SessionService
	logger  logger.Logger
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(session *service.SessionService, log logger.Logger) *SessionHandler {
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &SessionHandler{
		session: session,
		logger:  log,
	}
}

// Login handles profile creation and activation
func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Invalid request body", map[string]interface{}{
			"request_id": requestID,
			"error":      err.Error(),
		})
		sendErrorResponse(w, h.logger, "Invalid request body",
			"The request body could not be parsed as valid JSON", http.StatusBadRequest, requestID)
		return
	}

	profile, err := h.session.Login(r.Context(), req.Name, req.Email, req.MonthlyBudget, req.SavingsGoal)
	if err != nil {
		h.handleServiceError(w, requestID, "login", err)
		return
	}

	h.logger.Info("Login handled", map[string]interface{}{
		"request_id": requestID,
		"user_id":    profile.ID,
	})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(newProfileResponse(profile))
}

// CurrentProfile returns the active profile, if any
func (h *SessionHandler) CurrentProfile(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	profile := h.session.ActiveProfile()
	if profile == nil {
		sendErrorResponse(w, h.logger, "No active session",
			"No profile is currently logged in", http.StatusNotFound, requestID)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(newProfileResponse(profile))
}

// Logout deactivates the current profile
func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	if err := h.session.Logout(r.Context()); err != nil {
		h.handleServiceError(w, requestID, "logout", err)
		return
	}

	h.logger.Info("Logout handled", map[string]interface{}{
		"request_id": requestID,
	})

	w.WriteHeader(http.StatusNoContent)
}

// UpdateSettings updates the active profile's budget targets
func (h *SessionHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var req UpdateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendErrorResponse(w, h.logger, "Invalid request body",
			"The request body could not be parsed as valid JSON", http.StatusBadRequest, requestID)
		return
	}

	if err := h.session.UpdateSettings(r.Context(), req.MonthlyBudget, req.SavingsGoal); err != nil {
		h.handleServiceError(w, requestID, "update settings", err)
		return
	}

	profile := h.session.ActiveProfile()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(newProfileResponse(profile))
}

// RegisterRoutes registers the session handler routes
func (h *SessionHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/session", h.Login).Methods("POST")
	router.HandleFunc("/session", h.CurrentProfile).Methods("GET")
	router.HandleFunc("/session", h.Logout).Methods("DELETE")
	router.HandleFunc("/session/settings", h.UpdateSettings).Methods("PUT")

	h.logger.Info("Session routes registered", map[string]interface{}{
		"routes": []string{
			"POST /session",
			"GET /session",
			"DELETE /session",
			"PUT /session/settings",
		},
	})
}

// handleServiceError maps core errors onto HTTP statuses
func (h *SessionHandler) handleServiceError(w http.ResponseWriter, requestID, op string, err error) {
	switch {
	case errors.Is(err, service.ErrNoActiveSession):
		h.logger.Warn("Operation without active session", map[string]interface{}{
			"request_id": requestID,
			"operation":  op,
		})
		sendErrorResponse(w, h.logger, "No active session",
			"This operation requires a logged-in profile", http.StatusUnauthorized, requestID)
	case errors.Is(err, service.ErrInvalidInput):
		h.logger.Warn("Invalid input", map[string]interface{}{
			"request_id": requestID,
			"operation":  op,
			"error":      err.Error(),
		})
		sendErrorResponse(w, h.logger, "Invalid input",
			err.Error(), http.StatusBadRequest, requestID)
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
