package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/parmanandkushwah/MoneyMentor/internal/application/service"
	"github.com/parmanandkushwah/MoneyMentor/internal/infrastructure/logger"
)

// OverviewResponse bundles the dashboard figures derived from the current
// session state
type OverviewResponse struct {
	Status           service.BudgetStatus         `json:"status"`
	ExpenseBreakdown []service.CategoryTotal      `json:"expenseBreakdown"`
	PaymentBreakdown []service.PaymentMethodTotal `json:"paymentBreakdown"`
	SavingsProgress  service.SavingsProgress      `json:"savingsProgress"`
}

// InsightsHandler handles read-only dashboard endpoints
type InsightsHandler struct {
	session  *service.SessionService
	insights *service.InsightsService
	logger   logger.Logger
}

// NewInsightsHandler creates a new insights handler
func NewInsightsHandler(session *service.SessionService, insights *service.InsightsService, log logger.Logger) *InsightsHandler {
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &InsightsHandler{
		session:  session,
		insights: insights,
		logger:   log,
	}
}

// GetOverview returns status, breakdowns and savings progress in one call
func (h *InsightsHandler) GetOverview(w http.ResponseWriter, r *http.Request) {
	snapshot := h.session.Snapshot()
	ledger := h.session.Transactions()

	resp := OverviewResponse{
		Status:           h.insights.Status(snapshot),
		ExpenseBreakdown: h.insights.ExpenseBreakdown(ledger),
		PaymentBreakdown: h.insights.PaymentBreakdown(ledger),
		SavingsProgress:  h.insights.Progress(snapshot),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// GetChallenges returns the micro-saving challenges with progress
func (h *InsightsHandler) GetChallenges(w http.ResponseWriter, r *http.Request) {
	snapshot := h.session.Snapshot()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.insights.Challenges(snapshot.CurrentSavings))
}

// GetTips returns the financial tips catalog
func (h *InsightsHandler) GetTips(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.insights.Tips())
}

// RegisterRoutes registers the insights handler routes
func (h *InsightsHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/insights/overview", h.GetOverview).Methods("GET")
	router.HandleFunc("/insights/challenges", h.GetChallenges).Methods("GET")
	router.HandleFunc("/insights/tips", h.GetTips).Methods("GET")

	h.logger.Info("Insights routes registered", map[string]interface{}{
		"routes": []string{
			"GET /insights/overview",
			"GET /insights/challenges",
			"GET /insights/tips",
		},
	})
}
