package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/parmanandkushwah/MoneyMentor/internal/application/service"
	"github.com/parmanandkushwah/MoneyMentor/internal/domain/entity"
	"github.com/parmanandkushwah/MoneyMentor/internal/infrastructure/db"
	"github.com/parmanandkushwah/MoneyMentor/internal/infrastructure/logger"
	"github.com/parmanandkushwah/MoneyMentor/internal/infrastructure/middleware"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestServer wires the full HTTP stack over an in-memory store, the same
// way cmd/server does over BadgerDB.
func newTestServer(t *testing.T, store *db.MemoryStore) *httptest.Server {
	t.Helper()

	log := logger.NewJSONLogger(io.Discard, logger.ErrorLevel)

	profiles := db.NewStoreProfileRepository(store, log)
	ledgers := db.NewStoreLedgerRepository(store, log)
	snapshots := db.NewStoreSnapshotRepository(store, nil, log)

	sessionService := service.NewSessionService(profiles, ledgers, snapshots, log)
	insightsService := service.NewInsightsService(log)

	_, err := sessionService.Initialize(context.Background())
	require.NoError(t, err)

	router := mux.NewRouter()
	router.Use(middleware.RequestIDMiddleware)

	// Export must be registered before /transactions/{id}
	NewExportHandler(sessionService, log).RegisterRoutes(router)
	NewSessionHandler(sessionService, log).RegisterRoutes(router)
	NewTransactionHandler(sessionService, log).RegisterRoutes(router)
	NewInsightsHandler(sessionService, insightsService, log).RegisterRoutes(router)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}

func doJSON(t *testing.T, method, url string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeInto(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()

	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func postTransaction(t *testing.T, baseURL string, req CreateTransactionRequest) TransactionResponse {
	t.Helper()

	resp := doJSON(t, http.MethodPost, baseURL+"/transactions", req)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var tx TransactionResponse
	decodeInto(t, resp, &tx)
	return tx
}

func TestSessionAndLedgerFlow(t *testing.T) {
	store := db.NewMemoryStore()
	server := newTestServer(t, store)

	// No session yet
	resp, err := http.Get(server.URL + "/session")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Login
	resp = doJSON(t, http.MethodPost, server.URL+"/session", LoginRequest{
		Name:  "Asha",
		Email: "asha@example.com",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var profile ProfileResponse
	decodeInto(t, resp, &profile)
	assert.NotEmpty(t, profile.ID)
	assert.Equal(t, "Asha", profile.Name)

	// Zero targets fall back to the defaults
	assert.Equal(t, "10000", profile.MonthlyBudget.String())
	assert.Equal(t, "5000", profile.SavingsGoal.String())

	// Record income and an expense
	postTransaction(t, server.URL, CreateTransactionRequest{
		Type:          "income",
		Category:      "Pocket Money",
		Amount:        mustDecimal(t, "5000"),
		PaymentMethod: "upi",
	})
	expense := postTransaction(t, server.URL, CreateTransactionRequest{
		Type:          "expense",
		Category:      "Food & Dining",
		Amount:        mustDecimal(t, "1500"),
		PaymentMethod: "cash",
		Notes:         "mess bill",
	})
	assert.Equal(t, profile.ID, expense.UserID)

	// Ledger is newest first
	resp, err = http.Get(server.URL + "/transactions")
	require.NoError(t, err)

	var ledger []TransactionResponse
	decodeInto(t, resp, &ledger)
	require.Len(t, ledger, 2)
	assert.Equal(t, expense.ID, ledger[0].ID)

	// Snapshot reflects both records
	snapshot := getSnapshot(t, server.URL)
	assert.Equal(t, "5000", snapshot.TotalIncome.String())
	assert.Equal(t, "1500", snapshot.TotalExpenses.String())
	assert.Equal(t, "8500", snapshot.RemainingBudget.String())
	assert.Equal(t, "283.33", snapshot.DailyBudget.String())
	assert.Equal(t, "3500", snapshot.CurrentSavings.String())

	// Edit the expense and watch the snapshot follow
	resp = doJSON(t, http.MethodPut, server.URL+"/transactions/"+expense.ID, CreateTransactionRequest{
		Type:          "expense",
		Category:      "Food & Dining",
		Amount:        mustDecimal(t, "2000"),
		PaymentMethod: "cash",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	snapshot = getSnapshot(t, server.URL)
	assert.Equal(t, "2000", snapshot.TotalExpenses.String())
	assert.Equal(t, "8000", snapshot.RemainingBudget.String())

	// Deleting an unknown record reports not found
	resp = doJSON(t, http.MethodDelete, server.URL+"/transactions/does-not-exist", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	// Logout, then mutations are rejected
	resp = doJSON(t, http.MethodDelete, server.URL+"/session", nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	snapshot = getSnapshot(t, server.URL)
	assert.Equal(t, "10000", snapshot.MonthlyBudget.String())
	assert.True(t, snapshot.TotalExpenses.IsZero())

	resp = doJSON(t, http.MethodPost, server.URL+"/transactions", CreateTransactionRequest{
		Type:          "expense",
		Category:      "Shopping",
		Amount:        mustDecimal(t, "100"),
		PaymentMethod: "upi",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestUpdateSettingsFlow(t *testing.T) {
	server := newTestServer(t, db.NewMemoryStore())

	resp := doJSON(t, http.MethodPost, server.URL+"/session", LoginRequest{
		Name:  "Ravi",
		Email: "ravi@example.com",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodPut, server.URL+"/session/settings", UpdateSettingsRequest{
		MonthlyBudget: mustDecimal(t, "15000"),
		SavingsGoal:   mustDecimal(t, "6000"),
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var profile ProfileResponse
	decodeInto(t, resp, &profile)
	assert.Equal(t, "15000", profile.MonthlyBudget.String())

	snapshot := getSnapshot(t, server.URL)
	assert.Equal(t, "15000", snapshot.MonthlyBudget.String())
	assert.Equal(t, "6000", snapshot.SavingsGoal.String())
	assert.Equal(t, "500", snapshot.DailyBudget.String())
}

func TestSessionSurvivesRestart(t *testing.T) {
	store := db.NewMemoryStore()
	server := newTestServer(t, store)

	resp := doJSON(t, http.MethodPost, server.URL+"/session", LoginRequest{
		Name:  "Asha",
		Email: "asha@example.com",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var profile ProfileResponse
	decodeInto(t, resp, &profile)

	postTransaction(t, server.URL, CreateTransactionRequest{
		Type:          "expense",
		Category:      "Transportation",
		Amount:        mustDecimal(t, "250"),
		PaymentMethod: "upi",
	})
	server.Close()

	// A fresh stack over the same store restores the session and ledger
	restarted := newTestServer(t, store)

	resp, err := http.Get(restarted.URL + "/session")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var restored ProfileResponse
	decodeInto(t, resp, &restored)
	assert.Equal(t, profile.ID, restored.ID)

	snapshot := getSnapshot(t, restarted.URL)
	assert.Equal(t, "250", snapshot.TotalExpenses.String())
}

func TestInsightsEndpoints(t *testing.T) {
	server := newTestServer(t, db.NewMemoryStore())

	resp := doJSON(t, http.MethodPost, server.URL+"/session", LoginRequest{
		Name:  "Asha",
		Email: "asha@example.com",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	postTransaction(t, server.URL, CreateTransactionRequest{
		Type:          "income",
		Category:      "Part-time Job",
		Amount:        mustDecimal(t, "3000"),
		PaymentMethod: "upi",
	})
	postTransaction(t, server.URL, CreateTransactionRequest{
		Type:          "expense",
		Category:      "Entertainment",
		Amount:        mustDecimal(t, "8500"),
		PaymentMethod: "upi",
	})

	resp, err := http.Get(server.URL + "/insights/overview")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var overview OverviewResponse
	decodeInto(t, resp, &overview)
	assert.Equal(t, service.StatusWarning, overview.Status.Level)
	require.Len(t, overview.ExpenseBreakdown, 1)
	assert.Equal(t, "Entertainment", overview.ExpenseBreakdown[0].Category)
	assert.Len(t, overview.PaymentBreakdown, 2)

	resp, err = http.Get(server.URL + "/insights/challenges")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var challenges []service.Challenge
	decodeInto(t, resp, &challenges)
	assert.Len(t, challenges, 4)

	resp, err = http.Get(server.URL + "/insights/tips")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var tips []service.TipCategory
	decodeInto(t, resp, &tips)
	assert.Len(t, tips, 4)
}

func TestExportEndpoint(t *testing.T) {
	server := newTestServer(t, db.NewMemoryStore())

	// Requires a session
	resp, err := http.Get(server.URL + "/transactions/export?format=csv")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = doJSON(t, http.MethodPost, server.URL+"/session", LoginRequest{
		Name:  "Asha",
		Email: "asha@example.com",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	postTransaction(t, server.URL, CreateTransactionRequest{
		Type:          "expense",
		Category:      "Education",
		Amount:        mustDecimal(t, "1200"),
		PaymentMethod: "upi",
		Notes:         "textbooks",
	})

	resp, err = http.Get(server.URL + "/transactions/export?format=csv")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/csv")

	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(body)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Type,Category,Amount,Payment Method,Notes,Date", lines[0])
	assert.Contains(t, lines[1], "expense,Education,1200.00,upi,textbooks")

	resp, err = http.Get(server.URL + "/transactions/export?format=pdf")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, err = http.Get(server.URL + "/transactions/export?format=xlsx")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "spreadsheetml")

	workbook, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.NotEmpty(t, workbook)
}

func getSnapshot(t *testing.T, baseURL string) entity.BudgetSnapshot {
	t.Helper()

	resp, err := http.Get(baseURL + "/budget")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var snapshot entity.BudgetSnapshot
	decodeInto(t, resp, &snapshot)
	return snapshot
}

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()

	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}
