package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/parmanandkushwah/MoneyMentor/internal/application/service"
	"github.com/parmanandkushwah/MoneyMentor/internal/domain/entity"
	"github.com/parmanandkushwah/MoneyMentor/internal/infrastructure/logger"
	"github.com/parmanandkushwah/MoneyMentor/internal/infrastructure/middleware"
	"github.com/xuri/excelize/v2"
)

var exportHeader = []string{"Type", "Category", "Amount", "Payment Method", "Notes", "Date"}

// ExportHandler writes the active user's ledger as a downloadable file
type ExportHandler struct {
	session *service.SessionService
	logger  logger.Logger
}

// NewExportHandler creates a new export handler
func NewExportHandler(session *service.SessionService, log logger.Logger) *ExportHandler {
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &ExportHandler{
		session: session,
		logger:  log,
	}
}

// Export streams the ledger as CSV (default) or XLSX, newest first
func (h *ExportHandler) Export(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	if h.session.ActiveProfile() == nil {
		sendErrorResponse(w, h.logger, "No active session",
			"This operation requires a logged-in profile", http.StatusUnauthorized, requestID)
		return
	}

	ledger := h.session.Transactions()
	format := r.URL.Query().Get("format")

	switch format {
	case "", "csv":
		h.exportCSV(w, ledger)
	case "xlsx":
		h.exportXLSX(w, requestID, ledger)
	default:
		sendErrorResponse(w, h.logger, "Unsupported format",
			"Format must be csv or xlsx", http.StatusBadRequest, requestID)
		return
	}

	h.logger.Info("Ledger exported", map[string]interface{}{
		"request_id": requestID,
		"format":     format,
		"records":    len(ledger),
	})
}

func (h *ExportHandler) exportCSV(w http.ResponseWriter, ledger []entity.Transaction) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"transactions_%s.csv\"",
		time.Now().Format("20060102")))

	writer := csv.NewWriter(w)
	defer writer.Flush()

	writer.Write(exportHeader)
	for i := range ledger {
		writer.Write(exportRow(&ledger[i]))
	}
}

func (h *ExportHandler) exportXLSX(w http.ResponseWriter, requestID string, ledger []entity.Transaction) {
	f := excelize.NewFile()
	defer f.Close()

	const sheetName = "Transactions"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		sendErrorResponse(w, h.logger, "Internal server error",
			"Failed to build the workbook", http.StatusInternalServerError, requestID)
		return
	}
	f.SetActiveSheet(index)

	for i, col := range exportHeader {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, col)
	}

	for idx := range ledger {
		row := idx + 2
		for i, value := range exportRow(&ledger[idx]) {
			cell := fmt.Sprintf("%c%d", 'A'+i, row)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"transactions_%s.xlsx\"",
		time.Now().Format("20060102")))

	if err := f.Write(w); err != nil {
		h.logger.Error("Failed to write workbook", map[string]interface{}{
			"request_id": requestID,
			"error":      err.Error(),
		})
	}
}

func exportRow(tx *entity.Transaction) []string {
	return []string{
		string(tx.Type),
		tx.Category,
		tx.Amount.StringFixed(2),
		string(tx.PaymentMethod),
		tx.Notes,
		tx.Date.Format("2006-01-02"),
	}
}

// RegisterRoutes registers the export handler routes
func (h *ExportHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/transactions/export", h.Export).Methods("GET")

	h.logger.Info("Export routes registered", map[string]interface{}{
		"routes": []string{
			"GET /transactions/export",
		},
	})
}
