package handlers

import (
	"net/http"

	"github.com/garajdev/garage-api/internal/db"
	"github.com/garajdev/garage-api/internal/models"
)

// AnalysisHandler produces the profit/loss report over the purchase, repair
// and expense ledgers.
type AnalysisHandler struct {
	purchases db.PurchaseCollection
	repairs   db.RepairCollection
	expenses  db.ExpenseCollection
}

// NewAnalysisHandler creates a new analysis handler.
func NewAnalysisHandler(purchases db.PurchaseCollection, repairs db.RepairCollection, expenses db.ExpenseCollection) *AnalysisHandler {
	return &AnalysisHandler{purchases: purchases, repairs: repairs, expenses: expenses}
}

// Report aggregates the three ledgers over an optional inclusive date range.
// The three reads are independent; concurrent writes during report generation
// may produce a non-atomic snapshot, which is accepted.
func (h *AnalysisHandler) Report(w http.ResponseWriter, r *http.Request) {
	start, end := parseDateRange(r)
	q := db.ListQuery{StartDate: start, EndDate: end}

	purchases, err := h.purchases.FindPurchases(r.Context(), q)
	if err != nil {
		writeStoreError(w, err, "Purchase not found")
		return
	}
	repairs, err := h.repairs.FindRepairs(r.Context(), q)
	if err != nil {
		writeStoreError(w, err, "Repair not found")
		return
	}
	expenses, err := h.expenses.FindExpenses(r.Context(), q)
	if err != nil {
		writeStoreError(w, err, "Expense not found")
		return
	}

	writeJSON(w, http.StatusOK, models.BuildAnalysisReport(purchases, repairs, expenses))
}
