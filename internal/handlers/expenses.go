package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/garajdev/garage-api/internal/db"
	"github.com/garajdev/garage-api/internal/models"
)

// ExpenseHandler handles the expense ledger.
type ExpenseHandler struct {
	expenses db.ExpenseCollection
}

// NewExpenseHandler creates a new expense handler.
func NewExpenseHandler(expenses db.ExpenseCollection) *ExpenseHandler {
	return &ExpenseHandler{expenses: expenses}
}

type expenseRequest struct {
	Date     *time.Time             `json:"date"`
	Name     string                 `json:"name"`
	Category models.ExpenseCategory `json:"category"`
	Quantity *float64               `json:"quantity"`
	Price    *float64               `json:"price"`
}

// List returns expenses, newest first.
func (h *ExpenseHandler) List(w http.ResponseWriter, r *http.Request) {
	expenses, err := h.expenses.FindExpenses(r.Context(), parseListQuery(r))
	if err != nil {
		writeStoreError(w, err, "Expense not found")
		return
	}
	writeJSON(w, http.StatusOK, expenses)
}

// Create records an expense; totalCost is computed at write time.
func (h *ExpenseHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req expenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, "Expense name is required")
		return
	}
	if req.Quantity == nil || *req.Quantity < 1 {
		writeError(w, http.StatusBadRequest, "Quantity must be at least 1")
		return
	}
	if req.Price == nil || *req.Price < 0 {
		writeError(w, http.StatusBadRequest, "Price cannot be negative")
		return
	}
	if req.Category == "" {
		req.Category = models.ExpenseOther
	}
	if !models.IsValidExpenseCategory(req.Category) {
		writeError(w, http.StatusBadRequest, "Invalid expense category")
		return
	}

	expense := models.Expense{
		Date:      time.Now(),
		Name:      strings.TrimSpace(req.Name),
		Category:  req.Category,
		Quantity:  *req.Quantity,
		Price:     *req.Price,
		TotalCost: *req.Quantity * *req.Price,
	}
	if req.Date != nil {
		expense.Date = *req.Date
	}

	id, err := h.expenses.InsertExpense(r.Context(), expense)
	if err != nil {
		writeStoreError(w, err, "Expense not found")
		return
	}

	expense.ID = id
	writeJSON(w, http.StatusCreated, expense)
}

// Update modifies an expense; omitted fields keep their current value and
// totalCost is always recomputed.
func (h *ExpenseHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req expenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	expense, err := h.expenses.FindExpenseByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeStoreError(w, err, "Expense not found")
		return
	}

	if req.Date != nil {
		expense.Date = *req.Date
	}
	if strings.TrimSpace(req.Name) != "" {
		expense.Name = strings.TrimSpace(req.Name)
	}
	if req.Category != "" {
		if !models.IsValidExpenseCategory(req.Category) {
			writeError(w, http.StatusBadRequest, "Invalid expense category")
			return
		}
		expense.Category = req.Category
	}
	if req.Quantity != nil {
		if *req.Quantity < 1 {
			writeError(w, http.StatusBadRequest, "Quantity must be at least 1")
			return
		}
		expense.Quantity = *req.Quantity
	}
	if req.Price != nil {
		if *req.Price < 0 {
			writeError(w, http.StatusBadRequest, "Price cannot be negative")
			return
		}
		expense.Price = *req.Price
	}
	expense.TotalCost = expense.Quantity * expense.Price

	if err := h.expenses.UpdateExpense(r.Context(), r.PathValue("id"), *expense); err != nil {
		writeStoreError(w, err, "Expense not found")
		return
	}
	writeJSON(w, http.StatusOK, expense)
}

// Delete removes an expense.
func (h *ExpenseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.expenses.DeleteExpense(r.Context(), r.PathValue("id")); err != nil {
		writeStoreError(w, err, "Expense not found")
		return
	}
	writeMessage(w, http.StatusOK, "Expense deleted")
}
