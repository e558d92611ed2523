package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/garajdev/garage-api/internal/db"
	"github.com/garajdev/garage-api/internal/models"
)

func TestAnalysisHandler_Report(t *testing.T) {
	purchases := new(MockPurchaseCollection)
	repairs := new(MockRepairCollection)
	expenses := new(MockExpenseCollection)
	handler := NewAnalysisHandler(purchases, repairs, expenses)

	purchases.On("FindPurchases", mock.Anything, mock.Anything).Return([]models.Purchase{
		{PartName: "Brake Pads", Quantity: 10, TotalCost: 300},
		{PartName: "Oil Filter", Quantity: 20, TotalCost: 200},
	}, nil)
	repairs.On("FindRepairs", mock.Anything, mock.Anything).Return([]models.Repair{
		{LaborCost: 500, PartsCost: 200, TotalCost: 700},
		{LaborCost: 300, PartsCost: 100, TotalCost: 400},
	}, nil)
	expenses.On("FindExpenses", mock.Anything, mock.Anything).Return([]models.Expense{
		{Name: "Degreaser", TotalCost: 200},
	}, nil)

	req := httptest.NewRequest("GET", "/api/analysis", nil)
	w := httptest.NewRecorder()
	handler.Report(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)

	summary := body["summary"].(map[string]interface{})
	assert.Equal(t, 600.0, summary["netProfit"])
	assert.Equal(t, 400.0, summary["grossProfit"])
	assert.Equal(t, 1100.0, summary["totalRevenue"])
	assert.Equal(t, 700.0, summary["totalCosts"])

	assert.Equal(t, 500.0, body["purchases"].(map[string]interface{})["totalCost"])
	assert.Equal(t, float64(2), body["repairs"].(map[string]interface{})["itemsCount"])
}

func TestAnalysisHandler_Report_DateRangeUnbounded(t *testing.T) {
	purchases := new(MockPurchaseCollection)
	repairs := new(MockRepairCollection)
	expenses := new(MockExpenseCollection)
	handler := NewAnalysisHandler(purchases, repairs, expenses)

	// the report must query without a page limit and with the end date
	// pushed to the end of the day
	match := mock.MatchedBy(func(q db.ListQuery) bool {
		if q.Limit != 0 || q.StartDate == nil || q.EndDate == nil {
			return false
		}
		return q.StartDate.Equal(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)) &&
			q.EndDate.Hour() == 23 && q.EndDate.Minute() == 59
	})
	purchases.On("FindPurchases", mock.Anything, match).Return([]models.Purchase{}, nil)
	repairs.On("FindRepairs", mock.Anything, match).Return([]models.Repair{}, nil)
	expenses.On("FindExpenses", mock.Anything, match).Return([]models.Expense{}, nil)

	req := httptest.NewRequest("GET", "/api/analysis?startDate=2026-01-01&endDate=2026-06-30", nil)
	w := httptest.NewRecorder()
	handler.Report(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	purchases.AssertExpectations(t)
	repairs.AssertExpectations(t)
	expenses.AssertExpectations(t)
}
