package models

// PurchaseSummary is the purchases section of the analysis report.
type PurchaseSummary struct {
	List       []Purchase `json:"list"`
	TotalCost  float64    `json:"totalCost"`
	TotalCount float64    `json:"totalCount"`
	ItemsCount int        `json:"itemsCount"`
}

// RepairSummary is the repairs section of the analysis report.
type RepairSummary struct {
	List         []Repair `json:"list"`
	TotalRevenue float64  `json:"totalRevenue"`
	LaborRevenue float64  `json:"laborRevenue"`
	PartsRevenue float64  `json:"partsRevenue"`
	ItemsCount   int      `json:"itemsCount"`
}

// ExpenseSummary is the expenses section of the analysis report.
type ExpenseSummary struct {
	List       []Expense `json:"list"`
	TotalCost  float64   `json:"totalCost"`
	ItemsCount int       `json:"itemsCount"`
}

// AnalysisSummary carries the derived scalars of the report.
//
// NetProfit   = labor revenue − expenses
// GrossProfit = repair revenue − purchase cost − expenses
type AnalysisSummary struct {
	NetProfit    float64 `json:"netProfit"`
	GrossProfit  float64 `json:"grossProfit"`
	TotalRevenue float64 `json:"totalRevenue"`
	TotalCosts   float64 `json:"totalCosts"`
}

// AnalysisReport is the full profit/loss report over an optional date range.
type AnalysisReport struct {
	Purchases PurchaseSummary `json:"purchases"`
	Repairs   RepairSummary   `json:"repairs"`
	Expenses  ExpenseSummary  `json:"expenses"`
	Summary   AnalysisSummary `json:"summary"`
}

// BuildAnalysisReport reduces the three ledgers into the report. Pure
// function: the same inputs always produce the same totals.
func BuildAnalysisReport(purchases []Purchase, repairs []Repair, expenses []Expense) AnalysisReport {
	var report AnalysisReport

	report.Purchases.List = purchases
	for _, p := range purchases {
		report.Purchases.TotalCost += p.TotalCost
		report.Purchases.TotalCount += p.Quantity
	}
	report.Purchases.ItemsCount = len(purchases)

	report.Repairs.List = repairs
	for _, r := range repairs {
		report.Repairs.TotalRevenue += r.TotalCost
		report.Repairs.LaborRevenue += r.LaborCost
		report.Repairs.PartsRevenue += r.PartsCost
	}
	report.Repairs.ItemsCount = len(repairs)

	report.Expenses.List = expenses
	for _, e := range expenses {
		report.Expenses.TotalCost += e.TotalCost
	}
	report.Expenses.ItemsCount = len(expenses)

	report.Summary = AnalysisSummary{
		NetProfit:    report.Repairs.LaborRevenue - report.Expenses.TotalCost,
		GrossProfit:  report.Repairs.TotalRevenue - report.Purchases.TotalCost - report.Expenses.TotalCost,
		TotalRevenue: report.Repairs.TotalRevenue,
		TotalCosts:   report.Purchases.TotalCost + report.Expenses.TotalCost,
	}
	return report
}
