package core

// SourceTotal is an income sum grouped by source label.
type SourceTotal struct {
	Source string  `json:"source"`
	Total  float64 `json:"total"`
}

// PersonTotal is an expense sum grouped by person name.
type PersonTotal struct {
	PersonName string  `json:"person_name"`
	Total      float64 `json:"total"`
}

// MonthTotals is one entry of a yearly breakdown. Months with no rows carry
// zeros so the slice always has twelve entries.
type MonthTotals struct {
	Month    int     `json:"month"`
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
}

// MonthlyReport summarizes a single (month, year) for one user.
type MonthlyReport struct {
	Month            int           `json:"month"`
	Year             int           `json:"year"`
	TotalIncome      float64       `json:"total_income"`
	TotalExpenses    float64       `json:"total_expenses"`
	NetProfit        float64       `json:"net_profit"`
	IncomeBySource   []SourceTotal `json:"income_by_source"`
	ExpensesByPerson []PersonTotal `json:"expenses_by_person"`
}

// YearlyReport summarizes a whole year for one user, including the per-month
// breakdown used by the charts.
type YearlyReport struct {
	Year             int           `json:"year"`
	TotalIncome      float64       `json:"total_income"`
	TotalExpenses    float64       `json:"total_expenses"`
	NetProfit        float64       `json:"net_profit"`
	MonthlyBreakdown []MonthTotals `json:"monthly_breakdown"`
	IncomeBySource   []SourceTotal `json:"income_by_source"`
	ExpensesByPerson []PersonTotal `json:"expenses_by_person"`
}
