package storage

import (
	"context"
	"fmt"

	"budgetx/internal/core"
)

// MonthlyReport aggregates the caller's income and expenses for a single
// (month, year). Nothing is persisted; totals come straight from the
// transactional rows.
func (r *Repository) MonthlyReport(ctx context.Context, userID int64, month, year int) (core.MonthlyReport, error) {
	report := core.MonthlyReport{
		Month:            month,
		Year:             year,
		IncomeBySource:   []core.SourceTotal{},
		ExpensesByPerson: []core.PersonTotal{},
	}

	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(SUM(amount), 0) FROM income WHERE user_id = ? AND month = ? AND year = ?",
		userID, month, year,
	).Scan(&report.TotalIncome)
	if err != nil {
		return report, fmt.Errorf("sum monthly income: %w", err)
	}

	err = r.db.QueryRowContext(ctx,
		"SELECT COALESCE(SUM(amount), 0) FROM expenses WHERE user_id = ? AND month = ? AND year = ?",
		userID, month, year,
	).Scan(&report.TotalExpenses)
	if err != nil {
		return report, fmt.Errorf("sum monthly expenses: %w", err)
	}

	report.NetProfit = report.TotalIncome - report.TotalExpenses

	report.IncomeBySource, err = r.incomeBySource(ctx,
		"SELECT source, SUM(amount) FROM income WHERE user_id = ? AND month = ? AND year = ? GROUP BY source ORDER BY SUM(amount) DESC",
		userID, month, year)
	if err != nil {
		return report, err
	}

	report.ExpensesByPerson, err = r.expensesByPerson(ctx,
		"SELECT person_name, SUM(amount) FROM expenses WHERE user_id = ? AND month = ? AND year = ? GROUP BY person_name ORDER BY SUM(amount) DESC",
		userID, month, year)
	if err != nil {
		return report, err
	}

	return report, nil
}

// YearlyReport aggregates a whole year, including a twelve-entry per-month
// breakdown with zeros for months that have no rows.
func (r *Repository) YearlyReport(ctx context.Context, userID int64, year int) (core.YearlyReport, error) {
	report := core.YearlyReport{
		Year:             year,
		IncomeBySource:   []core.SourceTotal{},
		ExpensesByPerson: []core.PersonTotal{},
	}

	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(SUM(amount), 0) FROM income WHERE user_id = ? AND year = ?",
		userID, year,
	).Scan(&report.TotalIncome)
	if err != nil {
		return report, fmt.Errorf("sum yearly income: %w", err)
	}

	err = r.db.QueryRowContext(ctx,
		"SELECT COALESCE(SUM(amount), 0) FROM expenses WHERE user_id = ? AND year = ?",
		userID, year,
	).Scan(&report.TotalExpenses)
	if err != nil {
		return report, fmt.Errorf("sum yearly expenses: %w", err)
	}

	report.NetProfit = report.TotalIncome - report.TotalExpenses

	incomeByMonth, err := r.monthSums(ctx,
		"SELECT month, SUM(amount) FROM income WHERE user_id = ? AND year = ? GROUP BY month",
		userID, year)
	if err != nil {
		return report, fmt.Errorf("monthly income sums: %w", err)
	}
	expensesByMonth, err := r.monthSums(ctx,
		"SELECT month, SUM(amount) FROM expenses WHERE user_id = ? AND year = ? GROUP BY month",
		userID, year)
	if err != nil {
		return report, fmt.Errorf("monthly expense sums: %w", err)
	}

	report.MonthlyBreakdown = make([]core.MonthTotals, 12)
	for m := 1; m <= 12; m++ {
		report.MonthlyBreakdown[m-1] = core.MonthTotals{
			Month:    m,
			Income:   incomeByMonth[m],
			Expenses: expensesByMonth[m],
		}
	}

	report.IncomeBySource, err = r.incomeBySource(ctx,
		"SELECT source, SUM(amount) FROM income WHERE user_id = ? AND year = ? GROUP BY source ORDER BY SUM(amount) DESC",
		userID, year)
	if err != nil {
		return report, err
	}

	report.ExpensesByPerson, err = r.expensesByPerson(ctx,
		"SELECT person_name, SUM(amount) FROM expenses WHERE user_id = ? AND year = ? GROUP BY person_name ORDER BY SUM(amount) DESC",
		userID, year)
	if err != nil {
		return report, err
	}

	return report, nil
}

func (r *Repository) incomeBySource(ctx context.Context, query string, args ...any) ([]core.SourceTotal, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("group income by source: %w", err)
	}
	defer rows.Close()

	totals := []core.SourceTotal{}
	for rows.Next() {
		var st core.SourceTotal
		if err := rows.Scan(&st.Source, &st.Total); err != nil {
			return nil, fmt.Errorf("scan source total: %w", err)
		}
		totals = append(totals, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate source totals: %w", err)
	}
	return totals, nil
}

func (r *Repository) expensesByPerson(ctx context.Context, query string, args ...any) ([]core.PersonTotal, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("group expenses by person: %w", err)
	}
	defer rows.Close()

	totals := []core.PersonTotal{}
	for rows.Next() {
		var pt core.PersonTotal
		if err := rows.Scan(&pt.PersonName, &pt.Total); err != nil {
			return nil, fmt.Errorf("scan person total: %w", err)
		}
		totals = append(totals, pt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate person totals: %w", err)
	}
	return totals, nil
}

func (r *Repository) monthSums(ctx context.Context, query string, args ...any) (map[int]float64, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("group by month: %w", err)
	}
	defer rows.Close()

	sums := make(map[int]float64)
	for rows.Next() {
		var month int
		var total float64
		if err := rows.Scan(&month, &total); err != nil {
			return nil, fmt.Errorf("scan month sum: %w", err)
		}
		sums[month] = total
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate month sums: %w", err)
	}
	return sums, nil
}
