package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthlyReport_Empty(t *testing.T) {
	repo := newTestRepo(t)

	report, err := repo.MonthlyReport(context.Background(), 1, 4, 2026)
	require.NoError(t, err)
	assert.Equal(t, 4, report.Month)
	assert.Equal(t, 2026, report.Year)
	assert.Zero(t, report.TotalIncome)
	assert.Zero(t, report.TotalExpenses)
	assert.Zero(t, report.NetProfit)
	assert.Empty(t, report.IncomeBySource)
	assert.Empty(t, report.ExpensesByPerson)
}

func TestMonthlyReport_TotalsAndGrouping(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	incomes := []IncomeRecord{
		{Source: "Freelance", Amount: 3000, Month: 6, Year: 2026},
		{Source: "Freelance", Amount: 2000, Month: 6, Year: 2026},
		{Source: "Salary", Amount: 1000, Month: 6, Year: 2026},
		{Source: "Freelance", Amount: 9999, Month: 7, Year: 2026}, // outside period
	}
	for _, rec := range incomes {
		_, err := repo.CreateIncome(ctx, 1, rec)
		require.NoError(t, err)
	}

	expenses := []ExpenseRecord{
		{PersonName: "Mom", Category: "Groceries", Amount: 200, Month: 6, Year: 2026},
		{PersonName: "Dad", Category: "Transport", Amount: 300, Month: 6, Year: 2026},
	}
	for _, rec := range expenses {
		_, err := repo.CreateExpense(ctx, 1, rec)
		require.NoError(t, err)
	}

	report, err := repo.MonthlyReport(ctx, 1, 6, 2026)
	require.NoError(t, err)

	assert.Equal(t, 6000.0, report.TotalIncome)
	assert.Equal(t, 500.0, report.TotalExpenses)
	assert.Equal(t, 5500.0, report.NetProfit)

	require.Len(t, report.IncomeBySource, 2)
	assert.Equal(t, "Freelance", report.IncomeBySource[0].Source)
	assert.Equal(t, 5000.0, report.IncomeBySource[0].Total)
	assert.Equal(t, "Salary", report.IncomeBySource[1].Source)
	assert.Equal(t, 1000.0, report.IncomeBySource[1].Total)

	require.Len(t, report.ExpensesByPerson, 2)
	assert.Equal(t, "Dad", report.ExpensesByPerson[0].PersonName)
	assert.Equal(t, 300.0, report.ExpensesByPerson[0].Total)
	assert.Equal(t, "Mom", report.ExpensesByPerson[1].PersonName)
	assert.Equal(t, 200.0, report.ExpensesByPerson[1].Total)
}

func TestMonthlyReport_TenantScoped(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	other := newTestUser(t, repo, "g-2")

	_, err := repo.CreateIncome(ctx, 1, IncomeRecord{Source: "Freelance", Amount: 5000, Month: 6, Year: 2026})
	require.NoError(t, err)
	_, err = repo.CreateIncome(ctx, other.ID, IncomeRecord{Source: "Salary", Amount: 100, Month: 6, Year: 2026})
	require.NoError(t, err)

	report, err := repo.MonthlyReport(ctx, 1, 6, 2026)
	require.NoError(t, err)
	assert.Equal(t, 5000.0, report.TotalIncome)
	require.Len(t, report.IncomeBySource, 1)
	assert.Equal(t, "Freelance", report.IncomeBySource[0].Source)
}

func TestYearlyReport_BreakdownCoversAllMonths(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.CreateIncome(ctx, 1, IncomeRecord{Source: "Freelance", Amount: 1500, Month: 2, Year: 2026})
	require.NoError(t, err)
	_, err = repo.CreateIncome(ctx, 1, IncomeRecord{Source: "Salary", Amount: 2500, Month: 11, Year: 2026})
	require.NoError(t, err)
	_, err = repo.CreateExpense(ctx, 1, ExpenseRecord{PersonName: "Mom", Category: "Groceries", Amount: 400, Month: 2, Year: 2026})
	require.NoError(t, err)
	// A different year stays out of the report.
	_, err = repo.CreateIncome(ctx, 1, IncomeRecord{Source: "Freelance", Amount: 7777, Month: 2, Year: 2025})
	require.NoError(t, err)

	report, err := repo.YearlyReport(ctx, 1, 2026)
	require.NoError(t, err)

	assert.Equal(t, 4000.0, report.TotalIncome)
	assert.Equal(t, 400.0, report.TotalExpenses)
	assert.Equal(t, 3600.0, report.NetProfit)

	require.Len(t, report.MonthlyBreakdown, 12)
	var incomeSum, expenseSum float64
	for i, mt := range report.MonthlyBreakdown {
		assert.Equal(t, i+1, mt.Month)
		incomeSum += mt.Income
		expenseSum += mt.Expenses
	}
	assert.Equal(t, report.TotalIncome, incomeSum)
	assert.Equal(t, report.TotalExpenses, expenseSum)

	assert.Equal(t, 1500.0, report.MonthlyBreakdown[1].Income)
	assert.Equal(t, 400.0, report.MonthlyBreakdown[1].Expenses)
	assert.Equal(t, 2500.0, report.MonthlyBreakdown[10].Income)
	assert.Zero(t, report.MonthlyBreakdown[0].Income)
}

func TestAuditLog_InsertListPrune(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	now := time.Now()

	old := AuditEntry{Entity: "income", Op: "create", RecordID: 1, UserID: 1, OccurredAt: now.Add(-48 * time.Hour)}
	recent := AuditEntry{Entity: "expense", Op: "delete", RecordID: 2, UserID: 1, OccurredAt: now}
	foreign := AuditEntry{Entity: "customer", Op: "update", RecordID: 3, UserID: 2, OccurredAt: now}
	for _, e := range []AuditEntry{old, recent, foreign} {
		require.NoError(t, repo.InsertAuditEntry(ctx, e))
	}

	entries, err := repo.ListAuditEntries(ctx, 1, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "expense", entries[0].Entity)
	assert.Equal(t, "income", entries[1].Entity)

	removed, err := repo.PruneAuditBefore(ctx, now.Add(-24*time.Hour))
	require.NoError(t, err)
	assert.EqualValues(t, 1, removed)

	entries, err = repo.ListAuditEntries(ctx, 1, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "expense", entries[0].Entity)
}
