package storage

import (
	"context"
	"fmt"
	"strings"

	"budgetx/internal/core"
)

// ExpenseFilter narrows ListExpenses. Zero values mean "no filter".
type ExpenseFilter struct {
	Month      int
	Year       int
	PersonName string
}

// ExpenseRecord carries the writable fields of an expense row.
type ExpenseRecord struct {
	PersonName  string
	Category    string
	Amount      float64
	Month       int
	Year        int
	Description string
}

// ListExpenses returns expense rows owned by userID, most recent period first.
func (r *Repository) ListExpenses(ctx context.Context, userID int64, f ExpenseFilter) ([]core.Expense, error) {
	var sb strings.Builder
	sb.WriteString("SELECT id, user_id, person_name, category, amount, month, year, description, created_at FROM expenses WHERE user_id = ?")
	args := []any{userID}

	if f.Month != 0 {
		sb.WriteString(" AND month = ?")
		args = append(args, f.Month)
	}
	if f.Year != 0 {
		sb.WriteString(" AND year = ?")
		args = append(args, f.Year)
	}
	if f.PersonName != "" {
		sb.WriteString(" AND person_name = ?")
		args = append(args, f.PersonName)
	}
	sb.WriteString(" ORDER BY year DESC, month DESC, created_at DESC")

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("select expenses: %w", err)
	}
	defer rows.Close()

	expenses := []core.Expense{}
	for rows.Next() {
		var e core.Expense
		if err := rows.Scan(&e.ID, &e.UserID, &e.PersonName, &e.Category, &e.Amount,
			&e.Month, &e.Year, &e.Description, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expenses: %w", err)
	}
	return expenses, nil
}

// CreateExpense inserts an expense row for userID and returns the stored row.
func (r *Repository) CreateExpense(ctx context.Context, userID int64, rec ExpenseRecord) (core.Expense, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO expenses (user_id, person_name, category, amount, month, year, description) VALUES (?, ?, ?, ?, ?, ?, ?)",
		userID, rec.PersonName, rec.Category, rec.Amount, rec.Month, rec.Year, rec.Description,
	)
	if err != nil {
		return core.Expense{}, fmt.Errorf("insert expense: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return core.Expense{}, fmt.Errorf("last insert id: %w", err)
	}

	var e core.Expense
	err = r.db.QueryRowContext(ctx,
		"SELECT id, user_id, person_name, category, amount, month, year, description, created_at FROM expenses WHERE id = ?",
		id,
	).Scan(&e.ID, &e.UserID, &e.PersonName, &e.Category, &e.Amount,
		&e.Month, &e.Year, &e.Description, &e.CreatedAt)
	if err != nil {
		return core.Expense{}, fmt.Errorf("select created expense: %w", err)
	}
	return e, nil
}

// UpdateExpense replaces every writable field of the row owned by userID.
func (r *Repository) UpdateExpense(ctx context.Context, userID, id int64, rec ExpenseRecord) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		"UPDATE expenses SET person_name = ?, category = ?, amount = ?, month = ?, year = ?, description = ? WHERE id = ? AND user_id = ?",
		rec.PersonName, rec.Category, rec.Amount, rec.Month, rec.Year, rec.Description, id, userID,
	)
	if err != nil {
		return 0, fmt.Errorf("update expense: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return n, nil
}

// DeleteExpense removes the row owned by userID.
func (r *Repository) DeleteExpense(ctx context.Context, userID, id int64) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM expenses WHERE id = ? AND user_id = ?",
		id, userID,
	)
	if err != nil {
		return 0, fmt.Errorf("delete expense: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return n, nil
}
