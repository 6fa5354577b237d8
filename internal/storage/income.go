package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"budgetx/internal/core"
)

// IncomeFilter narrows ListIncome. Zero values mean "no filter", matching the
// optional query parameters of the list endpoint.
type IncomeFilter struct {
	Month      int
	Year       int
	CustomerID int64
}

// IncomeRecord carries the writable fields of an income row.
type IncomeRecord struct {
	CustomerID  *int64
	Source      string
	Amount      float64
	Month       int
	Year        int
	Description string
}

// ListIncome returns income rows owned by userID, most recent period first,
// with the customer display name joined in (null when the reference is
// absent or was cleared).
func (r *Repository) ListIncome(ctx context.Context, userID int64, f IncomeFilter) ([]core.Income, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT i.id, i.user_id, i.customer_id, c.name, i.source, i.amount,
		i.month, i.year, i.description, i.created_at
		FROM income i
		LEFT JOIN customers c ON i.customer_id = c.id
		WHERE i.user_id = ?`)
	args := []any{userID}

	if f.Month != 0 {
		sb.WriteString(" AND i.month = ?")
		args = append(args, f.Month)
	}
	if f.Year != 0 {
		sb.WriteString(" AND i.year = ?")
		args = append(args, f.Year)
	}
	if f.CustomerID != 0 {
		sb.WriteString(" AND i.customer_id = ?")
		args = append(args, f.CustomerID)
	}
	sb.WriteString(" ORDER BY i.year DESC, i.month DESC, i.created_at DESC")

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("select income: %w", err)
	}
	defer rows.Close()

	incomes := []core.Income{}
	for rows.Next() {
		inc, err := scanIncome(rows)
		if err != nil {
			return nil, err
		}
		incomes = append(incomes, inc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate income: %w", err)
	}
	return incomes, nil
}

// CreateIncome inserts an income row for userID and returns the stored row
// including the joined customer name.
func (r *Repository) CreateIncome(ctx context.Context, userID int64, rec IncomeRecord) (core.Income, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO income (user_id, customer_id, source, amount, month, year, description) VALUES (?, ?, ?, ?, ?, ?, ?)",
		userID, rec.CustomerID, rec.Source, rec.Amount, rec.Month, rec.Year, rec.Description,
	)
	if err != nil {
		return core.Income{}, fmt.Errorf("insert income: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return core.Income{}, fmt.Errorf("last insert id: %w", err)
	}
	return r.getIncome(ctx, id)
}

// UpdateIncome replaces every writable field of the row owned by userID.
// Returns the matched-row count; 0 is a silent no-op for the caller.
func (r *Repository) UpdateIncome(ctx context.Context, userID, id int64, rec IncomeRecord) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		"UPDATE income SET customer_id = ?, source = ?, amount = ?, month = ?, year = ?, description = ? WHERE id = ? AND user_id = ?",
		rec.CustomerID, rec.Source, rec.Amount, rec.Month, rec.Year, rec.Description, id, userID,
	)
	if err != nil {
		return 0, fmt.Errorf("update income: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return n, nil
}

// DeleteIncome removes the row owned by userID.
func (r *Repository) DeleteIncome(ctx context.Context, userID, id int64) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM income WHERE id = ? AND user_id = ?",
		id, userID,
	)
	if err != nil {
		return 0, fmt.Errorf("delete income: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return n, nil
}

func (r *Repository) getIncome(ctx context.Context, id int64) (core.Income, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT i.id, i.user_id, i.customer_id, c.name, i.source, i.amount,
		i.month, i.year, i.description, i.created_at
		FROM income i
		LEFT JOIN customers c ON i.customer_id = c.id
		WHERE i.id = ?`, id)
	return scanIncome(row)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanIncome(s rowScanner) (core.Income, error) {
	var (
		inc          core.Income
		customerID   sql.NullInt64
		customerName sql.NullString
	)
	if err := s.Scan(&inc.ID, &inc.UserID, &customerID, &customerName, &inc.Source,
		&inc.Amount, &inc.Month, &inc.Year, &inc.Description, &inc.CreatedAt); err != nil {
		return core.Income{}, fmt.Errorf("scan income: %w", err)
	}
	if customerID.Valid {
		inc.CustomerID = &customerID.Int64
	}
	if customerName.Valid {
		inc.CustomerName = &customerName.String
	}
	return inc, nil
}
