package storage

import (
	"context"
	"fmt"

	"budgetx/internal/core"
)

// ListCustomers returns every customer owned by userID, name ascending.
func (r *Repository) ListCustomers(ctx context.Context, userID int64) ([]core.Customer, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, user_id, name, address, created_at FROM customers WHERE user_id = ? ORDER BY name ASC",
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("select customers: %w", err)
	}
	defer rows.Close()

	customers := []core.Customer{}
	for rows.Next() {
		var c core.Customer
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.Address, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		customers = append(customers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate customers: %w", err)
	}
	return customers, nil
}

// CreateCustomer inserts a customer for userID and returns the stored row.
func (r *Repository) CreateCustomer(ctx context.Context, userID int64, name, address string) (core.Customer, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO customers (user_id, name, address) VALUES (?, ?, ?)",
		userID, name, address,
	)
	if err != nil {
		return core.Customer{}, fmt.Errorf("insert customer: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return core.Customer{}, fmt.Errorf("last insert id: %w", err)
	}

	var c core.Customer
	err = r.db.QueryRowContext(ctx,
		"SELECT id, user_id, name, address, created_at FROM customers WHERE id = ?",
		id,
	).Scan(&c.ID, &c.UserID, &c.Name, &c.Address, &c.CreatedAt)
	if err != nil {
		return core.Customer{}, fmt.Errorf("select created customer: %w", err)
	}
	return c, nil
}

// UpdateCustomer replaces name and address of the row owned by userID.
// Returns the number of rows matched; 0 means the id does not exist or
// belongs to another user.
func (r *Repository) UpdateCustomer(ctx context.Context, userID, id int64, name, address string) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		"UPDATE customers SET name = ?, address = ? WHERE id = ? AND user_id = ?",
		name, address, id, userID,
	)
	if err != nil {
		return 0, fmt.Errorf("update customer: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return n, nil
}

// DeleteCustomer removes the row owned by userID. Income rows referencing the
// customer keep their data with customer_id cleared by the foreign key.
func (r *Repository) DeleteCustomer(ctx context.Context, userID, id int64) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM customers WHERE id = ? AND user_id = ?",
		id, userID,
	)
	if err != nil {
		return 0, fmt.Errorf("delete customer: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return n, nil
}
