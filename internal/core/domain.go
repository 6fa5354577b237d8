package core

import (
	"errors"
	"strings"
	"time"
)

// DefaultCategory is applied to expenses created or updated without one.
const DefaultCategory = "Miscellaneous"

// Categories is the suggested closed set offered to clients. Storage accepts
// any label; this list is advisory only.
var Categories = []string{
	"Groceries",
	"Healthcare",
	"Transport",
	"Food",
	"Utilities",
	"Entertainment",
	"Education",
	"Shopping",
	"Mobile",
	DefaultCategory,
}

var (
	ErrInvalidMonth = errors.New("month must be between 1 and 12")
	ErrInvalidYear  = errors.New("year must be a positive integer")
)

type (
	// User is an authenticated principal. GoogleID is empty for rows created
	// outside the Google sign-in flow and "demo" for the seeded demo user.
	User struct {
		ID        int64     `json:"id"`
		GoogleID  string    `json:"google_id,omitempty"`
		Email     string    `json:"email"`
		Name      string    `json:"name"`
		Avatar    string    `json:"avatar"`
		CreatedAt time.Time `json:"created_at"`
	}

	// Customer belongs to exactly one user and is removed with it.
	Customer struct {
		ID        int64     `json:"id"`
		UserID    int64     `json:"user_id"`
		Name      string    `json:"name"`
		Address   string    `json:"address"`
		CreatedAt time.Time `json:"created_at"`
	}

	// Income is a revenue row. CustomerID is nil when the income is not tied
	// to a customer or when the referenced customer was deleted.
	Income struct {
		ID           int64     `json:"id"`
		UserID       int64     `json:"user_id"`
		CustomerID   *int64    `json:"customer_id"`
		CustomerName *string   `json:"customer_name"`
		Source       string    `json:"source"`
		Amount       float64   `json:"amount"`
		Month        int       `json:"month"`
		Year         int       `json:"year"`
		Description  string    `json:"description"`
		CreatedAt    time.Time `json:"created_at"`
	}

	// Expense is a cost row. PersonName is free text, not a reference.
	Expense struct {
		ID          int64     `json:"id"`
		UserID      int64     `json:"user_id"`
		PersonName  string    `json:"person_name"`
		Category    string    `json:"category"`
		Amount      float64   `json:"amount"`
		Month       int       `json:"month"`
		Year        int       `json:"year"`
		Description string    `json:"description"`
		CreatedAt   time.Time `json:"created_at"`
	}
)

// ValidateMonth checks the 1-12 range.
func ValidateMonth(month int) error {
	if month < 1 || month > 12 {
		return ErrInvalidMonth
	}
	return nil
}

// ValidateYear checks that year is positive.
func ValidateYear(year int) error {
	if year <= 0 {
		return ErrInvalidYear
	}
	return nil
}

// Normalize applies the category default and trims the person name.
func (e *Expense) Normalize() {
	e.PersonName = strings.TrimSpace(e.PersonName)
	if strings.TrimSpace(e.Category) == "" {
		e.Category = DefaultCategory
	}
}
