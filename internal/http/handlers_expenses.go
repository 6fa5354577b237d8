package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"budgetx/internal/amqp"
	"budgetx/internal/auth"
	"budgetx/internal/core"
	"budgetx/internal/storage"
)

type expenseRequest struct {
	PersonName  string  `json:"person_name"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Month       int     `json:"month"`
	Year        int     `json:"year"`
	Description string  `json:"description"`
}

func (req expenseRequest) record() storage.ExpenseRecord {
	e := core.Expense{PersonName: req.PersonName, Category: req.Category}
	e.Normalize()
	return storage.ExpenseRecord{
		PersonName:  e.PersonName,
		Category:    e.Category,
		Amount:      req.Amount,
		Month:       req.Month,
		Year:        req.Year,
		Description: req.Description,
	}
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	filter := storage.ExpenseFilter{
		Month:      queryInt(r, "month"),
		Year:       queryInt(r, "year"),
		PersonName: strings.TrimSpace(r.URL.Query().Get("person_name")),
	}

	expenses, err := s.store.ListExpenses(r.Context(), userID, filter)
	if err != nil {
		slog.ErrorContext(r.Context(), "List expenses failed", "error", err, "user_id", userID)
		writeMessage(w, http.StatusInternalServerError, "Failed to fetch expenses")
		return
	}
	writeJSON(w, http.StatusOK, expenses)
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, core.Categories)
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	var req expenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	expense, err := s.store.CreateExpense(r.Context(), userID, req.record())
	if err != nil {
		slog.ErrorContext(r.Context(), "Create expense failed", "error", err, "user_id", userID)
		writeMessage(w, http.StatusInternalServerError, "Failed to create expense")
		return
	}

	s.audit.Record(r.Context(), amqp.EntityExpense, amqp.OpCreate, expense.ID, userID)
	writeJSON(w, http.StatusOK, expense)
}

func (s *Server) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid expense id")
		return
	}

	var req expenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	n, err := s.store.UpdateExpense(r.Context(), userID, id, req.record())
	if err != nil {
		slog.ErrorContext(r.Context(), "Update expense failed", "error", err, "user_id", userID, "record_id", id)
		writeMessage(w, http.StatusInternalServerError, "Failed to update expense")
		return
	}

	if n > 0 {
		s.audit.Record(r.Context(), amqp.EntityExpense, amqp.OpUpdate, id, userID)
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid expense id")
		return
	}

	n, err := s.store.DeleteExpense(r.Context(), userID, id)
	if err != nil {
		slog.ErrorContext(r.Context(), "Delete expense failed", "error", err, "user_id", userID, "record_id", id)
		writeMessage(w, http.StatusInternalServerError, "Failed to delete expense")
		return
	}

	if n > 0 {
		s.audit.Record(r.Context(), amqp.EntityExpense, amqp.OpDelete, id, userID)
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
