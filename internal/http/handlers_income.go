package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"budgetx/internal/amqp"
	"budgetx/internal/auth"
	"budgetx/internal/storage"
)

type incomeRequest struct {
	CustomerID  *int64  `json:"customer_id"`
	Source      string  `json:"source"`
	Amount      float64 `json:"amount"`
	Month       int     `json:"month"`
	Year        int     `json:"year"`
	Description string  `json:"description"`
}

func (req incomeRequest) record() storage.IncomeRecord {
	return storage.IncomeRecord{
		CustomerID:  req.CustomerID,
		Source:      req.Source,
		Amount:      req.Amount,
		Month:       req.Month,
		Year:        req.Year,
		Description: req.Description,
	}
}

// queryInt parses an optional numeric query parameter; absent or unparsable
// values mean "no filter".
func queryInt(r *http.Request, key string) int {
	v := strings.TrimSpace(r.URL.Query().Get(key))
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}

func (s *Server) handleListIncome(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	filter := storage.IncomeFilter{
		Month:      queryInt(r, "month"),
		Year:       queryInt(r, "year"),
		CustomerID: int64(queryInt(r, "customer_id")),
	}

	incomes, err := s.store.ListIncome(r.Context(), userID, filter)
	if err != nil {
		slog.ErrorContext(r.Context(), "List income failed", "error", err, "user_id", userID)
		writeMessage(w, http.StatusInternalServerError, "Failed to fetch income")
		return
	}
	writeJSON(w, http.StatusOK, incomes)
}

func (s *Server) handleCreateIncome(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	var req incomeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	income, err := s.store.CreateIncome(r.Context(), userID, req.record())
	if err != nil {
		slog.ErrorContext(r.Context(), "Create income failed", "error", err, "user_id", userID)
		writeMessage(w, http.StatusInternalServerError, "Failed to create income")
		return
	}

	s.audit.Record(r.Context(), amqp.EntityIncome, amqp.OpCreate, income.ID, userID)
	writeJSON(w, http.StatusOK, income)
}

func (s *Server) handleUpdateIncome(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid income id")
		return
	}

	var req incomeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	n, err := s.store.UpdateIncome(r.Context(), userID, id, req.record())
	if err != nil {
		slog.ErrorContext(r.Context(), "Update income failed", "error", err, "user_id", userID, "record_id", id)
		writeMessage(w, http.StatusInternalServerError, "Failed to update income")
		return
	}

	if n > 0 {
		s.audit.Record(r.Context(), amqp.EntityIncome, amqp.OpUpdate, id, userID)
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) handleDeleteIncome(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid income id")
		return
	}

	n, err := s.store.DeleteIncome(r.Context(), userID, id)
	if err != nil {
		slog.ErrorContext(r.Context(), "Delete income failed", "error", err, "user_id", userID, "record_id", id)
		writeMessage(w, http.StatusInternalServerError, "Failed to delete income")
		return
	}

	if n > 0 {
		s.audit.Record(r.Context(), amqp.EntityIncome, amqp.OpDelete, id, userID)
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
