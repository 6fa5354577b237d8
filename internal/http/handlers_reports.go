package http

import (
	"log/slog"
	"net/http"

	"budgetx/internal/auth"
	"budgetx/internal/core"
)

func (s *Server) handleMonthlyReport(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	month := queryInt(r, "month")
	year := queryInt(r, "year")
	if core.ValidateMonth(month) != nil || core.ValidateYear(year) != nil {
		writeMessage(w, http.StatusBadRequest, "month and year are required")
		return
	}

	report, err := s.store.MonthlyReport(r.Context(), userID, month, year)
	if err != nil {
		slog.ErrorContext(r.Context(), "Monthly report failed", "error", err, "user_id", userID)
		writeMessage(w, http.StatusInternalServerError, "Failed to generate report")
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleYearlyReport(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	year := queryInt(r, "year")
	if core.ValidateYear(year) != nil {
		writeMessage(w, http.StatusBadRequest, "year is required")
		return
	}

	report, err := s.store.YearlyReport(r.Context(), userID, year)
	if err != nil {
		slog.ErrorContext(r.Context(), "Yearly report failed", "error", err, "user_id", userID)
		writeMessage(w, http.StatusInternalServerError, "Failed to generate report")
		return
	}
	writeJSON(w, http.StatusOK, report)
}
