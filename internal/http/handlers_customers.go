package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"budgetx/internal/amqp"
	"budgetx/internal/auth"
)

type customerRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

func (s *Server) handleListCustomers(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	customers, err := s.store.ListCustomers(r.Context(), userID)
	if err != nil {
		slog.ErrorContext(r.Context(), "List customers failed", "error", err, "user_id", userID)
		writeMessage(w, http.StatusInternalServerError, "Failed to fetch customers")
		return
	}
	writeJSON(w, http.StatusOK, customers)
}

func (s *Server) handleCreateCustomer(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	var req customerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	customer, err := s.store.CreateCustomer(r.Context(), userID, req.Name, req.Address)
	if err != nil {
		slog.ErrorContext(r.Context(), "Create customer failed", "error", err, "user_id", userID)
		writeMessage(w, http.StatusInternalServerError, "Failed to create customer")
		return
	}

	s.audit.Record(r.Context(), amqp.EntityCustomer, amqp.OpCreate, customer.ID, userID)
	writeJSON(w, http.StatusOK, customer)
}

func (s *Server) handleUpdateCustomer(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid customer id")
		return
	}

	var req customerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	// Ownership mismatch matches zero rows and stays a silent no-op.
	n, err := s.store.UpdateCustomer(r.Context(), userID, id, req.Name, req.Address)
	if err != nil {
		slog.ErrorContext(r.Context(), "Update customer failed", "error", err, "user_id", userID, "record_id", id)
		writeMessage(w, http.StatusInternalServerError, "Failed to update customer")
		return
	}

	if n > 0 {
		s.audit.Record(r.Context(), amqp.EntityCustomer, amqp.OpUpdate, id, userID)
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) handleDeleteCustomer(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid customer id")
		return
	}

	n, err := s.store.DeleteCustomer(r.Context(), userID, id)
	if err != nil {
		slog.ErrorContext(r.Context(), "Delete customer failed", "error", err, "user_id", userID, "record_id", id)
		writeMessage(w, http.StatusInternalServerError, "Failed to delete customer")
		return
	}

	if n > 0 {
		s.audit.Record(r.Context(), amqp.EntityCustomer, amqp.OpDelete, id, userID)
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
