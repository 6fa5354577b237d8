// Package http exposes the JSON API: sign-in, per-entity CRUD scoped to the
// resolved caller, and the on-demand report endpoints.
package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"budgetx/internal/auth"
	"budgetx/internal/services"
	"budgetx/internal/storage"
)

type Server struct {
	http.Server

	store    *storage.Repository
	jwt      *auth.JWTManager
	verifier auth.CredentialVerifier
	resolver *auth.Resolver
	audit    *services.AuditService

	allowedOrigin string
	rateLimiter   *rateLimiter
	shutdownOnce  sync.Once
}

// NewServer wires routes and middleware, returning a ready-to-run server.
// verifier may be nil when Google sign-in is not configured; the demo
// credential keeps working either way.
func NewServer(addr string, store *storage.Repository, jwtMgr *auth.JWTManager, verifier auth.CredentialVerifier, audit *services.AuditService, allowedOrigin string) *Server {
	mux := http.NewServeMux()

	s := &Server{
		store:         store,
		jwt:           jwtMgr,
		verifier:      verifier,
		resolver:      auth.NewResolver(jwtMgr),
		audit:         audit,
		allowedOrigin: allowedOrigin,
		rateLimiter:   newRateLimiter(),
	}
	s.Server = http.Server{
		Addr:    addr,
		Handler: s.withCORS(mux),
	}

	mux.HandleFunc("GET /api/health", s.public(s.handleHealth))
	mux.HandleFunc("POST /api/auth/google", s.public(s.handleGoogleSignIn))

	mux.HandleFunc("GET /api/customers", s.protected(s.handleListCustomers))
	mux.HandleFunc("POST /api/customers", s.protected(s.handleCreateCustomer))
	mux.HandleFunc("PUT /api/customers/{id}", s.protected(s.handleUpdateCustomer))
	mux.HandleFunc("DELETE /api/customers/{id}", s.protected(s.handleDeleteCustomer))

	mux.HandleFunc("GET /api/income", s.protected(s.handleListIncome))
	mux.HandleFunc("POST /api/income", s.protected(s.handleCreateIncome))
	mux.HandleFunc("PUT /api/income/{id}", s.protected(s.handleUpdateIncome))
	mux.HandleFunc("DELETE /api/income/{id}", s.protected(s.handleDeleteIncome))

	mux.HandleFunc("GET /api/expenses", s.protected(s.handleListExpenses))
	mux.HandleFunc("GET /api/expenses/categories", s.protected(s.handleListCategories))
	mux.HandleFunc("POST /api/expenses", s.protected(s.handleCreateExpense))
	mux.HandleFunc("PUT /api/expenses/{id}", s.protected(s.handleUpdateExpense))
	mux.HandleFunc("DELETE /api/expenses/{id}", s.protected(s.handleDeleteExpense))

	mux.HandleFunc("GET /api/reports/monthly", s.protected(s.handleMonthlyReport))
	mux.HandleFunc("GET /api/reports/yearly", s.protected(s.handleYearlyReport))

	return s
}

// Shutdown stops the rate limiter's cleanup goroutine alongside the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.shutdownOnce.Do(func() {
		s.rateLimiter.stop()
		err = s.Server.Shutdown(ctx)
	})
	return err
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
