package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"budgetx/internal/auth"
	"budgetx/internal/core"
)

type signInRequest struct {
	Credential string `json:"credential"`
}

// userProjection is the public view of a user. The external identity
// reference is never exposed.
type userProjection struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar"`
}

type signInResponse struct {
	Token string         `json:"token"`
	User  userProjection `json:"user"`
}

// handleGoogleSignIn verifies the credential, upserts the user row keyed by
// the external identity, and issues a session token. This is the single
// place where an invalid credential is rejected rather than mapped to the
// demo identity.
func (s *Server) handleGoogleSignIn(w http.ResponseWriter, r *http.Request) {
	var req signInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Credential == "" {
		writeMessage(w, http.StatusBadRequest, "Credential required")
		return
	}

	var profile auth.Profile
	if req.Credential == auth.DemoCredential {
		profile = auth.DemoProfile()
	} else {
		if s.verifier == nil {
			slog.WarnContext(r.Context(), "Google sign-in attempted without a configured verifier")
			writeMessage(w, http.StatusUnauthorized, "Invalid Google credential")
			return
		}
		verified, err := s.verifier.Verify(r.Context(), req.Credential)
		if err != nil {
			slog.WarnContext(r.Context(), "Google token verification failed", "error", err)
			writeMessage(w, http.StatusUnauthorized, "Invalid Google credential")
			return
		}
		profile = verified
	}

	user, err := s.store.UpsertGoogleUser(r.Context(), profile.GoogleID, profile.Email, profile.Name, profile.Avatar)
	if err != nil {
		slog.ErrorContext(r.Context(), "User upsert failed", "error", err, "google_id", profile.GoogleID)
		writeMessage(w, http.StatusInternalServerError, "Authentication failed")
		return
	}

	token, err := s.jwt.Generate(user.ID, user.Email)
	if err != nil {
		slog.ErrorContext(r.Context(), "Token generation failed", "error", err, "user_id", user.ID)
		writeMessage(w, http.StatusInternalServerError, "Authentication failed")
		return
	}

	writeJSON(w, http.StatusOK, signInResponse{
		Token: token,
		User:  projectUser(user),
	})
}

func projectUser(u core.User) userProjection {
	return userProjection{
		ID:     u.ID,
		Name:   u.Name,
		Email:  u.Email,
		Avatar: u.Avatar,
	}
}
