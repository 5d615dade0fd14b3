package http

import (
	"net/http"

	"github.com/viniciussantana001/ZeroPaper-SistemaOrganizacaoFinanceiro/internal/log"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	Authenticated bool   `json:"authenticated"`
	Email         string `json:"email,omitempty"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed_body")
		return
	}

	u, err := s.app.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	s.logger.InfoContext(r.Context(), "User registered", log.FieldUserEmail, u.Email)
	writeJSON(w, http.StatusCreated, sessionResponse{Authenticated: true, Email: u.Email})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed_body")
		return
	}

	u, err := s.app.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	s.logger.InfoContext(r.Context(), "User logged in", log.FieldUserEmail, u.Email)
	writeJSON(w, http.StatusOK, sessionResponse{Authenticated: true, Email: u.Email})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if email, ok := s.app.Session().Current(); ok {
		s.invalidateDashboard(email)
	}
	s.app.Logout(r.Context())
	writeJSON(w, http.StatusOK, sessionResponse{Authenticated: false})
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	email, ok := s.app.Session().Current()
	writeJSON(w, http.StatusOK, sessionResponse{Authenticated: ok, Email: email})
}
