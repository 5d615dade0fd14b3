package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/viniciussantana001/ZeroPaper-SistemaOrganizacaoFinanceiro/internal/core"
)

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, errorBody{Error: code})
}

// writeDomainError maps domain sentinels onto status codes and stable error
// codes the client can branch on.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrNotAuthenticated):
		writeError(w, http.StatusUnauthorized, "not_authenticated")
	case errors.Is(err, core.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "invalid_credentials")
	case errors.Is(err, core.ErrDuplicateUser):
		writeError(w, http.StatusConflict, "duplicate_user")
	case errors.Is(err, core.ErrGoalNotFound):
		writeError(w, http.StatusNotFound, "goal_not_found")
	case errors.Is(err, core.ErrInsufficientBalance):
		writeError(w, http.StatusConflict, "insufficient_balance")
	case errors.Is(err, core.ErrInvalidAmount):
		writeError(w, http.StatusUnprocessableEntity, "invalid_amount")
	case errors.Is(err, core.ErrInvalidTarget):
		writeError(w, http.StatusUnprocessableEntity, "invalid_target")
	case errors.Is(err, core.ErrEmptyTitle), errors.Is(err, core.ErrEmptyName),
		errors.Is(err, core.ErrEmptyEmail), errors.Is(err, core.ErrEmptyPassword):
		writeError(w, http.StatusUnprocessableEntity, "missing_field")
	default:
		writeError(w, http.StatusInternalServerError, "internal_error")
	}
}

// decodeBody parses a JSON request body into dst, rejecting unknown fields.
func decodeBody(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}
