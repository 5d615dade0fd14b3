package http

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/viniciussantana001/ZeroPaper-SistemaOrganizacaoFinanceiro/internal/core"
	"github.com/viniciussantana001/ZeroPaper-SistemaOrganizacaoFinanceiro/internal/log"
	"github.com/viniciussantana001/ZeroPaper-SistemaOrganizacaoFinanceiro/internal/services"
)

type createGoalRequest struct {
	Title  string `json:"title"`
	Target string `json:"target"`
	Color  string `json:"color"`
}

type contributeRequest struct {
	Amount string `json:"amount"`
}

type goalView struct {
	core.Goal
	Remaining decimal.Decimal `json:"remaining"`
}

func (s *Server) handleListGoals(w http.ResponseWriter, r *http.Request) {
	ws, err := s.app.Workspace()
	if err != nil {
		writeDomainError(w, err)
		return
	}

	goals := ws.Goals.List()
	views := make([]goalView, 0, len(goals))
	for _, g := range goals {
		views = append(views, goalView{Goal: g, Remaining: g.Remaining()})
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *Server) handleCreateGoal(w http.ResponseWriter, r *http.Request) {
	ws, err := s.app.Workspace()
	if err != nil {
		writeDomainError(w, err)
		return
	}

	var req createGoalRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed_body")
		return
	}

	target, err := core.ParsePositiveAmount(req.Target)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid_target")
		return
	}

	g, err := ws.Goals.Add(r.Context(), req.Title, target, req.Color)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	s.logger.InfoContext(r.Context(), "Goal created", log.FieldGoalID, g.ID)
	writeJSON(w, http.StatusCreated, goalView{Goal: g, Remaining: g.Remaining()})
}

func (s *Server) handleDeleteGoal(w http.ResponseWriter, r *http.Request) {
	ws, err := s.app.Workspace()
	if err != nil {
		writeDomainError(w, err)
		return
	}

	ws.Goals.Remove(r.Context(), r.PathValue("id"))
	w.WriteHeader(http.StatusNoContent)
}

// handleContribute checks affordability against the current balance before
// delegating to the coordinator. The balance check lives here at the request
// boundary; the coordinator only clamps against the goal's remaining gap.
func (s *Server) handleContribute(w http.ResponseWriter, r *http.Request) {
	ws, err := s.app.Workspace()
	if err != nil {
		writeDomainError(w, err)
		return
	}

	var req contributeRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed_body")
		return
	}

	amount, err := core.ParsePositiveAmount(req.Amount)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid_amount")
		return
	}

	if amount.GreaterThan(ws.Ledger.Totals().Balance) {
		writeDomainError(w, core.ErrInsufficientBalance)
		return
	}

	result := ws.Contributions.Contribute(r.Context(), r.PathValue("id"), amount)
	if !result.OK {
		switch result.Reason {
		case services.ReasonGoalNotFound:
			writeError(w, http.StatusNotFound, result.Reason)
		default:
			writeError(w, http.StatusUnprocessableEntity, result.Reason)
		}
		return
	}

	s.invalidateDashboard(ws.Email)
	s.logger.InfoContext(r.Context(), "Goal contribution applied",
		log.FieldGoalID, r.PathValue("id"),
		log.FieldAmount, result.Contributed.String())
	writeJSON(w, http.StatusOK, result)
}
