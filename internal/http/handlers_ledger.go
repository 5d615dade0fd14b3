package http

import (
	"net/http"

	"github.com/viniciussantana001/ZeroPaper-SistemaOrganizacaoFinanceiro/internal/core"
	"github.com/viniciussantana001/ZeroPaper-SistemaOrganizacaoFinanceiro/internal/log"
)

type createTransactionRequest struct {
	Title      string `json:"title"`
	Amount     string `json:"amount"`
	CategoryID string `json:"categoryId"`
}

type transactionsResponse struct {
	Items  []core.Transaction `json:"items"`
	Totals core.Totals        `json:"totals"`
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	ws, err := s.app.Workspace()
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, transactionsResponse{
		Items:  ws.Ledger.List(),
		Totals: ws.Ledger.Totals(),
	})
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	ws, err := s.app.Workspace()
	if err != nil {
		writeDomainError(w, err)
		return
	}

	var req createTransactionRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed_body")
		return
	}

	amount, err := core.ParseAmount(req.Amount)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	tx, err := ws.Ledger.Add(r.Context(), req.Title, amount, req.CategoryID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	s.invalidateDashboard(ws.Email)
	s.logger.InfoContext(r.Context(), "Transaction created",
		log.FieldTxID, tx.ID, log.FieldAmount, tx.Amount.String())
	writeJSON(w, http.StatusCreated, tx)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	ws, err := s.app.Workspace()
	if err != nil {
		writeDomainError(w, err)
		return
	}

	id := r.PathValue("id")
	ws.Ledger.Remove(r.Context(), id)
	s.invalidateDashboard(ws.Email)
	w.WriteHeader(http.StatusNoContent)
}
