package http

import (
	"net/http"
	"time"

	"github.com/viniciussantana001/ZeroPaper-SistemaOrganizacaoFinanceiro/internal/core"
	"github.com/viniciussantana001/ZeroPaper-SistemaOrganizacaoFinanceiro/internal/log"
	"github.com/viniciussantana001/ZeroPaper-SistemaOrganizacaoFinanceiro/internal/services"
)

const monthlySeriesLength = 6

type dashboardView struct {
	Totals           core.Totals        `json:"totals"`
	FormattedIncome  string             `json:"formattedIncome"`
	FormattedExpense string             `json:"formattedExpense"`
	FormattedBalance string             `json:"formattedBalance"`
	Categories       []core.CategorySum `json:"categories"`
	Monthly          []core.MonthBucket `json:"monthly"`
}

func buildDashboard(ws *services.Workspace, now time.Time) dashboardView {
	txs := ws.Ledger.List()
	totals := core.ComputeTotals(txs)
	return dashboardView{
		Totals:           totals,
		FormattedIncome:  core.FormatCurrency(totals.Income),
		FormattedExpense: core.FormatCurrency(totals.Expense.Neg()),
		FormattedBalance: core.FormatCurrency(totals.Balance),
		Categories:       core.ComputeCategorySums(txs, ws.Categories.List()),
		Monthly:          core.ComputeMonthlySeries(txs, monthlySeriesLength, now),
	}
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	ws, err := s.app.Workspace()
	if err != nil {
		writeDomainError(w, err)
		return
	}

	if view, found := s.dashboardCache.Get(ws.Email); found {
		s.logger.DebugContext(r.Context(), "Dashboard cache hit", log.FieldUserEmail, ws.Email)
		writeJSON(w, http.StatusOK, view)
		return
	}

	view := buildDashboard(ws, time.Now())
	s.dashboardCache.Set(ws.Email, view)
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	ws, err := s.app.Workspace()
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ws.Settings.Get())
}

func (s *Server) handleToggleDarkMode(w http.ResponseWriter, r *http.Request) {
	ws, err := s.app.Workspace()
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ws.Settings.ToggleDarkMode(r.Context()))
}
