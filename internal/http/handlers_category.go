package http

import (
	"net/http"

	"github.com/viniciussantana001/ZeroPaper-SistemaOrganizacaoFinanceiro/internal/core"
	"github.com/viniciussantana001/ZeroPaper-SistemaOrganizacaoFinanceiro/internal/log"
)

type createCategoryRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

type categoriesResponse struct {
	Items []core.Category    `json:"items"`
	Sums  []core.CategorySum `json:"sums"`
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	ws, err := s.app.Workspace()
	if err != nil {
		writeDomainError(w, err)
		return
	}

	cats := ws.Categories.List()
	writeJSON(w, http.StatusOK, categoriesResponse{
		Items: cats,
		Sums:  core.ComputeCategorySums(ws.Ledger.List(), cats),
	})
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	ws, err := s.app.Workspace()
	if err != nil {
		writeDomainError(w, err)
		return
	}

	var req createCategoryRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed_body")
		return
	}

	cat, err := ws.Categories.Add(r.Context(), req.Name, req.Color)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	s.invalidateDashboard(ws.Email)
	s.logger.InfoContext(r.Context(), "Category created", log.FieldCategoryID, cat.ID)
	writeJSON(w, http.StatusCreated, cat)
}

// handleDeleteCategory removes the category only. Transactions keep their
// reference and surface under the uncategorized bucket from then on.
func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	ws, err := s.app.Workspace()
	if err != nil {
		writeDomainError(w, err)
		return
	}

	id := r.PathValue("id")
	ws.Categories.Remove(r.Context(), id)
	s.invalidateDashboard(ws.Email)
	w.WriteHeader(http.StatusNoContent)
}
