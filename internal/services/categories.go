package services

import (
	"context"
	"strings"
	"sync"

	"github.com/viniciussantana001/ZeroPaper-SistemaOrganizacaoFinanceiro/internal/core"
	"github.com/viniciussantana001/ZeroPaper-SistemaOrganizacaoFinanceiro/internal/log"
	"github.com/viniciussantana001/ZeroPaper-SistemaOrganizacaoFinanceiro/internal/storage"
)

// CategoryService owns one user's category collection. Removing a category
// never touches referencing transactions: they keep their dangling reference
// and aggregate as uncategorized.
type CategoryService struct {
	mu     sync.Mutex
	key    string
	saver  Saver
	logger *log.Logger
	newID  func() string
	color  core.ColorFunc
	cats   []core.Category
}

func newCategoryService(email string, cats []core.Category, d deps) *CategoryService {
	return &CategoryService{
		key:    storage.CategoriesKey(email),
		saver:  d.saver,
		logger: d.logger.WithComponent(log.ComponentCategory),
		newID:  d.newID,
		color:  d.color,
		cats:   cats,
	}
}

// Add creates a category. An empty color gets a generated RGB hex.
func (s *CategoryService) Add(ctx context.Context, name, color string) (core.Category, error) {
	if color == "" {
		color = s.color()
	}
	c := core.Category{
		ID:    "c_" + s.newID(),
		Name:  strings.TrimSpace(name),
		Color: color,
	}
	if err := c.Validate(); err != nil {
		return core.Category{}, err
	}

	s.mu.Lock()
	s.cats = append([]core.Category{c}, s.cats...)
	s.persistLocked(ctx)
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "Category added", log.FieldCategoryID, c.ID)
	return c, nil
}

// Remove deletes a category unconditionally. Confirmation is a UI concern;
// an absent id is a no-op.
func (s *CategoryService) Remove(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, c := range s.cats {
		if c.ID == id {
			s.cats = append(s.cats[:i], s.cats[i+1:]...)
			s.persistLocked(ctx)
			s.logger.InfoContext(ctx, "Category removed", log.FieldCategoryID, id)
			return
		}
	}
}

// List returns a copy of the categories in insertion order.
func (s *CategoryService) List() []core.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Category, len(s.cats))
	copy(out, s.cats)
	return out
}

func (s *CategoryService) persistLocked(ctx context.Context) {
	raw, err := storage.Encode(s.cats)
	if err != nil {
		s.logger.ErrorContext(ctx, "Encoding categories failed", log.FieldError, err)
		return
	}
	s.saver.Save(s.key, raw)
}
