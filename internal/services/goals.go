package services

import (
	"context"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/viniciussantana001/ZeroPaper-SistemaOrganizacaoFinanceiro/internal/core"
	"github.com/viniciussantana001/ZeroPaper-SistemaOrganizacaoFinanceiro/internal/log"
	"github.com/viniciussantana001/ZeroPaper-SistemaOrganizacaoFinanceiro/internal/storage"
)

// GoalService owns one user's savings goals.
type GoalService struct {
	mu     sync.Mutex
	key    string
	saver  Saver
	logger *log.Logger
	newID  func() string
	color  core.ColorFunc
	goals  []core.Goal
}

func newGoalService(email string, goals []core.Goal, d deps) *GoalService {
	return &GoalService{
		key:    storage.GoalsKey(email),
		saver:  d.saver,
		logger: d.logger.WithComponent(log.ComponentGoal),
		newID:  d.newID,
		color:  d.color,
		goals:  goals,
	}
}

// Add creates a goal with saved initialized to zero.
func (s *GoalService) Add(ctx context.Context, title string, target decimal.Decimal, color string) (core.Goal, error) {
	if color == "" {
		color = s.color()
	}
	g := core.Goal{
		ID:     "g_" + s.newID(),
		Title:  strings.TrimSpace(title),
		Target: target,
		Saved:  decimal.Zero,
		Color:  color,
	}
	if err := g.Validate(); err != nil {
		return core.Goal{}, err
	}

	s.mu.Lock()
	s.goals = append([]core.Goal{g}, s.goals...)
	s.persistLocked(ctx)
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "Goal added", log.FieldGoalID, g.ID)
	return g, nil
}

// Remove deletes a goal unconditionally; an absent id is a no-op.
func (s *GoalService) Remove(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, g := range s.goals {
		if g.ID == id {
			s.goals = append(s.goals[:i], s.goals[i+1:]...)
			s.persistLocked(ctx)
			s.logger.InfoContext(ctx, "Goal removed", log.FieldGoalID, id)
			return
		}
	}
}

// Get returns a goal by id.
func (s *GoalService) Get(id string) (core.Goal, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, g := range s.goals {
		if g.ID == id {
			return g, true
		}
	}
	return core.Goal{}, false
}

// List returns a copy of the goals in insertion order.
func (s *GoalService) List() []core.Goal {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Goal, len(s.goals))
	copy(out, s.goals)
	return out
}

// applyContribution clamps amount to the goal's remaining target, increments
// saved by the clamped value and persists, all under the store lock so the
// clamp cannot race with another mutation.
func (s *GoalService) applyContribution(ctx context.Context, id string, amount decimal.Decimal) (decimal.Decimal, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, g := range s.goals {
		if g.ID == id {
			contributed := decimal.Min(g.Remaining(), amount)
			s.goals[i].Saved = g.Saved.Add(contributed)
			s.persistLocked(ctx)
			return contributed, true
		}
	}
	return decimal.Zero, false
}

func (s *GoalService) persistLocked(ctx context.Context) {
	raw, err := storage.Encode(s.goals)
	if err != nil {
		s.logger.ErrorContext(ctx, "Encoding goals failed", log.FieldError, err)
		return
	}
	s.saver.Save(s.key, raw)
}
