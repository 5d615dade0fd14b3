package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/viniciussantana001/ZeroPaper-SistemaOrganizacaoFinanceiro/internal/core"
	"github.com/viniciussantana001/ZeroPaper-SistemaOrganizacaoFinanceiro/internal/log"
)

// Contribution failure reasons surfaced to the presentation layer.
const (
	ReasonInvalidAmount = "invalid_amount"
	ReasonGoalNotFound  = "goal_not_found"
)

// ContributionResult is the structured outcome of a goal contribution.
// UI-visible failures are results, not errors.
type ContributionResult struct {
	OK          bool            `json:"ok"`
	Contributed decimal.Decimal `json:"contributed"`
	Reason      string          `json:"reason,omitempty"`
}

// ContributionCoordinator couples the ledger and goal stores behind the one
// operation that must mutate both. The goal increment and the ledger entry
// are applied together within a single synchronous call; neither store is
// touched on a validation failure, so partial application cannot happen.
//
// Affordability (requested amount vs current balance) is a caller-side
// precondition enforced at the presentation boundary, not re-checked here.
type ContributionCoordinator struct {
	ledger *LedgerService
	goals  *GoalService
	logger *log.Logger
	newID  func() string
	now    func() time.Time
}

func newContributionCoordinator(ledger *LedgerService, goals *GoalService, d deps) *ContributionCoordinator {
	return &ContributionCoordinator{
		ledger: ledger,
		goals:  goals,
		logger: d.logger.WithComponent(log.ComponentGoal),
		newID:  d.newID,
		now:    d.now,
	}
}

// Contribute moves amount into the goal, clamped to min(remaining, amount),
// and records the matching uncategorized expense in the ledger.
func (c *ContributionCoordinator) Contribute(ctx context.Context, goalID string, amount decimal.Decimal) ContributionResult {
	if !amount.IsPositive() {
		return ContributionResult{Reason: ReasonInvalidAmount, Contributed: decimal.Zero}
	}

	g, ok := c.goals.Get(goalID)
	if !ok {
		return ContributionResult{Reason: ReasonGoalNotFound, Contributed: decimal.Zero}
	}

	contributed, ok := c.goals.applyContribution(ctx, goalID, amount)
	if !ok {
		return ContributionResult{Reason: ReasonGoalNotFound, Contributed: decimal.Zero}
	}

	c.ledger.append(ctx, core.Transaction{
		ID:     "t_" + c.newID(),
		Title:  "Economia: " + g.Title,
		Amount: contributed.Neg(),
		Date:   c.now(),
	})

	c.logger.InfoContext(ctx, "Goal contribution applied",
		log.FieldGoalID, goalID,
		log.FieldAmount, contributed.String())
	return ContributionResult{OK: true, Contributed: contributed}
}
