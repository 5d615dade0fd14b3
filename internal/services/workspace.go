package services

import (
	"context"
	"time"

	"github.com/viniciussantana001/ZeroPaper-SistemaOrganizacaoFinanceiro/internal/core"
	"github.com/viniciussantana001/ZeroPaper-SistemaOrganizacaoFinanceiro/internal/log"
	"github.com/viniciussantana001/ZeroPaper-SistemaOrganizacaoFinanceiro/internal/storage"
)

// deps bundles the collaborators shared by every per-user store.
type deps struct {
	saver  Saver
	logger *log.Logger
	newID  func() string
	now    func() time.Time
	color  core.ColorFunc
}

// Workspace groups the stores scoped to one authenticated user. Switching
// users swaps the whole workspace, and with it the entire visible data set.
type Workspace struct {
	Email         string
	Ledger        *LedgerService
	Categories    *CategoryService
	Goals         *GoalService
	Settings      *SettingsService
	Contributions *ContributionCoordinator
}

// openWorkspace loads the user's four collections, substituting seed data for
// collections that were never persisted. Unreadable payloads also fall back
// to defaults: a dirty blob must never lock a user out of their ledger.
func openWorkspace(ctx context.Context, kv storage.KV, d deps, email string) *Workspace {
	logger := d.logger.WithComponent(log.ComponentApp)

	txs, seededTxs := loadOr(ctx, kv, storage.TransactionsKey(email), logger, func() []core.Transaction {
		return core.SeedTransactions(d.now())
	})
	cats, seededCats := loadOr(ctx, kv, storage.CategoriesKey(email), logger, core.DefaultCategories)
	goals, _ := loadOr(ctx, kv, storage.GoalsKey(email), logger, func() []core.Goal { return nil })
	settings, _ := loadOr(ctx, kv, storage.SettingsKey(email), logger, core.DefaultSettings)

	ws := &Workspace{
		Email:      email,
		Ledger:     newLedgerService(email, txs, d),
		Categories: newCategoryService(email, cats, d),
		Goals:      newGoalService(email, goals, d),
		Settings:   newSettingsService(email, settings, d),
	}
	ws.Contributions = newContributionCoordinator(ws.Ledger, ws.Goals, d)

	// First-ever load: write the seeds so the next run finds them persisted.
	if seededTxs {
		ws.Ledger.mu.Lock()
		ws.Ledger.persistLocked(ctx)
		ws.Ledger.mu.Unlock()
	}
	if seededCats {
		ws.Categories.mu.Lock()
		ws.Categories.persistLocked(ctx)
		ws.Categories.mu.Unlock()
	}

	logger.InfoContext(ctx, "Workspace opened",
		log.FieldUserEmail, email,
		"transactions", len(txs),
		"categories", len(cats),
		"goals", len(goals))
	return ws
}

// loadOr reads and decodes one collection, falling back to fallback() when the
// key is absent or the payload is unusable. The second return reports whether
// the fallback was used.
func loadOr[T any](ctx context.Context, kv storage.KV, key string, logger *log.Logger, fallback func() T) (T, bool) {
	raw, ok, err := kv.Get(ctx, key)
	if err != nil {
		logger.WarnContext(ctx, "Loading collection failed, using defaults",
			log.FieldKey, key, log.FieldError, err)
		return fallback(), true
	}
	if !ok {
		return fallback(), true
	}
	v, err := storage.Decode[T](raw)
	if err != nil {
		logger.WarnContext(ctx, "Collection payload invalid, using defaults",
			log.FieldKey, key, log.FieldError, err)
		return fallback(), true
	}
	return v, false
}
