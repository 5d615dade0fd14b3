package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/viniciussantana001/ZeroPaper-SistemaOrganizacaoFinanceiro/internal/core"
	"github.com/viniciussantana001/ZeroPaper-SistemaOrganizacaoFinanceiro/internal/log"
	"github.com/viniciussantana001/ZeroPaper-SistemaOrganizacaoFinanceiro/internal/storage"
)

// LedgerService owns one user's transaction collection. The sequence is kept
// most-recent-insertion-first: new entries are prepended and never re-sorted
// by date, so backdated transactions stay where they were inserted. That is
// the intended insertion-order semantics, not a bug.
type LedgerService struct {
	mu     sync.Mutex
	key    string
	saver  Saver
	logger *log.Logger
	newID  func() string
	now    func() time.Time
	txs    []core.Transaction
}

func newLedgerService(email string, txs []core.Transaction, d deps) *LedgerService {
	return &LedgerService{
		key:    storage.TransactionsKey(email),
		saver:  d.saver,
		logger: d.logger.WithComponent(log.ComponentLedger),
		newID:  d.newID,
		now:    d.now,
		txs:    txs,
	}
}

// Add validates, stamps and prepends a new transaction, then persists.
func (s *LedgerService) Add(ctx context.Context, title string, amount decimal.Decimal, categoryID string) (core.Transaction, error) {
	tx := core.Transaction{
		ID:         "t_" + s.newID(),
		Title:      strings.TrimSpace(title),
		Amount:     amount,
		CategoryID: categoryID,
		Date:       s.now(),
	}
	if err := tx.Validate(); err != nil {
		return core.Transaction{}, err
	}

	s.append(ctx, tx)
	s.logger.InfoContext(ctx, "Transaction added",
		log.FieldTxID, tx.ID,
		log.FieldAmount, tx.Amount.String(),
		log.FieldCategoryID, tx.CategoryID)
	return tx, nil
}

// Remove deletes a transaction by id. An absent id is a no-op, not an error.
func (s *LedgerService) Remove(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, tx := range s.txs {
		if tx.ID == id {
			s.txs = append(s.txs[:i], s.txs[i+1:]...)
			s.persistLocked(ctx)
			s.logger.InfoContext(ctx, "Transaction removed", log.FieldTxID, id)
			return
		}
	}
}

// List returns a copy of the transaction sequence in insertion order.
func (s *LedgerService) List() []core.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Transaction, len(s.txs))
	copy(out, s.txs)
	return out
}

// Totals derives the balance summary from the current ledger.
func (s *LedgerService) Totals() core.Totals {
	return core.ComputeTotals(s.List())
}

// append prepends without amount validation. The contribution coordinator
// uses it directly: a fully-funded goal yields a zero contribution entry.
func (s *LedgerService) append(ctx context.Context, tx core.Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.txs = append([]core.Transaction{tx}, s.txs...)
	s.persistLocked(ctx)
}

func (s *LedgerService) persistLocked(ctx context.Context) {
	raw, err := storage.Encode(s.txs)
	if err != nil {
		s.logger.ErrorContext(ctx, "Encoding transactions failed", log.FieldError, err)
		return
	}
	s.saver.Save(s.key, raw)
}
