package core

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Synthetic bucket used by the aggregation engine for transactions whose
// category reference is empty or no longer resolvable.
const (
	UncategorizedID    = "__uncat"
	UncategorizedName  = "Outros"
	UncategorizedColor = "#888"
)

type (
	// Transaction is a single ledger entry. Positive amounts are income,
	// negative amounts are expenses. Immutable once created except for deletion.
	Transaction struct {
		ID         string          `json:"id"`
		Title      string          `json:"title"`
		Amount     decimal.Decimal `json:"amount"`
		CategoryID string          `json:"categoryId,omitempty"` // empty = uncategorized
		Date       time.Time       `json:"date"`
	}

	// Category is a user-defined label used to bucket transactions.
	// Transactions hold a weak reference to it: deleting a category leaves
	// referencing transactions untouched.
	Category struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Color string `json:"color"`
	}

	// Goal is a savings target. Saved never exceeds Target.
	Goal struct {
		ID     string          `json:"id"`
		Title  string          `json:"title"`
		Target decimal.Decimal `json:"target"`
		Saved  decimal.Decimal `json:"saved"`
		Color  string          `json:"color"`
	}

	// User is a registered account. Credentials are stored and compared in
	// plaintext against the local user list; hardening is out of scope.
	User struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	// Settings holds per-user preferences.
	Settings struct {
		DarkMode bool `json:"darkMode"`
	}
)

var (
	ErrDuplicateUser       = errors.New("user already exists")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrInvalidTarget       = errors.New("invalid goal target")
	ErrGoalNotFound        = errors.New("goal not found")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrNotAuthenticated    = errors.New("no authenticated user")
	ErrEmptyTitle          = errors.New("empty title")
	ErrEmptyName           = errors.New("empty name")
	ErrEmptyEmail          = errors.New("empty email")
	ErrEmptyPassword       = errors.New("empty password")
)

func (t Transaction) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return ErrEmptyTitle
	}
	if t.Amount.IsZero() {
		return ErrInvalidAmount
	}
	return nil
}

func (c Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	return nil
}

func (g Goal) Validate() error {
	if strings.TrimSpace(g.Title) == "" {
		return ErrEmptyTitle
	}
	if !g.Target.IsPositive() {
		return ErrInvalidTarget
	}
	if g.Saved.IsNegative() || g.Saved.GreaterThan(g.Target) {
		return ErrInvalidAmount
	}
	return nil
}

func (u User) Validate() error {
	if strings.TrimSpace(u.Email) == "" {
		return ErrEmptyEmail
	}
	if u.Password == "" {
		return ErrEmptyPassword
	}
	return nil
}

// Remaining returns how much is still missing to reach the goal target.
func (g Goal) Remaining() decimal.Decimal {
	return g.Target.Sub(g.Saved)
}

// DefaultCategories returns the starter categories used when a user has no
// persisted category collection yet.
func DefaultCategories() []Category {
	return []Category{
		{ID: "c_food", Name: "Alimentação", Color: "#FF6384"},
		{ID: "c_transport", Name: "Transporte", Color: "#36A2EB"},
		{ID: "c_shopping", Name: "Compras", Color: "#FFCE56"},
		{ID: "c_salary", Name: "Salário", Color: "#4BC0C0"},
	}
}

// SeedTransactions returns the example ledger used on a user's first-ever load.
func SeedTransactions(now time.Time) []Transaction {
	return []Transaction{
		{ID: "t1", Title: "Salário", Amount: decimal.NewFromInt(3200), CategoryID: "c_salary", Date: now},
		{ID: "t2", Title: "Supermercado", Amount: decimal.RequireFromString("-85.5"), CategoryID: "c_food", Date: now},
		{ID: "t3", Title: "Ônibus", Amount: decimal.RequireFromString("-12.0"), CategoryID: "c_transport", Date: now},
	}
}

// DefaultSettings returns the settings applied before the user ever saved any.
func DefaultSettings() Settings {
	return Settings{DarkMode: true}
}
