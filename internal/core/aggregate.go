package core

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Totals is the balance summary derived from a transaction set.
// Income and Expense are both non-negative; Balance = Income - Expense.
type Totals struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Balance decimal.Decimal `json:"balance"`
}

// CategorySum is an absolute amount accumulated per category.
type CategorySum struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Color string          `json:"color"`
	Value decimal.Decimal `json:"value"`
}

// MonthBucket is one calendar-month slot of the income/expense series.
type MonthBucket struct {
	Label   string          `json:"label"`
	Year    int             `json:"year"`
	Month   time.Month      `json:"month"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

// Portuguese short month names used as series labels.
var monthShortNames = [...]string{
	"jan", "fev", "mar", "abr", "mai", "jun",
	"jul", "ago", "set", "out", "nov", "dez",
}

// ComputeTotals sums positive amounts into Income, absolute negative amounts
// into Expense, and derives Balance.
func ComputeTotals(txs []Transaction) Totals {
	t := Totals{Income: decimal.Zero, Expense: decimal.Zero, Balance: decimal.Zero}
	for _, tx := range txs {
		if tx.Amount.IsPositive() {
			t.Income = t.Income.Add(tx.Amount)
		} else if tx.Amount.IsNegative() {
			t.Expense = t.Expense.Add(tx.Amount.Abs())
		}
	}
	t.Balance = t.Income.Sub(t.Expense)
	return t
}

// ComputeCategorySums partitions the absolute amount of every transaction
// across the known categories. Transactions with an empty or dangling category
// reference land in a synthetic uncategorized bucket; a dangling reference is
// never an error. The result is sorted by value descending; ties keep the
// original category order.
func ComputeCategorySums(txs []Transaction, cats []Category) []CategorySum {
	sums := make([]CategorySum, 0, len(cats)+1)
	index := make(map[string]int, len(cats)+1)
	for _, c := range cats {
		index[c.ID] = len(sums)
		sums = append(sums, CategorySum{ID: c.ID, Name: c.Name, Color: c.Color, Value: decimal.Zero})
	}

	for _, tx := range txs {
		cid := tx.CategoryID
		i, ok := index[cid]
		if !ok {
			// Empty or dangling reference: accumulate under the synthetic bucket.
			i, ok = index[UncategorizedID]
			if !ok {
				i = len(sums)
				index[UncategorizedID] = i
				sums = append(sums, CategorySum{
					ID:    UncategorizedID,
					Name:  UncategorizedName,
					Color: UncategorizedColor,
					Value: decimal.Zero,
				})
			}
		}
		sums[i].Value = sums[i].Value.Add(tx.Amount.Abs())
	}

	sort.SliceStable(sums, func(a, b int) bool {
		return sums[a].Value.GreaterThan(sums[b].Value)
	})
	return sums
}

// ComputeMonthlySeries builds monthCount consecutive calendar-month buckets
// ending at now's month, oldest first. Transactions outside the window are
// silently excluded.
func ComputeMonthlySeries(txs []Transaction, monthCount int, now time.Time) []MonthBucket {
	if monthCount <= 0 {
		return nil
	}

	buckets := make([]MonthBucket, 0, monthCount)
	index := make(map[int]int, monthCount)
	for i := monthCount - 1; i >= 0; i-- {
		// time.Date normalizes out-of-range months, so year rollover is free.
		d := time.Date(now.Year(), now.Month()-time.Month(i), 1, 0, 0, 0, 0, time.UTC)
		index[d.Year()*12+int(d.Month())] = len(buckets)
		buckets = append(buckets, MonthBucket{
			Label:   monthShortNames[d.Month()-1],
			Year:    d.Year(),
			Month:   d.Month(),
			Income:  decimal.Zero,
			Expense: decimal.Zero,
		})
	}

	for _, tx := range txs {
		i, ok := index[tx.Date.Year()*12+int(tx.Date.Month())]
		if !ok {
			continue
		}
		if tx.Amount.IsPositive() {
			buckets[i].Income = buckets[i].Income.Add(tx.Amount)
		} else if tx.Amount.IsNegative() {
			buckets[i].Expense = buckets[i].Expense.Add(tx.Amount.Abs())
		}
	}
	return buckets
}
