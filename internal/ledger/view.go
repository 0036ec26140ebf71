package ledger

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Snapshot is the complete state views are computed from. It is fetched
// fresh for every view.
type Snapshot struct {
	Wallets      []Wallet
	Categories   []Category
	Transactions []Transaction
}

// View is everything the dashboard shows.
type View struct {
	Wallets         []WalletValuation
	TotalBalance    decimal.Decimal
	Summary         Summary       // over all transactions
	FilteredSummary Summary       // over Transactions only
	Categories      []Category    // categories referenced by any transaction
	Transactions    []Transaction // transactions matching the filter
}

// RecomputeView derives the dashboard view from a snapshot. Nothing is
// cached, every call recomputes all values.
func RecomputeView(s Snapshot, f Filter) View {
	filtered := f.Apply(s.Transactions)

	return View{
		Wallets:         ValueWallets(s.Wallets, s.Transactions),
		TotalBalance:    TotalBalance(s.Wallets),
		Summary:         Summarize(s.Transactions),
		FilteredSummary: Summarize(filtered),
		Categories:      UsedCategories(s.Transactions, s.Categories),
		Transactions:    filtered,
	}
}

// UsedCategories returns the categories that at least one transaction is
// booked on, in the order they first appear in transactions.
func UsedCategories(transactions []Transaction, categories []Category) []Category {
	byID := make(map[uuid.UUID]Category, len(categories))
	for _, c := range categories {
		byID[c.ID] = c
	}

	seen := make(map[uuid.UUID]struct{})
	used := make([]Category, 0)
	for _, t := range transactions {
		if t.CategoryID == nil {
			continue
		}

		if _, ok := seen[*t.CategoryID]; ok {
			continue
		}

		c, ok := byID[*t.CategoryID]
		if !ok {
			continue
		}

		seen[c.ID] = struct{}{}
		used = append(used, c)
	}

	return used
}
