package ledger

import (
	"strings"

	"github.com/google/uuid"
	"github.com/ryanuber/go-glob"
)

// TypeAll disables filtering by transaction type.
const TypeAll TransactionType = "ALL"

// Filter selects transactions. All set criteria must match, unset criteria
// match everything.
type Filter struct {
	Search     string          // Case-insensitive substring of the description
	CategoryID *uuid.UUID      // Exact category
	WalletID   *uuid.UUID      // Exact wallet
	Type       TransactionType // INCOME, EXPENSE, or ALL / empty for both
	Pattern    string          // Case-insensitive glob on the description, "*" is the only wildcard
}

// Match reports whether t satisfies every criterion of the filter.
func (f Filter) Match(t Transaction) bool {
	if f.Search != "" && !strings.Contains(fold(t.Description), fold(f.Search)) {
		return false
	}

	if f.CategoryID != nil && (t.CategoryID == nil || *t.CategoryID != *f.CategoryID) {
		return false
	}

	if f.WalletID != nil && t.WalletID != *f.WalletID {
		return false
	}

	if f.Type != "" && f.Type != TypeAll && t.Type != f.Type {
		return false
	}

	if f.Pattern != "" && !glob.Glob(fold(f.Pattern), fold(t.Description)) {
		return false
	}

	return true
}

// Apply returns the transactions that match the filter, in their original
// order.
func (f Filter) Apply(transactions []Transaction) []Transaction {
	out := make([]Transaction, 0, len(transactions))
	for _, t := range transactions {
		if f.Match(t) {
			out = append(out, t)
		}
	}

	return out
}
