package ledger

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Draft is a transaction as entered by a user, before its category is
// resolved.
type Draft struct {
	Description  string
	Amount       decimal.Decimal
	Type         TransactionType
	Date         time.Time
	WalletID     uuid.UUID
	UserID       uuid.UUID
	CategoryID   *uuid.UUID
	Category     string
	SubCategory  string
	GroupID      *uuid.UUID
	SplitUserIDs []uuid.UUID
}

// Label is the text used to resolve the category. A subcategory takes
// precedence over the category.
func (d Draft) Label() string {
	if s := strings.TrimSpace(d.SubCategory); s != "" {
		return s
	}
	return strings.TrimSpace(d.Category)
}

// NeedsCategory reports whether the draft still needs a category label to
// be resolved.
func (d Draft) NeedsCategory() bool {
	return d.Type == Expense && d.CategoryID == nil
}

// Transaction converts the draft into a transaction booked on categoryID.
func (d Draft) Transaction(categoryID *uuid.UUID) Transaction {
	t := Transaction{
		Description: d.Description,
		Amount:      d.Amount,
		Type:        d.Type,
		Date:        d.Date,
		WalletID:    d.WalletID,
		CategoryID:  categoryID,
		GroupID:     d.GroupID,
		UserID:      d.UserID,
	}

	if d.GroupID != nil && d.Type == Expense {
		t.SplitUserIDs = distinct(d.SplitUserIDs)
	}

	return t
}

// ValidateDraft checks a draft before anything is persisted. group must be
// the group referenced by the draft, or nil if it does not reference one.
func ValidateDraft(d Draft, group *Group) error {
	if !d.Type.Valid() {
		return ErrInvalidType
	}

	if !d.Amount.IsPositive() {
		return ErrInvalidAmount
	}

	if !d.Amount.Equal(d.Amount.Truncate(Precision)) {
		return ErrAmountPrecision
	}

	if d.WalletID == uuid.Nil {
		return ErrWalletRequired
	}

	if d.NeedsCategory() && d.Label() == "" {
		return ErrCategoryRequired
	}

	if d.GroupID == nil {
		if len(d.SplitUserIDs) > 0 {
			return ErrSplitWithoutGroup
		}
		return nil
	}

	if d.Type != Expense {
		return ErrGroupIncome
	}

	if len(d.SplitUserIDs) == 0 {
		return ErrSplitRequired
	}

	if group != nil {
		for _, id := range d.SplitUserIDs {
			if !group.HasMember(id) {
				return ErrSplitNotMember
			}
		}
	}

	return nil
}
