package models

import (
	"strings"
	"time"

	"github.com/finance-tracker/backend/internal/ledger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Transaction is a booked income or expense.
type Transaction struct {
	DefaultModel
	Description string
	Amount      decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Type        ledger.TransactionType
	Date        time.Time
	WalletID    uuid.UUID
	Wallet      Wallet `json:"-"`
	CategoryID  *uuid.UUID
	Category    *Category `json:"-"`
	GroupID     *uuid.UUID
	Group       *Group `json:"-"`
	UserID      uuid.UUID
	User        User           `json:"-"`
	Splits      []ExpenseSplit `gorm:"constraint:OnDelete:CASCADE"`
}

// ExpenseSplit is the exact share of a group expense that one member owes.
type ExpenseSplit struct {
	DefaultModel
	TransactionID uuid.UUID
	UserID        uuid.UUID
	User          User            `json:"-"`
	Position      int             // Order of the participant in the split
	Amount        decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
}

// AfterFind updates the timestamps to use UTC as
// timezone, not +0000.
func (t *Transaction) AfterFind(tx *gorm.DB) (err error) {
	err = t.DefaultModel.AfterFind(tx)
	t.Date = t.Date.In(time.UTC)
	return
}

// BeforeSave normalizes the transaction and rejects invalid amounts and
// types.
func (t *Transaction) BeforeSave(_ *gorm.DB) error {
	if t.Date.IsZero() {
		t.Date = time.Now().In(time.UTC)
	} else {
		t.Date = t.Date.In(time.UTC)
	}

	t.Description = strings.TrimSpace(t.Description)

	if t.CategoryID != nil && *t.CategoryID == uuid.Nil {
		t.CategoryID = nil
	}

	if t.GroupID != nil && *t.GroupID == uuid.Nil {
		t.GroupID = nil
	}

	if !t.Type.Valid() {
		return ledger.ErrInvalidType
	}

	if !t.Amount.IsPositive() {
		return ledger.ErrInvalidAmount
	}

	return nil
}

// Ledger converts the transaction. Splits must be preloaded in their
// original order for group expenses.
func (t Transaction) Ledger() ledger.Transaction {
	var splitUserIDs []uuid.UUID
	var splits []ledger.Share
	for _, s := range t.Splits {
		splitUserIDs = append(splitUserIDs, s.UserID)
		splits = append(splits, ledger.Share{UserID: s.UserID, Amount: s.Amount})
	}

	return ledger.Transaction{
		ID:           t.ID,
		Description:  t.Description,
		Amount:       t.Amount,
		Type:         t.Type,
		Date:         t.Date,
		WalletID:     t.WalletID,
		CategoryID:   t.CategoryID,
		GroupID:      t.GroupID,
		UserID:       t.UserID,
		SplitUserIDs: splitUserIDs,
		Splits:       splits,
	}
}

// WithSplits preloads the splits of transactions in their original order.
func WithSplits(db *gorm.DB) *gorm.DB {
	return db.Preload("Splits", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	})
}
