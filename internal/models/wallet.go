package models

import (
	"strings"

	"github.com/finance-tracker/backend/internal/ledger"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"gorm.io/gorm"
)

// Wallet holds money in a single currency. The balance is only ever changed
// by booking or deleting transactions.
type Wallet struct {
	DefaultModel
	Name     string          `gorm:"uniqueIndex"`
	Currency string          `gorm:"size:3"`
	Balance  decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
}

func (w *Wallet) BeforeSave(_ *gorm.DB) error {
	w.Name = strings.TrimSpace(w.Name)
	if w.Name == "" {
		return ErrWalletNameEmpty
	}

	unit, err := currency.ParseISO(strings.ToUpper(strings.TrimSpace(w.Currency)))
	if err != nil {
		return ErrInvalidCurrency
	}
	w.Currency = unit.String()

	return nil
}

func (w Wallet) Ledger() ledger.Wallet {
	return ledger.Wallet{
		ID:       w.ID,
		Name:     w.Name,
		Currency: w.Currency,
		Balance:  w.Balance,
	}
}
