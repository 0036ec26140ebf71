package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType is the direction of a transaction relative to its wallet.
type TransactionType string

const (
	Income  TransactionType = "INCOME"
	Expense TransactionType = "EXPENSE"
)

// Valid reports whether t is one of the known transaction types.
func (t TransactionType) Valid() bool {
	return t == Income || t == Expense
}

type Category struct {
	ID   uuid.UUID
	Name string
	Type TransactionType
}

// Wallet is a named store of money. Balance is the current balance.
type Wallet struct {
	ID       uuid.UUID
	Name     string
	Currency string
	Balance  decimal.Decimal
}

// Transaction is a single income or expense entry.
//
// UserID is the payer. For group expenses, SplitUserIDs lists the members
// that share the amount. Splits holds the shares as they were booked, it is
// empty for transactions that have not been persisted yet.
type Transaction struct {
	ID           uuid.UUID
	Description  string
	Amount       decimal.Decimal
	Type         TransactionType
	Date         time.Time
	WalletID     uuid.UUID
	CategoryID   *uuid.UUID
	GroupID      *uuid.UUID
	UserID       uuid.UUID
	SplitUserIDs []uuid.UUID
	Splits       []Share
}

type Group struct {
	ID          uuid.UUID
	Name        string
	Description string
	Members     []uuid.UUID
}

// HasMember reports whether id is a member of the group.
func (g Group) HasMember(id uuid.UUID) bool {
	for _, m := range g.Members {
		if m == id {
			return true
		}
	}
	return false
}

type Member struct {
	ID    uuid.UUID
	Name  string
	Email string
}

// MemberBalance is derived from a transaction history and never stored.
type MemberBalance struct {
	MemberID uuid.UUID
	Name     string
	Paid     decimal.Decimal
	Owed     decimal.Decimal
	Balance  decimal.Decimal
}

// Share is one participant's part of a split expense.
type Share struct {
	UserID uuid.UUID
	Amount decimal.Decimal
}

// Settlement is a suggested payment from a debtor to a creditor.
type Settlement struct {
	From   uuid.UUID
	To     uuid.UUID
	Amount decimal.Decimal
}

// Summary totals a set of transactions.
type Summary struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
	Net     decimal.Decimal
}

// WalletValuation pairs a wallet with the balance it had before any of its
// recorded transactions.
type WalletValuation struct {
	Wallet       Wallet
	InitialValue decimal.Decimal
}
