package ledger

import (
	"github.com/shopspring/decimal"
)

// Effect is the change a transaction causes on its wallet's balance.
func Effect(t Transaction) decimal.Decimal {
	switch t.Type {
	case Income:
		return t.Amount
	case Expense:
		return t.Amount.Neg()
	default:
		return decimal.Zero
	}
}

// InitialValue back-derives the balance the wallet had before any of its
// recorded transactions: the current balance minus all income plus all
// expenses of transactions booked on this wallet.
func InitialValue(wallet Wallet, transactions []Transaction) decimal.Decimal {
	value := wallet.Balance
	for _, t := range transactions {
		if t.WalletID != wallet.ID {
			continue
		}
		value = value.Sub(Effect(t))
	}

	return value
}

// ValueWallets computes the initial value for every wallet.
func ValueWallets(wallets []Wallet, transactions []Transaction) []WalletValuation {
	valuations := make([]WalletValuation, 0, len(wallets))
	for _, w := range wallets {
		valuations = append(valuations, WalletValuation{
			Wallet:       w,
			InitialValue: InitialValue(w, transactions),
		})
	}

	return valuations
}

// TotalBalance sums the current balances of all wallets.
func TotalBalance(wallets []Wallet) decimal.Decimal {
	total := decimal.Zero
	for _, w := range wallets {
		total = total.Add(w.Balance)
	}

	return total
}

// Summarize totals income and expenses.
func Summarize(transactions []Transaction) Summary {
	s := Summary{Income: decimal.Zero, Expense: decimal.Zero}
	for _, t := range transactions {
		switch t.Type {
		case Income:
			s.Income = s.Income.Add(t.Amount)
		case Expense:
			s.Expense = s.Expense.Add(t.Amount)
		}
	}
	s.Net = s.Income.Sub(s.Expense)

	return s
}
