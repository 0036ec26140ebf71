package ledger

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

// Reconcile derives every member's net balance from a group's transaction
// history.
//
// The payer of an expense is credited with the full amount, every split
// participant is debited with their booked share, see OwedShares. Payers and
// participants that are not in members are ignored, their part of the
// amount is not redistributed. The result has one entry per member, in the
// order of members.
func Reconcile(transactions []Transaction, members []Member) []MemberBalance {
	index := make(map[uuid.UUID]int, len(members))
	balances := make([]MemberBalance, 0, len(members))

	for _, m := range members {
		if _, ok := index[m.ID]; ok {
			continue
		}

		index[m.ID] = len(balances)
		balances = append(balances, MemberBalance{
			MemberID: m.ID,
			Name:     m.Name,
			Paid:     decimal.Zero,
			Owed:     decimal.Zero,
		})
	}

	for _, t := range transactions {
		if t.Type != Expense {
			continue
		}

		if i, ok := index[t.UserID]; ok {
			balances[i].Paid = balances[i].Paid.Add(t.Amount)
		}

		for _, s := range t.OwedShares() {
			if i, ok := index[s.UserID]; ok {
				balances[i].Owed = balances[i].Owed.Add(s.Amount)
			}
		}
	}

	for i := range balances {
		balances[i].Balance = balances[i].Paid.Sub(balances[i].Owed)
	}

	return balances
}

// minSettlement is the smallest payment SettleUp suggests.
var minSettlement = decimal.New(1, -previewPlaces)

// SettleUp suggests payments that bring all balances to zero.
//
// Debtors are matched with creditors greedily, largest amounts first. Ties
// keep the order of balances. Amounts are rounded to two decimal places and
// payments below one cent are dropped.
func SettleUp(balances []MemberBalance) []Settlement {
	type party struct {
		id     uuid.UUID
		amount decimal.Decimal
	}

	var debtors, creditors []party
	for _, b := range balances {
		switch b.Balance.Sign() {
		case -1:
			debtors = append(debtors, party{id: b.MemberID, amount: b.Balance.Neg()})
		case 1:
			creditors = append(creditors, party{id: b.MemberID, amount: b.Balance})
		}
	}

	largestFirst := func(a, b party) int {
		return b.amount.Cmp(a.amount)
	}
	slices.SortStableFunc(debtors, largestFirst)
	slices.SortStableFunc(creditors, largestFirst)

	settlements := make([]Settlement, 0)
	for i, j := 0, 0; i < len(debtors) && j < len(creditors); {
		pay := decimal.Min(debtors[i].amount, creditors[j].amount)

		if rounded := pay.Round(previewPlaces); rounded.GreaterThanOrEqual(minSettlement) {
			settlements = append(settlements, Settlement{
				From:   debtors[i].id,
				To:     creditors[j].id,
				Amount: rounded,
			})
		}

		debtors[i].amount = debtors[i].amount.Sub(pay)
		creditors[j].amount = creditors[j].amount.Sub(pay)

		if debtors[i].amount.IsZero() {
			i++
		}
		if creditors[j].amount.IsZero() {
			j++
		}
	}

	return settlements
}
