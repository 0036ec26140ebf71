package ledger

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Precision is the number of decimal places amounts are stored with.
const Precision = 8

// previewPlaces is the number of decimal places of a displayed share.
const previewPlaces = 2

// SplitPreview returns the per-person share that is shown while an expense
// is being entered: the amount divided by the number of distinct
// participants, rounded half-up to two decimal places.
//
// It returns zero when nobody participates.
func SplitPreview(amount decimal.Decimal, participants []uuid.UUID) decimal.Decimal {
	n := len(distinct(participants))
	if n == 0 {
		return decimal.Zero
	}

	return amount.DivRound(decimal.NewFromInt(int64(n)), previewPlaces)
}

// Shares allocates amount among the distinct participants so that the
// shares add up to amount exactly.
//
// Every participant gets amount / n truncated to Precision decimal places.
// The remaining smallest units go to the first participants in the given
// order, one each.
func Shares(amount decimal.Decimal, participants []uuid.UUID) []Share {
	ids := distinct(participants)
	if len(ids) == 0 {
		return nil
	}

	units := amount.Shift(Precision)
	q, r := units.QuoRem(decimal.NewFromInt(int64(len(ids))), 0)

	unit := decimal.New(int64(r.Sign()), 0)
	extra := r.Abs().IntPart()

	shares := make([]Share, len(ids))
	allocated := decimal.Zero
	for i := len(ids) - 1; i > 0; i-- {
		s := q
		if int64(i) < extra {
			s = s.Add(unit)
		}
		s = s.Shift(-Precision)

		shares[i] = Share{UserID: ids[i], Amount: s}
		allocated = allocated.Add(s)
	}

	// The first share absorbs whatever is left, including digits beyond
	// Precision, so the sum is always exact.
	shares[0] = Share{UserID: ids[0], Amount: amount.Sub(allocated)}

	return shares
}

// distinct returns ids without duplicates, keeping the first occurrence.
func distinct(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))

	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}

	return out
}

// OwedShares returns the booked shares of t. Without booked shares, they are
// computed from the amount and SplitUserIDs.
func (t Transaction) OwedShares() []Share {
	if len(t.Splits) > 0 {
		return t.Splits
	}

	return Shares(t.Amount, t.SplitUserIDs)
}
