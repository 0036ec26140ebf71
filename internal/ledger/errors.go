package ledger

import (
	"errors"
	"fmt"
)

// ErrValidation is wrapped by every error that rejects user input before
// anything is written.
var ErrValidation = errors.New("validation failed")

var (
	ErrInvalidAmount     = fmt.Errorf("%w: the amount must be greater than zero", ErrValidation)
	ErrAmountPrecision   = fmt.Errorf("%w: the amount must not have more than %d decimal places", ErrValidation, Precision)
	ErrInvalidType       = fmt.Errorf("%w: the type must be one of INCOME, EXPENSE", ErrValidation)
	ErrCategoryRequired  = fmt.Errorf("%w: an expense needs a category", ErrValidation)
	ErrSplitRequired     = fmt.Errorf("%w: a group expense must be split among at least one member", ErrValidation)
	ErrSplitNotMember    = fmt.Errorf("%w: every split participant must be a member of the group", ErrValidation)
	ErrGroupIncome       = fmt.Errorf("%w: only expenses can be booked to a group", ErrValidation)
	ErrSplitWithoutGroup = fmt.Errorf("%w: split participants can only be set for group expenses", ErrValidation)
	ErrWalletRequired    = fmt.Errorf("%w: a wallet is required", ErrValidation)
)
