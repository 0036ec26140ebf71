package models

import (
	"errors"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")
	ErrReference        = errors.New("a referenced resource does not exist or the resource is still in use")

	ErrUserNameEmpty      = errors.New("the name of a user must not be empty")
	ErrUserEmailEmpty     = errors.New("the email of a user must not be empty")
	ErrUserEmailNotUnique = errors.New("a user with this email already exists")

	ErrWalletNameEmpty     = errors.New("the name of a wallet must not be empty")
	ErrWalletNameNotUnique = errors.New("the wallet name must be unique")
	ErrInvalidCurrency     = errors.New("the currency must be a valid ISO 4217 code")

	ErrCategoryNameEmpty     = errors.New("the name of a category must not be empty")
	ErrCategoryNameNotUnique = errors.New("the category name must be unique")

	ErrCategoryRuleMatchEmpty = errors.New("the match of a category rule must not be empty")
	ErrCategoryRuleLabelEmpty = errors.New("the label of a category rule must not be empty")

	ErrGroupNameEmpty = errors.New("the name of a group must not be empty")
)
