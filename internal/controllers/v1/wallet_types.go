package v1

import (
	"fmt"

	"github.com/finance-tracker/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// WalletEditable represents all user configurable parameters
type WalletEditable struct {
	Name     string `json:"name" example:"Checking"` // Name of the wallet, unique across all wallets
	Currency string `json:"currency" example:"EUR"`  // ISO 4217 currency code
}

// WalletCreate is the body for wallet creation. The balance can only be
// set on creation, afterwards it is changed by transactions.
type WalletCreate struct {
	WalletEditable
	Balance decimal.Decimal `json:"balance" example:"1250.5"` // Current balance
}

func (editable WalletCreate) model() models.Wallet {
	return models.Wallet{
		Name:     editable.Name,
		Currency: editable.Currency,
		Balance:  editable.Balance,
	}
}

type WalletLinks struct {
	Self         string `json:"self" example:"https://example.com/api/v1/wallets/b0b7a2a5-3f9c-4e3b-9d54-d2c3e2e1f111"`                     // The wallet itself
	Transactions string `json:"transactions" example:"https://example.com/api/v1/transactions?wallet=b0b7a2a5-3f9c-4e3b-9d54-d2c3e2e1f111"` // Transactions of the wallet
}

type Wallet struct {
	models.DefaultModel
	WalletEditable
	Links WalletLinks `json:"links"`

	Balance      decimal.Decimal `json:"balance" example:"1250.5"`    // Current balance
	InitialValue decimal.Decimal `json:"initialValue" example:"1000"` // Balance before any of the recorded transactions
}

func newWallet(c *gin.Context, model models.Wallet, initialValue decimal.Decimal) Wallet {
	url := baseURL(c)

	return Wallet{
		DefaultModel: model.DefaultModel,
		WalletEditable: WalletEditable{
			Name:     model.Name,
			Currency: model.Currency,
		},
		Links: WalletLinks{
			Self:         fmt.Sprintf("%s/v1/wallets/%s", url, model.ID),
			Transactions: fmt.Sprintf("%s/v1/transactions?wallet=%s", url, model.ID),
		},
		Balance:      model.Balance,
		InitialValue: initialValue,
	}
}

type WalletListResponse struct {
	Data       []Wallet    `json:"data"`                                                          // List of wallets
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type WalletCreateResponse struct {
	Data  []WalletResponse `json:"data"`                                                          // List of the created wallets or their respective error
	Error *string          `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (r *WalletCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, WalletResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type WalletResponse struct {
	Data  *Wallet `json:"data"`                                                          // Data for the wallet
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type WalletQueryFilter struct {
	Currency string `form:"currency"`                   // By currency
	Search   string `form:"search" filterField:"false"` // By string in the name
	Offset   uint   `form:"offset" filterField:"false"` // The offset of the first wallet returned. Defaults to 0.
	Limit    int    `form:"limit" filterField:"false"`  // Maximum number of wallets to return. Defaults to 50.
}
