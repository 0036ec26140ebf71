package v1

import (
	"net/http"

	"github.com/finance-tracker/backend/internal/httputil"
	"github.com/finance-tracker/backend/internal/ledger"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// Summary totals a set of transactions.
type Summary struct {
	Income  decimal.Decimal `json:"income" example:"2500"`  // Sum of all income
	Expense decimal.Decimal `json:"expense" example:"1320"` // Sum of all expenses
	Net     decimal.Decimal `json:"net" example:"1180"`     // Income minus expenses
}

// DashboardWallet is a wallet as shown on the dashboard.
type DashboardWallet struct {
	ID           string          `json:"id" example:"b0b7a2a5-3f9c-4e3b-9d54-d2c3e2e1f111"`
	Name         string          `json:"name" example:"Checking"`
	Currency     string          `json:"currency" example:"EUR"`
	Balance      decimal.Decimal `json:"balance" example:"1250.5"`
	InitialValue decimal.Decimal `json:"initialValue" example:"1000"` // Balance before any of the recorded transactions
}

type DashboardCategory struct {
	ID   string                 `json:"id" example:"3b1ea324-d438-4419-882a-2fc91d71772f"`
	Name string                 `json:"name" example:"Groceries"`
	Type ledger.TransactionType `json:"type" example:"EXPENSE"`
}

// Dashboard is the complete view model of the dashboard. It is recomputed
// for every request.
type Dashboard struct {
	Wallets         []DashboardWallet   `json:"wallets"`                     // All wallets, ordered by name
	TotalBalance    decimal.Decimal     `json:"totalBalance" example:"4200"` // Sum of all wallet balances
	Summary         Summary             `json:"summary"`                     // Totals over all transactions
	FilteredSummary Summary             `json:"filteredSummary"`             // Totals over the transactions matching the filter
	Categories      []DashboardCategory `json:"categories"`                  // Categories that have transactions
	Transactions    []Transaction       `json:"transactions"`                // Transactions matching the filter, newest first
}

type DashboardResponse struct {
	Data  *Dashboard `json:"data"`                                                                                              // The dashboard
	Error *string    `json:"error" example:"the specified transaction type is invalid, it must be one of INCOME, EXPENSE, ALL"` // The error, if any occurred
}

func newDashboard(c *gin.Context, view ledger.View) Dashboard {
	d := Dashboard{
		Wallets:         make([]DashboardWallet, 0, len(view.Wallets)),
		TotalBalance:    view.TotalBalance,
		Summary:         Summary(view.Summary),
		FilteredSummary: Summary(view.FilteredSummary),
		Categories:      make([]DashboardCategory, 0, len(view.Categories)),
		Transactions:    make([]Transaction, 0, len(view.Transactions)),
	}

	for _, v := range view.Wallets {
		d.Wallets = append(d.Wallets, DashboardWallet{
			ID:           v.Wallet.ID.String(),
			Name:         v.Wallet.Name,
			Currency:     v.Wallet.Currency,
			Balance:      v.Wallet.Balance,
			InitialValue: v.InitialValue,
		})
	}

	for _, category := range view.Categories {
		d.Categories = append(d.Categories, DashboardCategory{
			ID:   category.ID.String(),
			Name: category.Name,
			Type: category.Type,
		})
	}

	for _, t := range view.Transactions {
		d.Transactions = append(d.Transactions, newTransaction(c, t))
	}

	return d
}

// RegisterDashboardRoutes registers the routes for the dashboard with
// the RouterGroup that is passed.
func RegisterDashboardRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsDashboard)
	r.GET("", GetDashboard)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Dashboard
// @Success		204
// @Router			/v1/dashboard [options]
func OptionsDashboard(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Get dashboard
// @Description	Returns wallets with their initial values, totals and the transactions matching the filters.
// @Description	All values are recomputed from the stored data on every request.
// @Tags			Dashboard
// @Produce		json
// @Success		200			{object}	DashboardResponse
// @Failure		400			{object}	DashboardResponse
// @Failure		500			{object}	DashboardResponse
// @Param			search		query		string	false	"Filter by text contained in the description, case-insensitive"
// @Param			category	query		string	false	"Filter by category ID"
// @Param			wallet		query		string	false	"Filter by wallet ID"
// @Param			type		query		string	false	"Filter by type: INCOME, EXPENSE or ALL"
// @Param			pattern		query		string	false	"Filter by a pattern for the description. '*' matches any text."
// @Router			/v1/dashboard [get]
func GetDashboard(c *gin.Context) {
	var query TransactionQueryFilter
	if err := c.ShouldBindQuery(&query); err != nil {
		s := err.Error()
		c.JSON(status(err), DashboardResponse{
			Error: &s,
		})
		return
	}

	filter, err := query.filter()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DashboardResponse{
			Error: &s,
		})
		return
	}

	view, err := ledgerService().Dashboard(c.Request.Context(), filter)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DashboardResponse{
			Error: &s,
		})
		return
	}

	data := newDashboard(c, view)
	c.JSON(http.StatusOK, DashboardResponse{Data: &data})
}
