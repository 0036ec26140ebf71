package v1

import (
	"fmt"
	"time"

	"github.com/finance-tracker/backend/internal/ledger"
	ez_uuid "github.com/finance-tracker/backend/internal/uuid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionEditable is a transaction as entered by a user. The category
// can be given by ID or as a free-text label.
type TransactionEditable struct {
	Description  string                 `json:"description" example:"Dinner at Luigi's"`                   // Description of the transaction
	Amount       decimal.Decimal        `json:"amount" example:"90"`                                       // Amount, must be greater than zero
	Type         ledger.TransactionType `json:"type" example:"EXPENSE"`                                    // INCOME or EXPENSE
	Date         time.Time              `json:"date" example:"2024-03-01T19:30:00Z"`                       // Date of the transaction. Defaults to now.
	WalletID     uuid.UUID              `json:"walletId" example:"b0b7a2a5-3f9c-4e3b-9d54-d2c3e2e1f111"`   // ID of the wallet
	UserID       uuid.UUID              `json:"userId" example:"c1ae2a3a-5f8d-4ea7-9a35-7c3e2a7fd6f5"`     // ID of the user that paid
	CategoryID   *uuid.UUID             `json:"categoryId" example:"3b1ea324-d438-4419-882a-2fc91d71772f"` // ID of an existing category
	Category     string                 `json:"category" example:"Food"`                                   // Category label, used if no category ID is set
	SubCategory  string                 `json:"subCategory" example:"Restaurants"`                         // Subcategory label, takes precedence over the category label
	GroupID      *uuid.UUID             `json:"groupId" example:"4e743e94-6a4b-44d6-aba5-d77c87103ff7"`    // ID of the group the expense is shared in
	SplitUserIDs []uuid.UUID            `json:"splitUserIds"`                                              // IDs of the group members that share the expense
}

func (editable TransactionEditable) draft() ledger.Draft {
	return ledger.Draft{
		Description:  editable.Description,
		Amount:       editable.Amount,
		Type:         editable.Type,
		Date:         editable.Date,
		WalletID:     editable.WalletID,
		UserID:       editable.UserID,
		CategoryID:   editable.CategoryID,
		Category:     editable.Category,
		SubCategory:  editable.SubCategory,
		GroupID:      editable.GroupID,
		SplitUserIDs: editable.SplitUserIDs,
	}
}

type TransactionLinks struct {
	Self   string `json:"self" example:"https://example.com/api/v1/transactions/9fe3a6a4-3d38-4a8a-a4b0-5a1e6a33cc01"` // The transaction itself
	Wallet string `json:"wallet" example:"https://example.com/api/v1/wallets/b0b7a2a5-3f9c-4e3b-9d54-d2c3e2e1f111"`    // The wallet of the transaction
}

// Split is the share of a group expense one member owes.
type Split struct {
	UserID uuid.UUID       `json:"userId" example:"c1ae2a3a-5f8d-4ea7-9a35-7c3e2a7fd6f5"` // ID of the member
	Amount decimal.Decimal `json:"amount" example:"30"`                                   // Exact share
}

type Transaction struct {
	ID          uuid.UUID              `json:"id" example:"9fe3a6a4-3d38-4a8a-a4b0-5a1e6a33cc01"`
	Description string                 `json:"description" example:"Dinner at Luigi's"`
	Amount      decimal.Decimal        `json:"amount" example:"90"`
	Type        ledger.TransactionType `json:"type" example:"EXPENSE"`
	Date        time.Time              `json:"date" example:"2024-03-01T19:30:00Z"`
	WalletID    uuid.UUID              `json:"walletId" example:"b0b7a2a5-3f9c-4e3b-9d54-d2c3e2e1f111"`
	UserID      uuid.UUID              `json:"userId" example:"c1ae2a3a-5f8d-4ea7-9a35-7c3e2a7fd6f5"`
	CategoryID  *uuid.UUID             `json:"categoryId" example:"3b1ea324-d438-4419-882a-2fc91d71772f"`
	GroupID     *uuid.UUID             `json:"groupId" example:"4e743e94-6a4b-44d6-aba5-d77c87103ff7"`
	Splits      []Split                `json:"splits"` // Shares of the members for group expenses, empty otherwise
	Links       TransactionLinks       `json:"links"`
}

func newTransaction(c *gin.Context, t ledger.Transaction) Transaction {
	url := baseURL(c)

	transaction := Transaction{
		ID:          t.ID,
		Description: t.Description,
		Amount:      t.Amount,
		Type:        t.Type,
		Date:        t.Date,
		WalletID:    t.WalletID,
		UserID:      t.UserID,
		CategoryID:  t.CategoryID,
		GroupID:     t.GroupID,
		Splits:      make([]Split, 0, len(t.SplitUserIDs)),
		Links: TransactionLinks{
			Self:   fmt.Sprintf("%s/v1/transactions/%s", url, t.ID),
			Wallet: fmt.Sprintf("%s/v1/wallets/%s", url, t.WalletID),
		},
	}

	for _, share := range t.OwedShares() {
		transaction.Splits = append(transaction.Splits, Split(share))
	}

	return transaction
}

type TransactionListResponse struct {
	Data       []Transaction `json:"data"`                                                          // List of transactions
	Error      *string       `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination   `json:"pagination"`                                                    // Pagination information
}

// newTransactionList returns the page of transactions selected by offset
// and limit.
func newTransactionList(c *gin.Context, transactions []ledger.Transaction, offset uint, limit int) TransactionListResponse {
	selected := page(transactions, offset, limit)

	data := make([]Transaction, 0, len(selected))
	for _, t := range selected {
		data = append(data, newTransaction(c, t))
	}

	return TransactionListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  int64(len(transactions)),
			Offset: offset,
			Limit:  limit,
		},
	}
}

type TransactionResponse struct {
	Data  *Transaction `json:"data"`                                                           // Data for the transaction
	Error *string      `json:"error" example:"the wallet balance is too low for this expense"` // The error, if any occurred
}

type TransactionQueryFilter struct {
	Search   string                 `form:"search" filterField:"false"`   // Case-insensitive substring of the description
	Category ez_uuid.UUID           `form:"category" filterField:"false"` // By ID of the category
	Wallet   ez_uuid.UUID           `form:"wallet" filterField:"false"`   // By ID of the wallet
	Type     ledger.TransactionType `form:"type" filterField:"false"`     // INCOME, EXPENSE or ALL
	Pattern  string                 `form:"pattern" filterField:"false"`  // Case-insensitive pattern for the description, "*" matches any text
	Offset   uint                   `form:"offset" filterField:"false"`   // The offset of the first transaction returned. Defaults to 0.
	Limit    int                    `form:"limit" filterField:"false"`    // Maximum number of transactions to return. Defaults to 50.
}

func (f TransactionQueryFilter) filter() (ledger.Filter, error) {
	if f.Type != "" && f.Type != ledger.TypeAll && !f.Type.Valid() {
		return ledger.Filter{}, errTransactionTypeInvalid
	}

	return ledger.Filter{
		Search:     f.Search,
		CategoryID: optionalID(f.Category.UUID),
		WalletID:   optionalID(f.Wallet.UUID),
		Type:       f.Type,
		Pattern:    f.Pattern,
	}, nil
}

// SplitPreview is the per-person share of an expense while it is entered.
type SplitPreview struct {
	Amount       decimal.Decimal `json:"amount" example:"100"`     // The amount that is split
	Participants int             `json:"participants" example:"3"` // Number of distinct participants
	Share        decimal.Decimal `json:"share" example:"33.33"`    // Share per participant, rounded to two decimal places
	Shares       []Split         `json:"shares"`                   // Exact shares as they would be booked
}

type SplitPreviewResponse struct {
	Data  *SplitPreview `json:"data"`                                                                             // The preview
	Error *string       `json:"error" example:"the amount query parameter must be a non-negative decimal number"` // The error, if any occurred
}

func newSplitPreview(amount decimal.Decimal, participants []uuid.UUID) SplitPreview {
	shares := ledger.Shares(amount, participants)

	preview := SplitPreview{
		Amount:       amount,
		Participants: len(shares),
		Share:        ledger.SplitPreview(amount, participants),
		Shares:       make([]Split, 0, len(shares)),
	}

	for _, share := range shares {
		preview.Shares = append(preview.Shares, Split(share))
	}

	return preview
}
