package v1

import (
	"net/http"

	"github.com/finance-tracker/backend/internal/httputil"
	"github.com/finance-tracker/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RegisterTransactionRoutes registers the routes for transactions with
// the RouterGroup that is passed.
func RegisterTransactionRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsTransactionList)
		r.GET("", GetTransactions)
		r.POST("", CreateTransaction)
	}

	// Split preview
	{
		r.OPTIONS("/split-preview", OptionsSplitPreview)
		r.GET("/split-preview", GetSplitPreview)
	}

	// Transaction with ID
	{
		r.OPTIONS("/:id", OptionsTransactionDetail)
		r.GET("/:id", GetTransaction)
		r.DELETE("/:id", DeleteTransaction)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Transactions
// @Success		204
// @Router			/v1/transactions [options]
func OptionsTransactionList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Transactions
// @Success		204
// @Router			/v1/transactions/split-preview [options]
func OptionsSplitPreview(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Transactions
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ID of the transaction"
// @Router			/v1/transactions/{id} [options]
func OptionsTransactionDetail(c *gin.Context) {
	id, ok := bindURI(c)
	if !ok {
		return
	}

	err := models.DB.First(&models.Transaction{}, id).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetDelete(c)
}

// @Summary		Create transaction
// @Description	Books a transaction and updates the balance of its wallet.
// @Description	Expenses without a category ID are booked on the category matching the subcategory or category label,
// @Description	which is created if it does not exist. Without a label, the first matching category rule is used.
// @Tags			Transactions
// @Accept			json
// @Produce		json
// @Success		201			{object}	TransactionResponse
// @Failure		400			{object}	TransactionResponse
// @Failure		404			{object}	TransactionResponse
// @Failure		500			{object}	TransactionResponse
// @Param			transaction	body		TransactionEditable	true	"Transaction"
// @Router			/v1/transactions [post]
func CreateTransaction(c *gin.Context) {
	var editable TransactionEditable
	err := httputil.BindData(c, &editable)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionResponse{
			Error: &s,
		})
		return
	}

	transaction, err := ledgerService().CreateTransaction(c.Request.Context(), editable.draft())
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionResponse{
			Error: &s,
		})
		return
	}

	data := newTransaction(c, transaction.Ledger())
	c.JSON(http.StatusCreated, TransactionResponse{Data: &data})
}

// @Summary		Get transactions
// @Description	Returns the transactions matching all set filters, newest first
// @Tags			Transactions
// @Produce		json
// @Success		200			{object}	TransactionListResponse
// @Failure		400			{object}	TransactionListResponse
// @Failure		500			{object}	TransactionListResponse
// @Param			search		query		string	false	"Filter by text contained in the description, case-insensitive"
// @Param			category	query		string	false	"Filter by category ID"
// @Param			wallet		query		string	false	"Filter by wallet ID"
// @Param			type		query		string	false	"Filter by type: INCOME, EXPENSE or ALL"
// @Param			pattern		query		string	false	"Filter by a pattern for the description. '*' matches any text."
// @Param			offset		query		uint	false	"The offset of the first transaction returned. Defaults to 0."
// @Param			limit		query		int		false	"Maximum number of transactions to return. Defaults to 50."
// @Router			/v1/transactions [get]
func GetTransactions(c *gin.Context) {
	var query TransactionQueryFilter
	if err := c.ShouldBindQuery(&query); err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionListResponse{
			Error: &s,
		})
		return
	}

	_, setFields := httputil.GetURLFields(c.Request.URL, query)

	filter, err := query.filter()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionListResponse{
			Error: &s,
		})
		return
	}

	transactions, err := ledgerService().Transactions(c.Request.Context(), filter)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionListResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, newTransactionList(c, transactions, query.Offset, listLimit(setFields, query.Limit)))
}

// @Summary		Get transaction
// @Description	Returns a specific transaction
// @Tags			Transactions
// @Produce		json
// @Success		200	{object}	TransactionResponse
// @Failure		400	{object}	TransactionResponse
// @Failure		404	{object}	TransactionResponse
// @Failure		500	{object}	TransactionResponse
// @Param			id	path		URIID	true	"ID of the transaction"
// @Router			/v1/transactions/{id} [get]
func GetTransaction(c *gin.Context) {
	id, ok := bindURI(c)
	if !ok {
		return
	}

	var transaction models.Transaction
	err := models.WithSplits(models.DB).First(&transaction, id).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionResponse{
			Error: &s,
		})
		return
	}

	data := newTransaction(c, transaction.Ledger())
	c.JSON(http.StatusOK, TransactionResponse{Data: &data})
}

// @Summary		Delete transaction
// @Description	Deletes a transaction and reverts its effect on the wallet balance
// @Tags			Transactions
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ID of the transaction"
// @Router			/v1/transactions/{id} [delete]
func DeleteTransaction(c *gin.Context) {
	id, ok := bindURI(c)
	if !ok {
		return
	}

	err := ledgerService().DeleteTransaction(c.Request.Context(), id)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// @Summary		Preview split
// @Description	Returns the share per participant for an amount. Duplicate participants are counted once.
// @Tags			Transactions
// @Produce		json
// @Success		200				{object}	SplitPreviewResponse
// @Failure		400				{object}	SplitPreviewResponse
// @Param			amount			query		string		true	"Amount to split"
// @Param			participants	query		[]string	false	"IDs of the participants"
// @Router			/v1/transactions/split-preview [get]
func GetSplitPreview(c *gin.Context) {
	amount, err := decimal.NewFromString(c.Query("amount"))
	if err != nil || amount.IsNegative() {
		s := errAmountInvalid.Error()
		c.JSON(http.StatusBadRequest, SplitPreviewResponse{
			Error: &s,
		})
		return
	}

	var participants []uuid.UUID
	for _, p := range c.QueryArray("participants") {
		id, err := uuid.Parse(p)
		if err != nil {
			s := httputil.ErrInvalidUUID.Error()
			c.JSON(http.StatusBadRequest, SplitPreviewResponse{
				Error: &s,
			})
			return
		}
		participants = append(participants, id)
	}

	data := newSplitPreview(amount, participants)
	c.JSON(http.StatusOK, SplitPreviewResponse{Data: &data})
}
