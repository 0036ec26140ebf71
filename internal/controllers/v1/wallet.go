package v1

import (
	"net/http"
	"strings"

	"github.com/finance-tracker/backend/internal/httputil"
	"github.com/finance-tracker/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

// RegisterWalletRoutes registers the routes for wallets with
// the RouterGroup that is passed.
func RegisterWalletRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsWalletList)
		r.GET("", GetWallets)
		r.POST("", CreateWallets)
	}

	// Wallet with ID
	{
		r.OPTIONS("/:id", OptionsWalletDetail)
		r.GET("/:id", GetWallet)
		r.PATCH("/:id", UpdateWallet)
		r.DELETE("/:id", DeleteWallet)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Wallets
// @Success		204
// @Router			/v1/wallets [options]
func OptionsWalletList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Wallets
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		URIID	true	"ID of the wallet"
// @Router			/v1/wallets/{id} [options]
func OptionsWalletDetail(c *gin.Context) {
	id, ok := bindURI(c)
	if !ok {
		return
	}

	err := models.DB.First(&models.Wallet{}, id).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Create wallets
// @Description	Creates new wallets
// @Tags			Wallets
// @Produce		json
// @Success		201		{object}	WalletCreateResponse
// @Failure		400		{object}	WalletCreateResponse
// @Failure		500		{object}	WalletCreateResponse
// @Param			wallets	body		[]WalletCreate	true	"Wallets"
// @Router			/v1/wallets [post]
func CreateWallets(c *gin.Context) {
	var editables []WalletCreate

	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), WalletCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := WalletCreateResponse{}

	for _, editable := range editables {
		wallet := editable.model()

		err = models.DB.Create(&wallet).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		// A new wallet has no transactions
		data := newWallet(c, wallet, wallet.Balance)
		r.Data = append(r.Data, WalletResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Get wallets
// @Description	Returns a list of wallets with their initial values
// @Tags			Wallets
// @Produce		json
// @Success		200			{object}	WalletListResponse
// @Failure		400			{object}	WalletListResponse
// @Failure		500			{object}	WalletListResponse
// @Param			currency	query		string	false	"Filter by currency"
// @Param			search		query		string	false	"Search for this text in the name"
// @Param			offset		query		uint	false	"The offset of the first wallet returned. Defaults to 0."
// @Param			limit		query		int		false	"Maximum number of wallets to return. Defaults to 50."
// @Router			/v1/wallets [get]
func GetWallets(c *gin.Context) {
	var filter WalletQueryFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		s := err.Error()
		c.JSON(status(err), WalletListResponse{
			Error: &s,
		})
		return
	}

	_, setFields := httputil.GetURLFields(c.Request.URL, filter)

	q := models.DB.Order("name ASC")

	if slices.Contains(setFields, "Currency") {
		q = q.Where(&models.Wallet{Currency: strings.ToUpper(strings.TrimSpace(filter.Currency))}, "Currency")
	}

	if slices.Contains(setFields, "Search") && filter.Search != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(filter.Search)+"%")
	}

	limit := listLimit(setFields, filter.Limit)
	q = q.Offset(int(filter.Offset)).Limit(limit)

	var wallets []models.Wallet
	err := q.Find(&wallets).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), WalletListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), WalletListResponse{
			Error: &s,
		})
		return
	}

	valuations, err := ledgerService().WalletValuations(c.Request.Context())
	if err != nil {
		s := err.Error()
		c.JSON(status(err), WalletListResponse{
			Error: &s,
		})
		return
	}

	initialValues := make(map[uuid.UUID]decimal.Decimal, len(valuations))
	for _, v := range valuations {
		initialValues[v.Wallet.ID] = v.InitialValue
	}

	data := make([]Wallet, 0, len(wallets))
	for _, wallet := range wallets {
		data = append(data, newWallet(c, wallet, initialValues[wallet.ID]))
	}

	c.JSON(http.StatusOK, WalletListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get wallet
// @Description	Returns a specific wallet with its initial value
// @Tags			Wallets
// @Produce		json
// @Success		200	{object}	WalletResponse
// @Failure		400	{object}	WalletResponse
// @Failure		404	{object}	WalletResponse
// @Failure		500	{object}	WalletResponse
// @Param			id	path		URIID	true	"ID of the wallet"
// @Router			/v1/wallets/{id} [get]
func GetWallet(c *gin.Context) {
	id, ok := bindURI(c)
	if !ok {
		return
	}

	var wallet models.Wallet
	err := models.DB.First(&wallet, id).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), WalletResponse{
			Error: &s,
		})
		return
	}

	initialValue, err := ledgerService().InitialValue(c.Request.Context(), wallet)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), WalletResponse{
			Error: &s,
		})
		return
	}

	data := newWallet(c, wallet, initialValue)
	c.JSON(http.StatusOK, WalletResponse{Data: &data})
}

// @Summary		Update wallet
// @Description	Updates the name or currency of a wallet. The balance is changed by transactions only.
// @Tags			Wallets
// @Accept			json
// @Produce		json
// @Success		200		{object}	WalletResponse
// @Failure		400		{object}	WalletResponse
// @Failure		404		{object}	WalletResponse
// @Failure		500		{object}	WalletResponse
// @Param			id		path		URIID			true	"ID of the wallet"
// @Param			wallet	body		WalletEditable	true	"Wallet"
// @Router			/v1/wallets/{id} [patch]
func UpdateWallet(c *gin.Context) {
	id, ok := bindURI(c)
	if !ok {
		return
	}

	var wallet models.Wallet
	err := models.DB.First(&wallet, id).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), WalletResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, WalletEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), WalletResponse{
			Error: &s,
		})
		return
	}

	var data WalletEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), WalletResponse{
			Error: &s,
		})
		return
	}

	if len(updateFields) > 0 {
		if slices.Contains(updateFields, any("Name")) {
			wallet.Name = data.Name
		}
		if slices.Contains(updateFields, any("Currency")) {
			wallet.Currency = data.Currency
		}

		err = models.DB.Model(&wallet).Select("", updateFields...).Updates(&wallet).Error
		if err != nil {
			s := err.Error()
			c.JSON(status(err), WalletResponse{
				Error: &s,
			})
			return
		}
	}

	initialValue, err := ledgerService().InitialValue(c.Request.Context(), wallet)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), WalletResponse{
			Error: &s,
		})
		return
	}

	r := newWallet(c, wallet, initialValue)
	c.JSON(http.StatusOK, WalletResponse{Data: &r})
}

// @Summary		Delete wallet
// @Description	Deletes a wallet. Wallets with transactions cannot be deleted.
// @Tags			Wallets
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ID of the wallet"
// @Router			/v1/wallets/{id} [delete]
func DeleteWallet(c *gin.Context) {
	id, ok := bindURI(c)
	if !ok {
		return
	}

	var wallet models.Wallet
	err := models.DB.First(&wallet, id).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&wallet).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
