package v1

import (
	"net/http"

	"github.com/finance-tracker/backend/internal/httputil"
	"github.com/finance-tracker/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all v1 routes with the RouterGroup that is passed.
func RegisterRoutes(r *gin.RouterGroup) {
	r.GET("", Get)
	r.DELETE("", Cleanup)
	r.OPTIONS("", Options)

	RegisterUserRoutes(r.Group("/users"))
	RegisterWalletRoutes(r.Group("/wallets"))
	RegisterCategoryRoutes(r.Group("/categories"))
	RegisterCategoryRuleRoutes(r.Group("/category-rules"))
	RegisterGroupRoutes(r.Group("/groups"))
	RegisterTransactionRoutes(r.Group("/transactions"))
	RegisterDashboardRoutes(r.Group("/dashboard"))
}

type Response struct {
	Links Links `json:"links"` // Links for the v1 API
}

type Links struct {
	Users         string `json:"users" example:"https://example.com/api/v1/users"`                  // URL of user list endpoint
	Wallets       string `json:"wallets" example:"https://example.com/api/v1/wallets"`              // URL of wallet list endpoint
	Categories    string `json:"categories" example:"https://example.com/api/v1/categories"`        // URL of category list endpoint
	CategoryRules string `json:"categoryRules" example:"https://example.com/api/v1/category-rules"` // URL of category rule list endpoint
	Groups        string `json:"groups" example:"https://example.com/api/v1/groups"`                // URL of group list endpoint
	Transactions  string `json:"transactions" example:"https://example.com/api/v1/transactions"`    // URL of transaction list endpoint
	Dashboard     string `json:"dashboard" example:"https://example.com/api/v1/dashboard"`          // URL of the dashboard endpoint
}

// @Summary		v1 API
// @Description	Returns general information about the v1 API
// @Tags			v1
// @Success		200	{object}	Response
// @Router			/v1 [get]
func Get(c *gin.Context) {
	url := baseURL(c) + "/v1"

	c.JSON(http.StatusOK, Response{
		Links: Links{
			Users:         url + "/users",
			Wallets:       url + "/wallets",
			Categories:    url + "/categories",
			CategoryRules: url + "/category-rules",
			Groups:        url + "/groups",
			Transactions:  url + "/transactions",
			Dashboard:     url + "/dashboard",
		},
	})
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			v1
// @Success		204
// @Router			/v1 [options]
func Options(c *gin.Context) {
	httputil.OptionsGetDelete(c)
}

// @Summary		Delete everything
// @Description	Permanently deletes all resources
// @Tags			v1
// @Success		204
// @Failure		400		{object}	httpError
// @Failure		500		{object}	httpError
// @Param			confirm	query		string	false	"Confirmation to delete all resources. Must have the value 'yes-please-delete-everything'"
// @Router			/v1 [delete]
func Cleanup(c *gin.Context) {
	var params struct {
		Confirm string `form:"confirm"`
	}

	err := c.ShouldBindQuery(&params)
	if err != nil || params.Confirm != "yes-please-delete-everything" {
		c.JSON(http.StatusBadRequest, httpError{
			Error: errCleanupConfirmation.Error(),
		})
		return
	}

	// Foreign keys are checked during cleanup,
	// add new models *before* any of the models
	// they reference
	resources := []any{
		models.ExpenseSplit{},
		models.Transaction{},
		models.CategoryRule{},
		models.Category{},
		models.Wallet{},
	}

	// Use a transaction so that we can roll back if errors happen
	tx := models.DB.Begin()

	for _, model := range resources {
		err := tx.Unscoped().Where("true").Delete(&model).Error
		if err != nil {
			c.JSON(status(err), httpError{
				Error: err.Error(),
			})
			tx.Rollback()
			return
		}
	}

	// Group memberships are not a model of their own
	err = tx.Exec("DELETE FROM group_members").Error
	if err == nil {
		err = tx.Unscoped().Where("true").Delete(&models.Group{}).Error
	}
	if err == nil {
		err = tx.Unscoped().Where("true").Delete(&models.User{}).Error
	}
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		tx.Rollback()
		return
	}

	tx.Commit()
	c.JSON(http.StatusNoContent, nil)
}
