package v1

import (
	"net/http"

	"github.com/finance-tracker/backend/internal/httputil"
	"github.com/finance-tracker/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// RegisterGroupRoutes registers the routes for groups with
// the RouterGroup that is passed.
func RegisterGroupRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsGroupList)
		r.GET("", GetGroups)
		r.POST("", CreateGroups)
	}

	// Group with ID
	{
		r.OPTIONS("/:id", OptionsGroupDetail)
		r.GET("/:id", GetGroup)
		r.DELETE("/:id", DeleteGroup)
	}

	// Calculated and nested resources of a group
	{
		r.OPTIONS("/:id/members", OptionsGroupMembers)
		r.GET("/:id/members", GetGroupMembers)
		r.POST("/:id/members", AddGroupMember)
		r.OPTIONS("/:id/transactions", OptionsGroupTransactions)
		r.GET("/:id/transactions", GetGroupTransactions)
		r.OPTIONS("/:id/balances", OptionsGroupBalances)
		r.GET("/:id/balances", GetGroupBalances)
	}
}

// preloadMembers preloads the members of groups ordered by name.
func preloadMembers(db *gorm.DB) *gorm.DB {
	return db.Preload("Members", func(db *gorm.DB) *gorm.DB {
		return db.Order("users.name ASC, users.id ASC")
	})
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Groups
// @Success		204
// @Router			/v1/groups [options]
func OptionsGroupList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// groupOptions checks that the group exists and then writes the
// allowed verbs.
func groupOptions(c *gin.Context, options gin.HandlerFunc) {
	id, ok := bindURI(c)
	if !ok {
		return
	}

	err := models.DB.First(&models.Group{}, id).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	options(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Groups
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		URIID	true	"ID of the group"
// @Router			/v1/groups/{id} [options]
func OptionsGroupDetail(c *gin.Context) {
	groupOptions(c, httputil.OptionsGetDelete)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Groups
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		URIID	true	"ID of the group"
// @Router			/v1/groups/{id}/members [options]
func OptionsGroupMembers(c *gin.Context) {
	groupOptions(c, httputil.OptionsGetPost)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Groups
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		URIID	true	"ID of the group"
// @Router			/v1/groups/{id}/transactions [options]
func OptionsGroupTransactions(c *gin.Context) {
	groupOptions(c, httputil.OptionsGet)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Groups
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		URIID	true	"ID of the group"
// @Router			/v1/groups/{id}/balances [options]
func OptionsGroupBalances(c *gin.Context) {
	groupOptions(c, httputil.OptionsGet)
}

// @Summary		Create groups
// @Description	Creates new groups. The creator is always a member of the group.
// @Tags			Groups
// @Produce		json
// @Success		201		{object}	GroupCreateResponse
// @Failure		400		{object}	GroupCreateResponse
// @Failure		404		{object}	GroupCreateResponse
// @Failure		500		{object}	GroupCreateResponse
// @Param			groups	body		[]GroupCreate	true	"Groups"
// @Router			/v1/groups [post]
func CreateGroups(c *gin.Context) {
	var editables []GroupCreate

	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), GroupCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := GroupCreateResponse{}

	for _, editable := range editables {
		group, err := ledgerService().CreateGroup(c.Request.Context(), editable.model(), editable.MemberIDs)
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newGroup(c, group)
		r.Data = append(r.Data, GroupResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Get groups
// @Description	Returns a list of groups
// @Tags			Groups
// @Produce		json
// @Success		200		{object}	GroupListResponse
// @Failure		400		{object}	GroupListResponse
// @Failure		500		{object}	GroupListResponse
// @Param			member	query		string	false	"Filter by ID of a member"
// @Param			offset	query		uint	false	"The offset of the first group returned. Defaults to 0."
// @Param			limit	query		int		false	"Maximum number of groups to return. Defaults to 50."
// @Router			/v1/groups [get]
func GetGroups(c *gin.Context) {
	var filter GroupQueryFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		s := err.Error()
		c.JSON(status(err), GroupListResponse{
			Error: &s,
		})
		return
	}

	_, setFields := httputil.GetURLFields(c.Request.URL, filter)

	// Counting and loading need separate statements since members
	// are preloaded
	filtered := func() *gorm.DB {
		q := models.DB.Model(&models.Group{})
		if slices.Contains(setFields, "Member") && filter.Member.UUID != uuid.Nil {
			q = q.Where("id IN (?)", models.DB.Table("group_members").Select("group_id").Where("user_id = ?", filter.Member.UUID))
		}
		return q
	}

	limit := listLimit(setFields, filter.Limit)

	var groups []models.Group
	err := preloadMembers(filtered()).
		Order("name ASC, created_at ASC").
		Offset(int(filter.Offset)).
		Limit(limit).
		Find(&groups).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GroupListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = filtered().Count(&count).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GroupListResponse{
			Error: &s,
		})
		return
	}

	data := make([]Group, 0, len(groups))
	for _, group := range groups {
		data = append(data, newGroup(c, group))
	}

	c.JSON(http.StatusOK, GroupListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get group
// @Description	Returns a specific group with its members
// @Tags			Groups
// @Produce		json
// @Success		200	{object}	GroupResponse
// @Failure		400	{object}	GroupResponse
// @Failure		404	{object}	GroupResponse
// @Failure		500	{object}	GroupResponse
// @Param			id	path		URIID	true	"ID of the group"
// @Router			/v1/groups/{id} [get]
func GetGroup(c *gin.Context) {
	id, ok := bindURI(c)
	if !ok {
		return
	}

	group, err := ledgerService().Group(c.Request.Context(), id)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GroupResponse{
			Error: &s,
		})
		return
	}

	data := newGroup(c, group)
	c.JSON(http.StatusOK, GroupResponse{Data: &data})
}

// @Summary		Delete group
// @Description	Deletes a group. Groups with transactions cannot be deleted.
// @Tags			Groups
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ID of the group"
// @Router			/v1/groups/{id} [delete]
func DeleteGroup(c *gin.Context) {
	id, ok := bindURI(c)
	if !ok {
		return
	}

	var group models.Group
	err := models.DB.First(&group, id).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.GeneralError(models.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&group).Association("Members").Clear()
		if err != nil {
			return err
		}

		return tx.Delete(&group).Error
	}))
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// @Summary		Get group members
// @Description	Returns the members of a group ordered by name
// @Tags			Groups
// @Produce		json
// @Success		200	{object}	UserListResponse
// @Failure		400	{object}	UserListResponse
// @Failure		404	{object}	UserListResponse
// @Failure		500	{object}	UserListResponse
// @Param			id	path		URIID	true	"ID of the group"
// @Router			/v1/groups/{id}/members [get]
func GetGroupMembers(c *gin.Context) {
	id, ok := bindURI(c)
	if !ok {
		return
	}

	group, err := ledgerService().Group(c.Request.Context(), id)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), UserListResponse{
			Error: &s,
		})
		return
	}

	data := newGroup(c, group).Members
	c.JSON(http.StatusOK, UserListResponse{
		Data: data,
		Pagination: &Pagination{
			Count: len(data),
			Total: int64(len(data)),
			Limit: len(data),
		},
	})
}

// @Summary		Add group member
// @Description	Adds a user to a group. Adding a user that is already a member does nothing.
// @Tags			Groups
// @Accept			json
// @Produce		json
// @Success		200		{object}	GroupResponse
// @Failure		400		{object}	GroupResponse
// @Failure		404		{object}	GroupResponse
// @Failure		500		{object}	GroupResponse
// @Param			id		path		URIID			true	"ID of the group"
// @Param			member	body		GroupMemberAdd	true	"Member"
// @Router			/v1/groups/{id}/members [post]
func AddGroupMember(c *gin.Context) {
	id, ok := bindURI(c)
	if !ok {
		return
	}

	var data GroupMemberAdd
	err := httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GroupResponse{
			Error: &s,
		})
		return
	}

	group, err := ledgerService().AddMember(c.Request.Context(), id, data.UserID)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GroupResponse{
			Error: &s,
		})
		return
	}

	r := newGroup(c, group)
	c.JSON(http.StatusOK, GroupResponse{Data: &r})
}

// @Summary		Get group transactions
// @Description	Returns the transactions of a group, newest first
// @Tags			Groups
// @Produce		json
// @Success		200		{object}	TransactionListResponse
// @Failure		400		{object}	TransactionListResponse
// @Failure		404		{object}	TransactionListResponse
// @Failure		500		{object}	TransactionListResponse
// @Param			id		path		URIID	true	"ID of the group"
// @Param			offset	query		uint	false	"The offset of the first transaction returned. Defaults to 0."
// @Param			limit	query		int		false	"Maximum number of transactions to return. Defaults to 50."
// @Router			/v1/groups/{id}/transactions [get]
func GetGroupTransactions(c *gin.Context) {
	id, ok := bindURI(c)
	if !ok {
		return
	}

	var filter struct {
		Offset uint `form:"offset" filterField:"false"`
		Limit  int  `form:"limit" filterField:"false"`
	}
	if err := c.ShouldBindQuery(&filter); err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionListResponse{
			Error: &s,
		})
		return
	}
	_, setFields := httputil.GetURLFields(c.Request.URL, filter)

	transactions, err := ledgerService().GroupTransactions(c.Request.Context(), id)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionListResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, newTransactionList(c, transactions, filter.Offset, listLimit(setFields, filter.Limit)))
}

// @Summary		Get group balances
// @Description	Returns the balance of every member of a group, reconciled from the group's expenses, and the payments that settle them
// @Tags			Groups
// @Produce		json
// @Success		200	{object}	GroupBalancesResponse
// @Failure		400	{object}	GroupBalancesResponse
// @Failure		404	{object}	GroupBalancesResponse
// @Failure		500	{object}	GroupBalancesResponse
// @Param			id	path		URIID	true	"ID of the group"
// @Router			/v1/groups/{id}/balances [get]
func GetGroupBalances(c *gin.Context) {
	id, ok := bindURI(c)
	if !ok {
		return
	}

	balances, err := ledgerService().GroupBalances(c.Request.Context(), id)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GroupBalancesResponse{
			Error: &s,
		})
		return
	}

	data := newGroupBalances(balances.Balances, balances.Settlements)
	c.JSON(http.StatusOK, GroupBalancesResponse{Data: &data})
}
