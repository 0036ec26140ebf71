package v1

import (
	"fmt"

	"github.com/finance-tracker/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// UserEditable represents all user configurable parameters
type UserEditable struct {
	Name  string `json:"name" example:"Alice"`              // Name of the user
	Email string `json:"email" example:"alice@example.com"` // Email address, unique across all users
}

func (editable UserEditable) model() models.User {
	return models.User{
		Name:  editable.Name,
		Email: editable.Email,
	}
}

type UserLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/users/c1ae2a3a-5f8d-4ea7-9a35-7c3e2a7fd6f5"` // The user itself
}

type User struct {
	models.DefaultModel
	UserEditable
	Links UserLinks `json:"links"`
}

func newUser(c *gin.Context, model models.User) User {
	return User{
		DefaultModel: model.DefaultModel,
		UserEditable: UserEditable{
			Name:  model.Name,
			Email: model.Email,
		},
		Links: UserLinks{
			Self: fmt.Sprintf("%s/v1/users/%s", baseURL(c), model.ID),
		},
	}
}

type UserListResponse struct {
	Data       []User      `json:"data"`                                                          // List of users
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type UserCreateResponse struct {
	Data  []UserResponse `json:"data"`                                                          // List of the created users or their respective error
	Error *string        `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (r *UserCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, UserResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type UserResponse struct {
	Data  *User   `json:"data"`                                                          // Data for the user
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type UserQueryFilter struct {
	Email  string `form:"email"`                      // By email address
	Search string `form:"search" filterField:"false"` // By string in name or email
	Offset uint   `form:"offset" filterField:"false"` // The offset of the first user returned. Defaults to 0.
	Limit  int    `form:"limit" filterField:"false"`  // Maximum number of users to return. Defaults to 50.
}

func (f UserQueryFilter) model() models.User {
	return models.User{
		Email: f.Email,
	}
}
