package v1

import (
	"fmt"

	"github.com/finance-tracker/backend/internal/ledger"
	"github.com/finance-tracker/backend/internal/models"
	ez_uuid "github.com/finance-tracker/backend/internal/uuid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// GroupEditable represents all user configurable parameters
type GroupEditable struct {
	Name        string    `json:"name" example:"Flat share"`                                  // Name of the group
	Description string    `json:"description" example:"Rent and groceries"`                   // Description of the group
	CreatedByID uuid.UUID `json:"createdById" example:"c1ae2a3a-5f8d-4ea7-9a35-7c3e2a7fd6f5"` // ID of the user that created the group. Always a member.
}

// GroupCreate is the body for group creation.
type GroupCreate struct {
	GroupEditable
	MemberIDs []uuid.UUID `json:"memberIds"` // IDs of the users that are members in addition to the creator
}

func (editable GroupCreate) model() models.Group {
	return models.Group{
		Name:        editable.Name,
		Description: editable.Description,
		CreatedByID: editable.CreatedByID,
	}
}

type GroupLinks struct {
	Self         string `json:"self" example:"https://example.com/api/v1/groups/4e743e94-6a4b-44d6-aba5-d77c87103ff7"`                      // The group itself
	Members      string `json:"members" example:"https://example.com/api/v1/groups/4e743e94-6a4b-44d6-aba5-d77c87103ff7/members"`           // Members of the group
	Transactions string `json:"transactions" example:"https://example.com/api/v1/groups/4e743e94-6a4b-44d6-aba5-d77c87103ff7/transactions"` // Transactions of the group
	Balances     string `json:"balances" example:"https://example.com/api/v1/groups/4e743e94-6a4b-44d6-aba5-d77c87103ff7/balances"`         // Balances of the members
}

type Group struct {
	models.DefaultModel
	GroupEditable
	Links GroupLinks `json:"links"`

	Members []User `json:"members"` // Members of the group, ordered by name
}

func newGroup(c *gin.Context, model models.Group) Group {
	url := fmt.Sprintf("%s/v1/groups/%s", baseURL(c), model.ID)

	group := Group{
		DefaultModel: model.DefaultModel,
		GroupEditable: GroupEditable{
			Name:        model.Name,
			Description: model.Description,
			CreatedByID: model.CreatedByID,
		},
		Links: GroupLinks{
			Self:         url,
			Members:      url + "/members",
			Transactions: url + "/transactions",
			Balances:     url + "/balances",
		},
		Members: make([]User, 0, len(model.Members)),
	}

	for _, member := range model.Members {
		group.Members = append(group.Members, newUser(c, member))
	}

	return group
}

type GroupListResponse struct {
	Data       []Group     `json:"data"`                                                          // List of groups
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type GroupCreateResponse struct {
	Data  []GroupResponse `json:"data"`                                                          // List of the created groups or their respective error
	Error *string         `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (r *GroupCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, GroupResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type GroupResponse struct {
	Data  *Group  `json:"data"`                                                          // Data for the group
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type GroupQueryFilter struct {
	Member ez_uuid.UUID `form:"member" filterField:"false"` // By ID of a member
	Offset uint         `form:"offset" filterField:"false"` // The offset of the first group returned. Defaults to 0.
	Limit  int          `form:"limit" filterField:"false"`  // Maximum number of groups to return. Defaults to 50.
}

// GroupMemberAdd is the body for adding a member to a group.
type GroupMemberAdd struct {
	UserID uuid.UUID `json:"userId" example:"c1ae2a3a-5f8d-4ea7-9a35-7c3e2a7fd6f5"` // ID of the user to add
}

// MemberBalance is the balance of a group member. A positive balance means
// the member is owed money.
type MemberBalance struct {
	UserID  uuid.UUID       `json:"userId" example:"c1ae2a3a-5f8d-4ea7-9a35-7c3e2a7fd6f5"` // ID of the member
	Name    string          `json:"name" example:"Alice"`                                  // Name of the member
	Paid    decimal.Decimal `json:"paid" example:"90"`                                     // Sum of the group expenses the member paid
	Owed    decimal.Decimal `json:"owed" example:"30"`                                     // Sum of the member's shares of group expenses
	Balance decimal.Decimal `json:"balance" example:"60"`                                  // Paid minus owed
}

// Settlement is a suggested payment that evens out balances.
type Settlement struct {
	From   uuid.UUID       `json:"from" example:"c1ae2a3a-5f8d-4ea7-9a35-7c3e2a7fd6f5"` // ID of the member that pays
	To     uuid.UUID       `json:"to" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"`   // ID of the member that receives
	Amount decimal.Decimal `json:"amount" example:"15"`                                 // Amount to pay
}

type GroupBalances struct {
	Balances    []MemberBalance `json:"balances"`    // Balances of all members
	Settlements []Settlement    `json:"settlements"` // Payments that settle all balances
}

type GroupBalancesResponse struct {
	Data  *GroupBalances `json:"data"`                                                          // Balances of the group
	Error *string        `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func newGroupBalances(balances []ledger.MemberBalance, settlements []ledger.Settlement) GroupBalances {
	g := GroupBalances{
		Balances:    make([]MemberBalance, 0, len(balances)),
		Settlements: make([]Settlement, 0, len(settlements)),
	}

	for _, b := range balances {
		g.Balances = append(g.Balances, MemberBalance{
			UserID:  b.MemberID,
			Name:    b.Name,
			Paid:    b.Paid,
			Owed:    b.Owed,
			Balance: b.Balance,
		})
	}

	for _, s := range settlements {
		g.Settlements = append(g.Settlements, Settlement(s))
	}

	return g
}
