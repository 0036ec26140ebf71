package v1_test

import (
	"net/http"
	"testing"

	v1 "github.com/finance-tracker/backend/internal/controllers/v1"
	"github.com/finance-tracker/backend/internal/test"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func memberNames(group v1.Group) []string {
	names := make([]string, 0, len(group.Members))
	for _, m := range group.Members {
		names = append(names, m.Name)
	}
	return names
}

func (suite *TestSuiteStandard) TestGroupsCreate() {
	carol := createTestUser(suite.T(), v1.UserEditable{Name: "Carol"})
	alice := createTestUser(suite.T(), v1.UserEditable{Name: "Alice"})
	bob := createTestUser(suite.T(), v1.UserEditable{Name: "Bob"})

	group := createTestGroup(suite.T(), v1.GroupCreate{
		GroupEditable: v1.GroupEditable{Name: "Trip", CreatedByID: carol.Data.ID},
		MemberIDs:     []uuid.UUID{bob.Data.ID, alice.Data.ID, bob.Data.ID, carol.Data.ID},
	})

	suite.Assert().Equal("Trip", group.Data.Name)
	suite.Assert().Equal([]string{"Alice", "Bob", "Carol"}, memberNames(*group.Data), "members are unique and ordered by name")
	suite.Assert().Equal(group.Data.Links.Self+"/balances", group.Data.Links.Balances)
}

func (suite *TestSuiteStandard) TestGroupsCreateFails() {
	alice := createTestUser(suite.T(), v1.UserEditable{Name: "Alice"})

	tests := []struct {
		name   string
		group  v1.GroupCreate
		status int
	}{
		{"No name", v1.GroupCreate{GroupEditable: v1.GroupEditable{Name: " ", CreatedByID: alice.Data.ID}}, http.StatusBadRequest},
		{"No creator", v1.GroupCreate{GroupEditable: v1.GroupEditable{Name: "Flat"}}, http.StatusBadRequest},
		{"Unknown creator", v1.GroupCreate{GroupEditable: v1.GroupEditable{Name: "Flat", CreatedByID: uuid.New()}}, http.StatusNotFound},
		{"Unknown member", v1.GroupCreate{GroupEditable: v1.GroupEditable{Name: "Flat", CreatedByID: alice.Data.ID}, MemberIDs: []uuid.UUID{uuid.New()}}, http.StatusNotFound},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, "http://example.com/v1/groups", []v1.GroupCreate{tt.group})
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestGroupsList() {
	alice := createTestUser(suite.T(), v1.UserEditable{Name: "Alice"})
	bob := createTestUser(suite.T(), v1.UserEditable{Name: "Bob"})

	_ = createTestGroup(suite.T(), v1.GroupCreate{GroupEditable: v1.GroupEditable{Name: "Holiday", CreatedByID: alice.Data.ID}})
	_ = createTestGroup(suite.T(), v1.GroupCreate{GroupEditable: v1.GroupEditable{Name: "Flat", CreatedByID: bob.Data.ID}, MemberIDs: []uuid.UUID{alice.Data.ID}})

	tests := []struct {
		name  string
		query string
		names []string
	}{
		{"All, ordered by name", "", []string{"Flat", "Holiday"}},
		{"Member", "member=" + bob.Data.ID.String(), []string{"Flat"}},
		{"Limit", "limit=1", []string{"Flat"}},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, "http://example.com/v1/groups?"+tt.query, "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.GroupListResponse
			test.DecodeResponse(t, &r, &response)

			names := make([]string, 0, len(response.Data))
			for _, g := range response.Data {
				names = append(names, g.Name)
			}
			assert.Equal(t, tt.names, names)
		})
	}

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/groups?member="+alice.Data.ID.String(), "")
	var response v1.GroupListResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Require().Len(response.Data, 2)
	suite.Assert().Equal([]string{"Alice", "Bob"}, memberNames(response.Data[0]))
	suite.Assert().Equal(int64(2), response.Pagination.Total)

	r = test.Request(suite.T(), http.MethodGet, "http://example.com/v1/groups?member=NotAUUID", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestGroupsMembers() {
	alice := createTestUser(suite.T(), v1.UserEditable{Name: "Alice"})
	bob := createTestUser(suite.T(), v1.UserEditable{Name: "Bob"})
	group := createTestGroup(suite.T(), v1.GroupCreate{GroupEditable: v1.GroupEditable{CreatedByID: bob.Data.ID}})

	for i := 0; i < 2; i++ {
		r := test.Request(suite.T(), http.MethodPost, group.Data.Links.Members, v1.GroupMemberAdd{UserID: alice.Data.ID})
		test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

		var response v1.GroupResponse
		test.DecodeResponse(suite.T(), &r, &response)
		suite.Assert().Equal([]string{"Alice", "Bob"}, memberNames(*response.Data), "adding a member twice keeps one membership")
	}

	r := test.Request(suite.T(), http.MethodGet, group.Data.Links.Members, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var members v1.UserListResponse
	test.DecodeResponse(suite.T(), &r, &members)
	suite.Require().Len(members.Data, 2)
	suite.Assert().Equal(alice.Data.ID, members.Data[0].ID)

	r = test.Request(suite.T(), http.MethodPost, group.Data.Links.Members, v1.GroupMemberAdd{UserID: uuid.New()})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

	r = test.Request(suite.T(), http.MethodPost, "http://example.com/v1/groups/"+uuid.NewString()+"/members", v1.GroupMemberAdd{UserID: alice.Data.ID})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

// TestGroupsBalances books a 300 expense paid by Alice and shared by Alice,
// Bob and Carol.
func (suite *TestSuiteStandard) TestGroupsBalances() {
	alice := createTestUser(suite.T(), v1.UserEditable{Name: "Alice"})
	bob := createTestUser(suite.T(), v1.UserEditable{Name: "Bob"})
	carol := createTestUser(suite.T(), v1.UserEditable{Name: "Carol"})
	members := []uuid.UUID{alice.Data.ID, bob.Data.ID, carol.Data.ID}

	group := createTestGroup(suite.T(), v1.GroupCreate{
		GroupEditable: v1.GroupEditable{CreatedByID: alice.Data.ID},
		MemberIDs:     members,
	})
	groupID := group.Data.ID

	transaction := createTestTransaction(suite.T(), v1.TransactionEditable{
		Description:  "Cabin",
		Amount:       decimal.NewFromInt(300),
		UserID:       alice.Data.ID,
		Category:     "Travel",
		GroupID:      &groupID,
		SplitUserIDs: members,
	})
	suite.Require().Len(transaction.Data.Splits, 3)
	for _, split := range transaction.Data.Splits {
		suite.Assert().True(decimal.NewFromInt(100).Equal(split.Amount), "split is %s", split.Amount)
	}

	r := test.Request(suite.T(), http.MethodGet, group.Data.Links.Balances, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.GroupBalancesResponse
	test.DecodeResponse(suite.T(), &r, &response)

	expected := []struct {
		id      uuid.UUID
		paid    int64
		owed    int64
		balance int64
	}{
		{alice.Data.ID, 300, 100, 200},
		{bob.Data.ID, 0, 100, -100},
		{carol.Data.ID, 0, 100, -100},
	}

	suite.Require().Len(response.Data.Balances, len(expected))
	for i, e := range expected {
		b := response.Data.Balances[i]
		suite.Assert().Equal(e.id, b.UserID)
		suite.Assert().True(decimal.NewFromInt(e.paid).Equal(b.Paid), "paid of %s is %s", b.Name, b.Paid)
		suite.Assert().True(decimal.NewFromInt(e.owed).Equal(b.Owed), "owed of %s is %s", b.Name, b.Owed)
		suite.Assert().True(decimal.NewFromInt(e.balance).Equal(b.Balance), "balance of %s is %s", b.Name, b.Balance)
	}

	suite.Require().Len(response.Data.Settlements, 2)
	for _, s := range response.Data.Settlements {
		suite.Assert().Equal(alice.Data.ID, s.To)
		suite.Assert().True(decimal.NewFromInt(100).Equal(s.Amount))
	}

	r = test.Request(suite.T(), http.MethodGet, group.Data.Links.Transactions, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var transactions v1.TransactionListResponse
	test.DecodeResponse(suite.T(), &r, &transactions)
	suite.Require().Len(transactions.Data, 1)
	suite.Assert().Equal(transaction.Data.ID, transactions.Data[0].ID)
}

func (suite *TestSuiteStandard) TestGroupsBalancesEmpty() {
	group := createTestGroup(suite.T(), v1.GroupCreate{})

	r := test.Request(suite.T(), http.MethodGet, group.Data.Links.Balances, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.GroupBalancesResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Require().Len(response.Data.Balances, 1)
	suite.Assert().True(response.Data.Balances[0].Balance.IsZero())
	suite.Assert().Empty(response.Data.Settlements)

	r = test.Request(suite.T(), http.MethodGet, "http://example.com/v1/groups/"+uuid.NewString()+"/balances", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestGroupsOptions() {
	group := createTestGroup(suite.T(), v1.GroupCreate{})

	tests := []struct {
		path  string
		allow string
	}{
		{group.Data.Links.Self, "OPTIONS, GET, DELETE"},
		{group.Data.Links.Members, "OPTIONS, GET, POST"},
		{group.Data.Links.Transactions, "OPTIONS, GET"},
		{group.Data.Links.Balances, "OPTIONS, GET"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.path, func(t *testing.T) {
			r := test.Request(t, http.MethodOptions, tt.path, "")
			test.AssertHTTPStatus(t, &r, http.StatusNoContent)
			assert.Equal(t, tt.allow, r.Header().Get("allow"))
		})
	}
}

func (suite *TestSuiteStandard) TestGroupsDelete() {
	alice := createTestUser(suite.T(), v1.UserEditable{Name: "Alice"})
	group := createTestGroup(suite.T(), v1.GroupCreate{GroupEditable: v1.GroupEditable{CreatedByID: alice.Data.ID}})
	groupID := group.Data.ID

	transaction := createTestTransaction(suite.T(), v1.TransactionEditable{
		Amount:       decimal.NewFromInt(10),
		UserID:       alice.Data.ID,
		Category:     "Food",
		GroupID:      &groupID,
		SplitUserIDs: []uuid.UUID{alice.Data.ID},
	})

	r := test.Request(suite.T(), http.MethodDelete, group.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	r = test.Request(suite.T(), http.MethodGet, group.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.GroupResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Len(response.Data.Members, 1, "members are kept when deleting the group fails")

	r = test.Request(suite.T(), http.MethodDelete, transaction.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodDelete, group.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, group.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestGroupsDatabaseError() {
	tests := []struct {
		name   string
		path   string
		method string
		body   any
	}{
		{"GET Collection", "", http.MethodGet, ""},
		{"POST Collection", "", http.MethodPost, []v1.GroupCreate{{GroupEditable: v1.GroupEditable{Name: "Flat", CreatedByID: uuid.New()}}}},
		{"GET Single", "/" + uuid.NewString(), http.MethodGet, ""},
		{"DELETE Single", "/" + uuid.NewString(), http.MethodDelete, ""},
		{"GET Balances", "/" + uuid.NewString() + "/balances", http.MethodGet, ""},
		{"GET Transactions", "/" + uuid.NewString() + "/transactions", http.MethodGet, ""},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			suite.CloseDB()

			r := test.Request(t, tt.method, "http://example.com/v1/groups"+tt.path, tt.body)
			test.AssertHTTPStatus(t, &r, http.StatusInternalServerError)
		})
	}
}
