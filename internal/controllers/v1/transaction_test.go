package v1_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	v1 "github.com/finance-tracker/backend/internal/controllers/v1"
	"github.com/finance-tracker/backend/internal/ledger"
	"github.com/finance-tracker/backend/internal/test"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func walletBalance(t *testing.T, wallet v1.WalletResponse) decimal.Decimal {
	r := test.Request(t, http.MethodGet, wallet.Data.Links.Self, "")
	test.AssertHTTPStatus(t, &r, http.StatusOK)

	var response v1.WalletResponse
	test.DecodeResponse(t, &r, &response)

	return response.Data.Balance
}

func (suite *TestSuiteStandard) TestTransactionsCreate() {
	wallet := createTestWallet(suite.T(), v1.WalletCreate{Balance: decimal.NewFromInt(1000)})
	date := time.Date(2024, 3, 1, 19, 30, 0, 0, time.UTC)

	transaction := createTestTransaction(suite.T(), v1.TransactionEditable{
		Description: "Dinner",
		Amount:      decimal.NewFromInt(200),
		Date:        date,
		WalletID:    wallet.Data.ID,
		Category:    "Food",
		SubCategory: "Restaurants",
	})

	suite.Assert().Equal("Dinner", transaction.Data.Description)
	suite.Assert().Equal(ledger.Expense, transaction.Data.Type)
	suite.Assert().True(date.Equal(transaction.Data.Date))
	suite.Assert().Empty(transaction.Data.Splits)
	suite.Assert().Equal(fmt.Sprintf("http://example.com/v1/transactions/%s", transaction.Data.ID), transaction.Data.Links.Self)
	suite.Require().NotNil(transaction.Data.CategoryID)

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/categories/"+transaction.Data.CategoryID.String(), "")
	var category v1.CategoryResponse
	test.DecodeResponse(suite.T(), &r, &category)
	suite.Assert().Equal("Restaurants", category.Data.Name, "the subcategory takes precedence")

	suite.Assert().True(decimal.NewFromInt(800).Equal(walletBalance(suite.T(), wallet)))

	// The same label in a different case reuses the category
	second := createTestTransaction(suite.T(), v1.TransactionEditable{
		Amount:   decimal.NewFromInt(1),
		WalletID: wallet.Data.ID,
		Category: "RESTAURANTS",
	})
	suite.Assert().Equal(*transaction.Data.CategoryID, *second.Data.CategoryID)
}

func (suite *TestSuiteStandard) TestTransactionsCreateIncome() {
	wallet := createTestWallet(suite.T(), v1.WalletCreate{})

	transaction := createTestTransaction(suite.T(), v1.TransactionEditable{
		Amount:   decimal.NewFromInt(2500),
		Type:     ledger.Income,
		WalletID: wallet.Data.ID,
	})

	suite.Assert().Nil(transaction.Data.CategoryID, "income does not need a category")
	suite.Assert().True(decimal.NewFromInt(2500).Equal(walletBalance(suite.T(), wallet)))
}

func (suite *TestSuiteStandard) TestTransactionsCreateFails() {
	wallet := createTestWallet(suite.T(), v1.WalletCreate{Balance: decimal.NewFromInt(10)})
	user := createTestUser(suite.T(), v1.UserEditable{})
	group := createTestGroup(suite.T(), v1.GroupCreate{GroupEditable: v1.GroupEditable{CreatedByID: user.Data.ID}})
	groupID := group.Data.ID
	unknownID := uuid.New()

	tests := []struct {
		name        string
		transaction v1.TransactionEditable
		status      int
	}{
		{"Zero amount", v1.TransactionEditable{Amount: decimal.Zero, Category: "Food"}, http.StatusBadRequest},
		{"Negative amount", v1.TransactionEditable{Amount: decimal.NewFromInt(-5), Category: "Food"}, http.StatusBadRequest},
		{"Too many decimal places", v1.TransactionEditable{Amount: decimal.RequireFromString("0.000000001"), Category: "Food"}, http.StatusBadRequest},
		{"Invalid type", v1.TransactionEditable{Amount: decimal.NewFromInt(1), Type: "TRANSFER", Category: "Food"}, http.StatusBadRequest},
		{"No category", v1.TransactionEditable{Amount: decimal.NewFromInt(1)}, http.StatusBadRequest},
		{"Insufficient funds", v1.TransactionEditable{Amount: decimal.NewFromInt(11), Category: "Food"}, http.StatusBadRequest},
		{"Unknown wallet", v1.TransactionEditable{Amount: decimal.NewFromInt(1), WalletID: unknownID, Category: "Food"}, http.StatusNotFound},
		{"Unknown group", v1.TransactionEditable{Amount: decimal.NewFromInt(1), Category: "Food", GroupID: &unknownID, SplitUserIDs: []uuid.UUID{user.Data.ID}}, http.StatusNotFound},
		{"Split without group", v1.TransactionEditable{Amount: decimal.NewFromInt(1), Category: "Food", SplitUserIDs: []uuid.UUID{user.Data.ID}}, http.StatusBadRequest},
		{"Group without split", v1.TransactionEditable{Amount: decimal.NewFromInt(1), Category: "Food", GroupID: &groupID}, http.StatusBadRequest},
		{"Group income", v1.TransactionEditable{Amount: decimal.NewFromInt(1), Type: ledger.Income, GroupID: &groupID}, http.StatusBadRequest},
		{"Split with non-member", v1.TransactionEditable{Amount: decimal.NewFromInt(1), Category: "Food", GroupID: &groupID, SplitUserIDs: []uuid.UUID{user.Data.ID, unknownID}}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			if tt.transaction.WalletID == uuid.Nil {
				tt.transaction.WalletID = wallet.Data.ID
			}
			tt.transaction.UserID = user.Data.ID

			transaction := createTestTransaction(t, tt.transaction, tt.status)
			assert.NotNil(t, transaction.Error)
			assert.Nil(t, transaction.Data)
		})
	}

	suite.Assert().True(decimal.NewFromInt(10).Equal(walletBalance(suite.T(), wallet)), "failed transactions must not change the balance")

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/transactions", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	r = test.Request(suite.T(), http.MethodPost, "http://example.com/v1/transactions", `{ "amount": [] }`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

// TestTransactionsSplit verifies that the splits of a group expense add up
// to its amount exactly.
func (suite *TestSuiteStandard) TestTransactionsSplit() {
	alice := createTestUser(suite.T(), v1.UserEditable{Name: "Alice"})
	bob := createTestUser(suite.T(), v1.UserEditable{Name: "Bob"})
	carol := createTestUser(suite.T(), v1.UserEditable{Name: "Carol"})
	group := createTestGroup(suite.T(), v1.GroupCreate{
		GroupEditable: v1.GroupEditable{CreatedByID: alice.Data.ID},
		MemberIDs:     []uuid.UUID{bob.Data.ID, carol.Data.ID},
	})
	groupID := group.Data.ID

	transaction := createTestTransaction(suite.T(), v1.TransactionEditable{
		Amount:       decimal.NewFromInt(100),
		UserID:       alice.Data.ID,
		Category:     "Groceries",
		GroupID:      &groupID,
		SplitUserIDs: []uuid.UUID{carol.Data.ID, bob.Data.ID, alice.Data.ID, bob.Data.ID},
	})

	expected := []struct {
		id     uuid.UUID
		amount string
	}{
		{carol.Data.ID, "33.33333334"},
		{bob.Data.ID, "33.33333333"},
		{alice.Data.ID, "33.33333333"},
	}

	suite.Require().Len(transaction.Data.Splits, len(expected))
	sum := decimal.Zero
	for i, e := range expected {
		split := transaction.Data.Splits[i]
		suite.Assert().Equal(e.id, split.UserID)
		suite.Assert().True(decimal.RequireFromString(e.amount).Equal(split.Amount), "split %d is %s", i, split.Amount)
		sum = sum.Add(split.Amount)
	}
	suite.Assert().True(decimal.NewFromInt(100).Equal(sum))

	// Splits are read back in the same order
	r := test.Request(suite.T(), http.MethodGet, transaction.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.TransactionResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Equal(transaction.Data.Splits[0].UserID, response.Data.Splits[0].UserID)
	suite.Assert().Equal(groupID, *response.Data.GroupID)
}

func (suite *TestSuiteStandard) TestTransactionsDelete() {
	wallet := createTestWallet(suite.T(), v1.WalletCreate{Balance: decimal.NewFromInt(100)})

	expense := createTestTransaction(suite.T(), v1.TransactionEditable{WalletID: wallet.Data.ID, Amount: decimal.RequireFromString("40.5"), Category: "Food"})
	income := createTestTransaction(suite.T(), v1.TransactionEditable{WalletID: wallet.Data.ID, Amount: decimal.NewFromInt(20), Type: ledger.Income})
	suite.Assert().True(decimal.RequireFromString("79.5").Equal(walletBalance(suite.T(), wallet)))

	r := test.Request(suite.T(), http.MethodDelete, expense.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	suite.Assert().True(decimal.NewFromInt(120).Equal(walletBalance(suite.T(), wallet)))

	r = test.Request(suite.T(), http.MethodDelete, income.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	suite.Assert().True(decimal.NewFromInt(100).Equal(walletBalance(suite.T(), wallet)))

	r = test.Request(suite.T(), http.MethodDelete, income.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

	r = test.Request(suite.T(), http.MethodGet, income.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestTransactionsList() {
	checking := createTestWallet(suite.T(), v1.WalletCreate{Balance: decimal.NewFromInt(1000)})
	cash := createTestWallet(suite.T(), v1.WalletCreate{Balance: decimal.NewFromInt(1000)})

	day := func(d int) time.Time {
		return time.Date(2024, 1, d, 12, 0, 0, 0, time.UTC)
	}

	salary := createTestTransaction(suite.T(), v1.TransactionEditable{Description: "Salary January", Amount: decimal.NewFromInt(3000), Type: ledger.Income, Date: day(1), WalletID: checking.Data.ID})
	rent := createTestTransaction(suite.T(), v1.TransactionEditable{Description: "Rent", Amount: decimal.NewFromInt(900), Date: day(2), WalletID: checking.Data.ID, Category: "Housing"})
	coffee := createTestTransaction(suite.T(), v1.TransactionEditable{Description: "Coffee at the station", Amount: decimal.NewFromInt(3), Date: day(3), WalletID: cash.Data.ID, Category: "Eating out"})
	lunch := createTestTransaction(suite.T(), v1.TransactionEditable{Description: "Lunch", Amount: decimal.NewFromInt(12), Date: day(4), WalletID: cash.Data.ID, Category: "Eating out"})

	ids := func(transactions ...v1.TransactionResponse) []uuid.UUID {
		out := make([]uuid.UUID, 0, len(transactions))
		for _, t := range transactions {
			out = append(out, t.Data.ID)
		}
		return out
	}

	tests := []struct {
		name     string
		query    string
		expected []uuid.UUID
		total    int64
	}{
		{"All, newest first", "", ids(lunch, coffee, rent, salary), 4},
		{"Type ALL", "type=ALL", ids(lunch, coffee, rent, salary), 4},
		{"Income", "type=INCOME", ids(salary), 1},
		{"Expense", "type=EXPENSE", ids(lunch, coffee, rent), 3},
		{"Search", "search=SALARY", ids(salary), 1},
		{"Pattern", "pattern=coffee*", ids(coffee), 1},
		{"Pattern in the middle", "pattern=*at*station", ids(coffee), 1},
		{"Wallet", "wallet=" + cash.Data.ID.String(), ids(lunch, coffee), 2},
		{"Category", "category=" + coffee.Data.CategoryID.String(), ids(lunch, coffee), 2},
		{"Combined", "wallet=" + cash.Data.ID.String() + "&search=lunch", ids(lunch), 1},
		{"No match", "search=holiday", ids(), 0},
		{"Limit", "limit=2", ids(lunch, coffee), 4},
		{"Offset", "offset=3", ids(salary), 4},
		{"Offset beyond end", "offset=10", ids(), 4},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, "http://example.com/v1/transactions?"+tt.query, "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.TransactionListResponse
			test.DecodeResponse(t, &r, &response)

			got := make([]uuid.UUID, 0, len(response.Data))
			for _, transaction := range response.Data {
				got = append(got, transaction.ID)
			}

			assert.Equal(t, tt.expected, got)
			assert.Equal(t, tt.total, response.Pagination.Total)
		})
	}
}

func (suite *TestSuiteStandard) TestTransactionsListFails() {
	for _, query := range []string{"type=TRANSFER", "wallet=NotAUUID", "limit=many"} {
		suite.T().Run(query, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, "http://example.com/v1/transactions?"+query, "")
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)
		})
	}
}

func (suite *TestSuiteStandard) TestTransactionsSplitPreview() {
	a, b, c := uuid.NewString(), uuid.NewString(), uuid.NewString()

	tests := []struct {
		name         string
		query        string
		share        string
		participants int
	}{
		{"Three ways", fmt.Sprintf("amount=100&participants=%s&participants=%s&participants=%s", a, b, c), "33.33", 3},
		{"Rounds half up", fmt.Sprintf("amount=0.05&participants=%s&participants=%s", a, b), "0.03", 2},
		{"Duplicates count once", fmt.Sprintf("amount=10&participants=%s&participants=%s&participants=%s&participants=%s", a, b, c, a), "3.33", 3},
		{"Nobody", "amount=10", "0", 0},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, "http://example.com/v1/transactions/split-preview?"+tt.query, "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.SplitPreviewResponse
			test.DecodeResponse(t, &r, &response)

			assert.True(t, decimal.RequireFromString(tt.share).Equal(response.Data.Share), "share is %s", response.Data.Share)
			assert.Equal(t, tt.participants, response.Data.Participants)
			assert.Len(t, response.Data.Shares, tt.participants)

			sum := decimal.Zero
			for _, s := range response.Data.Shares {
				sum = sum.Add(s.Amount)
			}
			if tt.participants > 0 {
				assert.True(t, response.Data.Amount.Equal(sum), "shares add up to %s", sum)
			}
		})
	}
}

func (suite *TestSuiteStandard) TestTransactionsSplitPreviewFails() {
	for _, query := range []string{"", "amount=ten", "amount=-1", "amount=10&participants=NotAUUID"} {
		suite.T().Run(query, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, "http://example.com/v1/transactions/split-preview?"+query, "")
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)

			var response v1.SplitPreviewResponse
			test.DecodeResponse(t, &r, &response)
			assert.NotNil(t, response.Error)
		})
	}
}

func (suite *TestSuiteStandard) TestTransactionsOptions() {
	transaction := createTestTransaction(suite.T(), v1.TransactionEditable{Amount: decimal.NewFromInt(1), Category: "Food"})

	r := test.Request(suite.T(), http.MethodOptions, transaction.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	suite.Assert().Equal("OPTIONS, GET, DELETE", r.Header().Get("allow"))
}

func (suite *TestSuiteStandard) TestTransactionsDatabaseError() {
	tests := []struct {
		name   string
		path   string
		method string
		body   any
	}{
		{"GET Collection", "", http.MethodGet, ""},
		{"POST Collection", "", http.MethodPost, v1.TransactionEditable{Amount: decimal.NewFromInt(1), Type: ledger.Expense, Category: "Food", WalletID: uuid.New()}},
		{"OPTIONS Single", "/" + uuid.NewString(), http.MethodOptions, ""},
		{"GET Single", "/" + uuid.NewString(), http.MethodGet, ""},
		{"DELETE Single", "/" + uuid.NewString(), http.MethodDelete, ""},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			suite.CloseDB()

			r := test.Request(t, tt.method, "http://example.com/v1/transactions"+tt.path, tt.body)
			test.AssertHTTPStatus(t, &r, http.StatusInternalServerError)
		})
	}
}
