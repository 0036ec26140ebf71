package v1_test

import (
	"net/http"
	"testing"

	v1 "github.com/finance-tracker/backend/internal/controllers/v1"
	"github.com/finance-tracker/backend/internal/ledger"
	"github.com/finance-tracker/backend/internal/test"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestCategoriesCreate() {
	category := createTestCategory(suite.T(), v1.CategoryEditable{Name: "Groceries"})
	suite.Assert().Equal("Groceries", category.Data.Name)
	suite.Assert().Equal(ledger.Expense, category.Data.Type, "type defaults to EXPENSE")

	salary := createTestCategory(suite.T(), v1.CategoryEditable{Name: "Salary", Type: ledger.Income})
	suite.Assert().Equal(ledger.Income, salary.Data.Type)

	createTestCategory(suite.T(), v1.CategoryEditable{Name: "Groceries"}, http.StatusBadRequest)
	createTestCategory(suite.T(), v1.CategoryEditable{Name: "Transfers", Type: "TRANSFER"}, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestCategoriesList() {
	_ = createTestCategory(suite.T(), v1.CategoryEditable{Name: "Salary", Type: ledger.Income})
	_ = createTestCategory(suite.T(), v1.CategoryEditable{Name: "Rent"})
	_ = createTestCategory(suite.T(), v1.CategoryEditable{Name: "Groceries"})

	tests := []struct {
		name   string
		query  string
		names  []string
		status int
	}{
		{"All, ordered by name", "", []string{"Groceries", "Rent", "Salary"}, http.StatusOK},
		{"Income", "type=INCOME", []string{"Salary"}, http.StatusOK},
		{"Expense", "type=EXPENSE", []string{"Groceries", "Rent"}, http.StatusOK},
		{"Name is case-insensitive", "name=rENT", []string{"Rent"}, http.StatusOK},
		{"Invalid type", "type=TRANSFER", nil, http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, "http://example.com/v1/categories?"+tt.query, "")
			test.AssertHTTPStatus(t, &r, tt.status)

			if tt.status != http.StatusOK {
				return
			}

			var response v1.CategoryListResponse
			test.DecodeResponse(t, &r, &response)

			names := make([]string, 0, len(response.Data))
			for _, c := range response.Data {
				names = append(names, c.Name)
			}
			assert.Equal(t, tt.names, names)
		})
	}
}

func (suite *TestSuiteStandard) TestCategoriesResolve() {
	food := createTestCategory(suite.T(), v1.CategoryEditable{Name: "Food"})

	tests := []struct {
		name   string
		label  string
		status int
		found  bool
		create string
	}{
		{"Existing, different case", "FOOD", http.StatusOK, true, ""},
		{"Existing, surrounding whitespace", " Food ", http.StatusOK, true, ""},
		{"New", "Travel", http.StatusOK, false, "Travel"},
		{"New, surrounding whitespace", " Travel ", http.StatusOK, false, "Travel"},
		{"Empty", "  ", http.StatusBadRequest, false, ""},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, "http://example.com/v1/categories/resolve", v1.CategoryResolveRequest{Label: tt.label})
			test.AssertHTTPStatus(t, &r, tt.status)

			var response v1.CategoryResolutionResponse
			test.DecodeResponse(t, &r, &response)

			if tt.status != http.StatusOK {
				assert.NotNil(t, response.Error)
				return
			}

			assert.Equal(t, tt.found, response.Data.Found)
			if tt.found {
				assert.Equal(t, food.Data.ID, *response.Data.CategoryID)
				return
			}

			assert.Equal(t, tt.create, response.Data.Create.Name)
			assert.Equal(t, ledger.Expense, response.Data.Create.Type)
		})
	}

	// Resolving never creates categories
	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/categories", "")
	var list v1.CategoryListResponse
	test.DecodeResponse(suite.T(), &r, &list)
	suite.Assert().Len(list.Data, 1)
}

func (suite *TestSuiteStandard) TestCategoriesGetSingle() {
	category := createTestCategory(suite.T(), v1.CategoryEditable{Name: "Books"})

	r := test.Request(suite.T(), http.MethodGet, category.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.CategoryResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Equal("Books", response.Data.Name)

	r = test.Request(suite.T(), http.MethodGet, "http://example.com/v1/categories/"+uuid.NewString(), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestCategoriesDelete() {
	category := createTestCategory(suite.T(), v1.CategoryEditable{Name: "Fees"})
	categoryID := category.Data.ID

	transaction := createTestTransaction(suite.T(), v1.TransactionEditable{Amount: decimal.NewFromInt(3), CategoryID: &categoryID})

	r := test.Request(suite.T(), http.MethodDelete, category.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	r = test.Request(suite.T(), http.MethodDelete, transaction.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodDelete, category.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
}

func (suite *TestSuiteStandard) TestCategoriesDatabaseError() {
	tests := []struct {
		name   string
		path   string
		method string
		body   any
	}{
		{"GET Collection", "", http.MethodGet, ""},
		{"GET Single", "/" + uuid.NewString(), http.MethodGet, ""},
		{"DELETE Single", "/" + uuid.NewString(), http.MethodDelete, ""},
		{"Resolve", "/resolve", http.MethodPost, v1.CategoryResolveRequest{Label: "Food"}},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			suite.CloseDB()

			r := test.Request(t, tt.method, "http://example.com/v1/categories"+tt.path, tt.body)
			test.AssertHTTPStatus(t, &r, http.StatusInternalServerError)
		})
	}
}
