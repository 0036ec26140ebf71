package v1_test

import (
	"net/http"

	v1 "github.com/finance-tracker/backend/internal/controllers/v1"
	"github.com/finance-tracker/backend/internal/ledger"
	"github.com/finance-tracker/backend/internal/test"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestDashboard() {
	checking := createTestWallet(suite.T(), v1.WalletCreate{
		WalletEditable: v1.WalletEditable{Name: "Checking"},
		Balance:        decimal.NewFromInt(1000),
	})
	cash := createTestWallet(suite.T(), v1.WalletCreate{
		WalletEditable: v1.WalletEditable{Name: "Cash"},
		Balance:        decimal.NewFromInt(50),
	})
	_ = createTestCategory(suite.T(), v1.CategoryEditable{Name: "Unused"})

	createTestTransaction(suite.T(), v1.TransactionEditable{Description: "Salary", Amount: decimal.NewFromInt(500), Type: ledger.Income, WalletID: checking.Data.ID})
	createTestTransaction(suite.T(), v1.TransactionEditable{Description: "Groceries", Amount: decimal.NewFromInt(200), WalletID: checking.Data.ID, Category: "Food"})
	createTestTransaction(suite.T(), v1.TransactionEditable{Description: "Ice cream", Amount: decimal.NewFromInt(5), WalletID: cash.Data.ID, Category: "Food"})

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/dashboard", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.DashboardResponse
	test.DecodeResponse(suite.T(), &r, &response)
	d := response.Data

	suite.Require().Len(d.Wallets, 2)
	suite.Assert().Equal("Cash", d.Wallets[0].Name)
	suite.Assert().True(decimal.NewFromInt(45).Equal(d.Wallets[0].Balance))
	suite.Assert().True(decimal.NewFromInt(50).Equal(d.Wallets[0].InitialValue))
	suite.Assert().Equal("Checking", d.Wallets[1].Name)
	suite.Assert().True(decimal.NewFromInt(1300).Equal(d.Wallets[1].Balance))
	suite.Assert().True(decimal.NewFromInt(1000).Equal(d.Wallets[1].InitialValue))

	suite.Assert().True(decimal.NewFromInt(1345).Equal(d.TotalBalance), "total balance is %s", d.TotalBalance)
	suite.Assert().True(decimal.NewFromInt(500).Equal(d.Summary.Income))
	suite.Assert().True(decimal.NewFromInt(205).Equal(d.Summary.Expense))
	suite.Assert().True(decimal.NewFromInt(295).Equal(d.Summary.Net))
	suite.Assert().True(d.Summary.Net.Equal(d.FilteredSummary.Net), "without filters, both summaries are equal")

	suite.Require().Len(d.Categories, 1, "only categories with transactions are listed")
	suite.Assert().Equal("Food", d.Categories[0].Name)
	suite.Assert().Len(d.Transactions, 3)

	// Filters only apply to the transactions and the filtered summary
	r = test.Request(suite.T(), http.MethodGet, "http://example.com/v1/dashboard?type=EXPENSE&wallet="+checking.Data.ID.String(), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	test.DecodeResponse(suite.T(), &r, &response)
	d = response.Data

	suite.Require().Len(d.Transactions, 1)
	suite.Assert().Equal("Groceries", d.Transactions[0].Description)
	suite.Assert().True(decimal.NewFromInt(200).Equal(d.FilteredSummary.Expense))
	suite.Assert().True(d.FilteredSummary.Income.IsZero())
	suite.Assert().True(decimal.NewFromInt(500).Equal(d.Summary.Income))
	suite.Assert().Len(d.Wallets, 2)
}

func (suite *TestSuiteStandard) TestDashboardEmpty() {
	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/dashboard", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.DashboardResponse
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Assert().Empty(response.Data.Wallets)
	suite.Assert().Empty(response.Data.Transactions)
	suite.Assert().True(response.Data.TotalBalance.IsZero())
}

func (suite *TestSuiteStandard) TestDashboardFails() {
	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/dashboard?type=BOTH", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	suite.CloseDB()
	r = test.Request(suite.T(), http.MethodGet, "http://example.com/v1/dashboard", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusInternalServerError)
}
