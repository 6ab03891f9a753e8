package v1_test

import (
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	v1 "github.com/stuffd/backend/internal/controllers/v1"
	"github.com/stuffd/backend/internal/ledger"
	"github.com/stuffd/backend/test"
)

func (suite *TestSuiteStandard) TestAccountCreate() {
	account := suite.createTestAccount(v1.AccountEditable{Name: "Checking", Default: true})

	assert.Equal(suite.T(), "Checking", account.Data.Name)
	assert.True(suite.T(), account.Data.Default)
	assert.True(suite.T(), account.Data.Balance.IsZero())
}

func (suite *TestSuiteStandard) TestAccountBalanceFromLedger() {
	account := suite.createTestAccount(v1.AccountEditable{Name: "Checking"})

	_, err := ledger.Ledger{}.AccountDeposit(account.Data.ID, decimal.NewFromInt(1500), "Salary")
	require.NoError(suite.T(), err)

	r := test.Request(suite.T(), suite.router, http.MethodGet, account.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &r)

	var response v1.AccountResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.True(suite.T(), response.Data.Balance.Equal(decimal.NewFromInt(1500)), "balance is %s", response.Data.Balance)
}

func (suite *TestSuiteStandard) TestAccountList() {
	_ = suite.createTestAccount(v1.AccountEditable{Name: "Checking", Default: true})
	_ = suite.createTestAccount(v1.AccountEditable{Name: "Old bank", Archived: true})

	r := test.Request(suite.T(), suite.router, http.MethodGet, "http://example.com/v1/accounts?default=true", "")
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &r)

	var response v1.AccountListResponse
	test.DecodeResponse(suite.T(), &r, &response)
	require.Len(suite.T(), response.Data, 1)
	assert.Equal(suite.T(), "Checking", response.Data[0].Name)
}

func (suite *TestSuiteStandard) TestAccountUpdate() {
	account := suite.createTestAccount(v1.AccountEditable{Name: "Checking"})

	r := test.Request(suite.T(), suite.router, http.MethodPatch, account.Data.Links.Self, map[string]any{
		"default": true,
	})
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &r)

	var response v1.AccountResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.True(suite.T(), response.Data.Default)
}

func (suite *TestSuiteStandard) TestAccountDelete() {
	account := suite.createTestAccount(v1.AccountEditable{})

	r := test.Request(suite.T(), suite.router, http.MethodDelete, account.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), http.StatusNoContent, &r)

	r = test.Request(suite.T(), suite.router, http.MethodGet, fmt.Sprintf("http://example.com/v1/accounts/%s", account.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), http.StatusNotFound, &r)
}
