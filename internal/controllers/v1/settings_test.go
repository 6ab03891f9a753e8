package v1_test

import (
	"net/http"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	v1 "github.com/stuffd/backend/internal/controllers/v1"
	"github.com/stuffd/backend/test"
)

func (suite *TestSuiteStandard) TestSettingsDefault() {
	r := test.Request(suite.T(), suite.router, http.MethodGet, "http://example.com/v1/settings", "")
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &r)

	var response v1.SettingsResponse
	test.DecodeResponse(suite.T(), &r, &response)
	require.NotNil(suite.T(), response.Data)
	assert.Equal(suite.T(), uint(0), response.Data.PayFrequencyDays)
	assert.Nil(suite.T(), response.Data.DefaultAccountID)
	assert.True(suite.T(), response.Data.LastPayAmount.IsZero())
}

func (suite *TestSuiteStandard) TestSettingsUpdate() {
	account := suite.createTestAccount(v1.AccountEditable{Name: "Checking"})

	r := test.Request(suite.T(), suite.router, http.MethodPatch, "http://example.com/v1/settings", map[string]any{
		"payFrequencyDays": 14,
		"defaultAccountId": account.Data.ID,
	})
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &r)

	var response v1.SettingsResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), uint(14), response.Data.PayFrequencyDays)
	require.NotNil(suite.T(), response.Data.DefaultAccountID)
	assert.Equal(suite.T(), account.Data.ID, *response.Data.DefaultAccountID)

	// The update is persisted
	r = test.Request(suite.T(), suite.router, http.MethodGet, "http://example.com/v1/settings", "")
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &r)

	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), uint(14), response.Data.PayFrequencyDays)
}

func (suite *TestSuiteStandard) TestSettingsPartialUpdate() {
	r := test.Request(suite.T(), suite.router, http.MethodPatch, "http://example.com/v1/settings", map[string]any{
		"payFrequencyDays": 28,
	})
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &r)

	var response v1.SettingsResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), uint(28), response.Data.PayFrequencyDays)
	assert.Nil(suite.T(), response.Data.DefaultAccountID)
}

func (suite *TestSuiteStandard) TestSettingsInvalidBody() {
	r := test.Request(suite.T(), suite.router, http.MethodPatch, "http://example.com/v1/settings", `{ not json }`)
	test.AssertHTTPStatus(suite.T(), http.StatusBadRequest, &r)
}
