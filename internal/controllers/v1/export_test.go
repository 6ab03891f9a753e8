package v1_test

import (
	"net/http"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	v1 "github.com/stuffd/backend/internal/controllers/v1"
	"github.com/stuffd/backend/test"
)

func (suite *TestSuiteStandard) TestExport() {
	_ = suite.createTestBinder(v1.BinderEditable{Name: "Savings"})
	_ = suite.createTestEnvelope(v1.EnvelopeEditable{Name: "Vacation"})

	r := test.Request(suite.T(), suite.router, http.MethodGet, "http://example.com/v1/export", "")
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &r)

	var response v1.ExportResponse
	test.DecodeResponse(suite.T(), &r, &response)

	assert.Equal(suite.T(), "0.0.0", response.Version)
	assert.False(suite.T(), response.CreationTime.IsZero())

	for _, name := range []string{"Account", "Binder", "Envelope", "MatchRule", "ScheduledPayment", "Transaction"} {
		require.Contains(suite.T(), response.Data, name)
	}
}

func (suite *TestSuiteStandard) TestV1Root() {
	r := test.Request(suite.T(), suite.router, http.MethodGet, "http://example.com/v1", "")
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &r)

	var response v1.Response
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), "http://example.com/v1/envelopes", response.Links.Envelopes)
	assert.Equal(suite.T(), "http://example.com/v1/payday", response.Links.PayDay)
}

func (suite *TestSuiteStandard) TestV1Options() {
	r := test.Request(suite.T(), suite.router, http.MethodOptions, "http://example.com/v1", "")
	test.AssertHTTPStatus(suite.T(), http.StatusNoContent, &r)
	assert.Equal(suite.T(), "GET, DELETE", r.Header().Get("allow"))
}
