package v1_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	v1 "github.com/stuffd/backend/internal/controllers/v1"
	"github.com/stuffd/backend/internal/ledger"
	"github.com/stuffd/backend/test"
)

func (suite *TestSuiteStandard) TestCleanup() {
	binder := suite.createTestBinder(v1.BinderEditable{Name: "Savings"})
	envelope := suite.createTestEnvelope(v1.EnvelopeEditable{Name: "Vacation", BinderID: &binder.Data.ID})
	_ = suite.createTestAccount(v1.AccountEditable{Name: "Checking"})
	_ = suite.createTestScheduledPayment(v1.ScheduledPaymentEditable{Payee: "Water Works", EnvelopeID: &envelope.Data.ID})
	_ = suite.createTestMatchRule(v1.MatchRuleEditable{Match: "Water*", EnvelopeID: envelope.Data.ID})

	_, err := ledger.Ledger{}.EnvelopeDeposit(envelope.Data.ID, decimal.NewFromInt(100), "Fill up", time.Now())
	assert.NoError(suite.T(), err)

	r := test.Request(suite.T(), suite.router, http.MethodDelete, "http://example.com/v1?confirm=yes-please-delete-everything", "")
	test.AssertHTTPStatus(suite.T(), http.StatusNoContent, &r)

	// Verify that all resources are gone
	tests := []string{
		"accounts",
		"binders",
		"envelopes",
		"match-rules",
		"scheduled-payments",
		"transactions",
	}

	for _, path := range tests {
		suite.T().Run(path, func(t *testing.T) {
			re := test.Request(t, suite.router, http.MethodGet, "http://example.com/v1/"+path, "")
			test.AssertHTTPStatus(t, http.StatusOK, &re)

			var response struct {
				Data []any `json:"data"`
			}
			test.DecodeResponse(t, &re, &response)
			assert.Len(t, response.Data, 0)
		})
	}
}

func (suite *TestSuiteStandard) TestCleanupWrongConfirmation() {
	binder := suite.createTestBinder(v1.BinderEditable{Name: "Savings"})

	tests := []string{
		"http://example.com/v1",
		"http://example.com/v1?confirm=no",
	}

	for _, url := range tests {
		r := test.Request(suite.T(), suite.router, http.MethodDelete, url, "")
		test.AssertHTTPStatus(suite.T(), http.StatusBadRequest, &r)
	}

	// The binder is untouched
	r := test.Request(suite.T(), suite.router, http.MethodGet, binder.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &r)
}
