package v1_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	v1 "github.com/stuffd/backend/internal/controllers/v1"
	"github.com/stuffd/backend/internal/ledger"
	"github.com/stuffd/backend/internal/types"
	"github.com/stuffd/backend/test"
)

func (suite *TestSuiteStandard) TestEnvelopeCreate() {
	envelope := suite.createTestEnvelope(v1.EnvelopeEditable{
		Name:            "New Bike",
		TargetAmount:    decimal.NewFromInt(2500),
		TargetMonth:     types.NewMonth(2027, time.June),
		CashFlowAmount:  decimal.NewFromInt(150),
		CashFlowEnabled: true,
	})

	assert.Equal(suite.T(), "New Bike", envelope.Data.Name)
	assert.True(suite.T(), envelope.Data.CashFlowEnabled)
	assert.True(suite.T(), envelope.Data.Balance.IsZero())
	assert.Equal(suite.T(), fmt.Sprintf("http://example.com/v1/envelopes/%s", envelope.Data.ID), envelope.Data.Links.Self)
}

func (suite *TestSuiteStandard) TestEnvelopeCreateBrokenBinderReference() {
	id := uuid.New()
	body := []v1.EnvelopeEditable{{Name: "Orphan", BinderID: &id}}

	r := test.Request(suite.T(), suite.router, http.MethodPost, "http://example.com/v1/envelopes", body)
	test.AssertHTTPStatus(suite.T(), http.StatusNotFound, &r)
}

func (suite *TestSuiteStandard) TestEnvelopeGetSingle() {
	envelope := suite.createTestEnvelope(v1.EnvelopeEditable{Name: "Groceries"})

	r := test.Request(suite.T(), suite.router, http.MethodGet, envelope.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &r)

	var response v1.EnvelopeResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), "Groceries", response.Data.Name)
}

func (suite *TestSuiteStandard) TestEnvelopeBalanceFromLedger() {
	envelope := suite.createTestEnvelope(v1.EnvelopeEditable{Name: "Groceries"})

	_, err := ledger.Ledger{}.EnvelopeDeposit(envelope.Data.ID, decimal.NewFromInt(100), "Fill up", time.Now())
	require.NoError(suite.T(), err)

	r := test.Request(suite.T(), suite.router, http.MethodGet, envelope.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &r)

	var response v1.EnvelopeResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.True(suite.T(), response.Data.Balance.Equal(decimal.NewFromInt(100)), "balance is %s", response.Data.Balance)
}

func (suite *TestSuiteStandard) TestEnvelopeList() {
	binder := suite.createTestBinder(v1.BinderEditable{Name: "Savings"})

	_ = suite.createTestEnvelope(v1.EnvelopeEditable{Name: "Vacation", BinderID: &binder.Data.ID, CashFlowEnabled: true})
	_ = suite.createTestEnvelope(v1.EnvelopeEditable{Name: "Rent"})
	_ = suite.createTestEnvelope(v1.EnvelopeEditable{Name: "Old stuff", Archived: true})

	tests := []struct {
		name  string
		query string
		count int
	}{
		{"all", "", 3},
		{"binder", fmt.Sprintf("binder=%s", binder.Data.ID), 1},
		{"cash flow", "cashFlowEnabled=true", 1},
		{"archived", "archived=true", 1},
		{"search", "search=vaca", 1},
		{"name", "name=Rent", 1},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, suite.router, http.MethodGet, fmt.Sprintf("http://example.com/v1/envelopes?%s", tt.query), "")
			test.AssertHTTPStatus(t, http.StatusOK, &r)

			var response v1.EnvelopeListResponse
			test.DecodeResponse(t, &r, &response)
			assert.Len(t, response.Data, tt.count)
		})
	}
}

func (suite *TestSuiteStandard) TestEnvelopeUpdate() {
	envelope := suite.createTestEnvelope(v1.EnvelopeEditable{Name: "Groceries"})

	r := test.Request(suite.T(), suite.router, http.MethodPatch, envelope.Data.Links.Self, map[string]any{
		"cashFlowAmount":  "250",
		"cashFlowEnabled": true,
	})
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &r)

	var response v1.EnvelopeResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.True(suite.T(), response.Data.CashFlowEnabled)
	assert.True(suite.T(), response.Data.CashFlowAmount.Equal(decimal.NewFromInt(250)))
}

func (suite *TestSuiteStandard) TestEnvelopeDelete() {
	envelope := suite.createTestEnvelope(v1.EnvelopeEditable{})

	r := test.Request(suite.T(), suite.router, http.MethodDelete, envelope.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), http.StatusNoContent, &r)

	r = test.Request(suite.T(), suite.router, http.MethodGet, envelope.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), http.StatusNotFound, &r)
}
