package v1_test

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	v1 "github.com/stuffd/backend/internal/controllers/v1"
	"github.com/stuffd/backend/internal/payday"
	"github.com/stuffd/backend/test"
)

// startTestSession opens a pay day session and returns its representation.
func (suite *TestSuiteStandard) startTestSession() v1.PayDaySession {
	r := test.Request(suite.T(), suite.router, http.MethodPost, "http://example.com/v1/payday", "")
	test.AssertHTTPStatus(suite.T(), http.StatusCreated, &r)

	var response v1.PayDaySessionResponse
	test.DecodeResponse(suite.T(), &r, &response)
	require.NotNil(suite.T(), response.Data)

	return *response.Data
}

func (suite *TestSuiteStandard) TestPayDaySessionStart() {
	session := suite.startTestSession()

	assert.Equal(suite.T(), payday.PhaseInflowEntry, session.Phase)
	assert.True(suite.T(), session.Inflow.IsZero())
	assert.Equal(suite.T(), fmt.Sprintf("http://example.com/v1/payday/%s", session.ID), session.Links.Self)
}

func (suite *TestSuiteStandard) TestPayDaySessionNotFound() {
	r := test.Request(suite.T(), suite.router, http.MethodGet, fmt.Sprintf("http://example.com/v1/payday/%s", uuid.New()), "")
	test.AssertHTTPStatus(suite.T(), http.StatusNotFound, &r)
}

func (suite *TestSuiteStandard) TestPayDaySessionInflow() {
	session := suite.startTestSession()

	r := test.Request(suite.T(), suite.router, http.MethodPatch, session.Links.Self, map[string]any{
		"inflow": "2000",
	})
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &r)

	var response v1.PayDaySessionResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.True(suite.T(), response.Data.Inflow.Equal(decimal.NewFromInt(2000)))
}

func (suite *TestSuiteStandard) TestPayDaySessionInflowNotPositive() {
	session := suite.startTestSession()

	r := test.Request(suite.T(), suite.router, http.MethodPatch, session.Links.Self, map[string]any{
		"inflow": "-5",
	})
	test.AssertHTTPStatus(suite.T(), http.StatusBadRequest, &r)
}

func (suite *TestSuiteStandard) TestPayDayReviewSeedsAutopilot() {
	_ = suite.createTestEnvelope(v1.EnvelopeEditable{
		Name:            "Groceries",
		CashFlowAmount:  decimal.NewFromInt(400),
		CashFlowEnabled: true,
	})
	_ = suite.createTestEnvelope(v1.EnvelopeEditable{Name: "Manual only"})

	session := suite.startTestSession()

	r := test.Request(suite.T(), suite.router, http.MethodPatch, session.Links.Self, map[string]any{"inflow": "2000"})
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &r)

	r = test.Request(suite.T(), suite.router, http.MethodPost, session.Links.Review, "")
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &r)

	var response v1.PayDaySessionResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), payday.PhaseStrategyReview, response.Data.Phase)
	assert.Len(suite.T(), response.Data.Overrides, 1)
	require.Len(suite.T(), response.Data.Plan.Envelopes, 1)
	assert.True(suite.T(), response.Data.Plan.Reserve.Equal(decimal.NewFromInt(400)))
	assert.True(suite.T(), response.Data.Plan.Surplus.Equal(decimal.NewFromInt(1600)))
}

func (suite *TestSuiteStandard) TestPayDayReviewRequiresInflow() {
	session := suite.startTestSession()

	r := test.Request(suite.T(), suite.router, http.MethodPost, session.Links.Review, "")
	test.AssertHTTPStatus(suite.T(), http.StatusBadRequest, &r)
}

func (suite *TestSuiteStandard) TestPayDayWorkingSet() {
	envelope := suite.createTestEnvelope(v1.EnvelopeEditable{
		Name:            "New Bike",
		TargetAmount:    decimal.NewFromInt(2500),
		CashFlowAmount:  decimal.NewFromInt(150),
		CashFlowEnabled: true,
	})
	manual := suite.createTestEnvelope(v1.EnvelopeEditable{Name: "Manual"})

	session := suite.startTestSession()
	r := test.Request(suite.T(), suite.router, http.MethodPatch, session.Links.Self, map[string]any{"inflow": "2000"})
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &r)
	r = test.Request(suite.T(), suite.router, http.MethodPost, session.Links.Review, "")
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &r)

	// Add an envelope that is not on autopilot
	r = test.Request(suite.T(), suite.router, http.MethodPost, fmt.Sprintf("%s/envelopes/%s", session.Links.Self, manual.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &r)

	// Raise the amount for the bike and boost it
	r = test.Request(suite.T(), suite.router, http.MethodPatch, fmt.Sprintf("%s/envelopes/%s", session.Links.Self, envelope.Data.ID), map[string]any{
		"override":      "300",
		"boostFraction": "0.5",
	})
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &r)

	var response v1.PayDaySessionResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Len(suite.T(), response.Data.Overrides, 2)
	assert.Len(suite.T(), response.Data.BoostFractions, 1)

	// Remove the manual envelope again
	r = test.Request(suite.T(), suite.router, http.MethodDelete, fmt.Sprintf("%s/envelopes/%s", session.Links.Self, manual.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &r)

	test.DecodeResponse(suite.T(), &r, &response)
	assert.Len(suite.T(), response.Data.Overrides, 1)
}

func (suite *TestSuiteStandard) TestPayDayBoostWithoutHorizon() {
	envelope := suite.createTestEnvelope(v1.EnvelopeEditable{
		Name:            "No horizon",
		CashFlowAmount:  decimal.NewFromInt(100),
		CashFlowEnabled: true,
	})

	session := suite.startTestSession()
	r := test.Request(suite.T(), suite.router, http.MethodPatch, session.Links.Self, map[string]any{"inflow": "1000"})
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &r)
	r = test.Request(suite.T(), suite.router, http.MethodPost, session.Links.Review, "")
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &r)

	r = test.Request(suite.T(), suite.router, http.MethodPatch, fmt.Sprintf("%s/envelopes/%s", session.Links.Self, envelope.Data.ID), map[string]any{
		"boostFraction": "0.5",
	})
	test.AssertHTTPStatus(suite.T(), http.StatusBadRequest, &r)
}

func (suite *TestSuiteStandard) TestPayDayAddBinder() {
	binder := suite.createTestBinder(v1.BinderEditable{Name: "Savings"})
	_ = suite.createTestEnvelope(v1.EnvelopeEditable{Name: "Vacation", BinderID: &binder.Data.ID, CashFlowAmount: decimal.NewFromInt(100)})
	_ = suite.createTestEnvelope(v1.EnvelopeEditable{Name: "New car", BinderID: &binder.Data.ID, CashFlowAmount: decimal.NewFromInt(200)})

	session := suite.startTestSession()
	r := test.Request(suite.T(), suite.router, http.MethodPatch, session.Links.Self, map[string]any{"inflow": "1000"})
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &r)
	r = test.Request(suite.T(), suite.router, http.MethodPost, session.Links.Review, "")
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &r)

	r = test.Request(suite.T(), suite.router, http.MethodPost, fmt.Sprintf("%s/binders/%s", session.Links.Self, binder.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &r)

	var response v1.PayDaySessionResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Len(suite.T(), response.Data.Overrides, 2)
	assert.True(suite.T(), response.Data.Plan.Reserve.Equal(decimal.NewFromInt(300)))
}

func (suite *TestSuiteStandard) TestPayDayOverCommitmentWarning() {
	_ = suite.createTestEnvelope(v1.EnvelopeEditable{
		Name:            "Expensive",
		CashFlowAmount:  decimal.NewFromInt(1500),
		CashFlowEnabled: true,
	})

	session := suite.startTestSession()
	r := test.Request(suite.T(), suite.router, http.MethodPatch, session.Links.Self, map[string]any{"inflow": "1000"})
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &r)
	r = test.Request(suite.T(), suite.router, http.MethodPost, session.Links.Review, "")
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &r)

	var response v1.PayDaySessionResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.True(suite.T(), response.Data.Plan.Surplus.IsNegative())
	assert.NotNil(suite.T(), response.Data.Plan.Warning)
}

func (suite *TestSuiteStandard) TestPayDayExecute() {
	envelope := suite.createTestEnvelope(v1.EnvelopeEditable{
		Name:            "Groceries",
		CashFlowAmount:  decimal.NewFromInt(400),
		CashFlowEnabled: true,
	})

	session := suite.startTestSession()
	r := test.Request(suite.T(), suite.router, http.MethodPatch, session.Links.Self, map[string]any{"inflow": "2000"})
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &r)
	r = test.Request(suite.T(), suite.router, http.MethodPost, session.Links.Review, "")
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &r)

	r = test.Request(suite.T(), suite.router, http.MethodPost, session.Links.Execute, "")
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &r)

	var summary v1.PayDaySummaryResponse
	test.DecodeResponse(suite.T(), &r, &summary)
	require.NotNil(suite.T(), summary.Data)
	assert.True(suite.T(), summary.Data.TotalDistributed.Equal(decimal.NewFromInt(400)))
	assert.Equal(suite.T(), 1, summary.Data.EnvelopesFunded)

	// The money arrived in the envelope
	r = test.Request(suite.T(), suite.router, http.MethodGet, envelope.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &r)

	var funded v1.EnvelopeResponse
	test.DecodeResponse(suite.T(), &r, &funded)
	assert.True(suite.T(), funded.Data.Balance.Equal(decimal.NewFromInt(400)), "balance is %s", funded.Data.Balance)

	// The settings remember the pay event
	r = test.Request(suite.T(), suite.router, http.MethodGet, "http://example.com/v1/settings", "")
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &r)

	var settings v1.SettingsResponse
	test.DecodeResponse(suite.T(), &r, &settings)
	assert.True(suite.T(), settings.Data.LastPayAmount.Equal(decimal.NewFromInt(2000)))
}

func (suite *TestSuiteStandard) TestPayDayExecuteWithoutEnvelopes() {
	session := suite.startTestSession()
	r := test.Request(suite.T(), suite.router, http.MethodPatch, session.Links.Self, map[string]any{"inflow": "2000"})
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &r)
	r = test.Request(suite.T(), suite.router, http.MethodPost, session.Links.Review, "")
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &r)

	r = test.Request(suite.T(), suite.router, http.MethodPost, session.Links.Execute, "")
	test.AssertHTTPStatus(suite.T(), http.StatusBadRequest, &r)
}

func (suite *TestSuiteStandard) TestPayDayExecuteWrongPhase() {
	session := suite.startTestSession()

	r := test.Request(suite.T(), suite.router, http.MethodPost, session.Links.Execute, "")
	test.AssertHTTPStatus(suite.T(), http.StatusConflict, &r)
}

func (suite *TestSuiteStandard) TestPayDayAccountMode() {
	account := suite.createTestAccount(v1.AccountEditable{Name: "Checking", Default: true})
	envelope := suite.createTestEnvelope(v1.EnvelopeEditable{
		Name:            "Groceries",
		CashFlowAmount:  decimal.NewFromInt(400),
		CashFlowEnabled: true,
	})

	session := suite.startTestSession()
	r := test.Request(suite.T(), suite.router, http.MethodPatch, session.Links.Self, map[string]any{
		"inflow":      "1000",
		"accountMode": true,
	})
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &r)

	var response v1.PayDaySessionResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.True(suite.T(), response.Data.AccountMode)
	require.NotNil(suite.T(), response.Data.AccountID)
	assert.Equal(suite.T(), account.Data.ID, *response.Data.AccountID)

	r = test.Request(suite.T(), suite.router, http.MethodPost, session.Links.Review, "")
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &r)
	r = test.Request(suite.T(), suite.router, http.MethodPost, session.Links.Execute, "")
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &r)

	// The undistributed rest stays in the account
	r = test.Request(suite.T(), suite.router, http.MethodGet, account.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &r)

	var funded v1.AccountResponse
	test.DecodeResponse(suite.T(), &r, &funded)
	assert.True(suite.T(), funded.Data.Balance.Equal(decimal.NewFromInt(600)), "balance is %s", funded.Data.Balance)

	r = test.Request(suite.T(), suite.router, http.MethodGet, envelope.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &r)

	var stuffed v1.EnvelopeResponse
	test.DecodeResponse(suite.T(), &r, &stuffed)
	assert.True(suite.T(), stuffed.Data.Balance.Equal(decimal.NewFromInt(400)), "balance is %s", stuffed.Data.Balance)
}

func (suite *TestSuiteStandard) TestPayDayAccountModeWithoutDefault() {
	session := suite.startTestSession()

	r := test.Request(suite.T(), suite.router, http.MethodPatch, session.Links.Self, map[string]any{
		"accountMode": true,
	})
	test.AssertHTTPStatus(suite.T(), http.StatusBadRequest, &r)
}

func (suite *TestSuiteStandard) TestPayDayReset() {
	_ = suite.createTestEnvelope(v1.EnvelopeEditable{
		Name:            "Groceries",
		CashFlowAmount:  decimal.NewFromInt(400),
		CashFlowEnabled: true,
	})

	session := suite.startTestSession()
	r := test.Request(suite.T(), suite.router, http.MethodPatch, session.Links.Self, map[string]any{"inflow": "2000"})
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &r)
	r = test.Request(suite.T(), suite.router, http.MethodPost, session.Links.Review, "")
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &r)
	r = test.Request(suite.T(), suite.router, http.MethodPost, session.Links.Execute, "")
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &r)

	r = test.Request(suite.T(), suite.router, http.MethodPost, session.Links.Reset, "")
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &r)

	var response v1.PayDaySessionResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), payday.PhaseInflowEntry, response.Data.Phase)
	// The last inflow is offered again
	assert.True(suite.T(), response.Data.Inflow.Equal(decimal.NewFromInt(2000)))
}

func (suite *TestSuiteStandard) TestPayDayCancel() {
	session := suite.startTestSession()

	r := test.Request(suite.T(), suite.router, http.MethodDelete, session.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), http.StatusNoContent, &r)

	r = test.Request(suite.T(), suite.router, http.MethodGet, session.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), http.StatusNotFound, &r)
}
