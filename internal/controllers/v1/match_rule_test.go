package v1_test

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	v1 "github.com/stuffd/backend/internal/controllers/v1"
	"github.com/stuffd/backend/test"
)

func (suite *TestSuiteStandard) TestMatchRuleCreate() {
	envelope := suite.createTestEnvelope(v1.EnvelopeEditable{Name: "Subscriptions"})

	rule := suite.createTestMatchRule(v1.MatchRuleEditable{
		Priority:   2,
		Match:      "Netflix*",
		EnvelopeID: envelope.Data.ID,
	})

	assert.Equal(suite.T(), "Netflix*", rule.Data.Match)
	assert.Equal(suite.T(), uint(2), rule.Data.Priority)
}

func (suite *TestSuiteStandard) TestMatchRuleCreateBrokenEnvelopeReference() {
	body := []v1.MatchRuleEditable{{Match: "Anything*", EnvelopeID: uuid.New()}}

	r := test.Request(suite.T(), suite.router, http.MethodPost, "http://example.com/v1/match-rules", body)
	test.AssertHTTPStatus(suite.T(), http.StatusNotFound, &r)
}

func (suite *TestSuiteStandard) TestMatchRuleListOrder() {
	envelope := suite.createTestEnvelope(v1.EnvelopeEditable{Name: "Subscriptions"})

	_ = suite.createTestMatchRule(v1.MatchRuleEditable{Priority: 2, Match: "Second*", EnvelopeID: envelope.Data.ID})
	_ = suite.createTestMatchRule(v1.MatchRuleEditable{Priority: 1, Match: "First*", EnvelopeID: envelope.Data.ID})

	r := test.Request(suite.T(), suite.router, http.MethodGet, "http://example.com/v1/match-rules", "")
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &r)

	var response v1.MatchRuleListResponse
	test.DecodeResponse(suite.T(), &r, &response)
	require.Len(suite.T(), response.Data, 2)
	assert.Equal(suite.T(), "First*", response.Data[0].Match)
	assert.Equal(suite.T(), "Second*", response.Data[1].Match)
}

func (suite *TestSuiteStandard) TestMatchRuleUpdate() {
	envelope := suite.createTestEnvelope(v1.EnvelopeEditable{Name: "Subscriptions"})
	rule := suite.createTestMatchRule(v1.MatchRuleEditable{Match: "Netflix*", EnvelopeID: envelope.Data.ID})

	r := test.Request(suite.T(), suite.router, http.MethodPatch, rule.Data.Links.Self, map[string]any{
		"match": "Spotify*",
	})
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &r)

	var response v1.MatchRuleResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), "Spotify*", response.Data.Match)
}

func (suite *TestSuiteStandard) TestMatchRuleDelete() {
	envelope := suite.createTestEnvelope(v1.EnvelopeEditable{Name: "Subscriptions"})
	rule := suite.createTestMatchRule(v1.MatchRuleEditable{Match: "Netflix*", EnvelopeID: envelope.Data.ID})

	r := test.Request(suite.T(), suite.router, http.MethodDelete, rule.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), http.StatusNoContent, &r)

	r = test.Request(suite.T(), suite.router, http.MethodGet, rule.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), http.StatusNotFound, &r)
}
