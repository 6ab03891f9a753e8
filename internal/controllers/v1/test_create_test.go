package v1_test

import (
	"net/http"

	"github.com/google/uuid"
	v1 "github.com/stuffd/backend/internal/controllers/v1"
	"github.com/stuffd/backend/test"
)

// createTestBinder creates a binder and returns its response. The test fails
// if the binder cannot be created.
func (suite *TestSuiteStandard) createTestBinder(c v1.BinderEditable) v1.BinderResponse {
	if c.Name == "" {
		c.Name = uuid.NewString()
	}

	body := []v1.BinderEditable{c}

	r := test.Request(suite.T(), suite.router, http.MethodPost, "http://example.com/v1/binders", body)
	test.AssertHTTPStatus(suite.T(), http.StatusCreated, &r)

	var response v1.BinderCreateResponse
	test.DecodeResponse(suite.T(), &r, &response)

	return response.Data[0]
}

func (suite *TestSuiteStandard) createTestEnvelope(c v1.EnvelopeEditable) v1.EnvelopeResponse {
	if c.Name == "" {
		c.Name = uuid.NewString()
	}

	body := []v1.EnvelopeEditable{c}

	r := test.Request(suite.T(), suite.router, http.MethodPost, "http://example.com/v1/envelopes", body)
	test.AssertHTTPStatus(suite.T(), http.StatusCreated, &r)

	var response v1.EnvelopeCreateResponse
	test.DecodeResponse(suite.T(), &r, &response)

	return response.Data[0]
}

func (suite *TestSuiteStandard) createTestAccount(c v1.AccountEditable) v1.AccountResponse {
	if c.Name == "" {
		c.Name = uuid.NewString()
	}

	body := []v1.AccountEditable{c}

	r := test.Request(suite.T(), suite.router, http.MethodPost, "http://example.com/v1/accounts", body)
	test.AssertHTTPStatus(suite.T(), http.StatusCreated, &r)

	var response v1.AccountCreateResponse
	test.DecodeResponse(suite.T(), &r, &response)

	return response.Data[0]
}

func (suite *TestSuiteStandard) createTestScheduledPayment(c v1.ScheduledPaymentEditable) v1.ScheduledPaymentResponse {
	if c.Payee == "" {
		c.Payee = uuid.NewString()
	}

	body := []v1.ScheduledPaymentEditable{c}

	r := test.Request(suite.T(), suite.router, http.MethodPost, "http://example.com/v1/scheduled-payments", body)
	test.AssertHTTPStatus(suite.T(), http.StatusCreated, &r)

	var response v1.ScheduledPaymentCreateResponse
	test.DecodeResponse(suite.T(), &r, &response)

	return response.Data[0]
}

func (suite *TestSuiteStandard) createTestMatchRule(c v1.MatchRuleEditable) v1.MatchRuleResponse {
	body := []v1.MatchRuleEditable{c}

	r := test.Request(suite.T(), suite.router, http.MethodPost, "http://example.com/v1/match-rules", body)
	test.AssertHTTPStatus(suite.T(), http.StatusCreated, &r)

	var response v1.MatchRuleCreateResponse
	test.DecodeResponse(suite.T(), &r, &response)

	return response.Data[0]
}
