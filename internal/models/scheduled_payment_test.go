package models_test

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stuffd/backend/internal/models"
)

func (suite *TestSuiteStandard) TestUpcomingPayments() {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

	_ = suite.createTestScheduledPayment(models.ScheduledPayment{
		Payee: "Insurance", Amount: decimal.NewFromFloat(120), DueDate: now.AddDate(0, 0, 10),
	})
	_ = suite.createTestScheduledPayment(models.ScheduledPayment{
		Payee: "Rent", Amount: decimal.NewFromFloat(900), DueDate: now.AddDate(0, 0, 2),
	})

	// Outside the window
	_ = suite.createTestScheduledPayment(models.ScheduledPayment{
		Payee: "Car tax", Amount: decimal.NewFromFloat(200), DueDate: now.AddDate(0, 2, 0),
	})
	_ = suite.createTestScheduledPayment(models.ScheduledPayment{
		Payee: "Paid already", Amount: decimal.NewFromFloat(10), DueDate: now.AddDate(0, 0, -1),
	})

	// Archived
	_ = suite.createTestScheduledPayment(models.ScheduledPayment{
		Payee: "Old gym", Amount: decimal.NewFromFloat(30), DueDate: now.AddDate(0, 0, 5), Archived: true,
	})

	payments, err := models.UpcomingPayments(models.DB, now)
	assert.Nil(suite.T(), err)
	assert.Len(suite.T(), payments, 2)
	assert.Equal(suite.T(), "Rent", payments[0].Payee, "payments must be ordered by due date")
	assert.Equal(suite.T(), "Insurance", payments[1].Payee)
}

func (suite *TestSuiteStandard) TestMatchRulesByPriority() {
	envelope := suite.createTestEnvelope(models.Envelope{})

	_ = suite.createTestMatchRule(models.MatchRule{Priority: 2, Match: "Rent*", EnvelopeID: envelope.ID})
	_ = suite.createTestMatchRule(models.MatchRule{Priority: 1, Match: "Zoo*", EnvelopeID: envelope.ID})
	_ = suite.createTestMatchRule(models.MatchRule{Priority: 1, Match: "Gym*", EnvelopeID: envelope.ID})

	rules, err := models.MatchRulesByPriority(models.DB)
	assert.Nil(suite.T(), err)
	assert.Len(suite.T(), rules, 3)
	assert.Equal(suite.T(), "Gym*", rules[0].Match)
	assert.Equal(suite.T(), "Zoo*", rules[1].Match)
	assert.Equal(suite.T(), "Rent*", rules[2].Match)
}

func (suite *TestSuiteStandard) TestMatchRuleInvalidEnvelope() {
	rule := models.MatchRule{Priority: 1, Match: "Rent*", EnvelopeID: suite.createTestEnvelope(models.Envelope{}).ID}
	_ = suite.createTestMatchRule(rule)

	err := models.DB.Create(&models.MatchRule{Priority: 1, Match: "x", EnvelopeID: models.Envelope{}.ID}).Error
	assert.NotNil(suite.T(), err)
}
