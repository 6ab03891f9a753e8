package models_test

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stuffd/backend/internal/models"
	"github.com/stuffd/backend/internal/types"
	"gorm.io/gorm"
)

func (suite *TestSuiteStandard) TestEnvelopeTrimWhitespace() {
	name := " Rainy Day  \t"
	note := "  Saving for storms    "

	envelope := suite.createTestEnvelope(models.Envelope{
		Name: name,
		Note: note,
	})

	assert.Equal(suite.T(), strings.TrimSpace(name), envelope.Name)
	assert.Equal(suite.T(), strings.TrimSpace(note), envelope.Note)
}

func (suite *TestSuiteStandard) TestEnvelopeAfterSave() {
	tests := []struct {
		name     string
		envelope models.Envelope
		err      error
	}{
		{
			"cash flow enabled without amount",
			models.Envelope{CashFlowEnabled: true},
			models.ErrCashFlowWithoutAmount,
		},
		{
			"cash flow enabled with negative amount",
			models.Envelope{CashFlowEnabled: true, CashFlowAmount: decimal.NewFromFloat(-10)},
			models.ErrCashFlowWithoutAmount,
		},
		{
			"negative target",
			models.Envelope{TargetAmount: decimal.NewFromFloat(-1)},
			models.ErrTargetAmountNegative,
		},
		{
			"valid",
			models.Envelope{CashFlowEnabled: true, CashFlowAmount: decimal.NewFromFloat(400), TargetAmount: decimal.NewFromFloat(2000)},
			nil,
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			e := tt.envelope
			err := e.AfterSave(&gorm.DB{})
			assert.Equal(t, tt.err, err)
		})
	}
}

func (suite *TestSuiteStandard) TestEnvelopeNilBinderID() {
	nilID := uuid.Nil
	envelope := suite.createTestEnvelope(models.Envelope{
		BinderID:        &nilID,
		LinkedAccountID: &nilID,
	})

	assert.Nil(suite.T(), envelope.BinderID)
	assert.Nil(suite.T(), envelope.LinkedAccountID)
}

func (suite *TestSuiteStandard) TestEnvelopeInvalidBinder() {
	id := uuid.New()
	err := models.DB.Create(&models.Envelope{Name: "Orphan", BinderID: &id}).Error
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestEnvelopeHasHorizon() {
	assert.False(suite.T(), models.Envelope{}.HasHorizon())
	assert.True(suite.T(), models.Envelope{TargetAmount: decimal.NewFromFloat(1500), TargetMonth: types.NewMonth(2027, 6)}.HasHorizon())
}

func (suite *TestSuiteStandard) TestEnvelopeAutopilotEligible() {
	tests := []struct {
		name     string
		envelope models.Envelope
		eligible bool
	}{
		{"enabled with amount", models.Envelope{CashFlowEnabled: true, CashFlowAmount: decimal.NewFromFloat(100)}, true},
		{"disabled", models.Envelope{CashFlowAmount: decimal.NewFromFloat(100)}, false},
		{"archived", models.Envelope{CashFlowEnabled: true, CashFlowAmount: decimal.NewFromFloat(100), Archived: true}, false},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.eligible, tt.envelope.AutopilotEligible())
		})
	}
}

func (suite *TestSuiteStandard) TestEnvelopeMonthlyNeed() {
	tests := []struct {
		name     string
		envelope models.Envelope
		from     types.Month
		need     string
	}{
		{
			"spread over the remaining months",
			models.Envelope{Balance: decimal.NewFromFloat(500), TargetAmount: decimal.NewFromFloat(2500), TargetMonth: types.NewMonth(2027, 6)},
			types.NewMonth(2026, 8),
			"200",
		},
		{
			"full amount when the target month has passed",
			models.Envelope{TargetAmount: decimal.NewFromFloat(1000), TargetMonth: types.NewMonth(2026, 5)},
			types.NewMonth(2026, 8),
			"1000",
		},
		{
			"zero when the balance covers the target",
			models.Envelope{Balance: decimal.NewFromFloat(1200), TargetAmount: decimal.NewFromFloat(1000), TargetMonth: types.NewMonth(2027, 6)},
			types.NewMonth(2026, 8),
			"0",
		},
		{
			"zero without a horizon",
			models.Envelope{TargetMonth: types.NewMonth(2027, 6)},
			types.NewMonth(2026, 8),
			"0",
		},
		{
			"zero without a target month",
			models.Envelope{TargetAmount: decimal.NewFromFloat(1000)},
			types.NewMonth(2026, 8),
			"0",
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			need := tt.envelope.MonthlyNeed(tt.from)
			assert.True(t, need.Equal(decimal.RequireFromString(tt.need)), "need is %s", need)
		})
	}
}

func (suite *TestSuiteStandard) TestEnvelopeNameUniquePerBinder() {
	binder := suite.createTestBinder(models.Binder{})

	_ = suite.createTestEnvelope(models.Envelope{Name: "Car", BinderID: &binder.ID})
	err := models.DB.Create(&models.Envelope{Name: "Car", BinderID: &binder.ID}).Error

	assert.ErrorIs(suite.T(), err, models.ErrEnvelopeNameNotUnique)
}
