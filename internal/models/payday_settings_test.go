package models_test

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stuffd/backend/internal/models"
)

func (suite *TestSuiteStandard) TestPayDaySettingsEmptyRead() {
	settings, err := models.ReadPayDaySettings(models.DB)

	assert.Nil(suite.T(), err)
	assert.True(suite.T(), settings.LastPayAmount.IsZero())
	assert.Nil(suite.T(), settings.DefaultAccountID)
}

func (suite *TestSuiteStandard) TestPayDaySettingsRoundTrip() {
	account := suite.createTestAccount(models.Account{})

	err := models.WritePayDaySettings(models.DB, models.PayDaySettings{
		LastPayAmount:    decimal.NewFromFloat(2400),
		LastPayDate:      time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC),
		PayFrequencyDays: 14,
		DefaultAccountID: &account.ID,
	})
	assert.Nil(suite.T(), err)

	settings, err := models.ReadPayDaySettings(models.DB)
	assert.Nil(suite.T(), err)
	assert.True(suite.T(), settings.LastPayAmount.Equal(decimal.NewFromFloat(2400)))
	assert.Equal(suite.T(), uint(14), settings.PayFrequencyDays)
	assert.Equal(suite.T(), account.ID, *settings.DefaultAccountID)
}

func (suite *TestSuiteStandard) TestPayDaySettingsSingleton() {
	// Two writes end up in the same record
	assert.Nil(suite.T(), models.WritePayDaySettings(models.DB, models.PayDaySettings{LastPayAmount: decimal.NewFromFloat(1000)}))
	assert.Nil(suite.T(), models.WritePayDaySettings(models.DB, models.PayDaySettings{LastPayAmount: decimal.NewFromFloat(1200)}))

	var count int64
	models.DB.Model(&models.PayDaySettings{}).Count(&count)
	assert.Equal(suite.T(), int64(1), count)

	settings, err := models.ReadPayDaySettings(models.DB)
	assert.Nil(suite.T(), err)
	assert.True(suite.T(), settings.LastPayAmount.Equal(decimal.NewFromFloat(1200)))
}
