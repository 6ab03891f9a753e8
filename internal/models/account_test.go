package models_test

import (
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stuffd/backend/internal/models"
	"gorm.io/gorm"
)

func (suite *TestSuiteStandard) TestAccountTrimWhitespace() {
	account := suite.createTestAccount(models.Account{
		Name: " Checking \t",
		Note: "  main account ",
	})

	assert.Equal(suite.T(), "Checking", account.Name)
	assert.Equal(suite.T(), "main account", account.Note)
}

func (suite *TestSuiteStandard) TestAccountNameUnique() {
	_ = suite.createTestAccount(models.Account{Name: "Checking"})
	err := models.DB.Create(&models.Account{Name: "Checking"}).Error

	assert.ErrorIs(suite.T(), err, models.ErrAccountNameNotUnique)
}

func (suite *TestSuiteStandard) TestAccountDefaultUnique() {
	first := suite.createTestAccount(models.Account{Default: true})
	second := suite.createTestAccount(models.Account{Default: true})

	defaultAccount, err := models.DefaultAccount(models.DB)
	assert.Nil(suite.T(), err)
	assert.Equal(suite.T(), second.ID, defaultAccount.ID)

	// The first account lost the default flag
	var reread models.Account
	assert.Nil(suite.T(), models.DB.First(&reread, first.ID).Error)
	assert.False(suite.T(), reread.Default)
}

func (suite *TestSuiteStandard) TestDefaultAccountNotConfigured() {
	_ = suite.createTestAccount(models.Account{})

	_, err := models.DefaultAccount(models.DB)
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestAccountNegativeBalance() {
	// Credit accounts may go below zero, the database does not forbid it
	account := suite.createTestAccount(models.Account{Balance: decimal.NewFromFloat(-521.48)})

	var reread models.Account
	assert.Nil(suite.T(), models.DB.First(&reread, account.ID).Error)
	assert.True(suite.T(), reread.Balance.Equal(decimal.NewFromFloat(-521.48)))
}

func (suite *TestSuiteStandard) TestAccountAfterSaveNoDefault() {
	a := models.Account{}
	assert.Nil(suite.T(), a.AfterSave(&gorm.DB{}))
}
