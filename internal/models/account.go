package models

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Account represents a real-world money holding container,
// e.g. a bank account.
//
// Its balance is signed since credit accounts can be negative. Like
// envelope balances it is only changed through the ledger primitives.
type Account struct {
	DefaultModel
	Name     string `gorm:"uniqueIndex:account_name"`
	Note     string
	Balance  decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Default  bool            // Is this the default target for pay day deposits?
	Archived bool
}

func (a *Account) BeforeSave(_ *gorm.DB) error {
	a.Name = strings.TrimSpace(a.Name)
	a.Note = strings.TrimSpace(a.Note)

	return nil
}

// AfterSave keeps the default account unique. When an account is saved
// as the default, every other account loses the flag.
func (a *Account) AfterSave(tx *gorm.DB) error {
	if !a.Default {
		return nil
	}

	return tx.Model(&Account{}).
		Where("id != ? AND \"default\" = ?", a.ID, true).
		Update("default", false).Error
}

// DefaultAccount returns the default pay day account, if one is configured.
func DefaultAccount(db *gorm.DB) (Account, error) {
	var account Account
	err := db.Where(&Account{Default: true}, "Default").First(&account).Error
	return account, err
}

// Returns all accounts on this instance for export
func (Account) Export() (json.RawMessage, error) {
	var accounts []Account
	err := DB.Unscoped().Where(&Account{}).Find(&accounts).Error
	if err != nil {
		return nil, err
	}

	j, err := json.Marshal(&accounts)
	if err != nil {
		return json.RawMessage{}, err
	}
	return json.RawMessage(j), nil
}
