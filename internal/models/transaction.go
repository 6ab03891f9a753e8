package models

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TransactionType describes which ledger operation created a transaction.
type TransactionType string

const (
	TransactionDeposit          TransactionType = "deposit"
	TransactionWithdrawal       TransactionType = "withdrawal"
	TransactionTransfer         TransactionType = "transfer"
	TransactionScheduledPayment TransactionType = "scheduled-payment"
)

// Transaction is an immutable ledger entry. Every balance mutation of
// an envelope or account writes exactly one of these; transactions are
// never updated afterwards.
type Transaction struct {
	DefaultModel
	Type       TransactionType `gorm:"index"`
	Amount     decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	EnvelopeID *uuid.UUID
	Envelope   Envelope `json:"-"`
	AccountID  *uuid.UUID
	Account    Account   `json:"-"`
	Date       time.Time // Time of day is currently only used for sorting
	Note       string
	// TransferID pairs the two records of an account to envelope
	// transfer with each other.
	TransferID *uuid.UUID `gorm:"index"`
}

// BeforeSave
//   - sets the timezone for the Date to UTC
//   - trims whitespace from string fields
func (t *Transaction) BeforeSave(_ *gorm.DB) error {
	t.Note = strings.TrimSpace(t.Note)

	if t.EnvelopeID != nil && *t.EnvelopeID == uuid.Nil {
		t.EnvelopeID = nil
	}

	if t.AccountID != nil && *t.AccountID == uuid.Nil {
		t.AccountID = nil
	}

	if t.Date.IsZero() {
		t.Date = time.Now().In(time.UTC)
	} else {
		t.Date = t.Date.In(time.UTC)
	}

	return nil
}

// AfterSave rejects non-positive amounts. The direction of money
// movement is expressed by the transaction type, not by the sign.
func (t *Transaction) AfterSave(_ *gorm.DB) error {
	if !t.Amount.IsPositive() {
		return ErrAmountNotPositive
	}

	return nil
}

// AfterFind enforces dates to be in UTC.
func (t *Transaction) AfterFind(tx *gorm.DB) (err error) {
	err = t.DefaultModel.AfterFind(tx)
	if err != nil {
		return err
	}

	t.Date = t.Date.In(time.UTC)
	return
}

// Returns all transactions on this instance for export
func (Transaction) Export() (json.RawMessage, error) {
	var transactions []Transaction
	err := DB.Unscoped().Where(&Transaction{}).Find(&transactions).Error
	if err != nil {
		return nil, err
	}

	j, err := json.Marshal(&transactions)
	if err != nil {
		return json.RawMessage{}, err
	}
	return json.RawMessage(j), nil
}
