package models

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stuffd/backend/internal/types"
	"gorm.io/gorm"
)

// Envelope represents a savings bucket.
//
// Its balance is only ever changed through the ledger primitives,
// which pair every mutation with a Transaction record.
type Envelope struct {
	DefaultModel
	Name            string          `gorm:"uniqueIndex:envelope_name_binder_id"`
	Note            string
	Balance         decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	TargetAmount    decimal.Decimal `gorm:"type:DECIMAL(20,8)"` // Zero means the envelope has no horizon
	TargetMonth     types.Month
	CashFlowAmount  decimal.Decimal `gorm:"type:DECIMAL(20,8)"` // The autopilot contribution per pay event
	CashFlowEnabled bool
	BinderID        *uuid.UUID `gorm:"uniqueIndex:envelope_name_binder_id"`
	Binder          Binder     `json:"-"`
	LinkedAccountID *uuid.UUID
	Archived        bool
}

func (e *Envelope) BeforeSave(_ *gorm.DB) error {
	e.Name = strings.TrimSpace(e.Name)
	e.Note = strings.TrimSpace(e.Note)

	// Ensure that the Binder ID is nil and not a pointer to a nil UUID
	if e.BinderID != nil && *e.BinderID == uuid.Nil {
		e.BinderID = nil
	}

	if e.LinkedAccountID != nil && *e.LinkedAccountID == uuid.Nil {
		e.LinkedAccountID = nil
	}

	return nil
}

// AfterSave validates the cash flow and horizon configuration.
func (e *Envelope) AfterSave(_ *gorm.DB) error {
	if e.CashFlowEnabled && !e.CashFlowAmount.IsPositive() {
		return ErrCashFlowWithoutAmount
	}

	if e.TargetAmount.IsNegative() {
		return ErrTargetAmountNegative
	}

	return nil
}

func (e *Envelope) BeforeCreate(tx *gorm.DB) error {
	_ = e.DefaultModel.BeforeCreate(tx)

	if e.BinderID != nil && *e.BinderID != uuid.Nil {
		return tx.First(&Binder{}, *e.BinderID).Error
	}

	return nil
}

// HasHorizon reports whether a target amount is configured.
func (e Envelope) HasHorizon() bool {
	return e.TargetAmount.IsPositive()
}

// AutopilotEligible reports whether the envelope participates in
// default allocation.
func (e Envelope) AutopilotEligible() bool {
	return e.CashFlowEnabled && e.CashFlowAmount.IsPositive() && !e.Archived
}

// MonthlyNeed returns the amount that has to be added per month, from
// the given month on, to reach the target amount by the target month.
// It is zero without a horizon or when the balance already covers the
// target. A target month that is not in the future needs the full
// missing amount now.
func (e Envelope) MonthlyNeed(from types.Month) decimal.Decimal {
	if !e.HasHorizon() || e.TargetMonth.IsZero() {
		return decimal.Zero
	}

	missing := e.TargetAmount.Sub(e.Balance)
	if !missing.IsPositive() {
		return decimal.Zero
	}

	months := int64(from.MonthsUntil(e.TargetMonth))
	if months < 1 {
		return missing
	}

	return missing.DivRound(decimal.NewFromInt(months), 2)
}

// Returns all envelopes on this instance for export
func (Envelope) Export() (json.RawMessage, error) {
	var envelopes []Envelope
	err := DB.Unscoped().Where(&Envelope{}).Find(&envelopes).Error
	if err != nil {
		return nil, err
	}

	j, err := json.Marshal(&envelopes)
	if err != nil {
		return json.RawMessage{}, err
	}
	return json.RawMessage(j), nil
}
