package models

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// UpcomingWindow is how far ahead the autopilot preparedness summary
// looks for due scheduled payments.
const UpcomingWindow = 30 * 24 * time.Hour

// ScheduledPayment is a known upcoming obligation. It is only consumed
// by the pay day summary, which checks whether the envelope funding a
// payment already covers it.
type ScheduledPayment struct {
	DefaultModel
	Payee      string
	Note       string
	Amount     decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	DueDate    time.Time
	EnvelopeID *uuid.UUID // Envelope that funds this payment. Optional, match rules apply when unset.
	Envelope   Envelope   `json:"-"`
	Archived   bool
}

func (s *ScheduledPayment) BeforeSave(_ *gorm.DB) error {
	s.Payee = strings.TrimSpace(s.Payee)
	s.Note = strings.TrimSpace(s.Note)

	if s.EnvelopeID != nil && *s.EnvelopeID == uuid.Nil {
		s.EnvelopeID = nil
	}

	if s.DueDate.IsZero() {
		s.DueDate = time.Now().In(time.UTC)
	} else {
		s.DueDate = s.DueDate.In(time.UTC)
	}

	return nil
}

func (s *ScheduledPayment) AfterSave(_ *gorm.DB) error {
	if !s.Amount.IsPositive() {
		return ErrAmountNotPositive
	}

	return nil
}

// UpcomingPayments returns all unarchived payments due within the
// upcoming window, ordered by due date.
func UpcomingPayments(db *gorm.DB, now time.Time) ([]ScheduledPayment, error) {
	var payments []ScheduledPayment

	err := db.
		Where("due_date >= ? AND due_date < ?", now, now.Add(UpcomingWindow)).
		Where("archived = ?", false).
		Order("date(due_date) ASC, payee ASC").
		Find(&payments).Error

	return payments, err
}

// Returns all scheduled payments on this instance for export
func (ScheduledPayment) Export() (json.RawMessage, error) {
	var payments []ScheduledPayment
	err := DB.Unscoped().Where(&ScheduledPayment{}).Find(&payments).Error
	if err != nil {
		return nil, err
	}

	j, err := json.Marshal(&payments)
	if err != nil {
		return json.RawMessage{}, err
	}
	return json.RawMessage(j), nil
}
