package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PayDaySettings is a singleton record with the last pay event data. It
// pre-populates the inflow entry of the next session and is written
// back after every successful execution.
type PayDaySettings struct {
	ID uint `gorm:"primaryKey" json:"-"`
	Timestamps
	LastPayAmount    decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	LastPayDate      time.Time
	PayFrequencyDays uint       // Days between pay events, 0 when unknown
	DefaultAccountID *uuid.UUID // Chosen account for account mode
}

var ErrSettingsSingleton = errors.New("pay day settings are a singleton")

// BeforeSave pins the singleton to its only valid primary key.
func (s *PayDaySettings) BeforeSave(_ *gorm.DB) error {
	if s.ID != 0 && s.ID != 1 {
		return ErrSettingsSingleton
	}

	s.ID = 1

	if s.DefaultAccountID != nil && *s.DefaultAccountID == uuid.Nil {
		s.DefaultAccountID = nil
	}

	if !s.LastPayDate.IsZero() {
		s.LastPayDate = s.LastPayDate.In(time.UTC)
	}

	return nil
}

// ReadPayDaySettings returns the settings record. When no pay event has
// been executed yet, an empty record is returned.
func ReadPayDaySettings(db *gorm.DB) (PayDaySettings, error) {
	var settings PayDaySettings

	err := db.First(&settings, 1).Error
	if errors.Is(err, ErrResourceNotFound) {
		return PayDaySettings{}, nil
	}
	if err != nil {
		return PayDaySettings{}, err
	}

	return settings, nil
}

// WritePayDaySettings upserts the singleton record.
func WritePayDaySettings(db *gorm.DB, settings PayDaySettings) error {
	settings.ID = 1
	return db.Save(&settings).Error
}
