package models

import (
	"encoding/json"
	"strings"

	"gorm.io/gorm"
)

// Binder groups envelopes for review, it has no financial effect.
// Membership is expressed through Envelope.BinderID.
type Binder struct {
	DefaultModel
	Name     string `gorm:"uniqueIndex:binder_name"`
	Note     string
	Archived bool
}

func (b *Binder) BeforeSave(_ *gorm.DB) error {
	b.Name = strings.TrimSpace(b.Name)
	b.Note = strings.TrimSpace(b.Note)

	return nil
}

// Envelopes returns all envelopes in this binder.
func (b Binder) Envelopes(db *gorm.DB) ([]Envelope, error) {
	var envelopes []Envelope
	err := db.Where(&Envelope{BinderID: &b.ID}).Find(&envelopes).Error
	return envelopes, err
}

// Returns all binders on this instance for export
func (Binder) Export() (json.RawMessage, error) {
	var binders []Binder
	err := DB.Unscoped().Where(&Binder{}).Find(&binders).Error
	if err != nil {
		return nil, err
	}

	j, err := json.Marshal(&binders)
	if err != nil {
		return json.RawMessage{}, err
	}
	return json.RawMessage(j), nil
}
