package models

import (
	"encoding/json"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MatchRule maps a payee glob to the envelope that funds payments to
// that payee. The preparedness summary uses these rules to attribute
// scheduled payments without an explicit envelope link.
type MatchRule struct {
	DefaultModel
	Priority   uint
	Match      string
	EnvelopeID uuid.UUID
	Envelope   Envelope `json:"-"`
}

func (r *MatchRule) BeforeCreate(tx *gorm.DB) error {
	_ = r.DefaultModel.BeforeCreate(tx)
	return tx.First(&Envelope{}, r.EnvelopeID).Error
}

// MatchRulesByPriority returns all match rules ordered so that the
// first glob hit wins.
func MatchRulesByPriority(db *gorm.DB) ([]MatchRule, error) {
	var rules []MatchRule
	err := db.Order("priority ASC, match ASC").Find(&rules).Error
	return rules, err
}

// Returns all match rules on this instance for export
func (MatchRule) Export() (json.RawMessage, error) {
	var rules []MatchRule
	err := DB.Unscoped().Where(&MatchRule{}).Find(&rules).Error
	if err != nil {
		return nil, err
	}

	j, err := json.Marshal(&rules)
	if err != nil {
		return json.RawMessage{}, err
	}
	return json.RawMessage(j), nil
}
