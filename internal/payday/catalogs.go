// Package payday implements the pay day allocation and distribution
// engine: the allocation calculator, the projection calculator, the
// cockpit session state machine and the execution stager.
//
// The engine never touches the database directly. It consumes the
// catalog interfaces below, which the ledger package implements.
package payday

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stuffd/backend/internal/models"
)

// EnvelopeCatalog lists envelopes and applies standalone deposits.
// Deposits are used when no account is part of the pay event.
type EnvelopeCatalog interface {
	Envelopes() ([]models.Envelope, error)
	EnvelopeDeposit(envelopeID uuid.UUID, amount decimal.Decimal, note string, date time.Time) (models.Transaction, error)
}

// AccountCatalog lists accounts and applies account mutations.
type AccountCatalog interface {
	Accounts() ([]models.Account, error)
	Account(id uuid.UUID) (models.Account, error)
	AccountDeposit(accountID uuid.UUID, amount decimal.Decimal, note string) (models.Transaction, error)
	AccountWithdraw(accountID uuid.UUID, amount decimal.Decimal, note string) (models.Transaction, error)
	TransferToEnvelope(accountID, envelopeID uuid.UUID, amount decimal.Decimal, note string, date time.Time) (models.Transaction, models.Transaction, error)
	AdjustBalance(accountID uuid.UUID, delta decimal.Decimal) (models.Transaction, error)
}

// BinderCatalog lists binders for membership lookup.
type BinderCatalog interface {
	Binders() ([]models.Binder, error)
}

// ScheduledPaymentCatalog feeds the autopilot preparedness summary.
type ScheduledPaymentCatalog interface {
	UpcomingPayments(now time.Time) ([]models.ScheduledPayment, error)
	MatchRules() ([]models.MatchRule, error)
}

// SettingsStore persists the pay day settings between sessions.
type SettingsStore interface {
	ReadSettings() (models.PayDaySettings, error)
	WriteSettings(settings models.PayDaySettings) error
}

// Catalogs bundles everything a session needs.
type Catalogs interface {
	EnvelopeCatalog
	AccountCatalog
	BinderCatalog
	ScheduledPaymentCatalog
	SettingsStore
}
