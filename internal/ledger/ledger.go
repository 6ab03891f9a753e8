// Package ledger implements the atomic ledger primitives.
//
// Every balance mutation of an envelope or account happens here and is
// paired with an immutable Transaction record inside a single database
// transaction. Amounts are rounded to the currency minor unit at this
// boundary; callers may pass amounts with full precision.
package ledger

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stuffd/backend/internal/models"
	"gorm.io/gorm"
)

// MinorUnitPlaces is the precision money is rounded to when a ledger
// record is written. Two decimal places for decimal currencies.
const MinorUnitPlaces = 2

// Ledger exposes the ledger primitives and catalog reads on the
// connected database. It satisfies the catalog interfaces of the
// payday package.
type Ledger struct{}

func (Ledger) db() *gorm.DB {
	return models.DB
}

// Round returns the amount rounded to the currency minor unit.
func Round(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(MinorUnitPlaces)
}

// Envelopes returns all unarchived envelopes.
func (l Ledger) Envelopes() ([]models.Envelope, error) {
	var envelopes []models.Envelope
	err := l.db().Where("archived = ?", false).Order("name ASC").Find(&envelopes).Error
	return envelopes, err
}

// Binders returns all unarchived binders.
func (l Ledger) Binders() ([]models.Binder, error) {
	var binders []models.Binder
	err := l.db().Where("archived = ?", false).Order("name ASC").Find(&binders).Error
	return binders, err
}

// Accounts returns all unarchived accounts.
func (l Ledger) Accounts() ([]models.Account, error) {
	var accounts []models.Account
	err := l.db().Where("archived = ?", false).Order("name ASC").Find(&accounts).Error
	return accounts, err
}

// Account returns a single account.
func (l Ledger) Account(id uuid.UUID) (models.Account, error) {
	var account models.Account
	err := l.db().First(&account, id).Error
	return account, err
}

// EnvelopeDeposit adds money to an envelope and records the deposit.
// This is the virtual deposit used when no account is involved.
func (l Ledger) EnvelopeDeposit(envelopeID uuid.UUID, amount decimal.Decimal, note string, date time.Time) (models.Transaction, error) {
	amount = Round(amount)
	if !amount.IsPositive() {
		return models.Transaction{}, models.ErrAmountNotPositive
	}

	var transaction models.Transaction

	err := l.db().Transaction(func(tx *gorm.DB) error {
		var envelope models.Envelope
		if err := tx.First(&envelope, envelopeID).Error; err != nil {
			return err
		}

		envelope.Balance = envelope.Balance.Add(amount)
		if err := tx.Model(&envelope).Update("balance", envelope.Balance).Error; err != nil {
			return err
		}

		transaction = models.Transaction{
			Type:       models.TransactionDeposit,
			Amount:     amount,
			EnvelopeID: &envelope.ID,
			Date:       date,
			Note:       note,
		}
		return tx.Create(&transaction).Error
	})
	if err != nil {
		return models.Transaction{}, fmt.Errorf("envelope deposit failed: %w", err)
	}

	return transaction, nil
}

// EnvelopeWithdraw removes money from an envelope and records the
// withdrawal. Envelope balances may not go negative.
func (l Ledger) EnvelopeWithdraw(envelopeID uuid.UUID, amount decimal.Decimal, note string, date time.Time) (models.Transaction, error) {
	amount = Round(amount)
	if !amount.IsPositive() {
		return models.Transaction{}, models.ErrAmountNotPositive
	}

	var transaction models.Transaction

	err := l.db().Transaction(func(tx *gorm.DB) error {
		var envelope models.Envelope
		if err := tx.First(&envelope, envelopeID).Error; err != nil {
			return err
		}

		if envelope.Balance.LessThan(amount) {
			return ErrInsufficientEnvelopeFunds
		}

		envelope.Balance = envelope.Balance.Sub(amount)
		if err := tx.Model(&envelope).Update("balance", envelope.Balance).Error; err != nil {
			return err
		}

		transaction = models.Transaction{
			Type:       models.TransactionWithdrawal,
			Amount:     amount,
			EnvelopeID: &envelope.ID,
			Date:       date,
			Note:       note,
		}
		return tx.Create(&transaction).Error
	})
	if err != nil {
		return models.Transaction{}, fmt.Errorf("envelope withdrawal failed: %w", err)
	}

	return transaction, nil
}

// AccountDeposit adds money to an account and records the deposit.
func (l Ledger) AccountDeposit(accountID uuid.UUID, amount decimal.Decimal, note string) (models.Transaction, error) {
	amount = Round(amount)
	if !amount.IsPositive() {
		return models.Transaction{}, models.ErrAmountNotPositive
	}

	var transaction models.Transaction

	err := l.db().Transaction(func(tx *gorm.DB) error {
		var account models.Account
		if err := tx.First(&account, accountID).Error; err != nil {
			return err
		}

		account.Balance = account.Balance.Add(amount)
		if err := tx.Model(&account).Update("balance", account.Balance).Error; err != nil {
			return err
		}

		transaction = models.Transaction{
			Type:      models.TransactionDeposit,
			Amount:    amount,
			AccountID: &account.ID,
			Note:      note,
		}
		return tx.Create(&transaction).Error
	})
	if err != nil {
		return models.Transaction{}, fmt.Errorf("account deposit failed: %w", err)
	}

	return transaction, nil
}

// AccountWithdraw removes money from an account and records the
// withdrawal. Account balances are signed, they may go negative.
func (l Ledger) AccountWithdraw(accountID uuid.UUID, amount decimal.Decimal, note string) (models.Transaction, error) {
	amount = Round(amount)
	if !amount.IsPositive() {
		return models.Transaction{}, models.ErrAmountNotPositive
	}

	var transaction models.Transaction

	err := l.db().Transaction(func(tx *gorm.DB) error {
		var account models.Account
		if err := tx.First(&account, accountID).Error; err != nil {
			return err
		}

		account.Balance = account.Balance.Sub(amount)
		if err := tx.Model(&account).Update("balance", account.Balance).Error; err != nil {
			return err
		}

		transaction = models.Transaction{
			Type:      models.TransactionWithdrawal,
			Amount:    amount,
			AccountID: &account.ID,
			Note:      note,
		}
		return tx.Create(&transaction).Error
	})
	if err != nil {
		return models.Transaction{}, fmt.Errorf("account withdrawal failed: %w", err)
	}

	return transaction, nil
}

// TransferToEnvelope moves money from an account into an envelope.
// It writes a pair of transfer records sharing a transfer ID, both
// inside the same database transaction: either both rows exist
// afterwards or neither does.
func (l Ledger) TransferToEnvelope(accountID, envelopeID uuid.UUID, amount decimal.Decimal, note string, date time.Time) (models.Transaction, models.Transaction, error) {
	amount = Round(amount)
	if !amount.IsPositive() {
		return models.Transaction{}, models.Transaction{}, models.ErrAmountNotPositive
	}

	var outgoing, incoming models.Transaction

	err := l.db().Transaction(func(tx *gorm.DB) error {
		var account models.Account
		if err := tx.First(&account, accountID).Error; err != nil {
			return err
		}

		var envelope models.Envelope
		if err := tx.First(&envelope, envelopeID).Error; err != nil {
			return err
		}

		account.Balance = account.Balance.Sub(amount)
		if err := tx.Model(&account).Update("balance", account.Balance).Error; err != nil {
			return err
		}

		envelope.Balance = envelope.Balance.Add(amount)
		if err := tx.Model(&envelope).Update("balance", envelope.Balance).Error; err != nil {
			return err
		}

		transferID := uuid.New()

		outgoing = models.Transaction{
			Type:       models.TransactionTransfer,
			Amount:     amount,
			AccountID:  &account.ID,
			Date:       date,
			Note:       note,
			TransferID: &transferID,
		}
		if err := tx.Create(&outgoing).Error; err != nil {
			return err
		}

		incoming = models.Transaction{
			Type:       models.TransactionTransfer,
			Amount:     amount,
			EnvelopeID: &envelope.ID,
			Date:       date,
			Note:       note,
			TransferID: &transferID,
		}
		return tx.Create(&incoming).Error
	})
	if err != nil {
		return models.Transaction{}, models.Transaction{}, fmt.Errorf("transfer to envelope failed: %w", err)
	}

	return outgoing, incoming, nil
}

// AdjustBalance corrects an account balance by a signed delta. The
// adjustment is recorded as a deposit or withdrawal depending on the
// sign of the delta.
func (l Ledger) AdjustBalance(accountID uuid.UUID, delta decimal.Decimal) (models.Transaction, error) {
	delta = Round(delta)
	if delta.IsZero() {
		return models.Transaction{}, models.ErrAmountNotPositive
	}

	if delta.IsNegative() {
		return l.AccountWithdraw(accountID, delta.Neg(), "Balance adjustment")
	}

	return l.AccountDeposit(accountID, delta, "Balance adjustment")
}

// UpcomingPayments returns the scheduled payments due within the
// preparedness window.
func (l Ledger) UpcomingPayments(now time.Time) ([]models.ScheduledPayment, error) {
	return models.UpcomingPayments(l.db(), now)
}

// MatchRules returns the payee match rules in matching order.
func (l Ledger) MatchRules() ([]models.MatchRule, error) {
	return models.MatchRulesByPriority(l.db())
}

// ReadSettings returns the persisted pay day settings.
func (l Ledger) ReadSettings() (models.PayDaySettings, error) {
	return models.ReadPayDaySettings(l.db())
}

// WriteSettings persists the pay day settings.
func (l Ledger) WriteSettings(settings models.PayDaySettings) error {
	return models.WritePayDaySettings(l.db(), settings)
}
