package payday

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/stuffd/backend/internal/models"
)

// Phase is the state of a cockpit session. Transitions are strictly
// linear, the only way back is an explicit reset from a terminal
// phase.
type Phase string

const (
	PhaseInflowEntry    Phase = "inflow-entry"
	PhaseStrategyReview Phase = "strategy-review"
	PhaseStuffing       Phase = "stuffing"
	PhaseSuccess        Phase = "success"

	// PhaseFailed is terminal: an execution run failed after ledger
	// mutations were committed. The committed steps stay applied.
	PhaseFailed Phase = "failed"
)

// Session is one pay day cockpit session. It owns the working
// allocation set (override amounts and boost fractions) for the
// duration of the pay event; the working set is never written back to
// the envelope records.
type Session struct {
	mu       sync.Mutex
	id       uuid.UUID
	catalogs Catalogs
	phase    Phase
	canceled bool

	inflow      decimal.Decimal
	accountMode bool
	accountID   *uuid.UUID

	envelopes map[uuid.UUID]models.Envelope
	order     []uuid.UUID

	overrides map[uuid.UUID]decimal.Decimal
	boosts    map[uuid.UUID]decimal.Decimal

	plan    *Plan
	summary *Summary
	runErr  error
}

// NewSession loads the catalogs and opens a session in the inflow
// entry phase. The inflow and account mode are pre-populated from the
// persisted settings of the previous pay event.
func NewSession(catalogs Catalogs) (*Session, error) {
	s := &Session{
		id:       uuid.New(),
		catalogs: catalogs,
	}

	if err := s.load(); err != nil {
		return nil, err
	}

	return s, nil
}

// load pulls fresh envelope and settings data and resets all working
// state. Callers must hold the mutex or own the session exclusively.
func (s *Session) load() error {
	envelopes, err := s.catalogs.Envelopes()
	if err != nil {
		return fmt.Errorf("loading envelopes: %w", err)
	}

	settings, err := s.catalogs.ReadSettings()
	if err != nil {
		return fmt.Errorf("loading pay day settings: %w", err)
	}

	s.phase = PhaseInflowEntry
	s.envelopes = make(map[uuid.UUID]models.Envelope, len(envelopes))
	s.order = make([]uuid.UUID, 0, len(envelopes))
	for _, envelope := range envelopes {
		s.envelopes[envelope.ID] = envelope
		s.order = append(s.order, envelope.ID)
	}

	s.overrides = make(map[uuid.UUID]decimal.Decimal)
	s.boosts = make(map[uuid.UUID]decimal.Decimal)
	s.plan = nil
	s.summary = nil
	s.runErr = nil

	s.inflow = settings.LastPayAmount
	s.accountID = nil
	s.accountMode = false

	if settings.DefaultAccountID != nil {
		account, err := s.catalogs.Account(*settings.DefaultAccountID)
		if err == nil {
			s.accountID = &account.ID
			s.accountMode = true
		} else if !errors.Is(err, models.ErrResourceNotFound) {
			return fmt.Errorf("loading default account: %w", err)
		}
	}

	return nil
}

// ID returns the session identifier.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// Phase returns the current phase.
func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Inflow returns the external inflow amount.
func (s *Session) Inflow() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inflow
}

// AccountMode reports whether the inflow lands in an account first.
func (s *Session) AccountMode() (bool, *uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accountMode, s.accountID
}

// Envelopes returns the catalog snapshot in listing order.
func (s *Session) Envelopes() []models.Envelope {
	s.mu.Lock()
	defer s.mu.Unlock()

	envelopes := make([]models.Envelope, 0, len(s.order))
	for _, id := range s.order {
		envelopes = append(envelopes, s.envelopes[id])
	}
	return envelopes
}

// WorkingSet returns copies of the override and boost maps.
func (s *Session) WorkingSet() (overrides, boosts map[uuid.UUID]decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()

	overrides = make(map[uuid.UUID]decimal.Decimal, len(s.overrides))
	for id, amount := range s.overrides {
		overrides[id] = amount
	}

	boosts = make(map[uuid.UUID]decimal.Decimal, len(s.boosts))
	for id, fraction := range s.boosts {
		boosts[id] = fraction
	}

	return overrides, boosts
}

// guard validates that the session is live and in one of the given
// phases. Callers must hold the mutex.
func (s *Session) guard(phases ...Phase) error {
	if s.canceled {
		return ErrWrongPhase
	}

	for _, phase := range phases {
		if s.phase == phase {
			return nil
		}
	}

	return fmt.Errorf("%w: %s", ErrWrongPhase, s.phase)
}

// SetInflow sets the external inflow amount during inflow entry.
func (s *Session) SetInflow(amount decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.guard(PhaseInflowEntry); err != nil {
		return err
	}

	s.inflow = amount
	return nil
}

// SetAccountMode switches between account mode and direct envelope
// deposits. In account mode the target account must exist; when no
// account ID is given the default account is used.
func (s *Session) SetAccountMode(enabled bool, accountID *uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.guard(PhaseInflowEntry); err != nil {
		return err
	}

	if !enabled {
		s.accountMode = false
		s.accountID = nil
		return nil
	}

	if accountID == nil {
		accounts, err := s.catalogs.Accounts()
		if err != nil {
			return fmt.Errorf("loading accounts: %w", err)
		}

		for _, account := range accounts {
			if account.Default {
				s.accountMode = true
				id := account.ID
				s.accountID = &id
				return nil
			}
		}

		return ErrNoDefaultAccount
	}

	account, err := s.catalogs.Account(*accountID)
	if err != nil {
		return fmt.Errorf("resolving account: %w", err)
	}

	s.accountMode = true
	id := account.ID
	s.accountID = &id
	return nil
}

// Proceed moves from inflow entry to strategy review. The working
// allocation set is seeded with every autopilot-eligible envelope at
// its stored cash flow amount.
func (s *Session) Proceed() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.guard(PhaseInflowEntry); err != nil {
		return err
	}

	if !s.inflow.IsPositive() {
		return ErrInflowNotPositive
	}

	s.overrides = make(map[uuid.UUID]decimal.Decimal)
	s.boosts = make(map[uuid.UUID]decimal.Decimal)
	for id, envelope := range s.envelopes {
		if envelope.AutopilotEligible() {
			s.overrides[id] = envelope.CashFlowAmount
		}
	}

	s.phase = PhaseStrategyReview
	return nil
}

// AddEnvelope adds an envelope to the working set at its stored cash
// flow amount.
func (s *Session) AddEnvelope(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.guard(PhaseStrategyReview); err != nil {
		return err
	}

	envelope, ok := s.envelopes[id]
	if !ok {
		return ErrEnvelopeNotInCatalog
	}

	s.overrides[id] = envelope.CashFlowAmount
	return nil
}

// RemoveEnvelope removes an envelope from the working set. Its boost
// fraction is discarded with it.
func (s *Session) RemoveEnvelope(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.guard(PhaseStrategyReview); err != nil {
		return err
	}

	if _, ok := s.envelopes[id]; !ok {
		return ErrEnvelopeNotInCatalog
	}

	delete(s.overrides, id)
	delete(s.boosts, id)
	return nil
}

// AddBinder adds every envelope of a binder to the working set.
func (s *Session) AddBinder(binderID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.guard(PhaseStrategyReview); err != nil {
		return err
	}

	for id, envelope := range s.envelopes {
		if envelope.BinderID != nil && *envelope.BinderID == binderID {
			s.overrides[id] = envelope.CashFlowAmount
		}
	}

	return nil
}

// SetOverride sets the envelope's amount for this pay event only. The
// stored cash flow amount is not touched. An override of zero excludes
// the envelope from the event.
func (s *Session) SetOverride(id uuid.UUID, amount decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.guard(PhaseStrategyReview); err != nil {
		return err
	}

	if _, ok := s.envelopes[id]; !ok {
		return ErrEnvelopeNotInCatalog
	}

	if amount.IsNegative() {
		return ErrOverrideNegative
	}

	s.overrides[id] = amount
	return nil
}

// SetBoostFraction sets the explicit boost fraction for an envelope.
// Boosting requires a horizon and is disabled while the envelope's
// override is below its stored baseline.
func (s *Session) SetBoostFraction(id uuid.UUID, fraction decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.guard(PhaseStrategyReview); err != nil {
		return err
	}

	envelope, ok := s.envelopes[id]
	if !ok {
		return ErrEnvelopeNotInCatalog
	}

	if fraction.IsNegative() || fraction.GreaterThan(decimal.NewFromInt(1)) {
		return ErrBoostFractionRange
	}

	if !envelope.HasHorizon() {
		return ErrBoostWithoutHorizon
	}

	if override, ok := s.overrides[id]; ok && override.LessThan(envelope.CashFlowAmount) {
		return ErrBoostAfterDecrease
	}

	if fraction.IsZero() {
		delete(s.boosts, id)
		return nil
	}

	s.boosts[id] = fraction
	return nil
}

// ClearBoostFraction removes the explicit boost for an envelope.
func (s *Session) ClearBoostFraction(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.guard(PhaseStrategyReview); err != nil {
		return err
	}

	delete(s.boosts, id)
	return nil
}

// PreviewPlan builds the allocation plan from the current working set
// without freezing it. Use it to render the review screen, including
// the surplus warning when the reserve exceeds the inflow.
func (s *Session) PreviewPlan() Plan {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.plan != nil {
		return *s.plan
	}

	return BuildPlan(s.inflow, s.envelopeList(), s.overrides, s.boosts)
}

// envelopeList returns the snapshot as a slice. Callers must hold the
// mutex.
func (s *Session) envelopeList() []models.Envelope {
	envelopes := make([]models.Envelope, 0, len(s.order))
	for _, id := range s.order {
		envelopes = append(envelopes, s.envelopes[id])
	}
	return envelopes
}

// Execute freezes the allocation plan and applies it to the ledger.
// From this point on the working set is immutable; a failure leaves
// the session in the terminal failed phase with the committed steps
// durably applied. A cancellation before the first ledger write is the
// exception: nothing was applied, so the session returns to strategy
// review.
func (s *Session) Execute(ctx context.Context, observer Observer) (Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.guard(PhaseStrategyReview); err != nil {
		return Summary{}, err
	}

	plan := BuildPlan(s.inflow, s.envelopeList(), s.overrides, s.boosts)
	if len(plan.Base) == 0 {
		return Summary{}, ErrNoEnvelopesSelected
	}

	var accountID *uuid.UUID
	if s.accountMode {
		if s.accountID == nil {
			return Summary{}, ErrNoDefaultAccount
		}
		accountID = s.accountID
	}

	s.plan = &plan
	s.phase = PhaseStuffing

	names := make(map[uuid.UUID]string, len(s.envelopes))
	for id, envelope := range s.envelopes {
		names[id] = envelope.Name
	}

	now := time.Now()
	stager := NewStager(StagerConfig{
		Envelopes:     s.catalogs,
		Accounts:      s.catalogs,
		Plan:          plan,
		AccountID:     accountID,
		EnvelopeNames: names,
		Date:          now,
		Observer:      observer,
	})

	if err := stager.Run(ctx); err != nil {
		if stager.State() == RunPending {
			// Canceled before the first ledger write, nothing was
			// applied yet, so the working set stays reviewable.
			s.plan = nil
			s.phase = PhaseStrategyReview
			return Summary{}, err
		}

		s.phase = PhaseFailed
		s.runErr = err
		return Summary{}, err
	}

	summary := s.buildSummary(stager, now)
	s.summary = &summary
	s.phase = PhaseSuccess

	s.persistSettings(now)

	return summary, nil
}

// buildSummary assembles the success phase data. Preparedness inputs
// are optional: when they cannot be loaded the summary is served
// without them.
func (s *Session) buildSummary(stager *Stager, now time.Time) Summary {
	payments, err := s.catalogs.UpcomingPayments(now)
	if err != nil {
		log.Warn().Err(err).Msg("upcoming payments unavailable for summary")
	}

	rules, err := s.catalogs.MatchRules()
	if err != nil {
		log.Warn().Err(err).Msg("match rules unavailable for summary")
	}

	return BuildSummary(s.inflow, s.envelopes, stager.Applied(), payments, rules)
}

// persistSettings writes the pay event back so the next session can
// pre-populate its inflow entry. A write failure does not fail the
// already executed run.
func (s *Session) persistSettings(now time.Time) {
	settings, err := s.catalogs.ReadSettings()
	if err != nil {
		log.Warn().Err(err).Msg("pay day settings could not be read back")
		settings = models.PayDaySettings{}
	}

	settings.LastPayAmount = s.inflow
	settings.LastPayDate = now
	if s.accountMode {
		settings.DefaultAccountID = s.accountID
	}

	if err := s.catalogs.WriteSettings(settings); err != nil {
		log.Warn().Err(err).Msg("pay day settings could not be persisted")
	}
}

// Summary returns the session summary after a successful run.
func (s *Session) Summary() (Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.guard(PhaseSuccess); err != nil {
		return Summary{}, err
	}

	return *s.summary, nil
}

// Err returns the terminal error of a failed session.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runErr
}

// Cancel abandons the session. It is only permitted before the
// execution stager has begun, cancellation never has a ledger effect.
func (s *Session) Cancel() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.guard(PhaseInflowEntry, PhaseStrategyReview); err != nil {
		return err
	}

	s.canceled = true
	return nil
}

// Reset discards all working state after a finished run and starts
// over in the inflow entry phase with freshly loaded data.
func (s *Session) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.guard(PhaseSuccess, PhaseFailed); err != nil {
		return err
	}

	return s.load()
}
