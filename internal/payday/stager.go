package payday

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// StepKind classifies the stages of an execution run.
type StepKind string

const (
	StepAccountFill StepKind = "account-fill"
	StepBaseFill    StepKind = "base-fill"
	StepBoostFill   StepKind = "boost-fill"
)

// Step is one ledger operation of an execution run.
type Step struct {
	Kind       StepKind
	EnvelopeID uuid.UUID // Nil for the account fill step
	Amount     decimal.Decimal
}

// Steps derives the execution order from a plan. The order contract:
// the account fill comes first when an account is part of the event,
// then every envelope's base amount in stable order, then the boost
// amounts of boosted envelopes in the same order. The boost stage is
// absent entirely when nothing is boosted.
func (p Plan) Steps(accountFill bool) []Step {
	steps := make([]Step, 0, 1+len(p.Base)+len(p.Boost))

	if accountFill {
		steps = append(steps, Step{Kind: StepAccountFill, Amount: p.Inflow})
	}

	for _, id := range p.EnvelopeIDs() {
		steps = append(steps, Step{Kind: StepBaseFill, EnvelopeID: id, Amount: p.Base[id]})
	}

	for _, id := range p.BoostedEnvelopeIDs() {
		steps = append(steps, Step{Kind: StepBoostFill, EnvelopeID: id, Amount: p.Boost[id]})
	}

	return steps
}

// RunState is the state of an execution run.
type RunState string

const (
	RunPending        RunState = "pending"
	RunAccountFilling RunState = "account-filling"
	RunBaseFilling    RunState = "base-filling"
	RunBoostFilling   RunState = "boost-filling"
	RunComplete       RunState = "complete"
	RunFailed         RunState = "failed"
)

// Progress is reported to the observer after every committed step, so
// callers can render per-step state without polling the ledger.
type Progress struct {
	State     RunState
	StepIndex int // Index of the completed step
	StepCount int
	Step      Step
	// Applied is the cumulative amount applied to the step's envelope,
	// equal to the planned base after the base fill and to base plus
	// boost after the boost fill.
	Applied decimal.Decimal
}

// Observer receives progress updates. Pacing between steps is the
// observer's concern, the stager itself never sleeps.
type Observer func(Progress)

// StagerConfig wires a stager to the ledger.
type StagerConfig struct {
	Envelopes EnvelopeCatalog
	Accounts  AccountCatalog
	Plan      Plan

	// AccountID routes base and boost fills through an account as
	// transfers. When nil, fills are standalone envelope deposits.
	AccountID *uuid.UUID

	// EnvelopeNames supplies display names for transaction notes.
	EnvelopeNames map[uuid.UUID]string

	Date     time.Time
	Observer Observer
}

// Stager applies a frozen plan to the ledger one step at a time.
//
// Sequencing is strict: a step's ledger mutation and its paired
// transaction write are durable before the next step begins. Callers
// either drive the run step by step with Step, awaiting each one, or
// synchronously with Run.
type Stager struct {
	cfg     StagerConfig
	steps   []Step
	next    int
	state   RunState
	applied map[uuid.UUID]decimal.Decimal
	routed  decimal.Decimal
	err     error
}

// NewStager prepares an execution run for a frozen plan.
func NewStager(cfg StagerConfig) *Stager {
	return &Stager{
		cfg:     cfg,
		steps:   cfg.Plan.Steps(cfg.AccountID != nil),
		state:   RunPending,
		applied: make(map[uuid.UUID]decimal.Decimal),
		routed:  decimal.Zero,
	}
}

// State returns the current run state.
func (s *Stager) State() RunState {
	return s.state
}

// Err returns the terminal error of a failed run.
func (s *Stager) Err() error {
	return s.err
}

// Applied returns the amounts applied per envelope so far.
func (s *Stager) Applied() map[uuid.UUID]decimal.Decimal {
	return s.applied
}

// Routed returns the total amount routed out of the account.
func (s *Stager) Routed() decimal.Decimal {
	return s.routed
}

// Step applies the next ledger operation. It returns done = true once
// the run has reached a terminal state.
//
// The context is only honored before the first mutation: once ledger
// writes have begun there is no mid-flight cancellation, a failure
// terminates the run as partially applied instead.
func (s *Stager) Step(ctx context.Context) (done bool, err error) {
	if s.state == RunComplete || s.state == RunFailed {
		return true, ErrRunFinished
	}

	if len(s.steps) == 0 {
		s.state = RunComplete
		return true, nil
	}

	if s.next == 0 {
		if err := ctx.Err(); err != nil {
			return false, err
		}
	}

	step := s.steps[s.next]
	s.state = stateFor(step.Kind)

	if err := s.apply(step); err != nil {
		s.state = RunFailed
		s.err = fmt.Errorf("%w: step %d of %d: %s", ErrPartiallyApplied, s.next+1, len(s.steps), err)

		log.Error().
			Err(err).
			Int("step", s.next+1).
			Int("steps", len(s.steps)).
			Str("kind", string(step.Kind)).
			Msg("pay day execution failed, ledger partially updated")

		return true, s.err
	}

	if step.Kind != StepAccountFill {
		// Track what the ledger applied, which is the rounded amount
		s.applied[step.EnvelopeID] = s.applied[step.EnvelopeID].Add(step.Amount.Round(2))
	}

	log.Debug().
		Int("step", s.next+1).
		Int("steps", len(s.steps)).
		Str("kind", string(step.Kind)).
		Str("amount", step.Amount.String()).
		Msg("pay day step applied")

	if s.cfg.Observer != nil {
		s.cfg.Observer(Progress{
			State:     s.state,
			StepIndex: s.next,
			StepCount: len(s.steps),
			Step:      step,
			Applied:   s.applied[step.EnvelopeID],
		})
	}

	s.next++
	if s.next == len(s.steps) {
		s.state = RunComplete
		return true, nil
	}

	return false, nil
}

// Run drives the whole plan in one synchronous loop.
func (s *Stager) Run(ctx context.Context) error {
	for {
		done, err := s.Step(ctx)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
}

func (s *Stager) apply(step Step) error {
	note := s.note(step)

	if step.Kind == StepAccountFill {
		_, err := s.cfg.Accounts.AccountDeposit(*s.cfg.AccountID, step.Amount, note)
		return err
	}

	if s.cfg.AccountID != nil {
		_, _, err := s.cfg.Accounts.TransferToEnvelope(*s.cfg.AccountID, step.EnvelopeID, step.Amount, note, s.cfg.Date)
		if err == nil {
			s.routed = s.routed.Add(step.Amount.Round(2))
		}
		return err
	}

	_, err := s.cfg.Envelopes.EnvelopeDeposit(step.EnvelopeID, step.Amount, note, s.cfg.Date)
	return err
}

func (s *Stager) note(step Step) string {
	name := s.cfg.EnvelopeNames[step.EnvelopeID]

	switch step.Kind {
	case StepAccountFill:
		return "Pay day inflow"
	case StepBoostFill:
		return fmt.Sprintf("Pay day boost: %s", name)
	default:
		return fmt.Sprintf("Pay day: %s", name)
	}
}

func stateFor(kind StepKind) RunState {
	switch kind {
	case StepAccountFill:
		return RunAccountFilling
	case StepBoostFill:
		return RunBoostFilling
	default:
		return RunBaseFilling
	}
}
