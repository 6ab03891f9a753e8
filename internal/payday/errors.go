package payday

import "errors"

var (
	// Validation errors. These block a phase transition, nothing has
	// been applied to the ledger and the user can correct the input.
	ErrInflowNotPositive    = errors.New("the inflow amount must be larger than zero")
	ErrNoEnvelopesSelected  = errors.New("at least one envelope must be part of the pay event")
	ErrWrongPhase           = errors.New("this operation is not allowed in the current phase")
	ErrNoDefaultAccount     = errors.New("account mode requires a default account")
	ErrEnvelopeNotInCatalog = errors.New("the envelope is not part of this session")
	ErrOverrideNegative     = errors.New("an override amount must not be negative")
	ErrBoostFractionRange   = errors.New("a boost fraction must be between 0 and 1")

	// ErrBoostWithoutHorizon is returned when a boost fraction is set
	// for an envelope that has no target amount.
	ErrBoostWithoutHorizon = errors.New("only envelopes with a target can be boosted")

	// ErrBoostAfterDecrease is returned when a boost fraction is set
	// while the envelope's override is below its stored cash flow
	// amount. Decreasing an amount disables boosting for the event.
	ErrBoostAfterDecrease = errors.New("boosting is disabled for envelopes with a decreased amount")

	// ErrPartiallyApplied is the terminal error of an execution run
	// that failed after ledger mutations were committed. The applied
	// steps are durable, nothing is rolled back or retried.
	ErrPartiallyApplied = errors.New("pay day partially processed, review your envelopes")

	// ErrRunFinished is returned when stepping a stager that already
	// reached a terminal state.
	ErrRunFinished = errors.New("the execution run is already finished")

	// ErrSessionNotFound is returned by the manager for an unknown
	// session ID.
	ErrSessionNotFound = errors.New("there is no pay day session matching your query")
)
