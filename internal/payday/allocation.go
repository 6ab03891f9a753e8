package payday

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stuffd/backend/internal/models"
)

// Plan is the frozen allocation for one pay event: how much every
// participating envelope receives, split into the base layer and the
// boost layer. Amounts carry full precision, rounding happens when the
// ledger applies them.
//
// A plan is built fresh for every pay day session and discarded after
// execution or cancellation, it is never persisted.
type Plan struct {
	// Inflow is the external amount of money entering the pay event.
	Inflow decimal.Decimal

	// Base maps envelope IDs to their base amount: the stored cash
	// flow amount, or the part of an override up to the baseline.
	Base map[uuid.UUID]decimal.Decimal

	// Boost maps envelope IDs to their boost amount, the sum of the
	// implicit boost (override excess over the baseline) and the
	// explicit boost (user-set fraction). Only envelopes with a
	// horizon ever appear here.
	Boost map[uuid.UUID]decimal.Decimal

	// Reserve is the total amount committed by the base layer,
	// including override excess that the calculator reports as
	// implicit boost.
	Reserve decimal.Decimal
}

// BuildPlan computes the allocation plan for a pay event.
//
// The overrides working set replaces stored cash flow amounts for this
// event only: an envelope present in the set contributes its override
// amount (an override of zero excludes it), an absent envelope
// contributes its stored cash flow amount when autopilot is enabled for
// it. Boost fractions apply on top for envelopes with a horizon.
//
// BuildPlan never fails. A reserve exceeding the inflow yields a
// negative surplus, which callers report as a warning.
func BuildPlan(inflow decimal.Decimal, envelopes []models.Envelope, overrides, boosts map[uuid.UUID]decimal.Decimal) Plan {
	plan := Plan{
		Inflow:  inflow,
		Base:    make(map[uuid.UUID]decimal.Decimal),
		Boost:   make(map[uuid.UUID]decimal.Decimal),
		Reserve: decimal.Zero,
	}

	for _, envelope := range envelopes {
		override, overridden := overrides[envelope.ID]
		if overridden && override.IsNegative() {
			override = decimal.Zero
		}

		// The amount the user committed to this envelope for the event
		var committed decimal.Decimal
		switch {
		case overridden:
			committed = override
		case envelope.AutopilotEligible():
			committed = envelope.CashFlowAmount
		default:
			continue
		}

		if !committed.IsPositive() {
			continue
		}

		plan.Reserve = plan.Reserve.Add(committed)

		base := committed
		boost := decimal.Zero
		baseline := envelope.CashFlowAmount

		if envelope.HasHorizon() {
			// Implicit boost: the part of an increased override that
			// exceeds the stored baseline
			if envelope.CashFlowEnabled && overridden && override.GreaterThan(baseline) {
				boost = override.Sub(baseline)
				base = baseline
			}

			// Explicit boost: fraction of the current base amount,
			// additive with the implicit boost. A decreased override
			// disables boosting entirely for this event.
			decreased := overridden && override.LessThan(baseline)
			if fraction, ok := boosts[envelope.ID]; ok && fraction.IsPositive() && !decreased {
				boost = boost.Add(fraction.Mul(committed))
			}
		}

		plan.Base[envelope.ID] = base
		if boost.IsPositive() {
			plan.Boost[envelope.ID] = boost
		}
	}

	return plan
}

// BaseTotal returns the sum of all base amounts.
func (p Plan) BaseTotal() decimal.Decimal {
	total := decimal.Zero
	for _, amount := range p.Base {
		total = total.Add(amount)
	}
	return total
}

// BoostTotal returns the sum of all boost amounts.
func (p Plan) BoostTotal() decimal.Decimal {
	total := decimal.Zero
	for _, amount := range p.Boost {
		total = total.Add(amount)
	}
	return total
}

// Total returns the full amount the plan distributes.
func (p Plan) Total() decimal.Decimal {
	return p.BaseTotal().Add(p.BoostTotal())
}

// Surplus returns the part of the inflow that the base layer does not
// reserve. It is negative when the user committed more than came in.
func (p Plan) Surplus() decimal.Decimal {
	return p.Inflow.Sub(p.Reserve)
}

// Amount returns the total planned amount for one envelope.
func (p Plan) Amount(id uuid.UUID) decimal.Decimal {
	return p.Base[id].Add(p.Boost[id])
}

// EnvelopeIDs returns the participating envelopes in execution order.
// The order is stable across reads of the same plan: ascending by
// envelope ID.
func (p Plan) EnvelopeIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(p.Base))
	for id := range p.Base {
		ids = append(ids, id)
	}

	sort.Slice(ids, func(i, j int) bool {
		return ids[i].String() < ids[j].String()
	})

	return ids
}

// BoostedEnvelopeIDs returns the boosted envelopes in execution order.
func (p Plan) BoostedEnvelopeIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(p.Boost))
	for id := range p.Boost {
		ids = append(ids, id)
	}

	sort.Slice(ids, func(i, j int) bool {
		return ids[i].String() < ids[j].String()
	})

	return ids
}
