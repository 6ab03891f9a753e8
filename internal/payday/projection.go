package payday

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/ryanuber/go-glob"
	"github.com/shopspring/decimal"
	"github.com/stuffd/backend/internal/models"
)

// daysPerModelMonth models the monthly cash flow amount as a daily
// velocity: one model month is 365.25 / 12 days.
var daysPerModelMonth = decimal.RequireFromString("30.44")

// Projection describes what a hypothetical added amount does to an
// envelope's horizon. It is a pure function result, the envelope is
// not touched.
type Projection struct {
	// RawRatio is (current + added) / target, unclamped so that
	// exceeded targets can be reported.
	RawRatio decimal.Decimal

	// ProgressRatio is RawRatio clamped to [0, 1] for display.
	ProgressRatio decimal.Decimal

	// DaysSaved is the modeled reduction in days to target. It is
	// never negative and zero when the velocity is unknown.
	DaysSaved int

	// VelocityKnown reports whether the envelope has a usable cash
	// flow amount. Callers render a fallback message when it is false
	// instead of showing zero days saved.
	VelocityKnown bool

	// AdvancePoints is the horizon advancement in percentage points:
	// (added / target) * 100.
	AdvancePoints decimal.Decimal
}

// Project computes the projection for one envelope. It degrades to
// zero values when the target is missing or zero and never fails.
func Project(current, target, cashFlow, added decimal.Decimal) Projection {
	projection := Projection{
		RawRatio:      decimal.Zero,
		ProgressRatio: decimal.Zero,
		AdvancePoints: decimal.Zero,
	}

	if !target.IsPositive() {
		return projection
	}

	projection.RawRatio = current.Add(added).Div(target)
	projection.ProgressRatio = clampRatio(projection.RawRatio)
	projection.AdvancePoints = added.Div(target).Mul(decimal.NewFromInt(100))

	if !cashFlow.IsPositive() {
		return projection
	}
	projection.VelocityKnown = true

	velocity := cashFlow.Div(daysPerModelMonth)
	daysBefore := target.Sub(current).Div(velocity)
	daysAfter := target.Sub(current).Sub(added).Div(velocity)

	saved := daysBefore.Sub(daysAfter).Round(0).IntPart()
	if saved < 0 {
		saved = 0
	}
	projection.DaysSaved = int(saved)

	return projection
}

func clampRatio(ratio decimal.Decimal) decimal.Decimal {
	one := decimal.NewFromInt(1)

	if ratio.IsNegative() {
		return decimal.Zero
	}
	if ratio.GreaterThan(one) {
		return one
	}
	return ratio
}

// EnvelopeImpact is one line of the session summary: what the pay
// event did for a single envelope.
type EnvelopeImpact struct {
	EnvelopeID    uuid.UUID       `json:"envelopeId"`
	Name          string          `json:"name"`
	Applied       decimal.Decimal `json:"applied"`
	DaysSaved     int             `json:"daysSaved"`
	VelocityKnown bool            `json:"velocityKnown"`
	ProgressRatio decimal.Decimal `json:"progressRatio"`
}

// PaymentReadiness reports whether an upcoming scheduled payment is
// covered by the projected balance of the envelope funding it.
type PaymentReadiness struct {
	PaymentID  uuid.UUID       `json:"paymentId"`
	Payee      string          `json:"payee"`
	Amount     decimal.Decimal `json:"amount"`
	DueDate    time.Time       `json:"dueDate"`
	EnvelopeID *uuid.UUID      `json:"envelopeId"` // nil when no envelope could be attributed
	Funded     bool            `json:"funded"`
}

// Summary aggregates one executed pay event.
type Summary struct {
	Inflow               decimal.Decimal    `json:"inflow"`
	TotalDistributed     decimal.Decimal    `json:"totalDistributed"`
	EnvelopesFunded      int                `json:"envelopesFunded"`
	TotalDaysSaved       int                `json:"totalDaysSaved"`
	FuelEfficiency       decimal.Decimal    `json:"fuelEfficiency"` // percent of the inflow that was distributed
	HorizonAdvancePoints decimal.Decimal    `json:"horizonAdvancePoints"`
	TopImpacts           []EnvelopeImpact   `json:"topImpacts"`
	Readiness            []PaymentReadiness `json:"readiness"`
}

// topImpactCount limits the ranked envelope list in the summary.
const topImpactCount = 5

// BuildSummary computes the session summary from the pre-execution
// envelope snapshot and the amounts the run actually applied.
func BuildSummary(inflow decimal.Decimal, envelopes map[uuid.UUID]models.Envelope, applied map[uuid.UUID]decimal.Decimal, payments []models.ScheduledPayment, rules []models.MatchRule) Summary {
	summary := Summary{
		Inflow:               inflow,
		TotalDistributed:     decimal.Zero,
		FuelEfficiency:       decimal.Zero,
		HorizonAdvancePoints: decimal.Zero,
	}

	impacts := make([]EnvelopeImpact, 0, len(applied))
	projected := make(map[uuid.UUID]decimal.Decimal, len(envelopes))
	for id, envelope := range envelopes {
		projected[id] = envelope.Balance
	}

	for id, amount := range applied {
		envelope, ok := envelopes[id]
		if !ok {
			continue
		}

		summary.TotalDistributed = summary.TotalDistributed.Add(amount)
		summary.EnvelopesFunded++
		projected[id] = envelope.Balance.Add(amount)

		projection := Project(envelope.Balance, envelope.TargetAmount, envelope.CashFlowAmount, amount)
		summary.TotalDaysSaved += projection.DaysSaved
		summary.HorizonAdvancePoints = summary.HorizonAdvancePoints.Add(projection.AdvancePoints)

		impacts = append(impacts, EnvelopeImpact{
			EnvelopeID:    id,
			Name:          envelope.Name,
			Applied:       amount,
			DaysSaved:     projection.DaysSaved,
			VelocityKnown: projection.VelocityKnown,
			ProgressRatio: projection.ProgressRatio,
		})
	}

	if inflow.IsPositive() {
		summary.FuelEfficiency = summary.TotalDistributed.Div(inflow).Mul(decimal.NewFromInt(100))
	}

	// Rank by days saved, ties by applied amount, then by name so the
	// order is stable
	sort.Slice(impacts, func(i, j int) bool {
		if impacts[i].DaysSaved != impacts[j].DaysSaved {
			return impacts[i].DaysSaved > impacts[j].DaysSaved
		}
		if !impacts[i].Applied.Equal(impacts[j].Applied) {
			return impacts[i].Applied.GreaterThan(impacts[j].Applied)
		}
		return impacts[i].Name < impacts[j].Name
	})

	if len(impacts) > topImpactCount {
		impacts = impacts[:topImpactCount]
	}
	summary.TopImpacts = impacts

	summary.Readiness = paymentReadiness(payments, rules, projected)

	return summary
}

// paymentReadiness attributes every upcoming payment to an envelope
// and checks it against the projected balance. Payments consume the
// balance in due date order, a later payment is only funded by money
// that earlier payments left over.
func paymentReadiness(payments []models.ScheduledPayment, rules []models.MatchRule, projected map[uuid.UUID]decimal.Decimal) []PaymentReadiness {
	remaining := make(map[uuid.UUID]decimal.Decimal, len(projected))
	for id, balance := range projected {
		remaining[id] = balance
	}

	readiness := make([]PaymentReadiness, 0, len(payments))
	for _, payment := range payments {
		entry := PaymentReadiness{
			PaymentID: payment.ID,
			Payee:     payment.Payee,
			Amount:    payment.Amount,
			DueDate:   payment.DueDate,
		}

		envelopeID := payment.EnvelopeID
		if envelopeID == nil {
			envelopeID = matchEnvelope(rules, payment.Payee)
		}
		entry.EnvelopeID = envelopeID

		if envelopeID != nil {
			balance, ok := remaining[*envelopeID]
			if ok && balance.GreaterThanOrEqual(payment.Amount) {
				entry.Funded = true
				remaining[*envelopeID] = balance.Sub(payment.Amount)
			}
		}

		readiness = append(readiness, entry)
	}

	return readiness
}

// matchEnvelope returns the envelope of the first matching rule. Rules
// are passed in priority order, so the first glob hit wins.
func matchEnvelope(rules []models.MatchRule, payee string) *uuid.UUID {
	for _, rule := range rules {
		if glob.Glob(rule.Match, payee) {
			id := rule.EnvelopeID
			return &id
		}
	}

	return nil
}
