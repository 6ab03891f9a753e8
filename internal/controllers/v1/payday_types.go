package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stuffd/backend/internal/models"
	"github.com/stuffd/backend/internal/payday"
	stuffd_uuid "github.com/stuffd/backend/internal/uuid"
)

type URISessionEnvelope struct {
	ID         stuffd_uuid.UUID `uri:"id" binding:"required" format:"UUID"`         // ID of the session
	EnvelopeID stuffd_uuid.UUID `uri:"envelopeId" binding:"required" format:"UUID"` // ID of the envelope
}

type URISessionBinder struct {
	ID       stuffd_uuid.UUID `uri:"id" binding:"required" format:"UUID"`       // ID of the session
	BinderID stuffd_uuid.UUID `uri:"binderId" binding:"required" format:"UUID"` // ID of the binder
}

// PayDaySessionEditable holds the fields that can be changed during
// inflow entry.
type PayDaySessionEditable struct {
	Inflow      *decimal.Decimal `json:"inflow" example:"2000"`                                    // The amount of money entering the pay event
	AccountMode *bool            `json:"accountMode" example:"true"`                               // Should the inflow land in an account first?
	AccountID   *uuid.UUID       `json:"accountId" example:"af892e10-7e0a-4fb8-b1bc-4b6d88107ed9"` // Account for account mode, defaults to the default account
}

// WorkingSetEditable holds the per-envelope working set fields.
type WorkingSetEditable struct {
	Override      *decimal.Decimal `json:"override" example:"600"`       // Amount for this pay event, replaces the stored cash flow amount
	BoostFraction *decimal.Decimal `json:"boostFraction" example:"0.5"`  // Boost fraction between 0 and 1, 0 clears the boost
}

// PayDayPlanEnvelope is one row of the plan preview.
type PayDayPlanEnvelope struct {
	EnvelopeID uuid.UUID       `json:"envelopeId"` // The envelope
	Base       decimal.Decimal `json:"base"`       // The base layer amount
	Boost      decimal.Decimal `json:"boost"`      // The boost layer amount
	Total      decimal.Decimal `json:"total"`      // Base plus boost
}

// PayDayPlan is the preview of the allocation for the review screen.
type PayDayPlan struct {
	Reserve    decimal.Decimal      `json:"reserve"`    // Total amount committed by the working set
	Surplus    decimal.Decimal      `json:"surplus"`    // Inflow minus reserve, negative when over-committed
	BaseTotal  decimal.Decimal      `json:"baseTotal"`  // Sum of the base layer
	BoostTotal decimal.Decimal      `json:"boostTotal"` // Sum of the boost layer
	Total      decimal.Decimal      `json:"total"`      // Full amount the plan distributes
	Envelopes  []PayDayPlanEnvelope `json:"envelopes"`  // Per envelope amounts in execution order
	Warning    *string              `json:"warning"`    // Set when the reserve exceeds the inflow
}

type PayDaySessionLinks struct {
	Self    string `json:"self" example:"https://example.com/api/v1/payday/d1b7fc8a-e9cf-4bd2-bb26-7ae0f006a25d"`            // The session itself
	Review  string `json:"review" example:"https://example.com/api/v1/payday/d1b7fc8a-e9cf-4bd2-bb26-7ae0f006a25d/review"`   // Proceed to strategy review
	Execute string `json:"execute" example:"https://example.com/api/v1/payday/d1b7fc8a-e9cf-4bd2-bb26-7ae0f006a25d/execute"` // Execute the pay event
	Reset   string `json:"reset" example:"https://example.com/api/v1/payday/d1b7fc8a-e9cf-4bd2-bb26-7ae0f006a25d/reset"`     // Reset a finished session
}

// PayDaySession is the API representation of a cockpit session.
type PayDaySession struct {
	ID             uuid.UUID                  `json:"id" example:"d1b7fc8a-e9cf-4bd2-bb26-7ae0f006a25d"` // ID of the session
	Phase          payday.Phase               `json:"phase" example:"strategy-review"`                   // Current phase
	Inflow         decimal.Decimal            `json:"inflow" example:"2000"`                             // The inflow amount
	AccountMode    bool                       `json:"accountMode" example:"true"`                        // Does the inflow land in an account first?
	AccountID      *uuid.UUID                 `json:"accountId"`                                         // Account for account mode
	Overrides      map[string]decimal.Decimal `json:"overrides"`                                         // Working set override amounts by envelope ID
	BoostFractions map[string]decimal.Decimal `json:"boostFractions"`                                    // Working set boost fractions by envelope ID
	Plan           PayDayPlan                 `json:"plan"`                                              // Allocation preview for the working set
	Error          *string                    `json:"error"`                                             // Terminal error of a failed session
	Links          PayDaySessionLinks         `json:"links"`
}

func newPayDaySession(c *gin.Context, session *payday.Session) PayDaySession {
	url := c.GetString(string(models.DBContextURL))

	overrides, boosts := session.WorkingSet()

	overrideMap := make(map[string]decimal.Decimal, len(overrides))
	for id, amount := range overrides {
		overrideMap[id.String()] = amount
	}

	boostMap := make(map[string]decimal.Decimal, len(boosts))
	for id, fraction := range boosts {
		boostMap[id.String()] = fraction
	}

	accountMode, accountID := session.AccountMode()

	resource := PayDaySession{
		ID:             session.ID(),
		Phase:          session.Phase(),
		Inflow:         session.Inflow(),
		AccountMode:    accountMode,
		AccountID:      accountID,
		Overrides:      overrideMap,
		BoostFractions: boostMap,
		Plan:           newPayDayPlan(session.PreviewPlan()),
		Links: PayDaySessionLinks{
			Self:    fmt.Sprintf("%s/v1/payday/%s", url, session.ID()),
			Review:  fmt.Sprintf("%s/v1/payday/%s/review", url, session.ID()),
			Execute: fmt.Sprintf("%s/v1/payday/%s/execute", url, session.ID()),
			Reset:   fmt.Sprintf("%s/v1/payday/%s/reset", url, session.ID()),
		},
	}

	if err := session.Err(); err != nil {
		s := err.Error()
		resource.Error = &s
	}

	return resource
}

func newPayDayPlan(plan payday.Plan) PayDayPlan {
	envelopes := make([]PayDayPlanEnvelope, 0, len(plan.Base))
	for _, id := range plan.EnvelopeIDs() {
		envelopes = append(envelopes, PayDayPlanEnvelope{
			EnvelopeID: id,
			Base:       plan.Base[id],
			Boost:      plan.Boost[id],
			Total:      plan.Amount(id),
		})
	}

	resource := PayDayPlan{
		Reserve:    plan.Reserve,
		Surplus:    plan.Surplus(),
		BaseTotal:  plan.BaseTotal(),
		BoostTotal: plan.BoostTotal(),
		Total:      plan.Total(),
		Envelopes:  envelopes,
	}

	if plan.Surplus().IsNegative() {
		warning := "the working set commits more money than the inflow provides"
		resource.Warning = &warning
	}

	return resource
}

type PayDaySessionResponse struct {
	Data  *PayDaySession `json:"data"`                                                           // Data for the session
	Error *string        `json:"error" example:"there is no pay day session matching your query"` // The error, if any occurred
}

type PayDaySummaryResponse struct {
	Data  *payday.Summary `json:"data"`                                                  // The summary of the executed pay event
	Error *string         `json:"error" example:"pay day partially processed, review your envelopes"` // The error, if any occurred
}
