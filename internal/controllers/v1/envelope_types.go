package v1

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stuffd/backend/internal/models"
	"github.com/stuffd/backend/internal/types"
	stuffd_uuid "github.com/stuffd/backend/internal/uuid"
)

// EnvelopeEditable represents all user configurable parameters.
//
// The balance is not part of it: balances only change through the
// ledger, which pairs every change with a transaction record.
type EnvelopeEditable struct {
	Name            string          `json:"name" example:"New Bike" default:""`                               // Name of the envelope
	Note            string          `json:"note" example:"Saving for the cargo bike" default:""`              // Notes about the envelope
	TargetAmount    decimal.Decimal `json:"targetAmount" example:"2500" default:"0"`                          // Target amount, 0 means no horizon
	TargetMonth     types.Month     `json:"targetMonth" example:"2027-06-01T00:00:00Z"`                       // Month the target should be reached in
	CashFlowAmount  decimal.Decimal `json:"cashFlowAmount" example:"150" default:"0"`                         // Amount added per pay event when autopilot is on
	CashFlowEnabled bool            `json:"cashFlowEnabled" example:"true" default:"false"`                   // Does the envelope participate in the autopilot?
	BinderID        *uuid.UUID      `json:"binderId" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"`          // ID of the binder the envelope is filed in
	LinkedAccountID *uuid.UUID      `json:"linkedAccountId" example:"af892e10-7e0a-4fb8-b1bc-4b6d88107ed9"`   // ID of the account the envelope is linked to
	Archived        bool            `json:"archived" example:"true" default:"false"`                          // Is the envelope archived?
}

func (editable EnvelopeEditable) model() models.Envelope {
	return models.Envelope{
		Name:            editable.Name,
		Note:            editable.Note,
		TargetAmount:    editable.TargetAmount,
		TargetMonth:     editable.TargetMonth,
		CashFlowAmount:  editable.CashFlowAmount,
		CashFlowEnabled: editable.CashFlowEnabled,
		BinderID:        editable.BinderID,
		LinkedAccountID: editable.LinkedAccountID,
		Archived:        editable.Archived,
	}
}

type EnvelopeLinks struct {
	Self         string `json:"self" example:"https://example.com/api/v1/envelopes/45b6b5b9-f746-4ae9-b77b-7688b91f8166"`                      // The envelope itself
	Transactions string `json:"transactions" example:"https://example.com/api/v1/transactions?envelope=45b6b5b9-f746-4ae9-b77b-7688b91f8166"` // Transactions for this envelope
}

type Envelope struct {
	models.DefaultModel
	EnvelopeEditable
	Balance     decimal.Decimal `json:"balance" example:"735.42"`     // Current balance, managed by the ledger
	MonthlyNeed decimal.Decimal `json:"monthlyNeed" example:"220.84"` // Amount per month still needed to reach the target by the target month
	Links       EnvelopeLinks   `json:"links"`
}

func newEnvelope(c *gin.Context, model models.Envelope) Envelope {
	url := c.GetString(string(models.DBContextURL))

	return Envelope{
		DefaultModel: model.DefaultModel,
		EnvelopeEditable: EnvelopeEditable{
			Name:            model.Name,
			Note:            model.Note,
			TargetAmount:    model.TargetAmount,
			TargetMonth:     model.TargetMonth,
			CashFlowAmount:  model.CashFlowAmount,
			CashFlowEnabled: model.CashFlowEnabled,
			BinderID:        model.BinderID,
			LinkedAccountID: model.LinkedAccountID,
			Archived:        model.Archived,
		},
		Balance:     model.Balance,
		MonthlyNeed: model.MonthlyNeed(types.MonthOf(time.Now())),
		Links: EnvelopeLinks{
			Self:         fmt.Sprintf("%s/v1/envelopes/%s", url, model.ID),
			Transactions: fmt.Sprintf("%s/v1/transactions?envelope=%s", url, model.ID),
		},
	}
}

type EnvelopeListResponse struct {
	Data       []Envelope  `json:"data"`                                                     // List of envelopes
	Error      *string     `json:"error" example:"there is no envelope matching your query"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                               // Pagination information
}

type EnvelopeCreateResponse struct {
	Data  []EnvelopeResponse `json:"data"`                                               // List of the created envelopes or their respective error
	Error *string            `json:"error" example:"the request body must not be empty"` // The error, if any occurred
}

func (e *EnvelopeCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	e.Data = append(e.Data, EnvelopeResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type EnvelopeResponse struct {
	Data  *Envelope `json:"data"`                                                     // Data for the envelope
	Error *string   `json:"error" example:"there is no envelope matching your query"` // The error, if any occurred
}

type EnvelopeQueryFilter struct {
	Name            string           `form:"name" filterField:"false"`   // By name
	Note            string           `form:"note" filterField:"false"`   // By note
	BinderID        stuffd_uuid.UUID `form:"binder"`                     // By ID of the binder
	CashFlowEnabled bool             `form:"cashFlowEnabled"`            // Does the envelope participate in the autopilot?
	Archived        bool             `form:"archived"`                   // Is the envelope archived?
	Search          string           `form:"search" filterField:"false"` // By string in name or note
	Offset          uint             `form:"offset" filterField:"false"` // The offset of the first envelope returned. Defaults to 0.
	Limit           int              `form:"limit" filterField:"false"`  // Maximum number of envelopes to return. Defaults to 50.
}

func (f EnvelopeQueryFilter) model() models.Envelope {
	var binderID *uuid.UUID
	if f.BinderID.UUID != uuid.Nil {
		binderID = &f.BinderID.UUID
	}

	return models.Envelope{
		BinderID:        binderID,
		CashFlowEnabled: f.CashFlowEnabled,
		Archived:        f.Archived,
	}
}
