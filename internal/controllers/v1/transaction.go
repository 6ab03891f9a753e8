package v1

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stuffd/backend/internal/httputil"
	"github.com/stuffd/backend/internal/models"
	stuffd_uuid "github.com/stuffd/backend/internal/uuid"
	"golang.org/x/exp/slices"
)

// RegisterTransactionRoutes registers the routes for transactions with
// the RouterGroup that is passed.
//
// Transactions are read only. They are created exclusively by the
// ledger, paired with the balance change they document.
func RegisterTransactionRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsTransactionList)
		r.GET("", GetTransactions)
	}

	// Transaction with ID
	{
		r.OPTIONS("/:id", OptionsTransactionDetail)
		r.GET("/:id", GetTransaction)
	}
}

type Transaction struct {
	models.DefaultModel
	Type       models.TransactionType `json:"type" example:"deposit"`                                    // Type of the transaction
	Amount     decimal.Decimal        `json:"amount" example:"150"`                                      // Amount of the transaction
	EnvelopeID *uuid.UUID             `json:"envelopeId" example:"45b6b5b9-f746-4ae9-b77b-7688b91f8166"` // Envelope the transaction belongs to
	AccountID  *uuid.UUID             `json:"accountId" example:"af892e10-7e0a-4fb8-b1bc-4b6d88107ed9"`  // Account the transaction belongs to
	Date       time.Time              `json:"date" example:"2026-08-28T00:00:00Z"`                       // Date of the transaction
	Note       string                 `json:"note" example:"Pay day: New Bike"`                          // Note for the transaction
	TransferID *uuid.UUID             `json:"transferId" example:"66cfbb07-8a0f-4ac6-b263-10c6232b8047"` // Shared ID of the two records of a transfer
	Links      TransactionLinks       `json:"links"`
}

type TransactionLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/transactions/d430d7c3-d14c-4712-9336-ee56965a6673"` // The transaction itself
}

func newTransaction(c *gin.Context, model models.Transaction) Transaction {
	url := c.GetString(string(models.DBContextURL))

	return Transaction{
		DefaultModel: model.DefaultModel,
		Type:         model.Type,
		Amount:       model.Amount,
		EnvelopeID:   model.EnvelopeID,
		AccountID:    model.AccountID,
		Date:         model.Date,
		Note:         model.Note,
		TransferID:   model.TransferID,
		Links: TransactionLinks{
			Self: fmt.Sprintf("%s/v1/transactions/%s", url, model.ID),
		},
	}
}

type TransactionListResponse struct {
	Data       []Transaction `json:"data"`                                                        // List of transactions
	Error      *string       `json:"error" example:"there is no transaction matching your query"` // The error, if any occurred
	Pagination *Pagination   `json:"pagination"`                                                  // Pagination information
}

type TransactionResponse struct {
	Data  *Transaction `json:"data"`                                                        // Data for the transaction
	Error *string      `json:"error" example:"there is no transaction matching your query"` // The error, if any occurred
}

type TransactionQueryFilter struct {
	Type       string           `form:"type"`                       // By type
	EnvelopeID stuffd_uuid.UUID `form:"envelope"`                   // By ID of the envelope
	AccountID  stuffd_uuid.UUID `form:"account"`                    // By ID of the account
	Note       string           `form:"note" filterField:"false"`   // By note
	Search     string           `form:"search" filterField:"false"` // By string in note
	Offset     uint             `form:"offset" filterField:"false"` // The offset of the first transaction returned. Defaults to 0.
	Limit      int              `form:"limit" filterField:"false"`  // Maximum number of transactions to return. Defaults to 50.
}

func (f TransactionQueryFilter) model() models.Transaction {
	var envelopeID, accountID *uuid.UUID
	if f.EnvelopeID.UUID != uuid.Nil {
		envelopeID = &f.EnvelopeID.UUID
	}
	if f.AccountID.UUID != uuid.Nil {
		accountID = &f.AccountID.UUID
	}

	return models.Transaction{
		Type:       models.TransactionType(f.Type),
		EnvelopeID: envelopeID,
		AccountID:  accountID,
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Transactions
// @Success		204
// @Router			/v1/transactions [options]
func OptionsTransactionList(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Transactions
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/transactions/{id} [options]
func OptionsTransactionDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.First(&models.Transaction{}, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGet(c)
}

// @Summary		Get transactions
// @Description	Returns a list of transactions
// @Tags			Transactions
// @Produce		json
// @Success		200	{object}	TransactionListResponse
// @Failure		400	{object}	TransactionListResponse
// @Failure		500	{object}	TransactionListResponse
// @Router			/v1/transactions [get]
// @Param			type		query	string	false	"Filter by type"
// @Param			envelope	query	string	false	"Filter by envelope ID"
// @Param			account		query	string	false	"Filter by account ID"
// @Param			note		query	string	false	"Filter by note"
// @Param			search		query	string	false	"Search for this text in the note"
// @Param			offset		query	uint	false	"The offset of the first transaction returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of transactions to return. Defaults to 50."
func GetTransactions(c *gin.Context) {
	var filter TransactionQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	// Get the fields that we are filtering for
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	filterModel := filter.model()

	q := models.DB.
		Order("date DESC, created_at DESC").
		Where(&filterModel, queryFields...)

	if filter.Note != "" {
		q = q.Where("note LIKE ?", fmt.Sprintf("%%%s%%", filter.Note))
	} else if slices.Contains(setFields, "Note") {
		q = q.Where("note = ''")
	}

	if filter.Search != "" {
		q = q.Where("note LIKE ?", fmt.Sprintf("%%%s%%", filter.Search))
	}

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 transactions and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var transactions []models.Transaction
	err := q.Find(&transactions).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionListResponse{
			Error: &e,
		})
		return
	}

	data := make([]Transaction, 0)
	for _, transaction := range transactions {
		data = append(data, newTransaction(c, transaction))
	}

	c.JSON(http.StatusOK, TransactionListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get transaction
// @Description	Returns a specific transaction
// @Tags			Transactions
// @Produce		json
// @Success		200	{object}	TransactionResponse
// @Failure		400	{object}	TransactionResponse
// @Failure		404	{object}	TransactionResponse
// @Failure		500	{object}	TransactionResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/transactions/{id} [get]
func GetTransaction(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionResponse{
			Error: &s,
		})
		return
	}

	var transaction models.Transaction
	err = models.DB.First(&transaction, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionResponse{
			Error: &s,
		})
		return
	}

	data := newTransaction(c, transaction)
	c.JSON(http.StatusOK, TransactionResponse{Data: &data})
}
