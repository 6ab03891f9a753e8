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

// RegisterScheduledPaymentRoutes registers the routes for scheduled
// payments with the RouterGroup that is passed.
func RegisterScheduledPaymentRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsScheduledPaymentList)
		r.GET("", GetScheduledPayments)
		r.POST("", CreateScheduledPayments)
	}

	// Scheduled payment with ID
	{
		r.OPTIONS("/:id", OptionsScheduledPaymentDetail)
		r.GET("/:id", GetScheduledPayment)
		r.PATCH("/:id", UpdateScheduledPayment)
		r.DELETE("/:id", DeleteScheduledPayment)
	}
}

// ScheduledPaymentEditable represents all user configurable parameters
type ScheduledPaymentEditable struct {
	Payee      string          `json:"payee" example:"Water Works" default:""`                    // Payee of the payment
	Note       string          `json:"note" example:"Water bill" default:""`                      // Notes about the payment
	Amount     decimal.Decimal `json:"amount" example:"54.30" default:"0"`                        // Amount of the payment
	DueDate    time.Time       `json:"dueDate" example:"2026-09-05T00:00:00Z"`                    // Date the payment is due
	EnvelopeID *uuid.UUID      `json:"envelopeId" example:"45b6b5b9-f746-4ae9-b77b-7688b91f8166"` // Envelope that funds the payment
	Archived   bool            `json:"archived" example:"true" default:"false"`                   // Is the payment archived?
}

func (editable ScheduledPaymentEditable) model() models.ScheduledPayment {
	return models.ScheduledPayment{
		Payee:      editable.Payee,
		Note:       editable.Note,
		Amount:     editable.Amount,
		DueDate:    editable.DueDate,
		EnvelopeID: editable.EnvelopeID,
		Archived:   editable.Archived,
	}
}

type ScheduledPaymentLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/scheduled-payments/a4ac0091-335d-4b29-a20f-2c84e35dfa1b"` // The payment itself
}

type ScheduledPayment struct {
	models.DefaultModel
	ScheduledPaymentEditable
	Links ScheduledPaymentLinks `json:"links"`
}

func newScheduledPayment(c *gin.Context, model models.ScheduledPayment) ScheduledPayment {
	url := c.GetString(string(models.DBContextURL))

	return ScheduledPayment{
		DefaultModel: model.DefaultModel,
		ScheduledPaymentEditable: ScheduledPaymentEditable{
			Payee:      model.Payee,
			Note:       model.Note,
			Amount:     model.Amount,
			DueDate:    model.DueDate,
			EnvelopeID: model.EnvelopeID,
			Archived:   model.Archived,
		},
		Links: ScheduledPaymentLinks{
			Self: fmt.Sprintf("%s/v1/scheduled-payments/%s", url, model.ID),
		},
	}
}

type ScheduledPaymentListResponse struct {
	Data       []ScheduledPayment `json:"data"`                                                              // List of scheduled payments
	Error      *string            `json:"error" example:"there is no scheduled payment matching your query"` // The error, if any occurred
	Pagination *Pagination        `json:"pagination"`                                                        // Pagination information
}

type ScheduledPaymentCreateResponse struct {
	Data  []ScheduledPaymentResponse `json:"data"`                                               // List of the created payments or their respective error
	Error *string                    `json:"error" example:"the request body must not be empty"` // The error, if any occurred
}

func (s *ScheduledPaymentCreateResponse) appendError(err error, currentStatus int) int {
	e := err.Error()
	s.Data = append(s.Data, ScheduledPaymentResponse{Error: &e})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type ScheduledPaymentResponse struct {
	Data  *ScheduledPayment `json:"data"`                                                              // Data for the payment
	Error *string           `json:"error" example:"there is no scheduled payment matching your query"` // The error, if any occurred
}

type ScheduledPaymentQueryFilter struct {
	Payee      string           `form:"payee" filterField:"false"`  // By payee
	Note       string           `form:"note" filterField:"false"`   // By note
	EnvelopeID stuffd_uuid.UUID `form:"envelope"`                   // By ID of the envelope
	Archived   bool             `form:"archived"`                   // Is the payment archived?
	Offset     uint             `form:"offset" filterField:"false"` // The offset of the first payment returned. Defaults to 0.
	Limit      int              `form:"limit" filterField:"false"`  // Maximum number of payments to return. Defaults to 50.
}

func (f ScheduledPaymentQueryFilter) model() models.ScheduledPayment {
	var envelopeID *uuid.UUID
	if f.EnvelopeID.UUID != uuid.Nil {
		envelopeID = &f.EnvelopeID.UUID
	}

	return models.ScheduledPayment{
		EnvelopeID: envelopeID,
		Archived:   f.Archived,
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			ScheduledPayments
// @Success		204
// @Router			/v1/scheduled-payments [options]
func OptionsScheduledPaymentList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			ScheduledPayments
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/scheduled-payments/{id} [options]
func OptionsScheduledPaymentDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.ScheduledPayment{})
}

// @Summary		Create scheduled payments
// @Description	Creates new scheduled payments
// @Tags			ScheduledPayments
// @Accept			json
// @Produce		json
// @Success		201					{object}	ScheduledPaymentCreateResponse
// @Failure		400					{object}	ScheduledPaymentCreateResponse
// @Failure		404					{object}	ScheduledPaymentCreateResponse
// @Failure		500					{object}	ScheduledPaymentCreateResponse
// @Param			scheduledPayments	body		[]ScheduledPaymentEditable	true	"ScheduledPayments"
// @Router			/v1/scheduled-payments [post]
func CreateScheduledPayments(c *gin.Context) {
	var editables []ScheduledPaymentEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ScheduledPaymentCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := ScheduledPaymentCreateResponse{}

	for _, editable := range editables {
		payment := editable.model()

		err = models.DB.Create(&payment).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newScheduledPayment(c, payment)
		r.Data = append(r.Data, ScheduledPaymentResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Get scheduled payments
// @Description	Returns a list of scheduled payments
// @Tags			ScheduledPayments
// @Produce		json
// @Success		200	{object}	ScheduledPaymentListResponse
// @Failure		400	{object}	ScheduledPaymentListResponse
// @Failure		500	{object}	ScheduledPaymentListResponse
// @Router			/v1/scheduled-payments [get]
// @Param			payee		query	string	false	"Filter by payee"
// @Param			note		query	string	false	"Filter by note"
// @Param			envelope	query	string	false	"Filter by envelope ID"
// @Param			archived	query	bool	false	"Is the payment archived?"
// @Param			offset		query	uint	false	"The offset of the first payment returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of payments to return. Defaults to 50."
func GetScheduledPayments(c *gin.Context) {
	var filter ScheduledPaymentQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	// Get the fields that we are filtering for
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	filterModel := filter.model()

	q := models.DB.
		Order("due_date ASC, payee ASC").
		Where(&filterModel, queryFields...)

	if filter.Payee != "" {
		q = q.Where("payee LIKE ?", fmt.Sprintf("%%%s%%", filter.Payee))
	} else if slices.Contains(setFields, "Payee") {
		q = q.Where("payee = ''")
	}

	if filter.Note != "" {
		q = q.Where("note LIKE ?", fmt.Sprintf("%%%s%%", filter.Note))
	} else if slices.Contains(setFields, "Note") {
		q = q.Where("note = ''")
	}

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 payments and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var payments []models.ScheduledPayment
	err := q.Find(&payments).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ScheduledPaymentListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ScheduledPaymentListResponse{
			Error: &e,
		})
		return
	}

	data := make([]ScheduledPayment, 0)
	for _, payment := range payments {
		data = append(data, newScheduledPayment(c, payment))
	}

	c.JSON(http.StatusOK, ScheduledPaymentListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get scheduled payment
// @Description	Returns a specific scheduled payment
// @Tags			ScheduledPayments
// @Produce		json
// @Success		200	{object}	ScheduledPaymentResponse
// @Failure		400	{object}	ScheduledPaymentResponse
// @Failure		404	{object}	ScheduledPaymentResponse
// @Failure		500	{object}	ScheduledPaymentResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/scheduled-payments/{id} [get]
func GetScheduledPayment(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ScheduledPaymentResponse{
			Error: &s,
		})
		return
	}

	var payment models.ScheduledPayment
	err = models.DB.First(&payment, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ScheduledPaymentResponse{
			Error: &s,
		})
		return
	}

	data := newScheduledPayment(c, payment)
	c.JSON(http.StatusOK, ScheduledPaymentResponse{Data: &data})
}

// @Summary		Update scheduled payment
// @Description	Update an existing scheduled payment. Only values to be updated need to be specified.
// @Tags			ScheduledPayments
// @Accept			json
// @Produce		json
// @Success		200					{object}	ScheduledPaymentResponse
// @Failure		400					{object}	ScheduledPaymentResponse
// @Failure		404					{object}	ScheduledPaymentResponse
// @Failure		500					{object}	ScheduledPaymentResponse
// @Param			id					path		URIID						true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			scheduledPayment	body		ScheduledPaymentEditable	true	"ScheduledPayment"
// @Router			/v1/scheduled-payments/{id} [patch]
func UpdateScheduledPayment(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ScheduledPaymentResponse{
			Error: &s,
		})
		return
	}

	var payment models.ScheduledPayment
	err = models.DB.First(&payment, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ScheduledPaymentResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, ScheduledPaymentEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ScheduledPaymentResponse{
			Error: &s,
		})
		return
	}

	var data ScheduledPaymentEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ScheduledPaymentResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.Model(&payment).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ScheduledPaymentResponse{
			Error: &s,
		})
		return
	}

	r := newScheduledPayment(c, payment)
	c.JSON(http.StatusOK, ScheduledPaymentResponse{Data: &r})
}

// @Summary		Delete scheduled payment
// @Description	Deletes a scheduled payment
// @Tags			ScheduledPayments
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/scheduled-payments/{id} [delete]
func DeleteScheduledPayment(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var payment models.ScheduledPayment
	err = models.DB.First(&payment, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&payment).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.Status(http.StatusNoContent)
}
