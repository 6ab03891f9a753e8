package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stuffd/backend/internal/httputil"
	"github.com/stuffd/backend/internal/payday"
)

// paydayManager holds the live cockpit sessions. It is set when the
// routes are registered.
var paydayManager *payday.Manager

// RegisterPayDayRoutes registers the routes for the pay day cockpit
// with the RouterGroup that is passed.
func RegisterPayDayRoutes(r *gin.RouterGroup, manager *payday.Manager) {
	paydayManager = manager

	// Root group
	{
		r.OPTIONS("", OptionsPayDayList)
		r.POST("", CreatePayDaySession)
	}

	// Session with ID
	{
		r.OPTIONS("/:id", OptionsPayDayDetail)
		r.GET("/:id", GetPayDaySession)
		r.PATCH("/:id", UpdatePayDaySession)
		r.DELETE("/:id", CancelPayDaySession)

		r.POST("/:id/review", ReviewPayDaySession)
		r.POST("/:id/execute", ExecutePayDaySession)
		r.POST("/:id/reset", ResetPayDaySession)

		r.OPTIONS("/:id/envelopes/:envelopeId", OptionsPayDayEnvelope)
		r.POST("/:id/envelopes/:envelopeId", AddPayDayEnvelope)
		r.PATCH("/:id/envelopes/:envelopeId", UpdatePayDayEnvelope)
		r.DELETE("/:id/envelopes/:envelopeId", RemovePayDayEnvelope)

		r.POST("/:id/binders/:binderId", AddPayDayBinder)
	}
}

// session resolves the session from the URI or writes the error
// response.
func session(c *gin.Context) (*payday.Session, bool) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PayDaySessionResponse{
			Error: &s,
		})
		return nil, false
	}

	session, err := paydayManager.Get(uri.ID.UUID)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PayDaySessionResponse{
			Error: &s,
		})
		return nil, false
	}

	return session, true
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			PayDay
// @Success		204
// @Router			/v1/payday [options]
func OptionsPayDayList(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			PayDay
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/payday/{id} [options]
func OptionsPayDayDetail(c *gin.Context) {
	if _, ok := session(c); !ok {
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			PayDay
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id			path	URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			envelopeId	path	string	true	"ID of the envelope"
// @Router			/v1/payday/{id}/envelopes/{envelopeId} [options]
func OptionsPayDayEnvelope(c *gin.Context) {
	httputil.OptionsPostPatchDelete(c)
}

// @Summary		Start pay day session
// @Description	Opens a new pay day cockpit session, pre-populated from the settings of the last pay event
// @Tags			PayDay
// @Produce		json
// @Success		201	{object}	PayDaySessionResponse
// @Failure		500	{object}	PayDaySessionResponse
// @Router			/v1/payday [post]
func CreatePayDaySession(c *gin.Context) {
	session, err := paydayManager.Start()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PayDaySessionResponse{
			Error: &s,
		})
		return
	}

	data := newPayDaySession(c, session)
	c.JSON(http.StatusCreated, PayDaySessionResponse{Data: &data})
}

// @Summary		Get pay day session
// @Description	Returns the state of a pay day session, including the current allocation preview
// @Tags			PayDay
// @Produce		json
// @Success		200	{object}	PayDaySessionResponse
// @Failure		400	{object}	PayDaySessionResponse
// @Failure		404	{object}	PayDaySessionResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/payday/{id} [get]
func GetPayDaySession(c *gin.Context) {
	session, ok := session(c)
	if !ok {
		return
	}

	data := newPayDaySession(c, session)
	c.JSON(http.StatusOK, PayDaySessionResponse{Data: &data})
}

// @Summary		Update pay day session
// @Description	Sets the inflow amount and the account mode during inflow entry
// @Tags			PayDay
// @Accept			json
// @Produce		json
// @Success		200		{object}	PayDaySessionResponse
// @Failure		400		{object}	PayDaySessionResponse
// @Failure		404		{object}	PayDaySessionResponse
// @Failure		409		{object}	PayDaySessionResponse
// @Param			id		path		URIID					true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			session	body		PayDaySessionEditable	true	"Session"
// @Router			/v1/payday/{id} [patch]
func UpdatePayDaySession(c *gin.Context) {
	session, ok := session(c)
	if !ok {
		return
	}

	var data PayDaySessionEditable
	err := httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PayDaySessionResponse{
			Error: &s,
		})
		return
	}

	if data.Inflow != nil {
		if err := session.SetInflow(*data.Inflow); err != nil {
			s := err.Error()
			c.JSON(status(err), PayDaySessionResponse{
				Error: &s,
			})
			return
		}
	}

	if data.AccountMode != nil {
		if err := session.SetAccountMode(*data.AccountMode, data.AccountID); err != nil {
			s := err.Error()
			c.JSON(status(err), PayDaySessionResponse{
				Error: &s,
			})
			return
		}
	}

	r := newPayDaySession(c, session)
	c.JSON(http.StatusOK, PayDaySessionResponse{Data: &r})
}

// @Summary		Proceed to strategy review
// @Description	Locks the inflow and seeds the working set with every autopilot envelope
// @Tags			PayDay
// @Produce		json
// @Success		200	{object}	PayDaySessionResponse
// @Failure		400	{object}	PayDaySessionResponse
// @Failure		404	{object}	PayDaySessionResponse
// @Failure		409	{object}	PayDaySessionResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/payday/{id}/review [post]
func ReviewPayDaySession(c *gin.Context) {
	session, ok := session(c)
	if !ok {
		return
	}

	if err := session.Proceed(); err != nil {
		s := err.Error()
		c.JSON(status(err), PayDaySessionResponse{
			Error: &s,
		})
		return
	}

	data := newPayDaySession(c, session)
	c.JSON(http.StatusOK, PayDaySessionResponse{Data: &data})
}

// @Summary		Add envelope to pay event
// @Description	Adds an envelope to the working set at its stored cash flow amount
// @Tags			PayDay
// @Produce		json
// @Success		200			{object}	PayDaySessionResponse
// @Failure		400			{object}	PayDaySessionResponse
// @Failure		404			{object}	PayDaySessionResponse
// @Failure		409			{object}	PayDaySessionResponse
// @Param			id			path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			envelopeId	path		string	true	"ID of the envelope"
// @Router			/v1/payday/{id}/envelopes/{envelopeId} [post]
func AddPayDayEnvelope(c *gin.Context) {
	var uri URISessionEnvelope
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PayDaySessionResponse{
			Error: &s,
		})
		return
	}

	session, err := paydayManager.Get(uri.ID.UUID)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PayDaySessionResponse{
			Error: &s,
		})
		return
	}

	if err := session.AddEnvelope(uri.EnvelopeID.UUID); err != nil {
		s := err.Error()
		c.JSON(status(err), PayDaySessionResponse{
			Error: &s,
		})
		return
	}

	data := newPayDaySession(c, session)
	c.JSON(http.StatusOK, PayDaySessionResponse{Data: &data})
}

// @Summary		Edit envelope in pay event
// @Description	Sets the override amount or boost fraction of an envelope for this pay event
// @Tags			PayDay
// @Accept			json
// @Produce		json
// @Success		200			{object}	PayDaySessionResponse
// @Failure		400			{object}	PayDaySessionResponse
// @Failure		404			{object}	PayDaySessionResponse
// @Failure		409			{object}	PayDaySessionResponse
// @Param			id			path		URIID				true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			envelopeId	path		string				true	"ID of the envelope"
// @Param			workingSet	body		WorkingSetEditable	true	"Working set"
// @Router			/v1/payday/{id}/envelopes/{envelopeId} [patch]
func UpdatePayDayEnvelope(c *gin.Context) {
	var uri URISessionEnvelope
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PayDaySessionResponse{
			Error: &s,
		})
		return
	}

	session, err := paydayManager.Get(uri.ID.UUID)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PayDaySessionResponse{
			Error: &s,
		})
		return
	}

	var data WorkingSetEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PayDaySessionResponse{
			Error: &s,
		})
		return
	}

	if data.Override != nil {
		if err := session.SetOverride(uri.EnvelopeID.UUID, *data.Override); err != nil {
			s := err.Error()
			c.JSON(status(err), PayDaySessionResponse{
				Error: &s,
			})
			return
		}
	}

	if data.BoostFraction != nil {
		if err := session.SetBoostFraction(uri.EnvelopeID.UUID, *data.BoostFraction); err != nil {
			s := err.Error()
			c.JSON(status(err), PayDaySessionResponse{
				Error: &s,
			})
			return
		}
	}

	r := newPayDaySession(c, session)
	c.JSON(http.StatusOK, PayDaySessionResponse{Data: &r})
}

// @Summary		Remove envelope from pay event
// @Description	Removes an envelope from the working set, discarding its boost fraction
// @Tags			PayDay
// @Produce		json
// @Success		200			{object}	PayDaySessionResponse
// @Failure		400			{object}	PayDaySessionResponse
// @Failure		404			{object}	PayDaySessionResponse
// @Failure		409			{object}	PayDaySessionResponse
// @Param			id			path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			envelopeId	path		string	true	"ID of the envelope"
// @Router			/v1/payday/{id}/envelopes/{envelopeId} [delete]
func RemovePayDayEnvelope(c *gin.Context) {
	var uri URISessionEnvelope
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PayDaySessionResponse{
			Error: &s,
		})
		return
	}

	session, err := paydayManager.Get(uri.ID.UUID)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PayDaySessionResponse{
			Error: &s,
		})
		return
	}

	if err := session.RemoveEnvelope(uri.EnvelopeID.UUID); err != nil {
		s := err.Error()
		c.JSON(status(err), PayDaySessionResponse{
			Error: &s,
		})
		return
	}

	data := newPayDaySession(c, session)
	c.JSON(http.StatusOK, PayDaySessionResponse{Data: &data})
}

// @Summary		Add binder to pay event
// @Description	Adds every envelope of a binder to the working set
// @Tags			PayDay
// @Produce		json
// @Success		200			{object}	PayDaySessionResponse
// @Failure		400			{object}	PayDaySessionResponse
// @Failure		404			{object}	PayDaySessionResponse
// @Failure		409			{object}	PayDaySessionResponse
// @Param			id			path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			binderId	path		string	true	"ID of the binder"
// @Router			/v1/payday/{id}/binders/{binderId} [post]
func AddPayDayBinder(c *gin.Context) {
	var uri URISessionBinder
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PayDaySessionResponse{
			Error: &s,
		})
		return
	}

	session, err := paydayManager.Get(uri.ID.UUID)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PayDaySessionResponse{
			Error: &s,
		})
		return
	}

	if err := session.AddBinder(uri.BinderID.UUID); err != nil {
		s := err.Error()
		c.JSON(status(err), PayDaySessionResponse{
			Error: &s,
		})
		return
	}

	data := newPayDaySession(c, session)
	c.JSON(http.StatusOK, PayDaySessionResponse{Data: &data})
}

// @Summary		Execute pay event
// @Description	Freezes the allocation plan and applies it to the ledger. A failure leaves the already committed steps applied.
// @Tags			PayDay
// @Produce		json
// @Success		200	{object}	PayDaySummaryResponse
// @Failure		400	{object}	PayDaySummaryResponse
// @Failure		404	{object}	PayDaySummaryResponse
// @Failure		409	{object}	PayDaySummaryResponse
// @Failure		500	{object}	PayDaySummaryResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/payday/{id}/execute [post]
func ExecutePayDaySession(c *gin.Context) {
	session, ok := session(c)
	if !ok {
		return
	}

	summary, err := session.Execute(c.Request.Context(), nil)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PayDaySummaryResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, PayDaySummaryResponse{Data: &summary})
}

// @Summary		Reset pay day session
// @Description	Discards all working state of a finished session and starts over with fresh data
// @Tags			PayDay
// @Produce		json
// @Success		200	{object}	PayDaySessionResponse
// @Failure		400	{object}	PayDaySessionResponse
// @Failure		404	{object}	PayDaySessionResponse
// @Failure		409	{object}	PayDaySessionResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/payday/{id}/reset [post]
func ResetPayDaySession(c *gin.Context) {
	session, ok := session(c)
	if !ok {
		return
	}

	if err := session.Reset(); err != nil {
		s := err.Error()
		c.JSON(status(err), PayDaySessionResponse{
			Error: &s,
		})
		return
	}

	data := newPayDaySession(c, session)
	c.JSON(http.StatusOK, PayDaySessionResponse{Data: &data})
}

// @Summary		Cancel pay day session
// @Description	Abandons a session before execution, or discards a finished one. Cancellation never has a ledger effect.
// @Tags			PayDay
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		409	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/payday/{id} [delete]
func CancelPayDaySession(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	if err := paydayManager.Cancel(uri.ID.UUID); err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.Status(http.StatusNoContent)
}
