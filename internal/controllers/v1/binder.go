package v1

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stuffd/backend/internal/httputil"
	"github.com/stuffd/backend/internal/models"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// RegisterBinderRoutes registers the routes for binders with
// the RouterGroup that is passed.
func RegisterBinderRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsBinderList)
		r.GET("", GetBinders)
		r.POST("", CreateBinders)
	}

	// Binder with ID
	{
		r.OPTIONS("/:id", OptionsBinderDetail)
		r.GET("/:id", GetBinder)
		r.PATCH("/:id", UpdateBinder)
		r.DELETE("/:id", DeleteBinder)
	}
}

// BinderEditable represents all user configurable parameters
type BinderEditable struct {
	Name     string `json:"name" example:"Travel" default:""`                       // Name of the binder
	Note     string `json:"note" example:"All envelopes for trips" default:""`      // Notes about the binder
	Archived bool   `json:"archived" example:"true" default:"false"`                // Is the binder archived?
}

func (editable BinderEditable) model() models.Binder {
	return models.Binder{
		Name:     editable.Name,
		Note:     editable.Note,
		Archived: editable.Archived,
	}
}

type BinderLinks struct {
	Self      string `json:"self" example:"https://example.com/api/v1/binders/3b1ea324-d438-4419-882a-2fc91d71772f"`              // The binder itself
	Envelopes string `json:"envelopes" example:"https://example.com/api/v1/envelopes?binder=3b1ea324-d438-4419-882a-2fc91d71772f"` // Envelopes in this binder
}

type Binder struct {
	models.DefaultModel
	BinderEditable
	Links BinderLinks `json:"links"`

	// These fields are computed
	Envelopes []Envelope `json:"envelopes"` // Envelopes in the binder
}

func newBinder(c *gin.Context, db *gorm.DB, model models.Binder) (Binder, error) {
	url := c.GetString(string(models.DBContextURL))

	binder := Binder{
		DefaultModel: model.DefaultModel,
		BinderEditable: BinderEditable{
			Name:     model.Name,
			Note:     model.Note,
			Archived: model.Archived,
		},
		Links: BinderLinks{
			Self:      fmt.Sprintf("%s/v1/binders/%s", url, model.ID),
			Envelopes: fmt.Sprintf("%s/v1/envelopes?binder=%s", url, model.ID),
		},
	}

	envelopes, err := model.Envelopes(db)
	if err != nil {
		return Binder{}, err
	}

	for _, envelope := range envelopes {
		binder.Envelopes = append(binder.Envelopes, newEnvelope(c, envelope))
	}

	return binder, nil
}

type BinderListResponse struct {
	Data       []Binder    `json:"data"`                                                   // List of binders
	Error      *string     `json:"error" example:"there is no binder matching your query"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                             // Pagination information
}

type BinderCreateResponse struct {
	Data  []BinderResponse `json:"data"`                                                   // List of the created binders or their respective error
	Error *string          `json:"error" example:"the request body must not be empty"`     // The error, if any occurred
}

func (b *BinderCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	b.Data = append(b.Data, BinderResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type BinderResponse struct {
	Data  *Binder `json:"data"`                                                   // Data for the binder
	Error *string `json:"error" example:"there is no binder matching your query"` // The error, if any occurred
}

type BinderQueryFilter struct {
	Name     string `form:"name" filterField:"false"`   // By name
	Note     string `form:"note" filterField:"false"`   // By note
	Archived bool   `form:"archived"`                   // Is the binder archived?
	Search   string `form:"search" filterField:"false"` // By string in name or note
	Offset   uint   `form:"offset" filterField:"false"` // The offset of the first binder returned. Defaults to 0.
	Limit    int    `form:"limit" filterField:"false"`  // Maximum number of binders to return. Defaults to 50.
}

func (f BinderQueryFilter) model() models.Binder {
	return models.Binder{
		Archived: f.Archived,
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Binders
// @Success		204
// @Router			/v1/binders [options]
func OptionsBinderList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Binders
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/binders/{id} [options]
func OptionsBinderDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.Binder{})
}

// @Summary		Create binders
// @Description	Creates new binders
// @Tags			Binders
// @Accept			json
// @Produce		json
// @Success		201		{object}	BinderCreateResponse
// @Failure		400		{object}	BinderCreateResponse
// @Failure		500		{object}	BinderCreateResponse
// @Param			binders	body		[]BinderEditable	true	"Binders"
// @Router			/v1/binders [post]
func CreateBinders(c *gin.Context) {
	var editables []BinderEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BinderCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := BinderCreateResponse{}

	for _, editable := range editables {
		binder := editable.model()

		err = models.DB.Create(&binder).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data, err := newBinder(c, models.DB, binder)
		if err != nil {
			status = r.appendError(err, status)
			continue
		}
		r.Data = append(r.Data, BinderResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Get binders
// @Description	Returns a list of binders
// @Tags			Binders
// @Produce		json
// @Success		200	{object}	BinderListResponse
// @Failure		400	{object}	BinderListResponse
// @Failure		500	{object}	BinderListResponse
// @Router			/v1/binders [get]
// @Param			name		query	string	false	"Filter by name"
// @Param			note		query	string	false	"Filter by note"
// @Param			archived	query	bool	false	"Is the binder archived?"
// @Param			search		query	string	false	"Search for this text in name and note"
// @Param			offset		query	uint	false	"The offset of the first binder returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of binders to return. Defaults to 50."
func GetBinders(c *gin.Context) {
	var filter BinderQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	// Get the fields that we are filtering for
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	filterModel := filter.model()

	q := models.DB.
		Order("name ASC").
		Where(&filterModel, queryFields...)

	q = stringFilters(models.DB, q, setFields, filter.Name, filter.Note, filter.Search)

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 binders and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var binders []models.Binder
	err := q.Find(&binders).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BinderListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BinderListResponse{
			Error: &e,
		})
		return
	}

	data := make([]Binder, 0)
	for _, binder := range binders {
		apiResource, err := newBinder(c, models.DB, binder)
		if err != nil {
			s := err.Error()
			c.JSON(status(err), BinderListResponse{
				Error: &s,
			})
			return
		}
		data = append(data, apiResource)
	}

	c.JSON(http.StatusOK, BinderListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get binder
// @Description	Returns a specific binder
// @Tags			Binders
// @Produce		json
// @Success		200	{object}	BinderResponse
// @Failure		400	{object}	BinderResponse
// @Failure		404	{object}	BinderResponse
// @Failure		500	{object}	BinderResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/binders/{id} [get]
func GetBinder(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BinderResponse{
			Error: &s,
		})
		return
	}

	var binder models.Binder
	err = models.DB.First(&binder, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BinderResponse{
			Error: &s,
		})
		return
	}

	data, err := newBinder(c, models.DB, binder)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BinderResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, BinderResponse{Data: &data})
}

// @Summary		Update binder
// @Description	Update an existing binder. Only values to be updated need to be specified.
// @Tags			Binders
// @Accept			json
// @Produce		json
// @Success		200		{object}	BinderResponse
// @Failure		400		{object}	BinderResponse
// @Failure		404		{object}	BinderResponse
// @Failure		500		{object}	BinderResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			binder	body		BinderEditable	true	"Binder"
// @Router			/v1/binders/{id} [patch]
func UpdateBinder(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BinderResponse{
			Error: &s,
		})
		return
	}

	var binder models.Binder
	err = models.DB.First(&binder, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BinderResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, BinderEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BinderResponse{
			Error: &s,
		})
		return
	}

	var data BinderEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BinderResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.Model(&binder).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BinderResponse{
			Error: &s,
		})
		return
	}

	r, err := newBinder(c, models.DB, binder)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BinderResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, BinderResponse{Data: &r})
}

// @Summary		Delete binder
// @Description	Deletes a binder
// @Tags			Binders
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/binders/{id} [delete]
func DeleteBinder(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var binder models.Binder
	err = models.DB.First(&binder, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&binder).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.Status(http.StatusNoContent)
}
