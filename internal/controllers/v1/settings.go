package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stuffd/backend/internal/httputil"
	"github.com/stuffd/backend/internal/models"
)

// RegisterSettingsRoutes registers the routes for the pay day settings
// with the RouterGroup that is passed.
func RegisterSettingsRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsSettings)
	r.GET("", GetSettings)
	r.PATCH("", UpdateSettings)
}

// SettingsEditable represents the user configurable settings. The last
// pay event data is written by the engine after every execution and
// cannot be changed through the API.
type SettingsEditable struct {
	PayFrequencyDays uint       `json:"payFrequencyDays" example:"14" default:"0"`                      // Days between pay events, 0 when unknown
	DefaultAccountID *uuid.UUID `json:"defaultAccountId" example:"af892e10-7e0a-4fb8-b1bc-4b6d88107ed9"` // Account used for account mode pay events
}

type Settings struct {
	SettingsEditable
	LastPayAmount decimal.Decimal `json:"lastPayAmount" example:"2000"`            // Inflow of the last executed pay event
	LastPayDate   time.Time       `json:"lastPayDate" example:"2026-08-14T00:00:00Z"` // Date of the last executed pay event
}

func newSettings(model models.PayDaySettings) Settings {
	return Settings{
		SettingsEditable: SettingsEditable{
			PayFrequencyDays: model.PayFrequencyDays,
			DefaultAccountID: model.DefaultAccountID,
		},
		LastPayAmount: model.LastPayAmount,
		LastPayDate:   model.LastPayDate,
	}
}

type SettingsResponse struct {
	Data  *Settings `json:"data"`                                               // The settings
	Error *string   `json:"error" example:"the request body must not be empty"` // The error, if any occurred
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Settings
// @Success		204
// @Router			/v1/settings [options]
func OptionsSettings(c *gin.Context) {
	httputil.OptionsGetPatch(c)
}

// @Summary		Get settings
// @Description	Returns the pay day settings
// @Tags			Settings
// @Produce		json
// @Success		200	{object}	SettingsResponse
// @Failure		500	{object}	SettingsResponse
// @Router			/v1/settings [get]
func GetSettings(c *gin.Context) {
	settings, err := models.ReadPayDaySettings(models.DB)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SettingsResponse{
			Error: &s,
		})
		return
	}

	data := newSettings(settings)
	c.JSON(http.StatusOK, SettingsResponse{Data: &data})
}

// @Summary		Update settings
// @Description	Updates the pay day settings. Only values to be updated need to be specified.
// @Tags			Settings
// @Accept			json
// @Produce		json
// @Success		200			{object}	SettingsResponse
// @Failure		400			{object}	SettingsResponse
// @Failure		500			{object}	SettingsResponse
// @Param			settings	body		SettingsEditable	true	"Settings"
// @Router			/v1/settings [patch]
func UpdateSettings(c *gin.Context) {
	settings, err := models.ReadPayDaySettings(models.DB)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SettingsResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, SettingsEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SettingsResponse{
			Error: &s,
		})
		return
	}

	var data SettingsEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SettingsResponse{
			Error: &s,
		})
		return
	}

	for _, field := range updateFields {
		switch field {
		case "PayFrequencyDays":
			settings.PayFrequencyDays = data.PayFrequencyDays
		case "DefaultAccountID":
			settings.DefaultAccountID = data.DefaultAccountID
		}
	}

	err = models.WritePayDaySettings(models.DB, settings)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SettingsResponse{
			Error: &s,
		})
		return
	}

	r := newSettings(settings)
	c.JSON(http.StatusOK, SettingsResponse{Data: &r})
}
