package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stuffd/backend/internal/httputil"
	"github.com/stuffd/backend/internal/models"
	"github.com/stuffd/backend/internal/payday"
)

// RegisterRoutes registers all v1 routes with the RouterGroup
// that is passed.
func RegisterRoutes(r *gin.RouterGroup, manager *payday.Manager, version string) {
	r.GET("", Get)
	r.DELETE("", Cleanup)
	r.OPTIONS("", Options)

	RegisterAccountRoutes(r.Group("/accounts"))
	RegisterBinderRoutes(r.Group("/binders"))
	RegisterEnvelopeRoutes(r.Group("/envelopes"))
	RegisterMatchRuleRoutes(r.Group("/match-rules"))
	RegisterPayDayRoutes(r.Group("/payday"), manager)
	RegisterScheduledPaymentRoutes(r.Group("/scheduled-payments"))
	RegisterSettingsRoutes(r.Group("/settings"))
	RegisterTransactionRoutes(r.Group("/transactions"))
	RegisterExportRoutes(r.Group("/export"), version)
}

type Response struct {
	Links Links `json:"links"` // Links for the v1 API
}

type Links struct {
	Accounts          string `json:"accounts" example:"https://example.com/api/v1/accounts"`                    // URL of Account collection endpoint
	Binders           string `json:"binders" example:"https://example.com/api/v1/binders"`                      // URL of Binder collection endpoint
	Envelopes         string `json:"envelopes" example:"https://example.com/api/v1/envelopes"`                  // URL of Envelope collection endpoint
	Export            string `json:"export" example:"https://example.com/api/v1/export"`                        // URL of the export endpoint
	MatchRules        string `json:"matchRules" example:"https://example.com/api/v1/match-rules"`               // URL of Match Rule collection endpoint
	PayDay            string `json:"payday" example:"https://example.com/api/v1/payday"`                        // URL of the pay day cockpit endpoint
	ScheduledPayments string `json:"scheduledPayments" example:"https://example.com/api/v1/scheduled-payments"` // URL of Scheduled Payment collection endpoint
	Settings          string `json:"settings" example:"https://example.com/api/v1/settings"`                    // URL of the settings endpoint
	Transactions      string `json:"transactions" example:"https://example.com/api/v1/transactions"`            // URL of Transaction collection endpoint
}

// Get returns the link list for v1
//
//	@Summary		v1 API
//	@Description	Returns general information about the v1 API
//	@Tags			v1
//	@Success		200	{object}	Response
//	@Router			/v1 [get]
func Get(c *gin.Context) {
	url := c.GetString(string(models.DBContextURL))

	c.JSON(http.StatusOK, Response{
		Links: Links{
			Accounts:          url + "/v1/accounts",
			Binders:           url + "/v1/binders",
			Envelopes:         url + "/v1/envelopes",
			Export:            url + "/v1/export",
			MatchRules:        url + "/v1/match-rules",
			PayDay:            url + "/v1/payday",
			ScheduledPayments: url + "/v1/scheduled-payments",
			Settings:          url + "/v1/settings",
			Transactions:      url + "/v1/transactions",
		},
	})
}

// Options returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			v1
//	@Success		204
//	@Router			/v1 [options]
func Options(c *gin.Context) {
	httputil.OptionsGetDelete(c)
}
