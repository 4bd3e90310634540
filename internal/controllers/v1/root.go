package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pennywise-app/backend/internal/httputil"
)

// RegisterRootRoutes registers the v1 root routes with
// the RouterGroup that is passed.
func RegisterRootRoutes(r *gin.RouterGroup) {
	r.GET("", GetV1)
	r.OPTIONS("", OptionsV1)
}

type RootResponse struct {
	Links RootLinks `json:"links"` // Links for the v1 API
}

type RootLinks struct {
	Balance      string `json:"balance" example:"https://example.com/v1/balance"`           // URL of the balance endpoint
	Bills        string `json:"bills" example:"https://example.com/v1/bills"`               // URL of the recurring bill endpoint
	Budgets      string `json:"budgets" example:"https://example.com/v1/budgets"`           // URL of the budget collection endpoint
	Overview     string `json:"overview" example:"https://example.com/v1/overview"`         // URL of the overview endpoint
	Pots         string `json:"pots" example:"https://example.com/v1/pots"`                 // URL of the pot collection endpoint
	Transactions string `json:"transactions" example:"https://example.com/v1/transactions"` // URL of the transaction collection endpoint
	Users        string `json:"users" example:"https://example.com/v1/users"`               // URL of the user collection endpoint
}

// @Summary		v1 API
// @Description	Returns general information about the v1 API
// @Tags			General
// @Success		200	{object}	RootResponse
// @Router			/v1 [get]
func GetV1(c *gin.Context) {
	url := httputil.RequestHost(c) + "/v1"

	c.JSON(http.StatusOK, RootResponse{
		Links: RootLinks{
			Balance:      url + "/balance",
			Bills:        url + "/bills",
			Budgets:      url + "/budgets",
			Overview:     url + "/overview",
			Pots:         url + "/pots",
			Transactions: url + "/transactions",
			Users:        url + "/users",
		},
	})
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			General
// @Success		204
// @Router			/v1 [options]
func OptionsV1(c *gin.Context) {
	httputil.OptionsGet(c)
}
