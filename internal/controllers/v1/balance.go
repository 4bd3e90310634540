package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pennywise-app/backend/internal/httputil"
	"github.com/pennywise-app/backend/internal/models"
	"github.com/shopspring/decimal"
)

// RegisterBalanceRoutes registers the routes for the balance with
// the RouterGroup that is passed.
func RegisterBalanceRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsBalance)
	r.GET("", GetBalance)
	r.PATCH("", UpdateBalance)
}

type BalanceEditable struct {
	Current  decimal.Decimal `json:"current" example:"4836.92"` // Money currently available
	Income   decimal.Decimal `json:"income" example:"3814.25"`  // Income of the current period
	Expenses decimal.Decimal `json:"expenses" example:"1700.5"` // Expenses of the current period
}

type BalanceResponse struct {
	Error *string         `json:"error" example:"there is no balance matching your query"` // The error, if any occurred
	Data  *models.Balance `json:"data"`                                                    // The balance of the user
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Balance
// @Success		204
// @Router			/v1/balance [options]
func OptionsBalance(c *gin.Context) {
	httputil.OptionsGetPatch(c)
}

// @Summary		Get balance
// @Description	Returns the balance of the requesting user
// @Tags			Balance
// @Produce		json
// @Success		200	{object}	BalanceResponse
// @Failure		500	{object}	BalanceResponse
// @Router			/v1/balance [get]
func GetBalance(c *gin.Context) {
	balance, err := models.UserBalance(models.DB, currentUser(c))
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BalanceResponse{
			Error: &e,
		})
		return
	}

	c.JSON(http.StatusOK, BalanceResponse{Data: &balance})
}

// @Summary		Update balance
// @Description	Updates the balance of the requesting user. Only values to be updated need to be specified, fields absent from the body keep their value.
// @Tags			Balance
// @Accept			json
// @Produce		json
// @Success		200		{object}	BalanceResponse
// @Failure		400		{object}	BalanceResponse
// @Failure		500		{object}	BalanceResponse
// @Param			balance	body		BalanceEditable	true	"Balance"
// @Router			/v1/balance [patch]
func UpdateBalance(c *gin.Context) {
	balance, err := models.UserBalance(models.DB, currentUser(c))
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BalanceResponse{
			Error: &e,
		})
		return
	}

	// The set of fields in the body decides which columns are written,
	// a partial body must not zero the other columns
	bodyFields, err := httputil.BodyFields(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BalanceResponse{
			Error: &e,
		})
		return
	}

	var update BalanceEditable
	err = httputil.BindData(c, &update)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BalanceResponse{
			Error: &e,
		})
		return
	}

	var columns []string
	if bodyFields["current"] {
		balance.Current = update.Current
		columns = append(columns, "current")
	}
	if bodyFields["income"] {
		balance.Income = update.Income
		columns = append(columns, "income")
	}
	if bodyFields["expenses"] {
		balance.Expenses = update.Expenses
		columns = append(columns, "expenses")
	}

	if len(columns) > 0 {
		err = models.DB.Model(&balance).Select(columns).Updates(balance).Error
		if err != nil {
			e := err.Error()
			c.JSON(status(err), BalanceResponse{
				Error: &e,
			})
			return
		}
	}

	c.JSON(http.StatusOK, BalanceResponse{Data: &balance})
}
