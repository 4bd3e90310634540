package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pennywise-app/backend/internal/httputil"
	"github.com/pennywise-app/backend/internal/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RegisterPotRoutes registers the routes for pots with
// the RouterGroup that is passed.
func RegisterPotRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsPots)
		r.GET("", GetPots)
		r.POST("", CreatePot)
	}

	// Pot with ID
	{
		r.OPTIONS("/:id", OptionsPotDetail)
		r.GET("/:id", GetPot)
		r.PATCH("/:id", UpdatePot)
		r.DELETE("/:id", DeletePot)
	}

	// Transfers between balance and pot
	{
		r.OPTIONS("/:id/add", OptionsPotTransfer)
		r.POST("/:id/add", AddToPot)
		r.OPTIONS("/:id/withdraw", OptionsPotTransfer)
		r.POST("/:id/withdraw", WithdrawFromPot)
	}
}

type PotEditable struct {
	Name   string          `json:"name" example:"New Laptop" default:""` // Name of the pot, unique per user
	Target decimal.Decimal `json:"target" example:"1500"`                // Savings target, must be positive
	Total  decimal.Decimal `json:"total" example:"320.50"`               // Money in the pot. Only written when explicitly set.
	Theme  string          `json:"theme" example:"#277C78" default:""`   // Display color
}

// model returns the database resource for the API representation of the editable fields
func (editable PotEditable) model() models.Pot {
	return models.Pot{
		Name:   editable.Name,
		Target: editable.Target,
		Total:  editable.Total,
		Theme:  editable.Theme,
	}
}

// Pot is the API representation of a pot. It extends the model with
// the saved percentage, which is never stored.
type Pot struct {
	models.Pot
	Percentage decimal.Decimal `json:"percentage" example:"21.37"` // Share of the target that has been saved
}

func newPot(model models.Pot) Pot {
	return Pot{
		Pot:        model,
		Percentage: model.Percentage(),
	}
}

type PotResponse struct {
	Error *string `json:"error" example:"there is no pot matching your query"` // The error, if any occurred
	Data  *Pot    `json:"data"`                                                // The pot
}

type PotListResponse struct {
	Error *string `json:"error" example:"there is no pot matching your query"` // The error, if any occurred
	Data  []Pot   `json:"data"`                                                // List of pots
}

// PotTransfer is the result of a money transfer between the balance
// and a pot.
type PotTransfer struct {
	Pot     Pot             `json:"pot"`                       // The pot after the transfer
	Amount  decimal.Decimal `json:"amount" example:"40"`       // The amount that was moved
	Balance models.Balance  `json:"balance"`                   // The balance after the transfer
}

type PotTransferResponse struct {
	Error *string      `json:"error" example:"the amount exceeds the current balance"` // The error, if any occurred
	Data  *PotTransfer `json:"data"`                                                   // The transfer result
}

type PotTransferEditable struct {
	Amount decimal.Decimal `json:"amount" example:"40"` // The amount to move, must be positive
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Pots
// @Success		204
// @Router			/v1/pots [options]
func OptionsPots(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Pots
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/pots/{id} [options]
func OptionsPotDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.Pot{}, httputil.OptionsGetPatchDelete)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Pots
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/pots/{id}/add [options]
func OptionsPotTransfer(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var pot models.Pot
	err = models.DB.Where("user_id = ?", currentUser(c)).First(&pot, "id = ?", uri.ID.UUID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsPost(c)
}

// @Summary		List pots
// @Description	Returns all pots of the requesting user
// @Tags			Pots
// @Produce		json
// @Success		200	{object}	PotListResponse
// @Failure		500	{object}	PotListResponse
// @Router			/v1/pots [get]
func GetPots(c *gin.Context) {
	var pots []models.Pot
	err := models.DB.Where("user_id = ?", currentUser(c)).Order(models.TimeSort(models.DB, "pots.created_at") + " ASC").Find(&pots).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PotListResponse{
			Error: &e,
		})
		return
	}

	data := make([]Pot, 0, len(pots))
	for _, pot := range pots {
		data = append(data, newPot(pot))
	}

	c.JSON(http.StatusOK, PotListResponse{Data: data})
}

// @Summary		Get pot
// @Description	Returns a specific pot
// @Tags			Pots
// @Produce		json
// @Success		200	{object}	PotResponse
// @Failure		400	{object}	PotResponse
// @Failure		404	{object}	PotResponse
// @Failure		500	{object}	PotResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/pots/{id} [get]
func GetPot(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PotResponse{
			Error: &e,
		})
		return
	}

	var pot models.Pot
	err = models.DB.Where("user_id = ?", currentUser(c)).First(&pot, "id = ?", uri.ID.UUID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PotResponse{
			Error: &e,
		})
		return
	}

	data := newPot(pot)
	c.JSON(http.StatusOK, PotResponse{Data: &data})
}

// @Summary		Create pot
// @Description	Creates a new pot
// @Tags			Pots
// @Produce		json
// @Success		201	{object}	PotResponse
// @Failure		400	{object}	PotResponse
// @Failure		500	{object}	PotResponse
// @Param			pot	body		PotEditable	true	"Pot"
// @Router			/v1/pots [post]
func CreatePot(c *gin.Context) {
	var editable PotEditable
	err := httputil.BindData(c, &editable)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PotResponse{
			Error: &e,
		})
		return
	}

	pot := editable.model()
	pot.UserID = currentUser(c)

	err = models.DB.Create(&pot).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PotResponse{
			Error: &e,
		})
		return
	}

	data := newPot(pot)
	c.JSON(http.StatusCreated, PotResponse{Data: &data})
}

// @Summary		Update pot
// @Description	Updates a pot. Only values to be updated need to be specified. The total is only written when it is present in the body, editing name, target or theme never resets the saved money.
// @Tags			Pots
// @Accept			json
// @Produce		json
// @Success		200	{object}	PotResponse
// @Failure		400	{object}	PotResponse
// @Failure		404	{object}	PotResponse
// @Failure		500	{object}	PotResponse
// @Param			id	path		URIID		true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			pot	body		PotEditable	true	"Pot"
// @Router			/v1/pots/{id} [patch]
func UpdatePot(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PotResponse{
			Error: &e,
		})
		return
	}

	var pot models.Pot
	err = models.DB.Where("user_id = ?", currentUser(c)).First(&pot, "id = ?", uri.ID.UUID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PotResponse{
			Error: &e,
		})
		return
	}

	bodyFields, err := httputil.BodyFields(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PotResponse{
			Error: &e,
		})
		return
	}

	var update PotEditable
	err = httputil.BindData(c, &update)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PotResponse{
			Error: &e,
		})
		return
	}

	var columns []string
	if bodyFields["name"] {
		pot.Name = update.Name
		columns = append(columns, "name")
	}
	if bodyFields["target"] {
		pot.Target = update.Target
		columns = append(columns, "target")
	}
	if bodyFields["theme"] {
		pot.Theme = update.Theme
		columns = append(columns, "theme")
	}

	// The total is sub-allocated money. It only changes when the caller
	// explicitly sets it, a PATCH of the target or theme must never
	// reset the accumulated savings.
	if bodyFields["total"] {
		pot.Total = update.Total
		columns = append(columns, "total")
	}

	if len(columns) > 0 {
		err = models.DB.Model(&pot).Select(columns).Updates(pot).Error
		if err != nil {
			e := err.Error()
			c.JSON(status(err), PotResponse{
				Error: &e,
			})
			return
		}
	}

	data := newPot(pot)
	c.JSON(http.StatusOK, PotResponse{Data: &data})
}

// PotDeletion is the result of deleting a pot: the money that was in
// the pot is refunded to the balance before the pot is removed.
type PotDeletion struct {
	Refunded decimal.Decimal `json:"refunded" example:"320.50"` // The pot total that was returned to the balance
	Balance  models.Balance  `json:"balance"`                   // The balance after the refund
}

type PotDeletionResponse struct {
	Error *string      `json:"error" example:"there is no pot matching your query"` // The error, if any occurred
	Data  *PotDeletion `json:"data"`                                                // The deletion result
}

// @Summary		Delete pot
// @Description	Deletes a pot. The money in the pot is refunded to the balance in the same transaction, the refund can never be lost.
// @Tags			Pots
// @Produce		json
// @Success		200	{object}	PotDeletionResponse
// @Failure		400	{object}	PotDeletionResponse
// @Failure		404	{object}	PotDeletionResponse
// @Failure		500	{object}	PotDeletionResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/pots/{id} [delete]
func DeletePot(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PotDeletionResponse{
			Error: &e,
		})
		return
	}

	refunded, balance, err := models.DeletePot(models.DB, currentUser(c), uri.ID.UUID)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PotDeletionResponse{
			Error: &e,
		})
		return
	}

	c.JSON(http.StatusOK, PotDeletionResponse{
		Data: &PotDeletion{
			Refunded: refunded,
			Balance:  balance,
		},
	})
}

// @Summary		Add to pot
// @Description	Moves money from the balance into the pot. The balance check and both writes happen in one transaction, concurrent transfers cannot drive the balance negative.
// @Tags			Pots
// @Produce		json
// @Success		200			{object}	PotTransferResponse
// @Failure		400			{object}	PotTransferResponse
// @Failure		404			{object}	PotTransferResponse
// @Failure		500			{object}	PotTransferResponse
// @Param			id			path		URIID				true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			transfer	body		PotTransferEditable	true	"Transfer"
// @Router			/v1/pots/{id}/add [post]
func AddToPot(c *gin.Context) {
	potTransfer(c, models.AddToPot)
}

// @Summary		Withdraw from pot
// @Description	Moves money from the pot back to the balance. Both writes happen in one transaction.
// @Tags			Pots
// @Produce		json
// @Success		200			{object}	PotTransferResponse
// @Failure		400			{object}	PotTransferResponse
// @Failure		404			{object}	PotTransferResponse
// @Failure		500			{object}	PotTransferResponse
// @Param			id			path		URIID				true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			transfer	body		PotTransferEditable	true	"Transfer"
// @Router			/v1/pots/{id}/withdraw [post]
func WithdrawFromPot(c *gin.Context) {
	potTransfer(c, models.WithdrawFromPot)
}

// potTransfer handles both transfer directions, the direction is
// decided by the transfer engine operation passed in.
func potTransfer(c *gin.Context, op func(db *gorm.DB, userID, potID uuid.UUID, amount decimal.Decimal) (models.Pot, models.Balance, error)) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PotTransferResponse{
			Error: &e,
		})
		return
	}

	var editable PotTransferEditable
	err = httputil.BindData(c, &editable)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PotTransferResponse{
			Error: &e,
		})
		return
	}

	pot, balance, err := op(models.DB, currentUser(c), uri.ID.UUID, editable.Amount)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PotTransferResponse{
			Error: &e,
		})
		return
	}

	c.JSON(http.StatusOK, PotTransferResponse{
		Data: &PotTransfer{
			Pot:     newPot(pot),
			Amount:  editable.Amount,
			Balance: balance,
		},
	})
}
