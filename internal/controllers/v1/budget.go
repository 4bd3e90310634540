package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pennywise-app/backend/internal/httputil"
	"github.com/pennywise-app/backend/internal/models"
	"github.com/pennywise-app/backend/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// latestTransactionCount is the number of recent transactions returned
// with each budget.
const latestTransactionCount = 3

// RegisterBudgetRoutes registers the routes for budgets with
// the RouterGroup that is passed.
func RegisterBudgetRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsBudgets)
		r.GET("", GetBudgets)
		r.POST("", CreateBudget)
	}

	// Budget with ID
	{
		r.OPTIONS("/:id", OptionsBudgetDetail)
		r.GET("/:id", GetBudget)
		r.PATCH("/:id", UpdateBudget)
		r.DELETE("/:id", DeleteBudget)
	}
}

type BudgetEditable struct {
	Category string          `json:"category" example:"Entertainment" default:""` // The category the ceiling applies to
	Maximum  decimal.Decimal `json:"maximum" example:"50"`                        // Monthly spending ceiling, must be positive
	Theme    string          `json:"theme" example:"#82C9D7" default:""`          // Display color
}

// model returns the database resource for the API representation of the editable fields
func (editable BudgetEditable) model() models.Budget {
	return models.Budget{
		Category: editable.Category,
		Maximum:  editable.Maximum,
		Theme:    editable.Theme,
	}
}

// Budget is the API representation of a budget. The spend and the
// latest transactions are derived from the ledger on every request,
// they are never stored.
type Budget struct {
	models.Budget
	Spent              decimal.Decimal      `json:"spent" example:"25"` // Money spent in the category during the reporting month
	LatestTransactions []models.Transaction `json:"latestTransactions"` // The most recent transactions in the category
}

// newBudget merges a budget with its spend for the month.
func newBudget(db *gorm.DB, model models.Budget, month types.Month) (Budget, error) {
	spent, err := model.Spent(db, month)
	if err != nil {
		return Budget{}, err
	}

	latest, err := model.LatestTransactions(db, latestTransactionCount)
	if err != nil {
		return Budget{}, err
	}

	return Budget{
		Budget:             model,
		Spent:              spent,
		LatestTransactions: latest,
	}, nil
}

type BudgetResponse struct {
	Error *string `json:"error" example:"a budget for this category already exists"` // The error, if any occurred
	Data  *Budget `json:"data"`                                                      // The budget
}

type BudgetListResponse struct {
	Error *string  `json:"error" example:"there is no budget matching your query"` // The error, if any occurred
	Data  []Budget `json:"data"`                                                   // List of budgets
}

// reportingMonth returns the month from the query string, defaulting to
// the current calendar month.
func reportingMonth(c *gin.Context) (types.Month, error) {
	s := c.Query("month")
	if s == "" {
		return types.MonthOf(timeNow()), nil
	}

	return types.ParseMonth(s)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Budgets
// @Success		204
// @Router			/v1/budgets [options]
func OptionsBudgets(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Budgets
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/budgets/{id} [options]
func OptionsBudgetDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.Budget{}, httputil.OptionsGetPatchDelete)
}

// @Summary		List budgets
// @Description	Returns all budgets of the requesting user with their spend for the reporting month. Categories without transactions report a spend of zero.
// @Tags			Budgets
// @Produce		json
// @Success		200		{object}	BudgetListResponse
// @Failure		400		{object}	BudgetListResponse
// @Failure		500		{object}	BudgetListResponse
// @Param			month	query		string	false	"Reporting month in YYYY-MM format. Defaults to the current month."
// @Router			/v1/budgets [get]
func GetBudgets(c *gin.Context) {
	month, err := reportingMonth(c)
	if err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, BudgetListResponse{
			Error: &e,
		})
		return
	}

	var budgets []models.Budget
	err = models.DB.Where("user_id = ?", currentUser(c)).Order(models.TimeSort(models.DB, "budgets.created_at") + " ASC").Find(&budgets).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetListResponse{
			Error: &e,
		})
		return
	}

	data := make([]Budget, 0, len(budgets))
	for _, budget := range budgets {
		b, err := newBudget(models.DB, budget, month)
		if err != nil {
			e := err.Error()
			c.JSON(status(err), BudgetListResponse{
				Error: &e,
			})
			return
		}

		data = append(data, b)
	}

	c.JSON(http.StatusOK, BudgetListResponse{Data: data})
}

// @Summary		Get budget
// @Description	Returns a specific budget with its spend for the reporting month
// @Tags			Budgets
// @Produce		json
// @Success		200		{object}	BudgetResponse
// @Failure		400		{object}	BudgetResponse
// @Failure		404		{object}	BudgetResponse
// @Failure		500		{object}	BudgetResponse
// @Param			id		path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			month	query		string	false	"Reporting month in YYYY-MM format. Defaults to the current month."
// @Router			/v1/budgets/{id} [get]
func GetBudget(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetResponse{
			Error: &e,
		})
		return
	}

	month, err := reportingMonth(c)
	if err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, BudgetResponse{
			Error: &e,
		})
		return
	}

	var budget models.Budget
	err = models.DB.Where("user_id = ?", currentUser(c)).First(&budget, "id = ?", uri.ID.UUID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetResponse{
			Error: &e,
		})
		return
	}

	data, err := newBudget(models.DB, budget, month)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetResponse{
			Error: &e,
		})
		return
	}

	c.JSON(http.StatusOK, BudgetResponse{Data: &data})
}

// @Summary		Create budget
// @Description	Creates a new budget. At most one budget can exist per category, a second one for the same category is rejected.
// @Tags			Budgets
// @Produce		json
// @Success		201		{object}	BudgetResponse
// @Failure		400		{object}	BudgetResponse
// @Failure		500		{object}	BudgetResponse
// @Param			budget	body		BudgetEditable	true	"Budget"
// @Router			/v1/budgets [post]
func CreateBudget(c *gin.Context) {
	var editable BudgetEditable
	err := httputil.BindData(c, &editable)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetResponse{
			Error: &e,
		})
		return
	}

	budget := editable.model()
	budget.UserID = currentUser(c)

	err = models.DB.Create(&budget).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetResponse{
			Error: &e,
		})
		return
	}

	data, err := newBudget(models.DB, budget, types.MonthOf(timeNow()))
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetResponse{
			Error: &e,
		})
		return
	}

	c.JSON(http.StatusCreated, BudgetResponse{Data: &data})
}

// @Summary		Update budget
// @Description	Updates a budget. Only values to be updated need to be specified.
// @Tags			Budgets
// @Accept			json
// @Produce		json
// @Success		200		{object}	BudgetResponse
// @Failure		400		{object}	BudgetResponse
// @Failure		404		{object}	BudgetResponse
// @Failure		500		{object}	BudgetResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			budget	body		BudgetEditable	true	"Budget"
// @Router			/v1/budgets/{id} [patch]
func UpdateBudget(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetResponse{
			Error: &e,
		})
		return
	}

	var budget models.Budget
	err = models.DB.Where("user_id = ?", currentUser(c)).First(&budget, "id = ?", uri.ID.UUID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetResponse{
			Error: &e,
		})
		return
	}

	bodyFields, err := httputil.BodyFields(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetResponse{
			Error: &e,
		})
		return
	}

	var update BudgetEditable
	err = httputil.BindData(c, &update)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetResponse{
			Error: &e,
		})
		return
	}

	var columns []string
	if bodyFields["category"] {
		budget.Category = update.Category
		columns = append(columns, "category")
	}
	if bodyFields["maximum"] {
		budget.Maximum = update.Maximum
		columns = append(columns, "maximum")
	}
	if bodyFields["theme"] {
		budget.Theme = update.Theme
		columns = append(columns, "theme")
	}

	if len(columns) > 0 {
		err = models.DB.Model(&budget).Select(columns).Updates(budget).Error
		if err != nil {
			e := err.Error()
			c.JSON(status(err), BudgetResponse{
				Error: &e,
			})
			return
		}
	}

	data, err := newBudget(models.DB, budget, types.MonthOf(timeNow()))
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetResponse{
			Error: &e,
		})
		return
	}

	c.JSON(http.StatusOK, BudgetResponse{Data: &data})
}

// @Summary		Delete budget
// @Description	Deletes a budget. The transactions of the category are not affected.
// @Tags			Budgets
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/budgets/{id} [delete]
func DeleteBudget(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var budget models.Budget
	err = models.DB.Where("user_id = ?", currentUser(c)).First(&budget, "id = ?", uri.ID.UUID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&budget).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.Status(http.StatusNoContent)
}
