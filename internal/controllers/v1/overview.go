package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pennywise-app/backend/internal/httputil"
	"github.com/pennywise-app/backend/internal/models"
	"github.com/pennywise-app/backend/internal/recurring"
	"github.com/pennywise-app/backend/internal/types"
	"github.com/shopspring/decimal"
)

// recentTransactionCount is the number of transactions shown in the
// recent activity feed.
const recentTransactionCount = 5

// RegisterOverviewRoutes registers the routes for the overview with
// the RouterGroup that is passed.
func RegisterOverviewRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsOverview)
	r.GET("", GetOverview)
}

// Overview is the whole-of-finances view: the balance, the money in
// pots, the budget utilization and the bill summary, all derived from
// the ledger on every request.
type Overview struct {
	Balance            models.Balance       `json:"balance"`                        // The balance of the user
	TotalSaved         decimal.Decimal      `json:"totalSaved" example:"850"`       // Sum of all pot totals
	BudgetMaximum      decimal.Decimal      `json:"budgetMaximum" example:"975"`    // Sum of all budget ceilings
	BudgetSpent        decimal.Decimal      `json:"budgetSpent" example:"487.50"`   // Money spent across all budget categories this month
	BudgetUtilization  int64                `json:"budgetUtilization" example:"50"` // Percentage of the combined ceilings spent, rounded
	RecentTransactions []models.Transaction `json:"recentTransactions"`             // The most recent transactions
	Bills              recurring.Summary    `json:"bills"`                          // Totals of the recurring bills per bucket
}

type OverviewResponse struct {
	Error *string   `json:"error" example:"there is no balance matching your query"` // The error, if any occurred
	Data  *Overview `json:"data"`                                                    // The overview
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Overview
// @Success		204
// @Router			/v1/overview [options]
func OptionsOverview(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Get overview
// @Description	Returns the whole-of-finances view for the requesting user
// @Tags			Overview
// @Produce		json
// @Success		200			{object}	OverviewResponse
// @Failure		400			{object}	OverviewResponse
// @Failure		500			{object}	OverviewResponse
// @Param			reference	query		string	false	"Reference date in YYYY-MM-DD format. Defaults to today."
// @Router			/v1/overview [get]
func GetOverview(c *gin.Context) {
	var query QueryReference
	if err := c.Bind(&query); err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, OverviewResponse{
			Error: &e,
		})
		return
	}

	userID := currentUser(c)
	reference := query.Date()
	month := types.MonthOf(reference)

	balance, err := models.UserBalance(models.DB, userID)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), OverviewResponse{
			Error: &e,
		})
		return
	}

	// Total saved across all pots
	var pots []models.Pot
	err = models.DB.Where("user_id = ?", userID).Find(&pots).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), OverviewResponse{
			Error: &e,
		})
		return
	}

	totalSaved := decimal.Zero
	for _, pot := range pots {
		totalSaved = totalSaved.Add(pot.Total)
	}

	// Budget utilization for the reference month
	var budgets []models.Budget
	err = models.DB.Where("user_id = ?", userID).Find(&budgets).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), OverviewResponse{
			Error: &e,
		})
		return
	}

	budgetMaximum := decimal.Zero
	budgetSpent := decimal.Zero
	for _, budget := range budgets {
		spent, err := budget.Spent(models.DB, month)
		if err != nil {
			e := err.Error()
			c.JSON(status(err), OverviewResponse{
				Error: &e,
			})
			return
		}

		budgetMaximum = budgetMaximum.Add(budget.Maximum)
		budgetSpent = budgetSpent.Add(spent)
	}

	// A user without budgets has zero utilization, not a division error
	var utilization int64
	if budgetMaximum.IsPositive() {
		utilization = budgetSpent.Div(budgetMaximum).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
	}

	// Recent activity feed
	recent := make([]models.Transaction, 0)
	err = models.DB.
		Where("user_id = ?", userID).
		Order(models.TimeSort(models.DB, "transactions.date") + " DESC, " + models.TimeSort(models.DB, "transactions.created_at") + " ASC").
		Limit(recentTransactionCount).
		Find(&recent).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), OverviewResponse{
			Error: &e,
		})
		return
	}

	// Bill summary
	var recurringTransactions []models.Transaction
	err = models.DB.
		Where(&models.Transaction{UserID: userID, Recurring: true}).
		Order(models.TimeSort(models.DB, "transactions.created_at") + " ASC").
		Find(&recurringTransactions).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), OverviewResponse{
			Error: &e,
		})
		return
	}

	bills := recurring.Classify(recurringTransactions, reference)

	c.JSON(http.StatusOK, OverviewResponse{
		Data: &Overview{
			Balance:            balance,
			TotalSaved:         totalSaved,
			BudgetMaximum:      budgetMaximum,
			BudgetSpent:        budgetSpent,
			BudgetUtilization:  utilization,
			RecentTransactions: recent,
			Bills:              recurring.Summarize(bills),
		},
	})
}
