package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pennywise-app/backend/internal/httputil"
	"github.com/pennywise-app/backend/internal/models"
	"github.com/pennywise-app/backend/internal/recurring"
)

// RegisterBillRoutes registers the routes for recurring bills with
// the RouterGroup that is passed.
func RegisterBillRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsBills)
	r.GET("", GetBills)
}

type BillListResponse struct {
	Error   *string            `json:"error" example:"the specified sort key is invalid"` // The error, if any occurred
	Data    []recurring.Bill   `json:"data"`                                              // One bill per distinct payee
	Summary *recurring.Summary `json:"summary"`                                           // Totals per classification bucket
}

type BillQueryFilter struct {
	QueryReference
	Search string `form:"search" example:"spark"` // Case-insensitive substring search over the payee name
	Sort   string `form:"sort" example:"latest"`  // One of latest, oldest, a-z, z-a, highest, lowest
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Bills
// @Success		204
// @Router			/v1/bills [options]
func OptionsBills(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		List recurring bills
// @Description	Derives the recurring bills of the requesting user from the transactions flagged as recurring, one bill per distinct payee. Bills are classified as paid, upcoming or due soon relative to the reference date. The full list is returned, bills are not paginated.
// @Tags			Bills
// @Produce		json
// @Success		200			{object}	BillListResponse
// @Failure		400			{object}	BillListResponse
// @Failure		500			{object}	BillListResponse
// @Param			reference	query		string	false	"Reference date in YYYY-MM-DD format. Defaults to today."
// @Param			search		query		string	false	"Case-insensitive substring search over the payee name"
// @Param			sort		query		string	false	"Sort key: latest, oldest, a-z, z-a, highest or lowest. Defaults to latest."
// @Router			/v1/bills [get]
func GetBills(c *gin.Context) {
	var filter BillQueryFilter
	if err := c.Bind(&filter); err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, BillListResponse{
			Error: &e,
		})
		return
	}

	sort := recurring.SortKey(filter.Sort)
	if sort == "" {
		sort = recurring.SortLatest
	}

	if !sort.Valid() {
		e := errSortKeyInvalid.Error()
		c.JSON(http.StatusBadRequest, BillListResponse{
			Error: &e,
		})
		return
	}

	var transactions []models.Transaction
	err := models.DB.
		Where(&models.Transaction{UserID: currentUser(c), Recurring: true}).
		Order(models.TimeSort(models.DB, "transactions.created_at") + " ASC").
		Find(&transactions).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BillListResponse{
			Error: &e,
		})
		return
	}

	bills := recurring.Classify(transactions, filter.Date())

	// The summary covers all bills of the user, search only narrows
	// the returned list
	summary := recurring.Summarize(bills)

	bills = recurring.Search(bills, filter.Search)
	recurring.Sort(bills, sort)

	c.JSON(http.StatusOK, BillListResponse{
		Data:    bills,
		Summary: &summary,
	})
}
