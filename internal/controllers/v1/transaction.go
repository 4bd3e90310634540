package v1

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pennywise-app/backend/internal/httputil"
	"github.com/pennywise-app/backend/internal/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CategoryAll is the sentinel category filter that bypasses filtering.
const CategoryAll = "All"

// RegisterTransactionRoutes registers the routes for transactions with
// the RouterGroup that is passed.
func RegisterTransactionRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsTransactions)
		r.GET("", GetTransactions)
		r.POST("", CreateTransaction)
	}

	// Transaction with ID
	{
		r.OPTIONS("/:id", OptionsTransactionDetail)
		r.GET("/:id", GetTransaction)
		r.DELETE("/:id", DeleteTransaction)
	}
}

type TransactionEditable struct {
	Name      string          `json:"name" example:"Bravo Zen Spa" default:""`       // The payee or source of the transaction
	Category  string          `json:"category" example:"Personal Care" default:""`   // Category used for budget aggregation
	Date      time.Time       `json:"date" example:"2024-08-19T14:23:11Z"`           // Date of the transaction. Defaults to the current time.
	Amount    decimal.Decimal `json:"amount" example:"-25"`                          // Signed amount, negative = expense
	Avatar    string          `json:"avatar" example:"bravo-zen-spa.jpg" default:""` // Image shown next to the transaction
	Recurring bool            `json:"recurring" example:"false" default:"false"`     // Is this part of a recurring bill?
}

// model returns the database resource for the API representation of the editable fields
func (editable TransactionEditable) model() models.Transaction {
	return models.Transaction{
		Name:      editable.Name,
		Category:  editable.Category,
		Date:      editable.Date,
		Amount:    editable.Amount,
		Avatar:    editable.Avatar,
		Recurring: editable.Recurring,
	}
}

type TransactionResponse struct {
	Error *string             `json:"error" example:"there is no transaction matching your query"` // The error, if any occurred
	Data  *models.Transaction `json:"data"`                                                        // The transaction
}

type TransactionListResponse struct {
	Error      *string              `json:"error" example:"the specified sort key is invalid"` // The error, if any occurred
	Data       []models.Transaction `json:"data"`                                              // The page of transactions
	Pagination *Pagination          `json:"pagination"`                                        // Page metadata
}

type TransactionQueryFilter struct {
	Category string `form:"category" example:"Dining Out"` // Filter by category, "All" returns every category
	Search   string `form:"search" example:"spa"`          // Case-insensitive substring search over name and category
	Sort     string `form:"sort" example:"latest"`         // One of latest, oldest, a-z, z-a, highest, lowest
	Page     int    `form:"page" example:"1"`              // 1-indexed page, out of range values clamp
	PageSize int    `form:"pageSize" example:"10"`         // Number of transactions per page. Defaults to 10.
}

// orderClause maps an API sort key to SQL for the connected database.
// highest and lowest order by the absolute amount so that a large
// expense outranks a small income. Every clause ends with the insertion
// order as tiebreaker to keep the result stable across pages.
func orderClause(db *gorm.DB, sort string) (string, bool) {
	created := models.TimeSort(db, "transactions.created_at") + " ASC"

	switch sort {
	case "latest":
		return models.TimeSort(db, "transactions.date") + " DESC, " + created, true
	case "oldest":
		return models.TimeSort(db, "transactions.date") + " ASC, " + created, true
	case "a-z":
		return models.NameSort(db, "transactions.name") + " ASC, " + created, true
	case "z-a":
		return models.NameSort(db, "transactions.name") + " DESC, " + created, true
	case "highest":
		return "ABS(transactions.amount) DESC, " + created, true
	case "lowest":
		return "ABS(transactions.amount) ASC, " + created, true
	}

	return "", false
}

// query builds the gorm query for the filter, scoped to the user.
func (f TransactionQueryFilter) query(db *gorm.DB, userID any) *gorm.DB {
	q := db.Model(&models.Transaction{}).Where("transactions.user_id = ?", userID)

	if f.Category != "" && f.Category != CategoryAll {
		q = q.Where("transactions.category = ?", f.Category)
	}

	if f.Search != "" {
		term := "%" + strings.ToLower(f.Search) + "%"
		q = q.Where("LOWER(transactions.name) LIKE ? OR LOWER(transactions.category) LIKE ?", term, term)
	}

	return q
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Transactions
// @Success		204
// @Router			/v1/transactions [options]
func OptionsTransactions(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Transactions
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/transactions/{id} [options]
func OptionsTransactionDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.Transaction{}, httputil.OptionsGetDelete)
}

// @Summary		Get transactions
// @Description	Returns a page of the user's transactions. Requesting a page beyond the last one clamps to the last page instead of failing.
// @Tags			Transactions
// @Produce		json
// @Success		200	{object}	TransactionListResponse
// @Failure		400	{object}	TransactionListResponse
// @Failure		500	{object}	TransactionListResponse
// @Router			/v1/transactions [get]
// @Param			category	query	string	false	"Filter by category. The value All returns every category."
// @Param			search		query	string	false	"Case-insensitive substring search over name and category"
// @Param			sort		query	string	false	"Sort key: latest, oldest, a-z, z-a, highest or lowest. Defaults to latest."
// @Param			page		query	int		false	"1-indexed page. Out of range values clamp to the first or last page."
// @Param			pageSize	query	int		false	"Number of transactions per page. Defaults to 10."
func GetTransactions(c *gin.Context) {
	var filter TransactionQueryFilter
	if err := c.Bind(&filter); err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, TransactionListResponse{
			Error: &e,
		})
		return
	}

	sort := filter.Sort
	if sort == "" {
		sort = "latest"
	}

	order, ok := orderClause(models.DB, sort)
	if !ok {
		e := errSortKeyInvalid.Error()
		c.JSON(http.StatusBadRequest, TransactionListResponse{
			Error: &e,
		})
		return
	}

	pageSize := filter.PageSize
	if pageSize == 0 {
		pageSize = 10
	}
	if pageSize < 1 {
		e := errPageSizeInvalid.Error()
		c.JSON(http.StatusBadRequest, TransactionListResponse{
			Error: &e,
		})
		return
	}

	q := filter.query(models.DB, currentUser(c))

	var count int64
	err := q.Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionListResponse{
			Error: &e,
		})
		return
	}

	// At least one page exists even for an empty result, and the
	// requested page clamps into the valid range instead of failing
	totalPages := int((count + int64(pageSize) - 1) / int64(pageSize))
	if totalPages < 1 {
		totalPages = 1
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	transactions := make([]models.Transaction, 0)
	err = q.
		Order(order).
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&transactions).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionListResponse{
			Error: &e,
		})
		return
	}

	c.JSON(http.StatusOK, TransactionListResponse{
		Data: transactions,
		Pagination: &Pagination{
			CurrentPage: page,
			TotalPages:  totalPages,
			TotalItems:  count,
			HasNext:     page < totalPages,
			HasPrev:     page > 1,
		},
	})
}

// @Summary		Get transaction
// @Description	Returns a specific transaction
// @Tags			Transactions
// @Produce		json
// @Success		200	{object}	TransactionResponse
// @Failure		400	{object}	TransactionResponse
// @Failure		404	{object}	TransactionResponse
// @Failure		500	{object}	TransactionResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/transactions/{id} [get]
func GetTransaction(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{
			Error: &e,
		})
		return
	}

	var transaction models.Transaction
	err = models.DB.Where("user_id = ?", currentUser(c)).First(&transaction, "id = ?", uri.ID.UUID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{
			Error: &e,
		})
		return
	}

	c.JSON(http.StatusOK, TransactionResponse{Data: &transaction})
}

// @Summary		Create transaction
// @Description	Creates a new transaction. Transactions are immutable, there is no update endpoint.
// @Tags			Transactions
// @Produce		json
// @Success		201			{object}	TransactionResponse
// @Failure		400			{object}	TransactionResponse
// @Failure		500			{object}	TransactionResponse
// @Param			transaction	body		TransactionEditable	true	"Transaction"
// @Router			/v1/transactions [post]
func CreateTransaction(c *gin.Context) {
	var editable TransactionEditable
	err := httputil.BindData(c, &editable)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{
			Error: &e,
		})
		return
	}

	transaction := editable.model()
	transaction.UserID = currentUser(c)

	err = models.DB.Create(&transaction).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{
			Error: &e,
		})
		return
	}

	c.JSON(http.StatusCreated, TransactionResponse{Data: &transaction})
}

// @Summary		Delete transaction
// @Description	Deletes a transaction
// @Tags			Transactions
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/transactions/{id} [delete]
func DeleteTransaction(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var transaction models.Transaction
	err = models.DB.Where("user_id = ?", currentUser(c)).First(&transaction, "id = ?", uri.ID.UUID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&transaction).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.Status(http.StatusNoContent)
}
