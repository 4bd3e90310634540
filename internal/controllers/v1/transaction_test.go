package v1_test

import (
	"fmt"
	"net/http"
	"time"

	v1 "github.com/pennywise-app/backend/internal/controllers/v1"
	"github.com/pennywise-app/backend/test"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestOptionsTransactionDetail() {
	user := suite.createTestUser("Maya")
	transaction := suite.createTestTransaction(user, v1.TransactionEditable{Name: "Quick Stop Market", Amount: decimal.NewFromInt(-5)})

	recorder := test.Request(suite.T(), http.MethodOptions, "/v1/transactions/"+transaction.ID.String(), nil, as(user))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)
	suite.Assert().Equal("GET, DELETE", recorder.Header().Get("allow"))
}

func (suite *TestSuiteStandard) TestCreateTransaction() {
	user := suite.createTestUser("Maya")

	transaction := suite.createTestTransaction(user, v1.TransactionEditable{
		Name:      "Bravo Zen Spa",
		Category:  "Personal Care",
		Date:      time.Date(2024, 8, 19, 14, 23, 11, 0, time.UTC),
		Amount:    decimal.NewFromInt(-25),
		Avatar:    "bravo-zen-spa.jpg",
		Recurring: false,
	})

	suite.Assert().Equal("Bravo Zen Spa", transaction.Name)
	suite.Assert().True(transaction.Amount.Equal(decimal.NewFromInt(-25)))
}

// Transactions are immutable, the API offers no PATCH route.
func (suite *TestSuiteStandard) TestTransactionsImmutable() {
	user := suite.createTestUser("Maya")
	transaction := suite.createTestTransaction(user, v1.TransactionEditable{Name: "Quick Stop Market", Amount: decimal.NewFromInt(-5)})

	recorder := test.Request(suite.T(), http.MethodPatch, "/v1/transactions/"+transaction.ID.String(), `{ "amount": "1000" }`, as(user))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusMethodNotAllowed)
}

func (suite *TestSuiteStandard) TestGetTransactionForeignUser() {
	user := suite.createTestUser("Maya")
	other := suite.createTestUser("Sam")
	transaction := suite.createTestTransaction(other, v1.TransactionEditable{Name: "Quick Stop Market", Amount: decimal.NewFromInt(-5)})

	recorder := test.Request(suite.T(), http.MethodGet, "/v1/transactions/"+transaction.ID.String(), nil, as(user))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestDeleteTransaction() {
	user := suite.createTestUser("Maya")
	transaction := suite.createTestTransaction(user, v1.TransactionEditable{Name: "Quick Stop Market", Amount: decimal.NewFromInt(-5)})

	recorder := test.Request(suite.T(), http.MethodDelete, "/v1/transactions/"+transaction.ID.String(), nil, as(user))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)

	recorder = test.Request(suite.T(), http.MethodGet, "/v1/transactions/"+transaction.ID.String(), nil, as(user))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestGetTransactionsPagination() {
	user := suite.createTestUser("Maya")

	for i := 0; i < 25; i++ {
		suite.createTestTransaction(user, v1.TransactionEditable{
			Name:   fmt.Sprintf("Transaction %02d", i),
			Date:   time.Date(2024, 8, 1, 12, 0, 0, 0, time.UTC).AddDate(0, 0, i),
			Amount: decimal.NewFromInt(int64(-i - 1)),
		})
	}

	recorder := test.Request(suite.T(), http.MethodGet, "/v1/transactions?page=2", nil, as(user))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.TransactionListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	suite.Assert().Len(response.Data, 10)
	suite.Assert().Equal(2, response.Pagination.CurrentPage)
	suite.Assert().Equal(3, response.Pagination.TotalPages)
	suite.Assert().Equal(int64(25), response.Pagination.TotalItems)
	suite.Assert().True(response.Pagination.HasNext)
	suite.Assert().True(response.Pagination.HasPrev)
}

// Requesting a page beyond the last one clamps to the last page.
func (suite *TestSuiteStandard) TestGetTransactionsPageClamps() {
	user := suite.createTestUser("Maya")

	for i := 0; i < 25; i++ {
		suite.createTestTransaction(user, v1.TransactionEditable{
			Name:   fmt.Sprintf("Transaction %02d", i),
			Amount: decimal.NewFromInt(-1),
		})
	}

	recorder := test.Request(suite.T(), http.MethodGet, "/v1/transactions?page=5", nil, as(user))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.TransactionListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	suite.Assert().Len(response.Data, 5)
	suite.Assert().Equal(3, response.Pagination.CurrentPage)
	suite.Assert().False(response.Pagination.HasNext)
	suite.Assert().True(response.Pagination.HasPrev)

	// Page 0 and negative pages clamp to the first page
	recorder = test.Request(suite.T(), http.MethodGet, "/v1/transactions?page=-1", nil, as(user))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)
	test.DecodeResponse(suite.T(), &recorder, &response)

	suite.Assert().Equal(1, response.Pagination.CurrentPage)
	suite.Assert().False(response.Pagination.HasPrev)
}

// An empty result still reports one page.
func (suite *TestSuiteStandard) TestGetTransactionsEmpty() {
	user := suite.createTestUser("Maya")

	recorder := test.Request(suite.T(), http.MethodGet, "/v1/transactions", nil, as(user))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.TransactionListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	suite.Assert().Len(response.Data, 0)
	suite.Assert().Equal(1, response.Pagination.CurrentPage)
	suite.Assert().Equal(1, response.Pagination.TotalPages)
	suite.Assert().Equal(int64(0), response.Pagination.TotalItems)
}

func (suite *TestSuiteStandard) TestGetTransactionsSort() {
	user := suite.createTestUser("Maya")

	suite.createTestTransaction(user, v1.TransactionEditable{Name: "Alpha", Date: time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC), Amount: decimal.NewFromInt(50)})
	suite.createTestTransaction(user, v1.TransactionEditable{Name: "Zulu", Date: time.Date(2024, 8, 15, 0, 0, 0, 0, time.UTC), Amount: decimal.NewFromInt(-100)})
	suite.createTestTransaction(user, v1.TransactionEditable{Name: "Mike", Date: time.Date(2024, 8, 10, 0, 0, 0, 0, time.UTC), Amount: decimal.NewFromInt(-75)})

	tests := []struct {
		sort  string
		first string
	}{
		{"latest", "Zulu"},
		{"oldest", "Alpha"},
		{"a-z", "Alpha"},
		{"z-a", "Zulu"},
		// highest and lowest sort by the absolute amount, a large
		// expense outranks a small income
		{"highest", "Zulu"},
		{"lowest", "Alpha"},
	}

	for _, tt := range tests {
		recorder := test.Request(suite.T(), http.MethodGet, "/v1/transactions?sort="+tt.sort, nil, as(user))
		test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

		var response v1.TransactionListResponse
		test.DecodeResponse(suite.T(), &recorder, &response)

		suite.Require().NotEmpty(response.Data, "sort %s returned no data", tt.sort)
		suite.Assert().Equal(tt.first, response.Data[0].Name, "sort %s returns wrong order", tt.sort)
	}
}

func (suite *TestSuiteStandard) TestGetTransactionsSortInvalid() {
	user := suite.createTestUser("Maya")

	recorder := test.Request(suite.T(), http.MethodGet, "/v1/transactions?sort=sideways", nil, as(user))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
	suite.Assert().Equal("the specified sort key is invalid", decodeError(suite, &recorder))
}

func (suite *TestSuiteStandard) TestGetTransactionsPageSizeInvalid() {
	user := suite.createTestUser("Maya")

	recorder := test.Request(suite.T(), http.MethodGet, "/v1/transactions?pageSize=-1", nil, as(user))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestGetTransactionsFilter() {
	user := suite.createTestUser("Maya")
	other := suite.createTestUser("Sam")

	suite.createTestTransaction(user, v1.TransactionEditable{Name: "Bravo Zen Spa", Category: "Personal Care", Amount: decimal.NewFromInt(-25)})
	suite.createTestTransaction(user, v1.TransactionEditable{Name: "Savory Bites Bistro", Category: "Dining Out", Amount: decimal.NewFromInt(-55)})
	suite.createTestTransaction(other, v1.TransactionEditable{Name: "Bravo Zen Spa", Category: "Personal Care", Amount: decimal.NewFromInt(-99)})

	tests := []struct {
		name  string
		query string
		count int
	}{
		{"no filter", "", 2},
		{"category", "?category=Dining+Out", 1},
		{"category All", "?category=All", 2},
		{"unknown category", "?category=Lifestyle", 0},
		{"search name", "?search=spa", 1},
		{"search category", "?search=dining", 1},
		{"search no match", "?search=zzz", 0},
		{"search and category", "?search=spa&category=Dining+Out", 0},
	}

	for _, tt := range tests {
		recorder := test.Request(suite.T(), http.MethodGet, "/v1/transactions"+tt.query, nil, as(user))
		test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

		var response v1.TransactionListResponse
		test.DecodeResponse(suite.T(), &recorder, &response)

		suite.Assert().Len(response.Data, tt.count, "%s: wrong number of transactions", tt.name)
	}
}
