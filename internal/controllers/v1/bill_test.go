package v1_test

import (
	"net/http"
	"time"

	v1 "github.com/pennywise-app/backend/internal/controllers/v1"
	"github.com/pennywise-app/backend/test"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestGetBills() {
	user := suite.createTestUser("Maya")

	date := func(year int, month time.Month, day int) time.Time {
		return time.Date(year, month, day, 9, 0, 0, 0, time.UTC)
	}

	// Paid this month, next due 2024-09-01
	suite.createTestTransaction(user, v1.TransactionEditable{Name: "Elevate Education", Category: "Bills", Date: date(2024, 7, 1), Amount: decimal.NewFromInt(-250), Recurring: true})
	suite.createTestTransaction(user, v1.TransactionEditable{Name: "Elevate Education", Category: "Bills", Date: date(2024, 8, 1), Amount: decimal.NewFromInt(-250), Recurring: true})

	// Unpaid, last paid 2024-07-29, due 2024-08-29, inside the due soon
	// window of the reference date 2024-08-25
	suite.createTestTransaction(user, v1.TransactionEditable{Name: "Spark Electric Solutions", Category: "Bills", Date: date(2024, 7, 29), Amount: decimal.NewFromFloat(-100.00), Recurring: true})

	// Unpaid, due 2024-08-15, already overdue at the reference date
	suite.createTestTransaction(user, v1.TransactionEditable{Name: "Rapid Rescue Med", Category: "Bills", Date: date(2024, 7, 15), Amount: decimal.NewFromFloat(-35.50), Recurring: true})

	// Not recurring, must not appear as a bill
	suite.createTestTransaction(user, v1.TransactionEditable{Name: "Quick Stop Market", Category: "Groceries", Date: date(2024, 8, 10), Amount: decimal.NewFromInt(-30)})

	recorder := test.Request(suite.T(), http.MethodGet, "/v1/bills?reference=2024-08-25", nil, as(user))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.BillListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	// Default sort is latest, most recent payment first
	suite.Require().Len(response.Data, 3)
	suite.Assert().Equal("Elevate Education", response.Data[0].Name)
	suite.Assert().Equal("Spark Electric Solutions", response.Data[1].Name)
	suite.Assert().Equal("Rapid Rescue Med", response.Data[2].Name)

	suite.Assert().True(response.Data[0].IsPaid)
	suite.Assert().False(response.Data[0].IsDueSoon)

	suite.Assert().False(response.Data[1].IsPaid)
	suite.Assert().True(response.Data[1].IsDueSoon)
	suite.Assert().True(response.Data[1].NextDueDate.Equal(time.Date(2024, 8, 29, 0, 0, 0, 0, time.UTC)), "Next due date is %s", response.Data[1].NextDueDate)

	suite.Assert().False(response.Data[2].IsPaid)
	suite.Assert().False(response.Data[2].IsDueSoon)
	suite.Assert().True(response.Data[2].NextDueDate.Equal(time.Date(2024, 8, 15, 0, 0, 0, 0, time.UTC)), "Next due date is %s", response.Data[2].NextDueDate)

	suite.Require().NotNil(response.Summary)
	suite.Assert().True(response.Summary.Paid.Equal(decimal.NewFromInt(250)), "Paid is %s", response.Summary.Paid)
	suite.Assert().True(response.Summary.Upcoming.Equal(decimal.NewFromFloat(135.50)), "Upcoming is %s", response.Summary.Upcoming)
	suite.Assert().True(response.Summary.DueSoon.Equal(decimal.NewFromInt(100)), "DueSoon is %s", response.Summary.DueSoon)
}

// The summary covers every bill, search only narrows the list.
func (suite *TestSuiteStandard) TestGetBillsSearch() {
	user := suite.createTestUser("Maya")

	suite.createTestTransaction(user, v1.TransactionEditable{Name: "Spark Electric Solutions", Date: time.Date(2024, 8, 2, 0, 0, 0, 0, time.UTC), Amount: decimal.NewFromInt(-100), Recurring: true})
	suite.createTestTransaction(user, v1.TransactionEditable{Name: "Elevate Education", Date: time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC), Amount: decimal.NewFromInt(-250), Recurring: true})

	recorder := test.Request(suite.T(), http.MethodGet, "/v1/bills?reference=2024-08-25&search=spark", nil, as(user))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.BillListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	suite.Require().Len(response.Data, 1)
	suite.Assert().Equal("Spark Electric Solutions", response.Data[0].Name)
	suite.Assert().True(response.Summary.Paid.Equal(decimal.NewFromInt(350)), "Summary must cover all bills, Paid is %s", response.Summary.Paid)
}

func (suite *TestSuiteStandard) TestGetBillsSort() {
	user := suite.createTestUser("Maya")

	suite.createTestTransaction(user, v1.TransactionEditable{Name: "Spark Electric Solutions", Date: time.Date(2024, 8, 2, 0, 0, 0, 0, time.UTC), Amount: decimal.NewFromInt(-100), Recurring: true})
	suite.createTestTransaction(user, v1.TransactionEditable{Name: "Elevate Education", Date: time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC), Amount: decimal.NewFromInt(-250), Recurring: true})

	tests := []struct {
		sort  string
		first string
	}{
		{"latest", "Spark Electric Solutions"},
		{"oldest", "Elevate Education"},
		{"a-z", "Elevate Education"},
		{"z-a", "Spark Electric Solutions"},
		{"highest", "Elevate Education"},
		{"lowest", "Spark Electric Solutions"},
	}

	for _, tt := range tests {
		recorder := test.Request(suite.T(), http.MethodGet, "/v1/bills?reference=2024-08-25&sort="+tt.sort, nil, as(user))
		test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

		var response v1.BillListResponse
		test.DecodeResponse(suite.T(), &recorder, &response)

		suite.Require().NotEmpty(response.Data)
		suite.Assert().Equal(tt.first, response.Data[0].Name, "sort %s returns wrong order", tt.sort)
	}
}

func (suite *TestSuiteStandard) TestGetBillsSortInvalid() {
	user := suite.createTestUser("Maya")

	recorder := test.Request(suite.T(), http.MethodGet, "/v1/bills?sort=sideways", nil, as(user))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
	suite.Assert().Equal("the specified sort key is invalid", decodeError(suite, &recorder))
}

func (suite *TestSuiteStandard) TestGetBillsReferenceInvalid() {
	user := suite.createTestUser("Maya")

	recorder := test.Request(suite.T(), http.MethodGet, "/v1/bills?reference=yesterday", nil, as(user))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestGetBillsEmpty() {
	user := suite.createTestUser("Maya")

	recorder := test.Request(suite.T(), http.MethodGet, "/v1/bills", nil, as(user))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.BillListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	suite.Assert().Empty(response.Data)
	suite.Assert().True(response.Summary.Paid.IsZero())
	suite.Assert().True(response.Summary.Upcoming.IsZero())
	suite.Assert().True(response.Summary.DueSoon.IsZero())
}
