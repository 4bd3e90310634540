package models_test

import (
	"time"

	"github.com/pennywise-app/backend/internal/models"
	"github.com/pennywise-app/backend/internal/types"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestBudgetCategoryRequired() {
	user := suite.createTestUser(models.User{})

	err := models.DB.Create(&models.Budget{UserID: user.ID, Maximum: decimal.NewFromInt(50)}).Error
	suite.Assert().ErrorIs(err, models.ErrCategoryMissing)
}

func (suite *TestSuiteStandard) TestBudgetMaximumPositive() {
	user := suite.createTestUser(models.User{})

	err := models.DB.Create(&models.Budget{UserID: user.ID, Category: "Bills", Maximum: decimal.Zero}).Error
	suite.Assert().ErrorIs(err, models.ErrMaximumNotPositive)
}

func (suite *TestSuiteStandard) TestBudgetCategoryUniquePerUser() {
	user := suite.createTestUser(models.User{})
	other := suite.createTestUser(models.User{})

	_ = suite.createTestBudget(models.Budget{UserID: user.ID, Category: "Bills", Maximum: decimal.NewFromInt(50)})

	err := models.DB.Create(&models.Budget{UserID: user.ID, Category: "Bills", Maximum: decimal.NewFromInt(75)}).Error
	suite.Assert().ErrorIs(err, models.ErrBudgetCategoryExists)

	err = models.DB.Create(&models.Budget{UserID: other.ID, Category: "Bills", Maximum: decimal.NewFromInt(75)}).Error
	suite.Assert().NoError(err)
}

func (suite *TestSuiteStandard) TestBudgetSpent() {
	user := suite.createTestUser(models.User{})
	other := suite.createTestUser(models.User{})
	budget := suite.createTestBudget(models.Budget{UserID: user.ID, Category: "Dining Out", Maximum: decimal.NewFromInt(100)})

	date := func(day int) time.Time {
		return time.Date(2024, 8, day, 12, 0, 0, 0, time.UTC)
	}

	// Counted: two expenses in August
	suite.createTestTransaction(models.Transaction{UserID: user.ID, Name: "Savory Bites Bistro", Category: "Dining Out", Date: date(19), Amount: decimal.NewFromFloat(-55.50)})
	suite.createTestTransaction(models.Transaction{UserID: user.ID, Name: "Nimbus Noodle Bar", Category: "Dining Out", Date: date(3), Amount: decimal.NewFromFloat(-12.25)})

	// Not counted: income in the category, other month, other category, other user
	suite.createTestTransaction(models.Transaction{UserID: user.ID, Name: "Refund", Category: "Dining Out", Date: date(20), Amount: decimal.NewFromInt(10)})
	suite.createTestTransaction(models.Transaction{UserID: user.ID, Name: "Savory Bites Bistro", Category: "Dining Out", Date: time.Date(2024, 7, 19, 12, 0, 0, 0, time.UTC), Amount: decimal.NewFromInt(-40)})
	suite.createTestTransaction(models.Transaction{UserID: user.ID, Name: "Quick Stop Market", Category: "Groceries", Date: date(5), Amount: decimal.NewFromInt(-30)})
	suite.createTestTransaction(models.Transaction{UserID: other.ID, Name: "Savory Bites Bistro", Category: "Dining Out", Date: date(19), Amount: decimal.NewFromInt(-99)})

	spent, err := budget.Spent(models.DB, types.NewMonth(2024, 8))
	suite.Require().NoError(err)

	suite.Assert().True(spent.Equal(decimal.NewFromFloat(67.75)), "Spent is %s, should be 67.75", spent)

	// Recomputing with unchanged input yields the same value
	again, err := budget.Spent(models.DB, types.NewMonth(2024, 8))
	suite.Require().NoError(err)
	suite.Assert().True(spent.Equal(again))
}

func (suite *TestSuiteStandard) TestBudgetSpentEmpty() {
	user := suite.createTestUser(models.User{})
	budget := suite.createTestBudget(models.Budget{UserID: user.ID, Category: "Entertainment", Maximum: decimal.NewFromInt(50)})

	spent, err := budget.Spent(models.DB, types.NewMonth(2024, 8))
	suite.Require().NoError(err)

	suite.Assert().True(spent.IsZero(), "Spent is %s, should be zero", spent)
}

func (suite *TestSuiteStandard) TestBudgetLatestTransactions() {
	user := suite.createTestUser(models.User{})
	budget := suite.createTestBudget(models.Budget{UserID: user.ID, Category: "Groceries", Maximum: decimal.NewFromInt(200)})

	date := func(day int) time.Time {
		return time.Date(2024, 8, day, 12, 0, 0, 0, time.UTC)
	}

	suite.createTestTransaction(models.Transaction{UserID: user.ID, Name: "First", Category: "Groceries", Date: date(1), Amount: decimal.NewFromInt(-10)})
	suite.createTestTransaction(models.Transaction{UserID: user.ID, Name: "Second", Category: "Groceries", Date: date(10), Amount: decimal.NewFromInt(-20)})
	suite.createTestTransaction(models.Transaction{UserID: user.ID, Name: "Third", Category: "Groceries", Date: date(20), Amount: decimal.NewFromInt(-30)})
	suite.createTestTransaction(models.Transaction{UserID: user.ID, Name: "Fourth", Category: "Groceries", Date: date(25), Amount: decimal.NewFromInt(25)})

	transactions, err := budget.LatestTransactions(models.DB, 3)
	suite.Require().NoError(err)

	suite.Require().Len(transactions, 3)
	suite.Assert().Equal("Fourth", transactions[0].Name)
	suite.Assert().Equal("Third", transactions[1].Name)
	suite.Assert().Equal("Second", transactions[2].Name)
}
