package models_test

import (
	"github.com/pennywise-app/backend/internal/models"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestUserTrimWhitespace() {
	user := suite.createTestUser(models.User{Name: "  Maya "})

	suite.Assert().Equal("Maya", user.Name)
}

func (suite *TestSuiteStandard) TestUserNameRequired() {
	err := models.DB.Create(&models.User{Name: "   "}).Error

	suite.Assert().ErrorIs(err, models.ErrNameMissing)
}

// A user always has a balance row, created in the same transaction as
// the user itself.
func (suite *TestSuiteStandard) TestUserCreatesBalance() {
	user := suite.createTestUser(models.User{})

	balance := suite.userBalance(user)
	suite.Assert().True(balance.Current.Equal(decimal.Zero), "Initial balance should be zero, is %s", balance.Current)
	suite.Assert().True(balance.Income.Equal(decimal.Zero))
	suite.Assert().True(balance.Expenses.Equal(decimal.Zero))
}
