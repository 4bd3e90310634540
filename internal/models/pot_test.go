package models_test

import (
	"github.com/pennywise-app/backend/internal/models"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestPotTrimWhitespace() {
	user := suite.createTestUser(models.User{})
	pot := suite.createTestPot(models.Pot{
		UserID: user.ID,
		Name:   " New Laptop ",
		Target: decimal.NewFromInt(1000),
		Theme:  " #277C78 ",
	})

	suite.Assert().Equal("New Laptop", pot.Name)
	suite.Assert().Equal("#277C78", pot.Theme)
}

func (suite *TestSuiteStandard) TestPotNameRequired() {
	user := suite.createTestUser(models.User{})

	err := models.DB.Create(&models.Pot{UserID: user.ID, Target: decimal.NewFromInt(100)}).Error
	suite.Assert().ErrorIs(err, models.ErrNameMissing)
}

func (suite *TestSuiteStandard) TestPotTargetPositive() {
	user := suite.createTestUser(models.User{})

	for _, target := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-10)} {
		err := models.DB.Create(&models.Pot{UserID: user.ID, Name: "Vacation", Target: target}).Error
		suite.Assert().ErrorIs(err, models.ErrTargetNotPositive, "Target %s must be rejected", target)
	}
}

func (suite *TestSuiteStandard) TestPotNameUniquePerUser() {
	user := suite.createTestUser(models.User{})
	other := suite.createTestUser(models.User{})

	_ = suite.createTestPot(models.Pot{UserID: user.ID, Name: "Vacation", Target: decimal.NewFromInt(100)})

	err := models.DB.Create(&models.Pot{UserID: user.ID, Name: "Vacation", Target: decimal.NewFromInt(50)}).Error
	suite.Assert().ErrorIs(err, models.ErrPotNameExists)

	// The same name is fine for another user
	err = models.DB.Create(&models.Pot{UserID: other.ID, Name: "Vacation", Target: decimal.NewFromInt(50)}).Error
	suite.Assert().NoError(err)
}

func (suite *TestSuiteStandard) TestPotPercentage() {
	tests := []struct {
		name       string
		target     decimal.Decimal
		total      decimal.Decimal
		percentage decimal.Decimal
	}{
		{"empty", decimal.NewFromInt(1500), decimal.Zero, decimal.Zero},
		{"partial", decimal.NewFromInt(1500), decimal.NewFromFloat(159.95), decimal.NewFromFloat(10.66)},
		{"overfunded", decimal.NewFromInt(100), decimal.NewFromInt(150), decimal.NewFromInt(150)},
		{"zero target", decimal.Zero, decimal.NewFromInt(10), decimal.Zero},
	}

	for _, tt := range tests {
		pot := models.Pot{Target: tt.target, Total: tt.total}

		suite.Assert().True(pot.Percentage().Equal(tt.percentage), "%s: percentage is %s, should be %s", tt.name, pot.Percentage(), tt.percentage)
	}
}
