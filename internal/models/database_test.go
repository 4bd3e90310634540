package models_test

import (
	"github.com/pennywise-app/backend/internal/models"
	"github.com/google/uuid"
)

func (suite *TestSuiteStandard) TestQueryErrorTranslated() {
	err := models.DB.First(&models.Pot{}, "id = ?", uuid.New()).Error

	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
	suite.Assert().Equal("there is no pot matching your query", err.Error())
}

func (suite *TestSuiteStandard) TestDatabaseClosedTranslated() {
	suite.CloseDB()

	err := models.DB.First(&models.Pot{}, "id = ?", uuid.New()).Error
	suite.Assert().ErrorIs(err, models.ErrGeneral)
}
