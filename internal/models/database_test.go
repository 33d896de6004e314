package models_test

import (
	"time"

	"github.com/google/uuid"
	"github.com/transport-ledger/backend/internal/models"
)

func (suite *TestSuiteStandard) TestMonthUUIDSet() {
	month := suite.createTestMonth(models.TransportMonth{MonthLabel: "2025년 8월"})

	suite.Assert().NotEqual(uuid.Nil, month.ID, "ID is not set")
	suite.Assert().False(month.CreatedAt.IsZero())
	suite.Assert().False(month.UpdatedAt.IsZero())
}

func (suite *TestSuiteStandard) TestTimestampsUTC() {
	created := suite.createTestMonth(models.TransportMonth{MonthLabel: "2025년 8월"})

	var month models.TransportMonth
	err := models.DB.First(&month, "id = ?", created.ID).Error
	suite.Require().Nil(err)

	suite.Assert().Equal(time.UTC, month.CreatedAt.Location())
	suite.Assert().Equal(time.UTC, month.UpdatedAt.Location())
}

func (suite *TestSuiteStandard) TestMonthLabelUnique() {
	_ = suite.createTestMonth(models.TransportMonth{MonthLabel: "2025년 8월"})

	err := models.DB.Create(&models.TransportMonth{MonthLabel: "2025년 8월"}).Error
	suite.Assert().ErrorIs(err, models.ErrMonthLabelNotUnique)
}

func (suite *TestSuiteStandard) TestRowRequiresMonth() {
	err := models.DB.Create(&models.TransportRow{MonthID: uuid.New(), Date: "1"}).Error
	suite.Assert().ErrorIs(err, models.ErrMonthReference)
}

func (suite *TestSuiteStandard) TestRowRoundTrip() {
	month := suite.createTestMonth(models.TransportMonth{MonthLabel: "2025년 8월"})
	row := suite.createTestRow(models.TransportRow{
		MonthID:     month.ID,
		Date:        "12",
		CarNumber:   "86바1538",
		Weight:      "23.46",
		UnitPrice:   "12000",
		SupplyPrice: "281520",
		Tax:         "28152",
		TotalPrice:  "309672",
		RowOrder:    3,
	})

	var fetched models.TransportRow
	err := models.DB.First(&fetched, "id = ?", row.ID).Error
	suite.Require().Nil(err)

	suite.Assert().Equal("86바1538", fetched.CarNumber)
	suite.Assert().Equal("281520", fetched.SupplyPrice)
	suite.Assert().Equal(3, fetched.RowOrder)
}

func (suite *TestSuiteStandard) TestQueryErrorNamesResource() {
	var month models.TransportMonth
	err := models.DB.First(&month, "month_label = ?", "1999년 1월").Error

	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
	suite.Assert().Contains(err.Error(), "transport month")
}

func (suite *TestSuiteStandard) TestGeneralErrorOnClosedDB() {
	suite.CloseDB()

	err := models.DB.Create(&models.TransportMonth{MonthLabel: "2025년 8월"}).Error
	suite.Assert().ErrorIs(err, models.ErrGeneral)
}
