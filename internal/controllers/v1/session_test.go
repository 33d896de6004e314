package v1_test

import (
	"net/http"

	v1 "github.com/transport-ledger/backend/internal/controllers/v1"
	"github.com/transport-ledger/backend/internal/models"
	"github.com/transport-ledger/backend/internal/rowstore"
	"github.com/transport-ledger/backend/internal/session"
	"github.com/transport-ledger/backend/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestSessionGet() {
	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/session", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.SessionResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Equal(suite.T(), session.DefaultCompany, response.Data.Company.Company)
	assert.Equal(suite.T(), session.DefaultContact, response.Data.Company.Contact)
	assert.Equal(suite.T(), session.DefaultRegNo, response.Data.Company.RegNo)
}

func (suite *TestSuiteStandard) TestSessionSelect() {
	suite.createTestMonth()
	suite.createTestMonth()

	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/session/select", v1.MonthSelection{Index: 0})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.SessionResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Equal(suite.T(), 0, response.Data.Directory.Selected)
}

func (suite *TestSuiteStandard) TestSessionSelectOutOfRange() {
	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/session/select", v1.MonthSelection{Index: 3})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestSessionCheck() {
	suite.createTestMonth()

	// Creating a month checks it, the toggle unchecks again.
	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/session/check", v1.MonthSelection{Index: 0})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.SessionResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Equal(suite.T(), []bool{false}, response.Data.Directory.Checked)
}

func (suite *TestSuiteStandard) TestSessionCheckAll() {
	suite.createTestMonth()
	suite.createTestMonth()

	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/session/check-all", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.SessionResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Equal(suite.T(), []bool{false, false}, response.Data.Directory.Checked, "all were checked, toggling unchecks them")
}

func (suite *TestSuiteStandard) TestSessionUpdateCompany() {
	info := session.CompanyInfo{Company: "다른회사", Contact: "02-1234-5678", RegNo: "123-45-67890"}

	recorder := test.Request(suite.T(), http.MethodPatch, "http://example.com/v1/session/company", info)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.SessionResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Equal(suite.T(), info, response.Data.Company)
}

func (suite *TestSuiteStandard) TestSessionSave() {
	response := suite.createTestMonth()
	label := response.Data.Labels[0]

	suite.createTestRow()
	suite.patchRow("0", v1.RowEditable{Field: rowstore.FieldDate, Value: "14"}, http.StatusOK)

	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/session/save", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var month models.TransportMonth
	require.Nil(suite.T(), models.DB.First(&month, "month_label = ?", label).Error)

	var rows []models.TransportRow
	require.Nil(suite.T(), models.DB.Where("month_id = ?", month.ID).Find(&rows).Error)
	require.Len(suite.T(), rows, 1)
	assert.Equal(suite.T(), "14", rows[0].Date)
}

func (suite *TestSuiteStandard) TestSessionSaveWithoutMonth() {
	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/session/save", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}
