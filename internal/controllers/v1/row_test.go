package v1_test

import (
	"net/http"

	v1 "github.com/transport-ledger/backend/internal/controllers/v1"
	"github.com/transport-ledger/backend/internal/rowstore"
	"github.com/transport-ledger/backend/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) createTestRow() v1.RowsResponse {
	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/rows", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var response v1.RowsResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	return response
}

func (suite *TestSuiteStandard) patchRow(index string, editable v1.RowEditable, expectedStatus int) v1.RowsResponse {
	recorder := test.Request(suite.T(), http.MethodPatch, "http://example.com/v1/rows/"+index, editable)
	test.AssertHTTPStatus(suite.T(), &recorder, expectedStatus)

	var response v1.RowsResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	return response
}

func (suite *TestSuiteStandard) TestRowsGetEmpty() {
	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/rows", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.RowsResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Empty(suite.T(), response.Data)
}

func (suite *TestSuiteStandard) TestRowsCreate() {
	suite.createTestMonth()

	response := suite.createTestRow()
	require.Len(suite.T(), response.Data, 1)
	assert.True(suite.T(), response.Data[0].IsBlank())
}

func (suite *TestSuiteStandard) TestRowsUpdateCascade() {
	suite.createTestMonth()
	suite.createTestRow()

	suite.patchRow("0", v1.RowEditable{Field: rowstore.FieldWeight, Value: "3.375"}, http.StatusOK)
	response := suite.patchRow("0", v1.RowEditable{Field: rowstore.FieldUnitPrice, Value: "12000"}, http.StatusOK)

	require.Len(suite.T(), response.Data, 1)
	assert.Equal(suite.T(), "40500", response.Data[0].SupplyPrice)
	assert.Equal(suite.T(), "4050", response.Data[0].Tax)
	assert.Equal(suite.T(), "44550", response.Data[0].TotalPrice)
}

func (suite *TestSuiteStandard) TestRowsUpdateInvalidDate() {
	suite.createTestMonth()
	suite.createTestRow()

	suite.patchRow("0", v1.RowEditable{Field: rowstore.FieldDate, Value: "32"}, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestRowsUpdateIndexOutOfRange() {
	suite.createTestMonth()

	suite.patchRow("3", v1.RowEditable{Field: rowstore.FieldDate, Value: "1"}, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestRowsUpdateInvalidIndex() {
	suite.createTestMonth()

	recorder := test.Request(suite.T(), http.MethodPatch, "http://example.com/v1/rows/abc", v1.RowEditable{Field: rowstore.FieldDate, Value: "1"})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestRowsDelete() {
	suite.createTestMonth()
	suite.createTestRow()
	suite.createTestRow()
	suite.patchRow("1", v1.RowEditable{Field: rowstore.FieldItem, Value: "파쇄석"}, http.StatusOK)

	recorder := test.Request(suite.T(), http.MethodDelete, "http://example.com/v1/rows/0", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.RowsResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	require.Len(suite.T(), response.Data, 1)
	assert.Equal(suite.T(), "파쇄석", response.Data[0].Item)
}

func (suite *TestSuiteStandard) TestRowsReorder() {
	suite.createTestMonth()

	reorder := v1.RowReorder{Rows: []rowstore.Row{
		{Item: "모래"},
		{Item: "파쇄석"},
	}}

	recorder := test.Request(suite.T(), http.MethodPut, "http://example.com/v1/rows", reorder)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.RowsResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	require.Len(suite.T(), response.Data, 2)
	assert.Equal(suite.T(), "모래", response.Data[0].Item)
}

func (suite *TestSuiteStandard) TestRowsSuggestions() {
	suite.createTestMonth()
	suite.createTestRow()
	suite.createTestRow()
	suite.patchRow("0", v1.RowEditable{Field: rowstore.FieldCompany, Value: "성남산업"}, http.StatusOK)
	suite.patchRow("1", v1.RowEditable{Field: rowstore.FieldCompany, Value: "성남산업"}, http.StatusOK)

	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/rows/suggestions?field=company", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.SuggestionsResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Equal(suite.T(), []string{"성남산업"}, response.Data)
}

func (suite *TestSuiteStandard) TestRowsSuggestionsUnknownField() {
	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/rows/suggestions?field=nope", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}
