package v1_test

import (
	"net/http"
	"net/url"
	"time"

	v1 "github.com/transport-ledger/backend/internal/controllers/v1"
	"github.com/transport-ledger/backend/internal/types"
	"github.com/transport-ledger/backend/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) createTestMonth() v1.MonthsResponse {
	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/months", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var response v1.MonthsResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	return response
}

func (suite *TestSuiteStandard) TestMonthsGetEmpty() {
	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/months", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.MonthsResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Empty(suite.T(), response.Data.Labels)
}

func (suite *TestSuiteStandard) TestMonthsCreate() {
	response := suite.createTestMonth()

	expected := types.LabelOf(time.Now()).String()
	assert.Equal(suite.T(), []string{expected}, response.Data.Labels)
	assert.Equal(suite.T(), 0, response.Data.Selected)
	assert.Equal(suite.T(), []bool{true}, response.Data.Checked)
}

func (suite *TestSuiteStandard) TestMonthsCreateSequence() {
	suite.createTestMonth()
	response := suite.createTestMonth()

	require.Len(suite.T(), response.Data.Labels, 2)

	first, err := types.ParseLabel(response.Data.Labels[0])
	require.Nil(suite.T(), err)
	assert.Equal(suite.T(), first.Next().String(), response.Data.Labels[1])
	assert.Equal(suite.T(), 1, response.Data.Selected)
}

func (suite *TestSuiteStandard) TestMonthsDelete() {
	suite.createTestMonth()
	response := suite.createTestMonth()
	label := response.Data.Labels[1]

	recorder := test.Request(suite.T(), http.MethodDelete, "http://example.com/v1/months/"+url.PathEscape(label), "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var deleted v1.MonthsResponse
	test.DecodeResponse(suite.T(), &recorder, &deleted)
	assert.Len(suite.T(), deleted.Data.Labels, 1)
	assert.Equal(suite.T(), 0, deleted.Data.Selected)
}

func (suite *TestSuiteStandard) TestMonthsDeleteNotFound() {
	recorder := test.Request(suite.T(), http.MethodDelete, "http://example.com/v1/months/"+url.PathEscape("2031년 1월"), "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestMonthsCreateDBError() {
	suite.CloseDB()

	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/months", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusInternalServerError)
}
