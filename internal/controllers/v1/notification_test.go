package v1_test

import (
	"fmt"
	"net/http"

	v1 "github.com/transport-ledger/backend/internal/controllers/v1"
	"github.com/transport-ledger/backend/internal/notify"
	"github.com/transport-ledger/backend/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestNotificationsEmpty() {
	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/notifications", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.NotificationListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Empty(suite.T(), response.Data)
}

func (suite *TestSuiteStandard) TestNotificationsAfterMonthAdd() {
	suite.createTestMonth()

	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/notifications", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.NotificationListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	require.Len(suite.T(), response.Data, 1)
	assert.Equal(suite.T(), notify.MsgMonthAdded, response.Data[0].Message)
	assert.Equal(suite.T(), notify.SeveritySuccess, response.Data[0].Severity)
}

func (suite *TestSuiteStandard) TestNotificationDismiss() {
	suite.createTestMonth()

	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/notifications", "")
	var response v1.NotificationListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	require.Len(suite.T(), response.Data, 1)

	recorder = test.Request(suite.T(), http.MethodDelete, fmt.Sprintf("http://example.com/v1/notifications/%s", response.Data[0].ID), "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)

	recorder = test.Request(suite.T(), http.MethodGet, "http://example.com/v1/notifications", "")
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Empty(suite.T(), response.Data)
}

func (suite *TestSuiteStandard) TestNotificationDismissInvalidID() {
	recorder := test.Request(suite.T(), http.MethodDelete, "http://example.com/v1/notifications/not-a-uuid", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}
