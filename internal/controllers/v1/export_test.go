package v1_test

import (
	"bytes"
	"mime/multipart"
	"net/http"

	v1 "github.com/transport-ledger/backend/internal/controllers/v1"
	"github.com/transport-ledger/backend/internal/excel"
	"github.com/transport-ledger/backend/internal/rowstore"
	"github.com/transport-ledger/backend/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func (suite *TestSuiteStandard) TestExportSelected() {
	suite.createTestMonth()
	suite.createTestRow()
	suite.patchRow("0", v1.RowEditable{Field: rowstore.FieldDate, Value: "14"}, http.StatusOK)
	suite.patchRow("0", v1.RowEditable{Field: rowstore.FieldCarNumber, Value: "경기99바1234"}, http.StatusOK)

	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/export", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	assert.Contains(suite.T(), recorder.Header().Get("Content-Disposition"), "attachment")

	imported, err := excel.Import(bytes.NewReader(recorder.Body.Bytes()))
	require.Nil(suite.T(), err)
	require.Len(suite.T(), imported, 1)
	assert.Equal(suite.T(), "경기99바1234", imported[0].CarNumber)
}

func (suite *TestSuiteStandard) TestExportSelectedWithoutMonth() {
	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/export", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestExportCombined() {
	suite.createTestMonth()
	suite.createTestMonth()

	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/export/combined", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	f, err := excelize.OpenReader(bytes.NewReader(recorder.Body.Bytes()))
	require.Nil(suite.T(), err)
	defer f.Close()
	assert.Len(suite.T(), f.GetSheetList(), 2)
}

func (suite *TestSuiteStandard) TestExportCombinedNothingChecked() {
	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/export/combined", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

// multipartFile builds a multipart request body holding one file.
func multipartFile(suite *TestSuiteStandard, name string, content []byte) (*bytes.Buffer, map[string]string) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", name)
	require.Nil(suite.T(), err)
	_, err = part.Write(content)
	require.Nil(suite.T(), err)
	require.Nil(suite.T(), writer.Close())

	return &body, map[string]string{"Content-Type": writer.FormDataContentType()}
}

func (suite *TestSuiteStandard) TestImport() {
	suite.createTestMonth()

	workbook, err := excel.ExportOne([]rowstore.Row{
		{Date: "14", CarNumber: "경기99바1234", Item: "파쇄석"},
	}, excel.Meta{MonthLabel: "2025년 8월"})
	require.Nil(suite.T(), err)

	body, headers := multipartFile(suite, "upload.xlsx", workbook)

	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/import", body, headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.RowsResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	require.Len(suite.T(), response.Data, 1)
	assert.Equal(suite.T(), "파쇄석", response.Data[0].Item)
}

func (suite *TestSuiteStandard) TestImportCSV() {
	suite.createTestMonth()

	csv := "날짜,차량번호,업체/상차지,하차지,품목,중량,횟수,단가,공급가액,세액,합계금액\n14,경기99바1234,성남산업,,,,,,,,\n"
	body, headers := multipartFile(suite, "upload.csv", []byte(csv))

	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/import", body, headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.RowsResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	require.Len(suite.T(), response.Data, 1)
	assert.Equal(suite.T(), "성남산업", response.Data[0].Company)
}

func (suite *TestSuiteStandard) TestImportWrongSuffix() {
	body, headers := multipartFile(suite, "upload.txt", []byte("whatever"))

	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/import", body, headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestImportNoFile() {
	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/import", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestImportHeaderNotFound() {
	suite.createTestMonth()

	f := excelize.NewFile()
	require.Nil(suite.T(), f.SetCellValue("Sheet1", "A1", "아무 데이터"))
	buf, err := f.WriteToBuffer()
	require.Nil(suite.T(), err)
	require.Nil(suite.T(), f.Close())

	body, headers := multipartFile(suite, "upload.xlsx", buf.Bytes())

	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/import", body, headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}
