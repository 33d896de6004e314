package v1

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"github.com/transport-ledger/backend/internal/excel"
	"github.com/transport-ledger/backend/internal/httputil"
	"github.com/transport-ledger/backend/internal/rowstore"
	"github.com/transport-ledger/backend/internal/session"
	"github.com/gin-gonic/gin"
)

const contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var importSuffixes = []string{".xlsx", ".xls", ".csv"}

// RegisterExportRoutes registers the spreadsheet download routes with
// the RouterGroup that is passed.
func RegisterExportRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsExport)
	r.GET("", GetExport)

	r.OPTIONS("/combined", OptionsExportCombined)
	r.GET("/combined", GetExportCombined)
}

// RegisterImportRoutes registers the spreadsheet upload routes with
// the RouterGroup that is passed.
func RegisterImportRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsImport)
	r.POST("", PostImport)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Export
// @Success		204
// @Router			/v1/export [options]
func OptionsExport(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Export
// @Success		204
// @Router			/v1/export/combined [options]
func OptionsExportCombined(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Import
// @Success		204
// @Router			/v1/import [options]
func OptionsImport(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Export selected month
// @Description	Renders the selected month as a styled workbook and returns it as a file download
// @Tags			Export
// @Produce		application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success		200	{file}		file
// @Failure		400	{object}	httpError
// @Failure		500	{object}	httpError
// @Router			/v1/export [get]
func GetExport(c *gin.Context) {
	name, data, err := session.Get().ExportSelected()
	if err != nil {
		httputil.NewError(c, status(err), err)
		return
	}

	sendFile(c, name, data)
}

// @Summary		Export checked months
// @Description	Renders every checked month into one workbook, one sheet per month, and returns it as a file download
// @Tags			Export
// @Produce		application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success		200	{file}		file
// @Failure		400	{object}	httpError
// @Failure		500	{object}	httpError
// @Router			/v1/export/combined [get]
func GetExportCombined(c *gin.Context) {
	name, data, err := session.Get().ExportChecked()
	if err != nil {
		httputil.NewError(c, status(err), err)
		return
	}

	sendFile(c, name, data)
}

// @Summary		Import rows
// @Description	Parses an uploaded spreadsheet and replaces the selected month's rows with its contents
// @Tags			Import
// @Accept			multipart/form-data
// @Produce		json
// @Success		200	{object}	RowsResponse
// @Failure		400	{object}	RowsResponse
// @Failure		500	{object}	RowsResponse
// @Param			file	formData	file	true	"The file to import"
// @Router			/v1/import [post]
func PostImport(c *gin.Context) {
	s := session.Get()

	file, name, err := getUploadedFile(c)
	if err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, RowsResponse{Error: &e})
		return
	}
	defer file.Close()

	rows, err := importRows(file, name)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RowsResponse{Error: &e})
		return
	}

	if err := s.ImportRows(rows); err != nil {
		e := err.Error()
		c.JSON(status(err), RowsResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, RowsResponse{Data: s.Rows()})
}

func importRows(file multipart.File, name string) ([]rowstore.Row, error) {
	if strings.HasSuffix(name, ".csv") {
		return excel.ImportCSV(file)
	}
	return excel.Import(file)
}

// getUploadedFile returns the form file and handles potential errors.
func getUploadedFile(c *gin.Context) (multipart.File, string, error) {
	formFile, err := c.FormFile("file")
	if formFile == nil {
		return nil, "", errNoFilePost
	}

	if err != nil {
		return nil, "", err
	}

	supported := false
	for _, suffix := range importSuffixes {
		if strings.HasSuffix(formFile.Filename, suffix) {
			supported = true
			break
		}
	}
	if !supported {
		return nil, "", fmt.Errorf("%w: %s", errWrongFileSuffix, strings.Join(importSuffixes, ", "))
	}

	f, err := formFile.Open()
	if err != nil {
		return nil, "", err
	}

	return f, formFile.Filename, nil
}

// sendFile writes a workbook download. The filename is UTF-8 encoded
// per RFC 5987 as it contains Korean characters.
func sendFile(c *gin.Context, name string, data []byte) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename*=UTF-8''%s", url.PathEscape(name)))
	c.Data(http.StatusOK, contentTypeXLSX, data)
}
