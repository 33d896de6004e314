package v1

import (
	"net/http"
	"strconv"

	"github.com/transport-ledger/backend/internal/httputil"
	"github.com/transport-ledger/backend/internal/rowstore"
	"github.com/transport-ledger/backend/internal/session"
	"github.com/gin-gonic/gin"
)

// RegisterRowRoutes registers the routes for the selected month's rows
// with the RouterGroup that is passed.
func RegisterRowRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsRows)
		r.GET("", GetRows)
		r.POST("", CreateRow)
		r.PUT("", ReorderRows)
	}

	// Row with index
	{
		r.OPTIONS("/:index", OptionsRowDetail)
		r.PATCH("/:index", UpdateRow)
		r.DELETE("/:index", DeleteRow)
	}

	r.OPTIONS("/suggestions", OptionsSuggestions)
	r.GET("/suggestions", GetSuggestions)
}

type RowsResponse struct {
	Error *string        `json:"error"` // The error, if one occurred
	Data  []rowstore.Row `json:"data"`  // The rows of the selected month
}

// RowEditable is what a PATCH request changes on a row.
type RowEditable struct {
	Field rowstore.Field `json:"field" binding:"required" example:"weight"`
	Value string         `json:"value" example:"3.375"`
}

// RowReorder is the full row sequence in its new order.
type RowReorder struct {
	Rows []rowstore.Row `json:"rows"`
}

type SuggestionsResponse struct {
	Error *string  `json:"error"` // The error, if one occurred
	Data  []string `json:"data"`  // Distinct non-empty values in first-seen order
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Rows
// @Success		204
// @Router			/v1/rows [options]
func OptionsRows(c *gin.Context) {
	httputil.OptionsGetPostPut(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Rows
// @Success		204
// @Param			index	path	int	true	"Position of the row"
// @Router			/v1/rows/{index} [options]
func OptionsRowDetail(c *gin.Context) {
	httputil.OptionsPatchDelete(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Rows
// @Success		204
// @Router			/v1/rows/suggestions [options]
func OptionsSuggestions(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Get rows
// @Description	Returns the rows of the selected month
// @Tags			Rows
// @Produce		json
// @Success		200	{object}	RowsResponse
// @Router			/v1/rows [get]
func GetRows(c *gin.Context) {
	c.JSON(http.StatusOK, RowsResponse{Data: session.Get().Rows()})
}

// @Summary		Add row
// @Description	Appends a blank row to the selected month
// @Tags			Rows
// @Produce		json
// @Success		201	{object}	RowsResponse
// @Router			/v1/rows [post]
func CreateRow(c *gin.Context) {
	s := session.Get()
	s.AddRow()

	c.JSON(http.StatusCreated, RowsResponse{Data: s.Rows()})
}

// @Summary		Update row field
// @Description	Sets one field of one row. Editing weight or unitPrice recomputes supplyPrice, tax and totalPrice; editing supplyPrice recomputes tax and totalPrice.
// @Tags			Rows
// @Accept			json
// @Produce		json
// @Success		200	{object}	RowsResponse
// @Failure		400	{object}	RowsResponse
// @Failure		404	{object}	RowsResponse
// @Param			index	path	int			true	"Position of the row"
// @Param			row		body	RowEditable	true	"Field and value"
// @Router			/v1/rows/{index} [patch]
func UpdateRow(c *gin.Context) {
	s := session.Get()

	index, err := rowIndex(c)
	if err != nil {
		return
	}

	var editable RowEditable
	if err := httputil.BindData(c, &editable); err != nil {
		return
	}

	if err := s.UpdateField(index, editable.Field, editable.Value); err != nil {
		e := err.Error()
		c.JSON(status(err), RowsResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, RowsResponse{Data: s.Rows()})
}

// @Summary		Delete row
// @Description	Removes one row of the selected month. Subsequent rows shift up.
// @Tags			Rows
// @Produce		json
// @Success		200	{object}	RowsResponse
// @Failure		400	{object}	RowsResponse
// @Failure		404	{object}	RowsResponse
// @Param			index	path	int	true	"Position of the row"
// @Router			/v1/rows/{index} [delete]
func DeleteRow(c *gin.Context) {
	s := session.Get()

	index, err := rowIndex(c)
	if err != nil {
		return
	}

	if err := s.DeleteRow(index); err != nil {
		e := err.Error()
		c.JSON(status(err), RowsResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, RowsResponse{Data: s.Rows()})
}

// @Summary		Reorder rows
// @Description	Replaces the selected month's row sequence wholesale
// @Tags			Rows
// @Accept			json
// @Produce		json
// @Success		200	{object}	RowsResponse
// @Failure		400	{object}	RowsResponse
// @Param			rows	body	RowReorder	true	"Rows in their new order"
// @Router			/v1/rows [put]
func ReorderRows(c *gin.Context) {
	s := session.Get()

	var reorder RowReorder
	if err := httputil.BindData(c, &reorder); err != nil {
		return
	}

	s.Reorder(reorder.Rows)
	c.JSON(http.StatusOK, RowsResponse{Data: s.Rows()})
}

// @Summary		Get suggestions
// @Description	Returns the autocomplete suggestions for a field of the selected month
// @Tags			Rows
// @Produce		json
// @Success		200	{object}	SuggestionsResponse
// @Failure		400	{object}	SuggestionsResponse
// @Param			field	query	string	true	"Field to suggest values for"
// @Router			/v1/rows/suggestions [get]
func GetSuggestions(c *gin.Context) {
	values, err := session.Get().Suggestions(rowstore.Field(c.Query("field")))
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SuggestionsResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, SuggestionsResponse{Data: values})
}

// rowIndex parses the index path parameter. On failure, the error
// response has already been written.
func rowIndex(c *gin.Context) (int, error) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		httputil.NewError(c, http.StatusBadRequest, err)
		return 0, err
	}

	return index, nil
}
