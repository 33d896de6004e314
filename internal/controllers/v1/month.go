package v1

import (
	"net/http"

	"github.com/transport-ledger/backend/internal/httputil"
	"github.com/transport-ledger/backend/internal/session"
	"github.com/gin-gonic/gin"
)

// RegisterMonthRoutes registers the routes for the month directory
// with the RouterGroup that is passed.
func RegisterMonthRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsMonths)
		r.GET("", GetMonths)
		r.POST("", CreateMonth)
	}

	// Month with label
	{
		r.OPTIONS("/:label", OptionsMonthDetail)
		r.DELETE("/:label", DeleteMonth)
	}
}

// DirectoryState is the month directory as the client sees it.
type DirectoryState struct {
	Labels   []string `json:"labels" example:"2025년 7월"`
	Selected int      `json:"selected" example:"0"` // Index of the selected month
	Checked  []bool   `json:"checked"`              // Checked state per month, for the combined export
}

type MonthsResponse struct {
	Error *string         `json:"error"` // The error, if one occurred
	Data  *DirectoryState `json:"data"`  // The month directory
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Months
// @Success		204
// @Router			/v1/months [options]
func OptionsMonths(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Months
// @Success		204
// @Param			label	path	string	true	"Label of the month"
// @Router			/v1/months/{label} [options]
func OptionsMonthDetail(c *gin.Context) {
	httputil.OptionsDelete(c)
}

// @Summary		Get months
// @Description	Returns the month directory with selection and checked state
// @Tags			Months
// @Produce		json
// @Success		200	{object}	MonthsResponse
// @Router			/v1/months [get]
func GetMonths(c *gin.Context) {
	c.JSON(http.StatusOK, MonthsResponse{Data: directoryState(session.Get())})
}

// @Summary		Add month
// @Description	Creates the month following the last one in the directory, or the current calendar month when the directory is empty. The new month becomes selected and all months become checked.
// @Tags			Months
// @Produce		json
// @Success		201	{object}	MonthsResponse
// @Failure		400	{object}	MonthsResponse
// @Failure		500	{object}	MonthsResponse
// @Router			/v1/months [post]
func CreateMonth(c *gin.Context) {
	s := session.Get()

	if err := s.AddMonth(); err != nil {
		e := err.Error()
		c.JSON(status(err), MonthsResponse{Error: &e})
		return
	}

	c.JSON(http.StatusCreated, MonthsResponse{Data: directoryState(s)})
}

// @Summary		Delete month
// @Description	Deletes a month and all of its rows. If the deleted month was selected, selection falls back to the previous month.
// @Tags			Months
// @Produce		json
// @Success		200	{object}	MonthsResponse
// @Failure		404	{object}	MonthsResponse
// @Failure		500	{object}	MonthsResponse
// @Param			label	path	string	true	"Label of the month"
// @Router			/v1/months/{label} [delete]
func DeleteMonth(c *gin.Context) {
	s := session.Get()

	if err := s.DeleteMonth(c.Param("label")); err != nil {
		e := err.Error()
		c.JSON(status(err), MonthsResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, MonthsResponse{Data: directoryState(s)})
}

func directoryState(s *session.Session) *DirectoryState {
	return &DirectoryState{
		Labels:   s.Labels(),
		Selected: s.Selected(),
		Checked:  s.Checked(),
	}
}
