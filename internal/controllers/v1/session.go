package v1

import (
	"net/http"

	"github.com/transport-ledger/backend/internal/autosave"
	"github.com/transport-ledger/backend/internal/httputil"
	"github.com/transport-ledger/backend/internal/session"
	"github.com/gin-gonic/gin"
)

// RegisterSessionRoutes registers the routes for the working session
// with the RouterGroup that is passed.
func RegisterSessionRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsSession)
	r.GET("", GetSession)

	r.OPTIONS("/select", OptionsSelect)
	r.POST("/select", SelectMonth)

	r.OPTIONS("/check", OptionsCheck)
	r.POST("/check", ToggleChecked)

	r.OPTIONS("/check-all", OptionsCheckAll)
	r.POST("/check-all", ToggleCheckedAll)

	r.OPTIONS("/company", OptionsCompany)
	r.PATCH("/company", UpdateCompany)

	r.OPTIONS("/save", OptionsSave)
	r.POST("/save", Save)
}

// SessionState is the full working state as the client sees it.
type SessionState struct {
	Directory DirectoryState      `json:"directory"`
	Company   session.CompanyInfo `json:"company"`
	AutoSave  autosave.State      `json:"autoSave" example:"idle"`
}

type SessionResponse struct {
	Error *string       `json:"error"` // The error, if one occurred
	Data  *SessionState `json:"data"`  // The working state
}

// MonthSelection is the index of the month to select or check.
type MonthSelection struct {
	Index int `json:"index" example:"0"`
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Session
// @Success		204
// @Router			/v1/session [options]
func OptionsSession(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Session
// @Success		204
// @Router			/v1/session/select [options]
func OptionsSelect(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Session
// @Success		204
// @Router			/v1/session/check [options]
func OptionsCheck(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Session
// @Success		204
// @Router			/v1/session/check-all [options]
func OptionsCheckAll(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Session
// @Success		204
// @Router			/v1/session/company [options]
func OptionsCompany(c *gin.Context) {
	httputil.OptionsPatch(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Session
// @Success		204
// @Router			/v1/session/save [options]
func OptionsSave(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Get session
// @Description	Returns the working state: month directory, letterhead and auto-save state
// @Tags			Session
// @Produce		json
// @Success		200	{object}	SessionResponse
// @Router			/v1/session [get]
func GetSession(c *gin.Context) {
	c.JSON(http.StatusOK, SessionResponse{Data: sessionState(session.Get())})
}

// @Summary		Select month
// @Description	Changes the selected month and loads its rows
// @Tags			Session
// @Accept			json
// @Produce		json
// @Success		200	{object}	SessionResponse
// @Failure		400	{object}	SessionResponse
// @Failure		404	{object}	SessionResponse
// @Param			selection	body	MonthSelection	true	"Month to select"
// @Router			/v1/session/select [post]
func SelectMonth(c *gin.Context) {
	s := session.Get()

	var selection MonthSelection
	if err := httputil.BindData(c, &selection); err != nil {
		return
	}

	if err := s.Select(selection.Index); err != nil {
		e := err.Error()
		c.JSON(status(err), SessionResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, SessionResponse{Data: sessionState(s)})
}

// @Summary		Toggle month checked
// @Description	Flips the checked state of one month
// @Tags			Session
// @Accept			json
// @Produce		json
// @Success		200	{object}	SessionResponse
// @Failure		400	{object}	SessionResponse
// @Failure		404	{object}	SessionResponse
// @Param			selection	body	MonthSelection	true	"Month to toggle"
// @Router			/v1/session/check [post]
func ToggleChecked(c *gin.Context) {
	s := session.Get()

	var selection MonthSelection
	if err := httputil.BindData(c, &selection); err != nil {
		return
	}

	if err := s.ToggleChecked(selection.Index); err != nil {
		e := err.Error()
		c.JSON(status(err), SessionResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, SessionResponse{Data: sessionState(s)})
}

// @Summary		Toggle all months checked
// @Description	Checks every month, or unchecks every month when all are already checked
// @Tags			Session
// @Produce		json
// @Success		200	{object}	SessionResponse
// @Router			/v1/session/check-all [post]
func ToggleCheckedAll(c *gin.Context) {
	s := session.Get()
	s.ToggleCheckedAll()

	c.JSON(http.StatusOK, SessionResponse{Data: sessionState(s)})
}

// @Summary		Update letterhead
// @Description	Replaces the company information used for new months and exports
// @Tags			Session
// @Accept			json
// @Produce		json
// @Success		200	{object}	SessionResponse
// @Failure		400	{object}	SessionResponse
// @Param			company	body	session.CompanyInfo	true	"New letterhead"
// @Router			/v1/session/company [patch]
func UpdateCompany(c *gin.Context) {
	s := session.Get()

	var info session.CompanyInfo
	if err := httputil.BindData(c, &info); err != nil {
		return
	}

	s.SetCompanyInfo(info)
	c.JSON(http.StatusOK, SessionResponse{Data: sessionState(s)})
}

// @Summary		Save now
// @Description	Persists the selected month immediately, bypassing the auto-save delay
// @Tags			Session
// @Produce		json
// @Success		200	{object}	SessionResponse
// @Failure		400	{object}	SessionResponse
// @Failure		500	{object}	SessionResponse
// @Router			/v1/session/save [post]
func Save(c *gin.Context) {
	s := session.Get()

	if err := s.Save(); err != nil {
		e := err.Error()
		c.JSON(status(err), SessionResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, SessionResponse{Data: sessionState(s)})
}

func sessionState(s *session.Session) *SessionState {
	return &SessionState{
		Directory: *directoryState(s),
		Company:   s.CompanyInfo(),
		AutoSave:  s.SchedulerState(),
	}
}
