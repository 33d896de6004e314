package v1

import (
	"net/http"

	"github.com/transport-ledger/backend/internal/httputil"
	"github.com/transport-ledger/backend/internal/notify"
	"github.com/transport-ledger/backend/internal/session"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RegisterNotificationRoutes registers the notification routes with
// the RouterGroup that is passed.
func RegisterNotificationRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsNotifications)
	r.GET("", GetNotifications)

	r.OPTIONS("/:id", OptionsNotificationDetail)
	r.DELETE("/:id", DismissNotification)
}

type NotificationListResponse struct {
	Error *string               `json:"error"` // The error, if one occurred
	Data  []notify.Notification `json:"data"`  // The live notifications, oldest first
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Notifications
// @Success		204
// @Router			/v1/notifications [options]
func OptionsNotifications(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Notifications
// @Success		204
// @Param			id	path	string	true	"ID of the notification"
// @Router			/v1/notifications/{id} [options]
func OptionsNotificationDetail(c *gin.Context) {
	httputil.OptionsDelete(c)
}

// @Summary		Get notifications
// @Description	Returns the live notifications. Entries expire on their own after five seconds.
// @Tags			Notifications
// @Produce		json
// @Success		200	{object}	NotificationListResponse
// @Router			/v1/notifications [get]
func GetNotifications(c *gin.Context) {
	c.JSON(http.StatusOK, NotificationListResponse{
		Data: session.Get().Notifications().List(),
	})
}

// @Summary		Dismiss notification
// @Description	Removes a notification before its expiry
// @Tags			Notifications
// @Success		204
// @Failure		400	{object}	httpError
// @Param			id	path	string	true	"ID of the notification"
// @Router			/v1/notifications/{id} [delete]
func DismissNotification(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.NewError(c, http.StatusBadRequest, errInvalidNotificationID)
		return
	}

	session.Get().Notifications().Dismiss(id)
	c.Status(http.StatusNoContent)
}
