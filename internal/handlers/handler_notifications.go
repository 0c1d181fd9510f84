package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gitala/gitala_branch/internal/platform/notify"
)

// notificationHandler exposes the recent operator notifications for the UI
// to poll.
type notificationHandler struct {
	feed *notify.Feed
}

func registerNotificationRoutes(rg *gin.RouterGroup, feed *notify.Feed) {
	h := &notificationHandler{feed: feed}

	rg.GET("/notifications", h.listNotifications)
}

// listNotifications godoc
// @Summary Recent operator notifications
// @Tags notifications
// @Produce json
// @Success 200 {array} notify.Notification
// @Security BearerAuth
// @Router /notifications [get]
func (h *notificationHandler) listNotifications(c *gin.Context) {
	c.JSON(http.StatusOK, h.feed.Recent())
}
