package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/service"
)

type NotificationHandler struct {
	svc *service.NotificationService
}

func NewNotificationHandler(svc *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{svc: svc}
}

func (h *NotificationHandler) Unread(c *gin.Context) {
	respondOK(c, orEmpty(h.svc.Unread(c.Request.Context())))
}

func (h *NotificationHandler) MarkAsRead(c *gin.Context) {
	n, err := h.svc.MarkAsRead(c.Request.Context(), actorFrom(c), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, n)
}

func (h *NotificationHandler) MarkAllAsRead(c *gin.Context) {
	n := h.svc.MarkAllAsRead(c.Request.Context(), actorFrom(c))
	respondOK(c, gin.H{"updated": n})
}

// Notifications are open to every signed-in user.
func (h *NotificationHandler) register(api *gin.RouterGroup) {
	g := registerResource(api, h.svc.NotificationResource, access{})
	g.GET("/unread", h.Unread)
	g.POST("/read-all", h.MarkAllAsRead)
	g.POST("/:id/read", h.MarkAsRead)
}
