package controller

import (
	"errors"
	"net/http"

	"github.com/carhive/carhive-backend/internal/app/service"
	apperrors "github.com/carhive/carhive-backend/internal/errors"
	"github.com/carhive/carhive-backend/internal/middleware"
	ws "github.com/carhive/carhive-backend/internal/websocket"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Origin is not checked: auth happens via the JWT before the upgrade.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type NotificationController struct {
	notificationService service.NotificationService
	hub                 *ws.Hub
}

func NewNotificationController(notificationService service.NotificationService, hub *ws.Hub) *NotificationController {
	return &NotificationController{
		notificationService: notificationService,
		hub:                 hub,
	}
}

// List returns the user's recent notifications
// GET /api/v1/notifications
func (ctrl *NotificationController) List(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	notifications, err := ctrl.notificationService.List(userID)
	if err != nil {
		log.Error("Failed to list notifications", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.InternalError(c, "Failed to list notifications")
		return
	}

	unread, err := ctrl.notificationService.UnreadCount(userID)
	if err != nil {
		apperrors.InternalError(c, "Failed to count notifications")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"notifications": notifications,
		"count":         len(notifications),
		"unread":        unread,
	})
}

// MarkRead marks one notification as read
// POST /api/v1/notifications/:id/read
func (ctrl *NotificationController) MarkRead(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	notificationID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	notification, err := ctrl.notificationService.MarkRead(userID, notificationID)
	if err != nil {
		if errors.Is(err, service.ErrNotificationNotFound) {
			apperrors.NotFound(c, apperrors.NotificationNotFound, "Notification not found")
			return
		}
		apperrors.InternalError(c, "Failed to mark notification read")
		return
	}

	c.JSON(http.StatusOK, gin.H{"notification": notification})
}

// MarkAllRead marks every unread notification as read
// POST /api/v1/notifications/read-all
func (ctrl *NotificationController) MarkAllRead(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	if err := ctrl.notificationService.MarkAllRead(userID); err != nil {
		apperrors.InternalError(c, "Failed to mark notifications read")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "All notifications marked read"})
}

// Connect upgrades to a websocket and streams notifications live
// GET /api/v1/notifications/ws?token=...
func (ctrl *NotificationController) Connect(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error("WebSocket upgrade failed", err, map[string]interface{}{
			"user_id": userID,
		})
		return
	}

	client := ws.NewClient(ctrl.hub, conn, userID)
	ctrl.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()
}
