package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	notifDto "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/notification/dto"
	notification "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/notification/service"
	userRepo "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/user/repository"
	"github.com/Flexasaurusrex/art-claps-sub000/pkg/apperror"
	"github.com/Flexasaurusrex/art-claps-sub000/pkg/response"
	"github.com/Flexasaurusrex/art-claps-sub000/pkg/validator"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type NotificationHandler struct {
	service     notification.NotificationService
	userRepo    userRepo.UserRepository
	redisClient *redis.Client
	upgrader    websocket.Upgrader
}

func NewNotificationHandler(service notification.NotificationService, userRepo userRepo.UserRepository, redisClient *redis.Client) *NotificationHandler {
	return &NotificationHandler{
		service:     service,
		userRepo:    userRepo,
		redisClient: redisClient,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

func (h *NotificationHandler) GetNotifications(c *gin.Context) {
	fid, err := strconv.ParseInt(c.Query("fid"), 10, 64)
	if err != nil || fid <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "fid query parameter is required"})
		return
	}

	user, err := h.userRepo.FindByFid(c.Request.Context(), fid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.ResponseError(c, apperror.NotFound("user not found"))
			return
		}
		response.ResponseError(c, err)
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit < 1 || limit > 100 {
		limit = 20
	}
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if offset < 0 {
		offset = 0
	}

	notifications, err := h.service.GetNotifications(c.Request.Context(), user.ID, limit, offset)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	unread, err := h.service.UnreadCount(c.Request.Context(), user.ID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "notifications": notifications, "unread": unread})
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	var req notifDto.MarkReadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	if !req.All && req.NotificationID == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "notificationId or all is required"})
		return
	}

	req.Fid = response.ActingFid(c, req.Fid)
	if req.Fid <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "fid is required"})
		return
	}

	user, err := h.userRepo.FindByFid(c.Request.Context(), req.Fid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.ResponseError(c, apperror.NotFound("user not found"))
			return
		}
		response.ResponseError(c, err)
		return
	}

	if req.All {
		err = h.service.MarkAllAsRead(c.Request.Context(), user.ID)
	} else {
		err = h.service.MarkAsRead(c.Request.Context(), *req.NotificationID)
	}
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// HandleWebSocket upgrades the connection and relays the user's Redis
// notification channel until the client hangs up.
func (h *NotificationHandler) HandleWebSocket(c *gin.Context) {
	fid, err := response.GetFid(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	user, err := h.userRepo.FindByFid(c.Request.Context(), fid)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	if h.redisClient == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "live notifications unavailable"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Failed to upgrade websocket: %v", err)
		return
	}
	defer conn.Close()

	pubsub := h.redisClient.Subscribe(c.Request.Context(), notification.Channel(user.ID))
	defer pubsub.Close()

	if _, err := pubsub.Receive(c.Request.Context()); err != nil {
		log.Printf("Failed to subscribe to redis channel: %v", err)
		return
	}

	ch := pubsub.Channel()

	clientClosed := make(chan struct{})
	go func() {
		defer close(clientClosed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, []byte(msg.Payload)); err != nil {
				return
			}
		case <-clientClosed:
			return
		}
	}
}
