package handler

import (
	"errors"

	"vidtube/internal/api/dto"
	"vidtube/internal/api/middleware"
	"vidtube/internal/api/response"
	"vidtube/internal/service"
	"vidtube/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type SubscriptionHandler struct {
	subService *service.SubscriptionService
}

func NewSubscriptionHandler(subService *service.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{subService: subService}
}

// Toggle POST /api/v1/subscriptions/channel/:channel_id
func (h *SubscriptionHandler) Toggle(c *gin.Context) {
	channelID, ok := parseUUIDParam(c, "channel_id")
	if !ok {
		return
	}

	currentUserID, _ := middleware.GetCurrentUserID(c)

	state, err := h.subService.Toggle(currentUserID, channelID)
	if err != nil {
		handleSubscriptionError(c, err)
		return
	}

	response.OK(c, state, dto.ToggleData{State: state})
}

// GetSubscribers GET /api/v1/subscriptions/channel/:channel_id/subscribers
func (h *SubscriptionHandler) GetSubscribers(c *gin.Context) {
	channelID, ok := parseUUIDParam(c, "channel_id")
	if !ok {
		return
	}
	page, limit := parsePagination(c)

	data, err := h.subService.GetSubscribers(channelID, page, limit)
	if err != nil {
		handleSubscriptionError(c, err)
		return
	}

	response.OK(c, "Subscribers fetched successfully", data)
}

// GetSubscribedChannels GET /api/v1/subscriptions/user/:user_id/channels
func (h *SubscriptionHandler) GetSubscribedChannels(c *gin.Context) {
	userID, ok := parseUUIDParam(c, "user_id")
	if !ok {
		return
	}
	page, limit := parsePagination(c)

	data, err := h.subService.GetSubscribedChannels(userID, page, limit)
	if err != nil {
		handleSubscriptionError(c, err)
		return
	}

	response.OK(c, "Subscribed channels fetched successfully", data)
}

func handleSubscriptionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSelfSubscription):
		response.BadRequest(c, err.Error())
	case errors.Is(err, service.ErrChannelNotFound),
		errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, err.Error())
	default:
		logger.Error("Subscription operation failed", zap.Error(err))
		response.InternalError(c, "Operation failed, please try again later")
	}
}
