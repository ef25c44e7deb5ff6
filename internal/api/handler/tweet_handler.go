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

type TweetHandler struct {
	tweetService *service.TweetService
}

func NewTweetHandler(tweetService *service.TweetService) *TweetHandler {
	return &TweetHandler{tweetService: tweetService}
}

// Create POST /api/v1/tweets
func (h *TweetHandler) Create(c *gin.Context) {
	var req dto.TweetCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request parameters: "+err.Error())
		return
	}

	currentUserID, _ := middleware.GetCurrentUserID(c)

	info, err := h.tweetService.Create(currentUserID, &req)
	if err != nil {
		handleTweetError(c, err)
		return
	}

	response.Created(c, "Tweet created successfully", info)
}

// ListByUser GET /api/v1/tweets/user/:user_id
func (h *TweetHandler) ListByUser(c *gin.Context) {
	userID, ok := parseUUIDParam(c, "user_id")
	if !ok {
		return
	}
	page, limit := parsePagination(c)

	data, err := h.tweetService.ListByUser(userID, page, limit)
	if err != nil {
		handleTweetError(c, err)
		return
	}

	response.OK(c, "Tweets fetched successfully", data)
}

// Update PATCH /api/v1/tweets/:id
func (h *TweetHandler) Update(c *gin.Context) {
	tweetID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.TweetUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request parameters: "+err.Error())
		return
	}

	currentUserID, _ := middleware.GetCurrentUserID(c)

	info, err := h.tweetService.Update(tweetID, currentUserID, &req)
	if err != nil {
		handleTweetError(c, err)
		return
	}

	response.OK(c, "Tweet updated successfully", info)
}

// Delete DELETE /api/v1/tweets/:id
func (h *TweetHandler) Delete(c *gin.Context) {
	tweetID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	currentUserID, _ := middleware.GetCurrentUserID(c)

	if err := h.tweetService.Delete(tweetID, currentUserID); err != nil {
		handleTweetError(c, err)
		return
	}

	response.OK(c, "Tweet deleted successfully", nil)
}

func handleTweetError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTweetNotFound),
		errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrTweetNoPermission):
		response.Forbidden(c, err.Error())
	default:
		logger.Error("Tweet operation failed", zap.Error(err))
		response.InternalError(c, "Operation failed, please try again later")
	}
}
