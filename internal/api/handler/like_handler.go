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

type LikeHandler struct {
	likeService *service.LikeService
}

func NewLikeHandler(likeService *service.LikeService) *LikeHandler {
	return &LikeHandler{likeService: likeService}
}

// ToggleVideo POST /api/v1/likes/toggle/video/:id
// 响应消息固定为 "liked" / "unliked"
func (h *LikeHandler) ToggleVideo(c *gin.Context) {
	videoID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	currentUserID, _ := middleware.GetCurrentUserID(c)

	state, err := h.likeService.ToggleVideo(currentUserID, videoID)
	if err != nil {
		handleLikeError(c, err)
		return
	}

	response.OK(c, state, dto.ToggleData{State: state})
}

// ToggleComment POST /api/v1/likes/toggle/comment/:id
func (h *LikeHandler) ToggleComment(c *gin.Context) {
	commentID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	currentUserID, _ := middleware.GetCurrentUserID(c)

	state, err := h.likeService.ToggleComment(currentUserID, commentID)
	if err != nil {
		handleLikeError(c, err)
		return
	}

	response.OK(c, state, dto.ToggleData{State: state})
}

// ToggleTweet POST /api/v1/likes/toggle/tweet/:id
func (h *LikeHandler) ToggleTweet(c *gin.Context) {
	tweetID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	currentUserID, _ := middleware.GetCurrentUserID(c)

	state, err := h.likeService.ToggleTweet(currentUserID, tweetID)
	if err != nil {
		handleLikeError(c, err)
		return
	}

	response.OK(c, state, dto.ToggleData{State: state})
}

// GetLikedVideos GET /api/v1/likes/videos
func (h *LikeHandler) GetLikedVideos(c *gin.Context) {
	currentUserID, _ := middleware.GetCurrentUserID(c)
	page, limit := parsePagination(c)

	data, err := h.likeService.GetLikedVideos(currentUserID, page, limit)
	if err != nil {
		handleLikeError(c, err)
		return
	}

	response.OK(c, "Liked videos fetched successfully", data)
}

func handleLikeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrVideoNotFound),
		errors.Is(err, service.ErrCommentNotFound),
		errors.Is(err, service.ErrTweetNotFound):
		response.NotFound(c, err.Error())
	default:
		logger.Error("Like operation failed", zap.Error(err))
		response.InternalError(c, "Operation failed, please try again later")
	}
}
