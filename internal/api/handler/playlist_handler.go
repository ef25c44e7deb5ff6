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

type PlaylistHandler struct {
	playlistService *service.PlaylistService
}

func NewPlaylistHandler(playlistService *service.PlaylistService) *PlaylistHandler {
	return &PlaylistHandler{playlistService: playlistService}
}

// Create POST /api/v1/playlists
func (h *PlaylistHandler) Create(c *gin.Context) {
	var req dto.PlaylistCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request parameters: "+err.Error())
		return
	}

	currentUserID, _ := middleware.GetCurrentUserID(c)

	info, err := h.playlistService.Create(currentUserID, &req)
	if err != nil {
		handlePlaylistError(c, err)
		return
	}

	response.Created(c, "Playlist created successfully", info)
}

// GetByID GET /api/v1/playlists/:id
func (h *PlaylistHandler) GetByID(c *gin.Context) {
	playlistID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	info, err := h.playlistService.GetByID(playlistID)
	if err != nil {
		handlePlaylistError(c, err)
		return
	}

	response.OK(c, "Playlist fetched successfully", info)
}

// ListByUser GET /api/v1/playlists/user/:user_id
func (h *PlaylistHandler) ListByUser(c *gin.Context) {
	userID, ok := parseUUIDParam(c, "user_id")
	if !ok {
		return
	}

	data, err := h.playlistService.ListByUser(userID)
	if err != nil {
		handlePlaylistError(c, err)
		return
	}

	response.OK(c, "Playlists fetched successfully", data)
}

// Update PATCH /api/v1/playlists/:id
func (h *PlaylistHandler) Update(c *gin.Context) {
	playlistID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.PlaylistUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request parameters: "+err.Error())
		return
	}

	currentUserID, _ := middleware.GetCurrentUserID(c)

	info, err := h.playlistService.Update(playlistID, currentUserID, &req)
	if err != nil {
		handlePlaylistError(c, err)
		return
	}

	response.OK(c, "Playlist updated successfully", info)
}

// Delete DELETE /api/v1/playlists/:id
func (h *PlaylistHandler) Delete(c *gin.Context) {
	playlistID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	currentUserID, _ := middleware.GetCurrentUserID(c)

	if err := h.playlistService.Delete(playlistID, currentUserID); err != nil {
		handlePlaylistError(c, err)
		return
	}

	response.OK(c, "Playlist deleted successfully", nil)
}

// AddVideo PATCH /api/v1/playlists/:id/videos/:video_id
func (h *PlaylistHandler) AddVideo(c *gin.Context) {
	playlistID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	videoID, ok := parseUUIDParam(c, "video_id")
	if !ok {
		return
	}

	currentUserID, _ := middleware.GetCurrentUserID(c)

	info, err := h.playlistService.AddVideo(playlistID, videoID, currentUserID)
	if err != nil {
		handlePlaylistError(c, err)
		return
	}

	response.OK(c, "Video added to playlist successfully", info)
}

// RemoveVideo DELETE /api/v1/playlists/:id/videos/:video_id
func (h *PlaylistHandler) RemoveVideo(c *gin.Context) {
	playlistID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	videoID, ok := parseUUIDParam(c, "video_id")
	if !ok {
		return
	}

	currentUserID, _ := middleware.GetCurrentUserID(c)

	info, err := h.playlistService.RemoveVideo(playlistID, videoID, currentUserID)
	if err != nil {
		handlePlaylistError(c, err)
		return
	}

	response.OK(c, "Video removed from playlist successfully", info)
}

func handlePlaylistError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPlaylistNotFound),
		errors.Is(err, service.ErrVideoNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrPlaylistNoPermission):
		response.Forbidden(c, err.Error())
	case errors.Is(err, service.ErrPlaylistNameTaken),
		errors.Is(err, service.ErrVideoAlreadyInPlaylist),
		errors.Is(err, service.ErrVideoNotInPlaylist),
		errors.Is(err, service.ErrNoFieldsToUpdate):
		response.BadRequest(c, err.Error())
	default:
		logger.Error("Playlist operation failed", zap.Error(err))
		response.InternalError(c, "Operation failed, please try again later")
	}
}
