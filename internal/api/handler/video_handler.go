package handler

import (
	"errors"
	"net/http"

	"vidtube/internal/api/dto"
	"vidtube/internal/api/middleware"
	"vidtube/internal/api/response"
	"vidtube/internal/config"
	"vidtube/internal/service"
	"vidtube/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type VideoHandler struct {
	videoService  *service.VideoService
	searchService *service.SearchService
}

func NewVideoHandler(videoService *service.VideoService, searchService *service.SearchService) *VideoHandler {
	return &VideoHandler{
		videoService:  videoService,
		searchService: searchService,
	}
}

// List 获取已发布视频列表
// @Summary 获取视频列表
// @Description 分页获取已发布视频，支持标题/描述子串过滤、排序与按作者过滤
// @Tags 视频
// @Produce json
// @Param page query int false "页码，默认 1"
// @Param limit query int false "每页条数，默认 10，上限 100"
// @Param query query string false "标题/描述子串过滤（不区分大小写）"
// @Param sortBy query string false "排序字段：created_at/views/duration/title"
// @Param sortType query string false "asc 或 desc，默认 desc"
// @Param userId query string false "按作者过滤"
// @Success 200 {object} response.Response{data=dto.VideoListData} "获取成功"
// @Router /videos [get]
func (h *VideoHandler) List(c *gin.Context) {
	page, limit := parsePagination(c)

	var ownerID *uuid.UUID
	if v := c.Query("userId"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			response.BadRequest(c, "Invalid userId")
			return
		}
		ownerID = &id
	}

	data, err := h.videoService.List(page, limit, c.Query("query"), c.Query("sortBy"), c.Query("sortType"), ownerID)
	if err != nil {
		logger.Error("List videos failed", zap.Error(err))
		response.InternalError(c, "Failed to fetch videos")
		return
	}

	response.OK(c, "Videos fetched successfully", data)
}

// Search 搜索已发布视频
// @Summary 搜索视频
// @Description 全文搜索已发布视频（ES 优先，自动降级到数据库）
// @Tags 视频
// @Produce json
// @Param q query string false "搜索关键词"
// @Param page query int false "页码"
// @Param limit query int false "每页条数"
// @Success 200 {object} response.Response{data=dto.VideoListData} "搜索成功"
// @Router /videos/search [get]
func (h *VideoHandler) Search(c *gin.Context) {
	page, limit := parsePagination(c)

	data, err := h.searchService.SearchVideos(c.Query("q"), page, limit)
	if err != nil {
		logger.Error("Search videos failed", zap.Error(err))
		response.InternalError(c, "Failed to search videos")
		return
	}

	response.OK(c, "Videos fetched successfully", data)
}

// Publish 发布视频
// @Summary 发布视频
// @Description 上传视频文件与封面并创建视频记录（multipart/form-data）
// @Tags 视频
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param title formData string true "标题"
// @Param description formData string false "描述"
// @Param videoFile formData file true "视频文件"
// @Param thumbnail formData file true "封面图片"
// @Success 201 {object} response.Response{data=dto.VideoInfo} "发布成功"
// @Failure 400 {object} response.ErrorResponse "参数或文件无效"
// @Router /videos [post]
func (h *VideoHandler) Publish(c *gin.Context) {
	var req dto.VideoPublishRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "Invalid request parameters: "+err.Error())
		return
	}

	videoFile, err := c.FormFile("videoFile")
	if err != nil {
		response.BadRequest(c, "Video file is required")
		return
	}
	thumbFile, err := c.FormFile("thumbnail")
	if err != nil {
		response.BadRequest(c, "Thumbnail is required")
		return
	}

	uploadCfg := config.GetUpload()
	if videoFile.Size == 0 || videoFile.Size > int64(uploadCfg.MaxVideoMB)*1024*1024 {
		response.BadRequest(c, "Invalid video file size")
		return
	}
	if thumbFile.Size == 0 || thumbFile.Size > int64(uploadCfg.MaxImageMB)*1024*1024 {
		response.BadRequest(c, "Invalid thumbnail size")
		return
	}

	videoPath, err := stageUploadedFile(c, videoFile)
	if err != nil {
		logger.Error("Stage video file failed", zap.Error(err))
		response.InternalError(c, "Failed to store uploaded file")
		return
	}
	thumbPath, err := stageUploadedFile(c, thumbFile)
	if err != nil {
		logger.Error("Stage thumbnail failed", zap.Error(err))
		response.InternalError(c, "Failed to store uploaded file")
		return
	}

	currentUserID, _ := middleware.GetCurrentUserID(c)

	info, err := h.videoService.Publish(c.Request.Context(), currentUserID, &req, videoPath, thumbPath)
	if err != nil {
		handleVideoError(c, err)
		return
	}

	response.Created(c, "Video published successfully", info)
}

// GetDetail 获取视频详情
// @Summary 获取视频详情
// @Tags 视频
// @Produce json
// @Param id path string true "视频ID"
// @Success 200 {object} response.Response{data=dto.VideoInfo} "获取成功"
// @Failure 400 {object} response.ErrorResponse "ID格式无效"
// @Failure 404 {object} response.ErrorResponse "视频不存在"
// @Router /videos/{id} [get]
func (h *VideoHandler) GetDetail(c *gin.Context) {
	videoID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	info, err := h.videoService.GetDetail(c.Request.Context(), videoID)
	if err != nil {
		handleVideoError(c, err)
		return
	}

	response.OK(c, "Video fetched successfully", info)
}

// Update 更新视频信息，可携带替换封面
// @Summary 更新视频信息
// @Tags 视频
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path string true "视频ID"
// @Param title formData string false "标题"
// @Param description formData string false "描述"
// @Param thumbnail formData file false "替换封面"
// @Success 200 {object} response.Response{data=dto.VideoInfo} "更新成功"
// @Failure 403 {object} response.ErrorResponse "没有权限"
// @Router /videos/{id} [patch]
func (h *VideoHandler) Update(c *gin.Context) {
	videoID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.VideoUpdateRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "Invalid request parameters: "+err.Error())
		return
	}

	thumbnailPath := ""
	thumbFile, err := c.FormFile("thumbnail")
	switch {
	case err == nil:
		if thumbFile.Size == 0 || thumbFile.Size > int64(config.GetUpload().MaxImageMB)*1024*1024 {
			response.BadRequest(c, "Invalid thumbnail size")
			return
		}
		thumbnailPath, err = stageUploadedFile(c, thumbFile)
		if err != nil {
			logger.Error("Stage thumbnail failed", zap.Error(err))
			response.InternalError(c, "Failed to store uploaded file")
			return
		}
	case errors.Is(err, http.ErrMissingFile):
		// 未携带封面，仅更新文本字段
	default:
		response.BadRequest(c, "Invalid thumbnail upload")
		return
	}

	currentUserID, _ := middleware.GetCurrentUserID(c)

	info, err := h.videoService.Update(c.Request.Context(), videoID, currentUserID, &req, thumbnailPath)
	if err != nil {
		handleVideoError(c, err)
		return
	}

	response.OK(c, "Video updated successfully", info)
}

// Delete 删除视频
// @Summary 删除视频
// @Tags 视频
// @Produce json
// @Security BearerAuth
// @Param id path string true "视频ID"
// @Success 200 {object} response.Response "删除成功"
// @Failure 403 {object} response.ErrorResponse "没有权限"
// @Router /videos/{id} [delete]
func (h *VideoHandler) Delete(c *gin.Context) {
	videoID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	currentUserID, _ := middleware.GetCurrentUserID(c)

	if err := h.videoService.Delete(c.Request.Context(), videoID, currentUserID); err != nil {
		handleVideoError(c, err)
		return
	}

	response.OK(c, "Video deleted successfully", nil)
}

// TogglePublish 切换发布状态
// @Summary 切换视频发布状态
// @Tags 视频
// @Produce json
// @Security BearerAuth
// @Param id path string true "视频ID"
// @Success 200 {object} response.Response{data=dto.VideoInfo} "切换成功"
// @Failure 403 {object} response.ErrorResponse "没有权限"
// @Router /videos/{id}/toggle-publish [patch]
func (h *VideoHandler) TogglePublish(c *gin.Context) {
	videoID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	currentUserID, _ := middleware.GetCurrentUserID(c)

	info, err := h.videoService.TogglePublish(c.Request.Context(), videoID, currentUserID)
	if err != nil {
		handleVideoError(c, err)
		return
	}

	response.OK(c, "Publish status toggled successfully", info)
}

func handleVideoError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrVideoNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrVideoNoPermission):
		response.Forbidden(c, err.Error())
	case errors.Is(err, service.ErrNoFieldsToUpdate),
		errors.Is(err, service.ErrMissingAssetFile):
		response.BadRequest(c, err.Error())
	default:
		logger.Error("Video operation failed", zap.Error(err))
		response.InternalError(c, "Operation failed, please try again later")
	}
}
