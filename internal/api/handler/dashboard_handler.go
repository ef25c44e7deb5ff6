package handler

import (
	"vidtube/internal/api/middleware"
	"vidtube/internal/api/response"
	"vidtube/internal/service"
	"vidtube/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type DashboardHandler struct {
	dashboardService *service.DashboardService
}

func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetStats 获取当前频道统计
// @Summary 获取频道统计
// @Description 当前登录用户频道的视频数、总播放量、订阅者数与获赞数
// @Tags 控制台
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=dto.ChannelStatsData} "获取成功"
// @Failure 401 {object} response.ErrorResponse "未授权"
// @Router /dashboard/stats [get]
func (h *DashboardHandler) GetStats(c *gin.Context) {
	currentUserID, _ := middleware.GetCurrentUserID(c)

	stats, err := h.dashboardService.GetStats(c.Request.Context(), currentUserID)
	if err != nil {
		logger.Error("Get channel stats failed", zap.Error(err))
		response.InternalError(c, "Failed to fetch channel stats")
		return
	}

	response.OK(c, "Channel stats fetched successfully", stats)
}

// GetVideos 获取当前频道的全部视频（含未发布）
// @Summary 获取频道视频列表
// @Tags 控制台
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码"
// @Param limit query int false "每页条数"
// @Success 200 {object} response.Response{data=dto.VideoListData} "获取成功"
// @Router /dashboard/videos [get]
func (h *DashboardHandler) GetVideos(c *gin.Context) {
	currentUserID, _ := middleware.GetCurrentUserID(c)
	page, limit := parsePagination(c)

	data, err := h.dashboardService.GetChannelVideos(currentUserID, page, limit)
	if err != nil {
		logger.Error("Get channel videos failed", zap.Error(err))
		response.InternalError(c, "Failed to fetch channel videos")
		return
	}

	response.OK(c, "Channel videos fetched successfully", data)
}
