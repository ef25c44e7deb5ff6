package service

import (
	"context"
	"errors"
	"fmt"
	"os"

	"vidtube/internal/api/dto"
	"vidtube/internal/asset"
	"vidtube/internal/model"
	"vidtube/internal/repository"
	"vidtube/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrVideoNotFound     = errors.New("video not found")
	ErrVideoNoPermission = errors.New("you do not have permission to modify this video")
	ErrNoFieldsToUpdate  = errors.New("no fields to update")
	ErrMissingAssetFile  = errors.New("video file and thumbnail are both required")
)

// AssetStore 远端素材存储，生产实现为 internal/asset.Gateway
type AssetStore interface {
	Upload(ctx context.Context, localPath string) (*asset.UploadResult, error)
	Delete(ctx context.Context, fileURL string) error
}

// ViewEventPublisher 播放事件发布方，生产实现为 infra/kafka.ViewPublisher
type ViewEventPublisher interface {
	PublishView(ctx context.Context, videoID uuid.UUID) error
}

// VideoIndexer 搜索索引同步方，生产实现为 SearchService
type VideoIndexer interface {
	SyncVideo(videoID uuid.UUID) error
	RemoveVideo(videoID uuid.UUID) error
}

// StatsInvalidator 频道统计缓存失效方，生产实现为 StatsCache
type StatsInvalidator interface {
	Invalidate(ctx context.Context, ownerID uuid.UUID)
}

type VideoService struct {
	videoRepo *repository.VideoRepository
	assets    AssetStore
	views     ViewEventPublisher // 可为 nil（未启用 Kafka 时）
	indexer   VideoIndexer       // 可为 nil（未启用 ES 时）
	stats     StatsInvalidator   // 可为 nil（未启用 Redis 时）
}

func NewVideoService(videoRepo *repository.VideoRepository, assets AssetStore, views ViewEventPublisher, indexer VideoIndexer, stats StatsInvalidator) *VideoService {
	return &VideoService{
		videoRepo: videoRepo,
		assets:    assets,
		views:     views,
		indexer:   indexer,
		stats:     stats,
	}
}

// Publish 发布视频：上传视频文件与封面到素材存储后落库
// 任一上传失败则整体失败，已上传的素材回滚删除
func (s *VideoService) Publish(ctx context.Context, ownerID uuid.UUID, req *dto.VideoPublishRequest, videoPath, thumbnailPath string) (*dto.VideoInfo, error) {
	if videoPath == "" || thumbnailPath == "" {
		return nil, ErrMissingAssetFile
	}

	videoRes, err := s.assets.Upload(ctx, videoPath)
	if err != nil {
		// 封面暂存文件尚未交给网关，在此清理
		os.Remove(thumbnailPath)
		return nil, fmt.Errorf("failed to upload video file: %w", err)
	}

	thumbRes, err := s.assets.Upload(ctx, thumbnailPath)
	if err != nil {
		s.deleteAsset(ctx, videoRes.URL)
		return nil, fmt.Errorf("failed to upload thumbnail: %w", err)
	}

	video := &model.Video{
		OwnerID:      ownerID,
		VideoFileURL: videoRes.URL,
		ThumbnailURL: thumbRes.URL,
		Title:        req.Title,
		Description:  req.Description,
		Duration:     videoRes.Duration,
		IsPublished:  true,
	}
	if err := s.videoRepo.Create(video); err != nil {
		s.deleteAsset(ctx, videoRes.URL)
		s.deleteAsset(ctx, thumbRes.URL)
		return nil, err
	}

	s.syncIndex(video.ID)
	s.invalidateStats(ctx, ownerID)

	logger.Info("Video published",
		zap.String("video_id", video.ID.String()),
		zap.String("owner_id", ownerID.String()),
	)

	return toVideoInfo(video, false), nil
}

// GetDetail 获取视频详情，已发布视频会发出一条播放事件
func (s *VideoService) GetDetail(ctx context.Context, videoID uuid.UUID) (*dto.VideoInfo, error) {
	video, err := s.videoRepo.GetByIDWithOwner(videoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}

	if video.IsPublished && s.views != nil {
		if err := s.views.PublishView(ctx, videoID); err != nil {
			logger.Warn("Failed to publish view event",
				zap.String("video_id", videoID.String()), zap.Error(err))
		}
	}

	return toVideoInfo(video, true), nil
}

// Update 更新视频信息（仅作者本人），可携带替换封面
// 旧封面先删再传新封面，旧素材删除失败则中止更新
func (s *VideoService) Update(ctx context.Context, videoID, currentUserID uuid.UUID, req *dto.VideoUpdateRequest, thumbnailPath string) (*dto.VideoInfo, error) {
	video, err := s.ownedVideo(videoID, currentUserID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}

	if thumbnailPath != "" {
		if err := s.assets.Delete(ctx, video.ThumbnailURL); err != nil {
			return nil, fmt.Errorf("failed to delete previous thumbnail: %w", err)
		}
		thumbRes, err := s.assets.Upload(ctx, thumbnailPath)
		if err != nil {
			return nil, fmt.Errorf("failed to upload thumbnail: %w", err)
		}
		updates["thumbnail_url"] = thumbRes.URL
	}

	if len(updates) == 0 {
		return nil, ErrNoFieldsToUpdate
	}

	updated, err := s.videoRepo.Update(videoID, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}

	s.syncIndex(videoID)

	return toVideoInfo(updated, false), nil
}

// Delete 删除视频（仅作者本人）
// 先软删除让记录对外不可见，再清理远端素材，最后物理删除；
// 素材清理失败时记录停留在软删除状态，不会出现素材丢失但记录仍可见的情况
func (s *VideoService) Delete(ctx context.Context, videoID, currentUserID uuid.UUID) error {
	video, err := s.ownedVideo(videoID, currentUserID)
	if err != nil {
		return err
	}

	if err := s.videoRepo.SoftDelete(videoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrVideoNotFound
		}
		return err
	}

	if err := s.assets.Delete(ctx, video.VideoFileURL); err != nil {
		return fmt.Errorf("failed to delete video file asset: %w", err)
	}
	if err := s.assets.Delete(ctx, video.ThumbnailURL); err != nil {
		return fmt.Errorf("failed to delete thumbnail asset: %w", err)
	}

	if err := s.videoRepo.HardDelete(videoID); err != nil {
		return err
	}

	if s.indexer != nil {
		if err := s.indexer.RemoveVideo(videoID); err != nil {
			logger.Warn("Failed to remove video from search index",
				zap.String("video_id", videoID.String()), zap.Error(err))
		}
	}
	s.invalidateStats(ctx, video.OwnerID)

	logger.Info("Video deleted",
		zap.String("video_id", videoID.String()),
		zap.String("owner_id", video.OwnerID.String()),
	)

	return nil
}

// TogglePublish 切换发布状态（仅作者本人）
func (s *VideoService) TogglePublish(ctx context.Context, videoID, currentUserID uuid.UUID) (*dto.VideoInfo, error) {
	video, err := s.ownedVideo(videoID, currentUserID)
	if err != nil {
		return nil, err
	}

	updated, err := s.videoRepo.Update(videoID, map[string]interface{}{
		"is_published": !video.IsPublished,
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}

	s.syncIndex(videoID)
	s.invalidateStats(ctx, video.OwnerID)

	return toVideoInfo(updated, false), nil
}

// List 获取已发布视频列表（分页、子串过滤、排序、可按作者过滤）
func (s *VideoService) List(page, limit int, query string, sortBy, sortType string, ownerID *uuid.UUID) (*dto.VideoListData, error) {
	skip := (page - 1) * limit

	var search *string
	if query != "" {
		search = &query
	}

	videos, total, err := s.videoRepo.List(skip, limit, ownerID, true, search, sortBy, sortType, true)
	if err != nil {
		return nil, err
	}
	return buildVideoListData(videos, total, page, limit, true), nil
}

// ownedVideo 获取视频并校验请求者是作者本人
func (s *VideoService) ownedVideo(videoID, currentUserID uuid.UUID) (*model.Video, error) {
	video, err := s.videoRepo.GetByID(videoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}
	if video.OwnerID != currentUserID {
		return nil, ErrVideoNoPermission
	}
	return video, nil
}

func (s *VideoService) deleteAsset(ctx context.Context, fileURL string) {
	if err := s.assets.Delete(ctx, fileURL); err != nil {
		logger.Warn("Failed to roll back uploaded asset",
			zap.String("url", fileURL), zap.Error(err))
	}
}

func (s *VideoService) syncIndex(videoID uuid.UUID) {
	if s.indexer == nil {
		return
	}
	if err := s.indexer.SyncVideo(videoID); err != nil {
		logger.Warn("Failed to sync video to search index",
			zap.String("video_id", videoID.String()), zap.Error(err))
	}
}

func (s *VideoService) invalidateStats(ctx context.Context, ownerID uuid.UUID) {
	if s.stats != nil {
		s.stats.Invalidate(ctx, ownerID)
	}
}

// toOwnerBrief 提取用户的公开信息，未加载时返回 nil
func toOwnerBrief(user *model.User) *dto.OwnerBrief {
	if user == nil || user.ID == uuid.Nil {
		return nil
	}
	return &dto.OwnerBrief{
		ID:       user.ID,
		Username: user.Username,
		FullName: user.FullName,
		Avatar:   user.Avatar,
	}
}

// toVideoInfo 将 model.Video 转换为 dto.VideoInfo
func toVideoInfo(video *model.Video, includeOwner bool) *dto.VideoInfo {
	info := &dto.VideoInfo{
		ID:          video.ID,
		OwnerID:     video.OwnerID,
		VideoFile:   video.VideoFileURL,
		Thumbnail:   video.ThumbnailURL,
		Title:       video.Title,
		Description: video.Description,
		Duration:    video.Duration,
		Views:       video.Views,
		IsPublished: video.IsPublished,
		CreatedAt:   video.CreatedAt,
		UpdatedAt:   video.UpdatedAt,
	}
	if includeOwner {
		info.Owner = toOwnerBrief(&video.Owner)
	}
	return info
}

func buildVideoListData(videos []model.Video, total int64, page, limit int, includeOwner bool) *dto.VideoListData {
	items := make([]dto.VideoInfo, 0, len(videos))
	for i := range videos {
		items = append(items, *toVideoInfo(&videos[i], includeOwner))
	}

	totalPages := (total + int64(limit) - 1) / int64(limit)

	return &dto.VideoListData{
		Videos:     items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}
}
