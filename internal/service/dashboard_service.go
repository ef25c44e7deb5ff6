package service

import (
	"context"
	"encoding/json"
	"time"

	"vidtube/internal/api/dto"
	"vidtube/internal/repository"
	"vidtube/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const statsCacheTTL = 60 * time.Second

// StatsCache 频道统计的 Redis 缓存，读写失败只降级不报错
type StatsCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewStatsCache(rdb *redis.Client) *StatsCache {
	return &StatsCache{rdb: rdb, ttl: statsCacheTTL}
}

func (c *StatsCache) key(ownerID uuid.UUID) string {
	return "vidtube:dashboard:stats:" + ownerID.String()
}

// Get 读取缓存的统计数据，未命中或反序列化失败返回 false
func (c *StatsCache) Get(ctx context.Context, ownerID uuid.UUID) (*dto.ChannelStatsData, bool) {
	raw, err := c.rdb.Get(ctx, c.key(ownerID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.Warn("Failed to read stats cache", zap.Error(err))
		}
		return nil, false
	}

	var stats dto.ChannelStatsData
	if err := json.Unmarshal(raw, &stats); err != nil {
		logger.Warn("Failed to decode stats cache", zap.Error(err))
		return nil, false
	}
	return &stats, true
}

// Set 写入统计数据缓存
func (c *StatsCache) Set(ctx context.Context, ownerID uuid.UUID, stats *dto.ChannelStatsData) {
	raw, err := json.Marshal(stats)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, c.key(ownerID), raw, c.ttl).Err(); err != nil {
		logger.Warn("Failed to write stats cache", zap.Error(err))
	}
}

// Invalidate 视频发生变更时让缓存立即失效
func (c *StatsCache) Invalidate(ctx context.Context, ownerID uuid.UUID) {
	if err := c.rdb.Del(ctx, c.key(ownerID)).Err(); err != nil {
		logger.Warn("Failed to invalidate stats cache", zap.Error(err))
	}
}

type DashboardService struct {
	videoRepo *repository.VideoRepository
	subRepo   *repository.SubscriptionRepository
	likeRepo  *repository.LikeRepository
	cache     *StatsCache // 可为 nil（未启用 Redis 时）
}

func NewDashboardService(videoRepo *repository.VideoRepository, subRepo *repository.SubscriptionRepository, likeRepo *repository.LikeRepository, cache *StatsCache) *DashboardService {
	return &DashboardService{
		videoRepo: videoRepo,
		subRepo:   subRepo,
		likeRepo:  likeRepo,
		cache:     cache,
	}
}

// GetStats 获取频道统计（视频数、总播放量、订阅者数、获赞数）
func (s *DashboardService) GetStats(ctx context.Context, ownerID uuid.UUID) (*dto.ChannelStatsData, error) {
	if s.cache != nil {
		if stats, ok := s.cache.Get(ctx, ownerID); ok {
			return stats, nil
		}
	}

	totalVideos, totalViews, err := s.videoRepo.ChannelStats(ownerID)
	if err != nil {
		return nil, err
	}
	totalSubscribers, err := s.subRepo.CountByChannel(ownerID)
	if err != nil {
		return nil, err
	}
	totalLikes, err := s.likeRepo.CountForChannel(ownerID)
	if err != nil {
		return nil, err
	}

	stats := &dto.ChannelStatsData{
		TotalVideos:      totalVideos,
		TotalViews:       totalViews,
		TotalSubscribers: totalSubscribers,
		TotalLikes:       totalLikes,
	}

	if s.cache != nil {
		s.cache.Set(ctx, ownerID, stats)
	}
	return stats, nil
}

// GetChannelVideos 获取频道的全部视频（含未发布，分页）
func (s *DashboardService) GetChannelVideos(ownerID uuid.UUID, page, limit int) (*dto.VideoListData, error) {
	skip := (page - 1) * limit
	videos, total, err := s.videoRepo.List(skip, limit, &ownerID, false, nil, "created_at", "desc", false)
	if err != nil {
		return nil, err
	}
	return buildVideoListData(videos, total, page, limit, false), nil
}
