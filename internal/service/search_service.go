package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"vidtube/internal/api/dto"
	infraES "vidtube/internal/infra/elasticsearch"
	"vidtube/internal/model"
	"vidtube/internal/repository"
	"vidtube/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type SearchService struct {
	videoRepo *repository.VideoRepository
}

func NewSearchService(videoRepo *repository.VideoRepository) *SearchService {
	return &SearchService{videoRepo: videoRepo}
}

// SearchVideos 搜索已发布视频（ES 优先，失败或未启用则降级到 DB）
func (s *SearchService) SearchVideos(q string, page, limit int) (*dto.VideoListData, error) {
	if !infraES.Enabled() {
		return s.searchFromDB(q, page, limit)
	}

	data, err := s.searchFromES(q, page, limit)
	if err != nil {
		logger.Warn("ES search failed, fallback to DB", zap.Error(err))
		return s.searchFromDB(q, page, limit)
	}
	return data, nil
}

func (s *SearchService) searchFromES(q string, page, limit int) (*dto.VideoListData, error) {
	query := buildVideoSearchQuery(q, page, limit)
	queryJSON, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	resp, err := infraES.Search(ctx, infraES.VideosIndexName(), bytes.NewReader(queryJSON))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return nil, fmt.Errorf("ES search error: %s", resp.String())
	}

	var esResp struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source struct {
					ID string `json:"id"`
				} `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&esResp); err != nil {
		return nil, err
	}

	videoIDs := make([]uuid.UUID, 0, len(esResp.Hits.Hits))
	for _, h := range esResp.Hits.Hits {
		id, err := uuid.Parse(h.Source.ID)
		if err != nil {
			logger.Warn("Skipping ES hit with malformed id", zap.String("id", h.Source.ID))
			continue
		}
		videoIDs = append(videoIDs, id)
	}

	total := esResp.Hits.Total.Value
	if len(videoIDs) == 0 {
		return buildVideoListData(nil, total, page, limit, true), nil
	}

	// ES 只存索引字段，命中后回表取完整记录并保持 ES 排序
	videos, err := s.videoRepo.GetByIDs(videoIDs)
	if err != nil {
		return nil, err
	}

	videoMap := make(map[uuid.UUID]*model.Video, len(videos))
	for i := range videos {
		videoMap[videos[i].ID] = &videos[i]
	}

	ordered := make([]model.Video, 0, len(videoIDs))
	for _, id := range videoIDs {
		if v, ok := videoMap[id]; ok {
			ordered = append(ordered, *v)
		}
	}

	return buildVideoListData(ordered, total, page, limit, true), nil
}

func buildVideoSearchQuery(q string, page, limit int) map[string]interface{} {
	boolQ := map[string]interface{}{
		"filter": []interface{}{
			map[string]interface{}{"term": map[string]interface{}{"is_published": true}},
		},
	}

	if strings.TrimSpace(q) != "" {
		boolQ["must"] = []interface{}{
			map[string]interface{}{
				"multi_match": map[string]interface{}{
					"query":    strings.TrimSpace(q),
					"fields":   []string{"title^3", "description"},
					"type":     "best_fields",
					"operator": "or",
				},
			},
		}
	}

	return map[string]interface{}{
		"query":   map[string]interface{}{"bool": boolQ},
		"_source": []string{"id"},
		"from":    (page - 1) * limit,
		"size":    limit,
		"sort": []interface{}{
			map[string]interface{}{"_score": map[string]string{"order": "desc"}},
			map[string]interface{}{"created_at": map[string]string{"order": "desc"}},
		},
	}
}

func (s *SearchService) searchFromDB(q string, page, limit int) (*dto.VideoListData, error) {
	skip := (page - 1) * limit

	var search *string
	if strings.TrimSpace(q) != "" {
		trimmed := strings.TrimSpace(q)
		search = &trimmed
	}

	videos, total, err := s.videoRepo.List(skip, limit, nil, true, search, "created_at", "desc", true)
	if err != nil {
		return nil, err
	}
	return buildVideoListData(videos, total, page, limit, true), nil
}

// SyncVideo 把视频同步到搜索索引（发布、更新、切换发布状态后调用）
// 记录已不存在时改为删除索引文档
func (s *SearchService) SyncVideo(videoID uuid.UUID) error {
	if !infraES.Enabled() {
		return nil
	}

	video, err := s.videoRepo.GetByIDWithOwner(videoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return s.RemoveVideo(videoID)
		}
		return err
	}

	doc := map[string]interface{}{
		"id":             video.ID.String(),
		"owner_id":       video.OwnerID.String(),
		"owner_username": video.Owner.Username,
		"title":          video.Title,
		"description":    video.Description,
		"is_published":   video.IsPublished,
		"views":          video.Views,
		"duration":       video.Duration,
		"created_at":     video.CreatedAt,
	}
	docJSON, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	resp, err := infraES.Index(ctx, infraES.VideosIndexName(), video.ID.String(), bytes.NewReader(docJSON))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return fmt.Errorf("ES index error: %s", resp.String())
	}
	return nil
}

// RemoveVideo 把视频从搜索索引删除，文档不存在不算失败
func (s *SearchService) RemoveVideo(videoID uuid.UUID) error {
	if !infraES.Enabled() {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	resp, err := infraES.Delete(ctx, infraES.VideosIndexName(), videoID.String())
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.IsError() && resp.StatusCode != 404 {
		return fmt.Errorf("ES delete error: %s", resp.String())
	}
	return nil
}
