package repository

import (
	"strings"

	"vidtube/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// 列表接口允许的排序字段，挡掉任意列名注入
var videoSortColumns = map[string]bool{
	"created_at": true,
	"views":      true,
	"duration":   true,
	"title":      true,
}

type VideoRepository struct {
	db *gorm.DB
}

func NewVideoRepository(db *gorm.DB) *VideoRepository {
	return &VideoRepository{db: db}
}

// Create 创建视频记录
func (r *VideoRepository) Create(video *model.Video) error {
	return r.db.Create(video).Error
}

// GetByID 根据 ID 获取视频（软删除的记录不可见）
func (r *VideoRepository) GetByID(id uuid.UUID) (*model.Video, error) {
	var video model.Video
	if err := r.db.Where("id = ?", id).First(&video).Error; err != nil {
		return nil, err
	}
	return &video, nil
}

// GetByIDWithOwner 根据 ID 获取视频（含作者公开信息）
func (r *VideoRepository) GetByIDWithOwner(id uuid.UUID) (*model.Video, error) {
	var video model.Video
	err := r.db.Preload("Owner").Where("id = ?", id).First(&video).Error
	if err != nil {
		return nil, err
	}
	return &video, nil
}

// GetByIDs 批量获取视频（含作者），用于 ES 命中结果回表
func (r *VideoRepository) GetByIDs(ids []uuid.UUID) ([]model.Video, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var videos []model.Video
	err := r.db.Preload("Owner").Where("id IN ?", ids).Find(&videos).Error
	return videos, err
}

// Update 更新视频字段
func (r *VideoRepository) Update(id uuid.UUID, updates map[string]interface{}) (*model.Video, error) {
	result := r.db.Model(&model.Video{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(id)
}

// SoftDelete 软删除，远端素材清理前先让记录对外不可见
func (r *VideoRepository) SoftDelete(id uuid.UUID) error {
	result := r.db.Where("id = ?", id).Delete(&model.Video{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// HardDelete 物理删除（素材清理完成后调用）
func (r *VideoRepository) HardDelete(id uuid.UUID) error {
	return r.db.Unscoped().Where("id = ?", id).Delete(&model.Video{}).Error
}

// List 视频列表查询（分页、子串过滤、排序）
// query 对标题和描述做大小写不敏感的子串匹配
func (r *VideoRepository) List(skip, limit int, ownerID *uuid.UUID, publishedOnly bool, query *string, sortBy, sortType string, withOwner bool) ([]model.Video, int64, error) {
	q := r.db.Model(&model.Video{})

	if ownerID != nil {
		q = q.Where("owner_id = ?", *ownerID)
	}
	if publishedOnly {
		q = q.Where("is_published = ?", true)
	}
	if query != nil && *query != "" {
		pattern := "%" + strings.ToLower(*query) + "%"
		q = q.Where("(LOWER(title) LIKE ? OR LOWER(description) LIKE ?)", pattern, pattern)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if !videoSortColumns[sortBy] {
		sortBy = "created_at"
	}
	direction := "DESC"
	if strings.EqualFold(sortType, "asc") {
		direction = "ASC"
	}

	findQuery := q.Order(sortBy + " " + direction).Offset(skip).Limit(limit)
	if withOwner {
		findQuery = findQuery.Preload("Owner")
	}

	var videos []model.Video
	if err := findQuery.Find(&videos).Error; err != nil {
		return nil, 0, err
	}

	return videos, total, nil
}

// IncrementViews 播放量累加（worker 消费播放事件时调用）
func (r *VideoRepository) IncrementViews(id uuid.UUID, delta int64) error {
	result := r.db.Model(&model.Video{}).Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + ?", delta))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ChannelStats 频道的视频数与总播放量（含未发布视频）
func (r *VideoRepository) ChannelStats(ownerID uuid.UUID) (totalVideos, totalViews int64, err error) {
	type row struct {
		TotalVideos int64
		TotalViews  int64
	}
	var res row
	err = r.db.Model(&model.Video{}).
		Select("COUNT(*) AS total_videos, COALESCE(SUM(views), 0) AS total_views").
		Where("owner_id = ?", ownerID).
		Scan(&res).Error
	return res.TotalVideos, res.TotalViews, err
}
