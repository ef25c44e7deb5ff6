package repository

import (
	"vidtube/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TweetRepository struct {
	db *gorm.DB
}

func NewTweetRepository(db *gorm.DB) *TweetRepository {
	return &TweetRepository{db: db}
}

// Create 创建推文
func (r *TweetRepository) Create(tweet *model.Tweet) error {
	return r.db.Create(tweet).Error
}

// GetByID 根据 ID 获取推文
func (r *TweetRepository) GetByID(id uuid.UUID) (*model.Tweet, error) {
	var tweet model.Tweet
	if err := r.db.Where("id = ?", id).First(&tweet).Error; err != nil {
		return nil, err
	}
	return &tweet, nil
}

// Update 更新推文内容
func (r *TweetRepository) Update(id uuid.UUID, content string) (*model.Tweet, error) {
	result := r.db.Model(&model.Tweet{}).Where("id = ?", id).
		Update("content", content)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(id)
}

// Delete 删除推文
func (r *TweetRepository) Delete(id uuid.UUID) error {
	result := r.db.Where("id = ?", id).Delete(&model.Tweet{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListByOwner 获取用户的推文列表（含作者公开信息，分页）
func (r *TweetRepository) ListByOwner(ownerID uuid.UUID, skip, limit int) ([]model.Tweet, int64, error) {
	q := r.db.Model(&model.Tweet{}).Where("owner_id = ?", ownerID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var tweets []model.Tweet
	err := q.Preload("Owner").
		Order("created_at DESC").Offset(skip).Limit(limit).
		Find(&tweets).Error
	if err != nil {
		return nil, 0, err
	}
	return tweets, total, nil
}
