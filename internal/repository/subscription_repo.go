package repository

import (
	"vidtube/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SubscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

// CreateIfAbsent 插入订阅行，已订阅则什么都不做
func (r *SubscriptionRepository) CreateIfAbsent(sub *model.Subscription) (bool, error) {
	result := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(sub)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Delete 删除订阅行，返回是否真的删掉了
func (r *SubscriptionRepository) Delete(subscriberID, channelID uuid.UUID) (bool, error) {
	result := r.db.Where("subscriber_id = ? AND channel_id = ?", subscriberID, channelID).
		Delete(&model.Subscription{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ListSubscribers 获取频道的订阅者列表（含订阅者公开信息，分页）
func (r *SubscriptionRepository) ListSubscribers(channelID uuid.UUID, skip, limit int) ([]model.Subscription, int64, error) {
	q := r.db.Model(&model.Subscription{}).Where("channel_id = ?", channelID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var subs []model.Subscription
	err := q.Preload("Subscriber").
		Order("created_at DESC").Offset(skip).Limit(limit).
		Find(&subs).Error
	if err != nil {
		return nil, 0, err
	}
	return subs, total, nil
}

// ListChannels 获取用户订阅的频道列表（含频道公开信息，分页）
func (r *SubscriptionRepository) ListChannels(subscriberID uuid.UUID, skip, limit int) ([]model.Subscription, int64, error) {
	q := r.db.Model(&model.Subscription{}).Where("subscriber_id = ?", subscriberID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var subs []model.Subscription
	err := q.Preload("Channel").
		Order("created_at DESC").Offset(skip).Limit(limit).
		Find(&subs).Error
	if err != nil {
		return nil, 0, err
	}
	return subs, total, nil
}

// CountByChannel 统计频道的订阅者数量
func (r *SubscriptionRepository) CountByChannel(channelID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&model.Subscription{}).
		Where("channel_id = ?", channelID).Count(&count).Error
	return count, err
}
