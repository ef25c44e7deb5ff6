package repository

import (
	"vidtube/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LikeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) *LikeRepository {
	return &LikeRepository{db: db}
}

// CreateIfAbsent 插入点赞行，已存在则什么都不做
// 借助唯一索引 + ON CONFLICT DO NOTHING，插入即原子判定，不做先查后写
func (r *LikeRepository) CreateIfAbsent(like *model.Like) (bool, error) {
	result := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(like)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// DeleteByVideo 删除用户对视频的点赞行，返回是否真的删掉了
func (r *LikeRepository) DeleteByVideo(likedBy, videoID uuid.UUID) (bool, error) {
	result := r.db.Where("liked_by = ? AND video_id = ?", likedBy, videoID).
		Delete(&model.Like{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// DeleteByComment 删除用户对评论的点赞行
func (r *LikeRepository) DeleteByComment(likedBy, commentID uuid.UUID) (bool, error) {
	result := r.db.Where("liked_by = ? AND comment_id = ?", likedBy, commentID).
		Delete(&model.Like{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// DeleteByTweet 删除用户对推文的点赞行
func (r *LikeRepository) DeleteByTweet(likedBy, tweetID uuid.UUID) (bool, error) {
	result := r.db.Where("liked_by = ? AND tweet_id = ?", likedBy, tweetID).
		Delete(&model.Like{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// CountByVideo 统计视频的点赞数
func (r *LikeRepository) CountByVideo(videoID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&model.Like{}).Where("video_id = ?", videoID).Count(&count).Error
	return count, err
}

// ListLikedVideos 获取用户点赞过的视频（按点赞时间倒序，分页）
// 关联到仍然存在的视频，总数不含指向已删除视频的点赞行
func (r *LikeRepository) ListLikedVideos(likedBy uuid.UUID, skip, limit int) ([]model.Like, int64, error) {
	q := r.db.Model(&model.Like{}).
		Joins("JOIN videos ON videos.id = likes.video_id AND videos.deleted_at IS NULL").
		Where("likes.liked_by = ?", likedBy)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var likes []model.Like
	err := q.Select("likes.*").Order("likes.created_at DESC").Offset(skip).Limit(limit).
		Find(&likes).Error
	if err != nil {
		return nil, 0, err
	}
	return likes, total, nil
}

// CountForChannel 统计某频道收到的总点赞数
// 目标跨视频、评论、推文三种实体，按各自 owner 归属到频道
func (r *LikeRepository) CountForChannel(ownerID uuid.UUID) (int64, error) {
	var videoLikes, commentLikes, tweetLikes int64

	err := r.db.Model(&model.Like{}).
		Joins("JOIN videos ON videos.id = likes.video_id").
		Where("videos.owner_id = ? AND videos.deleted_at IS NULL", ownerID).
		Count(&videoLikes).Error
	if err != nil {
		return 0, err
	}

	err = r.db.Model(&model.Like{}).
		Joins("JOIN comments ON comments.id = likes.comment_id").
		Where("comments.owner_id = ?", ownerID).
		Count(&commentLikes).Error
	if err != nil {
		return 0, err
	}

	err = r.db.Model(&model.Like{}).
		Joins("JOIN tweets ON tweets.id = likes.tweet_id").
		Where("tweets.owner_id = ?", ownerID).
		Count(&tweetLikes).Error
	if err != nil {
		return 0, err
	}

	return videoLikes + commentLikes + tweetLikes, nil
}
