package repository

import (
	"vidtube/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PlaylistRepository struct {
	db *gorm.DB
}

func NewPlaylistRepository(db *gorm.DB) *PlaylistRepository {
	return &PlaylistRepository{db: db}
}

// Create 创建播放列表
func (r *PlaylistRepository) Create(playlist *model.Playlist) error {
	return r.db.Create(playlist).Error
}

// GetByID 根据 ID 获取播放列表（不含条目）
func (r *PlaylistRepository) GetByID(id uuid.UUID) (*model.Playlist, error) {
	var playlist model.Playlist
	if err := r.db.Where("id = ?", id).First(&playlist).Error; err != nil {
		return nil, err
	}
	return &playlist, nil
}

// GetByIDWithItems 根据 ID 获取播放列表，条目按位置排序并带上视频与视频作者
func (r *PlaylistRepository) GetByIDWithItems(id uuid.UUID) (*model.Playlist, error) {
	var playlist model.Playlist
	err := r.db.
		Preload("Owner").
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("playlist_videos.position ASC")
		}).
		Preload("Items.Video").
		Preload("Items.Video.Owner").
		Where("id = ?", id).
		First(&playlist).Error
	if err != nil {
		return nil, err
	}
	return &playlist, nil
}

// ListByOwner 获取用户的全部播放列表（含条目与视频）
func (r *PlaylistRepository) ListByOwner(ownerID uuid.UUID) ([]model.Playlist, error) {
	var playlists []model.Playlist
	err := r.db.
		Preload("Owner").
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("playlist_videos.position ASC")
		}).
		Preload("Items.Video").
		Preload("Items.Video.Owner").
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&playlists).Error
	return playlists, err
}

// ExistsByOwnerAndName 检查同名播放列表是否已存在
func (r *PlaylistRepository) ExistsByOwnerAndName(ownerID uuid.UUID, name string) (bool, error) {
	var count int64
	err := r.db.Model(&model.Playlist{}).
		Where("owner_id = ? AND name = ?", ownerID, name).Count(&count).Error
	return count > 0, err
}

// Update 更新名称与描述
func (r *PlaylistRepository) Update(id uuid.UUID, updates map[string]interface{}) (*model.Playlist, error) {
	result := r.db.Model(&model.Playlist{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(id)
}

// Delete 删除播放列表及其全部条目
func (r *PlaylistRepository) Delete(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("playlist_id = ?", id).Delete(&model.PlaylistVideo{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&model.Playlist{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// ReplaceVideos 以新的完整有序序列覆盖播放列表条目
// 成员变更在服务层算出整个序列后整体落库，不做局部位置更新
func (r *PlaylistRepository) ReplaceVideos(playlistID uuid.UUID, videoIDs []uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("playlist_id = ?", playlistID).Delete(&model.PlaylistVideo{}).Error; err != nil {
			return err
		}
		if len(videoIDs) == 0 {
			return nil
		}
		items := make([]model.PlaylistVideo, 0, len(videoIDs))
		for i, vid := range videoIDs {
			items = append(items, model.PlaylistVideo{
				PlaylistID: playlistID,
				VideoID:    vid,
				Position:   i,
			})
		}
		return tx.Create(&items).Error
	})
}
