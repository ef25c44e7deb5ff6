package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Playlist 播放列表模型，名称在同一 owner 下唯一
type Playlist struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;comment:播放列表ID" json:"id"`
	OwnerID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_playlists_owner_name;index:idx_playlists_owner_id;comment:创建者ID" json:"owner_id"`
	Name        string    `gorm:"size:128;not null;uniqueIndex:uq_playlists_owner_name;comment:名称" json:"name"`
	Description string    `gorm:"type:text;not null;comment:描述" json:"description"`
	CreatedAt   time.Time `gorm:"autoCreateTime;comment:创建时间" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime;comment:更新时间" json:"updated_at"`

	// 关联关系
	Owner User            `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Items []PlaylistVideo `gorm:"foreignKey:PlaylistID" json:"items,omitempty"`
}

func (Playlist) TableName() string {
	return "playlists"
}

func (p *Playlist) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// PlaylistVideo 播放列表条目，Position 维持插入顺序
// (playlist_id, video_id) 唯一，同一视频不可重复加入
type PlaylistVideo struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;comment:条目ID" json:"id"`
	PlaylistID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_playlist_video;index:idx_playlist_videos_playlist_id;comment:播放列表ID" json:"playlist_id"`
	VideoID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_playlist_video;comment:视频ID" json:"video_id"`
	Position   int       `gorm:"not null;comment:排序位置" json:"position"`
	CreatedAt  time.Time `gorm:"autoCreateTime;comment:加入时间" json:"created_at"`

	Video Video `gorm:"foreignKey:VideoID" json:"video,omitempty"`
}

func (PlaylistVideo) TableName() string {
	return "playlist_videos"
}

func (pv *PlaylistVideo) BeforeCreate(*gorm.DB) error {
	if pv.ID == uuid.Nil {
		pv.ID = uuid.New()
	}
	return nil
}
