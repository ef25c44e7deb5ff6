package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Video 视频模型
// 删除流程先软删除（DeletedAt），远端素材清理完成后再物理删除，
// 避免出现素材已删但记录仍对外可见的中间状态
type Video struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey;comment:视频标识" json:"id"`
	OwnerID      uuid.UUID      `gorm:"type:uuid;not null;index:idx_videos_owner_id;comment:视频作者ID" json:"owner_id"`
	VideoFileURL string         `gorm:"size:500;not null;comment:视频文件地址" json:"video_file"`
	ThumbnailURL string         `gorm:"size:500;not null;comment:封面地址" json:"thumbnail"`
	Title        string         `gorm:"size:200;not null;comment:视频标题" json:"title"`
	Description  string         `gorm:"type:text;comment:视频描述" json:"description"`
	Duration     float64        `gorm:"default:0;comment:视频时长（秒）" json:"duration"`
	Views        int64          `gorm:"default:0;comment:播放量" json:"views"`
	IsPublished  bool           `gorm:"default:true;index:idx_videos_is_published;comment:是否发布" json:"is_published"`
	CreatedAt    time.Time      `gorm:"autoCreateTime;index:idx_videos_created_at;comment:创建时间" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime;comment:更新时间" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// 关联关系
	Owner User `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
}

func (Video) TableName() string {
	return "videos"
}

func (v *Video) BeforeCreate(*gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}
