package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Comment 评论模型
type Comment struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;comment:评论ID" json:"id"`
	VideoID   uuid.UUID `gorm:"type:uuid;not null;index:idx_comments_video_id;comment:被评论视频ID" json:"video_id"`
	OwnerID   uuid.UUID `gorm:"type:uuid;not null;index:idx_comments_owner_id;comment:评论用户ID" json:"owner_id"`
	Content   string    `gorm:"type:text;not null;comment:评论内容" json:"content"`
	CreatedAt time.Time `gorm:"autoCreateTime;index:idx_comments_created_at;comment:评论时间" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;comment:更新时间" json:"updated_at"`

	// 关联关系
	Owner User  `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Video Video `gorm:"foreignKey:VideoID" json:"video,omitempty"`
}

func (Comment) TableName() string {
	return "comments"
}

func (c *Comment) BeforeCreate(*gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
