package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tweet 推文（频道动态）模型
type Tweet struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;comment:推文ID" json:"id"`
	OwnerID   uuid.UUID `gorm:"type:uuid;not null;index:idx_tweets_owner_id;comment:作者ID" json:"owner_id"`
	Content   string    `gorm:"type:text;not null;comment:内容" json:"content"`
	CreatedAt time.Time `gorm:"autoCreateTime;index:idx_tweets_created_at;comment:发布时间" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;comment:更新时间" json:"updated_at"`

	// 关联关系
	Owner User `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
}

func (Tweet) TableName() string {
	return "tweets"
}

func (t *Tweet) BeforeCreate(*gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
