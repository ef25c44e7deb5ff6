package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Subscription 订阅关系模型，行存在即"已订阅"
type Subscription struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;comment:订阅关系ID" json:"id"`
	SubscriberID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_subscriber_channel;index:idx_subscriptions_subscriber_id;comment:订阅者ID" json:"subscriber_id"`
	ChannelID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_subscriber_channel;index:idx_subscriptions_channel_id;comment:频道（被订阅用户）ID" json:"channel_id"`
	CreatedAt    time.Time `gorm:"autoCreateTime;comment:订阅时间" json:"created_at"`

	// 关联关系
	Subscriber User `gorm:"foreignKey:SubscriberID" json:"subscriber,omitempty"`
	Channel    User `gorm:"foreignKey:ChannelID" json:"channel,omitempty"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}

func (s *Subscription) BeforeCreate(*gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
