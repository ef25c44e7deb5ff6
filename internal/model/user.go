package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User 用户模型
// 其他实体通过 OwnerID 引用用户，作为所有权判断的唯一依据
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;comment:用户标识" json:"id"`
	Username  string    `gorm:"size:64;not null;uniqueIndex;comment:用户名" json:"username"`
	Email     string    `gorm:"size:255;not null;uniqueIndex;comment:邮箱" json:"email"`
	FullName  string    `gorm:"size:128;not null;comment:昵称" json:"full_name"`
	Avatar    *string   `gorm:"size:500;comment:头像地址" json:"avatar"`
	Password  string    `gorm:"size:255;not null;comment:密码哈希" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime;comment:注册时间" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;comment:更新时间" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
