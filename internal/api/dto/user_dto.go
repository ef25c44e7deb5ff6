package dto

import (
	"time"

	"github.com/google/uuid"
)

// OwnerBrief 资源中嵌套的所有者简要信息
type OwnerBrief struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	FullName string    `json:"full_name"`
	Avatar   *string   `json:"avatar"`
}

// UserInfo 用户信息
type UserInfo struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Avatar    *string   `json:"avatar"`
	CreatedAt time.Time `json:"created_at"`
}
