package dto

import (
	"time"

	"github.com/google/uuid"
)

// TweetCreateRequest 发布动态请求
type TweetCreateRequest struct {
	Content string `json:"content" binding:"required,min=1,max=500"`
}

// TweetUpdateRequest 修改动态请求
type TweetUpdateRequest struct {
	Content string `json:"content" binding:"required,min=1,max=500"`
}

// TweetInfo 动态详情
type TweetInfo struct {
	ID        uuid.UUID   `json:"id"`
	OwnerID   uuid.UUID   `json:"owner_id"`
	Content   string      `json:"content"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
	Owner     *OwnerBrief `json:"owner,omitempty"`
}

// TweetListData 动态列表响应数据
type TweetListData struct {
	Tweets     []TweetInfo `json:"tweets"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	Limit      int         `json:"limit"`
	TotalPages int64       `json:"total_pages"`
}
