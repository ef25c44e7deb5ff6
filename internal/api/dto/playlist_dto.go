package dto

import (
	"time"

	"github.com/google/uuid"
)

// PlaylistCreateRequest 创建播放列表请求
type PlaylistCreateRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Description string `json:"description" binding:"omitempty,max=1000"`
}

// PlaylistUpdateRequest 更新播放列表请求
type PlaylistUpdateRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=100"`
	Description *string `json:"description" binding:"omitempty,max=1000"`
}

// PlaylistInfo 播放列表详情，Videos 按列表内顺序排列
type PlaylistInfo struct {
	ID          uuid.UUID   `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Owner       *OwnerBrief `json:"owner,omitempty"`
	Videos      []VideoInfo `json:"videos"`
	VideoCount  int         `json:"video_count"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// PlaylistListData 播放列表集合响应数据
type PlaylistListData struct {
	Playlists []PlaylistInfo `json:"playlists"`
	Total     int64          `json:"total"`
}
