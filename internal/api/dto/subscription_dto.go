package dto

import "time"

// SubscriptionInfo 一条订阅关系
// Subscriber / Channel 按接口方向二选一填充
type SubscriptionInfo struct {
	Subscriber   *OwnerBrief `json:"subscriber,omitempty"`
	Channel      *OwnerBrief `json:"channel,omitempty"`
	SubscribedAt time.Time   `json:"subscribed_at"`
}

// SubscriptionListData 订阅关系列表响应数据
type SubscriptionListData struct {
	Subscriptions []SubscriptionInfo `json:"subscriptions"`
	Total         int64              `json:"total"`
	Page          int                `json:"page"`
	Limit         int                `json:"limit"`
	TotalPages    int64              `json:"total_pages"`
}
