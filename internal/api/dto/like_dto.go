package dto

// ToggleData 点赞/订阅切换结果
// State 只会是资源对应的两种状态之一，例如 "liked" / "unliked"
type ToggleData struct {
	State string `json:"state"`
}
