package dto

// RegisterRequest 用户注册请求
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=32"`
	Email    string `json:"email" binding:"required,email"`
	FullName string `json:"full_name" binding:"required,min=1,max=64"`
	Password string `json:"password" binding:"required,min=6,max=64"`
}

// LoginRequest 用户登录请求
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthData 登录成功响应数据
type AuthData struct {
	Token string   `json:"token"`
	User  UserInfo `json:"user"`
}
