package dto

// RegisterRequest HTTP层注册请求
// 说明：HTTP层的DTO，包含参数验证tag
// 密码强度（大小写字母+数字+特殊字符）由领域服务校验，这里只卡长度
type RegisterRequest struct {
	Username        string `json:"username" binding:"required,min=3,max=50" example:"alice"`
	FullName        string `json:"full_name" binding:"required,min=2,max=100" example:"Alice Zhang"`
	Email           string `json:"email" binding:"required,email" example:"alice@example.com"`
	Password        string `json:"password" binding:"required,min=8,max=72" example:"Passw0rd!"`
	ShippingAddress string `json:"shipping_address" binding:"omitempty,min=5,max=200" example:"幸福路100号3单元502"`
}

// LoginRequest HTTP层登录请求
// account同时接受用户名和邮箱
type LoginRequest struct {
	Account  string `json:"account" binding:"required" example:"alice"`
	Password string `json:"password" binding:"required" example:"Passw0rd!"`
}

// RefreshTokenRequest 刷新Token请求
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// UpdateProfileRequest 更新资料请求
// 三个字段都可选，nil表示不修改；传空串会被领域校验拒绝
type UpdateProfileRequest struct {
	FullName        *string `json:"full_name" binding:"omitempty,min=2,max=100"`
	Email           *string `json:"email" binding:"omitempty,email"`
	ShippingAddress *string `json:"shipping_address" binding:"omitempty,min=5,max=200"`
}

// UpdatePasswordRequest 修改密码请求
type UpdatePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8,max=72"`
}

// UserResponse 用户响应（不包含密码）
type UserResponse struct {
	ID              string `json:"id" example:"4c2f7e0a-92d5-4f4e-8b1a-6a90f9f8e201"`
	Username        string `json:"username" example:"alice"`
	FullName        string `json:"full_name" example:"Alice Zhang"`
	Email           string `json:"email" example:"alice@example.com"`
	ShippingAddress string `json:"shipping_address" example:"幸福路100号3单元502"`
}

// UserInfo 登录响应里的用户信息
type UserInfo struct {
	ID              string `json:"id"`
	Username        string `json:"username"`
	FullName        string `json:"full_name"`
	Email           string `json:"email"`
	ShippingAddress string `json:"shipping_address"`
}

// LoginResponse HTTP层登录响应
type LoginResponse struct {
	User         UserInfo `json:"user"`
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
	ExpiresIn    int64    `json:"expires_in"` // Access Token过期时间（秒）
}
