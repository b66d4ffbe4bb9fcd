package user

import (
	"context"

	"github.com/xiebiao/furnistore/internal/domain/user"
)

// GetProfileUseCase 查询用户资料用例
type GetProfileUseCase struct {
	userService user.Service
}

// NewGetProfileUseCase 创建查询资料用例
func NewGetProfileUseCase(userService user.Service) *GetProfileUseCase {
	return &GetProfileUseCase{userService: userService}
}

// Execute 执行查询
func (uc *GetProfileUseCase) Execute(ctx context.Context, userID string) (*ProfileResponse, error) {
	u, err := uc.userService.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toProfileResponse(u), nil
}

// UpdateProfileUseCase 更新用户资料用例
// 设计说明：
// 1. 三个字段都是可选的，指针为nil表示不修改
// 2. 字段校验在领域实体的Set方法里，应用层只做编排
type UpdateProfileUseCase struct {
	userService user.Service
}

// NewUpdateProfileUseCase 创建更新资料用例
func NewUpdateProfileUseCase(userService user.Service) *UpdateProfileUseCase {
	return &UpdateProfileUseCase{userService: userService}
}

// Execute 执行更新
func (uc *UpdateProfileUseCase) Execute(ctx context.Context, req UpdateProfileRequest) (*ProfileResponse, error) {
	u, err := uc.userService.UpdateProfile(ctx, req.UserID, user.ProfileUpdate{
		FullName:        req.FullName,
		Email:           req.Email,
		ShippingAddress: req.ShippingAddress,
	})
	if err != nil {
		return nil, err
	}
	return toProfileResponse(u), nil
}

// UpdatePasswordUseCase 修改密码用例
type UpdatePasswordUseCase struct {
	userService user.Service
}

// NewUpdatePasswordUseCase 创建修改密码用例
func NewUpdatePasswordUseCase(userService user.Service) *UpdatePasswordUseCase {
	return &UpdatePasswordUseCase{userService: userService}
}

// Execute 执行修改密码
// 必须提供当前密码，防止拿到Token的人直接改密码
func (uc *UpdatePasswordUseCase) Execute(ctx context.Context, req UpdatePasswordRequest) error {
	return uc.userService.UpdatePassword(ctx, req.UserID, req.CurrentPassword, req.NewPassword)
}

// =========================================
// 应用层DTO
// =========================================

// UpdateProfileRequest 更新资料请求
type UpdateProfileRequest struct {
	UserID          string
	FullName        *string
	Email           *string
	ShippingAddress *string
}

// UpdatePasswordRequest 修改密码请求
type UpdatePasswordRequest struct {
	UserID          string
	CurrentPassword string
	NewPassword     string
}

// ProfileResponse 用户资料响应
type ProfileResponse struct {
	ID              string `json:"id"`
	Username        string `json:"username"`
	FullName        string `json:"full_name"`
	Email           string `json:"email"`
	ShippingAddress string `json:"shipping_address"`
	CreatedAt       string `json:"created_at"`
}

func toProfileResponse(u *user.User) *ProfileResponse {
	return &ProfileResponse{
		ID:              u.ID(),
		Username:        u.Username(),
		FullName:        u.FullName(),
		Email:           u.Email(),
		ShippingAddress: u.ShippingAddress(),
		CreatedAt:       u.CreatedAt().Format("2006-01-02 15:04:05"),
	}
}
