package cart

import (
	"context"

	"github.com/xiebiao/furnistore/internal/domain/user"
	apperrors "github.com/xiebiao/furnistore/pkg/errors"
)

// RemoveItemUseCase 移除购物车行项目用例
// 不传quantity整行移除,传了只减数量(减到0自动删行)
type RemoveItemUseCase struct {
	userService user.Service
}

// NewRemoveItemUseCase 创建移除用例
func NewRemoveItemUseCase(userService user.Service) *RemoveItemUseCase {
	return &RemoveItemUseCase{userService: userService}
}

// Execute 执行移除
func (uc *RemoveItemUseCase) Execute(ctx context.Context, req RemoveItemRequest) (*RemoveItemResponse, error) {
	u, err := uc.userService.GetByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	c := u.Cart()
	var removed bool
	if req.Quantity != nil {
		removed, err = c.RemoveItem(req.FurnitureID, *req.Quantity)
	} else {
		removed, err = c.RemoveItem(req.FurnitureID)
	}
	if err != nil {
		return nil, err
	}
	if !removed {
		return nil, apperrors.New(apperrors.ErrCodeNotFound, "该商品不在购物车中")
	}

	return &RemoveItemResponse{
		CartSize:  c.Size(),
		CartTotal: c.Total(),
	}, nil
}

// ClearCartUseCase 清空购物车用例
type ClearCartUseCase struct {
	userService user.Service
}

// NewClearCartUseCase 创建清空购物车用例
func NewClearCartUseCase(userService user.Service) *ClearCartUseCase {
	return &ClearCartUseCase{userService: userService}
}

// Execute 执行清空
func (uc *ClearCartUseCase) Execute(ctx context.Context, userID string) error {
	u, err := uc.userService.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	u.Cart().Clear()
	return nil
}

// =========================================
// 应用层DTO
// =========================================

// RemoveItemRequest 移除行项目请求
// Quantity为nil表示整行移除
type RemoveItemRequest struct {
	UserID      string
	FurnitureID string
	Quantity    *int
}

// RemoveItemResponse 移除行项目响应
type RemoveItemResponse struct {
	CartSize  int     `json:"cart_size"`
	CartTotal float64 `json:"cart_total"`
}
