package cart

import (
	"context"

	"github.com/xiebiao/furnistore/internal/domain/inventory"
	"github.com/xiebiao/furnistore/internal/domain/user"
	apperrors "github.com/xiebiao/furnistore/pkg/errors"
	"github.com/xiebiao/furnistore/pkg/metrics"
)

// AddItemUseCase 按ID加购用例
// 设计说明:
// 1. 加购校验"已有数量+新增数量"的库存,校验失败购物车不变
// 2. 加购只改内存中的购物车,不扣库存——库存在结算时才真正扣减
type AddItemUseCase struct {
	userService user.Service
	stock       *inventory.Service
}

// NewAddItemUseCase 创建加购用例
func NewAddItemUseCase(userService user.Service, stock *inventory.Service) *AddItemUseCase {
	return &AddItemUseCase{
		userService: userService,
		stock:       stock,
	}
}

// Execute 执行加购
func (uc *AddItemUseCase) Execute(ctx context.Context, req AddItemRequest) (*AddItemResponse, error) {
	u, err := uc.userService.GetByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	f, ok := uc.stock.Get(req.FurnitureID)
	if !ok {
		return nil, apperrors.ErrFurnitureNotFound
	}

	c := u.Cart()
	if err := c.AddItem(f, req.Quantity); err != nil {
		return nil, err
	}

	metrics.CartItemsAddedTotal.WithLabelValues(f.Name()).Add(float64(req.Quantity))

	return &AddItemResponse{
		FurnitureID: f.ID(),
		Name:        f.Name(),
		Quantity:    req.Quantity,
		CartSize:    c.Size(),
		CartTotal:   c.Total(),
	}, nil
}

// =========================================
// 应用层DTO
// =========================================

// AddItemRequest 加购请求
type AddItemRequest struct {
	UserID      string
	FurnitureID string
	Quantity    int
}

// AddItemResponse 加购响应
type AddItemResponse struct {
	FurnitureID string  `json:"furniture_id"`
	Name        string  `json:"name"`
	Quantity    int     `json:"quantity"`
	CartSize    int     `json:"cart_size"`
	CartTotal   float64 `json:"cart_total"`
}
