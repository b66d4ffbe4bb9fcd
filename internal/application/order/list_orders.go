package order

import (
	"context"

	"github.com/xiebiao/furnistore/internal/domain/order"
	apperrors "github.com/xiebiao/furnistore/pkg/errors"
)

// ListOrdersUseCase 查询用户订单列表用例
// 订单历史是只追加的,列表按下单时间正序返回
type ListOrdersUseCase struct {
	history *order.History
}

// NewListOrdersUseCase 创建订单列表用例
func NewListOrdersUseCase(history *order.History) *ListOrdersUseCase {
	return &ListOrdersUseCase{history: history}
}

// Execute 执行查询
func (uc *ListOrdersUseCase) Execute(ctx context.Context, userID string) (*ListOrdersResponse, error) {
	records := uc.history.ForUser(userID)
	return &ListOrdersResponse{
		Orders: records,
		Total:  len(records),
	}, nil
}

// GetOrderUseCase 查询订单详情用例
type GetOrderUseCase struct {
	history *order.History
}

// NewGetOrderUseCase 创建订单详情用例
func NewGetOrderUseCase(history *order.History) *GetOrderUseCase {
	return &GetOrderUseCase{history: history}
}

// Execute 执行查询
// 学习要点:水平越权防护——订单存在但不属于当前用户时,
// 返回的也是40403而不是40104,避免向外泄露"这个订单号存在"
func (uc *GetOrderUseCase) Execute(ctx context.Context, userID, orderID string) (*order.Record, error) {
	rec, ok := uc.history.Get(orderID)
	if !ok {
		return nil, apperrors.ErrOrderNotFound
	}
	if rec.UserID != userID {
		return nil, apperrors.ErrOrderNotFound
	}
	return &rec, nil
}

// =========================================
// 应用层DTO
// =========================================

// ListOrdersResponse 订单列表响应
type ListOrdersResponse struct {
	Orders []order.Record `json:"orders"`
	Total  int            `json:"total"`
}
