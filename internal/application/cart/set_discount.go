package cart

import (
	"context"

	"github.com/xiebiao/furnistore/internal/domain/furniture"
	"github.com/xiebiao/furnistore/internal/domain/user"
	apperrors "github.com/xiebiao/furnistore/pkg/errors"
)

// SetDiscountUseCase 设置购物车折扣用例
// 设计说明:
// 1. 购物车折扣作用在小计上,与商品自身折扣叠加
// 2. 策略参数在构造时校验(百分比0-100,金额非负)
// 3. type=none清除折扣,回到恒等策略
type SetDiscountUseCase struct {
	userService user.Service
}

// NewSetDiscountUseCase 创建设置折扣用例
func NewSetDiscountUseCase(userService user.Service) *SetDiscountUseCase {
	return &SetDiscountUseCase{userService: userService}
}

// Execute 执行设置
func (uc *SetDiscountUseCase) Execute(ctx context.Context, req SetDiscountRequest) (*SetDiscountResponse, error) {
	u, err := uc.userService.GetByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	strategy, err := buildDiscount(req)
	if err != nil {
		return nil, err
	}

	c := u.Cart()
	c.SetDiscount(strategy)

	return &SetDiscountResponse{
		Discount: describeDiscount(c.Discount()),
		Subtotal: c.Subtotal(),
		Total:    c.Total(),
	}, nil
}

// buildDiscount 按请求构造折扣策略
func buildDiscount(req SetDiscountRequest) (furniture.DiscountStrategy, error) {
	switch req.Type {
	case "none", "":
		return furniture.NoDiscount{}, nil
	case "percentage":
		return furniture.NewPercentageDiscount(req.Percent)
	case "fixed_amount":
		return furniture.NewFixedAmountDiscount(req.Amount)
	default:
		return nil, apperrors.Newf(apperrors.ErrCodeInvalidParams,
			"未知的折扣类型: %s（可选: none, percentage, fixed_amount）", req.Type)
	}
}

// =========================================
// 应用层DTO
// =========================================

// SetDiscountRequest 设置折扣请求
type SetDiscountRequest struct {
	UserID  string
	Type    string  // none/percentage/fixed_amount
	Percent float64 // percentage时必填
	Amount  float64 // fixed_amount时必填
}

// SetDiscountResponse 设置折扣响应
// 带回新的应付金额,前端不用再拉一次购物车
type SetDiscountResponse struct {
	Discount DiscountInfo `json:"discount"`
	Subtotal float64      `json:"subtotal"`
	Total    float64      `json:"total"`
}
