package cart

import (
	"context"

	"github.com/xiebiao/furnistore/internal/domain/furniture"
	"github.com/xiebiao/furnistore/internal/domain/user"
)

// ViewCartUseCase 查看购物车用例
type ViewCartUseCase struct {
	userService user.Service
}

// NewViewCartUseCase 创建查看购物车用例
func NewViewCartUseCase(userService user.Service) *ViewCartUseCase {
	return &ViewCartUseCase{userService: userService}
}

// Execute 执行查询
func (uc *ViewCartUseCase) Execute(ctx context.Context, userID string) (*CartView, error) {
	u, err := uc.userService.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	c := u.Cart()
	lines := c.Items()

	views := make([]CartLine, 0, len(lines))
	for _, line := range lines {
		views = append(views, toCartLine(line))
	}

	return &CartView{
		Items:    views,
		Size:     c.Size(),
		Subtotal: c.Subtotal(),
		Total:    c.Total(),
		Discount: describeDiscount(c.Discount()),
	}, nil
}

// =========================================
// 应用层DTO
// =========================================

// CartLine 购物车行项目
type CartLine struct {
	FurnitureID string                 `json:"furniture_id"`
	Name        string                 `json:"name"`
	UnitPrice   float64                `json:"unit_price"` // 含折扣含税单价
	Quantity    int                    `json:"quantity"`
	LineTotal   float64                `json:"line_total"`
	Attributes  map[string]interface{} `json:"attributes"`
}

// CartView 购物车视图
// subtotal是各行合计,total是购物车级折扣应用后的应付金额
type CartView struct {
	Items    []CartLine   `json:"items"`
	Size     int          `json:"size"`
	Subtotal float64      `json:"subtotal"`
	Total    float64      `json:"total"`
	Discount DiscountInfo `json:"discount"`
}

// DiscountInfo 购物车折扣描述
type DiscountInfo struct {
	Type    string  `json:"type"`              // none/percentage/fixed_amount
	Percent float64 `json:"percent,omitempty"` // percentage时有效
	Amount  float64 `json:"amount,omitempty"`  // fixed_amount时有效
}

func toCartLine(line furniture.Item) CartLine {
	unitPrice := line.Furniture.FinalPrice()
	return CartLine{
		FurnitureID: line.Furniture.ID(),
		Name:        line.Furniture.Name(),
		UnitPrice:   unitPrice,
		Quantity:    line.Quantity,
		LineTotal:   unitPrice * float64(line.Quantity),
		Attributes:  line.Furniture.Attributes(),
	}
}

// describeDiscount 折扣策略转展示信息
func describeDiscount(d furniture.DiscountStrategy) DiscountInfo {
	switch v := d.(type) {
	case furniture.PercentageDiscount:
		return DiscountInfo{Type: "percentage", Percent: v.Percent()}
	case furniture.FixedAmountDiscount:
		return DiscountInfo{Type: "fixed_amount", Amount: v.Amount()}
	default:
		return DiscountInfo{Type: "none"}
	}
}
