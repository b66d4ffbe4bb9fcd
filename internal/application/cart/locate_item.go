package cart

import (
	"context"

	"github.com/xiebiao/furnistore/internal/domain/cart"
	"github.com/xiebiao/furnistore/internal/domain/user"
	"github.com/xiebiao/furnistore/pkg/metrics"
)

// LocateItemUseCase 按属性定位加购用例
// 设计说明:
// 1. 用户描述想要的商品("黑色的皮椅"),不需要知道商品ID
// 2. 定位逻辑在领域层的ItemLocator:逐属性搜索、ID交集、first-fit选品
// 3. 三种定位失败错误码不同,HTTP层据此返回不同提示
type LocateItemUseCase struct {
	userService user.Service
	locator     *cart.ItemLocator
}

// NewLocateItemUseCase 创建定位加购用例
func NewLocateItemUseCase(userService user.Service, locator *cart.ItemLocator) *LocateItemUseCase {
	return &LocateItemUseCase{
		userService: userService,
		locator:     locator,
	}
}

// Execute 执行定位加购
func (uc *LocateItemUseCase) Execute(ctx context.Context, req LocateItemRequest) (*LocateItemResponse, error) {
	u, err := uc.userService.GetByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	attrs := make([]cart.Attribute, 0, len(req.Attributes))
	for _, a := range req.Attributes {
		attrs = append(attrs, cart.Attribute{Name: a.Name, Value: a.Value})
	}

	c := u.Cart()
	found, err := uc.locator.FindAndAdd(c, req.Type, req.Quantity, attrs)
	if err != nil {
		return nil, err
	}

	metrics.CartItemsAddedTotal.WithLabelValues(found.Name()).Add(float64(req.Quantity))

	return &LocateItemResponse{
		FurnitureID: found.ID(),
		Name:        found.Name(),
		UnitPrice:   found.FinalPrice(),
		Attributes:  found.Attributes(),
		Quantity:    req.Quantity,
		CartSize:    c.Size(),
		CartTotal:   c.Total(),
	}, nil
}

// =========================================
// 应用层DTO
// =========================================

// AttributeParam 定位条件
type AttributeParam struct {
	Name  string
	Value interface{}
}

// LocateItemRequest 定位加购请求
type LocateItemRequest struct {
	UserID     string
	Type       string // 品类
	Quantity   int
	Attributes []AttributeParam
}

// LocateItemResponse 定位加购响应
// 返回实际命中的商品,用户确认加购的是哪一款
type LocateItemResponse struct {
	FurnitureID string                 `json:"furniture_id"`
	Name        string                 `json:"name"`
	UnitPrice   float64                `json:"unit_price"`
	Attributes  map[string]interface{} `json:"attributes"`
	Quantity    int                    `json:"quantity"`
	CartSize    int                    `json:"cart_size"`
	CartTotal   float64                `json:"cart_total"`
}
