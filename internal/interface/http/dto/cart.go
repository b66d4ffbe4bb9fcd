package dto

// AddCartItemRequest HTTP加购请求
type AddCartItemRequest struct {
	FurnitureID string `json:"furniture_id" binding:"required" example:"e8400c2b-5b8e-41d3-9f7a-2f1b6f6a8c11"`
	Quantity    int    `json:"quantity" binding:"required,min=1,max=999" example:"2"`
}

// AttributeCondition 定位条件
// value用interface{}:属性值可能是字符串(材质)也可能是数字(座位数)
type AttributeCondition struct {
	Name  string      `json:"name" binding:"required,max=50" example:"material"`
	Value interface{} `json:"value" binding:"required" swaggertype:"string" example:"leather"`
}

// LocateItemRequest HTTP定位加购请求
// 按品类+属性描述想要的商品,不需要知道商品ID
type LocateItemRequest struct {
	Type       string               `json:"type" binding:"required" example:"chair"`
	Quantity   int                  `json:"quantity" binding:"required,min=1,max=999" example:"1"`
	Attributes []AttributeCondition `json:"attributes" binding:"omitempty,dive"`
}

// RemoveCartItemQuery 移除行项目请求(query参数)
// 不传quantity整行移除
type RemoveCartItemQuery struct {
	Quantity *int `form:"quantity" binding:"omitempty,min=0"`
}

// SetCartDiscountRequest HTTP设置购物车折扣请求
type SetCartDiscountRequest struct {
	Type    string  `json:"type" binding:"required,oneof=none percentage fixed_amount" example:"percentage"`
	Percent float64 `json:"percent" binding:"omitempty,min=0,max=100" example:"10"`
	Amount  float64 `json:"amount" binding:"omitempty,min=0" example:"50"`
}

// =========================================
// 结算相关DTO
// =========================================

// CheckoutRequest HTTP结算请求
// 只需要支付方式:买家、购物车、收货地址都取自登录态
type CheckoutRequest struct {
	PaymentMethod string `json:"payment_method" binding:"required" example:"Credit Card"`
}
