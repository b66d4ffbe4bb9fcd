package dto

// AddFurnitureRequest HTTP上架请求
// validator tag说明:
// - required: 必填字段
// - min/max: 数值范围校验
// attributes的内容因品类而异(椅子material、桌子shape+size、
// 沙发seats+color、床size、书柜shelves+size)，由领域工厂校验
type AddFurnitureRequest struct {
	Type        string                 `json:"type" binding:"required" example:"chair"`
	Price       float64                `json:"price" binding:"required,min=0,max=1000000" example:"899.5"`
	Description string                 `json:"description" binding:"max=1000" example:"北欧风实木餐椅"`
	Attributes  map[string]interface{} `json:"attributes" binding:"required"`
	Quantity    int                    `json:"quantity" binding:"required,min=1,max=100000" example:"20"`
}

// SearchFurnitureQuery HTTP检索请求(query参数)
// 三组条件按 名称 > 价格区间 > 属性 的优先级取第一组生效
type SearchFurnitureQuery struct {
	Name           string   `form:"name" binding:"omitempty,max=50" example:"chair"`
	MinPrice       *float64 `form:"min_price" binding:"omitempty,min=0"`
	MaxPrice       *float64 `form:"max_price" binding:"omitempty,min=0"`
	AttributeName  string   `form:"attribute_name" binding:"omitempty,max=50" example:"material"`
	AttributeValue string   `form:"attribute_value" binding:"omitempty,max=50" example:"leather"`
	Type           string   `form:"type" binding:"omitempty,max=20" example:"chair"`
}

// SetQuantityRequest HTTP调整库存请求
// min=0:允许调成0(售罄但商品在架)
type SetQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required,min=0,max=100000" example:"50"`
}
