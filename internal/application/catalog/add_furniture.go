package catalog

import (
	"context"

	"github.com/xiebiao/furnistore/internal/domain/furniture"
	"github.com/xiebiao/furnistore/internal/domain/inventory"
)

// AddFurnitureUseCase 商品上架用例
// 设计说明:
// 1. 应用层负责用例编排,输入输出使用DTO,与HTTP层解耦
// 2. 品类属性的校验规则在领域工厂里(椅子必须有材质、沙发座位数2-5等)
// 3. 同款商品（品类+价格+描述+属性全部一致）再次上架时合并数量,返回原ID
type AddFurnitureUseCase struct {
	stock *inventory.Service
}

// NewAddFurnitureUseCase 创建上架用例
func NewAddFurnitureUseCase(stock *inventory.Service) *AddFurnitureUseCase {
	return &AddFurnitureUseCase{
		stock: stock,
	}
}

// Execute 执行上架
// 学习要点:
// 1. 应用层不直接操作Repository,通过库存服务间接操作
// 2. 领域工厂负责属性校验:品类合法性、必需属性、取值范围
// 3. ID由库存入库时分配,请求里不带ID
func (uc *AddFurnitureUseCase) Execute(ctx context.Context, req AddFurnitureRequest) (*AddFurnitureResponse, error) {
	// 1. 从记录形态重建实体(品类、价格、描述、属性一并校验)
	f, err := furniture.FromRecord(furniture.Record{
		Name:        req.Type,
		Price:       req.Price,
		Description: req.Description,
		Attributes:  req.Attributes,
	})
	if err != nil {
		return nil, err
	}

	// 2. 入库(合并同款或分配新ID,写穿到数据库)
	id, err := uc.stock.Add(ctx, f, req.Quantity)
	if err != nil {
		return nil, err
	}

	// 3. 构建响应DTO
	return &AddFurnitureResponse{
		ID:         id,
		Name:       f.Name(),
		Price:      f.BasePrice(),
		FinalPrice: f.FinalPrice(),
		Attributes: f.Attributes(),
		Quantity:   uc.stock.Quantity(id),
	}, nil
}

// =========================================
// 应用层DTO
// =========================================

// AddFurnitureRequest 上架请求
type AddFurnitureRequest struct {
	Type        string                 // 品类(chair/table/sofa/bed/bookcase)
	Price       float64                // 基础价格
	Description string                 // 商品描述
	Attributes  map[string]interface{} // 品类属性(material/shape/size/seats/color/shelves)
	Quantity    int                    // 上架数量
}

// AddFurnitureResponse 上架响应
// Quantity是入库后的总数量:合并同款时会大于本次上架数量
type AddFurnitureResponse struct {
	ID         string                 `json:"id"`
	Name       string                 `json:"name"`
	Price      float64                `json:"price"`
	FinalPrice float64                `json:"final_price"`
	Attributes map[string]interface{} `json:"attributes"`
	Quantity   int                    `json:"quantity"`
}
