package catalog

import (
	"context"

	"github.com/xiebiao/furnistore/internal/domain/furniture"
	"github.com/xiebiao/furnistore/internal/domain/inventory"
	apperrors "github.com/xiebiao/furnistore/pkg/errors"
	"github.com/xiebiao/furnistore/pkg/metrics"
)

// SearchFurnitureUseCase 商品检索用例
// 设计说明:
// 1. 检索条件三选一,优先级:名称 > 价格区间 > 属性
// 2. 不带任何条件时返回全部在售商品
// 3. 检索在库存快照上进行,不阻塞并发的加购和结算
type SearchFurnitureUseCase struct {
	stock *inventory.Service
}

// NewSearchFurnitureUseCase 创建检索用例
func NewSearchFurnitureUseCase(stock *inventory.Service) *SearchFurnitureUseCase {
	return &SearchFurnitureUseCase{
		stock: stock,
	}
}

// Execute 执行检索
func (uc *SearchFurnitureUseCase) Execute(ctx context.Context, req SearchFurnitureRequest) (*SearchFurnitureResponse, error) {
	items, err := uc.search(req)
	if err != nil {
		return nil, err
	}

	// 领域对象 → 响应DTO
	views := make([]FurnitureView, 0, len(items))
	for _, item := range items {
		views = append(views, toFurnitureView(item))
	}

	return &SearchFurnitureResponse{
		Items: views,
		Total: len(views),
	}, nil
}

// search 根据请求参数选择检索策略
func (uc *SearchFurnitureUseCase) search(req SearchFurnitureRequest) ([]furniture.Item, error) {
	switch {
	case req.Name != "":
		metrics.InventorySearchesTotal.WithLabelValues("name").Inc()
		return uc.stock.Search(furniture.NewNameSearch(req.Name)), nil

	case req.MinPrice != nil || req.MaxPrice != nil:
		metrics.InventorySearchesTotal.WithLabelValues("price_range").Inc()
		min := 0.0
		if req.MinPrice != nil {
			min = *req.MinPrice
		}
		// 不给上限时是开区间[min, +∞)
		if req.MaxPrice == nil {
			strategy, err := furniture.NewOpenPriceRangeSearch(min)
			if err != nil {
				return nil, err
			}
			return uc.stock.Search(strategy), nil
		}
		strategy, err := furniture.NewPriceRangeSearch(min, *req.MaxPrice)
		if err != nil {
			return nil, err
		}
		return uc.stock.Search(strategy), nil

	case req.AttributeName != "":
		metrics.InventorySearchesTotal.WithLabelValues("attribute").Inc()
		var kind furniture.Kind
		if req.Type != "" {
			parsed, err := furniture.ParseKind(req.Type)
			if err != nil {
				return nil, err
			}
			kind = parsed
		}
		return uc.stock.Search(furniture.NewAttributeSearch(req.AttributeName, req.AttributeValue, kind)), nil

	default:
		// 无条件,返回全部
		return uc.stock.All(), nil
	}
}

// GetFurnitureUseCase 商品详情用例
type GetFurnitureUseCase struct {
	stock *inventory.Service
}

// NewGetFurnitureUseCase 创建详情用例
func NewGetFurnitureUseCase(stock *inventory.Service) *GetFurnitureUseCase {
	return &GetFurnitureUseCase{stock: stock}
}

// Execute 执行查询
func (uc *GetFurnitureUseCase) Execute(ctx context.Context, id string) (*FurnitureView, error) {
	f, ok := uc.stock.Get(id)
	if !ok {
		return nil, apperrors.ErrFurnitureNotFound
	}

	view := toFurnitureView(furniture.Item{Furniture: f, Quantity: uc.stock.Quantity(id)})
	return &view, nil
}

// =========================================
// 应用层DTO
// =========================================

// SearchFurnitureRequest 检索请求
// MinPrice/MaxPrice用指针区分"没传"和"传了0"
type SearchFurnitureRequest struct {
	Name           string
	MinPrice       *float64
	MaxPrice       *float64
	AttributeName  string
	AttributeValue string
	Type           string // 属性检索时限定品类,空表示不限
}

// FurnitureView 商品视图
// price是基础价,final_price是折扣和税叠加后的实际售价
type FurnitureView struct {
	ID          string                 `json:"id"`
	Name        string                 `json:"name"`
	Price       float64                `json:"price"`
	FinalPrice  float64                `json:"final_price"`
	Description string                 `json:"description"`
	Attributes  map[string]interface{} `json:"attributes"`
	Quantity    int                    `json:"quantity"`
}

// SearchFurnitureResponse 检索响应
type SearchFurnitureResponse struct {
	Items []FurnitureView `json:"items"`
	Total int             `json:"total"`
}

func toFurnitureView(item furniture.Item) FurnitureView {
	return FurnitureView{
		ID:          item.Furniture.ID(),
		Name:        item.Furniture.Name(),
		Price:       item.Furniture.BasePrice(),
		FinalPrice:  item.Furniture.FinalPrice(),
		Description: item.Furniture.Description(),
		Attributes:  item.Furniture.Attributes(),
		Quantity:    item.Quantity,
	}
}
