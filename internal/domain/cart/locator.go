package cart

import (
	"github.com/xiebiao/furnistore/internal/domain/furniture"
)

// Catalog 目录搜索能力，由库存服务实现
type Catalog interface {
	Search(strategy furniture.SearchStrategy) []furniture.Item
}

// Attribute 定位条件，按调用方给出的顺序参与筛选
type Attribute struct {
	Name  string
	Value interface{}
}

// ItemLocator 按品类和属性定位商品并加购
// 设计说明:
// 1. 用户说"买一把黑色皮椅"，不需要知道商品ID和价格
// 2. 每个属性单独跑一次AttributeSearch，再按家具ID求交集
// 3. 三种失败各自独立：单属性无匹配、属性组合无匹配、组合命中但库存不足，
//    调用方靠错误码区分并给用户不同提示
// 4. 候选集中选第一个库存够的（first-fit），不做最优匹配
type ItemLocator struct {
	catalog Catalog
}

// NewItemLocator 创建商品定位器
func NewItemLocator(catalog Catalog) *ItemLocator {
	return &ItemLocator{catalog: catalog}
}

// FindAndAdd 定位匹配的商品并加入购物车，返回实际加购的商品
func (l *ItemLocator) FindAndAdd(c *ShoppingCart, kindName string, quantity int, attrs []Attribute) (furniture.Furniture, error) {
	kind, err := furniture.ParseKind(kindName)
	if err != nil {
		return nil, err
	}
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	var candidates []furniture.Item
	for i, attr := range attrs {
		results := l.catalog.Search(furniture.NewAttributeSearch(attr.Name, attr.Value, kind))
		if len(results) == 0 {
			return nil, ErrNoAttributeMatch(string(kind), attr.Name, attr.Value)
		}

		// 第一个属性的结果作为种子集
		if i == 0 {
			candidates = results
			continue
		}

		// 后续属性按家具ID求交集
		matched := make(map[string]bool, len(candidates))
		for _, item := range candidates {
			matched[item.Furniture.ID()] = true
		}
		intersection := make([]furniture.Item, 0, len(results))
		for _, item := range results {
			if matched[item.Furniture.ID()] {
				intersection = append(intersection, item)
			}
		}
		candidates = intersection

		if len(candidates) == 0 {
			return nil, ErrNoCombinationMatch(string(kind))
		}
	}

	// 未提供任何属性时只按品类搜索
	if len(attrs) == 0 {
		candidates = l.catalog.Search(furniture.NewNameSearch(string(kind)))
		if len(candidates) == 0 {
			return nil, ErrKindNotInStock(string(kind))
		}
	}

	// first-fit：取第一个库存数量足够的候选
	for _, item := range candidates {
		if item.Quantity >= quantity {
			if err := c.AddItem(item.Furniture, quantity); err != nil {
				return nil, err
			}
			return item.Furniture, nil
		}
	}
	return nil, ErrCombinationOutOfStock(string(kind))
}
