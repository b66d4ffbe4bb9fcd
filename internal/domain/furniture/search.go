package furniture

import (
	"fmt"
	"math"
	"strings"

	apperrors "github.com/xiebiao/furnistore/pkg/errors"
)

// SearchStrategy 库存搜索策略（策略模式）
// 设计说明:
// 1. 输入是按入库顺序排列的库存快照，策略只读不改、保持顺序
// 2. Inventory在调用前已做深拷贝，返回的条目可被调用方安全持有
// 3. 三种策略：名称搜索、价格区间搜索、属性搜索
type SearchStrategy interface {
	Search(catalog []Item) []Item
}

var (
	_ SearchStrategy = NameSearch{}
	_ SearchStrategy = PriceRangeSearch{}
	_ SearchStrategy = AttributeSearch{}
)

// NameSearch 按品类名搜索（大小写不敏感的子串匹配）
type NameSearch struct {
	keyword string
}

// NewNameSearch 创建名称搜索
func NewNameSearch(keyword string) NameSearch {
	return NameSearch{keyword: strings.ToLower(keyword)}
}

func (s NameSearch) Search(catalog []Item) []Item {
	results := make([]Item, 0)
	for _, item := range catalog {
		if strings.Contains(item.Furniture.Name(), s.keyword) {
			results = append(results, item)
		}
	}
	return results
}

// PriceRangeSearch 按基础价格区间搜索（闭区间）
type PriceRangeSearch struct {
	min float64
	max float64
}

// NewPriceRangeSearch 创建价格区间搜索
// min默认0，max传math.Inf(1)表示不设上限
func NewPriceRangeSearch(min, max float64) (PriceRangeSearch, error) {
	if min < 0 {
		return PriceRangeSearch{}, apperrors.New(apperrors.ErrCodeInvalidParams, "价格下限不能为负数")
	}
	if max < min {
		return PriceRangeSearch{}, apperrors.New(apperrors.ErrCodeInvalidParams, "价格上限不能小于下限")
	}
	return PriceRangeSearch{min: min, max: max}, nil
}

// NewOpenPriceRangeSearch 创建无上限的价格区间搜索 [min, +∞)
func NewOpenPriceRangeSearch(min float64) (PriceRangeSearch, error) {
	return NewPriceRangeSearch(min, math.Inf(1))
}

func (s PriceRangeSearch) Search(catalog []Item) []Item {
	results := make([]Item, 0)
	for _, item := range catalog {
		price := item.Furniture.BasePrice()
		if price >= s.min && price <= s.max {
			results = append(results, item)
		}
	}
	return results
}

// AttributeSearch 按品类属性搜索
// 属性值比较规则：统一转为字符串后大小写不敏感比较
// （seats、shelves等数值属性因此可以用字符串形式查询）
// 商品没有该属性时直接排除，不报错
type AttributeSearch struct {
	name  string
	value interface{}
	kind  Kind // 为空表示不限品类
}

// NewAttributeSearch 创建属性搜索，kind传空字符串表示不过滤品类
func NewAttributeSearch(name string, value interface{}, kind Kind) AttributeSearch {
	return AttributeSearch{name: strings.ToLower(name), value: value, kind: kind}
}

func (s AttributeSearch) Search(catalog []Item) []Item {
	results := make([]Item, 0)
	want := normalizeAttrValue(s.value)
	for _, item := range catalog {
		if s.kind != "" && item.Furniture.Kind() != s.kind {
			continue
		}
		got, ok := item.Furniture.Attributes()[s.name]
		if !ok {
			continue
		}
		if strings.EqualFold(normalizeAttrValue(got), want) {
			results = append(results, item)
		}
	}
	return results
}

// normalizeAttrValue 属性值归一化为可比较的字符串
// JSON反序列化会把数值变成float64，整数值按整数输出避免"3"与"3.0"不等
func normalizeAttrValue(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		if val == math.Trunc(val) {
			return fmt.Sprintf("%d", int64(val))
		}
		return fmt.Sprintf("%v", val)
	default:
		return fmt.Sprintf("%v", v)
	}
}
