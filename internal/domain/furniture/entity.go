package furniture

import (
	"strings"
	"unicode/utf8"

	apperrors "github.com/xiebiao/furnistore/pkg/errors"
)

// TaxRate 销售税率，计算最终售价时统一叠加
const TaxRate = 0.18

// 价格与描述的全局约束
const (
	MaxBasePrice      = 1_000_000.0
	MaxDescriptionLen = 1000 // 按字符数计
)

// Kind 家具品类
// 品类集合是封闭的：每个品类有自己独立的属性结构和校验规则
type Kind string

const (
	KindChair    Kind = "chair"
	KindTable    Kind = "table"
	KindSofa     Kind = "sofa"
	KindBed      Kind = "bed"
	KindBookcase Kind = "bookcase"
)

// ParseKind 解析家具品类（大小写不敏感）
func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(s)) {
	case KindChair:
		return KindChair, nil
	case KindTable:
		return KindTable, nil
	case KindSofa:
		return KindSofa, nil
	case KindBed:
		return KindBed, nil
	case KindBookcase:
		return KindBookcase, nil
	default:
		return "", apperrors.Newf(apperrors.ErrCodeInvalidParams,
			"未知的家具类型: %s（可选: chair, table, sofa, bed, bookcase）", s)
	}
}

// Furniture 家具实体（聚合根）
// DDD设计说明:
// 1. 五个品类（Chair/Table/Sofa/Bed/Bookcase）是封闭的实现集合
// 2. ID由库存（Inventory）入库时分配一次，实体自身不生成ID
// 3. 除折扣策略外，实体构造完成后不可变；构造即校验，不存在半合法实例
// 4. Attributes()在构造时生成品类属性表，属性搜索走显式map而非反射
type Furniture interface {
	// ID 库存分配的唯一标识，未入库时为空字符串
	ID() string

	// Kind 家具品类
	Kind() Kind

	// Name 品类名（小写），用于名称搜索和序列化
	Name() string

	// BasePrice 基础价格（未折扣、未含税）
	BasePrice() float64

	// Description 商品描述
	Description() string

	// Discount 当前生效的折扣策略（默认无折扣）
	Discount() DiscountStrategy

	// SetDiscount 更换折扣策略，传nil恢复为无折扣
	SetDiscount(d DiscountStrategy)

	// FinalPrice 最终售价 = 折扣后基础价 × (1 + TaxRate)
	FinalPrice() float64

	// Attributes 品类特有属性表（拷贝），用于属性搜索和序列化
	Attributes() map[string]interface{}

	// IdenticalTo 判断两件家具是否为同一商品（忽略ID）
	// 规则：品类相同 + 基础价格、描述、全部品类属性一致
	// 这是库存合并入库（merge-on-add）的唯一同一性依据
	IdenticalTo(other Furniture) bool

	// Clone 深拷贝（含ID与折扣策略），用于库存快照和购物车返回副本
	Clone() Furniture

	// SetID 分配ID，仅允许一次（由Inventory在入库时调用）
	SetID(id string) error
}

// Item 带库存数量的家具条目
// 库存快照、搜索结果、购物车行共用此结构
type Item struct {
	Furniture Furniture
	Quantity  int
}

// base 各品类共享的基础字段
type base struct {
	id          string
	kind        Kind
	basePrice   float64
	description string
	discount    DiscountStrategy
}

// newBase 校验并构造基础字段
func newBase(kind Kind, basePrice float64, description string) (base, error) {
	if basePrice < 0 {
		return base{}, apperrors.New(apperrors.ErrCodeInvalidParams, "价格不能为负数")
	}
	if basePrice > MaxBasePrice {
		return base{}, apperrors.Newf(apperrors.ErrCodeInvalidParams, "价格不能超过%.0f", MaxBasePrice)
	}
	if utf8.RuneCountInString(description) > MaxDescriptionLen {
		return base{}, apperrors.Newf(apperrors.ErrCodeInvalidParams, "描述不能超过%d个字符", MaxDescriptionLen)
	}
	return base{
		kind:        kind,
		basePrice:   basePrice,
		description: description,
		discount:    NoDiscount{},
	}, nil
}

func (b *base) ID() string          { return b.id }
func (b *base) Kind() Kind          { return b.kind }
func (b *base) Name() string        { return string(b.kind) }
func (b *base) BasePrice() float64  { return b.basePrice }
func (b *base) Description() string { return b.description }

func (b *base) Discount() DiscountStrategy { return b.discount }

func (b *base) SetDiscount(d DiscountStrategy) {
	if d == nil {
		d = NoDiscount{}
	}
	b.discount = d
}

// FinalPrice 折扣后价格加税
// basePrice非负由构造校验保证，折扣策略不会因负价拒绝
func (b *base) FinalPrice() float64 {
	discounted, err := b.discount.Apply(b.basePrice)
	if err != nil {
		discounted = b.basePrice
	}
	return discounted * (1 + TaxRate)
}

// SetID 分配ID，重复分配返回错误
func (b *base) SetID(id string) error {
	if b.id != "" {
		return apperrors.New(apperrors.ErrCodeBusinessError, "家具ID已分配，不允许修改")
	}
	if id == "" {
		return apperrors.New(apperrors.ErrCodeInvalidParams, "家具ID不能为空")
	}
	b.id = id
	return nil
}

// sameBase 基础字段的同一性比较（不含ID、不含折扣策略）
func (b *base) sameBase(o *base) bool {
	return b.kind == o.kind &&
		b.basePrice == o.basePrice &&
		b.description == o.description
}
