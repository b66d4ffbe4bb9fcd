package cart

import (
	"sync"

	"github.com/xiebiao/furnistore/internal/domain/furniture"
)

// StockChecker 库存可用性检查能力
// 购物车只依赖这一个口子做加购校验，由库存服务实现
type StockChecker interface {
	IsAvailable(id string, quantity int) bool
}

// ShoppingCart 购物车
// 设计说明:
// 1. 每个用户/会话独占一个购物车，不跨会话共享
// 2. 加购前校验"已有数量+新增数量"的库存可用性，校验失败不改动购物车
// 3. 行项目按家具ID合并，内部持有家具的快照拷贝
// 4. 小计=Σ(含折扣含税单价×数量)，总价=购物车折扣应用于小计
// 5. 购物车挂在HTTP会话上，同一用户可能并发请求，用互斥锁保护
type ShoppingCart struct {
	mu       sync.Mutex
	lines    map[string]furniture.Item
	order    []string
	discount furniture.DiscountStrategy
	stock    StockChecker
}

// NewShoppingCart 创建空购物车，默认无折扣
func NewShoppingCart(stock StockChecker) *ShoppingCart {
	return &ShoppingCart{
		lines:    make(map[string]furniture.Item),
		order:    make([]string, 0),
		discount: furniture.NoDiscount{},
		stock:    stock,
	}
}

// Discount 当前购物车级折扣策略（永不为nil）
func (c *ShoppingCart) Discount() furniture.DiscountStrategy {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.discount
}

// SetDiscount 设置购物车级折扣，传nil回退为无折扣
func (c *ShoppingCart) SetDiscount(strategy furniture.DiscountStrategy) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if strategy == nil {
		strategy = furniture.NoDiscount{}
	}
	c.discount = strategy
}

// AddItem 加购
// 校验库存时把购物车里已有的数量算进去：已有2件再加3件，库存必须够5件。
// 任何校验失败都不改动购物车状态。
func (c *ShoppingCart) AddItem(f furniture.Furniture, quantity int) error {
	if f == nil {
		return furniture.ErrNilFurniture
	}
	if quantity <= 0 {
		return ErrInvalidQuantity
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	existing, ok := c.lines[f.ID()]
	needed := existing.Quantity + quantity
	if !c.stock.IsAvailable(f.ID(), needed) {
		return furniture.ErrInsufficientStock(f.Name())
	}

	if ok {
		existing.Quantity = needed
		c.lines[f.ID()] = existing
		return nil
	}
	c.lines[f.ID()] = furniture.Item{Furniture: f.Clone(), Quantity: quantity}
	c.order = append(c.order, f.ID())
	return nil
}

// RemoveItem 移除行项目
// 不传quantity或quantity不小于当前数量时整行移除，否则只减数量。
// 家具不在购物车中返回false，负数quantity报错。
func (c *ShoppingCart) RemoveItem(id string, quantity ...int) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	line, ok := c.lines[id]
	if !ok {
		return false, nil
	}

	if len(quantity) == 0 {
		c.deleteLocked(id)
		return true, nil
	}

	qty := quantity[0]
	if qty < 0 {
		return false, ErrNegativeRemoveQuantity
	}
	if qty >= line.Quantity {
		c.deleteLocked(id)
		return true, nil
	}
	line.Quantity -= qty
	c.lines[id] = line
	return true, nil
}

// Items 返回全部行项目（家具为深拷贝，调用方改动不影响购物车）
func (c *ShoppingCart) Items() []furniture.Item {
	c.mu.Lock()
	defer c.mu.Unlock()

	results := make([]furniture.Item, 0, len(c.order))
	for _, id := range c.order {
		line := c.lines[id]
		results = append(results, furniture.Item{
			Furniture: line.Furniture.Clone(),
			Quantity:  line.Quantity,
		})
	}
	return results
}

// Subtotal 小计：每行的最终价（商品折扣+税后）乘以数量之和
func (c *ShoppingCart) Subtotal() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.subtotalLocked()
}

// Total 应用购物车折扣后的总价
func (c *ShoppingCart) Total() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	subtotal := c.subtotalLocked()
	total, err := c.discount.Apply(subtotal)
	if err != nil {
		// 小计不会为负，折扣策略对非负输入不报错
		return subtotal
	}
	return total
}

// Clear 清空购物车（折扣策略保留）
func (c *ShoppingCart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lines = make(map[string]furniture.Item)
	c.order = make([]string, 0)
}

// IsEmpty 购物车是否为空
func (c *ShoppingCart) IsEmpty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.lines) == 0
}

// Size 全部行项目的数量之和
func (c *ShoppingCart) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := 0
	for _, line := range c.lines {
		total += line.Quantity
	}
	return total
}

func (c *ShoppingCart) subtotalLocked() float64 {
	subtotal := 0.0
	for _, line := range c.lines {
		subtotal += line.Furniture.FinalPrice() * float64(line.Quantity)
	}
	return subtotal
}

func (c *ShoppingCart) deleteLocked(id string) {
	delete(c.lines, id)
	for i, existing := range c.order {
		if existing == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}
