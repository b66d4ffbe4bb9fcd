package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/furnistore/internal/domain/furniture"
	apperrors "github.com/xiebiao/furnistore/pkg/errors"
)

// fakeStock 内存版库存，实现StockChecker和Catalog两个口子
type fakeStock struct {
	items []furniture.Item
}

func (s *fakeStock) IsAvailable(id string, quantity int) bool {
	for _, it := range s.items {
		if it.Furniture.ID() == id {
			return it.Quantity >= quantity
		}
	}
	return false
}

func (s *fakeStock) Search(strategy furniture.SearchStrategy) []furniture.Item {
	snapshot := make([]furniture.Item, 0, len(s.items))
	for _, it := range s.items {
		snapshot = append(snapshot, furniture.Item{
			Furniture: it.Furniture.Clone(),
			Quantity:  it.Quantity,
		})
	}
	return strategy.Search(snapshot)
}

func newChair(t *testing.T, id, material string, price float64) *furniture.Chair {
	t.Helper()
	c, err := furniture.NewChair(material, price, "")
	require.NoError(t, err)
	require.NoError(t, c.SetID(id))
	return c
}

func newSofa(t *testing.T, id string, seats int, color string, price float64) *furniture.Sofa {
	t.Helper()
	s, err := furniture.NewSofa(seats, color, price, "")
	require.NoError(t, err)
	require.NoError(t, s.SetID(id))
	return s
}

// TestAddItem 加购
func TestAddItem(t *testing.T) {
	chair := newChair(t, "c1", "wood", 100)
	stock := &fakeStock{items: []furniture.Item{{Furniture: chair, Quantity: 10}}}

	t.Run("正常加购", func(t *testing.T) {
		c := NewShoppingCart(stock)
		require.NoError(t, c.AddItem(chair, 2))
		assert.Equal(t, 2, c.Size())
		assert.False(t, c.IsEmpty())
	})

	t.Run("重复加购合并行项目", func(t *testing.T) {
		c := NewShoppingCart(stock)
		require.NoError(t, c.AddItem(chair, 2))
		require.NoError(t, c.AddItem(chair, 3))
		assert.Len(t, c.Items(), 1, "同一家具只有一行")
		assert.Equal(t, 5, c.Size())
	})

	t.Run("库存校验把购物车已有数量算进去", func(t *testing.T) {
		c := NewShoppingCart(stock)
		require.NoError(t, c.AddItem(chair, 8))

		// 库存10件，已有8件再加3件需要11件
		err := c.AddItem(chair, 3)
		require.Error(t, err)
		assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeInsufficientStock))
		assert.Equal(t, 8, c.Size(), "加购失败不改动购物车")
	})

	t.Run("首次加购超库存直接失败", func(t *testing.T) {
		c := NewShoppingCart(stock)
		err := c.AddItem(chair, 11)
		require.Error(t, err)
		assert.True(t, c.IsEmpty())
	})

	t.Run("不在库存中的商品不可加购", func(t *testing.T) {
		c := NewShoppingCart(stock)
		stranger := newChair(t, "ghost", "wood", 100)
		err := c.AddItem(stranger, 1)
		require.Error(t, err)
		assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeInsufficientStock))
	})

	t.Run("数量必须为正", func(t *testing.T) {
		c := NewShoppingCart(stock)
		assert.ErrorIs(t, c.AddItem(chair, 0), ErrInvalidQuantity)
		assert.ErrorIs(t, c.AddItem(chair, -2), ErrInvalidQuantity)
		assert.Error(t, c.AddItem(nil, 1))
	})
}

// TestRemoveItem 移除行项目
func TestRemoveItem(t *testing.T) {
	chair := newChair(t, "c1", "wood", 100)
	stock := &fakeStock{items: []furniture.Item{{Furniture: chair, Quantity: 10}}}

	t.Run("不传数量整行移除", func(t *testing.T) {
		c := NewShoppingCart(stock)
		require.NoError(t, c.AddItem(chair, 5))

		ok, err := c.RemoveItem("c1")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.True(t, c.IsEmpty())
	})

	t.Run("部分移除", func(t *testing.T) {
		c := NewShoppingCart(stock)
		require.NoError(t, c.AddItem(chair, 5))

		ok, err := c.RemoveItem("c1", 2)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, 3, c.Size())
	})

	t.Run("移除数量不小于当前数量时整行移除", func(t *testing.T) {
		c := NewShoppingCart(stock)
		require.NoError(t, c.AddItem(chair, 5))

		ok, err := c.RemoveItem("c1", 99)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.True(t, c.IsEmpty())
	})

	t.Run("移除0件是合法的空操作", func(t *testing.T) {
		c := NewShoppingCart(stock)
		require.NoError(t, c.AddItem(chair, 5))

		ok, err := c.RemoveItem("c1", 0)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, 5, c.Size())
	})

	t.Run("负数被拒绝", func(t *testing.T) {
		c := NewShoppingCart(stock)
		require.NoError(t, c.AddItem(chair, 5))

		_, err := c.RemoveItem("c1", -1)
		assert.ErrorIs(t, err, ErrNegativeRemoveQuantity)
		assert.Equal(t, 5, c.Size())
	})

	t.Run("不在购物车中返回false", func(t *testing.T) {
		c := NewShoppingCart(stock)
		ok, err := c.RemoveItem("no-such-id")
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

// TestItemsDefensiveCopy 行项目是拷贝，外部改动不影响购物车
func TestItemsDefensiveCopy(t *testing.T) {
	chair := newChair(t, "c1", "wood", 100)
	stock := &fakeStock{items: []furniture.Item{{Furniture: chair, Quantity: 10}}}
	c := NewShoppingCart(stock)
	require.NoError(t, c.AddItem(chair, 2))

	before := c.Subtotal()

	items := c.Items()
	require.Len(t, items, 1)
	d, err := furniture.NewPercentageDiscount(50)
	require.NoError(t, err)
	items[0].Furniture.SetDiscount(d)
	items[0].Quantity = 99

	assert.InDelta(t, before, c.Subtotal(), 1e-9, "篡改返回值不影响购物车小计")
	assert.Equal(t, 2, c.Size())
}

// TestSubtotalAndTotal 小计与总价
func TestSubtotalAndTotal(t *testing.T) {
	chair := newChair(t, "c1", "wood", 100)
	stock := &fakeStock{items: []furniture.Item{{Furniture: chair, Quantity: 10}}}

	t.Run("小计是含税最终价乘数量", func(t *testing.T) {
		c := NewShoppingCart(stock)
		require.NoError(t, c.AddItem(chair, 2))

		want := 2 * 100 * (1 + furniture.TaxRate)
		assert.InDelta(t, want, c.Subtotal(), 1e-9)
		assert.InDelta(t, want, c.Total(), 1e-9, "默认无折扣时总价等于小计")
	})

	t.Run("购物车折扣应用于小计", func(t *testing.T) {
		c := NewShoppingCart(stock)
		require.NoError(t, c.AddItem(chair, 2))

		d, err := furniture.NewPercentageDiscount(10)
		require.NoError(t, err)
		c.SetDiscount(d)

		assert.InDelta(t, c.Subtotal()*0.9, c.Total(), 1e-9)
	})

	t.Run("商品折扣已折进小计再叠加购物车折扣", func(t *testing.T) {
		discounted := newChair(t, "c2", "leather", 200)
		productDiscount, err := furniture.NewFixedAmountDiscount(50)
		require.NoError(t, err)
		discounted.SetDiscount(productDiscount)

		s := &fakeStock{items: []furniture.Item{{Furniture: discounted, Quantity: 5}}}
		c := NewShoppingCart(s)
		require.NoError(t, c.AddItem(discounted, 1))

		subtotal := (200 - 50) * (1 + furniture.TaxRate)
		assert.InDelta(t, subtotal, c.Subtotal(), 1e-9)

		cartDiscount, err := furniture.NewPercentageDiscount(20)
		require.NoError(t, err)
		c.SetDiscount(cartDiscount)
		assert.InDelta(t, subtotal*0.8, c.Total(), 1e-9)
	})

	t.Run("置空折扣回退为无折扣", func(t *testing.T) {
		c := NewShoppingCart(stock)
		require.NoError(t, c.AddItem(chair, 1))

		d, err := furniture.NewPercentageDiscount(10)
		require.NoError(t, err)
		c.SetDiscount(d)
		c.SetDiscount(nil)

		assert.InDelta(t, c.Subtotal(), c.Total(), 1e-9)
		assert.NotNil(t, c.Discount())
	})
}

// TestClear 清空购物车
func TestClear(t *testing.T) {
	chair := newChair(t, "c1", "wood", 100)
	stock := &fakeStock{items: []furniture.Item{{Furniture: chair, Quantity: 10}}}
	c := NewShoppingCart(stock)

	assert.True(t, c.IsEmpty())
	assert.Equal(t, 0, c.Size())

	require.NoError(t, c.AddItem(chair, 3))
	assert.False(t, c.IsEmpty())

	c.Clear()
	assert.True(t, c.IsEmpty())
	assert.Equal(t, 0, c.Size())
	assert.Empty(t, c.Items())
	assert.Zero(t, c.Subtotal())
}
