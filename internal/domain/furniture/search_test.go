package furniture

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildCatalog 组装搜索用的库存快照
func buildCatalog(t *testing.T) []Item {
	t.Helper()

	woodChair, err := NewChair("wood", 100, "实木椅")
	require.NoError(t, err)
	require.NoError(t, woodChair.SetID("c1"))

	leatherChair, err := NewChair("leather", 300, "皮椅")
	require.NoError(t, err)
	require.NoError(t, leatherChair.SetID("c2"))

	blackSofa, err := NewSofa(3, "black", 2000, "")
	require.NoError(t, err)
	require.NoError(t, blackSofa.SetID("s1"))

	graySofa, err := NewSofa(4, "gray", 2500, "")
	require.NoError(t, err)
	require.NoError(t, graySofa.SetID("s2"))

	kingBed, err := NewBed("king", 5000, "")
	require.NoError(t, err)
	require.NoError(t, kingBed.SetID("b1"))

	return []Item{
		{Furniture: woodChair, Quantity: 10},
		{Furniture: leatherChair, Quantity: 2},
		{Furniture: blackSofa, Quantity: 5},
		{Furniture: graySofa, Quantity: 1},
		{Furniture: kingBed, Quantity: 3},
	}
}

func idsOf(items []Item) []string {
	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.Furniture.ID())
	}
	return ids
}

// TestNameSearch 名称搜索
func TestNameSearch(t *testing.T) {
	catalog := buildCatalog(t)

	t.Run("子串匹配且大小写不敏感", func(t *testing.T) {
		results := NewNameSearch("CHA").Search(catalog)
		assert.ElementsMatch(t, []string{"c1", "c2"}, idsOf(results))
	})

	t.Run("完整品类名", func(t *testing.T) {
		results := NewNameSearch("sofa").Search(catalog)
		assert.Len(t, results, 2)
	})

	t.Run("无匹配返回空列表", func(t *testing.T) {
		results := NewNameSearch("desk").Search(catalog)
		assert.Empty(t, results)
		assert.NotNil(t, results)
	})
}

// TestPriceRangeSearch 价格区间搜索
func TestPriceRangeSearch(t *testing.T) {
	catalog := buildCatalog(t)

	t.Run("闭区间边界包含", func(t *testing.T) {
		s, err := NewPriceRangeSearch(100, 2000)
		require.NoError(t, err)
		results := s.Search(catalog)
		assert.ElementsMatch(t, []string{"c1", "c2", "s1"}, idsOf(results),
			"区间两端的100和2000都应该命中")
	})

	t.Run("默认无上限", func(t *testing.T) {
		s, err := NewOpenPriceRangeSearch(0)
		require.NoError(t, err)
		assert.Len(t, s.Search(catalog), 5, "默认区间应该命中全部商品")
	})

	t.Run("无上限从某价格起", func(t *testing.T) {
		s, err := NewPriceRangeSearch(2500, math.Inf(1))
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"s2", "b1"}, idsOf(s.Search(catalog)))
	})

	t.Run("非法区间构造失败", func(t *testing.T) {
		_, err := NewPriceRangeSearch(-1, 100)
		assert.Error(t, err)

		_, err = NewPriceRangeSearch(200, 100)
		assert.Error(t, err)
	})
}

// TestAttributeSearch 属性搜索
func TestAttributeSearch(t *testing.T) {
	catalog := buildCatalog(t)

	t.Run("按属性值匹配", func(t *testing.T) {
		results := NewAttributeSearch("material", "wood", "").Search(catalog)
		assert.ElementsMatch(t, []string{"c1"}, idsOf(results))
	})

	t.Run("属性值大小写不敏感", func(t *testing.T) {
		results := NewAttributeSearch("color", "BLACK", "").Search(catalog)
		assert.ElementsMatch(t, []string{"s1"}, idsOf(results))
	})

	t.Run("品类过滤", func(t *testing.T) {
		// size属性床和桌子都有，限定品类后只返回床
		results := NewAttributeSearch("size", "king", KindBed).Search(catalog)
		assert.ElementsMatch(t, []string{"b1"}, idsOf(results))

		results = NewAttributeSearch("size", "king", KindTable).Search(catalog)
		assert.Empty(t, results, "品类不符即使属性匹配也不返回")
	})

	t.Run("缺少属性的商品被排除而非报错", func(t *testing.T) {
		results := NewAttributeSearch("material", "wood", "").Search(catalog)
		for _, it := range results {
			assert.Equal(t, KindChair, it.Furniture.Kind(), "只有椅子有material属性")
		}
	})

	t.Run("数值属性可用字符串查询", func(t *testing.T) {
		results := NewAttributeSearch("seats", "4", "").Search(catalog)
		assert.ElementsMatch(t, []string{"s2"}, idsOf(results))

		results = NewAttributeSearch("seats", 3, "").Search(catalog)
		assert.ElementsMatch(t, []string{"s1"}, idsOf(results))

		results = NewAttributeSearch("seats", float64(4), "").Search(catalog)
		assert.ElementsMatch(t, []string{"s2"}, idsOf(results), "JSON数值float64也能匹配")
	})

	t.Run("搜索不修改快照", func(t *testing.T) {
		before := len(catalog)
		NewAttributeSearch("color", "black", KindSofa).Search(catalog)
		assert.Len(t, catalog, before)
		assert.Equal(t, 5, catalog[2].Quantity)
	})

	t.Run("结果保持快照顺序", func(t *testing.T) {
		results := NewNameSearch("chair").Search(catalog)
		assert.Equal(t, []string{"c1", "c2"}, idsOf(results))
	})
}
