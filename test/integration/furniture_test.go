package integration

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 教学说明：商品目录模块集成测试
//
// 测试场景覆盖：
// 1. 商品上架（需要认证）、同款合并库存
// 2. 商品检索（公开接口）：按名称、按价格区间、按属性
// 3. 库存调整、商品下架
// 4. 参数验证（品类、属性、价格、数量）

// TestFurnitureAdd 测试商品上架功能
func TestFurnitureAdd(t *testing.T) {
	// 准备测试数据：注册并登录用户
	_, token := RegisterTestUser(t, "furniture_seller")

	t.Run("正常上架椅子", func(t *testing.T) {
		furnitureReq := map[string]interface{}{
			"type":        "chair",
			"price":       100,
			"description": fmt.Sprintf("实木餐椅_%d", time.Now().UnixNano()),
			"attributes": map[string]interface{}{
				"material": "wood",
			},
			"quantity": 10,
		}

		resp := PostJSON(t, BaseURL+"/furniture", furnitureReq, token)

		assert.Equal(t, 0, resp.Code, "上架应该成功")

		var data FurnitureData
		err := json.Unmarshal(resp.Data, &data)
		require.NoError(t, err, "解析响应数据失败")

		assert.NotEmpty(t, data.ID, "商品ID不应该为空")
		assert.Equal(t, "chair", data.Name, "品类名应该是chair")
		assert.Equal(t, 100.0, data.Price, "基础价应该一致")
		// 含税价 = 基础价 * 1.18
		assert.InDelta(t, 118.0, data.FinalPrice, 0.01, "含税价应该是基础价的1.18倍")
		assert.Equal(t, 10, data.Quantity, "库存应该一致")
		assert.Equal(t, "wood", data.Attributes["material"], "材质属性应该一致")

		t.Logf("✓ 上架成功，商品ID: %s, 含税价: %.2f", data.ID, data.FinalPrice)
	})

	t.Run("未登录不能上架", func(t *testing.T) {
		furnitureReq := map[string]interface{}{
			"type":        "chair",
			"price":       100,
			"description": "未登录测试",
			"attributes": map[string]interface{}{
				"material": "wood",
			},
			"quantity": 10,
		}

		resp := PostJSON(t, BaseURL+"/furniture", furnitureReq, "") // 空token

		assert.NotEqual(t, 0, resp.Code, "未登录应该失败")

		t.Logf("✓ 未登录正确被拒绝: %s", resp.Message)
	})

	t.Run("未知品类应失败", func(t *testing.T) {
		furnitureReq := map[string]interface{}{
			"type":        "spaceship", // 不存在的品类
			"price":       100,
			"description": "未知品类测试",
			"attributes":  map[string]interface{}{},
			"quantity":    1,
		}

		resp := PostJSON(t, BaseURL+"/furniture", furnitureReq, token)

		assert.NotEqual(t, 0, resp.Code, "未知品类应该失败")

		t.Logf("✓ 未知品类正确返回错误: %s", resp.Message)
	})

	t.Run("椅子缺少材质应失败", func(t *testing.T) {
		furnitureReq := map[string]interface{}{
			"type":        "chair",
			"price":       100,
			"description": "缺材质测试",
			"attributes":  map[string]interface{}{}, // 没有material
			"quantity":    1,
		}

		resp := PostJSON(t, BaseURL+"/furniture", furnitureReq, token)

		assert.NotEqual(t, 0, resp.Code, "缺少必需属性应该失败")

		t.Logf("✓ 缺少材质正确返回错误: %s", resp.Message)
	})

	t.Run("无效材质应失败", func(t *testing.T) {
		furnitureReq := map[string]interface{}{
			"type":        "chair",
			"price":       100,
			"description": "无效材质测试",
			"attributes": map[string]interface{}{
				"material": "diamond", // 不在枚举内
			},
			"quantity": 1,
		}

		resp := PostJSON(t, BaseURL+"/furniture", furnitureReq, token)

		assert.NotEqual(t, 0, resp.Code, "无效材质应该失败")
		assert.Contains(t, resp.Message, "材质", "错误信息应该提示材质相关")

		t.Logf("✓ 无效材质正确返回错误: %s", resp.Message)
	})

	t.Run("负价格应失败", func(t *testing.T) {
		furnitureReq := map[string]interface{}{
			"type":        "chair",
			"price":       -1,
			"description": "负价格测试",
			"attributes": map[string]interface{}{
				"material": "wood",
			},
			"quantity": 1,
		}

		resp := PostJSON(t, BaseURL+"/furniture", furnitureReq, token)

		assert.NotEqual(t, 0, resp.Code, "负价格应该失败")

		t.Logf("✓ 负价格正确返回错误: %s", resp.Message)
	})

	t.Run("同款商品合并库存", func(t *testing.T) {
		// 教学说明：同品类+同属性+同价格+同描述判定为同款，
		// 重复上架不会生成新商品，而是在原商品上累加库存
		description := fmt.Sprintf("合并库存测试椅_%d", time.Now().UnixNano())
		furnitureReq := map[string]interface{}{
			"type":        "chair",
			"price":       88,
			"description": description,
			"attributes": map[string]interface{}{
				"material": "plastic",
			},
			"quantity": 3,
		}

		resp1 := PostJSON(t, BaseURL+"/furniture", furnitureReq, token)
		require.Equal(t, 0, resp1.Code, "第一次上架应该成功")

		var data1 FurnitureData
		err := json.Unmarshal(resp1.Data, &data1)
		require.NoError(t, err, "解析第一次上架响应失败")

		// 第二次上架同款
		resp2 := PostJSON(t, BaseURL+"/furniture", furnitureReq, token)
		require.Equal(t, 0, resp2.Code, "第二次上架应该成功")

		var data2 FurnitureData
		err = json.Unmarshal(resp2.Data, &data2)
		require.NoError(t, err, "解析第二次上架响应失败")

		assert.Equal(t, data1.ID, data2.ID, "同款商品应该复用同一个ID")
		assert.Equal(t, 6, data2.Quantity, "库存应该累加（3+3）")

		t.Logf("✓ 同款合并库存成功，ID: %s, 库存: 3 → %d", data2.ID, data2.Quantity)
	})
}

// TestFurnitureSearch 测试商品检索功能
func TestFurnitureSearch(t *testing.T) {
	_, token := RegisterTestUser(t, "search_seller")

	// 准备测试数据：上架一把特殊价格的椅子（价格用随机区间避开其他测试数据）
	markerPrice := float64(70000 + time.Now().UnixNano()%10000)
	description := fmt.Sprintf("检索测试椅_%d", time.Now().UnixNano())
	furnitureReq := map[string]interface{}{
		"type":        "chair",
		"price":       markerPrice,
		"description": description,
		"attributes": map[string]interface{}{
			"material": "leather",
		},
		"quantity": 5,
	}
	addResp := PostJSON(t, BaseURL+"/furniture", furnitureReq, token)
	require.Equal(t, 0, addResp.Code, "准备测试数据：上架失败")

	var added FurnitureData
	err := json.Unmarshal(addResp.Data, &added)
	require.NoError(t, err, "解析上架响应失败")

	t.Run("按名称检索", func(t *testing.T) {
		resp := GetJSON(t, BaseURL+"/furniture?name=chair", "")

		assert.Equal(t, 0, resp.Code, "按名称检索应该成功")

		var data FurnitureListData
		err := json.Unmarshal(resp.Data, &data)
		require.NoError(t, err, "解析响应数据失败")

		assert.NotZero(t, data.Total, "应该至少检索到一把椅子")
		found := false
		for _, item := range data.Items {
			assert.Equal(t, "chair", item.Name, "检索结果应该全部是椅子")
			if item.ID == added.ID {
				found = true
			}
		}
		assert.True(t, found, "检索结果应该包含刚上架的椅子")

		t.Logf("✓ 按名称检索成功，共%d件", data.Total)
	})

	t.Run("按价格区间检索", func(t *testing.T) {
		// 教学说明：价格区间匹配的是基础价（不含税），闭区间
		url := fmt.Sprintf("%s/furniture?min_price=%.0f&max_price=%.0f", BaseURL, markerPrice, markerPrice)
		resp := GetJSON(t, url, "")

		assert.Equal(t, 0, resp.Code, "按价格区间检索应该成功")

		var data FurnitureListData
		err := json.Unmarshal(resp.Data, &data)
		require.NoError(t, err, "解析响应数据失败")

		found := false
		for _, item := range data.Items {
			assert.GreaterOrEqual(t, item.Price, markerPrice, "价格应该不低于下界")
			assert.LessOrEqual(t, item.Price, markerPrice, "价格应该不高于上界")
			if item.ID == added.ID {
				found = true
			}
		}
		assert.True(t, found, "区间检索应该命中刚上架的椅子")

		t.Logf("✓ 价格区间检索成功，命中%d件", data.Total)
	})

	t.Run("只给下界的开区间检索", func(t *testing.T) {
		url := fmt.Sprintf("%s/furniture?min_price=%.0f", BaseURL, markerPrice)
		resp := GetJSON(t, url, "")

		assert.Equal(t, 0, resp.Code, "开区间检索应该成功")

		var data FurnitureListData
		err := json.Unmarshal(resp.Data, &data)
		require.NoError(t, err, "解析响应数据失败")

		found := false
		for _, item := range data.Items {
			assert.GreaterOrEqual(t, item.Price, markerPrice, "价格应该不低于下界")
			if item.ID == added.ID {
				found = true
			}
		}
		assert.True(t, found, "开区间检索应该命中刚上架的椅子")

		t.Logf("✓ 开区间检索成功，命中%d件", data.Total)
	})

	t.Run("按属性检索", func(t *testing.T) {
		resp := GetJSON(t, BaseURL+"/furniture?attribute_name=material&attribute_value=leather&type=chair", "")

		assert.Equal(t, 0, resp.Code, "按属性检索应该成功")

		var data FurnitureListData
		err := json.Unmarshal(resp.Data, &data)
		require.NoError(t, err, "解析响应数据失败")

		found := false
		for _, item := range data.Items {
			assert.Equal(t, "leather", item.Attributes["material"], "检索结果材质应该全部是leather")
			if item.ID == added.ID {
				found = true
			}
		}
		assert.True(t, found, "属性检索应该命中刚上架的椅子")

		t.Logf("✓ 按属性检索成功，命中%d件", data.Total)
	})

	t.Run("无条件返回全部商品", func(t *testing.T) {
		resp := GetJSON(t, BaseURL+"/furniture", "")

		assert.Equal(t, 0, resp.Code, "无条件检索应该成功")

		var data FurnitureListData
		err := json.Unmarshal(resp.Data, &data)
		require.NoError(t, err, "解析响应数据失败")

		assert.NotZero(t, data.Total, "在架商品不应该为空")

		t.Logf("✓ 全量列表查询成功，共%d件", data.Total)
	})

	t.Run("商品详情", func(t *testing.T) {
		resp := GetJSON(t, BaseURL+"/furniture/"+added.ID, "")

		assert.Equal(t, 0, resp.Code, "查询详情应该成功")

		var data FurnitureData
		err := json.Unmarshal(resp.Data, &data)
		require.NoError(t, err, "解析响应数据失败")

		assert.Equal(t, added.ID, data.ID, "商品ID应该一致")
		assert.Equal(t, description, data.Description, "描述应该一致")

		t.Logf("✓ 商品详情查询成功: %s", data.ID)
	})

	t.Run("商品不存在应返回404错误码", func(t *testing.T) {
		resp := GetJSON(t, BaseURL+"/furniture/nonexistent-id", "")

		// 40402: 商品不存在
		assert.Equal(t, 40402, resp.Code, "不存在的商品应该返回40402")

		t.Logf("✓ 商品不存在正确返回错误: %s", resp.Message)
	})
}

// TestFurnitureStock 测试库存调整与下架
func TestFurnitureStock(t *testing.T) {
	_, token := RegisterTestUser(t, "stock_manager")

	t.Run("调整库存", func(t *testing.T) {
		furnitureID := AddTestChair(t, token, 100, 10)

		setReq := map[string]interface{}{"quantity": 25}
		resp := PutJSON(t, BaseURL+"/furniture/"+furnitureID, setReq, token)

		assert.Equal(t, 0, resp.Code, "调整库存应该成功")

		// 查详情确认
		getResp := GetJSON(t, BaseURL+"/furniture/"+furnitureID, "")
		require.Equal(t, 0, getResp.Code, "查询详情失败")

		var data FurnitureData
		err := json.Unmarshal(getResp.Data, &data)
		require.NoError(t, err, "解析响应数据失败")

		assert.Equal(t, 25, data.Quantity, "库存应该更新为25")

		t.Logf("✓ 库存调整成功: 10 → %d", data.Quantity)
	})

	t.Run("库存清零商品仍在架", func(t *testing.T) {
		// 教学说明：quantity=0表示售罄，商品仍可浏览，与下架是两个概念
		furnitureID := AddTestChair(t, token, 100, 10)

		setReq := map[string]interface{}{"quantity": 0}
		resp := PutJSON(t, BaseURL+"/furniture/"+furnitureID, setReq, token)
		assert.Equal(t, 0, resp.Code, "清零库存应该成功")

		getResp := GetJSON(t, BaseURL+"/furniture/"+furnitureID, "")
		assert.Equal(t, 0, getResp.Code, "售罄商品应该仍可查询")

		var data FurnitureData
		err := json.Unmarshal(getResp.Data, &data)
		require.NoError(t, err, "解析响应数据失败")
		assert.Equal(t, 0, data.Quantity, "库存应该为0")

		t.Logf("✓ 售罄商品仍在架，库存: %d", data.Quantity)
	})

	t.Run("下架商品", func(t *testing.T) {
		furnitureID := AddTestChair(t, token, 100, 10)

		resp := DeleteJSON(t, BaseURL+"/furniture/"+furnitureID, token)
		assert.Equal(t, 0, resp.Code, "下架应该成功")

		// 下架后查询应该404
		getResp := GetJSON(t, BaseURL+"/furniture/"+furnitureID, "")
		assert.Equal(t, 40402, getResp.Code, "下架后的商品不应该能查到")

		t.Logf("✓ 商品下架成功，查询正确返回: %s", getResp.Message)
	})

	t.Run("未登录不能调整库存", func(t *testing.T) {
		furnitureID := AddTestChair(t, token, 100, 10)

		setReq := map[string]interface{}{"quantity": 99}
		resp := PutJSON(t, BaseURL+"/furniture/"+furnitureID, setReq, "")

		assert.NotEqual(t, 0, resp.Code, "未登录应该被拒绝")

		t.Logf("✓ 未登录正确被拒绝: %s", resp.Message)
	})
}
