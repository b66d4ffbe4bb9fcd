package integration

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 教学说明：用户模块集成测试
//
// 集成测试 vs 单元测试：
// - 单元测试：Mock外部依赖（数据库、Redis），测试单个函数的逻辑
// - 集成测试：使用真实的数据库和Redis，测试完整的API流程
//
// 集成测试的价值：
// 1. 验证各组件协同工作（Handler → UseCase → Service → Repository → Database）
// 2. 发现配置错误（如数据库连接、Wire依赖注入）
// 3. 验证业务流程的完整性
//
// 运行方式：
//   go test -v ./test/integration/...   # 需要先启动服务和依赖环境

// TestUserRegister 测试用户注册功能
//
// 测试场景：
// 1. 正常注册
// 2. 重复用户名注册（应失败）
// 3. 密码格式校验
// 4. 邮箱格式校验
func TestUserRegister(t *testing.T) {
	// 教学说明：使用t.Run()组织子测试
	// 好处：
	// 1. 测试结果更清晰（可以看到每个子场景的结果）
	// 2. 子测试失败不影响其他子测试
	// 3. 可以使用 go test -run=TestUserRegister/正常注册 运行单个子测试

	t.Run("正常注册", func(t *testing.T) {
		username := GenerateTestUsername("normal_user")
		email := GenerateTestEmail("normal_user")
		registerReq := map[string]string{
			"username":         username,
			"full_name":        "测试用户",
			"email":            email,
			"password":         TestPassword,
			"shipping_address": TestAddress,
		}

		resp := PostJSON(t, BaseURL+"/users/register", registerReq, "")

		assert.Equal(t, 0, resp.Code, "注册应该成功")

		var data UserData
		err := json.Unmarshal(resp.Data, &data)
		require.NoError(t, err, "解析响应数据失败")

		assert.NotEmpty(t, data.ID, "用户ID不应该为空")
		assert.Equal(t, username, data.Username, "返回的用户名应该与请求一致")
		assert.Equal(t, email, data.Email, "返回的邮箱应该与请求一致")
		assert.Equal(t, TestAddress, data.ShippingAddress, "返回的收货地址应该与请求一致")

		t.Logf("✓ 注册成功，用户ID: %s", data.ID)
	})

	t.Run("重复用户名注册应失败", func(t *testing.T) {
		// 第一次注册
		username := GenerateTestUsername("duplicate_user")
		registerReq := map[string]string{
			"username":  username,
			"full_name": "测试用户1",
			"email":     GenerateTestEmail("duplicate_user1"),
			"password":  TestPassword,
		}

		resp1 := PostJSON(t, BaseURL+"/users/register", registerReq, "")
		require.Equal(t, 0, resp1.Code, "第一次注册应该成功")

		// 第二次注册（相同用户名，不同邮箱）
		registerReq["email"] = GenerateTestEmail("duplicate_user2")
		registerReq["full_name"] = "测试用户2"
		resp2 := PostJSON(t, BaseURL+"/users/register", registerReq, "")

		// 教学说明：错误码定义
		// 40901: 用户名或邮箱已存在（409 Conflict + 01自定义业务码）
		assert.NotEqual(t, 0, resp2.Code, "重复用户名注册应该失败")

		t.Logf("✓ 重复用户名注册正确返回错误: %s", resp2.Message)
	})

	t.Run("密码过短应失败", func(t *testing.T) {
		registerReq := map[string]string{
			"username":  GenerateTestUsername("short_pwd"),
			"full_name": "测试用户",
			"email":     GenerateTestEmail("short_pwd"),
			"password":  "123", // 太短（<8位）
		}

		resp := PostJSON(t, BaseURL+"/users/register", registerReq, "")

		assert.NotEqual(t, 0, resp.Code, "密码过短应该失败")
		// 错误信息可能是英文参数验证信息，这里只检查响应码

		t.Logf("✓ 密码过短正确返回错误: %s", resp.Message)
	})

	t.Run("邮箱格式错误应失败", func(t *testing.T) {
		registerReq := map[string]string{
			"username":  GenerateTestUsername("bad_email"),
			"full_name": "测试用户",
			"email":     "invalid-email", // 无效邮箱格式
			"password":  TestPassword,
		}

		resp := PostJSON(t, BaseURL+"/users/register", registerReq, "")

		assert.NotEqual(t, 0, resp.Code, "邮箱格式错误应该失败")

		t.Logf("✓ 邮箱格式错误正确返回错误: %s", resp.Message)
	})
}

// TestUserLogin 测试用户登录功能
//
// 测试场景：
// 1. 用户名登录、邮箱登录
// 2. 密码错误
// 3. 用户不存在
// 4. Token有效性
func TestUserLogin(t *testing.T) {
	// 准备测试数据：先注册一个用户
	username := GenerateTestUsername("login_test")
	email := GenerateTestEmail("login_test")
	registerReq := map[string]string{
		"username":         username,
		"full_name":        "登录测试用户",
		"email":            email,
		"password":         TestPassword,
		"shipping_address": TestAddress,
	}

	registerResp := PostJSON(t, BaseURL+"/users/register", registerReq, "")
	require.Equal(t, 0, registerResp.Code, "准备测试数据：注册用户")

	t.Run("用户名登录", func(t *testing.T) {
		loginReq := map[string]string{
			"account":  username,
			"password": TestPassword,
		}

		resp := PostJSON(t, BaseURL+"/users/login", loginReq, "")

		assert.Equal(t, 0, resp.Code, "登录应该成功")

		var data LoginData
		err := json.Unmarshal(resp.Data, &data)
		require.NoError(t, err, "解析响应数据失败")

		assert.NotEmpty(t, data.AccessToken, "应该返回access_token")
		assert.NotEmpty(t, data.RefreshToken, "应该返回refresh_token")
		assert.Equal(t, username, data.User.Username, "返回的用户信息应该与登录账号一致")

		// 教学说明：JWT Token格式
		// JWT由三部分组成：header.payload.signature
		assert.Contains(t, data.AccessToken, ".", "JWT Token应该包含点号分隔符")

		t.Logf("✓ 用户名登录成功，Access Token长度: %d", len(data.AccessToken))
	})

	t.Run("邮箱登录", func(t *testing.T) {
		// account字段同时接受用户名和邮箱
		loginReq := map[string]string{
			"account":  email,
			"password": TestPassword,
		}

		resp := PostJSON(t, BaseURL+"/users/login", loginReq, "")

		assert.Equal(t, 0, resp.Code, "邮箱登录应该成功")

		t.Logf("✓ 邮箱登录成功")
	})

	t.Run("密码错误应失败", func(t *testing.T) {
		loginReq := map[string]string{
			"account":  username,
			"password": "WrongPassword",
		}

		resp := PostJSON(t, BaseURL+"/users/login", loginReq, "")

		assert.NotEqual(t, 0, resp.Code, "密码错误应该失败")

		t.Logf("✓ 密码错误正确返回错误: %s", resp.Message)
	})

	t.Run("用户不存在应失败", func(t *testing.T) {
		loginReq := map[string]string{
			"account":  "nonexistent_user_xyz",
			"password": TestPassword,
		}

		resp := PostJSON(t, BaseURL+"/users/login", loginReq, "")

		assert.NotEqual(t, 0, resp.Code, "用户不存在应该失败")
		// 安全考虑：不应该明确提示"用户不存在"，而是统一返回"用户名或密码错误"
		// 防止攻击者枚举账号

		t.Logf("✓ 用户不存在正确返回错误: %s", resp.Message)
	})

	t.Run("Token可以访问受保护接口", func(t *testing.T) {
		loginReq := map[string]string{
			"account":  username,
			"password": TestPassword,
		}

		loginResp := PostJSON(t, BaseURL+"/users/login", loginReq, "")
		require.Equal(t, 0, loginResp.Code, "登录失败")

		var loginData LoginData
		err := json.Unmarshal(loginResp.Data, &loginData)
		require.NoError(t, err, "解析登录响应失败")

		token := loginData.AccessToken

		// 使用Token访问需要认证的接口（上架商品）
		furnitureReq := map[string]interface{}{
			"type":        "chair",
			"price":       120,
			"description": "Token验证测试椅子",
			"attributes": map[string]interface{}{
				"material": "leather",
			},
			"quantity": 5,
		}

		resp := PostJSON(t, BaseURL+"/furniture", furnitureReq, token)
		assert.Equal(t, 0, resp.Code, "使用有效Token应该可以上架商品")

		t.Logf("✓ Token验证通过，可以访问受保护接口")
	})

	t.Run("无效Token应被拒绝", func(t *testing.T) {
		furnitureReq := map[string]interface{}{
			"type":        "chair",
			"price":       120,
			"description": "无效Token测试",
			"attributes": map[string]interface{}{
				"material": "wood",
			},
			"quantity": 5,
		}

		invalidToken := "invalid.jwt.token"
		resp := PostJSON(t, BaseURL+"/furniture", furnitureReq, invalidToken)

		assert.NotEqual(t, 0, resp.Code, "无效Token应该被拒绝")

		t.Logf("✓ 无效Token正确被拒绝: %s", resp.Message)
	})
}

// TestUserProfile 测试个人资料接口
func TestUserProfile(t *testing.T) {
	username, token := RegisterTestUser(t, "profile_test")

	t.Run("查询个人资料", func(t *testing.T) {
		resp := GetJSON(t, BaseURL+"/users/profile", token)

		assert.Equal(t, 0, resp.Code, "查询资料应该成功")

		var data UserData
		err := json.Unmarshal(resp.Data, &data)
		require.NoError(t, err, "解析响应数据失败")

		assert.Equal(t, username, data.Username, "用户名应该一致")
		assert.Equal(t, TestAddress, data.ShippingAddress, "收货地址应该一致")

		t.Logf("✓ 查询资料成功: %s", data.Username)
	})

	t.Run("更新收货地址", func(t *testing.T) {
		newAddress := "平安街200号8栋1201"
		updateReq := map[string]string{
			"shipping_address": newAddress,
		}

		resp := PutJSON(t, BaseURL+"/users/profile", updateReq, token)
		assert.Equal(t, 0, resp.Code, "更新资料应该成功")

		// 再查一次确认落库
		profileResp := GetJSON(t, BaseURL+"/users/profile", token)
		require.Equal(t, 0, profileResp.Code, "查询资料失败")

		var data UserData
		err := json.Unmarshal(profileResp.Data, &data)
		require.NoError(t, err, "解析响应数据失败")

		assert.Equal(t, newAddress, data.ShippingAddress, "收货地址应该已更新")

		t.Logf("✓ 收货地址更新成功: %s", data.ShippingAddress)
	})

	t.Run("未登录不能查询资料", func(t *testing.T) {
		resp := GetJSON(t, BaseURL+"/users/profile", "")

		assert.NotEqual(t, 0, resp.Code, "未登录应该被拒绝")

		t.Logf("✓ 未登录正确被拒绝: %s", resp.Message)
	})
}

// TestUserAuthFlow 测试完整的认证流程
//
// 教学说明：
// 这是一个"端到端"(E2E)测试，验证完整的用户认证流程
// 注册 → 登录 → 上架商品 → 加入购物车 → 结算下单
func TestUserAuthFlow(t *testing.T) {
	t.Log("========================================")
	t.Log("测试完整认证流程")
	t.Log("========================================")

	// Step 1: 注册新用户
	t.Log("\n➜ Step 1: 注册新用户")
	username := GenerateTestUsername("auth_flow")
	registerReq := map[string]string{
		"username":         username,
		"full_name":        "认证流程测试",
		"email":            GenerateTestEmail("auth_flow"),
		"password":         TestPassword,
		"shipping_address": TestAddress,
	}

	registerResp := PostJSON(t, BaseURL+"/users/register", registerReq, "")
	require.Equal(t, 0, registerResp.Code, "注册失败")

	var registerData UserData
	err := json.Unmarshal(registerResp.Data, &registerData)
	require.NoError(t, err, "解析注册响应失败")

	t.Logf("✓ 注册成功，用户ID: %s, 用户名: %s", registerData.ID, registerData.Username)

	// Step 2: 登录获取Token
	t.Log("\n➜ Step 2: 登录获取Token")
	loginReq := map[string]string{
		"account":  username,
		"password": TestPassword,
	}

	loginResp := PostJSON(t, BaseURL+"/users/login", loginReq, "")
	require.Equal(t, 0, loginResp.Code, "登录失败")

	var loginData LoginData
	err = json.Unmarshal(loginResp.Data, &loginData)
	require.NoError(t, err, "解析登录响应失败")

	token := loginData.AccessToken
	t.Logf("✓ 登录成功，获取Token: %s...", token[:30])

	// Step 3: 使用Token上架商品
	t.Log("\n➜ Step 3: 使用Token上架商品")
	furnitureID := AddTestChair(t, token, 100, 10)
	t.Logf("✓ 上架成功，商品ID: %s", furnitureID)

	// Step 4: 加入购物车并结算（再次验证Token）
	t.Log("\n➜ Step 4: 加入购物车并结算")
	AddToCart(t, token, furnitureID, 2)

	order := CheckoutCart(t, token, "Credit Card")

	assert.NotEmpty(t, order.OrderID, "订单号不应该为空")
	assert.Equal(t, TestAddress, order.ShippingAddress, "订单收货地址应该取自用户资料")
	// 单价 = 100 * 1.18（含税），2件 = 236
	assert.InDelta(t, 236.0, order.TotalPrice, 0.01, "订单金额应该是含税价*数量")

	t.Logf("✓ 下单成功，订单号: %s, 金额: %.2f", order.OrderID, order.TotalPrice)

	t.Log("\n========================================")
	t.Log("✅ 完整认证流程测试通过")
	t.Log("========================================")
	t.Log("\n教学要点：")
	t.Log("1. JWT Token在整个会话中保持有效")
	t.Log("2. Token可以访问所有需要认证的接口")
	t.Log("3. 服务端通过Token识别用户身份（无需Session）")
	t.Log("4. Token存储在Redis中，实现登出功能")
}

// TestUserLogout 测试登出功能
func TestUserLogout(t *testing.T) {
	_, token := RegisterTestUser(t, "logout_test")

	// 登出
	resp := PostJSON(t, BaseURL+"/users/logout", nil, token)
	assert.Equal(t, 0, resp.Code, "登出应该成功")

	// 登出后Token应该失效（加入了Redis黑名单）
	profileResp := GetJSON(t, BaseURL+"/users/profile", token)
	assert.NotEqual(t, 0, profileResp.Code, "登出后Token应该失效")

	t.Logf("✓ 登出后Token正确失效: %s", profileResp.Message)
}
