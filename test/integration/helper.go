package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// 教学说明：测试辅助工具
// 这个文件包含集成测试的通用辅助函数，遵循DRY原则（Don't Repeat Yourself）
// 将重复的代码（HTTP请求、JSON解析）封装成可复用的函数

const (
	// BaseURL API基础URL
	BaseURL = "http://localhost:8080/api/v1"
	// Timeout HTTP请求超时时间
	Timeout = 10 * time.Second
	// TestPassword 测试账号统一密码
	TestPassword = "Test1234"
	// TestAddress 测试账号默认收货地址
	TestAddress = "幸福路100号3单元502"
)

// Response 统一响应结构
type Response struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// UserData 用户响应数据
type UserData struct {
	ID              string `json:"id"`
	Username        string `json:"username"`
	FullName        string `json:"full_name"`
	Email           string `json:"email"`
	ShippingAddress string `json:"shipping_address"`
}

// LoginData 登录响应数据
type LoginData struct {
	User         UserData `json:"user"`
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
	ExpiresIn    int64    `json:"expires_in"`
}

// FurnitureData 商品响应数据
type FurnitureData struct {
	ID          string                 `json:"id"`
	Name        string                 `json:"name"`
	Price       float64                `json:"price"`
	FinalPrice  float64                `json:"final_price"`
	Description string                 `json:"description"`
	Attributes  map[string]interface{} `json:"attributes"`
	Quantity    int                    `json:"quantity"`
}

// FurnitureListData 商品检索响应数据
type FurnitureListData struct {
	Items []FurnitureData `json:"items"`
	Total int             `json:"total"`
}

// CartLineData 购物车行项目
type CartLineData struct {
	FurnitureID string                 `json:"furniture_id"`
	Name        string                 `json:"name"`
	UnitPrice   float64                `json:"unit_price"`
	Quantity    int                    `json:"quantity"`
	LineTotal   float64                `json:"line_total"`
	Attributes  map[string]interface{} `json:"attributes"`
}

// DiscountData 购物车折扣信息
type DiscountData struct {
	Type    string  `json:"type"`
	Percent float64 `json:"percent,omitempty"`
	Amount  float64 `json:"amount,omitempty"`
}

// CartData 购物车响应数据
type CartData struct {
	Items    []CartLineData `json:"items"`
	Size     int            `json:"size"`
	Subtotal float64        `json:"subtotal"`
	Total    float64        `json:"total"`
	Discount DiscountData   `json:"discount"`
}

// OrderItemData 订单行项目
type OrderItemData struct {
	FurnitureID string  `json:"furniture_id"`
	Name        string  `json:"name"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
}

// OrderData 订单响应数据
type OrderData struct {
	OrderID         string          `json:"order_id"`
	UserID          string          `json:"user_id"`
	Date            string          `json:"date"`
	TotalPrice      float64         `json:"total_price"`
	PaymentMethod   string          `json:"payment_method"`
	ShippingAddress string          `json:"shipping_address"`
	Items           []OrderItemData `json:"items"`
}

// CheckoutData 结算响应数据
type CheckoutData struct {
	Order OrderData `json:"order"`
}

// OrderListData 订单列表响应数据
type OrderListData struct {
	Orders []OrderData `json:"orders"`
	Total  int         `json:"total"`
}

// doJSON 发送任意方法的JSON请求并解析响应
func doJSON(t *testing.T, method, url string, data interface{}, token string) *Response {
	var body io.Reader
	if data != nil {
		jsonData, err := json.Marshal(data)
		require.NoError(t, err, "JSON序列化失败")
		body = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequest(method, url, body)
	require.NoError(t, err, "创建HTTP请求失败")

	if data != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: Timeout}
	resp, err := client.Do(req)
	require.NoError(t, err, "发送HTTP请求失败")
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "读取响应体失败")

	var result Response
	err = json.Unmarshal(respBody, &result)
	require.NoError(t, err, "解析JSON响应失败: %s", string(respBody))

	return &result
}

// PostJSON 发送POST请求并解析JSON响应
//
// 教学说明：
// - 使用*testing.T参数，可以在失败时立即终止测试
// - 使用require包进行断言，失败会立即停止（不继续执行）
// - 返回*Response而非error，简化调用方代码
func PostJSON(t *testing.T, url string, data interface{}, token string) *Response {
	return doJSON(t, "POST", url, data, token)
}

// GetJSON 发送GET请求并解析JSON响应
func GetJSON(t *testing.T, url string, token string) *Response {
	return doJSON(t, "GET", url, nil, token)
}

// PutJSON 发送PUT请求并解析JSON响应
func PutJSON(t *testing.T, url string, data interface{}, token string) *Response {
	return doJSON(t, "PUT", url, data, token)
}

// DeleteJSON 发送DELETE请求并解析JSON响应
func DeleteJSON(t *testing.T, url string, token string) *Response {
	return doJSON(t, "DELETE", url, nil, token)
}

// GenerateTestUsername 生成唯一的测试用户名
//
// 教学说明：
// 使用纳秒时间戳确保用户名唯一性，避免测试重复运行时用户名冲突
// （并发注册多个买家时秒级时间戳会碰撞，所以用纳秒）
func GenerateTestUsername(prefix string) string {
	return fmt.Sprintf("%s_%d", prefix, time.Now().UnixNano()%1_000_000_000)
}

// GenerateTestEmail 生成唯一的测试邮箱
func GenerateTestEmail(prefix string) string {
	return fmt.Sprintf("%s_%d@test.com", prefix, time.Now().UnixNano()%1_000_000_000)
}

// RegisterTestUser 注册测试用户（含收货地址）并返回Token
//
// 教学说明：
// 这是一个"高阶"辅助函数，封装了注册+登录的完整流程
// 收货地址是结算的前置条件，所以默认带上
func RegisterTestUser(t *testing.T, prefix string) (username string, token string) {
	username = GenerateTestUsername(prefix)
	registerReq := map[string]string{
		"username":         username,
		"full_name":        "集成测试用户",
		"email":            GenerateTestEmail(prefix),
		"password":         TestPassword,
		"shipping_address": TestAddress,
	}

	registerResp := PostJSON(t, BaseURL+"/users/register", registerReq, "")
	require.Equal(t, 0, registerResp.Code, "注册失败: %s", registerResp.Message)

	loginReq := map[string]string{
		"account":  username,
		"password": TestPassword,
	}

	loginResp := PostJSON(t, BaseURL+"/users/login", loginReq, "")
	require.Equal(t, 0, loginResp.Code, "登录失败: %s", loginResp.Message)

	var loginData LoginData
	err := json.Unmarshal(loginResp.Data, &loginData)
	require.NoError(t, err, "解析登录响应失败")

	return username, loginData.AccessToken
}

// RegisterTestUserWithoutAddress 注册没有收货地址的测试用户
// 用于验证结算前置校验
func RegisterTestUserWithoutAddress(t *testing.T, prefix string) (username string, token string) {
	username = GenerateTestUsername(prefix)
	registerReq := map[string]string{
		"username":  username,
		"full_name": "无地址测试用户",
		"email":     GenerateTestEmail(prefix),
		"password":  TestPassword,
	}

	registerResp := PostJSON(t, BaseURL+"/users/register", registerReq, "")
	require.Equal(t, 0, registerResp.Code, "注册失败: %s", registerResp.Message)

	loginReq := map[string]string{
		"account":  username,
		"password": TestPassword,
	}

	loginResp := PostJSON(t, BaseURL+"/users/login", loginReq, "")
	require.Equal(t, 0, loginResp.Code, "登录失败: %s", loginResp.Message)

	var loginData LoginData
	err := json.Unmarshal(loginResp.Data, &loginData)
	require.NoError(t, err, "解析登录响应失败")

	return username, loginData.AccessToken
}

// AddTestChair 上架测试椅子并返回商品ID
//
// 教学说明：
// 椅子是属性最简单的品类（只需要material），适合做通用测试数据
// description带唯一后缀，避免与已有在架商品判定为同款合并库存
func AddTestChair(t *testing.T, token string, price float64, quantity int) string {
	furnitureReq := map[string]interface{}{
		"type":        "chair",
		"price":       price,
		"description": fmt.Sprintf("集成测试椅子_%d", time.Now().UnixNano()),
		"attributes": map[string]interface{}{
			"material": "wood",
		},
		"quantity": quantity,
	}

	resp := PostJSON(t, BaseURL+"/furniture", furnitureReq, token)
	require.Equal(t, 0, resp.Code, "商品上架失败: %s", resp.Message)

	var data FurnitureData
	err := json.Unmarshal(resp.Data, &data)
	require.NoError(t, err, "解析商品响应失败")

	return data.ID
}

// AddToCart 把指定商品加入当前用户购物车
func AddToCart(t *testing.T, token string, furnitureID string, quantity int) {
	cartReq := map[string]interface{}{
		"furniture_id": furnitureID,
		"quantity":     quantity,
	}

	resp := PostJSON(t, BaseURL+"/cart/items", cartReq, token)
	require.Equal(t, 0, resp.Code, "加入购物车失败: %s", resp.Message)
}

// CheckoutCart 结算当前用户购物车并返回订单数据
func CheckoutCart(t *testing.T, token string, paymentMethod string) OrderData {
	checkoutReq := map[string]string{
		"payment_method": paymentMethod,
	}

	resp := PostJSON(t, BaseURL+"/checkout", checkoutReq, token)
	require.Equal(t, 0, resp.Code, "结算失败: %s", resp.Message)

	var data CheckoutData
	err := json.Unmarshal(resp.Data, &data)
	require.NoError(t, err, "解析结算响应失败")

	return data.Order
}
