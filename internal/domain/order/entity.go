package order

import (
	"fmt"
	"strings"
	"time"

	"github.com/xiebiao/furnistore/internal/domain/furniture"
)

// PaymentMethod 支付方式
// 教学要点:
// 1. 值就是对外展示的名称，序列化和API响应直接使用
// 2. 定义为类型别名，便于添加方法
type PaymentMethod string

const (
	PaymentCreditCard PaymentMethod = "Credit Card"
	PaymentPayPal     PaymentMethod = "PayPal"
	PaymentApplePay   PaymentMethod = "Apple Pay"
	PaymentGooglePay  PaymentMethod = "Google Pay"
)

// PaymentMethods 全部支付方式
func PaymentMethods() []PaymentMethod {
	return []PaymentMethod{PaymentCreditCard, PaymentPayPal, PaymentApplePay, PaymentGooglePay}
}

// ParsePaymentMethod 解析支付方式（大小写不敏感）
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	for _, m := range PaymentMethods() {
		if strings.EqualFold(s, string(m)) {
			return m, nil
		}
	}
	return "", ErrUnknownPaymentMethod(s)
}

// Order 订单实体（聚合根）
// 教学要点:
// 1. 订单一经创建不可变更：字段不导出，只提供读方法
// 2. 行项目保存的是家具快照，商家后续改价不影响历史订单
// 3. TotalPrice冗余存储结算时刻的应付金额（防止重算口径漂移）
type Order struct {
	id              string
	userID          string
	items           []furniture.Item
	totalPrice      float64
	paymentMethod   PaymentMethod
	shippingAddress string
	date            time.Time
}

// NewOrder 创建订单（工厂方法）
// 在构造时完成全部校验，不允许存在无效的订单实例
func NewOrder(userID string, items []furniture.Item, totalPrice float64, method PaymentMethod, shippingAddress string) (*Order, error) {
	if userID == "" {
		return nil, ErrMissingUserID
	}
	if len(items) == 0 {
		return nil, ErrEmptyOrder
	}
	if totalPrice < 0 {
		return nil, ErrNegativeTotal
	}
	if _, err := ParsePaymentMethod(string(method)); err != nil {
		return nil, err
	}
	if shippingAddress == "" {
		return nil, ErrMissingAddress
	}

	snapshot := make([]furniture.Item, 0, len(items))
	for _, item := range items {
		if item.Furniture == nil {
			return nil, furniture.ErrNilFurniture
		}
		snapshot = append(snapshot, furniture.Item{
			Furniture: item.Furniture.Clone(),
			Quantity:  item.Quantity,
		})
	}

	return &Order{
		id:              GenerateOrderNo(),
		userID:          userID,
		items:           snapshot,
		totalPrice:      totalPrice,
		paymentMethod:   method,
		shippingAddress: shippingAddress,
		date:            time.Now(),
	}, nil
}

// ID 订单ID
func (o *Order) ID() string {
	return o.id
}

// UserID 买家用户ID
func (o *Order) UserID() string {
	return o.userID
}

// Items 订单行项目（返回拷贝，订单内容不可被外部改动）
func (o *Order) Items() []furniture.Item {
	results := make([]furniture.Item, 0, len(o.items))
	for _, item := range o.items {
		results = append(results, furniture.Item{
			Furniture: item.Furniture.Clone(),
			Quantity:  item.Quantity,
		})
	}
	return results
}

// TotalPrice 订单总价（结算时刻快照）
func (o *Order) TotalPrice() float64 {
	return o.totalPrice
}

// PaymentMethod 支付方式
func (o *Order) PaymentMethod() PaymentMethod {
	return o.paymentMethod
}

// ShippingAddress 收货地址
func (o *Order) ShippingAddress() string {
	return o.shippingAddress
}

// Date 下单时间
func (o *Order) Date() time.Time {
	return o.date
}

// String 实现Stringer接口（方便日志输出）
func (o *Order) String() string {
	return fmt.Sprintf("订单 #%s - $%.2f", o.id, o.totalPrice)
}
