package order

import (
	"context"
	"time"
)

// Record 订单的持久化形态
// 行项目里的unit_price是结算时刻的含折扣含税单价快照
type Record struct {
	OrderID         string       `json:"order_id"`
	UserID          string       `json:"user_id"`
	Date            string       `json:"date"` // ISO-8601
	TotalPrice      float64      `json:"total_price"`
	PaymentMethod   string       `json:"payment_method"`
	ShippingAddress string       `json:"shipping_address"`
	Items           []ItemRecord `json:"items"`
}

// ItemRecord 订单行项目的持久化形态
type ItemRecord struct {
	FurnitureID string  `json:"furniture_id"`
	Name        string  `json:"name"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
}

// Repository 订单仓储接口(依赖倒置原则)
// 教学要点:
// 1. 由domain层定义接口,infrastructure层实现
// 2. 历史订单只追加不修改，仓储只需全量读写两个口子
// 3. 支持事务操作(通过context传递事务)
type Repository interface {
	// LoadAll 读取全部历史订单
	LoadAll(ctx context.Context) ([]Record, error)

	// SaveAll 全量写入历史订单
	SaveAll(ctx context.Context, records []Record) error
}

// ToRecord 把订单实体转为持久化记录
func ToRecord(o *Order) Record {
	items := make([]ItemRecord, 0, len(o.items))
	for _, item := range o.items {
		items = append(items, ItemRecord{
			FurnitureID: item.Furniture.ID(),
			Name:        item.Furniture.Name(),
			Quantity:    item.Quantity,
			UnitPrice:   item.Furniture.FinalPrice(),
		})
	}
	return Record{
		OrderID:         o.id,
		UserID:          o.userID,
		Date:            o.date.Format(time.RFC3339),
		TotalPrice:      o.totalPrice,
		PaymentMethod:   string(o.paymentMethod),
		ShippingAddress: o.shippingAddress,
		Items:           items,
	}
}
