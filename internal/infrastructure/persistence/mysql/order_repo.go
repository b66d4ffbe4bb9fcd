package mysql

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/xiebiao/furnistore/internal/domain/order"
	apperrors "github.com/xiebiao/furnistore/pkg/errors"
)

// orderRepository 订单仓储实现(MySQL)
// 教学要点:
// 1. Order和OrderItem是聚合关系,必须一起保存
// 2. 查询时使用Preload预加载明细,避免N+1问题
// 3. 事务通过context传递
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓储
func NewOrderRepository(db *gorm.DB) order.Repository {
	return &orderRepository{db: db}
}

// LoadAll 读取全部历史订单
// 教学要点:使用Preload预加载Items,避免N+1查询
func (r *orderRepository) LoadAll(ctx context.Context) ([]order.Record, error) {
	var models []OrderModel
	db := r.getDB(ctx)

	// Preload("Items")会执行:
	// 1. SELECT * FROM orders
	// 2. SELECT * FROM order_items WHERE order_id IN (?)
	err := db.Preload("Items").Order("date ASC").Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "读取历史订单失败")
	}

	records := make([]order.Record, len(models))
	for i, model := range models {
		records[i] = toOrderRecord(&model)
	}
	return records, nil
}

// SaveAll 全量写入历史订单
// 教学要点:
// 1. 快照语义:结算补偿撤单后,被撤订单必须从库里消失,
//    所以是先清后写而不是追加
// 2. 明细和订单在同一事务里重建,保证聚合完整
func (r *orderRepository) SaveAll(ctx context.Context, records []order.Record) error {
	db := r.getDB(ctx)
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).
			Delete(&OrderItemModel{}).Error; err != nil {
			return apperrors.Wrap(err, "清空订单明细失败")
		}
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).
			Delete(&OrderModel{}).Error; err != nil {
			return apperrors.Wrap(err, "清空订单失败")
		}
		if len(records) == 0 {
			return nil
		}

		models := make([]*OrderModel, len(records))
		for i, rec := range records {
			model, err := toOrderModel(rec)
			if err != nil {
				return err
			}
			models[i] = model
		}
		// GORM的Create会自动保存关联的Items(通过foreignKey)
		if err := tx.Create(&models).Error; err != nil {
			return apperrors.Wrap(err, "写入历史订单失败")
		}
		return nil
	})
}

// =========================================
// 辅助函数:模型转换
// =========================================

// toOrderModel 订单记录 → GORM模型
// 记录里的日期是RFC3339字符串,入库前转成time.Time
func toOrderModel(rec order.Record) (*OrderModel, error) {
	date, err := time.Parse(time.RFC3339, rec.Date)
	if err != nil {
		return nil, apperrors.Wrapf(err, "订单%s日期格式错误", rec.OrderID)
	}

	items := make([]OrderItemModel, len(rec.Items))
	for i, item := range rec.Items {
		items[i] = OrderItemModel{
			OrderID:     rec.OrderID,
			FurnitureID: item.FurnitureID,
			Name:        item.Name,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		}
	}

	return &OrderModel{
		OrderID:         rec.OrderID,
		UserID:          rec.UserID,
		Date:            date,
		TotalPrice:      rec.TotalPrice,
		PaymentMethod:   rec.PaymentMethod,
		ShippingAddress: rec.ShippingAddress,
		Items:           items,
	}, nil
}

// toOrderRecord GORM模型 → 订单记录
func toOrderRecord(model *OrderModel) order.Record {
	items := make([]order.ItemRecord, len(model.Items))
	for i, item := range model.Items {
		items[i] = order.ItemRecord{
			FurnitureID: item.FurnitureID,
			Name:        item.Name,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		}
	}

	return order.Record{
		OrderID:         model.OrderID,
		UserID:          model.UserID,
		Date:            model.Date.Format(time.RFC3339),
		TotalPrice:      model.TotalPrice,
		PaymentMethod:   model.PaymentMethod,
		ShippingAddress: model.ShippingAddress,
		Items:           items,
	}
}

// getDB 从context获取事务DB,如果没有则使用默认DB
// 教学要点:事务传递机制
func (r *orderRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txContextKey{}).(*gorm.DB); ok {
		return tx
	}
	return r.db
}
