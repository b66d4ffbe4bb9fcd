package mysql

import (
	"context"
	"encoding/json"

	"gorm.io/gorm"

	"github.com/xiebiao/furnistore/internal/domain/furniture"
	"github.com/xiebiao/furnistore/internal/domain/inventory"
	apperrors "github.com/xiebiao/furnistore/pkg/errors"
)

// furnitureRepository 库存仓储实现(MySQL)
// 设计说明:
// 1. 实现domain/inventory/repository.go定义的接口
// 2. 负责库存记录与GORM模型之间的转换
// 3. 库存是全量写穿快照:SaveAll在事务里先清空再整表重建
type furnitureRepository struct {
	db *gorm.DB
}

// NewFurnitureRepository 创建库存仓储
func NewFurnitureRepository(db *gorm.DB) inventory.Repository {
	return &furnitureRepository{db: db}
}

// LoadAll 读取全部库存记录
// 教学要点:仓储只做还原不做甄别,坏记录(属性残缺/品类未知)由Service.Load过滤
func (r *furnitureRepository) LoadAll(ctx context.Context) ([]inventory.StockRecord, error) {
	var models []FurnitureModel
	db := r.getDB(ctx)
	if err := db.Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "读取库存失败")
	}

	records := make([]inventory.StockRecord, len(models))
	for i, model := range models {
		records[i] = toStockRecord(&model)
	}
	return records, nil
}

// SaveAll 保存完整库存快照
// 教学要点:
// 1. 先清后写必须在同一事务里,崩溃时不能留下半空的库存表
// 2. GORM默认拦截无WHERE条件的删除,需要AllowGlobalUpdate放行
func (r *furnitureRepository) SaveAll(ctx context.Context, records []inventory.StockRecord) error {
	db := r.getDB(ctx)
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).
			Delete(&FurnitureModel{}).Error; err != nil {
			return apperrors.Wrap(err, "清空库存失败")
		}
		if len(records) == 0 {
			return nil
		}

		models := make([]FurnitureModel, len(records))
		for i, rec := range records {
			model, err := toFurnitureModel(rec)
			if err != nil {
				return err
			}
			models[i] = model
		}
		if err := tx.Create(&models).Error; err != nil {
			return apperrors.Wrap(err, "写入库存失败")
		}
		return nil
	})
}

// =========================================
// 辅助函数:模型转换
// =========================================

// toStockRecord GORM模型 → 库存记录
// 属性列是JSON对象;脏JSON当作无属性处理,交由上层按坏记录甄别
func toStockRecord(model *FurnitureModel) inventory.StockRecord {
	var attrs map[string]interface{}
	if model.Attributes != "" {
		if err := json.Unmarshal([]byte(model.Attributes), &attrs); err != nil {
			attrs = nil
		}
	}
	return inventory.StockRecord{
		Furniture: furniture.Record{
			ID:          model.ID,
			Name:        model.Name,
			Price:       model.Price,
			Description: model.Description,
			Attributes:  attrs,
		},
		Quantity: model.Quantity,
	}
}

// toFurnitureModel 库存记录 → GORM模型
func toFurnitureModel(rec inventory.StockRecord) (FurnitureModel, error) {
	attrs, err := json.Marshal(rec.Furniture.Attributes)
	if err != nil {
		return FurnitureModel{}, apperrors.Wrap(err, "序列化家具属性失败")
	}
	return FurnitureModel{
		ID:          rec.Furniture.ID,
		Name:        rec.Furniture.Name,
		Price:       rec.Furniture.Price,
		Description: rec.Furniture.Description,
		Attributes:  string(attrs),
		Quantity:    rec.Quantity,
	}, nil
}

// getDB 从context获取事务DB,如果没有则使用默认DB
// 教学要点:事务传递机制
func (r *furnitureRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txContextKey{}).(*gorm.DB); ok {
		return tx
	}
	return r.db
}
