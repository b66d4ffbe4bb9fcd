package inventory

import (
	"context"

	"github.com/xiebiao/furnistore/internal/domain/furniture"
)

// StockRecord 库存条目的序列化记录（家具记录 + 数量）
type StockRecord struct {
	Furniture furniture.Record `json:"furniture"`
	Quantity  int              `json:"quantity"`
}

// Repository 库存持久化接口(依赖倒置原则)
// 设计说明:
// 1. 由domain层定义接口，infrastructure层实现
// 2. 库存采用全量写穿（write-through）：每次变更保存完整快照
// 3. LoadAll返回原始记录，坏记录的甄别由调用方（Service.Load）负责
type Repository interface {
	// LoadAll 读取全部库存记录
	LoadAll(ctx context.Context) ([]StockRecord, error)

	// SaveAll 保存完整库存快照（先清后写，调用方保证快照一致性）
	SaveAll(ctx context.Context, records []StockRecord) error
}
