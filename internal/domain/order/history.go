package order

import (
	"context"
	"log"
	"sync"
)

// History 订单历史，只追加不修改
// 设计说明:
// 1. 与库存服务同一套路：内存是权威，每次追加全量写穿到Repository
// 2. 历史记录保存的是持久化形态（Record），不再还原成实体，
//    查询方直接拿记录展示即可
// 3. Discard只给结算补偿用：订单落库后结算又失败时撤掉刚写的记录
type History struct {
	mu      sync.RWMutex
	records []Record
	repo    Repository
}

// NewHistory 创建订单历史（空列表，需调用Load装载持久化数据）
func NewHistory(repo Repository) *History {
	return &History{
		records: make([]Record, 0),
		repo:    repo,
	}
}

// Load 从持久层装载历史订单
// 单条坏记录只打日志跳过，不影响其余数据
func (h *History) Load(ctx context.Context) error {
	records, err := h.repo.LoadAll(ctx)
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.records = make([]Record, 0, len(records))
	for _, rec := range records {
		if rec.OrderID == "" || rec.UserID == "" {
			log.Printf("⚠️ 跳过缺少标识的订单记录(order_id=%q, user_id=%q)", rec.OrderID, rec.UserID)
			continue
		}
		h.records = append(h.records, rec)
	}
	return nil
}

// Append 追加一笔订单并写穿持久层
func (h *History) Append(ctx context.Context, o *Order) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.records = append(h.records, ToRecord(o))
	if err := h.persistLocked(ctx); err != nil {
		// 写穿失败时把内存也退回去，保持两边一致
		h.records = h.records[:len(h.records)-1]
		return err
	}
	return nil
}

// Discard 撤掉指定订单（仅限结算补偿路径调用）
func (h *History) Discard(ctx context.Context, orderID string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	for i, rec := range h.records {
		if rec.OrderID == orderID {
			h.records = append(h.records[:i], h.records[i+1:]...)
			return h.persistLocked(ctx)
		}
	}
	return nil
}

// Get 按订单ID查询
func (h *History) Get(orderID string) (Record, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, rec := range h.records {
		if rec.OrderID == orderID {
			return rec, true
		}
	}
	return Record{}, false
}

// ForUser 查询某用户的全部订单（按写入顺序）
func (h *History) ForUser(userID string) []Record {
	h.mu.RLock()
	defer h.mu.RUnlock()

	results := make([]Record, 0)
	for _, rec := range h.records {
		if rec.UserID == userID {
			results = append(results, rec)
		}
	}
	return results
}

// All 全部历史订单（按写入顺序）
func (h *History) All() []Record {
	h.mu.RLock()
	defer h.mu.RUnlock()

	results := make([]Record, len(h.records))
	copy(results, h.records)
	return results
}

// persistLocked 全量写穿，调用方必须已持有写锁
func (h *History) persistLocked(ctx context.Context) error {
	records := make([]Record, len(h.records))
	copy(records, h.records)
	return h.repo.SaveAll(ctx, records)
}
