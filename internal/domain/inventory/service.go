package inventory

import (
	"context"
	"log"
	"sync"

	"github.com/google/uuid"

	"github.com/xiebiao/furnistore/internal/domain/furniture"
)

// Service 库存服务，商品目录与库存数量的唯一权威来源
// 设计说明:
// 1. 进程内单一实例，启动时显式构造并注入到各消费方（不做隐式单例）
// 2. 内存状态是权威，每次变更全量写穿到Repository
// 3. 读写锁串行化全部变更，搜索和读取走读锁+拷贝
// 4. 合并入库：与已有商品同一（IdenticalTo）的新增直接累加数量
// 5. order记录入库顺序，快照和持久化按此顺序输出（map遍历顺序不稳定）
type Service struct {
	mu    sync.RWMutex
	items map[string]furniture.Item
	order []string
	repo  Repository
}

// NewService 创建库存服务（空目录，需调用Load装载持久化数据）
func NewService(repo Repository) *Service {
	return &Service{
		items: make(map[string]furniture.Item),
		order: make([]string, 0),
		repo:  repo,
	}
}

// Load 从持久层装载库存
// 逐条重建家具实体，单条坏记录只打日志跳过，不影响其余数据
func (s *Service) Load(ctx context.Context) error {
	records, err := s.repo.LoadAll(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = make(map[string]furniture.Item, len(records))
	s.order = make([]string, 0, len(records))
	for _, rec := range records {
		f, err := furniture.FromRecord(rec.Furniture)
		if err != nil {
			log.Printf("⚠️ 跳过无法解析的库存记录(id=%s): %v", rec.Furniture.ID, err)
			continue
		}
		if f.ID() == "" {
			log.Printf("⚠️ 跳过缺少ID的库存记录(name=%s)", rec.Furniture.Name)
			continue
		}
		if rec.Quantity < 0 {
			log.Printf("⚠️ 跳过数量为负的库存记录(id=%s, quantity=%d)", f.ID(), rec.Quantity)
			continue
		}
		if _, exists := s.items[f.ID()]; !exists {
			s.order = append(s.order, f.ID())
		}
		s.items[f.ID()] = furniture.Item{Furniture: f, Quantity: rec.Quantity}
	}
	return nil
}

// Add 入库，返回家具ID
// 已存在同一商品时合并数量并返回原ID；否则分配新ID插入
func (s *Service) Add(ctx context.Context, f furniture.Furniture, quantity int) (string, error) {
	if f == nil {
		return "", furniture.ErrNilFurniture
	}
	if quantity <= 0 {
		return "", ErrInvalidQuantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// 合并入库
	for _, id := range s.order {
		existing := s.items[id]
		if f.IdenticalTo(existing.Furniture) {
			s.items[id] = furniture.Item{
				Furniture: existing.Furniture,
				Quantity:  existing.Quantity + quantity,
			}
			if err := s.persistLocked(ctx); err != nil {
				// 写穿失败时把内存也退回去，保持两边一致
				s.items[id] = existing
				return "", err
			}
			return id, nil
		}
	}

	// 新商品：未分配过ID则由库存分配
	id := f.ID()
	if id == "" {
		id = uuid.NewString()
		if err := f.SetID(id); err != nil {
			return "", err
		}
	}
	s.items[id] = furniture.Item{Furniture: f, Quantity: quantity}
	s.order = append(s.order, id)
	if err := s.persistLocked(ctx); err != nil {
		delete(s.items, id)
		s.order = s.order[:len(s.order)-1]
		return "", err
	}
	return id, nil
}

// Remove 整条移除库存条目，家具不存在返回false
func (s *Service) Remove(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[id]
	if !ok {
		return false, nil
	}
	delete(s.items, id)
	position := -1
	for i, existing := range s.order {
		if existing == id {
			position = i
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	if err := s.persistLocked(ctx); err != nil {
		s.items[id] = item
		if position >= 0 {
			s.order = append(s.order[:position], append([]string{id}, s.order[position:]...)...)
		}
		return false, err
	}
	return true, nil
}

// SetQuantity 直接设置库存数量
// 负数返回错误；家具不存在返回false；0是合法的"无货"状态，条目保留
func (s *Service) SetQuantity(ctx context.Context, id string, quantity int) (bool, error) {
	if quantity < 0 {
		return false, ErrNegativeQuantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[id]
	if !ok {
		return false, nil
	}
	previous := item.Quantity
	item.Quantity = quantity
	s.items[id] = item
	if err := s.persistLocked(ctx); err != nil {
		item.Quantity = previous
		s.items[id] = item
		return false, err
	}
	return true, nil
}

// Debit 扣减库存（结算用）
// 在同一把锁内完成"读当前数量-校验-扣减"，并发结算不会超卖
// 返回扣减前的数量，供结算失败时恢复
func (s *Service) Debit(ctx context.Context, id string, quantity int) (int, error) {
	if quantity <= 0 {
		return 0, ErrInvalidQuantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[id]
	if !ok {
		return 0, ErrFurnitureNotFound
	}
	if item.Quantity < quantity {
		return 0, furniture.ErrInsufficientStock(item.Furniture.Name())
	}
	previous := item.Quantity
	item.Quantity -= quantity
	s.items[id] = item
	if err := s.persistLocked(ctx); err != nil {
		item.Quantity = previous
		s.items[id] = item
		return 0, err
	}
	return previous, nil
}

// IsAvailable 判断指定家具是否有足够库存，家具不存在返回false
func (s *Service) IsAvailable(id string, quantity int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.items[id]
	return ok && item.Quantity >= quantity
}

// Get 按ID取家具，不存在返回false
func (s *Service) Get(id string) (furniture.Furniture, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.items[id]
	if !ok {
		return nil, false
	}
	return item.Furniture, true
}

// Quantity 查询库存数量，家具不存在返回0
func (s *Service) Quantity(id string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.items[id].Quantity
}

// All 返回全部库存条目（家具为深拷贝，按入库顺序）
func (s *Service) All() []furniture.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.snapshotLocked()
}

// Search 按策略搜索库存
// 先在读锁内做目录深拷贝，再在锁外执行策略，
// 调用方通过返回条目无法观察或篡改库存的在线状态
func (s *Service) Search(strategy furniture.SearchStrategy) []furniture.Item {
	s.mu.RLock()
	snapshot := s.snapshotLocked()
	s.mu.RUnlock()

	return strategy.Search(snapshot)
}

// snapshotLocked 按入库顺序深拷贝目录，调用方必须已持有锁
func (s *Service) snapshotLocked() []furniture.Item {
	results := make([]furniture.Item, 0, len(s.order))
	for _, id := range s.order {
		item := s.items[id]
		results = append(results, furniture.Item{
			Furniture: item.Furniture.Clone(),
			Quantity:  item.Quantity,
		})
	}
	return results
}

// persistLocked 全量写穿，调用方必须已持有写锁
func (s *Service) persistLocked(ctx context.Context) error {
	records := make([]StockRecord, 0, len(s.order))
	for _, id := range s.order {
		item := s.items[id]
		records = append(records, StockRecord{
			Furniture: furniture.ToRecord(item.Furniture),
			Quantity:  item.Quantity,
		})
	}
	return s.repo.SaveAll(ctx, records)
}
