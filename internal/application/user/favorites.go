package user

import (
	"context"

	"github.com/xiebiao/furnistore/internal/domain/inventory"
	"github.com/xiebiao/furnistore/internal/infrastructure/persistence/redis"
	apperrors "github.com/xiebiao/furnistore/pkg/errors"
)

// AddFavoriteUseCase 添加收藏用例
// 设计说明：
// 1. 收藏前校验商品当前在售，防止收藏一个不存在的ID
// 2. Redis Set天然去重，重复收藏不报错（幂等）
type AddFavoriteUseCase struct {
	stock     *inventory.Service
	favorites *redis.FavoritesStore
}

// NewAddFavoriteUseCase 创建添加收藏用例
func NewAddFavoriteUseCase(stock *inventory.Service, favorites *redis.FavoritesStore) *AddFavoriteUseCase {
	return &AddFavoriteUseCase{stock: stock, favorites: favorites}
}

// Execute 执行添加收藏
func (uc *AddFavoriteUseCase) Execute(ctx context.Context, userID, furnitureID string) error {
	if _, ok := uc.stock.Get(furnitureID); !ok {
		return apperrors.ErrFurnitureNotFound
	}
	return uc.favorites.Add(ctx, userID, furnitureID)
}

// RemoveFavoriteUseCase 取消收藏用例
type RemoveFavoriteUseCase struct {
	favorites *redis.FavoritesStore
}

// NewRemoveFavoriteUseCase 创建取消收藏用例
func NewRemoveFavoriteUseCase(favorites *redis.FavoritesStore) *RemoveFavoriteUseCase {
	return &RemoveFavoriteUseCase{favorites: favorites}
}

// Execute 执行取消收藏
// 收藏列表里没有这个商品时返回40400，和删除不存在的资源保持一致
func (uc *RemoveFavoriteUseCase) Execute(ctx context.Context, userID, furnitureID string) error {
	removed, err := uc.favorites.Remove(ctx, userID, furnitureID)
	if err != nil {
		return err
	}
	if !removed {
		return apperrors.New(apperrors.ErrCodeNotFound, "该商品不在收藏列表中")
	}
	return nil
}

// ListFavoritesUseCase 查询收藏列表用例
// 列表返回时用当前库存信息补全名称和价格；
// 已下架的商品只剩ID，in_stock=false，前端可提示"已失效"
type ListFavoritesUseCase struct {
	stock     *inventory.Service
	favorites *redis.FavoritesStore
}

// NewListFavoritesUseCase 创建查询收藏用例
func NewListFavoritesUseCase(stock *inventory.Service, favorites *redis.FavoritesStore) *ListFavoritesUseCase {
	return &ListFavoritesUseCase{stock: stock, favorites: favorites}
}

// Execute 执行查询
func (uc *ListFavoritesUseCase) Execute(ctx context.Context, userID string) (*ListFavoritesResponse, error) {
	ids, err := uc.favorites.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	items := make([]FavoriteItem, 0, len(ids))
	for _, id := range ids {
		item := FavoriteItem{FurnitureID: id}
		if f, ok := uc.stock.Get(id); ok {
			item.Name = f.Name()
			item.Price = f.FinalPrice()
			item.Description = f.Description()
			item.InStock = true
		}
		items = append(items, item)
	}

	return &ListFavoritesResponse{Items: items, Total: len(items)}, nil
}

// =========================================
// 应用层DTO
// =========================================

// FavoriteItem 收藏项
type FavoriteItem struct {
	FurnitureID string  `json:"furniture_id"`
	Name        string  `json:"name,omitempty"`
	Price       float64 `json:"price,omitempty"`
	Description string  `json:"description,omitempty"`
	InStock     bool    `json:"in_stock"`
}

// ListFavoritesResponse 收藏列表响应
type ListFavoritesResponse struct {
	Items []FavoriteItem `json:"items"`
	Total int            `json:"total"`
}
