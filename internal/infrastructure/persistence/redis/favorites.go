package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/xiebiao/furnistore/pkg/errors"
)

// FavoritesStore 收藏夹存储
// 设计说明：
// 1. 每个用户一个Redis集合，Key设计：favorites:{user_id}
// 2. 集合成员是家具ID，SADD天然去重（重复收藏是幂等操作）
// 3. 收藏夹不设过期时间，随用户长期存在
type FavoritesStore struct {
	client *redis.Client
}

// NewFavoritesStore 创建收藏夹存储
func NewFavoritesStore(client *redis.Client) *FavoritesStore {
	return &FavoritesStore{client: client}
}

// Add 添加收藏
func (s *FavoritesStore) Add(ctx context.Context, userID, furnitureID string) error {
	key := fmt.Sprintf("favorites:%s", userID)

	if err := s.client.SAdd(ctx, key, furnitureID).Err(); err != nil {
		return apperrors.Wrap(err, "添加收藏失败")
	}

	return nil
}

// Remove 取消收藏
// 返回值表示该家具此前是否在收藏夹里
func (s *FavoritesStore) Remove(ctx context.Context, userID, furnitureID string) (bool, error) {
	key := fmt.Sprintf("favorites:%s", userID)

	removed, err := s.client.SRem(ctx, key, furnitureID).Result()
	if err != nil {
		return false, apperrors.Wrap(err, "取消收藏失败")
	}

	return removed > 0, nil
}

// List 列出用户的全部收藏
func (s *FavoritesStore) List(ctx context.Context, userID string) ([]string, error) {
	key := fmt.Sprintf("favorites:%s", userID)

	ids, err := s.client.SMembers(ctx, key).Result()
	if err != nil {
		return nil, apperrors.Wrap(err, "查询收藏夹失败")
	}

	return ids, nil
}

// Contains 判断家具是否已收藏
func (s *FavoritesStore) Contains(ctx context.Context, userID, furnitureID string) (bool, error) {
	key := fmt.Sprintf("favorites:%s", userID)

	ok, err := s.client.SIsMember(ctx, key, furnitureID).Result()
	if err != nil {
		return false, apperrors.Wrap(err, "检查收藏状态失败")
	}

	return ok, nil
}
