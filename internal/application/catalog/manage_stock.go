package catalog

import (
	"context"

	"github.com/xiebiao/furnistore/internal/domain/inventory"
	apperrors "github.com/xiebiao/furnistore/pkg/errors"
)

// SetQuantityUseCase 调整库存数量用例
// 数量可以调成0(售罄但商品仍在架),负数在领域层被拒绝
type SetQuantityUseCase struct {
	stock *inventory.Service
}

// NewSetQuantityUseCase 创建调整库存用例
func NewSetQuantityUseCase(stock *inventory.Service) *SetQuantityUseCase {
	return &SetQuantityUseCase{stock: stock}
}

// Execute 执行调整
func (uc *SetQuantityUseCase) Execute(ctx context.Context, req SetQuantityRequest) (*SetQuantityResponse, error) {
	found, err := uc.stock.SetQuantity(ctx, req.FurnitureID, req.Quantity)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apperrors.ErrFurnitureNotFound
	}

	return &SetQuantityResponse{
		FurnitureID: req.FurnitureID,
		Quantity:    req.Quantity,
	}, nil
}

// RemoveFurnitureUseCase 商品下架用例
type RemoveFurnitureUseCase struct {
	stock *inventory.Service
}

// NewRemoveFurnitureUseCase 创建下架用例
func NewRemoveFurnitureUseCase(stock *inventory.Service) *RemoveFurnitureUseCase {
	return &RemoveFurnitureUseCase{stock: stock}
}

// Execute 执行下架
// 商品不存在返回40402,让DELETE接口按"资源不存在"应答
func (uc *RemoveFurnitureUseCase) Execute(ctx context.Context, furnitureID string) error {
	removed, err := uc.stock.Remove(ctx, furnitureID)
	if err != nil {
		return err
	}
	if !removed {
		return apperrors.ErrFurnitureNotFound
	}
	return nil
}

// =========================================
// 应用层DTO
// =========================================

// SetQuantityRequest 调整库存请求
type SetQuantityRequest struct {
	FurnitureID string
	Quantity    int
}

// SetQuantityResponse 调整库存响应
type SetQuantityResponse struct {
	FurnitureID string `json:"furniture_id"`
	Quantity    int    `json:"quantity"`
}
