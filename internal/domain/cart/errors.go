package cart

import (
	apperrors "github.com/xiebiao/furnistore/pkg/errors"
)

// 购物车业务错误定义
var (
	// ErrInvalidQuantity 加购数量必须为正
	ErrInvalidQuantity = apperrors.New(apperrors.ErrCodeInvalidParams, "数量必须大于0")

	// ErrNegativeRemoveQuantity 移除数量不能为负
	ErrNegativeRemoveQuantity = apperrors.New(apperrors.ErrCodeInvalidParams, "移除数量不能为负数")
)

// ErrNoAttributeMatch 单个属性无匹配商品
func ErrNoAttributeMatch(kind string, attr string, value interface{}) *apperrors.AppError {
	return apperrors.Newf(apperrors.ErrCodeNoAttributeMatch, "没有找到%s=%v的%s", attr, value, kind)
}

// ErrNoCombinationMatch 多个属性的交集为空
// 与单属性无匹配是两种不同的错误，调用方和测试都依赖这个区分
func ErrNoCombinationMatch(kind string) *apperrors.AppError {
	return apperrors.Newf(apperrors.ErrCodeNoCombinationMatch, "没有找到同时满足这些属性的%s", kind)
}

// ErrKindNotInStock 品类在库存中不存在
func ErrKindNotInStock(kind string) *apperrors.AppError {
	return apperrors.Newf(apperrors.ErrCodeFurnitureNotFound, "库存中没有%s", kind)
}

// ErrCombinationOutOfStock 匹配到商品但库存数量不足
func ErrCombinationOutOfStock(kind string) *apperrors.AppError {
	return apperrors.Newf(apperrors.ErrCodeInsufficientStock, "符合属性条件的%s库存不足", kind)
}
