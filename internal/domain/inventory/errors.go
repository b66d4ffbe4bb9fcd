package inventory

import (
	apperrors "github.com/xiebiao/furnistore/pkg/errors"
)

// 库存领域错误定义
var (
	// ErrInvalidQuantity 入库数量必须为正数
	ErrInvalidQuantity = apperrors.New(apperrors.ErrCodeInvalidParams, "数量必须大于0")

	// ErrNegativeQuantity 库存数量不能设置为负数
	ErrNegativeQuantity = apperrors.New(apperrors.ErrCodeInvalidParams, "库存数量不能为负数")

	// ErrFurnitureNotFound 库存中没有该家具
	ErrFurnitureNotFound = apperrors.New(apperrors.ErrCodeFurnitureNotFound, "家具不存在")
)
