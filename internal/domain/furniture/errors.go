package furniture

import (
	apperrors "github.com/xiebiao/furnistore/pkg/errors"
)

// 家具领域错误定义
var (
	// ErrNilFurniture 家具对象为空
	ErrNilFurniture = apperrors.New(apperrors.ErrCodeInvalidParams, "家具对象不能为空")
)

// ErrInsufficientStock 库存不足错误，消息带上商品名便于定位是哪一行货不够
func ErrInsufficientStock(name string) *apperrors.AppError {
	return apperrors.Newf(apperrors.ErrCodeInsufficientStock, "%s库存不足", name)
}
