package order

import (
	apperrors "github.com/xiebiao/furnistore/pkg/errors"
)

// 订单领域错误定义
var (
	// ErrOrderNotFound 订单不存在
	ErrOrderNotFound = apperrors.New(apperrors.ErrCodeOrderNotFound, "订单不存在")

	// ErrEmptyOrder 订单必须至少有一个行项目
	ErrEmptyOrder = apperrors.New(apperrors.ErrCodeInvalidParams, "订单必须至少包含一件商品")

	// ErrNegativeTotal 订单总价不能为负
	ErrNegativeTotal = apperrors.New(apperrors.ErrCodeInvalidParams, "订单总价不能为负数")

	// ErrMissingUserID 订单必须归属某个用户
	ErrMissingUserID = apperrors.New(apperrors.ErrCodeInvalidParams, "订单用户ID不能为空")

	// ErrMissingAddress 订单必须有收货地址
	ErrMissingAddress = apperrors.New(apperrors.ErrCodeInvalidParams, "订单收货地址不能为空")
)

// ErrUnknownPaymentMethod 不支持的支付方式
func ErrUnknownPaymentMethod(s string) *apperrors.AppError {
	return apperrors.Newf(apperrors.ErrCodeInvalidParams,
		"不支持的支付方式: %s（可选: Credit Card, PayPal, Apple Pay, Google Pay）", s)
}
