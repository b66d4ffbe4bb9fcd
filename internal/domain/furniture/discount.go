package furniture

import (
	apperrors "github.com/xiebiao/furnistore/pkg/errors"
)

// DiscountStrategy 折扣策略（策略模式）
// 设计说明:
// 1. 策略是纯函数：输入价格，输出折扣后价格，不持有外部状态
// 2. 参数在构造时校验（fail fast），Apply阶段只拒绝负价格
// 3. 策略集合封闭：无折扣、百分比折扣、固定金额折扣
type DiscountStrategy interface {
	// Apply 计算折扣后价格，price为负返回参数错误
	Apply(price float64) (float64, error)
}

var (
	_ DiscountStrategy = NoDiscount{}
	_ DiscountStrategy = PercentageDiscount{}
	_ DiscountStrategy = FixedAmountDiscount{}
)

// checkPrice 所有策略共用的入参校验
func checkPrice(price float64) error {
	if price < 0 {
		return apperrors.New(apperrors.ErrCodeInvalidParams, "价格不能为负数")
	}
	return nil
}

// NoDiscount 无折扣（恒等变换），是所有家具和购物车的默认策略
type NoDiscount struct{}

func (NoDiscount) Apply(price float64) (float64, error) {
	if err := checkPrice(price); err != nil {
		return 0, err
	}
	return price, nil
}

// PercentageDiscount 百分比折扣
type PercentageDiscount struct {
	percent float64
}

// NewPercentageDiscount 创建百分比折扣，percent取值[0,100]
func NewPercentageDiscount(percent float64) (PercentageDiscount, error) {
	if percent < 0 || percent > 100 {
		return PercentageDiscount{}, apperrors.Newf(apperrors.ErrCodeInvalidParams,
			"折扣百分比必须在0-100之间: %v", percent)
	}
	return PercentageDiscount{percent: percent}, nil
}

// Percent 折扣百分比
func (d PercentageDiscount) Percent() float64 { return d.percent }

func (d PercentageDiscount) Apply(price float64) (float64, error) {
	if err := checkPrice(price); err != nil {
		return 0, err
	}
	return price * (1 - d.percent/100), nil
}

// FixedAmountDiscount 固定金额折扣，结果最低减到0不会为负
type FixedAmountDiscount struct {
	amount float64
}

// NewFixedAmountDiscount 创建固定金额折扣，amount必须非负
func NewFixedAmountDiscount(amount float64) (FixedAmountDiscount, error) {
	if amount < 0 {
		return FixedAmountDiscount{}, apperrors.Newf(apperrors.ErrCodeInvalidParams,
			"折扣金额不能为负数: %v", amount)
	}
	return FixedAmountDiscount{amount: amount}, nil
}

// Amount 折扣金额
func (d FixedAmountDiscount) Amount() float64 { return d.amount }

func (d FixedAmountDiscount) Apply(price float64) (float64, error) {
	if err := checkPrice(price); err != nil {
		return 0, err
	}
	discounted := price - d.amount
	if discounted < 0 {
		discounted = 0
	}
	return discounted, nil
}
