package order

import (
	"context"
)

// PaymentAuthorizer 支付授权能力
// 设计说明:
// 1. 结算在落单前询问支付方是否放行，拒绝则整单中止、不产生任何变更
// 2. 真实支付网关的接入不在本系统范围内，默认实现无条件放行
// 3. 装配方可替换为真实网关适配器，结算侧用熔断器包住这次调用
type PaymentAuthorizer interface {
	// Authorize 授权扣款，返回是否放行
	// error表示授权通道本身故障（网络、网关宕机），与"拒绝"是两回事
	Authorize(ctx context.Context, method PaymentMethod, amount float64) (bool, error)
}

// AlwaysAuthorize 默认支付授权器，总是放行
type AlwaysAuthorize struct{}

// Authorize 无条件放行
func (AlwaysAuthorize) Authorize(ctx context.Context, method PaymentMethod, amount float64) (bool, error) {
	return true, nil
}
