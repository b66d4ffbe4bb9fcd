package checkout

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/xiebiao/furnistore/internal/domain/cart"
	"github.com/xiebiao/furnistore/internal/domain/furniture"
	"github.com/xiebiao/furnistore/internal/domain/inventory"
	"github.com/xiebiao/furnistore/internal/domain/order"
	"github.com/xiebiao/furnistore/internal/domain/user"
	"github.com/xiebiao/furnistore/pkg/circuitbreaker"
	apperrors "github.com/xiebiao/furnistore/pkg/errors"
	"github.com/xiebiao/furnistore/pkg/metrics"
	"github.com/xiebiao/furnistore/pkg/saga"
	"github.com/xiebiao/furnistore/pkg/tracing"
)

// placeOrderTimeout 落单Saga的整体超时
// 扣库存/记订单都是本地操作加一次数据库写穿，30秒富余
const placeOrderTimeout = 30 * time.Second

// EventPublisher 订单事件发布能力
// 结算成功后对外广播order.created事件，发布失败不影响订单结果
type EventPublisher interface {
	Publish(routingKey string, message interface{}) error
}

// Transactor 数据库事务边界能力
// 步骤7-9期间的全部写穿走同一个事务，失败整体回滚
// 生产实现是mysql.TxManager
type Transactor interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// CheckoutUseCase 结算用例
// 教学要点:这是整个项目最核心的用例
// 结算分两个阶段:
//
// 阶段一(步骤1-5)纯校验，不落任何变更:
//  1. 用户已登录
//  2. 有收货地址
//  3. 购物车非空
//  4. 每个行项目库存仍然充足
//  5. 支付授权通过(熔断器保护，网关持续故障时快速失败)
//
// 阶段二(步骤6-9)一个逻辑事务:
//  6. 构造订单(行项目与总价取结算时刻快照)
//  7. 逐行扣减库存
//  8. 订单写入历史
//  9. 清空购物车
//
// 原子性:数据库侧由TxManager的事务保证(全部写穿进同一事务,失败回滚)，
// 内存侧由Saga补偿恢复(回写扣减前的数量快照、撤掉刚写的订单记录)。
// 任何一步失败，内存和数据库都回到结算前的状态。
type CheckoutUseCase struct {
	users       user.Service
	stock       *inventory.Service
	history     *order.History
	authorizer  order.PaymentAuthorizer
	paymentCB   *circuitbreaker.CircuitBreaker
	txManager   Transactor
	publisher   EventPublisher // nil表示事件发布关闭
	authTimeout time.Duration
}

// NewCheckoutUseCase 创建结算用例
func NewCheckoutUseCase(
	users user.Service,
	stock *inventory.Service,
	history *order.History,
	authorizer order.PaymentAuthorizer,
	paymentCB *circuitbreaker.CircuitBreaker,
	txManager Transactor,
	publisher EventPublisher,
	authTimeout time.Duration,
) *CheckoutUseCase {
	return &CheckoutUseCase{
		users:       users,
		stock:       stock,
		history:     history,
		authorizer:  authorizer,
		paymentCB:   paymentCB,
		txManager:   txManager,
		publisher:   publisher,
		authTimeout: authTimeout,
	}
}

// CheckoutRequest 结算请求DTO
type CheckoutRequest struct {
	UserID        string // 买家用户ID(从JWT中提取)
	PaymentMethod string // 支付方式
}

// CheckoutResponse 结算响应DTO
// 直接复用订单的序列化记录:字段就是对外契约的形态
type CheckoutResponse struct {
	Order order.Record `json:"order"`
}

// OrderCreatedEvent 订单创建事件(MQ消息体)
type OrderCreatedEvent struct {
	OrderID    string  `json:"order_id"`
	UserID     string  `json:"user_id"`
	TotalPrice float64 `json:"total_price"`
	Date       string  `json:"date"`
}

// Execute 执行结算
func (uc *CheckoutUseCase) Execute(ctx context.Context, req CheckoutRequest) (*CheckoutResponse, error) {
	ctx, span := tracing.StartSpan(ctx, "furnistore", "Checkout")
	defer span.End()
	span.SetAttributes(attribute.String("user_id", req.UserID))

	start := time.Now()
	metrics.CheckoutsInProgress.Inc()
	defer func() {
		metrics.CheckoutDuration.Observe(time.Since(start).Seconds())
		metrics.CheckoutsInProgress.Dec()
	}()

	resp, err := uc.doCheckout(ctx, req)
	if err != nil {
		metrics.CheckoutsFailedTotal.Inc()
		span.RecordError(err)
		return nil, err
	}

	metrics.OrdersPlacedTotal.Inc()
	metrics.OrderAmount.Observe(resp.Order.TotalPrice)
	return resp, nil
}

func (uc *CheckoutUseCase) doCheckout(ctx context.Context, req CheckoutRequest) (*CheckoutResponse, error) {
	// ========================================
	// 阶段一:前置校验(步骤1-5)
	// ========================================

	// 步骤1:登录校验
	u, err := uc.users.GetByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if !u.IsAuthenticated() {
		return nil, apperrors.ErrUnauthorized
	}

	// 步骤2:收货地址
	if u.ShippingAddress() == "" {
		return nil, apperrors.ErrNoShippingAddress
	}

	// 步骤3:购物车非空
	shoppingCart := u.Cart()
	if shoppingCart == nil || shoppingCart.IsEmpty() {
		return nil, apperrors.ErrEmptyCart
	}

	// 步骤4:逐行复核库存
	// 教学要点:加购时校验过不代表现在还够——别的用户可能已经买走了
	lines := shoppingCart.Items()
	for _, line := range lines {
		if !uc.stock.IsAvailable(line.Furniture.ID(), line.Quantity) {
			return nil, furniture.ErrInsufficientStock(line.Furniture.Name())
		}
	}

	// 步骤5:支付方式校验+支付授权
	method, err := order.ParsePaymentMethod(req.PaymentMethod)
	if err != nil {
		return nil, err
	}
	total := shoppingCart.Total()
	if err := uc.authorizePayment(ctx, method, total); err != nil {
		return nil, err
	}

	// ========================================
	// 阶段二:落单(步骤6-9)
	// ========================================

	// 步骤6:构造订单
	ord, err := order.NewOrder(u.ID(), lines, total, method, u.ShippingAddress())
	if err != nil {
		return nil, err
	}

	// 步骤7-9:扣库存、记订单、清购物车
	// 外层事务让所有数据库写穿进同一事务,失败整体回滚;
	// Saga补偿负责把内存状态(库存数量、订单历史)恢复到结算前
	err = uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		return uc.placeSaga(ord, shoppingCart, lines).Execute(txCtx)
	})
	if err != nil {
		return nil, err
	}

	log.Printf("✓ 下单成功 TraceID=%s OrderID=%s 金额=%.2f",
		tracing.ExtractTraceID(ctx), ord.ID(), ord.TotalPrice())

	// 事件发布在订单成立之后,失败不回滚订单
	uc.publishOrderCreated(ord)

	return &CheckoutResponse{Order: order.ToRecord(ord)}, nil
}

// authorizePayment 支付授权(熔断器保护)
// 网关连续失败超过阈值后熔断器打开,后续结算快速失败不再干等超时
func (uc *CheckoutUseCase) authorizePayment(ctx context.Context, method order.PaymentMethod, amount float64) error {
	authCtx, cancel := context.WithTimeout(ctx, uc.authTimeout)
	defer cancel()

	var authorized bool
	err := uc.paymentCB.Execute(func() error {
		ok, err := uc.authorizer.Authorize(authCtx, method, amount)
		if err != nil {
			return err
		}
		authorized = ok
		return nil
	})
	if err != nil {
		if errors.Is(err, circuitbreaker.ErrOpenState) {
			return apperrors.New(apperrors.ErrCodePaymentFailed, "支付服务不可用，请稍后重试")
		}
		return apperrors.Wrap(err, "支付授权失败")
	}
	if !authorized {
		return apperrors.ErrPaymentFailed
	}
	return nil
}

// placeSaga 组装落单Saga:逐行扣减库存→记录订单→清空购物车
// 教学要点:
// 1. 每行库存单独成步:第N行扣减失败时,前N-1行各自的补偿负责回补
// 2. 补偿回写Action执行前记录的数量快照,重复执行结果相同(幂等)
// 3. 清空购物车是最后一步,成功即整单成立,无需补偿
func (uc *CheckoutUseCase) placeSaga(ord *order.Order, c *cart.ShoppingCart, lines []furniture.Item) *saga.Saga {
	sg := saga.NewSaga(placeOrderTimeout)

	for _, line := range lines {
		id := line.Furniture.ID()
		quantity := line.Quantity
		var previous int

		sg.AddStep(fmt.Sprintf("扣减库存:%s", line.Furniture.Name()),
			func(ctx context.Context) error {
				prev, err := uc.stock.Debit(ctx, id, quantity)
				if err != nil {
					return err
				}
				previous = prev
				return nil
			},
			func(ctx context.Context) error {
				_, err := uc.stock.SetQuantity(ctx, id, previous)
				return err
			},
		)
	}

	sg.AddStep("记录订单",
		func(ctx context.Context) error {
			return uc.history.Append(ctx, ord)
		},
		func(ctx context.Context) error {
			return uc.history.Discard(ctx, ord.ID())
		},
	)

	sg.AddStep("清空购物车",
		func(ctx context.Context) error {
			c.Clear()
			return nil
		},
		nil,
	)

	return sg
}

// publishOrderCreated 广播订单创建事件
// 发布失败只打日志:订单已经成立,事件是尽力而为的通知
func (uc *CheckoutUseCase) publishOrderCreated(ord *order.Order) {
	if uc.publisher == nil {
		return
	}

	event := OrderCreatedEvent{
		OrderID:    ord.ID(),
		UserID:     ord.UserID(),
		TotalPrice: ord.TotalPrice(),
		Date:       ord.Date().Format(time.RFC3339),
	}
	if err := uc.publisher.Publish("order.created", event); err != nil {
		log.Printf("⚠️ 订单事件发布失败(order_id=%s): %v", ord.ID(), err)
	}
}
