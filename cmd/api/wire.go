//go:build wireinject
// +build wireinject

// Wire依赖注入配置文件
//
// 教学说明：
// 1. Wire是Google开发的编译期依赖注入工具
// 2. 与运行时反射注入（如Spring的@Autowired）不同，Wire在编译期生成代码
// 3. 优势：零运行时开销、类型安全、编译期检测循环依赖
//
// Wire工作流程：
// Step 1: 编写wire.go（本文件），定义Providers和Injector
// Step 2: 运行 `wire gen ./cmd/api`
// Step 3: Wire生成wire_gen.go，包含完整的依赖创建代码
// Step 4: main.go调用wire_gen.go中的InitializeApp()
//
// 核心概念：
// - Provider: 提供依赖的构造函数（如NewUserRepository）
// - Injector: 声明最终要构造的目标类型（如*gin.Engine）
// - wire.Build(): 告诉Wire如何组装依赖链

package main

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/wire"
	goredis "github.com/redis/go-redis/v9"

	appcart "github.com/xiebiao/furnistore/internal/application/cart"
	appcatalog "github.com/xiebiao/furnistore/internal/application/catalog"
	appcheckout "github.com/xiebiao/furnistore/internal/application/checkout"
	apporder "github.com/xiebiao/furnistore/internal/application/order"
	appuser "github.com/xiebiao/furnistore/internal/application/user"
	"github.com/xiebiao/furnistore/internal/domain/cart"
	"github.com/xiebiao/furnistore/internal/domain/inventory"
	"github.com/xiebiao/furnistore/internal/domain/order"
	"github.com/xiebiao/furnistore/internal/domain/user"
	"github.com/xiebiao/furnistore/internal/infrastructure/config"
	"github.com/xiebiao/furnistore/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/furnistore/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/furnistore/internal/interface/http/handler"
	"github.com/xiebiao/furnistore/internal/interface/http/middleware"
	"github.com/xiebiao/furnistore/pkg/circuitbreaker"
	"github.com/xiebiao/furnistore/pkg/jwt"
	"github.com/xiebiao/furnistore/pkg/mq"
)

// ========================================
// Wire Provider Sets (依赖分组)
// ========================================
// 教学说明：
// ProviderSet 将相关的 Provider 分组，便于管理和复用
// 例如：基础设施层的所有Provider放在一起

// infrastructureSet 基础设施层依赖
// 包含：配置加载、数据库连接、Redis连接
var infrastructureSet = wire.NewSet(
	config.Load,     // 加载配置文件
	mysql.NewDB,     // 创建MySQL连接
	redis.NewClient, // 创建Redis连接
)

// repositorySet 仓储层依赖
// 包含：所有Repository的构造函数和Redis收藏存储
var repositorySet = wire.NewSet(
	mysql.NewUserRepository,      // 用户仓储
	mysql.NewFurnitureRepository, // 商品仓储
	mysql.NewOrderRepository,     // 订单仓储
	mysql.NewTxManager,           // 事务管理器
	provideFavoritesStore,        // Redis收藏存储
)

// domainSet 领域层依赖
// 包含：所有领域服务的构造函数
// 注意：库存和订单历史需要启动时加载快照，所以用自定义Provider
var domainSet = wire.NewSet(
	provideStockService, // 库存服务（含快照加载）
	provideOrderHistory, // 订单历史（含快照加载）
	provideCartFactory,  // 购物车工厂
	user.NewService,     // 用户领域服务
	provideItemLocator,  // 按属性找货定位器
)

// paymentSet 支付与事件依赖
// 包含：支付授权器、熔断器、订单事件发布器
var paymentSet = wire.NewSet(
	providePaymentAuthorizer, // 支付授权器
	providePaymentBreaker,    // 支付熔断器
	provideEventPublisher,    // 订单事件发布器（MQ未启用时为nil）
)

// applicationSet 应用层依赖
// 包含：所有Use Case的构造函数
var applicationSet = wire.NewSet(
	appuser.NewRegisterUseCase,       // 用户注册用例
	appuser.NewLoginUseCase,          // 用户登录用例
	appuser.NewLogoutUseCase,         // 用户登出用例
	appuser.NewRefreshTokenUseCase,   // 刷新令牌用例
	appuser.NewGetProfileUseCase,     // 查询资料用例
	appuser.NewUpdateProfileUseCase,  // 更新资料用例
	appuser.NewUpdatePasswordUseCase, // 修改密码用例
	appuser.NewAddFavoriteUseCase,    // 添加收藏用例
	appuser.NewRemoveFavoriteUseCase, // 取消收藏用例
	appuser.NewListFavoritesUseCase,  // 收藏列表用例

	appcatalog.NewAddFurnitureUseCase,    // 商品上架用例
	appcatalog.NewSearchFurnitureUseCase, // 商品检索用例
	appcatalog.NewGetFurnitureUseCase,    // 商品详情用例
	appcatalog.NewSetQuantityUseCase,     // 调整库存用例
	appcatalog.NewRemoveFurnitureUseCase, // 商品下架用例

	appcart.NewViewCartUseCase,    // 查看购物车用例
	appcart.NewAddItemUseCase,     // 加入购物车用例
	appcart.NewLocateItemUseCase,  // 按属性找货用例
	appcart.NewRemoveItemUseCase,  // 移出购物车用例
	appcart.NewClearCartUseCase,   // 清空购物车用例
	appcart.NewSetDiscountUseCase, // 设置折扣用例

	provideCheckoutUseCase,        // 结算用例（需要从Config提取超时参数）
	apporder.NewListOrdersUseCase, // 订单列表用例
	apporder.NewGetOrderUseCase,   // 订单详情用例
)

// middlewareSet 中间件依赖
// 包含：JWT管理器、Session存储、认证中间件
var middlewareSet = wire.NewSet(
	provideJWTManager,            // JWT管理器（需要从config提取参数）
	provideSessionStore,          // Session存储（需要从Redis创建）
	middleware.NewAuthMiddleware, // 认证中间件
)

// handlerSet HTTP处理器依赖
// 包含：所有Handler的构造函数
var handlerSet = wire.NewSet(
	handler.NewUserHandler,      // 用户处理器
	handler.NewFurnitureHandler, // 商品处理器
	handler.NewCartHandler,      // 购物车处理器
	handler.NewOrderHandler,     // 订单处理器
	handler.NewFavoritesHandler, // 收藏处理器
	handler.NewEnumHandler,      // 枚举字典处理器
)

// ========================================
// Custom Providers (自定义Provider)
// ========================================
// 教学说明：
// 有些依赖的构造函数参数不是直接的类型，需要从Config中提取
// 这时需要编写自定义Provider函数

// provideJWTManager 从配置创建JWT管理器
// 教学要点：config.Config 包含多个字段，但jwt.NewManager只需要JWT相关的配置
// Wire无法自动知道如何从Config提取参数，所以需要手动编写Provider
func provideJWTManager(cfg *config.Config) *jwt.Manager {
	return jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpire,
		cfg.JWT.RefreshTokenExpire,
	)
}

// provideSessionStore 从Redis客户端创建Session存储
// 教学要点：redis.NewSessionStore需要*goredis.Client参数
// Wire会自动注入redis.NewClient()的返回值
func provideSessionStore(client *goredis.Client) *redis.SessionStore {
	return redis.NewSessionStore(client)
}

// provideFavoritesStore 从Redis客户端创建收藏存储
func provideFavoritesStore(client *goredis.Client) *redis.FavoritesStore {
	return redis.NewFavoritesStore(client)
}

// provideStockService 创建库存服务并加载持久化快照
// 教学要点：Provider可以返回error，Wire生成的代码会做错误传播
func provideStockService(repo inventory.Repository) (*inventory.Service, error) {
	svc := inventory.NewService(repo)
	if err := svc.Load(context.Background()); err != nil {
		return nil, err
	}
	return svc, nil
}

// provideOrderHistory 创建订单历史并加载持久化快照
func provideOrderHistory(repo order.Repository) (*order.History, error) {
	history := order.NewHistory(repo)
	if err := history.Load(context.Background()); err != nil {
		return nil, err
	}
	return history, nil
}

// provideCartFactory 购物车工厂
// 教学要点：每个用户的购物车都要引用同一个库存服务做可售校验，
// 所以工厂闭包捕获stockService，而不是让user包直接依赖inventory包
func provideCartFactory(stock *inventory.Service) user.CartFactory {
	return func() *cart.ShoppingCart {
		return cart.NewShoppingCart(stock)
	}
}

// provideItemLocator 按属性找货定位器
// 教学要点：Wire不会自动做接口匹配，*inventory.Service满足cart.Catalog
// 也需要显式写Provider（或用wire.Bind）
func provideItemLocator(stock *inventory.Service) *cart.ItemLocator {
	return cart.NewItemLocator(stock)
}

// providePaymentAuthorizer 支付授权器
// 当前实现是直接放行的占位授权器，接入真实支付网关时替换这里
func providePaymentAuthorizer() order.PaymentAuthorizer {
	return order.AlwaysAuthorize{}
}

// providePaymentBreaker 支付调用熔断器
func providePaymentBreaker(cfg *config.Config) *circuitbreaker.CircuitBreaker {
	return circuitbreaker.NewCircuitBreaker("payment", circuitbreaker.Config{
		MaxRequests: cfg.Payment.BreakerMaxRequests,
		Interval:    cfg.Payment.BreakerInterval,
		Timeout:     cfg.Payment.BreakerTimeout,
		ReadyToTrip: func(counts circuitbreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.Payment.BreakerMaxFailures
		},
	})
}

// provideEventPublisher 订单事件发布器
// MQ未启用时返回nil接口，结算用例会跳过事件发布
func provideEventPublisher(cfg *config.Config) (appcheckout.EventPublisher, error) {
	if !cfg.MQ.Enabled {
		return nil, nil
	}
	pub, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, "topic")
	if err != nil {
		return nil, err
	}
	return pub, nil
}

// provideCheckoutUseCase 结算用例
// 教学要点：授权超时是time.Duration，如果直接做Provider会和其他Duration冲突，
// 所以在这里从Config取值后手动构造
func provideCheckoutUseCase(
	cfg *config.Config,
	users user.Service,
	stock *inventory.Service,
	history *order.History,
	authorizer order.PaymentAuthorizer,
	paymentCB *circuitbreaker.CircuitBreaker,
	txManager *mysql.TxManager,
	publisher appcheckout.EventPublisher,
) *appcheckout.CheckoutUseCase {
	return appcheckout.NewCheckoutUseCase(
		users,
		stock,
		history,
		authorizer,
		paymentCB,
		txManager,
		publisher,
		cfg.Payment.Timeout,
	)
}

// provideGinEngine 创建并配置Gin引擎
// 教学要点：
// 1. Gin引擎需要注册所有路由
// 2. 路由注册需要所有的Handler和Middleware
// 3. 路由表复用main.go中的registerRoutes，避免两份注册逐渐漂移
func provideGinEngine(
	cfg *config.Config,
	userHandler *handler.UserHandler,
	furnitureHandler *handler.FurnitureHandler,
	cartHandler *handler.CartHandler,
	orderHandler *handler.OrderHandler,
	favoritesHandler *handler.FavoritesHandler,
	enumHandler *handler.EnumHandler,
	authMiddleware *middleware.AuthMiddleware,
) *gin.Engine {
	// 设置运行模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(middleware.RequestMetrics())

	registerRoutes(r, userHandler, furnitureHandler, cartHandler, orderHandler, favoritesHandler, enumHandler, authMiddleware)

	return r
}

// ========================================
// Wire Injector (依赖注入器)
// ========================================
// 教学说明：
// InitializeApp是Wire的入口函数（Injector）
//
// wire.Build() 告诉Wire需要哪些Provider来构建*gin.Engine
// Wire会自动分析依赖关系：
//
// 依赖链示例：
// *gin.Engine 需要 → *handler.OrderHandler
// *handler.OrderHandler 需要 → *appcheckout.CheckoutUseCase
// *appcheckout.CheckoutUseCase 需要 → *inventory.Service
// *inventory.Service 需要 → inventory.Repository
// inventory.Repository 需要 → *gorm.DB
// *gorm.DB 需要 → *config.Config
//
// Wire会按正确的顺序调用所有构造函数

// InitializeApp 初始化整个应用
// 返回：配置好的Gin引擎
// 错误：如果任何依赖创建失败
//
// 教学说明：
// Wire Injector函数的返回值有限制：
// - 第一个返回值：要构造的目标类型（*gin.Engine）
// - 第二个返回值（可选）：只能是error或cleanup函数
// - 不能返回多个业务对象，如果需要Config可以在provideGinEngine中处理
func InitializeApp() (*gin.Engine, error) {
	// wire.Build 的参数是所有的 Provider
	// Wire会在编译期分析依赖关系，生成初始化代码
	wire.Build(
		// 基础设施层
		infrastructureSet,

		// 仓储层
		repositorySet,

		// 领域层
		domainSet,

		// 支付与事件
		paymentSet,

		// 应用层
		applicationSet,

		// 中间件层
		middlewareSet,

		// 接口层
		handlerSet,

		// Gin引擎
		provideGinEngine,
	)

	// 返回值类型必须与wire.Build的最终产出一致
	// Wire会在wire_gen.go中生成实际的初始化代码
	// 这里的返回值是占位符，实际运行时会被wire_gen.go替代
	return nil, nil
}
