package main

import (
	"context"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

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
	"github.com/xiebiao/furnistore/pkg/metrics"
	"github.com/xiebiao/furnistore/pkg/mq"
	"github.com/xiebiao/furnistore/pkg/response"
	"github.com/xiebiao/furnistore/pkg/tracing"
)

// main 主程序入口
// 说明：手动依赖注入（cmd/api/wire.go提供Wire声明，运行wire可生成自动装配版本）
func main() {
	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	fmt.Printf("✓ 配置加载成功\n")
	fmt.Printf("  - 服务端口: %d\n", cfg.Server.Port)
	fmt.Printf("  - 运行模式: %s\n", cfg.Server.Mode)
	fmt.Printf("  - 数据库: %s:%d/%s\n", cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)
	fmt.Printf("  - Redis: %s\n", cfg.Redis.Addr())
	fmt.Printf("  - 消息队列: %v\n", cfg.MQ.Enabled)
	fmt.Printf("  - 链路追踪: %v\n", cfg.Tracing.Enabled)

	// 2. 初始化可观测性组件
	// 学习要点：指标必须在任何业务代码记录之前注册，否则指标变量为nil
	metrics.InitMetrics()

	ctx := context.Background()

	if cfg.Tracing.Enabled {
		shutdown, err := tracing.InitTracer(cfg.Tracing.ServiceName, cfg.Tracing.Endpoint)
		if err != nil {
			log.Fatalf("初始化链路追踪失败: %v", err)
		}
		defer func() {
			if err := shutdown(ctx); err != nil {
				log.Printf("⚠️ 关闭链路追踪失败: %v", err)
			}
		}()
		fmt.Printf("✓ 链路追踪初始化成功（endpoint=%s）\n", cfg.Tracing.Endpoint)
	}

	// 3. 初始化数据库连接
	db, err := mysql.NewDB(cfg)
	if err != nil {
		log.Fatalf("初始化数据库失败: %v", err)
	}

	// 4. 初始化Redis连接
	redisClient, err := redis.NewClient(cfg)
	if err != nil {
		log.Fatalf("初始化Redis失败: %v", err)
	}

	// 5. 依赖注入（手动组装）
	// 学习要点：依赖注入链
	// Repository ← Service ← UseCase ← Handler

	// 基础设施层
	userRepo := mysql.NewUserRepository(db)
	furnitureRepo := mysql.NewFurnitureRepository(db)
	orderRepo := mysql.NewOrderRepository(db)
	txManager := mysql.NewTxManager(db)
	sessionStore := redis.NewSessionStore(redisClient)
	favoritesStore := redis.NewFavoritesStore(redisClient)
	jwtManager := jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpire,
		cfg.JWT.RefreshTokenExpire,
	)

	// 领域层
	// 库存与订单历史是内存为主、MySQL为持久化快照的混合模型，启动时必须先加载
	stockService := inventory.NewService(furnitureRepo)
	if err := stockService.Load(ctx); err != nil {
		log.Fatalf("加载库存快照失败: %v", err)
	}
	fmt.Printf("✓ 库存加载成功（%d件商品在架）\n", len(stockService.All()))

	orderHistory := order.NewHistory(orderRepo)
	if err := orderHistory.Load(ctx); err != nil {
		log.Fatalf("加载订单历史失败: %v", err)
	}

	userService := user.NewService(userRepo, func() *cart.ShoppingCart {
		return cart.NewShoppingCart(stockService)
	})
	locator := cart.NewItemLocator(stockService)

	// 支付与事件
	// 熔断器保护支付授权调用：连续失败达到阈值后快速失败，避免请求堆积
	paymentCB := circuitbreaker.NewCircuitBreaker("payment", circuitbreaker.Config{
		MaxRequests: cfg.Payment.BreakerMaxRequests,
		Interval:    cfg.Payment.BreakerInterval,
		Timeout:     cfg.Payment.BreakerTimeout,
		ReadyToTrip: func(counts circuitbreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.Payment.BreakerMaxFailures
		},
	})

	// 注意：publisher声明为接口类型，只有MQ启用时才赋值
	// 如果写成 var pub *mq.Publisher 再赋给接口，会踩"有类型的nil"陷阱
	var publisher appcheckout.EventPublisher
	if cfg.MQ.Enabled {
		pub, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, "topic")
		if err != nil {
			log.Fatalf("初始化RabbitMQ失败: %v", err)
		}
		defer pub.Close()
		publisher = pub
		fmt.Printf("✓ RabbitMQ连接成功（exchange=%s）\n", cfg.MQ.Exchange)
	}

	// 应用层
	registerUseCase := appuser.NewRegisterUseCase(userService)
	loginUseCase := appuser.NewLoginUseCase(userService, jwtManager, sessionStore)
	logoutUseCase := appuser.NewLogoutUseCase(userService, sessionStore)
	refreshTokenUseCase := appuser.NewRefreshTokenUseCase(jwtManager)
	getProfileUseCase := appuser.NewGetProfileUseCase(userService)
	updateProfileUseCase := appuser.NewUpdateProfileUseCase(userService)
	updatePasswordUseCase := appuser.NewUpdatePasswordUseCase(userService)
	addFavoriteUseCase := appuser.NewAddFavoriteUseCase(stockService, favoritesStore)
	removeFavoriteUseCase := appuser.NewRemoveFavoriteUseCase(favoritesStore)
	listFavoritesUseCase := appuser.NewListFavoritesUseCase(stockService, favoritesStore)

	addFurnitureUseCase := appcatalog.NewAddFurnitureUseCase(stockService)
	searchFurnitureUseCase := appcatalog.NewSearchFurnitureUseCase(stockService)
	getFurnitureUseCase := appcatalog.NewGetFurnitureUseCase(stockService)
	setQuantityUseCase := appcatalog.NewSetQuantityUseCase(stockService)
	removeFurnitureUseCase := appcatalog.NewRemoveFurnitureUseCase(stockService)

	viewCartUseCase := appcart.NewViewCartUseCase(userService)
	addItemUseCase := appcart.NewAddItemUseCase(userService, stockService)
	locateItemUseCase := appcart.NewLocateItemUseCase(userService, locator)
	removeItemUseCase := appcart.NewRemoveItemUseCase(userService)
	clearCartUseCase := appcart.NewClearCartUseCase(userService)
	setDiscountUseCase := appcart.NewSetDiscountUseCase(userService)

	checkoutUseCase := appcheckout.NewCheckoutUseCase(
		userService,
		stockService,
		orderHistory,
		order.AlwaysAuthorize{},
		paymentCB,
		txManager,
		publisher,
		cfg.Payment.Timeout,
	)
	listOrdersUseCase := apporder.NewListOrdersUseCase(orderHistory)
	getOrderUseCase := apporder.NewGetOrderUseCase(orderHistory)

	// 接口层
	userHandler := handler.NewUserHandler(
		registerUseCase,
		loginUseCase,
		logoutUseCase,
		refreshTokenUseCase,
		getProfileUseCase,
		updateProfileUseCase,
		updatePasswordUseCase,
	)
	furnitureHandler := handler.NewFurnitureHandler(
		addFurnitureUseCase,
		searchFurnitureUseCase,
		getFurnitureUseCase,
		setQuantityUseCase,
		removeFurnitureUseCase,
	)
	cartHandler := handler.NewCartHandler(
		viewCartUseCase,
		addItemUseCase,
		locateItemUseCase,
		removeItemUseCase,
		clearCartUseCase,
		setDiscountUseCase,
	)
	orderHandler := handler.NewOrderHandler(checkoutUseCase, listOrdersUseCase, getOrderUseCase)
	favoritesHandler := handler.NewFavoritesHandler(addFavoriteUseCase, removeFavoriteUseCase, listFavoritesUseCase)
	enumHandler := handler.NewEnumHandler()
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, sessionStore)

	// 6. 初始化Gin引擎
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	r.Use(middleware.RequestMetrics())

	// 7. 注册路由
	registerRoutes(r, userHandler, furnitureHandler, cartHandler, orderHandler, favoritesHandler, enumHandler, authMiddleware)

	// 8. 启动服务
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	fmt.Printf("\n🚀 服务启动成功！\n")
	fmt.Printf("   访问地址: http://localhost%s\n", addr)
	fmt.Printf("   健康检查: http://localhost%s/ping\n", addr)
	fmt.Printf("   API文档: http://localhost%s/swagger/index.html\n", addr)
	fmt.Printf("   监控指标: http://localhost%s/metrics\n", addr)
	fmt.Printf("   用户注册: POST http://localhost%s/api/v1/users/register\n", addr)
	fmt.Printf("   商品检索: GET http://localhost%s/api/v1/furniture\n", addr)
	fmt.Printf("   购物车: GET http://localhost%s/api/v1/cart (需要登录)\n", addr)
	fmt.Printf("   结算下单: POST http://localhost%s/api/v1/checkout (需要登录)\n", addr)
	fmt.Printf("\n按Ctrl+C停止服务\n\n")

	if err := r.Run(addr); err != nil {
		log.Fatalf("启动服务失败: %v", err)
	}
}

// registerRoutes 注册路由
func registerRoutes(
	r *gin.Engine,
	userHandler *handler.UserHandler,
	furnitureHandler *handler.FurnitureHandler,
	cartHandler *handler.CartHandler,
	orderHandler *handler.OrderHandler,
	favoritesHandler *handler.FavoritesHandler,
	enumHandler *handler.EnumHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	// 健康检查
	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	// Prometheus指标抓取端点，gin.WrapH直接桥接标准库Handler
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Swagger文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API路由组
	v1 := r.Group("/api/v1")
	{
		// 用户模块
		users := v1.Group("/users")
		{
			users.POST("/register", userHandler.Register)          // 注册
			users.POST("/login", userHandler.Login)                // 登录
			users.POST("/refresh-token", userHandler.RefreshToken) // 刷新令牌

			// 需要登录的用户接口
			authed := users.Group("")
			authed.Use(authMiddleware.RequireAuth())
			{
				authed.POST("/logout", userHandler.Logout)
				authed.GET("/profile", userHandler.GetProfile)
				authed.PUT("/profile", userHandler.UpdateProfile)
				authed.PUT("/password", userHandler.UpdatePassword)
			}
		}

		// 商品目录模块
		// 浏览和检索是公开接口，上架/调整库存/下架需要登录
		furniture := v1.Group("/furniture")
		{
			furniture.GET("", furnitureHandler.SearchFurniture)
			furniture.GET("/:id", furnitureHandler.GetFurniture)
			furniture.POST("", authMiddleware.RequireAuth(), furnitureHandler.AddFurniture)
			furniture.PUT("/:id", authMiddleware.RequireAuth(), furnitureHandler.SetQuantity)
			furniture.DELETE("/:id", authMiddleware.RequireAuth(), furnitureHandler.RemoveFurniture)
		}

		// 购物车模块（全部需要登录，购物车挂在用户会话上）
		cartGroup := v1.Group("/cart")
		cartGroup.Use(authMiddleware.RequireAuth())
		{
			cartGroup.GET("", cartHandler.ViewCart)
			cartGroup.POST("/items", cartHandler.AddItem)
			cartGroup.POST("/locate", cartHandler.LocateItem)
			cartGroup.DELETE("/items/:furniture_id", cartHandler.RemoveItem)
			cartGroup.DELETE("", cartHandler.ClearCart)
			cartGroup.POST("/discount", cartHandler.SetDiscount)
		}

		// 收藏模块
		favorites := v1.Group("/favorites")
		favorites.Use(authMiddleware.RequireAuth())
		{
			favorites.GET("", favoritesHandler.ListFavorites)
			favorites.POST("", favoritesHandler.AddFavorite)
			favorites.DELETE("/:furniture_id", favoritesHandler.RemoveFavorite)
		}

		// 结算（核心下单流程）
		v1.POST("/checkout", authMiddleware.RequireAuth(), orderHandler.Checkout)

		// 订单模块
		orders := v1.Group("/orders")
		orders.Use(authMiddleware.RequireAuth())
		{
			orders.GET("", orderHandler.ListOrders)
			orders.GET("/:id", orderHandler.GetOrder)
		}

		// 枚举字典（公开接口，前端下拉框数据源）
		enums := v1.Group("/enums")
		{
			enums.GET("/payment-methods", enumHandler.PaymentMethods)
			enums.GET("/chair-materials", enumHandler.ChairMaterials)
			enums.GET("/table-shapes", enumHandler.TableShapes)
			enums.GET("/furniture-sizes", enumHandler.Sizes)
			enums.GET("/sofa-colors", enumHandler.SofaColors)
			enums.GET("/bed-sizes", enumHandler.BedSizes)
		}
	}
}
