package handler

import (
	"github.com/gin-gonic/gin"

	appcheckout "github.com/xiebiao/furnistore/internal/application/checkout"
	apporder "github.com/xiebiao/furnistore/internal/application/order"
	"github.com/xiebiao/furnistore/internal/interface/http/dto"
	"github.com/xiebiao/furnistore/internal/interface/http/middleware"
	"github.com/xiebiao/furnistore/pkg/response"
)

// OrderHandler 结算与订单HTTP处理器
type OrderHandler struct {
	checkoutUseCase   *appcheckout.CheckoutUseCase
	listOrdersUseCase *apporder.ListOrdersUseCase
	getOrderUseCase   *apporder.GetOrderUseCase
}

// NewOrderHandler 创建订单处理器
func NewOrderHandler(
	checkoutUseCase *appcheckout.CheckoutUseCase,
	listOrdersUseCase *apporder.ListOrdersUseCase,
	getOrderUseCase *apporder.GetOrderUseCase,
) *OrderHandler {
	return &OrderHandler{
		checkoutUseCase:   checkoutUseCase,
		listOrdersUseCase: listOrdersUseCase,
		getOrderUseCase:   getOrderUseCase,
	}
}

// Checkout 购物车结算
// @Summary      结算
// @Description  把当前购物车结算成订单（需要登录且已填收货地址）
// @Tags         订单模块
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CheckoutRequest true "支付方式"
// @Success      200 {object} response.Response "下单成功，返回订单"
// @Failure      400 {object} response.Response "购物车为空/库存不足/支付失败"
// @Failure      401 {object} response.Response "未登录"
// @Router       /api/v1/checkout [post]
//
// 教学说明：防超卖的核心逻辑
// 本接口是整个项目的核心功能之一，演示了如何在并发场景下防止库存超卖。
//
// 实现方案：校验与落单分离 + Saga补偿 + 数据库事务
// 1. 先做五步纯校验（登录、地址、购物车、逐行库存、支付授权），不落任何变更
// 2. 落单阶段逐行扣减库存——扣减是内存里的原子check-and-decrement，
//    两个并发结算抢同一件商品时只有一个能扣成功
// 3. 扣减、记订单、清购物车组成Saga，任何一步失败按逆序补偿已完成的步骤
// 4. 数据库写穿全部挂在同一个事务里，失败整体回滚
//
// 测试方法：
// 1. 上架库存为10的商品
// 2. 两个用户各往购物车加8件，同时结算
// 3. 预期结果：一个成功，另一个返回库存不足，库存最终为2
func (h *OrderHandler) Checkout(c *gin.Context) {
	// 1. 参数绑定与验证
	var req dto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	// 2. 获取当前登录用户ID
	userID := middleware.MustGetUserID(c)

	// 3. 调用应用层用例
	result, err := h.checkoutUseCase.Execute(c.Request.Context(), appcheckout.CheckoutRequest{
		UserID:        userID,
		PaymentMethod: req.PaymentMethod,
	})

	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// ListOrders 查询我的订单
// @Summary      我的订单列表
// @Tags         订单模块
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response "查询成功"
// @Failure      401 {object} response.Response "未登录"
// @Router       /api/v1/orders [get]
func (h *OrderHandler) ListOrders(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	result, err := h.listOrdersUseCase.Execute(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// GetOrder 查询订单详情
// @Summary      订单详情
// @Description  只能查自己的订单，别人的订单一律返回"订单不存在"
// @Tags         订单模块
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "订单号"
// @Success      200 {object} response.Response "查询成功"
// @Failure      401 {object} response.Response "未登录"
// @Failure      404 {object} response.Response "订单不存在"
// @Router       /api/v1/orders/{id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	result, err := h.getOrderUseCase.Execute(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
