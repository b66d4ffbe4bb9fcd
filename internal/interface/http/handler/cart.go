package handler

import (
	"github.com/gin-gonic/gin"

	appcart "github.com/xiebiao/furnistore/internal/application/cart"
	"github.com/xiebiao/furnistore/internal/interface/http/dto"
	"github.com/xiebiao/furnistore/internal/interface/http/middleware"
	"github.com/xiebiao/furnistore/pkg/response"
)

// CartHandler 购物车HTTP处理器
// 购物车全部接口都需要登录:购物车挂在用户登录态上
type CartHandler struct {
	viewCartUseCase    *appcart.ViewCartUseCase
	addItemUseCase     *appcart.AddItemUseCase
	locateItemUseCase  *appcart.LocateItemUseCase
	removeItemUseCase  *appcart.RemoveItemUseCase
	clearCartUseCase   *appcart.ClearCartUseCase
	setDiscountUseCase *appcart.SetDiscountUseCase
}

// NewCartHandler 创建购物车处理器
func NewCartHandler(
	viewCartUseCase *appcart.ViewCartUseCase,
	addItemUseCase *appcart.AddItemUseCase,
	locateItemUseCase *appcart.LocateItemUseCase,
	removeItemUseCase *appcart.RemoveItemUseCase,
	clearCartUseCase *appcart.ClearCartUseCase,
	setDiscountUseCase *appcart.SetDiscountUseCase,
) *CartHandler {
	return &CartHandler{
		viewCartUseCase:    viewCartUseCase,
		addItemUseCase:     addItemUseCase,
		locateItemUseCase:  locateItemUseCase,
		removeItemUseCase:  removeItemUseCase,
		clearCartUseCase:   clearCartUseCase,
		setDiscountUseCase: setDiscountUseCase,
	}
}

// ViewCart 查看购物车
// @Summary      查看购物车
// @Tags         购物车
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response "查询成功"
// @Failure      401 {object} response.Response "未登录"
// @Router       /api/v1/cart [get]
func (h *CartHandler) ViewCart(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	result, err := h.viewCartUseCase.Execute(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// AddItem 按ID加购
// @Summary      加入购物车
// @Description  校验"已有数量+新增数量"的库存，校验失败购物车不变
// @Tags         购物车
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.AddCartItemRequest true "加购信息"
// @Success      200 {object} response.Response "加购成功"
// @Failure      400 {object} response.Response "参数错误或库存不足"
// @Failure      401 {object} response.Response "未登录"
// @Failure      404 {object} response.Response "商品不存在"
// @Router       /api/v1/cart/items [post]
func (h *CartHandler) AddItem(c *gin.Context) {
	var req dto.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	userID := middleware.MustGetUserID(c)

	result, err := h.addItemUseCase.Execute(c.Request.Context(), appcart.AddItemRequest{
		UserID:      userID,
		FurnitureID: req.FurnitureID,
		Quantity:    req.Quantity,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// LocateItem 按属性定位加购
// @Summary      按描述加购
// @Description  按品类+属性描述商品（如"黑色的皮椅"），系统定位匹配的商品并加购。
// @Description  三种失败返回不同错误码：单属性无匹配40404、属性组合无匹配40405、组合命中但库存不足40001
// @Tags         购物车
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.LocateItemRequest true "定位条件"
// @Success      200 {object} response.Response "加购成功，返回实际命中的商品"
// @Failure      400 {object} response.Response "参数错误或定位失败"
// @Failure      401 {object} response.Response "未登录"
// @Router       /api/v1/cart/locate [post]
func (h *CartHandler) LocateItem(c *gin.Context) {
	var req dto.LocateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	userID := middleware.MustGetUserID(c)

	attrs := make([]appcart.AttributeParam, 0, len(req.Attributes))
	for _, a := range req.Attributes {
		attrs = append(attrs, appcart.AttributeParam{Name: a.Name, Value: a.Value})
	}

	result, err := h.locateItemUseCase.Execute(c.Request.Context(), appcart.LocateItemRequest{
		UserID:     userID,
		Type:       req.Type,
		Quantity:   req.Quantity,
		Attributes: attrs,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// RemoveItem 移除行项目
// @Summary      移除购物车商品
// @Description  不传quantity整行移除，传了只减数量
// @Tags         购物车
// @Produce      json
// @Security     BearerAuth
// @Param        furniture_id path string true "商品ID"
// @Param        quantity query int false "要减少的数量"
// @Success      200 {object} response.Response "移除成功"
// @Failure      401 {object} response.Response "未登录"
// @Failure      404 {object} response.Response "商品不在购物车中"
// @Router       /api/v1/cart/items/{furniture_id} [delete]
func (h *CartHandler) RemoveItem(c *gin.Context) {
	var query dto.RemoveCartItemQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	userID := middleware.MustGetUserID(c)

	result, err := h.removeItemUseCase.Execute(c.Request.Context(), appcart.RemoveItemRequest{
		UserID:      userID,
		FurnitureID: c.Param("furniture_id"),
		Quantity:    query.Quantity,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// ClearCart 清空购物车
// @Summary      清空购物车
// @Tags         购物车
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response "清空成功"
// @Failure      401 {object} response.Response "未登录"
// @Router       /api/v1/cart [delete]
func (h *CartHandler) ClearCart(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	if err := h.clearCartUseCase.Execute(c.Request.Context(), userID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"message": "购物车已清空"})
}

// SetDiscount 设置购物车折扣
// @Summary      设置购物车折扣
// @Description  折扣作用在小计上，与商品自身折扣叠加；type=none清除折扣
// @Tags         购物车
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.SetCartDiscountRequest true "折扣信息"
// @Success      200 {object} response.Response "设置成功，返回新的应付金额"
// @Failure      400 {object} response.Response "参数错误"
// @Failure      401 {object} response.Response "未登录"
// @Router       /api/v1/cart/discount [post]
func (h *CartHandler) SetDiscount(c *gin.Context) {
	var req dto.SetCartDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	userID := middleware.MustGetUserID(c)

	result, err := h.setDiscountUseCase.Execute(c.Request.Context(), appcart.SetDiscountRequest{
		UserID:  userID,
		Type:    req.Type,
		Percent: req.Percent,
		Amount:  req.Amount,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
