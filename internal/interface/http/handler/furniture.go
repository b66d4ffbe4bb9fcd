package handler

import (
	"github.com/gin-gonic/gin"

	appcatalog "github.com/xiebiao/furnistore/internal/application/catalog"
	"github.com/xiebiao/furnistore/internal/interface/http/dto"
	"github.com/xiebiao/furnistore/pkg/response"
)

// FurnitureHandler 商品HTTP处理器
type FurnitureHandler struct {
	addFurnitureUseCase    *appcatalog.AddFurnitureUseCase
	searchFurnitureUseCase *appcatalog.SearchFurnitureUseCase
	getFurnitureUseCase    *appcatalog.GetFurnitureUseCase
	setQuantityUseCase     *appcatalog.SetQuantityUseCase
	removeFurnitureUseCase *appcatalog.RemoveFurnitureUseCase
}

// NewFurnitureHandler 创建商品处理器
func NewFurnitureHandler(
	addFurnitureUseCase *appcatalog.AddFurnitureUseCase,
	searchFurnitureUseCase *appcatalog.SearchFurnitureUseCase,
	getFurnitureUseCase *appcatalog.GetFurnitureUseCase,
	setQuantityUseCase *appcatalog.SetQuantityUseCase,
	removeFurnitureUseCase *appcatalog.RemoveFurnitureUseCase,
) *FurnitureHandler {
	return &FurnitureHandler{
		addFurnitureUseCase:    addFurnitureUseCase,
		searchFurnitureUseCase: searchFurnitureUseCase,
		getFurnitureUseCase:    getFurnitureUseCase,
		setQuantityUseCase:     setQuantityUseCase,
		removeFurnitureUseCase: removeFurnitureUseCase,
	}
}

// AddFurniture 商品上架
// @Summary      商品上架
// @Description  上架家具商品，同款商品（品类+价格+描述+属性一致）合并数量
// @Tags         商品
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.AddFurnitureRequest true "商品信息"
// @Success      200 {object} response.Response "上架成功"
// @Failure      400 {object} response.Response "参数错误（如未知品类、属性非法）"
// @Failure      401 {object} response.Response "未登录"
// @Router       /api/v1/furniture [post]
func (h *FurnitureHandler) AddFurniture(c *gin.Context) {
	// 1. 参数绑定与验证
	var req dto.AddFurnitureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	// 2. 调用应用层用例
	// 品类属性校验（椅子必须有材质、沙发座位数2-5等）在领域工厂里
	result, err := h.addFurnitureUseCase.Execute(c.Request.Context(), appcatalog.AddFurnitureRequest{
		Type:        req.Type,
		Price:       req.Price,
		Description: req.Description,
		Attributes:  req.Attributes,
		Quantity:    req.Quantity,
	})

	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// SearchFurniture 商品检索
// @Summary      商品列表/检索
// @Description  支持名称、价格区间、属性三种检索方式；不带条件返回全部
// @Tags         商品
// @Produce      json
// @Param        name query string false "品类名称（模糊匹配）"
// @Param        min_price query number false "最低价"
// @Param        max_price query number false "最高价"
// @Param        attribute_name query string false "属性名（如material）"
// @Param        attribute_value query string false "属性值（如leather）"
// @Param        type query string false "属性检索时限定品类"
// @Success      200 {object} response.Response "检索成功"
// @Failure      400 {object} response.Response "参数错误（如价格区间颠倒）"
// @Router       /api/v1/furniture [get]
func (h *FurnitureHandler) SearchFurniture(c *gin.Context) {
	// 学习要点：query参数用ShouldBindQuery绑定（form tag）
	var query dto.SearchFurnitureQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	result, err := h.searchFurnitureUseCase.Execute(c.Request.Context(), appcatalog.SearchFurnitureRequest{
		Name:           query.Name,
		MinPrice:       query.MinPrice,
		MaxPrice:       query.MaxPrice,
		AttributeName:  query.AttributeName,
		AttributeValue: query.AttributeValue,
		Type:           query.Type,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// GetFurniture 商品详情
// @Summary      商品详情
// @Tags         商品
// @Produce      json
// @Param        id path string true "商品ID"
// @Success      200 {object} response.Response "查询成功"
// @Failure      404 {object} response.Response "商品不存在"
// @Router       /api/v1/furniture/{id} [get]
func (h *FurnitureHandler) GetFurniture(c *gin.Context) {
	id := c.Param("id")

	result, err := h.getFurnitureUseCase.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// SetQuantity 调整库存
// @Summary      调整库存数量
// @Description  数量可调成0（售罄但商品在架）
// @Tags         商品
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "商品ID"
// @Param        request body dto.SetQuantityRequest true "新数量"
// @Success      200 {object} response.Response "调整成功"
// @Failure      400 {object} response.Response "参数错误"
// @Failure      401 {object} response.Response "未登录"
// @Failure      404 {object} response.Response "商品不存在"
// @Router       /api/v1/furniture/{id} [put]
func (h *FurnitureHandler) SetQuantity(c *gin.Context) {
	var req dto.SetQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	result, err := h.setQuantityUseCase.Execute(c.Request.Context(), appcatalog.SetQuantityRequest{
		FurnitureID: c.Param("id"),
		Quantity:    *req.Quantity,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// RemoveFurniture 商品下架
// @Summary      商品下架
// @Tags         商品
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "商品ID"
// @Success      200 {object} response.Response "下架成功"
// @Failure      401 {object} response.Response "未登录"
// @Failure      404 {object} response.Response "商品不存在"
// @Router       /api/v1/furniture/{id} [delete]
func (h *FurnitureHandler) RemoveFurniture(c *gin.Context) {
	if err := h.removeFurnitureUseCase.Execute(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"message": "商品已下架"})
}
