package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/xiebiao/furnistore/internal/domain/furniture"
	"github.com/xiebiao/furnistore/internal/domain/order"
	"github.com/xiebiao/furnistore/pkg/response"
)

// EnumHandler 枚举值HTTP处理器
// 设计说明:
// 前端的下拉框选项（支付方式、椅子材质、桌子形状等）直接从这里取，
// 避免前后端各维护一份列表。枚举集合是领域常量，不走用例层。
type EnumHandler struct{}

// NewEnumHandler 创建枚举处理器
func NewEnumHandler() *EnumHandler {
	return &EnumHandler{}
}

// PaymentMethods 支付方式列表
// @Summary      支付方式列表
// @Tags         枚举
// @Produce      json
// @Success      200 {object} response.Response
// @Router       /api/v1/enums/payment-methods [get]
func (h *EnumHandler) PaymentMethods(c *gin.Context) {
	response.Success(c, order.PaymentMethods())
}

// ChairMaterials 椅子材质列表
// @Summary      椅子材质列表
// @Tags         枚举
// @Produce      json
// @Success      200 {object} response.Response
// @Router       /api/v1/enums/chair-materials [get]
func (h *EnumHandler) ChairMaterials(c *gin.Context) {
	response.Success(c, furniture.ChairMaterials())
}

// TableShapes 桌子形状列表
// @Summary      桌子形状列表
// @Tags         枚举
// @Produce      json
// @Success      200 {object} response.Response
// @Router       /api/v1/enums/table-shapes [get]
func (h *EnumHandler) TableShapes(c *gin.Context) {
	response.Success(c, furniture.TableShapes())
}

// Sizes 家具尺寸列表（桌子/书柜共用）
// @Summary      家具尺寸列表
// @Tags         枚举
// @Produce      json
// @Success      200 {object} response.Response
// @Router       /api/v1/enums/furniture-sizes [get]
func (h *EnumHandler) Sizes(c *gin.Context) {
	response.Success(c, furniture.Sizes())
}

// SofaColors 沙发颜色列表
// @Summary      沙发颜色列表
// @Tags         枚举
// @Produce      json
// @Success      200 {object} response.Response
// @Router       /api/v1/enums/sofa-colors [get]
func (h *EnumHandler) SofaColors(c *gin.Context) {
	response.Success(c, furniture.SofaColors())
}

// BedSizes 床尺寸列表
// @Summary      床尺寸列表
// @Tags         枚举
// @Produce      json
// @Success      200 {object} response.Response
// @Router       /api/v1/enums/bed-sizes [get]
func (h *EnumHandler) BedSizes(c *gin.Context) {
	response.Success(c, furniture.BedSizes())
}
