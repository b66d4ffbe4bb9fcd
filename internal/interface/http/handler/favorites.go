package handler

import (
	"github.com/gin-gonic/gin"

	appuser "github.com/xiebiao/furnistore/internal/application/user"
	"github.com/xiebiao/furnistore/internal/interface/http/middleware"
	"github.com/xiebiao/furnistore/pkg/response"
)

// FavoritesHandler 收藏HTTP处理器
type FavoritesHandler struct {
	addFavoriteUseCase    *appuser.AddFavoriteUseCase
	removeFavoriteUseCase *appuser.RemoveFavoriteUseCase
	listFavoritesUseCase  *appuser.ListFavoritesUseCase
}

// NewFavoritesHandler 创建收藏处理器
func NewFavoritesHandler(
	addFavoriteUseCase *appuser.AddFavoriteUseCase,
	removeFavoriteUseCase *appuser.RemoveFavoriteUseCase,
	listFavoritesUseCase *appuser.ListFavoritesUseCase,
) *FavoritesHandler {
	return &FavoritesHandler{
		addFavoriteUseCase:    addFavoriteUseCase,
		removeFavoriteUseCase: removeFavoriteUseCase,
		listFavoritesUseCase:  listFavoritesUseCase,
	}
}

// AddFavorite 添加收藏
// @Summary      添加收藏
// @Description  重复收藏不报错（幂等）
// @Tags         收藏
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body object{furniture_id=string} true "商品ID"
// @Success      200 {object} response.Response "收藏成功"
// @Failure      401 {object} response.Response "未登录"
// @Failure      404 {object} response.Response "商品不存在"
// @Router       /api/v1/favorites [post]
func (h *FavoritesHandler) AddFavorite(c *gin.Context) {
	var req struct {
		FurnitureID string `json:"furniture_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	userID := middleware.MustGetUserID(c)

	if err := h.addFavoriteUseCase.Execute(c.Request.Context(), userID, req.FurnitureID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"message": "收藏成功"})
}

// RemoveFavorite 取消收藏
// @Summary      取消收藏
// @Tags         收藏
// @Produce      json
// @Security     BearerAuth
// @Param        furniture_id path string true "商品ID"
// @Success      200 {object} response.Response "取消成功"
// @Failure      401 {object} response.Response "未登录"
// @Failure      404 {object} response.Response "商品不在收藏列表中"
// @Router       /api/v1/favorites/{furniture_id} [delete]
func (h *FavoritesHandler) RemoveFavorite(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	if err := h.removeFavoriteUseCase.Execute(c.Request.Context(), userID, c.Param("furniture_id")); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"message": "已取消收藏"})
}

// ListFavorites 收藏列表
// @Summary      收藏列表
// @Description  已下架的商品只返回ID，in_stock=false
// @Tags         收藏
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response "查询成功"
// @Failure      401 {object} response.Response "未登录"
// @Router       /api/v1/favorites [get]
func (h *FavoritesHandler) ListFavorites(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	result, err := h.listFavoritesUseCase.Execute(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
