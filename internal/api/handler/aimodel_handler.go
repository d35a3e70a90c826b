package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/vibeshot/gallery-admin/internal/model"
	"github.com/vibeshot/gallery-admin/pkg/response"
)

type aiModelRequest struct {
	Name      string `json:"name" binding:"required"`
	Vendor    string `json:"vendor"`
	Category  string `json:"category"` // closed, open
	IsActive  *bool  `json:"is_active"`
	SortOrder int    `json:"sort_order"`
}

// ListModels 生成模型列表
// @Summary 生成模型列表
// @Tags 模型
// @Param active query bool false "只看启用"
// @Success 200 {object} response.Response
// @Router /api/v1/models [get]
func (h *Handler) ListModels(c *gin.Context) {
	onlyActive := c.Query("active") == "true"
	models, err := h.modelRepo.List(c.Request.Context(), onlyActive)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, models)
}

// CreateModel 登记生成模型
// @Summary 登记生成模型
// @Tags 模型
// @Accept json
// @Param request body aiModelRequest true "模型信息"
// @Success 201 {object} response.Response
// @Router /api/v1/models [post]
func (h *Handler) CreateModel(c *gin.Context) {
	var req aiModelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	m := &model.AIModel{
		Name:      req.Name,
		Vendor:    req.Vendor,
		Category:  req.Category,
		IsActive:  true,
		SortOrder: req.SortOrder,
	}
	if req.IsActive != nil {
		m.IsActive = *req.IsActive
	}
	if err := h.modelRepo.Create(c.Request.Context(), m); err != nil {
		response.InternalError(c, err)
		return
	}
	response.Created(c, m)
}

// UpdateModel 更新生成模型
// @Summary 更新生成模型
// @Tags 模型
// @Param id path string true "模型ID"
// @Success 200 {object} response.Response
// @Router /api/v1/models/{id} [put]
func (h *Handler) UpdateModel(c *gin.Context) {
	var req aiModelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	updates := map[string]any{
		"name":       req.Name,
		"vendor":     req.Vendor,
		"category":   req.Category,
		"sort_order": req.SortOrder,
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if err := h.modelRepo.Update(c.Request.Context(), c.Param("id"), updates); err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, nil)
}

// DeleteModel 删除生成模型
// @Summary 删除生成模型
// @Tags 模型
// @Param id path string true "模型ID"
// @Success 200 {object} response.Response
// @Router /api/v1/models/{id} [delete]
func (h *Handler) DeleteModel(c *gin.Context) {
	if err := h.modelRepo.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, nil)
}
