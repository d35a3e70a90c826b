package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/vibeshot/gallery-admin/internal/model"
	"github.com/vibeshot/gallery-admin/pkg/response"
)

type tagRequest struct {
	Name   string `json:"name" binding:"required"`
	Type   string `json:"type"`
	TypeID string `json:"type_id"`
	Color  string `json:"color"`
}

// ListTags 标签列表
// @Summary 标签列表
// @Tags 标签
// @Param type_id query string false "按分组过滤"
// @Success 200 {object} response.Response
// @Router /api/v1/tags [get]
func (h *Handler) ListTags(c *gin.Context) {
	tags, err := h.tagRepo.ListTags(c.Request.Context(), c.Query("type_id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, tags)
}

// CreateTag 创建标签
// @Summary 创建标签
// @Tags 标签
// @Accept json
// @Param request body tagRequest true "标签内容"
// @Success 201 {object} response.Response
// @Router /api/v1/tags [post]
func (h *Handler) CreateTag(c *gin.Context) {
	var req tagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	tag := &model.Tag{Name: req.Name, Type: req.Type, Color: req.Color}
	if req.TypeID != "" {
		t, err := h.tagRepo.GetTypeByID(c.Request.Context(), req.TypeID)
		if err != nil {
			response.BadRequest(c, "标签分组不存在")
			return
		}
		tag.TypeID = &t.ID
		tag.Type = t.Slug
	}
	if err := h.tagRepo.CreateTag(c.Request.Context(), tag); err != nil {
		response.InternalError(c, err)
		return
	}
	response.Created(c, tag)
}

// UpdateTag 更新标签
// @Summary 更新标签
// @Tags 标签
// @Param id path string true "标签ID"
// @Success 200 {object} response.Response
// @Router /api/v1/tags/{id} [put]
func (h *Handler) UpdateTag(c *gin.Context) {
	var req tagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	updates := map[string]any{"name": req.Name}
	if req.Color != "" {
		updates["color"] = req.Color
	}
	if req.TypeID != "" {
		t, err := h.tagRepo.GetTypeByID(c.Request.Context(), req.TypeID)
		if err != nil {
			response.BadRequest(c, "标签分组不存在")
			return
		}
		updates["type_id"] = t.ID
		updates["type"] = t.Slug
	}
	if err := h.tagRepo.UpdateTag(c.Request.Context(), c.Param("id"), updates); err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, nil)
}

// DeleteTag 删除标签并解除提示词关联
// @Summary 删除标签
// @Tags 标签
// @Param id path string true "标签ID"
// @Success 200 {object} response.Response
// @Router /api/v1/tags/{id} [delete]
func (h *Handler) DeleteTag(c *gin.Context) {
	if err := h.tagRepo.DeleteTag(c.Request.Context(), c.Param("id")); err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, nil)
}

type tagTypeRequest struct {
	Name      string `json:"name" binding:"required"`
	Slug      string `json:"slug" binding:"required"`
	Color     string `json:"color"`
	SortOrder int    `json:"sort_order"`
}

// ListTagTypes 标签分组列表
// @Summary 标签分组列表
// @Tags 标签
// @Success 200 {object} response.Response
// @Router /api/v1/tag-types [get]
func (h *Handler) ListTagTypes(c *gin.Context) {
	types, err := h.tagRepo.ListTypes(c.Request.Context())
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, types)
}

// CreateTagType 创建标签分组
// @Summary 创建标签分组
// @Tags 标签
// @Accept json
// @Param request body tagTypeRequest true "分组内容"
// @Success 201 {object} response.Response
// @Router /api/v1/tag-types [post]
func (h *Handler) CreateTagType(c *gin.Context) {
	var req tagTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	t := &model.TagType{Name: req.Name, Slug: req.Slug, Color: req.Color, SortOrder: req.SortOrder}
	if err := h.tagRepo.CreateType(c.Request.Context(), t); err != nil {
		response.InternalError(c, err)
		return
	}
	response.Created(c, t)
}

// UpdateTagType 更新标签分组
// @Summary 更新标签分组
// @Tags 标签
// @Param id path string true "分组ID"
// @Success 200 {object} response.Response
// @Router /api/v1/tag-types/{id} [put]
func (h *Handler) UpdateTagType(c *gin.Context) {
	var req tagTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	updates := map[string]any{
		"name":       req.Name,
		"slug":       req.Slug,
		"sort_order": req.SortOrder,
	}
	if req.Color != "" {
		updates["color"] = req.Color
	}
	if err := h.tagRepo.UpdateType(c.Request.Context(), c.Param("id"), updates); err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, nil)
}

// DeleteTagType 删除标签分组
// @Summary 删除标签分组
// @Tags 标签
// @Param id path string true "分组ID"
// @Success 200 {object} response.Response
// @Router /api/v1/tag-types/{id} [delete]
func (h *Handler) DeleteTagType(c *gin.Context) {
	if err := h.tagRepo.DeleteType(c.Request.Context(), c.Param("id")); err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, nil)
}
