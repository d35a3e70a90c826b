package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vibeshot/gallery-admin/internal/repository"
	"github.com/vibeshot/gallery-admin/internal/service"
	"github.com/vibeshot/gallery-admin/pkg/response"
)

// ListPrompts 提示词分页列表
// @Summary 提示词列表
// @Tags 提示词
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(20)
// @Param search query string false "搜索标题/正文/作者"
// @Param tag_id query string false "按标签过滤"
// @Param featured query bool false "只看精选"
// @Param published query bool false "按发布状态过滤"
// @Success 200 {object} response.Response
// @Router /api/v1/prompts [get]
func (h *Handler) ListPrompts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	params := repository.PromptListParams{
		Page:   page,
		Limit:  limit,
		Search: c.Query("search"),
		TagID:  c.Query("tag_id"),
	}
	if v, ok := parseBoolQuery(c, "featured"); ok {
		params.Featured = &v
	}
	if v, ok := parseBoolQuery(c, "published"); ok {
		params.Published = &v
	}

	list, total, err := h.promptService.List(c.Request.Context(), params)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, gin.H{"total": total, "page": params.Page, "limit": params.Limit, "list": list})
}

// GetPrompt 提示词详情
// @Summary 提示词详情
// @Tags 提示词
// @Param id path string true "提示词ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/prompts/{id} [get]
func (h *Handler) GetPrompt(c *gin.Context) {
	p, err := h.promptService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrPromptNotFound) {
			response.NotFound(c, "提示词不存在")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Success(c, p)
}

// CreatePrompt 创建提示词
// @Summary 创建提示词
// @Tags 提示词
// @Accept json
// @Param request body service.PromptInput true "提示词内容"
// @Success 201 {object} response.Response
// @Router /api/v1/prompts [post]
func (h *Handler) CreatePrompt(c *gin.Context) {
	var req service.PromptInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	p, err := h.promptService.Create(c.Request.Context(), req)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Created(c, p)
}

type promptUpdateRequest struct {
	Title          *string  `json:"title"`
	Description    *string  `json:"description"`
	PromptText     *string  `json:"prompt_text"`
	NegativePrompt *string  `json:"negative_prompt"`
	ImageURL       *string  `json:"image_url"`
	ThumbnailURL   *string  `json:"thumbnail_url"`
	AuthorName     *string  `json:"author_name"`
	AuthorWechat   *string  `json:"author_wechat"`
	Model          *string  `json:"model"`
	IsFeatured     *bool    `json:"is_featured"`
	IsPublished    *bool    `json:"is_published"`
	SortOrder      *int     `json:"sort_order"`
	TagIDs         []string `json:"tag_ids"`
}

func (r promptUpdateRequest) toUpdates() map[string]any {
	updates := map[string]any{}
	set := func(key string, v any, ok bool) {
		if ok {
			updates[key] = v
		}
	}
	set("title", deref(r.Title), r.Title != nil)
	set("description", deref(r.Description), r.Description != nil)
	set("prompt_text", deref(r.PromptText), r.PromptText != nil)
	set("negative_prompt", deref(r.NegativePrompt), r.NegativePrompt != nil)
	set("image_url", deref(r.ImageURL), r.ImageURL != nil)
	set("thumbnail_url", deref(r.ThumbnailURL), r.ThumbnailURL != nil)
	set("author_name", deref(r.AuthorName), r.AuthorName != nil)
	set("author_wechat", deref(r.AuthorWechat), r.AuthorWechat != nil)
	set("model", deref(r.Model), r.Model != nil)
	if r.IsFeatured != nil {
		updates["is_featured"] = *r.IsFeatured
	}
	if r.IsPublished != nil {
		updates["is_published"] = *r.IsPublished
	}
	if r.SortOrder != nil {
		updates["sort_order"] = *r.SortOrder
	}
	return updates
}

// UpdatePrompt 更新提示词
// @Summary 更新提示词
// @Tags 提示词
// @Accept json
// @Param id path string true "提示词ID"
// @Param request body promptUpdateRequest true "更新字段"
// @Success 200 {object} response.Response
// @Router /api/v1/prompts/{id} [put]
func (h *Handler) UpdatePrompt(c *gin.Context) {
	var req promptUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	p, err := h.promptService.Update(c.Request.Context(), c.Param("id"), req.toUpdates(), req.TagIDs)
	if err != nil {
		if errors.Is(err, service.ErrPromptNotFound) {
			response.NotFound(c, "提示词不存在")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Success(c, p)
}

// DeletePrompt 删除提示词
// @Summary 删除提示词
// @Tags 提示词
// @Param id path string true "提示词ID"
// @Success 200 {object} response.Response
// @Router /api/v1/prompts/{id} [delete]
func (h *Handler) DeletePrompt(c *gin.Context) {
	if err := h.promptService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, nil)
}

type reorderRequest struct {
	IDs []string `json:"ids" binding:"required,min=1"`
}

// ReorderPrompts 拖拽排序，列表头部权重最大
// @Summary 提示词排序
// @Tags 提示词
// @Accept json
// @Param request body reorderRequest true "按展示顺序排列的ID"
// @Success 200 {object} response.Response
// @Router /api/v1/prompts/reorder [post]
func (h *Handler) ReorderPrompts(c *gin.Context) {
	var req reorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := h.promptService.Reorder(c.Request.Context(), req.IDs); err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, nil)
}

// TrackPromptView 记一次浏览
// @Summary 浏览计数
// @Tags 提示词
// @Param id path string true "提示词ID"
// @Success 200 {object} response.Response
// @Router /api/v1/prompts/{id}/view [post]
func (h *Handler) TrackPromptView(c *gin.Context) {
	if err := h.viewTracker.Track(c.Request.Context(), c.Param("id")); err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, nil)
}

func parseBoolQuery(c *gin.Context, key string) (bool, bool) {
	raw, ok := c.GetQuery(key)
	if !ok {
		return false, false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return v, true
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
