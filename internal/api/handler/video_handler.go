package handler

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"

	"github.com/vibeshot/gallery-admin/internal/service"
	"github.com/vibeshot/gallery-admin/pkg/response"
)

// ListVideos 首页视频列表
// @Summary 首页视频列表
// @Tags 首页视频
// @Success 200 {object} response.Response
// @Router /api/v1/homepage-videos [get]
func (h *Handler) ListVideos(c *gin.Context) {
	videos, err := h.videoService.List(c.Request.Context())
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, videos)
}

// UploadVideo 上传首页视频（multipart）
// @Summary 上传首页视频
// @Tags 首页视频
// @Accept multipart/form-data
// @Param file formData file true "视频文件，不超过100MB"
// @Param title formData string false "标题"
// @Success 201 {object} response.Response
// @Router /api/v1/homepage-videos [post]
func (h *Handler) UploadVideo(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "缺少视频文件")
		return
	}
	if fileHeader.Size > service.MaxVideoSize {
		response.BadRequest(c, "视频超过 100MB 限制")
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		response.InternalError(c, err)
		return
	}

	video, err := h.videoService.Create(c.Request.Context(), service.VideoUpload{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Orientation: c.PostForm("orientation"),
		MimeType:    fileHeader.Header.Get("Content-Type"),
		Data:        data,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnsupportedVideo), errors.Is(err, service.ErrVideoTooLarge):
			response.BadRequest(c, err.Error())
		default:
			response.InternalError(c, err)
		}
		return
	}
	response.Created(c, video)
}

type videoUpdateRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Orientation *string `json:"orientation"`
	IsActive    *bool   `json:"is_active"`
}

// UpdateVideo 更新视频元信息
// @Summary 更新首页视频
// @Tags 首页视频
// @Param id path string true "视频ID"
// @Success 200 {object} response.Response
// @Router /api/v1/homepage-videos/{id} [put]
func (h *Handler) UpdateVideo(c *gin.Context) {
	var req videoUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	updates := map[string]any{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Orientation != nil {
		updates["orientation"] = *req.Orientation
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	video, err := h.videoService.Update(c.Request.Context(), c.Param("id"), updates)
	if err != nil {
		if errors.Is(err, service.ErrVideoNotFound) {
			response.NotFound(c, "视频不存在")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Success(c, video)
}

// ReorderVideos 视频排序
// @Summary 首页视频排序
// @Tags 首页视频
// @Accept json
// @Param request body reorderRequest true "按展示顺序排列的ID"
// @Success 200 {object} response.Response
// @Router /api/v1/homepage-videos/reorder [post]
func (h *Handler) ReorderVideos(c *gin.Context) {
	var req reorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := h.videoService.Reorder(c.Request.Context(), req.IDs); err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, nil)
}

// DeleteVideo 删除首页视频
// @Summary 删除首页视频
// @Tags 首页视频
// @Param id path string true "视频ID"
// @Success 200 {object} response.Response
// @Router /api/v1/homepage-videos/{id} [delete]
func (h *Handler) DeleteVideo(c *gin.Context) {
	if err := h.videoService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, service.ErrVideoNotFound) {
			response.NotFound(c, "视频不存在")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Success(c, nil)
}
