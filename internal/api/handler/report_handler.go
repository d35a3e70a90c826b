package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vibeshot/gallery-admin/internal/service"
	"github.com/vibeshot/gallery-admin/pkg/response"
)

// ListReports 日报分页列表
// @Summary 日报列表
// @Tags 日报
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(20)
// @Success 200 {object} response.Response
// @Router /api/v1/reports [get]
func (h *Handler) ListReports(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	list, total, err := h.reportService.List(c.Request.Context(), page, limit)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, gin.H{"total": total, "page": page, "limit": limit, "list": list})
}

// CreateReport 创建日报，正文上传到对象存储
// @Summary 创建日报
// @Tags 日报
// @Accept json
// @Param request body service.ReportInput true "日报内容"
// @Success 201 {object} response.Response
// @Router /api/v1/reports [post]
func (h *Handler) CreateReport(c *gin.Context) {
	var req service.ReportInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	report, err := h.reportService.Create(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDuplicateReport), errors.Is(err, service.ErrBadReportDate):
			response.BadRequest(c, err.Error())
		default:
			response.InternalError(c, err)
		}
		return
	}
	response.Created(c, report)
}

type reportUpdateRequest struct {
	Title       *string `json:"title"`
	Summary     *string `json:"summary"`
	IsPublished *bool   `json:"is_published"`
}

// UpdateReport 更新日报元信息
// @Summary 更新日报
// @Tags 日报
// @Param id path string true "日报ID"
// @Success 200 {object} response.Response
// @Router /api/v1/reports/{id} [put]
func (h *Handler) UpdateReport(c *gin.Context) {
	var req reportUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	updates := map[string]any{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Summary != nil {
		updates["summary"] = *req.Summary
	}
	if req.IsPublished != nil {
		updates["is_published"] = *req.IsPublished
	}
	report, err := h.reportService.Update(c.Request.Context(), c.Param("id"), updates)
	if err != nil {
		if errors.Is(err, service.ErrReportNotFound) {
			response.NotFound(c, "日报不存在")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Success(c, report)
}

// DeleteReport 删除日报
// @Summary 删除日报
// @Tags 日报
// @Param id path string true "日报ID"
// @Success 200 {object} response.Response
// @Router /api/v1/reports/{id} [delete]
func (h *Handler) DeleteReport(c *gin.Context) {
	if err := h.reportService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, service.ErrReportNotFound) {
			response.NotFound(c, "日报不存在")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Success(c, nil)
}
