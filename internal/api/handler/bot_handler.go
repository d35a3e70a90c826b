package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/vibeshot/gallery-admin/internal/service"
	"github.com/vibeshot/gallery-admin/pkg/response"
)

// BotListCreators 给外部爬虫的活跃创作者清单
// @Summary 活跃创作者清单（服务间）
// @Tags 机器人
// @Success 200 {object} response.Response
// @Router /api/bot/creators [get]
func (h *Handler) BotListCreators(c *gin.Context) {
	creators, err := h.creatorService.ListActive(c.Request.Context())
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, creators)
}

type botCreatorPatch struct {
	ID           string `json:"id" binding:"required"`
	FetchDelta   int64  `json:"fetch_delta"`
	SuccessDelta int64  `json:"success_delta"`
}

// BotPatchCreator 爬虫回报抓取结果
// @Summary 回报抓取结果（服务间）
// @Tags 机器人
// @Accept json
// @Param request body botCreatorPatch true "计数增量"
// @Success 200 {object} response.Response
// @Router /api/bot/creators [patch]
func (h *Handler) BotPatchCreator(c *gin.Context) {
	var req botCreatorPatch
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := h.creatorService.MarkFetched(c.Request.Context(), req.ID, req.FetchDelta, req.SuccessDelta); err != nil {
		if errors.Is(err, service.ErrCreatorNotFound) {
			response.NotFound(c, "创作者不存在")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Success(c, nil)
}

// BotCreatePrompt 爬虫摄取入库，带去重检查
// @Summary 摄取提示词（服务间）
// @Tags 机器人
// @Accept json
// @Param request body service.PromptInput true "提示词内容"
// @Success 201 {object} response.Response
// @Router /api/bot/prompts [post]
func (h *Handler) BotCreatePrompt(c *gin.Context) {
	var req service.PromptInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	p, err := h.promptService.Ingest(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrDuplicatePrompt) {
			response.Success(c, gin.H{"duplicate": true})
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Created(c, p)
}

// BotCreateReport 爬虫提交日报
// @Summary 提交日报（服务间）
// @Tags 机器人
// @Accept json
// @Param request body service.ReportInput true "日报内容"
// @Success 201 {object} response.Response
// @Router /api/bot/reports [post]
func (h *Handler) BotCreateReport(c *gin.Context) {
	var req service.ReportInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	report, err := h.reportService.Create(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDuplicateReport):
			response.Success(c, gin.H{"duplicate": true})
		case errors.Is(err, service.ErrBadReportDate):
			response.BadRequest(c, err.Error())
		default:
			response.InternalError(c, err)
		}
		return
	}
	response.Created(c, report)
}
