package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vibeshot/gallery-admin/internal/service"
	"github.com/vibeshot/gallery-admin/internal/twitter"
	"github.com/vibeshot/gallery-admin/pkg/response"
)

// ListCreators 创作者列表
// @Summary 创作者列表
// @Tags 创作者
// @Success 200 {object} response.Response
// @Router /api/v1/creators [get]
func (h *Handler) ListCreators(c *gin.Context) {
	creators, err := h.creatorService.List(c.Request.Context())
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, creators)
}

// CreateCreator 创建创作者
// @Summary 创建创作者
// @Tags 创作者
// @Accept json
// @Param request body service.CreatorInput true "创作者信息"
// @Success 201 {object} response.Response
// @Router /api/v1/creators [post]
func (h *Handler) CreateCreator(c *gin.Context) {
	var req service.CreatorInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	creator, err := h.creatorService.Create(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrDuplicateCreator) {
			response.BadRequest(c, "该用户名已存在")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Created(c, creator)
}

// UpdateCreator 更新创作者
// @Summary 更新创作者
// @Tags 创作者
// @Param id path string true "创作者ID"
// @Success 200 {object} response.Response
// @Router /api/v1/creators/{id} [put]
func (h *Handler) UpdateCreator(c *gin.Context) {
	var req service.CreatorInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	creator, err := h.creatorService.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCreatorNotFound):
			response.NotFound(c, "创作者不存在")
		case errors.Is(err, service.ErrDuplicateCreator):
			response.BadRequest(c, "该用户名已存在")
		default:
			response.InternalError(c, err)
		}
		return
	}
	response.Success(c, creator)
}

// DeleteCreator 删除创作者
// @Summary 删除创作者
// @Tags 创作者
// @Param id path string true "创作者ID"
// @Success 200 {object} response.Response
// @Router /api/v1/creators/{id} [delete]
func (h *Handler) DeleteCreator(c *gin.Context) {
	if err := h.creatorService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, service.ErrCreatorNotFound) {
			response.NotFound(c, "创作者不存在")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Success(c, nil)
}

type crawlRequest struct {
	Username       string `json:"username"`
	SinceDate      string `json:"since_date"`
	SkipClassifier bool   `json:"skip_classifier"`
}

type crawlError struct {
	Kind string `json:"kind"` // rate_limited, unauthorized, generic
	Hint string `json:"hint"`
	Msg  string `json:"message"`
}

// CrawlCreator 对单个创作者跑一次内容摄取
// @Summary 抓取创作者内容
// @Tags 创作者
// @Accept json
// @Param id path string true "创作者ID"
// @Param request body crawlRequest true "抓取参数"
// @Success 200 {object} response.Response
// @Failure 429 {object} response.Response
// @Router /api/v1/creators/{id}/crawl [post]
func (h *Handler) CrawlCreator(c *gin.Context) {
	var req crawlRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		response.BadRequest(c, err.Error())
		return
	}

	stats, err := h.crawlService.Crawl(c.Request.Context(), c.Param("id"), service.CrawlOptions{
		Username:       req.Username,
		SinceDate:      req.SinceDate,
		SkipClassifier: req.SkipClassifier,
	})
	if err != nil {
		h.writeCrawlError(c, err)
		return
	}
	response.Success(c, stats)
}

// writeCrawlError 把流水线错误映射为带处置建议的结构化错误
func (h *Handler) writeCrawlError(c *gin.Context, err error) {
	var rateErr *twitter.RateLimitError
	var authErr *twitter.AuthError

	switch {
	case errors.Is(err, service.ErrCreatorNotFound):
		response.NotFound(c, "创作者不存在")
	case errors.Is(err, service.ErrUsernameRequired),
		errors.Is(err, service.ErrBadSinceDate):
		response.BadRequest(c, err.Error())
	case errors.As(err, &rateErr):
		c.JSON(http.StatusTooManyRequests, response.Response{
			Code:    http.StatusTooManyRequests,
			Message: "rate limited",
			Data:    crawlError{Kind: "rate_limited", Hint: rateErr.Hint(), Msg: err.Error()},
		})
	case errors.As(err, &authErr):
		c.JSON(http.StatusBadGateway, response.Response{
			Code:    http.StatusBadGateway,
			Message: "upstream auth failed",
			Data:    crawlError{Kind: "unauthorized", Hint: authErr.Hint(), Msg: err.Error()},
		})
	default:
		c.JSON(http.StatusInternalServerError, response.Response{
			Code:    http.StatusInternalServerError,
			Message: "crawl failed",
			Data:    crawlError{Kind: "generic", Hint: "查看服务端日志定位失败原因", Msg: err.Error()},
		})
	}
}
