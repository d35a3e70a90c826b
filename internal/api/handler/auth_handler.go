package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/vibeshot/gallery-admin/internal/api/middleware"
	"github.com/vibeshot/gallery-admin/internal/service"
	"github.com/vibeshot/gallery-admin/pkg/response"
)

type loginRequest struct {
	Password string `json:"password" binding:"required"`
}

// Login 管理员登录
// @Summary 管理员登录
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body loginRequest true "登录口令"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /api/v1/auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	token, err := h.authService.Login(req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidPassword) {
			response.Unauthorized(c, "口令错误")
			return
		}
		response.InternalError(c, err)
		return
	}
	c.SetCookie(middleware.SessionCookie, token, int(service.SessionTTL.Seconds()), "/", "", false, true)
	response.Success(c, nil)
}

// Logout 退出登录
// @Summary 退出登录
// @Tags 认证
// @Success 200 {object} response.Response
// @Router /api/v1/auth/logout [post]
func (h *Handler) Logout(c *gin.Context) {
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
	response.Success(c, nil)
}

// CheckAuth 会话探活
// @Summary 会话探活
// @Tags 认证
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /api/v1/auth/check [get]
func (h *Handler) CheckAuth(c *gin.Context) {
	token, err := c.Cookie(middleware.SessionCookie)
	if err != nil || h.authService.Verify(token) != nil {
		response.Unauthorized(c, "未登录")
		return
	}
	response.Success(c, gin.H{"authenticated": true})
}
