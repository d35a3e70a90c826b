package handler

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"

	"github.com/vibeshot/gallery-admin/internal/service"
	"github.com/vibeshot/gallery-admin/pkg/response"
)

// UploadImage 管理端图片直传
// @Summary 上传图片
// @Tags 上传
// @Accept multipart/form-data
// @Param file formData file true "图片文件"
// @Success 201 {object} response.Response{data=service.UploadResult}
// @Router /api/v1/upload [post]
func (h *Handler) UploadImage(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "缺少图片文件")
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

	result, err := h.mediaService.UploadImage(c.Request.Context(), data)
	if err != nil {
		if errors.Is(err, service.ErrNotAnImage) {
			response.BadRequest(c, "文件不是可识别的图片")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Created(c, result)
}
