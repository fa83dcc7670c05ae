package transport

import (
	"errors"
	"io"
	"net/http"

	"github.com/nsinterior-dev/figment/internal/entity"
	"github.com/gin-gonic/gin"
)

func (h *UploadHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/uploads", h.Upload)
	router.GET("/uploads/:id", h.GetUpload)
	router.GET("/uploads/:id/preview", h.GetPreview)
	router.DELETE("/uploads/:id", h.DeleteUpload)
}

func (h *UploadHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, entity.Fail(http.StatusBadRequest, entity.ErrNoImage.Error()))
		return
	}

	replacesID := c.PostForm("replaces_id")

	up, err := h.uploadService.Store(file, replacesID)
	if err != nil {
		switch {
		case errors.Is(err, entity.ErrInvalidImageType), errors.Is(err, entity.ErrImageTooLarge):
			c.JSON(http.StatusBadRequest, entity.Fail(http.StatusBadRequest, err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, entity.Fail(http.StatusInternalServerError, "Failed to store upload"))
		}
		return
	}

	c.JSON(http.StatusCreated, entity.OK(h.toResponse(up)))
}

func (h *UploadHandler) GetUpload(c *gin.Context) {
	up, err := h.uploadService.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, entity.Fail(http.StatusNotFound, entity.ErrUploadNotFound.Error()))
		return
	}

	c.JSON(http.StatusOK, entity.OK(h.toResponse(up)))
}

func (h *UploadHandler) GetPreview(c *gin.Context) {
	reader, err := h.uploadService.OpenPreview(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, entity.Fail(http.StatusNotFound, entity.ErrUploadNotFound.Error()))
		return
	}
	defer reader.Close()

	c.Header("Content-Type", "image/png")
	c.Status(http.StatusOK)
	io.Copy(c.Writer, reader)
}

func (h *UploadHandler) DeleteUpload(c *gin.Context) {
	if err := h.uploadService.Clear(c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, entity.Fail(http.StatusNotFound, entity.ErrUploadNotFound.Error()))
		return
	}

	c.JSON(http.StatusOK, entity.OK(gin.H{"message": "Upload deleted successfully"}))
}

func (h *UploadHandler) toResponse(up *entity.Upload) entity.UploadResponse {
	return entity.UploadResponse{
		ID:          up.ID,
		FileName:    up.FileName,
		ContentType: up.ContentType,
		Size:        up.Size,
		PreviewURL:  h.baseURL + "/api/uploads/" + up.ID + "/preview",
		CreatedAt:   up.CreatedAt,
	}
}
