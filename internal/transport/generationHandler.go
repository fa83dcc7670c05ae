package transport

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/nsinterior-dev/figment/internal/entity"
	"github.com/gin-gonic/gin"
)

// genericGenerationError is the only message generation failures surface to
// clients. The real provider error is logged server-side.
const genericGenerationError = "Failed to generate code, please try again"

func (h *GenerationHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/generate", h.Generate)
	router.GET("/generations", h.ListGenerations)
	router.GET("/generations/:id", h.GetGeneration)
}

func (h *GenerationHandler) Generate(c *gin.Context) {
	var req entity.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Image == "" {
		c.JSON(http.StatusBadRequest, entity.Fail(http.StatusBadRequest, entity.ErrNoImage.Error()))
		return
	}

	gen, err := h.generationService.Generate(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, entity.ErrNoImage),
			errors.Is(err, entity.ErrInvalidBase64),
			errors.Is(err, entity.ErrInvalidImageType),
			errors.Is(err, entity.ErrImageTooLarge):
			c.JSON(http.StatusBadRequest, entity.Fail(http.StatusBadRequest, err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, entity.Fail(http.StatusInternalServerError, genericGenerationError))
		}
		return
	}

	c.JSON(http.StatusOK, entity.OK(entity.GenerateData{
		ID:            gen.ID,
		GeneratedCode: gen.GeneratedCode,
	}))
}

func (h *GenerationHandler) ListGenerations(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	generations, err := h.generationService.List(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, entity.Fail(http.StatusInternalServerError, "Failed to list generations"))
		return
	}

	c.JSON(http.StatusOK, entity.OK(generations))
}

func (h *GenerationHandler) GetGeneration(c *gin.Context) {
	id := c.Param("id")

	gen, err := h.generationService.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, entity.ErrGenerationNotFound) {
			c.JSON(http.StatusNotFound, entity.Fail(http.StatusNotFound, entity.ErrGenerationNotFound.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, entity.Fail(http.StatusInternalServerError, "Failed to get generation"))
		return
	}

	c.JSON(http.StatusOK, entity.OK(gen))
}
