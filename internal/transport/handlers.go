package transport

import (
	"github.com/nsinterior-dev/figment/internal/service"
)

type GenerationHandler struct {
	generationService service.GenerationService
}

func NewGenerationHandler(generationService service.GenerationService) *GenerationHandler {
	return &GenerationHandler{
		generationService: generationService,
	}
}

type UploadHandler struct {
	uploadService service.UploadService
	baseURL       string
}

func NewUploadHandler(uploadService service.UploadService, baseURL string) *UploadHandler {
	return &UploadHandler{
		uploadService: uploadService,
		baseURL:       baseURL,
	}
}
