package service

import (
	"context"
	"io"
	"mime/multipart"

	"github.com/nsinterior-dev/figment/internal/entity"
)

type GenerationService interface {
	Generate(ctx context.Context, req *entity.GenerateRequest) (*entity.Generation, error)
	GetByID(ctx context.Context, id string) (*entity.Generation, error)
	List(ctx context.Context, limit int) ([]entity.Generation, error)
}

type UploadService interface {
	Store(file *multipart.FileHeader, replacesID string) (*entity.Upload, error)
	Get(id string) (*entity.Upload, error)
	OpenPreview(id string) (io.ReadCloser, error)
	Clear(id string) error
}
