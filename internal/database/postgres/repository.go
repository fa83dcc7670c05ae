package postgres

import (
	"context"

	"github.com/nsinterior-dev/figment/internal/entity"
)

type GenerationRepository interface {
	Create(ctx context.Context, gen *entity.Generation) error
	UpdateResult(ctx context.Context, gen *entity.Generation) error
	GetByID(ctx context.Context, id string) (*entity.Generation, error)
	List(ctx context.Context, limit int) ([]entity.Generation, error)
}
