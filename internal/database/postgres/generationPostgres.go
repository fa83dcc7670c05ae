package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/nsinterior-dev/figment/internal/entity"

	_ "github.com/lib/pq"
)

type generationRepository struct {
	db *sql.DB
}

func NewGenerationRepository(db *sql.DB) GenerationRepository {
	return &generationRepository{db: db}
}

func (r *generationRepository) Create(ctx context.Context, gen *entity.Generation) error {
	query := `INSERT INTO generations (id, status, prompt, image_hash, model, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.ExecContext(ctx, query,
		gen.ID, gen.Status, gen.Prompt, gen.ImageHash, gen.Model, gen.CreatedAt, gen.UpdatedAt)
	return err
}

func (r *generationRepository) UpdateResult(ctx context.Context, gen *entity.Generation) error {
	query := `UPDATE generations
		SET status = $2, generated_code = $3, error_message = $4, duration_ms = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query,
		gen.ID, gen.Status, gen.GeneratedCode, gen.ErrorMessage, gen.DurationMs, gen.UpdatedAt)
	return err
}

func (r *generationRepository) GetByID(ctx context.Context, id string) (*entity.Generation, error) {
	var gen entity.Generation
	var prompt, code, errMsg sql.NullString

	query := `SELECT id, status, prompt, image_hash, generated_code, error_message, model, duration_ms, created_at, updated_at
		FROM generations WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&gen.ID, &gen.Status, &prompt, &gen.ImageHash, &code, &errMsg,
		&gen.Model, &gen.DurationMs, &gen.CreatedAt, &gen.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrGenerationNotFound
		}
		return nil, err
	}
	gen.Prompt = prompt.String
	gen.GeneratedCode = code.String
	gen.ErrorMessage = errMsg.String
	return &gen, nil
}

func (r *generationRepository) List(ctx context.Context, limit int) ([]entity.Generation, error) {
	query := `SELECT id, status, prompt, image_hash, generated_code, error_message, model, duration_ms, created_at, updated_at
		FROM generations ORDER BY created_at DESC LIMIT $1`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var generations []entity.Generation
	for rows.Next() {
		var gen entity.Generation
		var prompt, code, errMsg sql.NullString
		err := rows.Scan(
			&gen.ID, &gen.Status, &prompt, &gen.ImageHash, &code, &errMsg,
			&gen.Model, &gen.DurationMs, &gen.CreatedAt, &gen.UpdatedAt)
		if err != nil {
			return nil, err
		}
		gen.Prompt = prompt.String
		gen.GeneratedCode = code.String
		gen.ErrorMessage = errMsg.String
		generations = append(generations, gen)
	}

	return generations, rows.Err()
}
