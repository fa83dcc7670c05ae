package service

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"regexp"
	"strings"
	"time"

	"github.com/nsinterior-dev/figment/internal/database/postgres"
	"github.com/nsinterior-dev/figment/internal/entity"
	"github.com/nsinterior-dev/figment/internal/genai"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var dataURLPrefix = regexp.MustCompile(`^data:image/[a-zA-Z]+;base64,`)

// GenerationCache is the result cache consulted before the provider call.
// Satisfied by redis.CacheRepository; nil disables caching.
type GenerationCache interface {
	GetResult(ctx context.Context, key string) (*entity.Generation, error)
	SetResult(ctx context.Context, key string, gen *entity.Generation) error
}

type GenerationServiceConfig struct {
	HistoryLimit int
	MaxImageSize int64
}

type generationService struct {
	repo      postgres.GenerationRepository
	cacheRepo GenerationCache
	generator genai.CodeGenerator
	config    *GenerationServiceConfig
}

func NewGenerationService(
	repo postgres.GenerationRepository,
	cacheRepo GenerationCache,
	generator genai.CodeGenerator,
	config *GenerationServiceConfig,
) GenerationService {
	return &generationService{
		repo:      repo,
		cacheRepo: cacheRepo,
		generator: generator,
		config:    config,
	}
}

// Generate runs one request/response cycle: decode and validate the image,
// record a loading-status row, call the model, record the outcome. Every
// generation ends in success or error; there is no retry.
func (s *generationService) Generate(ctx context.Context, req *entity.GenerateRequest) (*entity.Generation, error) {
	if strings.TrimSpace(req.Image) == "" {
		return nil, entity.ErrNoImage
	}

	encoded := dataURLPrefix.ReplaceAllString(strings.TrimSpace(req.Image), "")
	imageData, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, entity.ErrInvalidBase64
	}

	result := ValidateImage(imageData, int64(len(imageData)), s.config.MaxImageSize)
	if !result.Valid {
		return nil, result.Reason
	}

	hash := sha256.Sum256(imageData)
	cacheKey := hex.EncodeToString(hash[:]) + ":" + hashPrompt(req.Prompt)

	if s.cacheRepo != nil {
		if cached, err := s.cacheRepo.GetResult(ctx, cacheKey); err == nil {
			logrus.WithField("generation_id", cached.ID).Info("Generation served from cache")
			return cached, nil
		}
	}

	now := time.Now()
	gen := &entity.Generation{
		ID:        uuid.New().String(),
		Status:    entity.GenerationStatusLoading,
		Prompt:    req.Prompt,
		ImageHash: hex.EncodeToString(hash[:]),
		Model:     s.generator.ModelName(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, gen); err != nil {
		return nil, err
	}

	start := time.Now()
	code, genErr := s.generator.GenerateCode(ctx, imageData, result.ContentType, req.Prompt)
	gen.DurationMs = time.Since(start).Milliseconds()
	gen.UpdatedAt = time.Now()

	if genErr != nil {
		// Full provider detail stays in the server log; clients only ever
		// see the generic message.
		logrus.WithFields(logrus.Fields{
			"generation_id": gen.ID,
			"model":         gen.Model,
			"duration_ms":   gen.DurationMs,
		}).Errorf("Generation failed: %v", genErr)

		gen.Status = entity.GenerationStatusError
		gen.ErrorMessage = entity.ErrGenerationFailed.Error()
		if err := s.repo.UpdateResult(ctx, gen); err != nil {
			logrus.Errorf("Failed to record generation error: %v", err)
		}
		return gen, entity.ErrGenerationFailed
	}

	gen.Status = entity.GenerationStatusSuccess
	gen.GeneratedCode = code
	if err := s.repo.UpdateResult(ctx, gen); err != nil {
		logrus.Errorf("Failed to record generation result: %v", err)
	}

	if s.cacheRepo != nil {
		if err := s.cacheRepo.SetResult(ctx, cacheKey, gen); err != nil {
			logrus.Warnf("Failed to cache generation result: %v", err)
		}
	}

	logrus.WithFields(logrus.Fields{
		"generation_id": gen.ID,
		"model":         gen.Model,
		"duration_ms":   gen.DurationMs,
	}).Info("Generation completed")

	return gen, nil
}

func (s *generationService) GetByID(ctx context.Context, id string) (*entity.Generation, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *generationService) List(ctx context.Context, limit int) ([]entity.Generation, error) {
	if limit <= 0 || limit > s.config.HistoryLimit {
		limit = s.config.HistoryLimit
	}
	return s.repo.List(ctx, limit)
}

func hashPrompt(prompt string) string {
	sum := sha256.Sum256([]byte(prompt))
	return hex.EncodeToString(sum[:8])
}
