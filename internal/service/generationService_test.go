package service

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/nsinterior-dev/figment/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGenerationRepo records the status transitions the service writes.
type fakeGenerationRepo struct {
	created *entity.Generation
	updated *entity.Generation
	byID    map[string]*entity.Generation
}

func newFakeGenerationRepo() *fakeGenerationRepo {
	return &fakeGenerationRepo{byID: make(map[string]*entity.Generation)}
}

func (r *fakeGenerationRepo) Create(_ context.Context, gen *entity.Generation) error {
	copied := *gen
	r.created = &copied
	r.byID[gen.ID] = &copied
	return nil
}

func (r *fakeGenerationRepo) UpdateResult(_ context.Context, gen *entity.Generation) error {
	copied := *gen
	r.updated = &copied
	r.byID[gen.ID] = &copied
	return nil
}

func (r *fakeGenerationRepo) GetByID(_ context.Context, id string) (*entity.Generation, error) {
	gen, ok := r.byID[id]
	if !ok {
		return nil, entity.ErrGenerationNotFound
	}
	return gen, nil
}

func (r *fakeGenerationRepo) List(_ context.Context, limit int) ([]entity.Generation, error) {
	var out []entity.Generation
	for _, gen := range r.byID {
		out = append(out, *gen)
	}
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

type fakeGenerator struct {
	code string
	err  error

	calls     int
	gotFormat string
	gotPrompt string
}

func (g *fakeGenerator) GenerateCode(_ context.Context, _ []byte, format, userPrompt string) (string, error) {
	g.calls++
	g.gotFormat = format
	g.gotPrompt = userPrompt
	return g.code, g.err
}

func (g *fakeGenerator) ModelName() string { return "gemini-1.5-flash" }

type fakeGenerationCache struct {
	entries map[string]*entity.Generation
}

func newFakeGenerationCache() *fakeGenerationCache {
	return &fakeGenerationCache{entries: make(map[string]*entity.Generation)}
}

func (c *fakeGenerationCache) GetResult(_ context.Context, key string) (*entity.Generation, error) {
	gen, ok := c.entries[key]
	if !ok {
		return nil, errors.New("cache miss")
	}
	return gen, nil
}

func (c *fakeGenerationCache) SetResult(_ context.Context, key string, gen *entity.Generation) error {
	c.entries[key] = gen
	return nil
}

func pngBase64() string {
	return base64.StdEncoding.EncodeToString(pngHeader)
}

func TestGenerateSuccess(t *testing.T) {
	repo := newFakeGenerationRepo()
	gen := &fakeGenerator{code: "export default function App() {}"}
	svc := NewGenerationService(repo, nil, gen, &GenerationServiceConfig{HistoryLimit: 50})

	result, err := svc.Generate(context.Background(), &entity.GenerateRequest{
		Image:  pngBase64(),
		Prompt: "dark theme",
	})

	require.NoError(t, err)
	assert.Equal(t, entity.GenerationStatusSuccess, result.Status)
	assert.Equal(t, "export default function App() {}", result.GeneratedCode)
	assert.Empty(t, result.ErrorMessage)
	assert.Equal(t, "dark theme", gen.gotPrompt)
	assert.Equal(t, "image/png", gen.gotFormat)

	// The row is first written as loading, then settled as success.
	require.NotNil(t, repo.created)
	assert.Equal(t, entity.GenerationStatusLoading, repo.created.Status)
	require.NotNil(t, repo.updated)
	assert.Equal(t, entity.GenerationStatusSuccess, repo.updated.Status)
	assert.Equal(t, repo.created.ID, repo.updated.ID)
}

func TestGenerateSuccessPopulatesCache(t *testing.T) {
	cache := newFakeGenerationCache()
	svc := NewGenerationService(newFakeGenerationRepo(), cache, &fakeGenerator{code: "ok"},
		&GenerationServiceConfig{HistoryLimit: 50})

	result, err := svc.Generate(context.Background(), &entity.GenerateRequest{Image: pngBase64()})

	require.NoError(t, err)
	require.Len(t, cache.entries, 1)
	for _, cached := range cache.entries {
		assert.Equal(t, result.ID, cached.ID)
		assert.Equal(t, entity.GenerationStatusSuccess, cached.Status)
	}
}

func TestGenerateCacheHitSkipsProvider(t *testing.T) {
	cache := newFakeGenerationCache()
	gen := &fakeGenerator{code: "export default function App() {}"}

	first := NewGenerationService(newFakeGenerationRepo(), cache, gen,
		&GenerationServiceConfig{HistoryLimit: 50})
	original, err := first.Generate(context.Background(), &entity.GenerateRequest{
		Image:  pngBase64(),
		Prompt: "dark theme",
	})
	require.NoError(t, err)
	require.Equal(t, 1, gen.calls)

	// Same image and prompt again: served from the cache, the provider and
	// the repository stay untouched.
	repo := newFakeGenerationRepo()
	second := NewGenerationService(repo, cache, gen,
		&GenerationServiceConfig{HistoryLimit: 50})
	cached, err := second.Generate(context.Background(), &entity.GenerateRequest{
		Image:  pngBase64(),
		Prompt: "dark theme",
	})

	require.NoError(t, err)
	assert.Equal(t, original.ID, cached.ID)
	assert.Equal(t, original.GeneratedCode, cached.GeneratedCode)
	assert.Equal(t, 1, gen.calls)
	assert.Nil(t, repo.created)

	// A different prompt misses and goes back to the provider.
	_, err = second.Generate(context.Background(), &entity.GenerateRequest{
		Image:  pngBase64(),
		Prompt: "light theme",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, gen.calls)
}

func TestGenerateConfiguredSizeLimit(t *testing.T) {
	repo := newFakeGenerationRepo()
	svc := NewGenerationService(repo, nil, &fakeGenerator{code: "ok"},
		&GenerationServiceConfig{HistoryLimit: 50, MaxImageSize: 4})

	_, err := svc.Generate(context.Background(), &entity.GenerateRequest{Image: pngBase64()})

	require.ErrorIs(t, err, entity.ErrImageTooLarge)
	assert.Nil(t, repo.created)
}

func TestGenerateDataURLPrefixAccepted(t *testing.T) {
	repo := newFakeGenerationRepo()
	svc := NewGenerationService(repo, nil, &fakeGenerator{code: "ok"}, &GenerationServiceConfig{HistoryLimit: 50})

	result, err := svc.Generate(context.Background(), &entity.GenerateRequest{
		Image: "data:image/png;base64," + pngBase64(),
	})

	require.NoError(t, err)
	assert.Equal(t, entity.GenerationStatusSuccess, result.Status)
}

func TestGenerateProviderError(t *testing.T) {
	repo := newFakeGenerationRepo()
	gen := &fakeGenerator{err: errors.New("quota exceeded: project 1234 suspended")}
	svc := NewGenerationService(repo, nil, gen, &GenerationServiceConfig{HistoryLimit: 50})

	result, err := svc.Generate(context.Background(), &entity.GenerateRequest{Image: pngBase64()})

	require.ErrorIs(t, err, entity.ErrGenerationFailed)
	require.NotNil(t, result)
	assert.Equal(t, entity.GenerationStatusError, result.Status)
	assert.Empty(t, result.GeneratedCode)

	// The stored message is the generic one, never the provider text.
	assert.Equal(t, entity.ErrGenerationFailed.Error(), result.ErrorMessage)
	assert.NotContains(t, result.ErrorMessage, "quota")
}

func TestGenerateValidation(t *testing.T) {
	tests := []struct {
		name    string
		image   string
		wantErr error
	}{
		{
			name:    "missing image",
			image:   "",
			wantErr: entity.ErrNoImage,
		},
		{
			name:    "not base64",
			image:   "%%%not-base64%%%",
			wantErr: entity.ErrInvalidBase64,
		},
		{
			name:    "disallowed type",
			image:   base64.StdEncoding.EncodeToString(gifHeader),
			wantErr: entity.ErrInvalidImageType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeGenerationRepo()
			svc := NewGenerationService(repo, nil, &fakeGenerator{code: "ok"}, &GenerationServiceConfig{HistoryLimit: 50})

			_, err := svc.Generate(context.Background(), &entity.GenerateRequest{Image: tt.image})

			require.ErrorIs(t, err, tt.wantErr)
			// Validation failures never reach the repository.
			assert.Nil(t, repo.created)
		})
	}
}

func TestGetByIDNotFound(t *testing.T) {
	repo := newFakeGenerationRepo()
	svc := NewGenerationService(repo, nil, &fakeGenerator{}, &GenerationServiceConfig{HistoryLimit: 50})

	_, err := svc.GetByID(context.Background(), "nope")

	assert.ErrorIs(t, err, entity.ErrGenerationNotFound)
}
