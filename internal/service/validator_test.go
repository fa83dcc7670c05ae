package service

import (
	"testing"

	"github.com/nsinterior-dev/figment/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	pngHeader  = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0}
	jpegHeader = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0, 0, 0, 0}
	gifHeader  = []byte("GIF89a\x00\x00\x00\x00")
	webpHeader = []byte("RIFF\x00\x00\x00\x00WEBPVP8 ")
)

func TestValidateImage(t *testing.T) {
	tests := []struct {
		name        string
		data        []byte
		size        int64
		wantValid   bool
		wantReason  error
		contentType string
	}{
		{
			name:        "valid png",
			data:        pngHeader,
			size:        int64(len(pngHeader)),
			wantValid:   true,
			contentType: "image/png",
		},
		{
			name:        "valid jpeg",
			data:        jpegHeader,
			size:        int64(len(jpegHeader)),
			wantValid:   true,
			contentType: "image/jpeg",
		},
		{
			name:        "valid webp",
			data:        webpHeader,
			size:        int64(len(webpHeader)),
			wantValid:   true,
			contentType: "image/webp",
		},
		{
			name:       "gif is not allowed",
			data:       gifHeader,
			size:       int64(len(gifHeader)),
			wantValid:  false,
			wantReason: entity.ErrInvalidImageType,
		},
		{
			name:       "plain text is not allowed",
			data:       []byte("definitely not an image"),
			size:       23,
			wantValid:  false,
			wantReason: entity.ErrInvalidImageType,
		},
		{
			name:       "oversized file rejected regardless of type",
			data:       pngHeader,
			size:       DefaultMaxImageSize + 1,
			wantValid:  false,
			wantReason: entity.ErrImageTooLarge,
		},
		{
			name:        "file exactly at the limit is accepted",
			data:        pngHeader,
			size:        DefaultMaxImageSize,
			wantValid:   true,
			contentType: "image/png",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateImage(tt.data, tt.size, 0)

			assert.Equal(t, tt.wantValid, result.Valid)
			if tt.wantValid {
				require.NoError(t, result.Reason)
				assert.Equal(t, tt.contentType, result.ContentType)
			} else {
				assert.ErrorIs(t, result.Reason, tt.wantReason)
			}
		})
	}
}

func TestValidateImageConfiguredLimit(t *testing.T) {
	// The configured maximum wins over the default.
	result := ValidateImage(pngHeader, 1024, 10)
	require.False(t, result.Valid)
	assert.ErrorIs(t, result.Reason, entity.ErrImageTooLarge)

	result = ValidateImage(pngHeader, 1024, 2048)
	assert.True(t, result.Valid)

	// Unset limit falls back to the default.
	result = ValidateImage(pngHeader, DefaultMaxImageSize, 0)
	assert.True(t, result.Valid)
}

func TestValidateImageTypeMessage(t *testing.T) {
	result := ValidateImage(gifHeader, int64(len(gifHeader)), 0)

	require.False(t, result.Valid)
	assert.Contains(t, result.Reason.Error(), "type")
}
