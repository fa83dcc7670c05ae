package service

import (
	"net/http"

	"github.com/nsinterior-dev/figment/internal/entity"
)

// DefaultMaxImageSize applies when the configured upload limit is unset.
const DefaultMaxImageSize = 10 * 1024 * 1024 // 10MB

var allowedImageTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/webp": true,
}

// ValidationResult is the discriminated outcome of validating an uploaded
// image: either valid, or invalid with the rejection reason.
type ValidationResult struct {
	Valid       bool
	ContentType string
	Reason      error
}

// ValidateImage checks the image bytes against the MIME allow-list and the
// size threshold. The content type is sniffed from the payload rather than
// trusted from the client. Pure predicate, no side effects. A non-positive
// maxSize falls back to DefaultMaxImageSize.
func ValidateImage(data []byte, size, maxSize int64) ValidationResult {
	if maxSize <= 0 {
		maxSize = DefaultMaxImageSize
	}
	if size > maxSize {
		return ValidationResult{Valid: false, Reason: entity.ErrImageTooLarge}
	}

	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	contentType := http.DetectContentType(head)
	if !allowedImageTypes[contentType] {
		return ValidationResult{Valid: false, ContentType: contentType, Reason: entity.ErrInvalidImageType}
	}

	return ValidationResult{Valid: true, ContentType: contentType}
}
