package entity

import "errors"

var (
	// Upload errors
	ErrNoImage          = errors.New("image is required")
	ErrInvalidImageType = errors.New("invalid image type, supported: png, jpeg, webp")
	ErrImageTooLarge    = errors.New("image exceeds the maximum allowed size")
	ErrInvalidBase64    = errors.New("image is not valid base64 data")
	ErrUploadNotFound   = errors.New("upload not found")

	// Generation errors
	ErrGenerationNotFound = errors.New("generation not found")
	ErrGenerationFailed   = errors.New("generation failed")
)
