package entity

import (
	"time"
)

type GenerationStatus string

const (
	GenerationStatusIdle    GenerationStatus = "idle"
	GenerationStatusLoading GenerationStatus = "loading"
	GenerationStatusSuccess GenerationStatus = "success"
	GenerationStatusError   GenerationStatus = "error"
)

type Generation struct {
	ID            string           `json:"id" db:"id"`
	Status        GenerationStatus `json:"status" db:"status"`
	Prompt        string           `json:"prompt,omitempty" db:"prompt"`
	ImageHash     string           `json:"image_hash" db:"image_hash"`
	GeneratedCode string           `json:"generated_code,omitempty" db:"generated_code"`
	ErrorMessage  string           `json:"error_message,omitempty" db:"error_message"`
	Model         string           `json:"model" db:"model"`
	DurationMs    int64            `json:"duration_ms" db:"duration_ms"`
	CreatedAt     time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at" db:"updated_at"`
}

type GenerateRequest struct {
	Image  string `json:"image" binding:"required"`
	Prompt string `json:"prompt,omitempty"`
}

type GenerateData struct {
	ID            string `json:"id"`
	GeneratedCode string `json:"generatedCode"`
}
