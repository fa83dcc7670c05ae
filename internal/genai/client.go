// Package genai wraps the Gemini vision model behind a single
// screenshot-to-code call.
package genai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/nsinterior-dev/figment/config"

	gai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

type CodeGenerator interface {
	GenerateCode(ctx context.Context, image []byte, format string, userPrompt string) (string, error)
	ModelName() string
}

type Client struct {
	cfg *config.GeminiConfig
}

func NewClient(cfg *config.GeminiConfig) *Client {
	return &Client{cfg: cfg}
}

func (c *Client) ModelName() string {
	return c.cfg.Model
}

// GenerateCode submits the screenshot together with the instruction template
// to the model and returns the generated source text. Quota, network and
// malformed-response failures are not distinguished: callers get one wrapped
// error and decide what to surface.
func (c *Client) GenerateCode(ctx context.Context, image []byte, format string, userPrompt string) (string, error) {
	if c.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
	}

	client, err := gai.NewClient(ctx, option.WithAPIKey(c.cfg.APIKey))
	if err != nil {
		return "", fmt.Errorf("init genai client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(c.cfg.Model)
	model.SetTemperature(c.cfg.Temperature)
	if c.cfg.MaxOutputTokens > 0 {
		model.SetMaxOutputTokens(c.cfg.MaxOutputTokens)
	}

	format = strings.TrimPrefix(format, "image/")
	resp, err := model.GenerateContent(ctx,
		gai.ImageData(format, image),
		gai.Text(buildPrompt(userPrompt)),
	)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	text, err := extractText(resp)
	if err != nil {
		return "", err
	}
	return stripCodeFence(text), nil
}

func extractText(resp *gai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errors.New("no candidates returned")
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(gai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	if sb.Len() == 0 {
		return "", errors.New("candidate contains no text parts")
	}
	return sb.String(), nil
}
