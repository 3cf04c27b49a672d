package openai

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	domai "github.com/agung037/cv-processor/internal/domain/ai"
	"github.com/agung037/cv-processor/internal/domain/cv"
	"github.com/agung037/cv-processor/internal/infra/ai/prompt"
)

const (
	DefaultBaseURL     = "https://api.groq.com/openai/v1"
	DefaultModel       = "llama3-70b-8192"
	DefaultTemperature = 0.3
	DefaultMaxTokens   = 1500
)

// Options for an OpenAI-compatible chat completion endpoint.
type Options struct {
	BaseURL     string
	APIKey      string
	Model       string
	Temperature float32
	MaxTokens   int
	HTTPClient  *http.Client
}

type Client struct {
	*openai.Client
	model       string
	temperature float32
	maxTokens   int
	logger      *zap.Logger
}

var _ domai.Advisor = (*Client)(nil)

func NewClient(opts Options, logger *zap.Logger) *Client {
	cfg := openai.DefaultConfig(opts.APIKey)
	cfg.BaseURL = DefaultBaseURL
	if opts.BaseURL != "" {
		cfg.BaseURL = strings.TrimRight(opts.BaseURL, "/")
	}
	if opts.HTTPClient != nil {
		cfg.HTTPClient = opts.HTTPClient
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	c := &Client{
		Client:      openai.NewClientWithConfig(cfg),
		model:       opts.Model,
		temperature: opts.Temperature,
		maxTokens:   opts.MaxTokens,
		logger:      logger,
	}
	if c.model == "" {
		c.model = DefaultModel
	}
	if c.temperature == 0 {
		c.temperature = DefaultTemperature
	}
	if c.maxTokens <= 0 {
		c.maxTokens = DefaultMaxTokens
	}
	return c
}

// GenerateAdvice never fails: any provider error yields the fallback report.
func (c *Client) GenerateAdvice(ctx context.Context, cvText string) cv.AnalysisResult {
	markdown, err := c.complete(ctx, prompt.BuildAdvicePrompt(cvText))
	if err != nil {
		c.logFailure(err)
		return cv.AnalysisResult{Markdown: prompt.FallbackMarkdown, Fallback: true}
	}

	c.logger.Debug("advice generated",
		zap.String("model", c.model),
		zap.String("head", prompt.Truncate(markdown, 100)),
	)
	return cv.AnalysisResult{Markdown: markdown}
}

func (c *Client) complete(ctx context.Context, userPrompt string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	}

	resp, err := c.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", domai.ErrEmptyCompletion
	}
	content := resp.Choices[0].Message.Content
	if strings.TrimSpace(content) == "" {
		return "", domai.ErrEmptyCompletion
	}
	return content, nil
}

func (c *Client) logFailure(err error) {
	fields := []zap.Field{zap.String("model", c.model), zap.Error(err)}

	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	switch {
	case errors.As(err, &apiErr):
		fields = append(fields,
			zap.Int("status", apiErr.HTTPStatusCode),
			zap.String("api_message", apiErr.Message),
		)
	case errors.As(err, &reqErr):
		fields = append(fields,
			zap.Int("status", reqErr.HTTPStatusCode),
		)
	}
	c.logger.Error("advice generation failed, returning fallback", fields...)
}
