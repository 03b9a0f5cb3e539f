package generator

import (
	"alcyxob/physio-app/internal/domain"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/sashabaranov/go-openai"
)

const (
	DefaultAITimeout    = 60 * time.Second
	DefaultMaxTokens    = 2000
	DefaultTemperature  = float32(0.2)
	DefaultSystemPrompt = "You are a physiotherapy assistant that designs safe rehabilitation exercise plans. You always answer with a single JSON object and nothing else."
	defaultAIModel      = "gpt-4o-mini"
	aiGeneratorName     = "ai"
)

// AIConfig is passed to NewAIGenerator; there is no package-level key or model.
type AIConfig struct {
	APIKey       string
	BaseURL      string // OpenAI-compatible endpoint, e.g. https://api.openai.com/v1
	Model        string
	Timeout      time.Duration
	MaxTokens    int
	Temperature  float32
	SystemPrompt string
}

func (c AIConfig) withDefaults() AIConfig {
	if c.Model == "" {
		c.Model = defaultAIModel
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultAITimeout
	}
	if c.MaxTokens <= 0 {
		c.MaxTokens = DefaultMaxTokens
	}
	if c.SystemPrompt == "" {
		c.SystemPrompt = DefaultSystemPrompt
	}
	return c
}

// AIGenerator asks a chat-completion model for the plan.
// One call per Generate, aborted at cfg.Timeout, never retried.
type AIGenerator struct {
	client *openai.Client
	cfg    AIConfig
}

// NewAIGenerator builds a generator talking to cfg.BaseURL with bearer auth.
func NewAIGenerator(cfg AIConfig) *AIGenerator {
	cfg = cfg.withDefaults()

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	// the deadline comes from the request context, not the transport
	clientConfig.HTTPClient = &http.Client{}

	slog.Info("Initializing AI plan generator", "model", cfg.Model, "base_url", clientConfig.BaseURL, "timeout", cfg.Timeout)
	return &AIGenerator{
		client: openai.NewClientWithConfig(clientConfig),
		cfg:    cfg,
	}
}

func (g *AIGenerator) Name() string { return aiGeneratorName }

// Generate implements Generator.
func (g *AIGenerator) Generate(ctx context.Context, in Input) (*domain.TrainingPlan, error) {
	if !in.HasCandidates() {
		return nil, g.fail(StageInput, ErrNoCandidates)
	}

	prompt, err := BuildPrompt(in)
	if err != nil {
		return nil, g.fail(StageInput, fmt.Errorf("build prompt: %w", err))
	}

	content, err := g.complete(ctx, prompt)
	if err != nil {
		return nil, err
	}

	raw, err := ExtractJSON(content)
	if err != nil {
		slog.Warn("AI response contained no JSON object", "response_length", len(content))
		return nil, g.fail(StageParse, err)
	}

	plan, err := ParsePlan([]byte(raw), CandidateIDs(in.Exercises))
	if err != nil {
		var ge *Error
		if errors.As(err, &ge) {
			ge.Generator = g.Name()
			return nil, ge
		}
		return nil, g.fail(StageValidation, err)
	}
	return plan, nil
}

// complete performs the single chat-completion call under the configured deadline.
func (g *AIGenerator) complete(ctx context.Context, prompt string) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, g.cfg.Timeout)
	defer cancel()

	req := openai.ChatCompletionRequest{
		Model: g.cfg.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: g.cfg.SystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens:   g.cfg.MaxTokens,
		Temperature: g.cfg.Temperature,
	}

	start := time.Now()
	resp, err := g.client.CreateChatCompletion(callCtx, req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(callCtx.Err(), context.DeadlineExceeded) {
			slog.Error("AI plan generation timed out", "timeout", g.cfg.Timeout)
			return "", g.fail(StageTimeout, fmt.Errorf("no response within %s", g.cfg.Timeout))
		}
		slog.Error("AI API call failed", "error", err)
		return "", g.fail(StageTransport, err)
	}
	slog.Debug("Received AI plan response", "model", g.cfg.Model, "elapsed", time.Since(start), "total_tokens", resp.Usage.TotalTokens)

	if len(resp.Choices) == 0 {
		return "", g.fail(StageParse, errors.New("response has no choices"))
	}
	return resp.Choices[0].Message.Content, nil
}

func (g *AIGenerator) fail(stage Stage, err error) *Error {
	return &Error{Generator: g.Name(), Stage: stage, Err: err}
}
