package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/edupulse/backend/internal/config"
	"github.com/edupulse/backend/pkg/logger"
	"github.com/ollama/ollama/api"
	"github.com/sashabaranov/go-openai"
	"google.golang.org/genai"
)

// SentimentClassifier sends a comment to a text-classification backend and
// returns the raw label text. Domain validation of the reply belongs to the
// resolver, not here.
type SentimentClassifier interface {
	Classify(ctx context.Context, text string, category RatingCategory) (string, error)
}

// LLMClassifier implements SentimentClassifier against an LLM provider.
type LLMClassifier struct {
	cfg          *config.ClassifierConfig
	ratingWeight float64
}

func NewLLMClassifier(cfg *config.ClassifierConfig, ratingWeight float64) *LLMClassifier {
	return &LLMClassifier{cfg: cfg, ratingWeight: ratingWeight}
}

const classifierInstruction = "You are a sentiment analyst for student feedback about teachers. Reply with exactly one word: positive, negative, or neutral."

// buildPrompt assembles the full instruction sent to the backend. The rating
// weight is a prompt-level hint only; nothing enforces the blend numerically.
func (c *LLMClassifier) buildPrompt(text string, category RatingCategory) string {
	var b strings.Builder
	b.WriteString(classifierInstruction)
	b.WriteString("\n\n")

	if category != "" {
		ratingPct := int(c.ratingWeight*100 + 0.5)
		fmt.Fprintf(&b, "The student's average rating for this teacher falls in the %q band. Let that band inform roughly %d%% of your judgment; the remaining %d%% should come from the comment text itself.\n\n",
			category, ratingPct, 100-ratingPct)
	}

	b.WriteString("Classify the sentiment of this comment: ")
	b.WriteString(text)
	return b.String()
}

func (c *LLMClassifier) timeout() time.Duration {
	if c.cfg.TimeoutSeconds <= 0 {
		return 15 * time.Second
	}
	return time.Duration(c.cfg.TimeoutSeconds) * time.Second
}

func (c *LLMClassifier) maxTokens() int {
	if c.cfg.MaxTokens <= 0 {
		return 10
	}
	return c.cfg.MaxTokens
}

func (c *LLMClassifier) temperature() float32 {
	if c.cfg.Temperature <= 0 {
		return 0.2
	}
	return float32(c.cfg.Temperature)
}

// Classify dispatches to the configured provider. The call is bounded by the
// configured timeout; no database transaction is held while it runs.
func (c *LLMClassifier) Classify(ctx context.Context, text string, category RatingCategory) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout())
	defer cancel()

	prompt := c.buildPrompt(text, category)

	switch c.cfg.Provider {
	case "anthropic":
		return c.callAnthropic(ctx, prompt)
	case "ollama":
		return c.callOllama(ctx, prompt)
	case "gemini":
		return c.callGemini(ctx, prompt)
	case "azure":
		return c.callAzure(ctx, prompt)
	default:
		// openai and OpenAI-compatible services
		return c.callOpenAI(ctx, prompt)
	}
}

// callOpenAI handles OpenAI and OpenAI-compatible APIs (including custom endpoints)
func (c *LLMClassifier) callOpenAI(ctx context.Context, prompt string) (string, error) {
	clientConfig := openai.DefaultConfig(c.cfg.APIKey)
	if c.cfg.BaseURL != "" {
		clientConfig.BaseURL = c.cfg.BaseURL
	}
	client := openai.NewClientWithConfig(clientConfig)

	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.cfg.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens:   c.maxTokens(),
		Temperature: c.temperature(),
	})
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from OpenAI")
	}

	return resp.Choices[0].Message.Content, nil
}

// callAzure handles Azure OpenAI; the Model field is the deployment name.
func (c *LLMClassifier) callAzure(ctx context.Context, prompt string) (string, error) {
	clientConfig := openai.DefaultAzureConfig(c.cfg.APIKey, c.cfg.BaseURL)
	client := openai.NewClientWithConfig(clientConfig)

	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.cfg.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens:   c.maxTokens(),
		Temperature: c.temperature(),
	})
	if err != nil {
		return "", fmt.Errorf("Azure OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from Azure OpenAI")
	}

	return resp.Choices[0].Message.Content, nil
}

// callAnthropic handles Anthropic Claude API using the native SDK
func (c *LLMClassifier) callAnthropic(ctx context.Context, prompt string) (string, error) {
	client := anthropic.NewClient(
		option.WithAPIKey(c.cfg.APIKey),
	)

	model := c.cfg.Model
	if model == "" {
		model = "claude-sonnet-4-20250514"
	}

	resp, err := client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: int64(c.maxTokens()),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("Anthropic API error: %w", err)
	}

	var content string
	for _, block := range resp.Content {
		if block.Type == "text" {
			content += block.Text
		}
	}

	return content, nil
}

// callOllama handles Ollama API using the native SDK
func (c *LLMClassifier) callOllama(ctx context.Context, prompt string) (string, error) {
	baseURL := c.cfg.BaseURL
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid Ollama base URL: %w", err)
	}
	client := api.NewClient(u, http.DefaultClient)

	model := c.cfg.Model
	if model == "" {
		model = "llama3"
	}

	var content strings.Builder
	err = client.Chat(ctx, &api.ChatRequest{
		Model: model,
		Messages: []api.Message{
			{Role: "user", Content: prompt},
		},
		Options: map[string]interface{}{
			"temperature": c.cfg.Temperature,
		},
	}, func(resp api.ChatResponse) error {
		content.WriteString(resp.Message.Content)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("Ollama API error: %w", err)
	}

	return content.String(), nil
}

// callGemini handles Google Gemini API using the native SDK
func (c *LLMClassifier) callGemini(ctx context.Context, prompt string) (string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: c.cfg.APIKey,
	})
	if err != nil {
		return "", fmt.Errorf("Gemini client error: %w", err)
	}

	model := c.cfg.Model
	if model == "" {
		model = "gemini-3.0-flash"
	}

	resp, err := client.Models.GenerateContent(ctx, model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("Gemini API error: %w", err)
	}

	content := resp.Text()
	logger.Debug().Int("chars", len(content)).Msg("gemini classifier response")

	return content, nil
}
