package hooks

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	openai "github.com/sashabaranov/go-openai"

	"github.com/dgnsrekt/agenthooks/tts"
)

// completionPrompt asks an LLM for an original stop announcement.
const completionPrompt = "Generate a short, friendly message of at most ten words announcing that a coding task just finished. Reply with only the message, no quotes."

const (
	openAIChatModel    = "gpt-4o-mini"
	anthropicChatModel = "claude-3-5-haiku-latest"
	anthropicEndpoint  = "https://api.anthropic.com/v1/messages"
	anthropicVersion   = "2023-06-01"
)

// LLMGenerator produces the occasional original completion message. It
// tries OpenAI, then Anthropic, then a local Ollama instance, each bounded
// by the LLM timeout, and falls back to the canned message table.
type LLMGenerator struct {
	cfg    *tts.Config
	logger *log.Logger

	// chat and anthropic are swappable for tests.
	chat      func(ctx context.Context, baseURL, apiKey, model string) (string, error)
	anthropic func(ctx context.Context, apiKey string) (string, error)
}

// NewLLMGenerator creates a generator from the configuration.
func NewLLMGenerator(cfg *tts.Config, logger *log.Logger) *LLMGenerator {
	if logger == nil {
		logger = log.Default()
	}
	return &LLMGenerator{
		cfg:       cfg,
		logger:    logger,
		chat:      openAIChat,
		anthropic: anthropicChat,
	}
}

// CompletionMessage returns a completion announcement and the name of the
// backend that produced it. Every LLM failure degrades silently to the
// canned table with backend "fallback".
func (g *LLMGenerator) CompletionMessage(ctx context.Context, rng *rand.Rand) (msg, backend string) {
	if g.cfg.OpenAIKey != "" {
		if m, err := g.tryChat(ctx, "", g.cfg.OpenAIKey, openAIChatModel); err == nil {
			return m, "openai"
		} else {
			g.logger.Debug("openai completion message failed", "err", err)
		}
	}

	if g.cfg.AnthropicKey != "" {
		lctx, cancel := context.WithTimeout(ctx, g.cfg.LLMTimeout)
		m, err := g.anthropic(lctx, g.cfg.AnthropicKey)
		cancel()
		if err == nil && m != "" {
			return m, "anthropic"
		}
		g.logger.Debug("anthropic completion message failed", "err", err)
	}

	if g.cfg.OllamaBaseURL != "" {
		if m, err := g.tryChat(ctx, g.cfg.OllamaBaseURL, "ollama", g.cfg.OllamaModel); err == nil {
			return m, "ollama"
		} else {
			g.logger.Debug("ollama completion message failed", "err", err)
		}
	}

	return PickCompletion(rng), "fallback"
}

func (g *LLMGenerator) tryChat(ctx context.Context, baseURL, apiKey, model string) (string, error) {
	lctx, cancel := context.WithTimeout(ctx, g.cfg.LLMTimeout)
	defer cancel()
	m, err := g.chat(lctx, baseURL, apiKey, model)
	if err != nil {
		return "", err
	}
	if m == "" {
		return "", errors.New("empty completion message")
	}
	return m, nil
}

// openAIChat runs one chat completion against OpenAI or any
// OpenAI-compatible endpoint (Ollama).
func openAIChat(ctx context.Context, baseURL, apiKey, model string) (string, error) {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	client := openai.NewClientWithConfig(config)

	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     model,
		MaxTokens: 40,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: completionPrompt},
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no completion choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// anthropicChat runs one message against the Anthropic API. No client
// library is pulled in for a single short request.
func anthropicChat(ctx context.Context, apiKey string) (string, error) {
	body, err := json.Marshal(map[string]any{
		"model":      anthropicChatModel,
		"max_tokens": 40,
		"messages": []map[string]string{
			{"role": "user", "content": completionPrompt},
		},
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, anthropicEndpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("anthropic status %d", resp.StatusCode)
	}

	var out struct {
		Content []struct {
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if len(out.Content) == 0 {
		return "", errors.New("empty anthropic response")
	}
	return strings.TrimSpace(out.Content[0].Text), nil
}
