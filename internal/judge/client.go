// Package judge implements the answer-count estimation for a question using
// Google's Gemini API as the external judgment capability.
package judge

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/Viderspace/NeedleWhatsappCrawler/internal/config"
	"github.com/Viderspace/NeedleWhatsappCrawler/internal/transcript"
)

// Generator is the minimal surface of the remote capability: one prompt in,
// free-form text out. It exists so tests can substitute a double for the
// genai-backed implementation.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Client estimates how many messages in a question's context window answer
// it. Calls are synchronous and retried with exponential backoff.
type Client struct {
	gen         Generator
	log         *slog.Logger
	threshold   float64
	maxAttempts int
	retryDelay  time.Duration
}

// NewClient wires a Client around an explicitly constructed Generator.
func NewClient(gen Generator, log *slog.Logger, cfg config.GeminiConfig, threshold float64) *Client {
	return &Client{
		gen:         gen,
		log:         log.With("component", "judge"),
		threshold:   threshold,
		maxAttempts: cfg.MaxAttempts,
		retryDelay:  cfg.RetryDelay,
	}
}

// CountAnswers asks the judgment capability how many window messages answer
// the question. On exhaustion of all attempts it returns the last error;
// the caller decides how to degrade.
func (c *Client) CountAnswers(ctx context.Context, question transcript.Message, window []transcript.Message) (int, error) {
	prompt := c.buildPrompt(question, window)

	var lastErr error
	for attempt := 0; attempt < c.maxAttempts; attempt++ {
		text, err := c.gen.Generate(ctx, prompt)
		if err == nil {
			count := parseCount(text)
			c.log.DebugContext(ctx, "judgment succeeded",
				"question_serial", question.SerialNumber,
				"attempt", attempt+1,
				"answer_count", count)
			return count, nil
		}
		lastErr = err

		c.log.WarnContext(ctx, "judgment call failed",
			"question_serial", question.SerialNumber,
			"attempt", attempt+1,
			"max_attempts", c.maxAttempts,
			"error", err)

		if attempt < c.maxAttempts-1 {
			delay := c.retryDelay << attempt
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return 0, ctx.Err()
			}
		}
	}

	return 0, fmt.Errorf("judgment unavailable after %d attempts: %w", c.maxAttempts, lastErr)
}

// buildPrompt renders the question and its window into the user prompt.
// Window messages appear as numbered (sender, text) lines.
func (c *Client) buildPrompt(question transcript.Message, window []transcript.Message) string {
	var sb strings.Builder
	for i, m := range window {
		fmt.Fprintf(&sb, "%d. [%s]: %s\n", i+1, m.Sender, m.Text)
	}
	return fmt.Sprintf(userPromptTemplate, strings.TrimSpace(question.Text), c.threshold, sb.String())
}

var intPattern = regexp.MustCompile(`-?\d+`)

// parseCount extracts the first integer literal from the response text.
// A response without one counts as zero answers.
func parseCount(text string) int {
	match := intPattern.FindString(text)
	if match == "" {
		return 0
	}
	n, err := strconv.Atoi(match)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// geminiGenerator is the genai-backed Generator.
type geminiGenerator struct {
	client    *genai.Client
	log       *slog.Logger
	modelName string
	config    *genai.GenerateContentConfig
	timeout   time.Duration
}

// NewGeminiGenerator creates the production Generator from the Gemini
// configuration. It fails fast when no API key is configured.
func NewGeminiGenerator(ctx context.Context, cfg config.GeminiConfig, log *slog.Logger) (Generator, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini API key is required")
	}

	gi, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	temperature := cfg.Temperature
	contentConfig := &genai.GenerateContentConfig{
		Temperature:       &temperature,
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: SystemInstruction}}},
	}

	logger := log.With("component", "gemini_generator")
	logger.Info("Gemini generator initialized", "model", cfg.ModelName)
	return &geminiGenerator{
		client:    gi,
		log:       logger,
		modelName: cfg.ModelName,
		config:    contentConfig,
		timeout:   cfg.Timeout,
	}, nil
}

func (g *geminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	contents := []*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)}
	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, contents, g.config)
	if err != nil {
		return "", fmt.Errorf("gemini API call failed: %w", err)
	}
	return g.extractText(ctx, resp)
}

func (g *geminiGenerator) extractText(ctx context.Context, resp *genai.GenerateContentResponse) (string, error) {
	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != genai.BlockedReasonUnspecified {
		reason := fmt.Sprintf("%v", resp.PromptFeedback.BlockReason)
		if resp.PromptFeedback.BlockReasonMessage != "" {
			reason = resp.PromptFeedback.BlockReasonMessage
		}
		g.log.ErrorContext(ctx, "Gemini request blocked", "reason", reason)
		return "", fmt.Errorf("request blocked by safety filter: %s", reason)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		finishReason := "unknown"
		if len(resp.Candidates) > 0 && resp.Candidates[0].FinishReason != genai.FinishReasonUnspecified {
			finishReason = fmt.Sprintf("%v", resp.Candidates[0].FinishReason)
		}
		g.log.WarnContext(ctx, "Gemini response missing content", "finish_reason", finishReason)
		return "", fmt.Errorf("empty response, finish reason: %s", finishReason)
	}

	return resp.Text(), nil
}
