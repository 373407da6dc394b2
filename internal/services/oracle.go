package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/manojthapa/neuroarc/internal/logger"
	"github.com/manojthapa/neuroarc/internal/models"
)

// Generator is the raw model call. Kept minimal so tests can substitute a
// fake without touching the fallback logic.
type Generator interface {
	Generate(ctx context.Context, model, system, user string) (string, error)
}

type geminiGenerator struct {
	client *genai.Client
}

// NewGeminiGenerator connects to the Gemini API. Returns nil (not an error)
// when no token is configured so the server can still start without AI.
func NewGeminiGenerator(token string) (Generator, error) {
	if token == "" {
		return nil, nil
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  token,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &geminiGenerator{client: client}, nil
}

func (g *geminiGenerator) Generate(ctx context.Context, model, system, user string) (string, error) {
	temperature := float32(0.7)
	config := &genai.GenerateContentConfig{
		Temperature:     &temperature,
		MaxOutputTokens: 4000,
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: system}},
		},
	}

	resp, err := g.client.Models.GenerateContent(ctx, model, genai.Text(user), config)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}
	if resp == nil {
		return "", fmt.Errorf("no response generated")
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("no text content in response")
	}
	return text, nil
}

// OracleService wraps the model call with the fallback chain and the JSON
// cleanup every structured prompt needs.
type OracleService interface {
	Invoke(ctx context.Context, system, user string) (string, error)
	InvokeJSON(ctx context.Context, system, user string) (string, error)
}

type oracleService struct {
	gen     Generator
	models  []string
	timeout time.Duration
	logger  *zap.Logger
}

func NewOracleService(gen Generator, modelNames []string, timeout time.Duration, log *zap.Logger) OracleService {
	return &oracleService{
		gen:     gen,
		models:  modelNames,
		timeout: timeout,
		logger:  log,
	}
}

// Invoke tries each configured model in order. Authentication failures abort
// the chain immediately since every model shares the same credential.
func (s *oracleService) Invoke(ctx context.Context, system, user string) (string, error) {
	if s.gen == nil {
		return "", models.ErrNotConfigured
	}

	var lastErr error
	for _, model := range s.models {
		attemptCtx, cancel := context.WithTimeout(ctx, s.timeout)
		result, err := s.gen.Generate(attemptCtx, model, system, user)
		cancel()

		if err == nil {
			s.logger.Debug("model responded",
				zap.String("model", model),
				zap.String("preview", logger.Truncate(result, 120)))
			return result, nil
		}

		if isAuthError(err) {
			s.logger.Error("authentication failed", zap.String("model", model), zap.Error(err))
			return "", models.ErrAuth
		}

		s.logger.Warn("model attempt failed, trying next", zap.String("model", model), zap.Error(err))
		lastErr = err
	}

	s.logger.Error("all models exhausted", zap.Error(lastErr))
	return "", models.ErrOracleUnavailable
}

// InvokeJSON invokes the chain with an explicit JSON-only instruction and
// cleans the response down to a bare JSON object.
func (s *oracleService) InvokeJSON(ctx context.Context, system, user string) (string, error) {
	result, err := s.Invoke(ctx, system, user+"\n\nIMPORTANT: Output ONLY valid JSON. No markdown, no explanations.")
	if err != nil {
		return "", err
	}
	return ExtractJSON(result), nil
}

func isAuthError(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "401") ||
		strings.Contains(msg, "unauthorized") ||
		strings.Contains(msg, "api key")
}

// ExtractJSON strips markdown fences and surrounding prose from a model
// response, leaving the outermost JSON object. Models routinely wrap JSON
// in ```json fences despite instructions not to.
func ExtractJSON(raw string) string {
	cleaned := strings.TrimSpace(raw)

	if idx := strings.Index(cleaned, "```json"); idx != -1 {
		cleaned = cleaned[idx+len("```json"):]
		if end := strings.Index(cleaned, "```"); end != -1 {
			cleaned = cleaned[:end]
		}
	} else if idx := strings.Index(cleaned, "```"); idx != -1 {
		cleaned = cleaned[idx+len("```"):]
		if end := strings.Index(cleaned, "```"); end != -1 {
			cleaned = cleaned[:end]
		}
	}
	cleaned = strings.TrimSpace(cleaned)

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start != -1 && end != -1 && end > start {
		cleaned = cleaned[start : end+1]
	}
	return cleaned
}

// MalformedOutputError carries the raw model output alongside the parse
// failure so callers can log what actually came back.
type MalformedOutputError struct {
	Raw   string
	Cause error
}

func (e *MalformedOutputError) Error() string {
	return fmt.Sprintf("%v: %v", models.ErrMalformedOutput, e.Cause)
}

func (e *MalformedOutputError) Unwrap() error {
	return models.ErrMalformedOutput
}
