package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"finsight/pkg/config"

	"github.com/Role1776/gigago"
	"go.uber.org/zap"
)

// Sentinel errors for the generative call sites. Callers never see
// them: every operation converts failures to its fixed fallback value,
// and the sentinels only drive diagnostic classification.
var (
	ErrMissingCredential = errors.New("model API credential is not configured")
	ErrEmptyResponse     = errors.New("empty response from model")
	ErrMalformedResponse = errors.New("malformed model response")
)

// TextGenerator is the narrow surface the insight pipeline needs from
// the generative model. GenerateText uses the default sampling
// configuration; GenerateJSON uses temperature 0.7 and constrains the
// response to structured JSON.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
	GenerateJSON(ctx context.Context, prompt string) (string, error)
}

const jsonOnlyInstruction = "You return only valid JSON. No markdown fences, no commentary, no text before or after the JSON value."

// LLMService talks to the GigaChat API via gigago. The credential is
// injected at construction; with an empty credential the service still
// constructs, and every call fails with ErrMissingCredential so the
// callers' fallback paths engage.
type LLMService struct {
	client    *gigago.Client
	model     *gigago.GenerativeModel
	jsonModel *gigago.GenerativeModel
	logger    *zap.Logger
}

func NewLLMService(ctx context.Context, cfg *config.GigaChatConfig, logger *zap.Logger) (*LLMService, error) {
	s := &LLMService{logger: logger}

	if cfg.APIKey == "" {
		logger.Warn("GigaChat API key is not set; generative calls will use fallbacks")
		return s, nil
	}

	opts := []gigago.Option{
		gigago.WithCustomScope(cfg.Scope),
	}
	if cfg.InsecureSkipVerify {
		opts = append(opts, gigago.WithCustomInsecureSkipVerify(true))
		logger.Warn("GigaChat TLS certificate verification is disabled")
	}

	client, err := gigago.NewClient(ctx, cfg.APIKey, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GigaChat client: %w", err)
	}

	s.client = client
	s.model = client.GenerativeModel(cfg.Model)

	s.jsonModel = client.GenerativeModel(cfg.Model)
	s.jsonModel.Temperature = 0.7
	s.jsonModel.SystemInstruction = jsonOnlyInstruction

	logger.Info("GigaChat client initialized", zap.String("model", cfg.Model))
	return s, nil
}

func (s *LLMService) GenerateText(ctx context.Context, prompt string) (string, error) {
	return s.generate(ctx, s.model, prompt)
}

func (s *LLMService) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	return s.generate(ctx, s.jsonModel, prompt)
}

func (s *LLMService) generate(ctx context.Context, model *gigago.GenerativeModel, prompt string) (string, error) {
	if s.client == nil {
		return "", ErrMissingCredential
	}

	messages := []gigago.Message{
		{Role: gigago.RoleUser, Content: prompt},
	}

	resp, err := model.Generate(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("failed to generate response: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", ErrEmptyResponse
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", ErrEmptyResponse
	}

	return content, nil
}

func (s *LLMService) Close() error {
	if s.client != nil {
		s.client.Close()
	}
	return nil
}
