package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"finsight/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Diagnostic classification of generative failures. Every kind leads to
// the same fixed fallback; the kind only goes into the log line.
const (
	errKindCredential = "credential-missing"
	errKindTransport  = "transport"
	errKindParse      = "parse"
	errKindEmpty      = "empty-response"
)

func generativeErrorKind(err error) string {
	switch {
	case errors.Is(err, ErrMissingCredential):
		return errKindCredential
	case errors.Is(err, ErrEmptyResponse):
		return errKindEmpty
	case errors.Is(err, ErrMalformedResponse):
		return errKindParse
	default:
		return errKindTransport
	}
}

// Defaults applied to insight fields the model omits or corrupts.
const (
	defaultInsightTitle      = "AI Insight"
	defaultInsightMessage    = "Analysis complete"
	defaultInsightConfidence = 0.8
)

const fallbackAnswer = "I'm sorry, I can't answer that question right now. Please try again in a moment."

// fallbackInsights is the sole error-recovery policy for insight
// generation: a single fixed informational insight, never an error.
func fallbackInsights() []models.Insight {
	return []models.Insight{{
		ID:         "fallback-1",
		Type:       models.InsightInfo,
		Title:      "AI Analysis Unavailable",
		Message:    "Unable to generate personalized insights right now. Add more expenses or try again later.",
		Action:     "Refresh insights",
		Confidence: 0.5,
		CreatedAt:  time.Now(),
	}}
}

// InsightStore persists the latest generated batch per user.
type InsightStore interface {
	ReplaceForUser(ctx context.Context, userID uuid.UUID, insights []models.Insight) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Insight, error)
}

// InsightService turns expense data into model-generated insights,
// categories, and free-text answers. Generative failures never surface
// to callers; each operation degrades to its fixed fallback value.
type InsightService struct {
	generator TextGenerator
	insights  InsightStore
	logger    *zap.Logger
}

func NewInsightService(generator TextGenerator, insights InsightStore, logger *zap.Logger) *InsightService {
	return &InsightService{
		generator: generator,
		insights:  insights,
		logger:    logger,
	}
}

// rawInsight is the shape expected from the model before defaulting.
type rawInsight struct {
	Type       string   `json:"type"`
	Title      string   `json:"title"`
	Message    string   `json:"message"`
	Action     string   `json:"action"`
	Confidence *float64 `json:"confidence"`
}

const insightPromptTemplate = `Analyze these expenses and provide 3-4 practical financial insights.

%s

Return a JSON array of insight objects in exactly this shape:
[
  {
    "type": "warning|info|success|tip",
    "title": "short title",
    "message": "one or two sentences of concrete analysis",
    "action": "optional suggested next step",
    "confidence": 0.85
  }
]

Return ONLY the JSON array.`

// GenerateExpenseInsights produces a normalized batch of insights for
// the given expenses. The result is always non-empty: any failure in
// the request/parse pipeline is logged and replaced by the fixed
// fallback batch. When a store is configured and userID is set, the
// batch replaces the user's stored insights best-effort.
func (s *InsightService) GenerateExpenseInsights(ctx context.Context, userID uuid.UUID, expenses []models.Expense) []models.Insight {
	insights, err := s.requestInsights(ctx, expenses)
	if err != nil {
		s.logger.Error("Insight generation failed, using fallback",
			zap.String("kind", generativeErrorKind(err)),
			zap.Int("expenses", len(expenses)),
			zap.Error(err),
		)
		insights = fallbackInsights()
	}

	if s.insights != nil && userID != uuid.Nil {
		for i := range insights {
			insights[i].UserID = userID
		}
		if err := s.insights.ReplaceForUser(ctx, userID, insights); err != nil {
			s.logger.Warn("Failed to store generated insights", zap.Error(err))
		}
	}

	return insights
}

func (s *InsightService) requestInsights(ctx context.Context, expenses []models.Expense) ([]models.Insight, error) {
	prompt := fmt.Sprintf(insightPromptTemplate, buildExpenseSummary(expenses))

	content, err := s.generator.GenerateJSON(ctx, prompt)
	if err != nil {
		return nil, err
	}

	raw, err := parseInsightArray(content)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: model returned no insights", ErrEmptyResponse)
	}

	now := time.Now()
	insights := make([]models.Insight, 0, len(raw))
	for i, r := range raw {
		insights = append(insights, normalizeInsight(r, now, i))
	}

	return insights, nil
}

// parseInsightArray extracts the JSON array from the model response,
// tolerating markdown fences and stray commentary around it.
func parseInsightArray(content string) ([]rawInsight, error) {
	jsonStart := strings.Index(content, "[")
	jsonEnd := strings.LastIndex(content, "]")
	if jsonStart == -1 || jsonEnd == -1 || jsonEnd < jsonStart {
		return nil, fmt.Errorf("%w: no JSON array in response", ErrMalformedResponse)
	}

	jsonStr := content[jsonStart : jsonEnd+1]

	var raw []rawInsight
	if err := json.Unmarshal([]byte(jsonStr), &raw); err != nil {
		jsonStr = strings.TrimSpace(jsonStr)
		jsonStr = strings.TrimPrefix(jsonStr, "```json")
		jsonStr = strings.TrimPrefix(jsonStr, "```")
		jsonStr = strings.TrimSuffix(jsonStr, "```")
		jsonStr = strings.TrimSpace(jsonStr)

		if err := json.Unmarshal([]byte(jsonStr), &raw); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
		}
	}

	return raw, nil
}

// normalizeInsight applies field-level defaulting so no insight ever
// leaves the service with a missing or out-of-range field.
func normalizeInsight(r rawInsight, now time.Time, index int) models.Insight {
	insight := models.Insight{
		ID:         fmt.Sprintf("ai-%d-%d", now.Unix(), index),
		Type:       models.InsightType(r.Type),
		Title:      strings.TrimSpace(r.Title),
		Message:    strings.TrimSpace(r.Message),
		Action:     strings.TrimSpace(r.Action),
		Confidence: defaultInsightConfidence,
		CreatedAt:  now,
	}

	if !insight.Type.Valid() {
		insight.Type = models.InsightInfo
	}
	if insight.Title == "" {
		insight.Title = defaultInsightTitle
	}
	if insight.Message == "" {
		insight.Message = defaultInsightMessage
	}
	if r.Confidence != nil && *r.Confidence >= 0 && *r.Confidence <= 1 {
		insight.Confidence = *r.Confidence
	}

	return insight
}

// StoredInsights returns the user's last persisted batch.
func (s *InsightService) StoredInsights(ctx context.Context, userID uuid.UUID) ([]models.Insight, error) {
	if s.insights == nil {
		return nil, nil
	}
	return s.insights.ListByUser(ctx, userID)
}

const categorizePromptTemplate = `Categorize this expense description into exactly one of these categories: %s.

Expense description: %q

Respond with only the category name, nothing else.`

// CategorizeExpense classifies a free-text description into the fixed
// category allow-list. The raw model output is accepted only on a
// case-exact match; anything else, including any call failure, yields
// "Other".
func (s *InsightService) CategorizeExpense(ctx context.Context, description string) string {
	prompt := fmt.Sprintf(categorizePromptTemplate, strings.Join(models.ExpenseCategories, ", "), description)

	content, err := s.generator.GenerateText(ctx, prompt)
	if err != nil {
		s.logger.Error("Expense categorization failed",
			zap.String("kind", generativeErrorKind(err)),
			zap.Error(err),
		)
		return models.CategoryOther
	}

	category := strings.TrimSpace(content)
	if !models.ValidExpenseCategory(category) {
		s.logger.Warn("Model returned unknown category", zap.String("category", category))
		return models.CategoryOther
	}

	return category
}

const answerPromptTemplate = `You are a personal finance assistant. Based on the user's expense data, answer their question in 2-3 concise sentences with practical advice.

Question: %s

%s`

// GenerateAIAnswer answers a free-text question about the user's
// expense history. On any failure it returns the fixed apology string.
func (s *InsightService) GenerateAIAnswer(ctx context.Context, question string, expenses []models.Expense) string {
	prompt := fmt.Sprintf(answerPromptTemplate, question, buildExpenseSummary(expenses))

	content, err := s.generator.GenerateText(ctx, prompt)
	if err != nil {
		s.logger.Error("AI answer generation failed",
			zap.String("kind", generativeErrorKind(err)),
			zap.Error(err),
		)
		return fallbackAnswer
	}

	return strings.TrimSpace(content)
}
