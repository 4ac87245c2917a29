package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"finsight/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubGenerator is a test implementation of TextGenerator.
type stubGenerator struct {
	jsonResponse string
	jsonErr      error
	textResponse string
	textErr      error
	lastPrompt   string
}

func (s *stubGenerator) GenerateText(_ context.Context, prompt string) (string, error) {
	s.lastPrompt = prompt
	return s.textResponse, s.textErr
}

func (s *stubGenerator) GenerateJSON(_ context.Context, prompt string) (string, error) {
	s.lastPrompt = prompt
	return s.jsonResponse, s.jsonErr
}

// stubInsightStore records the last ReplaceForUser call.
type stubInsightStore struct {
	replaced   []models.Insight
	replacedBy uuid.UUID
	replaceErr error
	stored     []models.Insight
}

func (s *stubInsightStore) ReplaceForUser(_ context.Context, userID uuid.UUID, insights []models.Insight) error {
	s.replacedBy = userID
	s.replaced = insights
	return s.replaceErr
}

func (s *stubInsightStore) ListByUser(_ context.Context, _ uuid.UUID) ([]models.Insight, error) {
	return s.stored, nil
}

func lunchExpenses(t *testing.T) []models.Expense {
	t.Helper()
	date, err := time.Parse(models.ExpenseDateLayout, "2024-01-01")
	require.NoError(t, err)
	return []models.Expense{{
		ID:          uuid.New(),
		Amount:      50,
		Category:    "Food",
		Description: "Lunch",
		Date:        date,
	}}
}

func newTestInsightService(gen TextGenerator, store InsightStore) *InsightService {
	return NewInsightService(gen, store, zap.NewNop())
}

func TestGenerateExpenseInsights(t *testing.T) {
	t.Run("parses well-formed response", func(t *testing.T) {
		gen := &stubGenerator{jsonResponse: `[
			{"type":"warning","title":"High food spend","message":"Food is 60% of your spending.","action":"Set a budget","confidence":0.9},
			{"type":"tip","title":"Track daily","message":"Log expenses as they happen.","confidence":0.7}
		]`}
		svc := newTestInsightService(gen, nil)

		insights := svc.GenerateExpenseInsights(context.Background(), uuid.Nil, lunchExpenses(t))

		require.Len(t, insights, 2)
		assert.Equal(t, models.InsightWarning, insights[0].Type)
		assert.Equal(t, "High food spend", insights[0].Title)
		assert.Equal(t, "Set a budget", insights[0].Action)
		assert.Equal(t, 0.9, insights[0].Confidence)
		assert.Equal(t, models.InsightTip, insights[1].Type)

		for i, insight := range insights {
			assert.True(t, strings.HasPrefix(insight.ID, "ai-"), "id %q", insight.ID)
			assert.True(t, strings.HasSuffix(insight.ID, fmt.Sprintf("-%d", i)), "id %q", insight.ID)
			assert.True(t, insight.Type.Valid())
			assert.GreaterOrEqual(t, insight.Confidence, 0.0)
			assert.LessOrEqual(t, insight.Confidence, 1.0)
		}
	})

	t.Run("defaults missing and corrupt fields", func(t *testing.T) {
		gen := &stubGenerator{jsonResponse: `[
			{},
			{"type":"bogus","title":"  ","message":"","confidence":7.5}
		]`}
		svc := newTestInsightService(gen, nil)

		insights := svc.GenerateExpenseInsights(context.Background(), uuid.Nil, lunchExpenses(t))

		require.Len(t, insights, 2)
		for _, insight := range insights {
			assert.Equal(t, models.InsightInfo, insight.Type)
			assert.Equal(t, "AI Insight", insight.Title)
			assert.Equal(t, "Analysis complete", insight.Message)
			assert.Equal(t, 0.8, insight.Confidence)
		}
	})

	t.Run("tolerates markdown fences and commentary", func(t *testing.T) {
		gen := &stubGenerator{jsonResponse: "Here you go:\n```json\n[{\"type\":\"success\",\"title\":\"Nice\",\"message\":\"Spending is stable.\",\"confidence\":0.8}]\n```"}
		svc := newTestInsightService(gen, nil)

		insights := svc.GenerateExpenseInsights(context.Background(), uuid.Nil, lunchExpenses(t))

		require.Len(t, insights, 1)
		assert.Equal(t, models.InsightSuccess, insights[0].Type)
	})

	t.Run("falls back on transport failure", func(t *testing.T) {
		gen := &stubGenerator{jsonErr: errors.New("connection refused")}
		svc := newTestInsightService(gen, nil)

		insights := svc.GenerateExpenseInsights(context.Background(), uuid.Nil, lunchExpenses(t))

		require.Len(t, insights, 1)
		assert.Equal(t, "fallback-1", insights[0].ID)
		assert.Equal(t, models.InsightInfo, insights[0].Type)
		assert.Equal(t, "AI Analysis Unavailable", insights[0].Title)
		assert.Equal(t, "Unable to generate personalized insights right now. Add more expenses or try again later.", insights[0].Message)
		assert.Equal(t, "Refresh insights", insights[0].Action)
		assert.Equal(t, 0.5, insights[0].Confidence)
	})

	t.Run("falls back on non-JSON response", func(t *testing.T) {
		gen := &stubGenerator{jsonResponse: "I cannot analyze these expenses."}
		svc := newTestInsightService(gen, nil)

		insights := svc.GenerateExpenseInsights(context.Background(), uuid.Nil, lunchExpenses(t))

		require.Len(t, insights, 1)
		assert.Equal(t, "fallback-1", insights[0].ID)
	})

	t.Run("falls back on empty insight array", func(t *testing.T) {
		gen := &stubGenerator{jsonResponse: "[]"}
		svc := newTestInsightService(gen, nil)

		insights := svc.GenerateExpenseInsights(context.Background(), uuid.Nil, lunchExpenses(t))

		require.Len(t, insights, 1)
		assert.Equal(t, "fallback-1", insights[0].ID)
	})

	t.Run("falls back on missing credential", func(t *testing.T) {
		gen := &stubGenerator{jsonErr: ErrMissingCredential}
		svc := newTestInsightService(gen, nil)

		insights := svc.GenerateExpenseInsights(context.Background(), uuid.Nil, lunchExpenses(t))

		require.Len(t, insights, 1)
		assert.Equal(t, "fallback-1", insights[0].ID)
	})

	t.Run("stores generated batch for user", func(t *testing.T) {
		gen := &stubGenerator{jsonResponse: `[{"type":"info","title":"T","message":"M","confidence":0.6}]`}
		store := &stubInsightStore{}
		svc := newTestInsightService(gen, store)
		userID := uuid.New()

		insights := svc.GenerateExpenseInsights(context.Background(), userID, lunchExpenses(t))

		require.Len(t, insights, 1)
		assert.Equal(t, userID, store.replacedBy)
		require.Len(t, store.replaced, 1)
		assert.Equal(t, userID, store.replaced[0].UserID)
	})

	t.Run("store failure does not surface", func(t *testing.T) {
		gen := &stubGenerator{jsonResponse: `[{"type":"info","title":"T","message":"M"}]`}
		store := &stubInsightStore{replaceErr: errors.New("db down")}
		svc := newTestInsightService(gen, store)

		insights := svc.GenerateExpenseInsights(context.Background(), uuid.New(), lunchExpenses(t))

		require.Len(t, insights, 1)
		assert.NotEqual(t, "fallback-1", insights[0].ID)
	})

	t.Run("prompt embeds expense summary", func(t *testing.T) {
		gen := &stubGenerator{jsonResponse: `[{"type":"info","title":"T","message":"M"}]`}
		svc := newTestInsightService(gen, nil)

		svc.GenerateExpenseInsights(context.Background(), uuid.Nil, lunchExpenses(t))

		assert.Contains(t, gen.lastPrompt, "2024-01-01 | Food | 50.00 | Lunch")
		assert.Contains(t, gen.lastPrompt, "JSON array")
	})
}

func TestCategorizeExpense(t *testing.T) {
	tests := []struct {
		name     string
		response string
		err      error
		want     string
	}{
		{name: "exact match", response: "Food", want: "Food"},
		{name: "match with surrounding whitespace", response: "  Transportation\n", want: "Transportation"},
		{name: "lowercase is not a case-exact match", response: "food", want: "Other"},
		{name: "unknown category", response: "Groceries", want: "Other"},
		{name: "chatty response", response: "The category is Food.", want: "Other"},
		{name: "call failure", err: errors.New("timeout"), want: "Other"},
		{name: "missing credential", err: ErrMissingCredential, want: "Other"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &stubGenerator{textResponse: tt.response, textErr: tt.err}
			svc := newTestInsightService(gen, nil)

			got := svc.CategorizeExpense(context.Background(), "Starbucks coffee")

			assert.Equal(t, tt.want, got)
			assert.True(t, models.ValidExpenseCategory(got))
		})
	}
}

func TestGenerateAIAnswer(t *testing.T) {
	t.Run("returns trimmed answer", func(t *testing.T) {
		gen := &stubGenerator{textResponse: "  Spend less on coffee. Your food total is trending up.  "}
		svc := newTestInsightService(gen, nil)

		answer := svc.GenerateAIAnswer(context.Background(), "Where can I save?", lunchExpenses(t))

		assert.Equal(t, "Spend less on coffee. Your food total is trending up.", answer)
		assert.Contains(t, gen.lastPrompt, "Where can I save?")
		assert.Contains(t, gen.lastPrompt, "Lunch")
	})

	t.Run("returns apology on failure", func(t *testing.T) {
		gen := &stubGenerator{textErr: errors.New("boom")}
		svc := newTestInsightService(gen, nil)

		answer := svc.GenerateAIAnswer(context.Background(), "Where can I save?", lunchExpenses(t))

		assert.Equal(t, fallbackAnswer, answer)
	})
}

func TestGenerativeErrorKind(t *testing.T) {
	assert.Equal(t, "credential-missing", generativeErrorKind(ErrMissingCredential))
	assert.Equal(t, "empty-response", generativeErrorKind(fmt.Errorf("wrapped: %w", ErrEmptyResponse)))
	assert.Equal(t, "parse", generativeErrorKind(fmt.Errorf("%w: bad token", ErrMalformedResponse)))
	assert.Equal(t, "transport", generativeErrorKind(errors.New("dial tcp: refused")))
}
