package service

import (
	"strings"
	"testing"
	"time"

	"finsight/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(models.ExpenseDateLayout, s)
	require.NoError(t, err)
	return d
}

func TestBuildExpenseSummary(t *testing.T) {
	t.Run("empty list", func(t *testing.T) {
		assert.Equal(t, "No expenses recorded.", buildExpenseSummary(nil))
	})

	t.Run("lines and totals", func(t *testing.T) {
		expenses := []models.Expense{
			{Amount: 50, Category: "Food", Description: "Lunch", Date: mustDate(t, "2024-01-01")},
			{Amount: 0.1, Category: "Food", Description: "Gum", Date: mustDate(t, "2024-01-02")},
			{Amount: 0.2, Category: "Transportation", Description: "Bus fare", Date: mustDate(t, "2024-01-03")},
		}

		summary := buildExpenseSummary(expenses)

		assert.Contains(t, summary, "- 2024-01-01 | Food | 50.00 | Lunch")
		assert.Contains(t, summary, "- 2024-01-02 | Food | 0.10 | Gum")
		// Decimal summation keeps totals exact
		assert.Contains(t, summary, "- Food: 50.10")
		assert.Contains(t, summary, "- Transportation: 0.20")
		assert.Contains(t, summary, "Total spent: 50.30")
	})

	t.Run("category totals are alphabetical", func(t *testing.T) {
		expenses := []models.Expense{
			{Amount: 1, Category: "Shopping", Description: "a", Date: mustDate(t, "2024-01-01")},
			{Amount: 2, Category: "Bills", Description: "b", Date: mustDate(t, "2024-01-01")},
		}

		summary := buildExpenseSummary(expenses)

		bills := strings.Index(summary, "- Bills: 2.00")
		shopping := strings.Index(summary, "- Shopping: 1.00")
		require.NotEqual(t, -1, bills)
		require.NotEqual(t, -1, shopping)
		assert.Less(t, bills, shopping)
	})
}
