package service

import (
	"fmt"
	"sort"
	"strings"

	"finsight/internal/models"

	"github.com/shopspring/decimal"
)

// buildExpenseSummary serializes expenses into the compact text block
// embedded in prompts. Per-category and overall totals are summed with
// decimals so the figures the model reasons about are exact.
func buildExpenseSummary(expenses []models.Expense) string {
	if len(expenses) == 0 {
		return "No expenses recorded."
	}

	var b strings.Builder
	b.WriteString("Expenses:\n")

	totals := make(map[string]decimal.Decimal)
	grand := decimal.Zero

	for _, e := range expenses {
		amount := decimal.NewFromFloat(e.Amount)
		fmt.Fprintf(&b, "- %s | %s | %s | %s\n",
			e.Date.Format(models.ExpenseDateLayout),
			e.Category,
			amount.StringFixed(2),
			e.Description,
		)
		totals[e.Category] = totals[e.Category].Add(amount)
		grand = grand.Add(amount)
	}

	categories := make([]string, 0, len(totals))
	for category := range totals {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	b.WriteString("Totals by category:\n")
	for _, category := range categories {
		fmt.Fprintf(&b, "- %s: %s\n", category, totals[category].StringFixed(2))
	}
	fmt.Fprintf(&b, "Total spent: %s", grand.StringFixed(2))

	return b.String()
}
