package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidExpenseCategory(t *testing.T) {
	for _, category := range ExpenseCategories {
		assert.True(t, ValidExpenseCategory(category), category)
	}

	// Matching is case-exact
	assert.False(t, ValidExpenseCategory("food"))
	assert.False(t, ValidExpenseCategory("FOOD"))
	assert.False(t, ValidExpenseCategory("Groceries"))
	assert.False(t, ValidExpenseCategory(""))
}

func TestInsightTypeValid(t *testing.T) {
	assert.True(t, InsightWarning.Valid())
	assert.True(t, InsightInfo.Valid())
	assert.True(t, InsightSuccess.Valid())
	assert.True(t, InsightTip.Valid())
	assert.False(t, InsightType("notice").Valid())
	assert.False(t, InsightType("").Valid())
}
