package models

import (
	"time"

	"github.com/google/uuid"
)

type InsightType string

const (
	InsightWarning InsightType = "warning"
	InsightInfo    InsightType = "info"
	InsightSuccess InsightType = "success"
	InsightTip     InsightType = "tip"
)

// Valid reports whether t is one of the four known insight types.
func (t InsightType) Valid() bool {
	switch t {
	case InsightWarning, InsightInfo, InsightSuccess, InsightTip:
		return true
	}
	return false
}

// Insight is a normalized model-generated observation about a user's
// spending. IDs are synthetic strings ("ai-<timestamp>-<index>" or
// "fallback-1") rather than UUIDs: uniqueness is guaranteed only by
// ordinal index within one generated batch.
type Insight struct {
	ID         string      `db:"id"`
	UserID     uuid.UUID   `db:"user_id"`
	Type       InsightType `db:"type"`
	Title      string      `db:"title"`
	Message    string      `db:"message"`
	Action     string      `db:"action"`
	Confidence float64     `db:"confidence"`
	CreatedAt  time.Time   `db:"created_at"`
}
