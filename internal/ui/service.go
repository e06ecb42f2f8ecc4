package ui

import (
	"context"
	"time"

	"github.com/zyphh/mindly/internal/api"
)

// Service is the slice of the backend the TUI consumes. *api.Client
// satisfies it; tests substitute a fake.
type Service interface {
	Login(ctx context.Context, username, password string) (string, error)

	Entries(ctx context.Context) ([]api.Entry, error)
	Entry(ctx context.Context, id string) (api.Entry, error)
	CreateEntry(ctx context.Context, text string, date time.Time) (api.Entry, error)
	UpdateEntry(ctx context.Context, id, text string, date time.Time) (api.Entry, error)
	DeleteEntry(ctx context.Context, id string) error

	MoodTrends(ctx context.Context, days int) ([]api.MoodPoint, error)
	SentimentDistribution(ctx context.Context, days int) (api.Distribution, error)
	WeeklySummary(ctx context.Context, weeks int) ([]api.WeekSummary, error)
	Streak(ctx context.Context) (api.Streak, error)
	Insights(ctx context.Context, days int) ([]string, error)
	RandomPrompt(ctx context.Context) (string, error)
}

// SessionStore is the token presence check the gate runs on.
type SessionStore interface {
	Present() bool
	Save(token string) error
	Clear() error
}
