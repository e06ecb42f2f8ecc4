package api

import "time"

// Sentiment labels assigned by the backend. The client never computes these.
const (
	SentimentPositive = "positive"
	SentimentNeutral  = "neutral"
	SentimentNegative = "negative"
)

// Entry is a journal entry as stored by the service. Sentiment may be empty
// while analysis is still pending.
type Entry struct {
	ID        string    `json:"_id"`
	Text      string    `json:"text"`
	Date      time.Time `json:"date"`
	Sentiment string    `json:"sentiment"`
	Tags      []string  `json:"tags"`
}

// MoodPoint is one point of the mood trend series, score in [-1, 1].
type MoodPoint struct {
	Date      time.Time `json:"date"`
	Score     float64   `json:"score"`
	Sentiment string    `json:"sentiment"`
}

// Distribution holds sentiment counts over a window.
type Distribution struct {
	Positive int `json:"positive"`
	Neutral  int `json:"neutral"`
	Negative int `json:"negative"`
}

// WeekSummary holds per-week sentiment counts.
type WeekSummary struct {
	WeekLabel string `json:"week_label"`
	Positive  int    `json:"positive"`
	Neutral   int    `json:"neutral"`
	Negative  int    `json:"negative"`
}

// Streak reports consecutive journaling days.
type Streak struct {
	Current int `json:"current_streak"`
}

type entryPayload struct {
	Text string `json:"text"`
	Date string `json:"date"`
}

type moodTrendsResponse struct {
	MoodTrends []MoodPoint `json:"mood_trends"`
}

type distributionResponse struct {
	SentimentDistribution Distribution `json:"sentiment_distribution"`
}

type weeklySummaryResponse struct {
	WeeklySummary []WeekSummary `json:"weekly_summary"`
}

type insightsResponse struct {
	Insights []string `json:"insights"`
}

type promptResponse struct {
	Prompt string `json:"prompt"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
	UserID      string `json:"user_id"`
	Username    string `json:"username"`
}
