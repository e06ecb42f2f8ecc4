package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// TokenStore supplies the opaque bearer token and clears it when the
// service reports the session has ended.
type TokenStore interface {
	Token() string
	Clear() error
}

// Client talks to the Mindly backend.
type Client struct {
	base   string
	tokens TokenStore
	http   *http.Client
}

// New returns a Client for the given base URL. tokens may be nil for
// unauthenticated use (login only).
func New(base string, tokens TokenStore) *Client {
	return &Client{
		base:   base,
		tokens: tokens,
		http:   &http.Client{Timeout: 15 * time.Second},
	}
}

type errorBody struct {
	Detail string `json:"detail"`
}

// do performs one request against the service. A 401 clears the stored
// token before surfacing ErrAuthFailed.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.base + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, rdr)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.tokens != nil {
		if tok := c.tokens.Token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &ServiceError{Detail: err.Error()}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		if c.tokens != nil {
			_ = c.tokens.Clear()
		}
		return ErrAuthFailed
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		var eb errorBody
		_ = json.NewDecoder(resp.Body).Decode(&eb)
		return &ServiceError{Status: resp.StatusCode, Detail: eb.Detail}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &ServiceError{Status: resp.StatusCode, Detail: "decode response: " + err.Error()}
	}
	return nil
}

// Login exchanges credentials for a token. The OAuth2 password flow wants
// form encoding, not JSON.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/auth/login",
		bytes.NewBufferString(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", &ServiceError{Detail: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return "", ErrAuthFailed
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errorBody
		_ = json.NewDecoder(resp.Body).Decode(&eb)
		return "", &ServiceError{Status: resp.StatusCode, Detail: eb.Detail}
	}

	var lr loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		return "", &ServiceError{Status: resp.StatusCode, Detail: "decode response: " + err.Error()}
	}
	if lr.AccessToken == "" {
		return "", &ServiceError{Status: resp.StatusCode, Detail: "login response missing token"}
	}
	return lr.AccessToken, nil
}

// Entries returns the stored entries in the order the service keeps them.
func (c *Client) Entries(ctx context.Context) ([]Entry, error) {
	var out []Entry
	if err := c.do(ctx, http.MethodGet, "/journal", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Entry fetches a single entry by id.
func (c *Client) Entry(ctx context.Context, id string) (Entry, error) {
	var out Entry
	if err := c.do(ctx, http.MethodGet, "/journal/"+id, nil, nil, &out); err != nil {
		return Entry{}, err
	}
	return out, nil
}

// CreateEntry stores a new entry. Sentiment comes back from the service,
// possibly empty while analysis is pending.
func (c *Client) CreateEntry(ctx context.Context, text string, date time.Time) (Entry, error) {
	var out Entry
	payload := entryPayload{Text: text, Date: date.UTC().Format(time.RFC3339)}
	if err := c.do(ctx, http.MethodPost, "/journal", nil, payload, &out); err != nil {
		return Entry{}, err
	}
	return out, nil
}

// UpdateEntry rewrites an existing entry's text and date.
func (c *Client) UpdateEntry(ctx context.Context, id, text string, date time.Time) (Entry, error) {
	var out Entry
	payload := entryPayload{Text: text, Date: date.UTC().Format(time.RFC3339)}
	if err := c.do(ctx, http.MethodPatch, "/journal/"+id, nil, payload, &out); err != nil {
		return Entry{}, err
	}
	return out, nil
}

// DeleteEntry removes an entry.
func (c *Client) DeleteEntry(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/journal/"+id, nil, nil, nil)
}

// MoodTrends returns the per-day mood series for the last days days.
func (c *Client) MoodTrends(ctx context.Context, days int) ([]MoodPoint, error) {
	q := url.Values{}
	q.Set("days", strconv.Itoa(days))
	q.Set("smooth", "false")
	var out moodTrendsResponse
	if err := c.do(ctx, http.MethodGet, "/analysis/mood-trends", q, nil, &out); err != nil {
		return nil, err
	}
	return out.MoodTrends, nil
}

// SentimentDistribution returns sentiment counts for the last days days.
func (c *Client) SentimentDistribution(ctx context.Context, days int) (Distribution, error) {
	q := url.Values{}
	q.Set("days", strconv.Itoa(days))
	var out distributionResponse
	if err := c.do(ctx, http.MethodGet, "/analysis/sentiment-distribution", q, nil, &out); err != nil {
		return Distribution{}, err
	}
	return out.SentimentDistribution, nil
}

// WeeklySummary returns per-week sentiment counts for the last weeks weeks.
func (c *Client) WeeklySummary(ctx context.Context, weeks int) ([]WeekSummary, error) {
	q := url.Values{}
	q.Set("weeks", strconv.Itoa(weeks))
	var out weeklySummaryResponse
	if err := c.do(ctx, http.MethodGet, "/analysis/weekly-summary", q, nil, &out); err != nil {
		return nil, err
	}
	return out.WeeklySummary, nil
}

// Streak returns the current journaling streak.
func (c *Client) Streak(ctx context.Context) (Streak, error) {
	var out Streak
	if err := c.do(ctx, http.MethodGet, "/analysis/streaks", nil, nil, &out); err != nil {
		return Streak{}, err
	}
	return out, nil
}

// Insights returns free-text insights derived from the last days days.
func (c *Client) Insights(ctx context.Context, days int) ([]string, error) {
	q := url.Values{}
	q.Set("days", strconv.Itoa(days))
	var out insightsResponse
	if err := c.do(ctx, http.MethodGet, "/analysis/insights", q, nil, &out); err != nil {
		return nil, err
	}
	return out.Insights, nil
}

// RandomPrompt returns a writing prompt to seed the editor.
func (c *Client) RandomPrompt(ctx context.Context) (string, error) {
	var out promptResponse
	if err := c.do(ctx, http.MethodGet, "/journal/prompts/random", nil, nil, &out); err != nil {
		return "", err
	}
	return out.Prompt, nil
}
