package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/zyphh/mindly/internal/analytics"
	"github.com/zyphh/mindly/internal/api"
)

type entriesLoadedMsg struct{ entries []api.Entry }
type entriesLoadErrMsg struct{ err error }

// snapshotLoadedMsg always carries a complete snapshot: the three
// analytics fetches are joined before the message is emitted, so the
// projector can never render fields from two different loads.
type snapshotLoadedMsg struct {
	snapshot analytics.Snapshot
	days     int
}
type snapshotLoadErrMsg struct {
	err  error
	days int
}

type streakLoadedMsg struct{ streak int }
type streakLoadErrMsg struct{ err error }

type insightsLoadedMsg struct{ insights []string }
type insightsLoadErrMsg struct{ err error }

type promptLoadedMsg struct{ prompt string }

type entrySavedMsg struct {
	entry   api.Entry
	updated bool
}
type entrySaveErrMsg struct{ err error }

type entryLoadedForEditMsg struct{ entry api.Entry }
type entryEditErrMsg struct{ err error }

type entryDeletedMsg struct{ id string }
type entryDeleteErrMsg struct{ err error }

type loginDoneMsg struct{ token string }
type loginErrMsg struct{ err error }

type themeSavedMsg struct{ err error }

type toastExpiredMsg struct{ id int }

func loadEntriesCmd(svc Service) tea.Cmd {
	return func() tea.Msg {
		entries, err := svc.Entries(context.Background())
		if err != nil {
			return entriesLoadErrMsg{err}
		}
		return entriesLoadedMsg{entries}
	}
}

// loadSnapshotCmd fetches mood trend, distribution and weekly summary
// concurrently and joins them into one snapshot. The weekly summary uses
// its own fixed window, independent of the day filter.
func loadSnapshotCmd(svc Service, days, weeks int) tea.Cmd {
	return func() tea.Msg {
		var (
			mood   []api.MoodPoint
			dist   api.Distribution
			weekly []api.WeekSummary
		)

		g, ctx := errgroup.WithContext(context.Background())
		g.Go(func() error {
			var err error
			mood, err = svc.MoodTrends(ctx, days)
			return err
		})
		g.Go(func() error {
			var err error
			dist, err = svc.SentimentDistribution(ctx, days)
			return err
		})
		g.Go(func() error {
			var err error
			weekly, err = svc.WeeklySummary(ctx, weeks)
			return err
		})
		if err := g.Wait(); err != nil {
			return snapshotLoadErrMsg{err: err, days: days}
		}
		return snapshotLoadedMsg{snapshot: analytics.NewSnapshot(mood, dist, weekly), days: days}
	}
}

func loadStreakCmd(svc Service) tea.Cmd {
	return func() tea.Msg {
		streak, err := svc.Streak(context.Background())
		if err != nil {
			return streakLoadErrMsg{err}
		}
		return streakLoadedMsg{streak.Current}
	}
}

func loadInsightsCmd(svc Service, days int) tea.Cmd {
	return func() tea.Msg {
		insights, err := svc.Insights(context.Background(), days)
		if err != nil {
			return insightsLoadErrMsg{err}
		}
		return insightsLoadedMsg{insights}
	}
}

func loadPromptCmd(svc Service) tea.Cmd {
	return func() tea.Msg {
		prompt, err := svc.RandomPrompt(context.Background())
		if err != nil {
			// prompts are decoration; fall back silently
			return promptLoadedMsg{prompt: ""}
		}
		return promptLoadedMsg{prompt: prompt}
	}
}

func saveEntryCmd(svc Service, editingID, text string, date time.Time) tea.Cmd {
	return func() tea.Msg {
		if editingID != "" {
			entry, err := svc.UpdateEntry(context.Background(), editingID, text, date)
			if err != nil {
				return entrySaveErrMsg{err}
			}
			return entrySavedMsg{entry: entry, updated: true}
		}
		entry, err := svc.CreateEntry(context.Background(), text, date)
		if err != nil {
			return entrySaveErrMsg{err}
		}
		return entrySavedMsg{entry: entry}
	}
}

func loadEntryForEditCmd(svc Service, id string) tea.Cmd {
	return func() tea.Msg {
		entry, err := svc.Entry(context.Background(), id)
		if err != nil {
			return entryEditErrMsg{err}
		}
		return entryLoadedForEditMsg{entry}
	}
}

func deleteEntryCmd(svc Service, id string) tea.Cmd {
	return func() tea.Msg {
		if err := svc.DeleteEntry(context.Background(), id); err != nil {
			return entryDeleteErrMsg{err}
		}
		return entryDeletedMsg{id}
	}
}

func loginCmd(svc Service, username, password string) tea.Cmd {
	return func() tea.Msg {
		token, err := svc.Login(context.Background(), username, password)
		if err != nil {
			return loginErrMsg{err}
		}
		return loginDoneMsg{token}
	}
}
