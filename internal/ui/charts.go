package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/zyphh/mindly/internal/analytics"
	"github.com/zyphh/mindly/internal/api"
)

var sparkRunes = []rune("▁▂▃▄▅▆▇█")

// renderMoodTrend draws the mood series as a sparkline, one column per
// day, colored by that day's sentiment.
func renderMoodTrend(points []api.MoodPoint, th Theme, width int) string {
	if len(points) == 0 {
		return th.Hint.Render("No mood data for this window yet.")
	}

	if width < 10 {
		width = 10
	}
	if len(points) > width {
		points = points[len(points)-width:]
	}

	var line strings.Builder
	for _, p := range points {
		// score -1..1 onto the eight block heights
		idx := int(math.Round((p.Score + 1) / 2 * float64(len(sparkRunes)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx > len(sparkRunes)-1 {
			idx = len(sparkRunes) - 1
		}
		line.WriteString(lipgloss.NewStyle().
			Foreground(th.SentimentColor(p.Sentiment)).
			Render(string(sparkRunes[idx])))
	}

	first := points[0].Date.Format("Jan 2")
	last := points[len(points)-1].Date.Format("Jan 2")
	span := first + " – " + last
	if len(points) == 1 {
		span = first
	}

	return line.String() + "\n" + th.Hint.Render(span)
}

// renderDistribution draws one horizontal bar per sentiment with count
// and percentage. With no entries in the window the percentage labels
// are suppressed entirely.
func renderDistribution(d api.Distribution, th Theme, width int) string {
	total := analytics.Total(d)
	if total == 0 {
		return th.Hint.Render("No entries in this window yet.")
	}
	pos, neu, neg := analytics.Percentages(d)

	barWidth := width - 26
	if barWidth < 8 {
		barWidth = 8
	}
	maxCount := d.Positive
	if d.Neutral > maxCount {
		maxCount = d.Neutral
	}
	if d.Negative > maxCount {
		maxCount = d.Negative
	}

	row := func(label string, count, pct int, color lipgloss.Color) string {
		filled := 0
		if maxCount > 0 {
			filled = count * barWidth / maxCount
		}
		bar := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", filled)) +
			lipgloss.NewStyle().Foreground(th.Dim(color)).Render(strings.Repeat("░", barWidth-filled))
		return fmt.Sprintf("%-8s %s %3d (%d%%)", label, bar, count, pct)
	}

	return strings.Join([]string{
		row("positive", d.Positive, pos, th.Positive),
		row("neutral", d.Neutral, neu, th.Neutral),
		row("negative", d.Negative, neg, th.Negative),
	}, "\n")
}

// renderWeekly draws a stacked bar per week.
func renderWeekly(weeks []api.WeekSummary, th Theme, width int) string {
	if len(weeks) == 0 {
		return th.Hint.Render("No weekly data yet.")
	}

	barWidth := width - 24
	if barWidth < 8 {
		barWidth = 8
	}
	maxTotal := 0
	for _, w := range weeks {
		if t := w.Positive + w.Neutral + w.Negative; t > maxTotal {
			maxTotal = t
		}
	}

	seg := func(n int, color lipgloss.Color) string {
		if maxTotal == 0 {
			return ""
		}
		return lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", n*barWidth/maxTotal))
	}

	var rows []string
	for _, w := range weeks {
		bar := seg(w.Positive, th.Positive) + seg(w.Neutral, th.Neutral) + seg(w.Negative, th.Negative)
		rows = append(rows, fmt.Sprintf("%-10s %s %d/%d/%d",
			w.WeekLabel, bar, w.Positive, w.Neutral, w.Negative))
	}
	return strings.Join(rows, "\n")
}
