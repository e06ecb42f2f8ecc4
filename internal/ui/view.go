package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/zyphh/mindly/internal/api"
	"github.com/zyphh/mindly/internal/version"
)

func (m Model) View() string {
	if m.view == viewLogin {
		return m.loginView()
	}
	return m.journalView()
}

func (m Model) loginView() string {
	th := m.theme

	var b strings.Builder
	b.WriteString(th.Title.Render("Mindly"))
	b.WriteString("  ")
	b.WriteString(th.Hint.Render(version.GetShortVersion()))
	b.WriteString("\n\n")
	b.WriteString(th.Label.Render("Username"))
	b.WriteString("\n")
	b.WriteString(m.loginUser.View())
	b.WriteString("\n")
	b.WriteString(th.Label.Render("Password"))
	b.WriteString("\n")
	b.WriteString(m.loginPass.View())
	b.WriteString("\n\n")

	switch {
	case m.loggingIn:
		b.WriteString(th.Hint.Render("Logging in..."))
	case m.loginErr != "":
		b.WriteString(th.Error.Render(m.loginErr))
	case m.status != "":
		b.WriteString(th.Hint.Render(m.status))
	}
	b.WriteString("\n\n")
	b.WriteString(th.Hint.Render("enter: log in · tab: switch field · ctrl+c: quit"))

	box := th.Border.Render(b.String())
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
	}
	return box
}

func (m Model) journalView() string {
	th := m.theme
	width := m.width
	if width <= 0 {
		width = 100
	}
	half := width/2 - 4

	header := m.headerView(width)
	editor := th.Border.Width(half).Render(m.editorView(half))
	list := th.Border.Width(half).Render(m.entriesView(half))
	top := lipgloss.JoinHorizontal(lipgloss.Top, editor, list)
	charts := m.chartsView(width)
	insights := th.Border.Width(width - 4).Render(m.insightsView())

	sections := []string{header}
	if t := m.toastView(); t != "" {
		sections = append(sections, t)
	}
	sections = append(sections, top, charts, insights)
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) headerView(width int) string {
	th := m.theme

	left := th.Title.Render("Mindly") + "  " +
		th.Value.Render(fmt.Sprintf("🔥 %d day streak", m.streak)) + "  " +
		th.Label.Render("window: "+filterLabel(m.filterDays)) + "  " +
		th.Label.Render("theme: "+th.Name)
	if m.loadingSnapshot {
		left += "  " + th.Hint.Render("updating…")
	}
	if m.status != "" {
		left += "  " + th.Hint.Render(m.status)
	}
	return left
}

func (m Model) toastView() string {
	if len(m.toasts) == 0 {
		return ""
	}
	th := m.theme
	var rows []string
	for _, t := range m.toasts {
		bg := th.Positive
		if t.level == toastError {
			bg = th.Negative
		}
		rows = append(rows, th.Toast.Background(bg).Render(t.text))
	}
	return strings.Join(rows, "\n")
}

func (m Model) editorView(width int) string {
	th := m.theme

	title := "New Entry"
	if m.editingID != "" {
		title = "Editing Entry"
	}

	var b strings.Builder
	b.WriteString(th.Title.Render(title))
	b.WriteString("\n")
	b.WriteString(th.Hint.Render(m.prompt))
	b.WriteString("\n")
	b.WriteString(m.textArea.View())
	b.WriteString("\n")
	b.WriteString(th.Label.Render("Date: "))
	b.WriteString(m.dateInput.View())
	b.WriteString("\n")
	if m.saving {
		b.WriteString(th.Hint.Render("Saving..."))
	} else {
		b.WriteString(th.Hint.Render("ctrl+s: save · tab: next pane · ctrl+l: log out"))
	}
	return b.String()
}

func (m Model) entriesView(width int) string {
	th := m.theme

	var b strings.Builder
	b.WriteString(th.Title.Render("Recent Entries"))
	b.WriteString("\n")

	switch {
	case m.confirmID != "":
		b.WriteString(th.Error.Render("Delete this entry? It cannot be undone. (y/n)"))
		b.WriteString("\n")
	case m.focus == focusList:
		b.WriteString(th.Hint.Render("j/k: move · e: edit · d: delete · f: window · t: theme · i: refresh"))
		b.WriteString("\n")
	}

	if m.entriesErr {
		b.WriteString(th.Error.Render("Couldn't load entries. They'll refresh after your next save."))
		return b.String()
	}
	if len(m.entries) == 0 {
		b.WriteString(th.Hint.Render("No journal entries yet. Write your first one on the left."))
		return b.String()
	}

	visible := 8
	start := 0
	if m.selected >= visible {
		start = m.selected - visible + 1
	}
	for i := start; i < len(m.entries) && i < start+visible; i++ {
		b.WriteString(m.entryLine(m.entries[i], i == m.selected && m.focus == focusList, width))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) entryLine(e api.Entry, selected bool, width int) string {
	th := m.theme

	cursor := "  "
	if selected {
		cursor = th.Title.Render("> ")
	}

	badge := lipgloss.NewStyle().Foreground(th.SentimentColor(e.Sentiment)).Render("●")

	date := e.Date.In(m.cfg.Location())
	text := strings.ReplaceAll(e.Text, "\n", " ")
	limit := width - 30
	if limit < 16 {
		limit = 16
	}
	if len(text) > limit {
		text = text[:limit-1] + "…"
	}

	line := fmt.Sprintf("%s%s %s %s %s",
		cursor, badge,
		th.Value.Render(date.Format("Jan 2")),
		th.Label.Render(humanize.Time(date)),
		text)
	if len(e.Tags) > 0 {
		line += " " + th.Label.Render("#"+strings.Join(e.Tags, " #"))
	}
	return line
}

func (m Model) chartsView(width int) string {
	th := m.theme
	inner := width - 4

	if m.snapshotBroken {
		return th.Border.Width(inner).Render(
			th.Error.Render("Unable to load visualization data. Please try again later."))
	}
	if m.snapshot == nil {
		return th.Border.Width(inner).Render(th.Hint.Render("Loading visualizations..."))
	}

	snap := *m.snapshot
	mood := th.Title.Render("Mood Trend") + "\n" + renderMoodTrend(snap.Mood, th, inner)
	dist := th.Title.Render("Sentiment") + "\n" + renderDistribution(snap.Distribution, th, inner/2)
	weekly := th.Title.Render("Weekly") + "\n" + renderWeekly(snap.Weekly, th, inner/2)

	bottom := lipgloss.JoinHorizontal(lipgloss.Top,
		th.Border.Width(inner/2-2).Render(dist),
		th.Border.Width(inner/2-2).Render(weekly))
	return lipgloss.JoinVertical(lipgloss.Left, th.Border.Width(inner).Render(mood), bottom)
}

func (m Model) insightsView() string {
	th := m.theme

	var b strings.Builder
	b.WriteString(th.Title.Render("Insights"))
	b.WriteString("\n")

	switch {
	case m.insightsErr:
		b.WriteString(th.Error.Render("Error loading insights. Please try again later."))
	case len(m.insights) == 0:
		b.WriteString(th.Hint.Render("Keep journaling to receive personalized insights about your emotional patterns."))
	default:
		for _, ins := range m.insights {
			b.WriteString(th.Value.Render("• " + ins))
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
