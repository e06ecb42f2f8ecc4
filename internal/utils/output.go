package utils

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/zyphh/mindly/internal/api"
)

// OutputFormat represents different output formats
type OutputFormat string

const (
	FormatDefault OutputFormat = "default"
	FormatTable   OutputFormat = "table"
	FormatJSON    OutputFormat = "json"
	FormatCSV     OutputFormat = "csv"
	FormatCompact OutputFormat = "compact"
	FormatQuiet   OutputFormat = "quiet"
)

// RenderConfig contains configuration for output rendering
type RenderConfig struct {
	Format   OutputFormat
	Width    int
	ShowID   bool
	ShowTags bool
	Color    bool
	Location *time.Location
}

// DefaultRenderConfig returns a default render configuration
func DefaultRenderConfig() *RenderConfig {
	width := 100
	if colEnv := os.Getenv("COLUMNS"); colEnv != "" {
		if v, err := strconv.Atoi(colEnv); err == nil && v > 40 {
			width = v
		}
	}

	return &RenderConfig{
		Format:   FormatDefault,
		Width:    width,
		ShowID:   false,
		ShowTags: true,
		Color:    true,
		Location: time.Local,
	}
}

// EntryList represents a page of journal entries
type EntryList struct {
	Entries    []api.Entry `json:"entries"`
	Total      int         `json:"total"`
	Page       int         `json:"page,omitempty"`
	PerPage    int         `json:"per_page,omitempty"`
	TotalPages int         `json:"total_pages,omitempty"`
}

// Renderer handles output formatting
type Renderer struct {
	config *RenderConfig
	styles *entryStyles
}

type entryStyles struct {
	Title     lipgloss.Style
	Separator lipgloss.Style
	Meta      lipgloss.Style
	ID        lipgloss.Style
	Date      lipgloss.Style
	Positive  lipgloss.Style
	Neutral   lipgloss.Style
	Negative  lipgloss.Style
	Tags      lipgloss.Style
	Text      lipgloss.Style
}

// NewRenderer creates a new renderer with the given config
func NewRenderer(config *RenderConfig) *Renderer {
	if config == nil {
		config = DefaultRenderConfig()
	}
	return &Renderer{config: config, styles: initStyles(config.Color)}
}

func initStyles(color bool) *entryStyles {
	s := &entryStyles{}

	if color {
		s.Title = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#89B4FA"))
		s.Separator = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))
		s.Meta = lipgloss.NewStyle().Faint(true)
		s.ID = lipgloss.NewStyle().Faint(true)
		s.Date = lipgloss.NewStyle().Bold(true)
		s.Positive = lipgloss.NewStyle().Foreground(lipgloss.Color("#A6E3A1"))
		s.Neutral = lipgloss.NewStyle().Foreground(lipgloss.Color("#9399B2"))
		s.Negative = lipgloss.NewStyle().Foreground(lipgloss.Color("#F38BA8"))
		s.Tags = lipgloss.NewStyle().Faint(true).Foreground(lipgloss.Color("#CBA6F7"))
		s.Text = lipgloss.NewStyle()
	} else {
		s.Title = lipgloss.NewStyle().Bold(true)
		s.Separator = lipgloss.NewStyle()
		s.Meta = lipgloss.NewStyle()
		s.ID = lipgloss.NewStyle()
		s.Date = lipgloss.NewStyle().Bold(true)
		s.Positive = lipgloss.NewStyle()
		s.Neutral = lipgloss.NewStyle()
		s.Negative = lipgloss.NewStyle()
		s.Tags = lipgloss.NewStyle()
		s.Text = lipgloss.NewStyle()
	}

	return s
}

func (s *entryStyles) sentiment(label string) lipgloss.Style {
	switch label {
	case api.SentimentPositive:
		return s.Positive
	case api.SentimentNegative:
		return s.Negative
	default:
		return s.Neutral
	}
}

func sentimentLabel(label string) string {
	if label == "" {
		return "pending"
	}
	return label
}

// RenderEntryList renders a list of entries according to the configured format
func (r *Renderer) RenderEntryList(list *EntryList) (string, error) {
	switch r.config.Format {
	case FormatJSON:
		return r.renderJSON(list)
	case FormatCSV:
		return r.renderCSV(list)
	case FormatTable:
		return r.renderTable(list)
	case FormatCompact:
		return r.renderCompact(list)
	case FormatQuiet:
		return r.renderQuiet(list)
	default:
		return r.renderDefault(list)
	}
}

func (r *Renderer) rule() string {
	return r.styles.Separator.Render(strings.Repeat("─", minInt(r.config.Width, 120)))
}

func (r *Renderer) renderDefault(list *EntryList) (string, error) {
	var builder strings.Builder

	builder.WriteString(r.styles.Title.Render("Journal Entries"))
	builder.WriteString("\n")
	builder.WriteString(r.rule())
	builder.WriteString("\n")

	if len(list.Entries) == 0 {
		builder.WriteString(r.styles.Meta.Render("No journal entries yet. Start journaling to see them here."))
		builder.WriteString("\n")
		return builder.String(), nil
	}

	if list.TotalPages > 1 {
		p := NewPagination(list.Total, list.PerPage, list.Page)
		builder.WriteString(r.styles.Meta.Render(p.FormatSummary()))
		builder.WriteString("\n")
		builder.WriteString(r.rule())
		builder.WriteString("\n")
	}

	for _, entry := range list.Entries {
		builder.WriteString(r.renderSingleEntry(entry))
		builder.WriteString(r.rule())
		builder.WriteString("\n")
	}

	if list.TotalPages > 1 {
		p := NewPagination(list.Total, list.PerPage, list.Page)
		if nav := p.FormatNavigation(); nav != "" {
			builder.WriteString(r.styles.Meta.Render(nav))
			builder.WriteString("\n")
		}
	}

	return builder.String(), nil
}

func (r *Renderer) renderSingleEntry(entry api.Entry) string {
	var builder strings.Builder

	var metaParts []string
	if r.config.ShowID {
		metaParts = append(metaParts, r.styles.ID.Render("["+entry.ID+"]"))
	}
	date := entry.Date.In(r.config.Location)
	metaParts = append(metaParts, r.styles.Date.Render(date.Format("Mon, Jan 2 2006")))
	metaParts = append(metaParts, r.styles.Meta.Render(humanize.Time(date)))
	metaParts = append(metaParts, r.styles.sentiment(entry.Sentiment).Render(sentimentLabel(entry.Sentiment)))

	builder.WriteString(strings.Join(metaParts, "  "))
	builder.WriteString("\n")
	builder.WriteString(r.styles.Text.Render(entry.Text))
	builder.WriteString("\n")

	if r.config.ShowTags && len(entry.Tags) > 0 {
		builder.WriteString(r.styles.Tags.Render("#" + strings.Join(entry.Tags, " #")))
		builder.WriteString("\n")
	}

	return builder.String()
}

func (r *Renderer) renderJSON(list *EntryList) (string, error) {
	b, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal entries: %w", err)
	}
	return string(b) + "\n", nil
}

func (r *Renderer) renderCSV(list *EntryList) (string, error) {
	var builder strings.Builder
	builder.WriteString("id,date,sentiment,tags,text\n")
	for _, entry := range list.Entries {
		builder.WriteString(fmt.Sprintf("%s,%s,%s,%s,%s\n",
			escapeCSV(entry.ID),
			entry.Date.In(r.config.Location).Format("2006-01-02"),
			sentimentLabel(entry.Sentiment),
			escapeCSV(strings.Join(entry.Tags, " ")),
			escapeCSV(entry.Text),
		))
	}
	return builder.String(), nil
}

func (r *Renderer) renderTable(list *EntryList) (string, error) {
	var builder strings.Builder

	builder.WriteString(fmt.Sprintf("%-12s  %-9s  %s\n", "DATE", "SENTIMENT", "TEXT"))
	for _, entry := range list.Entries {
		text := strings.ReplaceAll(entry.Text, "\n", " ")
		limit := maxInt(r.config.Width-26, 20)
		if len(text) > limit {
			text = text[:limit-3] + "..."
		}
		builder.WriteString(fmt.Sprintf("%-12s  %-9s  %s\n",
			entry.Date.In(r.config.Location).Format("2006-01-02"),
			sentimentLabel(entry.Sentiment),
			text,
		))
	}
	return builder.String(), nil
}

func (r *Renderer) renderCompact(list *EntryList) (string, error) {
	var builder strings.Builder
	for _, entry := range list.Entries {
		text := strings.ReplaceAll(entry.Text, "\n", " ")
		if len(text) > 60 {
			text = text[:57] + "..."
		}
		builder.WriteString(fmt.Sprintf("%s %s %s\n",
			entry.Date.In(r.config.Location).Format("01-02"),
			r.styles.sentiment(entry.Sentiment).Render(sentimentGlyph(entry.Sentiment)),
			text,
		))
	}
	return builder.String(), nil
}

func (r *Renderer) renderQuiet(list *EntryList) (string, error) {
	var builder strings.Builder
	for _, entry := range list.Entries {
		builder.WriteString(entry.ID)
		builder.WriteString("\n")
	}
	return builder.String(), nil
}

func sentimentGlyph(label string) string {
	switch label {
	case api.SentimentPositive:
		return "+"
	case api.SentimentNegative:
		return "-"
	default:
		return "·"
	}
}

func escapeCSV(s string) string {
	if strings.ContainsAny(s, ",\"\n") {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return s
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
