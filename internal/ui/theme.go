package ui

import (
	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/zyphh/mindly/internal/api"
)

// Theme maps sentiment and chrome to colors for one of the two modes.
// Switching themes is a pure recoloring; nothing here touches data.
type Theme struct {
	Name string

	Positive lipgloss.Color
	Neutral  lipgloss.Color
	Negative lipgloss.Color
	Accent   lipgloss.Color

	Title   lipgloss.Style
	Label   lipgloss.Style
	Value   lipgloss.Style
	Hint    lipgloss.Style
	Error   lipgloss.Style
	Success lipgloss.Style
	Border  lipgloss.Style
	Toast   lipgloss.Style
}

func LightTheme() Theme {
	return buildTheme("light",
		"#2DA44E", "#6E7781", "#CF222E", "#4263EB",
		"#1F2328", "#6E7781", "#FFFFFF")
}

func DarkTheme() Theme {
	return buildTheme("dark",
		"#40C057", "#ADB5BD", "#FA5252", "#748FFC",
		"#E6EDF3", "#8B949E", "#0D1117")
}

// ThemeFor returns the theme for a config theme name.
func ThemeFor(name string) Theme {
	if name == "dark" {
		return DarkTheme()
	}
	return LightTheme()
}

func buildTheme(name, positive, neutral, negative, accent, text, subtle, background string) Theme {
	return Theme{
		Name:     name,
		Positive: lipgloss.Color(positive),
		Neutral:  lipgloss.Color(neutral),
		Negative: lipgloss.Color(negative),
		Accent:   lipgloss.Color(accent),
		Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(accent)),
		Label:    lipgloss.NewStyle().Faint(true).Foreground(lipgloss.Color(subtle)),
		Value:    lipgloss.NewStyle().Foreground(lipgloss.Color(text)),
		Hint:     lipgloss.NewStyle().Faint(true),
		Error:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(negative)),
		Success:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(positive)),
		Border:   lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color(subtle)).Padding(0, 1),
		Toast:    lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color(background)),
	}
}

// SentimentColor is the pure sentiment -> color mapping the charts use.
func (t Theme) SentimentColor(label string) lipgloss.Color {
	switch label {
	case api.SentimentPositive:
		return t.Positive
	case api.SentimentNegative:
		return t.Negative
	default:
		return t.Neutral
	}
}

// Dim returns a washed-out variant of c for chart fills, blended toward
// the theme's background.
func (t Theme) Dim(c lipgloss.Color) lipgloss.Color {
	base, err := colorful.Hex(string(c))
	if err != nil {
		return c
	}
	toward := colorful.Color{R: 1, G: 1, B: 1}
	if t.Name == "dark" {
		toward = colorful.Color{R: 0.05, G: 0.07, B: 0.09}
	}
	return lipgloss.Color(base.BlendLab(toward, 0.55).Hex())
}
