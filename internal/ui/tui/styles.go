package tui

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title     lipgloss.Style
	subtitle  lipgloss.Style
	selected  lipgloss.Style
	muted     lipgloss.Style
	success   lipgloss.Style
	warning   lipgloss.Style
	popup     lipgloss.Style
	help      lipgloss.Style
	container lipgloss.Style
}

func defaultStyles() styles {
	accent := lipgloss.Color("#F59E0B")
	return styles{
		title:     lipgloss.NewStyle().Bold(true).Foreground(accent),
		subtitle:  lipgloss.NewStyle().Foreground(lipgloss.Color("#E5E7EB")),
		selected:  lipgloss.NewStyle().Bold(true).Reverse(true),
		muted:     lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280")),
		success:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#10B981")),
		warning:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#EF4444")),
		popup:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#EF4444")).Padding(1, 3),
		help:      lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF")),
		container: lipgloss.NewStyle().Padding(1, 2),
	}
}
