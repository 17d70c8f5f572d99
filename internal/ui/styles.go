package ui

import "github.com/charmbracelet/lipgloss"

// This file centralizes the lipgloss styles used by the progress output.

type styles struct {
	header  lipgloss.Style
	warmup  lipgloss.Style
	param   lipgloss.Style
	value   lipgloss.Style
	summary lipgloss.Style
	abort   lipgloss.Style
	notice  lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		header: r.NewStyle().
			Foreground(lipgloss.Color("#FFF")).
			Background(lipgloss.Color("#7D56F4")). // Brand Color
			Bold(true).
			Padding(0, 1),
		warmup: r.NewStyle().
			Foreground(lipgloss.Color("241")), // Dim Gray
		param: r.NewStyle().
			Foreground(lipgloss.Color("86")), // Cyan/Teal
		value: r.NewStyle().
			Foreground(lipgloss.Color("252")), // Light Gray
		summary: r.NewStyle().
			Foreground(lipgloss.Color("46")). // Green
			Bold(true),
		abort: r.NewStyle().
			Foreground(lipgloss.Color("196")). // Red
			Bold(true),
		notice: r.NewStyle().
			Foreground(lipgloss.Color("214")), // Orange
	}
}
