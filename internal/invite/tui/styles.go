package tui

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles of the terminal form.
type Styles struct {
	Title       lipgloss.Style
	Input       lipgloss.Style
	InputAlert  lipgloss.Style
	Button      lipgloss.Style
	ButtonOff   lipgloss.Style
	Error       lipgloss.Style
	Success     lipgloss.Style
	Tag         lipgloss.Style
	TagSelected lipgloss.Style
	Help        lipgloss.Style
}

// DefaultStyles returns the default palette.
func DefaultStyles() Styles {
	border := lipgloss.RoundedBorder()
	return Styles{
		Title:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")).MarginBottom(1),
		Input:      lipgloss.NewStyle().Border(border).BorderForeground(lipgloss.Color("240")).Padding(0, 1),
		InputAlert: lipgloss.NewStyle().Border(border).BorderForeground(lipgloss.Color("196")).Padding(0, 1),
		Button: lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.Color("231")).Background(lipgloss.Color("63")).Padding(0, 2),
		ButtonOff: lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).Background(lipgloss.Color("236")).Padding(0, 2),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Tag: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).Background(lipgloss.Color("238")).Padding(0, 1).MarginRight(1),
		TagSelected: lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.Color("231")).Background(lipgloss.Color("161")).Padding(0, 1).MarginRight(1),
		Help: lipgloss.NewStyle().Foreground(lipgloss.Color("241")).MarginTop(1),
	}
}
