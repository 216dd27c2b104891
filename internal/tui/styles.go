package tui

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	// Colors
	primaryColor = lipgloss.Color("170") // Purple
	dimColor     = lipgloss.Color("240") // Gray
	successColor = lipgloss.Color("82")  // Green
	errorColor   = lipgloss.Color("196") // Red

	// Title style
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			MarginBottom(1)

	// Selected item style
	SelectedStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true)

	// Normal item style
	NormalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	// Dim style for metadata
	DimStyle = lipgloss.NewStyle().
			Foreground(dimColor)

	// Success style
	SuccessStyle = lipgloss.NewStyle().
			Foreground(successColor)

	// Error style
	ErrorStyle = lipgloss.NewStyle().
			Foreground(errorColor)

	// Help style
	HelpStyle = lipgloss.NewStyle().
			Foreground(dimColor).
			MarginTop(1)
)
