// Package tui provides a bubbletea + lipgloss terminal control panel.
package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorAccent = lipgloss.Color("#7D56F4")
	colorWhite  = lipgloss.Color("#FAFAFA")
	colorGray   = lipgloss.Color("#888888")
	colorGreen  = lipgloss.Color("#6BCB77")
	colorYellow = lipgloss.Color("#FFD93D")
	colorRed    = lipgloss.Color("#FF6B6B")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorWhite).
			Background(colorAccent).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(colorGray).
			Width(12)

	focusedLabelStyle = labelStyle.
				Foreground(colorAccent).
				Bold(true)

	buttonStyle = lipgloss.NewStyle().
			Foreground(colorGray).
			Padding(0, 1)

	selectedButtonStyle = lipgloss.NewStyle().
				Foreground(colorWhite).
				Background(colorAccent).
				Padding(0, 1)

	runningStyle = lipgloss.NewStyle().
			Foreground(colorGreen).
			Bold(true)

	stoppingStyle = lipgloss.NewStyle().
			Foreground(colorYellow)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorRed).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(colorWhite)
)
