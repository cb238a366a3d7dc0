package tui

import "github.com/charmbracelet/lipgloss"

// Package tui contains the Bubble Tea program of the planner: the model,
// update logic, view rendering, input handling and styling.

// --- Styles ---

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	FocusedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	BlurredStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	CursorStyle  = FocusedStyle
	NoStyle      = lipgloss.NewStyle()

	HelpStyle   = BlurredStyle
	StatusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F6AE2D")).Bold(true)
	ErrorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5555"))

	// Level buttons
	selectedColor = lipgloss.Color("#00FF00")
	enabledColor  = lipgloss.Color("#FAFAFA")
	disabledColor = lipgloss.Color("238")

	ButtonStyle         = lipgloss.NewStyle().Foreground(enabledColor)
	SelectedButtonStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#000000")).Background(selectedColor).Bold(true)
	DisabledButtonStyle = lipgloss.NewStyle().Foreground(disabledColor)

	// Alternate group shading so neighbouring incompatibility groups stand apart.
	StripeStyles = []lipgloss.Style{
		lipgloss.NewStyle().Foreground(lipgloss.Color("#FAFAFA")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("#A8C7FA")),
	}
	DisabledRowStyle = lipgloss.NewStyle().Foreground(disabledColor).Strikethrough(true)

	PanelTitleStyle = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	PanelBoxStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")). // Purple border
			Padding(0, 1).
			MarginRight(2)
	ActivePanelBoxStyle = PanelBoxStyle.BorderForeground(lipgloss.Color("205"))
	ResultBoxStyle      = lipgloss.NewStyle().
				Border(lipgloss.NormalBorder()).
				BorderForeground(lipgloss.Color("240")).
				Padding(0, 1)
)
