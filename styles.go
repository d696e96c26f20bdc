package main

import "github.com/charmbracelet/lipgloss"

var (
	subtle       = theme.TextMuted
	highlight    = theme.Accent
	panelBorder  = theme.Border
	accentPink   = theme.AccentPink
	accentCyan   = theme.AccentCyan
	accentOrange = theme.AccentOrange
	accentGreen  = theme.AccentGreen
	accentBlue   = theme.AccentBlue
	danger       = theme.Danger
	textStrong   = theme.TextStrong
	textOnAccent = theme.TextOnAccent
	selectionBg  = theme.SelectionBg
	selectionFg  = theme.SelectionFg

	titlePillStyle = lipgloss.NewStyle().
			Foreground(textOnAccent).
			Background(highlight).
			Padding(0, 1).
			Bold(true)

	metaPillStyle = lipgloss.NewStyle().
			Foreground(subtle).
			Padding(0, 1)

	metaAlertPillStyle = lipgloss.NewStyle().
				Background(accentPink).
				Foreground(textOnAccent).
				Padding(0, 1).
				Bold(true)

	pausedPillStyle = lipgloss.NewStyle().
			Background(accentOrange).
			Foreground(textOnAccent).
			Padding(0, 1).
			Bold(true)

	columnHeaderStyle = lipgloss.NewStyle().
				Foreground(subtle).
				Bold(true)

	sortColumnStyle = lipgloss.NewStyle().
			Foreground(highlight).
			Bold(true)

	groupHeaderStyle = lipgloss.NewStyle().
				Foreground(accentCyan).
				Bold(true)

	groupCountStyle = lipgloss.NewStyle().
			Foreground(subtle)

	selectedRowStyle = lipgloss.NewStyle().
				Foreground(selectionFg).
				Background(selectionBg).
				Bold(true)

	placeholderStyle = lipgloss.NewStyle().
				Foreground(subtle).
				Italic(true)

	helpHintStyle = lipgloss.NewStyle().
			Foreground(subtle)

	flashStyle = lipgloss.NewStyle().
			Foreground(accentGreen).
			Bold(true)

	overlayTitleStyle = lipgloss.NewStyle().
				Foreground(textStrong).
				Bold(true)

	overlayBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(panelBorder).
			Padding(0, 1)

	overlayKeyStyle = lipgloss.NewStyle().
			Foreground(accentCyan).
			Bold(true).
			Width(12)

	tableHeaderStyle = lipgloss.NewStyle().
				Foreground(subtle).
				Bold(true).
				Align(lipgloss.Left).
				Padding(0, 1)

	tableSelectedStyle = lipgloss.NewStyle().
				Foreground(selectionFg).
				Background(selectionBg).
				Padding(0, 1)
)

var statusColorMap = map[JobStatus]lipgloss.TerminalColor{
	StatusRunning:      accentGreen,
	StatusPending:      accentOrange,
	StatusDone:         accentBlue,
	StatusExited:       danger,
	StatusZombie:       accentPink,
	StatusUnknown:      accentCyan,
	StatusUnrecognized: theme.TextDim,
}

func statusColor(status JobStatus) lipgloss.TerminalColor {
	if c, ok := statusColorMap[status]; ok {
		return c
	}
	return theme.TextDim
}

func statusStyle(status JobStatus) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(statusColor(status))
}
