package tui

import "charm.land/lipgloss/v2"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196")).
			PaddingRight(1)

	badgeStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("231")).
			Background(lipgloss.Color("28")).
			Padding(0, 1)

	tabStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("246")).Padding(0, 1)
	activeTabStyle = tabStyle.Bold(true).Foreground(lipgloss.Color("214")).Underline(true)

	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	priceStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("34"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))

	buttonStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("231")).
			Background(lipgloss.Color("124")).
			Padding(0, 2)

	detailStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("28")).
			Padding(0, 1)
)
