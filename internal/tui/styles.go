package tui

import (
	"github.com/charmbracelet/lipgloss"

	"serviq/internal/domain"
)

var (
	// Color palette
	colorPrimary = lipgloss.Color("#7C3AED")
	colorSuccess = lipgloss.Color("#10B981")
	colorWarning = lipgloss.Color("#F59E0B")
	colorDanger  = lipgloss.Color("#EF4444")
	colorInfo    = lipgloss.Color("#3B82F6")
	colorMuted   = lipgloss.Color("#6B7280")
	colorText    = lipgloss.Color("#F3F4F6")
	colorBorder  = lipgloss.Color("#4B5563")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			MarginBottom(1)

	crumbStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	activeCrumbStyle = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	infoStyle = lipgloss.NewStyle().
			Foreground(colorInfo)

	successStyle = lipgloss.NewStyle().
			Foreground(colorSuccess).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorDanger).
			Bold(true)

	selectedRowStyle = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)

	rowStyle = lipgloss.NewStyle().
			Foreground(colorText)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(1, 2)

	helpStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			MarginTop(1)

	helpKeyStyle = lipgloss.NewStyle().
			Foreground(colorPrimary)
)

var statusStyles = map[domain.OrderStatus]lipgloss.Style{
	domain.OrderStatusInProgress: lipgloss.NewStyle().Foreground(colorWarning),
	domain.OrderStatusCompleted:  lipgloss.NewStyle().Foreground(colorSuccess),
	domain.OrderStatusCancelled:  lipgloss.NewStyle().Foreground(colorDanger),
}

// FormatStatus returns a colored order status.
func FormatStatus(s domain.OrderStatus) string {
	if st, ok := statusStyles[s]; ok {
		return st.Render(string(s))
	}
	return mutedStyle.Render(string(s))
}

// FormatKey formats a help key
func FormatKey(key, description string) string {
	return helpKeyStyle.Render(key) + " " + mutedStyle.Render(description)
}
