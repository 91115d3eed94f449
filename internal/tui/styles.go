package tui

import (
	"github.com/MKhiriev/go-state-sync/models"
	"github.com/charmbracelet/lipgloss"
)

var (
	appStyle        = lipgloss.NewStyle().Padding(1, 2)
	titleStyle      = lipgloss.NewStyle().Bold(true)
	helpStyle       = lipgloss.NewStyle().Faint(true)
	errorStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	overlayBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 2)

	onlineStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	offlineStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
)

var statusColors = map[models.SyncStatus]lipgloss.Color{
	models.Synced:        lipgloss.Color("10"),
	models.LocalPending:  lipgloss.Color("12"),
	models.RemotePending: lipgloss.Color("12"),
	models.Syncing:       lipgloss.Color("14"),
	models.Conflict:      lipgloss.Color("13"),
	models.SyncFailed:    lipgloss.Color("9"),
}

func statusStyle(status models.SyncStatus) lipgloss.Style {
	color, ok := statusColors[status]
	if !ok {
		return helpStyle
	}
	return lipgloss.NewStyle().Foreground(color)
}
