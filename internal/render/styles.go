package render

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title       lipgloss.Style
	header      lipgloss.Style
	section     lipgloss.Style
	sectionHead lipgloss.Style
	room        lipgloss.Style
	roomMuted   lipgloss.Style
	detail      lipgloss.Style
	selected    lipgloss.Style
	slot        lipgloss.Style
	slotActive  lipgloss.Style
	empty       lipgloss.Style
	success     lipgloss.Style
	failure     lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:       lipgloss.NewStyle().Bold(true),
		header:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		section:     lipgloss.NewStyle().MarginTop(1),
		sectionHead: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252")),
		room:        lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252")),
		roomMuted:   lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		detail:      lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		selected:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#A78BFA")),
		slot:        lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Padding(0, 1),
		slotActive:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#E6EAF2")).Background(lipgloss.Color("#7C3AED")).Padding(0, 1),
		empty:       lipgloss.NewStyle().Faint(true),
		success:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#22C55E")),
		failure:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#EF4444")),
	}
}
