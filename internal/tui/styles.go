// Package tui - виджет комментариев в терминале
package tui

import "github.com/charmbracelet/lipgloss"

var (
	accent      = lipgloss.Color("#8BC34A")
	muted       = lipgloss.Color("#6B7280")
	destructive = lipgloss.Color("#e53935")
	info        = lipgloss.Color("#2196F3")
)

// Styles - стили lipgloss для отрисовки
type Styles struct {
	Title    lipgloss.Style
	Section  lipgloss.Style
	Name     lipgloss.Style
	ID       lipgloss.Style
	Content  lipgloss.Style
	Selected lipgloss.Style
	PageInfo lipgloss.Style
	Label    lipgloss.Style
	Error    lipgloss.Style
	Status   lipgloss.Style
	Help     lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(accent),
		Section:  lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(muted).Padding(0, 1),
		Name:     lipgloss.NewStyle().Bold(true),
		ID:       lipgloss.NewStyle().Foreground(muted),
		Content:  lipgloss.NewStyle().PaddingLeft(2),
		Selected: lipgloss.NewStyle().Foreground(accent).Bold(true),
		PageInfo: lipgloss.NewStyle().Foreground(info),
		Label:    lipgloss.NewStyle().Foreground(muted).Width(9),
		Error:    lipgloss.NewStyle().Foreground(destructive),
		Status:   lipgloss.NewStyle().Foreground(muted).Italic(true),
		Help:     lipgloss.NewStyle().Foreground(muted),
	}
}
