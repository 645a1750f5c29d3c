// Package ui holds the terminal theme and the interactive pieces of the
// dashboard: toasts and confirmation prompts.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	IconGoal       = "🎯"
	IconCheckpoint = "📍"
	IconBuddy      = "🤝"
	IconChart      = "📊"
	IconActivity   = "🕒"
	IconSparkle    = "✨"
	IconDone       = "✅"
	IconInfo       = "ℹ️"
	IconWarn       = "⚠️"
	IconError      = "🧨"
)

var (
	cPrimary = lipgloss.Color("63")  // blue
	cAccent  = lipgloss.Color("205") // magenta
	cGood    = lipgloss.Color("42")  // green
	cWarn    = lipgloss.Color("214") // orange
	cBad     = lipgloss.Color("196") // red
	cMuted   = lipgloss.Color("244") // gray
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	H2    = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Muted = lipgloss.NewStyle().Foreground(cMuted)
	Key   = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Good  = lipgloss.NewStyle().Bold(true).Foreground(cGood)
	Warn  = lipgloss.NewStyle().Bold(true).Foreground(cWarn)
	Bad   = lipgloss.NewStyle().Bold(true).Foreground(cBad)

	Panel = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(cMuted).Padding(0, 1)
)

func Heading(icon string, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return Title.Render(icon + title)
}

func LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", Key.Render(label+":"), value)
}

// StatusText colors a goal, checkpoint or buddy request status.
func StatusText(status string) string {
	switch strings.ToUpper(strings.TrimSpace(status)) {
	case "COMPLETED", "ACCEPTED":
		return Good.Render(status)
	case "ACTIVE", "IN_PROGRESS":
		return H2.Render(status)
	case "PENDING", "PAUSED":
		return Warn.Render(status)
	case "CANCELLED", "OVERDUE", "REJECTED":
		return Bad.Render(status)
	default:
		return Muted.Render(status)
	}
}

// Bar renders a horizontal bar of width cells scaled to percent, in the
// given hex color.
func Bar(percent float64, width int, color string) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := int(percent/100*float64(width) + 0.5)
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(strings.Repeat("█", filled)) +
		Muted.Render(strings.Repeat("░", width-filled))
}
