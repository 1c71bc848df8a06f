package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Classboard theme (CLI + TUI).
// Kept intentionally small: reusable styles and a few emojis.

const (
	IconBoard  = "🗂️"
	IconLog    = "📘"
	IconStar   = "⭐"
	IconDone   = "✅"
	IconLock   = "🔒"
	IconUnlock = "🔓"
	IconWarn   = "⚠️"
	IconError  = "🧨"
	IconPlus   = "➕"
	IconTrash  = "🗑️"
)

var (
	cPrimary = lipgloss.Color("63")  // blue
	cAccent  = lipgloss.Color("205") // magenta
	cGood    = lipgloss.Color("42")  // green
	cWarn    = lipgloss.Color("214") // orange
	cBad     = lipgloss.Color("196") // red
	cMuted   = lipgloss.Color("244") // gray
	cGold    = lipgloss.Color("220") // gold
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	H2    = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Muted = lipgloss.NewStyle().Foreground(cMuted)
	Key   = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Good  = lipgloss.NewStyle().Bold(true).Foreground(cGood)
	Warn  = lipgloss.NewStyle().Bold(true).Foreground(cWarn)
	Bad   = lipgloss.NewStyle().Bold(true).Foreground(cBad)
	Gold  = lipgloss.NewStyle().Bold(true).Foreground(cGold)

	Panel       = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(cMuted).Padding(0, 1)
	SelectedRow = lipgloss.NewStyle().Bold(true).Foreground(cGold).Background(cPrimary)
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

func StatusText(status string) string {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "todo":
		return Warn.Render("todo")
	case "inprogress":
		return H2.Render("inprogress")
	case "done":
		return Good.Render("done")
	case "cancelled":
		return Muted.Render("cancelled")
	default:
		return Muted.Render(status)
	}
}

func PriorityText(priority string) string {
	switch strings.ToLower(strings.TrimSpace(priority)) {
	case "high":
		return Bad.Render("high")
	case "medium":
		return Warn.Render("medium")
	case "low":
		return Muted.Render("low")
	default:
		return Muted.Render(priority)
	}
}

// ChangeText renders a signed point change with an explicit "+" on gains.
func ChangeText(change int) string {
	if change > 0 {
		return Good.Render(fmt.Sprintf("+%d", change))
	}
	if change < 0 {
		return Bad.Render(fmt.Sprintf("%d", change))
	}
	return Muted.Render("0")
}
