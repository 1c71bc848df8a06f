package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"classboard/internal/ui"
)

type entityKind int

const (
	entityTask entityKind = iota
	entityLog
	entityPoint
)

// confirmState is the yes/no gate in front of every delete. Declining leaves
// everything untouched.
type confirmState struct {
	kind   entityKind
	id     string
	prompt string
}

func (m appModel) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		c := m.confirm
		m.confirm = nil
		var removed bool
		var err error
		switch c.kind {
		case entityTask:
			removed, err = m.svc.DeleteTask(m.ctx, c.id)
		case entityLog:
			removed, err = m.svc.DeleteLog(m.ctx, c.id)
		case entityPoint:
			removed, err = m.svc.DeletePoint(m.ctx, c.id)
		}
		switch {
		case err != nil:
			m.lastLog = "Delete failed: " + err.Error()
		case removed:
			m.lastLog = "Deleted."
			m.clampKanban()
			if m.logIdx >= len(m.svc.Logs()) {
				m.logIdx = len(m.svc.Logs()) - 1
			}
			if m.logIdx < 0 {
				m.logIdx = 0
			}
			if m.pointIdx >= len(m.svc.Points()) {
				m.pointIdx = len(m.svc.Points()) - 1
			}
			if m.pointIdx < 0 {
				m.pointIdx = 0
			}
		default:
			m.lastLog = "Nothing to delete."
		}
		return m, nil
	case "n", "esc":
		m.confirm = nil
		m.lastLog = "Cancelled."
		return m, nil
	}
	return m, nil
}

func (c *confirmState) render() string {
	lines := []string{
		ui.Warn.Render(ui.IconWarn + " " + c.prompt),
		"",
		ui.Muted.Render("y: delete   n/esc: keep"),
	}
	return ui.Panel.Render(strings.Join(lines, "\n"))
}
