package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"classboard/internal/engine"
	"classboard/internal/render"
	"classboard/internal/storage"
	"classboard/internal/ui"
)

type view int

const (
	viewKanban view = iota
	viewLog
	viewSettings
)

type appModel struct {
	ctx context.Context
	svc *engine.Service

	width  int
	height int

	view view

	// Kanban selection: lane index + card index within the lane. grabbed
	// means [ / ] move the selected card instead of the focus.
	laneIdx int
	cardIdx int
	grabbed bool

	logIdx   int
	pointIdx int

	// Settings gate. unlocked is session-scoped: once revealed, settings stay
	// open until the program exits.
	unlocked  bool
	gateInput textinput.Model
	gateErr   string

	form    *form
	confirm *confirmState

	lastLog string
}

func newAppModel(ctx context.Context, svc *engine.Service) appModel {
	gi := textinput.New()
	gi.Placeholder = "password"
	gi.EchoMode = textinput.EchoPassword
	gi.CharLimit = 64
	gi.Width = 24

	return appModel{
		ctx:       ctx,
		svc:       svc,
		gateInput: gi,
		lastLog:   "Loaded.",
	}
}

func (m appModel) Init() tea.Cmd {
	return nil
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		if m.confirm != nil {
			return m.updateConfirm(msg)
		}
		if m.form != nil {
			return m.updateForm(msg)
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// While the gate input has focus it owns every printable key, otherwise
	// passwords containing nav digits could never be typed.
	if m.view == viewSettings && m.svc.HasPassword() && !m.unlocked {
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			m.view = viewKanban
			return m, nil
		}
		return m.updateGate(msg)
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "1":
		m.view = viewKanban
		return m, nil
	case "2":
		m.view = viewLog
		return m, nil
	case "3":
		return m.enterSettings()
	}

	switch m.view {
	case viewKanban:
		return m.updateKanban(msg)
	case viewLog:
		return m.updateLog(msg)
	case viewSettings:
		return m.updateSettings(msg)
	}
	return m, nil
}

// enterSettings re-arms the gate input every time the view is entered, so a
// previously typed attempt never lingers.
func (m appModel) enterSettings() (tea.Model, tea.Cmd) {
	m.view = viewSettings
	m.gateErr = ""
	if m.svc.HasPassword() && !m.unlocked {
		m.gateInput.SetValue("")
		m.gateInput.Focus()
		return m, textinput.Blink
	}
	return m, nil
}

func (m appModel) laneTasks(lane int) []storage.Task {
	status := engine.Lanes[lane]
	var out []storage.Task
	for _, t := range m.svc.Tasks() {
		if t.Status == string(status) {
			out = append(out, t)
		}
	}
	return out
}

func (m appModel) selectedTask() *storage.Task {
	cards := m.laneTasks(m.laneIdx)
	if m.cardIdx < 0 || m.cardIdx >= len(cards) {
		return nil
	}
	return m.svc.FindTask(cards[m.cardIdx].ID)
}

func (m *appModel) clampKanban() {
	if m.laneIdx < 0 {
		m.laneIdx = 0
	}
	if m.laneIdx >= len(engine.Lanes) {
		m.laneIdx = len(engine.Lanes) - 1
	}
	n := len(m.laneTasks(m.laneIdx))
	if m.cardIdx >= n {
		m.cardIdx = n - 1
	}
	if m.cardIdx < 0 {
		m.cardIdx = 0
	}
}

func (m appModel) updateKanban(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "left", "h":
		if m.laneIdx > 0 {
			m.laneIdx--
		}
		m.grabbed = false
		m.clampKanban()
	case "right", "l":
		if m.laneIdx < len(engine.Lanes)-1 {
			m.laneIdx++
		}
		m.grabbed = false
		m.clampKanban()
	case "up", "k":
		if m.cardIdx > 0 {
			m.cardIdx--
		}
	case "down", "j":
		if m.cardIdx < len(m.laneTasks(m.laneIdx))-1 {
			m.cardIdx++
		}
	case "m", " ":
		if m.selectedTask() != nil {
			m.grabbed = !m.grabbed
		}
	case "[":
		return m.moveSelected(-1)
	case "]":
		return m.moveSelected(1)
	case "a":
		m.openTaskForm("")
	case "enter":
		if t := m.selectedTask(); t != nil {
			m.openTaskForm(t.ID)
		}
	case "d":
		if t := m.selectedTask(); t != nil {
			m.confirm = &confirmState{
				kind:   entityTask,
				id:     t.ID,
				prompt: fmt.Sprintf("确定要删除此任务吗？(%s)", t.Title),
			}
		}
	case "p":
		if t := m.selectedTask(); t != nil && t.Status == string(engine.StatusDone) {
			prefill, err := m.svc.LinkTaskToPoints(t.ID)
			if err != nil {
				m.lastLog = err.Error()
				return m, nil
			}
			m.openPointForm("", prefill)
		}
	case "g":
		if t := m.selectedTask(); t != nil && t.Status == string(engine.StatusDone) {
			prefill, err := m.svc.LinkTaskToLog(t.ID)
			if err != nil {
				m.lastLog = err.Error()
				return m, nil
			}
			m.openLogForm("", prefill)
		}
	}
	return m, nil
}

// moveSelected is the drag-and-drop analogue: shift the grabbed card one lane
// left or right. Landing on the same lane is a no-op in the engine.
func (m appModel) moveSelected(dir int) (tea.Model, tea.Cmd) {
	if !m.grabbed {
		return m, nil
	}
	t := m.selectedTask()
	if t == nil {
		return m, nil
	}
	target := m.laneIdx + dir
	if target < 0 || target >= len(engine.Lanes) {
		return m, nil
	}
	if err := m.svc.MoveTaskStatus(m.ctx, t.ID, engine.Lanes[target]); err != nil {
		m.lastLog = "Move failed: " + err.Error()
		return m, nil
	}
	m.laneIdx = target
	m.cardIdx = len(m.laneTasks(target)) - 1
	m.lastLog = fmt.Sprintf("Moved %q to %s.", t.Title, engine.Lanes[target])
	return m, nil
}

func (m appModel) updateLog(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	logs := m.svc.Logs()
	switch msg.String() {
	case "up", "k":
		if m.logIdx > 0 {
			m.logIdx--
		}
	case "down", "j":
		if m.logIdx < len(logs)-1 {
			m.logIdx++
		}
	case "a":
		m.openLogForm("", engine.LogPrefill{})
	case "enter":
		if m.logIdx >= 0 && m.logIdx < len(logs) {
			m.openLogForm(logs[m.logIdx].ID, engine.LogPrefill{})
		}
	case "d":
		if m.logIdx >= 0 && m.logIdx < len(logs) {
			m.confirm = &confirmState{
				kind:   entityLog,
				id:     logs[m.logIdx].ID,
				prompt: "确定要删除此条日志吗？",
			}
		}
	case "p":
		if m.logIdx >= 0 && m.logIdx < len(logs) {
			prefill, err := m.svc.LinkLogToPoints(logs[m.logIdx].ID)
			if err != nil {
				m.lastLog = err.Error()
				return m, nil
			}
			m.openPointForm("", prefill)
		}
	}
	return m, nil
}

func (m appModel) updateSettings(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	points := m.svc.Points()
	switch msg.String() {
	case "up", "k":
		if m.pointIdx > 0 {
			m.pointIdx--
		}
	case "down", "j":
		if m.pointIdx < len(points)-1 {
			m.pointIdx++
		}
	case "a":
		m.openPointForm("", engine.PointPrefill{})
	case "enter":
		if m.pointIdx >= 0 && m.pointIdx < len(points) {
			m.openPointForm(points[m.pointIdx].ID, engine.PointPrefill{})
		}
	case "d":
		if m.pointIdx >= 0 && m.pointIdx < len(points) {
			m.confirm = &confirmState{
				kind:   entityPoint,
				id:     points[m.pointIdx].ID,
				prompt: "确定要删除此条积分记录吗？",
			}
		}
	case "s":
		m.openPasswordForm()
	}
	return m, nil
}

func (m appModel) updateGate(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		if m.svc.CheckPassword(m.gateInput.Value()) {
			m.unlocked = true
			m.gateErr = ""
			m.gateInput.SetValue("")
			m.lastLog = "Settings unlocked."
		} else {
			m.gateErr = "密码错误，请重试。"
		}
		return m, nil
	default:
		var cmd tea.Cmd
		m.gateInput, cmd = m.gateInput.Update(msg)
		return m, cmd
	}
}

func (m appModel) View() string {
	header := m.renderNav()
	var body string

	switch {
	case m.form != nil:
		body = m.form.render()
	case m.confirm != nil:
		body = m.confirm.render()
	default:
		switch m.view {
		case viewKanban:
			body = render.Kanban(m.svc.Tasks(), render.KanbanOptions{
				Width:    m.width,
				Selected: m.selectedTaskID(),
				Grabbed:  m.grabbed,
			})
			body += "\n" + ui.Muted.Render("a: add  enter: edit  d: delete  m: grab  [ ]: move  p/g: link (done)")
		case viewLog:
			body = render.LogTable(m.svc.Logs(), m.selectedLogID())
			body += "\n" + ui.Muted.Render("a: add  enter: edit  d: delete  p: link to points")
		case viewSettings:
			body = m.renderSettings()
		}
	}

	return header + "\n\n" + body + "\n" + m.lastLog + "\n"
}

func (m appModel) selectedTaskID() string {
	if t := m.selectedTask(); t != nil {
		return t.ID
	}
	return ""
}

func (m appModel) selectedLogID() string {
	logs := m.svc.Logs()
	if m.logIdx >= 0 && m.logIdx < len(logs) {
		return logs[m.logIdx].ID
	}
	return ""
}

func (m appModel) selectedPointID() string {
	points := m.svc.Points()
	if m.pointIdx >= 0 && m.pointIdx < len(points) {
		return points[m.pointIdx].ID
	}
	return ""
}

func (m appModel) renderNav() string {
	labels := []string{"1 任务看板", "2 工作日志", "3 设置"}
	active := int(m.view)
	parts := make([]string, len(labels))
	for i, l := range labels {
		if i == active {
			parts[i] = ui.SelectedRow.Render(" " + l + " ")
		} else {
			parts[i] = ui.Muted.Render(" " + l + " ")
		}
	}
	nav := strings.Join(parts, " ")
	if !m.svc.HasPassword() {
		nav += "  " + ui.Warn.Render("(请先设置密码)")
	}
	return ui.Heading(ui.IconBoard, "Classboard") + "  " + nav
}

func (m appModel) renderSettings() string {
	if m.svc.HasPassword() && !m.unlocked {
		lines := []string{
			ui.Heading(ui.IconLock, "设置已加密"),
			"",
			"密码: " + m.gateInput.View(),
		}
		if m.gateErr != "" {
			lines = append(lines, ui.Bad.Render(m.gateErr))
		}
		lines = append(lines, "", ui.Muted.Render("enter: unlock"))
		return strings.Join(lines, "\n")
	}

	var b strings.Builder
	b.WriteString(ui.Heading(ui.IconStar, "积分台账") + "\n\n")
	b.WriteString(render.PointsTable(m.svc.Points(), m.selectedPointID()))
	b.WriteString("\n" + ui.Muted.Render("a: add  enter: edit  d: delete  s: set password"))
	return b.String()
}
