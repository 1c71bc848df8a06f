package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"classboard/internal/engine"
	"classboard/internal/render"
	"classboard/internal/storage"
	"classboard/internal/ui"
)

type formKind int

const (
	formTask formKind = iota
	formLog
	formPoint
	formPassword
)

// formField is one labeled input. Fields with options are cycled with ←/→
// instead of typed into.
type formField struct {
	key      string
	label    string
	required bool
	input    textinput.Model
	options  []string
	optIdx   int
}

func (f *formField) value() string {
	if len(f.options) > 0 {
		return f.options[f.optIdx]
	}
	return f.input.Value()
}

func (f *formField) setValue(v string) {
	if len(f.options) > 0 {
		for i, o := range f.options {
			if o == v {
				f.optIdx = i
				return
			}
		}
		return
	}
	f.input.SetValue(v)
}

type form struct {
	kind   formKind
	title  string
	fields []formField
	focus  int
	err    string
}

func textField(key, label string, required bool, value string) formField {
	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 40
	ti.SetValue(value)
	return formField{key: key, label: label, required: required, input: ti}
}

func selectField(key, label string, options []string, value string) formField {
	f := formField{key: key, label: label, options: options}
	f.setValue(value)
	return f
}

func secretField(key, label string) formField {
	f := textField(key, label, true, "")
	f.input.EchoMode = textinput.EchoPassword
	return f
}

func today() string {
	return time.Now().Format("2006-01-02")
}

// resolve picks a field value with the form priority: existing record value,
// then prefill hint, then default.
func resolve(existing, prefill, fallback string) string {
	if existing != "" {
		return existing
	}
	if prefill != "" {
		return prefill
	}
	return fallback
}

func (m *appModel) openTaskForm(id string) {
	var t storage.Task
	title := "添加新任务"
	if id != "" {
		existing := m.svc.FindTask(id)
		if existing == nil {
			m.lastLog = "Task not found."
			return
		}
		t = *existing
		title = "编辑任务"
	}
	m.svc.StartEditing(id)

	statuses := make([]string, len(engine.Lanes))
	for i, s := range engine.Lanes {
		statuses[i] = string(s)
	}

	m.form = &form{
		kind:  formTask,
		title: title,
		fields: []formField{
			textField("title", "任务标题", true, t.Title),
			textField("description", "详情描述", false, t.Description),
			textField("assignee", "负责人", true, t.Assignee),
			textField("dueDate", "截止日期", true, t.DueDate),
			selectField("priority", "优先级", []string{
				string(engine.PriorityLow), string(engine.PriorityMedium), string(engine.PriorityHigh),
			}, resolve(t.Priority, "", string(engine.DefaultPriority))),
			selectField("status", "状态", statuses, resolve(t.Status, "", string(engine.DefaultStatus))),
			textField("cancelReason", "取消/搁置原因", false, t.CancelReason),
			textField("attachments", "关联资料/图片链接", false, t.Attachments),
		},
	}
	m.focusForm(0)
}

func (m *appModel) openLogForm(id string, prefill engine.LogPrefill) {
	var l storage.LogEntry
	title := "添加日志"
	if id != "" {
		existing := m.svc.FindLog(id)
		if existing == nil {
			m.lastLog = "Log entry not found."
			return
		}
		l = *existing
		title = "编辑日志"
	}
	m.svc.StartEditing(id)

	m.form = &form{
		kind:  formLog,
		title: title,
		fields: []formField{
			textField("date", "日期", true, resolve(l.Date, prefill.Date, today())),
			textField("assignee", "负责人", true, resolve(l.Assignee, prefill.Assignee, "")),
			textField("category", "事项类别", true, resolve(l.Category, prefill.Category, "")),
			textField("description", "内容简述", true, resolve(l.Description, prefill.Description, "")),
			textField("link", "关键链接/截图", false, l.Link),
			textField("status", "状态", false, resolve(l.Status, "", engine.DefaultLogStatus)),
			textField("notes", "备注", false, l.Notes),
		},
	}
	m.focusForm(0)
}

func (m *appModel) openPointForm(id string, prefill engine.PointPrefill) {
	var p storage.PointEntry
	var change string
	title := "添加积分"
	if id != "" {
		existing := m.svc.FindPoint(id)
		if existing == nil {
			m.lastLog = "Point entry not found."
			return
		}
		p = *existing
		change = render.FormatChange(p.Change)
		title = "编辑积分"
	}
	m.svc.StartEditing(id)

	m.form = &form{
		kind:  formPoint,
		title: title,
		fields: []formField{
			textField("date", "日期", true, resolve(p.Date, prefill.Date, today())),
			textField("name", "姓名", true, resolve(p.Name, prefill.Name, "")),
			textField("event", "事项", true, resolve(p.Event, prefill.Event, "")),
			textField("change", "积分变动 (如: 4, -2)", true, change),
			textField("reason", "事由", true, resolve(p.Reason, prefill.Reason, "")),
			textField("confirmedBy", "班委确认", true, p.ConfirmedBy),
		},
	}
	m.focusForm(0)
}

func (m *appModel) openPasswordForm() {
	m.form = &form{
		kind:  formPassword,
		title: "设置密码",
		fields: []formField{
			secretField("new", "新密码"),
			secretField("confirm", "确认密码"),
		},
	}
	m.focusForm(0)
}

// visibleFields hides the cancel-reason field unless the status field
// currently reads cancelled. This is the form's only reactive behavior.
func (f *form) visibleFields() []int {
	var out []int
	cancelled := false
	for i := range f.fields {
		if f.fields[i].key == "status" && f.fields[i].value() == string(engine.StatusCancelled) {
			cancelled = true
		}
	}
	for i := range f.fields {
		if f.fields[i].key == "cancelReason" && !cancelled {
			continue
		}
		out = append(out, i)
	}
	return out
}

func (m *appModel) focusForm(target int) {
	vis := m.form.visibleFields()
	if len(vis) == 0 {
		return
	}
	if target < 0 {
		target = len(vis) - 1
	}
	if target >= len(vis) {
		target = 0
	}
	m.form.focus = target
	for i := range m.form.fields {
		m.form.fields[i].input.Blur()
	}
	idx := vis[target]
	if len(m.form.fields[idx].options) == 0 {
		m.form.fields[idx].input.Focus()
	}
}

func (m appModel) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := m.form
	vis := f.visibleFields()
	idx := vis[f.focus]
	field := &f.fields[idx]

	switch msg.String() {
	case "esc":
		m.closeForm()
		m.lastLog = "Cancelled."
		return m, nil
	case "enter":
		return m.submitForm()
	case "tab", "down":
		m.focusForm(f.focus + 1)
		return m, nil
	case "shift+tab", "up":
		m.focusForm(f.focus - 1)
		return m, nil
	case "left":
		if len(field.options) > 0 {
			field.optIdx = (field.optIdx + len(field.options) - 1) % len(field.options)
			return m, nil
		}
	case "right":
		if len(field.options) > 0 {
			field.optIdx = (field.optIdx + 1) % len(field.options)
			return m, nil
		}
	}

	var cmd tea.Cmd
	field.input, cmd = field.input.Update(msg)
	return m, cmd
}

// closeForm tears the overlay down and resets the editing marker, whatever
// the close reason was.
func (m *appModel) closeForm() {
	m.svc.StopEditing()
	m.form = nil
}

func (f *form) fieldValue(key string) string {
	for i := range f.fields {
		if f.fields[i].key == key {
			return f.fields[i].value()
		}
	}
	return ""
}

func (f *form) missingRequired() string {
	for _, i := range f.visibleFields() {
		fld := &f.fields[i]
		if fld.required && strings.TrimSpace(fld.value()) == "" {
			return fld.label
		}
	}
	return ""
}

func (m appModel) submitForm() (tea.Model, tea.Cmd) {
	f := m.form

	if f.kind != formPassword {
		if label := f.missingRequired(); label != "" {
			f.err = label + " 不能为空"
			return m, nil
		}
	}

	switch f.kind {
	case formTask:
		t := storage.Task{
			Title:        f.fieldValue("title"),
			Description:  f.fieldValue("description"),
			Assignee:     f.fieldValue("assignee"),
			DueDate:      f.fieldValue("dueDate"),
			Priority:     f.fieldValue("priority"),
			Status:       f.fieldValue("status"),
			CancelReason: f.fieldValue("cancelReason"),
			Attachments:  f.fieldValue("attachments"),
		}
		saved, err := m.svc.UpsertTask(m.ctx, t)
		if err != nil {
			f.err = err.Error()
			return m, nil
		}
		m.form = nil
		m.lastLog = "Saved task " + saved.ID + "."
	case formLog:
		l := storage.LogEntry{
			Date:        f.fieldValue("date"),
			Assignee:    f.fieldValue("assignee"),
			Category:    f.fieldValue("category"),
			Description: f.fieldValue("description"),
			Link:        f.fieldValue("link"),
			Status:      f.fieldValue("status"),
			Notes:       f.fieldValue("notes"),
		}
		saved, err := m.svc.UpsertLog(m.ctx, l)
		if err != nil {
			f.err = err.Error()
			return m, nil
		}
		m.form = nil
		m.lastLog = "Saved log entry " + saved.ID + "."
	case formPoint:
		change, err := engine.ParseChange(f.fieldValue("change"))
		if err != nil {
			f.err = err.Error()
			return m, nil
		}
		p := storage.PointEntry{
			Date:        f.fieldValue("date"),
			Name:        f.fieldValue("name"),
			Event:       f.fieldValue("event"),
			Change:      change,
			Reason:      f.fieldValue("reason"),
			ConfirmedBy: f.fieldValue("confirmedBy"),
		}
		saved, err := m.svc.UpsertPoint(m.ctx, p)
		if err != nil {
			f.err = err.Error()
			return m, nil
		}
		m.form = nil
		m.lastLog = "Saved point entry " + saved.ID + "."
	case formPassword:
		err := m.svc.SetPassword(m.ctx, f.fieldValue("new"), f.fieldValue("confirm"))
		if err != nil {
			f.err = err.Error()
			return m, nil
		}
		m.form = nil
		m.lastLog = "密码设置成功！"
	}
	return m, nil
}

func (f *form) render() string {
	var lines []string
	lines = append(lines, ui.Title.Render(f.title), "")
	vis := f.visibleFields()
	for pos, i := range vis {
		fld := &f.fields[i]
		label := fld.label
		if fld.required {
			label += " *"
		}
		marker := "  "
		if pos == f.focus {
			marker = "> "
		}
		var value string
		if len(fld.options) > 0 {
			value = renderOptions(fld, pos == f.focus)
		} else {
			value = fld.input.View()
		}
		lines = append(lines, marker+ui.Key.Render(label)+"  "+value)
	}
	if f.err != "" {
		lines = append(lines, "", ui.Bad.Render(f.err))
	}
	lines = append(lines, "", ui.Muted.Render("tab/↑↓: field  ←→: choose  enter: save  esc: cancel"))

	return ui.Panel.Render(strings.Join(lines, "\n"))
}

func renderOptions(fld *formField, focused bool) string {
	parts := make([]string, len(fld.options))
	for i, o := range fld.options {
		if i == fld.optIdx {
			if focused {
				parts[i] = ui.SelectedRow.Render(" " + o + " ")
			} else {
				parts[i] = ui.Good.Render(o)
			}
		} else {
			parts[i] = ui.Muted.Render(o)
		}
	}
	return strings.Join(parts, " ")
}
