package render

import (
	"fmt"
	"strings"

	xansi "github.com/charmbracelet/x/ansi"

	"classboard/internal/engine"
	"classboard/internal/storage"
	"classboard/internal/ui"
)

// KanbanOptions controls board decoration. The zero value renders a plain
// snapshot, which is what the CLI prints.
type KanbanOptions struct {
	Width    int
	Selected string // card id to highlight
	Grabbed  bool   // highlighted card is being moved between lanes
}

var laneTitles = map[engine.Status]string{
	engine.StatusTodo:       "Todo",
	engine.StatusInProgress: "In Progress",
	engine.StatusDone:       "Done",
	engine.StatusCancelled:  "Cancelled",
}

// Kanban renders the four fixed lanes side by side. It is a total function of
// its inputs: every call rebuilds the whole board.
func Kanban(tasks []storage.Task, opt KanbanOptions) string {
	laneW := 28
	if opt.Width > 0 {
		w := opt.Width/len(engine.Lanes) - 2
		if w < 18 {
			w = 18
		}
		if w < laneW {
			laneW = w
		}
	}

	lanes := make([][]string, len(engine.Lanes))
	for i, status := range engine.Lanes {
		lines := []string{ui.H2.Render(laneTitles[status])}
		for _, t := range tasks {
			if t.Status != string(status) {
				continue
			}
			lines = append(lines, cardLines(t, laneW, opt)...)
		}
		lanes[i] = lines
	}

	height := 0
	for _, lane := range lanes {
		if len(lane) > height {
			height = len(lane)
		}
	}

	var b strings.Builder
	for row := 0; row < height; row++ {
		for i, lane := range lanes {
			line := ""
			if row < len(lane) {
				line = lane[row]
			}
			b.WriteString(padRight(line, laneW))
			if i < len(lanes)-1 {
				b.WriteString("  ")
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

func cardLines(t storage.Task, laneW int, opt KanbanOptions) []string {
	marker := "· "
	if t.ID == opt.Selected {
		marker = "> "
		if opt.Grabbed {
			marker = "≡ "
		}
	}
	title := marker + t.Title
	if t.ID == opt.Selected {
		title = ui.SelectedRow.Render(truncate(title, laneW))
	} else {
		title = truncate(title, laneW)
	}

	lines := []string{
		title,
		"  " + ui.Muted.Render(truncate(t.Assignee+" · "+t.DueDate, laneW-2)),
		"  " + ui.PriorityText(t.Priority),
	}
	// The linkage shortcuts only exist for finished work.
	if t.Status == string(engine.StatusDone) {
		lines = append(lines, "  "+ui.Muted.Render(fmt.Sprintf("%s 记录积分  %s 生成日志", ui.Key.Render("[p]"), ui.Key.Render("[g]"))))
	}
	lines = append(lines, "")
	return lines
}

// truncate and padRight cut and pad by terminal display cells, not runes:
// CJK text is two cells wide and styled lines carry ANSI escapes.
func truncate(s string, width int) string {
	if width <= 0 {
		return s
	}
	if xansi.StringWidth(s) <= width {
		return s
	}
	if width <= 1 {
		return xansi.Cut(s, 0, width)
	}
	return xansi.Cut(s, 0, width-1) + "…"
}

func padRight(s string, width int) string {
	if width <= 0 {
		return s
	}
	n := xansi.StringWidth(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}
