package render

import (
	"strings"
	"testing"

	xansi "github.com/charmbracelet/x/ansi"

	"classboard/internal/storage"
)

func TestKanbanLaneMembership(t *testing.T) {
	tasks := []storage.Task{
		{ID: "task-1", Title: "Draft slides", Assignee: "Alice", DueDate: "2024-05-01", Priority: "high", Status: "todo"},
		{ID: "task-2", Title: "Book room", Assignee: "Bob", DueDate: "2024-05-03", Priority: "low", Status: "done"},
	}
	out := Kanban(tasks, KanbanOptions{})

	if !strings.Contains(out, "Draft slides") || !strings.Contains(out, "Book room") {
		t.Fatalf("missing cards:\n%s", out)
	}
	for _, lane := range []string{"Todo", "In Progress", "Done", "Cancelled"} {
		if !strings.Contains(out, lane) {
			t.Fatalf("missing lane %s:\n%s", lane, out)
		}
	}
}

func TestKanbanActionHintsOnlyWhenDone(t *testing.T) {
	for _, status := range []string{"todo", "inprogress", "done", "cancelled"} {
		out := Kanban([]storage.Task{
			{ID: "task-1", Title: "t", Assignee: "A", DueDate: "2024-01-01", Priority: "low", Status: status},
		}, KanbanOptions{})

		hasHints := strings.Contains(out, "记录积分") && strings.Contains(out, "生成日志")
		if status == "done" && !hasHints {
			t.Fatalf("done card missing linkage hints:\n%s", out)
		}
		if status != "done" && hasHints {
			t.Fatalf("%s card shows linkage hints:\n%s", status, out)
		}
	}
}

func TestKanbanIdempotent(t *testing.T) {
	tasks := []storage.Task{{ID: "task-1", Title: "t", Assignee: "A", DueDate: "d", Priority: "low", Status: "todo"}}
	opt := KanbanOptions{Selected: "task-1"}
	if Kanban(tasks, opt) != Kanban(tasks, opt) {
		t.Fatalf("render is not a pure function of its inputs")
	}
}

func TestLogTableLinkAffordance(t *testing.T) {
	withLink := LogTable([]storage.LogEntry{
		{ID: "log-1", Date: "2024-05-02", Assignee: "A", Category: "c", Description: "d", Link: "https://example.com"},
	}, "")
	if !strings.Contains(withLink, "查看") {
		t.Fatalf("link affordance missing:\n%s", withLink)
	}

	withoutLink := LogTable([]storage.LogEntry{
		{ID: "log-1", Date: "2024-05-02", Assignee: "A", Category: "c", Description: "d"},
	}, "")
	if strings.Contains(withoutLink, "查看") {
		t.Fatalf("link affordance shown for empty link:\n%s", withoutLink)
	}
}

func TestPointsTableTotalAndSign(t *testing.T) {
	out := PointsTable([]storage.PointEntry{
		{ID: "point-1", Date: "d", Name: "Bob", Event: "e", Change: -2, Reason: "r", ConfirmedBy: "c"},
		{ID: "point-2", Date: "d", Name: "Carol", Event: "e", Change: 5, Reason: "r", ConfirmedBy: "c"},
	}, "")

	if !strings.Contains(out, "+5") {
		t.Fatalf("positive change missing + prefix:\n%s", out)
	}
	if !strings.Contains(out, "-2") {
		t.Fatalf("negative change missing:\n%s", out)
	}
	if !strings.Contains(out, "3") {
		t.Fatalf("total missing:\n%s", out)
	}
}

func TestPadRightCountsDisplayCells(t *testing.T) {
	// CJK runes occupy two terminal cells each; padding by rune count would
	// leave this line 32 cells wide instead of 28.
	got := padRight("班级事务", 28)
	if w := xansi.StringWidth(got); w != 28 {
		t.Fatalf("padded width=%d cells, want 28", w)
	}

	styled := padRight(tableRow([]string{"2024-05-02", "李明", "班级事务"}), 40)
	if w := xansi.StringWidth(styled); w != 40 {
		t.Fatalf("styled padded width=%d cells, want 40", w)
	}
}

func TestTruncateCountsDisplayCells(t *testing.T) {
	got := truncate("完成看板任务记录积分生成日志", 8)
	if w := xansi.StringWidth(got); w > 8 {
		t.Fatalf("truncated width=%d cells, want <= 8", w)
	}
	if !strings.HasSuffix(got, "…") {
		t.Fatalf("missing ellipsis: %q", got)
	}

	if got := truncate("短", 8); got != "短" {
		t.Fatalf("short string mangled: %q", got)
	}
}

func TestKanbanLanesAlignWithWideRunes(t *testing.T) {
	tasks := []storage.Task{
		{ID: "task-1", Title: "班级事务安排", Assignee: "李明", DueDate: "2024-05-01", Priority: "high", Status: "todo"},
		{ID: "task-2", Title: "Book room", Assignee: "Bob", DueDate: "2024-05-03", Priority: "low", Status: "inprogress"},
	}
	out := Kanban(tasks, KanbanOptions{})

	// Every row lays its lanes on the same display-cell grid, so all full
	// rows must measure the same total width regardless of content.
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	want := xansi.StringWidth(lines[0])
	for i, line := range lines {
		if strings.TrimSpace(xansi.Strip(line)) == "" {
			continue
		}
		if w := xansi.StringWidth(line); w != want {
			t.Fatalf("row %d is %d cells wide, want %d:\n%s", i, w, want, out)
		}
	}
}

func TestFormatChange(t *testing.T) {
	cases := map[int]string{4: "+4", -2: "-2", 0: "0"}
	for in, want := range cases {
		if got := FormatChange(in); got != want {
			t.Fatalf("FormatChange(%d)=%q, want %q", in, got, want)
		}
	}
}
