package render

import (
	"fmt"
	"strings"

	"classboard/internal/storage"
	"classboard/internal/ui"
)

// LogTable renders the work log, one row per entry. The link column shows a
// view affordance only when the entry actually carries a link.
func LogTable(logs []storage.LogEntry, selected string) string {
	var b strings.Builder
	b.WriteString(headerRow([]string{"Date", "Assignee", "Category", "Description", "Link", "Status", "Notes"}))
	if len(logs) == 0 {
		b.WriteString(ui.Muted.Render("(no log entries)") + "\n")
		return b.String()
	}
	for _, l := range logs {
		link := ""
		if l.Link != "" {
			link = "查看"
		}
		row := tableRow([]string{l.Date, l.Assignee, l.Category, l.Description, link, l.Status, l.Notes})
		if l.ID == selected {
			row = ui.SelectedRow.Render(row)
		}
		b.WriteString(row + "\n")
	}
	return b.String()
}

// PointsTable renders the ledger plus a running total. The total is summed
// fresh on every call so it can never go stale.
func PointsTable(points []storage.PointEntry, selected string) string {
	var b strings.Builder
	b.WriteString(headerRow([]string{"Date", "Name", "Event", "Change", "Reason", "Confirmed"}))
	total := 0
	for _, p := range points {
		total += p.Change
		row := tableRow([]string{p.Date, p.Name, p.Event, FormatChange(p.Change), p.Reason, p.ConfirmedBy})
		if p.ID == selected {
			row = ui.SelectedRow.Render(row)
		}
		b.WriteString(row + "\n")
	}
	if len(points) == 0 {
		b.WriteString(ui.Muted.Render("(no point entries)") + "\n")
	}
	b.WriteString("\n" + ui.LabelValue("Total points", ui.Gold.Render(fmt.Sprintf("%d", total))) + "\n")
	return b.String()
}

// FormatChange prints a signed change with an explicit "+" on gains.
func FormatChange(change int) string {
	if change > 0 {
		return fmt.Sprintf("+%d", change)
	}
	return fmt.Sprintf("%d", change)
}

var columnWidths = []int{10, 10, 14, 28, 6, 10, 14}

func headerRow(cols []string) string {
	return ui.H2.Render(tableRow(cols)) + "\n"
}

func tableRow(cols []string) string {
	parts := make([]string, len(cols))
	for i, c := range cols {
		w := 12
		if i < len(columnWidths) {
			w = columnWidths[i]
		}
		parts[i] = padRight(truncate(c, w), w)
	}
	return strings.Join(parts, "  ")
}
