package storage

// Logical keys under which the board state is persisted. Each key maps to one
// JSON document, whatever the backend.
const (
	KeyTasks    = "tasks"
	KeyLogs     = "logs"
	KeyPoints   = "points"
	KeyPassword = "password"
)

// SchemaVersion is written into every collection envelope so the layout can
// evolve without guessing at old data.
const SchemaVersion = 1

type Task struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Assignee     string `json:"assignee"`
	DueDate      string `json:"dueDate"`
	Priority     string `json:"priority"`
	Status       string `json:"status"`
	CancelReason string `json:"cancelReason"`
	Attachments  string `json:"attachments"`
}

type LogEntry struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	Assignee    string `json:"assignee"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Link        string `json:"link"`
	Status      string `json:"status"`
	Notes       string `json:"notes"`
}

type PointEntry struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	Name        string `json:"name"`
	Event       string `json:"event"`
	Change      int    `json:"change"`
	Reason      string `json:"reason"`
	ConfirmedBy string `json:"confirmedBy"`
}
