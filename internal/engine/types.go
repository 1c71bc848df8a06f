package engine

// Status is a task's kanban lane.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "inprogress"
	StatusDone       Status = "done"
	StatusCancelled  Status = "cancelled"
)

// Lanes is the fixed board column order.
var Lanes = []Status{StatusTodo, StatusInProgress, StatusDone, StatusCancelled}

func (s Status) IsValid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone, StatusCancelled:
		return true
	default:
		return false
	}
}

// DefaultStatus is used when user input is missing/invalid.
const DefaultStatus = StatusTodo

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

const DefaultPriority = PriorityLow

// DefaultLogStatus is the preset status of a fresh work-log entry.
const DefaultLogStatus = "已完成"
