package engine

// Linkage shortcuts seed one entity's form from another's fields. They never
// mutate anything themselves; the user still reviews and submits the form.

// LogPrefill seeds the work-log form.
type LogPrefill struct {
	Date        string
	Assignee    string
	Category    string
	Description string
}

// PointPrefill seeds the point-ledger form.
type PointPrefill struct {
	Date   string
	Name   string
	Event  string
	Reason string
}

// Fixed phrases embedded into prefilled fields, kept verbatim from the
// committee's original board.
const (
	linkageTaskDonePhrase  = "完成任务: "
	linkageKanbanPhrase    = "完成看板任务: "
	linkageWorklogPhrase   = "工作日志: "
	linkageDefaultCategory = "班级事务"
)

// LinkTaskToPoints builds the point prefill for a finished task.
func (s *Service) LinkTaskToPoints(taskID string) (PointPrefill, error) {
	t := s.FindTask(taskID)
	if t == nil {
		return PointPrefill{}, MissingRecordError{Kind: "task", ID: taskID}
	}
	return PointPrefill{
		Name:   t.Assignee,
		Event:  linkageTaskDonePhrase + t.Title,
		Reason: linkageTaskDonePhrase + t.Title,
	}, nil
}

// LinkTaskToLog builds the work-log prefill for a finished task.
func (s *Service) LinkTaskToLog(taskID string) (LogPrefill, error) {
	t := s.FindTask(taskID)
	if t == nil {
		return LogPrefill{}, MissingRecordError{Kind: "task", ID: taskID}
	}
	return LogPrefill{
		Assignee:    t.Assignee,
		Category:    linkageDefaultCategory,
		Description: linkageKanbanPhrase + t.Title,
	}, nil
}

// LinkLogToPoints builds the point prefill for a work-log entry.
func (s *Service) LinkLogToPoints(logID string) (PointPrefill, error) {
	l := s.FindLog(logID)
	if l == nil {
		return PointPrefill{}, MissingRecordError{Kind: "log", ID: logID}
	}
	return PointPrefill{
		Name:   l.Assignee,
		Event:  linkageWorklogPhrase + l.Category,
		Reason: l.Description,
	}, nil
}
