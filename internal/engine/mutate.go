package engine

import (
	"context"
	"fmt"

	"classboard/internal/storage"
)

// UpsertTask appends t as a new task when no edit is in progress, otherwise
// replaces the record under CurrentEditingID in place. The record's own ID
// field is ignored; identity comes from the editing marker. A failed persist
// rolls the collection back and leaves the marker set, so a retried submit
// still replaces instead of appending a duplicate.
func (s *Service) UpsertTask(ctx context.Context, t storage.Task) (storage.Task, error) {
	if !Status(t.Status).IsValid() {
		t.Status = string(DefaultStatus)
	}
	if !Priority(t.Priority).IsValid() {
		t.Priority = string(DefaultPriority)
	}

	if id := s.board.CurrentEditingID; id != "" {
		idx := -1
		for i := range s.board.Tasks {
			if s.board.Tasks[i].ID == id {
				idx = i
				break
			}
		}
		if idx < 0 {
			return storage.Task{}, MissingRecordError{Kind: "task", ID: id}
		}
		t.ID = id
		prev := s.board.Tasks[idx]
		s.board.Tasks[idx] = t
		if err := s.persistTasks(ctx); err != nil {
			s.board.Tasks[idx] = prev
			return storage.Task{}, err
		}
	} else {
		t.ID = s.newID("task", s.taskIDTaken)
		s.board.Tasks = append(s.board.Tasks, t)
		if err := s.persistTasks(ctx); err != nil {
			s.board.Tasks = s.board.Tasks[:len(s.board.Tasks)-1]
			return storage.Task{}, err
		}
	}
	s.StopEditing()
	return t, nil
}

func (s *Service) UpsertLog(ctx context.Context, l storage.LogEntry) (storage.LogEntry, error) {
	if id := s.board.CurrentEditingID; id != "" {
		idx := -1
		for i := range s.board.Logs {
			if s.board.Logs[i].ID == id {
				idx = i
				break
			}
		}
		if idx < 0 {
			return storage.LogEntry{}, MissingRecordError{Kind: "log", ID: id}
		}
		l.ID = id
		prev := s.board.Logs[idx]
		s.board.Logs[idx] = l
		if err := s.persistLogs(ctx); err != nil {
			s.board.Logs[idx] = prev
			return storage.LogEntry{}, err
		}
	} else {
		l.ID = s.newID("log", s.logIDTaken)
		s.board.Logs = append(s.board.Logs, l)
		if err := s.persistLogs(ctx); err != nil {
			s.board.Logs = s.board.Logs[:len(s.board.Logs)-1]
			return storage.LogEntry{}, err
		}
	}
	s.StopEditing()
	return l, nil
}

func (s *Service) UpsertPoint(ctx context.Context, p storage.PointEntry) (storage.PointEntry, error) {
	if id := s.board.CurrentEditingID; id != "" {
		idx := -1
		for i := range s.board.Points {
			if s.board.Points[i].ID == id {
				idx = i
				break
			}
		}
		if idx < 0 {
			return storage.PointEntry{}, MissingRecordError{Kind: "point", ID: id}
		}
		p.ID = id
		prev := s.board.Points[idx]
		s.board.Points[idx] = p
		if err := s.persistPoints(ctx); err != nil {
			s.board.Points[idx] = prev
			return storage.PointEntry{}, err
		}
	} else {
		p.ID = s.newID("point", s.pointIDTaken)
		s.board.Points = append(s.board.Points, p)
		if err := s.persistPoints(ctx); err != nil {
			s.board.Points = s.board.Points[:len(s.board.Points)-1]
			return storage.PointEntry{}, err
		}
	}
	s.StopEditing()
	return p, nil
}

// DeleteTask removes the task by id and reports whether anything was removed.
// Deleting an unknown id is a no-op. The caller is responsible for having
// confirmed the delete with the user first.
func (s *Service) DeleteTask(ctx context.Context, id string) (bool, error) {
	kept := s.board.Tasks[:0]
	removed := false
	for _, t := range s.board.Tasks {
		if t.ID == id {
			removed = true
			continue
		}
		kept = append(kept, t)
	}
	if !removed {
		return false, nil
	}
	s.board.Tasks = kept
	if s.board.CurrentEditingID == id {
		s.StopEditing()
	}
	return true, s.persistTasks(ctx)
}

func (s *Service) DeleteLog(ctx context.Context, id string) (bool, error) {
	kept := s.board.Logs[:0]
	removed := false
	for _, l := range s.board.Logs {
		if l.ID == id {
			removed = true
			continue
		}
		kept = append(kept, l)
	}
	if !removed {
		return false, nil
	}
	s.board.Logs = kept
	if s.board.CurrentEditingID == id {
		s.StopEditing()
	}
	return true, s.persistLogs(ctx)
}

func (s *Service) DeletePoint(ctx context.Context, id string) (bool, error) {
	kept := s.board.Points[:0]
	removed := false
	for _, p := range s.board.Points {
		if p.ID == id {
			removed = true
			continue
		}
		kept = append(kept, p)
	}
	if !removed {
		return false, nil
	}
	s.board.Points = kept
	if s.board.CurrentEditingID == id {
		s.StopEditing()
	}
	return true, s.persistPoints(ctx)
}

// MoveTaskStatus reassigns a task to another lane. Moving to the lane the
// task is already in is a no-op: no write, no error.
func (s *Service) MoveTaskStatus(ctx context.Context, id string, status Status) error {
	if !status.IsValid() {
		return fmt.Errorf("invalid status: %s", status)
	}
	t := s.FindTask(id)
	if t == nil {
		return MissingRecordError{Kind: "task", ID: id}
	}
	if t.Status == string(status) {
		return nil
	}
	t.Status = string(status)
	return s.persistTasks(ctx)
}
