package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"classboard/internal/storage"
)

// Board is the in-memory mirror of everything persisted: the three record
// collections in insertion order, the settings password, and the id of the
// record currently open in an edit form (empty when none).
type Board struct {
	Tasks  []storage.Task
	Logs   []storage.LogEntry
	Points []storage.PointEntry

	Password         string
	CurrentEditingID string
}

// Service owns the Board and is the only mutation path to it. Every mutation
// persists the affected collection before returning.
type Service struct {
	store storage.Store
	board Board

	now func() time.Time
}

// NewService loads the board from the store. Absent or malformed collections
// come back empty rather than failing startup.
func NewService(ctx context.Context, store storage.Store) (*Service, error) {
	s := &Service{store: store, now: time.Now}

	raw, err := store.Load(ctx, storage.KeyTasks)
	if err != nil {
		return nil, err
	}
	s.board.Tasks = storage.DecodeRecords[storage.Task](raw)

	raw, err = store.Load(ctx, storage.KeyLogs)
	if err != nil {
		return nil, err
	}
	s.board.Logs = storage.DecodeRecords[storage.LogEntry](raw)

	raw, err = store.Load(ctx, storage.KeyPoints)
	if err != nil {
		return nil, err
	}
	s.board.Points = storage.DecodeRecords[storage.PointEntry](raw)

	raw, err = store.Load(ctx, storage.KeyPassword)
	if err != nil {
		return nil, err
	}
	if len(raw) > 0 {
		// Malformed password data degrades to "no password set".
		_ = json.Unmarshal(raw, &s.board.Password)
	}

	return s, nil
}

func (s *Service) Board() *Board { return &s.board }

func (s *Service) Tasks() []storage.Task        { return s.board.Tasks }
func (s *Service) Logs() []storage.LogEntry     { return s.board.Logs }
func (s *Service) Points() []storage.PointEntry { return s.board.Points }

func (s *Service) FindTask(id string) *storage.Task {
	for i := range s.board.Tasks {
		if s.board.Tasks[i].ID == id {
			return &s.board.Tasks[i]
		}
	}
	return nil
}

func (s *Service) FindLog(id string) *storage.LogEntry {
	for i := range s.board.Logs {
		if s.board.Logs[i].ID == id {
			return &s.board.Logs[i]
		}
	}
	return nil
}

func (s *Service) FindPoint(id string) *storage.PointEntry {
	for i := range s.board.Points {
		if s.board.Points[i].ID == id {
			return &s.board.Points[i]
		}
	}
	return nil
}

// StartEditing marks the record the open form refers to. An empty id means
// the form will create a new record on submit.
func (s *Service) StartEditing(id string) {
	s.board.CurrentEditingID = id
}

// StopEditing is called whenever a form closes, for any reason.
func (s *Service) StopEditing() {
	s.board.CurrentEditingID = ""
}

func (s *Service) CurrentEditingID() string { return s.board.CurrentEditingID }

func (s *Service) persistTasks(ctx context.Context) error {
	b, err := storage.EncodeRecords(s.board.Tasks)
	if err != nil {
		return err
	}
	return s.store.Save(ctx, storage.KeyTasks, b)
}

func (s *Service) persistLogs(ctx context.Context) error {
	b, err := storage.EncodeRecords(s.board.Logs)
	if err != nil {
		return err
	}
	return s.store.Save(ctx, storage.KeyLogs, b)
}

func (s *Service) persistPoints(ctx context.Context) error {
	b, err := storage.EncodeRecords(s.board.Points)
	if err != nil {
		return err
	}
	return s.store.Save(ctx, storage.KeyPoints, b)
}

// newID builds a timestamp-based record id, bumping the millisecond value on
// collision so ids stay unique within a session.
func (s *Service) newID(prefix string, taken func(string) bool) string {
	ms := s.now().UnixMilli()
	for {
		id := fmt.Sprintf("%s-%d", prefix, ms)
		if !taken(id) {
			return id
		}
		ms++
	}
}

func (s *Service) taskIDTaken(id string) bool  { return s.FindTask(id) != nil }
func (s *Service) logIDTaken(id string) bool   { return s.FindLog(id) != nil }
func (s *Service) pointIDTaken(id string) bool { return s.FindPoint(id) != nil }
