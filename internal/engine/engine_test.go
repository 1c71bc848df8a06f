package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"classboard/internal/storage"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	ctx := context.Background()

	store, err := storage.OpenFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	svc, err := NewService(ctx, store)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func addTask(t *testing.T, svc *Service, task storage.Task) storage.Task {
	t.Helper()
	svc.StopEditing()
	saved, err := svc.UpsertTask(context.Background(), task)
	if err != nil {
		t.Fatalf("upsert task: %v", err)
	}
	return saved
}

func TestUpsertTaskAppendsWithGeneratedID(t *testing.T) {
	svc := newTestService(t)

	saved := addTask(t, svc, storage.Task{
		Title:    "Draft slides",
		Assignee: "Alice",
		DueDate:  "2024-05-01",
		Priority: "high",
		Status:   "todo",
	})

	if saved.ID == "" {
		t.Fatalf("expected generated id")
	}
	if len(svc.Tasks()) != 1 {
		t.Fatalf("tasks len=%d, want 1", len(svc.Tasks()))
	}

	inLane := 0
	for _, task := range svc.Tasks() {
		if task.Status == string(StatusTodo) {
			inLane++
			if task.Title != "Draft slides" || task.Assignee != "Alice" {
				t.Fatalf("unexpected card in todo lane: %+v", task)
			}
		}
	}
	if inLane != 1 {
		t.Fatalf("todo lane has %d cards, want 1", inLane)
	}
}

func TestUpsertTaskEditPreservesIDAndOrder(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	first := addTask(t, svc, storage.Task{Title: "first", Assignee: "A", DueDate: "2024-01-01", Status: "todo"})
	second := addTask(t, svc, storage.Task{Title: "second", Assignee: "B", DueDate: "2024-01-02", Status: "todo"})
	third := addTask(t, svc, storage.Task{Title: "third", Assignee: "C", DueDate: "2024-01-03", Status: "todo"})

	svc.StartEditing(second.ID)
	edited, err := svc.UpsertTask(ctx, storage.Task{Title: "second v2", Assignee: "B", DueDate: "2024-01-02", Status: "inprogress"})
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	if edited.ID != second.ID {
		t.Fatalf("edit changed id: %s → %s", second.ID, edited.ID)
	}
	if svc.CurrentEditingID() != "" {
		t.Fatalf("editing marker not cleared")
	}

	tasks := svc.Tasks()
	if len(tasks) != 3 {
		t.Fatalf("tasks len=%d, want 3", len(tasks))
	}
	wantOrder := []string{first.ID, second.ID, third.ID}
	for i, id := range wantOrder {
		if tasks[i].ID != id {
			t.Fatalf("order broken at %d: got %s, want %s", i, tasks[i].ID, id)
		}
	}
	if tasks[1].Title != "second v2" || tasks[1].Status != "inprogress" {
		t.Fatalf("edit not applied: %+v", tasks[1])
	}
}

func TestUpsertEditMissingRecordFails(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	svc.StartEditing("task-404")
	_, err := svc.UpsertTask(ctx, storage.Task{Title: "ghost", Assignee: "A", DueDate: "2024-01-01"})
	if err == nil {
		t.Fatalf("expected error editing missing record")
	}
	if _, ok := err.(MissingRecordError); !ok {
		t.Fatalf("got %T, want MissingRecordError", err)
	}
}

func TestDeleteRemovesExactlyOne(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	a := addTask(t, svc, storage.Task{Title: "a", Assignee: "A", DueDate: "2024-01-01", Status: "todo"})
	b := addTask(t, svc, storage.Task{Title: "b", Assignee: "B", DueDate: "2024-01-02", Status: "todo"})

	removed, err := svc.DeleteTask(ctx, a.ID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if !removed {
		t.Fatalf("expected removal")
	}
	if len(svc.Tasks()) != 1 || svc.Tasks()[0].ID != b.ID {
		t.Fatalf("wrong survivor: %+v", svc.Tasks())
	}

	// Unknown id is a no-op.
	removed, err = svc.DeleteTask(ctx, "task-404")
	if err != nil {
		t.Fatalf("delete missing: %v", err)
	}
	if removed {
		t.Fatalf("deleting missing id reported removal")
	}
	if len(svc.Tasks()) != 1 {
		t.Fatalf("no-op delete changed collection")
	}
}

func TestDeleteClosesOpenEdit(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	a := addTask(t, svc, storage.Task{Title: "a", Assignee: "A", DueDate: "2024-01-01"})
	svc.StartEditing(a.ID)

	if _, err := svc.DeleteTask(ctx, a.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if svc.CurrentEditingID() != "" {
		t.Fatalf("editing marker survived delete of its record")
	}
}

func TestMoveTaskStatus(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	a := addTask(t, svc, storage.Task{Title: "a", Assignee: "A", DueDate: "2024-01-01", Status: "todo"})

	if err := svc.MoveTaskStatus(ctx, a.ID, StatusDone); err != nil {
		t.Fatalf("move: %v", err)
	}
	if got := svc.FindTask(a.ID).Status; got != "done" {
		t.Fatalf("status=%q, want done", got)
	}

	// Same-lane move is a no-op, not an error.
	if err := svc.MoveTaskStatus(ctx, a.ID, StatusDone); err != nil {
		t.Fatalf("no-op move: %v", err)
	}

	if err := svc.MoveTaskStatus(ctx, "task-404", StatusTodo); err == nil {
		t.Fatalf("expected error moving missing task")
	}
	if err := svc.MoveTaskStatus(ctx, a.ID, Status("later")); err == nil {
		t.Fatalf("expected error for invalid status")
	}
}

// flakyStore fails every Save while failing is set, for exercising persist
// error paths.
type flakyStore struct {
	storage.Store
	failing bool
}

func (s *flakyStore) Save(ctx context.Context, key string, value []byte) error {
	if s.failing {
		return errors.New("disk full")
	}
	return s.Store.Save(ctx, key, value)
}

func TestFailedPersistKeepsEditOpen(t *testing.T) {
	ctx := context.Background()
	inner, err := storage.OpenFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	store := &flakyStore{Store: inner}
	svc, err := NewService(ctx, store)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	task, err := svc.UpsertTask(ctx, storage.Task{Title: "v1", Assignee: "A", DueDate: "2024-01-01", Status: "todo"})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	store.failing = true
	svc.StartEditing(task.ID)
	if _, err := svc.UpsertTask(ctx, storage.Task{Title: "v2", Assignee: "A", DueDate: "2024-01-01", Status: "todo"}); err == nil {
		t.Fatalf("expected persist failure")
	}
	if svc.CurrentEditingID() != task.ID {
		t.Fatalf("failed persist cleared the editing marker")
	}
	if got := svc.FindTask(task.ID).Title; got != "v1" {
		t.Fatalf("failed persist committed the edit: title=%q", got)
	}

	// Retrying once the store recovers replaces the record instead of
	// appending a duplicate.
	store.failing = false
	edited, err := svc.UpsertTask(ctx, storage.Task{Title: "v2", Assignee: "A", DueDate: "2024-01-01", Status: "todo"})
	if err != nil {
		t.Fatalf("retry: %v", err)
	}
	if edited.ID != task.ID {
		t.Fatalf("retry created a new record: %s", edited.ID)
	}
	if len(svc.Tasks()) != 1 {
		t.Fatalf("tasks len=%d after retry, want 1", len(svc.Tasks()))
	}
}

func TestFailedPersistRollsBackAppend(t *testing.T) {
	ctx := context.Background()
	inner, err := storage.OpenFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	store := &flakyStore{Store: inner, failing: true}
	svc, err := NewService(ctx, store)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	svc.StopEditing()
	if _, err := svc.UpsertPoint(ctx, storage.PointEntry{Date: "d", Name: "Bob", Event: "e", Change: 4, Reason: "r", ConfirmedBy: "c"}); err == nil {
		t.Fatalf("expected persist failure")
	}
	if len(svc.Points()) != 0 {
		t.Fatalf("failed append left a record in memory: %+v", svc.Points())
	}

	store.failing = false
	if _, err := svc.UpsertPoint(ctx, storage.PointEntry{Date: "d", Name: "Bob", Event: "e", Change: 4, Reason: "r", ConfirmedBy: "c"}); err != nil {
		t.Fatalf("retry: %v", err)
	}
	if len(svc.Points()) != 1 {
		t.Fatalf("points len=%d after retry, want 1", len(svc.Points()))
	}
}

func TestGeneratedIDsUniqueWithinSession(t *testing.T) {
	svc := newTestService(t)
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	seen := map[string]bool{}
	for i := 0; i < 5; i++ {
		saved := addTask(t, svc, storage.Task{Title: "t", Assignee: "A", DueDate: "2024-01-01"})
		if seen[saved.ID] {
			t.Fatalf("duplicate id %s", saved.ID)
		}
		seen[saved.ID] = true
	}
}

func TestPersistenceRoundTrip(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	store, err := storage.OpenFileStore(dir)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	svc, err := NewService(ctx, store)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	task := addTask(t, svc, storage.Task{Title: "persisted", Assignee: "A", DueDate: "2024-01-01", Status: "done"})
	svc.StopEditing()
	logE, err := svc.UpsertLog(ctx, storage.LogEntry{Date: "2024-05-02", Assignee: "A", Category: "班级事务", Description: "x"})
	if err != nil {
		t.Fatalf("upsert log: %v", err)
	}
	svc.StopEditing()
	point, err := svc.UpsertPoint(ctx, storage.PointEntry{Date: "2024-05-02", Name: "Bob", Event: "e", Change: -2, Reason: "r", ConfirmedBy: "c"})
	if err != nil {
		t.Fatalf("upsert point: %v", err)
	}
	if _, err := svc.DeleteLog(ctx, "log-404"); err != nil {
		t.Fatalf("noop delete: %v", err)
	}

	// A fresh service over the same files sees identical records.
	store2, err := storage.OpenFileStore(dir)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	svc2, err := NewService(ctx, store2)
	if err != nil {
		t.Fatalf("reload service: %v", err)
	}

	if len(svc2.Tasks()) != 1 || svc2.Tasks()[0] != task {
		t.Fatalf("tasks did not round-trip: %+v", svc2.Tasks())
	}
	if len(svc2.Logs()) != 1 || svc2.Logs()[0] != logE {
		t.Fatalf("logs did not round-trip: %+v", svc2.Logs())
	}
	if len(svc2.Points()) != 1 || svc2.Points()[0] != point {
		t.Fatalf("points did not round-trip: %+v", svc2.Points())
	}
}
