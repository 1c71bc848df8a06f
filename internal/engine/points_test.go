package engine

import (
	"context"
	"testing"

	"classboard/internal/storage"
)

func addPoint(t *testing.T, svc *Service, p storage.PointEntry) storage.PointEntry {
	t.Helper()
	svc.StopEditing()
	saved, err := svc.UpsertPoint(context.Background(), p)
	if err != nil {
		t.Fatalf("upsert point: %v", err)
	}
	return saved
}

func TestTotalPoints(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if got := svc.TotalPoints(); got != 0 {
		t.Fatalf("empty total=%d, want 0", got)
	}

	addPoint(t, svc, storage.PointEntry{Date: "2024-05-02", Name: "Bob", Event: "e", Change: -2, Reason: "r", ConfirmedBy: "c"})
	addPoint(t, svc, storage.PointEntry{Date: "2024-05-03", Name: "Carol", Event: "e", Change: 5, Reason: "r", ConfirmedBy: "c"})
	if got := svc.TotalPoints(); got != 3 {
		t.Fatalf("total=%d, want 3", got)
	}

	zero := addPoint(t, svc, storage.PointEntry{Date: "2024-05-04", Name: "Dan", Event: "e", Change: 0, Reason: "r", ConfirmedBy: "c"})
	if got := svc.TotalPoints(); got != 3 {
		t.Fatalf("total with zero entry=%d, want 3", got)
	}

	// Total always reflects the current records, never a cache.
	if _, err := svc.DeletePoint(ctx, zero.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	points := svc.Points()
	svc.StartEditing(points[0].ID)
	if _, err := svc.UpsertPoint(ctx, storage.PointEntry{Date: "2024-05-02", Name: "Bob", Event: "e", Change: 10, Reason: "r", ConfirmedBy: "c"}); err != nil {
		t.Fatalf("edit: %v", err)
	}
	if got := svc.TotalPoints(); got != 15 {
		t.Fatalf("total after edit=%d, want 15", got)
	}
}

func TestParseChange(t *testing.T) {
	cases := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"4", 4, false},
		{"+4", 4, false},
		{"-2", -2, false},
		{" 0 ", 0, false},
		{"", 0, true},
		{"+", 0, true},
		{"abc", 0, true},
	}
	for _, c := range cases {
		got, err := ParseChange(c.in)
		if c.wantErr {
			if err == nil {
				t.Fatalf("ParseChange(%q): expected error", c.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseChange(%q): %v", c.in, err)
		}
		if got != c.want {
			t.Fatalf("ParseChange(%q)=%d, want %d", c.in, got, c.want)
		}
	}
}
