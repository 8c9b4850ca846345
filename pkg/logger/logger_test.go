package logger

import (
	"context"
	"testing"
)

func TestWithFieldAccumulates(t *testing.T) {
	t.Parallel()

	logg := New("info", "json")
	ctx := logg.WithRequestID(context.Background(), "req-1")
	ctx = logg.WithSessionID(ctx, "sess-1")
	ctx = logg.WithField(ctx, "submission_id", "sub-1")

	fields := fieldsFrom(ctx)
	if len(fields) != 3 {
		t.Fatalf("expected 3 fields, got %d", len(fields))
	}
	if fields["request_id"] != "req-1" || fields["session_id"] != "sess-1" {
		t.Fatalf("unexpected fields: %+v", fields)
	}
}

func TestWithFieldDoesNotMutateParent(t *testing.T) {
	t.Parallel()

	logg := New("debug", "console")
	parent := logg.WithField(context.Background(), "a", 1)
	_ = logg.WithField(parent, "b", 2)

	if got := fieldsFrom(parent); len(got) != 1 {
		t.Fatalf("parent context mutated: %+v", got)
	}
}

func TestNewFallsBackToInfoOnBadLevel(t *testing.T) {
	t.Parallel()

	logg := New("not-a-level", "json")
	if logg == nil {
		t.Fatal("expected logger")
	}
}
