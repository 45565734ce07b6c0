package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/irvinng98/New2Canada/internal/profile"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPutGet(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	want := profile.Profile{Location: "Toronto", Status: "PR", Gender: "F", Age: "29"}
	if err := s.Put(ctx, "sess-1", want); err != nil {
		t.Fatalf("Put error: %v", err)
	}

	got, err := s.Get(ctx, "sess-1")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got != want {
		t.Errorf("Get = %+v, want %+v", got, want)
	}
}

func TestGet_NotFound(t *testing.T) {
	s := openTestStore(t)

	_, err := s.Get(context.Background(), "missing")
	if !errors.Is(err, profile.ErrNotFound) {
		t.Errorf("err = %v, want profile.ErrNotFound", err)
	}
}

func TestPut_FullOverwrite(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.Put(ctx, "sess-1", profile.Profile{Location: "Toronto", Status: "PR", Gender: "F", Age: "29"}); err != nil {
		t.Fatalf("Put error: %v", err)
	}

	// Resubmission replaces everything; untouched fields do not survive.
	if err := s.Put(ctx, "sess-1", profile.Profile{Location: "Calgary"}); err != nil {
		t.Fatalf("Put error: %v", err)
	}

	got, err := s.Get(ctx, "sess-1")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got.Location != "Calgary" {
		t.Errorf("Location = %q, want Calgary", got.Location)
	}
	if got.Status != "" || got.Gender != "" || got.Age != "" {
		t.Errorf("old fields survived overwrite: %+v", got)
	}
}

func TestDelete(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.Put(ctx, "sess-1", profile.Profile{Location: "Toronto"}); err != nil {
		t.Fatalf("Put error: %v", err)
	}
	if err := s.Delete(ctx, "sess-1"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, err := s.Get(ctx, "sess-1"); !errors.Is(err, profile.ErrNotFound) {
		t.Errorf("profile still present after delete: err = %v", err)
	}

	// Deleting an absent session is a no-op.
	if err := s.Delete(ctx, "never-existed"); err != nil {
		t.Errorf("Delete of missing session errored: %v", err)
	}
}

func TestSessionsAreIsolated(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.Put(ctx, "a", profile.Profile{Location: "Toronto"}); err != nil {
		t.Fatalf("Put error: %v", err)
	}
	if err := s.Put(ctx, "b", profile.Profile{Location: "Montreal"}); err != nil {
		t.Fatalf("Put error: %v", err)
	}

	pa, err := s.Get(ctx, "a")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	pb, err := s.Get(ctx, "b")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if pa.Location != "Toronto" || pb.Location != "Montreal" {
		t.Errorf("sessions bled into each other: %+v / %+v", pa, pb)
	}
}
