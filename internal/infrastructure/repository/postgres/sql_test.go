package postgres

import (
	"database/sql"
	"testing"
	"time"
)

func TestIsNotFound(t *testing.T) {
	if !isNotFound(sql.ErrNoRows) {
		t.Fatalf("expected true for sql.ErrNoRows")
	}
	if isNotFound(fakeErr("pq: relation injury_histories does not exist")) {
		t.Fatalf("expected false for unrelated error")
	}
}

func TestNullStringToString(t *testing.T) {
	if got := nullStringToString(sql.NullString{String: "knee_acl", Valid: true}); got != "knee_acl" {
		t.Fatalf("expected knee_acl, got %q", got)
	}
	if got := nullStringToString(sql.NullString{}); got != "" {
		t.Fatalf("expected empty string for null, got %q", got)
	}
}

func TestNullTimeToTimePtr(t *testing.T) {
	at := time.Date(2024, 11, 10, 0, 0, 0, 0, time.UTC)
	got := nullTimeToTimePtr(sql.NullTime{Time: at, Valid: true})
	if got == nil || !got.Equal(at) {
		t.Fatalf("expected %v, got %v", at, got)
	}
	if nullTimeToTimePtr(sql.NullTime{}) != nil {
		t.Fatalf("expected nil for null time")
	}
}

func TestPlayerNameKey(t *testing.T) {
	if got := playerNameKey("  Marcus Vale "); got != "marcus vale" {
		t.Fatalf("unexpected key %q", got)
	}
}

type fakeErr string

func (e fakeErr) Error() string { return string(e) }
