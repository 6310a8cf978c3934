package timesheet

import (
	"errors"
	"testing"
	"time"
)

func mustInterval(t *testing.T, start, end string, leaveType LeaveType, year int) LeaveInterval {
	t.Helper()

	s, err := ParseDayMonth(start, year)
	if err != nil {
		t.Fatalf("bad start date %q: %v", start, err)
	}
	e, err := ParseDayMonth(end, year)
	if err != nil {
		t.Fatalf("bad end date %q: %v", end, err)
	}

	li, err := NewInterval(s, e, leaveType)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return li
}

func TestNewIntervalInvalidRange(t *testing.T) {
	start := time.Date(2025, time.February, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, time.February, 5, 0, 0, 0, 0, time.UTC)

	_, err := NewInterval(start, end, LeaveAnnual)
	if !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
}

func TestParseIntervalUnknownType(t *testing.T) {
	_, err := ParseInterval(RawEntry{Start: "05-February", End: "07-February", Type: "Garden Leave"}, 2025)
	if err == nil {
		t.Fatal("expected error for unknown leave type")
	}
}

func TestOverlapRejection(t *testing.T) {
	session := NewSession(SessionKey{UserID: 1, Month: time.February, Year: 2025})

	accepted := mustInterval(t, "05-February", "07-February", LeaveAnnual, 2025)
	if err := session.Accept(accepted); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	overlapping := mustInterval(t, "06-February", "10-February", LeaveSick, 2025)
	err := session.Accept(overlapping)

	var overlapErr *OverlapError
	if !errors.As(err, &overlapErr) {
		t.Fatalf("expected OverlapError, got %v", err)
	}
	if !overlapErr.Existing.Start.Equal(accepted.Start) || !overlapErr.Existing.End.Equal(accepted.End) {
		t.Fatalf("expected conflict with %s, got %s", accepted, overlapErr.Existing)
	}

	adjacent := mustInterval(t, "08-February", "10-February", LeaveSick, 2025)
	if err := session.Accept(adjacent); err != nil {
		t.Fatalf("expected adjacent interval to be accepted, got %v", err)
	}

	if got := len(session.Intervals()); got != 2 {
		t.Fatalf("expected 2 accepted intervals, got %d", got)
	}
}

func TestRejectionKeepsAcceptedState(t *testing.T) {
	session := NewSession(SessionKey{UserID: 1, Month: time.February, Year: 2025})

	first := mustInterval(t, "05-February", "07-February", LeaveAnnual, 2025)
	if err := session.Accept(first); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	before := session.Intervals()
	_ = session.Accept(mustInterval(t, "07-February", "07-February", LeaveSick, 2025))

	after := session.Intervals()
	if len(after) != len(before) {
		t.Fatalf("rejected candidate changed accepted state: %d -> %d", len(before), len(after))
	}
}

func TestSingleDayInterval(t *testing.T) {
	li := mustInterval(t, "12-February", "12-February", LeaveSick, 2025)
	if !li.Start.Equal(li.End) {
		t.Fatal("expected single-day interval with start == end")
	}
	if !Overlaps(li, li) {
		t.Fatal("expected single-day interval to overlap itself")
	}
}

func TestCrossMonthTruncation(t *testing.T) {
	session := NewSession(SessionKey{UserID: 1, Month: time.February, Year: 2025})

	spanning := mustInterval(t, "27-February", "05-March", LeaveAnnual, 2025)
	if err := session.Accept(spanning); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stored := session.Intervals()[0]
	if stored.End.Month() != time.February || stored.End.Day() != 28 {
		t.Fatalf("expected end clipped to 28-February, got %s", stored.End.Format("02-January"))
	}
}

func TestIntervalOutsideMonthRejected(t *testing.T) {
	session := NewSession(SessionKey{UserID: 1, Month: time.February, Year: 2025})

	outside := mustInterval(t, "05-March", "07-March", LeaveAnnual, 2025)
	if err := session.Accept(outside); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
}

func TestSessionStoreReturnsSameSession(t *testing.T) {
	store := NewSessionStore()
	key := SessionKey{UserID: 7, Month: time.February, Year: 2025}

	s1, existed := store.Session(key)
	if existed {
		t.Fatal("expected a fresh session")
	}

	s2, existed := store.Session(key)
	if !existed || s1 != s2 {
		t.Fatal("expected the same session for the same key")
	}

	store.Drop(key)
	_, existed = store.Session(key)
	if existed {
		t.Fatal("expected dropped session to be recreated")
	}
}
