package timesheet

import (
	"fmt"
	"sync"
	"time"
)

// ParseInterval turns a raw leave tuple into a typed interval for the
// given year. Returns ErrInvalidDate for unparseable dates and
// ErrInvalidRange when the start falls after the end.
func ParseInterval(raw RawEntry, year int) (LeaveInterval, error) {
	start, err := ParseDayMonth(raw.Start, year)
	if err != nil {
		return LeaveInterval{}, err
	}

	end, err := ParseDayMonth(raw.End, year)
	if err != nil {
		return LeaveInterval{}, err
	}

	leaveType, err := ParseLeaveType(raw.Type)
	if err != nil {
		return LeaveInterval{}, err
	}

	return NewInterval(start, end, leaveType)
}

func NewInterval(start, end time.Time, leaveType LeaveType) (LeaveInterval, error) {
	start, end = normalize(start), normalize(end)
	if start.After(end) {
		return LeaveInterval{}, fmt.Errorf("%w: %s > %s",
			ErrInvalidRange, start.Format(dayMonthLayout), end.Format(dayMonthLayout))
	}

	return LeaveInterval{Start: start, End: end, Type: leaveType}, nil
}

// Overlaps uses the closed-interval intersection test: two inclusive
// day ranges overlap when each starts no later than the other ends.
func Overlaps(a, b LeaveInterval) bool {
	return !a.Start.After(b.End) && !a.End.Before(b.Start)
}

// CheckOverlap rejects a candidate that intersects any accepted
// interval. First interval wins: the candidate is refused outright,
// never merged or split.
func CheckOverlap(candidate LeaveInterval, existing []LeaveInterval) error {
	for _, accepted := range existing {
		if Overlaps(candidate, accepted) {
			return &OverlapError{Candidate: candidate, Existing: accepted}
		}
	}
	return nil
}

// SessionKey scopes an accepted leave set to one user and month.
type SessionKey struct {
	UserID int64
	Month  time.Month
	Year   int
}

// Session owns the accepted leave intervals for one (user, month) pair
// until they are handed to the aggregator as immutable input.
type Session struct {
	key      SessionKey
	accepted []LeaveInterval
}

func NewSession(key SessionKey) *Session {
	return &Session{key: key}
}

// Accept validates the candidate against the session's month and the
// already accepted set. Cross-month spans are truncated to the active
// month before storage; rejection leaves accepted state untouched.
func (s *Session) Accept(candidate LeaveInterval) error {
	clipped, ok := clipToMonth(candidate, s.key.Month, s.key.Year)
	if !ok {
		return fmt.Errorf("%w: %s is outside %s %d",
			ErrInvalidDate, candidate, s.key.Month, s.key.Year)
	}

	if err := CheckOverlap(clipped, s.accepted); err != nil {
		return err
	}

	s.accepted = append(s.accepted, clipped)
	return nil
}

// Intervals returns a copy of the accepted set.
func (s *Session) Intervals() []LeaveInterval {
	out := make([]LeaveInterval, len(s.accepted))
	copy(out, s.accepted)
	return out
}

func (s *Session) Clear() {
	s.accepted = nil
}

func clipToMonth(li LeaveInterval, month time.Month, year int) (LeaveInterval, bool) {
	first, last := MonthSpan(month, year)
	if li.End.Before(first) || li.Start.After(last) {
		return LeaveInterval{}, false
	}

	if li.Start.Before(first) {
		li.Start = first
	}
	if li.End.After(last) {
		li.End = last
	}
	return li, true
}

// SessionStore hands out sessions keyed by (user, month, year). State
// is explicit and injected; nothing here is read from package globals.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[SessionKey]*Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[SessionKey]*Session)}
}

// Session returns the existing session for the key or creates one.
// The second result reports whether the session already existed.
func (st *SessionStore) Session(key SessionKey) (*Session, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()

	if s, ok := st.sessions[key]; ok {
		return s, true
	}

	s := NewSession(key)
	st.sessions[key] = s
	return s, false
}

func (st *SessionStore) Drop(key SessionKey) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, key)
}
