package storage

import (
	"context"
	"errors"
	"time"

	"github.com/BalanceBalls/timesheet-generator/internal/timesheet"
)

var ErrUserNotFound = errors.New("user not found")

// User is the flat profile row as persisted.
type User struct {
	Id                  int64
	Name                string
	SkillLevel          string
	RoleSpecialization  string
	GroupSpecialization string
	Contractor          string
	PoRef               string
	PoDate              string
	Description         string
	ReportingOfficer    string
	FullDayHours        float64
	IsActive            bool
}

// Profile converts the stored row to the aggregator's input shape.
func (u User) Profile() timesheet.UserProfile {
	return timesheet.UserProfile{
		Name:                u.Name,
		SkillLevel:          u.SkillLevel,
		RoleSpecialization:  u.RoleSpecialization,
		GroupSpecialization: u.GroupSpecialization,
		Contractor:          u.Contractor,
		PoRef:               u.PoRef,
		PoDate:              u.PoDate,
		Description:         u.Description,
		ReportingOfficer:    u.ReportingOfficer,
		FullDayHours:        u.FullDayHours,
	}
}

type Holiday struct {
	Date  time.Time
	Label string
}

// LeaveEntry is an accepted leave tuple in the dialogue-layer wire
// format: dates as DD-Month text, the year kept alongside.
type LeaveEntry struct {
	UserId    int64
	Month     int
	Year      int
	StartDate string
	EndDate   string
	LeaveType string
}

func (e LeaveEntry) Raw() timesheet.RawEntry {
	return timesheet.RawEntry{Start: e.StartDate, End: e.EndDate, Type: e.LeaveType}
}

type Storage interface {
	Up(ctx context.Context) error

	User(ctx context.Context, userId int64) (User, error)
	UserExists(ctx context.Context, userId int64) bool
	AddUser(ctx context.Context, user User) error
	UpdateUser(ctx context.Context, user User) error
	RemoveUser(ctx context.Context, userId int64) error

	Holidays(ctx context.Context, year int) ([]Holiday, error)
	AddHoliday(ctx context.Context, holiday Holiday) error

	LeaveEntries(ctx context.Context, userId int64, month int, year int) ([]LeaveEntry, error)
	AddLeaveEntry(ctx context.Context, entry LeaveEntry) error
	ClearLeaveEntries(ctx context.Context, userId int64, month int, year int) error
}
