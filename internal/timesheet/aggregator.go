package timesheet

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// ProfileSource is the injected profile lookup. Implementations return
// ErrUserNotFound (possibly wrapped) when the user is unknown.
type ProfileSource interface {
	Profile(ctx context.Context, userID int64) (UserProfile, error)
}

// Aggregator walks every day of a target month, classifies it against
// weekends, the holiday calendar and the accepted leave set, and
// accumulates category totals. It holds no mutable state between
// calls; a render is deterministic for fixed inputs.
type Aggregator struct {
	profiles ProfileSource
	holidays HolidayCalendar
	logger   *slog.Logger
}

func NewAggregator(profiles ProfileSource, holidays HolidayCalendar, logger *slog.Logger) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}

	return &Aggregator{
		profiles: profiles,
		holidays: holidays,
		logger:   logger,
	}
}

// Generate builds the full month report from raw leave tuples. Corrupt
// entries are logged and dropped; a month whose entries are all corrupt
// still renders, since the calendar and holiday data alone are a valid
// timesheet. UserNotFound and IncompleteProfile abort before any rows
// are produced.
func (a *Aggregator) Generate(ctx context.Context, userID int64, month time.Month, year int, entries []RawEntry) (Report, error) {
	profile, err := a.profiles.Profile(ctx, userID)
	if err != nil {
		return Report{}, fmt.Errorf("profile lookup for user %d: %w", userID, err)
	}

	if missing := profile.MissingFields(); len(missing) > 0 {
		return Report{}, &IncompleteProfileError{Missing: missing}
	}

	intervals := a.parseEntries(ctx, entries, month, year)
	return a.build(ctx, userID, profile, month, year, intervals), nil
}

// parseEntries applies the corrupt-entry degradation policy: a bad
// record costs only itself, never the whole render.
func (a *Aggregator) parseEntries(ctx context.Context, entries []RawEntry, month time.Month, year int) []LeaveInterval {
	var intervals []LeaveInterval
	for _, raw := range entries {
		interval, err := ParseInterval(raw, year)
		if err != nil {
			a.logger.WarnContext(ctx, "dropping corrupt leave entry",
				"start", raw.Start, "end", raw.End, "type", raw.Type, "err", err)
			continue
		}

		clipped, ok := clipToMonth(interval, month, year)
		if !ok {
			a.logger.WarnContext(ctx, "dropping leave entry outside target month",
				"interval", interval.String(), "month", month.String(), "year", year)
			continue
		}

		intervals = append(intervals, clipped)
	}
	return intervals
}

func (a *Aggregator) build(ctx context.Context, userID int64, profile UserProfile, month time.Month, year int, intervals []LeaveInterval) Report {
	leaveByDay := make(map[int]LeaveType)
	for _, li := range intervals {
		for d := li.Start.Day(); d <= li.End.Day(); d++ {
			leaveByDay[d] = li.Type
		}
	}

	report := Report{
		UserID:  userID,
		Month:   month,
		Year:    year,
		Profile: profile,
	}

	first, _ := MonthSpan(month, year)
	sn := 0
	for day := 1; day <= DaysIn(month, year); day++ {
		date := first.AddDate(0, 0, day-1)
		label, isHoliday := a.holidays.Label(date)
		leaveType, hasLeave := leaveByDay[day]

		rec, warning := classifyDay(dayContext{
			date:         date,
			weekend:      IsWeekend(date),
			holiday:      isHoliday,
			holidayLabel: label,
			hasLeave:     hasLeave,
			leaveType:    leaveType,
			fullDay:      profile.FullDayHours,
		})
		if warning != "" {
			a.logger.WarnContext(ctx, warning,
				"date", date.Format(dateCellLayout), "user", userID)
		}

		sn++
		rec.SN = sn

		report.Days = append(report.Days, rec)
		accumulate(&report.Totals, rec)
	}

	report.Columns = negotiateColumns(report.Totals)
	return report
}

func accumulate(t *Totals, rec DayRecord) {
	t.AtWork += rec.AtWork
	if rec.PublicHoliday {
		t.PublicHoliday += 1.0
	}
	t.Sick += rec.Sick
	t.Childcare += rec.Childcare
	t.Annual += rec.Annual
	t.NationalService += rec.NationalService
}

// negotiateColumns decides the active schema after classification.
// The National Service column exists only for months that used it.
func negotiateColumns(t Totals) []string {
	columns := []string{
		ColSN, ColDate, ColAtWork, ColPublicHoliday,
		ColSick, ColChildcare, ColAnnual,
	}
	if t.NationalService > 0 {
		columns = append(columns, ColNationalService)
	}
	return append(columns, ColRemarks)
}
