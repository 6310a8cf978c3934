package timesheet

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProfiles map[int64]UserProfile

func (s stubProfiles) Profile(_ context.Context, userID int64) (UserProfile, error) {
	p, ok := s[userID]
	if !ok {
		return UserProfile{}, ErrUserNotFound
	}
	return p, nil
}

func testProfile() UserProfile {
	return UserProfile{
		Name:                "Alex Tan",
		SkillLevel:          "Professional",
		RoleSpecialization:  "DevOps Engineer - II",
		GroupSpecialization: "Platform Engineering",
		Contractor:          "PALO IT",
		PoRef:               "GVT000ABC1234",
		PoDate:              "1 May 24 - 30",
		Description:         "Agile Co-Development Services",
		ReportingOfficer:    "John Doe",
		FullDayHours:        8.5,
	}
}

func newTestAggregator(profiles ProfileSource, holidays HolidayCalendar) *Aggregator {
	return NewAggregator(profiles, holidays, slog.Default())
}

func TestGenerateFebruary2025(t *testing.T) {
	agg := newTestAggregator(stubProfiles{1: testProfile()}, NewHolidayCalendar())

	entries := []RawEntry{
		{Start: "05-February", End: "07-February", Type: "Annual Leave"},
		{Start: "12-February", End: "12-February", Type: "Sick Leave"},
	}

	report, err := agg.Generate(context.Background(), 1, time.February, 2025, entries)
	require.NoError(t, err)
	require.Len(t, report.Days, 28)

	// February 2025 has 8 weekend days; 4 of the 20 working days are on leave.
	assert.Equal(t, 3.0, report.Totals.Annual)
	assert.Equal(t, 1.0, report.Totals.Sick)
	assert.Equal(t, 16*8.5, report.Totals.AtWork)
	assert.Equal(t, 0.0, report.Totals.PublicHoliday)
	assert.Equal(t, 0.0, report.Totals.NationalService)
}

func TestMutualExclusivityAndTotalsConsistency(t *testing.T) {
	holidays := NewHolidayCalendar()
	holidays.Add(time.Date(2025, time.February, 4, 0, 0, 0, 0, time.UTC), "Chinese New Year")

	agg := newTestAggregator(stubProfiles{1: testProfile()}, holidays)

	entries := []RawEntry{
		{Start: "03-February", End: "06-February", Type: "Annual Leave"},
		{Start: "10-February", End: "10-February", Type: "Sick Leave"},
		{Start: "11-February", End: "11-February", Type: "Childcare Leave"},
		{Start: "13-February", End: "14-February", Type: "NS Leave"},
		{Start: "08-February", End: "08-February", Type: "Weekend Efforts"},
	}

	report, err := agg.Generate(context.Background(), 1, time.February, 2025, entries)
	require.NoError(t, err)

	var sums Totals
	for _, day := range report.Days {
		nonZero := 0
		for _, v := range []float64{day.Sick, day.Childcare, day.Annual, day.NationalService} {
			if v != 0 {
				nonZero++
			}
		}
		assert.LessOrEqual(t, nonZero, 1, "day %d has multiple leave categories", day.Day)
		if nonZero > 0 {
			assert.Zero(t, day.AtWork, "day %d has leave but at_work != 0", day.Day)
		}

		sums.AtWork += day.AtWork
		if day.PublicHoliday {
			sums.PublicHoliday++
		}
		sums.Sick += day.Sick
		sums.Childcare += day.Childcare
		sums.Annual += day.Annual
		sums.NationalService += day.NationalService
	}

	assert.Equal(t, sums, report.Totals)
}

func TestHolidayPrecedenceOverLeave(t *testing.T) {
	holidays := NewHolidayCalendar()
	holidays.Add(time.Date(2025, time.February, 5, 0, 0, 0, 0, time.UTC), "Hari Raya Puasa")

	agg := newTestAggregator(stubProfiles{1: testProfile()}, holidays)

	report, err := agg.Generate(context.Background(), 1, time.February, 2025, []RawEntry{
		{Start: "05-February", End: "07-February", Type: "Annual Leave"},
	})
	require.NoError(t, err)

	day5 := report.Days[4]
	assert.True(t, day5.PublicHoliday)
	assert.Zero(t, day5.AtWork)
	assert.Zero(t, day5.Annual)
	assert.Equal(t, "Hari Raya Puasa", day5.Remark)

	// The remaining leave days still apply.
	assert.Equal(t, 2.0, report.Totals.Annual)
}

func TestPublicHolidayEffortWorksTheHoliday(t *testing.T) {
	holidays := NewHolidayCalendar()
	holidays.Add(time.Date(2025, time.February, 5, 0, 0, 0, 0, time.UTC), "Vesak Day")

	agg := newTestAggregator(stubProfiles{1: testProfile()}, holidays)

	report, err := agg.Generate(context.Background(), 1, time.February, 2025, []RawEntry{
		{Start: "05-February", End: "05-February", Type: "Public Holiday Efforts"},
	})
	require.NoError(t, err)

	day5 := report.Days[4]
	assert.True(t, day5.PublicHoliday)
	assert.Equal(t, 8.0, day5.AtWork)
}

func TestNationalServiceColumnNegotiation(t *testing.T) {
	agg := newTestAggregator(stubProfiles{1: testProfile()}, NewHolidayCalendar())

	without, err := agg.Generate(context.Background(), 1, time.February, 2025, []RawEntry{
		{Start: "05-February", End: "07-February", Type: "Annual Leave"},
	})
	require.NoError(t, err)
	assert.NotContains(t, without.Columns, ColNationalService)
	assert.Equal(t, []string{
		ColSN, ColDate, ColAtWork, ColPublicHoliday,
		ColSick, ColChildcare, ColAnnual, ColRemarks,
	}, without.Columns)

	with, err := agg.Generate(context.Background(), 1, time.February, 2025, []RawEntry{
		{Start: "20-February", End: "21-February", Type: "NS Leave"},
	})
	require.NoError(t, err)
	require.Contains(t, with.Columns, ColNationalService)

	nsIndex := slicesIndex(with.Columns, ColNationalService)
	assert.Equal(t, slicesIndex(with.Columns, ColAnnual)+1, nsIndex)
	assert.Equal(t, slicesIndex(with.Columns, ColRemarks), nsIndex+1)
}

func slicesIndex(columns []string, name string) int {
	for i, col := range columns {
		if col == name {
			return i
		}
	}
	return -1
}

func TestCorruptEntriesAreDropped(t *testing.T) {
	agg := newTestAggregator(stubProfiles{1: testProfile()}, NewHolidayCalendar())

	entries := []RawEntry{
		{Start: "31-February", End: "31-February", Type: "Sick Leave"},
		{Start: "05-February", End: "bogus", Type: "Annual Leave"},
		{Start: "10-February", End: "11-February", Type: "Sabbatical"},
		{Start: "12-February", End: "12-February", Type: "Sick Leave"},
	}

	report, err := agg.Generate(context.Background(), 1, time.February, 2025, entries)
	require.NoError(t, err)
	assert.Equal(t, 1.0, report.Totals.Sick)
	assert.Equal(t, 0.0, report.Totals.Annual)
}

func TestAllCorruptEntriesStillRender(t *testing.T) {
	agg := newTestAggregator(stubProfiles{1: testProfile()}, NewHolidayCalendar())

	report, err := agg.Generate(context.Background(), 1, time.February, 2025, []RawEntry{
		{Start: "nope", End: "nope", Type: "Annual Leave"},
	})
	require.NoError(t, err)
	require.Len(t, report.Days, 28)
	assert.Equal(t, 20*8.5, report.Totals.AtWork)
}

func TestUserNotFound(t *testing.T) {
	agg := newTestAggregator(stubProfiles{}, NewHolidayCalendar())

	_, err := agg.Generate(context.Background(), 42, time.February, 2025, nil)
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestIncompleteProfile(t *testing.T) {
	incomplete := testProfile()
	incomplete.SkillLevel = ""
	incomplete.Contractor = ""

	agg := newTestAggregator(stubProfiles{1: incomplete}, NewHolidayCalendar())

	_, err := agg.Generate(context.Background(), 1, time.February, 2025, nil)

	var profileErr *IncompleteProfileError
	require.ErrorAs(t, err, &profileErr)
	assert.ElementsMatch(t, []string{"skill_level", "contractor"}, profileErr.Missing)
}

func TestSequenceNumbersAscend(t *testing.T) {
	agg := newTestAggregator(stubProfiles{1: testProfile()}, NewHolidayCalendar())

	report, err := agg.Generate(context.Background(), 1, time.February, 2025, nil)
	require.NoError(t, err)

	for i, day := range report.Days {
		assert.Equal(t, i+1, day.SN)
		assert.Equal(t, i+1, day.Day)
	}
}

func TestTabulateSentinels(t *testing.T) {
	holidays := NewHolidayCalendar()
	holidays.Add(time.Date(2025, time.February, 5, 0, 0, 0, 0, time.UTC), "Vesak Day")

	agg := newTestAggregator(stubProfiles{1: testProfile()}, holidays)

	report, err := agg.Generate(context.Background(), 1, time.February, 2025, []RawEntry{
		{Start: "12-February", End: "12-February", Type: "Sick Leave"},
	})
	require.NoError(t, err)

	rows := report.Tabulate()
	require.Len(t, rows, 29) // 28 days + totals

	// Day rows: "-" only in the Public Holiday column, empty strings elsewhere.
	day3 := rows[2]
	assert.Equal(t, "3", day3[0])
	assert.Equal(t, "8.5", day3[2])
	assert.Equal(t, "-", day3[3])
	assert.Equal(t, "", day3[4])

	day5 := rows[4]
	assert.Equal(t, "", day5[2])
	assert.Equal(t, "1.0", day5[3])
	assert.Equal(t, "Vesak Day", day5[7])

	totals := rows[28]
	assert.Equal(t, "Total", totals[1])
	assert.Equal(t, "1.0", totals[3]) // one public holiday
	assert.Equal(t, "1.0", totals[4]) // sick
	assert.Equal(t, "-", totals[5])   // childcare unused
	assert.Equal(t, "-", totals[6])   // annual unused
}
