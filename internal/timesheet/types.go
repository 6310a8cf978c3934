package timesheet

import (
	"fmt"
	"strconv"
	"time"
)

type LeaveType int

const (
	LeaveUnknown LeaveType = iota
	LeaveSick
	LeaveChildcare
	LeaveAnnual
	LeaveNationalService
	LeaveWeekendEffort
	LeavePublicHolidayEffort
	LeaveHalfDay
)

// Wire labels as the dialogue layer sends them.
var leaveLabels = map[LeaveType]string{
	LeaveSick:                "Sick Leave",
	LeaveChildcare:           "Childcare Leave",
	LeaveAnnual:              "Annual Leave",
	LeaveNationalService:     "NS Leave",
	LeaveWeekendEffort:       "Weekend Efforts",
	LeavePublicHolidayEffort: "Public Holiday Efforts",
	LeaveHalfDay:             "Half Day",
}

func (t LeaveType) String() string {
	if label, ok := leaveLabels[t]; ok {
		return label
	}
	return "Unknown"
}

// Ordinary reports whether the type is a plain leave category that
// only applies on working days.
func (t LeaveType) Ordinary() bool {
	switch t {
	case LeaveSick, LeaveChildcare, LeaveAnnual, LeaveNationalService:
		return true
	}
	return false
}

// Reconciling reports whether the type records work performed on an
// otherwise non-working day.
func (t LeaveType) Reconciling() bool {
	return t == LeaveWeekendEffort || t == LeavePublicHolidayEffort
}

func ParseLeaveType(label string) (LeaveType, error) {
	for t, l := range leaveLabels {
		if l == label {
			return t, nil
		}
	}
	return LeaveUnknown, fmt.Errorf("%w: %q", ErrUnknownLeaveType, label)
}

// LeaveInterval spans inclusive whole days. Dates carry no time of day.
type LeaveInterval struct {
	Start time.Time
	End   time.Time
	Type  LeaveType
}

func (li LeaveInterval) String() string {
	return fmt.Sprintf("%s to %s (%s)",
		li.Start.Format(dayMonthLayout), li.End.Format(dayMonthLayout), li.Type)
}

// RawEntry is a leave tuple exactly as collected by the dialogue layer:
// dates in DD-Month form, the year supplied separately at render time.
type RawEntry struct {
	Start string `json:"start_date"`
	End   string `json:"end_date"`
	Type  string `json:"leave_type"`
}

type UserProfile struct {
	Name                string  `json:"name"`
	SkillLevel          string  `json:"skill_level"`
	RoleSpecialization  string  `json:"role_specialization"`
	GroupSpecialization string  `json:"group_specialization"`
	Contractor          string  `json:"contractor"`
	PoRef               string  `json:"po_ref"`
	PoDate              string  `json:"po_date"`
	Description         string  `json:"description"`
	ReportingOfficer    string  `json:"reporting_officer"`
	FullDayHours        float64 `json:"timesheet_preference"`
}

// MissingFields lists the required profile fields that are empty.
// A profile with no missing fields is safe to render.
func (p UserProfile) MissingFields() []string {
	required := []struct {
		name  string
		value string
	}{
		{"name", p.Name},
		{"skill_level", p.SkillLevel},
		{"role_specialization", p.RoleSpecialization},
		{"group_specialization", p.GroupSpecialization},
		{"contractor", p.Contractor},
	}

	var missing []string
	for _, f := range required {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}

// DayRecord is the classification result for a single calendar day.
// At most one leave category is non-zero, and a non-zero category
// implies AtWork == 0.
type DayRecord struct {
	SN              int
	Day             int
	Date            time.Time
	Weekday         time.Weekday
	AtWork          float64
	PublicHoliday   bool
	Sick            float64
	Childcare       float64
	Annual          float64
	NationalService float64
	Remark          string
}

type Totals struct {
	AtWork          float64
	PublicHoliday   float64
	Sick            float64
	Childcare       float64
	Annual          float64
	NationalService float64
}

// Column names in contract order. National Service is conditional.
const (
	ColSN              = "SN"
	ColDate            = "Date"
	ColAtWork          = "At Work"
	ColPublicHoliday   = "Public Holiday"
	ColSick            = "Sick Leave"
	ColChildcare       = "Childcare Leave"
	ColAnnual          = "Annual Leave"
	ColNationalService = "National Service Leave"
	ColRemarks         = "Remarks"
)

type Report struct {
	UserID  int64
	Month   time.Month
	Year    int
	Profile UserProfile

	// Columns is the negotiated schema: consumers must not assume a
	// fixed column count.
	Columns []string
	Days    []DayRecord
	Totals  Totals
}

func (r *Report) Title() string {
	return fmt.Sprintf("Timesheet %s %d - %s", r.Month, r.Year, r.Profile.Name)
}

const dateCellLayout = "02-Jan-2006"

// Tabulate renders the report as rows of formatted cells under the
// negotiated columns: one row per day followed by a totals row. The
// Public Holiday and Totals cells use "-" for zero while other
// category cells use the empty string; that asymmetry is part of the
// downstream contract.
func (r *Report) Tabulate() [][]string {
	withNS := false
	for _, col := range r.Columns {
		if col == ColNationalService {
			withNS = true
		}
	}

	rows := make([][]string, 0, len(r.Days)+1)
	for _, day := range r.Days {
		row := []string{
			strconv.Itoa(day.SN),
			day.Date.Format(dateCellLayout),
			categoryCell(day.AtWork),
			holidayCell(day.PublicHoliday),
			categoryCell(day.Sick),
			categoryCell(day.Childcare),
			categoryCell(day.Annual),
		}
		if withNS {
			row = append(row, categoryCell(day.NationalService))
		}
		row = append(row, day.Remark)
		rows = append(rows, row)
	}

	totals := []string{
		"",
		"Total",
		totalCell(r.Totals.AtWork),
		totalCell(r.Totals.PublicHoliday),
		totalCell(r.Totals.Sick),
		totalCell(r.Totals.Childcare),
		totalCell(r.Totals.Annual),
	}
	if withNS {
		totals = append(totals, totalCell(r.Totals.NationalService))
	}
	totals = append(totals, "")

	return append(rows, totals)
}

func categoryCell(v float64) string {
	if v == 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'f', 1, 64)
}

func holidayCell(isHoliday bool) string {
	if !isHoliday {
		return "-"
	}
	return "1.0"
}

func totalCell(v float64) string {
	if v == 0 {
		return "-"
	}
	return strconv.FormatFloat(v, 'f', 1, 64)
}
