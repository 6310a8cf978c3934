package timesheet

import "time"

// dayState names the single rule that decides a day's classification.
// Rules are evaluated in precedence order and exactly one fires, which
// keeps leave categories mutually exclusive by construction.
type dayState int

const (
	stateNormal dayState = iota
	stateWeekend
	stateHoliday
	stateOrdinaryLeave
	stateReconcilingEffort
	stateHalfDay
)

const (
	hourBasedFullDay = 8.5
	effortHours      = 8.0
	effortUnits      = 1.0
)

type dayContext struct {
	date         time.Time
	weekend      bool
	holiday      bool
	holidayLabel string
	hasLeave     bool
	leaveType    LeaveType
	fullDay      float64
}

// classifyDay produces the DayRecord for a single calendar day plus an
// optional warning for leave that cannot apply to the day it covers.
func classifyDay(ctx dayContext) (DayRecord, string) {
	rec := DayRecord{
		Day:     ctx.date.Day(),
		Date:    ctx.date,
		Weekday: ctx.date.Weekday(),
	}

	state, warning := resolveState(ctx)

	switch state {
	case stateWeekend:
		rec.Remark = weekendRemark(ctx.date)

	case stateHoliday:
		rec.PublicHoliday = true
		rec.Remark = ctx.holidayLabel

	case stateOrdinaryLeave:
		switch ctx.leaveType {
		case LeaveSick:
			rec.Sick = 1.0
		case LeaveChildcare:
			rec.Childcare = 1.0
		case LeaveAnnual:
			rec.Annual = 1.0
		case LeaveNationalService:
			rec.NationalService = 1.0
		}

	case stateReconcilingEffort:
		if ctx.fullDay == hourBasedFullDay {
			rec.AtWork = effortHours
		} else {
			rec.AtWork = effortUnits
		}
		if ctx.holiday {
			rec.PublicHoliday = true
			rec.Remark = ctx.holidayLabel
		} else {
			rec.Remark = weekendRemark(ctx.date)
		}

	case stateHalfDay:
		rec.AtWork = halfDayHours(ctx.date.Weekday(), ctx.fullDay)

	case stateNormal:
		rec.AtWork = ctx.fullDay
	}

	return rec, warning
}

// resolveState picks the first matching rule:
//  1. weekend and public holiday zero out the working day, with the
//     holiday label taking precedence over the weekend remark;
//  2. ordinary leave applies only on days rules 1-2 left alone;
//  3. reconciling effort applies only on days rules 1-2 zeroed out;
//  4. a half day overrides the default on any plain weekday.
func resolveState(ctx dayContext) (dayState, string) {
	offDay := ctx.weekend || ctx.holiday

	baseState := stateNormal
	if ctx.holiday {
		baseState = stateHoliday
	} else if ctx.weekend {
		baseState = stateWeekend
	}

	if !ctx.hasLeave {
		return baseState, ""
	}

	switch {
	case ctx.leaveType == LeaveHalfDay:
		if offDay {
			// Undefined combination: keep the weekend/holiday
			// classification and let the caller log it.
			return baseState, "half day on a non-working day ignored"
		}
		return stateHalfDay, ""

	case ctx.leaveType.Ordinary():
		if offDay {
			return baseState, ""
		}
		return stateOrdinaryLeave, ""

	case ctx.leaveType.Reconciling():
		if !offDay {
			return baseState, ctx.leaveType.String() + " on a working day ignored"
		}
		return stateReconcilingEffort, ""
	}

	return baseState, "unhandled leave type " + ctx.leaveType.String()
}

func weekendRemark(date time.Time) string {
	if date.Weekday() == time.Saturday {
		return "Saturday"
	}
	return "Weekend"
}

func halfDayHours(weekday time.Weekday, fullDay float64) float64 {
	if fullDay != hourBasedFullDay {
		return 0.5
	}
	if weekday == time.Friday {
		return 4.0
	}
	return 4.5
}
