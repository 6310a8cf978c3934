package htmlgenerator

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BalanceBalls/timesheet-generator/internal/timesheet"
)

func TestGenerate(t *testing.T) {
	report := timesheet.Report{
		UserID: 1,
		Month:  time.February,
		Year:   2025,
		Profile: timesheet.UserProfile{
			Name:       "Alex Tan",
			Contractor: "PALO IT",
		},
		Columns: []string{
			timesheet.ColSN, timesheet.ColDate, timesheet.ColAtWork,
			timesheet.ColPublicHoliday, timesheet.ColSick, timesheet.ColChildcare,
			timesheet.ColAnnual, timesheet.ColRemarks,
		},
		Days: []timesheet.DayRecord{
			{SN: 1, Day: 1, Date: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
				Weekday: time.Saturday, Remark: "Saturday"},
		},
	}

	gen := New("timesheet_report.tmpl")
	result, err := gen.Generate(report)
	require.NoError(t, err)

	assert.Equal(t, "timesheet-1-2025-02.html", result.Name)

	html := string(result.Data)
	assert.Contains(t, html, "Alex Tan")
	assert.Contains(t, html, "<th>Sick Leave</th>")
	assert.Contains(t, html, "Saturday")
	// One header cell per negotiated column.
	assert.Equal(t, len(report.Columns), strings.Count(html, "<th>"))
}

func TestGenerateMissingTemplate(t *testing.T) {
	gen := New("nope.tmpl")
	_, err := gen.Generate(timesheet.Report{})
	require.Error(t, err)
}
