package gsheet

import (
	"context"
	"errors"
	"fmt"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"github.com/BalanceBalls/timesheet-generator/internal/timesheet"
)

// TimesheetWriter is the outbound port for spreadsheet emission.
type TimesheetWriter interface {
	Write(ctx context.Context, report timesheet.Report) (ref string, err error)
}

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
}

var _ TimesheetWriter = (*Client)(nil)

// New creates a Sheets client from a service account credentials file.
func New(ctx context.Context, spreadsheetID, sheetName, credentialsFile string) (*Client, error) {
	if spreadsheetID == "" {
		return nil, errors.New("missing spreadsheet id")
	}
	if credentialsFile == "" {
		return nil, errors.New("missing service account credentials file")
	}

	svc, err := gsheet.NewService(ctx,
		goption.WithCredentialsFile(credentialsFile),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return &Client{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
	}, nil
}

// Write lays the report out starting at the sheet's top-left corner:
// profile header block, one blank row, column headers, day rows and
// the totals row. Returns the written range reference.
func (c *Client) Write(ctx context.Context, report timesheet.Report) (string, error) {
	if c.svc == nil {
		return "", errors.New("sheets service not initialized")
	}

	values := [][]any{
		{"Name", report.Profile.Name},
		{"Skill Level", report.Profile.SkillLevel},
		{"Role Specialization", report.Profile.RoleSpecialization},
		{"Group Specialization", report.Profile.GroupSpecialization},
		{"Contractor", report.Profile.Contractor},
		{"PO Ref", report.Profile.PoRef},
		{"PO Date", report.Profile.PoDate},
		{"Description", report.Profile.Description},
		{"Reporting Officer", report.Profile.ReportingOfficer},
		{},
	}

	headerRow := make([]any, len(report.Columns))
	for i, col := range report.Columns {
		headerRow[i] = col
	}
	values = append(values, headerRow)

	for _, row := range report.Tabulate() {
		cells := make([]any, len(row))
		for i, cell := range row {
			cells[i] = cell
		}
		values = append(values, cells)
	}

	rng := fmt.Sprintf("%s!A1", c.sheetName)
	vr := &gsheet.ValueRange{Values: values}

	_, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, rng, vr).
		ValueInputOption("USER_ENTERED").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to update sheet %s: %w", c.sheetName, err)
	}

	ref := fmt.Sprintf("%s!A1:%c%d", c.sheetName, 'A'+len(report.Columns)-1, len(values))
	return ref, nil
}
