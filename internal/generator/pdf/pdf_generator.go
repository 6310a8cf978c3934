package pdfgenerator

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/BalanceBalls/timesheet-generator/internal/generator"
	"github.com/BalanceBalls/timesheet-generator/internal/timesheet"
)

type PdfGenerator struct{}

func New() *PdfGenerator {
	return &PdfGenerator{}
}

func (g *PdfGenerator) Generate(report timesheet.Report) (generator.Result, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(40, 10, report.Title())
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 10)
	header := []struct {
		label string
		value string
	}{
		{"Name", report.Profile.Name},
		{"Skill Level", report.Profile.SkillLevel},
		{"Role Specialization", report.Profile.RoleSpecialization},
		{"Group Specialization", report.Profile.GroupSpecialization},
		{"Contractor", report.Profile.Contractor},
		{"PO Ref", report.Profile.PoRef},
		{"PO Date", report.Profile.PoDate},
		{"Description", report.Profile.Description},
		{"Reporting Officer", report.Profile.ReportingOfficer},
	}
	for _, h := range header {
		pdf.Cell(0, 6, fmt.Sprintf("%s: %s", h.label, h.value))
		pdf.Ln(5)
	}
	pdf.Ln(4)

	colWidths := columnWidths(report.Columns)

	pdf.SetFont("Helvetica", "B", 8)
	for i, col := range report.Columns {
		pdf.CellFormat(colWidths[i], 7, col, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 8)
	for _, row := range report.Tabulate() {
		for i, cell := range row {
			pdf.CellFormat(colWidths[i], 6, cell, "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return generator.Result{}, fmt.Errorf("failed to generate a pdf report: %w", err)
	}

	name := fmt.Sprintf("timesheet-%d-%d-%02d.pdf", report.UserID, report.Year, int(report.Month))
	return generator.Result{Name: name, Data: buf.Bytes()}, nil
}

// columnWidths splits a 190mm printable width: narrow SN column, wide
// Date and Remarks, the rest shared evenly.
func columnWidths(columns []string) []float64 {
	const printable = 190.0

	widths := make([]float64, len(columns))
	remaining := printable
	flexible := 0
	for i, col := range columns {
		switch col {
		case timesheet.ColSN:
			widths[i] = 12
			remaining -= 12
		case timesheet.ColDate, timesheet.ColRemarks:
			widths[i] = 32
			remaining -= 32
		default:
			flexible++
		}
	}

	for i, w := range widths {
		if w == 0 {
			widths[i] = remaining / float64(flexible)
		}
	}
	return widths
}
