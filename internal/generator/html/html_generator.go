package htmlgenerator

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/BalanceBalls/timesheet-generator/internal/generator"
	"github.com/BalanceBalls/timesheet-generator/internal/timesheet"
)

//go:embed *.tmpl
var tpls embed.FS

type HtmlGenerator struct {
	tmplName string
}

func New(tmplName string) *HtmlGenerator {
	return &HtmlGenerator{
		tmplName: tmplName,
	}
}

type templateData struct {
	Title   string
	Profile timesheet.UserProfile
	Columns []string
	Rows    [][]string
}

func (g *HtmlGenerator) Generate(report timesheet.Report) (generator.Result, error) {
	tmpl, err := template.ParseFS(tpls, g.tmplName)
	if err != nil {
		return generator.Result{}, fmt.Errorf(
			"failed to parse template file for html report: %w", err)
	}

	data := templateData{
		Title:   report.Title(),
		Profile: report.Profile,
		Columns: report.Columns,
		Rows:    report.Tabulate(),
	}

	var buf bytes.Buffer
	if err = tmpl.ExecuteTemplate(&buf, g.tmplName, data); err != nil {
		return generator.Result{}, fmt.Errorf(
			"failed to generate an html report: %w", err)
	}

	name := fmt.Sprintf("timesheet-%d-%d-%02d.html", report.UserID, report.Year, int(report.Month))
	return generator.Result{Name: name, Data: buf.Bytes()}, nil
}
