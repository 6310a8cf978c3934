package generator

import "github.com/BalanceBalls/timesheet-generator/internal/timesheet"

type Generator interface {
	Generate(report timesheet.Report) (Result, error)
}

// Result is a generated document ready to be handed to whichever
// transport delivers it (file on disk, HTTP response body).
type Result struct {
	Name string
	Data []byte
}
