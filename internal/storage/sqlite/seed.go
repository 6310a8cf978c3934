package sqlite

import (
	"context"
	"fmt"

	"github.com/BalanceBalls/timesheet-generator/internal/storage"
)

// Singapore gazetted public holidays for 2025.
var holidays2025 = []struct {
	date  string
	label string
}{
	{"2025-01-01", "New Year's Day"},
	{"2025-01-29", "Chinese New Year"},
	{"2025-01-30", "Chinese New Year"},
	{"2025-03-31", "Hari Raya Puasa"},
	{"2025-04-18", "Good Friday"},
	{"2025-05-01", "Labour Day"},
	{"2025-05-12", "Vesak Day"},
	{"2025-06-07", "Hari Raya Haji"},
	{"2025-08-09", "National Day"},
	{"2025-10-20", "Deepavali"},
	{"2025-12-25", "Christmas Day"},
}

func (s *SqliteStorage) Seed(ctx context.Context) error {
	demoUser := storage.User{
		Id:                  7032290213,
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
		IsActive:            true,
	}

	if err := s.AddUser(ctx, demoUser); err != nil {
		return fmt.Errorf("could not seed user data: %w", err)
	}

	for _, h := range holidays2025 {
		if _, err := s.db.ExecContext(ctx, addHoliday, h.date, h.label); err != nil {
			return fmt.Errorf("could not seed holiday data: %w", err)
		}
	}

	return nil
}
