package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/BalanceBalls/timesheet-generator/internal/generator"
	"github.com/BalanceBalls/timesheet-generator/internal/generator/gsheet"
	"github.com/BalanceBalls/timesheet-generator/internal/logger"
	"github.com/BalanceBalls/timesheet-generator/internal/storage"
	"github.com/BalanceBalls/timesheet-generator/internal/timesheet"
)

var ErrUnknownFormat = errors.New("unknown report format")

const FormatSheet = "gsheet"

// Service glues the dialogue-facing operations together: collecting
// leave intervals through resolver sessions, and rendering finalized
// months through the aggregator and a generator.
type Service struct {
	store      storage.Storage
	sessions   *timesheet.SessionStore
	generators map[string]generator.Generator
	sheets     gsheet.TimesheetWriter
	sched      *Scheduler
	logger     *slog.Logger
}

func New(store storage.Storage, generators map[string]generator.Generator, sheets gsheet.TimesheetWriter, sched *Scheduler, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}

	return &Service{
		store:      store,
		sessions:   timesheet.NewSessionStore(),
		generators: generators,
		sheets:     sheets,
		sched:      sched,
		logger:     log,
	}
}

// profileSource adapts storage to the aggregator's injected lookup.
type profileSource struct {
	store storage.Storage
}

func (p profileSource) Profile(ctx context.Context, userID int64) (timesheet.UserProfile, error) {
	user, err := p.store.User(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return timesheet.UserProfile{}, timesheet.ErrUserNotFound
		}
		return timesheet.UserProfile{}, err
	}

	return user.Profile(), nil
}

func (s *Service) Profile(ctx context.Context, userID int64) (timesheet.UserProfile, error) {
	return profileSource{store: s.store}.Profile(ctx, userID)
}

// AddLeave validates a candidate interval against the user's accepted
// set for the month and persists it when it fits. Overlap and parse
// errors are returned for user correction and leave accepted state
// untouched.
func (s *Service) AddLeave(ctx context.Context, userID int64, month time.Month, year int, raw timesheet.RawEntry) error {
	if !s.store.UserExists(ctx, userID) {
		return timesheet.ErrUserNotFound
	}

	candidate, err := timesheet.ParseInterval(raw, year)
	if err != nil {
		return err
	}

	session, err := s.session(ctx, userID, month, year)
	if err != nil {
		return err
	}

	if err := session.Accept(candidate); err != nil {
		return err
	}

	entry := storage.LeaveEntry{
		UserId:    userID,
		Month:     int(month),
		Year:      year,
		StartDate: raw.Start,
		EndDate:   raw.End,
		LeaveType: raw.Type,
	}
	if err := s.store.AddLeaveEntry(ctx, entry); err != nil {
		return fmt.Errorf("could not persist leave entry: %w", err)
	}

	return nil
}

// session returns the in-memory accepted set for the key, hydrating it
// from persisted entries on first touch.
func (s *Service) session(ctx context.Context, userID int64, month time.Month, year int) (*timesheet.Session, error) {
	key := timesheet.SessionKey{UserID: userID, Month: month, Year: year}
	session, existed := s.sessions.Session(key)
	if existed {
		return session, nil
	}

	entries, err := s.store.LeaveEntries(ctx, userID, int(month), year)
	if err != nil {
		return nil, fmt.Errorf("could not load leave entries: %w", err)
	}

	for _, entry := range entries {
		interval, err := timesheet.ParseInterval(entry.Raw(), year)
		if err != nil {
			s.logger.WarnContext(ctx, "skipping corrupt persisted leave entry",
				"user", userID, "err", err)
			continue
		}
		if err := session.Accept(interval); err != nil {
			s.logger.WarnContext(ctx, "skipping conflicting persisted leave entry",
				"user", userID, "err", err)
		}
	}

	return session, nil
}

func (s *Service) ClearLeaves(ctx context.Context, userID int64, month time.Month, year int) error {
	key := timesheet.SessionKey{UserID: userID, Month: month, Year: year}
	s.sessions.Drop(key)

	return s.store.ClearLeaveEntries(ctx, userID, int(month), year)
}

// Render produces the finalized month report in the requested format.
// Renders for the same user are strictly serialized.
func (s *Service) Render(ctx context.Context, userID int64, month time.Month, year int, format string) (generator.Result, error) {
	if _, ok := s.generators[format]; !ok && !(format == FormatSheet && s.sheets != nil) {
		return generator.Result{}, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	requestID := uuid.NewString()
	log := s.logger.With("request_id", requestID, "user", userID,
		"month", month.String(), "year", year)

	var result generator.Result
	err := s.sched.Do(ctx, userID, func(taskCtx context.Context) error {
		renderCtx := logger.AddToContext(taskCtx, log)

		report, err := s.buildReport(renderCtx, userID, month, year)
		if err != nil {
			return err
		}

		if format == FormatSheet {
			ref, err := s.sheets.Write(renderCtx, report)
			if err != nil {
				return fmt.Errorf("could not write report to sheet: %w", err)
			}
			log.InfoContext(renderCtx, "report written to spreadsheet", "range", ref)
			result = generator.Result{Name: ref}
			return nil
		}

		result, err = s.generators[format].Generate(report)
		if err != nil {
			return err
		}

		log.InfoContext(renderCtx, "report generated", "file", result.Name)
		return nil
	})

	return result, err
}

func (s *Service) buildReport(ctx context.Context, userID int64, month time.Month, year int) (timesheet.Report, error) {
	holidays, err := s.store.Holidays(ctx, year)
	if err != nil {
		return timesheet.Report{}, fmt.Errorf("could not load holidays: %w", err)
	}

	calendar := timesheet.NewHolidayCalendar()
	for _, h := range holidays {
		calendar.Add(h.Date, h.Label)
	}

	entries, err := s.store.LeaveEntries(ctx, userID, int(month), year)
	if err != nil {
		return timesheet.Report{}, fmt.Errorf("could not load leave entries: %w", err)
	}

	raw := make([]timesheet.RawEntry, 0, len(entries))
	for _, entry := range entries {
		raw = append(raw, entry.Raw())
	}

	agg := timesheet.NewAggregator(profileSource{store: s.store}, calendar, logger.GetFromContext(ctx))
	return agg.Generate(ctx, userID, month, year, raw)
}

func (s *Service) Close() error {
	return s.sched.Close()
}
