package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/BalanceBalls/timesheet-generator/internal/logger"
	"github.com/BalanceBalls/timesheet-generator/internal/storage"
)

const dateColumnLayout = "2006-01-02"

type SqliteStorage struct {
	db *sql.DB
}

func New(name string) (*SqliteStorage, error) {
	slog.Info("initializing DB...", "db_name", name)
	db, err := sql.Open("sqlite3", name)

	if err != nil {
		return nil, fmt.Errorf("could not open database:  %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("could not access database: %w", err)
	}

	return &SqliteStorage{db: db}, nil
}

func (s *SqliteStorage) Up(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, createUsersTable)
	if err != nil {
		return fmt.Errorf("could not create table users: %w", err)
	}

	_, err = s.db.ExecContext(ctx, createHolidaysTable)
	if err != nil {
		return fmt.Errorf("could not create table holidays: %w", err)
	}

	_, err = s.db.ExecContext(ctx, createLeavesTable)
	if err != nil {
		return fmt.Errorf("could not create table leaves: %w", err)
	}

	return nil
}

func (s *SqliteStorage) AddUser(ctx context.Context, user storage.User) error {
	_, err := s.db.ExecContext(ctx, addUser,
		user.Id, user.Name, user.SkillLevel, user.RoleSpecialization, user.GroupSpecialization,
		user.Contractor, user.PoRef, user.PoDate, user.Description, user.ReportingOfficer,
		user.FullDayHours, user.IsActive)
	if err != nil {
		return fmt.Errorf("could not add new user: %w", err)
	}

	return nil
}

func (s *SqliteStorage) UserExists(ctx context.Context, userId int64) bool {
	logger := logger.GetFromContext(ctx)
	q, err := s.db.Prepare(checkUserExists)

	if err != nil {
		logger.ErrorContext(ctx, err.Error())
		return false
	}

	var exists int
	err = q.QueryRowContext(ctx, userId).Scan(&exists)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false
		}

		logger.ErrorContext(ctx, err.Error())
	}

	return true
}

func (s *SqliteStorage) User(ctx context.Context, userId int64) (storage.User, error) {
	q, err := s.db.Prepare(getUserById)

	if err != nil {
		return storage.User{}, fmt.Errorf("failed to build query: %w", err)
	}

	user := storage.User{}
	err = q.QueryRowContext(ctx, userId).Scan(
		&user.Id, &user.Name, &user.SkillLevel, &user.RoleSpecialization, &user.GroupSpecialization,
		&user.Contractor, &user.PoRef, &user.PoDate, &user.Description, &user.ReportingOfficer,
		&user.FullDayHours, &user.IsActive)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.User{}, storage.ErrUserNotFound
		}

		return storage.User{}, fmt.Errorf("failed to fetch row: %w", err)
	}

	return user, nil
}

func (s *SqliteStorage) UpdateUser(ctx context.Context, user storage.User) error {
	_, err := s.db.ExecContext(ctx, updateUser,
		user.Name, user.SkillLevel, user.RoleSpecialization, user.GroupSpecialization,
		user.Contractor, user.PoRef, user.PoDate, user.Description, user.ReportingOfficer,
		user.FullDayHours, user.Id)
	if err != nil {
		return fmt.Errorf("could not update user: %w", err)
	}

	return nil
}

func (s *SqliteStorage) RemoveUser(ctx context.Context, userId int64) error {
	_, err := s.db.ExecContext(ctx, removeUser, userId)
	if err != nil {
		return err
	}

	return nil
}

func (s *SqliteStorage) Holidays(ctx context.Context, year int) ([]storage.Holiday, error) {
	first := fmt.Sprintf("%d-01-01", year)
	last := fmt.Sprintf("%d-12-31", year)

	rows, err := s.db.QueryContext(ctx, getHolidaysByYear, first, last)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch holidays: %w", err)
	}
	defer rows.Close()

	result := []storage.Holiday{}
	for rows.Next() {
		var rawDate string
		holiday := storage.Holiday{}

		if err := rows.Scan(&rawDate, &holiday.Label); err != nil {
			return nil, err
		}

		parsed, dateErr := time.Parse(dateColumnLayout, rawDate)
		if dateErr != nil {
			return nil, fmt.Errorf("bad holiday date %q: %w", rawDate, dateErr)
		}

		holiday.Date = parsed
		result = append(result, holiday)
	}

	return result, rows.Err()
}

func (s *SqliteStorage) AddHoliday(ctx context.Context, holiday storage.Holiday) error {
	_, err := s.db.ExecContext(ctx, addHoliday,
		holiday.Date.Format(dateColumnLayout), holiday.Label)
	if err != nil {
		return fmt.Errorf("could not add holiday: %w", err)
	}

	return nil
}

func (s *SqliteStorage) LeaveEntries(ctx context.Context, userId int64, month int, year int) ([]storage.LeaveEntry, error) {
	rows, err := s.db.QueryContext(ctx, getLeaveEntries, userId, month, year)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch leave entries: %w", err)
	}
	defer rows.Close()

	result := []storage.LeaveEntry{}
	for rows.Next() {
		entry := storage.LeaveEntry{}

		err := rows.Scan(&entry.UserId, &entry.Month, &entry.Year,
			&entry.StartDate, &entry.EndDate, &entry.LeaveType)
		if err != nil {
			return nil, err
		}

		result = append(result, entry)
	}

	return result, rows.Err()
}

func (s *SqliteStorage) AddLeaveEntry(ctx context.Context, entry storage.LeaveEntry) error {
	_, err := s.db.ExecContext(ctx, addLeaveEntry,
		entry.UserId, entry.Month, entry.Year,
		entry.StartDate, entry.EndDate, entry.LeaveType)
	if err != nil {
		return fmt.Errorf("could not add leave entry: %w", err)
	}

	return nil
}

func (s *SqliteStorage) ClearLeaveEntries(ctx context.Context, userId int64, month int, year int) error {
	_, err := s.db.ExecContext(ctx, clearLeaveEntries, userId, month, year)
	if err != nil {
		return fmt.Errorf("could not clear leave entries: %w", err)
	}

	return nil
}
