package sqlite

const (
	createUsersTable = `
CREATE TABLE IF NOT EXISTS users (
  id                    INT PRIMARY KEY,
  name                  TEXT,
  skill_level           TEXT,
  role_specialization   TEXT,
  group_specialization  TEXT,
  contractor            TEXT,
  po_ref                TEXT,
  po_date               TEXT,
  description           TEXT,
  reporting_officer     TEXT,
  full_day_hours        REAL,
  is_active             BIT
)`

	createHolidaysTable = `
CREATE TABLE IF NOT EXISTS holidays (
  date    TEXT PRIMARY KEY,
  label   TEXT
)`

	createLeavesTable = `
CREATE TABLE IF NOT EXISTS leaves (
  user_id     INT,
  month       INT,
  year        INT,
  start_date  TEXT,
  end_date    TEXT,
  leave_type  TEXT,

	FOREIGN KEY(user_id) REFERENCES users(id)
)`

	getUserById = `
SELECT 
  id, name, skill_level, role_specialization, group_specialization,
  contractor, po_ref, po_date, description, reporting_officer,
  full_day_hours, is_active
FROM users 
WHERE id = ?
  `

	addUser = `
INSERT INTO users (
  id, name, skill_level, role_specialization, group_specialization,
  contractor, po_ref, po_date, description, reporting_officer,
  full_day_hours, is_active
) 
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	updateUser = `
UPDATE users SET 
	name = ?,
	skill_level = ?,
	role_specialization = ?,
	group_specialization = ?,
	contractor = ?,
	po_ref = ?,
	po_date = ?,
	description = ?,
	reporting_officer = ?,
	full_day_hours = ?
WHERE id = ?
	`

	removeUser = `
DELETE FROM users
WHERE id = ?
	`

	checkUserExists = `
SELECT 1 FROM users
WHERE id = ?
	`

	getHolidaysByYear = `
SELECT date, label FROM holidays
WHERE date >= ? AND date <= ?
ORDER BY date
	`

	addHoliday = `
INSERT OR REPLACE INTO holidays (date, label)
VALUES (?, ?)
	`

	getLeaveEntries = `
SELECT user_id, month, year, start_date, end_date, leave_type
FROM leaves
WHERE user_id = ? AND month = ? AND year = ?
	`

	addLeaveEntry = `
INSERT INTO leaves (user_id, month, year, start_date, end_date, leave_type)
VALUES (?, ?, ?, ?, ?, ?)
	`

	clearLeaveEntries = `
DELETE FROM leaves
WHERE user_id = ? AND month = ? AND year = ?
	`
)
