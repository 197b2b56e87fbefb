package stubserver

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/shiftdesk/shiftdesk/internal/domain/request"
	"github.com/shiftdesk/shiftdesk/internal/domain/schedule"
)

var ErrNotFound = errors.New("not found")

// Storage is the SQLite store behind the stub backend. A single file (or
// :memory: in tests) holds users, profiles, departments, work entries and
// service requests.
type Storage struct {
	db *sql.DB
}

func OpenStorage(path string) (*Storage, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	// SQLite serializes writers; one connection avoids table-lock errors.
	db.SetMaxOpenConns(1)
	s := &Storage{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Storage) Close() error {
	return s.db.Close()
}

func (s *Storage) migrate() error {
	_, err := s.db.Exec(`
	CREATE TABLE IF NOT EXISTS users (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		email         TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		role          TEXT NOT NULL DEFAULT 'employee'
	);
	CREATE TABLE IF NOT EXISTS departments (
		id              INTEGER PRIMARY KEY AUTOINCREMENT,
		name            TEXT NOT NULL,
		manager_user_id INTEGER REFERENCES users(id)
	);
	CREATE TABLE IF NOT EXISTS profiles (
		id              INTEGER PRIMARY KEY AUTOINCREMENT,
		email           TEXT NOT NULL UNIQUE,
		full_name       TEXT,
		birth_date      TEXT,
		employee_number TEXT,
		position        TEXT,
		work_start_date TEXT,
		department_id   INTEGER REFERENCES departments(id)
	);
	CREATE TABLE IF NOT EXISTS work_entries (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id    INTEGER NOT NULL REFERENCES users(id),
		date       TEXT NOT NULL,
		type       TEXT NOT NULL,
		start_time TEXT,
		end_time   TEXT,
		title      TEXT,
		UNIQUE(user_id, date)
	);
	CREATE TABLE IF NOT EXISTS service_requests (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id    INTEGER NOT NULL REFERENCES users(id),
		type       TEXT NOT NULL,
		start_date TEXT NOT NULL,
		end_date   TEXT NOT NULL,
		status     TEXT NOT NULL DEFAULT 'pending',
		created_at TEXT NOT NULL
	);`)
	return err
}

type User struct {
	ID           int64
	Email        string
	PasswordHash string
	Role         string
}

type Department struct {
	ID            int64
	Name          string
	ManagerUserID *int64
}

type ProfileRow struct {
	Email          string
	FullName       *string
	BirthDate      *string
	EmployeeNumber *string
	Position       *string
	WorkStartDate  *string
	DepartmentID   *int64
	DepartmentName *string
}

func (s *Storage) CreateUser(ctx context.Context, email, passwordHash, role string) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO users (email, password_hash, role) VALUES (?, ?, ?)`,
		email, passwordHash, role)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (s *Storage) UserByEmail(ctx context.Context, email string) (User, error) {
	var u User
	err := s.db.QueryRowContext(ctx,
		`SELECT id, email, password_hash, role FROM users WHERE email = ?`, email).
		Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrNotFound
	}
	return u, err
}

func (s *Storage) UserByID(ctx context.Context, id int64) (User, error) {
	var u User
	err := s.db.QueryRowContext(ctx,
		`SELECT id, email, password_hash, role FROM users WHERE id = ?`, id).
		Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrNotFound
	}
	return u, err
}

func (s *Storage) CreateDepartment(ctx context.Context, name string, managerUserID *int64) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO departments (name, manager_user_id) VALUES (?, ?)`, name, managerUserID)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// DepartmentByManager returns the department a manager runs, if any.
func (s *Storage) DepartmentByManager(ctx context.Context, managerID int64) (Department, error) {
	var d Department
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, manager_user_id FROM departments WHERE manager_user_id = ?`, managerID).
		Scan(&d.ID, &d.Name, &d.ManagerUserID)
	if errors.Is(err, sql.ErrNoRows) {
		return Department{}, ErrNotFound
	}
	return d, err
}

// Roster lists the users whose profile belongs to a department, ordered by
// display name.
func (s *Storage) Roster(ctx context.Context, departmentID int64) ([]schedule.DeptEmployee, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT u.id, p.email, p.full_name
		FROM profiles p
		JOIN users u ON u.email = p.email
		WHERE p.department_id = ?
		ORDER BY LOWER(COALESCE(p.full_name, ''))`, departmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []schedule.DeptEmployee{}
	for rows.Next() {
		var e schedule.DeptEmployee
		if err := rows.Scan(&e.UserID, &e.Email, &e.FullName); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *Storage) ProfileByEmail(ctx context.Context, email string) (ProfileRow, error) {
	var p ProfileRow
	err := s.db.QueryRowContext(ctx, `
		SELECT p.email, p.full_name, p.birth_date, p.employee_number,
		       p.position, p.work_start_date, p.department_id, d.name
		FROM profiles p
		LEFT JOIN departments d ON d.id = p.department_id
		WHERE p.email = ?`, email).
		Scan(&p.Email, &p.FullName, &p.BirthDate, &p.EmployeeNumber,
			&p.Position, &p.WorkStartDate, &p.DepartmentID, &p.DepartmentName)
	if errors.Is(err, sql.ErrNoRows) {
		return ProfileRow{}, ErrNotFound
	}
	return p, err
}

// UpsertProfile creates the profile row on first write and patches only the
// provided fields afterwards.
func (s *Storage) UpsertProfile(ctx context.Context, email string, fields map[string]any) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO profiles (email) VALUES (?)`, email)
	if err != nil {
		return err
	}
	for column, value := range fields {
		query := fmt.Sprintf(`UPDATE profiles SET %s = ? WHERE email = ?`, column)
		if _, err := s.db.ExecContext(ctx, query, value, email); err != nil {
			return err
		}
	}
	return nil
}

func monthBounds(ym string) (first, next string, err error) {
	t, err := time.Parse("2006-01", ym)
	if err != nil {
		return "", "", err
	}
	return t.Format("2006-01-02"), t.AddDate(0, 1, 0).Format("2006-01-02"), nil
}

// MonthEntries lists one user's entries inside a YYYY-MM window, ascending
// by date.
func (s *Storage) MonthEntries(ctx context.Context, userID int64, ym string) ([]schedule.ScheduleEntry, error) {
	first, next, err := monthBounds(ym)
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT date, type, start_time, end_time, title
		FROM work_entries
		WHERE user_id = ? AND date >= ? AND date < ?
		ORDER BY date ASC`, userID, first, next)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []schedule.ScheduleEntry{}
	for rows.Next() {
		var e schedule.ScheduleEntry
		if err := rows.Scan(&e.Date, &e.Type, &e.StartTime, &e.EndTime, &e.Title); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *Storage) EntryOn(ctx context.Context, userID int64, date string) (schedule.ScheduleEntry, error) {
	var e schedule.ScheduleEntry
	err := s.db.QueryRowContext(ctx, `
		SELECT date, type, start_time, end_time, title
		FROM work_entries WHERE user_id = ? AND date = ?`, userID, date).
		Scan(&e.Date, &e.Type, &e.StartTime, &e.EndTime, &e.Title)
	if errors.Is(err, sql.ErrNoRows) {
		return schedule.ScheduleEntry{}, ErrNotFound
	}
	return e, err
}

// UpsertEntry writes one day, keeping the one-entry-per-day invariant.
// Reports whether a new row was created.
func (s *Storage) UpsertEntry(ctx context.Context, userID int64, e schedule.ScheduleEntry) (bool, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE work_entries SET type = ?, start_time = ?, end_time = ?, title = ?
		WHERE user_id = ? AND date = ?`,
		e.Type, e.StartTime, e.EndTime, e.Title, userID, e.Date)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if affected > 0 {
		return false, nil
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO work_entries (user_id, date, type, start_time, end_time, title)
		VALUES (?, ?, ?, ?, ?, ?)`,
		userID, e.Date, e.Type, e.StartTime, e.EndTime, e.Title)
	return true, err
}

// DeleteEntry removes one day. Deleting an absent day is not an error.
func (s *Storage) DeleteEntry(ctx context.Context, userID int64, date string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM work_entries WHERE user_id = ? AND date = ?`, userID, date)
	return err
}

func (s *Storage) CreateRequest(ctx context.Context, userID int64, r request.CreateServiceRequestRequest) (request.ServiceRequest, error) {
	createdAt := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO service_requests (user_id, type, start_date, end_date, status, created_at)
		VALUES (?, ?, ?, ?, 'pending', ?)`,
		userID, r.Type, r.StartDate, r.EndDate, createdAt)
	if err != nil {
		return request.ServiceRequest{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return request.ServiceRequest{}, err
	}
	return s.RequestByID(ctx, id)
}

const requestColumns = `
	sr.id, sr.user_id, u.email, p.full_name, sr.type,
	sr.start_date, sr.end_date, sr.status, sr.created_at`

func (s *Storage) scanRequests(rows *sql.Rows) ([]request.ServiceRequest, error) {
	defer rows.Close()
	out := []request.ServiceRequest{}
	for rows.Next() {
		var r request.ServiceRequest
		if err := rows.Scan(&r.ID, &r.UserID, &r.UserEmail, &r.UserFullName,
			&r.Type, &r.StartDate, &r.EndDate, &r.Status, &r.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Storage) RequestByID(ctx context.Context, id int64) (request.ServiceRequest, error) {
	var r request.ServiceRequest
	err := s.db.QueryRowContext(ctx, `
		SELECT `+requestColumns+`
		FROM service_requests sr
		JOIN users u ON u.id = sr.user_id
		LEFT JOIN profiles p ON p.email = u.email
		WHERE sr.id = ?`, id).
		Scan(&r.ID, &r.UserID, &r.UserEmail, &r.UserFullName,
			&r.Type, &r.StartDate, &r.EndDate, &r.Status, &r.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return request.ServiceRequest{}, ErrNotFound
	}
	return r, err
}

func (s *Storage) RequestsByUser(ctx context.Context, userID int64) ([]request.ServiceRequest, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+requestColumns+`
		FROM service_requests sr
		JOIN users u ON u.id = sr.user_id
		LEFT JOIN profiles p ON p.email = u.email
		WHERE sr.user_id = ?
		ORDER BY sr.created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	return s.scanRequests(rows)
}

// RequestsByDepartment lists the requests of every employee whose profile
// belongs to the department.
func (s *Storage) RequestsByDepartment(ctx context.Context, departmentID int64) ([]request.ServiceRequest, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+requestColumns+`
		FROM service_requests sr
		JOIN users u ON u.id = sr.user_id
		JOIN profiles p ON p.email = u.email
		WHERE p.department_id = ?
		ORDER BY sr.created_at DESC`, departmentID)
	if err != nil {
		return nil, err
	}
	return s.scanRequests(rows)
}

func (s *Storage) UpdateRequestStatus(ctx context.Context, id int64, status request.Status) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE service_requests SET status = ? WHERE id = ?`, status, id)
	return err
}

// UserDepartment resolves which department a user's profile belongs to.
func (s *Storage) UserDepartment(ctx context.Context, userID int64) (int64, bool, error) {
	var depID *int64
	err := s.db.QueryRowContext(ctx, `
		SELECT p.department_id
		FROM users u
		JOIN profiles p ON p.email = u.email
		WHERE u.id = ?`, userID).Scan(&depID)
	if errors.Is(err, sql.ErrNoRows) || (err == nil && depID == nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return *depID, true, nil
}
