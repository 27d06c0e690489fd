// Package sqlite provides a SQLite-backed implementation of the
// storage.Storage interface using Go's standard database/sql package.
//
// SQLite stores everything in a single file on disk — no network, no
// separate server process, no installation beyond the driver. It is the
// default backend for local development.
//
// The blank import below registers the sqlite3 driver with database/sql.
// The driver's init() function does this automatically when the package
// is loaded — we never call anything from it directly.
package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/aanand-mishra/student-registry/internal/config"
	"github.com/aanand-mishra/student-registry/internal/storage"
	"github.com/aanand-mishra/student-registry/internal/types"

	// Blank import: side-effect only (registers the "sqlite3" driver).
	_ "github.com/mattn/go-sqlite3"
)

// SQLite is the concrete implementation of storage.Storage.
// It holds a *sql.DB which is a connection pool managed by database/sql.
// A single *sql.DB is safe for concurrent use by multiple goroutines.
type SQLite struct {
	Db *sql.DB
}

// New opens the SQLite database at cfg.Storage.Path, creates the
// students table if it does not already exist, and returns a
// ready-to-use *SQLite.
func New(cfg *config.Config) (*SQLite, error) {
	db, err := sql.Open("sqlite3", cfg.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: open db: %w", err)
	}

	// CREATE TABLE IF NOT EXISTS is idempotent — safe to run on every
	// startup.
	//
	// school is the only nullable column; created_at is assigned by the
	// application at insert time as RFC 3339 UTC text.
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS students (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			name       TEXT    NOT NULL,
			age        INTEGER NOT NULL,
			school     TEXT,
			college    TEXT    NOT NULL,
			course     TEXT    NOT NULL,
			created_at TEXT    NOT NULL
		)
	`)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: create table: %w", err)
	}

	return &SQLite{Db: db}, nil
}

// CreateStudent inserts a new row and returns the auto-generated ID.
// created_at is assigned here, not by the caller — it is immutable from
// the client's point of view.
func (s *SQLite) CreateStudent(draft types.StudentDraft) (int64, error) {
	stmt, err := s.Db.Prepare(`
		INSERT INTO students (name, age, school, college, course, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("CreateStudent: prepare: %w", err)
	}
	defer stmt.Close()

	result, err := stmt.Exec(
		draft.Name,
		draft.Age,
		draft.School, // nil maps to NULL
		draft.College,
		draft.Course,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return 0, fmt.Errorf("CreateStudent: exec: %w", err)
	}

	lastID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("CreateStudent: last insert id: %w", err)
	}

	return lastID, nil
}

// GetStudentByID fetches exactly one student row matched by primary key.
func (s *SQLite) GetStudentByID(id int64) (types.Student, error) {
	stmt, err := s.Db.Prepare(`
		SELECT id, name, age, school, college, course, created_at
		FROM students WHERE id = ? LIMIT 1
	`)
	if err != nil {
		return types.Student{}, fmt.Errorf("GetStudentByID: prepare: %w", err)
	}
	defer stmt.Close()

	var student types.Student
	err = stmt.QueryRow(id).Scan(
		&student.ID,
		&student.Name,
		&student.Age,
		&student.School, // *string handles NULL
		&student.College,
		&student.Course,
		&student.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return types.Student{}, fmt.Errorf(
				"no student found with id %d: %w", id, storage.ErrStudentNotFound)
		}
		return types.Student{}, fmt.Errorf("GetStudentByID: scan: %w", err)
	}

	return student, nil
}

// GetStudents returns all student rows ordered by ascending ID.
func (s *SQLite) GetStudents() ([]types.Student, error) {
	stmt, err := s.Db.Prepare(`
		SELECT id, name, age, school, college, course, created_at
		FROM students ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("GetStudents: prepare: %w", err)
	}
	defer stmt.Close()

	rows, err := stmt.Query()
	if err != nil {
		return nil, fmt.Errorf("GetStudents: query: %w", err)
	}
	defer rows.Close()

	// Pre-allocate an empty (non-nil) slice so an empty table encodes
	// to [] rather than null in JSON.
	students := make([]types.Student, 0)

	for rows.Next() {
		var student types.Student
		if err := rows.Scan(
			&student.ID,
			&student.Name,
			&student.Age,
			&student.School,
			&student.College,
			&student.Course,
			&student.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("GetStudents: scan row: %w", err)
		}
		students = append(students, student)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("GetStudents: rows iteration: %w", err)
	}

	return students, nil
}

// UpdateStudentByID replaces the mutable columns of a student and
// reports how many rows the UPDATE affected. When the count is zero the
// row is re-checked: a missing row is a not-found error, a surviving row
// is returned alongside the zero count so the client can run its
// re-fetch-and-compare verification.
func (s *SQLite) UpdateStudentByID(id int64, draft types.StudentDraft) (types.Student, int64, error) {
	stmt, err := s.Db.Prepare(`
		UPDATE students SET name = ?, age = ?, school = ?, college = ?, course = ?
		WHERE id = ?
	`)
	if err != nil {
		return types.Student{}, 0, fmt.Errorf("UpdateStudentByID: prepare: %w", err)
	}
	defer stmt.Close()

	result, err := stmt.Exec(draft.Name, draft.Age, draft.School, draft.College, draft.Course, id)
	if err != nil {
		return types.Student{}, 0, fmt.Errorf("UpdateStudentByID: exec: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return types.Student{}, 0, fmt.Errorf("UpdateStudentByID: rows affected: %w", err)
	}

	// Re-fetch so the caller gets exactly what is stored. This also
	// distinguishes "zero rows because the id is gone" from "zero rows
	// but the record is still there".
	student, err := s.GetStudentByID(id)
	if err != nil {
		return types.Student{}, affected, err
	}

	return student, affected, nil
}

// DeleteStudentByID removes a student row by primary key. A delete that
// matches nothing reports not-found rather than silently succeeding.
func (s *SQLite) DeleteStudentByID(id int64) error {
	stmt, err := s.Db.Prepare("DELETE FROM students WHERE id = ?")
	if err != nil {
		return fmt.Errorf("DeleteStudentByID: prepare: %w", err)
	}
	defer stmt.Close()

	result, err := stmt.Exec(id)
	if err != nil {
		return fmt.Errorf("DeleteStudentByID: exec: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("DeleteStudentByID: rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("no student found with id %d: %w", id, storage.ErrStudentNotFound)
	}

	return nil
}
