// Package postgres provides a PostgreSQL-backed implementation of the
// storage.Storage interface via the pgx driver's database/sql adapter.
//
// The schema is identical to the sqlite backend except that the store
// itself assigns created_at (NOW() at insert) and IDs come from a
// sequence. Selected with storage.driver: postgres in the config.
package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/aanand-mishra/student-registry/internal/config"
	"github.com/aanand-mishra/student-registry/internal/storage"
	"github.com/aanand-mishra/student-registry/internal/types"

	// Registers the "pgx" driver with database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Postgres is the concrete implementation of storage.Storage.
type Postgres struct {
	Db *sql.DB
}

// New connects to the database at cfg.Storage.DSN and creates the
// students table if it does not already exist.
func New(cfg *config.Config) (*Postgres, error) {
	db, err := sql.Open("pgx", cfg.Storage.DSN)
	if err != nil {
		return nil, fmt.Errorf("postgres.New: open db: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("postgres.New: ping: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS students (
			id         BIGSERIAL PRIMARY KEY,
			name       TEXT        NOT NULL,
			age        INTEGER     NOT NULL,
			school     TEXT,
			college    TEXT        NOT NULL,
			course     TEXT        NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`)
	if err != nil {
		return nil, fmt.Errorf("postgres.New: create table: %w", err)
	}

	return &Postgres{Db: db}, nil
}

// CreateStudent inserts a new row. Postgres has no LastInsertId, so the
// generated key comes back through RETURNING.
func (p *Postgres) CreateStudent(draft types.StudentDraft) (int64, error) {
	var id int64
	err := p.Db.QueryRow(`
		INSERT INTO students (name, age, school, college, course)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, draft.Name, draft.Age, draft.School, draft.College, draft.Course).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("CreateStudent: insert: %w", err)
	}

	return id, nil
}

// GetStudentByID fetches exactly one student row matched by primary key.
func (p *Postgres) GetStudentByID(id int64) (types.Student, error) {
	var student types.Student
	err := p.Db.QueryRow(`
		SELECT id, name, age, school, college, course,
		       to_char(created_at AT TIME ZONE 'UTC', 'YYYY-MM-DD"T"HH24:MI:SS"Z"')
		FROM students WHERE id = $1
	`, id).Scan(
		&student.ID,
		&student.Name,
		&student.Age,
		&student.School,
		&student.College,
		&student.Course,
		&student.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Student{}, fmt.Errorf(
				"no student found with id %d: %w", id, storage.ErrStudentNotFound)
		}
		return types.Student{}, fmt.Errorf("GetStudentByID: scan: %w", err)
	}

	return student, nil
}

// GetStudents returns all student rows ordered by ascending ID.
func (p *Postgres) GetStudents() ([]types.Student, error) {
	rows, err := p.Db.Query(`
		SELECT id, name, age, school, college, course,
		       to_char(created_at AT TIME ZONE 'UTC', 'YYYY-MM-DD"T"HH24:MI:SS"Z"')
		FROM students ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("GetStudents: query: %w", err)
	}
	defer rows.Close()

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
// reports how many rows the UPDATE affected. Row-level security policies
// can legitimately accept the write while reporting zero rows — the
// count crosses the API so clients can verify for themselves.
func (p *Postgres) UpdateStudentByID(id int64, draft types.StudentDraft) (types.Student, int64, error) {
	result, err := p.Db.Exec(`
		UPDATE students SET name = $1, age = $2, school = $3, college = $4, course = $5
		WHERE id = $6
	`, draft.Name, draft.Age, draft.School, draft.College, draft.Course, id)
	if err != nil {
		return types.Student{}, 0, fmt.Errorf("UpdateStudentByID: exec: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return types.Student{}, 0, fmt.Errorf("UpdateStudentByID: rows affected: %w", err)
	}

	student, err := p.GetStudentByID(id)
	if err != nil {
		return types.Student{}, affected, err
	}

	return student, affected, nil
}

// DeleteStudentByID removes a student row by primary key.
func (p *Postgres) DeleteStudentByID(id int64) error {
	result, err := p.Db.Exec("DELETE FROM students WHERE id = $1", id)
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
