// Package storage defines the Storage interface — a contract that any
// database backend must satisfy to work with this application.
//
// Handlers (HTTP layer) should not know or care which database they are
// talking to. By depending only on this interface, switching backends
// means implementing it for the new database and changing one line in
// main.go, and tests can pass a fake without a real database.
package storage

import (
	"errors"

	"github.com/aanand-mishra/student-registry/internal/types"
)

// ErrStudentNotFound is returned (wrapped) when an identifier does not
// resolve to a record. Handlers translate it to 404 so clients can tell
// "gone" apart from "the store broke".
var ErrStudentNotFound = errors.New("student not found")

// Storage is the database contract.
// Any concrete type that implements ALL of these methods automatically
// satisfies this interface — Go does this implicitly (no "implements"
// keyword required).
type Storage interface {
	// CreateStudent inserts a new record and returns the store-assigned
	// primary-key ID. The store also assigns created_at. The draft must
	// already be normalized and validated by the caller.
	CreateStudent(draft types.StudentDraft) (int64, error)

	// GetStudentByID fetches a single student by primary key.
	// Returns an error wrapping ErrStudentNotFound if no row matches.
	GetStudentByID(id int64) (types.Student, error)

	// GetStudents returns every student ordered by ascending ID.
	// Returns an empty slice (not nil) when the table is empty.
	GetStudents() ([]types.Student, error)

	// UpdateStudentByID replaces the mutable fields of an existing
	// student. It returns the stored row after the write together with
	// the number of rows the UPDATE reported as affected.
	//
	// The count is part of the contract: under row-level security and
	// similar policies a store can accept a write yet report zero
	// affected rows, and clients need that signal to run their own
	// verification. A zero count with no surviving row is reported as
	// ErrStudentNotFound instead.
	UpdateStudentByID(id int64, draft types.StudentDraft) (types.Student, int64, error)

	// DeleteStudentByID removes a student permanently. Deleting an
	// identifier that does not exist returns an error wrapping
	// ErrStudentNotFound.
	DeleteStudentByID(id int64) error
}
