// Package student contains all HTTP handlers related to the Student resource.
//
// Handlers are built with the closure / factory pattern: each exported
// function accepts its dependencies (storage) and returns the actual
// http.HandlerFunc. The factory runs once at route registration; the
// returned closure runs on every request.
//
// Route table (registered in cmd/registry-server):
//
//	POST   /api/students        → create a new student
//	GET    /api/students        → list all students (ascending by id)
//	GET    /api/students/{id}   → get one student by ID
//	PUT    /api/students/{id}   → update a student
//	DELETE /api/students/{id}   → delete a student
package student

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/aanand-mishra/student-registry/internal/storage"
	"github.com/aanand-mishra/student-registry/internal/types"
	"github.com/aanand-mishra/student-registry/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

// UpdateReply is the PUT response body.
//
// Rows is the affected-row count the store reported for the UPDATE.
// It is part of the wire contract on purpose: a store running under
// row-level security can accept a write yet report zero rows, and the
// client's synchronizer needs that signal to decide whether to verify
// the write by re-fetching. Collapsing it into a boolean would hide
// exactly the case that matters.
type UpdateReply struct {
	Student types.Student `json:"student"`
	Rows    int64         `json:"rows"`
}

// ─────────────────────────────────────────────────────────────────────────────
// New handles POST /api/students
// Creates a new student from the JSON request body.
//
// Request body (JSON):
//
//	{ "name": "Ana", "age": 22, "school": null, "college": "MIT", "course": "CS" }
//
// Success response (201 Created):
//
//	{ "id": 1 }
//
// Error responses:
//
//	400 Bad Request  — empty body, malformed JSON, or failed validation
//	500 Internal     — database error
//
// ─────────────────────────────────────────────────────────────────────────────
func New(storage storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("creating a student")

		var draft types.StudentDraft
		err := json.NewDecoder(r.Body).Decode(&draft)

		if errors.Is(err, io.EOF) {
			response.WriteJSON(w, http.StatusBadRequest,
				response.GeneralError(errors.New("request body is empty")))
			return
		}
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		// Trim before validating so whitespace-only fields fail the
		// required check. The store only ever sees normalized drafts.
		draft = draft.Normalized()

		if err := validator.New().Struct(draft); err != nil {
			validateErrs := err.(validator.ValidationErrors)
			response.WriteJSON(w, http.StatusBadRequest,
				response.ValidationError(validateErrs))
			return
		}

		lastID, err := storage.CreateStudent(draft)
		if err != nil {
			response.WriteJSON(w, http.StatusInternalServerError,
				response.GeneralError(err))
			return
		}

		slog.Info("student created", slog.Int64("id", lastID))

		response.WriteJSON(w, http.StatusCreated, map[string]int64{"id": lastID})
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// GetByID handles GET /api/students/{id}
// Fetches a single student by their primary key ID.
//
// Success response (200 OK):
//
//	{ "id": 1, "name": "Ana", "age": 22, "school": null, ... }
//
// Error responses:
//
//	400 Bad Request  — id is not a valid integer
//	404 Not Found    — no student with that id
//	500 Internal     — database error
//
// ─────────────────────────────────────────────────────────────────────────────
func GetByID(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("getting a student", slog.String("id", id))

		intID, err := strconv.ParseInt(id, 10, 64)
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest,
				response.GeneralError(errors.New("invalid id: must be an integer")))
			return
		}

		student, err := store.GetStudentByID(intID)
		if err != nil {
			if errors.Is(err, storage.ErrStudentNotFound) {
				response.WriteJSON(w, http.StatusNotFound, response.GeneralError(err))
				return
			}
			slog.Error("error getting student",
				slog.String("id", id),
				slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError,
				response.GeneralError(err))
			return
		}

		response.WriteJSON(w, http.StatusOK, student)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// GetList handles GET /api/students
// Returns a JSON array of all students ordered by ascending id.
//
// Returns an empty array [] (not null, not an error) when there are no
// students — an empty store is a normal state, not a failure.
// ─────────────────────────────────────────────────────────────────────────────
func GetList(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("getting all students")

		students, err := store.GetStudents()
		if err != nil {
			slog.Error("error getting students", slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError,
				response.GeneralError(err))
			return
		}

		response.WriteJSON(w, http.StatusOK, students)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Update handles PUT /api/students/{id}
// Replaces ALL mutable fields of an existing student. ID and created_at
// cannot be changed.
//
// Success response (200 OK):
//
//	{ "student": { "id": 1, "name": "Ana", ... }, "rows": 1 }
//
// A response with "rows": 0 means the store accepted the call but
// reported no affected rows — the client must treat this as unverified,
// not as success.
//
// Error responses:
//
//	400 Bad Request  — invalid id, empty body, or validation failure
//	404 Not Found    — no student with that id
//	500 Internal     — database error
//
// ─────────────────────────────────────────────────────────────────────────────
func Update(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("updating a student", slog.String("id", id))

		intID, err := strconv.ParseInt(id, 10, 64)
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest,
				response.GeneralError(errors.New("invalid id: must be an integer")))
			return
		}

		var draft types.StudentDraft
		err = json.NewDecoder(r.Body).Decode(&draft)
		if errors.Is(err, io.EOF) {
			response.WriteJSON(w, http.StatusBadRequest,
				response.GeneralError(errors.New("request body is empty")))
			return
		}
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		draft = draft.Normalized()

		// Same rules as creation.
		if err := validator.New().Struct(draft); err != nil {
			validateErrs := err.(validator.ValidationErrors)
			response.WriteJSON(w, http.StatusBadRequest,
				response.ValidationError(validateErrs))
			return
		}

		updated, rows, err := store.UpdateStudentByID(intID, draft)
		if err != nil {
			if errors.Is(err, storage.ErrStudentNotFound) {
				response.WriteJSON(w, http.StatusNotFound, response.GeneralError(err))
				return
			}
			slog.Error("error updating student",
				slog.String("id", id),
				slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError,
				response.GeneralError(err))
			return
		}

		slog.Info("student updated", slog.String("id", id), slog.Int64("rows", rows))
		response.WriteJSON(w, http.StatusOK, UpdateReply{Student: updated, Rows: rows})
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Delete handles DELETE /api/students/{id}
// Permanently removes a student record from the database.
//
// Success response (200 OK):
//
//	{ "status": "deleted" }
//
// Error responses:
//
//	400 Bad Request  — invalid id
//	404 Not Found    — no student with that id (already deleted)
//	500 Internal     — database error
//
// ─────────────────────────────────────────────────────────────────────────────
func Delete(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("deleting a student", slog.String("id", id))

		intID, err := strconv.ParseInt(id, 10, 64)
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest,
				response.GeneralError(errors.New("invalid id: must be an integer")))
			return
		}

		if err := store.DeleteStudentByID(intID); err != nil {
			if errors.Is(err, storage.ErrStudentNotFound) {
				response.WriteJSON(w, http.StatusNotFound, response.GeneralError(err))
				return
			}
			slog.Error("error deleting student",
				slog.String("id", id),
				slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError,
				response.GeneralError(err))
			return
		}

		slog.Info("student deleted", slog.String("id", id))
		response.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}

// Routes registers every student handler on mux. Pulled out of main so
// tests (and the gateway's end-to-end tests) can mount the exact same
// routing against a fake storage.
func Routes(mux *http.ServeMux, store storage.Storage) {
	mux.HandleFunc("POST /api/students", New(store))
	mux.HandleFunc("GET /api/students", GetList(store))
	mux.HandleFunc("GET /api/students/{id}", GetByID(store))
	mux.HandleFunc("PUT /api/students/{id}", Update(store))
	mux.HandleFunc("DELETE /api/students/{id}", Delete(store))
}
