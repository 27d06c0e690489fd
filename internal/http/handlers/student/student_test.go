package student

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aanand-mishra/student-registry/internal/storage"
	"github.com/aanand-mishra/student-registry/internal/types"
	"github.com/aanand-mishra/student-registry/internal/utils/response"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStorage satisfies storage.Storage with preset results.
type fakeStorage struct {
	createID  int64
	createErr error
	created   *types.StudentDraft

	student types.Student
	getErr  error

	students []types.Student
	listErr  error

	updated    types.Student
	updateRows int64
	updateErr  error

	deleteErr error
}

func (f *fakeStorage) CreateStudent(draft types.StudentDraft) (int64, error) {
	f.created = &draft
	return f.createID, f.createErr
}

func (f *fakeStorage) GetStudentByID(id int64) (types.Student, error) {
	return f.student, f.getErr
}

func (f *fakeStorage) GetStudents() ([]types.Student, error) {
	return f.students, f.listErr
}

func (f *fakeStorage) UpdateStudentByID(id int64, draft types.StudentDraft) (types.Student, int64, error) {
	return f.updated, f.updateRows, f.updateErr
}

func (f *fakeStorage) DeleteStudentByID(id int64) error {
	return f.deleteErr
}

func serve(t *testing.T, store storage.Storage, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	mux := http.NewServeMux()
	Routes(mux, store)

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func notFoundErr(id int64) error {
	return fmt.Errorf("no student found with id %d: %w", id, storage.ErrStudentNotFound)
}

func TestCreate_Valid(t *testing.T) {
	store := &fakeStorage{createID: 4}

	rec := serve(t, store, http.MethodPost, "/api/students",
		`{"name":" Ana ","age":22,"school":null,"college":"MIT","course":"CS"}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"id":4}`, rec.Body.String())
	require.NotNil(t, store.created)
	assert.Equal(t, "Ana", store.created.Name, "draft is normalized before it reaches storage")
}

func TestCreate_EmptyBody(t *testing.T) {
	rec := serve(t, &fakeStorage{}, http.MethodPost, "/api/students", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp response.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, response.StatusError, resp.Status)
	assert.Contains(t, resp.Error, "empty")
}

func TestCreate_ValidationFailure(t *testing.T) {
	store := &fakeStorage{}

	rec := serve(t, store, http.MethodPost, "/api/students",
		`{"name":"Ana","age":150,"college":"MIT","course":"CS"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, store.created, "storage must not be called on validation failure")

	var resp response.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Error, "Age")
}

func TestGetByID_NotFound(t *testing.T) {
	store := &fakeStorage{getErr: notFoundErr(9)}

	rec := serve(t, store, http.MethodGet, "/api/students/9", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetByID_InvalidID(t *testing.T) {
	rec := serve(t, &fakeStorage{}, http.MethodGet, "/api/students/abc", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetList_EmptyIsArrayNotNull(t *testing.T) {
	store := &fakeStorage{students: []types.Student{}}

	rec := serve(t, store, http.MethodGet, "/api/students", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
}

func TestUpdate_ReplyCarriesRowCount(t *testing.T) {
	store := &fakeStorage{
		updated:    types.Student{ID: 3, Name: "Ana", Age: 23, College: "MIT", Course: "CS"},
		updateRows: 1,
	}

	rec := serve(t, store, http.MethodPut, "/api/students/3",
		`{"name":"Ana","age":23,"college":"MIT","course":"CS"}`)

	assert.Equal(t, http.StatusOK, rec.Code)

	var reply UpdateReply
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reply))
	assert.Equal(t, int64(1), reply.Rows)
	assert.Equal(t, 23, reply.Student.Age)
}

func TestUpdate_ZeroRowsStillOK(t *testing.T) {
	// The ambiguous signal must cross the wire as a 200 with rows: 0,
	// not as an error — the client decides what it means.
	store := &fakeStorage{
		updated:    types.Student{ID: 3, Name: "Ana", Age: 23, College: "MIT", Course: "CS"},
		updateRows: 0,
	}

	rec := serve(t, store, http.MethodPut, "/api/students/3",
		`{"name":"Ana","age":23,"college":"MIT","course":"CS"}`)

	assert.Equal(t, http.StatusOK, rec.Code)

	var reply UpdateReply
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reply))
	assert.Equal(t, int64(0), reply.Rows)
}

func TestUpdate_NotFound(t *testing.T) {
	store := &fakeStorage{updateErr: notFoundErr(3)}

	rec := serve(t, store, http.MethodPut, "/api/students/3",
		`{"name":"Ana","age":23,"college":"MIT","course":"CS"}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDelete_OK(t *testing.T) {
	rec := serve(t, &fakeStorage{}, http.MethodDelete, "/api/students/3", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"deleted"}`, rec.Body.String())
}

func TestDelete_NotFound(t *testing.T) {
	store := &fakeStorage{deleteErr: notFoundErr(3)}

	rec := serve(t, store, http.MethodDelete, "/api/students/3", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDelete_StorageFailure(t *testing.T) {
	store := &fakeStorage{deleteErr: errors.New("disk on fire")}

	rec := serve(t, store, http.MethodDelete, "/api/students/3", "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
