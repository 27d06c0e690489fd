// Package gateway is the boundary between the client and the remote
// registry store. It issues exactly one HTTP round trip per operation,
// owns no state, and translates remote failures into typed outcomes.
//
// There is deliberately no retry logic here — retry and verification
// policy belongs to the synchronizer, which needs to know precisely
// what the store said on the single attempt.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/aanand-mishra/student-registry/internal/types"
)

// ErrNotFound reports that an identifier did not resolve to a record.
// Callers use errors.Is to tell it apart from store rejections.
var ErrNotFound = errors.New("student not found")

// StoreError is a rejection reported by the store itself (as opposed to
// transport-level unavailability, which surfaces as a plain wrapped
// error). Message preserves the store's diagnostic text verbatim.
type StoreError struct {
	Op      string // which operation the store rejected
	Message string
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store rejected %s: %s", e.Op, e.Message)
}

// UpdateStatus distinguishes the two non-failure results an update can
// have. A boolean is not enough: the store may accept a write yet
// report zero affected rows (seen with row-level security policies),
// and that case must be handled explicitly by every caller.
type UpdateStatus int

const (
	// UpdateConfirmed: the store reported at least one affected row and
	// returned the stored record.
	UpdateConfirmed UpdateStatus = iota

	// UpdateAmbiguousNoRows: the store accepted the call but reported
	// zero affected rows. Neither success nor failure — the caller must
	// verify by re-fetching.
	UpdateAmbiguousNoRows
)

// UpdateOutcome is the result of an accepted update call.
// Student is only meaningful when Status is UpdateConfirmed.
type UpdateOutcome struct {
	Status  UpdateStatus
	Student types.Student
}

// Client talks to one registry server. Safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
}

// New returns a Client for the registry server at baseURL. Every round
// trip is bounded by timeout.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// envelope mirrors the server's error response shape.
type envelope struct {
	Status string `json:"status"`
	Error  string `json:"error"`
}

// updateReply mirrors the server's PUT response shape.
type updateReply struct {
	Student types.Student `json:"student"`
	Rows    int64         `json:"rows"`
}

// Create inserts a new record and returns the store-assigned ID.
// The draft must already be normalized and validated by the caller.
func (c *Client) Create(ctx context.Context, draft types.StudentDraft) (int64, error) {
	var reply struct {
		ID int64 `json:"id"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/students", draft, http.StatusCreated, &reply, "create"); err != nil {
		return 0, err
	}
	return reply.ID, nil
}

// Update replaces the mutable fields of the record with the given id.
// An accepted call with zero reported rows comes back as
// UpdateAmbiguousNoRows, never as success or failure.
func (c *Client) Update(ctx context.Context, id int64, draft types.StudentDraft) (UpdateOutcome, error) {
	var reply updateReply
	path := fmt.Sprintf("/api/students/%d", id)
	if err := c.do(ctx, http.MethodPut, path, draft, http.StatusOK, &reply, "update"); err != nil {
		return UpdateOutcome{}, err
	}

	if reply.Rows == 0 {
		return UpdateOutcome{Status: UpdateAmbiguousNoRows}, nil
	}
	return UpdateOutcome{Status: UpdateConfirmed, Student: reply.Student}, nil
}

// Delete removes the record with the given id. Deleting an id that no
// longer exists is a store rejection, not a transport fault.
func (c *Client) Delete(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/api/students/%d", id)
	return c.do(ctx, http.MethodDelete, path, nil, http.StatusOK, nil, "delete")
}

// List returns every record, ascending by id. An empty store yields an
// empty slice, not an error.
func (c *Client) List(ctx context.Context) ([]types.Student, error) {
	students := make([]types.Student, 0)
	if err := c.do(ctx, http.MethodGet, "/api/students", nil, http.StatusOK, &students, "list"); err != nil {
		return nil, err
	}
	return students, nil
}

// GetByID fetches a single record. A missing id is reported via
// ErrNotFound so the synchronizer's reconciliation can distinguish
// "gone" from "store broke".
func (c *Client) GetByID(ctx context.Context, id int64) (types.Student, error) {
	var student types.Student
	path := fmt.Sprintf("/api/students/%d", id)
	if err := c.do(ctx, http.MethodGet, path, nil, http.StatusOK, &student, "get"); err != nil {
		return types.Student{}, err
	}
	return student, nil
}

// do performs one round trip: encode body (if any), issue the request,
// and either decode the expected-status reply into out or turn the
// error envelope into a typed error.
func (c *Client) do(ctx context.Context, method, path string, body any, wantStatus int, out any, op string) error {
	var reqBody *bytes.Buffer
	if body != nil {
		reqBody = &bytes.Buffer{}
		if err := json.NewEncoder(reqBody).Encode(body); err != nil {
			return fmt.Errorf("%s: encode request: %w", op, err)
		}
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		// Transport-level unavailability: the store never saw the call
		// (or we never saw the answer).
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		var env envelope
		if decErr := json.NewDecoder(resp.Body).Decode(&env); decErr != nil || env.Error == "" {
			env.Error = resp.Status
		}
		if resp.StatusCode == http.StatusNotFound {
			return fmt.Errorf("%s: %s: %w", op, env.Error, ErrNotFound)
		}
		return &StoreError{Op: op, Message: env.Error}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%s: decode response: %w", op, err)
		}
	}
	return nil
}
