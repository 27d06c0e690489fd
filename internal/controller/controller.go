// Package controller binds user-facing triggers (submit, click, confirm)
// to synchronizer invocations and drives the renderer and notification
// surface afterwards.
//
// Outcome handling is uniform across triggers:
//
//   - success: reset the relevant input surface, show a success toast,
//     then re-fetch the full record list and re-render it. The displayed
//     list is never patched locally from the submitted values.
//   - failure: show a failure toast carrying the error's message and
//     leave the input surface untouched so the user can correct and
//     resubmit.
//
// At most one edit session is open at a time. Sessions carry a token;
// opening a new session replaces the token, which invalidates any save
// still in flight for the old session. A stale save keeps its outcome
// toast (no silent failures) but no longer touches the form, and the
// view refresh it triggers re-fetches, so the last confirmed write wins.
package controller

import (
	"context"
	"log/slog"
	"sync"

	"github.com/aanand-mishra/student-registry/internal/types"
	"github.com/aanand-mishra/student-registry/internal/view"
	"github.com/google/uuid"
)

// Synchronizer is the mutation workflow the controller invokes.
// *syncer.Syncer satisfies it (Create's id return is dropped here).
type Synchronizer interface {
	Create(ctx context.Context, draft types.StudentDraft) (int64, error)
	Update(ctx context.Context, id int64, draft types.StudentDraft) error
	Delete(ctx context.Context, id int64) error
}

// Lister retrieves the full record list for re-rendering.
// *gateway.Client satisfies it.
type Lister interface {
	List(ctx context.Context) ([]types.Student, error)
}

// Notifier is the toast surface.
type Notifier interface {
	Success(text string)
	Failure(text string)
}

// Confirmer asks the user to confirm a destructive action.
type Confirmer interface {
	Confirm(prompt string) bool
}

// UI is the input/display surface the controller drives.
type UI interface {
	Render(rows []view.Row)
	ResetCreateForm()
	CloseEditForm()
}

type editSession struct {
	token uuid.UUID
	id    int64
}

// Controller wires triggers to the synchronizer. Safe for concurrent
// use; the mutex guards the snapshot and the edit session, never a
// network call.
type Controller struct {
	sync    Synchronizer
	lister  Lister
	ui      UI
	notify  Notifier
	confirm Confirmer
	log     *slog.Logger

	mu      sync.Mutex
	records []types.Student // last rendered snapshot
	session *editSession
}

// New returns a Controller. Call Refresh once after construction to
// populate the initial view (the page-load fetch).
func New(sync Synchronizer, lister Lister, ui UI, notify Notifier, confirm Confirmer, log *slog.Logger) *Controller {
	return &Controller{
		sync:    sync,
		lister:  lister,
		ui:      ui,
		notify:  notify,
		confirm: confirm,
		log:     log,
	}
}

// Refresh re-fetches the full record list and re-renders it. Always a
// full reload; never an incremental patch.
func (c *Controller) Refresh(ctx context.Context) {
	students, err := c.lister.List(ctx)
	if err != nil {
		c.log.Error("refresh failed", slog.String("error", err.Error()))
		c.notify.Failure("Error loading students: " + err.Error())
		return
	}

	c.mu.Lock()
	c.records = students
	c.mu.Unlock()

	c.ui.Render(view.Project(students))
}

// SubmitCreate handles the create-form submission.
func (c *Controller) SubmitCreate(ctx context.Context, draft types.StudentDraft) {
	if _, err := c.sync.Create(ctx, draft); err != nil {
		c.notify.Failure("Failed to add student: " + err.Error())
		return
	}

	c.ui.ResetCreateForm()
	c.notify.Success("Student added successfully!")
	c.Refresh(ctx)
}

// OpenEdit starts an edit session for the record with the given id and
// returns its current fields for pre-filling the form. Opening a new
// session while one is open discards the previous session's in-progress
// edits — there is no merge.
func (c *Controller) OpenEdit(id int64) (types.Student, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, s := range c.records {
		if s.ID == id {
			if c.session != nil {
				c.log.Info("replacing open edit session",
					slog.Int64("previous_id", c.session.id), slog.Int64("id", id))
			}
			c.session = &editSession{token: uuid.New(), id: id}
			return s, true
		}
	}

	c.notify.Failure("Invalid student ID. Cannot open edit form.")
	return types.Student{}, false
}

// SaveEdit submits the open edit session's fields. If the session was
// replaced while the save was in flight, the outcome is still reported
// but the form is left to the new session.
func (c *Controller) SaveEdit(ctx context.Context, draft types.StudentDraft) {
	c.mu.Lock()
	if c.session == nil {
		c.mu.Unlock()
		c.notify.Failure("No student selected for editing.")
		return
	}
	token := c.session.token
	id := c.session.id
	c.mu.Unlock()

	err := c.sync.Update(ctx, id, draft)

	c.mu.Lock()
	stale := c.session == nil || c.session.token != token
	if !stale && err == nil {
		c.session = nil
	}
	c.mu.Unlock()

	if err != nil {
		c.notify.Failure("Failed to update student: " + err.Error())
		return
	}

	if !stale {
		c.ui.CloseEditForm()
	}
	c.notify.Success("Student updated successfully!")
	c.Refresh(ctx)
}

// Delete asks for confirmation and then removes the record. Declining
// the confirmation is a no-op, not a failure.
func (c *Controller) Delete(ctx context.Context, id int64) {
	if !c.confirm.Confirm("Are you sure you want to delete this student?") {
		return
	}

	if err := c.sync.Delete(ctx, id); err != nil {
		c.notify.Failure("Failed to delete student: " + err.Error())
		return
	}

	c.notify.Success("Student deleted successfully!")
	c.Refresh(ctx)
}
