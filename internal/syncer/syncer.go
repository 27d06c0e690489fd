// Package syncer implements the record synchronization workflow every
// mutation follows: validate → submit to the store → reconcile an
// ambiguous result → report the outcome.
//
// Each invocation walks a fixed sequence of states and is stateless
// between invocations:
//
//	Validating → Submitting → (update only) Reconciling → done
//
// Reconciling exists because the store can accept a write while
// reporting zero affected rows. Treating that as failure would produce
// false negatives; treating it as success would mask real failures. The
// only way to tell them apart without a stronger write acknowledgement
// is to re-fetch the record and compare it field by field against what
// was submitted.
package syncer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aanand-mishra/student-registry/internal/gateway"
	"github.com/aanand-mishra/student-registry/internal/types"
	"github.com/go-playground/validator/v10"
)

// Gateway is the slice of the store client the synchronizer needs.
// *gateway.Client satisfies it; tests substitute a fake.
type Gateway interface {
	Create(ctx context.Context, draft types.StudentDraft) (int64, error)
	Update(ctx context.Context, id int64, draft types.StudentDraft) (gateway.UpdateOutcome, error)
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (types.Student, error)
}

// Syncer orchestrates validated mutations against the store.
// Safe for concurrent use; it holds no per-operation state.
type Syncer struct {
	gw       Gateway
	validate *validator.Validate
	log      *slog.Logger
}

// New returns a Syncer backed by gw.
func New(gw Gateway, log *slog.Logger) *Syncer {
	return &Syncer{
		gw:       gw,
		validate: validator.New(),
		log:      log,
	}
}

// Create validates the draft and inserts it. Returns the store-assigned
// ID on success, or one of *ValidationError / *gateway.StoreError /
// a wrapped transport error.
func (s *Syncer) Create(ctx context.Context, draft types.StudentDraft) (int64, error) {
	draft = draft.Normalized()
	if err := s.checkDraft(draft); err != nil {
		return 0, err
	}

	id, err := s.gw.Create(ctx, draft)
	if err != nil {
		s.log.Error("create rejected", slog.String("error", err.Error()))
		return 0, storeFailure("create", err)
	}

	s.log.Info("student created", slog.Int64("id", id))
	return id, nil
}

// Update validates the draft and replaces the record's mutable fields.
// When the store reports an ambiguous zero-rows outcome the record is
// re-fetched and compared against the submitted fields:
//
//   - identifier gone             → *NotFoundError
//   - every mutable field matches → success (the write took effect)
//   - any field differs           → *UnconfirmedUpdateError
func (s *Syncer) Update(ctx context.Context, id int64, draft types.StudentDraft) error {
	if id <= 0 {
		return &ValidationError{Field: "id", Reason: "must be a positive integer"}
	}
	draft = draft.Normalized()
	if err := s.checkDraft(draft); err != nil {
		return err
	}

	outcome, err := s.gw.Update(ctx, id, draft)
	if err != nil {
		s.log.Error("update rejected",
			slog.Int64("id", id), slog.String("error", err.Error()))
		return storeFailure("update", err)
	}

	if outcome.Status == gateway.UpdateConfirmed {
		s.log.Info("student updated", slog.Int64("id", id))
		return nil
	}

	// Reconciling: the store reported zero affected rows.
	s.log.Warn("update reported zero rows, verifying by re-fetch", slog.Int64("id", id))

	got, err := s.gw.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gateway.ErrNotFound) {
			return &NotFoundError{ID: id}
		}
		return storeFailure("update verification", err)
	}

	if field := draft.FirstMismatch(got); field != "" {
		s.log.Error("update verification failed",
			slog.Int64("id", id), slog.String("field", field))
		return &UnconfirmedUpdateError{ID: id, Field: field}
	}

	s.log.Info("update verified by re-fetch", slog.Int64("id", id))
	return nil
}

// Delete removes the record with the given id. Deleting an identifier
// that no longer exists is reported as a failure, never a fault.
func (s *Syncer) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return &ValidationError{Field: "id", Reason: "must be a positive integer"}
	}

	if err := s.gw.Delete(ctx, id); err != nil {
		s.log.Error("delete rejected",
			slog.Int64("id", id), slog.String("error", err.Error()))
		return storeFailure("delete", err)
	}

	s.log.Info("student deleted", slog.Int64("id", id))
	return nil
}

// checkDraft enforces the record invariants against a normalized draft.
// The first violated field is reported; the gateway is never contacted
// when a violation is found.
func (s *Syncer) checkDraft(draft types.StudentDraft) error {
	err := s.validate.Struct(draft)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		// validator.Struct only errors this way on a non-struct input,
		// which cannot happen here; keep the outcome well-formed anyway.
		return &ValidationError{Field: "draft", Reason: "is invalid"}
	}

	e := fieldErrs[0]
	field := wireName(e.Field())
	switch e.ActualTag() {
	case "required":
		return &ValidationError{Field: field, Reason: "is required"}
	case "gte", "lte":
		return &ValidationError{Field: field, Reason: "must be between 1 and 100"}
	default:
		return &ValidationError{Field: field, Reason: "is invalid"}
	}
}

// wireName maps a struct field name to its lowercase wire name, so
// validation failures name fields the way the API and UI spell them.
func wireName(structField string) string {
	switch structField {
	case "Name":
		return "name"
	case "Age":
		return "age"
	case "School":
		return "school"
	case "College":
		return "college"
	case "Course":
		return "course"
	}
	return structField
}

// storeFailure wraps a submit-phase error. Store rejections already
// carry their diagnostic as *gateway.StoreError and pass through
// untouched; transport errors get the operation name prefixed.
func storeFailure(op string, err error) error {
	var se *gateway.StoreError
	if errors.As(err, &se) {
		return err
	}
	if errors.Is(err, gateway.ErrNotFound) {
		return err
	}
	return fmt.Errorf("%s failed: %w", op, err)
}
