// Error taxonomy for synchronizer outcomes. Every failed operation
// terminates in exactly one of these (or a *gateway.StoreError); none
// of them is allowed to escape as a panic.

package syncer

import "fmt"

// ValidationError reports a local invariant violation. The store is
// never contacted when one of these is returned.
type ValidationError struct {
	Field  string // the violated field, lowercase wire name
	Reason string // human-readable, e.g. "is required"
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("field %s %s", e.Field, e.Reason)
}

// NotFoundError reports that the record disappeared: the identifier no
// longer resolved when reconciliation re-fetched it.
type NotFoundError struct {
	ID int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no student found with id %d", e.ID)
}

// UnconfirmedUpdateError reports a failed reconciliation: the store
// signalled zero affected rows and the re-fetched record does not match
// the submitted fields. The update is treated as failed, but the
// mismatching field is named so the failure can be investigated.
type UnconfirmedUpdateError struct {
	ID    int64
	Field string // first field that differed on re-fetch
}

func (e *UnconfirmedUpdateError) Error() string {
	return fmt.Sprintf(
		"update of student %d could not be confirmed: field %s was not changed",
		e.ID, e.Field)
}
