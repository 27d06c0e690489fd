// Package types holds all shared data structures (models) used across
// the application. Keeping them in one place prevents import cycles —
// handlers, storage, gateway, and the synchronizer can all import types
// without depending on each other.
package types

import "strings"

// Student represents one student record as stored by the registry.
//
// ID and CreatedAt are assigned by the store on insert and are immutable
// for the lifetime of the record. Every other field is replaceable via
// an update.
//
// School is a pointer because the column is nullable: nil means the
// student reported no school, which is different from an empty string
// (an empty string is never stored — see StudentDraft.Normalized).
type Student struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Age       int     `json:"age"`
	School    *string `json:"school"`
	College   string  `json:"college"`
	Course    string  `json:"course"`
	CreatedAt string  `json:"created_at"` // RFC 3339 UTC, set by the store
}

// StudentDraft carries the caller-supplied fields of a create or update
// request — everything except the store-assigned ID and CreatedAt.
//
// The validate:"..." tags are checked by go-playground/validator.
// Always call Normalized before validating: a name of "   " must fail
// the required check, and that only happens after trimming.
type StudentDraft struct {
	Name    string  `json:"name"    validate:"required"`
	Age     int     `json:"age"     validate:"required,gte=1,lte=100"`
	School  *string `json:"school"`
	College string  `json:"college" validate:"required"`
	Course  string  `json:"course"  validate:"required"`
}

// Normalized returns a copy of the draft with surrounding whitespace
// trimmed from every text field. A school that is absent or trims to
// the empty string becomes nil, so the store only ever sees NULL or
// non-empty text in that column.
func (d StudentDraft) Normalized() StudentDraft {
	out := d
	out.Name = strings.TrimSpace(d.Name)
	out.College = strings.TrimSpace(d.College)
	out.Course = strings.TrimSpace(d.Course)
	out.School = nil
	if d.School != nil {
		if s := strings.TrimSpace(*d.School); s != "" {
			out.School = &s
		}
	}
	return out
}

// FirstMismatch compares every mutable field of s against the draft and
// returns the name of the first field that differs, or "" when they all
// match. School matches when both sides are null or both hold the same
// non-empty text.
//
// This is the comparison the synchronizer runs when the store reports an
// ambiguous zero-rows update: equality here is the proof that the write
// actually took effect.
func (d StudentDraft) FirstMismatch(s Student) string {
	switch {
	case s.Name != d.Name:
		return "name"
	case s.Age != d.Age:
		return "age"
	case !schoolEqual(s.School, d.School):
		return "school"
	case s.College != d.College:
		return "college"
	case s.Course != d.Course:
		return "course"
	}
	return ""
}

// Matches reports whether every mutable field of s equals the draft.
func (d StudentDraft) Matches(s Student) bool {
	return d.FirstMismatch(s) == ""
}

func schoolEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// Ptr returns a pointer to v. Handy for building nullable fields in
// literals and tests.
func Ptr[T any](v T) *T { return &v }
