// Package view projects record snapshots into display-ready rows.
//
// Everything here is a pure function: same snapshot in, same rows out,
// no side effects. The controller re-invokes Project wholesale after
// every successful mutation — the displayed list is never patched
// incrementally, so there is nothing to keep in sync.
package view

import (
	"fmt"

	"github.com/aanand-mishra/student-registry/internal/types"
)

// Row is one display-ready line of the student table.
type Row struct {
	ID      int64
	Name    string
	Age     string
	School  string
	College string
	Course  string

	// Placeholder marks the single "no records" row projected for an
	// empty snapshot. All other fields are empty when it is set.
	Placeholder bool
}

// PlaceholderText is the message shown when the store holds no records.
const PlaceholderText = "No students available."

// Project turns an ordered record snapshot into one Row per record,
// preserving store order. An empty snapshot projects to exactly one
// placeholder row. A null school displays as "N/A".
func Project(students []types.Student) []Row {
	if len(students) == 0 {
		return []Row{{Name: PlaceholderText, Placeholder: true}}
	}

	rows := make([]Row, 0, len(students))
	for _, s := range students {
		school := "N/A"
		if s.School != nil {
			school = *s.School
		}
		rows = append(rows, Row{
			ID:      s.ID,
			Name:    s.Name,
			Age:     fmt.Sprintf("%d", s.Age),
			School:  school,
			College: s.College,
			Course:  s.Course,
		})
	}
	return rows
}
