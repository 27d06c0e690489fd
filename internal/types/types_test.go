package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalized_TrimsTextFields(t *testing.T) {
	d := StudentDraft{
		Name:    "  Ana  ",
		Age:     22,
		School:  Ptr("  Central High "),
		College: " MIT",
		Course:  "CS ",
	}

	got := d.Normalized()

	assert.Equal(t, "Ana", got.Name)
	assert.Equal(t, "MIT", got.College)
	assert.Equal(t, "CS", got.Course)
	require.NotNil(t, got.School)
	assert.Equal(t, "Central High", *got.School)
}

func TestNormalized_EmptySchoolBecomesNil(t *testing.T) {
	for _, school := range []*string{nil, Ptr(""), Ptr("   ")} {
		d := StudentDraft{Name: "Ana", Age: 22, School: school, College: "MIT", Course: "CS"}
		assert.Nil(t, d.Normalized().School)
	}
}

func TestFirstMismatch(t *testing.T) {
	base := Student{ID: 1, Name: "Ana", Age: 22, School: nil, College: "MIT", Course: "CS"}
	draft := StudentDraft{Name: "Ana", Age: 22, School: nil, College: "MIT", Course: "CS"}

	tests := []struct {
		name   string
		mutate func(*Student)
		want   string
	}{
		{"all equal", func(*Student) {}, ""},
		{"name differs", func(s *Student) { s.Name = "Bea" }, "name"},
		{"age differs", func(s *Student) { s.Age = 23 }, "age"},
		{"school set on one side", func(s *Student) { s.School = Ptr("Central") }, "school"},
		{"college differs", func(s *Student) { s.College = "CMU" }, "college"},
		{"course differs", func(s *Student) { s.Course = "EE" }, "course"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := base
			tc.mutate(&s)
			assert.Equal(t, tc.want, draft.FirstMismatch(s))
		})
	}
}

func TestMatches_SchoolNullSemantics(t *testing.T) {
	s := Student{Name: "Ana", Age: 22, College: "MIT", Course: "CS"}

	bothNil := StudentDraft{Name: "Ana", Age: 22, School: nil, College: "MIT", Course: "CS"}
	assert.True(t, bothNil.Matches(s))

	s.School = Ptr("Central")
	bothSet := bothNil
	bothSet.School = Ptr("Central")
	assert.True(t, bothSet.Matches(s))

	differs := bothNil
	differs.School = Ptr("Other")
	assert.False(t, differs.Matches(s))
}
