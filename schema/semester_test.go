package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSemester(t *testing.T) {
	s, err := ParseSemester("V2019")
	require.NoError(t, err)
	assert.Equal(t, Semester{Year: 2019, Spring: true}, s)
	assert.Equal(t, "V2019", s.Code())

	s, err = ParseSemester("H2020")
	require.NoError(t, err)
	assert.False(t, s.Spring)

	for _, bad := range []string{"", "X2020", "V20", "H2020x", ".git"} {
		_, err := ParseSemester(bad)
		assert.Error(t, err, bad)
	}
}

func TestSortSemesters(t *testing.T) {
	got := SortSemesters([]string{"H2020", "V2021", "V2020", ".git", "H2019"})
	assert.Equal(t, []string{"H2019", "V2020", "H2020", "V2021"}, got)
}

func TestFullSemesterRange(t *testing.T) {
	got := FullSemesterRange([]string{"V2021", "H2019"})
	assert.Equal(t, []string{"H2019", "V2020", "H2020", "V2021"}, got)
	assert.Nil(t, FullSemesterRange(nil))
}

func TestSemesterTitle(t *testing.T) {
	assert.Equal(t, "Høst 2020", Semester{Year: 2020}.Title(Norwegian))
	assert.Equal(t, "Vår 2021", Semester{Year: 2021, Spring: true}.Title(Norwegian))
	assert.Equal(t, "Fall 2020", Semester{Year: 2020}.Title(English))
	assert.Equal(t, "Spring 2021", Semester{Year: 2021, Spring: true}.Title(English))
}
