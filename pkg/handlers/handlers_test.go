package handlers

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rotaops/conflict-api-go/pkg/models"
)

func TestParseShiftsCSV(t *testing.T) {
	input := strings.Join([]string{
		"id,employee_id,start,end,title,published",
		"s1,e1,2025-06-02T09:00:05Z,2025-06-02T17:00:05Z,Front desk,true",
		"s2,e2,2025-06-02T16:00,2025-06-02T20:00,,false",
		",e3,2025-06-02T09:00,2025-06-02T10:00,missing id,true",
	}, "\n")

	shifts, err := parseShiftsCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, shifts, 2)

	assert.Equal(t, "s1", shifts[0].ID)
	assert.Equal(t, "e1", shifts[0].EmployeeID)
	assert.Equal(t, "Front desk", shifts[0].Title)
	assert.True(t, shifts[0].Published)
	assert.Equal(t, time.Date(2025, 6, 2, 9, 0, 5, 0, time.UTC), shifts[0].StartTime)

	assert.Equal(t, "s2", shifts[1].ID)
	assert.False(t, shifts[1].Published)
	assert.Equal(t, time.Date(2025, 6, 2, 16, 0, 0, 0, time.UTC), shifts[1].StartTime)
}

func TestParseShiftsCSVBadHeader(t *testing.T) {
	_, err := parseShiftsCSV(strings.NewReader(""))
	assert.Error(t, err)
}

func TestParseAvailabilityCSV(t *testing.T) {
	input := strings.Join([]string{
		"employee_id,date,is_available",
		"e1,2025-06-04,false",
		"e2,2025-06-04,true",
		",2025-06-04,false",
	}, "\n")

	records, err := parseAvailabilityCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "e1", records[0].EmployeeID)
	assert.False(t, records[0].IsAvailable)
	assert.True(t, records[1].IsAvailable)
}

func TestCountEmployees(t *testing.T) {
	shifts := []models.ShiftAssignment{
		{ID: "a", EmployeeID: "e1"},
		{ID: "b", EmployeeID: "e1"},
		{ID: "c", EmployeeID: "e2"},
	}
	assert.Equal(t, 2, countEmployees(shifts))
	assert.Equal(t, 0, countEmployees(nil))
}
