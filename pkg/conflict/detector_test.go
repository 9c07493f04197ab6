package conflict

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rotaops/conflict-api-go/pkg/models"
)

// monday is 2025-06-02, the start of an ISO week
var monday = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

func shift(id, employeeID string, start time.Time, durMinutes int) models.ShiftAssignment {
	return models.ShiftAssignment{
		ID:         id,
		EmployeeID: employeeID,
		StartTime:  start,
		EndTime:    start.Add(time.Duration(durMinutes) * time.Minute),
		Status:     models.StatusConfirmed,
		Published:  true,
	}
}

func ruleIDs(violations []models.ConflictViolation) []string {
	ids := make([]string, 0, len(violations))
	for _, v := range violations {
		ids = append(ids, v.RuleID)
	}
	return ids
}

func TestDetectDoubleBooking(t *testing.T) {
	// Shift A Mon 09:00-17:00, shift B Mon 16:00-20:00, one hour of overlap
	a := shift("a", "e1", monday.Add(9*time.Hour), 480)
	b := shift("b", "e1", monday.Add(16*time.Hour), 240)
	all := []models.ShiftAssignment{a, b}

	violationsA := DetectViolations(a, all, nil)
	assert.Contains(t, ruleIDs(violationsA), RuleDoubleBooking)

	violationsB := DetectViolations(b, all, nil)
	assert.Contains(t, ruleIDs(violationsB), RuleDoubleBooking)

	// 480+240 = 720 minutes this week, well under the weekly cap
	assert.NotContains(t, ruleIDs(violationsA), RuleMaxWeeklyHours)
	assert.NotContains(t, ruleIDs(violationsB), RuleMaxWeeklyHours)
}

func TestDoubleBookingIgnoresOtherEmployees(t *testing.T) {
	a := shift("a", "e1", monday.Add(9*time.Hour), 240)
	b := shift("b", "e2", monday.Add(9*time.Hour), 240)

	violations := DetectViolations(a, []models.ShiftAssignment{a, b}, nil)
	assert.NotContains(t, ruleIDs(violations), RuleDoubleBooking)
}

func TestMinRestBreach(t *testing.T) {
	// A ends Mon 17:00, B starts Tue 01:00: 8 hours of rest
	a := shift("a", "e1", monday.Add(9*time.Hour), 480)
	b := shift("b", "e1", monday.Add(25*time.Hour), 240)

	violations := DetectViolations(b, []models.ShiftAssignment{a, b}, nil)
	require.Contains(t, ruleIDs(violations), RuleMinRestHours)
}

func TestMinRestSixteenHourGapIsClean(t *testing.T) {
	// A Mon 09:00-17:00, B Tue 09:00-17:00: a 16-hour gap (960 >= 600)
	a := shift("a", "e1", monday.Add(9*time.Hour), 480)
	b := shift("b", "e1", monday.Add(33*time.Hour), 480)
	all := []models.ShiftAssignment{a, b}

	assert.NotContains(t, ruleIDs(DetectViolations(a, all, nil)), RuleMinRestHours)
	assert.NotContains(t, ruleIDs(DetectViolations(b, all, nil)), RuleMinRestHours)
}

func TestMinRestChecksBothDirections(t *testing.T) {
	// The gap is measured |other.end - target.start| regardless of order,
	// so only the later shift of the pair is flagged here: target A's start
	// is 11 hours before B's end, while target B's start is 1 hour before
	// A's end.
	a := shift("a", "e1", monday.Add(9*time.Hour), 480)  // 09:00-17:00
	b := shift("b", "e1", monday.Add(16*time.Hour), 240) // 16:00-20:00
	all := []models.ShiftAssignment{a, b}

	assert.NotContains(t, ruleIDs(DetectViolations(a, all, nil)), RuleMinRestHours)
	assert.Contains(t, ruleIDs(DetectViolations(b, all, nil)), RuleMinRestHours)
}

func TestMaxWeeklyHours(t *testing.T) {
	// Six 7-hour shifts Mon-Sat: 2520 minutes, over the 2400 cap
	var all []models.ShiftAssignment
	for day := 0; day < 6; day++ {
		start := monday.AddDate(0, 0, day).Add(9 * time.Hour)
		all = append(all, shift(string(rune('a'+day)), "e1", start, 420))
	}

	for _, sh := range all {
		violations := DetectViolations(sh, all, nil)
		assert.Contains(t, ruleIDs(violations), RuleMaxWeeklyHours, "shift %s", sh.ID)
		// exactly 7 hours each, so no overtime flag
		assert.NotContains(t, ruleIDs(violations), RuleOvertimeRisk, "shift %s", sh.ID)
	}
}

func TestMaxWeeklyHoursRespectsWeekBoundary(t *testing.T) {
	// 2400 minutes Mon-Sat plus another shift the following Monday:
	// neither week exceeds the cap on its own
	var all []models.ShiftAssignment
	for day := 0; day < 6; day++ {
		start := monday.AddDate(0, 0, day).Add(9 * time.Hour)
		all = append(all, shift(string(rune('a'+day)), "e1", start, 400))
	}
	nextWeek := shift("g", "e1", monday.AddDate(0, 0, 7).Add(9*time.Hour), 400)
	all = append(all, nextWeek)

	for _, sh := range all {
		assert.NotContains(t, ruleIDs(DetectViolations(sh, all, nil)), RuleMaxWeeklyHours, "shift %s", sh.ID)
	}
}

func TestOvertimeBoundary(t *testing.T) {
	exactly := shift("a", "e1", monday.Add(9*time.Hour), 420)
	over := shift("b", "e2", monday.Add(9*time.Hour), 421)

	assert.NotContains(t, ruleIDs(DetectViolations(exactly, []models.ShiftAssignment{exactly}, nil)), RuleOvertimeRisk)
	assert.Contains(t, ruleIDs(DetectViolations(over, []models.ShiftAssignment{over}, nil)), RuleOvertimeRisk)
}

func TestPreferenceMismatch(t *testing.T) {
	wednesday := monday.AddDate(0, 0, 2)
	sh := shift("a", "e1", wednesday.Add(9*time.Hour), 240)
	availability := []models.AvailabilityRecord{
		{EmployeeID: "e1", Date: wednesday.Format("2006-01-02"), IsAvailable: false},
	}

	violations := DetectViolations(sh, []models.ShiftAssignment{sh}, availability)
	require.Contains(t, ruleIDs(violations), RulePreferenceMismatch)

	for _, v := range violations {
		if v.RuleID == RulePreferenceMismatch {
			assert.Equal(t, RuleSoft, v.Type)
			assert.Equal(t, "medium", v.Severity)
		}
	}
}

func TestAvailableRecordIsNotAViolation(t *testing.T) {
	sh := shift("a", "e1", monday.Add(9*time.Hour), 240)
	availability := []models.AvailabilityRecord{
		{EmployeeID: "e1", Date: monday.Format("2006-01-02"), IsAvailable: true},
	}

	violations := DetectViolations(sh, []models.ShiftAssignment{sh}, availability)
	assert.NotContains(t, ruleIDs(violations), RulePreferenceMismatch)
}

func TestCleanShiftHasNoViolations(t *testing.T) {
	sh := shift("a", "e1", monday.Add(9*time.Hour), 240)
	violations := DetectViolations(sh, []models.ShiftAssignment{sh}, nil)
	assert.Empty(t, violations)
	assert.NotNil(t, violations)
}

func TestWeekStart(t *testing.T) {
	assert.Equal(t, monday, WeekStart(monday))
	assert.Equal(t, monday, WeekStart(monday.Add(37*time.Hour)))
	// Sunday of the same week still maps back to Monday
	sunday := monday.AddDate(0, 0, 6).Add(23 * time.Hour)
	assert.Equal(t, monday, WeekStart(sunday))
	// The next Monday starts a new week
	assert.Equal(t, monday.AddDate(0, 0, 7), WeekStart(monday.AddDate(0, 0, 7)))
}

func TestValidateShiftReturnsEmpty(t *testing.T) {
	violations := ValidateShift("e1", monday, monday.Add(8*time.Hour))
	assert.NotNil(t, violations)
	assert.Empty(t, violations)
}

func TestRuleCatalog(t *testing.T) {
	catalog := Rules()
	require.Len(t, catalog, 6)

	assert.Equal(t, RuleDoubleBooking, catalog[0].ID)
	assert.Equal(t, 100, catalog[0].Weight)
	assert.Equal(t, RuleHard, catalog[0].Type)

	weights := map[string]int{}
	for _, r := range catalog {
		weights[r.ID] = r.Weight
	}
	assert.Equal(t, 90, weights[RuleMinRestHours])
	assert.Equal(t, 85, weights[RuleMaxWeeklyHours])
	assert.Equal(t, 60, weights[RuleOvertimeRisk])
	assert.Equal(t, 40, weights[RuleSkillMismatch])
	assert.Equal(t, 30, weights[RulePreferenceMismatch])

	// callers get a copy, not the catalog itself
	catalog[0].Weight = 1
	fresh := Rules()
	assert.Equal(t, 100, fresh[0].Weight)
}
