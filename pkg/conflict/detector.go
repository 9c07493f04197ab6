package conflict

import (
	"fmt"
	"time"

	"github.com/rotaops/conflict-api-go/pkg/models"
)

// Overlap reports whether two half-open ranges [aStart,aEnd) and
// [bStart,bEnd) intersect
func Overlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// WeekStart returns Monday 00:00 of the ISO week containing t, in t's location
func WeekStart(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7 // Monday = 0
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return day.AddDate(0, 0, -offset)
}

func violation(ruleID, description string) models.ConflictViolation {
	rule, _ := RuleByID(ruleID)
	return models.ConflictViolation{
		Type:        rule.Type,
		RuleID:      ruleID,
		Description: description,
		Severity:    severities[ruleID],
	}
}

// DetectViolations evaluates one target shift against all shifts and
// availability records in the query window and returns every rule breach.
// All checks run; a shift can accumulate multiple violations. The function
// is pure and returns an empty slice when the shift is clean.
func DetectViolations(target models.ShiftAssignment, shifts []models.ShiftAssignment, availability []models.AvailabilityRecord) []models.ConflictViolation {
	violations := []models.ConflictViolation{}

	// Double booking: same employee, intersecting [start,end) ranges
	overlapping := 0
	for _, other := range shifts {
		if other.ID == target.ID || other.EmployeeID != target.EmployeeID {
			continue
		}
		if Overlap(other.StartTime, other.EndTime, target.StartTime, target.EndTime) {
			overlapping++
		}
	}
	if overlapping > 0 {
		violations = append(violations, violation(RuleDoubleBooking,
			fmt.Sprintf("Overlaps with %d other shift(s) for this employee", overlapping)))
	}

	// Minimum rest: the gap is measured from every other shift's end to the
	// target's start, regardless of which comes first. Checking temporal
	// adjacency in both directions is intentional and must not be narrowed
	// to strictly prior shifts.
	for _, other := range shifts {
		if other.ID == target.ID || other.EmployeeID != target.EmployeeID {
			continue
		}
		gap := target.StartTime.Sub(other.EndTime)
		if gap < 0 {
			gap = -gap
		}
		if restMinutes := int(gap.Minutes()); restMinutes < MinRestMinutes {
			violations = append(violations, violation(RuleMinRestHours,
				fmt.Sprintf("Only %d hour(s) of rest around this shift", restMinutes/60)))
		}
	}

	// Maximum weekly hours: sum every same-employee shift starting inside
	// the ISO week (Monday-Sunday) that contains the target's start
	weekStart := WeekStart(target.StartTime)
	weekEnd := weekStart.AddDate(0, 0, 7)
	totalMinutes := 0
	for _, sh := range shifts {
		if sh.EmployeeID != target.EmployeeID {
			continue
		}
		if !sh.StartTime.Before(weekStart) && sh.StartTime.Before(weekEnd) {
			totalMinutes += sh.DurationMinutes()
		}
	}
	if totalMinutes > MaxWeeklyMinutes {
		violations = append(violations, violation(RuleMaxWeeklyHours,
			fmt.Sprintf("Scheduled for %d hour(s) this week", totalMinutes/60)))
	}

	// Overtime risk: a strict excess over the cap; exactly 7 hours is fine
	if duration := target.DurationMinutes(); duration > OvertimeMinutes {
		violations = append(violations, violation(RuleOvertimeRisk,
			fmt.Sprintf("Shift runs %d hour(s)", duration/60)))
	}

	// Preference mismatch: an is_available=false record on the shift's date
	shiftDate := target.StartTime.Format("2006-01-02")
	for _, avail := range availability {
		if avail.EmployeeID == target.EmployeeID && avail.Date == shiftDate && !avail.IsAvailable {
			violations = append(violations, violation(RulePreferenceMismatch,
				fmt.Sprintf("Employee is marked unavailable on %s", shiftDate)))
			break
		}
	}

	return violations
}

// ValidateShift is the hook point for real-time validation while a shift is
// being created or edited. Wiring it to the detector is pending a product
// decision on which peers count during an edit, so it currently reports no
// violations.
func ValidateShift(employeeID string, startTime, endTime time.Time) []models.ConflictViolation {
	return []models.ConflictViolation{}
}
