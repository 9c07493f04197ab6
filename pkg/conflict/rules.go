package conflict

import "github.com/rotaops/conflict-api-go/pkg/models"

// Rule types
const (
	RuleHard = "hard"
	RuleSoft = "soft"
)

// Policy constants used by the detector
const (
	MinRestMinutes   = 600  // 10 hours between shifts
	MaxWeeklyMinutes = 2400 // 40 hours per ISO week
	OvertimeMinutes  = 420  // single shifts over 7 hours are flagged
	BucketMinutes    = 30   // heatmap resolution
	MaxScore         = 100  // highest rule weight, reported in heatmap meta
)

// Rule IDs
const (
	RuleDoubleBooking      = "double_booking"
	RuleMinRestHours       = "min_rest_hours"
	RuleMaxWeeklyHours     = "max_weekly_hours"
	RuleOvertimeRisk       = "overtime_risk"
	RuleSkillMismatch      = "skill_mismatch"
	RulePreferenceMismatch = "preference_mismatch"
)

// rules is the fixed catalog, defined once and never mutated.
var rules = []models.ConflictRule{
	{
		ID:          RuleDoubleBooking,
		Name:        "Double Booking",
		Type:        RuleHard,
		Weight:      100,
		Threshold:   1,
		Description: "Employee is assigned to two shifts whose time ranges overlap",
	},
	{
		ID:          RuleMinRestHours,
		Name:        "Minimum Rest Period",
		Type:        RuleHard,
		Weight:      90,
		Threshold:   10,
		Description: "Less than 10 hours between the end of one shift and the start of another",
	},
	{
		ID:          RuleMaxWeeklyHours,
		Name:        "Maximum Weekly Hours",
		Type:        RuleHard,
		Weight:      85,
		Threshold:   40,
		Description: "Total scheduled hours within the Monday-Sunday week exceed 40",
	},
	{
		ID:          RuleOvertimeRisk,
		Name:        "Overtime Risk",
		Type:        RuleSoft,
		Weight:      60,
		Threshold:   7,
		Description: "A single shift runs longer than 7 hours",
	},
	{
		ID:          RuleSkillMismatch,
		Name:        "Skill Mismatch",
		Type:        RuleSoft,
		Weight:      40,
		Threshold:   1,
		Description: "Shift requires a skill the employee does not hold (reserved for future skill input)",
	},
	{
		ID:          RulePreferenceMismatch,
		Name:        "Preference Mismatch",
		Type:        RuleSoft,
		Weight:      30,
		Threshold:   1,
		Description: "Employee marked themselves unavailable on the shift's date",
	},
}

// severities maps each rule to its display label. Labels are assigned per
// rule, not derived from weight or threshold.
var severities = map[string]string{
	RuleDoubleBooking:      "critical",
	RuleMinRestHours:       "critical",
	RuleMaxWeeklyHours:     "high",
	RuleOvertimeRisk:       "medium",
	RuleSkillMismatch:      "medium",
	RulePreferenceMismatch: "medium",
}

// Rules returns the static rule catalog in evaluation order
func Rules() []models.ConflictRule {
	out := make([]models.ConflictRule, len(rules))
	copy(out, rules)
	return out
}

// RuleByID looks up a catalog entry; ok is false for unknown IDs
func RuleByID(id string) (models.ConflictRule, bool) {
	for _, r := range rules {
		if r.ID == id {
			return r, true
		}
	}
	return models.ConflictRule{}, false
}

// RuleWeight returns the catalog weight for a rule ID, 0 if unknown
func RuleWeight(id string) int {
	r, ok := RuleByID(id)
	if !ok {
		return 0
	}
	return r.Weight
}
