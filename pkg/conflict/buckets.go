package conflict

import (
	"time"

	"github.com/rotaops/conflict-api-go/pkg/models"
)

// BucketKey formats a bucket start timestamp into its map key
func BucketKey(t time.Time) string {
	return t.Format(time.RFC3339)
}

// AggregateBuckets folds per-shift violations into a fixed 30-minute bucket
// grid per employee covering [windowStart, windowEnd] inclusive. The
// employee set is seeded from the shifts present: an employee with
// availability records but no shifts gets no buckets. A bucket's score is
// the single worst violation weight touching it, never a cumulative sum.
func AggregateBuckets(windowStart, windowEnd time.Time, shifts []models.ShiftAssignment, availability []models.AvailabilityRecord) map[string]map[string]models.ConflictBucket {
	grid := make(map[string]map[string]models.ConflictBucket)

	for _, sh := range shifts {
		if _, ok := grid[sh.EmployeeID]; ok {
			continue
		}
		buckets := make(map[string]models.ConflictBucket)
		for ts := windowStart; !ts.After(windowEnd); ts = ts.Add(BucketMinutes * time.Minute) {
			buckets[BucketKey(ts)] = models.ConflictBucket{
				Score:      0,
				Violations: []models.ConflictViolation{},
			}
		}
		grid[sh.EmployeeID] = buckets
	}

	for _, sh := range shifts {
		violations := DetectViolations(sh, shifts, availability)

		worst := 0
		for _, v := range violations {
			if w := RuleWeight(v.RuleID); w > worst {
				worst = w
			}
		}

		buckets := grid[sh.EmployeeID]
		for ts := windowStart; !ts.After(windowEnd); ts = ts.Add(BucketMinutes * time.Minute) {
			if ts.Before(sh.StartTime) || !ts.Before(sh.EndTime) {
				continue
			}
			key := BucketKey(ts)
			bucket := buckets[key]
			bucket.ShiftID = sh.ID
			bucket.Violations = append(bucket.Violations, violations...)
			if worst > bucket.Score {
				bucket.Score = worst
			}
			buckets[key] = bucket
		}
	}

	return grid
}
