package conflict

import (
	"time"

	"github.com/rotaops/conflict-api-go/pkg/models"
)

// BuildHeatmap wraps an aggregated bucket grid with window metadata.
// MaxScore is the fixed catalog ceiling, not recomputed per call.
func BuildHeatmap(weekStart, weekEnd time.Time, buckets map[string]map[string]models.ConflictBucket) models.HeatmapData {
	return models.HeatmapData{
		Buckets: buckets,
		Meta: models.HeatmapMeta{
			MaxScore:  MaxScore,
			WeekStart: weekStart.Format("2006-01-02"),
			WeekEnd:   weekEnd.Format("2006-01-02"),
		},
	}
}

// Calculate runs the full pipeline over an in-memory snapshot: detection,
// bucket aggregation and heatmap assembly. It performs no I/O and does not
// mutate its inputs, so concurrent calls over separate snapshots are safe.
func Calculate(weekStart, weekEnd time.Time, shifts []models.ShiftAssignment, availability []models.AvailabilityRecord) models.HeatmapData {
	grid := AggregateBuckets(weekStart, weekEnd, shifts, availability)
	return BuildHeatmap(weekStart, weekEnd, grid)
}
