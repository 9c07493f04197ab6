package handlers

import (
	"encoding/csv"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/rotaops/conflict-api-go/pkg/cache"
	"github.com/rotaops/conflict-api-go/pkg/conflict"
	"github.com/rotaops/conflict-api-go/pkg/models"
)

// parseWindow reads week_start/week_end query params (yyyy-MM-dd) and
// returns the window as instants. week_end is the inclusive last bucket day.
func parseWindow(c *gin.Context) (time.Time, time.Time, bool) {
	startStr := c.Query("week_start")
	endStr := c.Query("week_end")

	start, err := time.Parse("2006-01-02", startStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "week_start must be yyyy-MM-dd"})
		return time.Time{}, time.Time{}, false
	}
	end, err := time.Parse("2006-01-02", endStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "week_end must be yyyy-MM-dd"})
		return time.Time{}, time.Time{}, false
	}
	if !start.Before(end) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "week_start must be before week_end"})
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

func countEmployees(shifts []models.ShiftAssignment) int {
	seen := make(map[string]bool)
	for _, sh := range shifts {
		seen[sh.EmployeeID] = true
	}
	return len(seen)
}

// GetConflicts computes the conflict heatmap for a week from stored rows.
// Only published shifts participate; availability is matched by date range.
func (h *Handler) GetConflicts(c *gin.Context) {
	weekStart, weekEnd, ok := parseWindow(c)
	if !ok {
		return
	}

	if cached, hit := cache.GetHeatmap(c.Request.Context(), c.Query("week_start"), c.Query("week_end")); hit {
		c.JSON(http.StatusOK, cached)
		return
	}

	var shifts []models.ShiftAssignment
	if err := h.DB.
		Where("published = ?", true).
		Where("start_time < ? AND end_time > ?", weekEnd.AddDate(0, 0, 1), weekStart).
		Find(&shifts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch shifts"})
		return
	}

	var availability []models.AvailabilityRecord
	if err := h.DB.
		Where("date >= ? AND date <= ?", weekStart.Format("2006-01-02"), weekEnd.Format("2006-01-02")).
		Find(&availability).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch availability"})
		return
	}

	began := time.Now()
	heatmap := conflict.Calculate(weekStart, weekEnd, shifts, availability)
	log.Info().
		Int("shifts", len(shifts)).
		Dur("took", time.Since(began)).
		Str("week_start", heatmap.Meta.WeekStart).
		Msg("conflict heatmap computed")

	cache.SetHeatmap(c.Request.Context(), heatmap)
	h.RecordUsage(c, len(shifts), countEmployees(shifts))

	c.JSON(http.StatusOK, heatmap)
}

// ConflictsJSON runs the engine over caller-supplied rows without touching
// the database
func (h *Handler) ConflictsJSON(c *gin.Context) {
	var input models.ConflictInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	weekStart, err := time.Parse("2006-01-02", input.WeekStart)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "week_start must be yyyy-MM-dd"})
		return
	}
	weekEnd, err := time.Parse("2006-01-02", input.WeekEnd)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "week_end must be yyyy-MM-dd"})
		return
	}

	heatmap := conflict.Calculate(weekStart, weekEnd, input.Shifts, input.Availability)
	h.RecordUsage(c, len(input.Shifts), countEmployees(input.Shifts))

	c.JSON(http.StatusOK, heatmap)
}

// GetRules returns the static rule catalog for UI legends
func (h *Handler) GetRules(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"rules": conflict.Rules()})
}

// ValidateShift is the real-time validation hook used by shift editors
func (h *Handler) ValidateShift(c *gin.Context) {
	var input models.ValidateShiftInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	violations := conflict.ValidateShift(input.EmployeeID, input.StartTime, input.EndTime)
	c.JSON(http.StatusOK, gin.H{"violations": violations})
}

// ConflictsCSV accepts CSV uploads (shifts_file required, availability_file
// optional) plus week_start/week_end query params, and responds with the
// heatmap for the uploaded rows
func (h *Handler) ConflictsCSV(c *gin.Context) {
	weekStart, weekEnd, ok := parseWindow(c)
	if !ok {
		return
	}

	shiftsFile, _ := c.FormFile("shifts_file")
	availFile, _ := c.FormFile("availability_file")

	if shiftsFile == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "shifts_file is required"})
		return
	}

	sFile, err := shiftsFile.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open shifts file"})
		return
	}
	defer sFile.Close()

	shifts, err := parseShiftsCSV(sFile)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var availability []models.AvailabilityRecord
	if availFile != nil {
		var aFile multipart.File
		aFile, err = availFile.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open availability file"})
			return
		}
		defer aFile.Close()

		availability, err = parseAvailabilityCSV(aFile)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	heatmap := conflict.Calculate(weekStart, weekEnd, shifts, availability)
	h.RecordUsage(c, len(shifts), countEmployees(shifts))

	c.JSON(http.StatusOK, heatmap)
}

func errFailedHeader(which string) error {
	return fmt.Errorf("failed to read %s header", which)
}

func parseShiftTime(raw string) time.Time {
	t, _ := time.Parse("2006-01-02T15:04:05Z", raw)
	if t.IsZero() {
		t, _ = time.Parse("2006-01-02T15:04", raw)
	}
	return t
}

// parseShiftsCSV expects columns: id, employee_id, start, end and optional
// title, status, published. Rows with missing required columns are skipped.
func parseShiftsCSV(r io.Reader) ([]models.ShiftAssignment, error) {
	reader := csv.NewReader(r)
	header, err := reader.Read()
	if err != nil {
		return nil, errFailedHeader("shifts")
	}
	cols := make(map[string]int)
	for i, h := range header {
		cols[h] = i
	}

	var shifts []models.ShiftAssignment
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}

		sh := models.ShiftAssignment{
			ID:         record[cols["id"]],
			EmployeeID: record[cols["employee_id"]],
			StartTime:  parseShiftTime(record[cols["start"]]),
			EndTime:    parseShiftTime(record[cols["end"]]),
			Status:     models.StatusPending,
			Published:  true,
		}
		if idx, ok := cols["title"]; ok {
			sh.Title = record[idx]
		}
		if idx, ok := cols["status"]; ok && record[idx] != "" {
			sh.Status = record[idx]
		}
		if idx, ok := cols["published"]; ok && record[idx] != "" {
			sh.Published, _ = strconv.ParseBool(record[idx])
		}

		if sh.ID == "" || sh.EmployeeID == "" || sh.StartTime.IsZero() || sh.EndTime.IsZero() {
			continue
		}
		shifts = append(shifts, sh)
	}
	return shifts, nil
}

// parseAvailabilityCSV expects columns: employee_id, date, is_available
func parseAvailabilityCSV(r io.Reader) ([]models.AvailabilityRecord, error) {
	reader := csv.NewReader(r)
	header, err := reader.Read()
	if err != nil {
		return nil, errFailedHeader("availability")
	}
	cols := make(map[string]int)
	for i, h := range header {
		cols[h] = i
	}

	var records []models.AvailabilityRecord
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}

		available, _ := strconv.ParseBool(record[cols["is_available"]])
		rec := models.AvailabilityRecord{
			EmployeeID:  record[cols["employee_id"]],
			Date:        record[cols["date"]],
			IsAvailable: available,
		}
		if rec.EmployeeID == "" || rec.Date == "" {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}
