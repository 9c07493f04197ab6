package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/rotaops/conflict-api-go/pkg/cache"
	"github.com/rotaops/conflict-api-go/pkg/models"
)

var validStatuses = map[string]bool{
	models.StatusPending:   true,
	models.StatusConfirmed: true,
	models.StatusRejected:  true,
	models.StatusCompleted: true,
}

// CreateShift inserts a shift assignment
func (h *Handler) CreateShift(c *gin.Context) {
	var req struct {
		EmployeeID string    `json:"employee_id"`
		Title      string    `json:"title"`
		Notes      string    `json:"notes"`
		StartTime  time.Time `json:"start_time"`
		EndTime    time.Time `json:"end_time"`
		Published  bool      `json:"published"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.EmployeeID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "employee_id is required"})
		return
	}
	if !req.StartTime.Before(req.EndTime) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start_time must be before end_time"})
		return
	}

	shift := models.ShiftAssignment{
		ID:         uuid.NewString(),
		EmployeeID: req.EmployeeID,
		Title:      req.Title,
		Notes:      req.Notes,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		Status:     models.StatusPending,
		Published:  req.Published,
	}

	if err := h.DB.Create(&shift).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create shift"})
		return
	}

	cache.InvalidateHeatmaps(c.Request.Context())
	c.JSON(http.StatusCreated, shift)
}

// ListShifts returns stored shifts, optionally filtered by employee_id
// and/or an intersecting from/to window
func (h *Handler) ListShifts(c *gin.Context) {
	query := h.DB.Order("start_time asc")

	if employeeID := c.Query("employee_id"); employeeID != "" {
		query = query.Where("employee_id = ?", employeeID)
	}
	if from := c.Query("from"); from != "" {
		if t, err := time.Parse("2006-01-02", from); err == nil {
			query = query.Where("end_time > ?", t)
		}
	}
	if to := c.Query("to"); to != "" {
		if t, err := time.Parse("2006-01-02", to); err == nil {
			query = query.Where("start_time < ?", t.AddDate(0, 0, 1))
		}
	}

	var shifts []models.ShiftAssignment
	if err := query.Find(&shifts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch shifts"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"shifts": shifts})
}

// UpdateShiftStatus applies a lifecycle transition (approval, rejection,
// completion) and optionally toggles publication
func (h *Handler) UpdateShiftStatus(c *gin.Context) {
	id := c.Param("id")
	var req struct {
		Status    string `json:"status"`
		Published *bool  `json:"published"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !validStatuses[req.Status] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status must be one of pending, confirmed, rejected, completed"})
		return
	}

	updates := map[string]interface{}{"status": req.Status}
	if req.Published != nil {
		updates["published"] = *req.Published
	}

	result := h.DB.Model(&models.ShiftAssignment{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update shift"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Shift not found"})
		return
	}

	cache.InvalidateHeatmaps(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"message": "Shift updated"})
}

// DeleteShift removes a shift assignment
func (h *Handler) DeleteShift(c *gin.Context) {
	id := c.Param("id")
	result := h.DB.Delete(&models.ShiftAssignment{}, "id = ?", id)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not delete shift"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Shift not found"})
		return
	}

	cache.InvalidateHeatmaps(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"message": "Shift deleted"})
}

// CreateAvailability upserts an employee's availability for one date
func (h *Handler) CreateAvailability(c *gin.Context) {
	var req models.AvailabilityRecord
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.EmployeeID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "employee_id is required"})
		return
	}
	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be yyyy-MM-dd"})
		return
	}
	if req.Status == "" {
		req.Status = models.StatusPending
	}

	var existing models.AvailabilityRecord
	err := h.DB.Where("employee_id = ? AND date = ?", req.EmployeeID, req.Date).First(&existing).Error
	if err == nil {
		req.ID = existing.ID
		if err := h.DB.Save(&req).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update availability"})
			return
		}
	} else {
		if err := h.DB.Create(&req).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create availability"})
			return
		}
	}

	cache.InvalidateHeatmaps(c.Request.Context())
	c.JSON(http.StatusCreated, req)
}

// ListAvailability returns stored availability, optionally filtered by
// employee_id and a from/to date range
func (h *Handler) ListAvailability(c *gin.Context) {
	query := h.DB.Order("date asc")

	if employeeID := c.Query("employee_id"); employeeID != "" {
		query = query.Where("employee_id = ?", employeeID)
	}
	if from := c.Query("from"); from != "" {
		query = query.Where("date >= ?", from)
	}
	if to := c.Query("to"); to != "" {
		query = query.Where("date <= ?", to)
	}

	var records []models.AvailabilityRecord
	if err := query.Find(&records).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch availability"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"availability": records})
}
