package models

import "time"

// Shift lifecycle statuses.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusRejected  = "rejected"
	StatusCompleted = "completed"
)

// ShiftAssignment represents one scheduled work period for one employee
type ShiftAssignment struct {
	ID         string    `gorm:"primaryKey" json:"id"`
	EmployeeID string    `gorm:"index;not null" json:"employee_id"`
	Title      string    `json:"title,omitempty"`
	Notes      string    `json:"notes,omitempty"`
	StartTime  time.Time `gorm:"not null" json:"start_time"`
	EndTime    time.Time `gorm:"not null" json:"end_time"`
	Status     string    `gorm:"default:pending" json:"status"`
	Published  bool      `gorm:"default:false" json:"published"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// DurationMinutes returns the shift length in whole minutes
func (s ShiftAssignment) DurationMinutes() int {
	return int(s.EndTime.Sub(s.StartTime).Minutes())
}

// AvailabilityRecord represents an employee's stated (un)availability for one calendar date
type AvailabilityRecord struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	EmployeeID  string `gorm:"uniqueIndex:idx_employee_date;not null" json:"employee_id"`
	Date        string `gorm:"uniqueIndex:idx_employee_date;not null" json:"date"` // yyyy-MM-dd
	IsAvailable bool   `json:"is_available"`
	StartTime   string `json:"start_time,omitempty"` // optional HH:MM window
	EndTime     string `json:"end_time,omitempty"`
	Status      string `gorm:"default:pending" json:"status"`
}

// ConflictRule is a static descriptor for one scheduling rule
type ConflictRule struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Type        string `json:"type"` // "hard" or "soft"
	Weight      int    `json:"weight"`
	Threshold   int    `json:"threshold"` // advisory, for downstream severity display
	Description string `json:"description"`
}

// ConflictViolation is one breached rule for one shift
type ConflictViolation struct {
	Type        string `json:"type"` // copied from the triggering rule
	RuleID      string `json:"rule_id"`
	Description string `json:"description"`
	Severity    string `json:"severity"` // "critical" | "high" | "medium"
}

// ConflictBucket is one 30-minute slice of the heatmap for one employee
type ConflictBucket struct {
	Score      int                 `json:"score"`
	Violations []ConflictViolation `json:"violations"`
	ShiftID    string              `json:"shift_id,omitempty"`
}

// HeatmapMeta carries window metadata alongside the bucket grid
type HeatmapMeta struct {
	MaxScore  int    `json:"maxScore"`
	WeekStart string `json:"weekStart"` // yyyy-MM-dd
	WeekEnd   string `json:"weekEnd"`
}

// HeatmapData is the complete conflict analysis output:
// employee ID -> bucket start (RFC3339) -> bucket
type HeatmapData struct {
	Buckets map[string]map[string]ConflictBucket `json:"buckets"`
	Meta    HeatmapMeta                          `json:"meta"`
}

// ConflictInput is the request body for stateless conflict analysis
type ConflictInput struct {
	WeekStart    string               `json:"week_start"` // yyyy-MM-dd
	WeekEnd      string               `json:"week_end"`
	Shifts       []ShiftAssignment    `json:"shifts"`
	Availability []AvailabilityRecord `json:"availability"`
}

// ValidateShiftInput is the request body for the real-time validation hook
type ValidateShiftInput struct {
	EmployeeID string    `json:"employee_id"`
	StartTime  time.Time `json:"start_time"`
	EndTime    time.Time `json:"end_time"`
}
