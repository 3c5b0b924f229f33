package models

import (
	"time"

	"github.com/google/uuid"
)

// Batch is a cohort of students admitted in a given year, split into
// sections (e.g. "CS 2024 / A").
type Batch struct {
	ID           uuid.UUID `json:"id"`
	DepartmentID uuid.UUID `json:"department_id"`
	Name         string    `json:"name"`
	Year         int       `json:"year"`
	Section      string    `json:"section"`
	Strength     int       `json:"strength"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
