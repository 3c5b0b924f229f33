package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateBatchRequest struct {
	DepartmentID uuid.UUID `json:"department_id" validate:"required"`
	Name         string    `json:"name" validate:"required,max=100"`
	Year         int       `json:"year" validate:"required,gte=2000,lte=2100"`
	Section      string    `json:"section" validate:"required,max=10"`
	Strength     int       `json:"strength" validate:"gte=0"`
}

type UpdateBatchRequest struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,max=100"`
	Year     *int    `json:"year,omitempty" validate:"omitempty,gte=2000,lte=2100"`
	Section  *string `json:"section,omitempty" validate:"omitempty,max=10"`
	Strength *int    `json:"strength,omitempty" validate:"omitempty,gte=0"`
}

type BatchResponse struct {
	ID           uuid.UUID `json:"id"`
	DepartmentID uuid.UUID `json:"department_id"`
	Name         string    `json:"name"`
	Year         int       `json:"year"`
	Section      string    `json:"section"`
	Strength     int       `json:"strength"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
