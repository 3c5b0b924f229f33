package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateCourseRequest struct {
	DepartmentID uuid.UUID `json:"department_id" validate:"required"`
	Code         string    `json:"code" validate:"required,max=20"`
	Name         string    `json:"name" validate:"required,max=255"`
	Credits      int       `json:"credits" validate:"gte=1,lte=10"`
	Semester     int       `json:"semester" validate:"gte=1,lte=12"`
}

type UpdateCourseRequest struct {
	Code     *string `json:"code,omitempty" validate:"omitempty,max=20"`
	Name     *string `json:"name,omitempty" validate:"omitempty,max=255"`
	Credits  *int    `json:"credits,omitempty" validate:"omitempty,gte=1,lte=10"`
	Semester *int    `json:"semester,omitempty" validate:"omitempty,gte=1,lte=12"`
}

type CourseResponse struct {
	ID           uuid.UUID `json:"id"`
	DepartmentID uuid.UUID `json:"department_id"`
	Code         string    `json:"code"`
	Name         string    `json:"name"`
	Credits      int       `json:"credits"`
	Semester     int       `json:"semester"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
