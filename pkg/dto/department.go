package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateDepartmentRequest struct {
	Code string `json:"code" validate:"required,max=20"`
	Name string `json:"name" validate:"required,max=255"`
}

type UpdateDepartmentRequest struct {
	Code *string `json:"code,omitempty" validate:"omitempty,max=20"`
	Name *string `json:"name,omitempty" validate:"omitempty,max=255"`
}

type DepartmentResponse struct {
	ID        uuid.UUID `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
