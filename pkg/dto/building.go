package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateBuildingRequest struct {
	Code string `json:"code" validate:"required,max=20"`
	Name string `json:"name" validate:"required,max=255"`
}

type UpdateBuildingRequest struct {
	Code *string `json:"code,omitempty" validate:"omitempty,max=20"`
	Name *string `json:"name,omitempty" validate:"omitempty,max=255"`
}

type BuildingResponse struct {
	ID        uuid.UUID `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
