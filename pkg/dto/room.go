package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateRoomRequest struct {
	BuildingID uuid.UUID `json:"building_id" validate:"required"`
	Name       string    `json:"name" validate:"required,max=100"`
	RoomType   string    `json:"room_type" validate:"required,oneof='Lecture Hall' Laboratory 'Seminar Hall'"`
	Capacity   int       `json:"capacity" validate:"gte=0"`
}

type UpdateRoomRequest struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,max=100"`
	RoomType *string `json:"room_type,omitempty" validate:"omitempty,oneof='Lecture Hall' Laboratory 'Seminar Hall'"`
	Capacity *int    `json:"capacity,omitempty" validate:"omitempty,gte=0"`
}

type RoomResponse struct {
	ID         uuid.UUID `json:"id"`
	BuildingID uuid.UUID `json:"building_id"`
	Name       string    `json:"name"`
	RoomType   string    `json:"room_type"`
	Capacity   int       `json:"capacity"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
