package models

import (
	"time"

	"github.com/google/uuid"
)

// Room types as they appear in the dashboard's room forms.
const (
	RoomTypeLectureHall = "Lecture Hall"
	RoomTypeLaboratory  = "Laboratory"
	RoomTypeSeminarHall = "Seminar Hall"
)

type Room struct {
	ID         uuid.UUID `json:"id"`
	BuildingID uuid.UUID `json:"building_id"`
	Name       string    `json:"name"`
	RoomType   string    `json:"room_type"`
	Capacity   int       `json:"capacity"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
