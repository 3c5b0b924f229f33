package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type GenerateTimetableRequest struct {
	BatchID uuid.UUID `json:"batch_id" validate:"required"`
}

type ReviewTimetableRequest struct {
	Decision string  `json:"decision" validate:"required,oneof=approve reject"`
	Comment  *string `json:"comment,omitempty"`
}

// EngineResultRequest is the callback payload the scheduling engine
// posts when an asynchronous generation job finishes.
type EngineResultRequest struct {
	JobID   string          `json:"job_id" validate:"required"`
	Status  string          `json:"status" validate:"required,oneof=completed failed"`
	Entries json.RawMessage `json:"entries,omitempty"`
	Message string          `json:"message,omitempty"`
}

type TimetableResponse struct {
	ID          uuid.UUID       `json:"id"`
	BatchID     uuid.UUID       `json:"batch_id"`
	Status      string          `json:"status"`
	Entries     json.RawMessage `json:"entries"`
	EngineJobID *string         `json:"engine_job_id,omitempty"`
	Message     *string         `json:"message,omitempty"`
	RequestedBy *uuid.UUID      `json:"requested_by,omitempty"`
	ReviewedBy  *uuid.UUID      `json:"reviewed_by,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
