package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Timetable lifecycle. Generation is asynchronous: the scheduling
// engine moves a timetable from pending to completed or failed, after
// which an admin approves or rejects it.
const (
	TimetableStatusPending   = "pending"
	TimetableStatusCompleted = "completed"
	TimetableStatusFailed    = "failed"
	TimetableStatusApproved  = "approved"
	TimetableStatusRejected  = "rejected"
)

type Timetable struct {
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

func (t *Timetable) IsReviewable() bool {
	return t.Status == TimetableStatusCompleted
}
