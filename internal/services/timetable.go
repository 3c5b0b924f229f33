package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/cadencehq/cadence-api/internal/database"
	"github.com/cadencehq/cadence-api/internal/models"
)

var (
	ErrTimetableNotFound      = errors.New("timetable not found")
	ErrTimetableNotReviewable = errors.New("timetable is not awaiting review")
)

const timetableColumns = `id, batch_id, status, entries, engine_job_id, message, requested_by, reviewed_by, created_at, updated_at`

type TimetableService struct {
	db *database.DB
}

func NewTimetableService(db *database.DB) *TimetableService {
	return &TimetableService{db: db}
}

// Create inserts a pending timetable for the batch. The engine job id
// is attached once the generation job has been submitted.
func (s *TimetableService) Create(ctx context.Context, batchID, requestedBy uuid.UUID) (*models.Timetable, error) {
	var t models.Timetable
	err := s.db.Pool.QueryRow(ctx, `
		INSERT INTO timetables (batch_id, requested_by)
		VALUES ($1, $2)
		RETURNING `+timetableColumns+`
	`, batchID, requestedBy).Scan(
		&t.ID, &t.BatchID, &t.Status, &t.Entries, &t.EngineJobID,
		&t.Message, &t.RequestedBy, &t.ReviewedBy, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create timetable: %w", err)
	}
	return &t, nil
}

func (s *TimetableService) AttachEngineJob(ctx context.Context, id uuid.UUID, jobID string) error {
	tag, err := s.db.Pool.Exec(ctx, `
		UPDATE timetables SET engine_job_id = $1, updated_at = NOW() WHERE id = $2
	`, jobID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrTimetableNotFound
	}
	return nil
}

func (s *TimetableService) MarkFailed(ctx context.Context, id uuid.UUID, message string) error {
	tag, err := s.db.Pool.Exec(ctx, `
		UPDATE timetables SET status = $1, message = $2, updated_at = NOW() WHERE id = $3
	`, models.TimetableStatusFailed, message, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrTimetableNotFound
	}
	return nil
}

// ApplyEngineResult records the engine's callback for a job. Only a
// pending timetable can receive a result; late or duplicate callbacks
// for a job that already resolved are reported as not found.
func (s *TimetableService) ApplyEngineResult(ctx context.Context, jobID, status string, entries json.RawMessage, message string) (*models.Timetable, error) {
	if entries == nil {
		entries = json.RawMessage("[]")
	}

	var t models.Timetable
	err := s.db.Pool.QueryRow(ctx, `
		UPDATE timetables
		SET status = $1, entries = $2, message = NULLIF($3, ''), updated_at = NOW()
		WHERE engine_job_id = $4 AND status = $5
		RETURNING `+timetableColumns+`
	`, status, entries, message, jobID, models.TimetableStatusPending).Scan(
		&t.ID, &t.BatchID, &t.Status, &t.Entries, &t.EngineJobID,
		&t.Message, &t.RequestedBy, &t.ReviewedBy, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTimetableNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (s *TimetableService) GetByID(ctx context.Context, id uuid.UUID) (*models.Timetable, error) {
	var t models.Timetable
	err := s.db.Pool.QueryRow(ctx, `
		SELECT `+timetableColumns+` FROM timetables WHERE id = $1
	`, id).Scan(
		&t.ID, &t.BatchID, &t.Status, &t.Entries, &t.EngineJobID,
		&t.Message, &t.RequestedBy, &t.ReviewedBy, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTimetableNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (s *TimetableService) List(ctx context.Context, batchID *uuid.UUID, status string, opts ListOptions) ([]models.Timetable, int, error) {
	where := ""
	args := []any{}
	next := func() string { return fmt.Sprintf("$%d", len(args)+1) }

	if batchID != nil {
		where = `WHERE batch_id = ` + next()
		args = append(args, *batchID)
	}
	if status != "" {
		clause := `status = ` + next()
		if where == "" {
			where = `WHERE ` + clause
		} else {
			where += ` AND ` + clause
		}
		args = append(args, status)
	}

	var count int
	if err := s.db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM timetables `+where, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + timetableColumns + ` FROM timetables ` + where + ` ORDER BY created_at DESC`
	if opts.Paged() {
		query += fmt.Sprintf(` LIMIT %d OFFSET %d`, opts.Limit(), opts.Offset())
	}

	rows, err := s.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var timetables []models.Timetable
	for rows.Next() {
		var t models.Timetable
		if err := rows.Scan(
			&t.ID, &t.BatchID, &t.Status, &t.Entries, &t.EngineJobID,
			&t.Message, &t.RequestedBy, &t.ReviewedBy, &t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, 0, err
		}
		timetables = append(timetables, t)
	}
	return timetables, count, rows.Err()
}

// Review approves or rejects a completed timetable.
func (s *TimetableService) Review(ctx context.Context, id, reviewerID uuid.UUID, approve bool, comment *string) (*models.Timetable, error) {
	status := models.TimetableStatusApproved
	if !approve {
		status = models.TimetableStatusRejected
	}

	var t models.Timetable
	err := s.db.Pool.QueryRow(ctx, `
		UPDATE timetables
		SET status = $1, reviewed_by = $2, message = COALESCE($3, message), updated_at = NOW()
		WHERE id = $4 AND status = $5
		RETURNING `+timetableColumns+`
	`, status, reviewerID, comment, id, models.TimetableStatusCompleted).Scan(
		&t.ID, &t.BatchID, &t.Status, &t.Entries, &t.EngineJobID,
		&t.Message, &t.RequestedBy, &t.ReviewedBy, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			if _, getErr := s.GetByID(ctx, id); getErr != nil {
				return nil, getErr
			}
			return nil, ErrTimetableNotReviewable
		}
		return nil, err
	}
	return &t, nil
}

func (s *TimetableService) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := s.db.Pool.Exec(ctx, `DELETE FROM timetables WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrTimetableNotFound
	}
	return nil
}
