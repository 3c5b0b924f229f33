package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/cadencehq/cadence-api/internal/database"
	"github.com/cadencehq/cadence-api/internal/models"
)

var (
	ErrBatchNotFound = errors.New("batch not found")
	ErrBatchExists   = errors.New("batch with this name and section already exists")
)

const batchColumns = `id, department_id, name, year, section, strength, created_at, updated_at`

type BatchService struct {
	db *database.DB
}

func NewBatchService(db *database.DB) *BatchService {
	return &BatchService{db: db}
}

func (s *BatchService) Create(ctx context.Context, departmentID uuid.UUID, name string, year int, section string, strength int) (*models.Batch, error) {
	var b models.Batch
	err := s.db.Pool.QueryRow(ctx, `
		INSERT INTO batches (department_id, name, year, section, strength)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+batchColumns+`
	`, departmentID, name, year, section, strength).Scan(
		&b.ID, &b.DepartmentID, &b.Name, &b.Year, &b.Section, &b.Strength, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				return nil, ErrBatchExists
			case "23503":
				return nil, ErrDepartmentNotFound
			}
		}
		return nil, fmt.Errorf("failed to create batch: %w", err)
	}
	return &b, nil
}

func (s *BatchService) GetByID(ctx context.Context, id uuid.UUID) (*models.Batch, error) {
	var b models.Batch
	err := s.db.Pool.QueryRow(ctx, `
		SELECT `+batchColumns+` FROM batches WHERE id = $1
	`, id).Scan(&b.ID, &b.DepartmentID, &b.Name, &b.Year, &b.Section, &b.Strength, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBatchNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (s *BatchService) List(ctx context.Context, departmentID *uuid.UUID, opts ListOptions) ([]models.Batch, int, error) {
	where := ""
	args := []any{}
	next := func() string { return fmt.Sprintf("$%d", len(args)+1) }

	if departmentID != nil {
		where = `WHERE department_id = ` + next()
		args = append(args, *departmentID)
	}
	if opts.Search != "" {
		clause := `(name ILIKE ` + next() + ` OR section ILIKE ` + next() + `)`
		if where == "" {
			where = `WHERE ` + clause
		} else {
			where += ` AND ` + clause
		}
		pattern := "%" + opts.Search + "%"
		args = append(args, pattern, pattern)
	}

	var count int
	if err := s.db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM batches `+where, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + batchColumns + ` FROM batches ` + where + ` ORDER BY year DESC, name ASC`
	if opts.Paged() {
		query += fmt.Sprintf(` LIMIT %d OFFSET %d`, opts.Limit(), opts.Offset())
	}

	rows, err := s.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var batches []models.Batch
	for rows.Next() {
		var b models.Batch
		if err := rows.Scan(&b.ID, &b.DepartmentID, &b.Name, &b.Year, &b.Section, &b.Strength, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, 0, err
		}
		batches = append(batches, b)
	}
	return batches, count, rows.Err()
}

func (s *BatchService) Update(ctx context.Context, id uuid.UUID, name *string, year *int, section *string, strength *int) (*models.Batch, error) {
	var b models.Batch
	err := s.db.Pool.QueryRow(ctx, `
		UPDATE batches
		SET name = COALESCE($1, name),
		    year = COALESCE($2, year),
		    section = COALESCE($3, section),
		    strength = COALESCE($4, strength),
		    updated_at = NOW()
		WHERE id = $5
		RETURNING `+batchColumns+`
	`, name, year, section, strength, id).Scan(
		&b.ID, &b.DepartmentID, &b.Name, &b.Year, &b.Section, &b.Strength, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBatchNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrBatchExists
		}
		return nil, err
	}
	return &b, nil
}

func (s *BatchService) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := s.db.Pool.Exec(ctx, `DELETE FROM batches WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrBatchNotFound
	}
	return nil
}
