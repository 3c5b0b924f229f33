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
	ErrDepartmentNotFound  = errors.New("department not found")
	ErrDepartmentCodeTaken = errors.New("department code already in use")
)

type DepartmentService struct {
	db *database.DB
}

func NewDepartmentService(db *database.DB) *DepartmentService {
	return &DepartmentService{db: db}
}

func (s *DepartmentService) Create(ctx context.Context, code, name string) (*models.Department, error) {
	var d models.Department
	err := s.db.Pool.QueryRow(ctx, `
		INSERT INTO departments (code, name)
		VALUES ($1, $2)
		RETURNING id, code, name, created_at, updated_at
	`, code, name).Scan(&d.ID, &d.Code, &d.Name, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrDepartmentCodeTaken
		}
		return nil, fmt.Errorf("failed to create department: %w", err)
	}
	return &d, nil
}

func (s *DepartmentService) GetByID(ctx context.Context, id uuid.UUID) (*models.Department, error) {
	var d models.Department
	err := s.db.Pool.QueryRow(ctx, `
		SELECT id, code, name, created_at, updated_at
		FROM departments WHERE id = $1
	`, id).Scan(&d.ID, &d.Code, &d.Name, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrDepartmentNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (s *DepartmentService) List(ctx context.Context, opts ListOptions) ([]models.Department, int, error) {
	where := ""
	args := []any{}
	if opts.Search != "" {
		where = `WHERE code ILIKE $1 OR name ILIKE $1`
		args = append(args, "%"+opts.Search+"%")
	}

	var count int
	if err := s.db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM departments `+where, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT id, code, name, created_at, updated_at FROM departments ` + where + ` ORDER BY code ASC`
	if opts.Paged() {
		query += fmt.Sprintf(` LIMIT %d OFFSET %d`, opts.Limit(), opts.Offset())
	}

	rows, err := s.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var departments []models.Department
	for rows.Next() {
		var d models.Department
		if err := rows.Scan(&d.ID, &d.Code, &d.Name, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, 0, err
		}
		departments = append(departments, d)
	}
	return departments, count, rows.Err()
}

func (s *DepartmentService) Update(ctx context.Context, id uuid.UUID, code, name *string) (*models.Department, error) {
	var d models.Department
	err := s.db.Pool.QueryRow(ctx, `
		UPDATE departments
		SET code = COALESCE($1, code), name = COALESCE($2, name), updated_at = NOW()
		WHERE id = $3
		RETURNING id, code, name, created_at, updated_at
	`, code, name, id).Scan(&d.ID, &d.Code, &d.Name, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrDepartmentNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrDepartmentCodeTaken
		}
		return nil, err
	}
	return &d, nil
}

func (s *DepartmentService) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := s.db.Pool.Exec(ctx, `DELETE FROM departments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrDepartmentNotFound
	}
	return nil
}
