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
	ErrCourseNotFound  = errors.New("course not found")
	ErrCourseCodeTaken = errors.New("course code already in use")
)

const courseColumns = `id, department_id, code, name, credits, semester, created_at, updated_at`

type CourseService struct {
	db *database.DB
}

func NewCourseService(db *database.DB) *CourseService {
	return &CourseService{db: db}
}

func (s *CourseService) Create(ctx context.Context, departmentID uuid.UUID, code, name string, credits, semester int) (*models.Course, error) {
	var c models.Course
	err := s.db.Pool.QueryRow(ctx, `
		INSERT INTO courses (department_id, code, name, credits, semester)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+courseColumns+`
	`, departmentID, code, name, credits, semester).Scan(
		&c.ID, &c.DepartmentID, &c.Code, &c.Name, &c.Credits, &c.Semester, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				return nil, ErrCourseCodeTaken
			case "23503":
				return nil, ErrDepartmentNotFound
			}
		}
		return nil, fmt.Errorf("failed to create course: %w", err)
	}
	return &c, nil
}

func (s *CourseService) GetByID(ctx context.Context, id uuid.UUID) (*models.Course, error) {
	var c models.Course
	err := s.db.Pool.QueryRow(ctx, `
		SELECT `+courseColumns+` FROM courses WHERE id = $1
	`, id).Scan(&c.ID, &c.DepartmentID, &c.Code, &c.Name, &c.Credits, &c.Semester, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (s *CourseService) List(ctx context.Context, departmentID *uuid.UUID, opts ListOptions) ([]models.Course, int, error) {
	where := ""
	args := []any{}
	next := func() string { return fmt.Sprintf("$%d", len(args)+1) }

	if departmentID != nil {
		where = `WHERE department_id = ` + next()
		args = append(args, *departmentID)
	}
	if opts.Search != "" {
		clause := `(code ILIKE ` + next() + ` OR name ILIKE ` + next() + `)`
		if where == "" {
			where = `WHERE ` + clause
		} else {
			where += ` AND ` + clause
		}
		pattern := "%" + opts.Search + "%"
		args = append(args, pattern, pattern)
	}

	var count int
	if err := s.db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM courses `+where, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + courseColumns + ` FROM courses ` + where + ` ORDER BY code ASC`
	if opts.Paged() {
		query += fmt.Sprintf(` LIMIT %d OFFSET %d`, opts.Limit(), opts.Offset())
	}

	rows, err := s.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var courses []models.Course
	for rows.Next() {
		var c models.Course
		if err := rows.Scan(&c.ID, &c.DepartmentID, &c.Code, &c.Name, &c.Credits, &c.Semester, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, 0, err
		}
		courses = append(courses, c)
	}
	return courses, count, rows.Err()
}

func (s *CourseService) Update(ctx context.Context, id uuid.UUID, code, name *string, credits, semester *int) (*models.Course, error) {
	var c models.Course
	err := s.db.Pool.QueryRow(ctx, `
		UPDATE courses
		SET code = COALESCE($1, code),
		    name = COALESCE($2, name),
		    credits = COALESCE($3, credits),
		    semester = COALESCE($4, semester),
		    updated_at = NOW()
		WHERE id = $5
		RETURNING `+courseColumns+`
	`, code, name, credits, semester, id).Scan(
		&c.ID, &c.DepartmentID, &c.Code, &c.Name, &c.Credits, &c.Semester, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCourseNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrCourseCodeTaken
		}
		return nil, err
	}
	return &c, nil
}

func (s *CourseService) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := s.db.Pool.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrCourseNotFound
	}
	return nil
}
