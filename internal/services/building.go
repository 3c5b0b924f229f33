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
	ErrBuildingNotFound = errors.New("building not found")
	ErrBuildingCodeTaken = errors.New("building code already in use")
)

type BuildingService struct {
	db *database.DB
}

func NewBuildingService(db *database.DB) *BuildingService {
	return &BuildingService{db: db}
}

func (s *BuildingService) Create(ctx context.Context, code, name string) (*models.Building, error) {
	var b models.Building
	err := s.db.Pool.QueryRow(ctx, `
		INSERT INTO buildings (code, name)
		VALUES ($1, $2)
		RETURNING id, code, name, created_at, updated_at
	`, code, name).Scan(&b.ID, &b.Code, &b.Name, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrBuildingCodeTaken
		}
		return nil, fmt.Errorf("failed to create building: %w", err)
	}
	return &b, nil
}

func (s *BuildingService) GetByID(ctx context.Context, id uuid.UUID) (*models.Building, error) {
	var b models.Building
	err := s.db.Pool.QueryRow(ctx, `
		SELECT id, code, name, created_at, updated_at
		FROM buildings WHERE id = $1
	`, id).Scan(&b.ID, &b.Code, &b.Name, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBuildingNotFound
		}
		return nil, err
	}
	return &b, nil
}

// List returns buildings matching opts plus the total match count.
// The search term matches code and name case-insensitively.
func (s *BuildingService) List(ctx context.Context, opts ListOptions) ([]models.Building, int, error) {
	where := ""
	args := []any{}
	if opts.Search != "" {
		where = `WHERE code ILIKE $1 OR name ILIKE $1`
		args = append(args, "%"+opts.Search+"%")
	}

	var count int
	if err := s.db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM buildings `+where, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT id, code, name, created_at, updated_at FROM buildings ` + where + ` ORDER BY code ASC`
	if opts.Paged() {
		query += fmt.Sprintf(` LIMIT %d OFFSET %d`, opts.Limit(), opts.Offset())
	}

	rows, err := s.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var buildings []models.Building
	for rows.Next() {
		var b models.Building
		if err := rows.Scan(&b.ID, &b.Code, &b.Name, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, 0, err
		}
		buildings = append(buildings, b)
	}
	return buildings, count, rows.Err()
}

func (s *BuildingService) Update(ctx context.Context, id uuid.UUID, code, name *string) (*models.Building, error) {
	var b models.Building
	err := s.db.Pool.QueryRow(ctx, `
		UPDATE buildings
		SET code = COALESCE($1, code), name = COALESCE($2, name), updated_at = NOW()
		WHERE id = $3
		RETURNING id, code, name, created_at, updated_at
	`, code, name, id).Scan(&b.ID, &b.Code, &b.Name, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBuildingNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrBuildingCodeTaken
		}
		return nil, err
	}
	return &b, nil
}

func (s *BuildingService) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := s.db.Pool.Exec(ctx, `DELETE FROM buildings WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrBuildingNotFound
	}
	return nil
}
