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
	ErrRoomNotFound  = errors.New("room not found")
	ErrRoomNameTaken = errors.New("room name already in use in this building")
)

const roomColumns = `id, building_id, name, room_type, capacity, created_at, updated_at`

type RoomService struct {
	db *database.DB
}

func NewRoomService(db *database.DB) *RoomService {
	return &RoomService{db: db}
}

func (s *RoomService) Create(ctx context.Context, buildingID uuid.UUID, name, roomType string, capacity int) (*models.Room, error) {
	var r models.Room
	err := s.db.Pool.QueryRow(ctx, `
		INSERT INTO rooms (building_id, name, room_type, capacity)
		VALUES ($1, $2, $3, $4)
		RETURNING `+roomColumns+`
	`, buildingID, name, roomType, capacity).Scan(
		&r.ID, &r.BuildingID, &r.Name, &r.RoomType, &r.Capacity, &r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				return nil, ErrRoomNameTaken
			case "23503":
				return nil, ErrBuildingNotFound
			}
		}
		return nil, fmt.Errorf("failed to create room: %w", err)
	}
	return &r, nil
}

func (s *RoomService) GetByID(ctx context.Context, id uuid.UUID) (*models.Room, error) {
	var r models.Room
	err := s.db.Pool.QueryRow(ctx, `
		SELECT `+roomColumns+` FROM rooms WHERE id = $1
	`, id).Scan(&r.ID, &r.BuildingID, &r.Name, &r.RoomType, &r.Capacity, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return &r, nil
}

// List returns rooms matching opts. buildingID narrows the listing to
// one building when non-nil; search matches name and room_type.
func (s *RoomService) List(ctx context.Context, buildingID *uuid.UUID, opts ListOptions) ([]models.Room, int, error) {
	where := ""
	args := []any{}
	next := func() string { return fmt.Sprintf("$%d", len(args)+1) }

	if buildingID != nil {
		where = `WHERE building_id = ` + next()
		args = append(args, *buildingID)
	}
	if opts.Search != "" {
		clause := `(name ILIKE ` + next() + ` OR room_type ILIKE ` + next() + `)`
		if where == "" {
			where = `WHERE ` + clause
		} else {
			where += ` AND ` + clause
		}
		pattern := "%" + opts.Search + "%"
		args = append(args, pattern, pattern)
	}

	var count int
	if err := s.db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM rooms `+where, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + roomColumns + ` FROM rooms ` + where + ` ORDER BY name ASC`
	if opts.Paged() {
		query += fmt.Sprintf(` LIMIT %d OFFSET %d`, opts.Limit(), opts.Offset())
	}

	rows, err := s.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var rooms []models.Room
	for rows.Next() {
		var r models.Room
		if err := rows.Scan(&r.ID, &r.BuildingID, &r.Name, &r.RoomType, &r.Capacity, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, 0, err
		}
		rooms = append(rooms, r)
	}
	return rooms, count, rows.Err()
}

func (s *RoomService) Update(ctx context.Context, id uuid.UUID, name, roomType *string, capacity *int) (*models.Room, error) {
	var r models.Room
	err := s.db.Pool.QueryRow(ctx, `
		UPDATE rooms
		SET name = COALESCE($1, name),
		    room_type = COALESCE($2, room_type),
		    capacity = COALESCE($3, capacity),
		    updated_at = NOW()
		WHERE id = $4
		RETURNING `+roomColumns+`
	`, name, roomType, capacity, id).Scan(
		&r.ID, &r.BuildingID, &r.Name, &r.RoomType, &r.Capacity, &r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRoomNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrRoomNameTaken
		}
		return nil, err
	}
	return &r, nil
}

func (s *RoomService) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := s.db.Pool.Exec(ctx, `DELETE FROM rooms WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrRoomNotFound
	}
	return nil
}
