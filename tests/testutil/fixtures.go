package testutil

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/cadencehq/cadence-api/internal/database"
	"github.com/cadencehq/cadence-api/internal/models"
)

// DefaultPassword is the plaintext password every fixture user gets
const DefaultPassword = "test-password-123"

// Fixtures provides factory methods for creating test data
type Fixtures struct {
	db      *database.DB
	counter int
}

// NewFixtures creates a new fixtures factory
func NewFixtures(db *database.DB) *Fixtures {
	return &Fixtures{db: db}
}

// CreateUser creates a test user with default values
func (f *Fixtures) CreateUser(t *testing.T, opts ...UserOption) *models.User {
	t.Helper()
	f.counter++

	user := &models.User{
		Username: fmt.Sprintf("user%d", f.counter),
		Email:    fmt.Sprintf("user%d@example.com", f.counter),
		Name:     fmt.Sprintf("Test User %d", f.counter),
		Role:     models.RoleStudent,
	}

	for _, opt := range opts {
		opt(user)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	ctx := context.Background()
	err = f.db.Pool.QueryRow(ctx, `
		INSERT INTO users (username, email, name, password_hash, role, department_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`, user.Username, user.Email, user.Name, string(hash), user.Role, user.DepartmentID).Scan(
		&user.ID, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user
}

// UserOption configures a test user
type UserOption func(*models.User)

// WithUsername sets the user's username
func WithUsername(username string) UserOption {
	return func(u *models.User) {
		u.Username = username
	}
}

// WithRole sets the user's role
func WithRole(role string) UserOption {
	return func(u *models.User) {
		u.Role = role
	}
}

// WithDepartment assigns the user to a department
func WithDepartment(dept *models.Department) UserOption {
	return func(u *models.User) {
		u.DepartmentID = &dept.ID
	}
}

// CreateDepartment creates a test department
func (f *Fixtures) CreateDepartment(t *testing.T) *models.Department {
	t.Helper()
	f.counter++

	dept := &models.Department{
		Code: fmt.Sprintf("DEP%d", f.counter),
		Name: fmt.Sprintf("Test Department %d", f.counter),
	}

	ctx := context.Background()
	err := f.db.Pool.QueryRow(ctx, `
		INSERT INTO departments (code, name)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at
	`, dept.Code, dept.Name).Scan(&dept.ID, &dept.CreatedAt, &dept.UpdatedAt)
	if err != nil {
		t.Fatalf("failed to create department: %v", err)
	}

	return dept
}

// CreateBuilding creates a test building
func (f *Fixtures) CreateBuilding(t *testing.T) *models.Building {
	t.Helper()
	f.counter++

	building := &models.Building{
		Code: fmt.Sprintf("BLD%d", f.counter),
		Name: fmt.Sprintf("Test Building %d", f.counter),
	}

	ctx := context.Background()
	err := f.db.Pool.QueryRow(ctx, `
		INSERT INTO buildings (code, name)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at
	`, building.Code, building.Name).Scan(&building.ID, &building.CreatedAt, &building.UpdatedAt)
	if err != nil {
		t.Fatalf("failed to create building: %v", err)
	}

	return building
}

// CreateRoom creates a test room in a building
func (f *Fixtures) CreateRoom(t *testing.T, building *models.Building) *models.Room {
	t.Helper()
	f.counter++

	room := &models.Room{
		BuildingID: building.ID,
		Name:       fmt.Sprintf("Room %d", f.counter),
		RoomType:   models.RoomTypeLectureHall,
		Capacity:   60,
	}

	ctx := context.Background()
	err := f.db.Pool.QueryRow(ctx, `
		INSERT INTO rooms (building_id, name, room_type, capacity)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, room.BuildingID, room.Name, room.RoomType, room.Capacity).Scan(
		&room.ID, &room.CreatedAt, &room.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("failed to create room: %v", err)
	}

	return room
}

// CreateCourse creates a test course in a department
func (f *Fixtures) CreateCourse(t *testing.T, dept *models.Department) *models.Course {
	t.Helper()
	f.counter++

	course := &models.Course{
		DepartmentID: dept.ID,
		Code:         fmt.Sprintf("CRS%d", f.counter),
		Name:         fmt.Sprintf("Test Course %d", f.counter),
		Credits:      3,
		Semester:     1,
	}

	ctx := context.Background()
	err := f.db.Pool.QueryRow(ctx, `
		INSERT INTO courses (department_id, code, name, credits, semester)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, course.DepartmentID, course.Code, course.Name, course.Credits, course.Semester).Scan(
		&course.ID, &course.CreatedAt, &course.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("failed to create course: %v", err)
	}

	return course
}

// CreateBatch creates a test batch in a department
func (f *Fixtures) CreateBatch(t *testing.T, dept *models.Department) *models.Batch {
	t.Helper()
	f.counter++

	batch := &models.Batch{
		DepartmentID: dept.ID,
		Name:         fmt.Sprintf("Batch %d", f.counter),
		Year:         2024,
		Section:      "A",
		Strength:     40,
	}

	ctx := context.Background()
	err := f.db.Pool.QueryRow(ctx, `
		INSERT INTO batches (department_id, name, year, section, strength)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, batch.DepartmentID, batch.Name, batch.Year, batch.Section, batch.Strength).Scan(
		&batch.ID, &batch.CreatedAt, &batch.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("failed to create batch: %v", err)
	}

	return batch
}

// CreateTimetable creates a test timetable with the given status
func (f *Fixtures) CreateTimetable(t *testing.T, batch *models.Batch, requestedBy *models.User, status string) *models.Timetable {
	t.Helper()

	tt := &models.Timetable{
		BatchID:     batch.ID,
		Status:      status,
		Entries:     json.RawMessage(`[]`),
		RequestedBy: &requestedBy.ID,
	}

	ctx := context.Background()
	err := f.db.Pool.QueryRow(ctx, `
		INSERT INTO timetables (batch_id, status, entries, requested_by)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, tt.BatchID, tt.Status, tt.Entries, tt.RequestedBy).Scan(
		&tt.ID, &tt.CreatedAt, &tt.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("failed to create timetable: %v", err)
	}

	return tt
}

// CreateRefreshToken creates a test refresh token
func (f *Fixtures) CreateRefreshToken(t *testing.T, userID uuid.UUID, tokenHash string, expiresAt time.Time) {
	t.Helper()
	ctx := context.Background()

	_, err := f.db.Pool.Exec(ctx, `
		INSERT INTO refresh_tokens (user_id, token_hash, expires_at)
		VALUES ($1, $2, $3)
	`, userID, tokenHash, expiresAt)
	if err != nil {
		t.Fatalf("failed to create refresh token: %v", err)
	}
}
