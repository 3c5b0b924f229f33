package handlers

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/cadencehq/cadence-api/internal/models"
	"github.com/cadencehq/cadence-api/internal/scheduler"
	"github.com/cadencehq/cadence-api/internal/services"
	"github.com/cadencehq/cadence-api/internal/sse"
)

// UserServiceInterface defines the methods used by handlers from UserService
type UserServiceInterface interface {
	Create(ctx context.Context, username, email, name, password, role string, departmentID *uuid.UUID) (*models.User, error)
	Authenticate(ctx context.Context, username, password string) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	Update(ctx context.Context, id uuid.UUID, name string) (*models.User, error)
	FacultyEmails(ctx context.Context, departmentID uuid.UUID) ([]string, error)
}

// TokenServiceInterface defines the methods used by handlers from TokenService
type TokenServiceInterface interface {
	StoreRefreshToken(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error
	ValidateRefreshToken(ctx context.Context, tokenHash string) (uuid.UUID, error)
	RevokeRefreshToken(ctx context.Context, tokenHash string) error
	RevokeAllUserTokens(ctx context.Context, userID uuid.UUID) error
}

// JWTServiceInterface defines the methods used by handlers from JWTService
type JWTServiceInterface interface {
	GenerateTokenPair(userID uuid.UUID, username, role string) (*services.TokenPair, error)
	ValidateRefreshToken(token string) (uuid.UUID, error)
	RefreshExpiry() time.Duration
}

// BuildingServiceInterface defines the methods used by handlers from BuildingService
type BuildingServiceInterface interface {
	Create(ctx context.Context, code, name string) (*models.Building, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Building, error)
	List(ctx context.Context, opts services.ListOptions) ([]models.Building, int, error)
	Update(ctx context.Context, id uuid.UUID, code, name *string) (*models.Building, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// RoomServiceInterface defines the methods used by handlers from RoomService
type RoomServiceInterface interface {
	Create(ctx context.Context, buildingID uuid.UUID, name, roomType string, capacity int) (*models.Room, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Room, error)
	List(ctx context.Context, buildingID *uuid.UUID, opts services.ListOptions) ([]models.Room, int, error)
	Update(ctx context.Context, id uuid.UUID, name, roomType *string, capacity *int) (*models.Room, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// DepartmentServiceInterface defines the methods used by handlers from DepartmentService
type DepartmentServiceInterface interface {
	Create(ctx context.Context, code, name string) (*models.Department, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Department, error)
	List(ctx context.Context, opts services.ListOptions) ([]models.Department, int, error)
	Update(ctx context.Context, id uuid.UUID, code, name *string) (*models.Department, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CourseServiceInterface defines the methods used by handlers from CourseService
type CourseServiceInterface interface {
	Create(ctx context.Context, departmentID uuid.UUID, code, name string, credits, semester int) (*models.Course, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Course, error)
	List(ctx context.Context, departmentID *uuid.UUID, opts services.ListOptions) ([]models.Course, int, error)
	Update(ctx context.Context, id uuid.UUID, code, name *string, credits, semester *int) (*models.Course, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// BatchServiceInterface defines the methods used by handlers from BatchService
type BatchServiceInterface interface {
	Create(ctx context.Context, departmentID uuid.UUID, name string, year int, section string, strength int) (*models.Batch, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Batch, error)
	List(ctx context.Context, departmentID *uuid.UUID, opts services.ListOptions) ([]models.Batch, int, error)
	Update(ctx context.Context, id uuid.UUID, name *string, year *int, section *string, strength *int) (*models.Batch, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// TimetableServiceInterface defines the methods used by handlers from TimetableService
type TimetableServiceInterface interface {
	Create(ctx context.Context, batchID, requestedBy uuid.UUID) (*models.Timetable, error)
	AttachEngineJob(ctx context.Context, id uuid.UUID, jobID string) error
	MarkFailed(ctx context.Context, id uuid.UUID, message string) error
	ApplyEngineResult(ctx context.Context, jobID, status string, entries json.RawMessage, message string) (*models.Timetable, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Timetable, error)
	List(ctx context.Context, batchID *uuid.UUID, status string, opts services.ListOptions) ([]models.Timetable, int, error)
	Review(ctx context.Context, id, reviewerID uuid.UUID, approve bool, comment *string) (*models.Timetable, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// SchedulerClientInterface defines the methods used by handlers from the engine client
type SchedulerClientInterface interface {
	SubmitJob(ctx context.Context, req scheduler.GenerateRequest) (string, error)
	CancelJob(ctx context.Context, jobID string) error
}

// EmailServiceInterface defines the methods used by handlers from EmailService
type EmailServiceInterface interface {
	IsConfigured() bool
	SendTimetablePublished(to, batchName, dashboardURL string) error
}

// HubInterface defines the methods used by handlers from the SSE hub
type HubInterface interface {
	Register(client *sse.Client)
	Unregister(client *sse.Client)
	SubscribeToBatch(clientID string, batchID uuid.UUID)
	UnsubscribeFromBatch(clientID string, batchID uuid.UUID)
	BroadcastTimetableStatus(batchID, timetableID uuid.UUID, status string)
}
