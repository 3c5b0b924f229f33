package testutil

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/cadencehq/cadence-api/internal/models"
	"github.com/cadencehq/cadence-api/internal/scheduler"
	"github.com/cadencehq/cadence-api/internal/services"
	"github.com/cadencehq/cadence-api/internal/sse"
)

// MockUserService is a mock implementation of UserServiceInterface
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Create(ctx context.Context, username, email, name, password, role string, departmentID *uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, username, email, name, password, role, departmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) Update(ctx context.Context, id uuid.UUID, name string) (*models.User, error) {
	args := m.Called(ctx, id, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) FacultyEmails(ctx context.Context, departmentID uuid.UUID) ([]string, error) {
	args := m.Called(ctx, departmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockTokenService is a mock implementation of TokenServiceInterface
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) StoreRefreshToken(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error {
	args := m.Called(ctx, userID, tokenHash, expiresAt)
	return args.Error(0)
}

func (m *MockTokenService) ValidateRefreshToken(ctx context.Context, tokenHash string) (uuid.UUID, error) {
	args := m.Called(ctx, tokenHash)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockTokenService) RevokeRefreshToken(ctx context.Context, tokenHash string) error {
	args := m.Called(ctx, tokenHash)
	return args.Error(0)
}

func (m *MockTokenService) RevokeAllUserTokens(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// MockJWTService is a mock implementation of JWTServiceInterface
type MockJWTService struct {
	mock.Mock
}

func (m *MockJWTService) GenerateTokenPair(userID uuid.UUID, username, role string) (*services.TokenPair, error) {
	args := m.Called(userID, username, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.TokenPair), args.Error(1)
}

func (m *MockJWTService) ValidateRefreshToken(token string) (uuid.UUID, error) {
	args := m.Called(token)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockJWTService) RefreshExpiry() time.Duration {
	args := m.Called()
	return args.Get(0).(time.Duration)
}

// MockBuildingService is a mock implementation of BuildingServiceInterface
type MockBuildingService struct {
	mock.Mock
}

func (m *MockBuildingService) Create(ctx context.Context, code, name string) (*models.Building, error) {
	args := m.Called(ctx, code, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Building), args.Error(1)
}

func (m *MockBuildingService) GetByID(ctx context.Context, id uuid.UUID) (*models.Building, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Building), args.Error(1)
}

func (m *MockBuildingService) List(ctx context.Context, opts services.ListOptions) ([]models.Building, int, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]models.Building), args.Int(1), args.Error(2)
}

func (m *MockBuildingService) Update(ctx context.Context, id uuid.UUID, code, name *string) (*models.Building, error) {
	args := m.Called(ctx, id, code, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Building), args.Error(1)
}

func (m *MockBuildingService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockRoomService is a mock implementation of RoomServiceInterface
type MockRoomService struct {
	mock.Mock
}

func (m *MockRoomService) Create(ctx context.Context, buildingID uuid.UUID, name, roomType string, capacity int) (*models.Room, error) {
	args := m.Called(ctx, buildingID, name, roomType, capacity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Room), args.Error(1)
}

func (m *MockRoomService) GetByID(ctx context.Context, id uuid.UUID) (*models.Room, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Room), args.Error(1)
}

func (m *MockRoomService) List(ctx context.Context, buildingID *uuid.UUID, opts services.ListOptions) ([]models.Room, int, error) {
	args := m.Called(ctx, buildingID, opts)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]models.Room), args.Int(1), args.Error(2)
}

func (m *MockRoomService) Update(ctx context.Context, id uuid.UUID, name, roomType *string, capacity *int) (*models.Room, error) {
	args := m.Called(ctx, id, name, roomType, capacity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Room), args.Error(1)
}

func (m *MockRoomService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockDepartmentService is a mock implementation of DepartmentServiceInterface
type MockDepartmentService struct {
	mock.Mock
}

func (m *MockDepartmentService) Create(ctx context.Context, code, name string) (*models.Department, error) {
	args := m.Called(ctx, code, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Department), args.Error(1)
}

func (m *MockDepartmentService) GetByID(ctx context.Context, id uuid.UUID) (*models.Department, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Department), args.Error(1)
}

func (m *MockDepartmentService) List(ctx context.Context, opts services.ListOptions) ([]models.Department, int, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]models.Department), args.Int(1), args.Error(2)
}

func (m *MockDepartmentService) Update(ctx context.Context, id uuid.UUID, code, name *string) (*models.Department, error) {
	args := m.Called(ctx, id, code, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Department), args.Error(1)
}

func (m *MockDepartmentService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockCourseService is a mock implementation of CourseServiceInterface
type MockCourseService struct {
	mock.Mock
}

func (m *MockCourseService) Create(ctx context.Context, departmentID uuid.UUID, code, name string, credits, semester int) (*models.Course, error) {
	args := m.Called(ctx, departmentID, code, name, credits, semester)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Course), args.Error(1)
}

func (m *MockCourseService) GetByID(ctx context.Context, id uuid.UUID) (*models.Course, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Course), args.Error(1)
}

func (m *MockCourseService) List(ctx context.Context, departmentID *uuid.UUID, opts services.ListOptions) ([]models.Course, int, error) {
	args := m.Called(ctx, departmentID, opts)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]models.Course), args.Int(1), args.Error(2)
}

func (m *MockCourseService) Update(ctx context.Context, id uuid.UUID, code, name *string, credits, semester *int) (*models.Course, error) {
	args := m.Called(ctx, id, code, name, credits, semester)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Course), args.Error(1)
}

func (m *MockCourseService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockBatchService is a mock implementation of BatchServiceInterface
type MockBatchService struct {
	mock.Mock
}

func (m *MockBatchService) Create(ctx context.Context, departmentID uuid.UUID, name string, year int, section string, strength int) (*models.Batch, error) {
	args := m.Called(ctx, departmentID, name, year, section, strength)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Batch), args.Error(1)
}

func (m *MockBatchService) GetByID(ctx context.Context, id uuid.UUID) (*models.Batch, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Batch), args.Error(1)
}

func (m *MockBatchService) List(ctx context.Context, departmentID *uuid.UUID, opts services.ListOptions) ([]models.Batch, int, error) {
	args := m.Called(ctx, departmentID, opts)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]models.Batch), args.Int(1), args.Error(2)
}

func (m *MockBatchService) Update(ctx context.Context, id uuid.UUID, name *string, year *int, section *string, strength *int) (*models.Batch, error) {
	args := m.Called(ctx, id, name, year, section, strength)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Batch), args.Error(1)
}

func (m *MockBatchService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockTimetableService is a mock implementation of TimetableServiceInterface
type MockTimetableService struct {
	mock.Mock
}

func (m *MockTimetableService) Create(ctx context.Context, batchID, requestedBy uuid.UUID) (*models.Timetable, error) {
	args := m.Called(ctx, batchID, requestedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Timetable), args.Error(1)
}

func (m *MockTimetableService) AttachEngineJob(ctx context.Context, id uuid.UUID, jobID string) error {
	args := m.Called(ctx, id, jobID)
	return args.Error(0)
}

func (m *MockTimetableService) MarkFailed(ctx context.Context, id uuid.UUID, message string) error {
	args := m.Called(ctx, id, message)
	return args.Error(0)
}

func (m *MockTimetableService) ApplyEngineResult(ctx context.Context, jobID, status string, entries json.RawMessage, message string) (*models.Timetable, error) {
	args := m.Called(ctx, jobID, status, entries, message)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Timetable), args.Error(1)
}

func (m *MockTimetableService) GetByID(ctx context.Context, id uuid.UUID) (*models.Timetable, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Timetable), args.Error(1)
}

func (m *MockTimetableService) List(ctx context.Context, batchID *uuid.UUID, status string, opts services.ListOptions) ([]models.Timetable, int, error) {
	args := m.Called(ctx, batchID, status, opts)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]models.Timetable), args.Int(1), args.Error(2)
}

func (m *MockTimetableService) Review(ctx context.Context, id, reviewerID uuid.UUID, approve bool, comment *string) (*models.Timetable, error) {
	args := m.Called(ctx, id, reviewerID, approve, comment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Timetable), args.Error(1)
}

func (m *MockTimetableService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockSchedulerClient is a mock implementation of SchedulerClientInterface
type MockSchedulerClient struct {
	mock.Mock
}

func (m *MockSchedulerClient) SubmitJob(ctx context.Context, req scheduler.GenerateRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *MockSchedulerClient) CancelJob(ctx context.Context, jobID string) error {
	args := m.Called(ctx, jobID)
	return args.Error(0)
}

// MockEmailService is a mock implementation of EmailServiceInterface
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) IsConfigured() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockEmailService) SendTimetablePublished(to, batchName, dashboardURL string) error {
	args := m.Called(to, batchName, dashboardURL)
	return args.Error(0)
}

// MockHub is a mock implementation of HubInterface
type MockHub struct {
	mock.Mock
}

func (m *MockHub) Register(client *sse.Client) {
	m.Called(client)
}

func (m *MockHub) Unregister(client *sse.Client) {
	m.Called(client)
}

func (m *MockHub) SubscribeToBatch(clientID string, batchID uuid.UUID) {
	m.Called(clientID, batchID)
}

func (m *MockHub) UnsubscribeFromBatch(clientID string, batchID uuid.UUID) {
	m.Called(clientID, batchID)
}

func (m *MockHub) BroadcastTimetableStatus(batchID, timetableID uuid.UUID, status string) {
	m.Called(batchID, timetableID, status)
}
