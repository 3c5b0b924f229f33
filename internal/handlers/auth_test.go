package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	driftmw "github.com/m1z23r/drift/pkg/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/cadencehq/cadence-api/internal/models"
	"github.com/cadencehq/cadence-api/internal/services"
	"github.com/cadencehq/cadence-api/pkg/dto"
	"github.com/cadencehq/cadence-api/tests/testutil"
)

func setupAuthTest(t *testing.T) (*testutil.MockUserService, *testutil.MockTokenService, *testutil.MockJWTService, *AuthHandler) {
	t.Helper()
	mockUserService := new(testutil.MockUserService)
	mockTokenService := new(testutil.MockTokenService)
	mockJWTService := new(testutil.MockJWTService)

	handler := NewAuthHandler(mockUserService, mockTokenService, mockJWTService)
	return mockUserService, mockTokenService, mockJWTService, handler
}

func postJSON(t *testing.T, app *drift.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	jsonBody, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)
	return rec
}

func TestAuthHandler_Login_Success(t *testing.T) {
	mockUserService, mockTokenService, mockJWTService, handler := setupAuthTest(t)

	userID := uuid.New()
	user := &models.User{
		ID:       userID,
		Username: "jdoe",
		Email:    "jdoe@example.com",
		Name:     "Jane Doe",
		Role:     models.RoleStaff,
	}
	tokenPair := &services.TokenPair{
		AccessToken:  "access-token-123",
		RefreshToken: "refresh-token-456",
		ExpiresIn:    900,
	}

	mockUserService.On("Authenticate", mock.Anything, "jdoe", "secret").Return(user, nil)
	mockJWTService.On("GenerateTokenPair", userID, "jdoe", models.RoleStaff).Return(tokenPair, nil)
	mockJWTService.On("RefreshExpiry").Return(24 * time.Hour)
	mockTokenService.On("StoreRefreshToken", mock.Anything, userID, mock.Anything, mock.Anything).Return(nil)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Post("/auth/login", handler.Login)

	rec := postJSON(t, app, "/auth/login", dto.LoginRequest{Username: "jdoe", Password: "secret"})

	assert.Equal(t, http.StatusOK, rec.Code)

	var response dto.TokenResponse
	err := json.Unmarshal(rec.Body.Bytes(), &response)
	require.NoError(t, err)

	assert.Equal(t, "access-token-123", response.AccessToken)
	assert.Equal(t, "refresh-token-456", response.RefreshToken)
	assert.Equal(t, "jdoe", response.User.Username)

	mockUserService.AssertExpectations(t)
	mockJWTService.AssertExpectations(t)
	mockTokenService.AssertExpectations(t)
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	mockUserService, _, _, handler := setupAuthTest(t)

	mockUserService.On("Authenticate", mock.Anything, "jdoe", "wrong").
		Return(nil, services.ErrInvalidCredentials)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Post("/auth/login", handler.Login)

	rec := postJSON(t, app, "/auth/login", dto.LoginRequest{Username: "jdoe", Password: "wrong"})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid username or password")
}

func TestAuthHandler_Login_MissingFields(t *testing.T) {
	_, _, _, handler := setupAuthTest(t)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Post("/auth/login", handler.Login)

	rec := postJSON(t, app, "/auth/login", map[string]string{"username": "jdoe"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuthHandler_Refresh_RotatesToken(t *testing.T) {
	mockUserService, mockTokenService, mockJWTService, handler := setupAuthTest(t)

	userID := uuid.New()
	user := &models.User{ID: userID, Username: "jdoe", Role: models.RoleStaff}
	oldToken := "old-refresh-token"
	oldHash := services.HashToken(oldToken)
	newPair := &services.TokenPair{
		AccessToken:  "new-access",
		RefreshToken: "new-refresh",
		ExpiresIn:    900,
	}

	mockJWTService.On("ValidateRefreshToken", oldToken).Return(userID, nil)
	mockTokenService.On("ValidateRefreshToken", mock.Anything, oldHash).Return(userID, nil)
	mockUserService.On("GetByID", mock.Anything, userID).Return(user, nil)
	mockJWTService.On("GenerateTokenPair", userID, "jdoe", models.RoleStaff).Return(newPair, nil)
	mockTokenService.On("RevokeRefreshToken", mock.Anything, oldHash).Return(nil)
	mockJWTService.On("RefreshExpiry").Return(24 * time.Hour)
	mockTokenService.On("StoreRefreshToken", mock.Anything, userID, services.HashToken("new-refresh"), mock.Anything).Return(nil)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Post("/auth/refresh", handler.Refresh)

	rec := postJSON(t, app, "/auth/refresh", dto.RefreshTokenRequest{RefreshToken: oldToken})

	assert.Equal(t, http.StatusOK, rec.Code)

	var response dto.TokenResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "new-refresh", response.RefreshToken)

	mockTokenService.AssertExpectations(t)
}

func TestAuthHandler_Refresh_RevokedToken(t *testing.T) {
	_, mockTokenService, mockJWTService, handler := setupAuthTest(t)

	userID := uuid.New()
	token := "revoked-token"

	mockJWTService.On("ValidateRefreshToken", token).Return(userID, nil)
	mockTokenService.On("ValidateRefreshToken", mock.Anything, services.HashToken(token)).
		Return(uuid.Nil, assert.AnError)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Post("/auth/refresh", handler.Refresh)

	rec := postJSON(t, app, "/auth/refresh", dto.RefreshTokenRequest{RefreshToken: token})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "revoked or expired")
}

func TestAuthHandler_Logout(t *testing.T) {
	_, mockTokenService, _, handler := setupAuthTest(t)

	token := "some-refresh-token"
	mockTokenService.On("RevokeRefreshToken", mock.Anything, services.HashToken(token)).Return(nil)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Post("/auth/logout", handler.Logout)

	rec := postJSON(t, app, "/auth/logout", dto.RefreshTokenRequest{RefreshToken: token})

	assert.Equal(t, http.StatusOK, rec.Code)
	mockTokenService.AssertExpectations(t)
}

func TestAuthHandler_Register(t *testing.T) {
	mockUserService, _, _, handler := setupAuthTest(t)

	user := &models.User{
		ID:       uuid.New(),
		Username: "newuser",
		Email:    "new@example.com",
		Name:     "New User",
		Role:     models.RoleFaculty,
	}

	mockUserService.On("Create", mock.Anything, "newuser", "new@example.com", "New User", "secret123", models.RoleFaculty, (*uuid.UUID)(nil)).
		Return(user, nil)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Post("/auth/register", handler.Register)

	rec := postJSON(t, app, "/auth/register", dto.RegisterRequest{
		Username: "newuser",
		Email:    "new@example.com",
		Name:     "New User",
		Password: "secret123",
		Role:     models.RoleFaculty,
	})

	assert.Equal(t, http.StatusCreated, rec.Code)
	mockUserService.AssertExpectations(t)
}

func TestAuthHandler_Register_UsernameTaken(t *testing.T) {
	mockUserService, _, _, handler := setupAuthTest(t)

	mockUserService.On("Create", mock.Anything, "taken", "t@example.com", "Taken", "secret123", models.RoleStudent, (*uuid.UUID)(nil)).
		Return(nil, services.ErrUsernameTaken)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Post("/auth/register", handler.Register)

	rec := postJSON(t, app, "/auth/register", dto.RegisterRequest{
		Username: "taken",
		Email:    "t@example.com",
		Name:     "Taken",
		Password: "secret123",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "username already taken")
}
