package handlers

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"

	"github.com/cadencehq/cadence-api/internal/middleware"
	"github.com/cadencehq/cadence-api/internal/models"
	"github.com/cadencehq/cadence-api/internal/services"
	"github.com/cadencehq/cadence-api/pkg/dto"
)

type AuthHandler struct {
	userService  UserServiceInterface
	tokenService TokenServiceInterface
	jwtService   JWTServiceInterface
}

func NewAuthHandler(
	userService UserServiceInterface,
	tokenService TokenServiceInterface,
	jwtService JWTServiceInterface,
) *AuthHandler {
	return &AuthHandler{
		userService:  userService,
		tokenService: tokenService,
		jwtService:   jwtService,
	}
}

func (h *AuthHandler) Login(c *drift.Context) {
	var req dto.LoginRequest
	if !bindAndValidate(c, &req) {
		return
	}

	ctx := context.Background()

	user, err := h.userService.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.Unauthorized("invalid username or password")
			return
		}
		c.InternalServerError("failed to log in")
		return
	}

	pair, err := h.jwtService.GenerateTokenPair(user.ID, user.Username, user.Role)
	if err != nil {
		c.InternalServerError("failed to issue tokens")
		return
	}

	expiresAt := time.Now().Add(h.jwtService.RefreshExpiry())
	if err := h.tokenService.StoreRefreshToken(ctx, user.ID, services.HashToken(pair.RefreshToken), expiresAt); err != nil {
		c.InternalServerError("failed to store refresh token")
		return
	}

	_ = c.JSON(200, dto.TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.ExpiresIn,
		User:         userResponse(user),
	})
}

func (h *AuthHandler) Refresh(c *drift.Context) {
	var req dto.RefreshTokenRequest
	if !bindAndValidate(c, &req) {
		return
	}

	userID, err := h.jwtService.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		c.Unauthorized("invalid refresh token")
		return
	}

	ctx := context.Background()
	tokenHash := services.HashToken(req.RefreshToken)

	storedUserID, err := h.tokenService.ValidateRefreshToken(ctx, tokenHash)
	if err != nil || storedUserID != userID {
		c.Unauthorized("refresh token revoked or expired")
		return
	}

	user, err := h.userService.GetByID(ctx, userID)
	if err != nil {
		c.Unauthorized("user no longer exists")
		return
	}

	pair, err := h.jwtService.GenerateTokenPair(user.ID, user.Username, user.Role)
	if err != nil {
		c.InternalServerError("failed to issue tokens")
		return
	}

	// Rotate: revoke the used token before storing its replacement.
	_ = h.tokenService.RevokeRefreshToken(ctx, tokenHash)

	expiresAt := time.Now().Add(h.jwtService.RefreshExpiry())
	if err := h.tokenService.StoreRefreshToken(ctx, user.ID, services.HashToken(pair.RefreshToken), expiresAt); err != nil {
		c.InternalServerError("failed to store refresh token")
		return
	}

	_ = c.JSON(200, dto.TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.ExpiresIn,
		User:         userResponse(user),
	})
}

func (h *AuthHandler) Logout(c *drift.Context) {
	var req dto.RefreshTokenRequest
	if err := c.BindJSON(&req); err != nil || req.RefreshToken == "" {
		c.BadRequest("refresh_token is required")
		return
	}

	_ = h.tokenService.RevokeRefreshToken(context.Background(), services.HashToken(req.RefreshToken))

	_ = c.JSON(200, map[string]string{"message": "logged out"})
}

func (h *AuthHandler) LogoutAll(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	if err := h.tokenService.RevokeAllUserTokens(context.Background(), userID); err != nil {
		c.InternalServerError("failed to revoke tokens")
		return
	}

	_ = c.JSON(200, map[string]string{"message": "all sessions revoked"})
}

// Register creates a user account. The route is admin-gated; the
// role defaults to student when omitted.
func (h *AuthHandler) Register(c *drift.Context) {
	var req dto.RegisterRequest
	if !bindAndValidate(c, &req) {
		return
	}

	role := strings.ToLower(req.Role)
	if role == "" {
		role = models.RoleStudent
	}

	user, err := h.userService.Create(context.Background(), req.Username, req.Email, req.Name, req.Password, role, req.DepartmentID)
	if err != nil {
		if errors.Is(err, services.ErrUsernameTaken) || errors.Is(err, services.ErrEmailTaken) {
			c.BadRequest(err.Error())
			return
		}
		c.InternalServerError("failed to create user")
		return
	}

	_ = c.JSON(201, userResponse(user))
}

func userResponse(user *models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:           user.ID,
		Username:     user.Username,
		Email:        user.Email,
		Name:         user.Name,
		Role:         user.Role,
		DepartmentID: user.DepartmentID,
	}
}
