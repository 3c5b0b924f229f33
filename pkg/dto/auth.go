package dto

import (
	"github.com/google/uuid"
)

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type TokenResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresIn    int64        `json:"expires_in"`
	User         UserResponse `json:"user"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type UserResponse struct {
	ID           uuid.UUID  `json:"id"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	Name         string     `json:"name"`
	Role         string     `json:"role"`
	DepartmentID *uuid.UUID `json:"department_id,omitempty"`
}

type RegisterRequest struct {
	Username     string     `json:"username" validate:"required,min=3,max=100"`
	Email        string     `json:"email" validate:"required,email"`
	Name         string     `json:"name" validate:"required"`
	Password     string     `json:"password" validate:"required,min=8"`
	Role         string     `json:"role" validate:"omitempty,oneof=admin staff faculty student"`
	DepartmentID *uuid.UUID `json:"department_id,omitempty"`
}

type UpdateMeRequest struct {
	Name string `json:"name" validate:"required"`
}
