package model

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	RoleStudent = "student"
	RoleFaculty = "faculty"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Email        string    `gorm:"size:255;unique;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Name         string    `gorm:"size:255;not null" json:"name"`
	Role         string    `gorm:"size:20;not null" json:"role"`
	Department   string    `gorm:"size:100" json:"department"`
	Year         string    `gorm:"size:10" json:"year"`
	Section      string    `gorm:"size:10" json:"section"`
	SkillSet     []string  `gorm:"serializer:json" json:"skillSet"`
	RefreshToken string    `json:"-"`
	CreatedAt    time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// Session is the resolved identity attached to every authenticated request.
type Session struct {
	UserID  uuid.UUID
	Email   string
	Role    string
	Profile *User
}

// ClassKey is the (department, year, section) partition that routes records
// to the correct faculty reviewer.
type ClassKey struct {
	Department string `json:"department" query:"department" validate:"required"`
	Year       string `json:"year" query:"year" validate:"required"`
	Section    string `json:"section" query:"section" validate:"required"`
}

type RegisterRequest struct {
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=6"`
	Name       string `json:"name" validate:"required"`
	Role       string `json:"role" validate:"required,oneof=student faculty"`
	Department string `json:"department" validate:"required"`
	Year       string `json:"year" validate:"required"`
	Section    string `json:"section" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateProfileRequest struct {
	Name       string `json:"name"`
	Department string `json:"department"`
	Year       string `json:"year"`
	Section    string `json:"section"`
}

type LoginUser struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	Role       string `json:"role"`
	Department string `json:"department"`
	Year       string `json:"year"`
	Section    string `json:"section"`
}

type LoginResponse struct {
	User         LoginUser `json:"user"`
	Token        string    `json:"token"`
	RefreshToken string    `json:"refreshToken"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type RefreshTokenResponse struct {
	Token string `json:"token"`
}

type JWTClaims struct {
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
	Role   string    `json:"role"`
	Type   string    `json:"type"`
	jwt.RegisteredClaims
}
