package service

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/hari-dev-003/Achieve/app/model"
	"github.com/hari-dev-003/Achieve/app/repo"
	"github.com/hari-dev-003/Achieve/helper"
	"github.com/hari-dev-003/Achieve/middleware"
)

type AuthService struct {
	repo repo.UserRepository
}

func NewAuthService(repo repo.UserRepository) *AuthService {
	return &AuthService{repo: repo}
}

// POST /api/v1/auth/register
func (s *AuthService) Register(c *fiber.Ctx) error {
	var req model.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(model.ErrorResponse{
			Success: false,
			Message: "Invalid input",
		})
	}

	if err := helper.ValidateStruct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(model.ErrorResponse{
			Success: false,
			Message: helper.FormatValidationErrors(err),
		})
	}

	if existing, _ := s.repo.FindByEmail(req.Email); existing != nil {
		return c.Status(fiber.StatusConflict).JSON(model.ErrorResponse{
			Success: false,
			Message: "An account with this email already exists",
		})
	}

	hash, err := helper.HashPassword(req.Password)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(model.ErrorResponse{
			Success: false,
			Message: "Failed to create account",
		})
	}

	user := model.User{
		Email:        req.Email,
		PasswordHash: hash,
		Name:         req.Name,
		Role:         req.Role,
		Department:   req.Department,
		Year:         req.Year,
		Section:      req.Section,
		SkillSet:     []string{},
	}
	if err := s.repo.Create(&user); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(model.ErrorResponse{
			Success: false,
			Message: "Failed to create account",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(model.SuccessResponse[model.LoginUser]{
		Success: true,
		Message: "Account created",
		Data:    loginUser(&user),
	})
}

// POST /api/v1/auth/login
func (s *AuthService) Login(c *fiber.Ctx) error {
	var req model.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(model.ErrorResponse{
			Success: false,
			Message: "Invalid input",
		})
	}

	if err := helper.ValidateStruct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(model.ErrorResponse{
			Success: false,
			Message: helper.FormatValidationErrors(err),
		})
	}

	user, err := s.repo.FindByEmail(req.Email)
	if err != nil || !helper.CheckPasswordHash(req.Password, user.PasswordHash) {
		return c.Status(fiber.StatusUnauthorized).JSON(model.ErrorResponse{
			Success: false,
			Message: "Invalid credentials",
		})
	}

	token, err := helper.GenerateToken(*user)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(model.ErrorResponse{
			Success: false,
			Message: "Failed to generate token",
		})
	}

	refreshToken, err := helper.GenerateRefreshToken(*user)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(model.ErrorResponse{
			Success: false,
			Message: "Failed to generate refresh token",
		})
	}

	if err := s.repo.SetRefreshToken(user.ID, refreshToken); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(model.ErrorResponse{
			Success: false,
			Message: "Failed to save refresh token",
		})
	}

	return c.JSON(model.SuccessResponse[model.LoginResponse]{
		Success: true,
		Message: "Login successful",
		Data: model.LoginResponse{
			User:         loginUser(user),
			Token:        token,
			RefreshToken: refreshToken,
		},
	})
}

// POST /api/v1/auth/refresh
func (s *AuthService) Refresh(c *fiber.Ctx) error {
	var req model.RefreshTokenRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(model.ErrorResponse{
			Success: false,
			Message: "Refresh token required",
		})
	}

	claims, err := helper.ValidateToken(req.RefreshToken)
	if err != nil || claims.Type != "refresh" {
		return c.Status(fiber.StatusUnauthorized).JSON(model.ErrorResponse{
			Success: false,
			Message: "Invalid refresh token",
		})
	}

	user, err := s.repo.FindByID(claims.UserID)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(model.ErrorResponse{
			Success: false,
			Message: "User not found",
		})
	}

	if user.RefreshToken != req.RefreshToken {
		return c.Status(fiber.StatusUnauthorized).JSON(model.ErrorResponse{
			Success: false,
			Message: "Invalid refresh token",
		})
	}

	newToken, err := helper.GenerateToken(*user)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(model.ErrorResponse{
			Success: false,
			Message: "Failed to generate token",
		})
	}

	return c.JSON(model.SuccessResponse[model.RefreshTokenResponse]{
		Success: true,
		Message: "Token refreshed",
		Data:    model.RefreshTokenResponse{Token: newToken},
	})
}

// POST /api/v1/auth/logout
func (s *AuthService) Logout(c *fiber.Ctx) error {
	session := middleware.GetSession(c)
	if session == nil {
		return respondErr(c, errors.New("session not resolved"))
	}

	if err := s.repo.SetRefreshToken(session.UserID, ""); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(model.ErrorResponse{
			Success: false,
			Message: "Failed to logout",
		})
	}

	return c.JSON(model.SuccessMessageResponse{
		Success: true,
		Message: "Successfully logged out",
	})
}

// GET /api/v1/auth/profile
func (s *AuthService) Profile(c *fiber.Ctx) error {
	session := middleware.GetSession(c)
	return c.JSON(model.SuccessResponse[*model.User]{
		Success: true,
		Data:    session.Profile,
	})
}

// PUT /api/v1/auth/profile
func (s *AuthService) UpdateProfile(c *fiber.Ctx) error {
	session := middleware.GetSession(c)

	var req model.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(model.ErrorResponse{
			Success: false,
			Message: "Invalid input",
		})
	}

	updated, err := s.repo.UpdateProfile(session.UserID, req)
	if err != nil {
		return respondErr(c, err)
	}

	return c.JSON(model.SuccessResponse[*model.User]{
		Success: true,
		Message: "Profile updated",
		Data:    updated,
	})
}

func loginUser(u *model.User) model.LoginUser {
	return model.LoginUser{
		ID:         u.ID.String(),
		Email:      u.Email,
		Name:       u.Name,
		Role:       u.Role,
		Department: u.Department,
		Year:       u.Year,
		Section:    u.Section,
	}
}
