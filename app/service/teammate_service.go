package service

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/hari-dev-003/Achieve/app/model"
	"github.com/hari-dev-003/Achieve/app/repo"
	"github.com/hari-dev-003/Achieve/helper"
	"github.com/hari-dev-003/Achieve/middleware"
)

type TeammateService struct {
	repo repo.TeammateRepository
}

func NewTeammateService(repo repo.TeammateRepository) *TeammateService {
	return &TeammateService{repo: repo}
}

// GET /api/v1/teammates
func (s *TeammateService) List(c *fiber.Ctx) error {
	posts, err := s.repo.FindAll(c.Context())
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(model.SuccessResponse[[]model.TeammatePost]{Success: true, Data: posts})
}

// POST /api/v1/teammates
func (s *TeammateService) Create(c *fiber.Ctx) error {
	session := middleware.GetSession(c)

	var req model.CreateTeammatePostRequest
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

	post := model.TeammatePost{
		AuthorID:    session.UserID.String(),
		AuthorName:  session.Profile.Name,
		AuthorEmail: session.Email,
		Department:  session.Profile.Department,
		Year:        session.Profile.Year,
		Goal:        req.Goal,
		Message:     req.Message,
		CreatedAt:   time.Now(),
	}
	if err := s.repo.Create(c.Context(), &post); err != nil {
		return respondErr(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(model.SuccessResponse[*model.TeammatePost]{
		Success: true,
		Data:    &post,
	})
}

// PUT /api/v1/teammates/:id
func (s *TeammateService) Update(c *fiber.Ctx) error {
	session := middleware.GetSession(c)

	var req model.UpdateTeammatePostRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(model.ErrorResponse{
			Success: false,
			Message: "Invalid input",
		})
	}

	if err := s.repo.Update(c.Context(), c.Params("id"), session.UserID.String(), req); err != nil {
		return respondErr(c, err)
	}

	return c.JSON(model.SuccessMessageResponse{Success: true, Message: "Updated"})
}

// DELETE /api/v1/teammates/:id
func (s *TeammateService) Delete(c *fiber.Ctx) error {
	session := middleware.GetSession(c)

	if err := s.repo.Delete(c.Context(), c.Params("id"), session.UserID.String()); err != nil {
		return respondErr(c, err)
	}

	return c.JSON(model.SuccessMessageResponse{Success: true, Message: "Deleted"})
}
