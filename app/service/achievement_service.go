package service

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/hari-dev-003/Achieve/app/model"
	"github.com/hari-dev-003/Achieve/app/repo"
	"github.com/hari-dev-003/Achieve/config"
	"github.com/hari-dev-003/Achieve/helper"
	"github.com/hari-dev-003/Achieve/middleware"
)

type AchievementService struct {
	repo repo.AchievementRepository
}

func NewAchievementService(repo repo.AchievementRepository) *AchievementService {
	return &AchievementService{repo: repo}
}

// GET /api/v1/achievements
func (s *AchievementService) List(c *fiber.Ctx) error {
	session := middleware.GetSession(c)

	records, err := s.repo.FindByStudent(c.Context(), session.UserID.String())
	if err != nil {
		return respondErr(c, err)
	}

	return c.JSON(model.SuccessResponse[[]model.Achievement]{Success: true, Data: records})
}

// POST /api/v1/achievements
//
// The class partition fields are copied from the submitter's profile at
// submission time; they route the record to the right faculty queue.
func (s *AchievementService) Create(c *fiber.Ctx) error {
	session := middleware.GetSession(c)

	var req model.CreateAchievementRequest
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

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(model.ErrorResponse{
			Success: false,
			Message: "date must be YYYY-MM-DD",
		})
	}

	now := time.Now()
	record := model.Achievement{
		StudentID:     session.UserID.String(),
		StudentName:   session.Profile.Name,
		Title:         req.Title,
		Description:   req.Description,
		Date:          date,
		ImageURL:      req.ImageURL,
		Status:        model.StatusPending,
		Department:    session.Profile.Department,
		Year:          session.Profile.Year,
		Section:       session.Profile.Section,
		SubmittedAt:   now,
		LastUpdatedAt: now,
	}

	if err := s.repo.Create(c.Context(), &record); err != nil {
		return respondErr(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(model.SuccessResponse[*model.Achievement]{
		Success: true,
		Data:    &record,
	})
}

// PUT /api/v1/achievements/:id
//
// Editing a pending or rejected record resubmits it: the status returns to
// pending and any previous review outcome is cleared.
func (s *AchievementService) Resubmit(c *fiber.Ctx) error {
	session := middleware.GetSession(c)
	id := c.Params("id")

	record, err := s.repo.FindByID(c.Context(), id)
	if err != nil {
		return respondErr(c, err)
	}
	if record.StudentID != session.UserID.String() {
		return c.Status(fiber.StatusForbidden).JSON(model.ErrorResponse{
			Success: false,
			Message: "You are not authorised to update this achievement",
		})
	}

	var req model.ResubmitRequest
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

	if err := s.repo.Resubmit(c.Context(), id, req, time.Now()); err != nil {
		return respondErr(c, err)
	}

	return c.JSON(model.SuccessMessageResponse{Success: true, Message: "Resubmitted for review"})
}

// DELETE /api/v1/achievements/:id
func (s *AchievementService) Delete(c *fiber.Ctx) error {
	session := middleware.GetSession(c)
	id := c.Params("id")

	record, err := s.repo.FindByID(c.Context(), id)
	if err != nil {
		return respondErr(c, err)
	}
	if record.StudentID != session.UserID.String() {
		return c.Status(fiber.StatusForbidden).JSON(model.ErrorResponse{
			Success: false,
			Message: "You are not authorised to delete this achievement",
		})
	}

	if err := s.repo.Delete(c.Context(), id); err != nil {
		return respondErr(c, err)
	}

	return c.JSON(model.SuccessMessageResponse{Success: true, Message: "Deleted"})
}

// POST /api/v1/achievements/upload
//
// Stores a certificate image and returns its stable URL; the client then
// submits the achievement record carrying that URL.
func (s *AchievementService) UploadCertificate(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(model.ErrorResponse{
			Success: false,
			Message: "File required",
		})
	}

	storedFilename := fmt.Sprintf("%s%s", uuid.NewString(), filepath.Ext(file.Filename))
	uploadDir := config.Env.UploadDir
	if err := os.MkdirAll(uploadDir, os.ModePerm); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(model.ErrorResponse{
			Success: false,
			Message: "Failed to create upload directory",
		})
	}

	if err := c.SaveFile(file, filepath.Join(uploadDir, storedFilename)); err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(model.ErrorResponse{
			Success: false,
			Message: "Failed saving file",
		})
	}

	imageURL := config.Env.PublicURL + "/uploads/" + storedFilename
	return c.JSON(model.SuccessResponse[fiber.Map]{
		Success: true,
		Data:    fiber.Map{"imageUrl": imageURL},
	})
}
