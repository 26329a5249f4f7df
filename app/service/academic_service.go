package service

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/hari-dev-003/Achieve/app/model"
	"github.com/hari-dev-003/Achieve/app/repo"
	"github.com/hari-dev-003/Achieve/helper"
	"github.com/hari-dev-003/Achieve/middleware"
)

// ReportWriter composes a progress report or recommendation letter from a
// student's verified achievements.
type ReportWriter interface {
	ComposeReport(ctx context.Context, reportType, studentName, department string, achievements []string) (string, error)
}

type AcademicService struct {
	achievements repo.AchievementRepository
	users        repo.UserRepository
	writer       ReportWriter
}

func NewAcademicService(achievements repo.AchievementRepository, users repo.UserRepository, writer ReportWriter) *AcademicService {
	return &AcademicService{
		achievements: achievements,
		users:        users,
		writer:       writer,
	}
}

// GET /api/v1/faculty/class
//
// The class roster: every submission in the faculty member's selected class,
// grouped per student.
func (s *AcademicService) ClassRoster(c *fiber.Ctx) error {
	class, err := classFromQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(model.ErrorResponse{
			Success: false,
			Message: helper.FormatValidationErrors(err),
		})
	}

	records, err := s.achievements.FindByClass(c.Context(), *class)
	if err != nil {
		return respondErr(c, err)
	}

	return c.JSON(model.SuccessResponse[[]model.StudentGroup]{
		Success: true,
		Data:    GroupByStudent(records),
	})
}

// GET /api/v1/faculty/students
func (s *AcademicService) ClassStudents(c *fiber.Ctx) error {
	class, err := classFromQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(model.ErrorResponse{
			Success: false,
			Message: helper.FormatValidationErrors(err),
		})
	}

	students, err := s.users.ListStudentsByClass(*class)
	if err != nil {
		return respondErr(c, err)
	}

	return c.JSON(model.SuccessResponse[[]model.User]{Success: true, Data: students})
}

// GET /api/v1/faculty/analytics
func (s *AcademicService) Analytics(c *fiber.Ctx) error {
	records, err := s.achievements.FindAll(c.Context())
	if err != nil {
		return respondErr(c, err)
	}

	return c.JSON(model.SuccessResponse[model.AnalyticsResponse]{
		Success: true,
		Data: model.AnalyticsResponse{
			Engagement:  EngagementByMonth(records),
			Performance: PerformanceByDepartment(records),
		},
	})
}

type generateReportRequest struct {
	StudentID string `json:"studentId" validate:"required,uuid"`
	Type      string `json:"type" validate:"required,oneof=progress recommendation"`
}

// POST /api/v1/faculty/reports
func (s *AcademicService) GenerateReport(c *fiber.Ctx) error {
	session := middleware.GetSession(c)

	var req generateReportRequest
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

	verified, err := s.achievements.FindVerifiedByStudent(c.Context(), req.StudentID)
	if err != nil {
		return respondErr(c, err)
	}
	if len(verified) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(model.ErrorResponse{
			Success: false,
			Message: "This student has no verified achievements to report on",
		})
	}

	studentName := verified[0].StudentName
	lines := make([]string, len(verified))
	for i, rec := range verified {
		lines[i] = fmt.Sprintf("- %s (%s): %s", rec.Title, rec.Date.Format("January 2, 2006"), rec.Description)
	}

	document, err := s.writer.ComposeReport(c.Context(), req.Type, studentName, session.Profile.Department, lines)
	if err != nil {
		return respondErr(c, fmt.Errorf("%w: %v", model.ErrExternalService, err))
	}

	return c.JSON(model.SuccessResponse[fiber.Map]{
		Success: true,
		Data:    fiber.Map{"document": document},
	})
}
