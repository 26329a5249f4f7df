package service

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/hari-dev-003/Achieve/app/model"
	"github.com/hari-dev-003/Achieve/app/repo"
)

type PortfolioService struct {
	achievements repo.AchievementRepository
	users        repo.UserRepository
}

func NewPortfolioService(achievements repo.AchievementRepository, users repo.UserRepository) *PortfolioService {
	return &PortfolioService{achievements: achievements, users: users}
}

// GET /api/v1/portfolio/:studentId
//
// Public, unauthenticated. Only verified records leave this endpoint, and
// only through PortfolioItem, which has no reviewer fields at all.
func (s *PortfolioService) Get(c *fiber.Ctx) error {
	studentID, err := uuid.Parse(c.Params("studentId"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(model.ErrorResponse{
			Success: false,
			Message: "Student not found",
		})
	}

	student, err := s.users.FindByID(studentID)
	if err != nil || student.Role != model.RoleStudent {
		return c.Status(fiber.StatusNotFound).JSON(model.ErrorResponse{
			Success: false,
			Message: "Student not found",
		})
	}

	verified, err := s.achievements.FindVerifiedByStudent(c.Context(), studentID.String())
	if err != nil {
		return respondErr(c, err)
	}

	items := make([]model.PortfolioItem, len(verified))
	for i, rec := range verified {
		items[i] = model.PortfolioItem{
			ID:             rec.ID.Hex(),
			Title:          rec.Title,
			Description:    rec.Description,
			Date:           rec.Date,
			ImageURL:       rec.ImageURL,
			BlockchainHash: rec.BlockchainHash,
		}
	}

	return c.JSON(model.SuccessResponse[model.PortfolioResponse]{
		Success: true,
		Data: model.PortfolioResponse{
			StudentName:  student.Name,
			Achievements: items,
		},
	})
}
