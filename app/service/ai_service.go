package service

import (
	"fmt"
	"io"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"

	"github.com/hari-dev-003/Achieve/app/model"
	"github.com/hari-dev-003/Achieve/gemini"
	"github.com/hari-dev-003/Achieve/middleware"
)

// AIService exposes the generative features of the student area. Every call
// is a single round trip to the external model; failures are recoverable and
// never touch stored state.
type AIService struct {
	client *gemini.Client
}

func NewAIService(client *gemini.Client) *AIService {
	return &AIService{client: client}
}

// POST /api/v1/achievements/describe
//
// Drafts the achievement description from the uploaded certificate image.
func (s *AIService) DescribeCertificate(c *fiber.Ctx) error {
	title := c.FormValue("title")
	if title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(model.ErrorResponse{
			Success: false,
			Message: "title is required",
		})
	}

	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(model.ErrorResponse{
			Success: false,
			Message: "File required",
		})
	}

	data, mimeType, err := readUpload(file)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(model.ErrorResponse{
			Success: false,
			Message: "Could not read uploaded file",
		})
	}

	description, err := s.client.DescribeCertificate(c.Context(), title, mimeType, data)
	if err != nil {
		return respondErr(c, fmt.Errorf("%w: %v", model.ErrExternalService, err))
	}

	return c.JSON(model.SuccessResponse[fiber.Map]{
		Success: true,
		Data:    fiber.Map{"description": description},
	})
}

// GET /api/v1/recommendations
func (s *AIService) Recommendations(c *fiber.Ctx) error {
	session := middleware.GetSession(c)

	if len(session.Profile.SkillSet) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(model.ErrorResponse{
			Success: false,
			Message: "Get more achievements verified to build your skill profile and receive recommendations",
		})
	}

	recs, err := s.client.RecommendOpportunities(c.Context(),
		session.Profile.SkillSet, session.Profile.Year, session.Profile.Department)
	if err != nil {
		return respondErr(c, fmt.Errorf("%w: %v", model.ErrExternalService, err))
	}

	return c.JSON(model.SuccessResponse[*gemini.Recommendations]{Success: true, Data: recs})
}

type pathwayRequest struct {
	Goal string `json:"goal" validate:"required"`
}

// POST /api/v1/pathway
func (s *AIService) Pathway(c *fiber.Ctx) error {
	session := middleware.GetSession(c)

	var req pathwayRequest
	if err := c.BodyParser(&req); err != nil || req.Goal == "" {
		return c.Status(fiber.StatusBadRequest).JSON(model.ErrorResponse{
			Success: false,
			Message: "A career goal is required",
		})
	}

	pathway, err := s.client.CareerPathway(c.Context(),
		session.Profile.SkillSet, session.Profile.Year, session.Profile.Department, req.Goal)
	if err != nil {
		return respondErr(c, fmt.Errorf("%w: %v", model.ErrExternalService, err))
	}

	return c.JSON(model.SuccessResponse[*gemini.Pathway]{Success: true, Data: pathway})
}

func readUpload(file *multipart.FileHeader) ([]byte, string, error) {
	f, err := file.Open()
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, "", err
	}

	mimeType := file.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "image/png"
	}
	return data, mimeType, nil
}
