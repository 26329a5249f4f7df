package service

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/valyala/fasthttp"

	"github.com/hari-dev-003/Achieve/app/model"
	"github.com/hari-dev-003/Achieve/app/repo"
	"github.com/hari-dev-003/Achieve/helper"
	"github.com/hari-dev-003/Achieve/middleware"
)

// SkillExtractor turns an achievement's text into a small set of skill tags.
type SkillExtractor interface {
	ExtractSkills(ctx context.Context, title, description string) ([]string, error)
}

// AchievementWatcher is the live-query side of the achievement store.
type AchievementWatcher interface {
	WatchPendingByClass(ctx context.Context, class model.ClassKey, deliver func([]model.Achievement)) (*repo.Subscription, error)
}

type ApprovalService struct {
	achievements repo.AchievementRepository
	watcher      AchievementWatcher
	users        repo.UserRepository
	extractor    SkillExtractor
}

func NewApprovalService(achievements repo.AchievementRepository, watcher AchievementWatcher, users repo.UserRepository, extractor SkillExtractor) *ApprovalService {
	return &ApprovalService{
		achievements: achievements,
		watcher:      watcher,
		users:        users,
		extractor:    extractor,
	}
}

// GET /api/v1/faculty/approvals
func (s *ApprovalService) Queue(c *fiber.Ctx) error {
	class, err := classFromQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(model.ErrorResponse{
			Success: false,
			Message: helper.FormatValidationErrors(err),
		})
	}

	records, err := s.achievements.FindPendingByClass(c.Context(), *class)
	if err != nil {
		return respondErr(c, err)
	}

	return c.JSON(model.SuccessResponse[[]model.Achievement]{Success: true, Data: records})
}

// GET /api/v1/faculty/approvals/stream
//
// Server-sent events: every relevant change re-delivers the complete pending
// queue for the class, which the client swaps in wholesale.
func (s *ApprovalService) QueueStream(c *fiber.Ctx) error {
	class, err := classFromQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(model.ErrorResponse{
			Success: false,
			Message: helper.FormatValidationErrors(err),
		})
	}

	c.Set("Content-Type", "text/event-stream")
	c.Set("Cache-Control", "no-cache")
	c.Set("Connection", "keep-alive")

	watchClass := *class
	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		send := func(snap []model.Achievement) {
			payload, err := json.Marshal(snap)
			if err != nil {
				return
			}
			fmt.Fprintf(w, "data: %s\n\n", payload)
			if err := w.Flush(); err != nil {
				// client went away; tear the subscription down
				cancel()
			}
		}

		sub, err := s.watcher.WatchPendingByClass(ctx, watchClass, send)
		if err != nil {
			fmt.Fprintf(w, "event: error\ndata: %q\n\n", err.Error())
			w.Flush()
			return
		}
		defer sub.Cancel()

		<-sub.Done()
	}))

	return nil
}

// POST /api/v1/faculty/approvals/:id/approve
//
// The status write is guarded on the record still being pending; a second
// approval (concurrent or late) gets 409 instead of minting a second hash.
// Skill extraction runs afterwards as a best-effort side effect and can
// never undo the approval.
func (s *ApprovalService) Approve(c *fiber.Ctx) error {
	session := middleware.GetSession(c)
	id := c.Params("id")

	record, err := s.achievements.FindByID(c.Context(), id)
	if err != nil {
		return respondErr(c, err)
	}

	verifiedAt := time.Now()
	hash := helper.IntegrityStamp(id, verifiedAt)

	if err := s.achievements.MarkVerified(c.Context(), id, session.UserID.String(), hash, verifiedAt); err != nil {
		return respondErr(c, err)
	}

	go s.extractAndMergeSkills(*record)

	return c.JSON(model.SuccessResponse[fiber.Map]{
		Success: true,
		Message: "Approved",
		Data:    fiber.Map{"blockchainHash": hash},
	})
}

// POST /api/v1/faculty/approvals/:id/reject
func (s *ApprovalService) Reject(c *fiber.Ctx) error {
	id := c.Params("id")

	var req model.RejectRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(model.ErrorResponse{
			Success: false,
			Message: "Invalid input",
		})
	}

	if err := helper.ValidateStruct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(model.ErrorResponse{
			Success: false,
			Message: "A rejection reason is required",
		})
	}

	if err := s.achievements.MarkRejected(c.Context(), id, req.Reason); err != nil {
		return respondErr(c, err)
	}

	return c.JSON(model.SuccessMessageResponse{Success: true, Message: "Rejected"})
}

// extractAndMergeSkills is fire-and-forget: any failure is logged and
// swallowed so the approval itself is never rolled back or blocked.
func (s *ApprovalService) extractAndMergeSkills(record model.Achievement) {
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	skills, err := s.extractor.ExtractSkills(ctx, record.Title, record.Description)
	if err != nil {
		log.Printf("skill extraction for achievement %s failed: %v", record.ID.Hex(), err)
		return
	}
	if len(skills) == 0 {
		return
	}

	studentID, err := uuid.Parse(record.StudentID)
	if err != nil {
		log.Printf("skill extraction: invalid student id %q on achievement %s", record.StudentID, record.ID.Hex())
		return
	}

	if err := s.users.MergeSkills(studentID, skills); err != nil {
		log.Printf("merging skills for student %s failed: %v", record.StudentID, err)
	}
}

func classFromQuery(c *fiber.Ctx) (*model.ClassKey, error) {
	class := model.ClassKey{
		Department: c.Query("department"),
		Year:       c.Query("year"),
		Section:    c.Query("section"),
	}
	if err := helper.ValidateStruct(class); err != nil {
		return nil, err
	}
	return &class, nil
}
