package route

import (
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"

	"github.com/hari-dev-003/Achieve/app/model"
	"github.com/hari-dev-003/Achieve/app/repo"
	"github.com/hari-dev-003/Achieve/app/service"
	"github.com/hari-dev-003/Achieve/config"
	"github.com/hari-dev-003/Achieve/gemini"
	"github.com/hari-dev-003/Achieve/middleware"
)

func SetupRoutes(app *fiber.App, pgDB *gorm.DB, mongoDB *mongo.Database) {
	api := app.Group("/api")
	v1 := api.Group("/v1")

	userRepo := repo.NewUserRepo(pgDB)
	achievementRepo := repo.NewAchievementRepo(mongoDB)
	teammateRepo := repo.NewTeammateRepo(mongoDB)

	aiClient := gemini.NewClient(config.Env.GeminiAPIKey, config.Env.GeminiModel)

	authService := service.NewAuthService(userRepo)
	achievementService := service.NewAchievementService(achievementRepo)
	approvalService := service.NewApprovalService(achievementRepo, achievementRepo, userRepo, aiClient)
	academicService := service.NewAcademicService(achievementRepo, userRepo, aiClient)
	portfolioService := service.NewPortfolioService(achievementRepo, userRepo)
	teammateService := service.NewTeammateService(teammateRepo)
	aiService := service.NewAIService(aiClient)

	// Public surface
	auth := v1.Group("/auth")
	auth.Post("/register", authService.Register)
	auth.Post("/login", authService.Login)
	auth.Post("/refresh", authService.Refresh)

	v1.Get("/portfolio/:studentId", portfolioService.Get)

	protected := v1.Group("", middleware.AuthRequired(userRepo))
	protected.Post("/auth/logout", authService.Logout)
	protected.Get("/auth/profile", authService.Profile)
	protected.Put("/auth/profile", authService.UpdateProfile)

	// Student area
	student := protected.Group("", middleware.RoleRequired(model.RoleStudent))
	student.Get("/achievements", achievementService.List)
	student.Post("/achievements", achievementService.Create)
	student.Post("/achievements/upload", achievementService.UploadCertificate)
	student.Post("/achievements/describe", aiService.DescribeCertificate)
	student.Put("/achievements/:id", achievementService.Resubmit)
	student.Delete("/achievements/:id", achievementService.Delete)
	student.Get("/recommendations", aiService.Recommendations)
	student.Post("/pathway", aiService.Pathway)
	student.Get("/teammates", teammateService.List)
	student.Post("/teammates", teammateService.Create)
	student.Put("/teammates/:id", teammateService.Update)
	student.Delete("/teammates/:id", teammateService.Delete)

	// Faculty area
	faculty := protected.Group("/faculty", middleware.RoleRequired(model.RoleFaculty))
	faculty.Get("/approvals", approvalService.Queue)
	faculty.Get("/approvals/stream", approvalService.QueueStream)
	faculty.Post("/approvals/:id/approve", approvalService.Approve)
	faculty.Post("/approvals/:id/reject", approvalService.Reject)
	faculty.Get("/class", academicService.ClassRoster)
	faculty.Get("/students", academicService.ClassStudents)
	faculty.Get("/analytics", academicService.Analytics)
	faculty.Post("/reports", academicService.GenerateReport)
}
