package api

import (
	"finsight/docs"
	"finsight/internal/api/handlers"
	"finsight/pkg/identity"
	"finsight/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

func SetupRouter(
	insightHandler *handlers.InsightHandler,
	expenseHandler *handlers.ExpenseHandler,
	userHandler *handlers.UserHandler,
	verifier *identity.Verifier,
	appLogger *zap.Logger,
) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))
	app.Use(logger.New())

	// Swagger - importing docs registers the spec via init()
	_ = docs.SwaggerInfo
	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// All API routes require an identity-provider session
	api := app.Group("/api/v1", middleware.SessionMiddleware(verifier, appLogger))

	api.Get("/me", userHandler.Me)

	expenses := api.Group("/expenses")
	expenses.Post("", expenseHandler.Create)
	expenses.Get("", expenseHandler.List)
	expenses.Post("/categorize", insightHandler.Categorize)

	insights := api.Group("/insights")
	insights.Post("/generate", insightHandler.Generate)
	insights.Get("", insightHandler.List)

	assistant := api.Group("/assistant")
	assistant.Post("/ask", insightHandler.Ask)

	return app
}
