package api

import (
	"ledgerbook/internal/api/handlers"
	"ledgerbook/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

type Handlers struct {
	Imports      *handlers.ImportHandler
	Transactions *handlers.TransactionHandler
	Rules        *handlers.RuleHandler
	Categories   *handlers.CategoryHandler
	Merchants    *handlers.MerchantHandler
}

func SetupRouter(h Handlers, apiToken string, appLogger *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			if code == fiber.StatusInternalServerError {
				appLogger.Error("request failed", zap.String("path", c.Path()), zap.Error(err))
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
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))
	app.Use(logger.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api", middleware.APIAuth(apiToken, appLogger))

	imports := api.Group("/imports")
	imports.Post("/", h.Imports.Create)
	imports.Post("/preview", h.Imports.Preview)
	imports.Post("/csv", h.Imports.CreateWithMapping)
	imports.Post("/pdf", h.Imports.CreateFromDocument)
	imports.Post("/paypal", h.Imports.CreatePayPal)
	imports.Get("/", h.Imports.List)
	imports.Get("/:id/transactions", h.Imports.ListTransactions)
	imports.Patch("/:id", h.Imports.Patch)

	transactions := api.Group("/transactions")
	transactions.Get("/", h.Transactions.List)
	transactions.Get("/:id", h.Transactions.Get)
	transactions.Patch("/:id", h.Transactions.Patch)

	rules := api.Group("/rules")
	rules.Post("/", h.Rules.Create)
	rules.Get("/", h.Rules.List)
	rules.Post("/apply", h.Rules.Apply)
	rules.Put("/:id", h.Rules.Update)
	rules.Delete("/:id", h.Rules.Delete)

	categories := api.Group("/categories")
	categories.Post("/", h.Categories.Create)
	categories.Get("/", h.Categories.List)
	categories.Put("/:id", h.Categories.Update)
	categories.Delete("/:id", h.Categories.Delete)

	merchants := api.Group("/merchants")
	merchants.Post("/aliases", h.Merchants.Create)
	merchants.Get("/aliases", h.Merchants.List)
	merchants.Put("/aliases/:id", h.Merchants.Update)
	merchants.Delete("/aliases/:id", h.Merchants.Delete)
	merchants.Post("/rebuild", h.Merchants.Rebuild)

	return app
}
