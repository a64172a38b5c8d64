package main

import (
	"context"
	"fmt"
	"log"
	"time"

	common_api "github.com/dancan-sandys/isomanagement/internal/common/api"
	"github.com/dancan-sandys/isomanagement/internal/config"
	"github.com/dancan-sandys/isomanagement/internal/database"
	"github.com/dancan-sandys/isomanagement/internal/features/audit"
	"github.com/dancan-sandys/isomanagement/internal/features/document"
	"github.com/dancan-sandys/isomanagement/internal/features/system"
	"github.com/dancan-sandys/isomanagement/internal/features/workflow"
	"github.com/dancan-sandys/isomanagement/internal/logger"
	"github.com/dancan-sandys/isomanagement/internal/middleware"
	"github.com/dancan-sandys/isomanagement/pkg/utils"

	_ "github.com/dancan-sandys/isomanagement/docs" // Import swagger docs

	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// NewFiberServer creates a new Fiber app instance
func NewFiberServer() *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
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

	app.Use(middleware.CORSMiddleware())

	return app
}

// AsRoute is a helper function to reduce boilerplate.
// It tags the constructor so Fx knows to add it to the "routes" group.
func AsRoute(f any) any {
	return fx.Annotate(
		f,
		fx.As(new(common_api.Route)),    // Cast to Interface
		fx.ResultTags(`group:"routes"`), // Add to Group
	)
}

// RegisterAllRoutes takes the group "routes" (slice of interfaces)
// and calls Setup() on each one.
func RegisterAllRoutes(app *fiber.App, routes []common_api.Route) {
	for _, route := range routes {
		route.Setup(app)
	}
	log.Println("All routes registered successfully")
}

// RegisterAllRoutesWithAnnotation wraps RegisterAllRoutes with fx annotations
var RegisterAllRoutesWithAnnotation = fx.Annotate(
	RegisterAllRoutes,
	fx.ParamTags(``, `group:"routes"`),
)

// StartServer creates a lifecycle hook to start Fiber in a goroutine
// and shut it down when the app exits.
func StartServer(lc fx.Lifecycle, app *fiber.App, cfg *config.Config) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				port := fmt.Sprintf(":%s", cfg.Port)
				if err := app.Listen(port); err != nil {
					log.Fatalf("Server failed to start: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return app.Shutdown()
		},
	})
}

// InitializeIndexes ensures that necessary database indexes are created
func InitializeIndexes(lc fx.Lifecycle, store workflow.WorkflowStore, logger *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()

				if err := store.EnsureIndexes(ctx); err != nil {
					logger.Error("Failed to ensure workflow indexes", zap.Error(err))
				}
			}()
			return nil
		},
	})
}

// @title           ISO Management Workflow API
// @version         1.0
// @description     Document approval workflow engine for the ISO management system.

// @host            localhost:8000
// @BasePath        /
func main() {
	app := fx.New(
		fx.Provide(
			// Load Config
			config.LoadConfig,

			// Initialize Logger
			logger.NewLogger,

			// Initialize Fiber Server
			NewFiberServer,

			// Initialize Database
			database.NewDatabase,

			// Initialize Repositories
			workflow.NewWorkflowStore,
			document.NewDocumentRepository,
			audit.NewAuditRepository,

			// Initialize Services
			audit.NewAuditService,
			workflow.NewWorkflowService,

			// Initialize Controllers
			workflow.NewWorkflowController,
			audit.NewAuditController,

			// Initialize API Routes
			AsRoute(workflow.NewWorkflowApi),
			AsRoute(audit.NewAuditApi),
			AsRoute(system.NewHealthApi),
			AsRoute(system.NewSwaggerApi),
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Invoke(
			func(cfg *config.Config) {
				utils.SetSecret(cfg.JWTSecret)
			},
			// Register Routes & Start
			RegisterAllRoutesWithAnnotation,
			StartServer,
			InitializeIndexes,
		),
	)

	app.Run()
}
