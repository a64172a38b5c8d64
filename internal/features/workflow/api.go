package workflow

import (
	"github.com/dancan-sandys/isomanagement/internal/config"
	"github.com/dancan-sandys/isomanagement/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type WorkflowApi struct {
	controller *WorkflowController
	config     *config.Config
}

func NewWorkflowApi(controller *WorkflowController, config *config.Config) *WorkflowApi {
	return &WorkflowApi{
		controller: controller,
		config:     config,
	}
}

func (h *WorkflowApi) Setup(app *fiber.App) {
	// Group: /documents/:documentId/workflow
	docs := app.Group("/api/documents", middleware.AuthMiddleware(h.config.SkipAuth))

	docs.Post("/:documentId/workflow", h.controller.StartReview)
	docs.Get("/:documentId/workflow", h.controller.GetWorkflow)
	docs.Get("/:documentId/workflow/stages", h.controller.GetStages)

	// Actions are authorized inside the service (ResolveAction); the route
	// level only requires a valid token.
	docs.Post("/:documentId/workflow/approve", h.controller.Approve)
	docs.Post("/:documentId/workflow/reject", h.controller.Reject)
	docs.Post("/:documentId/workflow/request-changes", h.controller.RequestChanges)

	// Group: /approvals
	approvals := app.Group("/api/approvals", middleware.AuthMiddleware(h.config.SkipAuth))

	approvals.Get("/pending", h.controller.ListPending)
}
