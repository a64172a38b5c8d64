package audit

import (
	"github.com/dancan-sandys/isomanagement/internal/config"
	"github.com/dancan-sandys/isomanagement/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type AuditApi struct {
	controller *AuditController
	config     *config.Config
}

func NewAuditApi(controller *AuditController, config *config.Config) *AuditApi {
	return &AuditApi{
		controller: controller,
		config:     config,
	}
}

func (h *AuditApi) Setup(app *fiber.App) {
	docs := app.Group("/api/documents", middleware.AuthMiddleware(h.config.SkipAuth))

	docs.Get("/:documentId/audit", h.controller.Trail)
}
