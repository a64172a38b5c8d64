package audit

import (
	"github.com/gofiber/fiber/v2"
)

type AuditController struct {
	Service AuditService
}

func NewAuditController(service AuditService) *AuditController {
	return &AuditController{Service: service}
}

// Trail godoc
// @Summary Get the approval decision trail for a document
// @Tags audit
// @Produce json
// @Param documentId path string true "Document ID"
// @Success 200 {array} AuditEntry
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/documents/{documentId}/audit [get]
func (c *AuditController) Trail(ctx *fiber.Ctx) error {
	documentID := ctx.Params("documentId")
	entries, err := c.Service.Trail(ctx.UserContext(), documentID)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if entries == nil {
		entries = []AuditEntry{}
	}
	return ctx.JSON(entries)
}
