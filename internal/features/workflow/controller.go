package workflow

import (
	"errors"
	"strings"

	"github.com/dancan-sandys/isomanagement/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

type WorkflowController struct {
	Service WorkflowService
}

func NewWorkflowController(service WorkflowService) *WorkflowController {
	return &WorkflowController{Service: service}
}

type actionRequest struct {
	Comments  string `json:"comments"`
	StepIndex *int   `json:"step_index,omitempty"`
}

type startReviewRequest struct {
	Steps []StepInput `json:"steps"`
}

// StartReview godoc
// @Summary Submit a document for review
// @Description Creates the approval chain and activates its first step
// @Tags workflow
// @Accept json
// @Produce json
// @Param documentId path string true "Document ID"
// @Param body body startReviewRequest true "Approval steps in order"
// @Success 201 {object} DocumentWorkflow
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 409 {object} map[string]string "Workflow already exists"
// @Router /api/documents/{documentId}/workflow [post]
func (c *WorkflowController) StartReview(ctx *fiber.Ctx) error {
	documentID := ctx.Params("documentId")

	var input startReviewRequest
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	wf, err := c.Service.StartReview(ctx.UserContext(), principalFromCtx(ctx), documentID, input.Steps)
	if err != nil {
		return errorResponse(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(wf)
}

// GetWorkflow godoc
// @Summary Get a document's approval chain
// @Tags workflow
// @Produce json
// @Param documentId path string true "Document ID"
// @Success 200 {object} DocumentWorkflow
// @Failure 404 {object} map[string]string "Workflow not available"
// @Router /api/documents/{documentId}/workflow [get]
func (c *WorkflowController) GetWorkflow(ctx *fiber.Ctx) error {
	wf, err := c.Service.GetWorkflow(ctx.UserContext(), ctx.Params("documentId"))
	if err != nil {
		return errorResponse(ctx, err)
	}
	return ctx.JSON(wf)
}

// GetStages godoc
// @Summary Get the Draft/Reviewed/Approved summary for a document
// @Tags workflow
// @Produce json
// @Param documentId path string true "Document ID"
// @Success 200 {object} PrimaryStages
// @Failure 404 {object} map[string]string "Workflow not available"
// @Router /api/documents/{documentId}/workflow/stages [get]
func (c *WorkflowController) GetStages(ctx *fiber.Ctx) error {
	stages, err := c.Service.GetStages(ctx.UserContext(), ctx.Params("documentId"))
	if err != nil {
		return errorResponse(ctx, err)
	}
	return ctx.JSON(stages)
}

// Approve godoc
// @Summary Approve the caller's pending step
// @Description Administrators may pass step_index (0-based, approval steps only) to act on any awaiting step
// @Tags workflow
// @Accept json
// @Produce json
// @Param documentId path string true "Document ID"
// @Param body body actionRequest true "Comments and optional step index"
// @Success 200 {object} DocumentWorkflow
// @Failure 403 {object} map[string]string "No pending approval"
// @Failure 422 {object} map[string]string "Step not awaiting action"
// @Router /api/documents/{documentId}/workflow/approve [post]
func (c *WorkflowController) Approve(ctx *fiber.Ctx) error {
	return c.perform(ctx, ActionApprove)
}

// Reject godoc
// @Summary Reject the caller's pending step
// @Description Rejecting any step rejects the document; comments are recorded as the reason
// @Tags workflow
// @Accept json
// @Produce json
// @Param documentId path string true "Document ID"
// @Param body body actionRequest true "Comments and optional step index"
// @Success 200 {object} DocumentWorkflow
// @Failure 403 {object} map[string]string "No pending approval"
// @Failure 422 {object} map[string]string "Step not awaiting action"
// @Router /api/documents/{documentId}/workflow/reject [post]
func (c *WorkflowController) Reject(ctx *fiber.Ctx) error {
	return c.perform(ctx, ActionReject)
}

func (c *WorkflowController) perform(ctx *fiber.Ctx, action Action) error {
	documentID := ctx.Params("documentId")

	var input actionRequest
	_ = ctx.BodyParser(&input)

	wf, err := c.Service.Perform(ctx.UserContext(), principalFromCtx(ctx), documentID, action, input.Comments, input.StepIndex)
	if err != nil {
		return errorResponse(ctx, err)
	}
	return ctx.JSON(wf)
}

// RequestChanges godoc
// @Summary Send the document back to the first approval step
// @Tags workflow
// @Accept json
// @Produce json
// @Param documentId path string true "Document ID"
// @Param body body actionRequest true "Comments"
// @Success 200 {object} DocumentWorkflow
// @Failure 403 {object} map[string]string "No pending approval"
// @Router /api/documents/{documentId}/workflow/request-changes [post]
func (c *WorkflowController) RequestChanges(ctx *fiber.Ctx) error {
	documentID := ctx.Params("documentId")

	var input actionRequest
	_ = ctx.BodyParser(&input)

	wf, err := c.Service.RequestChanges(ctx.UserContext(), principalFromCtx(ctx), documentID, input.Comments)
	if err != nil {
		return errorResponse(ctx, err)
	}
	return ctx.JSON(wf)
}

// ListPending godoc
// @Summary List the caller's pending approval steps
// @Tags workflow
// @Produce json
// @Success 200 {array} PendingApproval
// @Router /api/approvals/pending [get]
func (c *WorkflowController) ListPending(ctx *fiber.Ctx) error {
	pending, err := c.Service.ListPending(ctx.UserContext(), principalFromCtx(ctx))
	if err != nil {
		return errorResponse(ctx, err)
	}
	if pending == nil {
		pending = []PendingApproval{}
	}
	return ctx.JSON(pending)
}

// principalFromCtx builds the acting principal from the JWT claims the auth
// middleware stored on the request.
func principalFromCtx(ctx *fiber.Ctx) Principal {
	claims, ok := ctx.Locals(utils.UserClaimsKey).(*utils.UserClaims)
	if !ok {
		return Principal{}
	}
	p := Principal{ID: claims.UserID}
	for _, role := range claims.Roles {
		if strings.EqualFold(role, "admin") {
			p.IsAdmin = true
			break
		}
	}
	return p
}

func errorResponse(ctx *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, ErrWorkflowNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, ErrWorkflowExists):
		status = fiber.StatusConflict
	case errors.Is(err, ErrInvalidStep):
		status = fiber.StatusUnprocessableEntity
	case errors.Is(err, ErrNoPendingApproval), errors.Is(err, ErrNotAssigned):
		status = fiber.StatusForbidden
	}
	return ctx.Status(status).JSON(fiber.Map{"error": err.Error()})
}
