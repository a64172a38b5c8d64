package workflow

import (
	"context"
	"errors"
	"time"

	"github.com/dancan-sandys/isomanagement/internal/features/audit"
	"github.com/dancan-sandys/isomanagement/internal/features/document"

	"github.com/google/uuid"
)

// Action is an approval decision.
type Action string

const (
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
)

// StepInput describes one approval step when a document is submitted for review.
type StepInput struct {
	Name       string `json:"name"`
	AssignedTo string `json:"assigned_to"`
}

// WorkflowService is the action dispatcher. Every mutating call touches exactly
// one step and ends with a fresh reload from the store; a locally held
// DocumentWorkflow is never mutated in place, because the store is the only
// party that serializes racing actors.
type WorkflowService interface {
	StartReview(ctx context.Context, p Principal, documentID string, steps []StepInput) (*DocumentWorkflow, error)
	GetWorkflow(ctx context.Context, documentID string) (*DocumentWorkflow, error)
	GetStages(ctx context.Context, documentID string) (*PrimaryStages, error)
	Perform(ctx context.Context, p Principal, documentID string, action Action, comments string, explicitStepIndex *int) (*DocumentWorkflow, error)
	RequestChanges(ctx context.Context, p Principal, documentID string, comments string) (*DocumentWorkflow, error)
	ListPending(ctx context.Context, p Principal) ([]PendingApproval, error)
}

type WorkflowServiceImpl struct {
	Store        WorkflowStore
	DocumentRepo document.DocumentRepository
	AuditService audit.AuditService
}

func NewWorkflowService(
	store WorkflowStore,
	documentRepo document.DocumentRepository,
	auditService audit.AuditService,
) WorkflowService {
	return &WorkflowServiceImpl{
		Store:        store,
		DocumentRepo: documentRepo,
		AuditService: auditService,
	}
}

// StartReview creates the approval chain for a document entering review. The
// synthetic creation marker (order 0, already completed) is prepended and the
// first approval step is activated immediately.
func (s *WorkflowServiceImpl) StartReview(ctx context.Context, p Principal, documentID string, steps []StepInput) (*DocumentWorkflow, error) {
	if len(steps) == 0 {
		return nil, errors.New("at least one approval step is required")
	}

	now := time.Now()

	creator := p.ID
	createdAt := now
	if meta, err := s.DocumentRepo.GetMeta(ctx, documentID); err != nil {
		return nil, err
	} else if meta != nil {
		creator = meta.CreatedBy
		createdAt = meta.CreatedAt
	}

	wf := &DocumentWorkflow{
		DocumentID:  documentID,
		CurrentStep: 2,
		Status:      StatusUnderReview,
		CreatedAt:   now,
		UpdatedAt:   now,
		Steps: []WorkflowStep{{
			ID:          uuid.NewString(),
			Name:        "Document Created",
			Order:       0,
			Status:      StepStatusCompleted,
			AssignedTo:  creator,
			AssignedAt:  &createdAt,
			CompletedAt: &createdAt,
		}},
	}

	for i, in := range steps {
		step := WorkflowStep{
			ID:         uuid.NewString(),
			Name:       in.Name,
			Order:      i + 1,
			Status:     StepStatusPending,
			AssignedTo: in.AssignedTo,
		}
		if i == 0 {
			step.Status = StepStatusInProgress
			assignedAt := now
			step.AssignedAt = &assignedAt
		}
		wf.Steps = append(wf.Steps, step)
	}

	if err := s.Store.Create(ctx, wf); err != nil {
		return nil, err
	}

	_ = s.AuditService.Record(ctx, audit.AuditEntry{
		DocumentID: documentID,
		ActorID:    p.ID,
		Action:     audit.AuditActionSubmit,
	})

	return s.Store.GetByDocumentID(ctx, documentID)
}

func (s *WorkflowServiceImpl) GetWorkflow(ctx context.Context, documentID string) (*DocumentWorkflow, error) {
	return s.Store.GetByDocumentID(ctx, documentID)
}

func (s *WorkflowServiceImpl) GetStages(ctx context.Context, documentID string) (*PrimaryStages, error) {
	wf, err := s.Store.GetByDocumentID(ctx, documentID)
	if err != nil {
		return nil, err
	}
	meta, err := s.DocumentRepo.GetMeta(ctx, documentID)
	if err != nil {
		return nil, err
	}
	stages := ProjectStages(wf, meta)
	return &stages, nil
}

// Perform resolves authorization, validates the target step, applies the
// decision through the store and returns the reloaded state.
//
// Administrators may name an explicit step (0-based over the approval steps,
// creation marker excluded) to unblock a chain out of order; the step must
// still be awaiting action. Everyone else goes through the resolver, which
// trusts the store's own assignment listing over chain position.
func (s *WorkflowServiceImpl) Perform(ctx context.Context, p Principal, documentID string, action Action, comments string, explicitStepIndex *int) (*DocumentWorkflow, error) {
	if action != ActionApprove && action != ActionReject {
		return nil, errors.New("unknown workflow action: " + string(action))
	}

	wf, err := s.Store.GetByDocumentID(ctx, documentID)
	if err != nil {
		return nil, err
	}

	var stepID string
	if p.IsAdmin && explicitStepIndex != nil {
		approval := wf.ApprovalSteps()
		idx := *explicitStepIndex
		if idx < 0 || idx >= len(approval) || !approval[idx].Status.Actionable() {
			return nil, ErrInvalidStep
		}
		stepID = approval[idx].ID
	} else {
		var pending []PendingApproval
		if !p.IsAdmin {
			pending, err = s.Store.ListPendingForUser(ctx, p.ID)
			if err != nil {
				return nil, err
			}
		}
		decision := ResolveAction(p, wf, pending)
		if !decision.Allowed {
			if decision.Reason == DenyNotAssigned {
				return nil, ErrNotAssigned
			}
			return nil, ErrNoPendingApproval
		}
		stepID = decision.StepID
	}

	switch action {
	case ActionApprove:
		err = s.Store.ApproveStep(ctx, documentID, stepID, comments)
	case ActionReject:
		err = s.Store.RejectStep(ctx, documentID, stepID, comments)
	}
	if err != nil {
		return nil, err
	}

	s.recordDecision(ctx, p, wf, stepID, action, comments)

	return s.Store.GetByDocumentID(ctx, documentID)
}

// RequestChanges restarts the chain from the first approval step. Any user who
// could act on the active step may request changes; the comments land in the
// audit trail, not on a step.
func (s *WorkflowServiceImpl) RequestChanges(ctx context.Context, p Principal, documentID string, comments string) (*DocumentWorkflow, error) {
	wf, err := s.Store.GetByDocumentID(ctx, documentID)
	if err != nil {
		return nil, err
	}

	if !p.IsAdmin {
		pending, err := s.Store.ListPendingForUser(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		decision := ResolveAction(p, wf, pending)
		if !decision.Allowed {
			if decision.Reason == DenyNotAssigned {
				return nil, ErrNotAssigned
			}
			return nil, ErrNoPendingApproval
		}
	}

	if err := s.Store.RequestChanges(ctx, documentID, comments); err != nil {
		return nil, err
	}

	_ = s.AuditService.Record(ctx, audit.AuditEntry{
		DocumentID: documentID,
		ActorID:    p.ID,
		Action:     audit.AuditActionRequestChanges,
		Comments:   comments,
	})

	return s.Store.GetByDocumentID(ctx, documentID)
}

func (s *WorkflowServiceImpl) ListPending(ctx context.Context, p Principal) ([]PendingApproval, error) {
	return s.Store.ListPendingForUser(ctx, p.ID)
}

func (s *WorkflowServiceImpl) recordDecision(ctx context.Context, p Principal, wf *DocumentWorkflow, stepID string, action Action, comments string) {
	entry := audit.AuditEntry{
		DocumentID: wf.DocumentID,
		StepID:     stepID,
		ActorID:    p.ID,
		Comments:   comments,
		Action:     audit.AuditActionApprove,
	}
	if action == ActionReject {
		entry.Action = audit.AuditActionReject
	}
	if idx := wf.StepIndexByID(stepID); idx >= 0 {
		entry.StepName = wf.Steps[idx].Name
	}
	// Trail failures never fail the decision itself.
	_ = s.AuditService.Record(ctx, entry)
}
