package workflow

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StepStatus is the lifecycle state of a single approval step
type StepStatus string

const (
	StepStatusPending    StepStatus = "pending"
	StepStatusInProgress StepStatus = "in_progress"
	StepStatusCompleted  StepStatus = "completed"
	StepStatusRejected   StepStatus = "rejected"
)

// Actionable reports whether a step is still awaiting a decision
func (s StepStatus) Actionable() bool {
	return s == StepStatusPending || s == StepStatusInProgress
}

// WorkflowStatus is the overall state of a document's approval chain
type WorkflowStatus string

const (
	StatusDraft       WorkflowStatus = "draft"
	StatusUnderReview WorkflowStatus = "under_review"
	StatusApproved    WorkflowStatus = "approved"
	StatusRejected    WorkflowStatus = "rejected"
)

// WorkflowStep is one unit of the approval chain. The step with Order 0 is the
// synthetic "document created" marker: always completed, never acted on, and
// excluded from all stage computations.
type WorkflowStep struct {
	ID          string     `bson:"id" json:"id"`
	Name        string     `bson:"name" json:"name"`
	Order       int        `bson:"order" json:"order"`
	Status      StepStatus `bson:"status" json:"status"`
	AssignedTo  string     `bson:"assigned_to" json:"assigned_to"`
	AssignedAt  *time.Time `bson:"assigned_at,omitempty" json:"assigned_at,omitempty"`
	CompletedAt *time.Time `bson:"completed_at,omitempty" json:"completed_at,omitempty"`
	Comments    string     `bson:"comments,omitempty" json:"comments,omitempty"`
}

// DocumentWorkflow is the full approval chain for one controlled document.
// CurrentStep is a 1-based index over Steps (creation marker included); when
// the workflow is terminal it parks on the last step.
type DocumentWorkflow struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	DocumentID  string             `bson:"document_id" json:"document_id"`
	CurrentStep int                `bson:"current_step" json:"current_step"`
	Status      WorkflowStatus     `bson:"status" json:"status"`
	Steps       []WorkflowStep     `bson:"steps" json:"steps"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

// ApprovalSteps returns the chain with the creation marker filtered out,
// preserving order.
func (w *DocumentWorkflow) ApprovalSteps() []WorkflowStep {
	steps := make([]WorkflowStep, 0, len(w.Steps))
	for _, s := range w.Steps {
		if s.Order > 0 {
			steps = append(steps, s)
		}
	}
	return steps
}

// StepIndexByID returns the index of the step with the given id, or -1.
func (w *DocumentWorkflow) StepIndexByID(stepID string) int {
	for i, s := range w.Steps {
		if s.ID == stepID {
			return i
		}
	}
	return -1
}

// ActiveStep returns the step CurrentStep points at, or nil when the index is
// out of range (e.g. an empty chain).
func (w *DocumentWorkflow) ActiveStep() *WorkflowStep {
	if w.CurrentStep < 1 || w.CurrentStep > len(w.Steps) {
		return nil
	}
	return &w.Steps[w.CurrentStep-1]
}

// IsTerminal reports whether the workflow can accept no further decisions.
func (w *DocumentWorkflow) IsTerminal() bool {
	return w.Status == StatusApproved || w.Status == StatusRejected
}

// PendingApproval names one step awaiting a specific user's decision.
type PendingApproval struct {
	DocumentID string `bson:"document_id" json:"document_id"`
	StepID     string `bson:"step_id" json:"step_id"`
}

// StageStatus is the display state of one primary stage.
type StageStatus string

const (
	StageCompleted  StageStatus = "completed"
	StageInProgress StageStatus = "in_progress"
	StagePending    StageStatus = "pending"
)

// Stage is one point of the three-stage summary.
type Stage struct {
	Status    StageStatus `json:"status"`
	Actor     string      `json:"actor,omitempty"`
	Timestamp *time.Time  `json:"timestamp,omitempty"`
}

// PrimaryStages is the derived Draft/Reviewed/Approved summary shown to end
// users. It is computed on demand and never stored.
type PrimaryStages struct {
	Draft       Stage `json:"draft"`
	Reviewed    Stage `json:"reviewed"`
	Approved    Stage `json:"approved"`
	ActiveIndex int   `json:"active_index"`
}
