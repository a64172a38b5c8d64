package workflow

import (
	"context"
	"time"

	"github.com/dancan-sandys/isomanagement/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// WorkflowStore is the workflow store client: the single authority for step
// ordering, the one-in-progress-step invariant, and overall status derivation.
// Every read reflects backend state; there is no caching and no optimistic
// local mutation.
type WorkflowStore interface {
	GetByDocumentID(ctx context.Context, documentID string) (*DocumentWorkflow, error)
	Create(ctx context.Context, wf *DocumentWorkflow) error
	ApproveStep(ctx context.Context, documentID string, stepID string, comments string) error
	RejectStep(ctx context.Context, documentID string, stepID string, comments string) error
	RequestChanges(ctx context.Context, documentID string, comments string) error
	ListPendingForUser(ctx context.Context, userID string) ([]PendingApproval, error)
	EnsureIndexes(ctx context.Context) error
}

type WorkflowStoreImpl struct {
	Collection *mongo.Collection
}

func NewWorkflowStore(mongodb *database.MongodbDB) WorkflowStore {
	return &WorkflowStoreImpl{
		Collection: mongodb.DB.Collection("document_workflows"),
	}
}

func (r *WorkflowStoreImpl) EnsureIndexes(ctx context.Context) error {
	_, err := r.Collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "document_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return transportErr("ensure indexes", err)
}

func (r *WorkflowStoreImpl) GetByDocumentID(ctx context.Context, documentID string) (*DocumentWorkflow, error) {
	var wf DocumentWorkflow
	err := r.Collection.FindOne(ctx, bson.M{"document_id": documentID}).Decode(&wf)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrWorkflowNotFound
		}
		return nil, transportErr("load", err)
	}
	return &wf, nil
}

func (r *WorkflowStoreImpl) Create(ctx context.Context, wf *DocumentWorkflow) error {
	_, err := r.Collection.InsertOne(ctx, wf)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrWorkflowExists
		}
		return transportErr("create", err)
	}
	return nil
}

func (r *WorkflowStoreImpl) ApproveStep(ctx context.Context, documentID string, stepID string, comments string) error {
	return r.mutate(ctx, documentID, func(wf *DocumentWorkflow) error {
		return applyApprove(wf, stepID, comments, time.Now())
	})
}

func (r *WorkflowStoreImpl) RejectStep(ctx context.Context, documentID string, stepID string, comments string) error {
	return r.mutate(ctx, documentID, func(wf *DocumentWorkflow) error {
		return applyReject(wf, stepID, comments, time.Now())
	})
}

func (r *WorkflowStoreImpl) RequestChanges(ctx context.Context, documentID string, comments string) error {
	return r.mutate(ctx, documentID, func(wf *DocumentWorkflow) error {
		return applyRequestChanges(wf, time.Now())
	})
}

func (r *WorkflowStoreImpl) ListPendingForUser(ctx context.Context, userID string) ([]PendingApproval, error) {
	filter := bson.M{
		"status": StatusUnderReview,
		"steps": bson.M{"$elemMatch": bson.M{
			"assigned_to": userID,
			"status":      StepStatusInProgress,
		}},
	}
	cursor, err := r.Collection.Find(ctx, filter)
	if err != nil {
		return nil, transportErr("list pending", err)
	}
	defer cursor.Close(ctx)

	var workflows []DocumentWorkflow
	if err = cursor.All(ctx, &workflows); err != nil {
		return nil, transportErr("list pending", err)
	}

	var pending []PendingApproval
	for _, wf := range workflows {
		for _, s := range wf.Steps {
			if s.Order > 0 && s.AssignedTo == userID && s.Status == StepStatusInProgress {
				pending = append(pending, PendingApproval{DocumentID: wf.DocumentID, StepID: s.ID})
			}
		}
	}
	return pending, nil
}

// mutate runs a read-modify-write cycle for one step transition. The apply
// functions below are pure so the derivation rules stay unit-testable without
// a live database.
func (r *WorkflowStoreImpl) mutate(ctx context.Context, documentID string, apply func(*DocumentWorkflow) error) error {
	wf, err := r.GetByDocumentID(ctx, documentID)
	if err != nil {
		return err
	}
	if err := apply(wf); err != nil {
		return err
	}
	wf.UpdatedAt = time.Now()

	update := bson.M{
		"$set": bson.M{
			"steps":        wf.Steps,
			"current_step": wf.CurrentStep,
			"status":       wf.Status,
			"updated_at":   wf.UpdatedAt,
		},
	}
	_, err = r.Collection.UpdateOne(ctx, bson.M{"_id": wf.ID}, update)
	return transportErr("save", err)
}

// applyApprove completes one step and re-derives current_step and overall
// status. The chain is linear: the active step is always the earliest one
// still awaiting a decision; when none remain the workflow is approved.
func applyApprove(wf *DocumentWorkflow, stepID string, comments string, now time.Time) error {
	idx := wf.StepIndexByID(stepID)
	if wf.IsTerminal() || idx < 0 || wf.Steps[idx].Order == 0 || !wf.Steps[idx].Status.Actionable() {
		return ErrInvalidStep
	}

	step := &wf.Steps[idx]
	step.Status = StepStatusCompleted
	completedAt := now
	step.CompletedAt = &completedAt
	step.Comments = comments

	for i := range wf.Steps {
		s := &wf.Steps[i]
		if s.Order == 0 || !s.Status.Actionable() {
			continue
		}
		if s.Status == StepStatusPending {
			s.Status = StepStatusInProgress
			assignedAt := now
			s.AssignedAt = &assignedAt
		}
		wf.CurrentStep = i + 1
		wf.Status = StatusUnderReview
		return nil
	}

	wf.Status = StatusApproved
	wf.CurrentStep = len(wf.Steps)
	return nil
}

// applyReject records the rejecting comments as the reason and terminates the
// whole workflow; any step rejection rejects the document.
func applyReject(wf *DocumentWorkflow, stepID string, comments string, now time.Time) error {
	idx := wf.StepIndexByID(stepID)
	if wf.IsTerminal() || idx < 0 || wf.Steps[idx].Order == 0 || !wf.Steps[idx].Status.Actionable() {
		return ErrInvalidStep
	}

	step := &wf.Steps[idx]
	step.Status = StepStatusRejected
	completedAt := now
	step.CompletedAt = &completedAt
	step.Comments = comments

	wf.Status = StatusRejected
	wf.CurrentStep = len(wf.Steps)
	return nil
}

// applyRequestChanges restarts the chain from the first approval step,
// whichever step raised the request.
func applyRequestChanges(wf *DocumentWorkflow, now time.Time) error {
	first := true
	for i := range wf.Steps {
		s := &wf.Steps[i]
		if s.Order == 0 {
			continue
		}
		s.CompletedAt = nil
		s.Comments = ""
		if first {
			first = false
			s.Status = StepStatusInProgress
			assignedAt := now
			s.AssignedAt = &assignedAt
			wf.CurrentStep = i + 1
		} else {
			s.Status = StepStatusPending
			s.AssignedAt = nil
		}
	}
	if first {
		// No approval steps to restart.
		return ErrInvalidStep
	}
	wf.Status = StatusUnderReview
	return nil
}
