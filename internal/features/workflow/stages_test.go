package workflow

import (
	"fmt"
	"testing"
	"time"

	"github.com/dancan-sandys/isomanagement/internal/features/document"
)

// chain builds a workflow whose creation marker is step "s0" and whose
// approval steps are "s1".."sN" with the given statuses. currentStep is
// 1-based over the full list, marker included.
func chain(currentStep int, status WorkflowStatus, stepStatuses ...StepStatus) *DocumentWorkflow {
	now := time.Now()
	wf := &DocumentWorkflow{
		DocumentID:  "doc-1",
		CurrentStep: currentStep,
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
		Steps: []WorkflowStep{{
			ID:          "s0",
			Name:        "Document Created",
			Order:       0,
			Status:      StepStatusCompleted,
			AssignedTo:  "author",
			CompletedAt: &now,
		}},
	}
	for i, ss := range stepStatuses {
		step := WorkflowStep{
			ID:         fmt.Sprintf("s%d", i+1),
			Name:       "Step",
			Order:      i + 1,
			Status:     ss,
			AssignedTo: "approver",
		}
		if ss == StepStatusCompleted || ss == StepStatusRejected {
			ts := now
			step.CompletedAt = &ts
		}
		wf.Steps = append(wf.Steps, step)
	}
	return wf
}

func TestProjectStages(t *testing.T) {
	tests := []struct {
		name         string
		wf           *DocumentWorkflow
		wantActive   int
		wantDraft    StageStatus
		wantReviewed StageStatus
		wantApproved StageStatus
	}{
		{
			name: "fresh chain",
			// First approval step just activated
			wf:           chain(2, StatusUnderReview, StepStatusInProgress, StepStatusPending, StepStatusPending),
			wantActive:   0,
			wantDraft:    StageCompleted,
			wantReviewed: StageInProgress,
			wantApproved: StageInProgress,
		},
		{
			name: "mid chain",
			// First approval done, second step acting
			wf:           chain(3, StatusUnderReview, StepStatusCompleted, StepStatusInProgress, StepStatusPending),
			wantActive:   1,
			wantDraft:    StageCompleted,
			wantReviewed: StageCompleted,
			wantApproved: StageInProgress,
		},
		{
			name:         "fully approved",
			wf:           chain(4, StatusApproved, StepStatusCompleted, StepStatusCompleted, StepStatusCompleted),
			wantActive:   2,
			wantDraft:    StageCompleted,
			wantReviewed: StageCompleted,
			wantApproved: StageCompleted,
		},
		{
			name: "rejected at first step",
			// A rejected step was still acted on: its completed_at marks the
			// review point, while the later steps keep the approval stage open
			wf:           chain(3, StatusRejected, StepStatusRejected, StepStatusPending),
			wantActive:   1,
			wantDraft:    StageCompleted,
			wantReviewed: StageCompleted,
			wantApproved: StageInProgress,
		},
		{
			name:         "marker only",
			wf:           chain(1, StatusDraft),
			wantActive:   0,
			wantDraft:    StageCompleted,
			wantReviewed: StagePending,
			wantApproved: StagePending,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ProjectStages(tt.wf, nil)
			if got.ActiveIndex != tt.wantActive {
				t.Errorf("ActiveIndex = %d, want %d", got.ActiveIndex, tt.wantActive)
			}
			if got.Draft.Status != tt.wantDraft {
				t.Errorf("Draft = %s, want %s", got.Draft.Status, tt.wantDraft)
			}
			if got.Reviewed.Status != tt.wantReviewed {
				t.Errorf("Reviewed = %s, want %s", got.Reviewed.Status, tt.wantReviewed)
			}
			if got.Approved.Status != tt.wantApproved {
				t.Errorf("Approved = %s, want %s", got.Approved.Status, tt.wantApproved)
			}
		})
	}
}

func TestProjectStagesDraftPrefersDocumentMeta(t *testing.T) {
	wf := chain(2, StatusUnderReview, StepStatusInProgress)
	createdAt := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	meta := &document.Meta{Title: "SOP-12", CreatedBy: "qa.author", CreatedAt: createdAt}

	got := ProjectStages(wf, meta)
	if got.Draft.Actor != "qa.author" {
		t.Errorf("Draft.Actor = %q, want qa.author", got.Draft.Actor)
	}
	if got.Draft.Timestamp == nil || !got.Draft.Timestamp.Equal(createdAt) {
		t.Errorf("Draft.Timestamp = %v, want %v", got.Draft.Timestamp, createdAt)
	}

	// Without metadata the creation marker supplies the label.
	got = ProjectStages(wf, nil)
	if got.Draft.Actor != "author" {
		t.Errorf("fallback Draft.Actor = %q, want author", got.Draft.Actor)
	}
}

// Renaming or reassigning the creation marker must never change the projected
// summary: only steps with order > 0 feed the stage math.
func TestProjectStagesIgnoresCreationMarker(t *testing.T) {
	wf := chain(3, StatusUnderReview, StepStatusCompleted, StepStatusInProgress)
	before := ProjectStages(wf, nil)

	wf.Steps[0].Name = "Imported From Legacy System"
	wf.Steps[0].AssignedTo = "someone.else"
	wf.Steps[0].Comments = "migrated"
	after := ProjectStages(wf, nil)

	if before.ActiveIndex != after.ActiveIndex ||
		before.Reviewed.Status != after.Reviewed.Status ||
		before.Approved.Status != after.Approved.Status {
		t.Errorf("stage summary changed after editing the creation marker: before=%+v after=%+v", before, after)
	}
}

// The active stage index never regresses as a chain is approved front to back.
func TestPrimaryActiveIndexMonotonic(t *testing.T) {
	wf := chain(2, StatusUnderReview, StepStatusInProgress, StepStatusPending, StepStatusPending)

	prev := ProjectStages(wf, nil).ActiveIndex
	for {
		active := wf.ActiveStep()
		if active == nil || !active.Status.Actionable() {
			break
		}
		if err := applyApprove(wf, active.ID, "", time.Now()); err != nil {
			t.Fatalf("applyApprove: %v", err)
		}
		idx := ProjectStages(wf, nil).ActiveIndex
		if idx < prev {
			t.Fatalf("ActiveIndex regressed from %d to %d", prev, idx)
		}
		prev = idx
	}
	if prev != 2 {
		t.Errorf("final ActiveIndex = %d, want 2", prev)
	}
	if wf.Status != StatusApproved {
		t.Errorf("final status = %s, want %s", wf.Status, StatusApproved)
	}
}
