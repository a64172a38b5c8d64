package workflow

import (
	"github.com/dancan-sandys/isomanagement/internal/features/document"
)

// ProjectStages collapses an arbitrary-length approval chain into the stable
// Draft/Reviewed/Approved summary. Only the first and last approval steps plus
// the overall status feed the computation, so renaming or inserting
// intermediate steps never changes the summary's meaning.
//
// meta is the owning document's metadata (for the Draft label); it may be nil,
// in which case the creation marker step supplies actor and timestamp.
func ProjectStages(wf *DocumentWorkflow, meta *document.Meta) PrimaryStages {
	approval := wf.ApprovalSteps()

	var first, last *WorkflowStep
	if len(approval) > 0 {
		first = &approval[0]
		last = &approval[len(approval)-1]
	}

	reviewCompleted := first != nil && (first.Status == StepStatusCompleted || first.CompletedAt != nil)
	approvedCompleted := wf.Status == StatusApproved || (last != nil && last.Status == StepStatusCompleted)

	activeIndex := 0
	if reviewCompleted {
		activeIndex = 1
	}
	if approvedCompleted {
		activeIndex = 2
	}

	stages := PrimaryStages{ActiveIndex: activeIndex}

	stages.Draft = draftStage(wf, meta)
	stages.Reviewed = reviewedStage(wf, first, reviewCompleted)
	stages.Approved = approvedStage(wf, approval, last, approvedCompleted)

	return stages
}

// draftStage is always completed: the chain only exists once authoring is done.
func draftStage(wf *DocumentWorkflow, meta *document.Meta) Stage {
	if meta != nil {
		ts := meta.CreatedAt
		return Stage{Status: StageCompleted, Actor: meta.CreatedBy, Timestamp: &ts}
	}
	for i := range wf.Steps {
		if wf.Steps[i].Order == 0 {
			return Stage{Status: StageCompleted, Actor: wf.Steps[i].AssignedTo, Timestamp: wf.Steps[i].CompletedAt}
		}
	}
	ts := wf.CreatedAt
	return Stage{Status: StageCompleted, Timestamp: &ts}
}

func reviewedStage(wf *DocumentWorkflow, first *WorkflowStep, reviewCompleted bool) Stage {
	if reviewCompleted {
		return Stage{Status: StageCompleted, Actor: first.AssignedTo, Timestamp: first.CompletedAt}
	}
	// In progress while the active step is the first approval step.
	if active := wf.ActiveStep(); active != nil && first != nil && active.ID == first.ID {
		return Stage{Status: StageInProgress, Actor: first.AssignedTo}
	}
	return Stage{Status: StagePending}
}

func approvedStage(wf *DocumentWorkflow, approval []WorkflowStep, last *WorkflowStep, approvedCompleted bool) Stage {
	if approvedCompleted {
		stage := Stage{Status: StageCompleted}
		if last != nil {
			stage.Actor = last.AssignedTo
			stage.Timestamp = last.CompletedAt
		}
		if stage.Timestamp == nil {
			ts := wf.UpdatedAt
			stage.Timestamp = &ts
		}
		return stage
	}
	for _, s := range approval {
		if s.Status.Actionable() {
			return Stage{Status: StageInProgress}
		}
	}
	return Stage{Status: StagePending}
}
