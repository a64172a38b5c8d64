package workflow

// Principal is the acting identity. It is always passed in explicitly; nothing
// in this package reads ambient session state.
type Principal struct {
	ID      string
	Name    string
	IsAdmin bool
}

// DenyReason classifies why a principal may not act.
type DenyReason string

const (
	DenyNoActionableStep DenyReason = "no_actionable_step"
	DenyNotAssigned      DenyReason = "not_assigned"
)

// Decision is the resolver's typed answer: either the single step the
// principal may act on, or the reason they may not. Callers branch on the
// decision, never on role checks of their own.
type Decision struct {
	Allowed bool
	StepID  string
	Reason  DenyReason
}

func allowed(stepID string) Decision {
	return Decision{Allowed: true, StepID: stepID}
}

func denied(reason DenyReason) Decision {
	return Decision{Reason: reason}
}

// ActionableSteps returns every step the principal could act on right now.
// Administrators may act on any step still awaiting a decision, regardless of
// chain position. Everyone else is limited to the active step, and only when
// the backend's own assignment record (pending) names it.
func ActionableSteps(p Principal, wf *DocumentWorkflow, pending []PendingApproval) []WorkflowStep {
	if p.IsAdmin {
		var steps []WorkflowStep
		for _, s := range wf.Steps {
			if s.Order > 0 && s.Status.Actionable() {
				steps = append(steps, s)
			}
		}
		return steps
	}

	d := ResolveAction(p, wf, pending)
	if !d.Allowed {
		return nil
	}
	idx := wf.StepIndexByID(d.StepID)
	if idx < 0 {
		return nil
	}
	return []WorkflowStep{wf.Steps[idx]}
}

// ResolveAction picks the one step the principal should act on.
//
// For administrators it prefers the active step when still actionable, falling
// back to the earliest step awaiting a decision; this keeps the operational
// override usable even when current_step sits on a terminal step.
//
// For everyone else the step at current_step must be in progress and the
// backend's pending-approval listing must name exactly that (document, step)
// pair. Position alone never authorizes.
func ResolveAction(p Principal, wf *DocumentWorkflow, pending []PendingApproval) Decision {
	if p.IsAdmin {
		if active := wf.ActiveStep(); active != nil && active.Order > 0 && active.Status.Actionable() {
			return allowed(active.ID)
		}
		for _, s := range wf.Steps {
			if s.Order > 0 && s.Status.Actionable() {
				return allowed(s.ID)
			}
		}
		return denied(DenyNoActionableStep)
	}

	active := wf.ActiveStep()
	if active == nil || active.Order == 0 || active.Status != StepStatusInProgress {
		return denied(DenyNoActionableStep)
	}
	for _, pa := range pending {
		if pa.DocumentID == wf.DocumentID && pa.StepID == active.ID {
			return allowed(active.ID)
		}
	}
	return denied(DenyNotAssigned)
}
