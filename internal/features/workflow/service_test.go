package workflow

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dancan-sandys/isomanagement/internal/features/audit"
	"github.com/dancan-sandys/isomanagement/internal/features/document"
)

// fakeStore drives the dispatcher without Mongo. It reuses the same pure
// transition functions the real store persists, so the derivation rules under
// test are the production ones.
type fakeStore struct {
	wf        *DocumentWorkflow
	pending   []PendingApproval
	mutations int
	loads     int
}

func (f *fakeStore) GetByDocumentID(ctx context.Context, documentID string) (*DocumentWorkflow, error) {
	f.loads++
	if f.wf == nil || f.wf.DocumentID != documentID {
		return nil, ErrWorkflowNotFound
	}
	copied := *f.wf
	copied.Steps = append([]WorkflowStep(nil), f.wf.Steps...)
	return &copied, nil
}

func (f *fakeStore) Create(ctx context.Context, wf *DocumentWorkflow) error {
	if f.wf != nil && f.wf.DocumentID == wf.DocumentID {
		return ErrWorkflowExists
	}
	f.wf = wf
	return nil
}

func (f *fakeStore) ApproveStep(ctx context.Context, documentID, stepID, comments string) error {
	if f.wf == nil || f.wf.DocumentID != documentID {
		return ErrWorkflowNotFound
	}
	if err := applyApprove(f.wf, stepID, comments, time.Now()); err != nil {
		return err
	}
	f.mutations++
	return nil
}

func (f *fakeStore) RejectStep(ctx context.Context, documentID, stepID, comments string) error {
	if f.wf == nil || f.wf.DocumentID != documentID {
		return ErrWorkflowNotFound
	}
	if err := applyReject(f.wf, stepID, comments, time.Now()); err != nil {
		return err
	}
	f.mutations++
	return nil
}

func (f *fakeStore) RequestChanges(ctx context.Context, documentID, comments string) error {
	if f.wf == nil || f.wf.DocumentID != documentID {
		return ErrWorkflowNotFound
	}
	if err := applyRequestChanges(f.wf, time.Now()); err != nil {
		return err
	}
	f.mutations++
	return nil
}

func (f *fakeStore) ListPendingForUser(ctx context.Context, userID string) ([]PendingApproval, error) {
	return f.pending, nil
}

func (f *fakeStore) EnsureIndexes(ctx context.Context) error { return nil }

type fakeAudit struct {
	entries []audit.AuditEntry
}

func (f *fakeAudit) Record(ctx context.Context, entry audit.AuditEntry) error {
	f.entries = append(f.entries, entry)
	return nil
}

func (f *fakeAudit) Trail(ctx context.Context, documentID string) ([]audit.AuditEntry, error) {
	return f.entries, nil
}

type fakeDocs struct {
	meta *document.Meta
}

func (f *fakeDocs) GetMeta(ctx context.Context, documentID string) (*document.Meta, error) {
	return f.meta, nil
}

func newTestService(store *fakeStore) (WorkflowService, *fakeAudit) {
	trail := &fakeAudit{}
	return NewWorkflowService(store, &fakeDocs{}, trail), trail
}

func TestPerformNonAdmin(t *testing.T) {
	user := Principal{ID: "qa.reviewer"}

	t.Run("approves the assigned step and reloads", func(t *testing.T) {
		store := &fakeStore{
			wf:      chain(2, StatusUnderReview, StepStatusInProgress, StepStatusPending),
			pending: []PendingApproval{{DocumentID: "doc-1", StepID: "s1"}},
		}
		service, trail := newTestService(store)

		got, err := service.Perform(context.Background(), user, "doc-1", ActionApprove, "ok", nil)
		if err != nil {
			t.Fatalf("Perform: %v", err)
		}
		if got.Steps[1].Status != StepStatusCompleted {
			t.Errorf("s1 status = %s, want completed", got.Steps[1].Status)
		}
		if got.CurrentStep != 3 {
			t.Errorf("current_step = %d, want 3", got.CurrentStep)
		}
		if store.mutations != 1 {
			t.Errorf("mutations = %d, want exactly 1", store.mutations)
		}
		if len(trail.entries) != 1 || trail.entries[0].Action != audit.AuditActionApprove {
			t.Errorf("audit trail = %+v, want one APPROVE entry", trail.entries)
		}
	})

	t.Run("assignment mismatch blocks the action", func(t *testing.T) {
		// The backend says the user's step is s3; the active step is s2.
		store := &fakeStore{
			wf:      chain(3, StatusUnderReview, StepStatusCompleted, StepStatusInProgress, StepStatusPending),
			pending: []PendingApproval{{DocumentID: "doc-1", StepID: "s3"}},
		}
		service, trail := newTestService(store)

		_, err := service.Perform(context.Background(), user, "doc-1", ActionApprove, "", nil)
		if !errors.Is(err, ErrNotAssigned) {
			t.Fatalf("Perform error = %v, want ErrNotAssigned", err)
		}
		if store.mutations != 0 {
			t.Errorf("mutations = %d, want 0 after denial", store.mutations)
		}
		if len(trail.entries) != 0 {
			t.Errorf("audit trail = %+v, want empty after denial", trail.entries)
		}
	})

	t.Run("no assignment at all", func(t *testing.T) {
		store := &fakeStore{
			wf: chain(2, StatusUnderReview, StepStatusInProgress),
		}
		service, _ := newTestService(store)

		_, err := service.Perform(context.Background(), user, "doc-1", ActionReject, "", nil)
		if !errors.Is(err, ErrNotAssigned) {
			t.Fatalf("Perform error = %v, want ErrNotAssigned", err)
		}
	})

	t.Run("rejection terminates the workflow", func(t *testing.T) {
		store := &fakeStore{
			wf:      chain(2, StatusUnderReview, StepStatusInProgress, StepStatusPending),
			pending: []PendingApproval{{DocumentID: "doc-1", StepID: "s1"}},
		}
		service, trail := newTestService(store)

		got, err := service.Perform(context.Background(), user, "doc-1", ActionReject, "incomplete hazard analysis", nil)
		if err != nil {
			t.Fatalf("Perform: %v", err)
		}
		if got.Status != StatusRejected {
			t.Errorf("status = %s, want rejected", got.Status)
		}
		if got.Steps[1].Comments != "incomplete hazard analysis" {
			t.Errorf("rejection reason = %q", got.Steps[1].Comments)
		}
		if trail.entries[0].Action != audit.AuditActionReject {
			t.Errorf("audit action = %s, want REJECT", trail.entries[0].Action)
		}
	})
}

func TestPerformAdminExplicitStep(t *testing.T) {
	admin := Principal{ID: "admin-1", IsAdmin: true}

	t.Run("acts on a named pending step without any assignment", func(t *testing.T) {
		store := &fakeStore{
			wf: chain(2, StatusUnderReview, StepStatusPending, StepStatusPending),
		}
		service, _ := newTestService(store)

		idx := 0
		got, err := service.Perform(context.Background(), admin, "doc-1", ActionApprove, "", &idx)
		if err != nil {
			t.Fatalf("Perform: %v", err)
		}
		// step_index is over approval steps: 0 names s1, not the marker
		if got.Steps[1].Status != StepStatusCompleted {
			t.Errorf("s1 status = %s, want completed", got.Steps[1].Status)
		}
	})

	t.Run("named step already decided", func(t *testing.T) {
		store := &fakeStore{
			wf: chain(3, StatusUnderReview, StepStatusCompleted, StepStatusInProgress),
		}
		service, _ := newTestService(store)

		idx := 0
		_, err := service.Perform(context.Background(), admin, "doc-1", ActionApprove, "", &idx)
		if !errors.Is(err, ErrInvalidStep) {
			t.Fatalf("Perform error = %v, want ErrInvalidStep", err)
		}
		if store.mutations != 0 {
			t.Errorf("mutations = %d, want 0", store.mutations)
		}
	})

	t.Run("index out of range", func(t *testing.T) {
		store := &fakeStore{
			wf: chain(2, StatusUnderReview, StepStatusInProgress),
		}
		service, _ := newTestService(store)

		idx := 5
		if _, err := service.Perform(context.Background(), admin, "doc-1", ActionApprove, "", &idx); !errors.Is(err, ErrInvalidStep) {
			t.Fatalf("Perform error = %v, want ErrInvalidStep", err)
		}
	})
}

func TestPerformEdgeCases(t *testing.T) {
	t.Run("unknown workflow", func(t *testing.T) {
		service, _ := newTestService(&fakeStore{})
		_, err := service.Perform(context.Background(), Principal{ID: "u"}, "doc-404", ActionApprove, "", nil)
		if !errors.Is(err, ErrWorkflowNotFound) {
			t.Fatalf("Perform error = %v, want ErrWorkflowNotFound", err)
		}
	})

	t.Run("unknown action", func(t *testing.T) {
		store := &fakeStore{wf: chain(2, StatusUnderReview, StepStatusInProgress)}
		service, _ := newTestService(store)
		if _, err := service.Perform(context.Background(), Principal{ID: "u"}, "doc-1", Action("escalate"), "", nil); err == nil {
			t.Fatal("expected error for unknown action")
		}
	})
}

func TestRequestChangesRestartsChain(t *testing.T) {
	store := &fakeStore{
		wf:      chain(3, StatusUnderReview, StepStatusCompleted, StepStatusInProgress, StepStatusPending),
		pending: []PendingApproval{{DocumentID: "doc-1", StepID: "s2"}},
	}
	service, trail := newTestService(store)

	got, err := service.RequestChanges(context.Background(), Principal{ID: "qa.reviewer"}, "doc-1", "please revisit scope")
	if err != nil {
		t.Fatalf("RequestChanges: %v", err)
	}
	if got.CurrentStep != 2 {
		t.Errorf("current_step = %d, want 2 (first approval step)", got.CurrentStep)
	}
	if got.Steps[1].Status != StepStatusInProgress {
		t.Errorf("s1 status = %s, want in_progress", got.Steps[1].Status)
	}
	if got.Steps[2].Status != StepStatusPending {
		t.Errorf("s2 status = %s, want pending", got.Steps[2].Status)
	}
	if len(trail.entries) != 1 || trail.entries[0].Action != audit.AuditActionRequestChanges {
		t.Errorf("audit trail = %+v, want one REQUEST_CHANGES entry", trail.entries)
	}
	if trail.entries[0].Comments != "please revisit scope" {
		t.Errorf("audit comments = %q", trail.entries[0].Comments)
	}
}

func TestStartReview(t *testing.T) {
	store := &fakeStore{}
	service, trail := newTestService(store)

	wf, err := service.StartReview(context.Background(), Principal{ID: "qa.author"}, "doc-1", []StepInput{
		{Name: "Quality Review", AssignedTo: "qa.reviewer"},
		{Name: "Final Approval", AssignedTo: "plant.manager"},
	})
	if err != nil {
		t.Fatalf("StartReview: %v", err)
	}

	if len(wf.Steps) != 3 {
		t.Fatalf("steps = %d, want 3 (marker + 2)", len(wf.Steps))
	}
	marker := wf.Steps[0]
	if marker.Order != 0 || marker.Status != StepStatusCompleted {
		t.Errorf("creation marker = %+v, want order 0 completed", marker)
	}
	if wf.Steps[1].Status != StepStatusInProgress {
		t.Errorf("first approval step status = %s, want in_progress", wf.Steps[1].Status)
	}
	if wf.Steps[2].Status != StepStatusPending {
		t.Errorf("second approval step status = %s, want pending", wf.Steps[2].Status)
	}
	if wf.CurrentStep != 2 {
		t.Errorf("current_step = %d, want 2", wf.CurrentStep)
	}
	if wf.Status != StatusUnderReview {
		t.Errorf("status = %s, want under_review", wf.Status)
	}
	if len(trail.entries) != 1 || trail.entries[0].Action != audit.AuditActionSubmit {
		t.Errorf("audit trail = %+v, want one SUBMIT entry", trail.entries)
	}

	// Submitting again is a conflict
	if _, err := service.StartReview(context.Background(), Principal{ID: "qa.author"}, "doc-1", []StepInput{{Name: "x", AssignedTo: "y"}}); !errors.Is(err, ErrWorkflowExists) {
		t.Errorf("second StartReview error = %v, want ErrWorkflowExists", err)
	}

	// No steps, no chain
	if _, err := service.StartReview(context.Background(), Principal{ID: "qa.author"}, "doc-2", nil); err == nil {
		t.Error("expected error for empty step list")
	}
}

// Loading twice without an intervening mutation returns equal state.
func TestGetWorkflowIdempotentReload(t *testing.T) {
	store := &fakeStore{wf: chain(2, StatusUnderReview, StepStatusInProgress, StepStatusPending)}
	service, _ := newTestService(store)

	a, err := service.GetWorkflow(context.Background(), "doc-1")
	if err != nil {
		t.Fatalf("GetWorkflow: %v", err)
	}
	b, err := service.GetWorkflow(context.Background(), "doc-1")
	if err != nil {
		t.Fatalf("GetWorkflow: %v", err)
	}
	if a.CurrentStep != b.CurrentStep || a.Status != b.Status || len(a.Steps) != len(b.Steps) {
		t.Errorf("reload differs: %+v vs %+v", a, b)
	}
	for i := range a.Steps {
		if a.Steps[i] != b.Steps[i] {
			t.Errorf("step %d differs: %+v vs %+v", i, a.Steps[i], b.Steps[i])
		}
	}
}
