package history

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/clinic/crm/internal/platform/apperr"
)

type mockRepo struct {
	entries map[uuid.UUID]*Entry
}

func newMockRepo() *mockRepo {
	return &mockRepo{entries: make(map[uuid.UUID]*Entry)}
}

func (m *mockRepo) Create(_ context.Context, e *Entry) error {
	e.ID = uuid.New()
	e.CreatedAt = time.Now().UTC()
	stored := *e
	m.entries[e.ID] = &stored
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Entry, error) {
	e, ok := m.entries[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	copied := *e
	return &copied, nil
}

func (m *mockRepo) Update(_ context.Context, e *Entry) error {
	if _, ok := m.entries[e.ID]; !ok {
		return apperr.ErrNotFound
	}
	stored := *e
	m.entries[e.ID] = &stored
	return nil
}

func (m *mockRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.entries[id]; !ok {
		return apperr.ErrNotFound
	}
	delete(m.entries, id)
	return nil
}

func (m *mockRepo) List(_ context.Context, limit, offset int) ([]*Entry, int, error) {
	var entries []*Entry
	for _, e := range m.entries {
		copied := *e
		entries = append(entries, &copied)
	}
	return entries, len(m.entries), nil
}

func (m *mockRepo) CountByStatus(_ context.Context) (map[string]int, error) {
	counts := make(map[string]int)
	for _, e := range m.entries {
		counts[e.Status]++
	}
	return counts, nil
}

type mockPatients struct {
	ids map[uuid.UUID]bool
}

func (m *mockPatients) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	return m.ids[id], nil
}

func newService(t *testing.T) (*Service, *mockRepo, uuid.UUID) {
	t.Helper()
	repo := newMockRepo()
	patientID := uuid.New()
	patients := &mockPatients{ids: map[uuid.UUID]bool{patientID: true}}
	return NewService(repo, patients), repo, patientID
}

func TestRecordOutcome(t *testing.T) {
	svc, repo, patientID := newService(t)
	ctx := context.Background()

	e, err := svc.RecordOutcome(ctx, patientID, StatusAttended)
	if err != nil {
		t.Fatalf("RecordOutcome: %v", err)
	}
	if e.ID == uuid.Nil {
		t.Error("expected generated id")
	}
	if e.Status != StatusAttended {
		t.Errorf("status = %q, want %q", e.Status, StatusAttended)
	}
	if len(repo.entries) != 1 {
		t.Errorf("ledger size = %d, want 1", len(repo.entries))
	}

	// Repeat entries for the same booking are allowed.
	if _, err := svc.RecordOutcome(ctx, patientID, StatusWaiting); err != nil {
		t.Fatalf("second RecordOutcome: %v", err)
	}
	if len(repo.entries) != 2 {
		t.Errorf("ledger size = %d, want 2", len(repo.entries))
	}
}

func TestRecordOutcomeInvalidStatus(t *testing.T) {
	svc, repo, patientID := newService(t)

	_, err := svc.RecordOutcome(context.Background(), patientID, "no-show")
	var ve *apperr.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(repo.entries) != 0 {
		t.Errorf("ledger size = %d, want 0", len(repo.entries))
	}
}

func TestRecordOutcomeUnknownPatient(t *testing.T) {
	svc, repo, _ := newService(t)

	_, err := svc.RecordOutcome(context.Background(), uuid.New(), StatusAttended)
	var ve *apperr.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if ve.Field != "patient_id" {
		t.Errorf("field = %q, want patient_id", ve.Field)
	}
	if len(repo.entries) != 0 {
		t.Errorf("ledger size = %d, want 0", len(repo.entries))
	}
}

func TestStatusHistogram(t *testing.T) {
	svc, _, patientID := newService(t)
	ctx := context.Background()

	// Worked example: two attended, one waiting.
	for _, status := range []string{StatusAttended, StatusAttended, StatusWaiting} {
		if _, err := svc.RecordOutcome(ctx, patientID, status); err != nil {
			t.Fatalf("RecordOutcome(%s): %v", status, err)
		}
	}

	counts, err := svc.Histogram(ctx)
	if err != nil {
		t.Fatalf("Histogram: %v", err)
	}
	if counts[StatusAttended] != 2 {
		t.Errorf("attended = %d, want 2", counts[StatusAttended])
	}
	if counts[StatusWaiting] != 1 {
		t.Errorf("waiting = %d, want 1", counts[StatusWaiting])
	}
	if _, ok := counts[StatusCancelled]; ok {
		t.Error("cancelled should be absent when the ledger has no cancelled entries")
	}
	if counts["total"] != 3 {
		t.Errorf("total = %d, want 3", counts["total"])
	}
}

func TestHistogramEmptyLedger(t *testing.T) {
	svc, _, _ := newService(t)

	counts, err := svc.Histogram(context.Background())
	if err != nil {
		t.Fatalf("Histogram: %v", err)
	}
	if len(counts) != 1 || counts["total"] != 0 {
		t.Errorf("counts = %v, want only total=0", counts)
	}
}

func TestHistogramFreshPerCall(t *testing.T) {
	svc, _, patientID := newService(t)
	ctx := context.Background()

	before, err := svc.Histogram(ctx)
	if err != nil {
		t.Fatalf("Histogram: %v", err)
	}
	if before["total"] != 0 {
		t.Fatalf("total = %d, want 0", before["total"])
	}

	if _, err := svc.RecordOutcome(ctx, patientID, StatusCancelled); err != nil {
		t.Fatalf("RecordOutcome: %v", err)
	}

	after, err := svc.Histogram(ctx)
	if err != nil {
		t.Fatalf("Histogram: %v", err)
	}
	if after[StatusCancelled] != 1 || after["total"] != 1 {
		t.Errorf("counts = %v, want cancelled=1 total=1", after)
	}
}

func TestAttendedSummaryMatchesHistogram(t *testing.T) {
	svc, _, patientID := newService(t)
	ctx := context.Background()

	for _, status := range []string{StatusAttended, StatusWaiting, StatusAttended, StatusCancelled} {
		if _, err := svc.RecordOutcome(ctx, patientID, status); err != nil {
			t.Fatalf("RecordOutcome(%s): %v", status, err)
		}
	}

	counts, err := svc.Histogram(ctx)
	if err != nil {
		t.Fatalf("Histogram: %v", err)
	}
	summary, err := svc.AttendedSummary(ctx)
	if err != nil {
		t.Fatalf("AttendedSummary: %v", err)
	}
	if summary.Status != StatusAttended {
		t.Errorf("status = %q, want %q", summary.Status, StatusAttended)
	}
	if summary.Count != counts[StatusAttended] {
		t.Errorf("summary count = %d, histogram attended = %d", summary.Count, counts[StatusAttended])
	}
}

func TestUpdateStatus(t *testing.T) {
	svc, _, patientID := newService(t)
	ctx := context.Background()

	e, err := svc.RecordOutcome(ctx, patientID, StatusWaiting)
	if err != nil {
		t.Fatalf("RecordOutcome: %v", err)
	}

	updated, err := svc.UpdateStatus(ctx, e.ID, StatusAttended)
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if updated.Status != StatusAttended {
		t.Errorf("status = %q, want %q", updated.Status, StatusAttended)
	}

	if _, err := svc.UpdateStatus(ctx, e.ID, "bogus"); err == nil {
		t.Error("expected error for invalid status")
	}
	if _, err := svc.UpdateStatus(ctx, uuid.New(), StatusAttended); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
