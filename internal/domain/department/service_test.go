package department

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/clinic/crm/internal/platform/apperr"
)

type mockRepo struct {
	departments map[uuid.UUID]*Department
	// deleted tracks cascade roots removed through Delete.
	deleted []uuid.UUID
}

func newMockRepo() *mockRepo {
	return &mockRepo{departments: make(map[uuid.UUID]*Department)}
}

func (m *mockRepo) Create(_ context.Context, d *Department) error {
	for _, existing := range m.departments {
		if existing.Name == d.Name {
			return apperr.Conflict("department_name")
		}
	}
	d.ID = uuid.New()
	stored := *d
	m.departments[d.ID] = &stored
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Department, error) {
	d, ok := m.departments[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	copied := *d
	return &copied, nil
}

func (m *mockRepo) Update(_ context.Context, d *Department) error {
	if _, ok := m.departments[d.ID]; !ok {
		return apperr.ErrNotFound
	}
	stored := *d
	m.departments[d.ID] = &stored
	return nil
}

func (m *mockRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.departments[id]; !ok {
		return apperr.ErrNotFound
	}
	delete(m.departments, id)
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *mockRepo) List(_ context.Context, limit, offset int) ([]*Department, int, error) {
	var departments []*Department
	for _, d := range m.departments {
		copied := *d
		departments = append(departments, &copied)
	}
	return departments, len(m.departments), nil
}

func (m *mockRepo) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	_, ok := m.departments[id]
	return ok, nil
}

func TestCreateDefaultsFloorAndCabinet(t *testing.T) {
	svc := NewService(newMockRepo())

	d := &Department{Name: "Cardiology"}
	if err := svc.Create(context.Background(), d); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if d.Floor != 1 || d.Cabinet != 1 {
		t.Errorf("floor=%d cabinet=%d, want 1 and 1", d.Floor, d.Cabinet)
	}
}

func TestCreateKeepsExplicitFloorAndCabinet(t *testing.T) {
	svc := NewService(newMockRepo())

	d := &Department{Name: "Radiology", Floor: 3, Cabinet: 312}
	if err := svc.Create(context.Background(), d); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if d.Floor != 3 || d.Cabinet != 312 {
		t.Errorf("floor=%d cabinet=%d, want 3 and 312", d.Floor, d.Cabinet)
	}
}

func TestCreateRequiresName(t *testing.T) {
	svc := NewService(newMockRepo())

	err := svc.Create(context.Background(), &Department{Name: "  "})
	var ve *apperr.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if ve.Field != "department_name" {
		t.Errorf("field = %q, want department_name", ve.Field)
	}
}

func TestCreateDuplicateNameConflicts(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	ctx := context.Background()

	if err := svc.Create(ctx, &Department{Name: "Cardiology"}); err != nil {
		t.Fatalf("first Create: %v", err)
	}
	err := svc.Create(ctx, &Department{Name: "Cardiology", Floor: 2})
	var ce *apperr.ConflictError
	if !errors.As(err, &ce) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
	if len(repo.departments) != 1 {
		t.Errorf("departments = %d, want 1", len(repo.departments))
	}
}

func TestDelete(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	ctx := context.Background()

	d := &Department{Name: "Neurology"}
	if err := svc.Create(ctx, d); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := svc.Delete(ctx, d.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if len(repo.deleted) != 1 || repo.deleted[0] != d.ID {
		t.Error("delete not recorded as a single cascade root")
	}
	if err := svc.Delete(ctx, d.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("second Delete: got %v, want ErrNotFound", err)
	}
}
