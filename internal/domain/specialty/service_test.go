package specialty

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/clinic/crm/internal/platform/apperr"
)

type mockRepo struct {
	specialties map[uuid.UUID]*Specialty
}

func newMockRepo() *mockRepo {
	return &mockRepo{specialties: make(map[uuid.UUID]*Specialty)}
}

func (m *mockRepo) Create(_ context.Context, s *Specialty) error {
	s.ID = uuid.New()
	stored := *s
	m.specialties[s.ID] = &stored
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Specialty, error) {
	s, ok := m.specialties[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	copied := *s
	return &copied, nil
}

func (m *mockRepo) Update(_ context.Context, s *Specialty) error {
	if _, ok := m.specialties[s.ID]; !ok {
		return apperr.ErrNotFound
	}
	stored := *s
	m.specialties[s.ID] = &stored
	return nil
}

func (m *mockRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.specialties[id]; !ok {
		return apperr.ErrNotFound
	}
	delete(m.specialties, id)
	return nil
}

func (m *mockRepo) List(_ context.Context, limit, offset int) ([]*Specialty, int, error) {
	var specialties []*Specialty
	for _, s := range m.specialties {
		copied := *s
		specialties = append(specialties, &copied)
	}
	return specialties, len(m.specialties), nil
}

func (m *mockRepo) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	_, ok := m.specialties[id]
	return ok, nil
}

func TestCreateTrimsName(t *testing.T) {
	svc := NewService(newMockRepo())

	s := &Specialty{Name: "  Cardiology  "}
	if err := svc.Create(context.Background(), s); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if s.Name != "Cardiology" {
		t.Errorf("name = %q, want trimmed", s.Name)
	}
	if s.ID == uuid.Nil {
		t.Error("expected generated id")
	}
}

func TestCreateRequiresName(t *testing.T) {
	svc := NewService(newMockRepo())

	err := svc.Create(context.Background(), &Specialty{Name: "   "})
	var ve *apperr.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if ve.Field != "specialty_name" {
		t.Errorf("field = %q, want specialty_name", ve.Field)
	}
}

func TestUpdateAndGet(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	ctx := context.Background()

	s := &Specialty{Name: "Neurology"}
	if err := svc.Create(ctx, s); err != nil {
		t.Fatalf("Create: %v", err)
	}

	s.Name = "Neurosurgery"
	if err := svc.Update(ctx, s); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := svc.Get(ctx, s.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name != "Neurosurgery" {
		t.Errorf("name = %q, want Neurosurgery", got.Name)
	}

	if err := svc.Update(ctx, &Specialty{ID: uuid.New(), Name: "Ghost"}); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("update unknown id: got %v, want ErrNotFound", err)
	}
}

func TestDelete(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	ctx := context.Background()

	s := &Specialty{Name: "Dermatology"}
	if err := svc.Create(ctx, s); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := svc.Delete(ctx, s.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if len(repo.specialties) != 0 {
		t.Errorf("specialties = %d, want 0", len(repo.specialties))
	}
	if err := svc.Delete(ctx, s.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("second Delete: got %v, want ErrNotFound", err)
	}
}
