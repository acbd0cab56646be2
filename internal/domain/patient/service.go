package patient

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/clinic/crm/internal/platform/apperr"
	"github.com/clinic/crm/internal/platform/phone"
)

type DepartmentChecker interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

type ServiceChecker interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

type SlotChecker interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

type StaffChecker interface {
	ExistsWithRole(ctx context.Context, id uuid.UUID, role string) (bool, error)
}

// Service validates bookings before they hit the store. Every reference is
// checked through a narrow existence interface so a broken id fails the
// whole request and nothing is written.
type Service struct {
	repo        Repository
	phones      *phone.Validator
	departments DepartmentChecker
	services    ServiceChecker
	slots       SlotChecker
	staff       StaffChecker
}

func NewService(repo Repository, phones *phone.Validator, departments DepartmentChecker,
	services ServiceChecker, slots SlotChecker, staff StaffChecker) *Service {
	return &Service{
		repo:        repo,
		phones:      phones,
		departments: departments,
		services:    services,
		slots:       slots,
		staff:       staff,
	}
}

func validBookingType(t string) bool {
	switch t {
	case BookingOnline, BookingWalkIn, BookingCancelled:
		return true
	}
	return false
}

func (s *Service) Create(ctx context.Context, p *Patient) error {
	p.FullName = strings.TrimSpace(p.FullName)
	if p.FullName == "" {
		return apperr.Validation("full_name", "is required")
	}
	if p.Birthday.IsZero() {
		return apperr.Validation("birthday", "is required")
	}
	if p.Gender != nil && *p.Gender != GenderMan && *p.Gender != GenderWoman {
		return apperr.Validation("gender", "must be man or woman")
	}
	if p.Phone != nil {
		normalized, err := s.phones.Normalize(*p.Phone)
		if err != nil {
			return apperr.Validation("phone_number", err.Error())
		}
		p.Phone = &normalized
	}
	if p.SecondaryPhone != nil {
		normalized, err := s.phones.Normalize(*p.SecondaryPhone)
		if err != nil {
			return apperr.Validation("secondary_phone", err.Error())
		}
		p.SecondaryPhone = &normalized
	}
	if p.BookingType == "" {
		p.BookingType = BookingWalkIn
	}
	if !validBookingType(p.BookingType) {
		return apperr.Validation("booking_type", "must be online, walk-in queue or cancelled")
	}
	if err := s.checkRefs(ctx, p.DepartmentID, p.ServiceID, p.SlotIDs); err != nil {
		return err
	}
	if err := s.checkStaff(ctx, p.DoctorID, p.ReceptionID); err != nil {
		return err
	}
	return s.repo.Create(ctx, p)
}

// Update applies the mutable surface only: department, service, slots,
// booking type, created date.
func (s *Service) Update(ctx context.Context, id uuid.UUID, in *UpdateInput) (*Patient, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !validBookingType(in.BookingType) {
		return nil, apperr.Validation("booking_type", "must be online, walk-in queue or cancelled")
	}
	if err := s.checkRefs(ctx, in.DepartmentID, in.ServiceID, in.SlotIDs); err != nil {
		return nil, err
	}
	p.DepartmentID = in.DepartmentID
	p.ServiceID = in.ServiceID
	p.SlotIDs = in.SlotIDs
	p.BookingType = in.BookingType
	if in.CreatedAt != nil {
		p.CreatedAt = *in.CreatedAt
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	return s.repo.List(ctx, limit, offset)
}

func (s *Service) ListSafe(ctx context.Context, limit, offset int) ([]*SafeView, int, error) {
	return s.repo.ListSafe(ctx, limit, offset)
}

func (s *Service) ListForDoctor(ctx context.Context, limit, offset int) ([]*DoctorView, int, error) {
	return s.repo.ListForDoctor(ctx, limit, offset)
}

func (s *Service) checkRefs(ctx context.Context, departmentID, serviceID uuid.UUID, slotIDs []uuid.UUID) error {
	ok, err := s.departments.Exists(ctx, departmentID)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.Validation("department_id", "department does not exist")
	}
	ok, err = s.services.Exists(ctx, serviceID)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.Validation("service_id", "service does not exist")
	}
	for _, sid := range slotIDs {
		ok, err := s.slots.Exists(ctx, sid)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.Validation("slot_ids", "recording time does not exist")
		}
	}
	return nil
}

func (s *Service) checkStaff(ctx context.Context, doctorID, receptionID uuid.UUID) error {
	ok, err := s.staff.ExistsWithRole(ctx, doctorID, "doctor")
	if err != nil {
		return err
	}
	if !ok {
		return apperr.Validation("doctor_id", "doctor does not exist")
	}
	ok, err = s.staff.ExistsWithRole(ctx, receptionID, "reception")
	if err != nil {
		return err
	}
	if !ok {
		return apperr.Validation("reception_id", "reception does not exist")
	}
	return nil
}
