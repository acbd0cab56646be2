package account

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"github.com/google/uuid"

	"github.com/clinic/crm/internal/platform/apperr"
	"github.com/clinic/crm/internal/platform/auth"
	"github.com/clinic/crm/internal/platform/phone"
)

type DepartmentChecker interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

type SpecialtyChecker interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

// Service owns the staff directory and the auth flows. Register doubles as
// a login; Logout revokes a single refresh token by jti.
type Service struct {
	repo        Repository
	issuer      *auth.TokenIssuer
	denylist    auth.Denylist
	phones      *phone.Validator
	departments DepartmentChecker
	specialties SpecialtyChecker
}

func NewService(repo Repository, issuer *auth.TokenIssuer, denylist auth.Denylist,
	phones *phone.Validator, departments DepartmentChecker, specialties SpecialtyChecker) *Service {
	return &Service{
		repo:        repo,
		issuer:      issuer,
		denylist:    denylist,
		phones:      phones,
		departments: departments,
		specialties: specialties,
	}
}

// Register stores a new staff account and issues its first token pair.
// Email and phone uniqueness is enforced by the database constraints, not
// by a lookup race.
func (s *Service) Register(ctx context.Context, a *Account, password string) (*AuthResult, error) {
	if err := s.validate(ctx, a); err != nil {
		return nil, err
	}
	if len(password) < 8 {
		return nil, apperr.Validation("password", "must be at least 8 characters")
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}
	a.PasswordHash = hash
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	pair, err := s.issuer.IssuePair(a.ID, a.Role)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: a, Access: pair.Access, Refresh: pair.Refresh}, nil
}

// Login authenticates by email and password. Every failure surfaces the
// same ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	a, err := s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, apperr.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !auth.CheckPassword(a.PasswordHash, password) {
		return nil, apperr.ErrInvalidCredentials
	}
	pair, err := s.issuer.IssuePair(a.ID, a.Role)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: a, Access: pair.Access, Refresh: pair.Refresh}, nil
}

// Logout denylists the refresh token's jti until its natural expiry.
// A malformed or already-revoked token is a validation error.
func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	claims, err := s.issuer.Parse(refreshToken, auth.TokenTypeRefresh)
	if err != nil {
		return apperr.Validation("refresh_token", "is invalid or expired")
	}
	revoked, err := s.denylist.IsRevoked(ctx, claims.ID)
	if err != nil {
		return err
	}
	if revoked {
		return apperr.Validation("refresh_token", "is already revoked")
	}
	return s.denylist.Revoke(ctx, claims.ID, claims.ExpiresAt.Time)
}

// Refresh mints a new access token from a live refresh token. Revoked and
// expired tokens fail uniformly.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.issuer.Parse(refreshToken, auth.TokenTypeRefresh)
	if err != nil {
		return "", apperr.ErrInvalidCredentials
	}
	revoked, err := s.denylist.IsRevoked(ctx, claims.ID)
	if err != nil {
		return "", err
	}
	if revoked {
		return "", apperr.ErrInvalidCredentials
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return "", apperr.ErrInvalidCredentials
	}
	return s.issuer.IssueAccess(userID, claims.Role)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Account, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, a *Account) error {
	if err := s.validate(ctx, a); err != nil {
		return err
	}
	return s.repo.Update(ctx, a)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) ListByRole(ctx context.Context, role string, limit, offset int) ([]*Account, int, error) {
	if !ValidRole(role) {
		return nil, 0, apperr.Validation("role", "must be doctor, reception or admin")
	}
	return s.repo.ListByRole(ctx, role, limit, offset)
}

func (s *Service) validate(ctx context.Context, a *Account) error {
	a.FullName = strings.TrimSpace(a.FullName)
	if a.FullName == "" {
		return apperr.Validation("full_name", "is required")
	}
	a.Email = strings.ToLower(strings.TrimSpace(a.Email))
	if _, err := mail.ParseAddress(a.Email); err != nil {
		return apperr.Validation("email", "is not a valid address")
	}
	if !ValidRole(a.Role) {
		return apperr.Validation("role", "must be doctor, reception or admin")
	}
	if a.Phone != nil {
		normalized, err := s.phones.Normalize(*a.Phone)
		if err != nil {
			return apperr.Validation("phone_number", err.Error())
		}
		a.Phone = &normalized
	}
	if a.Age != nil && (*a.Age < 18 || *a.Age > 110) {
		return apperr.Validation("age", "must be between 18 and 110")
	}
	if a.Experience != nil && (*a.Experience < 0 || *a.Experience > 70) {
		return apperr.Validation("experience", "must be between 0 and 70")
	}
	if a.Bonus != nil && *a.Bonus < 0 {
		return apperr.Validation("bonus", "must not be negative")
	}
	if a.DepartmentID != nil {
		ok, err := s.departments.Exists(ctx, *a.DepartmentID)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.Validation("department_id", "department does not exist")
		}
	}
	for _, sid := range a.SpecialtyIDs {
		ok, err := s.specialties.Exists(ctx, sid)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.Validation("specialty_ids", "specialty does not exist")
		}
	}
	return nil
}
