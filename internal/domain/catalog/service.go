package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/clinic/crm/internal/platform/apperr"
)

// DepartmentChecker is the slice of the department store the catalog needs:
// reference validation only. Wired in main.go.
type DepartmentChecker interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

// Catalog owns the service catalog: the joined list read path and writes
// with a configurable price ceiling.
type Catalog struct {
	repo        Repository
	departments DepartmentChecker
	priceMax    int
}

func NewCatalog(repo Repository, departments DepartmentChecker, priceMax int) *Catalog {
	return &Catalog{repo: repo, departments: departments, priceMax: priceMax}
}

func (c *Catalog) Create(ctx context.Context, s *Service) error {
	if err := c.validate(ctx, s); err != nil {
		return err
	}
	return c.repo.Create(ctx, s)
}

func (c *Catalog) Get(ctx context.Context, id uuid.UUID) (*Service, error) {
	return c.repo.GetByID(ctx, id)
}

func (c *Catalog) Update(ctx context.Context, s *Service) error {
	if err := c.validate(ctx, s); err != nil {
		return err
	}
	return c.repo.Update(ctx, s)
}

func (c *Catalog) Delete(ctx context.Context, id uuid.UUID) error {
	return c.repo.Delete(ctx, id)
}

// List returns every service joined with its owning department's
// name/floor/cabinet.
func (c *Catalog) List(ctx context.Context, limit, offset int) ([]*ServiceWithDepartment, int, error) {
	return c.repo.ListWithDepartment(ctx, limit, offset)
}

func (c *Catalog) validate(ctx context.Context, s *Service) error {
	s.Name = strings.TrimSpace(s.Name)
	if s.Name == "" {
		return apperr.Validation("service_name", "is required")
	}
	if s.Price < 0 {
		return apperr.Validation("service_price", "must not be negative")
	}
	if s.Price > c.priceMax {
		return apperr.Validation("service_price", fmt.Sprintf("must not exceed %d", c.priceMax))
	}
	if s.DepartmentID == uuid.Nil {
		return apperr.Validation("department_id", "is required")
	}
	ok, err := c.departments.Exists(ctx, s.DepartmentID)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.Validation("department_id", "department does not exist")
	}
	return nil
}
