package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinic/crm/internal/platform/apperr"
	"github.com/clinic/crm/internal/platform/db"
)

type repoPG struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

type querier interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

func (r *repoPG) conn(ctx context.Context) querier {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

func (r *repoPG) Create(ctx context.Context, s *Service) error {
	s.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx,
		`INSERT INTO service (id, service_name, service_price, department_id) VALUES ($1, $2, $3, $4)`,
		s.ID, s.Name, s.Price, s.DepartmentID,
	)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Service, error) {
	var s Service
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT id, service_name, service_price, department_id FROM service WHERE id = $1`, id,
	).Scan(&s.ID, &s.Name, &s.Price, &s.DepartmentID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repoPG) Update(ctx context.Context, s *Service) error {
	tag, err := r.conn(ctx).Exec(ctx,
		`UPDATE service SET service_name = $2, service_price = $3, department_id = $4 WHERE id = $1`,
		s.ID, s.Name, s.Price, s.DepartmentID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM service WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (r *repoPG) ListWithDepartment(ctx context.Context, limit, offset int) ([]*ServiceWithDepartment, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM service`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT s.id, s.service_name, s.service_price,
		       d.department_name, d.floor, d.cabinet
		FROM service s
		JOIN department d ON d.id = s.department_id
		ORDER BY s.service_name
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var services []*ServiceWithDepartment
	for rows.Next() {
		var s ServiceWithDepartment
		if err := rows.Scan(&s.ID, &s.Name, &s.Price,
			&s.Department.Name, &s.Department.Floor, &s.Department.Cabinet); err != nil {
			return nil, 0, err
		}
		services = append(services, &s)
	}
	return services, total, rows.Err()
}

func (r *repoPG) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM service WHERE id = $1)`, id,
	).Scan(&exists)
	return exists, err
}
