package slot

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

func (r *repoPG) Create(ctx context.Context, rt *RecordingTime) error {
	rt.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx,
		`INSERT INTO recording_time (id, shift_start, shift_end) VALUES ($1, $2, $3)`,
		rt.ID, rt.ShiftStart, rt.ShiftEnd,
	)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*RecordingTime, error) {
	var rt RecordingTime
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT id, shift_start, shift_end FROM recording_time WHERE id = $1`, id,
	).Scan(&rt.ID, &rt.ShiftStart, &rt.ShiftEnd)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rt, nil
}

func (r *repoPG) Update(ctx context.Context, rt *RecordingTime) error {
	tag, err := r.conn(ctx).Exec(ctx,
		`UPDATE recording_time SET shift_start = $2, shift_end = $3 WHERE id = $1`,
		rt.ID, rt.ShiftStart, rt.ShiftEnd,
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
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM recording_time WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*RecordingTime, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM recording_time`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT id, shift_start, shift_end FROM recording_time ORDER BY shift_start LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var slots []*RecordingTime
	for rows.Next() {
		var rt RecordingTime
		if err := rows.Scan(&rt.ID, &rt.ShiftStart, &rt.ShiftEnd); err != nil {
			return nil, 0, err
		}
		slots = append(slots, &rt)
	}
	return slots, total, rows.Err()
}

func (r *repoPG) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM recording_time WHERE id = $1)`, id,
	).Scan(&exists)
	return exists, err
}
