package account

import (
	"context"
	"errors"
	"strings"
	"time"

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

// uniqueConflict maps a 23505 to the conflicting field by constraint name.
func uniqueConflict(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23505" {
		return err
	}
	if strings.Contains(pgErr.ConstraintName, "phone") {
		return apperr.Conflict("phone_number")
	}
	return apperr.Conflict("email")
}

// Create inserts the account row and its specialty links in one
// transaction unless the caller already opened one.
func (r *repoPG) Create(ctx context.Context, a *Account) error {
	if db.TxFromContext(ctx) != nil {
		return r.create(ctx, a)
	}
	return db.WithTx(ctx, r.pool, func(ctx context.Context) error {
		return r.create(ctx, a)
	})
}

func (r *repoPG) create(ctx context.Context, a *Account) error {
	a.ID = uuid.New()
	a.CreatedDate = time.Now().UTC()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO account (id, full_name, email, role, phone_number, profile_picture,
		                     age, experience, department_id, bonus, created_date, password_hash)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		a.ID, a.FullName, a.Email, a.Role, a.Phone, a.ProfilePicture,
		a.Age, a.Experience, a.DepartmentID, a.Bonus, a.CreatedDate, a.PasswordHash,
	)
	if err != nil {
		return uniqueConflict(err)
	}
	return r.insertSpecialties(ctx, a.ID, a.SpecialtyIDs)
}

func (r *repoPG) insertSpecialties(ctx context.Context, accountID uuid.UUID, specialtyIDs []uuid.UUID) error {
	for _, sid := range specialtyIDs {
		_, err := r.conn(ctx).Exec(ctx,
			`INSERT INTO account_specialty (account_id, specialty_id) VALUES ($1, $2)`,
			accountID, sid,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

const accountColumns = `id, full_name, email, role, phone_number, profile_picture,
	age, experience, department_id, bonus, created_date, password_hash`

func scanAccount(row pgx.Row) (*Account, error) {
	var a Account
	err := row.Scan(&a.ID, &a.FullName, &a.Email, &a.Role, &a.Phone, &a.ProfilePicture,
		&a.Age, &a.Experience, &a.DepartmentID, &a.Bonus, &a.CreatedDate, &a.PasswordHash)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Account, error) {
	a, err := scanAccount(r.conn(ctx).QueryRow(ctx,
		`SELECT `+accountColumns+` FROM account WHERE id = $1`, id))
	if err != nil {
		return nil, err
	}
	if err := r.loadSpecialties(ctx, []*Account{a}); err != nil {
		return nil, err
	}
	return a, nil
}

func (r *repoPG) GetByEmail(ctx context.Context, email string) (*Account, error) {
	a, err := scanAccount(r.conn(ctx).QueryRow(ctx,
		`SELECT `+accountColumns+` FROM account WHERE email = $1`, email))
	if err != nil {
		return nil, err
	}
	if err := r.loadSpecialties(ctx, []*Account{a}); err != nil {
		return nil, err
	}
	return a, nil
}

// Update rewrites the mutable columns and replaces the specialty set.
// created_date and password_hash are left untouched.
func (r *repoPG) Update(ctx context.Context, a *Account) error {
	if db.TxFromContext(ctx) != nil {
		return r.update(ctx, a)
	}
	return db.WithTx(ctx, r.pool, func(ctx context.Context) error {
		return r.update(ctx, a)
	})
}

func (r *repoPG) update(ctx context.Context, a *Account) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE account
		SET full_name = $2, email = $3, role = $4, phone_number = $5,
		    profile_picture = $6, age = $7, experience = $8,
		    department_id = $9, bonus = $10
		WHERE id = $1`,
		a.ID, a.FullName, a.Email, a.Role, a.Phone,
		a.ProfilePicture, a.Age, a.Experience, a.DepartmentID, a.Bonus,
	)
	if err != nil {
		return uniqueConflict(err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.ErrNotFound
	}
	if _, err := r.conn(ctx).Exec(ctx,
		`DELETE FROM account_specialty WHERE account_id = $1`, a.ID); err != nil {
		return err
	}
	return r.insertSpecialties(ctx, a.ID, a.SpecialtyIDs)
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM account WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (r *repoPG) ListByRole(ctx context.Context, role string, limit, offset int) ([]*Account, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM account WHERE role = $1`, role).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+accountColumns+` FROM account WHERE role = $1 ORDER BY full_name LIMIT $2 OFFSET $3`,
		role, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var accounts []*Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, 0, err
		}
		accounts = append(accounts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	if err := r.loadSpecialties(ctx, accounts); err != nil {
		return nil, 0, err
	}
	return accounts, total, nil
}

func (r *repoPG) loadSpecialties(ctx context.Context, accounts []*Account) error {
	if len(accounts) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, len(accounts))
	byID := make(map[uuid.UUID]*Account, len(accounts))
	for i, a := range accounts {
		ids[i] = a.ID
		byID[a.ID] = a
	}
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT account_id, specialty_id FROM account_specialty WHERE account_id = ANY($1)`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var accountID, specialtyID uuid.UUID
		if err := rows.Scan(&accountID, &specialtyID); err != nil {
			return err
		}
		a := byID[accountID]
		a.SpecialtyIDs = append(a.SpecialtyIDs, specialtyID)
	}
	return rows.Err()
}

func (r *repoPG) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM account WHERE id = $1)`, id,
	).Scan(&exists)
	return exists, err
}

func (r *repoPG) ExistsWithRole(ctx context.Context, id uuid.UUID, role string) (bool, error) {
	var exists bool
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM account WHERE id = $1 AND role = $2)`, id, role,
	).Scan(&exists)
	return exists, err
}
