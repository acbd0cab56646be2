package patient

import (
	"context"
	"errors"
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

// Create writes the booking row and its slot links in one transaction.
// Any failure writes nothing.
func (r *repoPG) Create(ctx context.Context, p *Patient) error {
	if db.TxFromContext(ctx) != nil {
		return r.create(ctx, p)
	}
	return db.WithTx(ctx, r.pool, func(ctx context.Context) error {
		return r.create(ctx, p)
	})
}

func (r *repoPG) create(ctx context.Context, p *Patient) error {
	p.ID = uuid.New()
	p.CreatedAt = time.Now().UTC()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO patient (id, full_name, birthday, gender, phone_number, secondary_phone,
		                     department_id, service_id, doctor_id, reception_id,
		                     booking_type, medical_history, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		p.ID, p.FullName, p.Birthday, p.Gender, p.Phone, p.SecondaryPhone,
		p.DepartmentID, p.ServiceID, p.DoctorID, p.ReceptionID,
		p.BookingType, p.MedicalHistory, p.CreatedAt,
	)
	if err != nil {
		return err
	}
	return r.insertSlots(ctx, p.ID, p.SlotIDs)
}

func (r *repoPG) insertSlots(ctx context.Context, patientID uuid.UUID, slotIDs []uuid.UUID) error {
	for _, sid := range slotIDs {
		_, err := r.conn(ctx).Exec(ctx,
			`INSERT INTO patient_slot (patient_id, slot_id) VALUES ($1, $2)`,
			patientID, sid,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

const patientColumns = `id, full_name, birthday, gender, phone_number, secondary_phone,
	department_id, service_id, doctor_id, reception_id, booking_type, medical_history, created_at`

func scanPatient(row pgx.Row) (*Patient, error) {
	var p Patient
	err := row.Scan(&p.ID, &p.FullName, &p.Birthday, &p.Gender, &p.Phone, &p.SecondaryPhone,
		&p.DepartmentID, &p.ServiceID, &p.DoctorID, &p.ReceptionID,
		&p.BookingType, &p.MedicalHistory, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Patient, error) {
	p, err := scanPatient(r.conn(ctx).QueryRow(ctx,
		`SELECT `+patientColumns+` FROM patient WHERE id = $1`, id))
	if err != nil {
		return nil, err
	}
	if err := r.loadSlots(ctx, []*Patient{p}); err != nil {
		return nil, err
	}
	return p, nil
}

// Update rewrites only the mutable booking surface and replaces the slot
// links. Identity fields stay as created.
func (r *repoPG) Update(ctx context.Context, p *Patient) error {
	if db.TxFromContext(ctx) != nil {
		return r.update(ctx, p)
	}
	return db.WithTx(ctx, r.pool, func(ctx context.Context) error {
		return r.update(ctx, p)
	})
}

func (r *repoPG) update(ctx context.Context, p *Patient) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE patient
		SET department_id = $2, service_id = $3, booking_type = $4, created_at = $5
		WHERE id = $1`,
		p.ID, p.DepartmentID, p.ServiceID, p.BookingType, p.CreatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.ErrNotFound
	}
	if _, err := r.conn(ctx).Exec(ctx,
		`DELETE FROM patient_slot WHERE patient_id = $1`, p.ID); err != nil {
		return err
	}
	return r.insertSlots(ctx, p.ID, p.SlotIDs)
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM patient WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM patient`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+patientColumns+` FROM patient ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var patients []*Patient
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, 0, err
		}
		patients = append(patients, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	if err := r.loadSlots(ctx, patients); err != nil {
		return nil, 0, err
	}
	return patients, total, nil
}

func (r *repoPG) ListSafe(ctx context.Context, limit, offset int) ([]*SafeView, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM patient`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT id, full_name, gender, phone_number FROM patient ORDER BY full_name LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var views []*SafeView
	for rows.Next() {
		var v SafeView
		if err := rows.Scan(&v.ID, &v.FullName, &v.Gender, &v.Phone); err != nil {
			return nil, 0, err
		}
		views = append(views, &v)
	}
	return views, total, rows.Err()
}

func (r *repoPG) ListForDoctor(ctx context.Context, limit, offset int) ([]*DoctorView, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM patient`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT id, full_name, gender, phone_number, medical_history, created_at
		FROM patient ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var views []*DoctorView
	for rows.Next() {
		var v DoctorView
		if err := rows.Scan(&v.ID, &v.FullName, &v.Gender, &v.Phone, &v.MedicalHistory, &v.CreatedAt); err != nil {
			return nil, 0, err
		}
		views = append(views, &v)
	}
	return views, total, rows.Err()
}

func (r *repoPG) loadSlots(ctx context.Context, patients []*Patient) error {
	if len(patients) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, len(patients))
	byID := make(map[uuid.UUID]*Patient, len(patients))
	for i, p := range patients {
		ids[i] = p.ID
		byID[p.ID] = p
	}
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT patient_id, slot_id FROM patient_slot WHERE patient_id = ANY($1)`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var patientID, slotID uuid.UUID
		if err := rows.Scan(&patientID, &slotID); err != nil {
			return err
		}
		p := byID[patientID]
		p.SlotIDs = append(p.SlotIDs, slotID)
	}
	return rows.Err()
}

func (r *repoPG) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM patient WHERE id = $1)`, id,
	).Scan(&exists)
	return exists, err
}
