package staff

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spa/spa/internal/platform/db"
	"github.com/spa/spa/pkg/timerange"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

// =========== Therapist Repository ===========

type therapistRepoPG struct{ pool *pgxpool.Pool }

func NewTherapistRepoPG(pool *pgxpool.Pool) TherapistRepository { return &therapistRepoPG{pool: pool} }

func (r *therapistRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const therapistCols = `id, full_name, phone, specialty, active, created_at, updated_at`

func scanTherapist(row pgx.Row) (*Therapist, error) {
	var t Therapist
	err := row.Scan(&t.ID, &t.FullName, &t.Phone, &t.Specialty, &t.Active, &t.CreatedAt, &t.UpdatedAt)
	return &t, err
}

func (r *therapistRepoPG) Create(ctx context.Context, t *Therapist) error {
	t.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO therapists (id, full_name, phone, specialty, active)
		VALUES ($1,$2,$3,$4,$5)`,
		t.ID, t.FullName, t.Phone, t.Specialty, t.Active)
	return err
}

func (r *therapistRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Therapist, error) {
	return scanTherapist(r.conn(ctx).QueryRow(ctx, `SELECT `+therapistCols+` FROM therapists WHERE id = $1`, id))
}

func (r *therapistRepoPG) Update(ctx context.Context, t *Therapist) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE therapists SET full_name=$2, phone=$3, specialty=$4, active=$5, updated_at=NOW()
		WHERE id = $1`,
		t.ID, t.FullName, t.Phone, t.Specialty, t.Active)
	return err
}

func (r *therapistRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM therapists WHERE id = $1`, id)
	return err
}

func (r *therapistRepoPG) List(ctx context.Context, activeOnly bool) ([]*Therapist, error) {
	query := `SELECT ` + therapistCols + ` FROM therapists`
	if activeOnly {
		query += ` WHERE active`
	}
	query += ` ORDER BY full_name`

	rows, err := r.conn(ctx).Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Therapist
	for rows.Next() {
		t, err := scanTherapist(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, t)
	}
	return items, nil
}

// =========== Shift Repository ===========

type shiftRepoPG struct{ pool *pgxpool.Pool }

func NewShiftRepoPG(pool *pgxpool.Pool) ShiftRepository { return &shiftRepoPG{pool: pool} }

func (r *shiftRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const shiftCols = `id, therapist_id, shift_date, start_minute, end_minute, status, created_at, updated_at`

func scanShift(row pgx.Row) (*Shift, error) {
	var s Shift
	err := row.Scan(&s.ID, &s.TherapistID, &s.ShiftDate, &s.StartMinute, &s.EndMinute, &s.Status, &s.CreatedAt, &s.UpdatedAt)
	return &s, err
}

func (r *shiftRepoPG) Upsert(ctx context.Context, s *Shift) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO work_shifts (id, therapist_id, shift_date, start_minute, end_minute, status)
		VALUES ($1,$2,$3,$4,$5,$6)
		ON CONFLICT (therapist_id, shift_date)
		DO UPDATE SET start_minute=EXCLUDED.start_minute, end_minute=EXCLUDED.end_minute,
			status=EXCLUDED.status, updated_at=NOW()`,
		s.ID, s.TherapistID, s.ShiftDate, s.StartMinute, s.EndMinute, s.Status)
	return err
}

func (r *shiftRepoPG) GetForDate(ctx context.Context, therapistID uuid.UUID, date time.Time) (*Shift, error) {
	return scanShift(r.conn(ctx).QueryRow(ctx, `
		SELECT `+shiftCols+` FROM work_shifts
		WHERE therapist_id = $1 AND shift_date = $2`,
		therapistID, date))
}

func (r *shiftRepoPG) ListByTherapist(ctx context.Context, therapistID uuid.UUID, from, to time.Time) ([]*Shift, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+shiftCols+` FROM work_shifts
		WHERE therapist_id = $1 AND shift_date BETWEEN $2 AND $3
		ORDER BY shift_date`,
		therapistID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Shift
	for rows.Next() {
		s, err := scanShift(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, s)
	}
	return items, nil
}

func (r *shiftRepoPG) ListWorkingOn(ctx context.Context, date time.Time) ([]RosterEntry, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT w.therapist_id, t.full_name, w.start_minute, w.end_minute
		FROM work_shifts w
		JOIN therapists t ON t.id = w.therapist_id
		WHERE w.shift_date = $1 AND w.status = 'WORKING' AND t.active
		ORDER BY t.full_name`,
		date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var entries []RosterEntry
	for rows.Next() {
		var e RosterEntry
		var start, end int
		if err := rows.Scan(&e.TherapistID, &e.TherapistName, &start, &end); err != nil {
			return nil, err
		}
		e.Window = timerange.Range{Start: start, End: end}
		entries = append(entries, e)
	}
	return entries, nil
}

func (r *shiftRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM work_shifts WHERE id = $1`, id)
	return err
}
