package scheduling

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spa/spa/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) ReservationRepository { return &repoPG{pool: pool} }

func (r *repoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const cols = `id, number, client_id, therapist_id, room_id, service_id, variant_id,
	reserved_date, start_minute, end_minute, status, payment_status, payment_method,
	price, source, notes, created_by, created_at, updated_at`

func scanReservation(row pgx.Row) (*Reservation, error) {
	var res Reservation
	err := row.Scan(&res.ID, &res.Number, &res.ClientID, &res.TherapistID, &res.RoomID,
		&res.ServiceID, &res.VariantID, &res.ReservedDate, &res.StartMinute, &res.EndMinute,
		&res.Status, &res.PaymentStatus, &res.PaymentMethod, &res.Price, &res.Source,
		&res.Notes, &res.CreatedBy, &res.CreatedAt, &res.UpdatedAt)
	return &res, err
}

func (r *repoPG) Create(ctx context.Context, res *Reservation) error {
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO reservations (id, number, client_id, therapist_id, room_id, service_id,
			variant_id, reserved_date, start_minute, end_minute, status, payment_status,
			payment_method, price, source, notes, created_by)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)`,
		res.ID, res.Number, res.ClientID, res.TherapistID, res.RoomID, res.ServiceID,
		res.VariantID, res.ReservedDate, res.StartMinute, res.EndMinute, res.Status,
		res.PaymentStatus, res.PaymentMethod, res.Price, res.Source, res.Notes, res.CreatedBy)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Reservation, error) {
	return scanReservation(r.conn(ctx).QueryRow(ctx, `SELECT `+cols+` FROM reservations WHERE id = $1`, id))
}

func (r *repoPG) GetByNumber(ctx context.Context, number string) (*Reservation, error) {
	return scanReservation(r.conn(ctx).QueryRow(ctx, `SELECT `+cols+` FROM reservations WHERE number = $1`, number))
}

func (r *repoPG) Update(ctx context.Context, res *Reservation) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE reservations SET therapist_id=$2, room_id=$3, reserved_date=$4,
			start_minute=$5, end_minute=$6, status=$7, payment_status=$8,
			payment_method=$9, notes=$10, updated_at=NOW()
		WHERE id = $1`,
		res.ID, res.TherapistID, res.RoomID, res.ReservedDate, res.StartMinute,
		res.EndMinute, res.Status, res.PaymentStatus, res.PaymentMethod, res.Notes)
	return err
}

func (r *repoPG) ListActiveForResource(ctx context.Context, res Resource, date time.Time) ([]*Reservation, error) {
	var column string
	switch res.Kind {
	case ResourceTherapist:
		column = "therapist_id"
	case ResourceRoom:
		column = "room_id"
	default:
		return nil, fmt.Errorf("unknown resource kind %q", res.Kind)
	}
	// The partial indexes on (therapist_id, reserved_date) and
	// (room_id, reserved_date) cover exactly this predicate.
	return r.list(ctx, `
		SELECT `+cols+` FROM reservations
		WHERE `+column+` = $1 AND reserved_date = $2
		  AND status IN ('NEW','CONFIRMED','IN_PROGRESS')
		ORDER BY start_minute`,
		res.ID, date)
}

func (r *repoPG) ListByDate(ctx context.Context, date time.Time) ([]*Reservation, error) {
	return r.list(ctx, `
		SELECT `+cols+` FROM reservations
		WHERE reserved_date = $1
		ORDER BY start_minute, created_at`,
		date)
}

func (r *repoPG) ListByClient(ctx context.Context, clientID uuid.UUID, limit, offset int) ([]*Reservation, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM reservations WHERE client_id = $1`, clientID).Scan(&total); err != nil {
		return nil, 0, err
	}
	items, err := r.list(ctx, `
		SELECT `+cols+` FROM reservations
		WHERE client_id = $1
		ORDER BY reserved_date DESC, start_minute DESC
		LIMIT $2 OFFSET $3`,
		clientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *repoPG) ListOverdueConfirmed(ctx context.Context, now time.Time) ([]*Reservation, error) {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	minute := now.Hour()*60 + now.Minute()
	return r.list(ctx, `
		SELECT `+cols+` FROM reservations
		WHERE status = 'CONFIRMED'
		  AND (reserved_date < $1 OR (reserved_date = $1 AND end_minute <= $2))
		ORDER BY reserved_date, start_minute`,
		day, minute)
}

func (r *repoPG) list(ctx context.Context, query string, args ...interface{}) ([]*Reservation, error) {
	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, res)
	}
	return items, nil
}
