package catalog

import (
	"context"

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

// =========== Service Repository ===========

type serviceRepoPG struct{ pool *pgxpool.Pool }

func NewServiceRepoPG(pool *pgxpool.Pool) ServiceRepository { return &serviceRepoPG{pool: pool} }

func (r *serviceRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const svcCols = `id, name, category, description, active, created_at, updated_at`

func scanService(row pgx.Row) (*SpaService, error) {
	var s SpaService
	err := row.Scan(&s.ID, &s.Name, &s.Category, &s.Description, &s.Active, &s.CreatedAt, &s.UpdatedAt)
	return &s, err
}

func (r *serviceRepoPG) Create(ctx context.Context, s *SpaService) error {
	s.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO services (id, name, category, description, active)
		VALUES ($1,$2,$3,$4,$5)`,
		s.ID, s.Name, s.Category, s.Description, s.Active)
	return err
}

func (r *serviceRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*SpaService, error) {
	return scanService(r.conn(ctx).QueryRow(ctx, `SELECT `+svcCols+` FROM services WHERE id = $1`, id))
}

func (r *serviceRepoPG) Update(ctx context.Context, s *SpaService) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE services SET name=$2, category=$3, description=$4, active=$5, updated_at=NOW()
		WHERE id = $1`,
		s.ID, s.Name, s.Category, s.Description, s.Active)
	return err
}

func (r *serviceRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM services WHERE id = $1`, id)
	return err
}

func (r *serviceRepoPG) List(ctx context.Context, activeOnly bool) ([]*SpaService, error) {
	query := `SELECT ` + svcCols + ` FROM services`
	if activeOnly {
		query += ` WHERE active`
	}
	query += ` ORDER BY category NULLS LAST, name`

	rows, err := r.conn(ctx).Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*SpaService
	for rows.Next() {
		s, err := scanService(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, s)
	}
	return items, nil
}

// =========== Variant Repository ===========

type variantRepoPG struct{ pool *pgxpool.Pool }

func NewVariantRepoPG(pool *pgxpool.Pool) VariantRepository { return &variantRepoPG{pool: pool} }

func (r *variantRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const varCols = `id, service_id, duration_minutes, regular_price, promo_price, active, created_at, updated_at`

func scanVariant(row pgx.Row) (*Variant, error) {
	var v Variant
	err := row.Scan(&v.ID, &v.ServiceID, &v.DurationMinutes, &v.RegularPrice, &v.PromoPrice,
		&v.Active, &v.CreatedAt, &v.UpdatedAt)
	return &v, err
}

func (r *variantRepoPG) Create(ctx context.Context, v *Variant) error {
	v.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO service_variants (id, service_id, duration_minutes, regular_price, promo_price, active)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		v.ID, v.ServiceID, v.DurationMinutes, v.RegularPrice, v.PromoPrice, v.Active)
	return err
}

func (r *variantRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Variant, error) {
	return scanVariant(r.conn(ctx).QueryRow(ctx, `SELECT `+varCols+` FROM service_variants WHERE id = $1`, id))
}

func (r *variantRepoPG) Update(ctx context.Context, v *Variant) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE service_variants SET duration_minutes=$2, regular_price=$3, promo_price=$4, active=$5, updated_at=NOW()
		WHERE id = $1`,
		v.ID, v.DurationMinutes, v.RegularPrice, v.PromoPrice, v.Active)
	return err
}

func (r *variantRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM service_variants WHERE id = $1`, id)
	return err
}

func (r *variantRepoPG) ListByService(ctx context.Context, serviceID uuid.UUID) ([]*Variant, error) {
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+varCols+` FROM service_variants WHERE service_id = $1 ORDER BY duration_minutes`, serviceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Variant
	for rows.Next() {
		v, err := scanVariant(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, v)
	}
	return items, nil
}
