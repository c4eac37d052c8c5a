package catalog

import (
	"context"

	"github.com/google/uuid"
)

type ServiceRepository interface {
	Create(ctx context.Context, s *SpaService) error
	GetByID(ctx context.Context, id uuid.UUID) (*SpaService, error)
	Update(ctx context.Context, s *SpaService) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, activeOnly bool) ([]*SpaService, error)
}

type VariantRepository interface {
	Create(ctx context.Context, v *Variant) error
	GetByID(ctx context.Context, id uuid.UUID) (*Variant, error)
	Update(ctx context.Context, v *Variant) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByService(ctx context.Context, serviceID uuid.UUID) ([]*Variant, error)
}
