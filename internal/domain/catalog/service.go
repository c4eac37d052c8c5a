package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

type Service struct {
	services ServiceRepository
	variants VariantRepository
}

func NewService(services ServiceRepository, variants VariantRepository) *Service {
	return &Service{services: services, variants: variants}
}

// -- Services --

func (s *Service) CreateService(ctx context.Context, svc *SpaService) error {
	svc.Name = strings.TrimSpace(svc.Name)
	if svc.Name == "" {
		return fmt.Errorf("name is required")
	}
	return s.services.Create(ctx, svc)
}

func (s *Service) GetService(ctx context.Context, id uuid.UUID) (*SpaService, error) {
	return s.services.GetByID(ctx, id)
}

func (s *Service) UpdateService(ctx context.Context, svc *SpaService) error {
	svc.Name = strings.TrimSpace(svc.Name)
	if svc.Name == "" {
		return fmt.Errorf("name is required")
	}
	return s.services.Update(ctx, svc)
}

func (s *Service) DeleteService(ctx context.Context, id uuid.UUID) error {
	return s.services.Delete(ctx, id)
}

func (s *Service) ListServices(ctx context.Context, activeOnly bool) ([]*SpaService, error) {
	return s.services.List(ctx, activeOnly)
}

// -- Variants --

func (s *Service) CreateVariant(ctx context.Context, v *Variant) error {
	if v.ServiceID == uuid.Nil {
		return fmt.Errorf("service_id is required")
	}
	if v.DurationMinutes <= 0 {
		return fmt.Errorf("duration_minutes must be positive")
	}
	if v.RegularPrice < 0 {
		return fmt.Errorf("regular_price must not be negative")
	}
	if v.PromoPrice != nil && *v.PromoPrice < 0 {
		return fmt.Errorf("promo_price must not be negative")
	}
	if _, err := s.services.GetByID(ctx, v.ServiceID); err != nil {
		return fmt.Errorf("service not found")
	}
	return s.variants.Create(ctx, v)
}

func (s *Service) GetVariant(ctx context.Context, id uuid.UUID) (*Variant, error) {
	return s.variants.GetByID(ctx, id)
}

func (s *Service) UpdateVariant(ctx context.Context, v *Variant) error {
	if v.DurationMinutes <= 0 {
		return fmt.Errorf("duration_minutes must be positive")
	}
	if v.RegularPrice < 0 {
		return fmt.Errorf("regular_price must not be negative")
	}
	if v.PromoPrice != nil && *v.PromoPrice < 0 {
		return fmt.Errorf("promo_price must not be negative")
	}
	return s.variants.Update(ctx, v)
}

func (s *Service) DeleteVariant(ctx context.Context, id uuid.UUID) error {
	return s.variants.Delete(ctx, id)
}

func (s *Service) ListVariants(ctx context.Context, serviceID uuid.UUID) ([]*Variant, error) {
	return s.variants.ListByService(ctx, serviceID)
}
