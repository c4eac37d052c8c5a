package room

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, r *Room) error
	GetByID(ctx context.Context, id uuid.UUID) (*Room, error)
	Update(ctx context.Context, r *Room) error
	Delete(ctx context.Context, id uuid.UUID) error
	// ListActive returns active rooms ordered by name.
	ListActive(ctx context.Context) ([]*Room, error)
	List(ctx context.Context) ([]*Room, error)
}
