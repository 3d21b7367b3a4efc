package organization

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	// GetByID is the hierarchy lookup the tenant resolver depends on. It is a
	// pure read and must work without an ambient transaction.
	GetByID(ctx context.Context, id uuid.UUID) (*Organization, error)
	GetChildren(ctx context.Context, parentID uuid.UUID) ([]*Organization, error)
	Create(ctx context.Context, org *Organization) (*Organization, error)
	Update(ctx context.Context, org *Organization) (*Organization, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*Organization, error)
}
