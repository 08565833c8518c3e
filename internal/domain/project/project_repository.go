package project

import (
	"context"

	"github.com/google/uuid"
	"github.com/workplan/backend/internal/domain/shared"
)

// Repository defines project persistence operations
type Repository interface {
	Save(ctx context.Context, p *Project) error
	FindByID(ctx context.Context, id uuid.UUID) (*Project, error)
	FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[Project], error)
	Delete(ctx context.Context, id uuid.UUID) error
	ExistsByName(ctx context.Context, name string) (bool, error)
}
