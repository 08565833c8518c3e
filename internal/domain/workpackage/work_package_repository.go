package workpackage

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines work package persistence operations. List results
// come back in creation order so tree building and flattening stay
// deterministic across reads.
type Repository interface {
	Save(ctx context.Context, wp *WorkPackage) error
	FindByID(ctx context.Context, projectID, id uuid.UUID) (*WorkPackage, error)
	FindAllByProject(ctx context.Context, projectID uuid.UUID, includeArchived bool) ([]WorkPackage, error)
	FindChildren(ctx context.Context, projectID, parentID uuid.UUID) ([]WorkPackage, error)
	CountByProject(ctx context.Context, projectID uuid.UUID, includeArchived bool) (int64, error)
	// UnlinkChildren promotes all direct children of the given parent to
	// roots in one statement. Returns the number of rows touched.
	UnlinkChildren(ctx context.Context, projectID, parentID uuid.UUID) (int64, error)
	Delete(ctx context.Context, projectID, id uuid.UUID) error
	SaveAll(ctx context.Context, wps []*WorkPackage) error
}
