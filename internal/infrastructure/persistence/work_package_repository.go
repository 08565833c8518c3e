package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/workplan/backend/internal/domain/shared"
	"github.com/workplan/backend/internal/domain/workpackage"
)

// GormWorkPackageRepository implements workpackage.Repository using GORM
type GormWorkPackageRepository struct {
	db *gorm.DB
}

// NewGormWorkPackageRepository creates a new GormWorkPackageRepository
func NewGormWorkPackageRepository(db *gorm.DB) *GormWorkPackageRepository {
	return &GormWorkPackageRepository{db: db}
}

// Save creates or updates a work package
func (r *GormWorkPackageRepository) Save(ctx context.Context, wp *workpackage.WorkPackage) error {
	return r.db.WithContext(ctx).Save(wp).Error
}

// SaveAll persists a batch of work packages in a single transaction
func (r *GormWorkPackageRepository) SaveAll(ctx context.Context, wps []*workpackage.WorkPackage) error {
	if len(wps) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, wp := range wps {
			if err := tx.Save(wp).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// FindByID finds a work package by ID within a project
func (r *GormWorkPackageRepository) FindByID(ctx context.Context, projectID, id uuid.UUID) (*workpackage.WorkPackage, error) {
	var wp workpackage.WorkPackage
	if err := r.db.WithContext(ctx).
		Where("project_id = ? AND id = ?", projectID, id).
		First(&wp).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &wp, nil
}

// FindAllByProject returns all work packages of a project in a stable order.
// Insertion order decides sibling order, so ordering by created_at with id as
// tiebreaker keeps tree construction deterministic.
func (r *GormWorkPackageRepository) FindAllByProject(ctx context.Context, projectID uuid.UUID, includeArchived bool) ([]workpackage.WorkPackage, error) {
	var wps []workpackage.WorkPackage
	query := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at ASC, id ASC")
	if !includeArchived {
		query = query.Where("archived = ?", false)
	}
	if err := query.Find(&wps).Error; err != nil {
		return nil, err
	}
	return wps, nil
}

// FindChildren finds all direct children of a work package
func (r *GormWorkPackageRepository) FindChildren(ctx context.Context, projectID, parentID uuid.UUID) ([]workpackage.WorkPackage, error) {
	var wps []workpackage.WorkPackage
	if err := r.db.WithContext(ctx).
		Where("project_id = ? AND parent_id = ?", projectID, parentID).
		Order("created_at ASC, id ASC").
		Find(&wps).Error; err != nil {
		return nil, err
	}
	return wps, nil
}

// CountByProject counts work packages in a project
func (r *GormWorkPackageRepository) CountByProject(ctx context.Context, projectID uuid.UUID, includeArchived bool) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).
		Model(&workpackage.WorkPackage{}).
		Where("project_id = ?", projectID)
	if !includeArchived {
		query = query.Where("archived = ?", false)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// UnlinkChildren promotes all direct children of a parent to roots and
// returns how many rows were updated.
func (r *GormWorkPackageRepository) UnlinkChildren(ctx context.Context, projectID, parentID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&workpackage.WorkPackage{}).
		Where("project_id = ? AND parent_id = ?", projectID, parentID).
		Update("parent_id", nil)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// Delete deletes a work package within a project
func (r *GormWorkPackageRepository) Delete(ctx context.Context, projectID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Delete(&workpackage.WorkPackage{}, "project_id = ? AND id = ?", projectID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormWorkPackageRepository implements workpackage.Repository
var _ workpackage.Repository = (*GormWorkPackageRepository)(nil)
