package workpackage

import (
	"github.com/google/uuid"
	"github.com/workplan/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeWorkPackage = "WorkPackage"

// Event type constants
const (
	EventTypeWorkPackageCreated = "WorkPackageCreated"
	EventTypeWorkPackageUpdated = "WorkPackageUpdated"
	EventTypeWorkPackageMoved   = "WorkPackageMoved"
	EventTypeWorkPackageDeleted = "WorkPackageDeleted"
)

// WorkPackageCreatedEvent is published when a new work package is created
type WorkPackageCreatedEvent struct {
	shared.BaseDomainEvent
	WorkPackageID uuid.UUID  `json:"work_package_id"`
	Name          string     `json:"name"`
	ParentID      *uuid.UUID `json:"parent_id,omitempty"`
}

// NewWorkPackageCreatedEvent creates a new WorkPackageCreatedEvent
func NewWorkPackageCreatedEvent(wp *WorkPackage) *WorkPackageCreatedEvent {
	return &WorkPackageCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeWorkPackageCreated, AggregateTypeWorkPackage, wp.ID, wp.ProjectID),
		WorkPackageID:   wp.ID,
		Name:            wp.Name,
		ParentID:        wp.ParentID,
	}
}

// WorkPackageUpdatedEvent is published when a work package field changes
type WorkPackageUpdatedEvent struct {
	shared.BaseDomainEvent
	WorkPackageID uuid.UUID `json:"work_package_id"`
	Field         string    `json:"field"`
}

// NewWorkPackageUpdatedEvent creates a new WorkPackageUpdatedEvent
func NewWorkPackageUpdatedEvent(wp *WorkPackage, field string) *WorkPackageUpdatedEvent {
	return &WorkPackageUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeWorkPackageUpdated, AggregateTypeWorkPackage, wp.ID, wp.ProjectID),
		WorkPackageID:   wp.ID,
		Field:           field,
	}
}

// WorkPackageMovedEvent is published when a work package is reparented
type WorkPackageMovedEvent struct {
	shared.BaseDomainEvent
	WorkPackageID uuid.UUID  `json:"work_package_id"`
	OldParentID   *uuid.UUID `json:"old_parent_id,omitempty"`
	NewParentID   *uuid.UUID `json:"new_parent_id,omitempty"`
}

// NewWorkPackageMovedEvent creates a new WorkPackageMovedEvent
func NewWorkPackageMovedEvent(wp *WorkPackage, oldParentID *uuid.UUID) *WorkPackageMovedEvent {
	return &WorkPackageMovedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeWorkPackageMoved, AggregateTypeWorkPackage, wp.ID, wp.ProjectID),
		WorkPackageID:   wp.ID,
		OldParentID:     oldParentID,
		NewParentID:     wp.ParentID,
	}
}

// WorkPackageDeletedEvent is published when a work package is deleted
type WorkPackageDeletedEvent struct {
	shared.BaseDomainEvent
	WorkPackageID uuid.UUID  `json:"work_package_id"`
	Name          string     `json:"name"`
	ParentID      *uuid.UUID `json:"parent_id,omitempty"`
}

// NewWorkPackageDeletedEvent creates a new WorkPackageDeletedEvent
func NewWorkPackageDeletedEvent(wp *WorkPackage) *WorkPackageDeletedEvent {
	return &WorkPackageDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeWorkPackageDeleted, AggregateTypeWorkPackage, wp.ID, wp.ProjectID),
		WorkPackageID:   wp.ID,
		Name:            wp.Name,
		ParentID:        wp.ParentID,
	}
}
