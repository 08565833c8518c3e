package project

import (
	"github.com/workplan/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeProject = "Project"

// Event type constants
const (
	EventTypeProjectCreated  = "ProjectCreated"
	EventTypeProjectArchived = "ProjectArchived"
)

// ProjectCreatedEvent is published when a new project is created
type ProjectCreatedEvent struct {
	shared.BaseDomainEvent
	Name string `json:"name"`
}

// NewProjectCreatedEvent creates a new ProjectCreatedEvent
func NewProjectCreatedEvent(p *Project) *ProjectCreatedEvent {
	return &ProjectCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProjectCreated, AggregateTypeProject, p.ID, p.ID),
		Name:            p.Name,
	}
}

// ProjectArchivedEvent is published when a project is archived
type ProjectArchivedEvent struct {
	shared.BaseDomainEvent
	Name string `json:"name"`
}

// NewProjectArchivedEvent creates a new ProjectArchivedEvent
func NewProjectArchivedEvent(p *Project) *ProjectArchivedEvent {
	return &ProjectArchivedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProjectArchived, AggregateTypeProject, p.ID, p.ID),
		Name:            p.Name,
	}
}
