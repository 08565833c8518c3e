package project

import (
	"time"

	"github.com/workplan/backend/internal/domain/shared"
)

// ProjectStatus represents the lifecycle state of a project
type ProjectStatus string

// Project statuses
const (
	ProjectStatusActive   ProjectStatus = "active"
	ProjectStatusArchived ProjectStatus = "archived"
)

// Project is the container every work package hierarchy lives in.
// Work packages never reference across project boundaries.
type Project struct {
	shared.BaseAggregateRoot
	Name        string        `gorm:"type:varchar(200);not null"`
	Description string        `gorm:"type:text"`
	Status      ProjectStatus `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (Project) TableName() string {
	return "projects"
}

// NewProject creates a new active project
func NewProject(name, description string) (*Project, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}

	p := &Project{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Description:       description,
		Status:            ProjectStatusActive,
	}

	p.AddDomainEvent(NewProjectCreatedEvent(p))

	return p, nil
}

// Rename changes the project name
func (p *Project) Rename(name string) error {
	if err := validateName(name); err != nil {
		return err
	}
	p.Name = name
	p.touch()
	return nil
}

// SetDescription updates the free-text description
func (p *Project) SetDescription(description string) {
	p.Description = description
	p.touch()
}

// Archive closes the project to further planning
func (p *Project) Archive() error {
	if p.Status == ProjectStatusArchived {
		return shared.NewDomainError("ALREADY_ARCHIVED", "Project is already archived")
	}
	p.Status = ProjectStatusArchived
	p.touch()
	p.AddDomainEvent(NewProjectArchivedEvent(p))
	return nil
}

// Unarchive reopens an archived project
func (p *Project) Unarchive() error {
	if p.Status != ProjectStatusArchived {
		return shared.NewDomainError("NOT_ARCHIVED", "Project is not archived")
	}
	p.Status = ProjectStatusActive
	p.touch()
	return nil
}

// IsActive returns true if the project accepts mutations
func (p *Project) IsActive() bool {
	return p.Status == ProjectStatusActive
}

func (p *Project) touch() {
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

func validateName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Project name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Project name cannot exceed 200 characters")
	}
	return nil
}
