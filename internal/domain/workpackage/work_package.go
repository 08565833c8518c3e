package workpackage

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/workplan/backend/internal/domain/shared"
)

// WorkPackage represents a budgeted, schedulable unit of project scope.
// It supports tree structure through an optional parent reference; the
// monetary and percent fields stored here are the node's own values.
// Rollup values for non-leaves are derived on read, never persisted.
type WorkPackage struct {
	shared.ProjectAggregateRoot
	ParentID           *uuid.UUID      `gorm:"type:uuid;index"`
	Name               string          `gorm:"type:varchar(200);not null"`
	Description        string          `gorm:"type:text"`
	Budget             decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	ActualCost         decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	EarnedValue        decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	PercentComplete    float64         `gorm:"not null;default:0"`
	StartDate          time.Time       `gorm:"type:date;not null"`
	EndDate            time.Time       `gorm:"type:date;not null"`
	ResponsibleManager string          `gorm:"type:varchar(100);not null"`
	Archived           bool            `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (WorkPackage) TableName() string {
	return "work_packages"
}

// NewWorkPackage creates a new root-level work package
func NewWorkPackage(projectID uuid.UUID, name string, budget decimal.Decimal, start, end time.Time, responsibleManager string) (*WorkPackage, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	if err := validateManager(responsibleManager); err != nil {
		return nil, err
	}
	if err := validateAmount("budget", budget); err != nil {
		return nil, err
	}
	if err := validateDateOrder(start, end); err != nil {
		return nil, err
	}

	wp := &WorkPackage{
		ProjectAggregateRoot: shared.NewProjectAggregateRoot(projectID),
		Name:                 name,
		Budget:               budget,
		ActualCost:           decimal.Zero,
		EarnedValue:          decimal.Zero,
		StartDate:            truncateToDay(start),
		EndDate:              truncateToDay(end),
		ResponsibleManager:   responsibleManager,
	}

	wp.AddDomainEvent(NewWorkPackageCreatedEvent(wp))

	return wp, nil
}

// NewChildWorkPackage creates a new work package under a parent in the same project
func NewChildWorkPackage(projectID uuid.UUID, name string, budget decimal.Decimal, start, end time.Time, responsibleManager string, parent *WorkPackage) (*WorkPackage, error) {
	if parent == nil {
		return nil, shared.NewDomainError("INVALID_PARENT", "Parent work package is required")
	}
	if parent.ProjectID != projectID {
		return nil, shared.NewDomainError("INVALID_PARENT", "Parent work package belongs to a different project")
	}

	wp, err := NewWorkPackage(projectID, name, budget, start, end, responsibleManager)
	if err != nil {
		return nil, err
	}
	wp.ParentID = &parent.ID

	return wp, nil
}

// Rename changes the display name
func (w *WorkPackage) Rename(name string) error {
	if err := validateName(name); err != nil {
		return err
	}
	w.Name = name
	w.touch()
	w.AddDomainEvent(NewWorkPackageUpdatedEvent(w, "name"))
	return nil
}

// SetDescription updates the free-text description
func (w *WorkPackage) SetDescription(description string) {
	w.Description = description
	w.touch()
	w.AddDomainEvent(NewWorkPackageUpdatedEvent(w, "description"))
}

// SetBudget updates the leaf-level budget
func (w *WorkPackage) SetBudget(budget decimal.Decimal) error {
	if err := validateAmount("budget", budget); err != nil {
		return err
	}
	w.Budget = budget
	w.touch()
	w.AddDomainEvent(NewWorkPackageUpdatedEvent(w, "budget"))
	return nil
}

// SetActualCost updates the leaf-level actual cost
func (w *WorkPackage) SetActualCost(cost decimal.Decimal) error {
	if err := validateAmount("actual_cost", cost); err != nil {
		return err
	}
	w.ActualCost = cost
	w.touch()
	w.AddDomainEvent(NewWorkPackageUpdatedEvent(w, "actual_cost"))
	return nil
}

// SetEarnedValue updates the leaf-level earned value
func (w *WorkPackage) SetEarnedValue(value decimal.Decimal) error {
	if err := validateAmount("earned_value", value); err != nil {
		return err
	}
	w.EarnedValue = value
	w.touch()
	w.AddDomainEvent(NewWorkPackageUpdatedEvent(w, "earned_value"))
	return nil
}

// SetPercentComplete updates the leaf-level completion percentage
func (w *WorkPackage) SetPercentComplete(percent float64) error {
	if percent < 0 || percent > 100 {
		return shared.NewDomainError("OUT_OF_RANGE", "Percent complete must be between 0 and 100")
	}
	w.PercentComplete = percent
	w.touch()
	w.AddDomainEvent(NewWorkPackageUpdatedEvent(w, "percent_complete"))
	return nil
}

// SetStartDate moves the start date, keeping start <= end
func (w *WorkPackage) SetStartDate(start time.Time) error {
	if err := validateDateOrder(start, w.EndDate); err != nil {
		return err
	}
	w.StartDate = truncateToDay(start)
	w.touch()
	w.AddDomainEvent(NewWorkPackageUpdatedEvent(w, "start_date"))
	return nil
}

// SetEndDate moves the end date, keeping start <= end
func (w *WorkPackage) SetEndDate(end time.Time) error {
	if err := validateDateOrder(w.StartDate, end); err != nil {
		return err
	}
	w.EndDate = truncateToDay(end)
	w.touch()
	w.AddDomainEvent(NewWorkPackageUpdatedEvent(w, "end_date"))
	return nil
}

// Reschedule replaces both dates in one step
func (w *WorkPackage) Reschedule(start, end time.Time) error {
	if err := validateDateOrder(start, end); err != nil {
		return err
	}
	w.StartDate = truncateToDay(start)
	w.EndDate = truncateToDay(end)
	w.touch()
	w.AddDomainEvent(NewWorkPackageUpdatedEvent(w, "schedule"))
	return nil
}

// SetResponsibleManager changes the accountable person
func (w *WorkPackage) SetResponsibleManager(manager string) error {
	if err := validateManager(manager); err != nil {
		return err
	}
	w.ResponsibleManager = manager
	w.touch()
	w.AddDomainEvent(NewWorkPackageUpdatedEvent(w, "responsible_manager"))
	return nil
}

// MoveTo reparents the work package. A nil parent ID makes it a root.
// Cycle safety is the caller's responsibility (CanReparent); the
// aggregate only rejects trivial self-parenting.
func (w *WorkPackage) MoveTo(parentID *uuid.UUID) error {
	if parentID != nil && *parentID == w.ID {
		return ErrSelfParent
	}
	oldParent := w.ParentID
	w.ParentID = parentID
	w.touch()
	w.AddDomainEvent(NewWorkPackageMovedEvent(w, oldParent))
	return nil
}

// Unlink detaches the work package from its parent, making it a root.
// Used when the former parent is deleted.
func (w *WorkPackage) Unlink() {
	if w.ParentID == nil {
		return
	}
	oldParent := w.ParentID
	w.ParentID = nil
	w.touch()
	w.AddDomainEvent(NewWorkPackageMovedEvent(w, oldParent))
}

// Archive hides the work package from default listings
func (w *WorkPackage) Archive() error {
	if w.Archived {
		return shared.NewDomainError("ALREADY_ARCHIVED", "Work package is already archived")
	}
	w.Archived = true
	w.touch()
	w.AddDomainEvent(NewWorkPackageUpdatedEvent(w, "archived"))
	return nil
}

// Unarchive restores an archived work package
func (w *WorkPackage) Unarchive() error {
	if !w.Archived {
		return shared.NewDomainError("NOT_ARCHIVED", "Work package is not archived")
	}
	w.Archived = false
	w.touch()
	w.AddDomainEvent(NewWorkPackageUpdatedEvent(w, "archived"))
	return nil
}

// IsRoot returns true if the work package has no parent
func (w *WorkPackage) IsRoot() bool {
	return w.ParentID == nil
}

func (w *WorkPackage) touch() {
	w.UpdatedAt = time.Now()
	w.IncrementVersion()
}

// truncateToDay drops the time-of-day component; scheduling is date-precision
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func validateName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Work package name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Work package name cannot exceed 200 characters")
	}
	return nil
}

func validateManager(manager string) error {
	if manager == "" {
		return shared.NewDomainError("INVALID_MANAGER", "Responsible manager is required")
	}
	if len(manager) > 100 {
		return shared.NewDomainError("INVALID_MANAGER", "Responsible manager cannot exceed 100 characters")
	}
	return nil
}

func validateAmount(field string, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return shared.NewDomainError("NEGATIVE_AMOUNT", "Field "+field+" cannot be negative")
	}
	return nil
}

func validateDateOrder(start, end time.Time) error {
	if truncateToDay(end).Before(truncateToDay(start)) {
		return ErrDateOrder
	}
	return nil
}
