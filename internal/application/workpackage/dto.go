package workpackage

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/workplan/backend/internal/domain/workpackage"
)

// CreateWorkPackageRequest represents a request to create a new work package
type CreateWorkPackageRequest struct {
	Name               string           `json:"name" binding:"required,min=1,max=200"`
	Description        string           `json:"description" binding:"max=2000"`
	ParentID           *uuid.UUID       `json:"parent_id"`
	Budget             *decimal.Decimal `json:"budget"`
	StartDate          string           `json:"start_date" binding:"required"`
	EndDate            string           `json:"end_date" binding:"required"`
	ResponsibleManager string           `json:"responsible_manager" binding:"required,min=1,max=100"`
}

// UpdateWorkPackageRequest represents a partial update. Only non-nil
// fields are validated and applied; the write is last-write-wins.
type UpdateWorkPackageRequest struct {
	Name               *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Description        *string          `json:"description" binding:"omitempty,max=2000"`
	Budget             *decimal.Decimal `json:"budget"`
	ActualCost         *decimal.Decimal `json:"actual_cost"`
	EarnedValue        *decimal.Decimal `json:"earned_value"`
	PercentComplete    *float64         `json:"percent_complete"`
	StartDate          *string          `json:"start_date"`
	EndDate            *string          `json:"end_date"`
	ResponsibleManager *string          `json:"responsible_manager" binding:"omitempty,min=1,max=100"`
	Archived           *bool            `json:"archived"`
}

// MoveWorkPackageRequest represents a reparent request. A nil parent ID
// moves the work package to the root level.
type MoveWorkPackageRequest struct {
	ParentID *uuid.UUID `json:"parent_id"`
}

// WorkPackageListFilter represents filter options for the flat list
type WorkPackageListFilter struct {
	IncludeArchived bool `form:"include_archived"`
}

// WorkPackageResponse represents a work package in API responses
type WorkPackageResponse struct {
	ID                 uuid.UUID                  `json:"id"`
	ProjectID          uuid.UUID                  `json:"project_id"`
	ParentID           *uuid.UUID                 `json:"parent_id,omitempty"`
	Name               string                     `json:"name"`
	Description        string                     `json:"description"`
	Budget             decimal.Decimal            `json:"budget"`
	ActualCost         decimal.Decimal            `json:"actual_cost"`
	EarnedValue        decimal.Decimal            `json:"earned_value"`
	PercentComplete    float64                    `json:"percent_complete"`
	StartDate          string                     `json:"start_date"`
	EndDate            string                     `json:"end_date"`
	ResponsibleManager string                     `json:"responsible_manager"`
	Archived           bool                       `json:"archived"`
	Rollup             *workpackage.RollupResult  `json:"rollup,omitempty"`
	CreatedAt          time.Time                  `json:"created_at"`
	UpdatedAt          time.Time                  `json:"updated_at"`
	Version            int                        `json:"version"`
}

// TreeNodeResponse represents one node of the nested rollup tree
type TreeNodeResponse struct {
	WorkPackageResponse
	Children []TreeNodeResponse `json:"children"`
}

// OutlineRequest carries the client's visibility state and window for
// the flattened projection
type OutlineRequest struct {
	ExpandedIDs     []uuid.UUID `json:"expanded_ids"`
	ExpandAll       bool        `json:"expand_all"`
	IncludeArchived bool        `json:"include_archived"`
	Offset          int         `json:"offset" binding:"min=0"`
	Limit           int         `json:"limit" binding:"min=0,max=500"`
}

// OutlineRowResponse is one visible row of the flattened projection
type OutlineRowResponse struct {
	WorkPackageResponse
	Depth       int  `json:"depth"`
	HasChildren bool `json:"has_children"`
	Expanded    bool `json:"expanded"`
}

// OutlineResponse is the windowed flattened projection. TotalRows always
// reflects the full visible sequence; Virtualized marks responses that
// were sliced to the requested window.
type OutlineResponse struct {
	Rows        []OutlineRowResponse `json:"rows"`
	TotalRows   int                  `json:"total_rows"`
	Offset      int                  `json:"offset"`
	Virtualized bool                 `json:"virtualized"`
}

// CopyFromProjectRequest carries bulk-copy options
type CopyFromProjectRequest struct {
	ResetBudgets bool `json:"reset_budgets"`
	ResetDates   bool `json:"reset_dates"`
}

// InstantiateTemplateRequest names the catalog template to expand
type InstantiateTemplateRequest struct {
	TemplateID string `json:"template_id" binding:"required"`
}

// BulkRowError describes one failed row of a bulk operation
type BulkRowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// BulkReport summarizes a bulk operation. Failed rows never abort the
// remaining rows; sequential execution, per-row isolation.
type BulkReport struct {
	Total     int            `json:"total"`
	Succeeded int            `json:"succeeded"`
	Failed    int            `json:"failed"`
	Errors    []BulkRowError `json:"errors"`
}

// TemplateResponse represents a catalog template in API responses
type TemplateResponse struct {
	ID    string                     `json:"id"`
	Name  string                     `json:"name"`
	Items []workpackage.TemplateItem `json:"items"`
}

// ToWorkPackageResponse converts a domain WorkPackage to WorkPackageResponse
func ToWorkPackageResponse(wp *workpackage.WorkPackage, rollup *workpackage.RollupResult) WorkPackageResponse {
	return WorkPackageResponse{
		ID:                 wp.ID,
		ProjectID:          wp.ProjectID,
		ParentID:           wp.ParentID,
		Name:               wp.Name,
		Description:        wp.Description,
		Budget:             wp.Budget,
		ActualCost:         wp.ActualCost,
		EarnedValue:        wp.EarnedValue,
		PercentComplete:    wp.PercentComplete,
		StartDate:          wp.StartDate.Format(workpackage.DateLayout),
		EndDate:            wp.EndDate.Format(workpackage.DateLayout),
		ResponsibleManager: wp.ResponsibleManager,
		Archived:           wp.Archived,
		Rollup:             rollup,
		CreatedAt:          wp.CreatedAt,
		UpdatedAt:          wp.UpdatedAt,
		Version:            wp.Version,
	}
}
