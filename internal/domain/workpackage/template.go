package workpackage

import (
	"github.com/shopspring/decimal"
	"github.com/workplan/backend/internal/domain/shared"
)

// ErrUnknownTemplate is returned when a template ID is not in the catalog
var ErrUnknownTemplate = shared.NewDomainError("UNKNOWN_TEMPLATE", "Template not found in catalog")

// TemplateItem is one named root that a template expands to
type TemplateItem struct {
	Name   string          `json:"name"`
	Budget decimal.Decimal `json:"budget"`
}

// Template is a predefined starter structure for a project plan. Items
// instantiate as root-level work packages with the listed budgets and
// consecutive scheduling windows.
type Template struct {
	ID    string         `json:"id"`
	Name  string         `json:"name"`
	Items []TemplateItem `json:"items"`
}

// Static catalog; editing templates is out of scope.
var templateCatalog = []Template{
	{
		ID:   "phase-gates",
		Name: "Phase gates",
		Items: []TemplateItem{
			{Name: "Initiation", Budget: decimal.Zero},
			{Name: "Planning", Budget: decimal.Zero},
			{Name: "Execution", Budget: decimal.Zero},
			{Name: "Monitoring", Budget: decimal.Zero},
			{Name: "Closure", Budget: decimal.Zero},
		},
	},
	{
		ID:   "design-build",
		Name: "Design & Build",
		Items: []TemplateItem{
			{Name: "Requirements", Budget: decimal.Zero},
			{Name: "Design", Budget: decimal.Zero},
			{Name: "Build", Budget: decimal.Zero},
			{Name: "Test", Budget: decimal.Zero},
			{Name: "Handover", Budget: decimal.Zero},
		},
	},
}

// Templates returns the full template catalog
func Templates() []Template {
	out := make([]Template, len(templateCatalog))
	copy(out, templateCatalog)
	return out
}

// TemplateByID looks up one template
func TemplateByID(id string) (Template, bool) {
	for _, t := range templateCatalog {
		if t.ID == id {
			return t, true
		}
	}
	return Template{}, false
}
