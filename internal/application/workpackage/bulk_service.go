package workpackage

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/workplan/backend/internal/domain/project"
	"github.com/workplan/backend/internal/domain/shared"
	"github.com/workplan/backend/internal/domain/workpackage"
	csvimport "github.com/workplan/backend/internal/infrastructure/import"
)

// Default values for CSV rows that omit optional columns
const defaultResponsibleManager = "Unassigned"

// Header aliases recognized by the CSV importer
var (
	csvNameHeaders    = []string{"name", "title"}
	csvBudgetHeaders  = []string{"budget"}
	csvStartHeaders   = []string{"start_date", "start"}
	csvEndHeaders     = []string{"end_date", "end"}
	csvManagerHeaders = []string{"responsible", "responsible_manager"}
)

// BulkService runs the multi-record operations: copy between projects,
// CSV import and template instantiation. Each is a sequential loop of
// individual creates with per-row failure isolation; one bad row never
// aborts the rest, and the caller gets a full report.
type BulkService struct {
	repo        workpackage.Repository
	projectRepo project.Repository
	cache       workpackage.OutlineCache
	logger      *zap.Logger
}

// BulkServiceOption is a functional option for configuring the bulk service
type BulkServiceOption func(*BulkService)

// WithBulkOutlineCache sets the outline projection cache
func WithBulkOutlineCache(cache workpackage.OutlineCache) BulkServiceOption {
	return func(s *BulkService) {
		s.cache = cache
	}
}

// WithBulkLogger sets the logger for the bulk service
func WithBulkLogger(logger *zap.Logger) BulkServiceOption {
	return func(s *BulkService) {
		s.logger = logger
	}
}

// NewBulkService creates a new BulkService
func NewBulkService(repo workpackage.Repository, projectRepo project.Repository, opts ...BulkServiceOption) *BulkService {
	s := &BulkService{
		repo:        repo,
		projectRepo: projectRepo,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CopyFromProject recreates every work package of the source project as
// a root in the destination project. Parent linkage is dropped on
// purpose: the copy is a flat starting point, not a structural clone.
func (s *BulkService) CopyFromProject(ctx context.Context, destProjectID, sourceProjectID uuid.UUID, req CopyFromProjectRequest) (*BulkReport, error) {
	if destProjectID == sourceProjectID {
		return nil, shared.NewDomainError("SAME_PROJECT", "Source and destination projects must differ")
	}
	if err := s.requireActiveProject(ctx, destProjectID); err != nil {
		return nil, err
	}
	if _, err := s.projectRepo.FindByID(ctx, sourceProjectID); err != nil {
		return nil, err
	}

	sources, err := s.repo.FindAllByProject(ctx, sourceProjectID, false)
	if err != nil {
		return nil, err
	}

	report := &BulkReport{Total: len(sources)}
	today := time.Now()

	for i := range sources {
		src := &sources[i]

		budget := src.Budget
		if req.ResetBudgets {
			budget = decimal.Zero
		}
		start, end := src.StartDate, src.EndDate
		if req.ResetDates {
			start, end = today, today
		}

		wp, err := workpackage.NewWorkPackage(destProjectID, src.Name, budget, start, end, src.ResponsibleManager)
		if err != nil {
			report.fail(i+1, err)
			continue
		}
		if src.Description != "" {
			wp.SetDescription(src.Description)
		}
		wp.ClearDomainEvents()

		if err := s.repo.Save(ctx, wp); err != nil {
			report.fail(i+1, err)
			continue
		}
		report.Succeeded++
	}

	s.finishBulk(ctx, destProjectID, "copy_from_project", report)
	return report, nil
}

// ImportCSV creates work packages from an uploaded CSV document. The
// header is case-insensitive; a missing name column aborts the whole
// import before any row is created. Row-level parse and validation
// failures are collected, not fatal.
func (s *BulkService) ImportCSV(ctx context.Context, projectID uuid.UUID, data []byte) (*BulkReport, error) {
	if err := s.requireActiveProject(ctx, projectID); err != nil {
		return nil, err
	}

	parser, err := csvimport.ParseFromBytes(data)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_FILE", err.Error())
	}
	if err := parser.ParseHeader(); err != nil {
		return nil, shared.NewDomainError("INVALID_FILE", err.Error())
	}
	if !parser.HasAnyHeader(csvNameHeaders...) {
		return nil, shared.NewDomainError("MISSING_NAME_COLUMN", "CSV header must contain a name or title column")
	}

	rows, err := parser.ReadAllRows()
	if err != nil {
		return nil, shared.NewDomainError("INVALID_FILE", err.Error())
	}

	report := &BulkReport{Total: len(rows)}
	today := time.Now()

	for _, row := range rows {
		wp, err := s.workPackageFromRow(projectID, row, today)
		if err != nil {
			report.failRow(row.LineNumber, err)
			continue
		}
		if err := s.repo.Save(ctx, wp); err != nil {
			report.failRow(row.LineNumber, err)
			continue
		}
		report.Succeeded++
	}

	s.finishBulk(ctx, projectID, "import_csv", report)
	return report, nil
}

func (s *BulkService) workPackageFromRow(projectID uuid.UUID, row *csvimport.Row, today time.Time) (*workpackage.WorkPackage, error) {
	name := row.GetAny(csvNameHeaders...)

	budget := decimal.Zero
	if raw := row.GetAny(csvBudgetHeaders...); raw != "" {
		parsed, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_AMOUNT", "Budget must be a decimal number")
		}
		budget = parsed
	}

	start := today
	if raw := row.GetAny(csvStartHeaders...); raw != "" {
		parsed, err := time.Parse(workpackage.DateLayout, raw)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_DATE", "Start date must be in YYYY-MM-DD format")
		}
		start = parsed
	}
	end := today
	if raw := row.GetAny(csvEndHeaders...); raw != "" {
		parsed, err := time.Parse(workpackage.DateLayout, raw)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_DATE", "End date must be in YYYY-MM-DD format")
		}
		end = parsed
	}

	manager := row.GetAny(csvManagerHeaders...)
	if manager == "" {
		manager = defaultResponsibleManager
	}

	wp, err := workpackage.NewWorkPackage(projectID, name, budget, start, end, manager)
	if err != nil {
		return nil, err
	}
	wp.ClearDomainEvents()
	return wp, nil
}

// InstantiateTemplate expands a catalog template into root-level work
// packages with consecutive two-month scheduling windows from today
func (s *BulkService) InstantiateTemplate(ctx context.Context, projectID uuid.UUID, req InstantiateTemplateRequest) (*BulkReport, error) {
	if err := s.requireActiveProject(ctx, projectID); err != nil {
		return nil, err
	}

	tmpl, ok := workpackage.TemplateByID(req.TemplateID)
	if !ok {
		return nil, workpackage.ErrUnknownTemplate
	}

	report := &BulkReport{Total: len(tmpl.Items)}
	windowStart := time.Now()

	for i, item := range tmpl.Items {
		windowEnd := windowStart.AddDate(0, 2, 0)

		wp, err := workpackage.NewWorkPackage(projectID, item.Name, item.Budget, windowStart, windowEnd, defaultResponsibleManager)
		if err != nil {
			report.fail(i+1, err)
			windowStart = windowEnd
			continue
		}
		wp.ClearDomainEvents()

		if err := s.repo.Save(ctx, wp); err != nil {
			report.fail(i+1, err)
			windowStart = windowEnd
			continue
		}
		report.Succeeded++
		windowStart = windowEnd
	}

	s.finishBulk(ctx, projectID, "instantiate_template", report)
	return report, nil
}

// Templates returns the static template catalog
func (s *BulkService) Templates() []TemplateResponse {
	catalog := workpackage.Templates()
	out := make([]TemplateResponse, len(catalog))
	for i, tmpl := range catalog {
		out[i] = TemplateResponse{
			ID:    tmpl.ID,
			Name:  tmpl.Name,
			Items: tmpl.Items,
		}
	}
	return out
}

func (s *BulkService) requireActiveProject(ctx context.Context, projectID uuid.UUID) error {
	p, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		return err
	}
	if !p.IsActive() {
		return shared.NewDomainError("PROJECT_ARCHIVED", "Project is archived and does not accept changes")
	}
	return nil
}

func (s *BulkService) finishBulk(ctx context.Context, projectID uuid.UUID, operation string, report *BulkReport) {
	if report.Succeeded > 0 && s.cache != nil {
		if err := s.cache.Invalidate(ctx, projectID); err != nil {
			s.logger.Warn("failed to invalidate outline cache after bulk operation",
				zap.String("project_id", projectID.String()),
				zap.Error(err))
		}
	}
	s.logger.Info("bulk operation finished",
		zap.String("operation", operation),
		zap.String("project_id", projectID.String()),
		zap.Int("total", report.Total),
		zap.Int("succeeded", report.Succeeded),
		zap.Int("failed", report.Failed))
}

func (r *BulkReport) fail(row int, err error) {
	r.Failed++
	r.Errors = append(r.Errors, BulkRowError{Row: row, Message: err.Error()})
}

// failRow records a failure using the CSV line number rather than the
// loop index
func (r *BulkReport) failRow(line int, err error) {
	r.Failed++
	r.Errors = append(r.Errors, BulkRowError{Row: line, Message: err.Error()})
}
