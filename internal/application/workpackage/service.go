package workpackage

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/workplan/backend/internal/domain/project"
	"github.com/workplan/backend/internal/domain/shared"
	"github.com/workplan/backend/internal/domain/workpackage"
)

// Windowing constants for the outline projection
const (
	// VirtualizationThreshold is the visible row count above which the
	// outline response is sliced to the requested window
	VirtualizationThreshold = 50
	// DefaultWindowSize is the slice size when the client sends no limit
	DefaultWindowSize = 50

	outlineCacheTTL = 5 * time.Minute
)

// Service coordinates all single-record work package operations. Every
// mutation goes through here: load, validate, apply, persist, publish,
// invalidate the project's outline cache.
type Service struct {
	repo        workpackage.Repository
	projectRepo project.Repository
	events      shared.EventPublisher
	cache       workpackage.OutlineCache
	logger      *zap.Logger
}

// ServiceOption is a functional option for configuring the service
type ServiceOption func(*Service)

// WithEventPublisher sets the domain event publisher
func WithEventPublisher(publisher shared.EventPublisher) ServiceOption {
	return func(s *Service) {
		s.events = publisher
	}
}

// WithOutlineCache sets the outline projection cache
func WithOutlineCache(cache workpackage.OutlineCache) ServiceOption {
	return func(s *Service) {
		s.cache = cache
	}
}

// WithLogger sets the logger for the service
func WithLogger(logger *zap.Logger) ServiceOption {
	return func(s *Service) {
		s.logger = logger
	}
}

// NewService creates a new work package Service
func NewService(repo workpackage.Repository, projectRepo project.Repository, opts ...ServiceOption) *Service {
	s := &Service{
		repo:        repo,
		projectRepo: projectRepo,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create creates a new work package, optionally under a parent
func (s *Service) Create(ctx context.Context, projectID uuid.UUID, req CreateWorkPackageRequest) (*WorkPackageResponse, error) {
	if err := s.requireActiveProject(ctx, projectID); err != nil {
		return nil, err
	}

	start, err := parseDate("start_date", req.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := parseDate("end_date", req.EndDate)
	if err != nil {
		return nil, err
	}

	budget := decimalOrZero(req.Budget)

	var wp *workpackage.WorkPackage
	if req.ParentID != nil {
		parent, err := s.repo.FindByID(ctx, projectID, *req.ParentID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("INVALID_PARENT", "Parent work package not found")
			}
			return nil, err
		}
		wp, err = workpackage.NewChildWorkPackage(projectID, req.Name, budget, start, end, req.ResponsibleManager, parent)
		if err != nil {
			return nil, err
		}
	} else {
		wp, err = workpackage.NewWorkPackage(projectID, req.Name, budget, start, end, req.ResponsibleManager)
		if err != nil {
			return nil, err
		}
	}

	if req.Description != "" {
		wp.SetDescription(req.Description)
	}

	if err := s.repo.Save(ctx, wp); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, wp)
	s.invalidateOutline(ctx, projectID)

	resp := ToWorkPackageResponse(wp, nil)
	return &resp, nil
}

// GetByID retrieves a work package together with its rollup
func (s *Service) GetByID(ctx context.Context, projectID, id uuid.UUID) (*WorkPackageResponse, error) {
	wp, err := s.repo.FindByID(ctx, projectID, id)
	if err != nil {
		return nil, err
	}

	records, err := s.repo.FindAllByProject(ctx, projectID, true)
	if err != nil {
		return nil, err
	}

	forest := workpackage.BuildForest(records)
	var rollup *workpackage.RollupResult
	if result, ok := forest.Rollup(id); ok {
		rollup = &result
	}

	resp := ToWorkPackageResponse(wp, rollup)
	return &resp, nil
}

// List retrieves the flat record list for a project in creation order
func (s *Service) List(ctx context.Context, projectID uuid.UUID, filter WorkPackageListFilter) ([]WorkPackageResponse, int64, error) {
	if _, err := s.projectRepo.FindByID(ctx, projectID); err != nil {
		return nil, 0, err
	}

	records, err := s.repo.FindAllByProject(ctx, projectID, filter.IncludeArchived)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]WorkPackageResponse, len(records))
	for i := range records {
		responses[i] = ToWorkPackageResponse(&records[i], nil)
	}

	return responses, int64(len(responses)), nil
}

// Update applies a partial patch. Only supplied fields change; concurrent
// writers are last-write-wins.
func (s *Service) Update(ctx context.Context, projectID, id uuid.UUID, req UpdateWorkPackageRequest) (*WorkPackageResponse, error) {
	wp, err := s.repo.FindByID(ctx, projectID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if err := wp.Rename(*req.Name); err != nil {
			return nil, err
		}
	}
	if req.Description != nil {
		wp.SetDescription(*req.Description)
	}
	if req.Budget != nil {
		if err := wp.SetBudget(*req.Budget); err != nil {
			return nil, err
		}
	}
	if req.ActualCost != nil {
		if err := wp.SetActualCost(*req.ActualCost); err != nil {
			return nil, err
		}
	}
	if req.EarnedValue != nil {
		if err := wp.SetEarnedValue(*req.EarnedValue); err != nil {
			return nil, err
		}
	}
	if req.PercentComplete != nil {
		if err := wp.SetPercentComplete(*req.PercentComplete); err != nil {
			return nil, err
		}
	}

	if err := s.applyScheduleChange(wp, req.StartDate, req.EndDate); err != nil {
		return nil, err
	}

	if req.ResponsibleManager != nil {
		if err := wp.SetResponsibleManager(*req.ResponsibleManager); err != nil {
			return nil, err
		}
	}
	if req.Archived != nil {
		if *req.Archived {
			err = wp.Archive()
		} else {
			err = wp.Unarchive()
		}
		if err != nil {
			return nil, err
		}
	}

	if err := s.repo.Save(ctx, wp); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, wp)
	s.invalidateOutline(ctx, projectID)

	resp := ToWorkPackageResponse(wp, nil)
	return &resp, nil
}

// applyScheduleChange handles the date pair of a partial patch. When both
// dates arrive in one request they are validated as a pair, so a window
// move that crosses the old boundary is not rejected halfway.
func (s *Service) applyScheduleChange(wp *workpackage.WorkPackage, startStr, endStr *string) error {
	if startStr == nil && endStr == nil {
		return nil
	}

	if startStr != nil && endStr != nil {
		start, err := parseDate("start_date", *startStr)
		if err != nil {
			return err
		}
		end, err := parseDate("end_date", *endStr)
		if err != nil {
			return err
		}
		return wp.Reschedule(start, end)
	}

	if startStr != nil {
		start, err := parseDate("start_date", *startStr)
		if err != nil {
			return err
		}
		return wp.SetStartDate(start)
	}

	end, err := parseDate("end_date", *endStr)
	if err != nil {
		return err
	}
	return wp.SetEndDate(end)
}

// Move reparents a work package after running the cycle check against
// the project's current flat list
func (s *Service) Move(ctx context.Context, projectID, id uuid.UUID, req MoveWorkPackageRequest) (*WorkPackageResponse, error) {
	wp, err := s.repo.FindByID(ctx, projectID, id)
	if err != nil {
		return nil, err
	}

	if req.ParentID != nil {
		records, err := s.repo.FindAllByProject(ctx, projectID, true)
		if err != nil {
			return nil, err
		}
		if err := workpackage.CanReparent(records, id, *req.ParentID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("INVALID_PARENT", "Target parent not found")
			}
			return nil, err
		}
	}

	if err := wp.MoveTo(req.ParentID); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, wp); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, wp)
	s.invalidateOutline(ctx, projectID)

	resp := ToWorkPackageResponse(wp, nil)
	return &resp, nil
}

// Delete removes a work package. Children are unlinked, never cascaded:
// they become roots and survive the delete.
func (s *Service) Delete(ctx context.Context, projectID, id uuid.UUID) error {
	wp, err := s.repo.FindByID(ctx, projectID, id)
	if err != nil {
		return err
	}

	unlinked, err := s.repo.UnlinkChildren(ctx, projectID, id)
	if err != nil {
		return err
	}
	if unlinked > 0 {
		s.logger.Info("promoted children of deleted work package to roots",
			zap.String("work_package_id", id.String()),
			zap.Int64("children", unlinked))
	}

	if err := s.repo.Delete(ctx, projectID, id); err != nil {
		return err
	}

	if s.events != nil {
		event := workpackage.NewWorkPackageDeletedEvent(wp)
		if err := s.events.Publish(ctx, event); err != nil {
			s.logger.Warn("failed to publish delete event", zap.Error(err))
		}
	}
	s.invalidateOutline(ctx, projectID)

	return nil
}

// GetTree returns the nested rollup tree for a project
func (s *Service) GetTree(ctx context.Context, projectID uuid.UUID, includeArchived bool) ([]TreeNodeResponse, error) {
	if _, err := s.projectRepo.FindByID(ctx, projectID); err != nil {
		return nil, err
	}

	records, err := s.repo.FindAllByProject(ctx, projectID, includeArchived)
	if err != nil {
		return nil, err
	}

	forest := workpackage.BuildForest(records)
	roots := forest.Roots()

	nodes := make([]TreeNodeResponse, len(roots))
	for i, root := range roots {
		nodes[i] = s.buildTreeNode(forest, root)
	}
	return nodes, nil
}

func (s *Service) buildTreeNode(forest *workpackage.Forest, wp *workpackage.WorkPackage) TreeNodeResponse {
	var rollup *workpackage.RollupResult
	if result, ok := forest.Rollup(wp.ID); ok {
		rollup = &result
	}

	children := forest.Children(wp.ID)
	childNodes := make([]TreeNodeResponse, len(children))
	for i, child := range children {
		childNodes[i] = s.buildTreeNode(forest, child)
	}

	return TreeNodeResponse{
		WorkPackageResponse: ToWorkPackageResponse(wp, rollup),
		Children:            childNodes,
	}
}

// GetOutline returns the flattened, depth-annotated projection for the
// client's visibility state, windowed when the visible sequence is large
func (s *Service) GetOutline(ctx context.Context, projectID uuid.UUID, req OutlineRequest) (*OutlineResponse, error) {
	if _, err := s.projectRepo.FindByID(ctx, projectID); err != nil {
		return nil, err
	}

	cacheKey := outlineCacheKey(req)
	if s.cache != nil {
		if payload, err := s.cache.Get(ctx, projectID, cacheKey); err != nil {
			s.logger.Warn("outline cache read failed", zap.Error(err))
		} else if payload != nil {
			var cached OutlineResponse
			if err := json.Unmarshal(payload, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	records, err := s.repo.FindAllByProject(ctx, projectID, req.IncludeArchived)
	if err != nil {
		return nil, err
	}

	forest := workpackage.BuildForest(records)

	var rows []workpackage.OutlineRow
	if req.ExpandAll {
		rows = forest.FlattenAll()
	} else {
		rows = forest.Flatten(workpackage.NewVisibilityState(req.ExpandedIDs...))
	}

	resp := s.windowOutline(forest, rows, req)

	if s.cache != nil {
		if payload, err := json.Marshal(resp); err == nil {
			if err := s.cache.Set(ctx, projectID, cacheKey, payload, outlineCacheTTL); err != nil {
				s.logger.Warn("outline cache write failed", zap.Error(err))
			}
		}
	}

	return resp, nil
}

func (s *Service) windowOutline(forest *workpackage.Forest, rows []workpackage.OutlineRow, req OutlineRequest) *OutlineResponse {
	total := len(rows)

	offset := 0
	window := rows
	virtualized := false

	if total > VirtualizationThreshold {
		virtualized = true
		limit := req.Limit
		if limit <= 0 {
			limit = DefaultWindowSize
		}
		offset = req.Offset
		if offset > total {
			offset = total
		}
		end := offset + limit
		if end > total {
			end = total
		}
		window = rows[offset:end]
	}

	out := make([]OutlineRowResponse, len(window))
	for i, row := range window {
		var rollup *workpackage.RollupResult
		if result, ok := forest.Rollup(row.Record.ID); ok {
			rollup = &result
		}
		out[i] = OutlineRowResponse{
			WorkPackageResponse: ToWorkPackageResponse(row.Record, rollup),
			Depth:               row.Depth,
			HasChildren:         row.HasChildren,
			Expanded:            row.Expanded,
		}
	}

	return &OutlineResponse{
		Rows:        out,
		TotalRows:   total,
		Offset:      offset,
		Virtualized: virtualized,
	}
}

func (s *Service) requireActiveProject(ctx context.Context, projectID uuid.UUID) error {
	p, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		return err
	}
	if !p.IsActive() {
		return shared.NewDomainError("PROJECT_ARCHIVED", "Project is archived and does not accept changes")
	}
	return nil
}

func (s *Service) publishEvents(ctx context.Context, wp *workpackage.WorkPackage) {
	if s.events == nil {
		wp.ClearDomainEvents()
		return
	}
	if err := s.events.Publish(ctx, wp.GetDomainEvents()...); err != nil {
		s.logger.Warn("failed to publish work package events",
			zap.String("work_package_id", wp.ID.String()),
			zap.Error(err))
	}
	wp.ClearDomainEvents()
}

func (s *Service) invalidateOutline(ctx context.Context, projectID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, projectID); err != nil {
		s.logger.Warn("failed to invalidate outline cache",
			zap.String("project_id", projectID.String()),
			zap.Error(err))
	}
}

// outlineCacheKey fingerprints an outline request. Expanded IDs are
// sorted first so logically identical visibility states share an entry.
func outlineCacheKey(req OutlineRequest) string {
	ids := make([]string, len(req.ExpandedIDs))
	for i, id := range req.ExpandedIDs {
		ids[i] = id.String()
	}
	sort.Strings(ids)

	h := sha256.New()
	for _, id := range ids {
		h.Write([]byte(id))
		h.Write([]byte{'|'})
	}
	h.Write([]byte(strconv.FormatBool(req.ExpandAll)))
	h.Write([]byte(strconv.FormatBool(req.IncludeArchived)))
	h.Write([]byte(strconv.Itoa(req.Offset)))
	h.Write([]byte(strconv.Itoa(req.Limit)))
	return hex.EncodeToString(h.Sum(nil))
}

func decimalOrZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}

func parseDate(field, value string) (time.Time, error) {
	t, err := time.Parse(workpackage.DateLayout, value)
	if err != nil {
		return time.Time{}, shared.NewDomainError("INVALID_DATE", "Field "+field+" must be in YYYY-MM-DD format")
	}
	return t, nil
}
