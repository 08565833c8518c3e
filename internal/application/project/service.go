package project

import (
	"context"

	"github.com/google/uuid"

	"github.com/workplan/backend/internal/domain/project"
	"github.com/workplan/backend/internal/domain/shared"
)

// Service handles project lifecycle operations
type Service struct {
	repo project.Repository
}

// NewService creates a new project Service
func NewService(repo project.Repository) *Service {
	return &Service{repo: repo}
}

// Create creates a new project
func (s *Service) Create(ctx context.Context, req CreateProjectRequest) (*ProjectResponse, error) {
	exists, err := s.repo.ExistsByName(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Project with this name already exists")
	}

	p, err := project.NewProject(req.Name, req.Description)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, p); err != nil {
		return nil, err
	}

	resp := ToProjectResponse(p)
	return &resp, nil
}

// GetByID retrieves a project by ID
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*ProjectResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToProjectResponse(p)
	return &resp, nil
}

// List retrieves projects matching the filter
func (s *Service) List(ctx context.Context, filter ProjectListFilter) (*shared.Paginated[ProjectResponse], error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 && filter.PageSize > 0 {
		domainFilter.Page = filter.Page
		domainFilter.PageSize = filter.PageSize
	}
	if filter.Search != "" {
		domainFilter.Search = filter.Search
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}

	page, err := s.repo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	responses := make([]ProjectResponse, len(page.Items))
	for i := range page.Items {
		responses[i] = ToProjectResponse(&page.Items[i])
	}

	result := shared.NewPaginated(responses, page.Total, page.Page, page.PageSize)
	return &result, nil
}

// Update applies a partial patch to a project
func (s *Service) Update(ctx context.Context, id uuid.UUID, req UpdateProjectRequest) (*ProjectResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if err := p.Rename(*req.Name); err != nil {
			return nil, err
		}
	}
	if req.Description != nil {
		p.SetDescription(*req.Description)
	}

	if err := s.repo.Save(ctx, p); err != nil {
		return nil, err
	}

	resp := ToProjectResponse(p)
	return &resp, nil
}

// Archive archives a project
func (s *Service) Archive(ctx context.Context, id uuid.UUID) (*ProjectResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := p.Archive(); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, p); err != nil {
		return nil, err
	}
	resp := ToProjectResponse(p)
	return &resp, nil
}

// Unarchive restores an archived project
func (s *Service) Unarchive(ctx context.Context, id uuid.UUID) (*ProjectResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := p.Unarchive(); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, p); err != nil {
		return nil, err
	}
	resp := ToProjectResponse(p)
	return &resp, nil
}

// Delete removes a project
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
