package workpackage

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/workplan/backend/internal/domain/project"
	"github.com/workplan/backend/internal/domain/shared"
	"github.com/workplan/backend/internal/domain/workpackage"
)

// MockWorkPackageRepository is a mock implementation of workpackage.Repository
type MockWorkPackageRepository struct {
	mock.Mock
}

func (m *MockWorkPackageRepository) Save(ctx context.Context, wp *workpackage.WorkPackage) error {
	args := m.Called(ctx, wp)
	return args.Error(0)
}

func (m *MockWorkPackageRepository) FindByID(ctx context.Context, projectID, id uuid.UUID) (*workpackage.WorkPackage, error) {
	args := m.Called(ctx, projectID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*workpackage.WorkPackage), args.Error(1)
}

func (m *MockWorkPackageRepository) FindAllByProject(ctx context.Context, projectID uuid.UUID, includeArchived bool) ([]workpackage.WorkPackage, error) {
	args := m.Called(ctx, projectID, includeArchived)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]workpackage.WorkPackage), args.Error(1)
}

func (m *MockWorkPackageRepository) FindChildren(ctx context.Context, projectID, parentID uuid.UUID) ([]workpackage.WorkPackage, error) {
	args := m.Called(ctx, projectID, parentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]workpackage.WorkPackage), args.Error(1)
}

func (m *MockWorkPackageRepository) CountByProject(ctx context.Context, projectID uuid.UUID, includeArchived bool) (int64, error) {
	args := m.Called(ctx, projectID, includeArchived)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockWorkPackageRepository) UnlinkChildren(ctx context.Context, projectID, parentID uuid.UUID) (int64, error) {
	args := m.Called(ctx, projectID, parentID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockWorkPackageRepository) Delete(ctx context.Context, projectID, id uuid.UUID) error {
	args := m.Called(ctx, projectID, id)
	return args.Error(0)
}

func (m *MockWorkPackageRepository) SaveAll(ctx context.Context, wps []*workpackage.WorkPackage) error {
	args := m.Called(ctx, wps)
	return args.Error(0)
}

// MockProjectRepository is a mock implementation of project.Repository
type MockProjectRepository struct {
	mock.Mock
}

func (m *MockProjectRepository) Save(ctx context.Context, p *project.Project) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProjectRepository) FindByID(ctx context.Context, id uuid.UUID) (*project.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*project.Project), args.Error(1)
}

func (m *MockProjectRepository) FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[project.Project], error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[project.Project]), args.Error(1)
}

func (m *MockProjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProjectRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

// MockOutlineCache is a mock implementation of workpackage.OutlineCache
type MockOutlineCache struct {
	mock.Mock
}

func (m *MockOutlineCache) Get(ctx context.Context, projectID uuid.UUID, key string) ([]byte, error) {
	args := m.Called(ctx, projectID, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockOutlineCache) Set(ctx context.Context, projectID uuid.UUID, key string, payload []byte, ttl time.Duration) error {
	args := m.Called(ctx, projectID, key, payload, ttl)
	return args.Error(0)
}

func (m *MockOutlineCache) Invalidate(ctx context.Context, projectID uuid.UUID) error {
	args := m.Called(ctx, projectID)
	return args.Error(0)
}

func (m *MockOutlineCache) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockEventPublisher is a mock implementation of shared.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}
