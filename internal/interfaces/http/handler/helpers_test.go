package handler

import (
	"context"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	appproject "github.com/workplan/backend/internal/application/project"
	appwp "github.com/workplan/backend/internal/application/workpackage"
	"github.com/workplan/backend/internal/domain/project"
	"github.com/workplan/backend/internal/domain/shared"
	"github.com/workplan/backend/internal/domain/workpackage"
	"github.com/workplan/backend/internal/interfaces/http/middleware"
	"github.com/workplan/backend/internal/interfaces/http/router"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

// stubWorkPackageRepo is an in-memory workpackage.Repository preserving
// insertion order, which stands in for the created_at ordering the real
// repository guarantees.
type stubWorkPackageRepo struct {
	mu    sync.Mutex
	items []*workpackage.WorkPackage
}

func (r *stubWorkPackageRepo) Save(ctx context.Context, wp *workpackage.WorkPackage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.items {
		if existing.ID == wp.ID {
			r.items[i] = wp
			return nil
		}
	}
	r.items = append(r.items, wp)
	return nil
}

func (r *stubWorkPackageRepo) SaveAll(ctx context.Context, wps []*workpackage.WorkPackage) error {
	for _, wp := range wps {
		if err := r.Save(ctx, wp); err != nil {
			return err
		}
	}
	return nil
}

func (r *stubWorkPackageRepo) FindByID(ctx context.Context, projectID, id uuid.UUID) (*workpackage.WorkPackage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, wp := range r.items {
		if wp.ProjectID == projectID && wp.ID == id {
			cp := *wp
			return &cp, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *stubWorkPackageRepo) FindAllByProject(ctx context.Context, projectID uuid.UUID, includeArchived bool) ([]workpackage.WorkPackage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []workpackage.WorkPackage
	for _, wp := range r.items {
		if wp.ProjectID != projectID {
			continue
		}
		if wp.Archived && !includeArchived {
			continue
		}
		out = append(out, *wp)
	}
	return out, nil
}

func (r *stubWorkPackageRepo) FindChildren(ctx context.Context, projectID, parentID uuid.UUID) ([]workpackage.WorkPackage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []workpackage.WorkPackage
	for _, wp := range r.items {
		if wp.ProjectID == projectID && wp.ParentID != nil && *wp.ParentID == parentID {
			out = append(out, *wp)
		}
	}
	return out, nil
}

func (r *stubWorkPackageRepo) CountByProject(ctx context.Context, projectID uuid.UUID, includeArchived bool) (int64, error) {
	all, err := r.FindAllByProject(ctx, projectID, includeArchived)
	if err != nil {
		return 0, err
	}
	return int64(len(all)), nil
}

func (r *stubWorkPackageRepo) UnlinkChildren(ctx context.Context, projectID, parentID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, wp := range r.items {
		if wp.ProjectID == projectID && wp.ParentID != nil && *wp.ParentID == parentID {
			wp.ParentID = nil
			n++
		}
	}
	return n, nil
}

func (r *stubWorkPackageRepo) Delete(ctx context.Context, projectID, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, wp := range r.items {
		if wp.ProjectID == projectID && wp.ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return shared.ErrNotFound
}

// stubProjectRepo is an in-memory project.Repository
type stubProjectRepo struct {
	mu       sync.Mutex
	projects map[uuid.UUID]*project.Project
}

func newStubProjectRepo() *stubProjectRepo {
	return &stubProjectRepo{projects: make(map[uuid.UUID]*project.Project)}
}

func (r *stubProjectRepo) Save(ctx context.Context, p *project.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.projects[p.ID] = p
	return nil
}

func (r *stubProjectRepo) FindByID(ctx context.Context, id uuid.UUID) (*project.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.projects[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, shared.ErrNotFound
}

func (r *stubProjectRepo) FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[project.Project], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []project.Project
	for _, p := range r.projects {
		items = append(items, *p)
	}
	page := shared.NewPaginated(items, int64(len(items)), filter.Page, filter.PageSize)
	return &page, nil
}

func (r *stubProjectRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.projects[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.projects, id)
	return nil
}

func (r *stubProjectRepo) ExistsByName(ctx context.Context, name string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.projects {
		if p.Name == name {
			return true, nil
		}
	}
	return false, nil
}

// testEnv wires real services over the stub repositories and exposes
// the full routed engine
type testEnv struct {
	engine      *gin.Engine
	wpRepo      *stubWorkPackageRepo
	projectRepo *stubProjectRepo
}

func newTestEnv() *testEnv {
	wpRepo := &stubWorkPackageRepo{}
	projectRepo := newStubProjectRepo()

	wpService := appwp.NewService(wpRepo, projectRepo)
	bulkService := appwp.NewBulkService(wpRepo, projectRepo)
	projectService := appproject.NewService(projectRepo)

	engine := gin.New()
	r := router.NewRouter(engine)
	r.Register(NewProjectHandler(projectService))
	r.Register(NewWorkPackageHandler(wpService))
	r.Register(NewBulkHandler(bulkService))
	r.Setup()

	return &testEnv{engine: engine, wpRepo: wpRepo, projectRepo: projectRepo}
}

func (e *testEnv) seedProject(name string) *project.Project {
	p, err := project.NewProject(name, "")
	if err != nil {
		panic(err)
	}
	if err := e.projectRepo.Save(context.Background(), p); err != nil {
		panic(err)
	}
	return p
}

func (e *testEnv) seedWorkPackage(projectID uuid.UUID, name string, parent *workpackage.WorkPackage) *workpackage.WorkPackage {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)

	var wp *workpackage.WorkPackage
	var err error
	if parent == nil {
		wp, err = workpackage.NewWorkPackage(projectID, name, decimal.NewFromInt(1000), start, end, "Alex Chen")
	} else {
		wp, err = workpackage.NewChildWorkPackage(projectID, name, decimal.NewFromInt(1000), start, end, "Alex Chen", parent)
	}
	if err != nil {
		panic(err)
	}
	if err := e.wpRepo.Save(context.Background(), wp); err != nil {
		panic(err)
	}
	return wp
}
