package workpackage

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workplan/backend/internal/domain/shared"
)

func testDates(t *testing.T) (time.Time, time.Time) {
	t.Helper()
	start, err := time.Parse(DateLayout, "2026-01-01")
	require.NoError(t, err)
	end, err := time.Parse(DateLayout, "2026-03-31")
	require.NoError(t, err)
	return start, end
}

func newTestWorkPackage(t *testing.T, projectID uuid.UUID, name string) *WorkPackage {
	t.Helper()
	start, end := testDates(t)
	wp, err := NewWorkPackage(projectID, name, decimal.NewFromInt(1000), start, end, "Alex Chen")
	require.NoError(t, err)
	return wp
}

func TestNewWorkPackage(t *testing.T) {
	projectID := uuid.New()
	start, end := testDates(t)

	t.Run("creates root work package", func(t *testing.T) {
		wp, err := NewWorkPackage(projectID, "Foundation", decimal.NewFromInt(5000), start, end, "Alex Chen")
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, wp.ID)
		assert.Equal(t, projectID, wp.ProjectID)
		assert.Nil(t, wp.ParentID)
		assert.True(t, wp.IsRoot())
		assert.Equal(t, "Foundation", wp.Name)
		assert.True(t, decimal.NewFromInt(5000).Equal(wp.Budget))
		assert.True(t, wp.ActualCost.IsZero())
		assert.True(t, wp.EarnedValue.IsZero())
		assert.Equal(t, 0.0, wp.PercentComplete)
		assert.Equal(t, 1, wp.GetVersion())
		assert.Len(t, wp.GetDomainEvents(), 1)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewWorkPackage(projectID, "", decimal.Zero, start, end, "Alex Chen")
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_NAME", domainErr.Code)
	})

	t.Run("rejects negative budget", func(t *testing.T) {
		_, err := NewWorkPackage(projectID, "Foundation", decimal.NewFromInt(-1), start, end, "Alex Chen")
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "NEGATIVE_AMOUNT", domainErr.Code)
	})

	t.Run("rejects end before start", func(t *testing.T) {
		_, err := NewWorkPackage(projectID, "Foundation", decimal.Zero, end, start, "Alex Chen")
		assert.ErrorIs(t, err, ErrDateOrder)
	})

	t.Run("rejects missing manager", func(t *testing.T) {
		_, err := NewWorkPackage(projectID, "Foundation", decimal.Zero, start, end, "")
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_MANAGER", domainErr.Code)
	})

	t.Run("truncates dates to day precision", func(t *testing.T) {
		noon := time.Date(2026, 1, 1, 12, 30, 0, 0, time.UTC)
		wp, err := NewWorkPackage(projectID, "Foundation", decimal.Zero, noon, end, "Alex Chen")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), wp.StartDate)
	})
}

func TestNewChildWorkPackage(t *testing.T) {
	projectID := uuid.New()
	start, end := testDates(t)

	t.Run("links to parent in same project", func(t *testing.T) {
		parent := newTestWorkPackage(t, projectID, "Phase 1")
		child, err := NewChildWorkPackage(projectID, "Excavation", decimal.NewFromInt(200), start, end, "Alex Chen", parent)
		require.NoError(t, err)
		require.NotNil(t, child.ParentID)
		assert.Equal(t, parent.ID, *child.ParentID)
	})

	t.Run("rejects nil parent", func(t *testing.T) {
		_, err := NewChildWorkPackage(projectID, "Excavation", decimal.Zero, start, end, "Alex Chen", nil)
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_PARENT", domainErr.Code)
	})

	t.Run("rejects parent from different project", func(t *testing.T) {
		parent := newTestWorkPackage(t, uuid.New(), "Phase 1")
		_, err := NewChildWorkPackage(projectID, "Excavation", decimal.Zero, start, end, "Alex Chen", parent)
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_PARENT", domainErr.Code)
	})
}

func TestWorkPackageMutations(t *testing.T) {
	projectID := uuid.New()

	t.Run("SetPercentComplete enforces range", func(t *testing.T) {
		wp := newTestWorkPackage(t, projectID, "Phase 1")

		require.NoError(t, wp.SetPercentComplete(42.5))
		assert.Equal(t, 42.5, wp.PercentComplete)

		err := wp.SetPercentComplete(101)
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "OUT_OF_RANGE", domainErr.Code)

		err = wp.SetPercentComplete(-0.1)
		assert.Error(t, err)
	})

	t.Run("SetStartDate keeps date order", func(t *testing.T) {
		wp := newTestWorkPackage(t, projectID, "Phase 1")
		err := wp.SetStartDate(wp.EndDate.AddDate(0, 0, 1))
		assert.ErrorIs(t, err, ErrDateOrder)
	})

	t.Run("SetEndDate keeps date order", func(t *testing.T) {
		wp := newTestWorkPackage(t, projectID, "Phase 1")
		err := wp.SetEndDate(wp.StartDate.AddDate(0, 0, -1))
		assert.ErrorIs(t, err, ErrDateOrder)
	})

	t.Run("Reschedule replaces both dates", func(t *testing.T) {
		wp := newTestWorkPackage(t, projectID, "Phase 1")
		start := wp.StartDate.AddDate(0, 6, 0)
		end := start.AddDate(0, 2, 0)
		require.NoError(t, wp.Reschedule(start, end))
		assert.Equal(t, start, wp.StartDate)
		assert.Equal(t, end, wp.EndDate)
	})

	t.Run("mutation increments version", func(t *testing.T) {
		wp := newTestWorkPackage(t, projectID, "Phase 1")
		before := wp.GetVersion()
		require.NoError(t, wp.Rename("Phase 1b"))
		assert.Equal(t, before+1, wp.GetVersion())
	})
}

func TestWorkPackageMoveTo(t *testing.T) {
	projectID := uuid.New()

	t.Run("moves under new parent", func(t *testing.T) {
		wp := newTestWorkPackage(t, projectID, "Task")
		parentID := uuid.New()
		require.NoError(t, wp.MoveTo(&parentID))
		require.NotNil(t, wp.ParentID)
		assert.Equal(t, parentID, *wp.ParentID)
	})

	t.Run("nil parent makes root", func(t *testing.T) {
		wp := newTestWorkPackage(t, projectID, "Task")
		parentID := uuid.New()
		require.NoError(t, wp.MoveTo(&parentID))
		require.NoError(t, wp.MoveTo(nil))
		assert.True(t, wp.IsRoot())
	})

	t.Run("rejects self as parent", func(t *testing.T) {
		wp := newTestWorkPackage(t, projectID, "Task")
		err := wp.MoveTo(&wp.ID)
		assert.ErrorIs(t, err, ErrSelfParent)
	})
}

func TestWorkPackageUnlink(t *testing.T) {
	projectID := uuid.New()

	t.Run("detaches from parent", func(t *testing.T) {
		wp := newTestWorkPackage(t, projectID, "Task")
		parentID := uuid.New()
		require.NoError(t, wp.MoveTo(&parentID))
		wp.ClearDomainEvents()

		wp.Unlink()
		assert.True(t, wp.IsRoot())
		assert.Len(t, wp.GetDomainEvents(), 1)
	})

	t.Run("no-op on root", func(t *testing.T) {
		wp := newTestWorkPackage(t, projectID, "Task")
		wp.ClearDomainEvents()
		before := wp.GetVersion()

		wp.Unlink()
		assert.Equal(t, before, wp.GetVersion())
		assert.Empty(t, wp.GetDomainEvents())
	})
}

func TestWorkPackageArchive(t *testing.T) {
	projectID := uuid.New()

	t.Run("archive then unarchive", func(t *testing.T) {
		wp := newTestWorkPackage(t, projectID, "Task")
		require.NoError(t, wp.Archive())
		assert.True(t, wp.Archived)

		err := wp.Archive()
		assert.Error(t, err)

		require.NoError(t, wp.Unarchive())
		assert.False(t, wp.Archived)

		err = wp.Unarchive()
		assert.Error(t, err)
	})
}
