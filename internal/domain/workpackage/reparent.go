package workpackage

import (
	"github.com/google/uuid"
	"github.com/workplan/backend/internal/domain/shared"
)

// Reparent rejection errors
var (
	ErrSelfParent = shared.NewDomainError("SELF_PARENT", "A work package cannot be its own parent")
	ErrCycle      = shared.NewDomainError("CYCLE_DETECTED", "Move would make a work package a descendant of itself")
)

// CanReparent checks whether dragging draggedID onto targetID is a legal
// move within the given flat record list. It walks the parent chain
// upward from the target: if the dragged node appears among the target's
// ancestors (or is the target itself), the move would create a cycle.
// CanReparent performs no mutation; it must run before any move request
// reaches the store.
func CanReparent(records []WorkPackage, draggedID, targetID uuid.UUID) error {
	if draggedID == targetID {
		return ErrSelfParent
	}

	parents := make(map[uuid.UUID]*uuid.UUID, len(records))
	present := make(map[uuid.UUID]struct{}, len(records))
	for i := range records {
		parents[records[i].ID] = records[i].ParentID
		present[records[i].ID] = struct{}{}
	}

	if _, ok := present[draggedID]; !ok {
		return shared.ErrNotFound
	}
	if _, ok := present[targetID]; !ok {
		return shared.ErrNotFound
	}

	// Walk ancestors of the target; the visited set guards against
	// pre-existing corrupt chains so the walk always terminates.
	visited := make(map[uuid.UUID]struct{})
	current := targetID
	for {
		if _, seen := visited[current]; seen {
			return nil
		}
		visited[current] = struct{}{}

		parentID := parents[current]
		if parentID == nil {
			return nil
		}
		if *parentID == draggedID {
			return ErrCycle
		}
		if _, ok := present[*parentID]; !ok {
			// Orphaned reference: chain ends here (the node renders as a root)
			return nil
		}
		current = *parentID
	}
}
