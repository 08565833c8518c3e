package workpackage

import (
	"github.com/google/uuid"
)

// VisibilityState is the set of work-package IDs whose children are
// currently expanded. Absence means collapsed; the empty state shows
// only roots.
type VisibilityState map[uuid.UUID]struct{}

// NewVisibilityState creates a visibility state from the given expanded IDs
func NewVisibilityState(ids ...uuid.UUID) VisibilityState {
	v := make(VisibilityState, len(ids))
	for _, id := range ids {
		v[id] = struct{}{}
	}
	return v
}

// Expand marks a node's children as visible
func (v VisibilityState) Expand(id uuid.UUID) {
	v[id] = struct{}{}
}

// Collapse hides a node's children
func (v VisibilityState) Collapse(id uuid.UUID) {
	delete(v, id)
}

// IsExpanded reports whether a node's children are visible
func (v VisibilityState) IsExpanded(id uuid.UUID) bool {
	_, ok := v[id]
	return ok
}

// Forest is an index-based view over a flat work-package list. Nodes are
// stored in one arena slice with integer child links instead of pointer
// cycles, so a forest is cheap to rebuild from the flat list on every
// read and is discarded wholesale after the render pass.
type Forest struct {
	records  []WorkPackage
	index    map[uuid.UUID]int
	children [][]int
	roots    []int
	rollups  []*RollupResult
}

// BuildForest converts a flat record list into a forest. Records whose
// parent reference is nil, or points at an ID not present in the list,
// become roots: a missing parent means it was deleted by another actor,
// not that the child is invalid. Child order follows the order of the
// source list; no implicit sorting.
func BuildForest(records []WorkPackage) *Forest {
	f := &Forest{
		records:  make([]WorkPackage, len(records)),
		index:    make(map[uuid.UUID]int, len(records)),
		children: make([][]int, len(records)),
		rollups:  make([]*RollupResult, len(records)),
	}
	copy(f.records, records)

	for i := range f.records {
		f.index[f.records[i].ID] = i
	}

	for i := range f.records {
		parentID := f.records[i].ParentID
		if parentID == nil {
			f.roots = append(f.roots, i)
			continue
		}
		parentIdx, ok := f.index[*parentID]
		if !ok || parentIdx == i {
			// Orphaned reference: treat as a root rather than dropping the record
			f.roots = append(f.roots, i)
			continue
		}
		f.children[parentIdx] = append(f.children[parentIdx], i)
	}

	return f
}

// Len returns the total number of nodes in the forest
func (f *Forest) Len() int {
	return len(f.records)
}

// Roots returns the root-level records in source order
func (f *Forest) Roots() []*WorkPackage {
	out := make([]*WorkPackage, len(f.roots))
	for i, idx := range f.roots {
		out[i] = &f.records[idx]
	}
	return out
}

// Node returns the record with the given ID, if present
func (f *Forest) Node(id uuid.UUID) (*WorkPackage, bool) {
	idx, ok := f.index[id]
	if !ok {
		return nil, false
	}
	return &f.records[idx], true
}

// Children returns the direct children of a node in source order
func (f *Forest) Children(id uuid.UUID) []*WorkPackage {
	idx, ok := f.index[id]
	if !ok {
		return nil
	}
	out := make([]*WorkPackage, len(f.children[idx]))
	for i, childIdx := range f.children[idx] {
		out[i] = &f.records[childIdx]
	}
	return out
}

// HasChildren reports whether a node has at least one child
func (f *Forest) HasChildren(id uuid.UUID) bool {
	idx, ok := f.index[id]
	return ok && len(f.children[idx]) > 0
}

// OutlineRow is one entry of the flattened, depth-annotated projection
// that the rendering layer consumes
type OutlineRow struct {
	Record      *WorkPackage
	Depth       int
	HasChildren bool
	Expanded    bool
}

// Flatten produces the ordered, indented row sequence for the given
// visibility state: depth-first pre-order, a node's children emitted only
// when its ID is in the expanded set. The full sequence is recomputed on
// every call; identical inputs always yield an identical sequence, and
// toggling one node never reorders any other visible node.
func (f *Forest) Flatten(expanded VisibilityState) []OutlineRow {
	rows := make([]OutlineRow, 0, len(f.records))
	for _, idx := range f.roots {
		rows = f.flattenInto(rows, idx, 0, expanded)
	}
	return rows
}

// FlattenAll flattens as if every node were expanded
func (f *Forest) FlattenAll() []OutlineRow {
	all := make(VisibilityState, len(f.records))
	for i := range f.records {
		all[f.records[i].ID] = struct{}{}
	}
	return f.Flatten(all)
}

func (f *Forest) flattenInto(rows []OutlineRow, idx, depth int, expanded VisibilityState) []OutlineRow {
	record := &f.records[idx]
	hasChildren := len(f.children[idx]) > 0
	isExpanded := hasChildren && expanded.IsExpanded(record.ID)

	rows = append(rows, OutlineRow{
		Record:      record,
		Depth:       depth,
		HasChildren: hasChildren,
		Expanded:    isExpanded,
	})

	if isExpanded {
		for _, childIdx := range f.children[idx] {
			rows = f.flattenInto(rows, childIdx, depth+1, expanded)
		}
	}

	return rows
}
