package workpackage

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RollupResult holds the derived aggregate values for one node: the
// node's own leaf values combined with the recursively rolled-up values
// of all descendants. Rollups are never persisted; they are recomputed
// from the flat list on every read.
type RollupResult struct {
	Budget          decimal.Decimal `json:"budget"`
	ActualCost      decimal.Decimal `json:"actual_cost"`
	EarnedValue     decimal.Decimal `json:"earned_value"`
	PercentComplete float64         `json:"percent_complete"`
}

// Rollup computes the aggregate for the node with the given ID.
// Monetary fields are straight sums of own plus child rollups. Percent
// complete is the arithmetic mean of the node's own value and each
// child's rolled-up percent; it is not cost-weighted.
// Results are memoized per forest; the memo dies with the forest, so a
// rebuild after any mutation invalidates it implicitly.
func (f *Forest) Rollup(id uuid.UUID) (RollupResult, bool) {
	idx, ok := f.index[id]
	if !ok {
		return RollupResult{}, false
	}
	return f.rollupAt(idx), true
}

// RollupAll computes rollups for every node and returns them keyed by ID
func (f *Forest) RollupAll() map[uuid.UUID]RollupResult {
	out := make(map[uuid.UUID]RollupResult, len(f.records))
	for i := range f.records {
		out[f.records[i].ID] = f.rollupAt(i)
	}
	return out
}

func (f *Forest) rollupAt(idx int) RollupResult {
	if cached := f.rollups[idx]; cached != nil {
		return *cached
	}

	record := &f.records[idx]
	result := RollupResult{
		Budget:          record.Budget,
		ActualCost:      record.ActualCost,
		EarnedValue:     record.EarnedValue,
		PercentComplete: record.PercentComplete,
	}

	childIdxs := f.children[idx]
	if len(childIdxs) > 0 {
		percentSum := record.PercentComplete
		for _, childIdx := range childIdxs {
			child := f.rollupAt(childIdx)
			result.Budget = result.Budget.Add(child.Budget)
			result.ActualCost = result.ActualCost.Add(child.ActualCost)
			result.EarnedValue = result.EarnedValue.Add(child.EarnedValue)
			percentSum += child.PercentComplete
		}
		result.PercentComplete = percentSum / float64(len(childIdxs)+1)
	}

	f.rollups[idx] = &result
	return result
}
