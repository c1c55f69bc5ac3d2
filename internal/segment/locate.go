// Package segment turns an oversized audio file into budget-sized pieces
// cut at natural silence boundaries.
//
// Rough cut positions come from the size budget alone (size is assumed
// roughly proportional to duration within one stream). Each rough position
// is then moved to the nearest silence midpoint within a deviation budget;
// when no silence qualifies the rough position is used as a forced cut.
package segment

import (
	"math"
	"sort"
)

// Locate returns the best cut position for target given sorted candidate
// positions. It picks whichever neighbor of target is closer, preferring
// the earlier one on an exact tie, and falls back to target itself when the
// closest neighbor is farther away than maxDeviation. An empty candidate
// list always yields target.
func Locate(target float64, candidates []float64, maxDeviation float64) float64 {
	if len(candidates) == 0 {
		return target
	}

	idx := sort.SearchFloat64s(candidates, target)
	prevDist := math.Inf(1)
	nextDist := math.Inf(1)
	if idx > 0 {
		prevDist = target - candidates[idx-1]
	}
	if idx < len(candidates) {
		nextDist = candidates[idx] - target
	}

	switch {
	case prevDist <= nextDist && prevDist <= maxDeviation:
		return candidates[idx-1]
	case nextDist < prevDist && nextDist <= maxDeviation:
		return candidates[idx]
	default:
		return target
	}
}
