package transport

import (
	"math"
	"math/rand"

	"github.com/andreasmzz/metaheuristics/matrix"
	"github.com/andreasmzz/metaheuristics/search"
)

// Metric selects which distance function Objective reports (spec.md §4.1
// "route_cost always returns both; callers pick by metric flag").
type Metric int

const (
	Euclidean Metric = iota
	Manhattan
)

// Neighborhood names for the transport move library (C4).
const (
	MoveInsertPoint        search.MoveName = "insert_point"
	MoveRemoveByIndex      search.MoveName = "remove_point_by_index"
	MoveRemoveByValue      search.MoveName = "remove_point_by_value"
	MoveSwapPoints         search.MoveName = "swap_points"
	MoveReverseSegmentT    search.MoveName = "reverse_segment"
	MoveShiftSegmentT      search.MoveName = "shift_segment"
	MoveSegmentT           search.MoveName = "move_segment"
)

var allNeighborhoodsT = []search.MoveName{
	MoveInsertPoint, MoveRemoveByIndex, MoveRemoveByValue, MoveSwapPoints,
	MoveReverseSegmentT, MoveShiftSegmentT, MoveSegmentT,
}

// Evaluator implements search.Problem for one fixed Instance: feasibility is
// route completeness plus per-student precedence (spec.md §4.1's
// feasible_route), and the objective is route cost under the configured
// metric, minimized. Pairwise distances are precomputed once into a pair of
// dense matrices (one per metric) so route_cost is a sequence of O(1)
// lookups rather than repeated sqrt/abs work over the same point pairs.
type Evaluator struct {
	Inst    *Instance
	Metric  Metric
	evalCnt int64

	euclid    *matrix.Dense
	manhattan *matrix.Dense
}

// NewEvaluator wraps inst for use by the search engine, precomputing its
// all-pairs distance matrices. NumPoints==0 instances skip precomputation
// (matrix.NewDense rejects non-positive dimensions).
func NewEvaluator(inst *Instance, metric Metric) *Evaluator {
	e := &Evaluator{Inst: inst, Metric: metric}
	n := inst.NumPoints()
	if n == 0 {
		return e
	}
	euclid, err := matrix.NewDense(n, n)
	if err != nil {
		return e
	}
	manhattan, err := matrix.NewDense(n, n)
	if err != nil {
		return e
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			a := inst.Pos[i]
			b := inst.Pos[j]
			dr := float64(a.Row - b.Row)
			dc := float64(a.Col - b.Col)
			_ = euclid.Set(i, j, math.Sqrt(dr*dr+dc*dc))
			_ = manhattan.Set(i, j, float64(absInt(a.Row-b.Row)+absInt(a.Col-b.Col)))
		}
	}
	e.euclid = euclid
	e.manhattan = manhattan
	return e
}

// RouteCost returns both the Euclidean and Manhattan cost of sol's route,
// always computing both per spec.md §4.1, by summing precomputed pairwise
// distances. A route shorter than two points costs 0 under either metric.
func (e *Evaluator) RouteCost(sol Solution) (euclidean float64, manhattan int64) {
	if len(sol.Route) < 2 || e.euclid == nil {
		return 0, 0
	}
	for i := 1; i < len(sol.Route); i++ {
		from, to := sol.Route[i-1], sol.Route[i]
		ed, _ := e.euclid.At(from, to)
		md, _ := e.manhattan.At(from, to)
		euclidean += ed
		manhattan += int64(md)
	}
	return euclidean, manhattan
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Objective reports the configured metric's cost, counting one evaluation.
func (e *Evaluator) Objective(sol search.Solution) float64 {
	e.evalCnt++
	s := sol.(Solution)
	euclidean, manhattan := e.RouteCost(s)
	if e.Metric == Manhattan {
		return float64(manhattan)
	}
	return euclidean
}

// Maximize: transport seeks minimum route cost.
func (e *Evaluator) Maximize() bool { return false }

// Feasible verifies completeness (every school and student index appears
// exactly once) and, for every student, the precedence constraint against
// their assigned school under the solution's direction.
//
// Indexing follows the corrected point-numSchools offset (spec.md §9,
// defect 5): a route entry idx >= Schools names student (idx - Schools),
// not (idx - Schools - 1).
func (e *Evaluator) Feasible(sol search.Solution) bool {
	s := sol.(Solution)
	n := e.Inst.NumPoints()
	if len(s.Route) != n {
		return false
	}
	seen := make([]bool, n)
	pos := make([]int, n)
	for i, v := range s.Route {
		if v < 0 || v >= n || seen[v] {
			return false
		}
		seen[v] = true
		pos[v] = i
	}
	for _, on := range seen {
		if !on {
			return false
		}
	}
	for studentIdx := 0; studentIdx < e.Inst.Students; studentIdx++ {
		point := e.Inst.Schools + studentIdx
		school := e.Inst.School[studentIdx]
		studentPos := pos[point]
		schoolPos := pos[school]
		if s.Going == ToSchool {
			if !(studentPos < schoolPos) {
				return false
			}
		} else {
			if !(studentPos > schoolPos) {
				return false
			}
		}
	}
	return true
}

// Neighborhoods returns the full transport neighborhood set.
func (e *Evaluator) Neighborhoods() []search.MoveName {
	return append([]search.MoveName(nil), allNeighborhoodsT...)
}

// EvaluationCount returns the number of Objective calls so far.
func (e *Evaluator) EvaluationCount() int64 { return e.evalCnt }

// ResetEvaluationCount zeroes the counter.
func (e *Evaluator) ResetEvaluationCount() { e.evalCnt = 0 }

func (e *Evaluator) legalSet(names []search.MoveName) []search.MoveName {
	if len(names) == 0 {
		return e.Neighborhoods()
	}
	legal := make(map[search.MoveName]bool, len(allNeighborhoodsT))
	for _, n := range allNeighborhoodsT {
		legal[n] = true
	}
	var out []search.MoveName
	for _, n := range names {
		if legal[n] {
			out = append(out, n)
		}
	}
	return out
}

// RandomMove proposes one pseudo-random neighbor. For a length-0 route only
// insert_point is legal; for length-1, only insert and the two removes
// (spec.md §4.2). Retries a degenerate draw up to
// search.MaxRandomMoveRetries times.
func (e *Evaluator) RandomMove(sol search.Solution, names []search.MoveName, r *rand.Rand) (search.Solution, search.MoveTag) {
	s := sol.(Solution)
	legal := e.legalSet(names)
	legal = restrictToLength(legal, len(s.Route))
	if len(legal) == 0 {
		return sol, search.ErrorTag("")
	}
	for attempt := 0; attempt < search.MaxRandomMoveRetries; attempt++ {
		name := legal[r.Intn(len(legal))]
		cand, tag, ok := applyRandomMoveT(s, e.Inst.NumPoints(), name, r)
		if ok {
			return cand, tag
		}
	}
	return sol, search.ErrorTag(legal[0])
}

// restrictToLength drops neighborhoods that are structurally illegal for a
// route of the given length (spec.md §4.2's length-0/length-1 special case).
func restrictToLength(names []search.MoveName, length int) []search.MoveName {
	if length >= 2 {
		return names
	}
	var out []search.MoveName
	for _, n := range names {
		switch {
		case length == 0 && n == MoveInsertPoint:
			out = append(out, n)
		case length == 1 && (n == MoveInsertPoint || n == MoveRemoveByIndex || n == MoveRemoveByValue):
			out = append(out, n)
		}
	}
	return out
}

// Enumerate lazily yields every neighbor reachable by one application of
// name, in canonical parameter order.
func (e *Evaluator) Enumerate(sol search.Solution, name search.MoveName, visit func(search.Solution, search.MoveTag) bool) {
	s := sol.(Solution)
	enumerateMoveT(s, e.Inst.NumPoints(), name, visit)
}
