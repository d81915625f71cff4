package sukp

import (
	"math/rand"

	"github.com/andreasmzz/metaheuristics/search"
)

// Neighborhood names for the SUKP move library (C4). Declared as a small,
// closed set per the engine's "never an open string-keyed registry" rule.
const (
	MoveFlipBit        search.MoveName = "flip_bit"
	MoveSwapBits       search.MoveName = "swap_bits"
	MoveReverseSegment search.MoveName = "reverse_segment"
	MoveShiftSegment   search.MoveName = "shift_segment"
	MoveSegment        search.MoveName = "move_segment"
)

var allNeighborhoods = []search.MoveName{
	MoveFlipBit, MoveSwapBits, MoveReverseSegment, MoveShiftSegment, MoveSegment,
}

// Evaluator implements search.Problem for one fixed Instance: feasibility is
// "total selected size <= capacity" and the objective is total acquired
// benefit (spec.md §3/§4.2), maximized.
type Evaluator struct {
	Inst     *Instance
	evalCnt  int64
}

// NewEvaluator wraps inst for use by the search engine.
func NewEvaluator(inst *Instance) *Evaluator {
	return &Evaluator{Inst: inst}
}

// Objective returns total acquired benefit, counting one evaluation.
func (e *Evaluator) Objective(sol search.Solution) float64 {
	e.evalCnt++
	s := sol.(Solution)
	return float64(e.Inst.TotalBenefit(s))
}

// Maximize: SUKP seeks maximum benefit.
func (e *Evaluator) Maximize() bool { return true }

// Feasible reports whether the selected dependencies fit within capacity.
func (e *Evaluator) Feasible(sol search.Solution) bool {
	s := sol.(Solution)
	return e.Inst.TotalSize(s) <= e.Inst.Capacity
}

// Neighborhoods returns the full SUKP neighborhood set.
func (e *Evaluator) Neighborhoods() []search.MoveName {
	return append([]search.MoveName(nil), allNeighborhoods...)
}

// EvaluationCount returns the number of Objective calls so far.
func (e *Evaluator) EvaluationCount() int64 { return e.evalCnt }

// ResetEvaluationCount zeroes the counter.
func (e *Evaluator) ResetEvaluationCount() { e.evalCnt = 0 }

// legalSet intersects names with the evaluator's full legal set; an empty
// names slice means "use the full legal set" per the Problem contract.
func (e *Evaluator) legalSet(names []search.MoveName) []search.MoveName {
	if len(names) == 0 {
		return e.Neighborhoods()
	}
	legal := make(map[search.MoveName]bool, len(allNeighborhoods))
	for _, n := range allNeighborhoods {
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

// RandomMove proposes one pseudo-random neighbor from the intersection of
// names with the legal neighborhood set. Retries a degenerate draw (e.g. a
// zero-length segment move on a 1-dependency instance) up to
// search.MaxRandomMoveRetries times before reporting an error tag.
func (e *Evaluator) RandomMove(sol search.Solution, names []search.MoveName, r *rand.Rand) (search.Solution, search.MoveTag) {
	s := sol.(Solution)
	legal := e.legalSet(names)
	if len(legal) == 0 || len(s) == 0 {
		return sol, search.ErrorTag("")
	}
	for attempt := 0; attempt < search.MaxRandomMoveRetries; attempt++ {
		name := legal[r.Intn(len(legal))]
		cand, tag, ok := applyRandomMove(s, name, r)
		if ok {
			return cand, tag
		}
	}
	return sol, search.ErrorTag(legal[0])
}

// Enumerate lazily yields every neighbor reachable by one application of
// name, in canonical parameter order.
func (e *Evaluator) Enumerate(sol search.Solution, name search.MoveName, visit func(search.Solution, search.MoveTag) bool) {
	s := sol.(Solution)
	enumerateMove(s, name, visit)
}
