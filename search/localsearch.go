package search

import "math/rand"

// LoopState is the shared state machine for every C7 local-search loop:
// RUNNING is the only non-terminal state; EXHAUSTED and TIMEOUT are terminal.
type LoopState int

const (
	StateRunning LoopState = iota
	StateExhausted
	StateTimeout
)

// LoopResult is what every local-search loop returns: the last accepted
// solution, the terminal state reached, and a diagnostic iteration count.
type LoopResult struct {
	Solution   Solution
	State      LoopState
	Iterations int
}

// RefinementKind selects which C6 primitive a configured Step applies.
type RefinementKind int

const (
	KindRandomImproving RefinementKind = iota
	KindFirstImproving
	KindBestImproving
)

// Step is one configured refinement-step entry in a local-search loop's
// step list: a C6 primitive bound to a specific neighborhood-name subset
// (and, for the random kind, its own RNG stream).
type Step struct {
	Kind  RefinementKind
	Names []MoveName
	R     *rand.Rand
}

// Apply runs this step's configured C6 primitive once.
func (s Step) Apply(p Problem, cur Solution, budget *Budget) StepResult {
	switch s.Kind {
	case KindRandomImproving:
		return RandomImprovingStep(p, cur, s.Names, s.R, budget)
	case KindBestImproving:
		return BestImprovingStep(p, cur, s.Names, budget)
	default:
		return FirstImprovingStep(p, cur, s.Names, budget)
	}
}

// HillClimbing cycles over the refinement-step list circularly. It
// terminates when the current solution has been offered to every configured
// step without improvement in a full cycle (failed_steps == len(steps)), or
// on timeout. Equivalent to "restart the cycle on improvement, advance on
// failure, stop when a full cycle fails".
func HillClimbing(p Problem, start Solution, steps []Step, budget *Budget) (LoopResult, error) {
	if len(steps) == 0 {
		return LoopResult{}, ErrNoSteps
	}
	cur := start
	failed := 0
	idx := 0
	iterations := 0
	for {
		if budget.DeadlineExpired() {
			return LoopResult{Solution: cur, State: StateTimeout, Iterations: iterations}, nil
		}
		iterations++
		res := steps[idx].Apply(p, cur, budget)
		if res.Outcome == Improved {
			cur = res.Solution
			failed = 0
			idx = 0
			continue
		}
		failed++
		idx = (idx + 1) % len(steps)
		if failed >= len(steps) {
			return LoopResult{Solution: cur, State: StateExhausted, Iterations: iterations}, nil
		}
	}
}

// RandomDescent picks a refinement step uniformly at random each round. On
// failure it records that step as failed for the current solution; on
// improvement it clears the failure set. Stops when the failure set equals
// the configured set, when maxTries is reached, or on timeout.
func RandomDescent(p Problem, start Solution, steps []Step, r *rand.Rand, maxTries int, budget *Budget) (LoopResult, error) {
	if len(steps) == 0 {
		return LoopResult{}, ErrNoSteps
	}
	cur := start
	failedSet := make(map[int]bool, len(steps))
	iterations := 0
	for {
		if budget.DeadlineExpired() {
			return LoopResult{Solution: cur, State: StateTimeout, Iterations: iterations}, nil
		}
		if maxTries > 0 && iterations >= maxTries {
			return LoopResult{Solution: cur, State: StateExhausted, Iterations: iterations}, nil
		}
		iterations++
		i := r.Intn(len(steps))
		res := steps[i].Apply(p, cur, budget)
		if res.Outcome == Improved {
			cur = res.Solution
			failedSet = make(map[int]bool, len(steps))
			continue
		}
		failedSet[i] = true
		if len(failedSet) >= len(steps) {
			return LoopResult{Solution: cur, State: StateExhausted, Iterations: iterations}, nil
		}
	}
}

// VND keeps an indexed pointer into the refinement-step list: on
// improvement the pointer resets to 0; on failure it advances; the loop
// stops when the pointer passes the end, or on timeout.
func VND(p Problem, start Solution, steps []Step, budget *Budget) (LoopResult, error) {
	if len(steps) == 0 {
		return LoopResult{}, ErrNoSteps
	}
	cur := start
	idx := 0
	iterations := 0
	for idx < len(steps) {
		if budget.DeadlineExpired() {
			return LoopResult{Solution: cur, State: StateTimeout, Iterations: iterations}, nil
		}
		iterations++
		res := steps[idx].Apply(p, cur, budget)
		if res.Outcome == Improved {
			cur = res.Solution
			idx = 0
			continue
		}
		idx++
	}
	return LoopResult{Solution: cur, State: StateExhausted, Iterations: iterations}, nil
}

// RVND behaves like VND but reshuffles the refinement-step list. outerShuffle
// shuffles the list once before the loop starts; innerShuffle reshuffles it
// every time the pointer resets on improvement. Both flags are surfaced as
// explicit parameters rather than hardcoded booleans (spec.md §9, defect 2).
func RVND(p Problem, start Solution, steps []Step, r *rand.Rand, outerShuffle, innerShuffle bool, budget *Budget) (LoopResult, error) {
	if len(steps) == 0 {
		return LoopResult{}, ErrNoSteps
	}
	work := make([]Step, len(steps))
	copy(work, steps)
	if outerShuffle {
		shuffleSteps(work, r)
	}

	cur := start
	idx := 0
	iterations := 0
	for idx < len(work) {
		if budget.DeadlineExpired() {
			return LoopResult{Solution: cur, State: StateTimeout, Iterations: iterations}, nil
		}
		iterations++
		res := work[idx].Apply(p, cur, budget)
		if res.Outcome == Improved {
			cur = res.Solution
			idx = 0
			if innerShuffle {
				shuffleSteps(work, r)
			}
			continue
		}
		idx++
	}
	return LoopResult{Solution: cur, State: StateExhausted, Iterations: iterations}, nil
}

// shuffleSteps performs a Fisher-Yates shuffle of a Step slice in place.
func shuffleSteps(s []Step, r *rand.Rand) {
	for i := len(s) - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}
