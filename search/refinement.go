package search

import "math/rand"

// StepOutcome classifies the result of one refinement-step application.
type StepOutcome int

const (
	// Improved means Solution strictly improves over the input and is feasible.
	Improved StepOutcome = iota
	// NoImprovement means no improving feasible neighbor was found under budget;
	// Solution equals the input unchanged.
	NoImprovement
)

// StepResult is what every C6 primitive returns: at most one improving
// feasible neighbor, or a distinguished "no improvement" outcome carrying
// the original solution unchanged.
type StepResult struct {
	Solution Solution
	Outcome  StepOutcome
	Tag      MoveTag
}

// RandomImprovingStep draws random moves until one strictly improves the
// objective and is feasible, or the budget expires. Infeasible candidates
// are silently skipped and do not consume the "no improvement" ticket.
func RandomImprovingStep(p Problem, cur Solution, names []MoveName, r *rand.Rand, budget *Budget) StepResult {
	base := p.Objective(cur)
	for !budget.Exhausted() {
		budget.Tick()
		cand, tag := p.RandomMove(cur, names, r)
		if tag.Error {
			continue
		}
		if !p.Feasible(cand) {
			continue
		}
		val := p.Objective(cand)
		if better(p, val, base) {
			return StepResult{Solution: cand, Outcome: Improved, Tag: tag}
		}
	}
	return StepResult{Solution: cur, Outcome: NoImprovement}
}

// FirstImprovingStep iterates neighborhoods in the given order; for each it
// enumerates parameter tuples in canonical order and returns the first
// strictly improving feasible neighbor. Stops when every neighborhood has
// been exhausted or the budget expires.
func FirstImprovingStep(p Problem, cur Solution, names []MoveName, budget *Budget) StepResult {
	base := p.Objective(cur)
	if len(names) == 0 {
		names = p.Neighborhoods()
	}

	var found StepResult
	ok := false
	for _, name := range names {
		if budget.Exhausted() {
			break
		}
		p.Enumerate(cur, name, func(cand Solution, tag MoveTag) bool {
			if budget.Exhausted() {
				return false
			}
			budget.Tick()
			if tag.Error || !p.Feasible(cand) {
				return true
			}
			val := p.Objective(cand)
			if better(p, val, base) {
				found = StepResult{Solution: cand, Outcome: Improved, Tag: tag}
				ok = true
				return false
			}
			return true
		})
		if ok {
			break
		}
	}
	if ok {
		return found
	}
	return StepResult{Solution: cur, Outcome: NoImprovement}
}

// BestImprovingStep enumerates the entire union of the given neighborhoods,
// keeps the best strictly improving candidate observed, and returns it at
// the end. On timeout it returns the best seen so far (possibly "no
// improvement").
func BestImprovingStep(p Problem, cur Solution, names []MoveName, budget *Budget) StepResult {
	base := p.Objective(cur)
	if len(names) == 0 {
		names = p.Neighborhoods()
	}

	best := StepResult{Solution: cur, Outcome: NoImprovement}
	bestVal := base
	have := false
	for _, name := range names {
		if budget.Exhausted() {
			break
		}
		p.Enumerate(cur, name, func(cand Solution, tag MoveTag) bool {
			if budget.Exhausted() {
				return false
			}
			budget.Tick()
			if tag.Error || !p.Feasible(cand) {
				return true
			}
			val := p.Objective(cand)
			if better(p, val, base) && (!have || better(p, val, bestVal)) {
				best = StepResult{Solution: cand, Outcome: Improved, Tag: tag}
				bestVal = val
				have = true
			}
			return true
		})
	}
	return best
}
