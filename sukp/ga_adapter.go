package sukp

import (
	"math/rand"

	"github.com/andreasmzz/metaheuristics/search"
)

// GAAdapter implements search.GAProblem over an Evaluator, restricting the
// shared genetic algorithm to SUKP's boolean-vector chromosome (spec.md
// §4.8 scopes GA's chromosome to SUKP only).
type GAAdapter struct {
	Eval *Evaluator
}

// NewGAAdapter wraps eval for use by search.RunGA.
func NewGAAdapter(eval *Evaluator) *GAAdapter {
	return &GAAdapter{Eval: eval}
}

// Length returns the chromosome length (the instance's dependency count).
func (a *GAAdapter) Length() int { return a.Eval.Inst.D }

// Fitness evaluates a chromosome as a Solution through the evaluator, so
// the GA's fitness tracks the same counted objective as every other method.
func (a *GAAdapter) Fitness(c search.Chromosome) float64 {
	return a.Eval.Objective(FromChromosome(c))
}

// Feasible defers to the evaluator's capacity check.
func (a *GAAdapter) Feasible(c search.Chromosome) bool {
	return a.Eval.Feasible(FromChromosome(c))
}

// RandomMoveChromosome draws one random move from the full move library and
// re-encodes the result as a chromosome; ok is false only when the
// evaluator exhausts its retry budget on a degenerate draw.
func (a *GAAdapter) RandomMoveChromosome(c search.Chromosome, r *rand.Rand) (search.Chromosome, bool) {
	sol, tag := a.Eval.RandomMove(FromChromosome(c), nil, r)
	if tag.Error {
		return c, false
	}
	return sol.(Solution).ToChromosome(), true
}

// Maximize: SUKP GA shares the evaluator's maximize-benefit direction.
func (a *GAAdapter) Maximize() bool { return a.Eval.Maximize() }
