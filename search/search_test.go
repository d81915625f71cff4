package search_test

import (
	"math/rand"
	"testing"
	"time"

	"github.com/andreasmzz/metaheuristics/search"
	"github.com/stretchr/testify/require"
)

// bitSolution is a toy Solution: maximize the number of set bits in a
// fixed-length boolean vector, with a single "flip_bit" neighborhood. It
// exists only to exercise the generic engine in search_test.go.
type bitSolution []bool

func (b bitSolution) Clone() search.Solution {
	out := make(bitSolution, len(b))
	copy(out, b)
	return out
}

const flipBit search.MoveName = "flip_bit"

type bitProblem struct {
	n       int
	evalCnt int64
}

func (p *bitProblem) Objective(sol search.Solution) float64 {
	p.evalCnt++
	s := sol.(bitSolution)
	count := 0.0
	for _, b := range s {
		if b {
			count++
		}
	}
	return count
}

func (p *bitProblem) Maximize() bool { return true }

func (p *bitProblem) Feasible(search.Solution) bool { return true }

func (p *bitProblem) RandomMove(sol search.Solution, names []search.MoveName, r *rand.Rand) (search.Solution, search.MoveTag) {
	s := sol.(bitSolution).Clone().(bitSolution)
	i := r.Intn(p.n)
	s[i] = !s[i]
	return s, search.Tag(flipBit, i)
}

func (p *bitProblem) Enumerate(sol search.Solution, name search.MoveName, visit func(search.Solution, search.MoveTag) bool) {
	if name != flipBit {
		return
	}
	s := sol.(bitSolution)
	for i := 0; i < len(s); i++ {
		cand := s.Clone().(bitSolution)
		cand[i] = !cand[i]
		if !visit(cand, search.Tag(flipBit, i)) {
			return
		}
	}
}

func (p *bitProblem) Neighborhoods() []search.MoveName { return []search.MoveName{flipBit} }
func (p *bitProblem) EvaluationCount() int64           { return p.evalCnt }
func (p *bitProblem) ResetEvaluationCount()             { p.evalCnt = 0 }

func allZeros(n int) bitSolution { return make(bitSolution, n) }

func TestHillClimbing_ReachesAllOnes(t *testing.T) {
	p := &bitProblem{n: 5}
	budget := search.NewBudget(time.Second, 0)
	steps := []search.Step{{Kind: search.KindFirstImproving, Names: []search.MoveName{flipBit}}}
	res, err := search.HillClimbing(p, allZeros(5), steps, budget)
	require.NoError(t, err)
	require.Equal(t, search.StateExhausted, res.State)
	require.Equal(t, float64(5), p.Objective(res.Solution))
}

func TestHillClimbing_NoStepsIsConfigError(t *testing.T) {
	p := &bitProblem{n: 3}
	_, err := search.HillClimbing(p, allZeros(3), nil, search.Unbounded())
	require.ErrorIs(t, err, search.ErrNoSteps)
}

func TestRandomDescent_Monotone(t *testing.T) {
	p := &bitProblem{n: 8}
	r := rand.New(rand.NewSource(1))
	steps := []search.Step{{Kind: search.KindRandomImproving, Names: []search.MoveName{flipBit}, R: r}}
	start := allZeros(8)
	startVal := p.Objective(start)
	res, err := search.RandomDescent(p, start, steps, r, 10000, search.NewBudget(2*time.Second, 0))
	require.NoError(t, err)
	require.GreaterOrEqual(t, p.Objective(res.Solution), startVal)
}

func TestVND_ReachesOptimum(t *testing.T) {
	p := &bitProblem{n: 6}
	steps := []search.Step{{Kind: search.KindFirstImproving, Names: []search.MoveName{flipBit}}}
	res, err := search.VND(p, allZeros(6), steps, search.Unbounded())
	require.NoError(t, err)
	require.Equal(t, float64(6), p.Objective(res.Solution))
}

func TestRVND_ReachesOptimum(t *testing.T) {
	p := &bitProblem{n: 6}
	r := rand.New(rand.NewSource(2))
	steps := []search.Step{{Kind: search.KindFirstImproving, Names: []search.MoveName{flipBit}}}
	res, err := search.RVND(p, allZeros(6), steps, r, true, true, search.Unbounded())
	require.NoError(t, err)
	require.Equal(t, float64(6), p.Objective(res.Solution))
}

func TestSimulatedAnnealing_ReturnsAtLeastStart(t *testing.T) {
	p := &bitProblem{n: 10}
	r := rand.New(rand.NewSource(3))
	start := allZeros(10)
	startVal := p.Objective(start)
	opts := search.SAOptions{
		InitialTemp: 10,
		Alpha:       0.9,
		TMin:        1,
		MoveNames:   []search.MoveName{flipBit},
		MaxTries:    5000,
	}
	res := search.SimulatedAnnealing(p, start, r, opts, search.NewBudget(2*time.Second, 0))
	require.GreaterOrEqual(t, res.Objective, startVal)
}

func TestCalibrateTemperature_ReturnsUsefulTemp(t *testing.T) {
	p := &bitProblem{n: 10}
	r := rand.New(rand.NewSource(4))
	opts := search.CalibrationOptions{
		InitialTemp: 1,
		Beta:        1.5,
		Gamma:       0.1,
		TryWindow:   20,
		MoveNames:   []search.MoveName{flipBit},
	}
	res := search.CalibrateTemperature(p, allZeros(10), r, opts)
	require.Greater(t, res.UsefulTemp, 0.0)
	require.Equal(t, 1.5, res.Beta)
}

func TestRecordToRecordTravel(t *testing.T) {
	p := &bitProblem{n: 8}
	r := rand.New(rand.NewSource(5))
	start := allZeros(8)
	startVal := p.Objective(start)
	opts := search.RRTOptions{
		InitialTolerance: 1,
		Alpha:            0.95,
		MoveNames:        []search.MoveName{flipBit},
		MaxNoImprove:     500,
	}
	res := search.RecordToRecordTravel(p, start, r, opts, search.Unbounded())
	require.GreaterOrEqual(t, res.Objective, startVal)
}

func TestGreatDeluge(t *testing.T) {
	p := &bitProblem{n: 8}
	r := rand.New(rand.NewSource(6))
	start := bitSolution{true, true, true, true, false, false, false, false}
	startVal := p.Objective(start)
	opts := search.GreatDelugeOptions{
		RainFactor:     0.5,
		OuterTryBudget: 2000,
		MoveNames:      []search.MoveName{flipBit},
		MaxNoImprove:   500,
	}
	res := search.GreatDeluge(p, start, r, opts, search.Unbounded())
	require.GreaterOrEqual(t, res.Objective, startVal)
}

func TestIteratedLocalSearch_Stagnation(t *testing.T) {
	p := &bitProblem{n: 6}
	r := rand.New(rand.NewSource(7))
	start := bitSolution{true, true, true, true, true, true}
	hc := func(pr search.Problem, s search.Solution, b *search.Budget) (search.LoopResult, error) {
		steps := []search.Step{{Kind: search.KindFirstImproving, Names: []search.MoveName{flipBit}}}
		return search.HillClimbing(pr, s, steps, b)
	}
	opts := search.ILSOptions{
		LocalSearchers: []search.LocalSearchMethod{hc},
		PerturbNames:   []search.MoveName{flipBit},
		MaxTries:       5,
	}
	res := search.IteratedLocalSearch(p, start, r, opts, search.Unbounded())
	require.Equal(t, search.ReasonStagnation, res.Reason)
	require.Equal(t, 5, res.FinalLevel)
}

// gaProblem adapts bitProblem's domain to search.GAProblem: fitness is
// still "count of set bits", every chromosome is feasible, and random moves
// are single bit flips.
type gaProblem struct {
	n int
}

func (g gaProblem) Length() int { return g.n }
func (g gaProblem) Fitness(c search.Chromosome) float64 {
	count := 0.0
	for _, b := range c {
		if b {
			count++
		}
	}
	return count
}
func (g gaProblem) Feasible(search.Chromosome) bool { return true }
func (g gaProblem) RandomMoveChromosome(c search.Chromosome, r *rand.Rand) (search.Chromosome, bool) {
	out := c.Clone()
	i := r.Intn(len(out))
	out[i] = !out[i]
	return out, true
}
func (g gaProblem) Maximize() bool { return true }

func TestRunGA_ImprovesOverSeed(t *testing.T) {
	p := gaProblem{n: 12}
	r := rand.New(rand.NewSource(8))
	seed := make(search.Chromosome, 12)
	opts := search.DefaultGAOptions()
	opts.PopulationSize = 30
	opts.Generations = 15
	opts.TimeLimit = 5 * time.Second

	res, err := search.RunGA(p, seed, r, opts)
	require.NoError(t, err)
	require.Greater(t, res.Objective, 0.0) // the all-zero seed's fitness
	require.LessOrEqual(t, res.Objective, float64(12))
}

func TestRunGA_RejectsBadConfig(t *testing.T) {
	p := gaProblem{n: 4}
	opts := search.DefaultGAOptions()
	opts.PopulationSize = 0
	_, err := search.RunGA(p, make(search.Chromosome, 4), rand.New(rand.NewSource(1)), opts)
	require.ErrorIs(t, err, search.ErrZeroPopulation)
}

func TestBudget_CheckEveryCadence(t *testing.T) {
	b := search.NewBudget(0, 0)
	hits := 0
	for i := 0; i < 8; i++ {
		if b.CheckEvery(3) { // mask 3 => every 4th call
			hits++
		}
	}
	require.Equal(t, 2, hits)
}
