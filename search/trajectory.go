package search

import (
	"math"
	"math/rand"
)

// SAOptions configures Simulated Annealing.
type SAOptions struct {
	InitialTemp float64    // T at iteration 0
	Alpha       float64    // cooling factor in (0,1); T *= Alpha each feasible iteration
	TMin        float64    // explicit cold-end floor; terminate once T <= TMin
	MoveNames   []MoveName // neighborhoods RandomMove may draw from
	MaxTries    int        // try budget; 0 means unbounded
	MaxNoImprove int       // consecutive-no-improvement budget; 0 means unbounded
}

// SAResult is the record SimulatedAnnealing returns: chromosome/route,
// objective, the method's final control parameter (temperature), and the
// termination reason, consumed by field name downstream (spec.md §9).
type SAResult struct {
	Solution  Solution
	Objective float64
	FinalTemp float64
	Reason    Reason
}

// SimulatedAnnealing runs the Metropolis loop described in spec.md §4.6.
// Per iteration it draws a valid random neighbor; strictly better
// candidates are always accepted; worse ones are accepted with probability
// exp(delta/T) where delta is the objective change, negated for
// minimization so that an improvement is positive in both directions.
// Infeasible proposals are
// skipped and do not advance the temperature.
//
// The source's cold-end condition ("T > 0/T0", always true) is a documented
// defect (spec.md §9 item 1); this implementation instead terminates once T
// falls to or below the caller-supplied TMin floor.
func SimulatedAnnealing(p Problem, start Solution, r *rand.Rand, opts SAOptions, budget *Budget) SAResult {
	cur := start
	curVal := p.Objective(cur)
	best := cur
	bestVal := curVal
	T := opts.InitialTemp
	tries := 0
	noImprove := 0

	for {
		if T <= opts.TMin {
			return SAResult{Solution: best, Objective: bestVal, FinalTemp: T, Reason: ReasonColdEnd}
		}
		if budget.DeadlineExpired() {
			return SAResult{Solution: best, Objective: bestVal, FinalTemp: T, Reason: ReasonTimeout}
		}
		if opts.MaxTries > 0 && tries >= opts.MaxTries {
			return SAResult{Solution: best, Objective: bestVal, FinalTemp: T, Reason: ReasonTries}
		}
		if opts.MaxNoImprove > 0 && noImprove >= opts.MaxNoImprove {
			return SAResult{Solution: best, Objective: bestVal, FinalTemp: T, Reason: ReasonStagnation}
		}

		cand, tag := p.RandomMove(cur, opts.MoveNames, r)
		tries++
		if tag.Error || !p.Feasible(cand) {
			continue
		}
		candVal := p.Objective(cand)

		delta := candVal - curVal
		if !p.Maximize() {
			delta = -delta
		}

		accept := delta > 0
		if !accept {
			prob := math.Exp(delta / T)
			accept = r.Float64() < prob
		}
		if accept {
			cur = cand
			curVal = candVal
			if better(p, curVal, bestVal) {
				best = cur
				bestVal = curVal
				noImprove = 0
			} else {
				noImprove++
			}
		} else {
			noImprove++
		}
		T *= opts.Alpha
	}
}

// CalibrationOptions configures the initial-temperature search.
type CalibrationOptions struct {
	InitialTemp float64
	Beta        float64 // > 1, raises T on each failed window
	Gamma       float64 // acceptance target in (0,1)
	TryWindow   int
	MoveNames   []MoveName
}

// CalibrationResult names the four values the source returns as a tuple
// (usefulT, startingT, beta, gamma), per spec.md §4.6.
type CalibrationResult struct {
	UsefulTemp   float64
	StartingTemp float64
	Beta         float64
	Gamma        float64
}

// CalibrateTemperature runs the Metropolis inner loop at temperature T,
// counting accepted moves over a try window; once accepted >= gamma*tries it
// declares T useful and returns it, otherwise raises T <- beta*T and repeats.
func CalibrateTemperature(p Problem, start Solution, r *rand.Rand, opts CalibrationOptions) CalibrationResult {
	cur := start
	curVal := p.Objective(cur)
	T := opts.InitialTemp

	for {
		accepted := 0
		for i := 0; i < opts.TryWindow; i++ {
			cand, tag := p.RandomMove(cur, opts.MoveNames, r)
			if tag.Error || !p.Feasible(cand) {
				continue
			}
			candVal := p.Objective(cand)
			delta := candVal - curVal
			if !p.Maximize() {
				delta = -delta
			}
			accept := delta > 0
			if !accept {
				accept = r.Float64() < math.Exp(delta/T)
			}
			if accept {
				accepted++
				cur = cand
				curVal = candVal
			}
		}
		if float64(accepted) >= opts.Gamma*float64(opts.TryWindow) {
			return CalibrationResult{UsefulTemp: T, StartingTemp: opts.InitialTemp, Beta: opts.Beta, Gamma: opts.Gamma}
		}
		T *= opts.Beta
	}
}

// RRTOptions configures Record-to-Record Travel.
type RRTOptions struct {
	InitialTolerance float64    // absolute tolerance at iteration 0
	Alpha            float64    // multiplicative decay per outer iteration; 0 disables decay
	MoveNames        []MoveName
	MaxNoImprove     int
}

// RRTResult carries the final tolerance as RRT's control parameter.
type RRTResult struct {
	Solution       Solution
	Objective      float64
	FinalTolerance float64
	Reason         Reason
}

// RecordToRecordTravel keeps a best-so-far "record" and accepts a neighbor y
// when its cost is within tolerance of the record (toward the optimization
// direction). Tolerance decays multiplicatively by Alpha each outer
// iteration. Best-so-far updates on any strict improvement.
func RecordToRecordTravel(p Problem, start Solution, r *rand.Rand, opts RRTOptions, budget *Budget) RRTResult {
	cur := start
	curVal := p.Objective(cur)
	best := cur
	record := curVal
	tolerance := opts.InitialTolerance
	noImprove := 0

	for {
		if budget.DeadlineExpired() {
			return RRTResult{Solution: best, Objective: record, FinalTolerance: tolerance, Reason: ReasonTimeout}
		}
		if opts.MaxNoImprove > 0 && noImprove >= opts.MaxNoImprove {
			return RRTResult{Solution: best, Objective: record, FinalTolerance: tolerance, Reason: ReasonStagnation}
		}

		cand, tag := p.RandomMove(cur, opts.MoveNames, r)
		if tag.Error || !p.Feasible(cand) {
			continue
		}
		candVal := p.Objective(cand)

		var accept bool
		if p.Maximize() {
			accept = candVal >= record-tolerance
		} else {
			accept = candVal <= record+tolerance
		}
		if accept {
			cur = cand
			if better(p, candVal, record) {
				record = candVal
				best = cand
				noImprove = 0
			} else {
				noImprove++
			}
		} else {
			noImprove++
		}
		if opts.Alpha != 0 {
			tolerance *= opts.Alpha
		}
	}
}

// GreatDelugeOptions configures Great Deluge.
type GreatDelugeOptions struct {
	RainFactor     float64 // rain speed = RainFactor * initialCost / OuterTryBudget
	OuterTryBudget int
	MoveNames      []MoveName
	MaxNoImprove   int
}

// GreatDelugeResult carries the final water level as the method's control
// parameter.
type GreatDelugeResult struct {
	Solution   Solution
	Objective  float64
	FinalLevel float64
	Reason     Reason
}

// GreatDeluge maintains a monotonically tightening "water level" L,
// initialized to the starting solution's cost. A neighbor y is accepted
// when cost(y) is on the acceptable side of L (<=L for minimization, >=L
// for maximization). After each iteration L moves toward the optimization
// direction by the rain speed, computed once from RainFactor, the initial
// cost and OuterTryBudget (spec.md §4.6).
func GreatDeluge(p Problem, start Solution, r *rand.Rand, opts GreatDelugeOptions, budget *Budget) GreatDelugeResult {
	cur := start
	curVal := p.Objective(cur)
	level := curVal
	rainSpeed := opts.RainFactor * curVal / float64(opts.OuterTryBudget)

	tries := 0
	noImprove := 0
	for {
		if budget.DeadlineExpired() {
			return GreatDelugeResult{Solution: cur, Objective: curVal, FinalLevel: level, Reason: ReasonTimeout}
		}
		if opts.OuterTryBudget > 0 && tries >= opts.OuterTryBudget {
			return GreatDelugeResult{Solution: cur, Objective: curVal, FinalLevel: level, Reason: ReasonTries}
		}
		if opts.MaxNoImprove > 0 && noImprove >= opts.MaxNoImprove {
			return GreatDelugeResult{Solution: cur, Objective: curVal, FinalLevel: level, Reason: ReasonStagnation}
		}
		tries++

		cand, tag := p.RandomMove(cur, opts.MoveNames, r)
		if tag.Error || !p.Feasible(cand) {
			continue
		}
		candVal := p.Objective(cand)

		var accept bool
		if p.Maximize() {
			accept = candVal >= level
		} else {
			accept = candVal <= level
		}
		if accept {
			if better(p, candVal, curVal) {
				noImprove = 0
			} else {
				noImprove++
			}
			cur = cand
			curVal = candVal
		} else {
			noImprove++
		}

		if p.Maximize() {
			level += rainSpeed
		} else {
			level -= rainSpeed
		}
	}
}

// LocalSearchMethod is a single-signature adapter over HC/RDM/VND/RVND so
// ILS can pick among them at random per outer iteration.
type LocalSearchMethod func(p Problem, start Solution, budget *Budget) (LoopResult, error)

// ILSOptions configures Iterated Local Search.
type ILSOptions struct {
	LocalSearchers []LocalSearchMethod // pool of local-search methods, one chosen per outer iteration
	PerturbNames   []MoveName          // restricted perturbation-neighborhood set
	MaxTries       int                 // stagnation budget (tries_since_best)
}

// ILSResult carries the final perturbation level as the method's control
// parameter.
type ILSResult struct {
	Solution   Solution
	Objective  float64
	FinalLevel int
	Reason     Reason
}

// IteratedLocalSearch runs the outer perturb/re-optimize/accept loop from
// spec.md §4.6: perturb applies level+1 sequential random moves drawn from
// PerturbNames to a copy of the incumbent, a randomly chosen local-search
// method re-optimizes it, and the perturbed local optimum replaces the
// incumbent when it strictly improves; otherwise level increments.
func IteratedLocalSearch(p Problem, start Solution, r *rand.Rand, opts ILSOptions, budget *Budget) ILSResult {
	incumbent := start
	incumbentVal := p.Objective(incumbent)
	level := 0
	triesSinceBest := 0

	for {
		if budget.DeadlineExpired() {
			return ILSResult{Solution: incumbent, Objective: incumbentVal, FinalLevel: level, Reason: ReasonTimeout}
		}
		if opts.MaxTries > 0 && triesSinceBest >= opts.MaxTries {
			return ILSResult{Solution: incumbent, Objective: incumbentVal, FinalLevel: level, Reason: ReasonStagnation}
		}

		perturbed := perturb(p, incumbent, opts.PerturbNames, level, r)
		method := opts.LocalSearchers[r.Intn(len(opts.LocalSearchers))]
		res, err := method(p, perturbed, budget)
		if err != nil {
			triesSinceBest++
			level++
			continue
		}

		candVal := p.Objective(res.Solution)
		if better(p, candVal, incumbentVal) {
			incumbent = res.Solution
			incumbentVal = candVal
			level = 0
			triesSinceBest = 0
		} else {
			level++
			triesSinceBest++
		}
	}
}

// perturb applies level+1 sequential random moves drawn from names to a
// copy of sol, skipping draws that land outside the legal/feasible set
// (the original solution component of an error or infeasible move equals
// the input, so skipping simply repeats the draw on the same state).
func perturb(p Problem, sol Solution, names []MoveName, level int, r *rand.Rand) Solution {
	cur := sol
	steps := level + 1
	for i := 0; i < steps; i++ {
		for attempt := 0; attempt < MaxRandomMoveRetries; attempt++ {
			cand, tag := p.RandomMove(cur, names, r)
			if tag.Error || !p.Feasible(cand) {
				continue
			}
			cur = cand
			break
		}
	}
	return cur
}

// MaxRandomMoveRetries bounds the retry loop get_valid_random_move performs
// in the original implementation before giving up on a single perturbation
// step (original_source/SchoolTransport/move.py, maxTries=100).
const MaxRandomMoveRetries = 100
