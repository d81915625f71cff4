package search

import (
	"math/rand"
	"sort"
	"time"
)

// Chromosome is the boolean-vector encoding the genetic algorithm operates
// on (spec.md §4.7: "Boolean vector of length D (SUKP)"). The GA engine
// lives in search because it is described as a shared-engine component
// (C9), but spec.md only defines a chromosome for SUKP; transport has no GA.
type Chromosome []bool

// Clone returns an independent copy of c.
func (c Chromosome) Clone() Chromosome {
	out := make(Chromosome, len(c))
	copy(out, c)
	return out
}

// Equal reports whether c and other hold identical bits.
func (c Chromosome) Equal(other Chromosome) bool {
	if len(c) != len(other) {
		return false
	}
	for i := range c {
		if c[i] != other[i] {
			return false
		}
	}
	return true
}

// key renders c as a comparable map key for duplicate rejection.
func (c Chromosome) key() string {
	buf := make([]byte, len(c))
	for i, b := range c {
		if b {
			buf[i] = '1'
		} else {
			buf[i] = '0'
		}
	}
	return string(buf)
}

// GAProblem is the narrower surface the genetic algorithm needs: raw
// fitness and feasibility over a Chromosome, plus a source of valid random
// moves used both to seed the initial population and to fall back-fill
// offspring that crossover could not produce within budget.
type GAProblem interface {
	Length() int
	Fitness(c Chromosome) float64
	Feasible(c Chromosome) bool
	RandomMoveChromosome(c Chromosome, r *rand.Rand) (Chromosome, bool)
	Maximize() bool
}

// SelectionMethod names one of the three parent-selection variants.
type SelectionMethod int

const (
	Roulette SelectionMethod = iota
	StochasticUniversalSampling
	Tournament
)

// GAOptions configures the genetic algorithm. Defaults mirror the Python
// original's constants (original_source/Python/genetic_algorithm.py).
type GAOptions struct {
	PopulationSize            int
	Generations               int
	Elitism                   int
	MutationRate              float64
	MutationsPerIndividual    int
	Selection                 SelectionMethod
	TournamentSize            int
	UseLinearRank             bool
	RankPressure              float64 // sp in [1,2]
	RankQuadratic             bool    // use the alternative quadratic weighting form
	CrossoverPoints           int     // 0 selects one random point respecting CrossoverMinGap
	CrossoverMinGap           int
	CrossoverTwoOffspring     bool
	ParentsToSelect           int
	BreedingAttemptFloor      int
	BreedingAttemptMultiplier int
	TimeLimit                 time.Duration
	MaxInitialPopAttempts     int
}

// DefaultGAOptions returns the constants the Python original hardcodes as
// module-level defaults.
func DefaultGAOptions() GAOptions {
	return GAOptions{
		PopulationSize:            200,
		Generations:               20,
		Elitism:                   1,
		MutationRate:              0.01,
		MutationsPerIndividual:    1,
		Selection:                 Tournament,
		TournamentSize:            10,
		UseLinearRank:             false,
		RankPressure:              1.5,
		RankQuadratic:             false,
		CrossoverPoints:           0,
		CrossoverMinGap:           5,
		CrossoverTwoOffspring:     true,
		ParentsToSelect:           100,
		BreedingAttemptFloor:      1000,
		BreedingAttemptMultiplier: 10,
		TimeLimit:                 90 * time.Second,
		MaxInitialPopAttempts:     10000,
	}
}

// Validate surfaces configuration errors to the caller, per the
// ConfigurationError taxonomy class (spec.md §7).
func (o GAOptions) Validate() error {
	if o.PopulationSize <= 0 {
		return ErrZeroPopulation
	}
	if o.RankPressure < 1 || o.RankPressure > 2 {
		return ErrInvalidRankPressure
	}
	if o.Selection == Tournament && o.TournamentSize <= 0 {
		return ErrNegativeTournament
	}
	if o.MutationRate < 0 {
		return ErrNegativeMutation
	}
	return nil
}

// GAResult is the named record RunGA returns, per spec.md §9's
// "small record type per method" note.
type GAResult struct {
	Best        Chromosome
	Objective   float64
	Generations int
	Reason      Reason
}

// RunGA executes the full generational loop described in spec.md §4.7:
// build an initial population from seed, then repeatedly select parents,
// cross them over, mutate the offspring, and compose the next generation as
// elite ∪ survivors ∪ offspring, until the generation budget, the
// wall-clock deadline, or attempt exhaustion is reached.
func RunGA(problem GAProblem, seed Chromosome, r *rand.Rand, opts GAOptions) (GAResult, error) {
	if err := opts.Validate(); err != nil {
		return GAResult{}, err
	}

	deadline := time.Time{}
	hasDeadline := opts.TimeLimit > 0
	if hasDeadline {
		deadline = time.Now().Add(opts.TimeLimit)
	}

	pop, err := generateFirstGeneration(problem, seed, r, opts)
	if err != nil {
		return GAResult{}, err
	}

	bestIdx, bestVal := bestOf(problem, pop)
	best := pop[bestIdx].Clone()
	bestObj := bestVal

	gen := 0
	for ; gen < opts.Generations; gen++ {
		if hasDeadline && !time.Now().Before(deadline) {
			return GAResult{Best: best, Objective: bestObj, Generations: gen, Reason: ReasonTimeout}, nil
		}

		fitness := evaluatePopulation(problem, pop)
		eliteIdx := elitismIndices(problem, pop, fitness, opts.Elitism)
		eliteSet := make(map[string]bool, len(eliteIdx))
		next := make([]Chromosome, 0, opts.PopulationSize)
		for _, i := range eliteIdx {
			next = append(next, pop[i].Clone())
			eliteSet[pop[i].key()] = true
		}

		weights := fitness
		if opts.UseLinearRank {
			weights = linearRankWeights(fitness, opts.RankPressure, opts.RankQuadratic)
		}
		parentCount := opts.ParentsToSelect
		if parentCount > len(pop) {
			parentCount = len(pop)
		}
		parentIdx := selectParents(problem, weights, opts.Selection, opts.TournamentSize, r, parentCount)

		survivors := make([]Chromosome, 0, len(parentIdx))
		for _, i := range parentIdx {
			if !eliteSet[pop[i].key()] {
				survivors = append(survivors, pop[i])
			}
		}
		if len(survivors) == 0 {
			// Every selected parent was also elite (tiny/low-diversity
			// population): breed from the full selected pool instead of
			// leaving the next generation short.
			for _, i := range parentIdx {
				survivors = append(survivors, pop[i])
			}
		}

		// Survivors not already in next carry over unchanged; their keys join
		// eliteSet so breed rejects offspring that duplicate them.
		for _, s := range survivors {
			if len(next) >= opts.PopulationSize {
				break
			}
			k := s.key()
			if eliteSet[k] {
				continue
			}
			eliteSet[k] = true
			next = append(next, s.Clone())
		}

		needed := opts.PopulationSize - len(next)
		offspring := breed(problem, survivors, needed, eliteSet, r, opts, hasDeadline, deadline)
		next = append(next, offspring...)

		if len(next) > opts.PopulationSize {
			next = next[:opts.PopulationSize]
		}
		mutatePopulation(next, opts.MutationRate, opts.MutationsPerIndividual, r)

		pop = next
		idx, val := bestOf(problem, pop)
		maximize := problem.Maximize()
		if (maximize && val > bestObj) || (!maximize && val < bestObj) {
			best = pop[idx].Clone()
			bestObj = val
		}
	}

	return GAResult{Best: best, Objective: bestObj, Generations: gen, Reason: ReasonTries}, nil
}

// generateFirstGeneration collects up to PopulationSize unique feasible
// individuals by repeatedly applying valid random moves to seed, bounded by
// MaxInitialPopAttempts; if the budget runs out first, the remaining slots
// are filled with copies of the last individual found.
func generateFirstGeneration(problem GAProblem, seed Chromosome, r *rand.Rand, opts GAOptions) ([]Chromosome, error) {
	pop := make([]Chromosome, 0, opts.PopulationSize)
	seen := make(map[string]bool, opts.PopulationSize)
	if problem.Feasible(seed) {
		pop = append(pop, seed.Clone())
		seen[seed.key()] = true
	}

	cur := seed.Clone()
	attempts := 0
	for len(pop) < opts.PopulationSize && attempts < opts.MaxInitialPopAttempts {
		attempts++
		cand, ok := problem.RandomMoveChromosome(cur, r)
		if !ok || !problem.Feasible(cand) {
			continue
		}
		cur = cand
		k := cand.key()
		if seen[k] {
			continue
		}
		seen[k] = true
		pop = append(pop, cand.Clone())
	}
	if len(pop) == 0 {
		return nil, ErrZeroPopulation
	}
	// Pad with repeats of the last individual if the attempt budget ran dry;
	// a short-of-target population still runs, just with less diversity.
	for len(pop) < opts.PopulationSize {
		pop = append(pop, pop[len(pop)-1].Clone())
	}
	return pop, nil
}

func evaluatePopulation(problem GAProblem, pop []Chromosome) []float64 {
	fitness := make([]float64, len(pop))
	for i, c := range pop {
		fitness[i] = problem.Fitness(c)
	}
	return fitness
}

func bestOf(problem GAProblem, pop []Chromosome) (int, float64) {
	bestIdx := 0
	bestVal := problem.Fitness(pop[0])
	maximize := problem.Maximize()
	for i := 1; i < len(pop); i++ {
		v := problem.Fitness(pop[i])
		if (maximize && v > bestVal) || (!maximize && v < bestVal) {
			bestIdx = i
			bestVal = v
		}
	}
	return bestIdx, bestVal
}

// elitismIndices returns the indices of the top e unique (by key)
// individuals by fitness, preserved unchanged into the next generation.
func elitismIndices(problem GAProblem, pop []Chromosome, fitness []float64, e int) []int {
	if e <= 0 {
		return nil
	}
	order := make([]int, len(pop))
	for i := range order {
		order[i] = i
	}
	maximize := problem.Maximize()
	sort.Slice(order, func(a, b int) bool {
		if maximize {
			return fitness[order[a]] > fitness[order[b]]
		}
		return fitness[order[a]] < fitness[order[b]]
	})
	out := make([]int, 0, e)
	seen := make(map[string]bool, e)
	for _, idx := range order {
		k := pop[idx].key()
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, idx)
		if len(out) == e {
			break
		}
	}
	return out
}

// linearRankWeights computes ranks 1..N from worst to best and assigns
// selection probabilities under pressure sp via
// (1/N)*(sp - 2*(sp-1)*(rank-1)/(N-1)), or the alternative quadratic form
// that squares the deviation term, without reordering the population array.
func linearRankWeights(fitness []float64, sp float64, quadratic bool) []float64 {
	n := len(fitness)
	weights := make([]float64, n)
	if n <= 1 {
		for i := range weights {
			weights[i] = 1
		}
		return weights
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool { return fitness[order[a]] < fitness[order[b]] })

	ranks := make([]int, n)
	for r, origIdx := range order {
		ranks[origIdx] = r + 1 // rank 1 = worst
	}

	for i := 0; i < n; i++ {
		frac := float64(ranks[i]-1) / float64(n-1)
		if quadratic {
			weights[i] = (1.0 / float64(n)) * (sp - 2*(sp-1)*frac*frac)
		} else {
			weights[i] = (1.0 / float64(n)) * (sp - 2*(sp-1)*frac)
		}
		if weights[i] < 0 {
			weights[i] = 0
		}
	}
	return weights
}

// selectParents dispatches to the configured selection method and returns n
// indices into the weighted population (with replacement, per method).
func selectParents(problem GAProblem, weights []float64, method SelectionMethod, tournamentSize int, r *rand.Rand, n int) []int {
	switch method {
	case StochasticUniversalSampling:
		return susSelection(weights, r, n)
	case Tournament:
		return tournamentSelection(weights, tournamentSize, r, n)
	default:
		return rouletteSelection(weights, r, n)
	}
}

// rouletteSelection samples n indices with replacement, probability
// proportional to weight. Zero-total-fitness falls back to uniform random.
func rouletteSelection(weights []float64, r *rand.Rand, n int) []int {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	out := make([]int, n)
	if total <= 0 {
		for i := range out {
			out[i] = r.Intn(len(weights))
		}
		return out
	}
	for i := 0; i < n; i++ {
		target := r.Float64() * total
		acc := 0.0
		chosen := len(weights) - 1
		for j, w := range weights {
			acc += w
			if acc >= target {
				chosen = j
				break
			}
		}
		out[i] = chosen
	}
	return out
}

// susSelection places n equally spaced pointers over the fitness wheel after
// one uniform start.
func susSelection(weights []float64, r *rand.Rand, n int) []int {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	out := make([]int, n)
	if total <= 0 {
		for i := range out {
			out[i] = r.Intn(len(weights))
		}
		return out
	}
	step := total / float64(n)
	start := r.Float64() * step
	acc := 0.0
	j := 0
	for i := 0; i < n; i++ {
		pointer := start + float64(i)*step
		for j < len(weights)-1 && acc+weights[j] < pointer {
			acc += weights[j]
			j++
		}
		out[i] = j
	}
	return out
}

// tournamentSelection samples k indices without replacement per draw and
// keeps the best by weight, repeated n times.
func tournamentSelection(weights []float64, k int, r *rand.Rand, n int) []int {
	out := make([]int, n)
	for i := 0; i < n; i++ {
		best := -1
		bestW := 0.0
		seen := make(map[int]bool, k)
		for len(seen) < k && len(seen) < len(weights) {
			idx := r.Intn(len(weights))
			if seen[idx] {
				continue
			}
			seen[idx] = true
			if best == -1 || weights[idx] > bestW {
				best = idx
				bestW = weights[idx]
			}
		}
		out[i] = best
	}
	return out
}

// breed produces offspring by crossing over pairs of survivors, rejecting
// duplicates against eliteSet and the offspring accumulated so far. If
// crossover cannot fill the required count within its attempt budget, it
// falls back to valid random moves drawn from the selected survivor pool —
// not from the original seed (spec.md §9, defect 4: the source biases
// diversity by falling back to the seed instead of current individuals).
func breed(problem GAProblem, survivors []Chromosome, needed int, eliteSet map[string]bool, r *rand.Rand, opts GAOptions, hasDeadline bool, deadline time.Time) []Chromosome {
	if needed <= 0 || len(survivors) == 0 {
		return nil
	}
	offspring := make([]Chromosome, 0, needed)
	seen := make(map[string]bool, needed)
	for k := range eliteSet {
		seen[k] = true
	}

	maxAttempts := opts.BreedingAttemptFloor
	if v := needed*opts.BreedingAttemptMultiplier + 100; v > maxAttempts {
		maxAttempts = v
	}

	attempts := 0
	for len(offspring) < needed && attempts < maxAttempts {
		attempts++
		if hasDeadline && attempts%64 == 0 && !time.Now().Before(deadline) {
			break
		}
		p1 := survivors[r.Intn(len(survivors))]
		p2 := survivors[r.Intn(len(survivors))]
		c1, c2 := crossover(p1, p2, opts.CrossoverPoints, opts.CrossoverMinGap, r)

		for _, cand := range []Chromosome{c1, c2} {
			if len(offspring) >= needed {
				break
			}
			if !problem.Feasible(cand) {
				continue
			}
			k := cand.key()
			if seen[k] {
				continue
			}
			seen[k] = true
			offspring = append(offspring, cand)
		}
	}

	// Fallback fill: draw valid random moves from the selected survivor
	// pool, never from the original seed.
	fallbackAttempts := 0
	fallbackCap := maxAttempts * 4
	for len(offspring) < needed && fallbackAttempts < fallbackCap {
		fallbackAttempts++
		base := survivors[r.Intn(len(survivors))]
		cand, ok := problem.RandomMoveChromosome(base, r)
		if !ok || !problem.Feasible(cand) {
			continue
		}
		k := cand.key()
		if seen[k] {
			continue
		}
		seen[k] = true
		offspring = append(offspring, cand)
	}
	return offspring
}

// crossover performs k-point crossover over sorted break points. When
// points<=0 it chooses one random point respecting CrossoverMinGap (falling
// back to the chromosome midpoint when no gap-respecting point exists), and
// alternates parent-of-origin at each break. The final cut is implicitly
// the end of the chromosome.
func crossover(p1, p2 Chromosome, points, minGap int, r *rand.Rand) (Chromosome, Chromosome) {
	n := len(p1)
	var breaks []int
	if points > 0 {
		breaks = make([]int, 0, points)
		seen := make(map[int]bool, points)
		for len(breaks) < points && len(breaks) < n-1 {
			b := 1 + r.Intn(n-1)
			if seen[b] {
				continue
			}
			seen[b] = true
			breaks = append(breaks, b)
		}
		sort.Ints(breaks)
	} else {
		lo := minGap
		hi := n - minGap
		if lo < 1 {
			lo = 1
		}
		if hi <= lo {
			breaks = []int{n / 2}
		} else {
			breaks = []int{lo + r.Intn(hi-lo)}
		}
	}

	c1 := make(Chromosome, n)
	c2 := make(Chromosome, n)
	fromP1 := true
	start := 0
	segments := append(append([]int{}, breaks...), n)
	for _, end := range segments {
		if fromP1 {
			copy(c1[start:end], p1[start:end])
			copy(c2[start:end], p2[start:end])
		} else {
			copy(c1[start:end], p2[start:end])
			copy(c2[start:end], p1[start:end])
		}
		fromP1 = !fromP1
		start = end
	}
	return c1, c2
}

// mutatePopulation selects floor(pop*rate) individuals uniformly at random
// and, for each, flips bitsPerMutant bits drawn uniformly with replacement.
func mutatePopulation(pop []Chromosome, rate float64, bitsPerMutant int, r *rand.Rand) {
	n := int(float64(len(pop)) * rate)
	for i := 0; i < n; i++ {
		idx := r.Intn(len(pop))
		c := pop[idx]
		if len(c) == 0 {
			continue
		}
		for b := 0; b < bitsPerMutant; b++ {
			pos := r.Intn(len(c))
			c[pos] = !c[pos]
		}
	}
}
