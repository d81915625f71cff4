package sukp

import "math/rand"

// SeederKind is the closed enumeration of constructive seeders (spec.md
// §4.3's "represent as a closed enumeration" redesign note).
type SeederKind int

const (
	SeedUniformRandom SeederKind = iota
	SeedRatioGreedy
	SeedSizeGreedy
	SeedPackageBenefitGreedy
	SeedDependentsGreedy
	SeedRatioGreedyGRASP
	SeedSizeGreedyGRASP
	SeedPackageBenefitGreedyGRASP
	SeedDependentsGreedyGRASP
)

// DefaultGRASPCutoff is the restricted-candidate-list fraction used when a
// caller does not supply one (spec.md's GRASP-cutoff variants, Section 4.3
// item 6), grounded on the teacher's convention of a named default constant
// next to every tunable.
const DefaultGRASPCutoff = 0.5

// SeedOptions configures a single seeder invocation. ReverseSize reverses
// the size-greedy criterion to ascending->descending (item 3's "parameter to
// reverse"). Cutoff applies only to the GRASP variants.
type SeedOptions struct {
	ReverseSize bool
	Cutoff      float64
	R           *rand.Rand
}

// candidate pairs a dependency index with its sort criterion value.
type candidate struct {
	idx   int
	score float64
}

// Seed builds a feasible Solution for inst using the named seeder.
func Seed(inst *Instance, kind SeederKind, opts SeedOptions) Solution {
	switch kind {
	case SeedUniformRandom:
		return seedUniformRandom(inst, opts.R)
	case SeedRatioGreedy:
		return seedByCriterion(inst, ratioCriterion(inst), false, nil)
	case SeedSizeGreedy:
		return seedByCriterion(inst, sizeCriterion(inst), opts.ReverseSize, nil)
	case SeedPackageBenefitGreedy:
		return seedPackageBenefitGreedy(inst, nil)
	case SeedDependentsGreedy:
		return seedByCriterion(inst, dependentsCriterion(inst), false, nil)
	case SeedRatioGreedyGRASP:
		return seedByCriterion(inst, ratioCriterion(inst), false, graspOpts(opts))
	case SeedSizeGreedyGRASP:
		return seedByCriterion(inst, sizeCriterion(inst), opts.ReverseSize, graspOpts(opts))
	case SeedPackageBenefitGreedyGRASP:
		return seedPackageBenefitGreedy(inst, graspOpts(opts))
	case SeedDependentsGreedyGRASP:
		return seedByCriterion(inst, dependentsCriterion(inst), false, graspOpts(opts))
	default:
		return NewSolution(inst.D)
	}
}

// BestDeterministic runs every deterministic seeder (variants 2-5, with the
// default, non-reversed size ordering) and returns the one with the highest
// total benefit — "a simple max over the deterministic set" per spec.md's
// Open Question resolution.
func BestDeterministic(inst *Instance) Solution {
	kinds := []SeederKind{SeedRatioGreedy, SeedSizeGreedy, SeedPackageBenefitGreedy, SeedDependentsGreedy}
	var best Solution
	var bestBenefit int64 = -1
	for _, k := range kinds {
		s := Seed(inst, k, SeedOptions{})
		b := inst.TotalBenefit(s)
		if b > bestBenefit {
			best = s
			bestBenefit = b
		}
	}
	return best
}

func graspOpts(opts SeedOptions) *SeedOptions {
	cutoff := opts.Cutoff
	if cutoff <= 0 {
		cutoff = DefaultGRASPCutoff
	}
	o := opts
	o.Cutoff = cutoff
	return &o
}

// seedUniformRandom permutes dependency indices and inserts each respecting
// remaining capacity, with no backtracking.
func seedUniformRandom(inst *Instance, r *rand.Rand) Solution {
	order := make([]int, inst.D)
	for i := range order {
		order[i] = i
	}
	if r != nil {
		r.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
	}
	return commitInOrder(inst, order)
}

// ratioCriterion sorts by descending total-benefit-over-size.
func ratioCriterion(inst *Instance) []candidate {
	cands := make([]candidate, inst.D)
	for d := 0; d < inst.D; d++ {
		cands[d] = candidate{idx: d, score: inst.TotalBenefitOverSize(d)}
	}
	sortCandidatesDesc(cands)
	return cands
}

// sizeCriterion sorts by ascending dependency size (descending when
// reversed).
func sizeCriterion(inst *Instance) []candidate {
	cands := make([]candidate, inst.D)
	for d := 0; d < inst.D; d++ {
		cands[d] = candidate{idx: d, score: float64(inst.Size[d])}
	}
	sortCandidatesAsc(cands)
	return cands
}

// dependentsCriterion sorts by descending dependents count.
func dependentsCriterion(inst *Instance) []candidate {
	cands := make([]candidate, inst.D)
	for d := 0; d < inst.D; d++ {
		cands[d] = candidate{idx: d, score: float64(len(inst.dependents[d]))}
	}
	sortCandidatesDesc(cands)
	return cands
}

// seedByCriterion commits dependencies in the order given by cands (as
// sorted by the criterion, reversed when reverseAsc is set), optionally
// restricted to a GRASP candidate list.
func seedByCriterion(inst *Instance, cands []candidate, reverseAsc bool, grasp *SeedOptions) Solution {
	if reverseAsc {
		reverseCandidates(cands)
	}
	order := restrictAndDraw(cands, grasp)
	return commitInOrder(inst, order)
}

// seedPackageBenefitGreedy processes packages by descending benefit,
// committing a package's entire *missing* dependency set only if all of it
// fits in the residual capacity right now (item 4: atomic, no partial
// commits, no backtracking).
func seedPackageBenefitGreedy(inst *Instance, grasp *SeedOptions) Solution {
	pkgCands := make([]candidate, inst.P)
	for p := 0; p < inst.P; p++ {
		pkgCands[p] = candidate{idx: p, score: float64(inst.Benefit[p])}
	}
	sortCandidatesDesc(pkgCands)
	order := restrictAndDrawPackages(pkgCands, grasp)

	sol := NewSolution(inst.D)
	used := int64(0)
	for _, p := range order {
		var missing []int
		var addSize int64
		for _, d := range inst.needs[p] {
			if !sol[d] {
				missing = append(missing, d)
				addSize += inst.Size[d]
			}
		}
		if used+addSize <= inst.Capacity {
			for _, d := range missing {
				sol[d] = true
			}
			used += addSize
		}
	}
	return sol
}

// commitInOrder walks order, setting each dependency selected if it fits
// the remaining capacity; no backtracking.
func commitInOrder(inst *Instance, order []int) Solution {
	sol := NewSolution(inst.D)
	used := int64(0)
	for _, d := range order {
		if used+inst.Size[d] <= inst.Capacity {
			sol[d] = true
			used += inst.Size[d]
		}
	}
	return sol
}

// restrictAndDraw implements the GRASP restricted-candidate-list draw: sort
// by the criterion (already sorted in cands), truncate to the top
// cutoff*len(cands) items, then draw uniformly from that list without
// replacement until exhausted. With grasp == nil this just returns the
// deterministic order.
func restrictAndDraw(cands []candidate, grasp *SeedOptions) []int {
	if grasp == nil {
		order := make([]int, len(cands))
		for i, c := range cands {
			order[i] = c.idx
		}
		return order
	}
	k := int(grasp.Cutoff * float64(len(cands)))
	if k < 1 {
		k = 1
	}
	if k > len(cands) {
		k = len(cands)
	}
	pool := make([]int, k)
	for i := 0; i < k; i++ {
		pool[i] = cands[i].idx
	}
	r := grasp.R
	if r != nil {
		r.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	}
	return pool
}

func restrictAndDrawPackages(cands []candidate, grasp *SeedOptions) []int {
	return restrictAndDraw(cands, grasp)
}

func sortCandidatesAsc(c []candidate) {
	for i := 1; i < len(c); i++ {
		v := c[i]
		j := i - 1
		for j >= 0 && c[j].score > v.score {
			c[j+1] = c[j]
			j--
		}
		c[j+1] = v
	}
}

func sortCandidatesDesc(c []candidate) {
	sortCandidatesAsc(c)
	reverseCandidates(c)
}

func reverseCandidates(c []candidate) {
	for i, j := 0, len(c)-1; i < j; i, j = i+1, j-1 {
		c[i], c[j] = c[j], c[i]
	}
}
