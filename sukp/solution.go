package sukp

import "github.com/andreasmzz/metaheuristics/search"

// Solution is the SUKP bit-vector encoding (C2): a boolean choice per
// dependency, selected[d] == true meaning d is included in the knapsack.
// The package selection is derived, not stored: a package p is "acquired"
// exactly when every d in Needs(p) is selected (spec.md §3's union-closure
// semantics).
type Solution []bool

// NewSolution returns the all-false (empty knapsack) starting solution for
// an instance with d dependencies.
func NewSolution(d int) Solution {
	return make(Solution, d)
}

// Clone implements search.Solution.
func (s Solution) Clone() search.Solution {
	out := make(Solution, len(s))
	copy(out, s)
	return out
}

// ToChromosome adapts a Solution to the GA engine's raw boolean-vector
// representation (spec.md §4.8 restricts GA's chromosome to SUKP).
func (s Solution) ToChromosome() search.Chromosome {
	c := make(search.Chromosome, len(s))
	copy(c, s)
	return c
}

// FromChromosome builds a Solution from a GA chromosome of matching length.
func FromChromosome(c search.Chromosome) Solution {
	s := make(Solution, len(c))
	copy(s, c)
	return s
}

// AcquiredPackages returns every package index whose full dependency set is
// selected in s, per instance inst.
func (inst *Instance) AcquiredPackages(s Solution) []int {
	var acquired []int
	for p := 0; p < inst.P; p++ {
		if inst.packageAcquired(s, p) {
			acquired = append(acquired, p)
		}
	}
	return acquired
}

// packageAcquired reports whether package p's full need set is selected. A
// package with an empty need set is vacuously acquired.
func (inst *Instance) packageAcquired(s Solution, p int) bool {
	for _, d := range inst.needs[p] {
		if !s[d] {
			return false
		}
	}
	return true
}

// TotalSize returns the sum of sizes of every selected dependency.
func (inst *Instance) TotalSize(s Solution) int64 {
	var total int64
	for d, on := range s {
		if on {
			total += inst.Size[d]
		}
	}
	return total
}

// TotalBenefit returns the sum of benefits of every acquired package.
func (inst *Instance) TotalBenefit(s Solution) int64 {
	var total int64
	for p := 0; p < inst.P; p++ {
		if inst.packageAcquired(s, p) {
			total += inst.Benefit[p]
		}
	}
	return total
}
