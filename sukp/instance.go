// Package sukp implements the Set-Union Knapsack Problem domain: instance
// model, solution encoding, evaluator, move library, constructive seeders
// and the file/serialization codec, all driving the shared search engine in
// package search.
package sukp

import (
	"errors"
	"fmt"

	"github.com/andreasmzz/metaheuristics/core"
)

// Sentinel errors, declared package-level as simple wrapped values.
var (
	ErrNegativeCapacity = errors.New("sukp: capacity must be >= 0")
	ErrNegativeBenefit  = errors.New("sukp: package benefit must be >= 0")
	ErrNegativeSize     = errors.New("sukp: dependency size must be >= 0")
	ErrPackageRange     = errors.New("sukp: package index out of range")
	ErrDependencyRange  = errors.New("sukp: dependency index out of range")
	ErrDuplicateRequire = errors.New("sukp: duplicate requirement pair")
	ErrLengthMismatch   = errors.New("sukp: bit-sequence length does not match instance dependency count")
)

// Instance holds the immutable parameters of one SUKP problem (C1): package
// count P, dependency count D, capacity C, per-package benefits, per-
// dependency sizes, and the requirement relation R, plus the two derived
// views needs[p] and dependents[d] computed once at construction time.
//
// R is represented as a bipartite core.Graph (vertices "p{i}"/"d{j}") so the
// derived views are plain adjacency lookups rather than a hand-rolled index
// — the same incidence-adjacency idiom the teacher uses for weighted graphs,
// generalized here to an unweighted membership relation.
type Instance struct {
	P, D     int
	Capacity int64
	Benefit  []int64 // length P
	Size     []int64 // length D

	needs      [][]int // needs[p] = sorted dependency indices required by package p
	dependents [][]int // dependents[d] = sorted package indices that require d
}

// packageVertex and dependencyVertex render a package or dependency index as
// a core.Graph vertex ID.
func packageVertex(p int) string    { return fmt.Sprintf("p%d", p) }
func dependencyVertex(d int) string { return fmt.Sprintf("d%d", d) }

// NewInstance validates and constructs an Instance from raw parameters plus
// the requirement relation R given as (package,dependency) pairs.
func NewInstance(benefit []int64, size []int64, capacity int64, requirements [][2]int) (*Instance, error) {
	if capacity < 0 {
		return nil, ErrNegativeCapacity
	}
	for _, b := range benefit {
		if b < 0 {
			return nil, ErrNegativeBenefit
		}
	}
	for _, s := range size {
		if s < 0 {
			return nil, ErrNegativeSize
		}
	}

	p := len(benefit)
	d := len(size)

	g := core.NewGraph()
	seen := make(map[[2]int]bool, len(requirements))
	for _, pair := range requirements {
		pkg, dep := pair[0], pair[1]
		if pkg < 0 || pkg >= p {
			return nil, ErrPackageRange
		}
		if dep < 0 || dep >= d {
			return nil, ErrDependencyRange
		}
		if seen[pair] {
			return nil, ErrDuplicateRequire
		}
		seen[pair] = true
		if _, err := g.AddEdge(packageVertex(pkg), dependencyVertex(dep), 0); err != nil {
			return nil, fmt.Errorf("sukp: requirement (%d,%d): %w", pkg, dep, err)
		}
	}

	inst := &Instance{
		P:        p,
		D:        d,
		Capacity: capacity,
		Benefit:  append([]int64(nil), benefit...),
		Size:     append([]int64(nil), size...),
	}
	inst.needs = make([][]int, p)
	inst.dependents = make([][]int, d)
	for pkg := 0; pkg < p; pkg++ {
		if !g.HasVertex(packageVertex(pkg)) {
			continue
		}
		edges, err := g.Neighbors(packageVertex(pkg))
		if err != nil {
			return nil, fmt.Errorf("sukp: deriving needs[%d]: %w", pkg, err)
		}
		for _, e := range edges {
			other := e.To
			if other == packageVertex(pkg) {
				other = e.From
			}
			var depIdx int
			if _, err := fmt.Sscanf(other, "d%d", &depIdx); err == nil {
				inst.needs[pkg] = append(inst.needs[pkg], depIdx)
				inst.dependents[depIdx] = append(inst.dependents[depIdx], pkg)
			}
		}
	}
	for i := range inst.needs {
		sortInts(inst.needs[i])
	}
	for i := range inst.dependents {
		sortInts(inst.dependents[i])
	}

	return inst, nil
}

// sortInts is a tiny insertion sort; need/dependent lists are small (bounded
// by the instance's own P/D), so this avoids pulling in sort for one call
// site per list.
func sortInts(a []int) {
	for i := 1; i < len(a); i++ {
		v := a[i]
		j := i - 1
		for j >= 0 && a[j] > v {
			a[j+1] = a[j]
			j--
		}
		a[j+1] = v
	}
}

// Needs returns the (already sorted) dependency indices package p requires.
func (inst *Instance) Needs(p int) []int { return inst.needs[p] }

// Dependents returns the (already sorted) package indices that require
// dependency d.
func (inst *Instance) Dependents(d int) []int { return inst.dependents[d] }

// TotalBenefitOverSize is the ratio-greedy criterion from spec.md §4.3:
// the total benefit of every package depending on d, divided by d's size.
// When d's size is 0 the total benefit itself is returned, undivided.
func (inst *Instance) TotalBenefitOverSize(d int) float64 {
	total := int64(0)
	for _, p := range inst.dependents[d] {
		total += inst.Benefit[p]
	}
	if inst.Size[d] == 0 {
		return float64(total)
	}
	return float64(total) / float64(inst.Size[d])
}
