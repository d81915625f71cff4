package transport

import "github.com/andreasmzz/metaheuristics/search"

// Solution is the transport permutation encoding (C2): a sequence of point
// indices into [0, Schools+Students), plus the travel direction that
// determines the precedence constraint between a student and their school.
type Solution struct {
	Route []int
	Going Direction
}

// Clone implements search.Solution.
func (s Solution) Clone() search.Solution {
	out := Solution{Route: make([]int, len(s.Route)), Going: s.Going}
	copy(out.Route, s.Route)
	return out
}

// position returns the index of v's first occurrence in the route, or -1.
func (s Solution) position(v int) int {
	for i, p := range s.Route {
		if p == v {
			return i
		}
	}
	return -1
}
