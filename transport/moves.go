package transport

import (
	"math/rand"

	"github.com/andreasmzz/metaheuristics/search"
)

// applyRandomMoveT draws one random application of name against s. ok is
// false when the draw is degenerate (route too short for the operator, or
// two equal indices drawn for a pair operator) and the caller should retry.
func applyRandomMoveT(s Solution, numPoints int, name search.MoveName, r *rand.Rand) (Solution, search.MoveTag, bool) {
	n := len(s.Route)
	switch name {
	case MoveInsertPoint:
		idx := r.Intn(n + 1)
		v := r.Intn(numPoints)
		return insertPoint(s, idx, v), search.Tag(MoveInsertPoint, idx, v), true

	case MoveRemoveByIndex:
		if n == 0 {
			return Solution{}, search.MoveTag{}, false
		}
		idx := r.Intn(n)
		return removeByIndex(s, idx), search.Tag(MoveRemoveByIndex, idx), true

	case MoveRemoveByValue:
		if n == 0 {
			return Solution{}, search.MoveTag{}, false
		}
		v := s.Route[r.Intn(n)]
		return removeByValue(s, v), search.Tag(MoveRemoveByValue, v), true

	case MoveSwapPoints:
		if n < 2 {
			return Solution{}, search.MoveTag{}, false
		}
		i := r.Intn(n)
		j := r.Intn(n)
		if i == j {
			return Solution{}, search.MoveTag{}, false
		}
		return swapPoints(s, i, j), search.Tag(MoveSwapPoints, i, j), true

	case MoveReverseSegmentT:
		if n < 2 {
			return Solution{}, search.MoveTag{}, false
		}
		l, rr := orderedPair(r, n)
		if l == rr {
			return Solution{}, search.MoveTag{}, false
		}
		return reverseSegmentT(s, l, rr), search.Tag(MoveReverseSegmentT, l, rr), true

	case MoveShiftSegmentT:
		if n < 2 {
			return Solution{}, search.MoveTag{}, false
		}
		l, rr := orderedPair(r, n)
		if l == rr {
			return Solution{}, search.MoveTag{}, false
		}
		k := r.Intn(rr - l + 1)
		return shiftSegmentT(s, l, rr, k), search.Tag(MoveShiftSegmentT, l, rr, k), true

	case MoveSegmentT:
		if n < 2 {
			return Solution{}, search.MoveTag{}, false
		}
		l, rr := orderedPair(r, n)
		if l == rr {
			return Solution{}, search.MoveTag{}, false
		}
		pos := r.Intn(n - (rr - l + 1) + 1)
		return moveSegmentT(s, l, rr, pos), search.Tag(MoveSegmentT, l, rr, pos), true

	default:
		return Solution{}, search.MoveTag{}, false
	}
}

// orderedPair draws two indices in [0,n) and returns them with l<=r; the two
// may be equal, which callers reject.
func orderedPair(r *rand.Rand, n int) (int, int) {
	a := r.Intn(n)
	b := r.Intn(n)
	if a > b {
		a, b = b, a
	}
	return a, b
}

// enumerateMoveT yields every neighbor reachable by one application of
// name, in canonical (lexicographic-over-index-parameters) order.
func enumerateMoveT(s Solution, numPoints int, name search.MoveName, visit func(search.Solution, search.MoveTag) bool) {
	n := len(s.Route)
	switch name {
	case MoveInsertPoint:
		for idx := 0; idx <= n; idx++ {
			for v := 0; v < numPoints; v++ {
				if !visit(insertPoint(s, idx, v), search.Tag(MoveInsertPoint, idx, v)) {
					return
				}
			}
		}

	case MoveRemoveByIndex:
		for idx := 0; idx < n; idx++ {
			if !visit(removeByIndex(s, idx), search.Tag(MoveRemoveByIndex, idx)) {
				return
			}
		}

	case MoveRemoveByValue:
		seen := make(map[int]bool, n)
		for _, v := range s.Route {
			if seen[v] {
				continue
			}
			seen[v] = true
			if !visit(removeByValue(s, v), search.Tag(MoveRemoveByValue, v)) {
				return
			}
		}

	case MoveSwapPoints:
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				if !visit(swapPoints(s, i, j), search.Tag(MoveSwapPoints, i, j)) {
					return
				}
			}
		}

	case MoveReverseSegmentT:
		for l := 0; l < n; l++ {
			for r := l + 1; r < n; r++ {
				if !visit(reverseSegmentT(s, l, r), search.Tag(MoveReverseSegmentT, l, r)) {
					return
				}
			}
		}

	case MoveShiftSegmentT:
		for l := 0; l < n; l++ {
			for r := l + 1; r < n; r++ {
				segLen := r - l + 1
				for k := 0; k < segLen; k++ {
					if !visit(shiftSegmentT(s, l, r, k), search.Tag(MoveShiftSegmentT, l, r, k)) {
						return
					}
				}
			}
		}

	case MoveSegmentT:
		for l := 0; l < n; l++ {
			for r := l + 1; r < n; r++ {
				segLen := r - l + 1
				for pos := 0; pos <= n-segLen; pos++ {
					if !visit(moveSegmentT(s, l, r, pos), search.Tag(MoveSegmentT, l, r, pos)) {
						return
					}
				}
			}
		}
	}
}

// insertPoint inserts v at position idx (idx in [0,len(route)]).
func insertPoint(s Solution, idx, v int) Solution {
	out := s.Clone().(Solution)
	route := make([]int, 0, len(out.Route)+1)
	route = append(route, out.Route[:idx]...)
	route = append(route, v)
	route = append(route, out.Route[idx:]...)
	out.Route = route
	return out
}

// removeByIndex removes the entry at position idx.
func removeByIndex(s Solution, idx int) Solution {
	out := s.Clone().(Solution)
	route := make([]int, 0, len(out.Route)-1)
	route = append(route, out.Route[:idx]...)
	route = append(route, out.Route[idx+1:]...)
	out.Route = route
	return out
}

// removeByValue removes the first occurrence of v.
func removeByValue(s Solution, v int) Solution {
	idx := s.position(v)
	if idx < 0 {
		return s.Clone().(Solution)
	}
	return removeByIndex(s, idx)
}

// swapPoints exchanges the entries at i and j.
func swapPoints(s Solution, i, j int) Solution {
	out := s.Clone().(Solution)
	out.Route[i], out.Route[j] = out.Route[j], out.Route[i]
	return out
}

// reverseSegmentT reverses the closed range [l,r].
func reverseSegmentT(s Solution, l, r int) Solution {
	out := s.Clone().(Solution)
	for l < r {
		out.Route[l], out.Route[r] = out.Route[r], out.Route[l]
		l++
		r--
	}
	return out
}

// shiftSegmentT rotates the segment [l,r] by k places, positions taken
// modulo the segment length; zero rotation yields identity (spec.md §4.2).
func shiftSegmentT(s Solution, l, r, k int) Solution {
	out := s.Clone().(Solution)
	segLen := r - l + 1
	if segLen == 0 {
		return out
	}
	k = ((k % segLen) + segLen) % segLen
	if k == 0 {
		return out
	}
	seg := make([]int, segLen)
	copy(seg, out.Route[l:r+1])
	for i := 0; i < segLen; i++ {
		out.Route[l+(i+k)%segLen] = seg[i]
	}
	return out
}

// moveSegmentT excises [l,r] and reinserts it at pos, computed over the
// list with the segment removed.
func moveSegmentT(s Solution, l, r, pos int) Solution {
	out := s.Clone().(Solution)
	seg := append([]int(nil), out.Route[l:r+1]...)
	rest := make([]int, 0, len(out.Route)-len(seg))
	rest = append(rest, out.Route[:l]...)
	rest = append(rest, out.Route[r+1:]...)
	if pos > len(rest) {
		pos = len(rest)
	}
	if pos < 0 {
		pos = 0
	}
	route := make([]int, 0, len(out.Route))
	route = append(route, rest[:pos]...)
	route = append(route, seg...)
	route = append(route, rest[pos:]...)
	out.Route = route
	return out
}
