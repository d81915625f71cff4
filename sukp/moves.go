package sukp

import (
	"math/rand"

	"github.com/andreasmzz/metaheuristics/search"
)

// applyRandomMove draws one random application of name against s. ok is
// false when the draw is degenerate for this instance size (e.g. a segment
// move needs at least 2 dependencies) and the caller should retry with a
// fresh draw.
func applyRandomMove(s Solution, name search.MoveName, r *rand.Rand) (Solution, search.MoveTag, bool) {
	n := len(s)
	switch name {
	case MoveFlipBit:
		i := r.Intn(n)
		return flipBit(s, i), search.Tag(MoveFlipBit, i), true

	case MoveSwapBits:
		if n < 2 {
			return nil, search.MoveTag{}, false
		}
		i := r.Intn(n)
		j := r.Intn(n)
		if i == j {
			return nil, search.MoveTag{}, false
		}
		return swapBits(s, i, j), search.Tag(MoveSwapBits, i, j), true

	case MoveReverseSegment:
		if n < 2 {
			return nil, search.MoveTag{}, false
		}
		i := r.Intn(n)
		j := r.Intn(n)
		if i == j {
			return nil, search.MoveTag{}, false
		}
		return reverseSegment(s, i, j), search.Tag(MoveReverseSegment, i, j), true

	case MoveShiftSegment:
		if n < 2 {
			return nil, search.MoveTag{}, false
		}
		i := r.Intn(n)
		j := r.Intn(n)
		shift := 1 + r.Intn(n-1)
		if i == j {
			return nil, search.MoveTag{}, false
		}
		return shiftSegment(s, i, j, shift), search.Tag(MoveShiftSegment, i, j, shift), true

	case MoveSegment:
		if n < 2 {
			return nil, search.MoveTag{}, false
		}
		i := r.Intn(n)
		j := r.Intn(n)
		dest := r.Intn(n)
		if i == j {
			return nil, search.MoveTag{}, false
		}
		return moveSegment(s, i, j, dest), search.Tag(MoveSegment, i, j, dest), true

	default:
		return nil, search.MoveTag{}, false
	}
}

// enumerateMove yields every neighbor reachable by one application of name,
// in canonical (lexicographic-over-index-parameters) order.
func enumerateMove(s Solution, name search.MoveName, visit func(search.Solution, search.MoveTag) bool) {
	n := len(s)
	switch name {
	case MoveFlipBit:
		for i := 0; i < n; i++ {
			if !visit(flipBit(s, i), search.Tag(MoveFlipBit, i)) {
				return
			}
		}

	case MoveSwapBits:
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				if !visit(swapBits(s, i, j), search.Tag(MoveSwapBits, i, j)) {
					return
				}
			}
		}

	case MoveReverseSegment:
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				if !visit(reverseSegment(s, i, j), search.Tag(MoveReverseSegment, i, j)) {
					return
				}
			}
		}

	case MoveShiftSegment:
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				for shift := 1; shift < n; shift++ {
					if !visit(shiftSegment(s, i, j, shift), search.Tag(MoveShiftSegment, i, j, shift)) {
						return
					}
				}
			}
		}

	case MoveSegment:
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				for dest := 0; dest < n; dest++ {
					if !visit(moveSegment(s, i, j, dest), search.Tag(MoveSegment, i, j, dest)) {
						return
					}
				}
			}
		}
	}
}

// flipBit toggles dependency i's selection.
func flipBit(s Solution, i int) Solution {
	out := s.Clone().(Solution)
	out[i] = !out[i]
	return out
}

// swapBits exchanges the selection state of i and j.
func swapBits(s Solution, i, j int) Solution {
	out := s.Clone().(Solution)
	out[i], out[j] = out[j], out[i]
	return out
}

// reverseSegment reverses the selection states between min(i,j) and
// max(i,j) inclusive.
func reverseSegment(s Solution, i, j int) Solution {
	lo, hi := i, j
	if lo > hi {
		lo, hi = hi, lo
	}
	out := s.Clone().(Solution)
	for lo < hi {
		out[lo], out[hi] = out[hi], out[lo]
		lo++
		hi--
	}
	return out
}

// shiftSegment rotates the selection states between min(i,j) and max(i,j)
// inclusive by shift positions, wrapping modulo the segment length (spec.md
// §4 "wrap-modulo semantics").
func shiftSegment(s Solution, i, j, shift int) Solution {
	lo, hi := i, j
	if lo > hi {
		lo, hi = hi, lo
	}
	length := hi - lo + 1
	out := s.Clone().(Solution)
	seg := make([]bool, length)
	copy(seg, out[lo:hi+1])
	for k := 0; k < length; k++ {
		out[lo+(k+shift)%length] = seg[k]
	}
	return out
}

// moveSegment removes the [min(i,j), max(i,j)] segment and reinserts it at
// dest (clamped to the valid range of the shortened sequence), preserving
// internal segment order.
func moveSegment(s Solution, i, j, dest int) Solution {
	lo, hi := i, j
	if lo > hi {
		lo, hi = hi, lo
	}
	seg := append([]bool(nil), s[lo:hi+1]...)

	rest := make([]bool, 0, len(s)-len(seg))
	rest = append(rest, s[:lo]...)
	rest = append(rest, s[hi+1:]...)

	if dest > len(rest) {
		dest = len(rest)
	}
	if dest < 0 {
		dest = 0
	}

	out := make(Solution, 0, len(s))
	out = append(out, rest[:dest]...)
	out = append(out, seg...)
	out = append(out, rest[dest:]...)
	return out
}
