package transport_test

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/andreasmzz/metaheuristics/search"
	"github.com/andreasmzz/metaheuristics/transport"
	"github.com/stretchr/testify/require"
)

// newS4 builds the spec's feasibility scenario: S=2, T=4,
// student->school [1,0,1,0]. Points [0,1] are schools, [2..5] are students.
func newS4(t *testing.T) *transport.Instance {
	t.Helper()
	pos := []transport.Point{
		{0, 0}, {1, 1}, // schools 0,1
		{2, 2}, {3, 3}, {4, 4}, {5, 5}, // students 0..3 (points 2..5)
	}
	inst, err := transport.NewInstance(10, 10, pos, []int{1, 0, 1, 0})
	require.NoError(t, err)
	return inst
}

func TestS4_ToSchoolFeasibility(t *testing.T) {
	inst := newS4(t)
	eval := transport.NewEvaluator(inst, transport.Euclidean)

	feasible := transport.Solution{Route: []int{4, 2, 5, 3, 0, 1}, Going: transport.ToSchool}
	require.True(t, eval.Feasible(feasible))

	infeasible := transport.Solution{Route: []int{0, 4, 2, 5, 3, 1}, Going: transport.ToSchool}
	require.False(t, eval.Feasible(infeasible))
}

func TestLightClearSolutionIsIdempotent(t *testing.T) {
	sol := transport.Solution{Route: []int{1, 1, 2, 2, 2, 3, 1, 1}, Going: transport.ToSchool}
	once := transport.LightClearSolution(sol)
	twice := transport.LightClearSolution(once)
	require.Equal(t, once.Route, twice.Route)
	require.Equal(t, []int{1, 2, 3, 1}, once.Route)
}

func TestLightClearSolutionPreservesFeasibility(t *testing.T) {
	inst := newS4(t)
	eval := transport.NewEvaluator(inst, transport.Euclidean)
	sol := transport.Solution{Route: []int{4, 2, 5, 3, 0, 1}, Going: transport.ToSchool}
	require.True(t, eval.Feasible(sol))
	cleared := transport.LightClearSolution(sol)
	require.Equal(t, sol.Route, cleared.Route) // no consecutive duplicates to begin with
	require.True(t, eval.Feasible(cleared))
}

func TestRouteCostOfShortRouteIsZero(t *testing.T) {
	inst := newS4(t)
	eval := transport.NewEvaluator(inst, transport.Euclidean)
	euclidean, manhattan := eval.RouteCost(transport.Solution{Route: []int{0}})
	require.Equal(t, 0.0, euclidean)
	require.Equal(t, int64(0), manhattan)
}

func TestRouteCostManhattanIsExactInteger(t *testing.T) {
	inst := newS4(t)
	eval := transport.NewEvaluator(inst, transport.Manhattan)
	sol := transport.Solution{Route: []int{0, 1}, Going: transport.ToSchool}
	require.Equal(t, float64(2), eval.Objective(sol))
}

func TestSeederProducesFeasibleSolution(t *testing.T) {
	inst := newS4(t)
	eval := transport.NewEvaluator(inst, transport.Euclidean)
	r := rand.New(rand.NewSource(11))
	sol := transport.Seed(inst, transport.ToSchool, r)
	require.True(t, eval.Feasible(sol))

	solBack := transport.Seed(inst, transport.FromSchool, r)
	require.True(t, eval.Feasible(solBack))
}

func TestDeterministicSeedsAreByteIdentical(t *testing.T) {
	inst := newS4(t)
	sol1 := transport.Seed(inst, transport.ToSchool, rand.New(rand.NewSource(3)))
	sol2 := transport.Seed(inst, transport.ToSchool, rand.New(rand.NewSource(3)))
	require.Equal(t, sol1.Route, sol2.Route)
}

func TestHillClimbingIsMonotoneNonIncreasing(t *testing.T) {
	inst := newS4(t)
	eval := transport.NewEvaluator(inst, transport.Euclidean)
	start := transport.Seed(inst, transport.ToSchool, rand.New(rand.NewSource(5)))
	startVal := eval.Objective(start)

	steps := []search.Step{{Kind: search.KindFirstImproving, Names: []search.MoveName{transport.MoveSwapPoints}}}
	res, err := search.HillClimbing(eval, start, steps, search.Unbounded())
	require.NoError(t, err)
	require.LessOrEqual(t, eval.Objective(res.Solution), startVal)
}

func TestEvaluationCounterTracksObjectiveCalls(t *testing.T) {
	inst := newS4(t)
	eval := transport.NewEvaluator(inst, transport.Euclidean)
	eval.ResetEvaluationCount()
	sol := transport.Seed(inst, transport.ToSchool, rand.New(rand.NewSource(1)))
	for i := 0; i < 4; i++ {
		eval.Objective(sol)
	}
	require.Equal(t, int64(4), eval.EvaluationCount())
}

func TestSolutionEncodingRoundTrips(t *testing.T) {
	sol := transport.Solution{Route: []int{4, 2, 5, 3, 0, 1}, Going: transport.ToSchool}
	encoded := transport.EncodeSolution(sol)
	decoded, err := transport.DecodeSolution(encoded, transport.ToSchool)
	require.NoError(t, err)
	require.Equal(t, sol.Route, decoded.Route)
}

func TestParseInstanceRoundTrip(t *testing.T) {
	text := "2 4 10 10\n0 0\n1 1\n2 2\n3 3\n4 4\n5 5\n1 0 1 0\n"
	inst, err := transport.ParseInstance(strings.NewReader(text))
	require.NoError(t, err)
	require.Equal(t, 2, inst.Schools)
	require.Equal(t, 4, inst.Students)
	require.Equal(t, []int{1, 0, 1, 0}, inst.School)
}

func TestParseInstanceRejectsMalformedHeader(t *testing.T) {
	_, err := transport.ParseInstance(strings.NewReader("nope\n"))
	require.ErrorIs(t, err, transport.ErrMalformedInstance)
}

func TestReverseSegmentIsSelfInverse(t *testing.T) {
	sol := transport.Solution{Route: []int{0, 1, 2, 3, 4, 5}}
	once, _, ok := reverseViaEnumerate(sol, 1, 4)
	require.True(t, ok)
	twice, _, ok := reverseViaEnumerate(once, 1, 4)
	require.True(t, ok)
	require.Equal(t, sol.Route, twice.Route)
}

// reverseViaEnumerate applies reverse_segment(l,r) by scanning the
// canonical enumeration for the matching tag, exercising Enumerate's
// contract directly instead of poking unexported helpers.
func reverseViaEnumerate(sol transport.Solution, l, r int) (transport.Solution, search.MoveTag, bool) {
	inst := &transport.Instance{}
	eval := transport.NewEvaluator(inst, transport.Euclidean)
	var found transport.Solution
	var tag search.MoveTag
	ok := false
	eval.Enumerate(sol, transport.MoveReverseSegmentT, func(cand search.Solution, t search.MoveTag) bool {
		if t.Args[0] == l && t.Args[1] == r {
			found = cand.(transport.Solution)
			tag = t
			ok = true
			return false
		}
		return true
	})
	return found, tag, ok
}
