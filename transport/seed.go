package transport

import "math/rand"

// Seed builds a feasible Solution for inst via uniform random interleaving:
// permute students, then append permuted schools, so every student
// precedes every school (satisfying the to-school precedence trivially);
// reverse the whole route for the from-school direction (spec.md §4.3).
func Seed(inst *Instance, going Direction, r *rand.Rand) Solution {
	students := make([]int, inst.Students)
	for i := range students {
		students[i] = inst.Schools + i
	}
	schools := make([]int, inst.Schools)
	for i := range schools {
		schools[i] = i
	}
	if r != nil {
		r.Shuffle(len(students), func(i, j int) { students[i], students[j] = students[j], students[i] })
		r.Shuffle(len(schools), func(i, j int) { schools[i], schools[j] = schools[j], schools[i] })
	}

	route := make([]int, 0, inst.NumPoints())
	route = append(route, students...)
	route = append(route, schools...)

	if going == FromSchool {
		reverseInts(route)
	}

	return Solution{Route: route, Going: going}
}

func reverseInts(a []int) {
	for i, j := 0, len(a)-1; i < j; i, j = i+1, j-1 {
		a[i], a[j] = a[j], a[i]
	}
}
