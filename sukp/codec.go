package sukp

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math/big"
	"strconv"
	"strings"
)

// ErrMalformedInstance reports a violation of the instance file's header or
// length/range constraints (spec.md §7's InputMalformed class).
var ErrMalformedInstance = errors.New("sukp: malformed instance file")

// ParseInstance reads the plain-text SUKP instance format (spec.md §6):
// line 1 "P D K C", line 2 P package benefits, line 3 D dependency sizes,
// followed by K "p d" requirement pairs. Trailing blank/short lines are
// ignored.
func ParseInstance(r io.Reader) (*Instance, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	header, ok := nextFields(scanner)
	if !ok || len(header) < 4 {
		return nil, fmt.Errorf("%w: missing header line", ErrMalformedInstance)
	}
	p, err1 := strconv.Atoi(header[0])
	d, err2 := strconv.Atoi(header[1])
	k, err3 := strconv.Atoi(header[2])
	c, err4 := strconv.ParseInt(header[3], 10, 64)
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil || p < 0 || d < 0 || k < 0 {
		return nil, fmt.Errorf("%w: invalid header values", ErrMalformedInstance)
	}

	benefitFields, ok := nextFields(scanner)
	if !ok || len(benefitFields) != p {
		return nil, fmt.Errorf("%w: expected %d package benefits", ErrMalformedInstance, p)
	}
	benefit, err := parseInt64List(benefitFields)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInstance, err)
	}

	sizeFields, ok := nextFields(scanner)
	if !ok || len(sizeFields) != d {
		return nil, fmt.Errorf("%w: expected %d dependency sizes", ErrMalformedInstance, d)
	}
	size, err := parseInt64List(sizeFields)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInstance, err)
	}

	requirements := make([][2]int, 0, k)
	for len(requirements) < k {
		fields, ok := nextFields(scanner)
		if !ok {
			break // trailing short input is ignored per spec.md §6
		}
		if len(fields) < 2 {
			continue // trailing blank/short line, ignored
		}
		pk, errp := strconv.Atoi(fields[0])
		dp, errd := strconv.Atoi(fields[1])
		if errp != nil || errd != nil {
			return nil, fmt.Errorf("%w: bad requirement pair %q", ErrMalformedInstance, strings.Join(fields, " "))
		}
		requirements = append(requirements, [2]int{pk, dp})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInstance, err)
	}

	inst, err := NewInstance(benefit, size, c, requirements)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInstance, err)
	}
	return inst, nil
}

// nextFields returns the whitespace-split fields of the next non-blank
// line, or ok=false at EOF.
func nextFields(scanner *bufio.Scanner) ([]string, bool) {
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		return fields, true
	}
	return nil, false
}

func parseInt64List(fields []string) ([]int64, error) {
	out := make([]int64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseInt(f, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("field %d (%q): %w", i, f, err)
		}
		out[i] = v
	}
	return out, nil
}

// EncodeSolution serializes sol by its big-endian integer value: dependency
// 0 is the most significant bit, dependency len(sol)-1 the least (spec.md
// §6).
func EncodeSolution(sol Solution) string {
	v := new(big.Int)
	one := big.NewInt(1)
	for _, on := range sol {
		v.Lsh(v, 1)
		if on {
			v.Or(v, one)
		}
	}
	return v.Text(10)
}

// DecodeSolution parses a big-endian integer serialization back into a
// Solution of length d; d must be recovered from the owning instance
// (spec.md §6 notes the length is not self-describing).
func DecodeSolution(s string, d int) (Solution, error) {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("%w: invalid integer solution %q", ErrMalformedInstance, s)
	}
	sol := make(Solution, d)
	for i := 0; i < d; i++ {
		sol[d-1-i] = v.Bit(i) == 1
	}
	return sol, nil
}
