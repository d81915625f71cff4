package matrix_test

import (
	"testing"

	"github.com/andreasmzz/metaheuristics/matrix"
	"github.com/stretchr/testify/require"
)

func TestNewDenseRejectsNonPositiveDimensions(t *testing.T) {
	_, err := matrix.NewDense(0, 3)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)

	_, err = matrix.NewDense(3, -1)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)
}

func TestNewDenseZeroInitialized(t *testing.T) {
	d, err := matrix.NewDense(2, 2)
	require.NoError(t, err)
	v, err := d.At(1, 1)
	require.NoError(t, err)
	require.Zero(t, v)
}

func TestSetThenAtRoundTrips(t *testing.T) {
	d, err := matrix.NewDense(3, 3)
	require.NoError(t, err)
	require.NoError(t, d.Set(0, 2, 4.5))

	v, err := d.At(0, 2)
	require.NoError(t, err)
	require.Equal(t, 4.5, v)
}

func TestAtOutOfRangeErrors(t *testing.T) {
	d, err := matrix.NewDense(2, 2)
	require.NoError(t, err)

	_, err = d.At(2, 0)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)

	_, err = d.At(0, -1)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
}

func TestSetOutOfRangeErrors(t *testing.T) {
	d, err := matrix.NewDense(2, 2)
	require.NoError(t, err)
	require.ErrorIs(t, d.Set(5, 5, 1), matrix.ErrOutOfRange)
}

func TestRowsAndCols(t *testing.T) {
	d, err := matrix.NewDense(4, 7)
	require.NoError(t, err)
	require.Equal(t, 4, d.Rows())
	require.Equal(t, 7, d.Cols())
}
