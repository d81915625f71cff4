package core_test

import (
	"testing"

	"github.com/andreasmzz/metaheuristics/core"
	"github.com/stretchr/testify/require"
)

func TestAddEdgeMirrorsBothDirections(t *testing.T) {
	g := core.NewGraph()
	eid, err := g.AddEdge("p0", "d0", 0)
	require.NoError(t, err)
	require.NotEmpty(t, eid)

	require.True(t, g.HasVertex("p0"))
	require.True(t, g.HasVertex("d0"))

	fromP, err := g.Neighbors("p0")
	require.NoError(t, err)
	require.Len(t, fromP, 1)
	require.Equal(t, "d0", fromP[0].To)

	fromD, err := g.Neighbors("d0")
	require.NoError(t, err)
	require.Len(t, fromD, 1)
}

func TestNeighborsOnUnknownVertexErrors(t *testing.T) {
	g := core.NewGraph()
	_, err := g.Neighbors("missing")
	require.ErrorIs(t, err, core.ErrVertexNotFound)
}

func TestNeighborsOnEmptyIDErrors(t *testing.T) {
	g := core.NewGraph()
	_, err := g.Neighbors("")
	require.ErrorIs(t, err, core.ErrEmptyVertexID)
}

func TestAddEdgeRejectsEmptyVertexID(t *testing.T) {
	g := core.NewGraph()
	_, err := g.AddEdge("", "d0", 0)
	require.ErrorIs(t, err, core.ErrEmptyVertexID)
}

func TestNeighborsAreSortedByEdgeID(t *testing.T) {
	g := core.NewGraph()
	_, err := g.AddEdge("p0", "d0", 0)
	require.NoError(t, err)
	_, err = g.AddEdge("p0", "d1", 0)
	require.NoError(t, err)

	edges, err := g.Neighbors("p0")
	require.NoError(t, err)
	require.Len(t, edges, 2)
	require.True(t, edges[0].ID < edges[1].ID)
}

func TestHasVertexFalseForUnaddedVertex(t *testing.T) {
	g := core.NewGraph()
	require.False(t, g.HasVertex("p0"))
}
