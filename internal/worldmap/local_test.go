package worldmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildLocalGraph() *LocalGraph {
	g := &LocalGraph{
		Nodes: []LocalNode{
			{ID: "gate", Kind: NodeGate},
			{ID: "market", Kind: NodeMarket},
			{ID: "shrine", Kind: NodeShrine},
			{ID: "house1", Kind: NodeHouse},
		},
		Edges: []LocalEdge{
			{From: "gate", To: "market", Meters: 100},
			{From: "market", To: "shrine", Meters: 50},
			{From: "gate", To: "house1", Meters: 300},
			{From: "house1", To: "shrine", Meters: 40},
		},
	}
	g.Build()
	return g
}

func TestShortestPathSameNode(t *testing.T) {
	g := buildLocalGraph()
	path, meters, ok := g.ShortestPath("gate", "gate")
	require.True(t, ok)
	assert.Equal(t, []string{"gate"}, path)
	assert.Equal(t, 0.0, meters)
}

func TestShortestPathPicksCheaperRoute(t *testing.T) {
	g := buildLocalGraph()
	// gate->market->shrine = 150, gate->house1->shrine = 340
	path, meters, ok := g.ShortestPath("gate", "shrine")
	require.True(t, ok)
	assert.Equal(t, []string{"gate", "market", "shrine"}, path)
	assert.Equal(t, 150.0, meters)
}

func TestShortestPathNoPath(t *testing.T) {
	g := buildLocalGraph()
	g.Nodes = append(g.Nodes, LocalNode{ID: "island"})
	g.adjacency = nil
	_, _, ok := g.ShortestPath("gate", "island")
	assert.False(t, ok)
}

func TestShortestPathBuildsLazily(t *testing.T) {
	g := &LocalGraph{
		Nodes: []LocalNode{{ID: "a"}, {ID: "b"}},
		Edges: []LocalEdge{{From: "a", To: "b", Meters: 5}},
	}
	path, meters, ok := g.ShortestPath("a", "b")
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, path)
	assert.Equal(t, 5.0, meters)
}
