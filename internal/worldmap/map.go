// Package worldmap provides the hand-authored site graph and the
// per-settlement local graph used for intra-site movement.
//
// The teacher's world package builds a procedurally generated hex grid
// (world/map.go, world/generation.go — opensimplex noise over an axial
// coordinate system). Spec.md §3 calls for something much simpler and
// fully hand-authored: an undirected weighted graph of named sites.
// Map keeps the teacher's Map/Get/Set lookup shape but replaces the hex
// grid with an adjacency list over SiteIDs; EdgeQuality stands in for
// the hex grid's Terrain enum.
package worldmap

import (
	"sort"

	"golang.org/x/exp/maps"
)

// SiteID identifies a site within the map.
type SiteID string

// EdgeQuality classifies the travel surface of an edge.
type EdgeQuality uint8

const (
	QualityRoad EdgeQuality = iota
	QualityRough
)

// Edge is one undirected connection between two sites.
type Edge struct {
	From    SiteID
	To      SiteID
	Km      float64
	Quality EdgeQuality
}

// Map is the static world graph: an ordered list of sites and the
// undirected edges between them, authored once at world-seed time and
// never mutated during a run.
type Map struct {
	siteOrder []SiteID // author order — spec.md §5 "edge iteration uses author order from the map"
	adjacency map[SiteID][]Edge
}

// NewMap creates an empty graph.
func NewMap() *Map {
	return &Map{adjacency: make(map[SiteID][]Edge)}
}

// AddSite registers a site id in author order. A no-op if already present.
func (m *Map) AddSite(id SiteID) {
	if _, ok := m.adjacency[id]; ok {
		return
	}
	m.siteOrder = append(m.siteOrder, id)
	m.adjacency[id] = nil
}

// AddEdge records an undirected edge between two sites, in the order
// given. Both sites must already have been added with AddSite.
func (m *Map) AddEdge(from, to SiteID, km float64, quality EdgeQuality) {
	e := Edge{From: from, To: to, Km: km, Quality: quality}
	m.adjacency[from] = append(m.adjacency[from], e)
	rev := Edge{From: to, To: from, Km: km, Quality: quality}
	m.adjacency[to] = append(m.adjacency[to], rev)
}

// Sites returns the site ids in author order.
func (m *Map) Sites() []SiteID {
	out := make([]SiteID, len(m.siteOrder))
	copy(out, m.siteOrder)
	return out
}

// Neighbors returns the edges leaving a site, in author (insertion) order.
func (m *Map) Neighbors(id SiteID) []Edge {
	return m.adjacency[id]
}

// EdgeBetween returns the edge from a to b, if one exists.
func (m *Map) EdgeBetween(a, b SiteID) (Edge, bool) {
	for _, e := range m.adjacency[a] {
		if e.To == b {
			return e, true
		}
	}
	return Edge{}, false
}

// diffusionScale is the S constant from spec.md §4.3's eclipsing/anchoring
// neighbor-weight formula: w(km) = S / (S + max(0, km)).
const diffusionScale = 20.0

// NeighborWeight returns the diffusion weight for a neighbor at the given
// distance, per spec.md §4.3.
func NeighborWeight(km float64) float64 {
	if km < 0 {
		km = 0
	}
	return diffusionScale / (diffusionScale + km)
}

// WeightedNeighborAverage computes the neighbor-weighted average of a
// per-site scalar (eclipsing pressure, anchoring strength), iterating
// sites in deterministic sorted order so floating-point summation order
// never depends on map iteration order.
func WeightedNeighborAverage(m *Map, id SiteID, value func(SiteID) float64) float64 {
	edges := m.Neighbors(id)
	if len(edges) == 0 {
		return 0
	}
	sorted := make([]Edge, len(edges))
	copy(sorted, edges)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].To < sorted[j].To })

	var weightedSum, weightTotal float64
	for _, e := range sorted {
		w := NeighborWeight(e.Km)
		weightedSum += w * value(e.To)
		weightTotal += w
	}
	if weightTotal == 0 {
		return 0
	}
	return weightedSum / weightTotal
}

// SortedSiteIDs returns the keys of a map[SiteID]T in ascending sorted
// order. Used throughout the engine to satisfy spec.md §4.2's
// "iteration over mappings must use a deterministic order (sort by id)".
func SortedSiteIDs[T any](m map[SiteID]T) []SiteID {
	ids := maps.Keys(m)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
