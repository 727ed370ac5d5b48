// Package movement progresses inter-site and intra-site travel, per
// spec.md §4.6.
//
// Grounded on the teacher's world.Hex Distance/Neighbors (hex.go) and
// the settlement_placer.go ranking idiom — generalized from hex-grid
// distance to weighted-graph edge traversal.
package movement

import (
	"github.com/talgya/worldsim/internal/entropy"
	"github.com/talgya/worldsim/internal/npc"
	"github.com/talgya/worldsim/internal/site"
	"github.com/talgya/worldsim/internal/worldmap"
)

// speedKmPerHour returns the travel speed for an edge's surface quality.
func speedKmPerHour(q worldmap.EdgeQuality) float64 {
	if q == worldmap.QualityRoad {
		return 4
	}
	return 2
}

// simDaysPerYear mirrors process.seasonForTick's year length: four
// equal seasons of 30 sim-days each, spec.md §4.3.
const simDaysPerYear = 120

// SeasonFactor scales travel speed by the tick's season (spec.md §8:
// "scaled by season"): winter slows travel, summer speeds it up,
// spring/autumn are neutral.
func SeasonFactor(tick uint64) float64 {
	day := (tick / 24) % simDaysPerYear
	switch day / (simDaysPerYear / 4) {
	case 3: // winter
		return 0.8
	case 1: // summer
		return 1.1
	default:
		return 1.0
	}
}

// StartTravel begins inter-site travel toward toSiteID. Returns false if
// no edge exists from the NPC's current site, or the destination is a
// hidden hideout.
func StartTravel(n *npc.NPC, m *worldmap.Map, sites map[worldmap.SiteID]*site.Site, toSiteID worldmap.SiteID, tick uint64) bool {
	dst, ok := sites[toSiteID]
	if !ok || dst.Hidden {
		return false
	}
	edge, ok := m.EdgeBetween(n.SiteID, toSiteID)
	if !ok {
		return false
	}
	n.Travel = &npc.Travel{
		FromSiteID:  n.SiteID,
		ToSiteID:    toSiteID,
		KmRemaining: edge.Km,
		StartedTick: tick,
	}
	return true
}

// ProgressTravelHourly advances one NPC's inter-site travel by one hour.
// Returns true if the NPC arrived this hour. seasonFactor scales speed
// (1.0 under normal conditions).
func ProgressTravelHourly(n *npc.NPC, m *worldmap.Map, seasonFactor float64) bool {
	if n.Travel == nil {
		return false
	}
	edge, ok := m.EdgeBetween(n.Travel.FromSiteID, n.Travel.ToSiteID)
	quality := worldmap.QualityRoad
	if ok {
		quality = edge.Quality
	}
	n.Travel.KmRemaining -= speedKmPerHour(quality) * seasonFactor
	if n.Travel.KmRemaining <= 0 {
		n.SiteID = n.Travel.ToSiteID
		n.Travel = nil
		return true
	}
	return false
}

// EncounterChance is the probability of a random encounter firing on
// arrival at a new site.
const EncounterChance = 0.05

// RollEncounter reports whether a travel encounter fires on arrival.
func RollEncounter(rng *entropy.RNG) bool {
	return rng.Chance(EncounterChance)
}

// StartLocalTravel begins intra-site movement toward a local node,
// resolving shortest path by meters.
func StartLocalTravel(n *npc.NPC, g *worldmap.LocalGraph, fromNodeID, toNodeID string) bool {
	path, meters, ok := g.ShortestPath(fromNodeID, toNodeID)
	if !ok {
		return false
	}
	n.LocalTravel = &npc.LocalTravel{Path: path, NextIndex: 1, MetersRemaining: meters}
	return true
}

// MetersPerHour is the walking speed used for local travel progression.
const MetersPerHour = 400

// ProgressLocalTravelHourly advances local movement by one hour. Returns
// true if the NPC reached the final node this hour.
func ProgressLocalTravelHourly(n *npc.NPC) bool {
	lt := n.LocalTravel
	if lt == nil {
		return false
	}
	lt.MetersRemaining -= MetersPerHour
	if lt.MetersRemaining <= 0 {
		n.LocalTravel = nil
		return true
	}
	return false
}
