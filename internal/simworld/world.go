// Package simworld assembles the World aggregate from spec.md §3: the
// static map, the site and NPC rosters, and the derived/optional
// collections (operations, chronicle, secrets).
//
// Grounded on cmd/worldsim/main.go's world-assembly sequence (map, then
// settlements, then agents, then factions, built once at startup) and
// social.SeedFactions' hand-authored-list idiom, applied here to sites
// instead of factions.
package simworld

import (
	"sort"

	"github.com/talgya/worldsim/internal/narrative"
	"github.com/talgya/worldsim/internal/npc"
	"github.com/talgya/worldsim/internal/site"
	"github.com/talgya/worldsim/internal/worldmap"
)

// World is the single aggregate mutated in place by each tick, per
// spec.md §3's "conceptually immutable in semantics... implementation
// may mutate in place as long as deterministic equality holds" note.
type World struct {
	Seed int64
	Tick uint64

	Map  *worldmap.Map
	Sites map[worldmap.SiteID]*site.Site
	NPCs  map[npc.ID]*npc.NPC

	Operations []*narrative.Operation
	Chronicle  *narrative.Chronicle
	Secrets    []npc.Secret

	// Spawner keeps minting NPC ids throughout the run (named refugees,
	// cult recruits), so ids never collide with the initial roster.
	Spawner *npc.Spawner
}

// SortedSiteIDs returns the world's site ids in deterministic sorted
// order.
func (w *World) SortedSiteIDs() []worldmap.SiteID {
	return worldmap.SortedSiteIDs(w.Sites)
}

// SortedNPCIDs returns every NPC id in ascending sorted order, the
// iteration order spec.md §5 requires ("NPC iteration uses id-sorted
// order").
func (w *World) SortedNPCIDs() []npc.ID {
	ids := make([]npc.ID, 0, len(w.NPCs))
	for id := range w.NPCs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// AliveNPCsSorted returns every living NPC in id-sorted order.
func (w *World) AliveNPCsSorted() []*npc.NPC {
	out := make([]*npc.NPC, 0, len(w.NPCs))
	for _, id := range w.SortedNPCIDs() {
		n := w.NPCs[id]
		if n.Alive {
			out = append(out, n)
		}
	}
	return out
}

// NPCsAtSite returns living NPCs currently located at siteID, in
// id-sorted order.
func (w *World) NPCsAtSite(siteID worldmap.SiteID) []*npc.NPC {
	out := make([]*npc.NPC, 0)
	for _, n := range w.AliveNPCsSorted() {
		if n.SiteID == siteID {
			out = append(out, n)
		}
	}
	return out
}

// HourOfDay returns the hour-of-day (0-23) for the world's current tick.
func (w *World) HourOfDay() uint64 { return w.Tick % 24 }

// Day returns the current sim-day, 0-indexed.
func (w *World) Day() int { return int(w.Tick / 24) }
