package reactive

import (
	"github.com/talgya/worldsim/internal/config"
	"github.com/talgya/worldsim/internal/npc"
	"github.com/talgya/worldsim/internal/simworld"
	"github.com/talgya/worldsim/internal/worldmap"
)

// attackIntentThreshold is the minimum Aggression a witness needs before a
// freshly-witnessed crime against them curdles into an attack intent,
// rather than just a grudge belief.
const attackIntentThreshold = 60.0

// raidPlanHorizonHours is how far out a cult cell leader's raid intent
// fires, once set (spec.md §4.7: "executeAtTick = now + 72").
const raidPlanHorizonHours = 72

// cultSaturationThreshold marks a site as saturated enough for its cell
// leaders to start planning external raids.
const cultSaturationThreshold = 70.0

// UpdateIntents derives new intents from beliefs gained this tick and
// from standing cult role + site saturation, then decays every existing
// intent. Grounded on the teacher's agents.archetype preferred-action
// bias (archetype.go), narrowed here to two concrete mappings named in
// spec.md §4.7 rather than a generic policy table.
func UpdateIntents(cfg config.Config, w *simworld.World, tick uint64, n *npc.NPC, sig Signals) {
	for _, p := range sig.NewBeliefPredicates {
		if p != "witnessed_crime" {
			continue
		}
		if n.Traits.Aggression < attackIntentThreshold {
			continue
		}
		target, ok := mostRecentSubject(n, "witnessed_crime")
		if !ok {
			continue
		}
		n.AddIntent(npc.Intent{
			Kind:        "attack",
			Intensity:   100,
			TargetNPCID: target,
		}, cfg.Limits.MaxIntentsPerEntity)
	}

	if n.Cult.Member && n.Cult.Role == npc.CultRoleCellLeader && tick%24 == 0 {
		s, ok := w.Sites[n.SiteID]
		if ok && s.CultInfluence >= cultSaturationThreshold && !hasIntentKind(n, "raid_plan") {
			if targetSiteID, found := nearestNonSaturatedSettlement(w, n.SiteID); found {
				n.AddIntent(npc.Intent{
					Kind:          "raid_plan",
					Intensity:     100,
					TargetSiteID:  targetSiteID,
					ExecuteAtTick: tick + raidPlanHorizonHours,
				}, cfg.Limits.MaxIntentsPerEntity)
			}
		}
	}

	n.DecayIntents(intentDecayPerHour)
}

// intentDecayPerHour is the fixed per-hour intensity decay for every
// intent, independent of config tuning.
const intentDecayPerHour = 8.0

func hasIntentKind(n *npc.NPC, kind string) bool {
	for _, it := range n.Intents {
		if it.Kind == kind {
			return true
		}
	}
	return false
}

// mostRecentSubject returns the subject of the newest belief matching
// predicate, since sig only carries the predicate string, not the full
// belief.
func mostRecentSubject(n *npc.NPC, predicate string) (npc.ID, bool) {
	var best npc.Belief
	found := false
	for _, b := range n.Beliefs {
		if b.Predicate != predicate {
			continue
		}
		if !found || b.Tick >= best.Tick {
			best = b
			found = true
		}
	}
	if !found {
		return "", false
	}
	return best.SubjectID, true
}

// nearestNonSaturatedSettlement picks the closest neighboring settlement
// whose cult influence hasn't already crossed the saturation threshold,
// breaking equal distances by fixed map edge order so target selection
// stays deterministic.
func nearestNonSaturatedSettlement(w *simworld.World, from worldmap.SiteID) (worldmap.SiteID, bool) {
	var best worldmap.SiteID
	bestKm := 0.0
	found := false
	for _, edge := range w.Map.Neighbors(from) {
		s, ok := w.Sites[edge.To]
		if !ok || !s.IsSettlement() {
			continue
		}
		if s.CultInfluence < cultSaturationThreshold && (!found || edge.Km < bestKm) {
			best, bestKm, found = edge.To, edge.Km, true
		}
	}
	return best, found
}
