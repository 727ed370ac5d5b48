// Package belief implements witnessing, rumor propagation/mutation, and
// knowledge ingestion on return, per spec.md §4.5.
//
// Grounded on the teacher's agents.AddMemory (bounded eviction, reused
// via npc.AddBelief/AddRumor) and social.Faction's Influence/Relations
// propagation loop (faction.go), adapted here to per-site rumor spread
// across the map graph instead of per-faction influence diffusion.
package belief

import (
	"github.com/talgya/worldsim/internal/config"
	"github.com/talgya/worldsim/internal/entropy"
	"github.com/talgya/worldsim/internal/npc"
	"github.com/talgya/worldsim/internal/site"
	"github.com/talgya/worldsim/internal/worldmap"
)

// attemptPredicate maps an attempt kind to the belief predicate and
// object a witness forms.
func attemptPredicate(attemptKind string) (predicate, object string) {
	switch attemptKind {
	case "kill":
		return "witnessed_crime", "kill"
	case "steal":
		return "witnessed_crime", "steal"
	case "assault":
		return "witnessed_crime", "assault"
	case "kidnap":
		return "witnessed_crime", "kidnap"
	case "arson_fields":
		return "witnessed_crime", "arson"
	case "preach_fixed_path":
		return "divine_sign", "preach"
	default:
		return "witnessed_event", attemptKind
	}
}

// WitnessConfidenceDirect is the confidence assigned to a direct witness.
const WitnessConfidenceDirect = 90

// WitnessConfidenceRumor is the confidence assigned when a belief arrives
// via rumor ingestion.
const WitnessConfidenceRumor = 35

// Witness records one public attempt: a rumor at the site, and a belief
// for every present witness (excluding the actor).
func Witness(tick uint64, attemptKind, actorID string, siteID worldmap.SiteID, s *site.Site, witnesses []*npc.NPC, cap int) {
	predicate, object := attemptPredicate(attemptKind)

	s.AddRumor(site.Rumor{
		Tick:       tick,
		Kind:       attemptKind,
		ActorID:    actorID,
		SiteID:     siteID,
		Confidence: WitnessConfidenceDirect,
		Label:      object,
	})

	for _, w := range witnesses {
		if string(w.ID) == actorID {
			continue
		}
		w.AddBelief(npc.Belief{
			SubjectID:  npc.ID(actorID),
			Predicate:  predicate,
			Object:     object,
			Confidence: WitnessConfidenceDirect,
			Source:     npc.SourceWitnessed,
			Tick:       tick,
		}, cap)
	}
}

// PropagateDayBoundary spreads a fraction of each site's rumors to
// connected settlements at the hour-23 day boundary, per spec.md §4.5.
// Rumors iterate in map author order (m.Sites()) for determinism, and
// each site's rumor slice in its existing append order.
func PropagateDayBoundary(rng *entropy.RNG, cfg config.Config, m *worldmap.Map, sites map[worldmap.SiteID]*site.Site, tick uint64) {
	for _, id := range m.Sites() {
		src, ok := sites[id]
		if !ok || !src.IsSettlement() {
			continue
		}
		neighbors := m.Neighbors(id)
		if len(neighbors) == 0 {
			continue
		}
		for _, r := range src.Rumors {
			if !rng.Chance(cfg.Tuning.RumorSpreadChance) {
				continue
			}
			edge := neighbors[rng.IntRange(0, len(neighbors)-1)]
			dst, ok := sites[edge.To]
			if !ok || !dst.IsSettlement() {
				continue
			}
			spread := r
			spread.Tick = tick
			spread.Confidence *= 0.5
			if rng.Chance(cfg.Tuning.RumorMutationChance) {
				spread.Label = mutateLabel(spread.Label)
			}
			dst.AddRumor(spread)
		}
	}
}

// mutateLabel alters a rumor's label field when mutation fires, the way
// a rumor drifts from its original claim as it spreads.
func mutateLabel(label string) string {
	return label + "?"
}

// RelationshipDelta is the trust/fear/loyalty adjustment applied to a
// mentioned party when a rumor is ingested on return.
type RelationshipDelta struct {
	TrustMin, TrustMax float64
	Fear               float64
	LoyaltyThreshold   float64
}

// DefaultReturnDelta is the delta named in spec.md §4.5.
var DefaultReturnDelta = RelationshipDelta{TrustMin: -30, TrustMax: -25, Fear: 15, LoyaltyThreshold: 20}

// IngestOnReturn converts unseen rumors at the NPC's current site (older
// than lastVisitTick) into beliefs, and nudges relationships toward any
// mentioned party.
func IngestOnReturn(rng *entropy.RNG, cfg config.Config, n *npc.NPC, s *site.Site, lastVisitTick uint64) {
	for _, r := range s.Rumors {
		if r.Tick <= lastVisitTick {
			continue
		}
		n.AddBelief(npc.Belief{
			SubjectID:  npc.ID(r.ActorID),
			Predicate:  "heard_rumor",
			Object:     r.Label,
			Confidence: WitnessConfidenceRumor,
			Source:     npc.SourceRumor,
			Tick:       r.Tick,
		}, cfg.Limits.MaxMemoriesPerEntity)

		if r.ActorID == "" {
			continue
		}
		other := npc.ID(r.ActorID)
		rel := n.Relationships[other]
		delta := DefaultReturnDelta.TrustMin + rng.Float64()*(delta0Span())
		rel.Trust += delta
		rel.Fear += DefaultReturnDelta.Fear
		if rel.Loyalty > DefaultReturnDelta.LoyaltyThreshold {
			rel.Loyalty = DefaultReturnDelta.LoyaltyThreshold
		}
		n.SetRelationship(other, rel, cfg.Limits.MaxRelationshipsPerEntity)
	}
}

func delta0Span() float64 {
	return DefaultReturnDelta.TrustMax - DefaultReturnDelta.TrustMin
}
