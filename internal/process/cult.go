package process

import (
	"github.com/talgya/worldsim/internal/event"
	"github.com/talgya/worldsim/internal/npc"
	"github.com/talgya/worldsim/internal/simworld"
	"github.com/talgya/worldsim/internal/site"
	"github.com/talgya/worldsim/internal/worldmap"
)

const maxRecruitmentAttemptsPerDay = 3

// RunCult runs the daily (hour-of-day==0) recruitment pass, cultInfluence
// recomputation, and incident roll, per spec.md §4.3.
func RunCult(ctx *Context, w *simworld.World) {
	if w.HourOfDay() != 0 {
		return
	}
	for _, id := range w.SortedSiteIDs() {
		s := w.Sites[id]
		if !s.IsSettlement() || s.Culture != site.CultureHuman {
			continue
		}
		runRecruitment(ctx, w, id, s)
		runIncidentRoll(ctx, w, id, s)
	}
}

const recruitFactor = 1.0

// recruitmentChance computes the per-(recruiter,target) recruitment
// probability from spec.md §4.3, with every 0..100-scale input
// normalized to 0..1 before weighting.
func recruitmentChance(s *site.Site, target *npc.NPC) float64 {
	anchorBlock := 1 - s.AnchoringStrength/100
	raw := 0.35*(target.Traits.NeedForCertainty/100) +
		0.15*(target.Traits.Fear/100) +
		0.35*(target.Trauma/100) +
		0.2*(s.EclipsingPressure/100) +
		0.1*(s.Unrest/100) -
		0.25*(target.Traits.Integrity/100)
	chance := recruitFactor * anchorBlock * raw
	if chance < 0 {
		return 0
	}
	if chance > 0.85 {
		return 0.85
	}
	return chance
}

func runRecruitment(ctx *Context, w *simworld.World, id worldmap.SiteID, s *site.Site) {
	residents := w.NPCsAtSite(id)
	attempts := 0
	for _, recruiter := range residents {
		if attempts >= maxRecruitmentAttemptsPerDay {
			break
		}
		if recruiter.Cult.Role != npc.CultRoleDevotee && recruiter.Cult.Role != npc.CultRoleCellLeader {
			continue
		}
		for _, target := range residents {
			if attempts >= maxRecruitmentAttemptsPerDay {
				break
			}
			if target.Cult.Member {
				continue
			}
			attempts++
			if ctx.RNG.Chance(recruitmentChance(s, target)) {
				target.Cult = npc.CultStanding{Member: true, Role: npc.CultRoleDevotee, JoinedTick: w.Tick}
				ctx.Emit(w.Tick, "cult.recruited", event.VisibilityPrivate, id, "", map[string]any{"npc": string(target.ID)})
			}
		}
	}
}

// recomputeCultInfluenceFromRoster recomputes cultInfluence from the
// actual membership ratio among the site's residents, smoothed
// 0.7*old + 0.3*derived.
func recomputeCultInfluenceFromRoster(w *simworld.World, id worldmap.SiteID, s *site.Site) {
	residents := w.NPCsAtSite(id)
	if len(residents) == 0 {
		return
	}
	members := 0
	for _, n := range residents {
		if n.Cult.Member {
			members++
		}
	}
	derived := float64(members) / float64(len(residents)) * 100
	s.CultInfluence = 0.7*s.CultInfluence + 0.3*derived
	s.ClampStats()
}

type incidentKind uint8

const (
	incidentTheft incidentKind = iota
	incidentIntimidation
	incidentArson
	incidentMurder
)

func rollIncidentKind(rng interface{ Float64() float64 }) incidentKind {
	r := rng.Float64()
	switch {
	case r < 0.30:
		return incidentTheft
	case r < 0.55:
		return incidentIntimidation
	case r < 0.80:
		return incidentArson
	default:
		return incidentMurder
	}
}

func runIncidentRoll(ctx *Context, w *simworld.World, id worldmap.SiteID, s *site.Site) {
	recomputeCultInfluenceFromRoster(w, id, s)

	anchorBlock := 1 - s.AnchoringStrength/100
	chance := 0.04 * s.CultInfluence / 100 * s.EclipsingPressure / 100 * anchorBlock
	if !ctx.RNG.Chance(chance) {
		return
	}

	residents := w.NPCsAtSite(id)
	switch rollIncidentKind(ctx.RNG) {
	case incidentTheft:
		stealFromNewestLot(s)
		ctx.Emit(w.Tick, "cult.incident", event.VisibilityPublic, id, "theft_food", map[string]any{"kind": "theft_food"})
	case incidentIntimidation:
		if victim := pickRandomResident(ctx, residents); victim != nil {
			victim.Trauma += 18
			victim.ForcedActiveUntilTick = w.Tick + 48
			victim.ClampStats()
		}
		ctx.Emit(w.Tick, "cult.incident", event.VisibilityPublic, id, "intimidation", map[string]any{"kind": "intimidation"})
	case incidentArson:
		loss := 0.08 + ctx.RNG.Float64()*0.06
		s.FieldsCondition -= loss
		s.ClampStats()
		ctx.Emit(w.Tick, "cult.incident", event.VisibilityPublic, id, "arson_fields", map[string]any{"kind": "arson_fields"})
	case incidentMurder:
		if s.Cohorts.Adults > 0 {
			s.Cohorts.Adults--
		}
		for _, n := range residents {
			n.Trauma += 12
			n.ClampStats()
		}
		if victim := pickRandomResident(ctx, residents); victim != nil {
			victim.Die(npc.Death{Tick: w.Tick, Cause: npc.CauseMurder, AtSiteID: id})
		}
		s.ClampStats()
		ctx.Emit(w.Tick, "cult.incident", event.VisibilityPublic, id, "murder", map[string]any{"kind": "murder"})
	}
}

func stealFromNewestLot(s *site.Site) {
	for _, t := range site.AllFoodTypes() {
		lots := s.FoodStock[t]
		if len(lots) == 0 {
			continue
		}
		newest := 0
		for i, l := range lots {
			if l.ProducedDay > lots[newest].ProducedDay {
				newest = i
			}
		}
		lots[newest].Amount *= 0.8
		s.FoodStock[t] = lots
		return
	}
}

func pickRandomResident(ctx *Context, residents []*npc.NPC) *npc.NPC {
	if len(residents) == 0 {
		return nil
	}
	return residents[ctx.RNG.IntRange(0, len(residents)-1)]
}
