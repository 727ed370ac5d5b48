package attempt

import (
	"github.com/talgya/worldsim/internal/npc"
	"github.com/talgya/worldsim/internal/site"
)

// CompareOp is a closed comparison vocabulary for siteCondition/
// npcCondition predicates.
type CompareOp uint8

const (
	OpLT CompareOp = iota
	OpLTE
	OpGT
	OpGTE
	OpEQ
)

func compare(v float64, op CompareOp, threshold float64) bool {
	switch op {
	case OpLT:
		return v < threshold
	case OpLTE:
		return v <= threshold
	case OpGT:
		return v > threshold
	case OpGTE:
		return v >= threshold
	case OpEQ:
		return v == threshold
	default:
		return false
	}
}

// Candidate bundles the actor, its site, and the world lookups a
// precondition predicate needs to evaluate, without depending on
// simworld (which would create an import cycle, since simworld already
// imports npc/site/worldmap).
type Candidate struct {
	Actor  *npc.NPC
	Site   *site.Site
	Target *npc.NPC
}

// Predicate is a closed-set precondition predicate, per spec.md §4.4.
type Predicate func(c Candidate) bool

// AtSiteKind requires the actor's site to be one of the given kinds.
func AtSiteKind(kinds ...site.Kind) Predicate {
	return func(c Candidate) bool {
		for _, k := range kinds {
			if c.Site.Kind == k {
				return true
			}
		}
		return false
	}
}

// HasCategory requires the actor to hold one of the given categories.
func HasCategory(cats ...npc.Category) Predicate {
	return func(c Candidate) bool {
		for _, cat := range cats {
			if c.Actor.Category == cat {
				return true
			}
		}
		return false
	}
}

// NotBusy requires the actor not be mid-duration on a prior attempt.
func NotBusy(tick uint64) Predicate {
	return func(c Candidate) bool {
		return c.Actor.BusyUntilTick <= tick
	}
}

// NotTraveling requires the actor to have no active inter- or
// intra-site travel in progress.
func NotTraveling() Predicate {
	return func(c Candidate) bool {
		return c.Actor.Travel == nil && c.Actor.LocalTravel == nil
	}
}

// NotDetained requires the actor not be held by someone else.
func NotDetained() Predicate {
	return func(c Candidate) bool {
		return !c.Actor.Status.Detained
	}
}

// SiteConditionField is a closed set of site fields usable in
// siteCondition predicates.
type SiteConditionField uint8

const (
	SiteFieldHunger SiteConditionField = iota
	SiteFieldUnrest
	SiteFieldMorale
	SiteFieldSickness
	SiteFieldCultInfluence
	SiteFieldEclipsingPressure
	SiteFieldAnchoringStrength
	SiteFieldFieldsCondition
)

func siteFieldValue(s *site.Site, f SiteConditionField) float64 {
	switch f {
	case SiteFieldHunger:
		return s.Hunger
	case SiteFieldUnrest:
		return s.Unrest
	case SiteFieldMorale:
		return s.Morale
	case SiteFieldSickness:
		return s.Sickness
	case SiteFieldCultInfluence:
		return s.CultInfluence
	case SiteFieldEclipsingPressure:
		return s.EclipsingPressure
	case SiteFieldAnchoringStrength:
		return s.AnchoringStrength
	case SiteFieldFieldsCondition:
		return s.FieldsCondition
	default:
		return 0
	}
}

// SiteCondition tests a site aggregate field against a threshold.
func SiteCondition(field SiteConditionField, op CompareOp, threshold float64) Predicate {
	return func(c Candidate) bool {
		return compare(siteFieldValue(c.Site, field), op, threshold)
	}
}

// NPCConditionField is a closed set of NPC fields usable in
// npcCondition predicates.
type NPCConditionField uint8

const (
	NPCFieldHP NPCConditionField = iota
	NPCFieldTrauma
	NPCFieldNotability
	NPCFieldNeedFood
	NPCFieldNeedSafety
	NPCFieldAggression
	NPCFieldGreed
)

func npcFieldValue(n *npc.NPC, f NPCConditionField) float64 {
	switch f {
	case NPCFieldHP:
		return n.HP
	case NPCFieldTrauma:
		return n.Trauma
	case NPCFieldNotability:
		return n.Notability
	case NPCFieldNeedFood:
		return n.Needs.Food
	case NPCFieldNeedSafety:
		return n.Needs.Safety
	case NPCFieldAggression:
		return n.Traits.Aggression
	case NPCFieldGreed:
		return n.Traits.Greed
	default:
		return 0
	}
}

// NPCCondition tests an NPC field against a threshold.
func NPCCondition(field NPCConditionField, op CompareOp, threshold float64) Predicate {
	return func(c Candidate) bool {
		return compare(npcFieldValue(c.Actor, field), op, threshold)
	}
}

// HasTarget requires a target selector to have found a candidate.
func HasTarget() Predicate {
	return func(c Candidate) bool {
		return c.Target != nil
	}
}

// Check reports whether every precondition in the set holds for the
// given candidate — all preconditions for an action definition must
// hold, per spec.md §4.4.
func Check(preds []Predicate, c Candidate) bool {
	for _, p := range preds {
		if !p(c) {
			return false
		}
	}
	return true
}
