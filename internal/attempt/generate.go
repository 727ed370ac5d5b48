package attempt

import (
	"fmt"

	"github.com/talgya/worldsim/internal/entropy"
	"github.com/talgya/worldsim/internal/narrative"
	"github.com/talgya/worldsim/internal/npc"
	"github.com/talgya/worldsim/internal/site"
)

// HighUnrestAssaultChance is the per-NPC chance of a random assault
// attempt firing at a high-unrest site, independent of the scored
// catalog (spec.md §4.4).
const HighUnrestAssaultChance = 0.05

// HighUnrestThreshold is the unrest level at or above which the random
// assault roll is attempted.
const HighUnrestThreshold = 70

// BanditRaidChance is the per-bandit chance of a random raid attempt
// firing when the site's food total exceeds BanditRaidFoodThreshold.
const BanditRaidChance = 0.20

// BanditRaidFoodThreshold is the food level past which bandits roll for
// a raid.
const BanditRaidFoodThreshold = 50.0

func eligibleTarget(actor *npc.NPC, residents []*npc.NPC) *npc.NPC {
	for _, r := range residents {
		if r.ID != actor.ID {
			return r
		}
	}
	return nil
}

// GenerateScoredAttempt is the main generation path: it scores every
// catalog definition whose preconditions hold, then performs the
// weighted draw (spec.md §4.4). extraModifiers supplies the caller's
// reactive-state/schedule/plan/faction bias for a given kind, keyed by
// Kind. Returns false if no candidate scores positively (the actor idles
// that hour).
func GenerateScoredAttempt(rng *entropy.RNG, seed int64, tick uint64, actor *npc.NPC, s *site.Site, residents []*npc.NPC, extraModifiers map[Kind]float64) (Attempt, bool) {
	if actor.BusyUntilTick > tick || actor.Travel != nil || actor.LocalTravel != nil || actor.Status.Detained {
		return Attempt{}, false
	}

	target := eligibleTarget(actor, residents)
	cand := Candidate{Actor: actor, Site: s, Target: target}

	scored := make([]ScoredCandidate, 0, len(Catalog))
	for _, def := range Catalog {
		if !Check(def.Preconditions, cand) {
			continue
		}
		score := Score(def, actor, s, extraModifiers[def.Kind])
		scored = append(scored, ScoredCandidate{Def: def, Score: score})
	}
	if len(scored) == 0 {
		return Attempt{}, false
	}

	def, ok := Select(rng, scored)
	if !ok {
		return Attempt{}, false
	}

	a := Attempt{
		ID:         narrative.NewID(seed, "attempt", string(actor.ID), fmt.Sprintf("%d", tick)),
		Tick:       tick,
		Kind:       def.Kind,
		Visibility: visibilityFor(def.Kind),
		ActorID:    actor.ID,
		SiteID:     s.ID,
	}
	if target != nil {
		a.TargetID = target.ID
	}
	return a, true
}

// GenerateReflexAttempt is the legacy fallback path: a fixed rule-based
// pick that the tick loop does not call (an actor the scored path leaves
// without a candidate simply makes no attempt); it serves as the test
// oracle for the scored path. Mirrors the teacher's Tier0Decide priority
// routing (agents/behavior.go), generalized from need-tier branching to
// Kind selection.
func GenerateReflexAttempt(seed int64, tick uint64, actor *npc.NPC, s *site.Site) Attempt {
	kind := KindIdle
	switch {
	case actor.Needs.Food > 60:
		kind = KindWorkFarm
	case actor.Traits.Greed > 70 && actor.Needs.Wealth > 50:
		kind = KindSteal
	case actor.Cult.Role == npc.CultRoleDevotee || actor.Cult.Role == npc.CultRoleCellLeader:
		kind = KindPreachFixedPath
	}
	return Attempt{
		ID:         narrative.NewID(seed, "reflex", string(actor.ID), fmt.Sprintf("%d", tick)),
		Tick:       tick,
		Kind:       kind,
		Visibility: visibilityFor(kind),
		ActorID:    actor.ID,
		SiteID:     s.ID,
	}
}

func visibilityFor(k Kind) Visibility {
	switch k {
	case KindForcedEclipse, KindAnchorSever, KindKidnap, KindBlackmail, KindArrest:
		return VisibilityPrivate
	default:
		return VisibilityPublic
	}
}

// RollHighUnrestAssault fires a random assault attempt independent of
// scoring when a settlement's unrest is at or above HighUnrestThreshold.
func RollHighUnrestAssault(rng *entropy.RNG, seed int64, tick uint64, actor *npc.NPC, s *site.Site, residents []*npc.NPC) (Attempt, bool) {
	if !s.IsSettlement() || s.Unrest < HighUnrestThreshold {
		return Attempt{}, false
	}
	if !rng.Chance(HighUnrestAssaultChance) {
		return Attempt{}, false
	}
	target := eligibleTarget(actor, residents)
	if target == nil {
		return Attempt{}, false
	}
	return Attempt{
		ID:         narrative.NewID(seed, "assault_roll", string(actor.ID), fmt.Sprintf("%d", tick)),
		Tick:       tick,
		Kind:       KindAssault,
		Visibility: VisibilityPublic,
		ActorID:    actor.ID,
		TargetID:   target.ID,
		SiteID:     s.ID,
	}, true
}

// RollBanditRaid fires a random raid attempt per bandit when the
// target settlement's total food exceeds BanditRaidFoodThreshold.
func RollBanditRaid(rng *entropy.RNG, seed int64, tick uint64, bandit *npc.NPC, s *site.Site) (Attempt, bool) {
	if !s.IsSettlement() {
		return Attempt{}, false
	}
	total := 0.0
	for _, t := range site.AllFoodTypes() {
		total += s.FoodTotal(t)
	}
	if total <= BanditRaidFoodThreshold {
		return Attempt{}, false
	}
	if !rng.Chance(BanditRaidChance) {
		return Attempt{}, false
	}
	return Attempt{
		ID:         narrative.NewID(seed, "raid_roll", string(bandit.ID), fmt.Sprintf("%d", tick)),
		Tick:       tick,
		Kind:       KindRaid,
		Visibility: VisibilityPublic,
		ActorID:    bandit.ID,
		SiteID:     s.ID,
	}, true
}
