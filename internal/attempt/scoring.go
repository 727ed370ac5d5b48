package attempt

import (
	"github.com/talgya/worldsim/internal/entropy"
	"github.com/talgya/worldsim/internal/npc"
	"github.com/talgya/worldsim/internal/site"
)

// Definition is one entry in the closed action catalog: its
// preconditions, and the pieces needed to compute its score.
type Definition struct {
	Kind         Kind
	Preconditions []Predicate
	Base          float64
	NeedWeights   map[string]float64  // need name -> weight, keys match Needs field names
	TraitWeights  map[string]float64  // trait name -> weight, keys match Traits field names
	SiteBonus     func(s *site.Site) float64
}

func needValue(n *npc.NPC, name string) float64 {
	switch name {
	case "Food":
		return n.Needs.Food
	case "Safety":
		return n.Needs.Safety
	case "Duty":
		return n.Needs.Duty
	case "Freedom":
		return n.Needs.Freedom
	case "Meaning":
		return n.Needs.Meaning
	case "Belonging":
		return n.Needs.Belonging
	case "Wealth":
		return n.Needs.Wealth
	case "Health":
		return n.Needs.Health
	default:
		return 0
	}
}

func traitValue(n *npc.NPC, name string) float64 {
	switch name {
	case "Aggression":
		return n.Traits.Aggression
	case "Courage":
		return n.Traits.Courage
	case "Discipline":
		return n.Traits.Discipline
	case "Integrity":
		return n.Traits.Integrity
	case "Empathy":
		return n.Traits.Empathy
	case "Greed":
		return n.Traits.Greed
	case "Fear":
		return n.Traits.Fear
	case "Suspicion":
		return n.Traits.Suspicion
	case "Curiosity":
		return n.Traits.Curiosity
	case "Ambition":
		return n.Traits.Ambition
	case "NeedForCertainty":
		return n.Traits.NeedForCertainty
	default:
		return 0
	}
}

// Catalog is the closed 12-entry action set scored every tick, in the
// fixed order spec.md §4.4 requires ties to respect.
var Catalog = []Definition{
	{
		Kind:          KindWorkFarm,
		Preconditions: []Predicate{AtSiteKind(site.KindSettlement), NotTraveling(), NotDetained()},
		Base:          40,
		NeedWeights:   map[string]float64{"Food": 0.5, "Duty": 0.3},
		TraitWeights:  map[string]float64{"Discipline": 0.2},
		SiteBonus: func(s *site.Site) float64 {
			if s.Hunger > 50 {
				return 20
			}
			return 0
		},
	},
	{
		Kind:          KindSteal,
		Preconditions: []Predicate{AtSiteKind(site.KindSettlement), NotTraveling(), NotDetained()},
		Base:          15,
		NeedWeights:   map[string]float64{"Wealth": 0.3, "Food": 0.2},
		TraitWeights:  map[string]float64{"Greed": 0.4, "Integrity": -0.3},
	},
	{
		Kind:          KindAssault,
		Preconditions: []Predicate{AtSiteKind(site.KindSettlement), NotTraveling(), NotDetained()},
		Base:          10,
		TraitWeights:  map[string]float64{"Aggression": 0.5, "Discipline": -0.2},
	},
	{
		Kind:          KindInvestigate,
		Preconditions: []Predicate{HasCategory(npc.CategoryGuard, npc.CategoryLeader), NotTraveling(), NotDetained()},
		Base:          15,
		TraitWeights:  map[string]float64{"Suspicion": 0.4, "Discipline": 0.3},
	},
	{
		Kind:          KindHeal,
		Preconditions: []Predicate{HasCategory(npc.CategoryHealer, npc.CategoryPriest), NotTraveling(), NotDetained(), HasTarget()},
		Base:          25,
		TraitWeights:  map[string]float64{"Empathy": 0.4},
	},
	{
		Kind:          KindTrade,
		Preconditions: []Predicate{HasCategory(npc.CategoryMerchant, npc.CategoryFarmer, npc.CategoryFisher, npc.CategoryHunter), NotTraveling(), NotDetained()},
		Base:          20,
		NeedWeights:   map[string]float64{"Wealth": 0.3},
	},
	{
		Kind:          KindPreachFixedPath,
		Preconditions: []Predicate{HasCategory(npc.CategoryCultDevotee, npc.CategoryCultLeader), NotTraveling(), NotDetained()},
		Base:          10,
		TraitWeights:  map[string]float64{"Ambition": 0.3},
	},
	{
		Kind:          KindPatrol,
		Preconditions: []Predicate{HasCategory(npc.CategoryGuard), NotTraveling(), NotDetained()},
		Base:          20,
		TraitWeights:  map[string]float64{"Discipline": 0.3},
		SiteBonus: func(s *site.Site) float64 {
			if s.Unrest > 50 {
				return 15
			}
			return 0
		},
	},
	{
		Kind:          KindGossip,
		Preconditions: []Predicate{NotTraveling(), NotDetained(), HasTarget()},
		Base:          12,
		NeedWeights:   map[string]float64{"Belonging": 0.3},
		TraitWeights:  map[string]float64{"Curiosity": 0.2},
	},
	{
		Kind:          KindArrest,
		Preconditions: []Predicate{HasCategory(npc.CategoryGuard, npc.CategoryLeader), NotTraveling(), NotDetained(), HasTarget()},
		Base:          10,
		TraitWeights:  map[string]float64{"Discipline": 0.3, "Suspicion": 0.2},
	},
	{
		Kind:          KindRecon,
		Preconditions: []Predicate{HasCategory(npc.CategoryGuard, npc.CategoryScholar, npc.CategoryWanderer), NotTraveling(), NotDetained()},
		Base:          12,
		TraitWeights:  map[string]float64{"Curiosity": 0.3, "Suspicion": 0.2},
	},
	{
		Kind:          KindIdle,
		Preconditions: nil,
		Base:          5,
	},
}

// Score computes score = base + Σ needWeight_i*need_i + Σ
// traitWeight_j*trait_j + Σ siteCondBonus_k, plus the caller-supplied
// modifier sum from reactive states/schedules/plan bias/faction bias
// (spec.md §4.4).
func Score(def Definition, actor *npc.NPC, s *site.Site, extraModifiers float64) float64 {
	total := def.Base
	for name, weight := range def.NeedWeights {
		total += weight * needValue(actor, name)
	}
	for name, weight := range def.TraitWeights {
		total += weight * traitValue(actor, name)
	}
	if def.SiteBonus != nil {
		total += def.SiteBonus(s)
	}
	total += extraModifiers
	return total
}

// ScoredCandidate pairs a definition with its computed score for
// selection.
type ScoredCandidate struct {
	Def   Definition
	Score float64
}

// Select performs the weighted draw from spec.md §4.4: weight_i =
// max(0, score_i); draw r = rng.next()*Σweights; walk the list in fixed
// (definition) order until cumulative ≥ r. Returns false if every
// candidate has non-positive weight.
func Select(rng *entropy.RNG, candidates []ScoredCandidate) (Definition, bool) {
	totalWeight := 0.0
	for _, c := range candidates {
		w := c.Score
		if w < 0 {
			w = 0
		}
		totalWeight += w
	}
	if totalWeight <= 0 {
		return Definition{}, false
	}
	r := rng.Float64() * totalWeight
	cumulative := 0.0
	for _, c := range candidates {
		w := c.Score
		if w < 0 {
			w = 0
		}
		cumulative += w
		if cumulative >= r {
			return c.Def, true
		}
	}
	return candidates[len(candidates)-1].Def, true
}
