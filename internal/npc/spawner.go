package npc

import (
	"fmt"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/talgya/worldsim/internal/entropy"
	"github.com/talgya/worldsim/internal/worldmap"
)

// Spawner creates the initial NPC roster deterministically from a seed.
//
// Grounded on the teacher's agents.Spawner (spawner.go): same
// "per-terrain/category occupation weighting, bell-curve-ish
// baseline, deterministic id counter" shape. The teacher jitters
// per-agent needs with math/rand.NormFloat64 seeded once for the whole
// spawn batch; that is not enough entropy isolation for this run's
// stronger determinism contract (spec.md §4.2), so Spawner instead
// holds the shared entropy.RNG but takes every per-NPC offset from a
// seed-keyed simplex field layered over trait baselines, the way generation.go layers noise over
// terrain — except here the two free coordinates are the NPC's spawn
// index and the trait's ordinal, not a map position.
type Spawner struct {
	rng        *entropy.RNG
	traitNoise opensimplex.Noise
	nextID     uint64
}

// NewSpawner creates a spawner holding the given shared RNG and a simplex
// field keyed off the same seed; the jitter comes from the field alone.
func NewSpawner(rng *entropy.RNG, seed int64) *Spawner {
	return &Spawner{
		rng:        rng,
		traitNoise: opensimplex.NewNormalized(seed + 7001),
	}
}

// jitter returns a deterministic [-spread, +spread] offset for the given
// spawn index and trait ordinal.
func (s *Spawner) jitter(spawnIndex int, traitOrdinal int, spread float64) float64 {
	v := s.traitNoise.Eval2(float64(spawnIndex)*1.7, float64(traitOrdinal)*3.1)
	return (v*2 - 1) * spread
}

// categoryBaseline returns the trait/need baseline for a category before
// jitter is applied.
func categoryBaseline(c Category) (Traits, Needs, float64, float64) {
	// base traits, base needs, baseHP multiplier, baseNotability
	t := Traits{
		Aggression: 20, Courage: 40, Discipline: 50, Integrity: 55,
		Empathy: 50, Greed: 30, Fear: 30, Suspicion: 25,
		Curiosity: 40, Ambition: 35, NeedForCertainty: 45,
	}
	n := Needs{Food: 50, Safety: 50, Duty: 50, Freedom: 50, Meaning: 40, Belonging: 50, Wealth: 30, Health: 70}
	hpMul := 1.0
	notability := 0.0

	switch c {
	case CategoryGuard:
		t.Aggression, t.Courage, t.Discipline = 45, 65, 70
		hpMul = 1.3
	case CategoryBandit:
		t.Aggression, t.Greed, t.Integrity = 60, 65, 20
	case CategoryMerchant:
		t.Greed, t.Ambition = 55, 55
		n.Wealth = 45
	case CategoryNoble:
		t.Ambition, t.Greed = 60, 45
		notability = 35
	case CategoryLeader:
		t.Discipline, t.Ambition, t.Integrity = 65, 70, 50
		notability = 55
	case CategoryPriest:
		t.Integrity, t.Empathy, t.NeedForCertainty = 65, 60, 60
		n.Meaning = 60
	case CategoryCultDevotee:
		t.Suspicion, t.NeedForCertainty = 45, 65
		n.Meaning = 65
	case CategoryCultLeader:
		t.Ambition, t.Suspicion, t.NeedForCertainty = 70, 55, 70
		notability = 40
	case CategoryScholar:
		t.Curiosity, t.NeedForCertainty = 70, 55
	case CategoryHealer:
		t.Empathy, t.Integrity = 70, 60
	case CategoryChild:
		hpMul = 0.6
		n.Duty = 10
	case CategoryElder:
		hpMul = 0.75
		t.Discipline += 10
	case CategoryWanderer:
		t.Curiosity, t.Ambition = 55, 45
		n.Belonging = 30
	case CategoryOutcast:
		t.Suspicion, t.Integrity = 55, 30
		n.Belonging = 20
	}
	return t, n, hpMul, notability
}

var categoryNames = []string{
	"Farmer", "Fisher", "Hunter", "Crafter", "Merchant", "Guard", "Priest",
	"Scholar", "Healer", "Noble", "Leader", "Laborer", "Miner", "Bandit",
	"CultDevotee", "CultLeader", "Child", "Elder", "Wanderer", "Outcast",
}

// String returns the category's display name (e.g. "Bandit").
func (c Category) String() string {
	if int(c) < 0 || int(c) >= len(categoryNames) {
		return "Unknown"
	}
	return categoryNames[c]
}

// Spawn creates count NPCs of the given category at the given home site.
func (s *Spawner) Spawn(count int, category Category, homeSiteID worldmap.SiteID) []*NPC {
	out := make([]*NPC, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, s.spawnOne(category, homeSiteID))
	}
	return out
}

func (s *Spawner) spawnOne(category Category, homeSiteID worldmap.SiteID) *NPC {
	id := s.nextID
	s.nextID++

	baseTraits, baseNeeds, hpMul, notability := categoryBaseline(category)
	idx := int(id)

	traits := Traits{
		Aggression:       baseTraits.Aggression + s.jitter(idx, 0, 15),
		Courage:          baseTraits.Courage + s.jitter(idx, 1, 15),
		Discipline:       baseTraits.Discipline + s.jitter(idx, 2, 15),
		Integrity:        baseTraits.Integrity + s.jitter(idx, 3, 15),
		Empathy:          baseTraits.Empathy + s.jitter(idx, 4, 15),
		Greed:            baseTraits.Greed + s.jitter(idx, 5, 15),
		Fear:             baseTraits.Fear + s.jitter(idx, 6, 15),
		Suspicion:        baseTraits.Suspicion + s.jitter(idx, 7, 15),
		Curiosity:        baseTraits.Curiosity + s.jitter(idx, 8, 15),
		Ambition:         baseTraits.Ambition + s.jitter(idx, 9, 15),
		NeedForCertainty: baseTraits.NeedForCertainty + s.jitter(idx, 10, 15),
	}
	needs := Needs{
		Food:      baseNeeds.Food + s.jitter(idx, 11, 10),
		Safety:    baseNeeds.Safety + s.jitter(idx, 12, 10),
		Duty:      baseNeeds.Duty + s.jitter(idx, 13, 10),
		Freedom:   baseNeeds.Freedom + s.jitter(idx, 14, 10),
		Meaning:   baseNeeds.Meaning + s.jitter(idx, 15, 10),
		Belonging: baseNeeds.Belonging + s.jitter(idx, 16, 10),
		Wealth:    baseNeeds.Wealth + s.jitter(idx, 17, 10),
		Health:    baseNeeds.Health + s.jitter(idx, 18, 10),
	}

	name := fmt.Sprintf("%s-%03d", categoryNames[int(category)], id)
	n := New(ID(fmt.Sprintf("npc-%05d", id)), name, category, homeSiteID)
	n.Traits = traits
	n.Needs = needs
	n.MaxHP = 100 * hpMul
	n.HP = n.MaxHP
	n.Notability = notability
	n.ClampStats()
	return n
}
