package process

import (
	"math"
	"sort"

	"github.com/talgya/worldsim/internal/event"
	"github.com/talgya/worldsim/internal/npc"
	"github.com/talgya/worldsim/internal/simerr"
	"github.com/talgya/worldsim/internal/simworld"
	"github.com/talgya/worldsim/internal/site"
	"github.com/talgya/worldsim/internal/worldmap"
)

// personalHungerThreshold is the settlement hunger level past which a
// resident is treated as having failed personal food access for the
// hour, matching the hungry_site reactive trigger's own threshold
// (internal/reactive/catalog.go).
const personalHungerThreshold = 60.0

// starvationHoursThreshold is how many consecutive hungry hours an NPC
// endures before starvation damage engages, spec.md §4.4.
const starvationHoursThreshold = 48

// starvationDamagePerHour is the base hourly hp loss once starvation
// damage engages; elders take 1.5x.
const starvationDamagePerHour = 5.0

// simDaysPerYear is the length of one sim-year: four equal seasons of 30
// sim-days each, spec.md §4.3.
const simDaysPerYear = 120

type season uint8

const (
	seasonSpring season = iota
	seasonSummer
	seasonAutumn
	seasonWinter
)

func seasonForTick(tick uint64) season {
	day := (tick / 24) % simDaysPerYear
	return season(day / (simDaysPerYear / 4))
}

// seasonMultiplier returns the production multiplier for a food type in
// the season the given tick falls in.
func seasonMultiplier(t site.FoodType, tick uint64) float64 {
	switch seasonForTick(tick) {
	case seasonWinter:
		switch t {
		case site.FoodGrain:
			return 0.6
		case site.FoodFish:
			return 0.55
		case site.FoodMeat:
			return 0.7
		}
	case seasonSummer:
		switch t {
		case site.FoodGrain:
			return 1.1
		case site.FoodFish:
			return 1.15
		case site.FoodMeat:
			return 1.05
		}
	}
	return 1.0
}

// adultEquivalent approximates per-capita consumption weight: children and
// elders eat less than a full adult share.
func adultEquivalent(c site.Cohorts) float64 {
	return c.Adults + c.Children*0.5 + c.Elders*0.75
}

// consumeOldestFirst removes amount food from the lots of type t ordered
// by soonest expiry first, returning the amount actually consumed.
func consumeOldestFirst(s *site.Site, t site.FoodType, amount float64) float64 {
	lots := s.FoodStock[t]
	expiry := t.ExpiryDays()
	sort.Slice(lots, func(i, j int) bool {
		return (lots[i].ProducedDay + expiry) < (lots[j].ProducedDay + expiry)
	})
	consumed := 0.0
	out := lots[:0]
	for _, lot := range lots {
		if amount <= 0 {
			out = append(out, lot)
			continue
		}
		if lot.Amount <= amount {
			consumed += lot.Amount
			amount -= lot.Amount
			continue
		}
		lot.Amount -= amount
		consumed += amount
		amount = 0
		out = append(out, lot)
	}
	s.FoodStock[t] = out
	return consumed
}

// RunFood advances consumption/hunger hourly, production at hour 6, and
// spoilage at hour 0, per spec.md §4.3.
func RunFood(ctx *Context, w *simworld.World) {
	for _, id := range w.SortedSiteIDs() {
		s := w.Sites[id]
		if !s.IsSettlement() {
			continue
		}

		needed := adultEquivalent(s.Cohorts) / 24
		consumed := 0.0
		for _, t := range site.AllFoodTypes() {
			consumed += consumeOldestFirst(s, t, needed-consumed)
		}
		unmet := needed - consumed
		if unmet > 0 {
			delta := unmet * 18
			if delta > 12 {
				delta = 12
			}
			if delta < 0 {
				delta = 0
			}
			s.Hunger += delta
		} else {
			s.Hunger -= 0.5
		}
		s.ClampStats()

		runIndividualStarvation(ctx, w, id, s)

		if w.HourOfDay() == 6 {
			runDailyProduction(ctx, w, id, s)
		}
		if w.HourOfDay() == 0 {
			runDailySpoilage(s, w.Tick)
		}

		if s.Hunger < 0 {
			simerr.Raise("process.food", "site %s has negative hunger after clamp", id)
		}
		for _, t := range site.AllFoodTypes() {
			if s.FoodTotal(t) < 0 {
				simerr.Raise("process.food", "site %s has negative %s total", id, t)
			}
		}
	}
}

func runDailyProduction(ctx *Context, w *simworld.World, id worldmap.SiteID, s *site.Site) {
	day := int(w.Tick / 24)
	for _, t := range site.AllFoodTypes() {
		base := s.ProductionPerDay[t]
		mult := 1.0
		if t == site.FoodGrain {
			mult = s.FieldsCondition
		}
		raw := base * mult * seasonMultiplier(t, w.Tick)
		if s.LaborWorkedToday[t] == 0 {
			raw = math.Floor(raw * 0.7)
		}
		if raw > 0 {
			s.FoodStock[t] = append(s.FoodStock[t], site.Lot{Amount: raw, ProducedDay: day})
		}
	}
	for t := range s.LaborWorkedToday {
		s.LaborWorkedToday[t] = 0
	}
	ctx.Emit(w.Tick, "world.food.produced", event.VisibilitySystem, id, "", nil)
}

func runDailySpoilage(s *site.Site, tick uint64) {
	day := int(tick / 24)
	for _, t := range site.AllFoodTypes() {
		expiry := t.ExpiryDays()
		kept := s.FoodStock[t][:0]
		for _, lot := range s.FoodStock[t] {
			if day-lot.ProducedDay < expiry {
				kept = append(kept, lot)
			}
		}
		s.FoodStock[t] = kept
	}
}

// runIndividualStarvation tracks each resident's consecutive hungry
// hours against the settlement's own hunger meter, and applies the
// per-hour hp damage spec.md §4.4 requires once that streak reaches
// starvationHoursThreshold, killing the NPC with cause starvation on
// hp<=0.
func runIndividualStarvation(ctx *Context, w *simworld.World, id worldmap.SiteID, s *site.Site) {
	hungry := s.Hunger >= personalHungerThreshold
	for _, n := range w.NPCsAtSite(id) {
		if hungry {
			n.ConsecutiveHungerHours++
		} else {
			n.ConsecutiveHungerHours = 0
		}
		if n.ConsecutiveHungerHours < starvationHoursThreshold {
			continue
		}

		dmg := starvationDamagePerHour
		if n.Category == npc.CategoryElder {
			dmg = math.Round(dmg * 1.5)
		}
		n.HP -= dmg
		if n.HP > 0 {
			continue
		}

		n.Die(npc.Death{Tick: w.Tick, Cause: npc.CauseStarvation, AtSiteID: id})
		decrementCohortOnStarvation(s, n)
		s.DeathsToday++
		ctx.Emit(w.Tick, "npc.died", event.VisibilityPublic, id, "", map[string]any{
			"npcId": string(n.ID), "cause": n.Death.Cause.String(),
		})
	}
}

// decrementCohortOnStarvation mirrors attempt.decrementCohortForDeath's
// per-category bookkeeping; duplicated here rather than shared since
// process cannot import attempt without a package cycle.
func decrementCohortOnStarvation(s *site.Site, n *npc.NPC) {
	switch n.Category {
	case npc.CategoryChild:
		if s.Cohorts.Children > 0 {
			s.Cohorts.Children--
		}
	case npc.CategoryElder:
		if s.Cohorts.Elders > 0 {
			s.Cohorts.Elders--
		}
	default:
		if s.Cohorts.Adults > 0 {
			s.Cohorts.Adults--
		}
	}
}
