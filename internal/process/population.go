package process

import (
	"math"

	"github.com/talgya/worldsim/internal/event"
	"github.com/talgya/worldsim/internal/npc"
	"github.com/talgya/worldsim/internal/simworld"
	"github.com/talgya/worldsim/internal/site"
	"github.com/talgya/worldsim/internal/worldmap"
)

// perCapitaStored returns total stored food per adult-equivalent.
func perCapitaStored(s *site.Site) float64 {
	ae := adultEquivalent(s.Cohorts)
	if ae <= 0 {
		return 0
	}
	total := 0.0
	for _, t := range site.AllFoodTypes() {
		total += s.FoodTotal(t)
	}
	return total / ae
}

func housingSlack(s *site.Site) float64 {
	slack := s.HousingCapacity - s.Cohorts.Total()
	if slack < 0 {
		return 0
	}
	return slack
}

// stochasticRound rounds v probabilistically: the fractional part is the
// chance of rounding up, so repeated small expectations accumulate
// correctly over many days instead of truncating to zero forever.
func stochasticRound(rng interface{ Float64() float64 }, v float64) int {
	whole := math.Floor(v)
	frac := v - whole
	if rng.Float64() < frac {
		whole++
	}
	return int(whole)
}

// RunPopulation runs the daily (hour-of-day==0) refugee inflow, named
// refugees, sickness drift, starvation/illness deaths, births, and
// migration, per spec.md §4.3.
func RunPopulation(ctx *Context, w *simworld.World) {
	if w.HourOfDay() != 0 {
		return
	}

	for _, id := range w.SortedSiteIDs() {
		s := w.Sites[id]
		if s.IsSettlement() {
			s.DeathsToday = 0
		}
	}

	runRefugeeInflow(ctx, w)
	runNamedRefugees(ctx, w)
	runSicknessDrift(w)
	runStarvationAndIllnessDeaths(ctx, w)
	runBirths(ctx, w)
	runMigration(ctx, w)
}

func runRefugeeInflow(ctx *Context, w *simworld.World) {
	refugees := ctx.RNG.IntRange(0, 2)
	if refugees == 0 {
		return
	}
	candidates := humanSettlements(w)
	if len(candidates) == 0 {
		return
	}
	type scored struct {
		id    worldmap.SiteID
		score float64
	}
	scoredList := make([]scored, 0, len(candidates))
	for _, id := range candidates {
		s := w.Sites[id]
		pcs := perCapitaStored(s)
		bonus := pcs * 20
		if bonus > 60 {
			bonus = 60
		}
		if bonus < 0 {
			bonus = 0
		}
		score := 2*housingSlack(s) + (100 - s.Unrest) + 0.2*(100-s.Sickness) + bonus
		scoredList = append(scoredList, scored{id, score})
	}
	sortScoredDesc(scoredList)
	poolSize := 3
	if poolSize > len(scoredList) {
		poolSize = len(scoredList)
	}
	pick := scoredList[ctx.RNG.IntRange(0, poolSize-1)]
	dst := w.Sites[pick.id]
	if perCapitaStored(dst) < 0.6 || dst.Cohorts.Total() >= dst.HousingCapacity {
		return
	}
	adults := math.Round(float64(refugees) * 0.7)
	children := float64(refugees) - adults
	dst.Cohorts.Adults += adults
	dst.Cohorts.Children += children
	ctx.Emit(w.Tick, "population.refugees.arrived", event.VisibilityPublic, pick.id, "", map[string]any{"count": refugees})
}

func sortScoredDesc(s []struct {
	id    worldmap.SiteID
	score float64
}) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j].score > s[j-1].score; j-- {
			s[j], s[j-1] = s[j-1], s[j]
		}
	}
}

func humanSettlements(w *simworld.World) []worldmap.SiteID {
	out := make([]worldmap.SiteID, 0)
	for _, id := range w.SortedSiteIDs() {
		s := w.Sites[id]
		if s.IsSettlement() && s.Culture == site.CultureHuman {
			out = append(out, id)
		}
	}
	return out
}

func runNamedRefugees(ctx *Context, w *simworld.World) {
	for _, id := range humanSettlements(w) {
		s := w.Sites[id]
		if s.Cohorts.Total() >= s.HousingCapacity*0.5 {
			continue
		}
		if !ctx.RNG.Chance(0.35) {
			continue
		}
		count := ctx.RNG.IntRange(1, 3)
		for _, n := range w.Spawner.Spawn(count, npc.CategoryWanderer, id) {
			n.Traits.Fear = 70 + ctx.RNG.Float64()*20
			n.ClampStats()
			w.NPCs[n.ID] = n
			s.Cohorts.Adults++
		}
		ctx.Emit(w.Tick, "population.refugees.named", event.VisibilityPublic, id, "", map[string]any{"count": count})
	}
}

func runSicknessDrift(w *simworld.World) {
	for _, id := range w.SortedSiteIDs() {
		s := w.Sites[id]
		if !s.IsSettlement() {
			continue
		}
		pcs := perCapitaStored(s)
		crowdStress := 0.0
		if s.HousingCapacity > 0 {
			crowdStress = s.Cohorts.Total() / s.HousingCapacity
		}
		reserveStress := 0.6 - pcs/3
		if reserveStress < 0 {
			reserveStress = 0
		}
		if reserveStress > 0.6 {
			reserveStress = 0.6
		}
		delta := math.Round(s.Hunger/100*7 + crowdStress*3 + reserveStress*2)
		if s.Hunger < 5 && reserveStress < 0.05 {
			delta = -5
		}
		s.Sickness += delta
		s.ClampStats()
	}
}

func runStarvationAndIllnessDeaths(ctx *Context, w *simworld.World) {
	for _, id := range w.SortedSiteIDs() {
		s := w.Sites[id]
		if !s.IsSettlement() {
			continue
		}
		if s.Hunger >= 70 {
			rate := (s.Hunger - 70) / 30
			if rate > 1 {
				rate = 1
			}
			rate *= 0.008
			deaths := stochasticRound(ctx.RNG, rate*s.Cohorts.Children*1.1)
			deaths += stochasticRound(ctx.RNG, rate*s.Cohorts.Adults*1.0)
			deaths += stochasticRound(ctx.RNG, rate*s.Cohorts.Elders*1.4)
			if deaths > 0 {
				killCohortMembers(w, id, s, deaths)
				s.DeathsToday += deaths
				ctx.Emit(w.Tick, "population.starvation.deaths", event.VisibilityPublic, id, "", map[string]any{"count": deaths})
			}
		}
		illnessRate := s.Cohorts.Elders * 0.0009 * (1 + s.Sickness/80)
		illnessDeaths := stochasticRound(ctx.RNG, illnessRate)
		if illnessDeaths > 0 {
			s.Cohorts.Elders -= float64(illnessDeaths)
			s.DeathsToday += illnessDeaths
			ctx.Emit(w.Tick, "population.illness.deaths", event.VisibilityPublic, id, "", map[string]any{"count": illnessDeaths})
		}
		s.ClampStats()
	}
}

// killCohortMembers decrements the aggregate adult cohort by count and
// marks up to count named NPCs at the site as dead with cause starvation
// (named NPCs are a subset of the aggregate cohort totals).
func killCohortMembers(w *simworld.World, id worldmap.SiteID, s *site.Site, count int) {
	killed := 0
	for _, n := range w.NPCsAtSite(id) {
		if killed >= count {
			break
		}
		n.Die(npc.Death{Tick: w.Tick, Cause: npc.CauseStarvation, AtSiteID: id})
		killed++
	}
	take := float64(count)
	if take > s.Cohorts.Adults {
		take = s.Cohorts.Adults
	}
	s.Cohorts.Adults -= take
}

func runBirths(ctx *Context, w *simworld.World) {
	for _, id := range w.SortedSiteIDs() {
		s := w.Sites[id]
		if !s.IsSettlement() {
			continue
		}
		stability := 1 - s.Unrest/100
		slackRatio := 0.0
		if s.HousingCapacity > 0 {
			slackRatio = housingSlack(s) / s.HousingCapacity
			if slackRatio < 0 {
				slackRatio = 0
			}
		}
		expected := s.Cohorts.Adults * 0.00035 * stability * slackRatio
		births := stochasticRound(ctx.RNG, expected)
		if births > 0 {
			s.Cohorts.Children += float64(births)
			ctx.Emit(w.Tick, "population.births", event.VisibilityPublic, id, "", map[string]any{"count": births})
		}
	}
}

func runMigration(ctx *Context, w *simworld.World) {
	ids := w.SortedSiteIDs()
	for _, id := range ids {
		s := w.Sites[id]
		if !s.IsSettlement() {
			continue
		}
		fleePressure := s.Hunger/100*0.8 + s.Unrest/100*0.4
		rate := fleePressure
		if rate < 0 {
			rate = 0
		}
		if rate > 1 {
			rate = 1
		}
		rate *= 0.02
		if !ctx.RNG.Chance(rate) {
			continue
		}
		dstID := bestMigrationDestination(w, id)
		if dstID == "" {
			continue
		}
		dst := w.Sites[dstID]
		movedAdults := s.Cohorts.Adults * 0.75 * rate
		movedChildren := s.Cohorts.Children * 0.25 * rate
		s.Cohorts.Adults -= movedAdults
		s.Cohorts.Children -= movedChildren
		dst.Cohorts.Adults += movedAdults
		dst.Cohorts.Children += movedChildren
		ctx.Emit(w.Tick, "population.migration", event.VisibilityPublic, id, "", map[string]any{"to": string(dstID)})
	}
}

func bestMigrationDestination(w *simworld.World, from worldmap.SiteID) worldmap.SiteID {
	var best worldmap.SiteID
	bestScore := -1.0
	for _, e := range w.Map.Neighbors(from) {
		dst, ok := w.Sites[e.To]
		if !ok || !dst.IsSettlement() || dst.Hidden {
			continue
		}
		score := 2*housingSlack(dst) + (100 - dst.Unrest)
		if score > bestScore {
			bestScore = score
			best = e.To
		}
	}
	return best
}
