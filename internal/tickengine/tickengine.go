// Package tickengine drives the hourly tick loop from spec.md §2/§4.1:
// processes, attempt generation and resolution, movement, the reactive/
// intent/plan update, notability accounting, and daily summaries.
//
// Grounded on the teacher's engine.Simulation.step (engine/tick.go): the
// same "run subsystems in a fixed order, collect events, gate daily work
// on hour-of-day" shape, reduced from the teacher's wall-clock-paced
// multi-cadence loop (ticksPerSimHour, separate LLM/weather cadences) to
// spec.md's single hourly contract.
package tickengine

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/talgya/worldsim/internal/attempt"
	"github.com/talgya/worldsim/internal/belief"
	"github.com/talgya/worldsim/internal/config"
	"github.com/talgya/worldsim/internal/entropy"
	"github.com/talgya/worldsim/internal/event"
	"github.com/talgya/worldsim/internal/movement"
	"github.com/talgya/worldsim/internal/npc"
	"github.com/talgya/worldsim/internal/process"
	"github.com/talgya/worldsim/internal/reactive"
	"github.com/talgya/worldsim/internal/simerr"
	"github.com/talgya/worldsim/internal/simworld"
	"github.com/talgya/worldsim/internal/site"
	"github.com/talgya/worldsim/internal/worldmap"
)

// daySummaryMessage renders a human-readable one-liner for the
// sim.day.ended event, matching the teacher's humanized log-line style
// (engine/tick.go's end-of-day reporting via go-humanize).
func daySummaryMessage(day int, s DailySummary) string {
	totalAlive := 0
	for _, site := range s.Sites {
		if site.AliveNPCs != nil {
			totalAlive += *site.AliveNPCs
		}
	}
	return fmt.Sprintf("day %d ended: %s living across %d sites", day, humanize.Comma(int64(totalAlive)), len(s.Sites))
}

// CohortSummary is the children/adults/elders breakdown in a SiteSummary.
type CohortSummary struct {
	Children, Adults, Elders float64
}

// SiteSummary is one site's entry in a DailySummary, per spec.md §6.
type SiteSummary struct {
	SiteID            worldmap.SiteID
	Name              string
	Culture           string
	Cohorts           *CohortSummary
	HousingCapacity   *float64
	FoodTotals        map[string]float64
	Unrest            *float64
	Morale            *float64
	Sickness          *float64
	Hunger            *float64
	CultInfluence     *float64
	EclipsingPressure float64
	AnchoringStrength float64
	AliveNPCs         *int
	DeadNPCs          *int
	CultMembers       *int
	AvgTrauma         *float64
	DeathsToday       *int
}

// DailySummary is the snapshot built at the last hour of each day.
type DailySummary struct {
	Day         int
	Tick        uint64
	KeyChanges  []string
	Sites       []SiteSummary
}

// Run advances a fresh world by seed for the given number of days and
// returns the final world, the full event stream, and one summary per
// day (spec.md §6 runSimulation).
func Run(seed int64, days int, cfg config.Config) (w *simworld.World, events []event.SimEvent, summaries []DailySummary, err error) {
	if days < 0 {
		return nil, nil, nil, &simerr.ValidationError{Msg: fmt.Sprintf("days must be >= 0, got %d", days)}
	}

	rng := entropy.New(seed)
	w = simworld.NewWorld(rng, seed)

	log := &event.Log{}
	counter := &event.Counter{}
	ctx := &process.Context{RNG: rng, Log: log, Counter: counter, Config: cfg}

	defer func() {
		if r := recover(); r != nil {
			if ie, ok := r.(*simerr.InvariantError); ok {
				events = log.All()
				err = ie
				return
			}
			panic(r)
		}
	}()

	counter.Reset()
	ctx.Emit(0, "sim.started", event.VisibilitySystem, "", "", map[string]any{"seed": seed})

	totalHours := days * 24
	for h := 0; h < totalHours; h++ {
		summary := TickHour(ctx, w)
		if summary != nil {
			summaries = append(summaries, *summary)
		}
	}

	events = log.All()
	return w, events, summaries, nil
}

// TickHour advances the world by exactly one hour, following the fixed
// ordering in spec.md §4.1. Returns a non-nil DailySummary when this
// tick closes out a day (hour-of-day 23 before the tick increments).
func TickHour(ctx *process.Context, w *simworld.World) *DailySummary {
	tick := w.Tick
	ctx.Counter.Reset()

	runProcesses(ctx, w)

	generated := generateAttempts(ctx, w, tick)
	for _, a := range generated {
		attempt.Resolve(ctx, w, a)
	}

	progressMovement(ctx, w, tick)

	thisTick := eventsForTick(ctx.Log.All(), tick)

	runReactiveUpdate(ctx, w, tick, thisTick)

	if w.HourOfDay() == 23 {
		belief.PropagateDayBoundary(ctx.RNG, ctx.Config, w.Map, w.Sites, tick)
	}

	applyNotability(ctx, w, tick, thisTick)

	validateInvariants(w, tick)

	var summary *DailySummary
	if w.HourOfDay() == 23 {
		s := BuildDailySummary(w, tick)
		ctx.Emit(tick, "sim.day.ended", event.VisibilitySystem, "", daySummaryMessage(s.Day, s), map[string]any{"summary": s})
		summary = &s
	}

	w.Tick++
	return summary
}

func eventsForTick(all []event.SimEvent, tick uint64) []event.SimEvent {
	out := make([]event.SimEvent, 0)
	for _, e := range all {
		if e.Tick == tick {
			out = append(out, e)
		}
	}
	return out
}

func runProcesses(ctx *process.Context, w *simworld.World) {
	process.RunEclipsingPressure(ctx, w)
	process.RunAnchoring(ctx, w)
	process.RunFood(ctx, w)
	process.RunPopulation(ctx, w)
	process.RunUnrest(ctx, w)
	process.RunCult(ctx, w)
}

// generateAttempts produces at most one candidate attempt per alive NPC,
// in ascending actor-id order (spec.md §4.1 step 3): a bandit first rolls
// for a raid, then any NPC rolls for a high-unrest assault, and only if
// neither fires does the scored path run (no attempt if it finds no
// candidate). Reflex generation is reserved as a fallback callers can
// invoke directly in tests; the main loop always has a scored idle
// candidate available, so it is never reached here.
func generateAttempts(ctx *process.Context, w *simworld.World, tick uint64) []attempt.Attempt {
	var out []attempt.Attempt
	for _, id := range w.SortedNPCIDs() {
		n := w.NPCs[id]
		if !n.Alive {
			continue
		}
		s, ok := w.Sites[n.SiteID]
		if !ok {
			continue
		}
		residents := w.NPCsAtSite(n.SiteID)

		if n.Category == npc.CategoryBandit {
			if a, ok := attempt.RollBanditRaid(ctx.RNG, w.Seed, tick, n, s); ok {
				out = append(out, a)
				continue
			}
		}
		if a, ok := attempt.RollHighUnrestAssault(ctx.RNG, w.Seed, tick, n, s, residents); ok {
			out = append(out, a)
			continue
		}

		modifiers := reactive.CombinedModifiers(n)
		if a, ok := attempt.GenerateScoredAttempt(ctx.RNG, w.Seed, tick, n, s, residents, modifiers); ok {
			out = append(out, a)
		}
	}
	return out
}

func progressMovement(ctx *process.Context, w *simworld.World, tick uint64) {
	for _, id := range w.SortedNPCIDs() {
		n := w.NPCs[id]
		if !n.Alive || n.Travel == nil {
			continue
		}
		arrived := movement.ProgressTravelHourly(n, w.Map, movement.SeasonFactor(tick))
		if !arrived {
			continue
		}
		if movement.RollEncounter(ctx.RNG) {
			ctx.Emit(tick, "travel.encounter", event.VisibilityPublic, n.SiteID, "", map[string]any{"npcId": string(n.ID)})
		}
		s, ok := w.Sites[n.SiteID]
		if !ok {
			continue
		}
		lastVisit := n.LastVisitTick[n.SiteID]
		belief.IngestOnReturn(ctx.RNG, ctx.Config, n, s, lastVisit)
		n.LastVisitTick[n.SiteID] = tick
	}
	for _, id := range w.SortedNPCIDs() {
		n := w.NPCs[id]
		if n.Alive && n.LocalTravel != nil {
			movement.ProgressLocalTravelHourly(n)
		}
	}
}

func runReactiveUpdate(ctx *process.Context, w *simworld.World, tick uint64, tickEvents []event.SimEvent) {
	for _, id := range w.SortedNPCIDs() {
		n := w.NPCs[id]
		if !n.Alive {
			continue
		}
		s := w.Sites[n.SiteID]
		receivedHelp := false
		for _, e := range tickEvents {
			if e.Kind != "attempt.recorded" {
				continue
			}
			if a, ok := e.Data["attempt"].(map[string]any); ok {
				if targetID, _ := a["targetId"].(string); targetID == string(n.ID) {
					if k, _ := a["kind"].(string); k == "heal" {
						receivedHelp = true
					}
				}
			}
		}
		sig := reactive.BuildSignals(tickEvents, n, tick, receivedHelp)
		reactive.EvaluateTick(ctx.Config, tick, n, s, sig)
		reactive.UpdateIntents(ctx.Config, w, tick, n, sig)
		reactive.UpdateGoals(ctx.Config, n, tick, sig)
		reactive.SynthesizePlan(n, tick)
	}
	reactive.AdvancePlans(tickEvents, w.NPCs)
}

// notabilityGain names the attempt kinds that move the needle on a
// character's public standing, per spec.md §2's "gains from event
// taxonomy".
var notabilityGain = map[attempt.Kind]float64{
	attempt.KindKill:         8,
	attempt.KindArrest:       4,
	attempt.KindInvestigate:  3,
	attempt.KindHeal:         3,
	attempt.KindForcedEclipse: 6,
	attempt.KindAnchorSever:  6,
	attempt.KindRaid:         5,
	attempt.KindPreachFixedPath: 2,
}

func applyNotability(ctx *process.Context, w *simworld.World, tick uint64, tickEvents []event.SimEvent) {
	for _, e := range tickEvents {
		if e.Kind != "attempt.recorded" {
			continue
		}
		a, ok := e.Data["attempt"].(map[string]any)
		if !ok {
			continue
		}
		success, _ := e.Data["success"].(bool)
		if !success {
			continue
		}
		actorID, _ := a["actorId"].(string)
		kindStr, _ := a["kind"].(string)
		n, ok := w.NPCs[npc.ID(actorID)]
		if !ok {
			continue
		}
		gain, ok := notabilityGain[attempt.Kind(kindStr)]
		if !ok {
			continue
		}
		n.Notability += gain
		n.ClampStats()
	}

	if w.HourOfDay() != 0 {
		return
	}
	for _, id := range w.SortedNPCIDs() {
		n := w.NPCs[id]
		isLeadership := n.Category == npc.CategoryLeader || n.Category == npc.CategoryNoble
		rate := ctx.Config.NotabilityDecayRate(n.Notability, isLeadership)
		n.Notability -= rate
		n.ClampStats()
	}
}

// BuildDailySummary snapshots every site's key stats, per spec.md §6.
func BuildDailySummary(w *simworld.World, tick uint64) DailySummary {
	s := DailySummary{Day: int(tick / 24), Tick: tick}
	for _, id := range w.SortedSiteIDs() {
		st := w.Sites[id]
		entry := SiteSummary{
			SiteID:            id,
			Name:              st.Name,
			Culture:           st.Culture.String(),
			EclipsingPressure: st.EclipsingPressure,
			AnchoringStrength: st.AnchoringStrength,
		}
		if st.IsSettlement() {
			cohorts := CohortSummary{
				Children: st.Cohorts.Children,
				Adults:   st.Cohorts.Adults,
				Elders:   st.Cohorts.Elders,
			}
			entry.Cohorts = &cohorts
			hc := st.HousingCapacity
			entry.HousingCapacity = &hc
			totals := make(map[string]float64)
			for _, t := range site.AllFoodTypes() {
				totals[t.String()] = st.FoodTotal(t)
			}
			entry.FoodTotals = totals
			unrest, morale, sickness, hunger, cult := st.Unrest, st.Morale, st.Sickness, st.Hunger, st.CultInfluence
			entry.Unrest, entry.Morale, entry.Sickness, entry.Hunger, entry.CultInfluence = &unrest, &morale, &sickness, &hunger, &cult
			deaths := st.DeathsToday
			entry.DeathsToday = &deaths

			alive, dead, cultMembers := 0, 0, 0
			trauma := 0.0
			for _, nid := range w.SortedNPCIDs() {
				n := w.NPCs[nid]
				if n.HomeSiteID != id && n.SiteID != id {
					continue
				}
				if n.Alive {
					alive++
					trauma += n.Trauma
					if n.Cult.Member {
						cultMembers++
					}
				} else {
					dead++
				}
			}
			entry.AliveNPCs, entry.DeadNPCs, entry.CultMembers = &alive, &dead, &cultMembers
			if alive > 0 {
				avg := trauma / float64(alive)
				entry.AvgTrauma = &avg
			}
		}
		s.Sites = append(s.Sites, entry)
	}
	return s
}

// validateInvariants checks the quantified invariants from spec.md §8 that
// ClampStats deliberately does not silently heal (a negative food total or
// a dangling site/npc reference indicates a bug in a resolver, not a
// recoverable state). Raises, aborting the run, per spec.md §7.
func validateInvariants(w *simworld.World, tick uint64) {
	for id, s := range w.Sites {
		if !s.IsSettlement() {
			continue
		}
		for _, t := range site.AllFoodTypes() {
			if s.FoodTotal(t) < 0 {
				simerr.Raise("tickengine", "site %s has negative %s total at tick %d", id, t, tick)
			}
		}
		if s.Cohorts.Children < 0 || s.Cohorts.Adults < 0 || s.Cohorts.Elders < 0 {
			simerr.Raise("tickengine", "site %s has a negative cohort count at tick %d", id, tick)
		}
	}
	for id, n := range w.NPCs {
		if n.Travel == nil {
			continue
		}
		if n.Travel.KmRemaining < 0 {
			simerr.Raise("tickengine", "npc %s has negative travel remainder at tick %d", id, tick)
		}
		if _, ok := w.Sites[n.Travel.ToSiteID]; !ok {
			simerr.Raise("tickengine", "npc %s travels toward unknown site %s", id, n.Travel.ToSiteID)
		}
	}
}
