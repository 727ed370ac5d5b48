package reactive

import (
	"github.com/talgya/worldsim/internal/attempt"
	"github.com/talgya/worldsim/internal/event"
	"github.com/talgya/worldsim/internal/npc"
)

// planStepBias is the positive scoring nudge a plan's current step gets
// every tick toward the matching attempt kind (spec.md §4.7: "scoring
// adds a positive bias to the plan's current step kind").
const planStepBias = 25.0

// PlanBias returns the scoring modifier for an NPC's current plan step,
// if any, keyed the same way reactive.ScoreModifiers is so callers can
// merge the two before passing extraModifiers into attempt generation.
func PlanBias(n *npc.NPC) map[attempt.Kind]float64 {
	if n.Plan == nil {
		return nil
	}
	step, ok := n.Plan.CurrentStep()
	if !ok {
		return nil
	}
	return map[attempt.Kind]float64{attempt.Kind(step.Kind): planStepBias}
}

// planThreshold is how urgent a need has to get before it synthesizes a
// plan, rather than just nudging the hourly attempt score (spec.md §4.7).
const planThreshold = 75.0

// planCatalog maps a need name to the step sequence that satisfies it,
// picked per category where the route to relief differs (a farmer works
// the fields directly; a merchant has to travel to trade for food).
func planForNeed(n *npc.NPC, need string) (npc.Plan, bool) {
	switch need {
	case "Food":
		switch n.Category {
		case npc.CategoryFarmer, npc.CategoryFisher, npc.CategoryHunter:
			return npc.Plan{GoalKind: "get_food", Steps: []npc.PlanStep{{Kind: "work_farm"}}}, true
		default:
			return npc.Plan{GoalKind: "get_food", Steps: []npc.PlanStep{{Kind: "travel"}, {Kind: "trade"}}}, true
		}
	case "Wealth":
		return npc.Plan{GoalKind: "get_wealth", Steps: []npc.PlanStep{{Kind: "trade"}}}, true
	case "Safety":
		return npc.Plan{GoalKind: "find_safety", Steps: []npc.PlanStep{{Kind: "travel"}}}, true
	case "Health":
		return npc.Plan{GoalKind: "get_healed", Steps: []npc.PlanStep{{Kind: "travel"}, {Kind: "heal"}}}, true
	default:
		return npc.Plan{}, false
	}
}

// needCrossingThreshold returns the first need name at or above
// planThreshold, checking Food, Safety, Health (inverted), then Wealth in
// that fixed order, so plan synthesis stays deterministic when several
// needs cross at once.
func needCrossingThreshold(n *npc.NPC) (string, bool) {
	ordered := []struct {
		name string
		v    float64
	}{
		{"Food", n.Needs.Food},
		{"Safety", n.Needs.Safety},
		{"Health", 100 - n.Needs.Health},
		{"Wealth", n.Needs.Wealth},
	}
	for _, need := range ordered {
		if need.v >= planThreshold {
			return need.name, true
		}
	}
	return "", false
}

// SynthesizePlan starts a new plan when an NPC has none and a need has
// crossed its threshold. Does nothing if a plan is already in progress.
func SynthesizePlan(n *npc.NPC, tick uint64) {
	if n.Plan != nil {
		return
	}
	needName, ok := needCrossingThreshold(n)
	if !ok {
		return
	}
	plan, ok := planForNeed(n, needName)
	if !ok {
		return
	}
	plan.StartedTick = tick
	n.Plan = &plan
}

// AdvancePlans inspects this tick's recorded attempts and advances any
// NPC's in-progress plan whose current step matches that NPC's own
// completed attempt kind, clearing the plan once every step has run.
func AdvancePlans(tickEvents []event.SimEvent, npcs map[npc.ID]*npc.NPC) {
	for _, e := range tickEvents {
		if e.Kind != "attempt.recorded" {
			continue
		}
		a, ok := e.Data["attempt"].(map[string]any)
		if !ok {
			continue
		}
		actorID, _ := a["actorId"].(string)
		kind, _ := a["kind"].(string)
		n, ok := npcs[npc.ID(actorID)]
		if !ok || n.Plan == nil {
			continue
		}
		step, has := n.Plan.CurrentStep()
		if !has || step.Kind != kind {
			continue
		}
		n.Plan.Advance()
		if n.Plan.Done() {
			n.Plan = nil
		}
	}
}
